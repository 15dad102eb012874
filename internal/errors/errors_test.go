package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestRestaurantNotFoundError(t *testing.T) {
	err := NewRestaurantNotFoundError(42)

	expectedMsg := "restaurant with ID '42' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrRestaurantNotFound) {
		t.Error("Expected error to match ErrRestaurantNotFound sentinel")
	}

	if errors.Is(err, ErrSessionNotFound) {
		t.Error("Error should not match ErrSessionNotFound")
	}

	if _, ok := KindOf(err); ok {
		t.Error("Not-found errors should not carry a user-facing kind")
	}
}

func TestSessionNotFoundError(t *testing.T) {
	err := NewSessionNotFoundError("abc")

	expectedMsg := "session with ID 'abc' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected error to match ErrSessionNotFound sentinel")
	}
}

func TestJobNotFoundError(t *testing.T) {
	jobID := "job-456"
	err := NewJobNotFoundError(jobID)

	expectedMsg := "job with ID 'job-456' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrJobNotFound) {
		t.Error("Expected error to match ErrJobNotFound sentinel")
	}
}

func TestMarkerNotFoundError(t *testing.T) {
	err := NewMarkerNotFoundError(7)

	if !errors.Is(err, ErrMarkerNotFound) {
		t.Error("Expected error to match ErrMarkerNotFound sentinel")
	}
}

func TestValidationError(t *testing.T) {
	// Test with field
	err := NewValidationError("criteria", "추천 기준을 입력해주세요.")

	expectedMsg := "validation error for field 'criteria': 추천 기준을 입력해주세요."
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test without field
	err2 := NewValidationError("", "general validation error")

	expectedMsg2 := "validation error: general validation error"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected error to match ErrInvalidInput sentinel")
	}

	kind, ok := KindOf(err)
	if !ok || kind != KindValidation {
		t.Errorf("Expected kind %s, got %s (ok=%v)", KindValidation, kind, ok)
	}
}

func TestGenerationError(t *testing.T) {
	err := NewGenerationError("추천할 수 있는 식당이 없습니다.", ErrNoCandidates)

	if !errors.Is(err, ErrGenerationFailed) {
		t.Error("Expected error to match ErrGenerationFailed sentinel")
	}

	if !errors.Is(err, ErrNoCandidates) {
		t.Error("Expected error to unwrap to ErrNoCandidates")
	}

	kind, ok := KindOf(err)
	if !ok || kind != KindGeneration {
		t.Errorf("Expected kind %s, got %s (ok=%v)", KindGeneration, kind, ok)
	}
}

func TestMapUnavailableError(t *testing.T) {
	cause := errors.New("script failed to load")
	err := NewMapUnavailableError("load", cause)

	expectedMsg := "map unavailable: load: script failed to load"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrMapUnavailable) {
		t.Error("Expected error to match ErrMapUnavailable sentinel")
	}

	if !errors.Is(err, cause) {
		t.Error("Expected error to unwrap to its cause")
	}
}

func TestKindOfWrappedErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantOK   bool
	}{
		{"wrapped validation", fmt.Errorf("request: %w", NewValidationError("criteria", "empty")), KindValidation, true},
		{"wrapped generation", fmt.Errorf("job: %w", NewGenerationError("oops", nil)), KindGeneration, true},
		{"wrapped map", fmt.Errorf("init: %w", NewMapUnavailableError("no client id", nil)), KindMapUnavailable, true},
		{"plain error", errors.New("plain"), "", false},
		{"nil error", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := KindOf(tt.err)
			if ok != tt.wantOK || kind != tt.wantKind {
				t.Errorf("KindOf() = (%q, %v), want (%q, %v)", kind, ok, tt.wantKind, tt.wantOK)
			}
		})
	}
}
