package api

import (
	"testing"

	"github.com/gcbaptista/matjibmap/model"
)

func TestValidationResult_AddError(t *testing.T) {
	result := &ValidationResult{Valid: true}

	result.AddError("field1", "error message")

	if result.Valid {
		t.Error("Expected Valid to be false after adding error")
	}

	if len(result.Errors) != 1 {
		t.Errorf("Expected 1 error, got %d", len(result.Errors))
	}

	if result.Errors[0].Field != "field1" {
		t.Errorf("Expected field 'field1', got '%s'", result.Errors[0].Field)
	}
}

func TestValidationResult_Merge(t *testing.T) {
	a := &ValidationResult{Valid: true}
	b := &ValidationResult{Valid: true}
	b.AddError("rating", "bad")

	a.merge(b, &ValidationResult{Valid: true})

	if a.Valid || !a.HasErrors() {
		t.Error("Expected merged result to carry the error")
	}
	if a.Errors[0].Field != "rating" {
		t.Errorf("Expected field 'rating', got '%s'", a.Errors[0].Field)
	}
}

func TestValidateSessionID(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		wantValid bool
	}{
		{"valid id", "0b6c5a4e-8a1f-4e5b-9c1d-6f2e7a3b8c9d", true},
		{"empty id", "", false},
		{"leading whitespace", " abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSessionID(tt.sessionID)
			if result.HasErrors() == tt.wantValid {
				t.Errorf("ValidateSessionID(%q) valid = %v, want %v", tt.sessionID, !result.HasErrors(), tt.wantValid)
			}
		})
	}
}

func TestParseRestaurantID(t *testing.T) {
	tests := []struct {
		raw    string
		wantID int
		wantOK bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id, result := ParseRestaurantID("id", tt.raw)
			if result.HasErrors() == tt.wantOK {
				t.Fatalf("ParseRestaurantID(%q) ok = %v, want %v", tt.raw, !result.HasErrors(), tt.wantOK)
			}
			if id != tt.wantID {
				t.Errorf("ParseRestaurantID(%q) = %d, want %d", tt.raw, id, tt.wantID)
			}
		})
	}
}

func TestValidateCategoriesAndFeatures(t *testing.T) {
	categories, result := ValidateCategories([]string{"한식", "피자", "카페"})
	if len(result.Errors) != 1 || result.Errors[0].Field != "category" {
		t.Errorf("Expected one category error, got %+v", result.Errors)
	}
	if len(categories) != 2 || categories[1] != model.CategoryCafe {
		t.Errorf("Expected known categories to be kept, got %v", categories)
	}

	features, result := ValidateFeatures([]string{"주차 가능"})
	if result.HasErrors() {
		t.Errorf("Expected no feature errors, got %+v", result.Errors)
	}
	if len(features) != 1 || features[0] != model.FeatureParking {
		t.Errorf("Expected [주차 가능], got %v", features)
	}
}

func TestValidatePriceRange(t *testing.T) {
	tests := []struct {
		name      string
		r         model.PriceRange
		wantValid bool
	}{
		{"full range", model.PriceRange{1, 4}, true},
		{"inverted range is accepted", model.PriceRange{4, 1}, true},
		{"below minimum", model.PriceRange{0, 2}, false},
		{"above maximum", model.PriceRange{1, 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidatePriceRange(tt.r)
			if result.HasErrors() == tt.wantValid {
				t.Errorf("ValidatePriceRange(%v) valid = %v, want %v", tt.r, !result.HasErrors(), tt.wantValid)
			}
		})
	}
}

func TestValidateRatingAndDistance(t *testing.T) {
	if ValidateRating(4.5).HasErrors() {
		t.Error("Expected 4.5 to be a valid rating")
	}
	if !ValidateRating(5.1).HasErrors() || !ValidateRating(-1).HasErrors() {
		t.Error("Expected ratings outside 0..5 to be rejected")
	}
	if ValidateDistance(0).HasErrors() {
		t.Error("Expected 0 to be a valid distance")
	}
	if !ValidateDistance(-0.5).HasErrors() {
		t.Error("Expected a negative distance to be rejected")
	}
}
