package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrRestaurantNotFound is returned when a restaurant id is unknown
	ErrRestaurantNotFound = errors.New("restaurant not found")

	// ErrSessionNotFound is returned when a session does not exist or has expired
	ErrSessionNotFound = errors.New("session not found")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrMarkerNotFound is returned when no live marker exists for a restaurant
	ErrMarkerNotFound = errors.New("marker not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrGenerationFailed is returned when a recommendation could not be produced
	ErrGenerationFailed = errors.New("recommendation generation failed")

	// ErrNoCandidates is returned when a recommendation is requested over an empty set
	ErrNoCandidates = errors.New("no candidates")

	// ErrMapUnavailable is returned when the map widget could not be loaded
	ErrMapUnavailable = errors.New("map unavailable")
)

// Kind classifies the user-facing failures so each can be routed to its own presentation.
type Kind string

const (
	KindValidation     Kind = "validation_error"
	KindGeneration     Kind = "generation_error"
	KindMapUnavailable Kind = "map_unavailable"
)

// kinded is implemented by every error that carries a Kind
type kinded interface {
	error
	Kind() Kind
}

// KindOf returns the Kind of the first error in err's chain that has one.
func KindOf(err error) (Kind, bool) {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind(), true
	}
	return "", false
}

// RestaurantNotFoundError represents a restaurant not found error with context
type RestaurantNotFoundError struct {
	RestaurantID int
}

func (e *RestaurantNotFoundError) Error() string {
	return fmt.Sprintf("restaurant with ID '%d' not found", e.RestaurantID)
}

func (e *RestaurantNotFoundError) Is(target error) bool {
	return target == ErrRestaurantNotFound
}

// NewRestaurantNotFoundError creates a new RestaurantNotFoundError
func NewRestaurantNotFoundError(restaurantID int) *RestaurantNotFoundError {
	return &RestaurantNotFoundError{RestaurantID: restaurantID}
}

// SessionNotFoundError represents a session not found error with context
type SessionNotFoundError struct {
	SessionID string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("session with ID '%s' not found", e.SessionID)
}

func (e *SessionNotFoundError) Is(target error) bool {
	return target == ErrSessionNotFound
}

// NewSessionNotFoundError creates a new SessionNotFoundError
func NewSessionNotFoundError(sessionID string) *SessionNotFoundError {
	return &SessionNotFoundError{SessionID: sessionID}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// MarkerNotFoundError is returned when a click targets a restaurant without a live marker
type MarkerNotFoundError struct {
	RestaurantID int
}

func (e *MarkerNotFoundError) Error() string {
	return fmt.Sprintf("no marker for restaurant '%d'", e.RestaurantID)
}

func (e *MarkerNotFoundError) Is(target error) bool {
	return target == ErrMarkerNotFound
}

// NewMarkerNotFoundError creates a new MarkerNotFoundError
func NewMarkerNotFoundError(restaurantID int) *MarkerNotFoundError {
	return &MarkerNotFoundError{RestaurantID: restaurantID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Kind reports KindValidation
func (e *ValidationError) Kind() Kind { return KindValidation }

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// GenerationError wraps a failure of the recommendation generator.
// Message is safe to show to the user; Err is the underlying cause.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("recommendation generation failed: %v", e.Err)
	}
	return "recommendation generation failed"
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// Kind reports KindGeneration
func (e *GenerationError) Kind() Kind { return KindGeneration }

// NewGenerationError creates a new GenerationError
func NewGenerationError(message string, err error) *GenerationError {
	return &GenerationError{Message: message, Err: err}
}

// MapUnavailableError means the map widget never finished loading
type MapUnavailableError struct {
	Reason string
	Err    error
}

func (e *MapUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("map unavailable: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("map unavailable: %s", e.Reason)
}

func (e *MapUnavailableError) Unwrap() error { return e.Err }

func (e *MapUnavailableError) Is(target error) bool {
	return target == ErrMapUnavailable
}

// Kind reports KindMapUnavailable
func (e *MapUnavailableError) Kind() Kind { return KindMapUnavailable }

// NewMapUnavailableError creates a new MapUnavailableError
func NewMapUnavailableError(reason string, err error) *MapUnavailableError {
	return &MapUnavailableError{Reason: reason, Err: err}
}
