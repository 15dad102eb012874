package api

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/matjibmap/internal/errors"
	"github.com/gcbaptista/matjibmap/internal/logging"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrorCodeRestaurantNotFound ErrorCode = "RESTAURANT_NOT_FOUND"
	ErrorCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrorCodeJobNotFound        ErrorCode = "JOB_NOT_FOUND"
	ErrorCodeMarkerNotFound     ErrorCode = "MARKER_NOT_FOUND"
	ErrorCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidJSON        ErrorCode = "INVALID_JSON"

	// Server Error Codes (5xx)
	ErrorCodeInternalError    ErrorCode = "INTERNAL_ERROR"
	ErrorCodeGenerationFailed ErrorCode = "GENERATION_FAILED"
	ErrorCodeMapUnavailable   ErrorCode = "MAP_UNAVAILABLE"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with one detail per failed field
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	logging.Error().Err(err).Str("operation", operation).Msg("internal error")
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation)
}

// SendDomainError maps an error from the service packages to its HTTP response
func SendDomainError(c *gin.Context, err error) {
	var (
		restaurantErr *errors.RestaurantNotFoundError
		sessionErr    *errors.SessionNotFoundError
		jobErr        *errors.JobNotFoundError
		markerErr     *errors.MarkerNotFoundError
		validationErr *errors.ValidationError
		generationErr *errors.GenerationError
	)

	switch {
	case stderrors.As(err, &restaurantErr):
		SendError(c, http.StatusNotFound, ErrorCodeRestaurantNotFound,
			fmt.Sprintf("Restaurant '%d' not found", restaurantErr.RestaurantID))
	case stderrors.As(err, &sessionErr):
		SendError(c, http.StatusNotFound, ErrorCodeSessionNotFound,
			"Session '"+sessionErr.SessionID+"' not found")
	case stderrors.As(err, &jobErr):
		SendError(c, http.StatusNotFound, ErrorCodeJobNotFound,
			"Job '"+jobErr.JobID+"' not found")
	case stderrors.As(err, &markerErr):
		SendError(c, http.StatusNotFound, ErrorCodeMarkerNotFound,
			fmt.Sprintf("No marker for restaurant '%d'", markerErr.RestaurantID))
	case stderrors.As(err, &validationErr):
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, validationErr.Message,
			ErrorDetail{Field: validationErr.Field, Message: validationErr.Message, Code: string(errors.KindValidation)})
	case stderrors.As(err, &generationErr):
		SendError(c, http.StatusServiceUnavailable, ErrorCodeGenerationFailed, generationErr.Message)
	case stderrors.Is(err, errors.ErrMapUnavailable):
		SendError(c, http.StatusServiceUnavailable, ErrorCodeMapUnavailable, "Map is unavailable")
	default:
		SendInternalError(c, "request", err)
	}
}
