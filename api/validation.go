// Package api provides validation utilities for API request handling.
package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gcbaptista/matjibmap/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateSessionID validates a session id path parameter
func ValidateSessionID(sessionID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if sessionID == "" {
		result.AddError("sessionId", "Session ID is required")
		return result
	}

	if strings.TrimSpace(sessionID) != sessionID {
		result.AddError("sessionId", "Session ID cannot have leading or trailing whitespace")
	}

	return result
}

// ParseRestaurantID parses a restaurant id path parameter
func ParseRestaurantID(field, raw string) (int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		result.AddError(field, fmt.Sprintf("'%s' is not a valid restaurant ID", raw))
		return 0, result
	}
	return id, result
}

// ValidateCategories checks every value against the category vocabulary
func ValidateCategories(values []string) ([]model.Category, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	out := make([]model.Category, 0, len(values))
	for _, v := range values {
		c := model.Category(v)
		if !c.Valid() {
			result.AddError("category", fmt.Sprintf("unknown category '%s'", v))
			continue
		}
		out = append(out, c)
	}
	return out, result
}

// ValidateFeatures checks every value against the feature vocabulary
func ValidateFeatures(values []string) ([]model.Feature, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	out := make([]model.Feature, 0, len(values))
	for _, v := range values {
		f := model.Feature(v)
		if !f.Valid() {
			result.AddError("feature", fmt.Sprintf("unknown feature '%s'", v))
			continue
		}
		out = append(out, f)
	}
	return out, result
}

// ValidatePriceRange checks that both tiers are in 1..4. An inverted range
// is accepted as given.
func ValidatePriceRange(r model.PriceRange) *ValidationResult {
	result := &ValidationResult{Valid: true}

	for i, tier := range r {
		if tier < model.MinPriceTier || tier > model.MaxPriceTier {
			result.AddError(fmt.Sprintf("price[%d]", i),
				fmt.Sprintf("price tier must be between %d and %d", model.MinPriceTier, model.MaxPriceTier))
		}
	}
	return result
}

// ValidateRating checks a minimum rating
func ValidateRating(rating float64) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if rating < 0 || rating > 5 {
		result.AddError("rating", "rating must be between 0 and 5")
	}
	return result
}

// ValidateDistance checks a maximum distance in kilometres
func ValidateDistance(km float64) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if km < 0 {
		result.AddError("distance", "distance cannot be negative")
	}
	return result
}

// merge folds the errors of others into vr
func (vr *ValidationResult) merge(others ...*ValidationResult) *ValidationResult {
	for _, o := range others {
		for _, e := range o.Errors {
			vr.AddError(e.Field, e.Message)
		}
	}
	return vr
}
