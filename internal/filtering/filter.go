// Package filtering reduces the restaurant collection to the visible subset
// and implements the value-semantics operations on model.FilterState.
package filtering

import (
	"strings"

	"github.com/gcbaptista/matjibmap/model"
)

// Filter returns the restaurants matching state and query, in input order.
//
// A restaurant is kept when its category is selected (or none is), it has
// every selected feature, and its name contains query ignoring case. A
// query that is blank after trimming matches every name; otherwise it is
// matched as given, surrounding whitespace included. Price, rating and distance are not applied here; see FilterStrict.
func Filter(restaurants []model.Restaurant, state model.FilterState, query string) []model.Restaurant {
	query = normalizeQuery(query)

	out := make([]model.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if matches(r, state, query) {
			out = append(out, r)
		}
	}
	return out
}

// FilterStrict is Filter plus the slider thresholds: price tier within the
// range, rating at least MinRating, and distance at most MaxDistance.
// Restaurants whose distance string cannot be parsed are not excluded by
// the distance threshold.
func FilterStrict(restaurants []model.Restaurant, state model.FilterState, query string) []model.Restaurant {
	query = normalizeQuery(query)

	out := make([]model.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if matches(r, state, query) && withinThresholds(r, state) {
			out = append(out, r)
		}
	}
	return out
}

// Func is the signature shared by Filter and FilterStrict.
type Func func(restaurants []model.Restaurant, state model.FilterState, query string) []model.Restaurant

// Select returns FilterStrict when strict is set, Filter otherwise.
func Select(strict bool) Func {
	if strict {
		return FilterStrict
	}
	return Filter
}

// normalizeQuery lowercases query, or returns "" when it is blank
func normalizeQuery(query string) string {
	if strings.TrimSpace(query) == "" {
		return ""
	}
	return strings.ToLower(query)
}

// matches expects query to be already normalized
func matches(r model.Restaurant, state model.FilterState, query string) bool {
	if len(state.Categories) > 0 && !containsCategory(state.Categories, r.Category) {
		return false
	}

	for _, f := range state.Features {
		if !r.HasFeature(f) {
			return false
		}
	}

	if query != "" && !strings.Contains(strings.ToLower(r.Name), query) {
		return false
	}

	return true
}

func withinThresholds(r model.Restaurant, state model.FilterState) bool {
	if r.Price < state.Price.Low() || r.Price > state.Price.High() {
		return false
	}
	if r.Rating < state.MinRating {
		return false
	}
	if km, ok := r.DistanceKm(); ok && km > state.MaxDistance {
		return false
	}
	return true
}

func containsCategory(categories []model.Category, c model.Category) bool {
	for _, have := range categories {
		if have == c {
			return true
		}
	}
	return false
}
