package filtering

import (
	"github.com/gcbaptista/matjibmap/model"
)

// Every operation below takes a state by value and returns a new one; the
// input's slices are never modified.

// ToggleCategory adds c when absent and removes it when present.
func ToggleCategory(state model.FilterState, c model.Category) model.FilterState {
	next := state.Clone()
	if i := indexOf(next.Categories, c); i >= 0 {
		next.Categories = append(next.Categories[:i], next.Categories[i+1:]...)
	} else {
		next.Categories = append(next.Categories, c)
	}
	return next
}

// ToggleFeature adds f when absent and removes it when present.
func ToggleFeature(state model.FilterState, f model.Feature) model.FilterState {
	next := state.Clone()
	if i := indexOf(next.Features, f); i >= 0 {
		next.Features = append(next.Features[:i], next.Features[i+1:]...)
	} else {
		next.Features = append(next.Features, f)
	}
	return next
}

// SetPriceRange replaces the price pair as given, without ordering checks.
func SetPriceRange(state model.FilterState, r model.PriceRange) model.FilterState {
	next := state.Clone()
	next.Price = r
	return next
}

// SetMinRating replaces the minimum rating.
func SetMinRating(state model.FilterState, rating float64) model.FilterState {
	next := state.Clone()
	next.MinRating = rating
	return next
}

// SetMaxDistance replaces the maximum distance in km.
func SetMaxDistance(state model.FilterState, km float64) model.FilterState {
	next := state.Clone()
	next.MaxDistance = km
	return next
}

// Reset returns the reset state regardless of the current one.
func Reset(model.FilterState) model.FilterState {
	return model.ResetFilterState()
}

func indexOf[T comparable](items []T, v T) int {
	for i, item := range items {
		if item == v {
			return i
		}
	}
	return -1
}
