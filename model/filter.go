package model

// PriceRange is an ordered [low, high] pair of price tiers.
// The pair is stored as given; low <= high is not enforced.
type PriceRange [2]PriceTier

// Low returns the lower bound.
func (r PriceRange) Low() PriceTier { return r[0] }

// High returns the upper bound.
func (r PriceRange) High() PriceTier { return r[1] }

// FilterState holds the active filter selections of a list or map view.
//
// Price, MinRating and MaxDistance drive the sliders. The default filter
// does not apply them; only the strict variant does.
type FilterState struct {
	Categories  []Category `json:"categories"`
	Price       PriceRange `json:"price"`
	MinRating   float64    `json:"rating"`
	MaxDistance float64    `json:"distance"`
	Features    []Feature  `json:"features"`
}

// InitialFilterState is the state a fresh view starts with.
func InitialFilterState() FilterState {
	return FilterState{
		Categories:  []Category{CategoryKorean, CategoryJapanese},
		Price:       PriceRange{1, 4},
		MinRating:   0,
		MaxDistance: 5,
		Features:    []Feature{FeatureReservation, FeatureParking},
	}
}

// ResetFilterState is the state produced by the "초기화" action. It differs
// from InitialFilterState: no category or feature is preselected.
func ResetFilterState() FilterState {
	return FilterState{
		Categories:  []Category{},
		Price:       PriceRange{1, 4},
		MinRating:   0,
		MaxDistance: 5,
		Features:    []Feature{},
	}
}

// Clone returns a deep copy so callers can never alias another state's slices.
func (s FilterState) Clone() FilterState {
	out := s
	out.Categories = append(make([]Category, 0, len(s.Categories)), s.Categories...)
	out.Features = append(make([]Feature, 0, len(s.Features)), s.Features...)
	return out
}
