package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/matjibmap/internal/fixtures"
	"github.com/gcbaptista/matjibmap/model"
)

func loadRestaurants(t *testing.T) []model.Restaurant {
	t.Helper()
	ds, err := fixtures.Load()
	require.NoError(t, err)
	return ds.Restaurants
}

func ids(restaurants []model.Restaurant) []int {
	out := make([]int, len(restaurants))
	for i, r := range restaurants {
		out[i] = r.ID
	}
	return out
}

func TestFilter_NoRestrictionsReturnsEverythingInOrder(t *testing.T) {
	restaurants := loadRestaurants(t)

	states := []model.FilterState{
		model.ResetFilterState(),
		{Price: model.PriceRange{4, 1}, MinRating: 5, MaxDistance: 0},
		{Categories: nil, Features: nil, MinRating: 4.9},
	}

	for _, state := range states {
		got := Filter(restaurants, state, "")
		assert.Equal(t, ids(restaurants), ids(got))
	}
}

func TestFilter_Categories(t *testing.T) {
	restaurants := loadRestaurants(t)

	tests := []struct {
		name       string
		categories []model.Category
		wantIDs    []int
	}{
		{"korean only", []model.Category{model.CategoryKorean}, []int{1, 3, 5}},
		{"korean and japanese", []model.Category{model.CategoryKorean, model.CategoryJapanese}, []int{1, 2, 3, 5}},
		{"western", []model.Category{model.CategoryWestern}, []int{4}},
		{"cafe and snack", []model.Category{model.CategoryCafe, model.CategorySnack}, []int{7, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := model.ResetFilterState()
			state.Categories = tt.categories

			got := Filter(restaurants, state, "")
			assert.Equal(t, tt.wantIDs, ids(got))
			for _, r := range got {
				assert.Contains(t, tt.categories, r.Category)
			}
		})
	}
}

func TestFilter_FeaturesAreConjunctive(t *testing.T) {
	both := model.Restaurant{ID: 1, Name: "둘 다", Category: model.CategoryKorean,
		Features: []model.Feature{model.FeatureReservation, model.FeatureParking}}
	reservationOnly := model.Restaurant{ID: 2, Name: "예약만", Category: model.CategoryKorean,
		Features: []model.Feature{model.FeatureReservation}}
	none := model.Restaurant{ID: 3, Name: "없음", Category: model.CategoryKorean}

	state := model.ResetFilterState()
	state.Features = []model.Feature{model.FeatureReservation, model.FeatureParking}

	got := Filter([]model.Restaurant{both, reservationOnly, none}, state, "")
	assert.Equal(t, []int{1}, ids(got))
}

func TestFilter_InitialStateOnFixtures(t *testing.T) {
	restaurants := loadRestaurants(t)

	got := Filter(restaurants, model.InitialFilterState(), "")
	assert.Equal(t, []int{1, 2, 3, 5}, ids(got))
}

func TestFilter_Query(t *testing.T) {
	restaurants := loadRestaurants(t)
	state := model.ResetFilterState()

	tests := []struct {
		name    string
		query   string
		wantIDs []int
	}{
		{"substring of name", "토스카나", []int{4}},
		{"surrounding whitespace is kept", "토스카나 ", []int{}},
		{"inner whitespace is part of the name", "나주 토스카나", []int{4}},
		{"latin query against korean names", "SUSHI", []int{}},
		{"matches several", "혁신", []int{1, 2, 5, 7}},
		{"whitespace only means no query", "   ", ids(restaurants)},
		{"location text is not searched", "빛가람동", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(restaurants, state, tt.query)
			assert.Equal(t, tt.wantIDs, ids(got))
		})
	}
}

func TestFilter_QueryIsCaseInsensitive(t *testing.T) {
	restaurants := []model.Restaurant{
		{ID: 1, Name: "Cafe Lumiere", Category: model.CategoryCafe},
		{ID: 2, Name: "나주 토스카나", Category: model.CategoryWestern},
	}

	got := Filter(restaurants, model.ResetFilterState(), "LUMI")
	assert.Equal(t, []int{1}, ids(got))
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	restaurants := loadRestaurants(t)
	before := ids(restaurants)

	_ = Filter(restaurants, model.InitialFilterState(), "혁신")
	assert.Equal(t, before, ids(restaurants))
}

func TestFilter_EmptyInput(t *testing.T) {
	got := Filter(nil, model.InitialFilterState(), "갈비")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterStrict_AppliesThresholds(t *testing.T) {
	restaurants := loadRestaurants(t)

	tests := []struct {
		name    string
		mutate  func(*model.FilterState)
		wantIDs []int
	}{
		{"defaults exclude nothing within 5km", func(*model.FilterState) {}, ids(restaurants)},
		{"price range 3-4", func(s *model.FilterState) { s.Price = model.PriceRange{3, 4} }, []int{2, 4}},
		{"minimum rating 4.7", func(s *model.FilterState) { s.MinRating = 4.7 }, []int{1, 2, 4}},
		{"max distance 1km", func(s *model.FilterState) { s.MaxDistance = 1 }, []int{1, 2, 3, 7}},
		{"inverted price range matches nothing", func(s *model.FilterState) { s.Price = model.PriceRange{4, 1} }, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := model.ResetFilterState()
			tt.mutate(&state)
			got := FilterStrict(restaurants, state, "")
			assert.Equal(t, tt.wantIDs, ids(got))
		})
	}
}

func TestFilterStrict_UnparseableDistanceIsKept(t *testing.T) {
	restaurants := []model.Restaurant{
		{ID: 1, Name: "거리 미상", Category: model.CategoryKorean, Price: 2, Distance: "알 수 없음"},
	}
	state := model.ResetFilterState()
	state.MaxDistance = 0.1

	got := FilterStrict(restaurants, state, "")
	assert.Equal(t, []int{1}, ids(got))
}

func TestSelect(t *testing.T) {
	restaurants := loadRestaurants(t)
	state := model.ResetFilterState()
	state.MinRating = 4.8

	assert.Len(t, Select(false)(restaurants, state, ""), len(restaurants))
	assert.Equal(t, []int{1, 2}, ids(Select(true)(restaurants, state, "")))
}
