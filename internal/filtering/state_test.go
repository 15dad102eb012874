package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/matjibmap/model"
)

func TestToggleCategory(t *testing.T) {
	initial := model.InitialFilterState()

	added := ToggleCategory(initial, model.CategoryChinese)
	assert.Equal(t, []model.Category{model.CategoryKorean, model.CategoryJapanese, model.CategoryChinese}, added.Categories)

	removed := ToggleCategory(initial, model.CategoryKorean)
	assert.Equal(t, []model.Category{model.CategoryJapanese}, removed.Categories)

	// input untouched
	assert.Equal(t, []model.Category{model.CategoryKorean, model.CategoryJapanese}, initial.Categories)
}

func TestToggleCategory_TwiceRestoresMembership(t *testing.T) {
	initial := model.InitialFilterState()

	for _, c := range model.Categories {
		twice := ToggleCategory(ToggleCategory(initial, c), c)
		assert.ElementsMatch(t, initial.Categories, twice.Categories, "category %s", c)
	}
}

func TestToggleFeature(t *testing.T) {
	initial := model.InitialFilterState()

	removed := ToggleFeature(initial, model.FeatureParking)
	assert.Equal(t, []model.Feature{model.FeatureReservation}, removed.Features)

	added := ToggleFeature(removed, model.FeatureWifi)
	assert.Equal(t, []model.Feature{model.FeatureReservation, model.FeatureWifi}, added.Features)

	assert.Equal(t, []model.Feature{model.FeatureReservation, model.FeatureParking}, initial.Features)
}

func TestToggleFeature_TwiceRestoresMembership(t *testing.T) {
	initial := model.InitialFilterState()

	for _, f := range model.Features {
		twice := ToggleFeature(ToggleFeature(initial, f), f)
		assert.ElementsMatch(t, initial.Features, twice.Features, "feature %s", f)
	}
}

func TestToggle_LeavesOtherFieldsAlone(t *testing.T) {
	initial := model.InitialFilterState()

	next := ToggleFeature(ToggleCategory(initial, model.CategoryCafe), model.FeatureLateNight)
	assert.Equal(t, initial.Price, next.Price)
	assert.Equal(t, initial.MinRating, next.MinRating)
	assert.Equal(t, initial.MaxDistance, next.MaxDistance)
}

func TestSetters(t *testing.T) {
	initial := model.InitialFilterState()

	priced := SetPriceRange(initial, model.PriceRange{2, 3})
	assert.Equal(t, model.PriceRange{2, 3}, priced.Price)

	// stored as given, no reordering
	inverted := SetPriceRange(initial, model.PriceRange{4, 1})
	assert.Equal(t, model.PriceTier(4), inverted.Price.Low())
	assert.Equal(t, model.PriceTier(1), inverted.Price.High())

	rated := SetMinRating(initial, 4.5)
	assert.Equal(t, 4.5, rated.MinRating)

	near := SetMaxDistance(initial, 1.5)
	assert.Equal(t, 1.5, near.MaxDistance)

	assert.Equal(t, model.InitialFilterState(), initial)
}

func TestReset(t *testing.T) {
	want := model.FilterState{
		Categories:  []model.Category{},
		Price:       model.PriceRange{1, 4},
		MinRating:   0,
		MaxDistance: 5,
		Features:    []model.Feature{},
	}

	modified := SetMinRating(ToggleCategory(model.InitialFilterState(), model.CategoryCafe), 3)

	once := Reset(modified)
	assert.Equal(t, want, once)
	assert.Equal(t, once, Reset(once))
}
