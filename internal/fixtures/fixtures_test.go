package fixtures

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/matjibmap/model"
)

func TestLoad_EmbeddedFixtures(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	require.Len(t, ds.Restaurants, 8)
	first := ds.Restaurants[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "나주혁신점 맛있는 갈비찜", first.Name)
	assert.Equal(t, model.CategoryKorean, first.Category)
	assert.Equal(t, model.PriceTier(2), first.Price)
	assert.Equal(t, 342, first.ReviewCount)
	assert.Len(t, first.ReviewTexts, 3)
	assert.InDelta(t, 35.0189, first.Coordinates.Lat, 1e-9)

	require.Len(t, ds.Profiles, 1)
	assert.Equal(t, 1, ds.Profiles[0].RestaurantID)
	assert.Len(t, ds.Profiles[0].Menu, 4)

	assert.Len(t, ds.Home.Featured, 4)
	assert.Len(t, ds.Home.FoodCategories, 6)
	assert.Len(t, ds.Home.Personalized, 3)
}

func TestLoad_EveryFeatureInVocabulary(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	for _, r := range ds.Restaurants {
		for _, f := range r.Features {
			assert.True(t, f.Valid(), "restaurant %d has unknown feature %q", r.ID, f)
		}
	}
}

const validHome = `{"featured": [], "food_categories": [], "personalized": []}`

func TestLoadFS_RejectsUnknownFeature(t *testing.T) {
	fsys := fstest.MapFS{
		restaurantsFile: {Data: []byte(`[{"id": 1, "name": "테스트 식당", "type": "한식", "rating": 4.0,
			"price": "$", "distance": "1km", "coordinates": {"lat": 35.0, "lng": 126.0},
			"features": ["반려동물 동반 불가"]}]`)},
		profilesFile: {Data: []byte(`[]`)},
		homeFile:     {Data: []byte(validHome)},
	}

	_, err := LoadFS(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feature")
}

func TestLoadFS_RejectsDuplicateIDs(t *testing.T) {
	entry := `{"id": 1, "name": "테스트 식당", "type": "한식", "rating": 4.0, "price": "$",
		"distance": "1km", "coordinates": {"lat": 35.0, "lng": 126.0}, "features": []}`
	fsys := fstest.MapFS{
		restaurantsFile: {Data: []byte("[" + entry + "," + entry + "]")},
		profilesFile:    {Data: []byte(`[]`)},
		homeFile:        {Data: []byte(validHome)},
	}

	_, err := LoadFS(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestLoadFS_RejectsOrphanProfile(t *testing.T) {
	fsys := fstest.MapFS{
		restaurantsFile: {Data: []byte(`[]`)},
		profilesFile:    {Data: []byte(`[{"restaurant_id": 9}]`)},
		homeFile:        {Data: []byte(validHome)},
	}

	_, err := LoadFS(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown restaurant id 9")
}

func TestLoadFS_MissingFile(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), restaurantsFile)
}
