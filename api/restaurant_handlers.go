package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/matjibmap/internal/filtering"
	"github.com/gcbaptista/matjibmap/internal/mapview"
	"github.com/gcbaptista/matjibmap/internal/preference"
	"github.com/gcbaptista/matjibmap/internal/region"
	"github.com/gcbaptista/matjibmap/model"
	"github.com/gcbaptista/matjibmap/services"
)

// ListRestaurantsHandler filters the catalog without a session.
// Query: q, category (repeatable), feature (repeatable), strict, and for
// strict mode price_min, price_max, rating, distance.
func (api *API) ListRestaurantsHandler(c *gin.Context) {
	state := model.ResetFilterState()
	query := c.Query("q")

	categories, catResult := ValidateCategories(c.QueryArray("category"))
	features, featResult := ValidateFeatures(c.QueryArray("feature"))
	result := (&ValidationResult{Valid: true}).merge(catResult, featResult)
	state.Categories = categories
	state.Features = features

	strict := api.config.Filter.StrictThresholds
	if raw := c.Query("strict"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			result.AddError("strict", "strict must be a boolean")
		}
		strict = parsed
	}

	if raw := c.Query("price_min"); raw != "" {
		tier, err := model.ParsePriceTier(raw)
		if err != nil {
			result.AddError("price_min", err.Error())
		}
		state.Price[0] = tier
	}
	if raw := c.Query("price_max"); raw != "" {
		tier, err := model.ParsePriceTier(raw)
		if err != nil {
			result.AddError("price_max", err.Error())
		}
		state.Price[1] = tier
	}
	result.merge(ValidatePriceRange(state.Price))

	if raw := c.Query("rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			result.AddError("rating", "rating must be a number")
		} else {
			result.merge(ValidateRating(v))
			state.MinRating = v
		}
	}
	if raw := c.Query("distance"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			result.AddError("distance", "distance must be a number")
		} else {
			result.merge(ValidateDistance(v))
			state.MaxDistance = v
		}
	}

	if result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	restaurants := filtering.Select(strict)(api.catalog.All(), state, query)
	c.JSON(http.StatusOK, services.RestaurantList{
		Restaurants: restaurants,
		Total:       len(restaurants),
		Query:       query,
	})
}

// GetRestaurantHandler returns one restaurant with its profile, when known.
func (api *API) GetRestaurantHandler(c *gin.Context) {
	id, result := ParseRestaurantID("id", c.Param("id"))
	if result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	detail, err := api.catalog.Detail(id)
	if err != nil {
		SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetHomeHandler returns the home page content.
func (api *API) GetHomeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.home)
}

// ListCategoriesHandler counts restaurants per category in vocabulary order.
func (api *API) ListCategoriesHandler(c *gin.Context) {
	counts := make(map[model.Category]int, len(model.Categories))
	for _, r := range api.catalog.All() {
		counts[r.Category]++
	}

	categories := make([]model.CategoryCount, 0, len(model.Categories))
	for _, cat := range model.Categories {
		categories = append(categories, model.CategoryCount{Name: cat, Count: counts[cat]})
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"total":      len(categories),
	})
}

// ListFeaturesHandler returns the feature vocabulary.
func (api *API) ListFeaturesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"features": model.Features,
		"total":    len(model.Features),
	})
}

// GetRegionsHandler resolves the cascading region selector.
// Query: province, city, district. A level is ignored when its parent is missing.
func (api *API) GetRegionsHandler(c *gin.Context) {
	var params region.Selection
	if err := c.ShouldBindQuery(&params); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Invalid query parameters: "+err.Error())
		return
	}

	var sel region.Selection
	if params.Province != "" {
		sel = sel.SelectProvince(params.Province)
		if params.City != "" {
			sel = sel.SelectCity(params.City)
			if params.District != "" {
				sel = sel.SelectDistrict(params.District)
			}
		}
	}

	c.JSON(http.StatusOK, api.regions.ViewOf(sel))
}

// ScorePreferencesHandler validates questionnaire answers and scores them.
// Request Body: preference.Preferences
func (api *API) ScorePreferencesHandler(c *gin.Context) {
	var prefs preference.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if err := prefs.Validate(); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"preferences": prefs,
		"match_score": prefs.MatchScore(),
	})
}

// GetMapConfigHandler returns what a browser needs to load the map widget.
func (api *API) GetMapConfigHandler(c *gin.Context) {
	m := api.config.Map
	c.JSON(http.StatusOK, gin.H{
		"script_url": mapview.ScriptURL(m.ScriptEndpoint, m.ClientID),
		"available":  m.ClientID != "",
		"center":     m.Center,
		"zoom":       m.Zoom,
		"bounds":     m.Bounds,
	})
}
