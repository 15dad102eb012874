package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/matjibmap/internal/session"
	"github.com/gcbaptista/matjibmap/model"
	"github.com/gcbaptista/matjibmap/services"
)

type filtersResponse struct {
	Filters model.FilterState `json:"filters"`
	Query   string            `json:"query"`
	Total   int               `json:"total"`
}

type priceRangeRequest struct {
	Price *model.PriceRange `json:"price" binding:"required"`
}

type ratingRequest struct {
	Rating *float64 `json:"rating" binding:"required"`
}

type distanceRequest struct {
	Distance *float64 `json:"distance" binding:"required"`
}

type queryRequest struct {
	Query string `json:"query"`
}

// sessionFrom resolves :sessionId or writes the error response.
func (api *API) sessionFrom(c *gin.Context) (*session.Session, bool) {
	sessionID := c.Param("sessionId")
	if result := ValidateSessionID(sessionID); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return nil, false
	}

	s, err := api.sessions.Get(sessionID)
	if err != nil {
		SendDomainError(c, err)
		return nil, false
	}
	return s, true
}

func (api *API) sendFilters(c *gin.Context, s *session.Session, filters model.FilterState) {
	c.JSON(http.StatusOK, filtersResponse{
		Filters: filters,
		Query:   s.Query(),
		Total:   len(s.Visible()),
	})
}

// CreateSessionHandler starts a session with the initial filter state.
func (api *API) CreateSessionHandler(c *gin.Context) {
	s := api.sessions.Create()
	c.JSON(http.StatusCreated, s.Snapshot())
}

// GetSessionHandler returns a session snapshot.
func (api *API) GetSessionHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// DeleteSessionHandler ends a session and releases its map widget.
func (api *API) DeleteSessionHandler(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if err := api.sessions.Delete(sessionID); err != nil {
		SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session '" + sessionID + "' deleted"})
}

// ListSessionRestaurantsHandler returns the restaurants visible in a session.
func (api *API) ListSessionRestaurantsHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}

	restaurants := s.Visible()
	c.JSON(http.StatusOK, services.RestaurantList{
		Restaurants: restaurants,
		Total:       len(restaurants),
		Query:       s.Query(),
	})
}

// GetFiltersHandler returns the filter state and query of a session.
func (api *API) GetFiltersHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}
	api.sendFilters(c, s, s.Filters())
}

// ToggleCategoryHandler adds or removes a category.
func (api *API) ToggleCategoryHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}

	categories, result := ValidateCategories([]string{c.Param("category")})
	if result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}
	api.sendFilters(c, s, s.ToggleCategory(categories[0]))
}

// ToggleFeatureHandler adds or removes a feature.
func (api *API) ToggleFeatureHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}

	features, result := ValidateFeatures([]string{c.Param("feature")})
	if result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}
	api.sendFilters(c, s, s.ToggleFeature(features[0]))
}

// SetPriceRangeHandler replaces the price range.
// Request Body: {"price": [low, high]}
func (api *API) SetPriceRangeHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}

	var req priceRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if result := ValidatePriceRange(*req.Price); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}
	api.sendFilters(c, s, s.SetPriceRange(*req.Price))
}

// SetMinRatingHandler replaces the minimum rating.
// Request Body: {"rating": 4.5}
func (api *API) SetMinRatingHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}

	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if result := ValidateRating(*req.Rating); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}
	api.sendFilters(c, s, s.SetMinRating(*req.Rating))
}

// SetMaxDistanceHandler replaces the maximum distance in kilometres.
// Request Body: {"distance": 2}
func (api *API) SetMaxDistanceHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}

	var req distanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if result := ValidateDistance(*req.Distance); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}
	api.sendFilters(c, s, s.SetMaxDistance(*req.Distance))
}

// SetQueryHandler replaces the search query. An empty query shows everything.
// Request Body: {"query": "..."}
func (api *API) SetQueryHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}

	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	s.SetQuery(req.Query)
	api.sendFilters(c, s, s.Filters())
}

// ResetFiltersHandler applies the reset filter state.
func (api *API) ResetFiltersHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}
	api.sendFilters(c, s, s.ResetFilters())
}

// ToggleBookmarkHandler flips the bookmark on a restaurant.
func (api *API) ToggleBookmarkHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}

	id, result := ParseRestaurantID("restaurantId", c.Param("restaurantId"))
	if result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	bookmarked, err := s.ToggleBookmark(id)
	if err != nil {
		SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"restaurant_id": id,
		"bookmarked":    bookmarked,
	})
}

// ListBookmarksHandler returns the bookmarked restaurants in catalog order.
func (api *API) ListBookmarksHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}

	restaurants := s.Bookmarks()
	c.JSON(http.StatusOK, services.RestaurantList{
		Restaurants: restaurants,
		Total:       len(restaurants),
	})
}
