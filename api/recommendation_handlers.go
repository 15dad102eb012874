package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/matjibmap/model"
)

type recommendationRequest struct {
	Criteria string `json:"criteria"`
}

// RequestRecommendationHandler starts a recommendation over the restaurants
// visible in the session. A newer request supersedes any in flight.
// Request Body: {"criteria": "..."}
func (api *API) RequestRecommendationHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}

	var req recommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	jobID, err := s.RequestRecommendation(req.Criteria)
	if err != nil {
		SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":         "accepted",
		"job_id":         jobID,
		"recommendation": model.ViewOf(s.Recommendation()),
	})
}

// GetRecommendationHandler returns the recommendation state.
func (api *API) GetRecommendationHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, model.ViewOf(s.Recommendation()))
}

// ResetRecommendationHandler returns the recommendation to idle.
func (api *API) ResetRecommendationHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}
	s.ResetRecommendation()
	c.JSON(http.StatusOK, model.ViewOf(s.Recommendation()))
}
