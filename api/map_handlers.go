package api

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/matjibmap/internal/errors"
	"github.com/gcbaptista/matjibmap/internal/mapview"
	"github.com/gcbaptista/matjibmap/internal/session"
	"github.com/gcbaptista/matjibmap/model"
)

const mapUnavailableMessage = "Map is unavailable; the list view keeps working"

type mapResponse struct {
	Available bool                 `json:"available"`
	Status    mapview.Status       `json:"status"`
	Message   string               `json:"message,omitempty"`
	Selected  *model.Restaurant    `json:"selected,omitempty"`
	Markers   []mapview.MarkerView `json:"markers"`
}

func mapResponseOf(s *session.Session) mapResponse {
	adapter := s.Map()
	resp := mapResponse{
		Available: adapter.Available(),
		Status:    adapter.Status(),
		Markers:   adapter.Markers(),
	}
	if r, ok := adapter.Selected(); ok {
		resp.Selected = &r
	}
	if adapter.Status() == mapview.StatusUnavailable {
		resp.Message = mapUnavailableMessage
	}
	return resp
}

// sendMapResult answers 200 for an unavailable map so clients degrade to the
// list view; other errors use the standard envelope.
func sendMapResult(c *gin.Context, s *session.Session, err error) {
	if err != nil && !stderrors.Is(err, errors.ErrMapUnavailable) {
		SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapResponseOf(s))
}

// InitMapHandler loads the map widget once and draws the visible restaurants.
func (api *API) InitMapHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}
	sendMapResult(c, s, s.InitMap(c.Request.Context()))
}

// GetMarkersHandler describes the live markers.
func (api *API) GetMarkersHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, mapResponseOf(s))
}

// ClickMarkerHandler clicks the marker of a restaurant.
func (api *API) ClickMarkerHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}

	id, result := ParseRestaurantID("restaurantId", c.Param("restaurantId"))
	if result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}
	sendMapResult(c, s, s.Map().Click(id))
}

// ClearSelectionHandler dismisses the selected restaurant.
func (api *API) ClearSelectionHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}
	s.Map().ClearSelection()
	c.JSON(http.StatusOK, mapResponseOf(s))
}
