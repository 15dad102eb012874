package mapview

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gcbaptista/matjibmap/internal/errors"
	"github.com/gcbaptista/matjibmap/internal/logging"
	"github.com/gcbaptista/matjibmap/internal/metrics"
	"github.com/gcbaptista/matjibmap/model"
)

// SelectedZoom is the zoom level used when centering on the selection.
const SelectedZoom = 14

// Status is the lifecycle state of an Adapter.
type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusReady         Status = "ready"
	StatusUnavailable   Status = "unavailable"
)

// MarkerView describes one live marker.
type MarkerView struct {
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name"`
	Position     LatLng `json:"position"`
	Selected     bool   `json:"selected"`
	OverlayOpen  bool   `json:"overlay_open"`
	IconHTML     string `json:"icon_html"`
	OverlayHTML  string `json:"overlay_html"`
}

type entry struct {
	restaurant  model.Restaurant
	marker      Handle
	overlay     Handle
	iconHTML    string
	overlayHTML string
}

// Adapter owns one map widget and its markers. It is safe for concurrent use.
type Adapter struct {
	mu       sync.Mutex
	provider Provider
	opts     MapOptions
	log      zerolog.Logger

	attempted bool
	status    Status
	mapHandle Handle

	restaurants []model.Restaurant
	entries     []entry
	selected    *model.Restaurant
	openID      int
}

// NewAdapter creates an adapter that has not loaded its widget yet.
func NewAdapter(provider Provider, opts MapOptions) *Adapter {
	return &Adapter{
		provider: provider,
		opts:     opts,
		log:      logging.With("mapview"),
		status:   StatusUninitialized,
	}
}

// Init loads the widget and creates the map. Only the first call does
// anything; a failure leaves the adapter unavailable for good and every
// other operation becomes a no-op.
func (a *Adapter) Init(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.attempted {
		if a.status == StatusUnavailable {
			return errors.NewMapUnavailableError("map widget failed to load earlier", nil)
		}
		return nil
	}
	a.attempted = true

	if err := a.provider.Load(ctx); err != nil {
		return a.failLocked("load map script", err)
	}

	m, err := a.provider.NewMap(a.opts)
	if err != nil {
		return a.failLocked("create map", err)
	}

	a.mapHandle = m
	a.status = StatusReady
	a.rebuildLocked()
	a.log.Debug().Int("markers", len(a.entries)).Msg("map initialized")
	return nil
}

func (a *Adapter) failLocked(step string, err error) error {
	a.status = StatusUnavailable
	metrics.MapLoadFailures.Inc()
	a.log.Warn().Err(err).Str("step", step).Msg("map unavailable")
	return errors.NewMapUnavailableError(step, err)
}

// Status reports the lifecycle state.
func (a *Adapter) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// Available reports whether the widget loaded.
func (a *Adapter) Available() bool {
	return a.Status() == StatusReady
}

// Sync replaces the marker set with one marker per restaurant. A selection
// or open overlay whose restaurant is no longer present is dropped.
func (a *Adapter) Sync(restaurants []model.Restaurant) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.status == StatusUnavailable {
		return
	}

	a.restaurants = append(make([]model.Restaurant, 0, len(restaurants)), restaurants...)
	if a.selected != nil && !a.containsLocked(a.selected.ID) {
		a.selected = nil
	}
	if a.openID != 0 && !a.containsLocked(a.openID) {
		a.openID = 0
	}

	if a.status == StatusReady {
		a.rebuildLocked()
	}
}

// Select marks restaurantID as selected and centers on it. It fails with
// a map-unavailable error until the map is ready.
func (a *Adapter) Select(restaurantID int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.status != StatusReady {
		return errors.NewMapUnavailableError("select", nil)
	}
	for _, r := range a.restaurants {
		if r.ID == restaurantID {
			selected := r
			a.selected = &selected
			a.rebuildLocked()
			return nil
		}
	}
	return errors.NewMarkerNotFoundError(restaurantID)
}

// ClearSelection removes the selection and closes the open overlay.
func (a *Adapter) ClearSelection() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.selected == nil && a.openID == 0 {
		return
	}
	a.selected = nil
	a.openID = 0
	if a.status == StatusReady {
		a.rebuildLocked()
	}
}

// Selected returns the selected restaurant, if any.
func (a *Adapter) Selected() (model.Restaurant, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.selected == nil {
		return model.Restaurant{}, false
	}
	return *a.selected, true
}

// Click simulates a user click on the marker of restaurantID. The event is
// routed through the provider so the marker's own listener handles it.
func (a *Adapter) Click(restaurantID int) error {
	a.mu.Lock()
	if a.status != StatusReady {
		a.mu.Unlock()
		return errors.NewMapUnavailableError("click", nil)
	}
	var marker Handle
	for _, e := range a.entries {
		if e.restaurant.ID == restaurantID {
			marker = e.marker
			break
		}
	}
	a.mu.Unlock()

	if marker == "" {
		return errors.NewMarkerNotFoundError(restaurantID)
	}
	a.provider.Trigger(marker, EventClick)
	return nil
}

// Markers describes the live markers in display order.
func (a *Adapter) Markers() []MarkerView {
	a.mu.Lock()
	defer a.mu.Unlock()

	views := make([]MarkerView, 0, len(a.entries))
	for _, e := range a.entries {
		views = append(views, MarkerView{
			RestaurantID: e.restaurant.ID,
			Name:         e.restaurant.Name,
			Position:     LatLng{Lat: e.restaurant.Coordinates.Lat, Lng: e.restaurant.Coordinates.Lng},
			Selected:     a.selected != nil && a.selected.ID == e.restaurant.ID,
			OverlayOpen:  a.provider.OverlayOpen(e.overlay),
			IconHTML:     e.iconHTML,
			OverlayHTML:  e.overlayHTML,
		})
	}
	return views
}

// Dispose removes every marker and overlay. The adapter keeps its status.
func (a *Adapter) Dispose() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.disposeLocked()
	a.restaurants = nil
	a.selected = nil
	a.openID = 0
}

// handleClick runs from a marker's click listener: close every other
// overlay, toggle this one, and select the restaurant.
func (a *Adapter) handleClick(restaurantID int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.status != StatusReady {
		return
	}

	var target *entry
	for i := range a.entries {
		e := &a.entries[i]
		if e.restaurant.ID == restaurantID {
			target = e
			continue
		}
		if a.provider.OverlayOpen(e.overlay) {
			a.provider.CloseOverlay(e.overlay)
		}
	}
	if target == nil {
		return
	}

	if a.provider.OverlayOpen(target.overlay) {
		a.provider.CloseOverlay(target.overlay)
		a.openID = 0
	} else {
		a.provider.OpenOverlay(a.mapHandle, target.overlay, target.marker)
		a.openID = restaurantID
	}

	if a.selected != nil && a.selected.ID == restaurantID {
		return
	}
	selected := target.restaurant
	a.selected = &selected
	a.rebuildLocked()
}

// rebuildLocked disposes every marker, listener and overlay, then recreates
// them for a.restaurants so the selected one is highlighted.
func (a *Adapter) rebuildLocked() {
	a.disposeLocked()

	entries := make([]entry, 0, len(a.restaurants))
	for _, r := range a.restaurants {
		e, err := a.createLocked(r)
		if err != nil {
			a.log.Error().Err(err).Int("restaurant_id", r.ID).Msg("failed to create marker")
			continue
		}
		entries = append(entries, e)
	}
	a.entries = entries
	metrics.MapMarkersLive.Add(float64(len(entries)))

	for _, e := range a.entries {
		if e.restaurant.ID == a.openID {
			a.provider.OpenOverlay(a.mapHandle, e.overlay, e.marker)
		}
	}

	if a.selected != nil {
		a.provider.SetCenter(a.mapHandle, LatLng{Lat: a.selected.Coordinates.Lat, Lng: a.selected.Coordinates.Lng})
		a.provider.SetZoom(a.mapHandle, SelectedZoom)
	}
}

func (a *Adapter) createLocked(r model.Restaurant) (entry, error) {
	selected := a.selected != nil && a.selected.ID == r.ID

	iconHTML, err := MarkerHTML(r, selected)
	if err != nil {
		return entry{}, fmt.Errorf("render marker: %w", err)
	}
	overlayHTML, err := OverlayHTML(r)
	if err != nil {
		return entry{}, fmt.Errorf("render overlay: %w", err)
	}

	marker, err := a.provider.NewMarker(a.mapHandle, MarkerOptions{
		Position: LatLng{Lat: r.Coordinates.Lat, Lng: r.Coordinates.Lng},
		IconHTML: iconHTML,
		Size:     Size{Width: markerSize, Height: markerSize},
		Anchor:   Point{X: markerSize / 2, Y: markerSize / 2},
		ZIndex:   markerZIndex,
	})
	if err != nil {
		return entry{}, err
	}

	overlay, err := a.provider.NewOverlay(OverlayOptions{
		ContentHTML: overlayHTML,
		MaxWidth:    overlayWidth,
		PixelOffset: Point{X: 0, Y: -5},
	})
	if err != nil {
		a.provider.RemoveMarker(marker)
		return entry{}, err
	}

	id := r.ID
	a.provider.AddListener(marker, EventClick, func() { a.handleClick(id) })

	return entry{
		restaurant:  r,
		marker:      marker,
		overlay:     overlay,
		iconHTML:    iconHTML,
		overlayHTML: overlayHTML,
	}, nil
}

func (a *Adapter) disposeLocked() {
	for _, e := range a.entries {
		a.provider.ClearListeners(e.marker)
		a.provider.CloseOverlay(e.overlay)
		a.provider.RemoveOverlay(e.overlay)
		a.provider.RemoveMarker(e.marker)
	}
	metrics.MapMarkersLive.Sub(float64(len(a.entries)))
	a.entries = nil
}

func (a *Adapter) containsLocked(restaurantID int) bool {
	for _, r := range a.restaurants {
		if r.ID == restaurantID {
			return true
		}
	}
	return false
}
