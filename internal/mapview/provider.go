// Package mapview keeps a map widget's markers and info overlays in step
// with the visible restaurants. The widget itself sits behind Provider so
// that the adapter never touches a vendor SDK directly.
package mapview

import (
	"context"
)

// LatLng is a geographic position.
type LatLng struct {
	Lat float64 `json:"lat" koanf:"lat" validate:"latitude"`
	Lng float64 `json:"lng" koanf:"lng" validate:"longitude"`
}

// Bounds is the rectangle the map may show.
type Bounds struct {
	SouthWest LatLng `json:"south_west" koanf:"south_west"`
	NorthEast LatLng `json:"north_east" koanf:"north_east"`
}

// Point is a pixel offset.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a pixel size.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MapOptions configures a new map widget.
type MapOptions struct {
	Center LatLng `json:"center"`
	Zoom   int    `json:"zoom"`
	Bounds Bounds `json:"bounds"`
}

// MarkerOptions configures a marker with custom HTML content.
type MarkerOptions struct {
	Position LatLng
	IconHTML string
	Size     Size
	Anchor   Point
	ZIndex   int
}

// OverlayOptions configures an info overlay.
type OverlayOptions struct {
	ContentHTML string
	MaxWidth    int
	PixelOffset Point
}

// Handle identifies an object created by a Provider.
type Handle string

// EventClick is the marker click event name.
const EventClick = "click"

// Provider is the capability set the adapter needs from a map widget.
// Objects are referenced by Handle; removing an unknown handle is a no-op.
type Provider interface {
	// Load makes the widget library available. It is called at most once.
	Load(ctx context.Context) error

	NewMap(opts MapOptions) (Handle, error)
	SetCenter(m Handle, center LatLng)
	SetZoom(m Handle, zoom int)

	NewMarker(m Handle, opts MarkerOptions) (Handle, error)
	RemoveMarker(marker Handle)

	NewOverlay(opts OverlayOptions) (Handle, error)
	OpenOverlay(m Handle, overlay Handle, anchor Handle)
	CloseOverlay(overlay Handle)
	OverlayOpen(overlay Handle) bool
	RemoveOverlay(overlay Handle)

	// AddListener subscribes fn to an event on target.
	AddListener(target Handle, event string, fn func())
	// ClearListeners drops every listener registered on target.
	ClearListeners(target Handle)
	// Trigger fires an event on target as if the user caused it.
	Trigger(target Handle, event string)
}
