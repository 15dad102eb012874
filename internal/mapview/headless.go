package mapview

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
)

// ErrMissingClientID is returned by HeadlessProvider.Load without a client id.
var ErrMissingClientID = stderrors.New("map client id is not configured")

type headlessMap struct {
	opts   MapOptions
	center LatLng
	zoom   int
}

type headlessMarker struct {
	mapHandle Handle
	opts      MarkerOptions
}

type headlessOverlay struct {
	opts   OverlayOptions
	open   bool
	anchor Handle
}

// HeadlessProvider is an in-memory Provider. The server uses it to track
// marker state on behalf of clients, and tests use it to inspect what the
// adapter created. Loading fails when no client id is configured, the same
// condition under which the vendor script cannot be fetched.
type HeadlessProvider struct {
	mu        sync.Mutex
	clientID  string
	loadErr   error
	loaded    bool
	next      int
	maps      map[Handle]*headlessMap
	markers   map[Handle]*headlessMarker
	overlays  map[Handle]*headlessOverlay
	listeners map[Handle]map[string][]func()
}

var _ Provider = (*HeadlessProvider)(nil)

// NewHeadlessProvider creates a provider for the given client id.
func NewHeadlessProvider(clientID string) *HeadlessProvider {
	return &HeadlessProvider{
		clientID:  clientID,
		maps:      make(map[Handle]*headlessMap),
		markers:   make(map[Handle]*headlessMarker),
		overlays:  make(map[Handle]*headlessOverlay),
		listeners: make(map[Handle]map[string][]func()),
	}
}

// FailLoad makes Load return err until it is called again with nil.
func (p *HeadlessProvider) FailLoad(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadErr = err
}

func (p *HeadlessProvider) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loadErr != nil {
		return p.loadErr
	}
	if strings.TrimSpace(p.clientID) == "" {
		return ErrMissingClientID
	}
	p.loaded = true
	return nil
}

func (p *HeadlessProvider) handleLocked(kind string) Handle {
	p.next++
	return Handle(fmt.Sprintf("%s-%d", kind, p.next))
}

func (p *HeadlessProvider) NewMap(opts MapOptions) (Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded {
		return "", stderrors.New("map library not loaded")
	}
	h := p.handleLocked("map")
	p.maps[h] = &headlessMap{opts: opts, center: opts.Center, zoom: opts.Zoom}
	return h, nil
}

func (p *HeadlessProvider) SetCenter(m Handle, center LatLng) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if hm, ok := p.maps[m]; ok {
		hm.center = center
	}
}

func (p *HeadlessProvider) SetZoom(m Handle, zoom int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if hm, ok := p.maps[m]; ok {
		hm.zoom = zoom
	}
}

func (p *HeadlessProvider) NewMarker(m Handle, opts MarkerOptions) (Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.maps[m]; !ok {
		return "", fmt.Errorf("unknown map %q", m)
	}
	h := p.handleLocked("marker")
	p.markers[h] = &headlessMarker{mapHandle: m, opts: opts}
	return h, nil
}

func (p *HeadlessProvider) RemoveMarker(marker Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.markers, marker)
}

func (p *HeadlessProvider) NewOverlay(opts OverlayOptions) (Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	h := p.handleLocked("overlay")
	p.overlays[h] = &headlessOverlay{opts: opts}
	return h, nil
}

func (p *HeadlessProvider) OpenOverlay(m Handle, overlay Handle, anchor Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if o, ok := p.overlays[overlay]; ok {
		o.open = true
		o.anchor = anchor
	}
}

func (p *HeadlessProvider) CloseOverlay(overlay Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if o, ok := p.overlays[overlay]; ok {
		o.open = false
		o.anchor = ""
	}
}

func (p *HeadlessProvider) OverlayOpen(overlay Handle) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	o, ok := p.overlays[overlay]
	return ok && o.open
}

func (p *HeadlessProvider) RemoveOverlay(overlay Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.overlays, overlay)
}

func (p *HeadlessProvider) AddListener(target Handle, event string, fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.listeners[target] == nil {
		p.listeners[target] = make(map[string][]func())
	}
	p.listeners[target][event] = append(p.listeners[target][event], fn)
}

func (p *HeadlessProvider) ClearListeners(target Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.listeners, target)
}

// Trigger calls the listeners outside the provider lock, so a listener may
// freely create or remove objects.
func (p *HeadlessProvider) Trigger(target Handle, event string) {
	p.mu.Lock()
	fns := append([]func(){}, p.listeners[target][event]...)
	p.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// LiveMarkers returns the number of markers not yet removed.
func (p *HeadlessProvider) LiveMarkers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.markers)
}

// LiveOverlays returns the number of overlays not yet removed.
func (p *HeadlessProvider) LiveOverlays() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.overlays)
}

// OpenOverlays returns the number of open overlays.
func (p *HeadlessProvider) OpenOverlays() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, o := range p.overlays {
		if o.open {
			n++
		}
	}
	return n
}

// ListenerTargets returns the number of objects with at least one listener.
func (p *HeadlessProvider) ListenerTargets() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.listeners)
}

// MarkerPositions returns the positions of live markers.
func (p *HeadlessProvider) MarkerPositions() []LatLng {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]LatLng, 0, len(p.markers))
	for _, m := range p.markers {
		out = append(out, m.opts.Position)
	}
	return out
}

// View returns the current center and zoom of map m.
func (p *HeadlessProvider) View(m Handle) (LatLng, int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	hm, ok := p.maps[m]
	if !ok {
		return LatLng{}, 0, false
	}
	return hm.center, hm.zoom, true
}

// Maps returns the handles of created maps.
func (p *HeadlessProvider) Maps() []Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Handle, 0, len(p.maps))
	for h := range p.maps {
		out = append(out, h)
	}
	return out
}
