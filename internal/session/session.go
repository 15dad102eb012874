package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gcbaptista/matjibmap/internal/filtering"
	"github.com/gcbaptista/matjibmap/internal/mapview"
	"github.com/gcbaptista/matjibmap/internal/recommend"
	"github.com/gcbaptista/matjibmap/model"
)

// Session is one visitor's view state. Every filter mutation recomputes the
// visible restaurants and resyncs the map with them.
type Session struct {
	ID        string
	CreatedAt time.Time

	env *environment

	mu        sync.Mutex
	lastSeen  time.Time
	filters   model.FilterState
	query     string
	bookmarks map[int]struct{}

	recommendation *recommend.Slot
	mapAdapter     *mapview.Adapter
}

// View is the serializable snapshot of a session.
type View struct {
	ID             string                   `json:"id"`
	CreatedAt      time.Time                `json:"created_at"`
	LastSeen       time.Time                `json:"last_seen"`
	Filters        model.FilterState        `json:"filters"`
	Query          string                   `json:"query"`
	Visible        int                      `json:"visible"`
	Selected       *model.Restaurant        `json:"selected,omitempty"`
	Bookmarks      []int                    `json:"bookmarks"`
	Recommendation model.RecommendationView `json:"recommendation"`
	MapStatus      mapview.Status           `json:"map_status"`
}

func newSession(id string, env *environment, now time.Time) *Session {
	s := &Session{
		ID:             id,
		CreatedAt:      now,
		env:            env,
		lastSeen:       now,
		filters:        model.InitialFilterState(),
		bookmarks:      make(map[int]struct{}),
		recommendation: recommend.NewSlot(),
		mapAdapter:     mapview.NewAdapter(env.providers(), env.mapOptions),
	}
	s.mapAdapter.Sync(s.visibleLocked())
	return s
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) expired(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff)
}

// Filters returns the current filter state.
func (s *Session) Filters() model.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.Clone()
}

// Query returns the current search query.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Visible returns the restaurants passing the current filters and query.
func (s *Session) Visible() []model.Restaurant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleLocked()
}

func (s *Session) visibleLocked() []model.Restaurant {
	return s.env.filter(s.env.catalog.All(), s.filters, s.query)
}

// update applies op to the filter state and resyncs the map.
func (s *Session) update(op func(model.FilterState) model.FilterState) model.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = op(s.filters)
	s.mapAdapter.Sync(s.visibleLocked())
	return s.filters.Clone()
}

func (s *Session) ToggleCategory(c model.Category) model.FilterState {
	return s.update(func(f model.FilterState) model.FilterState { return filtering.ToggleCategory(f, c) })
}

func (s *Session) ToggleFeature(f model.Feature) model.FilterState {
	return s.update(func(state model.FilterState) model.FilterState { return filtering.ToggleFeature(state, f) })
}

func (s *Session) SetPriceRange(r model.PriceRange) model.FilterState {
	return s.update(func(f model.FilterState) model.FilterState { return filtering.SetPriceRange(f, r) })
}

func (s *Session) SetMinRating(rating float64) model.FilterState {
	return s.update(func(f model.FilterState) model.FilterState { return filtering.SetMinRating(f, rating) })
}

func (s *Session) SetMaxDistance(km float64) model.FilterState {
	return s.update(func(f model.FilterState) model.FilterState { return filtering.SetMaxDistance(f, km) })
}

// ResetFilters applies the reset state; the query is left alone.
func (s *Session) ResetFilters() model.FilterState {
	return s.update(filtering.Reset)
}

// SetQuery replaces the search query and resyncs the map.
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
	s.mapAdapter.Sync(s.visibleLocked())
}

// RequestRecommendation starts a recommendation over the visible restaurants.
func (s *Session) RequestRecommendation(criteria string) (string, error) {
	return s.env.recommender.Request(s.recommendation, s.ID, criteria, s.Visible())
}

// Recommendation returns the recommendation state.
func (s *Session) Recommendation() model.RecommendationState {
	return s.recommendation.State()
}

// ResetRecommendation returns the recommendation to idle.
func (s *Session) ResetRecommendation() {
	s.recommendation.Reset()
}

// Map returns the session's map adapter.
func (s *Session) Map() *mapview.Adapter {
	return s.mapAdapter
}

// InitMap loads the map widget for this session.
func (s *Session) InitMap(ctx context.Context) error {
	return s.mapAdapter.Init(ctx)
}

// ToggleBookmark flips the bookmark of a restaurant and reports whether it
// is now bookmarked.
func (s *Session) ToggleBookmark(restaurantID int) (bool, error) {
	if _, err := s.env.catalog.Get(restaurantID); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookmarks[restaurantID]; ok {
		delete(s.bookmarks, restaurantID)
		return false, nil
	}
	s.bookmarks[restaurantID] = struct{}{}
	return true, nil
}

// Bookmarks returns the bookmarked restaurants in catalog order.
func (s *Session) Bookmarks() []model.Restaurant {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Restaurant{}
	for _, r := range s.env.catalog.All() {
		if _, ok := s.bookmarks[r.ID]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Snapshot returns the session's current view.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	visible := len(s.visibleLocked())
	view := View{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		LastSeen:  s.lastSeen,
		Filters:   s.filters.Clone(),
		Query:     s.query,
		Visible:   visible,
		Bookmarks: make([]int, 0, len(s.bookmarks)),
	}
	for id := range s.bookmarks {
		view.Bookmarks = append(view.Bookmarks, id)
	}
	s.mu.Unlock()

	sort.Ints(view.Bookmarks)
	if r, ok := s.mapAdapter.Selected(); ok {
		view.Selected = &r
	}
	view.Recommendation = model.ViewOf(s.recommendation.State())
	view.MapStatus = s.mapAdapter.Status()
	return view
}

func (s *Session) close() {
	s.recommendation.Reset()
	s.mapAdapter.Dispose()
}
