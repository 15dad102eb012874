package store

import (
	"sync"

	"github.com/gcbaptista/matjibmap/internal/errors"
	"github.com/gcbaptista/matjibmap/model"
)

// RestaurantStore is the read-only source of truth for restaurant records.
// It keeps fixture order for listing and an id index for lookups.
type RestaurantStore struct {
	mu       sync.RWMutex
	ordered  []model.Restaurant
	byID     map[int]int // restaurant ID to position in ordered
	profiles map[int]model.RestaurantProfile
}

// NewRestaurantStore builds a store over the given records. Inputs are copied.
func NewRestaurantStore(restaurants []model.Restaurant, profiles []model.RestaurantProfile) *RestaurantStore {
	s := &RestaurantStore{
		ordered:  make([]model.Restaurant, len(restaurants)),
		byID:     make(map[int]int, len(restaurants)),
		profiles: make(map[int]model.RestaurantProfile, len(profiles)),
	}
	for i, r := range restaurants {
		s.ordered[i] = cloneRestaurant(r)
		s.byID[r.ID] = i
	}
	for _, p := range profiles {
		s.profiles[p.RestaurantID] = p
	}
	return s
}

// All returns every restaurant in fixture order. The slice is a copy.
func (s *RestaurantStore) All() []model.Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Restaurant, len(s.ordered))
	for i, r := range s.ordered {
		out[i] = cloneRestaurant(r)
	}
	return out
}

// Get returns the restaurant with the given id.
func (s *RestaurantStore) Get(id int) (model.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.byID[id]
	if !ok {
		return model.Restaurant{}, errors.NewRestaurantNotFoundError(id)
	}
	return cloneRestaurant(s.ordered[pos]), nil
}

// Detail returns the restaurant together with its profile, when one exists.
func (s *RestaurantStore) Detail(id int) (model.RestaurantDetail, error) {
	r, err := s.Get(id)
	if err != nil {
		return model.RestaurantDetail{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	detail := model.RestaurantDetail{Restaurant: r}
	if p, ok := s.profiles[id]; ok {
		profile := p
		detail.Profile = &profile
	}
	return detail, nil
}

// Count returns the number of restaurants.
func (s *RestaurantStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ordered)
}

func cloneRestaurant(r model.Restaurant) model.Restaurant {
	r.ReviewTexts = append([]string(nil), r.ReviewTexts...)
	r.Features = append([]model.Feature(nil), r.Features...)
	return r
}
