// Package session keeps per-visitor view state in memory: filters, search
// query, bookmarks, the recommendation slot and the map adapter.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gcbaptista/matjibmap/internal/errors"
	"github.com/gcbaptista/matjibmap/internal/filtering"
	"github.com/gcbaptista/matjibmap/internal/logging"
	"github.com/gcbaptista/matjibmap/internal/mapview"
	"github.com/gcbaptista/matjibmap/internal/metrics"
	"github.com/gcbaptista/matjibmap/internal/recommend"
	"github.com/gcbaptista/matjibmap/services"
)

// ProviderFactory creates the map provider of a new session.
type ProviderFactory func() mapview.Provider

// Config tunes the manager.
type Config struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	MapOptions      mapview.MapOptions
	StrictFilter    bool
}

// environment is what every session shares
type environment struct {
	catalog     services.RestaurantCatalog
	recommender *recommend.Service
	providers   ProviderFactory
	mapOptions  mapview.MapOptions
	filter      filtering.Func
}

// Manager creates, finds and expires sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	env      *environment
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
	stopChan chan struct{}
	stopOnce sync.Once
	log      zerolog.Logger
}

// NewManager creates a session manager.
func NewManager(catalog services.RestaurantCatalog, recommender *recommend.Service, providers ProviderFactory, cfg Config) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}
	return &Manager{
		sessions: make(map[string]*Session),
		env: &environment{
			catalog:     catalog,
			recommender: recommender,
			providers:   providers,
			mapOptions:  cfg.MapOptions,
			filter:      filtering.Select(cfg.StrictFilter),
		},
		ttl:      cfg.TTL,
		interval: cfg.CleanupInterval,
		now:      time.Now,
		stopChan: make(chan struct{}),
		log:      logging.With("session"),
	}
}

// Start runs the expiry loop.
func (m *Manager) Start() {
	go m.cleanupRoutine()
}

// Stop ends the expiry loop and closes every session.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)

		m.mu.Lock()
		defer m.mu.Unlock()
		for id, s := range m.sessions {
			s.close()
			delete(m.sessions, id)
		}
		metrics.SessionsActive.Set(0)
	})
}

// Create starts a new session with the initial filter state.
func (m *Manager) Create() *Session {
	s := newSession(uuid.New().String(), m.env, m.now())

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	metrics.SessionsActive.Inc()
	m.log.Debug().Str("session_id", s.ID).Msg("session created")
	return s
}

// Get returns a session and marks it as recently used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.NewSessionNotFoundError(id)
	}
	s.touch(m.now())
	return s, nil
}

// Delete closes and removes a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return errors.NewSessionNotFoundError(id)
	}
	s.close()
	metrics.SessionsActive.Dec()
	m.log.Debug().Str("session_id", id).Msg("session deleted")
	return nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CleanupExpired removes sessions idle for longer than the TTL.
func (m *Manager) CleanupExpired() int {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.expired(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.close()
	}
	if len(expired) > 0 {
		metrics.SessionsActive.Sub(float64(len(expired)))
		m.log.Info().Int("count", len(expired)).Msg("expired idle sessions")
	}
	return len(expired)
}

func (m *Manager) cleanupRoutine() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupExpired()
		case <-m.stopChan:
			return
		}
	}
}
