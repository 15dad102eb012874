package recommend

import (
	"context"
	"sync"

	"github.com/gcbaptista/matjibmap/model"
)

// Slot holds the recommendation state of one view. Each request or reset
// bumps a sequence number; a completion only lands if its sequence is
// still the current one, so the latest request always wins. Bumping the
// sequence also cancels the context of the generation it replaces.
type Slot struct {
	mu     sync.Mutex
	seq    uint64
	state  model.RecommendationState
	cancel context.CancelFunc
}

// NewSlot returns a slot in the idle state.
func NewSlot() *Slot {
	return &Slot{state: model.RecommendationIdleState{}}
}

// State returns the current state.
func (s *Slot) State() model.RecommendationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Reset returns to idle and cancels any in-flight generation.
func (s *Slot) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.cancelLocked()
	s.state = model.RecommendationIdleState{}
}

// begin starts a new generation and returns its sequence number and a
// context that is cancelled once the generation is superseded
func (s *Slot) begin(state model.RecommendationState) (uint64, context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.cancelLocked()
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.state = state
	return s.seq, ctx
}

// settle applies state only when seq is still current
func (s *Slot) settle(seq uint64, state model.RecommendationState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return false
	}
	s.cancelLocked()
	s.state = state
	return true
}

func (s *Slot) cancelLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
