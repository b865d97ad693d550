package game

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/quinbingo/quinbingo-backend/models"
)

// mockStore records every save and can be told to fail.
type mockStore struct {
	mu     sync.Mutex
	saved  []*models.GameState
	fail   bool
	loaded *models.GameState
}

func (s *mockStore) Load() (*models.GameState, error) {
	return s.loaded, nil
}

func (s *mockStore) Save(state *models.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("disk full")
	}
	s.saved = append(s.saved, state.Clone())
	return nil
}

func (s *mockStore) setFail(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

func (s *mockStore) snapshots() []*models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.GameState(nil), s.saved...)
}

// mockBroadcaster captures published states in order.
type mockBroadcaster struct {
	mu     sync.Mutex
	events []string
	states []*models.GameState
}

func (b *mockBroadcaster) Publish(event string, state *models.GameState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	b.states = append(b.states, state)
}

func (b *mockBroadcaster) published() []*models.GameState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*models.GameState(nil), b.states...)
}

// newTestGame builds a game with short timings so tests stay fast.
func newTestGame() (*Game, *mockStore, *mockBroadcaster) {
	store := &mockStore{}
	bc := &mockBroadcaster{}
	g := New(store, bc, 40*time.Millisecond, time.Millisecond)
	return g, store, bc
}

// numberList renders count sequential numbers starting at start, using
// the comma form an admin would type.
func numberList(start, count int) string {
	parts := make([]string, count)
	for i := 0; i < count; i++ {
		parts[i] = fmt.Sprintf("%d", start+i)
	}
	return strings.Join(parts, ",")
}
