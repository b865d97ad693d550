package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/quinbingo/quinbingo-backend/models"
	"github.com/quinbingo/quinbingo-backend/utils/logger"
)

// EventGameUpdate is published on every state mutation. The payload is a
// full snapshot, so observers never need to diff.
const EventGameUpdate = "game_update"

// Store persists the single game snapshot.
type Store interface {
	// Load returns the saved state, or (nil, nil) when no snapshot exists yet.
	Load() (*models.GameState, error)
	Save(*models.GameState) error
}

// Broadcaster pushes a state snapshot to all connected observers.
type Broadcaster interface {
	Publish(event string, state *models.GameState)
}

// Game owns the authoritative GameState. Every read-modify-write runs
// under g.mu, one externally visible transition per critical section;
// the countdown wait and the inter-draw delay sleep unlocked and
// re-check status after waking. Persistence and broadcast both happen
// inside the critical section, so observers see mutations in order.
type Game struct {
	mu    sync.Mutex
	state *models.GameState
	used  map[int]bool // numbers claimed by any registered card

	store Store
	bc    Broadcaster
	rng   *rand.Rand

	countdown    time.Duration
	drawInterval time.Duration
}

// New loads the snapshot (or starts fresh) and returns the game façade.
// A snapshot stuck mid-round from a previous process is demoted to
// waiting: there is no timer or draw loop to resume it.
func New(store Store, bc Broadcaster, countdown, drawInterval time.Duration) *Game {
	g := &Game{
		store:        store,
		bc:           bc,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		countdown:    countdown,
		drawInterval: drawInterval,
		used:         make(map[int]bool),
	}

	state, err := store.Load()
	if err != nil {
		logger.Errorf("failed to load snapshot, starting fresh: %v", err)
	}
	if state == nil {
		state = models.NewGameState()
	}
	state.Normalize()

	if state.Status == models.StatusCountingDown || state.Status == models.StatusDrawing {
		logger.Warnf("snapshot was %s mid-round, falling back to waiting", state.Status)
		state.Status = models.StatusWaiting
		state.CountdownEnd = nil
	}

	g.state = state
	g.rebuildUsedLocked()
	return g
}

// Snapshot returns a deep copy of the current state for rendering.
func (g *Game) Snapshot() *models.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Clone()
}

// Reset replaces the entire game with a fresh waiting state, discarding
// cards, history and winner. It is the only backward transition and is
// always allowed.
func (g *Game) Reset() *models.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = models.NewGameState()
	g.used = make(map[int]bool)
	if err := g.store.Save(g.state); err != nil {
		logger.Errorf("failed to persist reset: %v", err)
	}
	g.bc.Publish(EventGameUpdate, g.state.Clone())

	logger.Info("game reset")
	return g.state.Clone()
}

// MediaKind names one of the configurable sound slots.
type MediaKind string

const (
	MediaBackgroundMusic MediaKind = "background_music"
	MediaWinnerSound     MediaKind = "winner_sound"
	MediaBallSound       MediaKind = "ball_sound"
	MediaCountdownSound  MediaKind = "countdown_sound"
)

// SetMedia updates one of the cosmetic sound filenames.
func (g *Game) SetMedia(kind MediaKind, filename string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	prev := g.state.Clone()
	switch kind {
	case MediaBackgroundMusic:
		g.state.BackgroundMusic = filename
	case MediaWinnerSound:
		g.state.WinnerSound = filename
	case MediaBallSound:
		g.state.BallSound = filename
	case MediaCountdownSound:
		g.state.CountdownSound = filename
	default:
		return validationErrorf(MissingField, "unknown sound kind %q", kind)
	}
	return g.commitLocked(prev, "set media")
}

// commitLocked persists the current state and broadcasts it. On store
// failure the previous state is restored and the error surfaced, so the
// caller's mutation never half-applies.
func (g *Game) commitLocked(prev *models.GameState, op string) error {
	if err := g.store.Save(g.state); err != nil {
		g.state = prev
		return &PersistenceError{Op: op, Err: err}
	}
	g.bc.Publish(EventGameUpdate, g.state.Clone())
	return nil
}

// failSafeLocked handles a persistence fault inside a background loop:
// nobody is waiting on the error, so log it and degrade to waiting so
// an admin can restart the round.
func (g *Game) failSafeLocked(op string, err error) {
	logger.Errorf("%s failed, falling back to waiting: %v", op, err)
	g.state.Status = models.StatusWaiting
	g.state.CountdownEnd = nil
	if err := g.store.Save(g.state); err != nil {
		logger.Errorf("failed to persist waiting fallback: %v", err)
	}
	g.bc.Publish(EventGameUpdate, g.state.Clone())
}

func (g *Game) rebuildUsedLocked() {
	g.used = make(map[int]bool)
	for _, cards := range g.state.Players {
		for _, nums := range cards {
			for _, n := range nums {
				g.used[n] = true
			}
		}
	}
}
