package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quinbingo/quinbingo-backend/models"
)

func newStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "quinbingo_data.json"))
}

func TestLoadMissingFile(t *testing.T) {
	s := newStore(t)
	state, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newStore(t)

	state := models.NewGameState()
	state.Status = models.StatusDrawing
	state.Balls = []int{5, 9, 70}
	state.DrawnBalls = []int{1, 2, 3}
	ball := 3
	state.CurrentBall = &ball
	deadline := time.Now().Add(time.Minute).Truncate(time.Second)
	state.CountdownEnd = &deadline
	state.Players = map[string]map[string][]int{
		"Ana": {"A1": {1, 2, 3, 4}},
	}
	state.CardCount = 1
	state.Winner = &models.Winner{PlayerName: "Ana", CardID: "A1", Numbers: []int{1, 2, 3, 4}}

	require.NoError(t, s.Save(state))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, state.Status, loaded.Status)
	assert.Equal(t, state.Balls, loaded.Balls)
	assert.Equal(t, state.DrawnBalls, loaded.DrawnBalls)
	require.NotNil(t, loaded.CurrentBall)
	assert.Equal(t, ball, *loaded.CurrentBall)
	require.NotNil(t, loaded.CountdownEnd)
	assert.True(t, loaded.CountdownEnd.Equal(deadline))
	assert.Equal(t, state.Players, loaded.Players)
	assert.Equal(t, state.CardCount, loaded.CardCount)
	assert.Equal(t, state.Winner, loaded.Winner)
	assert.Equal(t, state.BackgroundMusic, loaded.BackgroundMusic)
}

func TestLoadFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quinbingo_data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"status": "waiting"}`), 0o644))

	loaded, err := NewFileStore(path).Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, models.StatusWaiting, loaded.Status)
	assert.Len(t, loaded.Balls, models.MaxBall)
	assert.Empty(t, loaded.DrawnBalls)
	assert.NotNil(t, loaded.Players)
	assert.Equal(t, 0, loaded.CardCount)
	assert.Equal(t, "background.mp3", loaded.BackgroundMusic)
	assert.Equal(t, "winner.mp3", loaded.WinnerSound)
	assert.Equal(t, "ball.mp3", loaded.BallSound)
	assert.Equal(t, "countdown.mp3", loaded.CountdownSound)
}

func TestLoadRecomputesCardCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quinbingo_data.json")
	raw := `{"status":"waiting","players":{"Ana":{"A1":[1,2],"A2":[3,4]}},"card_count":99}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	loaded, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.CardCount, "card_count must never drift from the true count")
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quinbingo_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path).Load()
	require.Error(t, err)
}

func TestSaveReplacesAtomically(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Save(models.NewGameState()))
	first, err := os.ReadFile(s.path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	state := models.NewGameState()
	state.Status = models.StatusFinished
	require.NoError(t, s.Save(state))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinished, loaded.Status)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(s.path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
