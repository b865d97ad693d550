package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quinbingo/quinbingo-backend/models"
)

// FileStore persists the game snapshot as a single JSON file. It is the
// only durable record the process keeps; all writes go through the game
// controller's critical section, so the file never has two writers.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot. A missing file means a fresh install and
// returns (nil, nil); missing fields inside an older file are filled
// with defaults instead of failing.
func (s *FileStore) Load() (*models.GameState, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}

	var state models.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}
	state.Normalize()
	return &state, nil
}

// Save writes the snapshot atomically: a temp file in the same
// directory is renamed over the target, so a crash mid-write never
// leaves a truncated record.
func (s *FileStore) Save(state *models.GameState) error {
	data, err := json.MarshalIndent(state, "", "    ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".quinbingo-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace snapshot %s: %w", s.path, err)
	}
	return nil
}
