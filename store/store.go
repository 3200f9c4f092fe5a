package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"daytrack/model"
)

// Store is the persistence collaborator for the app state blob. Load reports
// ok=false when nothing usable is persisted; a corrupt blob is treated the
// same as a missing one so a bad file can never brick the app.
type Store interface {
	Load() (model.AppState, bool, error)
	Save(model.AppState) error
	Reset() error
}

// FileStore persists the state as a single pretty-printed JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a file-backed store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the state file. A missing or undecodable file yields ok=false
// with no error.
func (s *FileStore) Load() (model.AppState, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.AppState{}, false, nil
		}
		return model.AppState{}, false, err
	}
	state, err := decodeState(data)
	if err != nil {
		return model.AppState{}, false, nil
	}
	return state, true, nil
}

// Save writes the state atomically via a temp file + rename so a crash
// mid-write never leaves a truncated blob behind.
func (s *FileStore) Save(state model.AppState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, s.path)
}

// Reset removes the persisted state entirely.
func (s *FileStore) Reset() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func decodeState(data []byte) (model.AppState, error) {
	var state model.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return model.AppState{}, err
	}
	return normalizeState(state), nil
}

// normalizeState repairs a decoded blob so its invariants hold: non-nil
// sequences, a known theme, a habit progress row of exactly seven entries
// and a goal inside 1..7.
func normalizeState(state model.AppState) model.AppState {
	if state.Tasks == nil {
		state.Tasks = []model.Task{}
	}
	if state.Habits == nil {
		state.Habits = []model.Habit{}
	}
	if state.Favorites == nil {
		state.Favorites = []int{}
	}
	if state.Resources.Items == nil {
		state.Resources.Items = []model.Resource{}
	}
	if state.Resources.Status == "" {
		state.Resources.Status = model.FetchIdle
	}
	if state.Settings.Theme != model.ThemeLight && state.Settings.Theme != model.ThemeDark {
		state.Settings.Theme = model.ThemeDark
	}

	for i := range state.Tasks {
		if !state.Tasks[i].Priority.Valid() {
			state.Tasks[i].Priority = model.PriorityMedium
		}
	}

	for i := range state.Habits {
		h := &state.Habits[i]
		if len(h.Progress) != model.DaysPerWeek {
			fixed := make([]bool, model.DaysPerWeek)
			copy(fixed, h.Progress)
			h.Progress = fixed
		}
		if h.Goal < 1 {
			h.Goal = 1
		}
		if h.Goal > model.DaysPerWeek {
			h.Goal = model.DaysPerWeek
		}
	}

	return state
}
