package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"daytrack/model"
)

func sampleState(label string) model.AppState {
	return model.AppState{
		Tasks: []model.Task{{
			ID:          "task-" + label,
			Title:       "Task " + label,
			Description: "notes",
			DueDate:     "2026-09-01",
			Priority:    model.PriorityMedium,
			Category:    "Study",
			Completed:   false,
		}},
		Habits: []model.Habit{{
			ID:       "habit-" + label,
			Name:     "Habit " + label,
			Goal:     4,
			Progress: []bool{true, false, false, true, false, false, false},
		}},
		Favorites: []int{3},
		Settings: model.Settings{
			Theme:        model.ThemeDark,
			WeekStartISO: "2026-08-29",
		},
		Resources: model.ResourceState{
			Items:  []model.Resource{},
			Status: model.FetchIdle,
		},
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "state.json"))

	_, ok, err := s.Load()
	if err != nil {
		t.Fatalf("load missing file failed: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for missing file")
	}
}

func TestFileStoreSaveThenLoad(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	want := sampleState("a")

	if err := s.Save(want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, ok, err := s.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true after save")
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("save/load mismatch\nwant=%+v\ngot=%+v", want, got)
	}
}

func TestFileStoreCorruptBlobTreatedAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt blob failed: %v", err)
	}

	_, ok, err := NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("expected silent fallback for corrupt blob, got %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for corrupt blob")
	}
}

func TestFileStoreReset(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	if err := s.Save(sampleState("x")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if _, ok, _ := s.Load(); ok {
		t.Fatalf("expected nothing persisted after reset")
	}

	// A second reset with nothing on disk is fine.
	if err := s.Reset(); err != nil {
		t.Fatalf("reset on empty store failed: %v", err)
	}
}

func TestNormalizeRepairsInvariants(t *testing.T) {
	legacy := `{
  "tasks": [
    {"id": "t1", "title": "old", "dueDate": "2026-09-01", "priority": "Urgent", "category": "Study"}
  ],
  "habits": [
    {"id": "h1", "name": "Read", "goal": 9, "progress": [true, true]}
  ],
  "settings": {"theme": "sepia"}
}`
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write legacy blob failed: %v", err)
	}

	state, ok, err := NewFileStore(path).Load()
	if err != nil || !ok {
		t.Fatalf("load legacy blob failed: ok=%v err=%v", ok, err)
	}

	if state.Tasks[0].Priority != model.PriorityMedium {
		t.Fatalf("expected unknown priority coerced to Medium, got %q", state.Tasks[0].Priority)
	}
	h := state.Habits[0]
	if len(h.Progress) != model.DaysPerWeek {
		t.Fatalf("expected progress repaired to %d entries, got %d", model.DaysPerWeek, len(h.Progress))
	}
	if !h.Progress[0] || !h.Progress[1] || h.Progress[2] {
		t.Fatalf("expected existing progress entries preserved, got %+v", h.Progress)
	}
	if h.Goal != model.DaysPerWeek {
		t.Fatalf("expected goal clamped to %d, got %d", model.DaysPerWeek, h.Goal)
	}
	if state.Settings.Theme != model.ThemeDark {
		t.Fatalf("expected unknown theme coerced to dark, got %q", state.Settings.Theme)
	}
	if state.Favorites == nil || state.Resources.Items == nil {
		t.Fatalf("expected nil sequences replaced with empty ones")
	}
	if state.Resources.Status != model.FetchIdle {
		t.Fatalf("expected default fetch status idle, got %q", state.Resources.Status)
	}
}
