package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"daytrack/model"
	"daytrack/store"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrHabitNotFound = errors.New("habit not found")
	ErrInvalidDay    = errors.New("day index out of range")
)

// ConfirmFunc decides destructive actions (delete, full reset). It exists so
// the core stays testable without a blocking prompt; the UI layer supplies
// its own gating and passes an always-yes decider.
type ConfirmFunc func(prompt string) bool

// Service owns the authoritative AppState and every mutation on it. Each
// committed mutation writes through to the injected store before returning;
// derived views are recomputed from State() by the render layer.
type Service struct {
	state   model.AppState
	store   store.Store
	confirm ConfirmFunc
	now     func() time.Time

	// fetchGen guards overlapping resource loads: completions carrying a
	// stale generation are dropped.
	fetchGen int
}

// Option configures a Service.
type Option func(*Service)

// WithClock substitutes the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithConfirm substitutes the destructive-action decider.
func WithConfirm(confirm ConfirmFunc) Option {
	return func(s *Service) { s.confirm = confirm }
}

// NewService hydrates a Service from the store. A missing or corrupt blob
// silently yields fresh defaults with the week start set to the most recent
// Saturday; nothing here is allowed to fail the boot.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:   st,
		confirm: func(string) bool { return true },
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	state, ok, err := st.Load()
	if err != nil || !ok {
		state = model.NewState()
		state.Settings.WeekStartISO = model.WeekStartISO(s.now())
	}
	s.state = state
	return s
}

// State returns a deep copy of the current state. Callers can never reach
// the service's own slices through it.
func (s *Service) State() model.AppState {
	return copyState(s.state)
}

// commit persists the current state (write-through, every mutation).
func (s *Service) commit() error {
	if err := s.store.Save(s.state); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

// ---------- Task CRUD ----------

// AddTask validates the fields, builds a task with a fresh id and prepends
// it. Validation failures leave the state untouched and are returned as a
// *ValidationError.
func (s *Service) AddTask(f model.TaskFields) (model.Task, error) {
	if verr := ValidateTask(f); verr != nil {
		return model.Task{}, verr
	}
	task := model.Task{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		DueDate:     f.DueDate,
		Priority:    f.Priority,
		Category:    f.Category,
		Completed:   false,
	}
	s.state.Tasks = append([]model.Task{task}, s.state.Tasks...)
	return task, s.commit()
}

// QuickAddTask is the dashboard shortcut: title + due date only, with
// Medium priority and the Study category filled in.
func (s *Service) QuickAddTask(title, dueDate string) (model.Task, error) {
	if verr := ValidateQuickTask(title, dueDate); verr != nil {
		return model.Task{}, verr
	}
	return s.AddTask(model.TaskFields{
		Title:    title,
		DueDate:  dueDate,
		Priority: model.PriorityMedium,
		Category: "Study",
	})
}

// ToggleTaskComplete flips the completed flag of the task matching id.
// An unknown id is a no-op.
func (s *Service) ToggleTaskComplete(id string) error {
	for i, t := range s.state.Tasks {
		if t.ID == id {
			t.Completed = !t.Completed
			s.state.Tasks[i] = t
			return s.commit()
		}
	}
	return nil
}

// UpdateTask replaces the mutable fields of the task matching id, keeping
// its id and completed flag.
func (s *Service) UpdateTask(id string, f model.TaskFields) (model.Task, error) {
	if verr := ValidateTask(f); verr != nil {
		return model.Task{}, verr
	}
	for i, t := range s.state.Tasks {
		if t.ID != id {
			continue
		}
		t.Title = strings.TrimSpace(f.Title)
		t.Description = strings.TrimSpace(f.Description)
		t.DueDate = f.DueDate
		t.Priority = f.Priority
		t.Category = f.Category
		s.state.Tasks[i] = t
		return t, s.commit()
	}
	return model.Task{}, ErrTaskNotFound
}

// DeleteTask asks the confirm decider, then removes the task. It reports
// whether a task was actually removed; a decline or an unknown id leaves
// the state untouched. Deleting the task being edited exits edit mode.
func (s *Service) DeleteTask(id string) (bool, error) {
	if !s.confirm("Delete this task?") {
		return false, nil
	}
	for i, t := range s.state.Tasks {
		if t.ID != id {
			continue
		}
		s.state.Tasks = append(s.state.Tasks[:i:i], s.state.Tasks[i+1:]...)
		if s.state.EditingTaskID == id {
			s.state.EditingTaskID = ""
		}
		return true, s.commit()
	}
	return false, nil
}

// EnterTaskEditMode marks the task matching id as being edited. It reports
// false for an unknown id. Edit mode is UI-local state and is not persisted
// on its own.
func (s *Service) EnterTaskEditMode(id string) bool {
	for _, t := range s.state.Tasks {
		if t.ID == id {
			s.state.EditingTaskID = id
			return true
		}
	}
	return false
}

// ExitTaskEditMode clears the editing reference.
func (s *Service) ExitTaskEditMode() {
	s.state.EditingTaskID = ""
}

// EditingTask returns the task currently being edited, if any.
func (s *Service) EditingTask() (model.Task, bool) {
	if s.state.EditingTaskID == "" {
		return model.Task{}, false
	}
	for _, t := range s.state.Tasks {
		if t.ID == s.state.EditingTaskID {
			return t, true
		}
	}
	return model.Task{}, false
}

// SeedTasks bulk-inserts three example tasks due 1, 2 and 5 days out,
// for demo data.
func (s *Service) SeedTasks() error {
	today := s.now()
	iso := func(days int) string {
		return model.ISODate(model.StartOfDay(today).AddDate(0, 0, days))
	}

	samples := []model.TaskFields{
		{Title: "Finish project layout", DueDate: iso(1), Priority: model.PriorityHigh, Category: "Assignment", Description: "Make sure navigation works."},
		{Title: "Study for the quiz", DueDate: iso(2), Priority: model.PriorityMedium, Category: "Study", Description: "Forms and validation."},
		{Title: "Prepare review notes", DueDate: iso(5), Priority: model.PriorityLow, Category: "Personal", Description: "Short review."},
	}
	for _, f := range samples {
		if _, err := s.AddTask(f); err != nil {
			return err
		}
	}
	return nil
}

// ---------- Habit CRUD ----------

// AddHabit validates the fields and prepends a habit with an empty
// seven-day progress row.
func (s *Service) AddHabit(f model.HabitFields) (model.Habit, error) {
	if verr := ValidateHabit(f); verr != nil {
		return model.Habit{}, verr
	}
	habit := model.Habit{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(f.Name),
		Goal:     f.Goal,
		Progress: make([]bool, model.DaysPerWeek),
	}
	s.state.Habits = append([]model.Habit{habit}, s.state.Habits...)
	return habit, s.commit()
}

// ToggleHabitDay flips progress[day] for the habit matching id. The
// replacement progress row is a fresh slice so earlier State() copies stay
// untouched.
func (s *Service) ToggleHabitDay(id string, day int) error {
	if day < 0 || day >= model.DaysPerWeek {
		return fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	for i, h := range s.state.Habits {
		if h.ID != id {
			continue
		}
		progress := make([]bool, model.DaysPerWeek)
		copy(progress, h.Progress)
		progress[day] = !progress[day]
		h.Progress = progress
		s.state.Habits[i] = h
		return s.commit()
	}
	return ErrHabitNotFound
}

// DeleteHabit asks the confirm decider, then removes the habit.
func (s *Service) DeleteHabit(id string) (bool, error) {
	if !s.confirm("Delete this habit?") {
		return false, nil
	}
	for i, h := range s.state.Habits {
		if h.ID != id {
			continue
		}
		s.state.Habits = append(s.state.Habits[:i:i], s.state.Habits[i+1:]...)
		return true, s.commit()
	}
	return false, nil
}

// RolloverWeek compares the stored week start against the current one and,
// when a new week has begun, stores the new Saturday and wipes every habit's
// progress. Habit tracking is per-week by design; no history is kept.
// It reports whether a rollover happened.
func (s *Service) RolloverWeek() (bool, error) {
	current := model.WeekStartISO(s.now())
	if s.state.Settings.WeekStartISO == current {
		return false, nil
	}
	s.state.Settings.WeekStartISO = current
	for i, h := range s.state.Habits {
		h.Progress = make([]bool, model.DaysPerWeek)
		s.state.Habits[i] = h
	}
	return true, s.commit()
}

// ---------- Favorites, theme, reset ----------

// ToggleFavorite adds the resource id to the favorites set, or removes it
// when already present.
func (s *Service) ToggleFavorite(resourceID int) error {
	for i, id := range s.state.Favorites {
		if id == resourceID {
			s.state.Favorites = append(s.state.Favorites[:i:i], s.state.Favorites[i+1:]...)
			return s.commit()
		}
	}
	s.state.Favorites = append(s.state.Favorites, resourceID)
	return s.commit()
}

// IsFavorite reports membership in the favorites set.
func (s *Service) IsFavorite(resourceID int) bool {
	for _, id := range s.state.Favorites {
		if id == resourceID {
			return true
		}
	}
	return false
}

// ToggleTheme flips between light and dark and persists the choice.
func (s *Service) ToggleTheme() (model.Theme, error) {
	if s.state.Settings.Theme == model.ThemeLight {
		s.state.Settings.Theme = model.ThemeDark
	} else {
		s.state.Settings.Theme = model.ThemeLight
	}
	return s.state.Settings.Theme, s.commit()
}

// Reset asks the confirm decider, clears the persisted blob and replaces the
// state with fresh defaults (dark theme, current week start). The resource
// catalog goes back to idle; the caller is expected to force a reload.
func (s *Service) Reset() (bool, error) {
	if !s.confirm("Reset ALL data? This cannot be undone.") {
		return false, nil
	}
	if err := s.store.Reset(); err != nil {
		return false, fmt.Errorf("clear persisted state: %w", err)
	}
	fresh := model.NewState()
	fresh.Settings.WeekStartISO = model.WeekStartISO(s.now())
	s.state = fresh
	s.fetchGen++
	return true, s.commit()
}

// ---------- Resource load state machine ----------

// BeginResourceLoad transitions the catalog to loading and returns the
// generation token the eventual completion must present. When items are
// already present and force is false, nothing starts.
func (s *Service) BeginResourceLoad(force bool) (gen int, started bool) {
	if !force && len(s.state.Resources.Items) > 0 {
		return 0, false
	}
	s.fetchGen++
	s.state.Resources.Status = model.FetchLoading
	s.state.Resources.Error = ""
	return s.fetchGen, true
}

// CompleteResourceLoad resolves a load begun with BeginResourceLoad.
// Completions carrying a stale generation are ignored, so an overlapping
// forced reload can never be clobbered by an earlier response. On failure
// the items are left as they were.
func (s *Service) CompleteResourceLoad(gen int, items []model.Resource, fetchErr error) error {
	if gen != s.fetchGen {
		return nil
	}
	if fetchErr != nil {
		s.state.Resources.Status = model.FetchError
		s.state.Resources.Error = fetchErr.Error()
		return s.commit()
	}
	if items == nil {
		items = []model.Resource{}
	}
	s.state.Resources.Items = items
	s.state.Resources.Status = model.FetchSuccess
	s.state.Resources.Error = ""
	return s.commit()
}

// ---------- helpers ----------

func copyState(state model.AppState) model.AppState {
	out := state

	out.Tasks = make([]model.Task, len(state.Tasks))
	copy(out.Tasks, state.Tasks)

	out.Habits = make([]model.Habit, len(state.Habits))
	for i, h := range state.Habits {
		progress := make([]bool, len(h.Progress))
		copy(progress, h.Progress)
		h.Progress = progress
		out.Habits[i] = h
	}

	out.Favorites = make([]int, len(state.Favorites))
	copy(out.Favorites, state.Favorites)

	out.Resources.Items = make([]model.Resource, len(state.Resources.Items))
	copy(out.Resources.Items, state.Resources.Items)

	return out
}
