package model

// Theme selects the UI palette.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Priority is a task priority level.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Rank maps priorities to a sortable weight (High=3 > Medium=2 > Low=1).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Valid reports whether p is one of the three known levels.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// FetchStatus tracks the resource-catalog load state machine.
type FetchStatus string

const (
	FetchIdle    FetchStatus = "idle"
	FetchLoading FetchStatus = "loading"
	FetchSuccess FetchStatus = "success"
	FetchError   FetchStatus = "error"
)

// DaysPerWeek is the length of every habit progress row.
// Index 0 is Saturday and index 6 is Friday; the tracked week starts Saturday.
const DaysPerWeek = 7

// DayLabels are the display labels for habit progress indexes 0..6.
var DayLabels = [DaysPerWeek]string{"Sat", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri"}

// Task is an individual todo item.
// ID is generated once and never changes for the life of the state.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DueDate     string   `json:"dueDate"`
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
	Completed   bool     `json:"completed"`
}

// Habit is a weekly-tracked habit. Progress always holds exactly seven
// entries; Goal is constrained to 1..7.
type Habit struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Goal     int    `json:"goal"`
	Progress []bool `json:"progress"`
}

// DoneDays counts the checked entries in Progress.
func (h Habit) DoneDays() int {
	n := 0
	for _, on := range h.Progress {
		if on {
			n++
		}
	}
	return n
}

// Resource is an externally supplied catalog entry. It is never mutated;
// the state only references it through the favorites set.
type Resource struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Link        string `json:"link"`
}

// Settings are the user preferences persisted with the state.
// WeekStartISO is the Saturday the current habit week began ("" when unset).
type Settings struct {
	Theme        Theme  `json:"theme"`
	WeekStartISO string `json:"weekStartISO,omitempty"`
}

// ResourceState is the catalog plus its load status.
type ResourceState struct {
	Items  []Resource  `json:"items"`
	Status FetchStatus `json:"status"`
	Error  string      `json:"error,omitempty"`
}

// AppState is the full persisted state. It is the single owner of every
// task and habit; newly added entities are prepended so the sequences stay
// most-recent-first.
type AppState struct {
	Tasks         []Task        `json:"tasks"`
	Habits        []Habit       `json:"habits"`
	Favorites     []int         `json:"favorites"`
	Settings      Settings      `json:"settings"`
	EditingTaskID string        `json:"editingTaskId,omitempty"`
	Resources     ResourceState `json:"resources"`
}

// TaskFields is the form input for creating or updating a task.
type TaskFields struct {
	Title       string
	Description string
	DueDate     string
	Priority    Priority
	Category    string
}

// HabitFields is the form input for creating a habit.
type HabitFields struct {
	Name string
	Goal int
}

// NewState returns an initialized empty state with the dark theme default.
func NewState() AppState {
	return AppState{
		Tasks:     []Task{},
		Habits:    []Habit{},
		Favorites: []int{},
		Settings: Settings{
			Theme: ThemeDark,
		},
		Resources: ResourceState{
			Items:  []Resource{},
			Status: FetchIdle,
		},
	}
}
