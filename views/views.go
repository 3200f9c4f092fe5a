// Package views derives read-only projections from the application state.
// Nothing in here mutates; every function takes a snapshot and returns
// fresh slices the caller may reorder freely.
package views

import (
	"sort"
	"strings"
	"time"

	"daytrack/model"
)

// StatusFilter narrows the task list by completion.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// TaskSort picks the ordering of the visible task list.
type TaskSort string

const (
	SortByDueDate  TaskSort = "dueDate"
	SortByPriority TaskSort = "priority"
)

// CategoryAll disables category filtering for tasks and resources.
const CategoryAll = "all"

// TaskControls is the tasks page filter bar.
type TaskControls struct {
	Status   StatusFilter
	Category string
	SortBy   TaskSort
}

// VisibleTasks applies the filter bar and sorts the result. Due-date order
// is ascending; priority order is High first. Both sorts are stable so ties
// keep their insertion order.
func VisibleTasks(tasks []model.Task, c TaskControls) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if c.Status == StatusActive && t.Completed {
			continue
		}
		if c.Status == StatusCompleted && !t.Completed {
			continue
		}
		if c.Category != "" && c.Category != CategoryAll && t.Category != c.Category {
			continue
		}
		out = append(out, t)
	}

	if c.SortBy == SortByPriority {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() > out[j].Priority.Rank()
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DueDate < out[j].DueDate
		})
	}
	return out
}

// TaskCategories returns the distinct categories present, sorted, for the
// filter control. Categories are free-form so the list follows the data.
func TaskCategories(tasks []model.Task) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range tasks {
		if t.Category != "" && !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Dashboard aggregates the landing page numbers.
type Dashboard struct {
	TotalTasks  int
	Completed   int
	DueSoon     int // incomplete tasks due within the next 2 days
	ProgressPct int // completed/total, rounded; 0 when there are no tasks
	HabitStreak int // checked days across all habits this week

	// Upcoming lists every task due within the next 2 days, completed or
	// not, ordered by due date.
	Upcoming []model.Task
}

// dueSoonWindowDays is inclusive: due today counts, as does 2 days out.
const dueSoonWindowDays = 2

// BuildDashboard computes the dashboard numbers relative to now. Tasks with
// an unparseable due date never count as due soon.
func BuildDashboard(state model.AppState, now time.Time) Dashboard {
	var d Dashboard
	d.TotalTasks = len(state.Tasks)

	for _, t := range state.Tasks {
		if t.Completed {
			d.Completed++
		}
		days, ok := model.DaysUntil(now, t.DueDate)
		if !ok || days < 0 || days > dueSoonWindowDays {
			continue
		}
		d.Upcoming = append(d.Upcoming, t)
		if !t.Completed {
			d.DueSoon++
		}
	}
	sort.SliceStable(d.Upcoming, func(i, j int) bool {
		return d.Upcoming[i].DueDate < d.Upcoming[j].DueDate
	})

	if d.TotalTasks > 0 {
		d.ProgressPct = int(float64(d.Completed)/float64(d.TotalTasks)*100 + 0.5)
	}

	for _, h := range state.Habits {
		d.HabitStreak += h.DoneDays()
	}
	return d
}

// HabitRow pairs a habit with its weekly tally.
type HabitRow struct {
	Habit    model.Habit
	Done     int
	Achieved bool // Done has reached the weekly goal
}

// HabitSummary is the "x / y achieved" header.
type HabitSummary struct {
	Achieved int
	Total    int
}

// BuildHabits projects the habit list for rendering.
func BuildHabits(habits []model.Habit) ([]HabitRow, HabitSummary) {
	rows := make([]HabitRow, 0, len(habits))
	summary := HabitSummary{Total: len(habits)}
	for _, h := range habits {
		done := h.DoneDays()
		achieved := done >= h.Goal
		if achieved {
			summary.Achieved++
		}
		rows = append(rows, HabitRow{Habit: h, Done: done, Achieved: achieved})
	}
	return rows, summary
}

// ResourceControls is the resources page filter bar.
type ResourceControls struct {
	Search   string
	Category string
	FavOnly  bool
}

// VisibleResources filters the fetched catalog. The search matches title or
// description, case-insensitive; favorites filtering consults the state's
// favorites set.
func VisibleResources(state model.AppState, c ResourceControls) []model.Resource {
	fav := map[int]bool{}
	for _, id := range state.Favorites {
		fav[id] = true
	}

	q := strings.ToLower(strings.TrimSpace(c.Search))
	out := make([]model.Resource, 0, len(state.Resources.Items))
	for _, r := range state.Resources.Items {
		if q != "" &&
			!strings.Contains(strings.ToLower(r.Title), q) &&
			!strings.Contains(strings.ToLower(r.Description), q) {
			continue
		}
		if c.Category != "" && c.Category != CategoryAll && r.Category != c.Category {
			continue
		}
		if c.FavOnly && !fav[r.ID] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ResourceCategories returns the distinct catalog categories, sorted.
func ResourceCategories(items []model.Resource) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range items {
		if r.Category != "" && !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	sort.Strings(out)
	return out
}
