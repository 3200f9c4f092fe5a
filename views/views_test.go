package views

import (
	"reflect"
	"testing"
	"time"

	"daytrack/model"
)

func task(id, title, due string, p model.Priority, cat string, done bool) model.Task {
	return model.Task{ID: id, Title: title, DueDate: due, Priority: p, Category: cat, Completed: done}
}

func sampleTasks() []model.Task {
	return []model.Task{
		task("a", "Essay", "2026-09-05", model.PriorityLow, "Assignment", false),
		task("b", "Quiz prep", "2026-09-02", model.PriorityHigh, "Study", true),
		task("c", "Groceries", "2026-09-03", model.PriorityMedium, "Personal", false),
		task("d", "Flashcards", "2026-09-01", model.PriorityHigh, "Study", false),
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestVisibleTasksStatusFilter(t *testing.T) {
	tasks := sampleTasks()

	all := VisibleTasks(tasks, TaskControls{Status: StatusAll})
	if len(all) != 4 {
		t.Fatalf("all = %d tasks", len(all))
	}
	active := VisibleTasks(tasks, TaskControls{Status: StatusActive})
	if got := ids(active); !reflect.DeepEqual(got, []string{"d", "c", "a"}) {
		t.Fatalf("active = %v", got)
	}
	completed := VisibleTasks(tasks, TaskControls{Status: StatusCompleted})
	if got := ids(completed); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("completed = %v", got)
	}
}

func TestVisibleTasksCategoryFilter(t *testing.T) {
	tasks := sampleTasks()
	study := VisibleTasks(tasks, TaskControls{Category: "Study"})
	if got := ids(study); !reflect.DeepEqual(got, []string{"d", "b"}) {
		t.Fatalf("study = %v", got)
	}
	if got := VisibleTasks(tasks, TaskControls{Category: CategoryAll}); len(got) != 4 {
		t.Fatalf("category=all hid tasks: %v", ids(got))
	}
}

func TestVisibleTasksSorting(t *testing.T) {
	tasks := sampleTasks()

	byDue := VisibleTasks(tasks, TaskControls{SortBy: SortByDueDate})
	if got := ids(byDue); !reflect.DeepEqual(got, []string{"d", "b", "c", "a"}) {
		t.Fatalf("due-date order = %v", got)
	}

	byPriority := VisibleTasks(tasks, TaskControls{SortBy: SortByPriority})
	// High tasks keep their relative order (stable sort).
	if got := ids(byPriority); !reflect.DeepEqual(got, []string{"b", "d", "c", "a"}) {
		t.Fatalf("priority order = %v", got)
	}
}

func TestVisibleTasksDoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	before := ids(tasks)
	_ = VisibleTasks(tasks, TaskControls{SortBy: SortByDueDate})
	if got := ids(tasks); !reflect.DeepEqual(got, before) {
		t.Fatalf("input reordered: %v", got)
	}
}

func TestTaskCategories(t *testing.T) {
	got := TaskCategories(sampleTasks())
	want := []string{"Assignment", "Personal", "Study"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("categories = %v, want %v", got, want)
	}
}

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	state := model.NewState()
	state.Tasks = []model.Task{
		task("today", "Due today", "2026-09-01", model.PriorityHigh, "Study", false),
		task("edge", "Two days out", "2026-09-03", model.PriorityLow, "Study", false),
		task("done", "Done soon", "2026-09-02", model.PriorityLow, "Study", true),
		task("far", "Far away", "2026-09-20", model.PriorityLow, "Study", false),
		task("past", "Yesterday", "2026-08-31", model.PriorityLow, "Study", false),
		task("bad", "No real date", "someday", model.PriorityLow, "Study", false),
	}
	state.Habits = []model.Habit{
		{ID: "h1", Name: "Run", Goal: 3, Progress: []bool{true, false, true, false, false, false, false}},
		{ID: "h2", Name: "Read", Goal: 2, Progress: []bool{false, false, false, false, false, false, true}},
	}

	d := BuildDashboard(state, now)

	if d.TotalTasks != 6 || d.Completed != 1 {
		t.Fatalf("totals = %d/%d", d.TotalTasks, d.Completed)
	}
	// "done" is inside the window but completed: listed, not counted as due soon.
	if d.DueSoon != 2 {
		t.Fatalf("due soon = %d, want 2", d.DueSoon)
	}
	if got := ids(d.Upcoming); !reflect.DeepEqual(got, []string{"today", "done", "edge"}) {
		t.Fatalf("upcoming = %v", got)
	}
	// 1 of 6 complete rounds to 17%.
	if d.ProgressPct != 17 {
		t.Fatalf("progress = %d%%, want 17%%", d.ProgressPct)
	}
	if d.HabitStreak != 3 {
		t.Fatalf("habit streak = %d, want 3", d.HabitStreak)
	}
}

func TestBuildDashboardEmpty(t *testing.T) {
	d := BuildDashboard(model.NewState(), time.Now())
	if d.ProgressPct != 0 || d.TotalTasks != 0 || len(d.Upcoming) != 0 {
		t.Fatalf("empty dashboard = %+v", d)
	}
}

func TestBuildHabits(t *testing.T) {
	habits := []model.Habit{
		{ID: "h1", Name: "Run", Goal: 2, Progress: []bool{true, true, true, false, false, false, false}},
		{ID: "h2", Name: "Read", Goal: 5, Progress: []bool{true, false, false, false, false, false, false}},
	}

	rows, summary := BuildHabits(habits)
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if !rows[0].Achieved || rows[0].Done != 3 {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].Achieved || rows[1].Done != 1 {
		t.Fatalf("row 1 = %+v", rows[1])
	}
	if summary.Achieved != 1 || summary.Total != 2 {
		t.Fatalf("summary = %+v", summary)
	}
}

func sampleResourceState() model.AppState {
	state := model.NewState()
	state.Resources.Items = []model.Resource{
		{ID: 1, Title: "Go by Example", Description: "Hands-on snippets", Category: "Docs"},
		{ID: 2, Title: "Effective Go", Description: "Style guide", Category: "Docs"},
		{ID: 3, Title: "Lecture recording", Description: "Concurrency intro", Category: "Video"},
	}
	state.Favorites = []int{2}
	return state
}

func resourceIDs(items []model.Resource) []int {
	out := make([]int, len(items))
	for i, r := range items {
		out[i] = r.ID
	}
	return out
}

func TestVisibleResourcesSearch(t *testing.T) {
	state := sampleResourceState()

	// Case-insensitive, matching title or description.
	got := VisibleResources(state, ResourceControls{Search: "GO"})
	if !reflect.DeepEqual(resourceIDs(got), []int{1, 2}) {
		t.Fatalf("search go = %v", resourceIDs(got))
	}
	got = VisibleResources(state, ResourceControls{Search: "concurrency"})
	if !reflect.DeepEqual(resourceIDs(got), []int{3}) {
		t.Fatalf("search concurrency = %v", resourceIDs(got))
	}
	if got := VisibleResources(state, ResourceControls{Search: "zzz"}); len(got) != 0 {
		t.Fatalf("no-match search = %v", resourceIDs(got))
	}
}

func TestVisibleResourcesCategoryAndFavorites(t *testing.T) {
	state := sampleResourceState()

	got := VisibleResources(state, ResourceControls{Category: "Video"})
	if !reflect.DeepEqual(resourceIDs(got), []int{3}) {
		t.Fatalf("video = %v", resourceIDs(got))
	}
	got = VisibleResources(state, ResourceControls{FavOnly: true})
	if !reflect.DeepEqual(resourceIDs(got), []int{2}) {
		t.Fatalf("favorites = %v", resourceIDs(got))
	}
	// Filters compose.
	got = VisibleResources(state, ResourceControls{Category: "Docs", FavOnly: true, Search: "effective"})
	if !reflect.DeepEqual(resourceIDs(got), []int{2}) {
		t.Fatalf("composed = %v", resourceIDs(got))
	}
}

func TestResourceCategories(t *testing.T) {
	got := ResourceCategories(sampleResourceState().Resources.Items)
	if !reflect.DeepEqual(got, []string{"Docs", "Video"}) {
		t.Fatalf("categories = %v", got)
	}
}
