package tui

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"daytrack/app"
	"daytrack/model"
	"daytrack/views"
)

type route int

const (
	routeDashboard route = iota
	routeTasks
	routeHabits
	routeResources
	routeSettings
	routeCount
)

func (r route) String() string {
	switch r {
	case routeTasks:
		return "Tasks"
	case routeHabits:
		return "Habits"
	case routeResources:
		return "Resources"
	case routeSettings:
		return "Settings"
	default:
		return "Dashboard"
	}
}

type uiMode int

const (
	modeNormal uiMode = iota
	modeForm
	modeSearch
	modeConfirm
)

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDeleteTask
	confirmDeleteHabit
	confirmReset
)

// resourcesMsg carries a finished catalog fetch back into Update. The
// generation ties it to the load that started it.
type resourcesMsg struct {
	gen   int
	items []model.Resource
	err   error
}

const fetchTimeout = 10 * time.Second

type Model struct {
	svc          *app.Service
	client       *http.Client
	resourcesURL string
	logger       *slog.Logger

	route route
	mode  uiMode

	taskCursor   int
	taskControls views.TaskControls

	habitCursor int
	dayCursor   int

	resourceCursor   int
	resourceControls views.ResourceControls
	searchInput      textinput.Model

	form *form

	confirmKind confirmKind
	confirmID   string
	confirmName string

	status    string
	statusErr bool
	showHelp  bool

	now func() time.Time

	width  int
	height int
}

func NewModel(svc *app.Service, client *http.Client, resourcesURL string, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}

	search := textinput.New()
	search.Placeholder = "search title or description"
	search.CharLimit = 120
	search.Width = 32

	return &Model{
		svc:          svc,
		client:       client,
		resourcesURL: resourcesURL,
		logger:       logger,
		route:        routeDashboard,
		mode:         modeNormal,
		taskControls: views.TaskControls{
			Status:   views.StatusAll,
			Category: views.CategoryAll,
			SortBy:   views.SortByDueDate,
		},
		resourceControls: views.ResourceControls{Category: views.CategoryAll},
		searchInput:      search,
		now:              time.Now,
		status:           "Ready",
	}
}

func (m *Model) Init() tea.Cmd {
	if rolled, err := m.svc.RolloverWeek(); err != nil {
		m.setStatus("Failed to start the new week: "+err.Error(), true)
	} else if rolled {
		m.setStatus("New week started, habit progress cleared", false)
	}
	return m.startResourceLoad(false)
}

// startResourceLoad begins a catalog fetch and returns the command that
// resolves it. A nil command means the cached catalog is being kept.
func (m *Model) startResourceLoad(force bool) tea.Cmd {
	gen, started := m.svc.BeginResourceLoad(force)
	if !started {
		return nil
	}
	client, url := m.client, m.resourcesURL
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		items, err := app.FetchResources(ctx, client, url)
		return resourcesMsg{gen: gen, items: items, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case resourcesMsg:
		if err := m.svc.CompleteResourceLoad(msg.gen, msg.items, msg.err); err != nil {
			m.setStatus("Failed to store resources: "+err.Error(), true)
			break
		}
		if msg.err != nil {
			m.logger.Warn("resource fetch failed", "error", msg.err)
			m.setStatus("Could not load resources: "+msg.err.Error(), true)
			break
		}
		m.resourceCursor = 0
		m.setStatus(fmt.Sprintf("Loaded %d resources", len(msg.items)), false)
	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m, m.updateFormMode(msg)
		case modeSearch:
			return m, m.updateSearchMode(msg)
		case modeConfirm:
			return m, m.updateConfirmMode(msg)
		default:
			return m.updateNormalMode(msg)
		}
	}
	return m, nil
}

func (m *Model) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "1":
		m.switchRoute(routeDashboard)
	case "2":
		m.switchRoute(routeTasks)
	case "3":
		m.switchRoute(routeHabits)
	case "4":
		m.switchRoute(routeResources)
	case "5":
		m.switchRoute(routeSettings)
	case "tab":
		m.switchRoute((m.route + 1) % routeCount)
	case "shift+tab":
		m.switchRoute((m.route + routeCount - 1) % routeCount)
	case "?":
		m.showHelp = !m.showHelp
	case "esc":
		m.showHelp = false
	default:
		return m.handleRouteKey(msg)
	}
	return m, nil
}

func (m *Model) switchRoute(r route) {
	m.route = r
	m.setStatus(r.String(), false)
}

func (m *Model) handleRouteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.route {
	case routeDashboard:
		m.handleDashboardKey(msg)
	case routeTasks:
		m.handleTasksKey(msg)
	case routeHabits:
		m.handleHabitsKey(msg)
	case routeResources:
		return m, m.handleResourcesKey(msg)
	case routeSettings:
		m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m *Model) handleDashboardKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "a":
		m.openForm(newQuickTaskForm())
	case "s":
		if err := m.svc.SeedTasks(); err != nil {
			m.setStatus("Failed to seed tasks: "+err.Error(), true)
			return
		}
		m.setStatus("Sample tasks added", false)
	}
}

func (m *Model) handleTasksKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "j", "down":
		m.moveTaskCursor(1)
	case "k", "up":
		m.moveTaskCursor(-1)
	case "a":
		m.openForm(newTaskForm())
	case "e":
		task, ok := m.selectedTask()
		if !ok {
			m.setStatus("No task selected", true)
			return
		}
		if !m.svc.EnterTaskEditMode(task.ID) {
			m.setStatus("Task no longer exists", true)
			return
		}
		m.openForm(newEditTaskForm(task))
	case "x", " ":
		task, ok := m.selectedTask()
		if !ok {
			m.setStatus("No task selected", true)
			return
		}
		if err := m.svc.ToggleTaskComplete(task.ID); err != nil {
			m.setStatus("Failed to update task: "+err.Error(), true)
			return
		}
		if task.Completed {
			m.setStatus("Task reopened", false)
		} else {
			m.setStatus("Task completed", false)
		}
	case "d":
		task, ok := m.selectedTask()
		if !ok {
			m.setStatus("No task selected", true)
			return
		}
		m.mode = modeConfirm
		m.confirmKind = confirmDeleteTask
		m.confirmID = task.ID
		m.confirmName = task.Title
	case "f":
		m.cycleStatusFilter()
	case "c":
		m.cycleTaskCategory()
	case "o":
		if m.taskControls.SortBy == views.SortByDueDate {
			m.taskControls.SortBy = views.SortByPriority
			m.setStatus("Sorted by priority", false)
		} else {
			m.taskControls.SortBy = views.SortByDueDate
			m.setStatus("Sorted by due date", false)
		}
		m.taskCursor = 0
	}
}

func (m *Model) cycleStatusFilter() {
	switch m.taskControls.Status {
	case views.StatusAll:
		m.taskControls.Status = views.StatusActive
	case views.StatusActive:
		m.taskControls.Status = views.StatusCompleted
	default:
		m.taskControls.Status = views.StatusAll
	}
	m.taskCursor = 0
	m.setStatus("Filter: "+string(m.taskControls.Status), false)
}

// cycleTaskCategory walks all → each category present → all.
func (m *Model) cycleTaskCategory() {
	cats := views.TaskCategories(m.svc.State().Tasks)
	if len(cats) == 0 {
		m.setStatus("No categories yet", false)
		return
	}
	options := append([]string{views.CategoryAll}, cats...)
	next := options[0]
	for i, c := range options {
		if c == m.taskControls.Category {
			next = options[(i+1)%len(options)]
			break
		}
	}
	m.taskControls.Category = next
	m.taskCursor = 0
	m.setStatus("Category: "+next, false)
}

func (m *Model) handleHabitsKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "j", "down":
		m.moveHabitCursor(1)
	case "k", "up":
		m.moveHabitCursor(-1)
	case "h", "left":
		m.dayCursor = clamp(m.dayCursor-1, 0, model.DaysPerWeek-1)
	case "l", "right":
		m.dayCursor = clamp(m.dayCursor+1, 0, model.DaysPerWeek-1)
	case "a":
		m.openForm(newHabitForm())
	case "x", " ":
		habit, ok := m.selectedHabit()
		if !ok {
			m.setStatus("No habit selected", true)
			return
		}
		if err := m.svc.ToggleHabitDay(habit.ID, m.dayCursor); err != nil {
			m.setStatus("Failed to update habit: "+err.Error(), true)
			return
		}
		m.setStatus(fmt.Sprintf("%s: %s toggled", habit.Name, model.DayLabels[m.dayCursor]), false)
	case "d":
		habit, ok := m.selectedHabit()
		if !ok {
			m.setStatus("No habit selected", true)
			return
		}
		m.mode = modeConfirm
		m.confirmKind = confirmDeleteHabit
		m.confirmID = habit.ID
		m.confirmName = habit.Name
	}
}

func (m *Model) handleResourcesKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "j", "down":
		m.moveResourceCursor(1)
	case "k", "up":
		m.moveResourceCursor(-1)
	case "/":
		m.mode = modeSearch
		m.searchInput.SetValue(m.resourceControls.Search)
		m.searchInput.Focus()
		m.setStatus("Search resources (Enter confirms, Esc clears)", false)
	case "c":
		m.cycleResourceCategory()
	case "F":
		m.resourceControls.FavOnly = !m.resourceControls.FavOnly
		m.resourceCursor = 0
		if m.resourceControls.FavOnly {
			m.setStatus("Showing favorites only", false)
		} else {
			m.setStatus("Showing all resources", false)
		}
	case "x", " ", "enter":
		res, ok := m.selectedResource()
		if !ok {
			m.setStatus("No resource selected", true)
			return nil
		}
		if err := m.svc.ToggleFavorite(res.ID); err != nil {
			m.setStatus("Failed to update favorites: "+err.Error(), true)
			return nil
		}
		if m.svc.IsFavorite(res.ID) {
			m.setStatus("Added to favorites: "+res.Title, false)
		} else {
			m.setStatus("Removed from favorites: "+res.Title, false)
		}
	case "r":
		if cmd := m.startResourceLoad(true); cmd != nil {
			m.setStatus("Reloading resources...", false)
			return cmd
		}
	}
	return nil
}

func (m *Model) cycleResourceCategory() {
	cats := views.ResourceCategories(m.svc.State().Resources.Items)
	if len(cats) == 0 {
		m.setStatus("No resources loaded yet", false)
		return
	}
	options := append([]string{views.CategoryAll}, cats...)
	next := options[0]
	for i, c := range options {
		if c == m.resourceControls.Category {
			next = options[(i+1)%len(options)]
			break
		}
	}
	m.resourceControls.Category = next
	m.resourceCursor = 0
	m.setStatus("Category: "+next, false)
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "t":
		theme, err := m.svc.ToggleTheme()
		if err != nil {
			m.setStatus("Failed to switch theme: "+err.Error(), true)
			return
		}
		m.setStatus("Theme: "+string(theme), false)
	case "s":
		if err := m.svc.SeedTasks(); err != nil {
			m.setStatus("Failed to seed tasks: "+err.Error(), true)
			return
		}
		m.setStatus("Sample tasks added", false)
	case "R":
		m.mode = modeConfirm
		m.confirmKind = confirmReset
		m.confirmName = "all data"
	}
}

func (m *Model) updateSearchMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.resourceControls.Search = ""
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.mode = modeNormal
		m.resourceCursor = 0
		m.setStatus("Search cleared", false)
		return nil
	case "enter":
		m.resourceControls.Search = strings.TrimSpace(m.searchInput.Value())
		m.searchInput.Blur()
		m.mode = modeNormal
		m.resourceCursor = 0
		if m.resourceControls.Search == "" {
			m.setStatus("Search cleared", false)
		} else {
			m.setStatus("Search: "+m.resourceControls.Search, false)
		}
		return nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	// Incremental: the list narrows as you type.
	m.resourceControls.Search = strings.TrimSpace(m.searchInput.Value())
	m.resourceCursor = 0
	return cmd
}

func (m *Model) updateConfirmMode(msg tea.KeyMsg) tea.Cmd {
	switch strings.ToLower(msg.String()) {
	case "y":
		return m.performConfirmed()
	case "n", "esc", "enter":
		m.clearConfirm()
		m.setStatus("Cancelled", false)
	}
	return nil
}

func (m *Model) performConfirmed() tea.Cmd {
	switch m.confirmKind {
	case confirmDeleteTask:
		deleted, err := m.svc.DeleteTask(m.confirmID)
		if err != nil {
			m.setStatus("Failed to delete task: "+err.Error(), true)
			break
		}
		if !deleted {
			m.setStatus("Task was already gone", false)
			break
		}
		m.taskCursor = 0
		m.setStatus("Task deleted", false)
	case confirmDeleteHabit:
		deleted, err := m.svc.DeleteHabit(m.confirmID)
		if err != nil {
			m.setStatus("Failed to delete habit: "+err.Error(), true)
			break
		}
		if !deleted {
			m.setStatus("Habit was already gone", false)
			break
		}
		m.habitCursor = 0
		m.setStatus("Habit deleted", false)
	case confirmReset:
		done, err := m.svc.Reset()
		if err != nil {
			m.setStatus("Reset failed: "+err.Error(), true)
			break
		}
		if done {
			m.taskCursor = 0
			m.habitCursor = 0
			m.resourceCursor = 0
			m.setStatus("All data wiped", false)
			m.clearConfirm()
			// The catalog was wiped with everything else.
			return m.startResourceLoad(true)
		}
	}
	m.clearConfirm()
	return nil
}

func (m *Model) clearConfirm() {
	m.mode = modeNormal
	m.confirmKind = confirmNone
	m.confirmID = ""
	m.confirmName = ""
}

func (m *Model) updateFormMode(msg tea.KeyMsg) tea.Cmd {
	if m.form == nil {
		m.mode = modeNormal
		return nil
	}
	switch msg.String() {
	case "esc", "ctrl+c":
		if m.form.kind == formEditTask {
			m.svc.ExitTaskEditMode()
		}
		m.form = nil
		m.mode = modeNormal
		m.setStatus("Cancelled", false)
		return nil
	case "tab", "down":
		m.form.focusNext()
		return nil
	case "shift+tab", "up":
		m.form.focusPrev()
		return nil
	case "enter":
		if !m.form.atLastField() {
			m.form.focusNext()
			return nil
		}
		m.submitForm()
		return nil
	case "ctrl+s":
		m.submitForm()
		return nil
	}
	return m.form.update(msg)
}

func (m *Model) submitForm() {
	f := m.form
	var err error
	var success string

	switch f.kind {
	case formQuickTask:
		_, err = m.svc.QuickAddTask(f.value(0), f.value(1))
		success = "Task added"
	case formTask:
		_, err = m.svc.AddTask(f.taskFields())
		success = "Task added"
	case formEditTask:
		_, err = m.svc.UpdateTask(f.taskID, f.taskFields())
		if err == nil {
			m.svc.ExitTaskEditMode()
		}
		success = "Task updated"
	case formHabit:
		_, err = m.svc.AddHabit(f.habitFields())
		success = "Habit added"
	}

	if err != nil {
		if verr, ok := err.(*app.ValidationError); ok {
			f.applyErrors(verr)
			m.setStatus("Fix the highlighted fields", true)
			return
		}
		m.setStatus("Save failed: "+err.Error(), true)
		return
	}

	m.form = nil
	m.mode = modeNormal
	m.taskCursor = 0
	m.setStatus(success, false)
}

func (m *Model) openForm(f *form) {
	m.form = f
	m.mode = modeForm
}

// ---------- selection helpers ----------

func (m *Model) visibleTasks() []model.Task {
	return views.VisibleTasks(m.svc.State().Tasks, m.taskControls)
}

func (m *Model) selectedTask() (model.Task, bool) {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		return model.Task{}, false
	}
	m.taskCursor = clamp(m.taskCursor, 0, len(tasks)-1)
	return tasks[m.taskCursor], true
}

func (m *Model) moveTaskCursor(delta int) {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		return
	}
	m.taskCursor = clamp(m.taskCursor+delta, 0, len(tasks)-1)
}

func (m *Model) selectedHabit() (model.Habit, bool) {
	habits := m.svc.State().Habits
	if len(habits) == 0 {
		return model.Habit{}, false
	}
	m.habitCursor = clamp(m.habitCursor, 0, len(habits)-1)
	return habits[m.habitCursor], true
}

func (m *Model) moveHabitCursor(delta int) {
	habits := m.svc.State().Habits
	if len(habits) == 0 {
		return
	}
	m.habitCursor = clamp(m.habitCursor+delta, 0, len(habits)-1)
}

func (m *Model) visibleResources() []model.Resource {
	return views.VisibleResources(m.svc.State(), m.resourceControls)
}

func (m *Model) selectedResource() (model.Resource, bool) {
	items := m.visibleResources()
	if len(items) == 0 {
		return model.Resource{}, false
	}
	m.resourceCursor = clamp(m.resourceCursor, 0, len(items)-1)
	return items[m.resourceCursor], true
}

func (m *Model) moveResourceCursor(delta int) {
	items := m.visibleResources()
	if len(items) == 0 {
		return
	}
	m.resourceCursor = clamp(m.resourceCursor+delta, 0, len(items)-1)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
