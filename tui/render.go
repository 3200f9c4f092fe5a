package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"daytrack/model"
	"daytrack/views"
)

// palette holds the theme-dependent colors. Everything else stays neutral
// so the two themes render the same layout.
type palette struct {
	accent lipgloss.Color
	text   lipgloss.Color
	muted  lipgloss.Color
	danger lipgloss.Color
	good   lipgloss.Color
	star   lipgloss.Color
	frame  lipgloss.Color
}

var darkPalette = palette{
	accent: lipgloss.Color("39"),
	text:   lipgloss.Color("252"),
	muted:  lipgloss.Color("244"),
	danger: lipgloss.Color("9"),
	good:   lipgloss.Color("70"),
	star:   lipgloss.Color("220"),
	frame:  lipgloss.Color("240"),
}

var lightPalette = palette{
	accent: lipgloss.Color("27"),
	text:   lipgloss.Color("235"),
	muted:  lipgloss.Color("245"),
	danger: lipgloss.Color("124"),
	good:   lipgloss.Color("28"),
	star:   lipgloss.Color("130"),
	frame:  lipgloss.Color("249"),
}

func (m *Model) palette() palette {
	if m.svc.State().Settings.Theme == model.ThemeLight {
		return lightPalette
	}
	return darkPalette
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	p := m.palette()
	viewW := m.viewportWidth()

	parts := []string{m.renderHeader(p, viewW)}

	body := m.renderBody(p, viewW)
	if m.showHelp {
		body = lipgloss.Place(viewW, lipgloss.Height(body), lipgloss.Center, lipgloss.Center, m.renderHelpOverlay(p))
	}
	parts = append(parts, body)

	if m.mode == modeForm && m.form != nil {
		parts = append(parts, m.renderForm(p, viewW))
	}
	if m.mode == modeConfirm {
		parts = append(parts, m.renderConfirmPrompt(p, viewW))
	}

	parts = append(parts, m.renderFooter(p))
	return strings.Join(parts, "\n")
}

func (m *Model) renderHeader(p palette, width int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(p.accent).Render("daytrack")

	tabs := make([]string, 0, int(routeCount))
	for r := routeDashboard; r < routeCount; r++ {
		label := fmt.Sprintf("%d:%s", int(r)+1, r.String())
		style := lipgloss.NewStyle().Foreground(p.muted)
		if r == m.route {
			style = lipgloss.NewStyle().Bold(true).Foreground(p.accent).Underline(true)
		}
		tabs = append(tabs, style.Render(label))
	}

	line := lipgloss.JoinHorizontal(lipgloss.Left, title, "   ", strings.Join(tabs, "  "))
	return lipgloss.NewStyle().Width(width).Render(line)
}

func (m *Model) renderBody(p palette, width int) string {
	switch m.route {
	case routeTasks:
		return m.renderTasks(p, width)
	case routeHabits:
		return m.renderHabits(p, width)
	case routeResources:
		return m.renderResources(p, width)
	case routeSettings:
		return m.renderSettings(p, width)
	default:
		return m.renderDashboard(p, width)
	}
}

func (m *Model) renderDashboard(p palette, width int) string {
	d := views.BuildDashboard(m.svc.State(), m.now())

	card := func(label string, value string) string {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.frame).
			Padding(0, 2).
			Render(lipgloss.NewStyle().Bold(true).Foreground(p.accent).Render(value) + "\n" +
				lipgloss.NewStyle().Foreground(p.muted).Render(label))
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("due soon", fmt.Sprintf("%d", d.DueSoon)), " ",
		card("completed", fmt.Sprintf("%d", d.Completed)), " ",
		card("habit checks", fmt.Sprintf("%d", d.HabitStreak)), " ",
		card("progress", fmt.Sprintf("%d%%", d.ProgressPct)),
	)

	lines := []string{cards, "", sectionTitle(p, fmt.Sprintf("Upcoming (%d items)", len(d.Upcoming)))}
	if len(d.Upcoming) == 0 {
		lines = append(lines, mutedLine(p, "No upcoming tasks. Add some tasks to see them here."))
	}
	for _, t := range d.Upcoming {
		check := ""
		if t.Completed {
			check = " ✓"
		}
		lines = append(lines, fmt.Sprintf("  %s%s  %s",
			lipgloss.NewStyle().Foreground(p.text).Render(t.Title),
			lipgloss.NewStyle().Foreground(p.good).Render(check),
			mutedLine(p, fmt.Sprintf("due %s • %s • %s", t.DueDate, t.Priority, t.Category)),
		))
	}
	lines = append(lines, "", mutedLine(p, "a quick add • s sample tasks"))
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderTasks(p palette, width int) string {
	tasks := m.visibleTasks()

	header := sectionTitle(p, fmt.Sprintf("Tasks (%d)", len(tasks))) + "  " +
		mutedLine(p, fmt.Sprintf("filter: %s • category: %s • sort: %s",
			m.taskControls.Status, m.taskControls.Category, m.taskControls.SortBy))

	lines := []string{header}
	if len(tasks) == 0 {
		lines = append(lines, mutedLine(p, "No tasks found. Press 'a' to add one."))
	}
	for i, t := range tasks {
		cursor := " "
		if i == m.taskCursor {
			cursor = "▸"
		}
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}

		style := lipgloss.NewStyle().Foreground(p.text)
		if t.Completed {
			style = style.Faint(true)
		}
		if i == m.taskCursor {
			style = style.Bold(true).Foreground(p.accent)
		}

		line := fmt.Sprintf("%s %s %s %s  %s", cursor, check, priorityDot(p, t.Priority),
			style.Render(t.Title),
			mutedLine(p, fmt.Sprintf("due %s • %s", t.DueDate, t.Category)))
		lines = append(lines, line)
		if i == m.taskCursor && t.Description != "" {
			lines = append(lines, "      "+mutedLine(p, t.Description))
		}
	}
	lines = append(lines, "", mutedLine(p, "a add • e edit • x done • d delete • f filter • c category • o sort"))
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderHabits(p palette, width int) string {
	state := m.svc.State()
	rows, summary := views.BuildHabits(state.Habits)

	header := sectionTitle(p, fmt.Sprintf("Habits — week of %s", state.Settings.WeekStartISO)) + "  " +
		mutedLine(p, fmt.Sprintf("%d / %d achieved", summary.Achieved, summary.Total))

	lines := []string{header}
	if len(rows) == 0 {
		lines = append(lines, mutedLine(p, "No habits yet. Press 'a' to add one."))
	}
	for i, row := range rows {
		cursor := " "
		if i == m.habitCursor {
			cursor = "▸"
		}
		nameStyle := lipgloss.NewStyle().Foreground(p.text)
		if i == m.habitCursor {
			nameStyle = nameStyle.Bold(true).Foreground(p.accent)
		}
		pill := fmt.Sprintf("%d / %d", row.Done, row.Habit.Goal)
		pillStyle := lipgloss.NewStyle().Foreground(p.muted)
		if row.Achieved {
			pillStyle = lipgloss.NewStyle().Foreground(p.good).Bold(true)
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s", cursor, nameStyle.Render(row.Habit.Name), pillStyle.Render(pill)))

		cells := make([]string, 0, model.DaysPerWeek)
		for day := 0; day < model.DaysPerWeek; day++ {
			label := model.DayLabels[day]
			style := lipgloss.NewStyle().Foreground(p.muted)
			if day < len(row.Habit.Progress) && row.Habit.Progress[day] {
				style = lipgloss.NewStyle().Foreground(p.good).Bold(true)
			}
			cell := style.Render(label)
			if i == m.habitCursor && day == m.dayCursor {
				cell = lipgloss.NewStyle().Underline(true).Render(cell)
			}
			cells = append(cells, cell)
		}
		lines = append(lines, "    "+strings.Join(cells, " "))
	}
	lines = append(lines, "", mutedLine(p, "a add • j/k habit • h/l day • x toggle day • d delete"))
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderResources(p palette, width int) string {
	state := m.svc.State()
	res := state.Resources

	switch res.Status {
	case model.FetchLoading:
		return lipgloss.NewStyle().Width(width).Render(
			sectionTitle(p, "Resources") + "\n" + mutedLine(p, "Loading resources..."))
	case model.FetchError:
		return lipgloss.NewStyle().Width(width).Render(
			sectionTitle(p, "Resources") + "\n" +
				lipgloss.NewStyle().Foreground(p.danger).Render("Error: "+res.Error) + "\n" +
				mutedLine(p, "r retry"))
	}

	items := m.visibleResources()
	filters := fmt.Sprintf("category: %s", m.resourceControls.Category)
	if m.resourceControls.FavOnly {
		filters += " • favorites only"
	}
	if m.resourceControls.Search != "" {
		filters += fmt.Sprintf(" • search: %q", m.resourceControls.Search)
	}
	header := sectionTitle(p, fmt.Sprintf("Resources (%d)", len(items))) + "  " + mutedLine(p, filters)

	lines := []string{header}
	if m.mode == modeSearch {
		lines = append(lines, "  / "+m.searchInput.View())
	}
	if len(items) == 0 {
		lines = append(lines, mutedLine(p, "No matching resources."))
	}
	for i, r := range items {
		cursor := " "
		if i == m.resourceCursor {
			cursor = "▸"
		}
		star := lipgloss.NewStyle().Foreground(p.muted).Render("☆")
		if m.svc.IsFavorite(r.ID) {
			star = lipgloss.NewStyle().Foreground(p.star).Render("★")
		}
		titleStyle := lipgloss.NewStyle().Foreground(p.text)
		if i == m.resourceCursor {
			titleStyle = titleStyle.Bold(true).Foreground(p.accent)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s  %s", cursor, star, titleStyle.Render(r.Title),
			mutedLine(p, r.Category)))
		if i == m.resourceCursor {
			if r.Description != "" {
				lines = append(lines, "      "+mutedLine(p, r.Description))
			}
			if r.Link != "" {
				lines = append(lines, "      "+lipgloss.NewStyle().Foreground(p.accent).Render(r.Link))
			}
		}
	}
	lines = append(lines, "", mutedLine(p, "x favorite • / search • c category • F favorites only • r reload"))
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderSettings(p palette, width int) string {
	state := m.svc.State()
	lines := []string{
		sectionTitle(p, "Settings"),
		fmt.Sprintf("  Theme:       %s", lipgloss.NewStyle().Foreground(p.accent).Render(string(state.Settings.Theme))),
		fmt.Sprintf("  Week start:  %s", lipgloss.NewStyle().Foreground(p.text).Render(state.Settings.WeekStartISO)),
		fmt.Sprintf("  Tasks:       %d", len(state.Tasks)),
		fmt.Sprintf("  Habits:      %d", len(state.Habits)),
		fmt.Sprintf("  Favorites:   %d", len(state.Favorites)),
		"",
		mutedLine(p, "t toggle theme • s sample tasks • R reset all data"),
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderForm(p palette, width int) string {
	f := m.form
	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(p.accent).Render(f.title)}
	for i := range f.fields {
		field := &f.fields[i]
		marker := "  "
		if i == f.focus {
			marker = "▸ "
		}
		label := lipgloss.NewStyle().Foreground(p.muted).Width(12).Render(field.label)

		var valueView string
		if field.isChoice() {
			parts := make([]string, len(field.options))
			for j, opt := range field.options {
				style := lipgloss.NewStyle().Foreground(p.muted)
				if j == field.optIdx {
					style = lipgloss.NewStyle().Bold(true).Foreground(p.accent)
				}
				parts[j] = style.Render(opt)
			}
			valueView = strings.Join(parts, " ")
		} else {
			valueView = field.input.View()
		}

		lines = append(lines, marker+label+" "+valueView)
		if field.errMsg != "" {
			lines = append(lines, "    "+lipgloss.NewStyle().Foreground(p.danger).Render(field.errMsg))
		}
	}
	lines = append(lines, mutedLine(p, "Tab next field • Enter submit on last field • Esc cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.accent).
		Padding(0, 1).
		Width(min(width-2, 64)).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderConfirmPrompt(p palette, width int) string {
	var prompt string
	switch m.confirmKind {
	case confirmDeleteTask:
		prompt = fmt.Sprintf("Delete task %q? [y/N]", m.confirmName)
	case confirmDeleteHabit:
		prompt = fmt.Sprintf("Delete habit %q? [y/N]", m.confirmName)
	case confirmReset:
		prompt = "Reset ALL data? This cannot be undone. [y/N]"
	}
	return lipgloss.NewStyle().Foreground(p.star).Width(width).Render(prompt)
}

func (m *Model) renderHelpOverlay(p palette) string {
	title := lipgloss.NewStyle().Bold(true).Render("Shortcuts")
	section := lipgloss.NewStyle().Foreground(p.accent).Bold(true)
	line := lipgloss.NewStyle().Foreground(p.text)

	rows := []string{
		title,
		"",
		section.Render("Global"),
		line.Render("  1..5 pages • Tab next page • q quit • ? help"),
		"",
		section.Render("Tasks"),
		line.Render("  a add • e edit • x complete • d delete"),
		line.Render("  f status filter • c category • o sort"),
		"",
		section.Render("Habits"),
		line.Render("  a add • h/l pick day • x toggle day • d delete"),
		"",
		section.Render("Resources"),
		line.Render("  x favorite • / search • c category • F favorites • r reload"),
		"",
		section.Render("Settings"),
		line.Render("  t theme • s sample tasks • R reset"),
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.frame).
		Padding(1, 2).
		Render(strings.Join(rows, "\n"))
}

func (m *Model) renderFooter(p palette) string {
	left := strings.TrimSpace(m.status)
	if left == "" {
		left = "Ready"
	}
	right := "? help"
	if m.showHelp {
		right = "Esc/? close help"
	}

	statusStyle := lipgloss.NewStyle().Foreground(p.good)
	if m.statusErr {
		statusStyle = lipgloss.NewStyle().Foreground(p.danger)
	}

	width := m.viewportWidth()
	leftW := utf8.RuneCountInString(left)
	rightW := utf8.RuneCountInString(right)
	if leftW+rightW+1 > width {
		maxLeft := width - rightW - 1
		if maxLeft < 8 {
			maxLeft = 8
		}
		left = truncateRunes(left, maxLeft)
		leftW = utf8.RuneCountInString(left)
	}

	padding := width - leftW - rightW
	if padding < 1 {
		padding = 1
	}
	return statusStyle.Render(left) + strings.Repeat(" ", padding) +
		lipgloss.NewStyle().Foreground(p.muted).Render(right)
}

func (m *Model) viewportWidth() int {
	// One column is held back to avoid clipping the last rune in some
	// terminals.
	if m.width > 1 {
		return m.width - 1
	}
	if m.width <= 0 {
		return 1
	}
	return m.width
}

func sectionTitle(p palette, text string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(p.text).Render(text)
}

func mutedLine(p palette, text string) string {
	return lipgloss.NewStyle().Foreground(p.muted).Render(text)
}

func priorityDot(p palette, pr model.Priority) string {
	switch pr {
	case model.PriorityHigh:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render("●")
	case model.PriorityMedium:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Render("●")
	case model.PriorityLow:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Render("●")
	default:
		return lipgloss.NewStyle().Foreground(p.muted).Render("•")
	}
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}
