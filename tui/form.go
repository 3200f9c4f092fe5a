package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"daytrack/app"
	"daytrack/model"
)

type formKind int

const (
	formTask formKind = iota
	formEditTask
	formQuickTask
	formHabit
)

// formField is one entry in a form: either a free-text input or a fixed
// choice cycled with left/right.
type formField struct {
	key     string // matches validation error keys
	label   string
	input   textinput.Model
	options []string
	optIdx  int
	errMsg  string
}

func (f *formField) isChoice() bool { return len(f.options) > 0 }

func (f *formField) value() string {
	if f.isChoice() {
		return f.options[f.optIdx]
	}
	return strings.TrimSpace(f.input.Value())
}

type form struct {
	kind   formKind
	title  string
	taskID string
	fields []formField
	focus  int
}

func textField(key, label, placeholder, value string, limit int) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 36
	ti.SetValue(value)
	return formField{key: key, label: label, input: ti}
}

func choiceField(key, label string, options []string, selected string) formField {
	f := formField{key: key, label: label, options: options}
	for i, o := range options {
		if o == selected {
			f.optIdx = i
			break
		}
	}
	return f
}

var priorityOptions = []string{
	string(model.PriorityLow),
	string(model.PriorityMedium),
	string(model.PriorityHigh),
}

func newTaskForm() *form {
	f := &form{
		kind:  formTask,
		title: "New task",
		fields: []formField{
			textField("title", "Title", "What needs doing?", "", 120),
			textField("dueDate", "Due date", "YYYY-MM-DD", "", 10),
			choiceField("priority", "Priority", priorityOptions, string(model.PriorityMedium)),
			textField("category", "Category", "Study / Assignment / Personal", "", 40),
			textField("description", "Description", "optional", "", 240),
		},
	}
	f.fields[0].input.Focus()
	return f
}

func newEditTaskForm(t model.Task) *form {
	f := &form{
		kind:   formEditTask,
		title:  "Edit task",
		taskID: t.ID,
		fields: []formField{
			textField("title", "Title", "What needs doing?", t.Title, 120),
			textField("dueDate", "Due date", "YYYY-MM-DD", t.DueDate, 10),
			choiceField("priority", "Priority", priorityOptions, string(t.Priority)),
			textField("category", "Category", "Study / Assignment / Personal", t.Category, 40),
			textField("description", "Description", "optional", t.Description, 240),
		},
	}
	f.fields[0].input.Focus()
	return f
}

func newQuickTaskForm() *form {
	f := &form{
		kind:  formQuickTask,
		title: "Quick add",
		fields: []formField{
			textField("title", "Title", "What needs doing?", "", 120),
			textField("dueDate", "Due date", "YYYY-MM-DD", "", 10),
		},
	}
	f.fields[0].input.Focus()
	return f
}

func newHabitForm() *form {
	f := &form{
		kind:  formHabit,
		title: "New habit",
		fields: []formField{
			textField("name", "Name", "e.g. Morning run", "", 80),
			choiceField("goal", "Weekly goal", []string{"1", "2", "3", "4", "5", "6", "7"}, "3"),
		},
	}
	f.fields[0].input.Focus()
	return f
}

func (f *form) value(i int) string { return f.fields[i].value() }

func (f *form) taskFields() model.TaskFields {
	byKey := f.valuesByKey()
	return model.TaskFields{
		Title:       byKey["title"],
		DueDate:     byKey["dueDate"],
		Priority:    model.Priority(byKey["priority"]),
		Category:    byKey["category"],
		Description: byKey["description"],
	}
}

func (f *form) habitFields() model.HabitFields {
	byKey := f.valuesByKey()
	goal, _ := strconv.Atoi(byKey["goal"])
	return model.HabitFields{Name: byKey["name"], Goal: goal}
}

func (f *form) valuesByKey() map[string]string {
	out := make(map[string]string, len(f.fields))
	for i := range f.fields {
		out[f.fields[i].key] = f.fields[i].value()
	}
	return out
}

func (f *form) atLastField() bool { return f.focus == len(f.fields)-1 }

func (f *form) focusNext() { f.setFocus((f.focus + 1) % len(f.fields)) }

func (f *form) focusPrev() { f.setFocus((f.focus + len(f.fields) - 1) % len(f.fields)) }

func (f *form) setFocus(i int) {
	for j := range f.fields {
		f.fields[j].input.Blur()
	}
	f.focus = i
	if !f.fields[i].isChoice() {
		f.fields[i].input.Focus()
	}
}

// update routes a keystroke to the focused field. Choice fields consume
// left/right and space; text fields take everything.
func (f *form) update(msg tea.KeyMsg) tea.Cmd {
	field := &f.fields[f.focus]
	if field.isChoice() {
		switch msg.String() {
		case "left", "h":
			field.optIdx = (field.optIdx + len(field.options) - 1) % len(field.options)
		case "right", "l", " ":
			field.optIdx = (field.optIdx + 1) % len(field.options)
		}
		return nil
	}

	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	field.errMsg = ""
	return cmd
}

// applyErrors attaches validation messages to their fields and moves focus
// to the first offender.
func (f *form) applyErrors(verr *app.ValidationError) {
	first := -1
	for i := range f.fields {
		msg := verr.Fields[f.fields[i].key]
		f.fields[i].errMsg = msg
		if msg != "" && first == -1 {
			first = i
		}
	}
	if first >= 0 {
		f.setFocus(first)
	}
}
