package app

import (
	"strings"

	"daytrack/model"
)

// ValidationError carries one message per offending field, keyed by the
// field name, so a form can surface each message next to its input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, field := range []string{"title", "dueDate", "priority", "category", "name", "goal"} {
		if msg, ok := e.Fields[field]; ok {
			msgs = append(msgs, msg)
		}
	}
	return strings.Join(msgs, " ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = msg
}

func (e *ValidationError) orNil() *ValidationError {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ValidateTask checks the full task form. Category is free-form text but
// must be present.
func ValidateTask(f model.TaskFields) *ValidationError {
	var verr ValidationError
	if len(strings.TrimSpace(f.Title)) < 2 {
		verr.add("title", "Title is required (min 2 chars).")
	}
	if strings.TrimSpace(f.DueDate) == "" {
		verr.add("dueDate", "Due date is required.")
	} else if _, err := model.ParseISODate(f.DueDate); err != nil {
		verr.add("dueDate", "Due date must be YYYY-MM-DD.")
	}
	if !f.Priority.Valid() {
		verr.add("priority", "Select a priority.")
	}
	if strings.TrimSpace(f.Category) == "" {
		verr.add("category", "Select a category.")
	}
	return verr.orNil()
}

// ValidateQuickTask checks the dashboard quick-add pair.
func ValidateQuickTask(title, dueDate string) *ValidationError {
	var verr ValidationError
	if len(strings.TrimSpace(title)) < 2 {
		verr.add("title", "Title required.")
	}
	if strings.TrimSpace(dueDate) == "" {
		verr.add("dueDate", "Due date required.")
	} else if _, err := model.ParseISODate(dueDate); err != nil {
		verr.add("dueDate", "Due date must be YYYY-MM-DD.")
	}
	return verr.orNil()
}

// ValidateHabit checks the habit form. The weekly goal lives in 1..7.
func ValidateHabit(f model.HabitFields) *ValidationError {
	var verr ValidationError
	if len(strings.TrimSpace(f.Name)) < 2 {
		verr.add("name", "Habit name is required.")
	}
	if f.Goal < 1 || f.Goal > model.DaysPerWeek {
		verr.add("goal", "Goal must be between 1 and 7.")
	}
	return verr.orNil()
}
