package ui

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"smarttodo/internal/task"
)

// formState walks the add/edit dialog field by field through the shared
// text input. taskID is 0 while adding.
type formState struct {
	taskID      int
	name        string
	description string
	category    string
	priority    string
	due         string
	index       int
}

func formFields() []string {
	return []string{"name", "description", "category", "priority", "due date (YYYY-MM-DD)"}
}

func (fs formState) currentLabel() string {
	return formFields()[fs.index]
}

func (fs formState) currentValue() string {
	switch fs.index {
	case 0:
		return fs.name
	case 1:
		return fs.description
	case 2:
		return fs.category
	case 3:
		return fs.priority
	case 4:
		return fs.due
	default:
		return ""
	}
}

func (fs *formState) setCurrentValue(v string) {
	switch fs.index {
	case 0:
		fs.name = v
	case 1:
		fs.description = v
	case 2:
		fs.category = v
	case 3:
		fs.priority = v
	case 4:
		fs.due = v
	}
}

func (m Model) startForm(existing *task.Task) (tea.Model, tea.Cmd) {
	fs := &formState{}
	if existing != nil {
		fs.taskID = existing.ID
		fs.name = existing.Name
		fs.description = existing.Description
		fs.category = existing.Category
		fs.priority = existing.PriorityText()
		fs.due = existing.DueText()
	}
	m.form = fs
	m.input.SetValue(fs.currentValue())
	m.input.Placeholder = fs.currentLabel()
	m.input.Focus()
	if existing == nil {
		m.status = "Add task: enter to save/next field, esc to cancel"
	} else {
		m.status = "Edit task: enter to save/next field, esc to cancel"
	}
	return m, nil
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.input.Blur()
		m.status = "Edit cancelled"
		return m, nil
	case "tab", "down":
		if m.form == nil {
			return m, nil
		}
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index+1, len(formFields()))
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		m.status = m.formPrompt()
		return m, nil
	case "shift+tab", "up":
		if m.form == nil {
			return m, nil
		}
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index-1, len(formFields()))
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		m.status = m.formPrompt()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		if m.form == nil {
			return m, nil
		}
		m.form.setCurrentValue(m.input.Value())
		if m.form.index >= len(formFields())-1 {
			return m.saveForm()
		}
		m.form.index++
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		m.status = m.formPrompt()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveForm() (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	name := strings.TrimSpace(m.form.name)
	if name == "" {
		m.status = "Name cannot be empty"
		m.form.index = 0
		m.input.SetValue(m.form.name)
		m.input.Placeholder = m.form.currentLabel()
		return m, nil
	}
	priority, err := parsePriority(m.form.priority)
	if err != nil {
		m.status = fmt.Sprintf("priority invalid: %v", err)
		return m, nil
	}
	due, err := parseDate(m.form.due)
	if err != nil {
		m.status = fmt.Sprintf("due date invalid: %v", err)
		return m, nil
	}

	t := task.Task{
		ID:          m.form.taskID,
		Name:        name,
		Description: strings.TrimSpace(m.form.description),
		Category:    strings.TrimSpace(m.form.category),
		Priority:    priority,
		Due:         due,
	}
	if m.form.taskID == 0 {
		t.ID = m.collection.NextID()
		t.CreatedAt = time.Now().UTC()
		m.collection.Append(t)
	} else {
		if prev, ok := m.collection.Get(m.form.taskID); ok {
			t.Completed = prev.Completed
			t.CreatedAt = prev.CreatedAt
		}
		if !m.collection.Update(t) {
			m.status = "Task no longer exists"
			m.form = nil
			m.input.Blur()
			return m, nil
		}
	}

	m.form = nil
	m.input.Blur()

	if err := m.store.Save(m.collection.Tasks()); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	m.refreshView()
	for i, v := range m.visible {
		if v.ID == t.ID {
			m.cursor = clampCursor(i, len(m.visible))
			break
		}
	}
	m.status = "Task saved"
	return m, nil
}

func (m Model) formPrompt() string {
	if m.form == nil {
		return ""
	}
	return fmt.Sprintf("Editing %s (field %d of %d). Enter to advance, Esc to cancel.",
		m.form.currentLabel(), m.form.index+1, len(formFields()))
}

func (m Model) renderFormBox() string {
	if m.form == nil {
		return ""
	}
	fields := formFields()
	values := []string{
		m.form.name,
		m.form.description,
		m.form.category,
		m.form.priority,
		m.form.due,
	}
	var b strings.Builder
	for i, name := range fields {
		prefix := " "
		if i == m.form.index {
			prefix = ">"
		}
		val := values[i]
		if strings.TrimSpace(val) == "" {
			val = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-22s : %s\n", prefix, name, val))
	}
	return b.String()
}

func parsePriority(v string) (sql.NullInt64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return sql.NullInt64{}, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return sql.NullInt64{}, err
	}
	return sql.NullInt64{Int64: n, Valid: true}, nil
}

func parseDate(v string) (sql.NullTime, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return sql.NullTime{}, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return sql.NullTime{}, err
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
