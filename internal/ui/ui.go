package ui

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"smarttodo/internal/config"
	"smarttodo/internal/filter"
	"smarttodo/internal/task"
)

// TaskStore is the persistence surface the controller needs: load once at
// startup, save after every successful mutation batch.
type TaskStore interface {
	Load() ([]task.Task, error)
	Save([]task.Task) error
}

type mode int

const (
	modeList mode = iota
	modeSearch
	modeDate
	modeForm
)

// collectionChangedMsg is posted into the program loop by the collection
// observer so external mutations re-derive options and the filtered view.
type collectionChangedMsg struct{}

type Model struct {
	store      TaskStore
	cfg        config.Config
	collection *task.Collection

	visible []task.Task
	cursor  int
	mode    mode

	categoryOptions []string
	priorityOptions []string
	categorySel     string
	prioritySel     string
	completionSel   string
	dueFilter       sql.NullTime

	input  textinput.Model
	search textinput.Model

	confirmDel bool
	pendingDel *task.Task
	form       *formState
	status     string
}

func NewModel(store TaskStore, cfg config.Config, collection *task.Collection) Model {
	ti := textinput.New()
	ti.Placeholder = "name"
	ti.CharLimit = 256
	ti.Width = 40

	si := textinput.New()
	si.Placeholder = "search"
	si.CharLimit = 128
	si.Width = 24

	m := Model{
		store:         store,
		cfg:           cfg,
		collection:    collection,
		mode:          modeList,
		input:         ti,
		search:        si,
		completionSel: defaultCompletion(cfg.DefaultFilter),
		status:        "Press 'a' to add, '/' to search, 'c/p/s' to filter.",
	}
	m.refreshView()
	return m
}

func defaultCompletion(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "completed", "done":
		return filter.Completed
	case "pending", "not completed":
		return filter.NotCompleted
	default:
		return filter.AllTasks
	}
}

// Run loads the collection, wires the change observer into the event loop,
// and runs the program until quit.
func Run(store TaskStore, cfg config.Config) error {
	tasks, err := store.Load()
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	collection := task.NewCollection(tasks)

	m := NewModel(store, cfg, collection)
	program := tea.NewProgram(m)

	// Send would block if called from inside Update, and every mutation
	// happens there, so the observer hands off to a fresh goroutine.
	unsubscribe := collection.Subscribe(func() {
		go program.Send(collectionChangedMsg{})
	})
	defer unsubscribe()

	_, err = program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case collectionChangedMsg:
		m.refreshView()
		return m, nil
	case tea.KeyMsg:
		if m.form != nil {
			return m.updateFormMode(msg.String(), msg)
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearchMode(msg.String(), msg)
		case modeDate:
			return m.updateDateMode(msg.String(), msg)
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(m.visible) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(m.visible))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.visible))
		}
	case m.cfg.Keys.Add:
		return m.startForm(nil)
	case m.cfg.Keys.Edit:
		if len(m.visible) == 0 {
			m.status = "No tasks to edit"
			return m, nil
		}
		t := m.visible[m.cursor]
		return m.startForm(&t)
	case m.cfg.Keys.Toggle:
		return m.toggleDone()
	case m.cfg.Keys.Delete:
		if len(m.visible) == 0 {
			return m, nil
		}
		t := m.visible[m.cursor]
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", t.Name)
	case m.cfg.Keys.Detail:
		m.showDetail()
	case m.cfg.Keys.Search:
		m.mode = modeSearch
		m.search.Focus()
		m.status = "Search: type to filter, enter/esc to leave"
	case m.cfg.Keys.Category:
		m.categorySel = cycleOption(m.categoryOptions, m.categorySel)
		m.applyFilters()
		m.status = "Category: " + m.categorySel
	case m.cfg.Keys.Priority:
		m.prioritySel = cycleOption(m.priorityOptions, m.prioritySel)
		m.applyFilters()
		m.status = "Priority: " + m.prioritySel
	case m.cfg.Keys.Status:
		m.completionSel = cycleOption(filter.CompletionOptions(), m.completionSel)
		m.applyFilters()
		m.status = "Status: " + m.completionSel
	case m.cfg.Keys.DueFilter:
		m.mode = modeDate
		m.input.Placeholder = "due date filter (YYYY-MM-DD)"
		m.input.SetValue(formatDate(m.dueFilter))
		m.input.Focus()
		m.status = "Date filter: enter to apply, empty to clear, esc to cancel"
	case m.cfg.Keys.ClearFilters:
		m.clearFilters()
	case m.cfg.Keys.ClearCompleted:
		m.clearCompleted()
	case m.cfg.Keys.ClearOverdue:
		m.clearOverdue()
	}
	return m, nil
}

func (m Model) toggleDone() (tea.Model, tea.Cmd) {
	if len(m.visible) == 0 {
		return m, nil
	}
	t := m.visible[m.cursor]
	t.Completed = !t.Completed
	if !m.collection.Update(t) {
		m.status = "Task no longer exists"
		return m, nil
	}
	if err := m.store.Save(m.collection.Tasks()); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	m.refreshView()
	m.status = "Toggled task"
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		if !m.collection.Remove(m.pendingDel.ID) {
			m.status = "Task no longer exists"
			m.confirmDel = false
			m.pendingDel = nil
			return m, nil
		}
		if err := m.store.Save(m.collection.Tasks()); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
		} else {
			m.status = "Deleted task"
		}
		m.refreshView()
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) updateSearchMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc", m.cfg.Keys.Confirm, "enter":
		m.mode = modeList
		m.search.Blur()
		m.status = "Search applied"
		return m, nil
	default:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		// Live search: the predicate reapplies on every keystroke.
		m.applyFilters()
		return m, cmd
	}
}

func (m Model) updateDateMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeList
		m.input.Blur()
		m.status = "Date filter unchanged"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		due, err := parseDate(m.input.Value())
		if err != nil {
			m.status = fmt.Sprintf("date invalid: %v", err)
			return m, nil
		}
		m.dueFilter = due
		m.mode = modeList
		m.input.Blur()
		m.applyFilters()
		if due.Valid {
			m.status = "Due filter: " + due.Time.Format(time.DateOnly)
		} else {
			m.status = "Date filter cleared"
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) showDetail() {
	if len(m.visible) == 0 {
		m.status = "No tasks"
		return
	}
	t := m.visible[m.cursor]
	info := fmt.Sprintf("Task #%d • %s • %s", t.ID, t.Name, humanDone(t.Completed))
	if strings.TrimSpace(t.Description) != "" {
		info += " • " + t.Description
	}
	if t.Category != "" {
		info += " • category:" + t.Category
	}
	if t.Priority.Valid {
		info += " • priority:" + t.PriorityText()
	}
	if t.Due.Valid {
		info += " • due:" + t.DueText()
	}
	m.status = info
}

// criteria snapshots the filter controls. Rebuilt on every application.
func (m Model) criteria() filter.Criteria {
	return filter.Criteria{
		Category:   m.categorySel,
		Priority:   m.prioritySel,
		Completion: m.completionSel,
		Due:        m.dueFilter,
		Keyword:    m.search.Value(),
	}
}

// applyFilters recomputes the derived view from the full collection.
func (m *Model) applyFilters() {
	m.visible = filter.Apply(m.criteria(), m.collection.Tasks())
	m.cursor = clampCursor(m.cursor, len(m.visible))
}

// refreshOptions re-derives the category and priority choices and restores
// the previous selection when it is still offered. Must run before the
// predicate reapplies so a stale selection falls back first.
func (m *Model) refreshOptions() {
	tasks := m.collection.Tasks()
	m.categoryOptions = filter.CategoryOptions(tasks)
	m.categorySel = filter.RestoreSelection(m.categoryOptions, m.categorySel)
	m.priorityOptions = filter.PriorityOptions(tasks)
	m.prioritySel = filter.RestoreSelection(m.priorityOptions, m.prioritySel)
}

func (m *Model) refreshView() {
	m.refreshOptions()
	m.applyFilters()
}

func (m *Model) clearFilters() {
	m.categorySel = filter.AllCategories
	m.prioritySel = filter.AllPriorities
	m.completionSel = filter.AllTasks
	m.dueFilter = sql.NullTime{}
	m.search.SetValue("")
	m.applyFilters()
	m.status = "Filters cleared"
}

func (m *Model) clearCompleted() {
	if m.collection.Len() == 0 {
		m.status = "No tasks"
		return
	}
	removed := m.collection.RemoveIf(func(t task.Task) bool { return t.Completed })
	if removed == 0 {
		m.status = "No completed tasks"
		return
	}
	if err := m.store.Save(m.collection.Tasks()); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	m.refreshView()
	m.status = fmt.Sprintf("Cleared %d completed task(s)", removed)
}

func (m *Model) clearOverdue() {
	if m.collection.Len() == 0 {
		m.status = "No tasks"
		return
	}
	today := time.Now()
	removed := m.collection.RemoveIf(func(t task.Task) bool { return t.OverdueAt(today) })
	if removed == 0 {
		m.status = "No overdue tasks"
		return
	}
	if err := m.store.Save(m.collection.Tasks()); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	m.refreshView()
	m.status = fmt.Sprintf("Cleared %d overdue task(s)", removed)
}

func cycleOption(options []string, current string) string {
	if len(options) == 0 {
		return current
	}
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(Title.Render("Smart ToDo"))
	b.WriteString("\n\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n\n")

	if m.collection.Len() == 0 {
		b.WriteString(Muted.Render("No tasks yet. Press 'a' to add one."))
	} else if len(m.visible) == 0 {
		b.WriteString(Muted.Render("No tasks match the current filters."))
	} else {
		b.WriteString(m.renderTaskList())
	}

	if m.form != nil {
		b.WriteString("\n---\n")
		b.WriteString(m.renderFormBox())
		b.WriteString("\n")
		b.WriteString("Field: " + m.form.currentLabel())
		b.WriteString("\n")
		b.WriteString(m.input.View())
	}
	if m.mode == modeDate {
		b.WriteString("\n---\n")
		b.WriteString("Due date filter: ")
		b.WriteString(m.input.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(Muted.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) renderFilterBar() string {
	sel := func(v, sentinel string) string {
		if v == "" || v == sentinel {
			return Muted.Render(sentinel)
		}
		return Selected.Render(v)
	}
	due := Muted.Render("any")
	if m.dueFilter.Valid {
		due = Selected.Render(m.dueFilter.Time.Format(time.DateOnly))
	}
	search := m.search.Value()
	if m.mode == modeSearch {
		search = m.search.View()
	} else if strings.TrimSpace(search) == "" {
		search = Muted.Render("(none)")
	} else {
		search = Selected.Render(search)
	}

	parts := []string{
		Key.Render("Category:") + " " + sel(m.categorySel, filter.AllCategories),
		Key.Render("Priority:") + " " + sel(m.prioritySel, filter.AllPriorities),
		Key.Render("Status:") + " " + sel(m.completionSel, filter.AllTasks),
		Key.Render("Due:") + " " + due,
		Key.Render("Search:") + " " + search,
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	today := time.Now()
	for i, t := range m.visible {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}

		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}

		name := t.Name
		if t.Completed {
			name = doneStyle.Render(name)
		} else if t.OverdueAt(today) {
			name = overdueStyle.Render(name)
		}

		extras := make([]string, 0, 3)
		if t.Category != "" {
			extras = append(extras, "C:"+t.Category)
		}
		if t.Priority.Valid {
			extras = append(extras, "P:"+t.PriorityText())
		}
		if t.Due.Valid {
			extras = append(extras, "D:"+t.DueText())
		}

		body := fmt.Sprintf("%s %s %s", cursor, checkbox, name)
		if len(extras) > 0 {
			body += " " + Muted.Render("["+strings.Join(extras, " | ")+"]")
		}

		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s edit • %s toggle • %s delete • %s search • %s/%s/%s filters • %s date • %s reset • %s/%s clear done/overdue • %s quit",
		k.Up, k.Down, k.Add, k.Edit, k.Toggle, k.Delete, k.Search, k.Category, k.Priority, k.Status, k.DueFilter, k.ClearFilters, k.ClearCompleted, k.ClearOverdue, k.Quit)
}

func formatDate(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(time.DateOnly)
}

func humanDone(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
