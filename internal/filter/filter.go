package filter

import (
	"database/sql"
	"strings"

	"smarttodo/internal/task"
)

// Sentinel selections meaning "no constraint" for their dimension.
const (
	AllCategories = "All Categories"
	AllPriorities = "All Priorities"
	AllTasks      = "All Tasks"
)

// Completion selections besides AllTasks.
const (
	Completed    = "Completed"
	NotCompleted = "Not Completed"
)

// CompletionOptions are the fixed choices for the completion filter.
func CompletionOptions() []string {
	return []string{AllTasks, Completed, NotCompleted}
}

// Criteria is the five-tuple of filter inputs, rebuilt from the UI on every
// application. Zero values ("" and invalid Due) mean "no constraint".
type Criteria struct {
	Category   string
	Priority   string
	Completion string
	Due        sql.NullTime
	Keyword    string
}

// Match reports whether t satisfies every criterion. The clauses are
// conjunctive; the keyword clause is disjunctive across fields.
func (c Criteria) Match(t task.Task) bool {
	if c.Category != "" && c.Category != AllCategories {
		if t.Category == "" || !strings.EqualFold(t.Category, c.Category) {
			return false
		}
	}

	if c.Priority != "" && c.Priority != AllPriorities {
		if !t.Priority.Valid || c.Priority != t.PriorityText() {
			return false
		}
	}

	switch c.Completion {
	case Completed:
		if !t.Completed {
			return false
		}
	case NotCompleted:
		if t.Completed {
			return false
		}
	}

	if c.Due.Valid && !t.DueOn(c.Due.Time) {
		return false
	}

	if strings.TrimSpace(c.Keyword) != "" {
		// The keyword is folded once; name/description/category are folded
		// before matching, priority and date text are matched literally.
		kw := strings.ToLower(c.Keyword)
		matches := strings.Contains(strings.ToLower(t.Name), kw) ||
			strings.Contains(strings.ToLower(t.Description), kw) ||
			(t.Category != "" && strings.Contains(strings.ToLower(t.Category), kw)) ||
			(t.Priority.Valid && strings.Contains(t.PriorityText(), kw)) ||
			(t.Due.Valid && strings.Contains(t.DueText(), kw))
		if !matches {
			return false
		}
	}

	return true
}

// Apply returns the subset of tasks matching c, in collection order.
// Membership is recomputed for the full slice on every call; the predicate
// keeps no state between applications.
func Apply(c Criteria, tasks []task.Task) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if c.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
