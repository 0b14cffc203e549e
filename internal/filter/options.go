package filter

import (
	"strings"

	"smarttodo/internal/task"
)

// CategoryOptions returns the selectable category choices for the current
// collection: the "All Categories" sentinel followed by every distinct
// non-blank category in first-seen order. Set membership is exact-string,
// independent of the engine's case-insensitive category matching.
func CategoryOptions(tasks []task.Task) []string {
	options := []string{AllCategories}
	seen := make(map[string]struct{})
	for _, t := range tasks {
		if strings.TrimSpace(t.Category) == "" {
			continue
		}
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		options = append(options, t.Category)
	}
	return options
}

// PriorityOptions is the same over the distinct present priorities, rendered
// as text, headed by "All Priorities".
func PriorityOptions(tasks []task.Task) []string {
	options := []string{AllPriorities}
	seen := make(map[string]struct{})
	for _, t := range tasks {
		if !t.Priority.Valid {
			continue
		}
		p := t.PriorityText()
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		options = append(options, p)
	}
	return options
}

// RestoreSelection keeps previous if it is still offered, otherwise falls
// back to the sentinel at the head of options. Runs after every option
// refresh so a selection referencing a removed value resets before the
// predicate is reapplied.
func RestoreSelection(options []string, previous string) string {
	for _, o := range options {
		if o == previous {
			return previous
		}
	}
	return options[0]
}
