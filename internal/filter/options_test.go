package filter

import (
	"testing"

	"smarttodo/internal/task"
)

func TestCategoryOptionsFirstSeenOrder(t *testing.T) {
	tasks := []task.Task{
		{Name: "a", Category: "Work"},
		{Name: "b", Category: "Home"},
		{Name: "c", Category: "Work"},
		{Name: "d", Category: "Errands"},
	}
	got := CategoryOptions(tasks)
	want := []string{AllCategories, "Work", "Home", "Errands"}
	if len(got) != len(want) {
		t.Fatalf("CategoryOptions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("CategoryOptions[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCategoryOptionsSkipBlank(t *testing.T) {
	tasks := []task.Task{
		{Name: "a", Category: ""},
		{Name: "b", Category: "   "},
		{Name: "c", Category: "Home"},
	}
	got := CategoryOptions(tasks)
	if len(got) != 2 || got[1] != "Home" {
		t.Fatalf("CategoryOptions = %v, want [%q Home]", got, AllCategories)
	}
}

func TestCategoryOptionsCaseSensitiveMembership(t *testing.T) {
	// Option-set dedup is exact-string even though the filter clause matches
	// case-insensitively.
	tasks := []task.Task{
		{Name: "a", Category: "Work"},
		{Name: "b", Category: "work"},
	}
	got := CategoryOptions(tasks)
	if len(got) != 3 {
		t.Fatalf("CategoryOptions = %v, want both spellings offered", got)
	}
}

func TestPriorityOptions(t *testing.T) {
	tasks := []task.Task{
		{Name: "a", Priority: nullInt(3)},
		{Name: "b"},
		{Name: "c", Priority: nullInt(1)},
		{Name: "d", Priority: nullInt(3)},
	}
	got := PriorityOptions(tasks)
	want := []string{AllPriorities, "3", "1"}
	if len(got) != len(want) {
		t.Fatalf("PriorityOptions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("PriorityOptions[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRestoreSelection(t *testing.T) {
	options := []string{AllCategories, "Work", "Home"}

	if got := RestoreSelection(options, "Home"); got != "Home" {
		t.Fatalf("RestoreSelection kept=%q, want Home", got)
	}
	if got := RestoreSelection(options, "Errands"); got != AllCategories {
		t.Fatalf("RestoreSelection fallback=%q, want %q", got, AllCategories)
	}
	if got := RestoreSelection(options, ""); got != AllCategories {
		t.Fatalf("RestoreSelection empty=%q, want %q", got, AllCategories)
	}
}
