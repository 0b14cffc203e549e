package task

import (
	"database/sql"
	"testing"
	"time"
)

func TestSubscribeNotifiesSynchronously(t *testing.T) {
	c := NewCollection(nil)
	calls := 0
	c.Subscribe(func() { calls++ })

	c.Append(Task{ID: 1, Name: "a"})
	if calls != 1 {
		t.Fatalf("calls after Append = %d, want 1", calls)
	}

	if !c.Update(Task{ID: 1, Name: "a2"}) {
		t.Fatalf("Update returned false for existing task")
	}
	if calls != 2 {
		t.Fatalf("calls after Update = %d, want 2", calls)
	}

	if !c.Remove(1) {
		t.Fatalf("Remove returned false for existing task")
	}
	if calls != 3 {
		t.Fatalf("calls after Remove = %d, want 3", calls)
	}
}

func TestUnsubscribe(t *testing.T) {
	c := NewCollection(nil)
	calls := 0
	unsub := c.Subscribe(func() { calls++ })
	unsub()

	c.Append(Task{ID: 1, Name: "a"})
	if calls != 0 {
		t.Fatalf("calls after unsubscribe = %d, want 0", calls)
	}
}

func TestRemoveIf(t *testing.T) {
	c := NewCollection([]Task{
		{ID: 1, Name: "a", Completed: true},
		{ID: 2, Name: "b"},
		{ID: 3, Name: "c", Completed: true},
	})
	calls := 0
	c.Subscribe(func() { calls++ })

	removed := c.RemoveIf(func(t Task) bool { return t.Completed })
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if calls != 1 {
		t.Fatalf("observer calls = %d, want exactly 1 per batch", calls)
	}
	rest := c.Tasks()
	if len(rest) != 1 || rest[0].ID != 2 {
		t.Fatalf("remaining = %v, want only task 2", rest)
	}
}

func TestRemoveIfNoMatchDoesNotNotify(t *testing.T) {
	c := NewCollection([]Task{{ID: 1, Name: "a"}})
	calls := 0
	c.Subscribe(func() { calls++ })

	if removed := c.RemoveIf(func(t Task) bool { return t.Completed }); removed != 0 {
		t.Fatalf("removed = %d, want 0", removed)
	}
	if calls != 0 {
		t.Fatalf("observer calls = %d, want 0 on a no-op", calls)
	}
}

func TestUpdateMissingTask(t *testing.T) {
	c := NewCollection([]Task{{ID: 1, Name: "a"}})
	if c.Update(Task{ID: 9, Name: "ghost"}) {
		t.Fatalf("Update succeeded for a missing id")
	}
	if c.Remove(9) {
		t.Fatalf("Remove succeeded for a missing id")
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	c := NewCollection([]Task{{ID: 1, Name: "a"}})
	snapshot := c.Tasks()
	snapshot[0].Name = "mutated"

	if got, _ := c.Get(1); got.Name != "a" {
		t.Fatalf("collection changed through snapshot: %q", got.Name)
	}
}

func TestNextID(t *testing.T) {
	c := NewCollection(nil)
	if got := c.NextID(); got != 1 {
		t.Fatalf("NextID on empty = %d, want 1", got)
	}
	c.Append(Task{ID: 5, Name: "a"})
	c.Append(Task{ID: 2, Name: "b"})
	if got := c.NextID(); got != 6 {
		t.Fatalf("NextID = %d, want 6", got)
	}
}

func TestOverdueAt(t *testing.T) {
	today, _ := time.Parse(time.DateOnly, "2024-06-01")

	overdue := Task{Name: "old", Due: mustDue("2024-05-31")}
	dueToday := Task{Name: "today", Due: mustDue("2024-06-01")}
	undated := Task{Name: "none"}

	if !overdue.OverdueAt(today) {
		t.Fatalf("task due 2024-05-31 not overdue at 2024-06-01")
	}
	if dueToday.OverdueAt(today) {
		t.Fatalf("task due today reported overdue")
	}
	if undated.OverdueAt(today) {
		t.Fatalf("undated task reported overdue")
	}
}

func mustDue(s string) sql.NullTime {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return sql.NullTime{Time: t, Valid: true}
}
