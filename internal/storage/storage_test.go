package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"smarttodo/internal/task"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadEmpty(t *testing.T) {
	s := newTestStore(t)
	tasks, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("Load on fresh db = %d tasks, want 0", len(tasks))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	due, _ := time.Parse(time.DateOnly, "2024-06-15")
	in := []task.Task{
		{
			ID:          1,
			Name:        "Write report",
			Description: "Quarterly numbers",
			Category:    "Work",
			Priority:    sql.NullInt64{Int64: 2, Valid: true},
			Due:         sql.NullTime{Time: due, Valid: true},
			Completed:   false,
		},
		{
			ID:        2,
			Name:      "Water plants",
			Completed: true,
		},
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Load = %d tasks, want 2", len(out))
	}

	got := out[0]
	if got.ID != 1 || got.Name != "Write report" || got.Description != "Quarterly numbers" || got.Category != "Work" {
		t.Fatalf("task 1 round trip = %+v", got)
	}
	if !got.Priority.Valid || got.Priority.Int64 != 2 {
		t.Fatalf("priority round trip = %+v", got.Priority)
	}
	if !got.Due.Valid || got.Due.Time.Format(time.DateOnly) != "2024-06-15" {
		t.Fatalf("due round trip = %+v", got.Due)
	}

	if !out[1].Completed {
		t.Fatalf("completed flag lost")
	}
	if out[1].Priority.Valid || out[1].Due.Valid {
		t.Fatalf("absent optionals came back present: %+v", out[1])
	}
}

func TestSaveReplacesCollection(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save([]task.Task{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := s.Save([]task.Task{{ID: 2, Name: "b"}}); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	out, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("Load after removal = %v, want only task 2", out)
	}
}

func TestSaveAssignsIDs(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save([]task.Task{{Name: "fresh"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 1 || out[0].ID == 0 {
		t.Fatalf("Load = %+v, want a generated id", out)
	}
}
