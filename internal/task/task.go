package task

import (
	"database/sql"
	"strconv"
	"time"
)

// Task is a single to-do entry. Category, Priority and Due are optional;
// absent values fail the corresponding filter clause rather than erroring.
type Task struct {
	ID          int
	Name        string
	Description string
	Category    string
	Priority    sql.NullInt64
	Due         sql.NullTime
	Completed   bool
	CreatedAt   time.Time
}

// PriorityText returns the decimal form of the priority, or "" when absent.
// Filter selections and keyword search compare against this form.
func (t Task) PriorityText() string {
	if !t.Priority.Valid {
		return ""
	}
	return strconv.FormatInt(t.Priority.Int64, 10)
}

// DueText returns the due date as YYYY-MM-DD, or "" when absent.
func (t Task) DueText() string {
	if !t.Due.Valid {
		return ""
	}
	return t.Due.Time.Format(time.DateOnly)
}

// DueOn reports whether the task is due exactly on day (calendar-day
// equality, time components ignored).
func (t Task) DueOn(day time.Time) bool {
	if !t.Due.Valid {
		return false
	}
	y1, m1, d1 := t.Due.Time.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// OverdueAt reports whether the task's due date is strictly before today's
// calendar day. Tasks without a due date are never overdue.
func (t Task) OverdueAt(today time.Time) bool {
	if !t.Due.Valid {
		return false
	}
	return t.Due.Time.Format(time.DateOnly) < today.Format(time.DateOnly)
}
