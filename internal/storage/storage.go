package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"smarttodo/internal/task"
)

// Store persists the task collection in a local SQLite database. The
// contract is whole-collection: Load once at startup, Save after every
// successful mutation batch.
type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	dsn := sqliteDSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	priority INTEGER DEFAULT NULL,
	due TEXT DEFAULT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}
	return s.ensureTaskColumns()
}

// ensureTaskColumns backfills columns added after the first release so old
// databases keep working.
func (s *Store) ensureTaskColumns() error {
	required := map[string]string{
		"description": "ALTER TABLE tasks ADD COLUMN description TEXT NOT NULL DEFAULT '';",
		"category":    "ALTER TABLE tasks ADD COLUMN category TEXT NOT NULL DEFAULT '';",
		"priority":    "ALTER TABLE tasks ADD COLUMN priority INTEGER DEFAULT NULL;",
	}
	existing := map[string]struct{}{}
	rows, err := s.db.Query(`PRAGMA table_info(tasks);`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		existing[name] = struct{}{}
	}
	for col, alter := range required {
		if _, ok := existing[col]; ok {
			continue
		}
		if _, err := s.db.Exec(alter); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Load returns every stored task in id order.
func (s *Store) Load() ([]task.Task, error) {
	rows, err := s.db.Query(`SELECT id, name, description, category, priority, due, completed, created_at FROM tasks ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		var completedInt int
		var dueStr sql.NullString
		var createdStr string

		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Category, &t.Priority, &dueStr, &completedInt, &createdStr); err != nil {
			return nil, err
		}
		t.Completed = completedInt == 1
		if dueStr.Valid {
			if parsed, err := time.Parse(time.DateOnly, dueStr.String); err == nil {
				t.Due = sql.NullTime{Time: parsed, Valid: true}
			}
		}
		if created, err := time.Parse(time.RFC3339, createdStr); err == nil {
			t.CreatedAt = created
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Save replaces the stored collection with tasks in a single transaction.
// Tasks with ID 0 get a fresh id assigned by the database.
func (s *Store) Save(tasks []task.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks;`); err != nil {
		return err
	}
	for _, t := range tasks {
		dueStr := sql.NullString{}
		if t.Due.Valid {
			dueStr = sql.NullString{String: t.Due.Time.Format(time.DateOnly), Valid: true}
		}
		completed := 0
		if t.Completed {
			completed = 1
		}
		created := t.CreatedAt
		if created.IsZero() {
			created = time.Now().UTC()
		}
		createdStr := created.UTC().Format(time.RFC3339)

		if t.ID == 0 {
			_, err = tx.Exec(`INSERT INTO tasks (name, description, category, priority, due, completed, created_at) VALUES (?, ?, ?, ?, ?, ?, ?);`,
				t.Name, t.Description, t.Category, t.Priority, dueStr, completed, createdStr)
		} else {
			_, err = tx.Exec(`INSERT INTO tasks (id, name, description, category, priority, due, completed, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
				t.ID, t.Name, t.Description, t.Category, t.Priority, dueStr, completed, createdStr)
		}
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
