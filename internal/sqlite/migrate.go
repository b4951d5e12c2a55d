package sqlite

import (
	"database/sql"
	"fmt"
	"strconv"
)

// schemaVersionKey is the meta-table row holding the current schema
// version, stored as a string.
const schemaVersionKey = "schema_version"

// A migration is one forward-only schema step. Steps are cumulative,
// applied strictly in ascending version order, and must be additive
// DDL that tolerates a partial earlier run (IF NOT EXISTS guards or a
// column-presence check).
type migration struct {
	version int
	name    string
	apply   func(tx *sql.Tx) error
}

var migrations = []migration{
	{1, "base tables", createBaseTables},
	{2, "task recurrence and energy tag", addTaskExtras},
}

// migrate brings the database up to the latest schema version. Each
// pending step runs in its own transaction together with the version
// bump, so a failed step leaves the version untouched and the next
// open retries from the same point.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	); err != nil {
		return fmt.Errorf("create meta table: %w", err)
	}

	current, err := schemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		current = m.version
	}
	return nil
}

func applyMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := m.apply(tx); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		schemaVersionKey, strconv.Itoa(m.version),
	); err != nil {
		return err
	}
	return tx.Commit()
}

// schemaVersion reads the recorded schema version; a missing row means
// a fresh database at version 0.
func schemaVersion(q queryer) (int, error) {
	var raw string
	err := q.QueryRow("SELECT value FROM meta WHERE key = ?", schemaVersionKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse schema version %q: %w", raw, err)
	}
	return v, nil
}

func createBaseTables(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			status TEXT NOT NULL,
			due_date TEXT,
			updated_at INTEGER NOT NULL,
			deleted_at INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS subtasks (
			id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			title TEXT NOT NULL,
			done INTEGER NOT NULL,
			sort_order INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			deleted_at INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_subtasks_task_id ON subtasks (task_id)`,
		`CREATE TABLE IF NOT EXISTS prefs (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// addTaskExtras adds the recurrence descriptor and energy tag columns.
// SQLite has no ADD COLUMN IF NOT EXISTS, so presence is checked first
// to keep the step safe to re-run.
func addTaskExtras(tx *sql.Tx) error {
	for _, col := range []string{"recurring", "energy_tag"} {
		present, err := columnExists(tx, "tasks", col)
		if err != nil {
			return err
		}
		if present {
			continue
		}
		if _, err := tx.Exec(fmt.Sprintf("ALTER TABLE tasks ADD COLUMN %s TEXT", col)); err != nil {
			return err
		}
	}
	return nil
}

func columnExists(tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
