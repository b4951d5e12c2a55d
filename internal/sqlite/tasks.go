package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/lumamontes/tarefitas/pkg/types"
)

// taskColumns is the canonical column list for task selects; scanTask
// reads rows in this order.
const taskColumns = "id, title, description, status, due_date, recurring, energy_tag, updated_at, deleted_at"

// TaskRepo is the sole owner of statements against the tasks table.
type TaskRepo struct {
	q queryer
}

// List returns live tasks, most recently touched first.
func (r *TaskRepo) List() ([]types.Task, error) {
	return r.selectTasks(
		"SELECT " + taskColumns + " FROM tasks WHERE deleted_at IS NULL ORDER BY updated_at DESC",
	)
}

// ListAll returns every task row including tombstones, for export.
func (r *TaskRepo) ListAll() ([]types.Task, error) {
	return r.selectTasks(
		"SELECT " + taskColumns + " FROM tasks ORDER BY updated_at DESC",
	)
}

// Get returns the live task with the given id, or ErrNotFound. A
// tombstoned row is reported as not found.
func (r *TaskRepo) Get(id string) (*types.Task, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	row := r.q.QueryRow(
		"SELECT "+taskColumns+" FROM tasks WHERE id = ? AND deleted_at IS NULL", id,
	)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return t, nil
}

// Upsert inserts the row or replaces every column of an existing row
// with the same id. The conflict is resolved in a single statement, not
// a read-then-write pair.
func (r *TaskRepo) Upsert(t *types.Task) error {
	if t.ID == "" {
		return types.ErrInvalidID
	}
	_, err := r.q.Exec(
		`INSERT INTO tasks (id, title, description, status, due_date, recurring, energy_tag, updated_at, deleted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			status = excluded.status,
			due_date = excluded.due_date,
			recurring = excluded.recurring,
			energy_tag = excluded.energy_tag,
			updated_at = excluded.updated_at,
			deleted_at = excluded.deleted_at`,
		t.ID, t.Title, t.Description, t.Status, t.DueDate, t.Recurring, t.EnergyTag, t.UpdatedAt, t.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert task %s: %w", t.ID, err)
	}
	return nil
}

// MarkDeleted tombstones the task, bumping updated_at to the deletion
// time. Marking an already-tombstoned row again is harmless.
func (r *TaskRepo) MarkDeleted(id string, now int64) error {
	if id == "" {
		return types.ErrInvalidID
	}
	_, err := r.q.Exec(
		"UPDATE tasks SET deleted_at = ?, updated_at = ? WHERE id = ?", now, now, id,
	)
	if err != nil {
		return fmt.Errorf("mark task %s deleted: %w", id, err)
	}
	return nil
}

// DeleteAll physically removes every task row. Only the restore engine
// uses it, inside a replace or reset transaction.
func (r *TaskRepo) DeleteAll() error {
	if _, err := r.q.Exec("DELETE FROM tasks"); err != nil {
		return fmt.Errorf("delete all tasks: %w", err)
	}
	return nil
}

func (r *TaskRepo) selectTasks(query string, args ...any) ([]types.Task, error) {
	rows, err := r.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []types.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// rowScanner abstracts *sql.Row and *sql.Rows for the scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*types.Task, error) {
	var t types.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.DueDate,
		&t.Recurring, &t.EnergyTag, &t.UpdatedAt, &t.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
