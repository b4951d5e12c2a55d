package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/lumamontes/tarefitas/pkg/types"
)

const subtaskColumns = "id, task_id, title, done, sort_order, updated_at, deleted_at"

// SubtaskRepo is the sole owner of statements against the subtasks
// table.
type SubtaskRepo struct {
	q queryer
}

// List returns live subtasks across all tasks, most recently touched
// first.
func (r *SubtaskRepo) List() ([]types.Subtask, error) {
	return r.selectSubtasks(
		"SELECT " + subtaskColumns + " FROM subtasks WHERE deleted_at IS NULL ORDER BY updated_at DESC",
	)
}

// ListAll returns every subtask row including tombstones, grouped by
// task in display order, for export.
func (r *SubtaskRepo) ListAll() ([]types.Subtask, error) {
	return r.selectSubtasks(
		"SELECT " + subtaskColumns + " FROM subtasks ORDER BY task_id, sort_order",
	)
}

// ListByTask returns the live subtasks of one task in display order.
func (r *SubtaskRepo) ListByTask(taskID string) ([]types.Subtask, error) {
	if taskID == "" {
		return nil, types.ErrInvalidID
	}
	return r.selectSubtasks(
		"SELECT "+subtaskColumns+" FROM subtasks WHERE task_id = ? AND deleted_at IS NULL ORDER BY sort_order ASC",
		taskID,
	)
}

// Get returns the live subtask with the given id, or ErrNotFound.
func (r *SubtaskRepo) Get(id string) (*types.Subtask, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	row := r.q.QueryRow(
		"SELECT "+subtaskColumns+" FROM subtasks WHERE id = ? AND deleted_at IS NULL", id,
	)
	s, err := scanSubtask(row)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get subtask %s: %w", id, err)
	}
	return s, nil
}

// Upsert inserts the row or replaces every column of an existing row
// with the same id.
func (r *SubtaskRepo) Upsert(s *types.Subtask) error {
	if s.ID == "" {
		return types.ErrInvalidID
	}
	_, err := r.q.Exec(
		`INSERT INTO subtasks (id, task_id, title, done, sort_order, updated_at, deleted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
			task_id = excluded.task_id,
			title = excluded.title,
			done = excluded.done,
			sort_order = excluded.sort_order,
			updated_at = excluded.updated_at,
			deleted_at = excluded.deleted_at`,
		s.ID, s.TaskID, s.Title, s.Done, s.SortOrder, s.UpdatedAt, s.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert subtask %s: %w", s.ID, err)
	}
	return nil
}

// MarkDeleted tombstones the subtask, bumping updated_at to the
// deletion time. Idempotent.
func (r *SubtaskRepo) MarkDeleted(id string, now int64) error {
	if id == "" {
		return types.ErrInvalidID
	}
	_, err := r.q.Exec(
		"UPDATE subtasks SET deleted_at = ?, updated_at = ? WHERE id = ?", now, now, id,
	)
	if err != nil {
		return fmt.Errorf("mark subtask %s deleted: %w", id, err)
	}
	return nil
}

// MarkDeletedByTask tombstones every subtask of the given task. Used by
// the cascade-delete use-case inside its transaction.
func (r *SubtaskRepo) MarkDeletedByTask(taskID string, now int64) error {
	if taskID == "" {
		return types.ErrInvalidID
	}
	_, err := r.q.Exec(
		"UPDATE subtasks SET deleted_at = ?, updated_at = ? WHERE task_id = ?", now, now, taskID,
	)
	if err != nil {
		return fmt.Errorf("mark subtasks of task %s deleted: %w", taskID, err)
	}
	return nil
}

// SetSortOrder writes a subtask's position within its task. Used by the
// reorder use-case inside its transaction.
func (r *SubtaskRepo) SetSortOrder(id, taskID string, order int, now int64) error {
	if id == "" || taskID == "" {
		return types.ErrInvalidID
	}
	_, err := r.q.Exec(
		"UPDATE subtasks SET sort_order = ?, updated_at = ? WHERE id = ? AND task_id = ?",
		order, now, id, taskID,
	)
	if err != nil {
		return fmt.Errorf("set sort order of subtask %s: %w", id, err)
	}
	return nil
}

// DeleteAll physically removes every subtask row. Only the restore
// engine uses it, inside a replace or reset transaction.
func (r *SubtaskRepo) DeleteAll() error {
	if _, err := r.q.Exec("DELETE FROM subtasks"); err != nil {
		return fmt.Errorf("delete all subtasks: %w", err)
	}
	return nil
}

func (r *SubtaskRepo) selectSubtasks(query string, args ...any) ([]types.Subtask, error) {
	rows, err := r.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query subtasks: %w", err)
	}
	defer rows.Close()

	subtasks := []types.Subtask{}
	for rows.Next() {
		s, err := scanSubtask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subtask: %w", err)
		}
		subtasks = append(subtasks, *s)
	}
	return subtasks, rows.Err()
}

func scanSubtask(row rowScanner) (*types.Subtask, error) {
	var s types.Subtask
	err := row.Scan(
		&s.ID, &s.TaskID, &s.Title, &s.Done, &s.SortOrder, &s.UpdatedAt, &s.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
