package types

// Subtask is a checklist item under a task. TaskID is a logical
// reference; the schema does not enforce it, callers maintain the
// relationship. SortOrder defines display order within a task and need
// not be contiguous.
type Subtask struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	Title     string `json:"title"`
	Done      bool   `json:"done"`
	SortOrder int    `json:"sort_order"`
	UpdatedAt int64  `json:"updated_at"`
	DeletedAt *int64 `json:"deleted_at"`
}

// Deleted reports whether the subtask row is a tombstone.
func (s *Subtask) Deleted() bool {
	return s.DeletedAt != nil
}
