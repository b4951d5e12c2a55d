package types

import (
	"encoding/json"
	"errors"
)

// Task statuses. A task is either being worked on, finished, or parked.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

// validStatuses is the set of recognized task status values.
var validStatuses = map[string]bool{
	StatusActive:    true,
	StatusCompleted: true,
	StatusArchived:  true,
}

// ValidStatus reports whether s is a recognized task status.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// Task is a single to-do item. Timestamps are Unix milliseconds; a
// non-nil DeletedAt marks the row as a tombstone kept for merge
// detection rather than physically removed.
//
// Recurring holds an opaque serialized recurrence descriptor and
// EnergyTag a free-form label; both were added by later schema
// migrations and are optional.
type Task struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date"` // YYYY-MM-DD, no time component
	Recurring   *string `json:"recurring"`
	EnergyTag   *string `json:"energy_tag"`
	UpdatedAt   int64   `json:"updated_at"`
	DeletedAt   *int64  `json:"deleted_at"`
}

// Deleted reports whether the task row is a tombstone.
func (t *Task) Deleted() bool {
	return t.DeletedAt != nil
}

// Recurrence kinds.
const (
	RecurrenceDaily  = "daily"
	RecurrenceWeekly = "weekly"
)

// ErrInvalidRecurrence is returned when encoding an unrecognized
// recurrence kind.
var ErrInvalidRecurrence = errors.New("unknown recurrence type")

// Recurrence describes how a task repeats. Weekly recurrences carry the
// weekdays (0 = Sunday) the task is due on.
type Recurrence struct {
	Type       string `json:"type"`
	DaysOfWeek []int  `json:"daysOfWeek,omitempty"`
}

// Encode serializes the recurrence to its stored string form.
func (r Recurrence) Encode() (string, error) {
	if r.Type != RecurrenceDaily && r.Type != RecurrenceWeekly {
		return "", ErrInvalidRecurrence
	}
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
