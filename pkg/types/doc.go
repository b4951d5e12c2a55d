// Package types defines the task, subtask and preference entities, the
// versioned snapshot format used for backup and restore, the store Config,
// and the standard errors for the Tarefitas persistence layer.
package types
