package types

// Snapshot format constants. Version is compared exactly at restore
// time; there is no forward or backward compatibility.
const (
	SnapshotFormat  = "tarefitas-backup"
	SnapshotVersion = 1
)

// Snapshot is the whole-store export used for backup and restore. It
// carries every row of every entity table, tombstones included, so a
// restore on another device can replay deletions.
type Snapshot struct {
	Format     string       `json:"format"`
	Version    int          `json:"version"`
	ExportedAt int64        `json:"exportedAt"`
	Data       SnapshotData `json:"data"`
}

// SnapshotData is the payload section of a snapshot.
type SnapshotData struct {
	Tasks    []Task       `json:"tasks"`
	Subtasks []Subtask    `json:"subtasks"`
	Prefs    []Preference `json:"prefs"`
}
