// Package backup implements whole-store export and restore. Export
// serializes every row of every entity table, tombstones included,
// into a versioned JSON snapshot; restore applies a validated snapshot
// either destructively (replace) or by per-row last-writer-wins merge.
package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumamontes/tarefitas/internal/sqlite"
	"github.com/lumamontes/tarefitas/pkg/types"
)

// Export gathers all rows, tombstones included, into a snapshot
// stamped with the current time.
func Export(store *sqlite.Store) (*types.Snapshot, error) {
	tasks, err := store.Tasks().ListAll()
	if err != nil {
		return nil, fmt.Errorf("export tasks: %w", err)
	}
	subtasks, err := store.Subtasks().ListAll()
	if err != nil {
		return nil, fmt.Errorf("export subtasks: %w", err)
	}
	prefs, err := store.Prefs().ListAll()
	if err != nil {
		return nil, fmt.Errorf("export prefs: %w", err)
	}
	return &types.Snapshot{
		Format:     types.SnapshotFormat,
		Version:    types.SnapshotVersion,
		ExportedAt: time.Now().UnixMilli(),
		Data: types.SnapshotData{
			Tasks:    tasks,
			Subtasks: subtasks,
			Prefs:    prefs,
		},
	}, nil
}

// Encode renders a snapshot as indented JSON, the on-disk backup file
// format.
func Encode(snap *types.Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

// Decode parses raw backup-file bytes and validates them, returning a
// typed snapshot only when format and version match exactly. Nothing
// beyond this function trusts an unvalidated structural guess.
func Decode(raw []byte) (*types.Snapshot, error) {
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: not valid JSON: %v", types.ErrInvalidSnapshot, err)
	}
	if err := Validate(probe); err != nil {
		return nil, err
	}
	var snap types.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("%w: malformed rows: %v", types.ErrInvalidSnapshot, err)
	}
	return &snap, nil
}

// Validate checks the structural shape of a deserialized candidate:
// it must be an object whose format and version equal the expected
// constants exactly (a mismatched version is rejected, never upgraded)
// and whose data section is itself an object. Each failure carries a
// distinct reason.
func Validate(candidate any) error {
	obj, ok := candidate.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: not a JSON object", types.ErrInvalidSnapshot)
	}
	format, ok := obj["format"].(string)
	if !ok || format != types.SnapshotFormat {
		return fmt.Errorf("%w: unexpected format %v (want %q)",
			types.ErrInvalidSnapshot, obj["format"], types.SnapshotFormat)
	}
	version, ok := obj["version"].(float64)
	if !ok || version != float64(types.SnapshotVersion) {
		return fmt.Errorf("%w: unsupported version %v (want %d)",
			types.ErrInvalidSnapshot, obj["version"], types.SnapshotVersion)
	}
	if _, ok := obj["data"].(map[string]any); !ok {
		return fmt.Errorf("%w: missing data section", types.ErrInvalidSnapshot)
	}
	return nil
}
