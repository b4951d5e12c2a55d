package backup

import (
	"fmt"
	"strings"
	"time"

	"github.com/lumamontes/tarefitas/internal/bus"
	"github.com/lumamontes/tarefitas/internal/sqlite"
	"github.com/lumamontes/tarefitas/pkg/types"
)

// Mode selects the restore strategy.
type Mode string

const (
	// ModeReplace wipes the store and loads the snapshot verbatim.
	ModeReplace Mode = "replace"
	// ModeMerge reconciles snapshot and local rows per entity using
	// last-writer-wins on updated_at; ties go to the snapshot.
	ModeMerge Mode = "merge"
)

// defaultSettingsJSON is the settings payload written by Reset.
const defaultSettingsJSON = `{"themeId":"calm-beige","fontId":"system","fontScale":"md","density":"cozy","reduceMotion":false,"soundEnabled":false}`

// Restore applies a validated snapshot in one transaction; any failure
// rolls the whole restore back, leaving the prior store state intact.
// On success all three entity kinds are invalidated.
func Restore(store *sqlite.Store, notify bus.Notifier, snap *types.Snapshot, mode Mode) error {
	if snap == nil {
		return fmt.Errorf("%w: no snapshot", types.ErrInvalidSnapshot)
	}
	err := store.WithTx(func(tx *sqlite.Tx) error {
		switch mode {
		case ModeReplace:
			return replace(tx, snap)
		case ModeMerge:
			return merge(tx, snap)
		default:
			return fmt.Errorf("unknown restore mode %q", mode)
		}
	})
	if err != nil {
		return err
	}
	invalidateAll(notify)
	return nil
}

// Reset wipes all three tables and seeds the default settings
// preference, in one transaction.
func Reset(store *sqlite.Store, notify bus.Notifier) error {
	now := time.Now().UnixMilli()
	err := store.WithTx(func(tx *sqlite.Tx) error {
		if err := wipe(tx); err != nil {
			return err
		}
		return tx.Prefs().Set(types.SettingsKey, defaultSettingsJSON, now)
	})
	if err != nil {
		return err
	}
	invalidateAll(notify)
	return nil
}

// wipe clears subtasks before tasks to respect the logical
// parent/child relationship, then prefs.
func wipe(tx *sqlite.Tx) error {
	if err := tx.Subtasks().DeleteAll(); err != nil {
		return err
	}
	if err := tx.Tasks().DeleteAll(); err != nil {
		return err
	}
	return tx.Prefs().DeleteAll()
}

func replace(tx *sqlite.Tx, snap *types.Snapshot) error {
	if err := wipe(tx); err != nil {
		return err
	}
	for i := range snap.Data.Tasks {
		if err := restoreTask(tx, &snap.Data.Tasks[i]); err != nil {
			return err
		}
	}
	for i := range snap.Data.Subtasks {
		if err := tx.Subtasks().Upsert(&snap.Data.Subtasks[i]); err != nil {
			return err
		}
	}
	for i := range snap.Data.Prefs {
		if err := tx.Prefs().Upsert(&snap.Data.Prefs[i]); err != nil {
			return err
		}
	}
	return nil
}

// merge applies each snapshot row whose updated_at is greater than or
// equal to the local row's, or whose key has no local row. Equal
// timestamps deliberately favor the incoming row. Snapshot tombstones
// propagate deletions because upsert writes the full row, deleted_at
// included. Strictly newer local rows are left untouched.
func merge(tx *sqlite.Tx, snap *types.Snapshot) error {
	localTasks, err := tx.Tasks().ListAll()
	if err != nil {
		return err
	}
	taskByID := make(map[string]types.Task, len(localTasks))
	for _, t := range localTasks {
		taskByID[t.ID] = t
	}
	for i := range snap.Data.Tasks {
		t := &snap.Data.Tasks[i]
		if local, ok := taskByID[t.ID]; ok && t.UpdatedAt < local.UpdatedAt {
			continue
		}
		if err := restoreTask(tx, t); err != nil {
			return err
		}
	}

	localSubtasks, err := tx.Subtasks().ListAll()
	if err != nil {
		return err
	}
	subtaskByID := make(map[string]types.Subtask, len(localSubtasks))
	for _, s := range localSubtasks {
		subtaskByID[s.ID] = s
	}
	for i := range snap.Data.Subtasks {
		s := &snap.Data.Subtasks[i]
		if local, ok := subtaskByID[s.ID]; ok && s.UpdatedAt < local.UpdatedAt {
			continue
		}
		if err := tx.Subtasks().Upsert(s); err != nil {
			return err
		}
	}

	localPrefs, err := tx.Prefs().ListAll()
	if err != nil {
		return err
	}
	prefByKey := make(map[string]types.Preference, len(localPrefs))
	for _, p := range localPrefs {
		prefByKey[p.Key] = p
	}
	for i := range snap.Data.Prefs {
		p := &snap.Data.Prefs[i]
		if local, ok := prefByKey[p.Key]; ok && p.UpdatedAt < local.UpdatedAt {
			continue
		}
		if err := tx.Prefs().Upsert(p); err != nil {
			return err
		}
	}
	return nil
}

// restoreTask writes one snapshot task, enforcing the live-row title
// invariant so a bad row aborts (and rolls back) the whole restore.
func restoreTask(tx *sqlite.Tx, t *types.Task) error {
	if !t.Deleted() && strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: task %s: %v", types.ErrInvalidSnapshot, t.ID, types.ErrTitleRequired)
	}
	if t.Status == "" {
		t.Status = types.StatusActive
	}
	if !types.ValidStatus(t.Status) {
		return fmt.Errorf("%w: task %s: %v %q", types.ErrInvalidSnapshot, t.ID, types.ErrInvalidStatus, t.Status)
	}
	return tx.Tasks().Upsert(t)
}

func invalidateAll(notify bus.Notifier) {
	notify.Invalidate(bus.KindTasks)
	notify.Invalidate(bus.KindSubtasks)
	notify.Invalidate(bus.KindPrefs)
}
