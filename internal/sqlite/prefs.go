package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/lumamontes/tarefitas/pkg/types"
)

// PrefRepo is the sole owner of statements against the prefs table.
// Preferences have no tombstones; rows are overwritten in place.
type PrefRepo struct {
	q queryer
}

// Get returns the preference for key, or ErrNotFound.
func (r *PrefRepo) Get(key string) (*types.Preference, error) {
	if key == "" {
		return nil, types.ErrInvalidID
	}
	var p types.Preference
	err := r.q.QueryRow(
		"SELECT key, value, updated_at FROM prefs WHERE key = ?", key,
	).Scan(&p.Key, &p.Value, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get pref %s: %w", key, err)
	}
	return &p, nil
}

// Set upserts the value for key, stamping updated_at with now.
func (r *PrefRepo) Set(key, value string, now int64) error {
	if key == "" {
		return types.ErrInvalidID
	}
	return r.Upsert(&types.Preference{Key: key, Value: value, UpdatedAt: now})
}

// Upsert writes the full preference row, updated_at included. The
// restore engine uses it to carry snapshot timestamps over verbatim.
func (r *PrefRepo) Upsert(p *types.Preference) error {
	if p.Key == "" {
		return types.ErrInvalidID
	}
	_, err := r.q.Exec(
		`INSERT INTO prefs (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		p.Key, p.Value, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert pref %s: %w", p.Key, err)
	}
	return nil
}

// ListAll returns every preference row ordered by key.
func (r *PrefRepo) ListAll() ([]types.Preference, error) {
	rows, err := r.q.Query("SELECT key, value, updated_at FROM prefs ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("query prefs: %w", err)
	}
	defer rows.Close()

	prefs := []types.Preference{}
	for rows.Next() {
		var p types.Preference
		if err := rows.Scan(&p.Key, &p.Value, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pref: %w", err)
		}
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}

// DeleteAll physically removes every preference row. Only the restore
// engine uses it, inside a replace or reset transaction.
func (r *PrefRepo) DeleteAll() error {
	if _, err := r.q.Exec("DELETE FROM prefs"); err != nil {
		return fmt.Errorf("delete all prefs: %w", err)
	}
	return nil
}
