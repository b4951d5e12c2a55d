// Package sqlite implements the SQLite persistence layer for Tarefitas:
// the store handle, the schema migration engine, and the task, subtask
// and preference repositories. No other package issues SQL.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"
	_ "modernc.org/sqlite"

	"github.com/lumamontes/tarefitas/pkg/types"
)

const driverName = "sqlite"

// driverAvailable reports whether the embedded SQLite driver is
// registered in this process. Overridable in tests to exercise the
// unavailable-store path.
var driverAvailable = func() bool {
	return slices.Contains(sql.Drivers(), driverName)
}

// queryer is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories run against it so the same statements serve both plain
// calls and multi-statement transactions.
type queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store owns the single connection to the embedded database. The
// persistence layer holds no authoritative row state in memory; every
// read goes to the store.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
	config types.Config
}

// Open opens (or creates) the database under cfg.DataDir and brings the
// schema up to date. Most callers want Acquire instead; Open exists for
// tests that need an isolated store.
func Open(cfg types.Config) (*Store, error) {
	if !driverAvailable() {
		return nil, types.ErrStoreUnavailable
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open(driverName, filepath.Join(cfg.DataDir, types.DBFileName))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Single logical writer; a second connection would only introduce
	// SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db, config: cfg}, nil
}

// Close releases the connection. Further operations return
// ErrStoreClosed. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Tasks returns the task repository bound to this store.
func (s *Store) Tasks() *TaskRepo { return &TaskRepo{q: s} }

// Subtasks returns the subtask repository bound to this store.
func (s *Store) Subtasks() *SubtaskRepo { return &SubtaskRepo{q: s} }

// Prefs returns the preference repository bound to this store.
func (s *Store) Prefs() *PrefRepo { return &PrefRepo{q: s} }

// WithTx runs fn inside a transaction, committing on nil and rolling
// back on error. It is the only transaction entry point; use-cases and
// the restore engine wrap their multi-statement work in it so partial
// application is never observable.
func (s *Store) WithTx(fn func(tx *Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return types.ErrStoreClosed
	}
	dbtx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(&Tx{tx: dbtx}); err != nil {
		_ = dbtx.Rollback()
		return err
	}
	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Store implements queryer with a closed-store guard so repositories
// bound to it fail cleanly after Close.

func (s *Store) Exec(query string, args ...any) (sql.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, types.ErrStoreClosed
	}
	return s.db.Exec(query, args...)
}

func (s *Store) Query(query string, args ...any) (*sql.Rows, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, types.ErrStoreClosed
	}
	return s.db.Query(query, args...)
}

func (s *Store) QueryRow(query string, args ...any) *sql.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.QueryRow(query, args...)
}

// Tx exposes the repositories scoped to one open transaction.
type Tx struct {
	tx *sql.Tx
}

// Tasks returns the task repository bound to this transaction.
func (t *Tx) Tasks() *TaskRepo { return &TaskRepo{q: t.tx} }

// Subtasks returns the subtask repository bound to this transaction.
func (t *Tx) Subtasks() *SubtaskRepo { return &SubtaskRepo{q: t.tx} }

// Prefs returns the preference repository bound to this transaction.
func (t *Tx) Prefs() *PrefRepo { return &PrefRepo{q: t.tx} }

// Process-wide shared store. Concurrent first acquisitions collapse
// onto a single initialization so migrations run exactly once.
var (
	sharedMu sync.Mutex
	shared   *Store
	initOnce singleflight.Group
)

// Acquire returns the process-wide store, opening it and running
// migrations on first use. Repeat calls return the same handle.
func Acquire(cfg types.Config) (*Store, error) {
	sharedMu.Lock()
	if shared != nil {
		s := shared
		sharedMu.Unlock()
		return s, nil
	}
	sharedMu.Unlock()

	v, err, _ := initOnce.Do("store", func() (any, error) {
		sharedMu.Lock()
		if shared != nil {
			s := shared
			sharedMu.Unlock()
			return s, nil
		}
		sharedMu.Unlock()

		s, err := Open(cfg)
		if err != nil {
			return nil, err
		}
		sharedMu.Lock()
		shared = s
		sharedMu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Store), nil
}

// Release closes the shared store and resets the singleton so a later
// Acquire reinitializes from scratch. Used for test teardown and
// process shutdown. Safe to call when nothing was acquired.
func Release() error {
	sharedMu.Lock()
	s := shared
	shared = nil
	sharedMu.Unlock()
	if s == nil {
		return nil
	}
	return s.Close()
}
