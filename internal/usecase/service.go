// Package usecase composes repository calls into the atomic operations
// the application performs: creating and updating tasks, cascade
// deletes, subtask reordering, preference writes. It is the only layer
// that opens multi-statement transactions, and it signals the
// read-invalidation bus after every successful mutation.
package usecase

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lumamontes/tarefitas/internal/bus"
	"github.com/lumamontes/tarefitas/internal/sqlite"
)

// validate checks input structs against their field tags.
var validate = validator.New()

// Service carries the collaborators shared by every use-case: the
// store, the invalidation notifier, the id generator and the clock.
// The id generator and clock are injectable for tests.
type Service struct {
	store  *sqlite.Store
	notify bus.Notifier
	newID  func() (string, error)
	now    func() int64
}

// New builds a Service with UUID v7 ids and a unix-millisecond clock.
func New(store *sqlite.Store, notify bus.Notifier) *Service {
	return &Service{
		store:  store,
		notify: notify,
		newID:  newUUID,
		now:    func() int64 { return time.Now().UnixMilli() },
	}
}

func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

// checkInput runs struct-tag validation and wraps the failure so the
// caller sees which field was rejected.
func checkInput(in any) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	return nil
}
