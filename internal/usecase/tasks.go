package usecase

import (
	"strings"

	"github.com/lumamontes/tarefitas/internal/bus"
	"github.com/lumamontes/tarefitas/internal/sqlite"
	"github.com/lumamontes/tarefitas/pkg/types"
)

// CreateTaskInput carries the caller-provided fields for a new task.
// Title is trimmed and must be non-empty; everything else is optional.
type CreateTaskInput struct {
	Title       string `validate:"required"`
	Description *string
	Status      string  `validate:"omitempty,oneof=active completed archived"`
	DueDate     *string `validate:"omitempty,datetime=2006-01-02"`
	Recurrence  *types.Recurrence
	EnergyTag   *string
}

// CreateTask generates a fresh id, validates and stores the task, and
// returns the persisted row.
func (s *Service) CreateTask(in CreateTaskInput) (*types.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, types.ErrTitleRequired
	}
	if err := checkInput(in); err != nil {
		return nil, err
	}

	id, err := s.newID()
	if err != nil {
		return nil, err
	}
	t := &types.Task{
		ID:          id,
		Title:       title,
		Description: in.Description,
		Status:      types.StatusActive,
		DueDate:     in.DueDate,
		EnergyTag:   in.EnergyTag,
		UpdatedAt:   s.now(),
	}
	if in.Status != "" {
		t.Status = in.Status
	}
	if in.Recurrence != nil {
		enc, err := in.Recurrence.Encode()
		if err != nil {
			return nil, err
		}
		t.Recurring = &enc
	}

	if err := s.store.Tasks().Upsert(t); err != nil {
		return nil, err
	}
	s.notify.Invalidate(bus.KindTasks)
	return t, nil
}

// UpdateTaskInput carries a partial patch; nil fields keep the stored
// value. An empty Description, DueDate or EnergyTag pointer target
// clears the field.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string `validate:"omitempty,oneof=active completed archived"`
	DueDate     *string `validate:"omitempty,datetime=2006-01-02"`
	Recurrence  *types.Recurrence
	EnergyTag   *string
}

// UpdateTask merges the provided fields over the stored row,
// re-validates, stamps updated_at and writes the result. Returns
// ErrNotFound when no live row has the id.
func (s *Service) UpdateTask(id string, in UpdateTaskInput) (*types.Task, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}

	t, err := s.store.Tasks().Get(id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, types.ErrTitleRequired
		}
		t.Title = title
	}
	if in.Description != nil {
		if *in.Description == "" {
			t.Description = nil
		} else {
			t.Description = in.Description
		}
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.DueDate != nil {
		if *in.DueDate == "" {
			t.DueDate = nil
		} else {
			t.DueDate = in.DueDate
		}
	}
	if in.Recurrence != nil {
		enc, err := in.Recurrence.Encode()
		if err != nil {
			return nil, err
		}
		t.Recurring = &enc
	}
	if in.EnergyTag != nil {
		if *in.EnergyTag == "" {
			t.EnergyTag = nil
		} else {
			t.EnergyTag = in.EnergyTag
		}
	}
	t.UpdatedAt = s.now()

	if err := s.store.Tasks().Upsert(t); err != nil {
		return nil, err
	}
	s.notify.Invalidate(bus.KindTasks)
	return t, nil
}

// ToggleTaskComplete flips the task between completed and active.
// Archived tasks become completed. Returns ErrNotFound when no live
// row has the id.
func (s *Service) ToggleTaskComplete(id string) (*types.Task, error) {
	t, err := s.store.Tasks().Get(id)
	if err != nil {
		return nil, err
	}
	if t.Status == types.StatusCompleted {
		t.Status = types.StatusActive
	} else {
		t.Status = types.StatusCompleted
	}
	t.UpdatedAt = s.now()

	if err := s.store.Tasks().Upsert(t); err != nil {
		return nil, err
	}
	s.notify.Invalidate(bus.KindTasks)
	return t, nil
}

// DeleteTask tombstones the task and every subtask belonging to it in
// one transaction, so a failed delete leaves no orphaned-looking
// subtasks behind.
func (s *Service) DeleteTask(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	now := s.now()
	err := s.store.WithTx(func(tx *sqlite.Tx) error {
		if err := tx.Subtasks().MarkDeletedByTask(id, now); err != nil {
			return err
		}
		return tx.Tasks().MarkDeleted(id, now)
	})
	if err != nil {
		return err
	}
	s.notify.Invalidate(bus.KindSubtasks)
	s.notify.Invalidate(bus.KindTasks)
	return nil
}
