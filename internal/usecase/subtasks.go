package usecase

import (
	"strings"

	"github.com/lumamontes/tarefitas/internal/bus"
	"github.com/lumamontes/tarefitas/internal/sqlite"
	"github.com/lumamontes/tarefitas/pkg/types"
)

// AddSubtaskInput carries the fields for a new subtask.
type AddSubtaskInput struct {
	TaskID string `validate:"required"`
	Title  string `validate:"required"`
}

// AddSubtask appends a subtask to a task. The new row's sort order is
// the current count of live subtasks, so it lands at the end of the
// list.
func (s *Service) AddSubtask(in AddSubtaskInput) (*types.Subtask, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, types.ErrTitleRequired
	}
	if err := checkInput(in); err != nil {
		return nil, err
	}

	existing, err := s.store.Subtasks().ListByTask(in.TaskID)
	if err != nil {
		return nil, err
	}
	id, err := s.newID()
	if err != nil {
		return nil, err
	}
	sub := &types.Subtask{
		ID:        id,
		TaskID:    in.TaskID,
		Title:     title,
		SortOrder: len(existing),
		UpdatedAt: s.now(),
	}
	if err := s.store.Subtasks().Upsert(sub); err != nil {
		return nil, err
	}
	s.notify.Invalidate(bus.KindSubtasks)
	return sub, nil
}

// UpdateSubtaskInput carries a partial patch; nil fields keep the
// stored value.
type UpdateSubtaskInput struct {
	Title     *string
	Done      *bool
	SortOrder *int
}

// UpdateSubtask merges the provided fields over the stored row, stamps
// updated_at and writes the result. Returns ErrNotFound when no live
// row has the id.
func (s *Service) UpdateSubtask(id string, in UpdateSubtaskInput) (*types.Subtask, error) {
	sub, err := s.store.Subtasks().Get(id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, types.ErrTitleRequired
		}
		sub.Title = title
	}
	if in.Done != nil {
		sub.Done = *in.Done
	}
	if in.SortOrder != nil {
		sub.SortOrder = *in.SortOrder
	}
	sub.UpdatedAt = s.now()

	if err := s.store.Subtasks().Upsert(sub); err != nil {
		return nil, err
	}
	s.notify.Invalidate(bus.KindSubtasks)
	return sub, nil
}

// ToggleSubtask flips a subtask's done flag. Read-modify-write is
// acceptable under the single-writer model. Returns ErrNotFound when
// no live row has the id.
func (s *Service) ToggleSubtask(id string) (*types.Subtask, error) {
	sub, err := s.store.Subtasks().Get(id)
	if err != nil {
		return nil, err
	}
	sub.Done = !sub.Done
	sub.UpdatedAt = s.now()

	if err := s.store.Subtasks().Upsert(sub); err != nil {
		return nil, err
	}
	s.notify.Invalidate(bus.KindSubtasks)
	return sub, nil
}

// DeleteSubtask tombstones a single subtask.
func (s *Service) DeleteSubtask(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if err := s.store.Subtasks().MarkDeleted(id, s.now()); err != nil {
		return err
	}
	s.notify.Invalidate(bus.KindSubtasks)
	return nil
}

// ReorderSubtasks rewrites the sort order of a task's subtasks to
// match the given id sequence. All positions are written in one
// transaction; a partial reorder is never observable.
func (s *Service) ReorderSubtasks(taskID string, ids []string) error {
	if taskID == "" {
		return types.ErrInvalidID
	}
	now := s.now()
	err := s.store.WithTx(func(tx *sqlite.Tx) error {
		for i, id := range ids {
			if err := tx.Subtasks().SetSortOrder(id, taskID, i, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notify.Invalidate(bus.KindSubtasks)
	return nil
}
