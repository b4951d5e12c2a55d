package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumamontes/tarefitas/internal/bus"
	"github.com/lumamontes/tarefitas/pkg/types"
)

func boolptr(b bool) *bool { return &b }

func intptr(n int) *int { return &n }

func TestAddSubtaskAppendsAtEnd(t *testing.T) {
	svc, _, rec := newTestService(t)

	task, err := svc.CreateTask(CreateTaskInput{Title: "Parent"})
	require.NoError(t, err)

	first, err := svc.AddSubtask(AddSubtaskInput{TaskID: task.ID, Title: "  first  "})
	require.NoError(t, err)
	assert.Equal(t, "first", first.Title)
	assert.Equal(t, 0, first.SortOrder)

	second, err := svc.AddSubtask(AddSubtaskInput{TaskID: task.ID, Title: "second"})
	require.NoError(t, err)
	assert.Equal(t, 1, second.SortOrder)

	assert.Contains(t, rec.kinds, bus.KindSubtasks)
}

func TestAddSubtaskRequiresTitle(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.AddSubtask(AddSubtaskInput{TaskID: "t1", Title: "  "})
	assert.ErrorIs(t, err, types.ErrTitleRequired)
}

func TestUpdateSubtaskMergesFields(t *testing.T) {
	svc, store, _ := newTestService(t)

	task, err := svc.CreateTask(CreateTaskInput{Title: "Parent"})
	require.NoError(t, err)
	sub, err := svc.AddSubtask(AddSubtaskInput{TaskID: task.ID, Title: "draft"})
	require.NoError(t, err)

	updated, err := svc.UpdateSubtask(sub.ID, UpdateSubtaskInput{
		Title: strptr("final"),
		Done:  boolptr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.True(t, updated.Done)
	assert.Equal(t, sub.SortOrder, updated.SortOrder, "untouched fields survive")

	got, err := store.Subtasks().Get(sub.ID)
	require.NoError(t, err)
	assert.True(t, got.Done)

	_, err = svc.UpdateSubtask("ghost", UpdateSubtaskInput{Done: boolptr(true)})
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = svc.UpdateSubtask(sub.ID, UpdateSubtaskInput{SortOrder: intptr(7)})
	require.NoError(t, err)
	got, err = store.Subtasks().Get(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.SortOrder)
}

func TestToggleSubtask(t *testing.T) {
	svc, _, _ := newTestService(t)

	task, err := svc.CreateTask(CreateTaskInput{Title: "Parent"})
	require.NoError(t, err)
	sub, err := svc.AddSubtask(AddSubtaskInput{TaskID: task.ID, Title: "step"})
	require.NoError(t, err)

	on, err := svc.ToggleSubtask(sub.ID)
	require.NoError(t, err)
	assert.True(t, on.Done)

	off, err := svc.ToggleSubtask(sub.ID)
	require.NoError(t, err)
	assert.False(t, off.Done)
	assert.Greater(t, off.UpdatedAt, on.UpdatedAt)
}

func TestDeleteSubtask(t *testing.T) {
	svc, store, _ := newTestService(t)

	task, err := svc.CreateTask(CreateTaskInput{Title: "Parent"})
	require.NoError(t, err)
	sub, err := svc.AddSubtask(AddSubtaskInput{TaskID: task.ID, Title: "step"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSubtask(sub.ID))

	_, err = store.Subtasks().Get(sub.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	all, err := store.Subtasks().ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Deleted())
}

func TestReorderSubtasks(t *testing.T) {
	svc, store, _ := newTestService(t)

	task, err := svc.CreateTask(CreateTaskInput{Title: "Parent"})
	require.NoError(t, err)
	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		sub, err := svc.AddSubtask(AddSubtaskInput{TaskID: task.ID, Title: title})
		require.NoError(t, err)
		ids = append(ids, sub.ID)
	}

	// c, a, b
	require.NoError(t, svc.ReorderSubtasks(task.ID, []string{ids[2], ids[0], ids[1]}))

	subs, err := store.Subtasks().ListByTask(task.ID)
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{subs[0].Title, subs[1].Title, subs[2].Title})
}

func TestReorderSubtasksRequiresTaskID(t *testing.T) {
	svc, _, _ := newTestService(t)

	assert.ErrorIs(t, svc.ReorderSubtasks("", []string{"s1"}), types.ErrInvalidID)
}
