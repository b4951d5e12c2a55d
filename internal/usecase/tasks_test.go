package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumamontes/tarefitas/internal/bus"
	"github.com/lumamontes/tarefitas/pkg/types"
)

func strptr(s string) *string { return &s }

func TestCreateTaskDefaults(t *testing.T) {
	svc, store, rec := newTestService(t)

	created, err := svc.CreateTask(CreateTaskInput{Title: "  Water the plants  "})
	require.NoError(t, err)
	assert.Equal(t, "Water the plants", created.Title, "title is trimmed")
	assert.Equal(t, types.StatusActive, created.Status)
	assert.NotEmpty(t, created.ID)
	assert.Nil(t, created.DeletedAt)

	got, err := store.Tasks().Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.UpdatedAt, got.UpdatedAt)
	assert.Equal(t, []string{bus.KindTasks}, rec.kinds)
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	svc, store, rec := newTestService(t)

	_, err := svc.CreateTask(CreateTaskInput{Title: "   "})
	assert.ErrorIs(t, err, types.ErrTitleRequired)

	tasks, err := store.Tasks().List()
	require.NoError(t, err)
	assert.Empty(t, tasks, "validation failure must not touch the store")
	assert.Empty(t, rec.kinds)
}

func TestCreateTaskRejectsBadDueDate(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateTask(CreateTaskInput{Title: "x", DueDate: strptr("15/09/2026")})
	assert.Error(t, err)
}

func TestCreateTaskEncodesRecurrence(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.CreateTask(CreateTaskInput{
		Title:      "Stretch",
		Recurrence: &types.Recurrence{Type: types.RecurrenceWeekly, DaysOfWeek: []int{1, 3, 5}},
	})
	require.NoError(t, err)
	require.NotNil(t, created.Recurring)
	assert.JSONEq(t, `{"type":"weekly","daysOfWeek":[1,3,5]}`, *created.Recurring)

	_, err = svc.CreateTask(CreateTaskInput{
		Title:      "Bad recurrence",
		Recurrence: &types.Recurrence{Type: "hourly"},
	})
	assert.ErrorIs(t, err, types.ErrInvalidRecurrence)
}

func TestUpdateTaskMergesFields(t *testing.T) {
	svc, store, _ := newTestService(t)

	created, err := svc.CreateTask(CreateTaskInput{
		Title:       "Original",
		Description: strptr("keep me"),
		DueDate:     strptr("2026-09-01"),
		EnergyTag:   strptr("low"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(created.ID, UpdateTaskInput{
		Title:   strptr("Renamed"),
		DueDate: strptr(""), // clear
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "keep me", *updated.Description, "unset fields keep stored values")
	assert.Nil(t, updated.DueDate, "empty value clears the field")
	assert.Greater(t, updated.UpdatedAt, created.UpdatedAt)

	got, err := store.Tasks().Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
}

func TestUpdateTaskMissingIsNotFound(t *testing.T) {
	svc, _, rec := newTestService(t)

	_, err := svc.UpdateTask("ghost", UpdateTaskInput{Title: strptr("x")})
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Empty(t, rec.kinds)
}

func TestUpdateTaskRejectsEmptyTitle(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.CreateTask(CreateTaskInput{Title: "Keep"})
	require.NoError(t, err)

	_, err = svc.UpdateTask(created.ID, UpdateTaskInput{Title: strptr("  ")})
	assert.ErrorIs(t, err, types.ErrTitleRequired)
}

func TestToggleTaskComplete(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.CreateTask(CreateTaskInput{Title: "Flip me"})
	require.NoError(t, err)

	toggled, err := svc.ToggleTaskComplete(created.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusCompleted, toggled.Status)

	back, err := svc.ToggleTaskComplete(created.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusActive, back.Status)

	_, err = svc.ToggleTaskComplete("ghost")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteTaskCascades(t *testing.T) {
	svc, store, rec := newTestService(t)

	created, err := svc.CreateTask(CreateTaskInput{Title: "Parent"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := svc.AddSubtask(AddSubtaskInput{TaskID: created.ID, Title: "step"})
		require.NoError(t, err)
	}
	rec.kinds = nil

	require.NoError(t, svc.DeleteTask(created.ID))

	_, err = store.Tasks().Get(created.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	live, err := store.Subtasks().ListByTask(created.ID)
	require.NoError(t, err)
	assert.Empty(t, live)

	all, err := store.Subtasks().ListAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, sub := range all {
		assert.True(t, sub.Deleted())
	}
	assert.Equal(t, []string{bus.KindSubtasks, bus.KindTasks}, rec.kinds)
}
