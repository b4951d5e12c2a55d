package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumamontes/tarefitas/pkg/types"
)

func strptr(s string) *string { return &s }

func int64ptr(n int64) *int64 { return &n }

func TestTaskUpsertIsFullReplace(t *testing.T) {
	s := setupStore(t)
	repo := s.Tasks()

	original := &types.Task{
		ID:          "t1",
		Title:       "Plan the week",
		Description: strptr("sunday evening"),
		Status:      types.StatusActive,
		DueDate:     strptr("2026-09-01"),
		Recurring:   strptr(`{"type":"weekly","daysOfWeek":[0]}`),
		EnergyTag:   strptr("low"),
		UpdatedAt:   100,
	}
	require.NoError(t, repo.Upsert(original))

	// Same primary key, every optional field cleared.
	replacement := &types.Task{
		ID:        "t1",
		Title:     "Plan the month",
		Status:    types.StatusCompleted,
		UpdatedAt: 200,
	}
	require.NoError(t, repo.Upsert(replacement))

	got, err := repo.Get("t1")
	require.NoError(t, err)
	assert.Equal(t, "Plan the month", got.Title)
	assert.Equal(t, types.StatusCompleted, got.Status)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.DueDate)
	assert.Nil(t, got.Recurring)
	assert.Nil(t, got.EnergyTag)
	assert.Equal(t, int64(200), got.UpdatedAt)
}

func TestTaskTombstoneExclusion(t *testing.T) {
	s := setupStore(t)
	repo := s.Tasks()

	require.NoError(t, repo.Upsert(&types.Task{ID: "t1", Title: "Call dentist", Status: types.StatusActive, UpdatedAt: 100}))
	require.NoError(t, repo.MarkDeleted("t1", 150))

	_, err := repo.Get("t1")
	assert.ErrorIs(t, err, types.ErrNotFound)

	live, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, live)

	all, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].DeletedAt)
	assert.Equal(t, int64(150), *all[0].DeletedAt)
	assert.Equal(t, int64(150), all[0].UpdatedAt, "deletion bumps updated_at")

	// Marking again is harmless.
	assert.NoError(t, repo.MarkDeleted("t1", 160))
}

func TestTaskListOrdersByUpdatedAtDesc(t *testing.T) {
	s := setupStore(t)
	repo := s.Tasks()

	require.NoError(t, repo.Upsert(&types.Task{ID: "old", Title: "old", Status: types.StatusActive, UpdatedAt: 100}))
	require.NoError(t, repo.Upsert(&types.Task{ID: "new", Title: "new", Status: types.StatusActive, UpdatedAt: 300}))
	require.NoError(t, repo.Upsert(&types.Task{ID: "mid", Title: "mid", Status: types.StatusActive, UpdatedAt: 200}))

	tasks, err := repo.List()
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID})
}

func TestTaskEmptyIDRejected(t *testing.T) {
	s := setupStore(t)
	repo := s.Tasks()

	_, err := repo.Get("")
	assert.ErrorIs(t, err, types.ErrInvalidID)
	assert.ErrorIs(t, repo.Upsert(&types.Task{Title: "no id"}), types.ErrInvalidID)
	assert.ErrorIs(t, repo.MarkDeleted("", 100), types.ErrInvalidID)
}

func TestTaskOptionalFieldsRoundTrip(t *testing.T) {
	s := setupStore(t)
	repo := s.Tasks()

	task := &types.Task{
		ID:        "t1",
		Title:     "Water plants",
		Status:    types.StatusActive,
		Recurring: strptr(`{"type":"daily"}`),
		EnergyTag: strptr("high"),
		UpdatedAt: 100,
	}
	require.NoError(t, repo.Upsert(task))

	got, err := repo.Get("t1")
	require.NoError(t, err)
	require.NotNil(t, got.Recurring)
	assert.Equal(t, `{"type":"daily"}`, *got.Recurring)
	require.NotNil(t, got.EnergyTag)
	assert.Equal(t, "high", *got.EnergyTag)
}
