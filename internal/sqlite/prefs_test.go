package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumamontes/tarefitas/pkg/types"
)

func TestPrefSetGetOverwrite(t *testing.T) {
	s := setupStore(t)
	repo := s.Prefs()

	require.NoError(t, repo.Set("theme", `"calm-beige"`, 100))
	require.NoError(t, repo.Set("theme", `"high-contrast"`, 200))

	p, err := repo.Get("theme")
	require.NoError(t, err)
	assert.Equal(t, `"high-contrast"`, p.Value)
	assert.Equal(t, int64(200), p.UpdatedAt)
}

func TestPrefGetMissing(t *testing.T) {
	s := setupStore(t)

	_, err := s.Prefs().Get("nope")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestPrefUpsertKeepsGivenTimestamp(t *testing.T) {
	s := setupStore(t)
	repo := s.Prefs()

	// The restore engine writes rows verbatim, timestamp included.
	require.NoError(t, repo.Upsert(&types.Preference{Key: "density", Value: `"cozy"`, UpdatedAt: 42}))

	p, err := repo.Get("density")
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.UpdatedAt)
}

func TestPrefListAllOrderedByKey(t *testing.T) {
	s := setupStore(t)
	repo := s.Prefs()

	require.NoError(t, repo.Set("b", "2", 100))
	require.NoError(t, repo.Set("a", "1", 100))
	require.NoError(t, repo.Set("c", "3", 100))

	prefs, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, prefs, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{prefs[0].Key, prefs[1].Key, prefs[2].Key})
}
