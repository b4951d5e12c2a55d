package usecase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumamontes/tarefitas/internal/sqlite"
	"github.com/lumamontes/tarefitas/pkg/types"
)

// recorder captures invalidation signals for assertions.
type recorder struct {
	kinds []string
}

func (r *recorder) Invalidate(kind string) {
	r.kinds = append(r.kinds, kind)
}

// newTestService builds a Service over a temp-dir store with a
// deterministic clock and id sequence.
func newTestService(t *testing.T) (*Service, *sqlite.Store, *recorder) {
	t.Helper()
	store, err := sqlite.Open(types.Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	rec := &recorder{}
	svc := New(store, rec)

	var ids, ticks int64
	svc.newID = func() (string, error) {
		ids++
		return fmt.Sprintf("id-%d", ids), nil
	}
	svc.now = func() int64 {
		ticks++
		return 1000 + ticks
	}
	return svc, store, rec
}
