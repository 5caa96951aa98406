package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/and161185/admin-console/internal/errs"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestStore_GetSetRemove(t *testing.T) {
	t.Parallel()
	st := openTestStore(t)

	_, err := st.Get("products")
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, st.Set("products", `[{"id":1}]`))
	got, err := st.Get("products")
	require.NoError(t, err)
	require.Equal(t, `[{"id":1}]`, got)

	// Upsert replaces.
	require.NoError(t, st.Set("products", `[]`))
	got, err = st.Get("products")
	require.NoError(t, err)
	require.Equal(t, `[]`, got)

	require.NoError(t, st.Remove("products"))
	_, err = st.Get("products")
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, st.Remove("products"))
}

func TestStore_KeysAreIndependent(t *testing.T) {
	t.Parallel()
	st := openTestStore(t)

	require.NoError(t, st.Set("user", "tok"))
	require.NoError(t, st.Set("pendingUsers", "[]"))
	require.NoError(t, st.Remove("user"))

	got, err := st.Get("pendingUsers")
	require.NoError(t, err)
	require.Equal(t, "[]", got)
}

func TestStore_SurvivesReopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "test.db")

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Set("user", "tok"))
	require.NoError(t, st.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Get("user")
	require.NoError(t, err)
	require.Equal(t, "tok", got)
}
