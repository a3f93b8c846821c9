package sqlitestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore opens a fresh database in a temp dir; it is closed with the test.
func setupStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calories.db")
	s, err := Open(path)
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestStore_GetMissing(t *testing.T) {
	s, _ := setupStore(t)

	b, ok, err := s.Get("items")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, b)
}

func TestStore_SetOverwrites(t *testing.T) {
	s, _ := setupStore(t)

	require.NoError(t, s.Set("items", []byte(`[]`)))
	require.NoError(t, s.Set("items", []byte(`[{"id":0,"name":"Eggs","calories":300}]`)))

	b, ok, err := s.Get("items")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":0,"name":"Eggs","calories":300}]`, string(b))
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	s, _ := setupStore(t)

	require.NoError(t, s.Set("items", []byte(`[]`)))
	require.NoError(t, s.Delete("items"))
	require.NoError(t, s.Delete("items"))

	_, ok, err := s.Get("items")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	s, path := setupStore(t)
	require.NoError(t, s.Set("lunch", []byte(`[{"id":3,"name":"Soup","calories":180}]`)))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	b, ok, err := reopened.Get("lunch")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, string(b), "Soup")
	assert.Equal(t, path, reopened.Path())
}
