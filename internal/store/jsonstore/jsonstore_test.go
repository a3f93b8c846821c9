package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestOpen_EmptyDir(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestStore_GetMissing(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	b, ok, err := s.Get("items")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, b)
}

func TestStore_SetGetDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("items", []byte(`[{"id":0,"name":"Eggs","calories":300}]`)))
	assert.FileExists(t, filepath.Join(dir, "items.json"))

	b, ok, err := s.Get("items")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":0,"name":"Eggs","calories":300}]`, string(b))

	require.NoError(t, s.Delete("items"))
	assert.NoFileExists(t, filepath.Join(dir, "items.json"))

	// second delete is a no-op
	require.NoError(t, s.Delete("items"))
}

func TestStore_InvalidKey(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", ".", "..", "../escape", "a/b", `a\b`} {
		t.Run(key, func(t *testing.T) {
			assert.Error(t, s.Set(key, []byte("x")))
			_, _, err := s.Get(key)
			assert.Error(t, err)
			assert.Error(t, s.Delete(key))
		})
	}
}
