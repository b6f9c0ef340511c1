package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveOpenDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save("doc.txt", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "doc.txt", name)

	file, err := store.Open("doc.txt")
	require.NoError(t, err)
	file.Close()

	require.NoError(t, store.Delete("doc.txt"))
	_, err = store.Open("doc.txt")
	require.Error(t, err)
}

func TestDeleteMissingFileIsNoop(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete("never-existed.pdf"))
}

func TestResolveRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	name, err := store.Save("../escape.txt", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "../escape.txt", name)

	// The file lands inside the base dir under its base name.
	_, statErr := os.Stat(filepath.Join(dir, "escape.txt"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(filepath.Dir(dir), "escape.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	_, err = store.Save("anon-old.pdf", []byte("old"))
	require.NoError(t, err)
	_, err = store.Save("anon-new.pdf", []byte("new"))
	require.NoError(t, err)
	_, err = store.Save("owned.pdf", []byte("keep"))
	require.NoError(t, err)

	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "anon-old.pdf"), stale, stale))
	require.NoError(t, os.Chtimes(filepath.Join(dir, "owned.pdf"), stale, stale))

	deleted, err := store.CleanupOlderThan(24*time.Hour, "anon-")
	require.NoError(t, err)
	assert.Equal(t, []string{"anon-old.pdf"}, deleted)

	_, err = store.Open("anon-new.pdf")
	assert.NoError(t, err)
	_, err = store.Open("owned.pdf")
	assert.NoError(t, err)
}
