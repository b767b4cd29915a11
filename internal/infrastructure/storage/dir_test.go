package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBlob(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func TestDir_ReadBlob(t *testing.T) {
	tmp := t.TempDir()
	writeBlob(t, tmp, "combo"+Ext, []byte{1, 2, 3})

	store := NewDir(tmp)
	data, err := store.ReadBlob("combo")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	_, err = store.ReadBlob("missing")
	assert.Error(t, err)
}

func TestDir_ListNames(t *testing.T) {
	tmp := t.TempDir()
	writeBlob(t, tmp, "zeta"+Ext, nil)
	writeBlob(t, tmp, "alpha"+Ext, nil)
	writeBlob(t, tmp, "notes.txt", nil)
	require.NoError(t, os.Mkdir(filepath.Join(tmp, "sub"+Ext), 0o755))

	store := NewDir(tmp)
	names, err := store.ListNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, names)
}

func TestDir_DeleteBlob(t *testing.T) {
	tmp := t.TempDir()
	writeBlob(t, tmp, "gone"+Ext, []byte{0})

	store := NewDir(tmp)
	require.NoError(t, store.DeleteBlob("gone"))

	names, err := store.ListNames()
	require.NoError(t, err)
	assert.Empty(t, names)

	assert.Error(t, store.DeleteBlob("gone"))
}
