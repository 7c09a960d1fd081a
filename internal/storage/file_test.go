// ABOUTME: Tests for the file-backed store
// ABOUTME: Covers persistence across instances, atomic rewrites and corrupt documents

package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_GetMissingKey(t *testing.T) {
	f := NewFile(t.TempDir())

	_, err := f.Get(context.Background(), "cart")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFile_SetPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first := NewFile(dir)
	require.NoError(t, first.Set(ctx, "cart", []byte(`[{"product_id":1}]`)))

	second := NewFile(dir)
	got, err := second.Get(ctx, "cart")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"product_id":1}]`, string(got))
}

func TestFile_SetRejectsInvalidJSON(t *testing.T) {
	f := NewFile(t.TempDir())

	err := f.Set(context.Background(), "cart", []byte("not json"))
	assert.Error(t, err)

	_, err = os.Stat(f.Path())
	assert.True(t, os.IsNotExist(err), "nothing should be written")
}

func TestFile_DeleteRemovesKeys(t *testing.T) {
	ctx := context.Background()
	f := NewFile(t.TempDir())

	require.NoError(t, f.Set(ctx, "a", []byte(`1`)))
	require.NoError(t, f.Set(ctx, "b", []byte(`2`)))
	require.NoError(t, f.Delete(ctx, "a", "missing"))

	_, err := f.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	reloaded := NewFile(filepath.Dir(f.Path()))
	got, err := reloaded.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "2", string(got))
}

func TestFile_CorruptDocumentStartsFresh(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{broken"), 0600))

	f := NewFile(dir)
	_, err := f.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.Set(ctx, "cart", []byte(`[]`)))
	got, err := NewFile(dir).Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestFile_WritesOwnerOnlyFile(t *testing.T) {
	f := NewFile(t.TempDir())
	require.NoError(t, f.Set(context.Background(), "session.user", []byte(`{"token":"t"}`)))

	info, err := os.Stat(f.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(f.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should be renamed away")
}

func TestFile_FailedWriteLeavesCacheUnchanged(t *testing.T) {
	ctx := context.Background()
	parent := t.TempDir()
	blocker := filepath.Join(parent, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	// dir path runs through a regular file, so MkdirAll fails
	f := NewFile(filepath.Join(blocker, "store"))
	err := f.Set(ctx, "cart", []byte(`[]`))
	require.Error(t, err)

	_, err = f.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrNotFound)
}
