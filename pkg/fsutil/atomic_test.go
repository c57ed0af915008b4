package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobbcode/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "deeper", "out.xaml")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("<Span />"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<Span />", string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
	})

	t.Run("overwrites and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.txt")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "out.txt")
		require.ErrorIs(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0), context.Canceled)
		assert.NoFileExists(t, path)
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.json")

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("{}"), 0)
	require.NoError(t, err)
	assert.True(t, written, "missing file is written")

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("{}"), 0)
	require.NoError(t, err)
	assert.False(t, written, "identical content is skipped")

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("[]"), 0)
	require.NoError(t, err)
	assert.True(t, written, "changed content is written")
}

func TestWriteAtomicIfChanged_ExistingFile(t *testing.T) {
	t.Parallel()

	t.Run("keeps permissions when mode is zero", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.xaml")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

		written, err := fsutil.WriteAtomicIfChanged(context.Background(), path, []byte("new"), 0)
		require.NoError(t, err)
		assert.True(t, written)

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
	})

	t.Run("directory target", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		_, err := fsutil.WriteAtomicIfChanged(context.Background(), dir, []byte("x"), 0)
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "out.txt")
		_, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("x"), 0)
		require.ErrorIs(t, err, context.Canceled)
		assert.NoFileExists(t, path)
	})
}
