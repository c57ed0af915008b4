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

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.bbcode")
		content := []byte("[b]hello[/b]")
		require.NoError(t, os.WriteFile(path, content, 0o644))

		got, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, content, got)
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(len(content)), info.Size)
		assert.Equal(t, os.FileMode(0o644), info.Mode.Perm())
		assert.Len(t, info.HashString(), 64)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.bb"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "unused")
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("same content same hash", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := filepath.Join(dir, "a.bb")
		b := filepath.Join(dir, "b.bb")
		require.NoError(t, os.WriteFile(a, []byte("x"), 0o644))
		require.NoError(t, os.WriteFile(b, []byte("x"), 0o644))

		_, infoA, err := fsutil.ReadFile(context.Background(), a)
		require.NoError(t, err)
		_, infoB, err := fsutil.ReadFile(context.Background(), b)
		require.NoError(t, err)

		assert.Equal(t, infoA.Hash, infoB.Hash)
	})
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	sep := string(filepath.Separator)

	tests := []struct {
		name    string
		root    string
		path    string
		want    string
		wantErr bool
	}{
		{
			name: "no root uses base name",
			path: filepath.Join("a", "b", "doc.bbcode"),
			want: filepath.Join("out", "doc.xaml"),
		},
		{
			name: "keeps layout under root",
			root: "docs",
			path: filepath.Join("docs", "guide", "intro.bb"),
			want: filepath.Join("out", "guide", "intro.xaml"),
		},
		{
			name: "root is the file",
			root: filepath.Join("docs", "one.bb"),
			path: filepath.Join("docs", "one.bb"),
			want: filepath.Join("out", "one.xaml"),
		},
		{
			name:    "outside root",
			root:    "docs",
			path:    ".." + sep + "elsewhere.bb",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fsutil.OutputPath("out", tt.root, tt.path, ".xaml")
			if tt.wantErr {
				require.ErrorIs(t, err, fsutil.ErrOutsideRoot)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
