package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for new output files.
const DefaultFileMode os.FileMode = 0o644

// DefaultDirMode is the permission mode for output directories created on demand.
const DefaultDirMode os.FileMode = 0o755

// WriteAtomic replaces path with content so readers see either the old file
// or the new one, never a partial write. Missing parent directories are
// created. A zero mode means DefaultFileMode.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DefaultDirMode); err != nil {
		return classify(dir, "create directory", err)
	}

	tmpPath, err := writeTemp(dir, filepath.Base(path), content, mode)
	if err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return classify(path, "replace", err)
	}
	return nil
}

// writeTemp writes content to a synced temp file next to the destination
// and returns its path. The temp file is removed on any failure.
func writeTemp(dir, base string, content []byte, mode os.FileMode) (_ string, err error) {
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return "", classify(dir, "create temp file in", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	return tmp.Name(), nil
}

// WriteAtomicIfChanged writes content unless path already holds the same
// bytes, comparing content hashes. It reports whether the file was written.
// When mode is 0 and the file exists, its current permissions are kept, so
// regenerating output does not undo a chmod.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	_, info, err := ReadFile(ctx, path)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return false, err
	case info.Hash == sha256.Sum256(content):
		return false, nil
	case mode == 0:
		mode = info.Mode.Perm()
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}
