// Package fsutil reads markup sources with their metadata and writes
// rendered output atomically.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrOutsideRoot indicates a source path does not live under its root.
	ErrOutsideRoot = errors.New("path is outside root")
)

// FileInfo captures the state of a source file when it was read.
type FileInfo struct {
	// Path is the path the file was read from.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64

	// Hash is the SHA-256 hash of the file content.
	Hash [32]byte
}

// HashString returns the content hash as lowercase hex.
func (fi *FileInfo) HashString() string {
	return fmt.Sprintf("%x", fi.Hash)
}

// ReadFile reads a file and returns its content along with metadata.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, "stat", err)
	}

	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, "read", err)
	}

	info := &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}

	return content, info, nil
}

// OutputPath maps a source file under root to its output file under dir,
// replacing the source extension with ext. When root is empty the file's
// base name is used.
func OutputPath(dir, root, path, ext string) (string, error) {
	rel := filepath.Base(path)
	if root != "" {
		r, err := filepath.Rel(root, path)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrOutsideRoot, path, err)
		}
		if r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
		}
		if r == "." {
			r = filepath.Base(path)
		}
		rel = r
	}

	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ext
	return filepath.Join(dir, rel), nil
}

func classify(path, op string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
}
