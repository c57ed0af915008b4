package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Source is a discovered file and the user-specified path it came from.
type Source struct {
	// Path is the absolute file path.
	Path string

	// Root is the absolute form of the user-specified path the file was
	// found under. For a file named directly it equals Path.
	Root string
}

// Discover finds markup files matching opts. Directories are walked for
// files with a configured extension; files named directly are always
// included unless ignored. The result is sorted by path and deduplicated.
func Discover(ctx context.Context, opts Options) ([]Source, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	extensions := opts.effectiveExtensions()
	seen := make(map[string]struct{})
	var sources []Source

	add := func(p, root string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		sources = append(sources, Source{Path: p, Root: root})
	}

	for _, input := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := input
		if !filepath.IsAbs(input) {
			absPath = filepath.Join(workDir, input)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if !ignored(relTo(workDir, absPath), opts.Ignore) {
				add(absPath, absPath)
			}
			continue
		}

		w := walker{workDir: workDir, extensions: extensions, opts: opts}
		found, err := w.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f, absPath)
		}
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	return sources, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

type walker struct {
	workDir    string
	extensions []string
	opts       Options
}

func (w walker) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		rel := relTo(w.workDir, p)

		if entry.IsDir() {
			if p != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if ignored(rel, w.opts.Ignore) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(p)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			if target.IsDir() {
				if !w.opts.FollowSymlinks {
					return nil
				}
				real, err := filepath.EvalSymlinks(p)
				if err != nil {
					return nil //nolint:nilerr // Unresolvable symlinks are skipped.
				}
				sub, err := w.walk(ctx, real)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if hasExtension(p, w.extensions) && !ignored(rel, w.opts.Ignore) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func relTo(workDir, p string) string {
	rel, err := filepath.Rel(workDir, p)
	if err != nil {
		return p
	}
	return rel
}

func hasExtension(p string, extensions []string) bool {
	ext := filepath.Ext(p)
	for _, e := range extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

func ignored(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if MatchGlob(pattern, rel) {
			return true
		}
	}
	return false
}

// MatchGlob matches a slash-separated relative path against a glob. A "**"
// segment matches any number of path segments. A pattern without a slash
// also matches against the final path segment alone, so "*.bak" ignores
// backups at any depth.
func MatchGlob(pattern, name string) bool {
	pattern = filepath.ToSlash(strings.TrimPrefix(pattern, "./"))
	name = filepath.ToSlash(name)

	if !strings.Contains(pattern, "/") {
		if ok, _ := path.Match(pattern, path.Base(name)); ok {
			return true
		}
	}
	return matchSegments(strings.Split(pattern, "/"), strings.Split(name, "/"))
}

func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(name); i++ {
				if matchSegments(rest, name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], name[0]); err != nil || !ok {
			return false
		}
		pattern = pattern[1:]
		name = name[1:]
	}
	return len(name) == 0
}
