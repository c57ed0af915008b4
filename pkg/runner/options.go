// Package runner discovers markup files and parses them concurrently.
package runner

import "github.com/yaklabco/gobbcode/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) picked up
	// when walking directories. Defaults to config.DefaultExtensions().
	// Files named explicitly in Paths are parsed whatever their extension.
	Extensions []string

	// Ignore holds glob patterns, relative to WorkingDir, for files or
	// directories to skip.
	Ignore []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means one per CPU.
	Jobs int
}

// OptionsFromConfig builds run options for paths from a resolved config.
func OptionsFromConfig(cfg *config.Config, workDir string, paths []string) Options {
	opts := Options{
		Paths:      paths,
		WorkingDir: workDir,
	}
	if cfg != nil {
		opts.Extensions = cfg.Extensions
		opts.Ignore = cfg.Ignore
		opts.Jobs = cfg.Jobs
	}
	return opts
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
