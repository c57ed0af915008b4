package runner

import (
	"github.com/yaklabco/gobbcode/pkg/bbast"
	"github.com/yaklabco/gobbcode/pkg/fsutil"
)

// StdinPath is the display path used for input read from standard input.
const StdinPath = "<stdin>"

// FileOutcome is the result of parsing one source.
type FileOutcome struct {
	// Path is the file path that was processed, or StdinPath.
	Path string

	// Root is the user-specified path the file was discovered under.
	Root string

	// Info describes the file as it was read. Nil for stdin or when the
	// file could not be read.
	Info *fsutil.FileInfo

	// Tree is the parsed tree. Nil when Error is set.
	Tree *bbast.Node

	// Markup is the bbcode the parser rejected, kept so errors can be
	// shown in context. Empty unless parsing failed.
	Markup string

	// Error is set if the file could not be read or parsed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files parsed without error.
	FilesParsed int

	// FilesFailed is the number of files that could not be read or parsed.
	FilesFailed int

	// NodesByKind counts output nodes across all parsed trees.
	NodesByKind map[bbast.NodeKind]int

	// NodesTotal is the total number of output nodes, roots included.
	NodesTotal int

	// LinksTotal is the number of links across all trees.
	LinksTotal int

	// CommandLinks is the number of links that resolved to a command.
	CommandLinks int
}

// Result is the overall runner result.
type Result struct {
	// RunID identifies this run in machine-readable output.
	RunID string

	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to parse.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

// Errors returns the per-file errors in file order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, f.Error)
		}
	}
	return errs
}

func newStats() Stats {
	return Stats{
		NodesByKind: make(map[bbast.NodeKind]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesFailed++
		return
	}
	if outcome.Tree == nil {
		return
	}

	r.Stats.FilesParsed++

	for kind, n := range bbast.Count(outcome.Tree) {
		r.Stats.NodesByKind[kind] += n
		r.Stats.NodesTotal += n
	}

	for _, link := range bbast.FindByKind(outcome.Tree, bbast.NodeLink) {
		r.Stats.LinksTotal++
		if link.Link != nil && link.Link.IsCommand() {
			r.Stats.CommandLinks++
		}
	}
}
