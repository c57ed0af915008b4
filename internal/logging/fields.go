package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldFormat     = "format"
	FieldWorkingDir = "working_dir"
	FieldRunID      = "run_id"

	// Parsing fields.
	FieldTag    = "tag"
	FieldOffset = "offset"
	FieldURI    = "uri"
	FieldTarget = "target"
	FieldFrom   = "from"
	FieldJobs   = "jobs"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesParsed     = "files_parsed"
	FieldFilesFailed     = "files_failed"
	FieldNodesTotal      = "nodes_total"
	FieldLinksTotal      = "links_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Configuration fields.
	FieldName        = "name"
	FieldDescription = "description"
	FieldSource      = "source"
)
