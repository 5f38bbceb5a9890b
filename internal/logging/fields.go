package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldSize       = "size"
	FieldDuration   = "duration"

	// Configuration fields.
	FieldConfig      = "config"
	FieldFlavor      = "flavor"
	FieldFrontMatter = "front_matter"
	FieldJobs        = "jobs"

	// Conversion fields.
	FieldBlocks   = "blocks"
	FieldLinks    = "links"
	FieldKeys     = "keys"
	FieldTemplate = "template"
	FieldMerge    = "merge"
	FieldPublish  = "publish"
	FieldWritten  = "written"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesConverted  = "files_converted"
	FieldFilesWritten    = "files_written"
	FieldFilesErrored    = "files_errored"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
