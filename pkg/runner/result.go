package runner

// FileOutcome is the result of converting one file.
type FileOutcome struct {
	// Path is the source file.
	Path string

	// Output is the document file written, or that would have been written.
	Output string

	// Title is the front matter title, if any.
	Title string

	// Blocks, Links and Keys count the converted content.
	Blocks int
	Links  int
	Keys   int

	// Merged is true when an existing document was updated.
	Merged bool

	// Written is false when the output already had the same content.
	Written bool

	// Error is set if the file could not be converted or written.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesConverted  int
	FilesWritten    int
	FilesUnchanged  int
	FilesErrored    int
	Blocks          int
	Links           int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by source path.
	Files []FileOutcome

	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// accumulate records an outcome and updates the stats.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesConverted++
	r.Stats.Blocks += outcome.Blocks
	r.Stats.Links += outcome.Links
	if outcome.Written {
		r.Stats.FilesWritten++
	} else {
		r.Stats.FilesUnchanged++
	}
}
