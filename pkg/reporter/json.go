package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gomdblocks/pkg/runner"
)

// Status values of a file in the JSON report.
const (
	StatusWritten   = "written"
	StatusMerged    = "merged"
	StatusUnchanged = "unchanged"
	StatusError     = "error"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path   string `json:"path"`
	Output string `json:"output,omitempty"`
	Title  string `json:"title,omitempty"`
	Blocks int    `json:"blocks"`
	Links  int    `json:"links"`
	Keys   int    `json:"keys"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesConverted  int `json:"filesConverted"`
	FilesWritten    int `json:"filesWritten"`
	FilesUnchanged  int `json:"filesUnchanged"`
	FilesErrored    int `json:"filesErrored"`
	Blocks          int `json:"blocks"`
	Links           int `json:"links"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesErrored, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesConverted:  stats.FilesConverted,
		FilesWritten:    stats.FilesWritten,
		FilesUnchanged:  stats.FilesUnchanged,
		FilesErrored:    stats.FilesErrored,
		Blocks:          stats.Blocks,
		Links:           stats.Links,
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:   r.relative(file.Path),
			Output: r.relative(file.Output),
			Title:  file.Title,
			Blocks: file.Blocks,
			Links:  file.Links,
			Keys:   file.Keys,
			Status: status(file),
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		output.Files = append(output.Files, fileResult)
	}

	return output
}

func (r *JSONReporter) relative(path string) string {
	if r.opts.WorkingDir == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(r.opts.WorkingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

func status(file runner.FileOutcome) string {
	switch {
	case file.Error != nil:
		return StatusError
	case file.Merged && file.Written:
		return StatusMerged
	case file.Written:
		return StatusWritten
	default:
		return StatusUnchanged
	}
}
