package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomdblocks/internal/ui/pretty"
	"github.com/yaklabco/gomdblocks/pkg/runner"
)

// TextReporter writes a styled table of files followed by a summary line.
type TextReporter struct {
	opts         Options
	styles       *pretty.Styles
	showOutcomes bool
	bw           *bufio.Writer
}

// NewTextReporter creates a text reporter. With showOutcomes false only the
// summary line is written.
func NewTextReporter(opts Options, showOutcomes bool) *TextReporter {
	return &TextReporter{
		opts:         opts,
		styles:       pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		showOutcomes: showOutcomes,
		bw:           bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	if r.showOutcomes && len(result.Files) > 0 {
		fmt.Fprintln(r.bw, r.styles.FormatOutcomes(result, r.opts.WorkingDir))
	}
	fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))

	return result.Stats.FilesErrored, nil
}
