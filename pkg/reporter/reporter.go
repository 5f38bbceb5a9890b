// Package reporter writes the outcome of a batch conversion.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdblocks/pkg/runner"
)

// Reporter formats and writes conversion results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of files that failed and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
//
//nolint:ireturn // Reporter is the package's public abstraction.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts, true), nil
	case FormatSummary:
		return NewTextReporter(opts, false), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
