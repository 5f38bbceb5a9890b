package cli

import (
	"errors"

	"github.com/yaklabco/gomdblocks/internal/configloader"
	"github.com/yaklabco/gomdblocks/pkg/config"
	"github.com/yaklabco/gomdblocks/pkg/fsutil"
)

// Exit codes for gomdblocks.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a failure with no more specific code.
	ExitFailure = 1

	// ExitConversionErrors indicates the run completed but some files failed
	// or produced content with structural problems.
	ExitConversionErrors = 2

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrConversionFailed is returned when at least one file failed to
	// convert. The per-file errors have already been reported.
	ErrConversionFailed = errors.New("conversion failed")

	// ErrMergeNeedsSingleFile is returned when --merge is combined with
	// more than one input.
	ErrMergeNeedsSingleFile = errors.New("--merge requires exactly one input file")

	// ErrFieldNeedsTemplate is returned when --field is given without
	// --template.
	ErrFieldNeedsTemplate = errors.New("--field requires --template")
)

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrConversionFailed):
		return ExitConversionErrors
	case errors.As(err, &validationErr), errors.Is(err, config.ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitFailure
	}
}
