package configloader

import (
	"strings"

	"github.com/yaklabco/gomdblocks/pkg/config"
)

// ValidationError reports an invalid configuration and where it came from.
type ValidationError struct {
	// FilePath is the config file, or "environment" / "flags", that made the
	// configuration invalid.
	FilePath string

	// Message describes the validation error.
	Message string

	// Err is the underlying validation error, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.FilePath == "" {
		return e.Message
	}
	return e.FilePath + ": " + e.Message
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func validate(cfg *config.Config, source string) error {
	err := cfg.Validate()
	if err == nil {
		return nil
	}
	return &ValidationError{
		FilePath: source,
		Message:  strings.TrimSuffix(err.Error(), "."),
		Err:      err,
	}
}
