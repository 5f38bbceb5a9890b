package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdblocks/pkg/config"
)

// envVarPrefix is the prefix for all gomdblocks environment variables.
const envVarPrefix = "GOMDBLOCKS_"

// The env tables map a variable name (without prefix) to the field it sets.

//nolint:gochecknoglobals // Read-only lookup table.
var stringEnv = map[string]func(*config.Config) *string{
	"BLOCK_TYPE":          func(c *config.Config) *string { return &c.Blocks.BlockType },
	"SPAN_TYPE":           func(c *config.Config) *string { return &c.Blocks.SpanType },
	"LINK_TYPE":           func(c *config.Config) *string { return &c.Blocks.LinkType },
	"DOCUMENT_ID":         func(c *config.Config) *string { return &c.Document.ID },
	"DOCUMENT_TYPE":       func(c *config.Config) *string { return &c.Document.Type },
	"TITLE_FIELD":         func(c *config.Config) *string { return &c.Document.TitleField },
	"SUMMARY_FIELD":       func(c *config.Config) *string { return &c.Document.SummaryField },
	"CONTENT_FIELD":       func(c *config.Config) *string { return &c.Document.ContentField },
	"FRONT_MATTER":        func(c *config.Config) *string { return &c.FrontMatter.Mode },
	"FRONT_MATTER_MARKER": func(c *config.Config) *string { return &c.FrontMatter.Marker },
	"FLAVOR":              func(c *config.Config) *string { return &c.Preview.Flavor },
	"EXTENSION":           func(c *config.Config) *string { return &c.Output.Extension },
	"OUTPUT_DIR":          func(c *config.Config) *string { return &c.OutputDir },
}

//nolint:gochecknoglobals // Read-only lookup table.
var boolEnv = map[string]func(*config.Config) *bool{
	"PRETTY": func(c *config.Config) *bool { return &c.Output.Pretty },
}

//nolint:gochecknoglobals // Read-only lookup table.
var intEnv = map[string]func(*config.Config) *int{
	"JOBS": func(c *config.Config) *int { return &c.Jobs },
}

//nolint:gochecknoglobals // Read-only lookup table.
var sliceEnv = map[string]func(*config.Config) *[]string{
	"BORROW_FIELDS": func(c *config.Config) *[]string { return &c.Document.BorrowFields },
	"IGNORE":        func(c *config.Config) *[]string { return &c.Ignore },
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Variables are prefixed with GOMDBLOCKS_ (e.g., GOMDBLOCKS_FLAVOR). Empty
// variables are ignored, except that an empty slice variable is never set.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, field := range stringEnv {
		if value, ok := lookup(suffix); ok {
			*field(cfg) = value
		}
	}

	for suffix, field := range boolEnv {
		value, ok := lookup(suffix)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVarPrefix+suffix, value)
		}
		*field(cfg) = b
	}

	for suffix, field := range intEnv {
		value, ok := lookup(suffix)
		if !ok {
			continue
		}
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVarPrefix+suffix, value)
		}
		*field(cfg) = i
	}

	for suffix, field := range sliceEnv {
		if value, ok := lookup(suffix); ok {
			*field(cfg) = parseSliceValue(value)
		}
	}

	return nil
}

func lookup(suffix string) (string, bool) {
	value := os.Getenv(envVarPrefix + suffix)
	return value, value != ""
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed and empty elements are dropped.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
