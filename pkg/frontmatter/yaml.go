package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Mode selects which header forms Detect accepts.
type Mode string

const (
	// ModeAuto tries the YAML form first, then the horizontal-rule form.
	ModeAuto Mode = "auto"
	// ModeHR accepts only the horizontal-rule form.
	ModeHR Mode = "hr"
	// ModeYAML accepts only the YAML form.
	ModeYAML Mode = "yaml"
	// ModeNone never splits.
	ModeNone Mode = "none"
)

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeAuto, ModeHR, ModeYAML, ModeNone:
		return true
	default:
		return false
	}
}

// yamlDelimiter opens and closes the YAML header.
const yamlDelimiter = "---"

//nolint:gochecknoglobals // Read-only format descriptor.
var yamlFormat = frontmatter.NewFormat(yamlDelimiter, yamlDelimiter, yaml.Unmarshal)

// ParseYAML reads a "---" YAML header carrying non-empty title and summary
// keys. It reports false without error when no header is present or either
// key is missing, and returns an error when the header is not valid YAML.
func ParseYAML(markdown string) (Result, bool, error) {
	if !strings.HasPrefix(strings.TrimLeft(markdown, " \t\r\n"), yamlDelimiter) {
		return Result{}, false, nil
	}

	var meta map[string]any
	body, err := frontmatter.MustParse(strings.NewReader(markdown), &meta, yamlFormat)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return Result{}, false, nil
		}
		return Result{}, false, fmt.Errorf("parse yaml front matter: %w", err)
	}

	title, _ := meta["title"].(string)
	summary, _ := meta["summary"].(string)
	title = strings.TrimSpace(title)
	summary = strings.TrimSpace(summary)
	if title == "" || summary == "" {
		return Result{}, false, nil
	}

	fields := make(map[string]any, len(meta))
	for key, value := range meta {
		if key == "title" || key == "summary" || strings.HasPrefix(key, "_") {
			continue
		}
		fields[key] = value
	}

	return Result{
		Title:   title,
		Summary: summary,
		Content: string(body),
		Fields:  fields,
	}, true, nil
}

// Detect splits markdown according to mode, using marker for the
// horizontal-rule form (DefaultMarker when empty). In ModeAuto a malformed
// YAML header is not an error; the horizontal-rule form is tried instead.
func Detect(markdown string, mode Mode, marker string) (Result, bool, error) {
	if marker == "" {
		marker = DefaultMarker
	}

	switch mode {
	case ModeNone:
		return Result{}, false, nil
	case ModeHR:
		res, ok := SplitMarker(markdown, marker)
		return res, ok, nil
	case ModeYAML:
		return ParseYAML(markdown)
	case ModeAuto, "":
		if res, ok, err := ParseYAML(markdown); err == nil && ok {
			return res, true, nil
		}
		res, ok := SplitMarker(markdown, marker)
		return res, ok, nil
	default:
		return Result{}, false, fmt.Errorf("unknown front matter mode %q", mode)
	}
}
