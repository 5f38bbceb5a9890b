// Package frontmatter separates an optional title and summary header from
// the body of a markdown document.
//
// Two header forms are recognised. The horizontal-rule form is a level-1
// heading line and a summary line, followed by an "<hr>" marker:
//
//	# Title
//	Summary line
//	<hr>
//	Body text
//
// The YAML form is a "---" delimited block with title and summary keys.
package frontmatter

import (
	"strings"
)

// DefaultMarker separates the header from the body in the horizontal-rule form.
const DefaultMarker = "<hr>"

// titlePrefix opens the title line of the horizontal-rule form.
const titlePrefix = "# "

// Result is a successfully split document.
type Result struct {
	Title   string
	Summary string

	// Content is the body, blank lines collapsed and outer whitespace trimmed
	// for the horizontal-rule form, verbatim for the YAML form.
	Content string

	// Fields holds extra header values. Only the YAML form fills it.
	Fields map[string]any
}

// Split splits markdown on DefaultMarker. See SplitMarker.
func Split(markdown string) (Result, bool) {
	return SplitMarker(markdown, DefaultMarker)
}

// SplitMarker splits markdown on the first occurrence of marker.
//
// The text before the marker, once blank lines are collapsed and outer
// whitespace trimmed, must be exactly two lines: a "# " title and a summary.
// Anything else, including a missing marker, reports false.
func SplitMarker(markdown, marker string) (Result, bool) {
	if marker == "" {
		return Result{}, false
	}

	beginning, content, found := strings.Cut(normalizeNewlines(markdown), marker)
	if !found {
		return Result{}, false
	}

	lines := strings.Split(CollapseBlankLines(beginning), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], titlePrefix) {
		return Result{}, false
	}

	return Result{
		Title:   strings.TrimSpace(lines[0][len(titlePrefix):]),
		Summary: lines[1],
		Content: CollapseBlankLines(content),
	}, true
}

// CollapseBlankLines drops every blank or whitespace-only line and trims
// the outer whitespace of the result. Non-blank lines keep their content.
func CollapseBlankLines(text string) string {
	lines := strings.Split(normalizeNewlines(text), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
