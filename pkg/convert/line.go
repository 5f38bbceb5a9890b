package convert

import (
	"strings"

	"github.com/yaklabco/gomdblocks/pkg/richtext"
)

// bulletMarker opens a bullet line once surrounding whitespace is trimmed.
const bulletMarker = "- "

// indentWidth is the number of columns in one list indentation group.
const indentWidth = 4

// Line is the structural reading of one source line.
type Line struct {
	// Text is the display text left after structural prefixes are removed.
	// Inline formatting is still present.
	Text string

	// Style is "normal" or "h<N>".
	Style string

	// Bullet is true for "- " lines.
	Bullet bool

	// Level is the bullet indentation level (1 for no indentation).
	// Zero when Bullet is false.
	Level int
}

// ClassifyLine reads the bullet marker and heading prefix of a line.
//
// A bullet line starts with "- " after trimming; its level is the number of
// whole 4-column indentation groups before the marker, plus one. A tab counts
// as one whole group. A heading is a run of '#' followed by whitespace or the
// end of the line; its style is "h" plus the run length.
func ClassifyLine(raw string) Line {
	line := Line{Style: richtext.StyleNormal}
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, bulletMarker) {
		line.Bullet = true
		line.Level = indentColumns(raw)/indentWidth + 1
		text = strings.TrimSpace(text[len(bulletMarker):])
	}

	if hashes := headingMarkerLen(text); hashes > 0 {
		line.Style = richtext.HeadingStyle(hashes)
		text = strings.TrimSpace(text[hashes:])
	}

	line.Text = text
	return line
}

// indentColumns counts leading whitespace columns, a tab being a full group.
func indentColumns(raw string) int {
	cols := 0
	for _, r := range raw {
		switch r {
		case ' ':
			cols++
		case '\t':
			cols += indentWidth
		default:
			return cols
		}
	}
	return cols
}

// headingMarkerLen returns the length of the leading '#' run when it is
// followed by whitespace or ends the text, and 0 otherwise.
func headingMarkerLen(text string) int {
	n := 0
	for n < len(text) && text[n] == '#' {
		n++
	}
	if n == 0 {
		return 0
	}
	if n < len(text) && text[n] != ' ' && text[n] != '\t' {
		return 0
	}
	return n
}

// splitLines splits text on newlines, accepting CRLF and lone CR endings.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
