// Package inline parses the inline formatting of a single line of markdown:
// asterisk emphasis (italic, strong, or both) and [label](url) links, which
// may sit inside emphasis.
//
// Parsing is a two-stage pipeline. Tokenize splits a line into runs that
// share one emphasis level; ExtractLinks then decomposes each run into link
// and non-link parts. Parse combines the two.
package inline

import (
	"regexp"
	"strings"
)

// Emphasis is a set of emphasis flags carried by a run of text.
type Emphasis uint8

// Emphasis flags. Italic and Strong combine for ***text***.
const (
	EmphasisItalic Emphasis = 1 << iota
	EmphasisStrong
)

// EmphasisNone marks unformatted text.
const EmphasisNone Emphasis = 0

// Italic reports whether the italic flag is set.
func (e Emphasis) Italic() bool { return e&EmphasisItalic != 0 }

// Strong reports whether the strong flag is set.
func (e Emphasis) Strong() bool { return e&EmphasisStrong != 0 }

// String returns a readable name for the flag combination.
func (e Emphasis) String() string {
	switch {
	case e.Italic() && e.Strong():
		return "italic+strong"
	case e.Strong():
		return "strong"
	case e.Italic():
		return "italic"
	default:
		return "none"
	}
}

// emphasisPattern matches, in order of preference, ***x***, **x** and *x*
// where x contains no asterisk.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var emphasisPattern = regexp.MustCompile(`\*\*\*[^*]+\*\*\*|\*\*[^*]+\*\*|\*[^*]+\*`)

// Run is a contiguous piece of a line sharing one emphasis level.
type Run struct {
	Text     string
	Emphasis Emphasis
}

// Tokenize splits text into emphasis runs, scanning left to right for
// non-overlapping delimiter pairs. Delimiters are removed from run text.
// Unbalanced asterisks stay in plain runs. Empty runs are never produced.
func Tokenize(text string) []Run {
	matches := emphasisPattern.FindAllStringIndex(text, -1)
	runs := make([]Run, 0, len(matches)*2+1)
	last := 0

	for _, match := range matches {
		if plain := text[last:match[0]]; plain != "" {
			runs = append(runs, Run{Text: plain})
		}
		runs = append(runs, delimitedRun(text[match[0]:match[1]]))
		last = match[1]
	}

	if last < len(text) {
		runs = append(runs, Run{Text: text[last:]})
	}

	return runs
}

func delimitedRun(token string) Run {
	switch {
	case strings.HasPrefix(token, "***"):
		return Run{Text: token[3 : len(token)-3], Emphasis: EmphasisItalic | EmphasisStrong}
	case strings.HasPrefix(token, "**"):
		return Run{Text: token[2 : len(token)-2], Emphasis: EmphasisStrong}
	default:
		return Run{Text: token[1 : len(token)-1], Emphasis: EmphasisItalic}
	}
}
