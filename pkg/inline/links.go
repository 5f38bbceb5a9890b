package inline

import "regexp"

// linkPattern matches [label](url). The label runs to the next ']' and the url
// to the next ')'; both must be non-empty.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// LinkPart is one piece of a fragment partitioned by ExtractLinks.
type LinkPart struct {
	// Text is the link label, or the literal gap text when Href is empty.
	Text string

	// Href is the link target. Empty for non-link parts.
	Href string
}

// IsLink reports whether the part came from link syntax.
func (p LinkPart) IsLink() bool {
	return p.Href != ""
}

// ExtractLinks partitions text left to right into link labels and the gaps
// around them. Empty gaps are omitted, so a fragment with no links yields a
// single part and an empty fragment yields none.
func ExtractLinks(text string) []LinkPart {
	matches := linkPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		if text == "" {
			return nil
		}
		return []LinkPart{{Text: text}}
	}

	parts := make([]LinkPart, 0, len(matches)*2+1)
	last := 0

	for _, match := range matches {
		if gap := text[last:match[0]]; gap != "" {
			parts = append(parts, LinkPart{Text: gap})
		}
		parts = append(parts, LinkPart{
			Text: text[match[2]:match[3]],
			Href: text[match[4]:match[5]],
		})
		last = match[1]
	}

	if last < len(text) {
		parts = append(parts, LinkPart{Text: text[last:]})
	}

	return parts
}
