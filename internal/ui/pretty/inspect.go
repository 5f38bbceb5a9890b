package pretty

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/yaklabco/gomdblocks/pkg/richtext"
)

// Inspection describes one converted file for the inspect report.
type Inspection struct {
	Path string
	Size int64

	// FrontMatter names the header form found: "hr", "yaml" or "" for none.
	FrontMatter string
	Title       string
	Summary     string

	Content richtext.Content
	Keys    int

	// Problems are broken tree invariants. Normally empty.
	Problems []richtext.ValidationError
}

// FormatInspection renders an inspect report.
func (s *Styles) FormatInspection(in Inspection) string {
	var builder strings.Builder

	builder.WriteString(s.FilePath.Render(in.Path))
	builder.WriteString(s.Dim.Render(" (" + humanize.Bytes(uint64(max(in.Size, 0))) + ")"))
	builder.WriteString("\n\n")

	if in.FrontMatter == "" {
		s.field(&builder, "front matter", s.Dim.Render("none"))
	} else {
		s.field(&builder, "front matter", in.FrontMatter)
		s.field(&builder, "title", s.Title.Render(in.Title))
		s.field(&builder, "summary", in.Summary)
	}

	links := in.Content.Links()
	s.field(&builder, "blocks", humanize.Comma(int64(len(in.Content))))
	for _, count := range styleCounts(in.Content) {
		s.field(&builder, "  "+count.name, humanize.Comma(int64(count.count)))
	}
	s.field(&builder, "links", humanize.Comma(int64(len(links))))
	s.field(&builder, "identifiers", humanize.Comma(int64(in.Keys)))

	if len(links) > 0 {
		builder.WriteString("\n")
		builder.WriteString(s.Bold.Render("Links"))
		builder.WriteString("\n")
		for _, link := range links {
			builder.WriteString(fmt.Sprintf("  %s %s\n", s.Dim.Render(link.Key), s.Link.Render(link.Href)))
		}
	}

	builder.WriteString("\n")
	if len(in.Problems) == 0 {
		builder.WriteString(s.Success.Render("Structure OK"))
		builder.WriteString("\n")
		return builder.String()
	}

	builder.WriteString(s.Error.Render(fmt.Sprintf("%d structural %s",
		len(in.Problems), english.PluralWord(len(in.Problems), "problem", ""))))
	builder.WriteString("\n")
	for _, problem := range in.Problems {
		builder.WriteString(fmt.Sprintf("  %s %s\n", s.Dim.Render(problem.Path), problem.Message))
	}
	return builder.String()
}

func (s *Styles) field(builder *strings.Builder, label, value string) {
	builder.WriteString(s.Label.Render(fmt.Sprintf("%-14s", label)))
	builder.WriteString(s.Value.Render(value))
	builder.WriteString("\n")
}

type styleCount struct {
	name  string
	count int
}

// styleCounts tallies blocks by style, with bullets counted per level.
// Headings come first in level order, then normal text, then bullets.
func styleCounts(content richtext.Content) []styleCount {
	counts := make(map[string]int)
	for i := range content {
		block := &content[i]
		if block.IsListItem() {
			counts[fmt.Sprintf("bullet L%d", block.Level)]++
			continue
		}
		counts[block.Style]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	slices.SortFunc(names, compareStyles)

	out := make([]styleCount, 0, len(names))
	for _, name := range names {
		out = append(out, styleCount{name: name, count: counts[name]})
	}
	return out
}

func compareStyles(a, b string) int {
	rank := func(name string) (int, string) {
		switch {
		case richtext.HeadingLevel(name) > 0:
			return 0, fmt.Sprintf("%03d", richtext.HeadingLevel(name))
		case name == richtext.StyleNormal:
			return 1, ""
		default:
			return 2, name
		}
	}
	rankA, keyA := rank(a)
	rankB, keyB := rank(b)
	if rankA != rankB {
		return rankA - rankB
	}
	return strings.Compare(keyA, keyB)
}
