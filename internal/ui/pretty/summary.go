package pretty

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/yaklabco/gomdblocks/pkg/runner"
)

const columnGap = "  "

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Converted 3 files (12 blocks, 4 links), 2 written, 1 unchanged".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Warning.Render("No markdown files found") + "\n"
	}

	var builder strings.Builder
	if stats.FilesConverted > 0 {
		builder.WriteString(s.Success.Render("Converted " + plural(stats.FilesConverted, "file")))
		builder.WriteString(s.Dim.Render(fmt.Sprintf(" (%s, %s)",
			plural(stats.Blocks, "block"), plural(stats.Links, "link"))))
		builder.WriteString(fmt.Sprintf(", %s written", humanize.Comma(int64(stats.FilesWritten))))
		if stats.FilesUnchanged > 0 {
			builder.WriteString(fmt.Sprintf(", %s unchanged", humanize.Comma(int64(stats.FilesUnchanged))))
		}
	}
	if stats.FilesErrored > 0 {
		if builder.Len() > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(s.Error.Render(plural(stats.FilesErrored, "file") + " failed"))
	}
	builder.WriteString("\n")
	return builder.String()
}

// FormatOutcomes formats one row per file: source, output, counts and status.
// Paths are shown relative to baseDir when possible.
func (s *Styles) FormatOutcomes(result *runner.Result, baseDir string) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	header := []string{"SOURCE", "OUTPUT", "BLOCKS", "LINKS", "STATUS"}
	rows := make([][]string, 0, len(result.Files))
	for _, outcome := range result.Files {
		status := "written"
		switch {
		case outcome.Error != nil:
			status = "error: " + outcome.Error.Error()
		case outcome.Merged && outcome.Written:
			status = "merged"
		case !outcome.Written:
			status = "unchanged"
		}
		rows = append(rows, []string{
			relative(baseDir, outcome.Path),
			relative(baseDir, outcome.Output),
			strconv.Itoa(outcome.Blocks),
			strconv.Itoa(outcome.Links),
			status,
		})
	}

	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = lipgloss.Width(cell)
	}
	for _, row := range rows {
		for i, cell := range row[:len(row)-1] {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var builder strings.Builder
	builder.WriteString(s.TableHeader.Render(joinRow(header, widths)))
	builder.WriteString("\n")
	builder.WriteString(s.TableSeparator.Render(strings.Repeat("-", lipgloss.Width(joinRow(header, widths)))))
	builder.WriteString("\n")
	for i, row := range rows {
		line := joinRow(row, widths)
		if result.Files[i].Error != nil {
			line = s.Error.Render(line)
		}
		builder.WriteString(line)
		builder.WriteString("\n")
	}
	return builder.String()
}

// joinRow pads every cell but the last to its column width.
func joinRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 {
			padded[i] = cell
			continue
		}
		padded[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
	}
	return strings.Join(padded, columnGap)
}

func relative(baseDir, path string) string {
	if baseDir == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(baseDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// plural formats a count with a singular or plural noun, with thousands separators.
func plural(count int, singular string) string {
	return humanize.Comma(int64(count)) + " " + english.PluralWord(count, singular, "")
}
