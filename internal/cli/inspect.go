package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdblocks/internal/ui/pretty"
	"github.com/yaklabco/gomdblocks/pkg/config"
	"github.com/yaklabco/gomdblocks/pkg/document"
	"github.com/yaklabco/gomdblocks/pkg/fsutil"
	"github.com/yaklabco/gomdblocks/pkg/keygen"
	"github.com/yaklabco/gomdblocks/pkg/richtext"
)

type inspectFlags struct {
	template    string
	frontMatter string
}

func newInspectCommand() *cobra.Command {
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show what a Markdown file converts into",
		Long: `Convert a Markdown file without writing anything and print a summary:
front matter, block counts per style, links, identifiers and the result
of the structural checks on the generated content.

Examples:
  gomdblocks inspect post.md
  gomdblocks inspect post.md -t previous.json   # Also check against template keys`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.template, "template", "t", "",
		"JSON document to borrow fields from")
	cmd.Flags().StringVar(&flags.frontMatter, "front-matter", "",
		"front matter mode: auto, hr, yaml, none")

	return cmd
}

func runInspect(cmd *cobra.Command, path string, flags *inspectFlags) error {
	ctx := commandContext(cmd)

	flagCfg := &config.Config{}
	if cmd.Flags().Changed("front-matter") {
		flagCfg.FrontMatter.Mode = flags.frontMatter
	}

	cfg, workDir, err := loadConfig(ctx, cmd, flagCfg)
	if err != nil {
		return err
	}

	var template document.Document
	reserved := keygen.NewSet()
	if flags.template != "" {
		template, err = readDocument(ctx, flags.template)
		if err != nil {
			return fmt.Errorf("read template: %w", err)
		}
		document.CollectKeys(template, reserved)
	}

	source, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return err
	}

	res, err := newBuilder(cfg, nil, false).Build(string(source), template)
	if err != nil {
		return fmt.Errorf("convert %s: %w", filepath.Base(path), err)
	}

	inspection := pretty.Inspection{
		Path:     displayPath(workDir, path),
		Size:     info.Size,
		Content:  res.Content,
		Keys:     res.Keys.Len(),
		Problems: richtext.Validate(res.Content, reserved.Contains),
	}
	if fm := res.FrontMatter; fm != nil {
		inspection.FrontMatter = config.FrontMatterHR
		if fm.Fields != nil {
			inspection.FrontMatter = config.FrontMatterYAML
		}
		inspection.Title = fm.Title
		inspection.Summary = fm.Summary
	}

	fmt.Fprint(cmd.OutOrStdout(), stylesFor(cmd).FormatInspection(inspection))

	if len(inspection.Problems) > 0 {
		return ErrConversionFailed
	}
	return nil
}

// displayPath shortens path relative to workDir when it lies inside it.
func displayPath(workDir, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(workDir, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
