package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdblocks/internal/logging"
	"github.com/yaklabco/gomdblocks/pkg/config"
	"github.com/yaklabco/gomdblocks/pkg/document"
	"github.com/yaklabco/gomdblocks/pkg/fsutil"
	"github.com/yaklabco/gomdblocks/pkg/reporter"
	"github.com/yaklabco/gomdblocks/pkg/runner"
)

type convertFlags struct {
	output      string
	template    string
	fields      []string
	merge       string
	overlay     string
	publish     bool
	update      bool
	pretty      bool
	jobs        int
	frontMatter string
	ignore      []string
	format      string
}

func newConvertCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [paths...]",
		Short: "Convert Markdown files into block documents",
		Long:  convertLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output file for a single input, output directory otherwise")
	cmd.Flags().StringVarP(&flags.template, "template", "t", "",
		"JSON document to borrow fields from")
	cmd.Flags().StringArrayVarP(&flags.fields, "field", "f", nil,
		"field to borrow from the template (repeatable, replaces the configured list)")
	cmd.Flags().StringVar(&flags.merge, "merge", "",
		"existing JSON document whose content is replaced")
	cmd.Flags().StringVar(&flags.overlay, "fields", "",
		"JSON object whose fields are copied onto every output document")
	cmd.Flags().BoolVar(&flags.publish, "publish", false,
		"omit the draft id so documents are created as published")
	cmd.Flags().BoolVar(&flags.update, "update", false,
		"replace the content of existing output documents instead of recreating them")
	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "indent JSON output")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.frontMatter, "front-matter", "",
		"front matter mode: auto, hr, yaml, none")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringVar(&flags.format, "format", "text", "report format for several inputs: text, summary, json")

	return cmd
}

const convertLongDescription = `Convert Markdown files into block documents.

A single input file is written to stdout as JSON, or to the path given
with -o. Several files or a directory are converted concurrently; each
document is written next to its source, or under the -o directory.

Examples:
  gomdblocks convert post.md                     # JSON on stdout
  gomdblocks convert post.md -o post.json        # Write to a file
  gomdblocks convert post.md -t previous.json    # Borrow tags from a document
  gomdblocks convert post.md --merge draft.json  # Replace draft content
  gomdblocks convert post.md --fields meta.json  # Set extra document fields
  gomdblocks convert post.md --publish           # Create a published document
  gomdblocks convert posts/ -o out/ -j 4         # Convert a directory
  gomdblocks convert posts/ --update             # Refresh existing outputs
  gomdblocks convert posts/ --format json        # Machine-readable report`

func runConvert(cmd *cobra.Command, args []string, flags *convertFlags) error {
	ctx := commandContext(cmd)

	flagCfg := &config.Config{
		Jobs: flags.jobs,
		Output: config.OutputConfig{
			Pretty: flags.pretty,
		},
	}
	if cmd.Flags().Changed("field") {
		if flags.template == "" {
			return ErrFieldNeedsTemplate
		}
		flagCfg.Document.BorrowFields = append([]string{}, flags.fields...)
	}
	if cmd.Flags().Changed("front-matter") {
		flagCfg.FrontMatter.Mode = flags.frontMatter
	}
	if cmd.Flags().Changed("ignore") {
		flagCfg.Ignore = flags.ignore
	}

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	single := singleInput(args)
	if !single {
		flagCfg.OutputDir = flags.output
		if flags.merge != "" {
			return ErrMergeNeedsSingleFile
		}
	}

	cfg, workDir, err := loadConfig(ctx, cmd, flagCfg)
	if err != nil {
		return err
	}

	var template document.Document
	if flags.template != "" {
		template, err = readDocument(ctx, flags.template)
		if err != nil {
			return fmt.Errorf("read template: %w", err)
		}
	}

	var overlay document.Document
	if flags.overlay != "" {
		overlay, err = readDocument(ctx, flags.overlay)
		if err != nil {
			return fmt.Errorf("read fields: %w", err)
		}
	}

	builder := newBuilder(cfg, overlay, flags.publish)

	if single {
		return convertSingle(ctx, cmd, args[0], flags, cfg, builder, template)
	}

	logger := logging.FromContext(ctx)
	logger.Debug("starting conversion run",
		logging.FieldPaths, args,
		logging.FieldWorkingDir, workDir,
		logging.FieldJobs, cfg.Jobs,
	)

	result, err := runner.New(builder).Run(ctx, runner.Options{
		Paths:           args,
		WorkingDir:      workDir,
		ExcludeGlobs:    cfg.Ignore,
		Jobs:            cfg.Jobs,
		OutputDir:       cfg.OutputDir,
		OutputExtension: cfg.Output.Extension,
		Pretty:          cfg.Output.Pretty,
		Template:        template,
		Merge:           flags.update,
	})
	if err != nil {
		return errors.Join(errors.New("conversion run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:     cmd.OutOrStdout(),
		Format:     format,
		Color:      colorMode,
		Compact:    !cfg.Output.Pretty,
		WorkingDir: workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if result.HasErrors() {
		return ErrConversionFailed
	}
	return nil
}

// singleInput reports whether args name exactly one regular file.
func singleInput(args []string) bool {
	if len(args) != 1 {
		return false
	}
	info, err := os.Stat(args[0])
	return err == nil && !info.IsDir()
}

func convertSingle(
	ctx context.Context,
	cmd *cobra.Command,
	path string,
	flags *convertFlags,
	cfg *config.Config,
	builder *document.Builder,
	template document.Document,
) error {
	logger := logging.FromContext(ctx)

	source, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return err
	}

	var res *document.Result
	if flags.merge != "" {
		existing, readErr := readDocument(ctx, flags.merge)
		if readErr != nil {
			return fmt.Errorf("read merge target: %w", readErr)
		}
		res, err = builder.Merge(existing, string(source))
	} else {
		res, err = builder.Build(string(source), template)
	}
	if err != nil {
		return fmt.Errorf("convert %s: %w", filepath.Base(path), err)
	}

	var buf bytes.Buffer
	if err := res.Document.Encode(&buf, cfg.Output.Pretty); err != nil {
		return err
	}

	if flags.output == "" {
		if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	if err := fsutil.WriteAtomic(ctx, flags.output, buf.Bytes(), fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("converted",
		logging.FieldInput, path,
		logging.FieldOutput, flags.output,
		logging.FieldBlocks, len(res.Content),
		logging.FieldLinks, len(res.Content.Links()),
		logging.FieldMerge, flags.merge != "",
		logging.FieldPublish, flags.publish,
	)
	return nil
}
