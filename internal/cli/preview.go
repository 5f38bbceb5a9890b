package cli

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdblocks/internal/logging"
	"github.com/yaklabco/gomdblocks/pkg/config"
	"github.com/yaklabco/gomdblocks/pkg/frontmatter"
	"github.com/yaklabco/gomdblocks/pkg/fsutil"
	"github.com/yaklabco/gomdblocks/pkg/preview"
)

type previewFlags struct {
	output string
	flavor string
}

func newPreviewCommand() *cobra.Command {
	flags := &previewFlags{}

	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Render a Markdown file as an HTML page",
		Long: `Render a Markdown file as a standalone HTML page so it can be read in a
browser before it is converted. The page title is the front matter title,
or the file name when there is none.

Examples:
  gomdblocks preview post.md > post.html
  gomdblocks preview post.md -o post.html --flavor commonmark`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the page to a file instead of stdout")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark, gfm")

	return cmd
}

func runPreview(cmd *cobra.Command, path string, flags *previewFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	flagCfg := &config.Config{}
	if cmd.Flags().Changed("flavor") {
		flagCfg.Preview.Flavor = flags.flavor
	}

	cfg, _, err := loadConfig(ctx, cmd, flagCfg)
	if err != nil {
		return err
	}

	source, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return err
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	marker := cfg.FrontMatter.Marker
	if marker == "" {
		marker = frontmatter.DefaultMarker
	}
	header, found, err := frontmatter.Detect(string(source), frontmatter.Mode(cfg.FrontMatter.Mode), marker)
	if err == nil && found {
		title = header.Title
	}

	var page bytes.Buffer
	renderer := preview.New(cfg.Preview.Flavor, preview.WithMarker(marker))
	if err := renderer.RenderPage(ctx, title, source, &page); err != nil {
		return err
	}

	if flags.output == "" {
		if _, err := cmd.OutOrStdout().Write(page.Bytes()); err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
		return nil
	}

	if err := fsutil.WriteAtomic(ctx, flags.output, page.Bytes(), fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}

	logger.Info("wrote preview",
		logging.FieldInput, path,
		logging.FieldOutput, flags.output,
		logging.FieldFlavor, renderer.Flavor(),
	)
	return nil
}
