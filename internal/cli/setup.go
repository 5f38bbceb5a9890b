package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdblocks/internal/configloader"
	"github.com/yaklabco/gomdblocks/internal/logging"
	"github.com/yaklabco/gomdblocks/internal/ui/pretty"
	"github.com/yaklabco/gomdblocks/pkg/config"
	"github.com/yaklabco/gomdblocks/pkg/convert"
	"github.com/yaklabco/gomdblocks/pkg/document"
	"github.com/yaklabco/gomdblocks/pkg/frontmatter"
	"github.com/yaklabco/gomdblocks/pkg/fsutil"
)

// commandContext returns the command's context, never nil.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the configuration for cmd. flagCfg holds only the
// values set by the command's own flags.
func loadConfig(ctx context.Context, cmd *cobra.Command, flagCfg *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    flagCfg,
	})
	if err != nil {
		return nil, "", errors.Join(errors.New("failed to load configuration"), err)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldPaths, loadResult.LoadedFrom)
	}

	return loadResult.Config, workDir, nil
}

// newBuilder creates the document builder described by cfg. overlay and
// publish come from the convert flags.
func newBuilder(cfg *config.Config, overlay document.Document, publish bool) *document.Builder {
	conv := convert.New(convert.WithTypes(
		cfg.Blocks.BlockType,
		cfg.Blocks.SpanType,
		cfg.Blocks.LinkType,
	))

	return document.NewBuilder(conv, document.Options{
		ID:           cfg.Document.ID,
		Type:         cfg.Document.Type,
		TitleField:   cfg.Document.TitleField,
		SummaryField: cfg.Document.SummaryField,
		ContentField: cfg.Document.ContentField,
		BorrowFields: cfg.Document.BorrowFields,
		FrontMatter:  frontmatter.Mode(cfg.FrontMatter.Mode),
		Marker:       cfg.FrontMatter.Marker,
		Overlay:      overlay,
		Publish:      publish,
	})
}

// readDocument loads a JSON document such as a template or a document to
// merge into.
func readDocument(ctx context.Context, path string) (document.Document, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	doc, err := document.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// stylesFor returns output styles honoring the --color flag.
func stylesFor(cmd *cobra.Command) *pretty.Styles {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
}
