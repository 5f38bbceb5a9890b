package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdblocks/internal/configloader"
	"github.com/yaklabco/gomdblocks/internal/logging"
	"github.com/yaklabco/gomdblocks/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gomdblocks configuration file",
		Long: `Create a new .gomdblocks.yml configuration file in the current directory
holding the default block types, document fields and front matter settings.

Examples:
  gomdblocks init                      Create .gomdblocks.yml
  gomdblocks init --force              Overwrite an existing file
  gomdblocks init --output custom.yml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags, configloader.IsInteractive())
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "overwrite an existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.DefaultProjectFile, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags, interactive bool) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	err = configloader.WriteConfig(ctx, config.NewConfig(), absPath, flags.force)
	if errors.Is(err, configloader.ErrConfigExists) && interactive {
		overwrite, promptErr := configloader.Confirm(
			fmt.Sprintf("%s already exists. Overwrite?", flags.output),
			false, cmd.InOrStdin(), cmd.ErrOrStderr(),
		)
		if promptErr != nil {
			return promptErr
		}
		if !overwrite {
			return err
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
		err = configloader.WriteConfig(ctx, config.NewConfig(), absPath, true)
	}
	if errors.Is(err, configloader.ErrConfigExists) {
		return fmt.Errorf("%w; use --force to overwrite", err)
	}
	if err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'gomdblocks convert' to convert the Markdown files below this directory")

	return nil
}
