package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdblocks/internal/cli"
	"github.com/yaklabco/gomdblocks/internal/configloader"
	"github.com/yaklabco/gomdblocks/pkg/config"
	"github.com/yaklabco/gomdblocks/pkg/fsutil"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "gomdblocks", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing persistent flag %q", name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"convert", "inspect", "preview", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "subcommand %q", name)
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestConvertCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	convertCmd, _, err := cmd.Find([]string{"convert"})
	require.NoError(t, err)

	tests := []struct {
		name      string
		shorthand string
	}{
		{"output", "o"},
		{"template", "t"},
		{"field", "f"},
		{"merge", ""},
		{"fields", ""},
		{"publish", ""},
		{"update", ""},
		{"pretty", ""},
		{"jobs", "j"},
		{"front-matter", ""},
		{"ignore", ""},
		{"format", ""},
	}

	for _, testCase := range tests {
		flag := convertCmd.Flags().Lookup(testCase.name)
		require.NotNil(t, flag, "missing flag %q", testCase.name)
		assert.Equal(t, testCase.shorthand, flag.Shorthand, "flag %q", testCase.name)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())

	output := stdout.String()
	assert.Contains(t, output, "gomdblocks")
	assert.Contains(t, output, "test-version")
	assert.Contains(t, output, "test-commit")
	assert.Contains(t, output, "test-date")
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := stdout.String()
	assert.Contains(t, output, "Usage:")
	assert.Contains(t, output, "Commands:")
	assert.Contains(t, output, "convert")
	assert.Contains(t, output, "--config")
	assert.Contains(t, output, `"gomdblocks [command] --help"`)
}

func TestSubcommandHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"convert", "--help"})

	require.NoError(t, cmd.Execute())

	output := stdout.String()
	assert.Contains(t, output, "Examples:")
	assert.Contains(t, output, "--front-matter")
	assert.Contains(t, output, "Global Flags:")
	assert.NotContains(t, output, "Commands:")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"conversion failed", cli.ErrConversionFailed, cli.ExitConversionErrors},
		{
			"config file",
			&configloader.ValidationError{FilePath: "x.yml", Message: "bad"},
			cli.ExitConfigError,
		},
		{"invalid config", fmt.Errorf("wrap: %w", config.ErrInvalidConfig), cli.ExitConfigError},
		{"missing file", fmt.Errorf("%w: post.md", fsutil.ErrNotFound), cli.ExitIOError},
		{"directory", fmt.Errorf("%w: posts", fsutil.ErrIsDirectory), cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitFailure},
		{"merge usage", cli.ErrMergeNeedsSingleFile, cli.ExitFailure},
		{"field usage", cli.ErrFieldNeedsTemplate, cli.ExitFailure},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, cli.ExitCode(testCase.err))
		})
	}
}
