package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdblocks/pkg/config"
)

func writeConfigFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// isolated returns options that only see files under dir.
func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:       dir,
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfigUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeConfigFile(t, filepath.Join(root, DefaultProjectFile), `
document:
  type: page
  borrow_fields: []
front_matter:
  mode: yaml
`)
	nested := filepath.Join(root, "posts", "2024")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)

	assert.Equal(t, "page", result.Config.Document.Type)
	assert.Equal(t, "drafts.", result.Config.Document.ID)
	assert.Empty(t, result.Config.Document.BorrowFields)
	assert.Equal(t, config.FrontMatterYAML, result.Config.FrontMatter.Mode)
	assert.Equal(t, []string{filepath.Join(root, DefaultProjectFile)}, result.LoadedFrom)
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeConfigFile(t, filepath.Join(outer, DefaultProjectFile), "preview:\n  flavor: commonmark\n")
	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeConfigFile(t, filepath.Join(dir, DefaultProjectFile), "output:\n  extension: .txt\n")
	explicit := filepath.Join(dir, "custom.yml")
	writeConfigFile(t, explicit, "output:\n  extension: .out\n  pretty: true\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, ".out", result.Config.Output.Extension)
	assert.True(t, result.Config.Output.Pretty)
	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, explicit, result.Paths.Explicit)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{
		Jobs:        3,
		OutputDir:   "out",
		FrontMatter: config.FrontMatterConfig{Mode: config.FrontMatterNone},
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Config.Jobs)
	assert.Equal(t, "out", result.Config.OutputDir)
	assert.Equal(t, config.FrontMatterNone, result.Config.FrontMatter.Mode)
	assert.Equal(t, "<hr>", result.Config.FrontMatter.Marker)
}

func TestLoad_InvalidFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		message string
	}{
		{"unknown key", "flavour: gfm\n", "flavour"},
		{"bad value", "front_matter:\n  mode: toml\n", "front_matter"},
		{"malformed", "blocks: [\n", "yaml"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
			path := filepath.Join(dir, DefaultProjectFile)
			writeConfigFile(t, path, testCase.content)

			_, err := Load(context.Background(), isolated(dir))
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, path, validationErr.FilePath)
			assert.Contains(t, err.Error(), testCase.message)
		})
	}
}

func TestLoad_InvalidFlagsWrapConfigError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{Preview: config.PreviewConfig{Flavor: "mmd"}}

	_, err := Load(context.Background(), opts)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.True(t, strings.HasPrefix(err.Error(), "flags: "))
}

//nolint:paralleltest // Modifies environment.
func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GOMDBLOCKS_DOCUMENT_TYPE", "article")
	t.Setenv("GOMDBLOCKS_BORROW_FIELDS", " tags , ,authors")
	t.Setenv("GOMDBLOCKS_PRETTY", "true")
	t.Setenv("GOMDBLOCKS_JOBS", "2")
	t.Setenv("GOMDBLOCKS_FRONT_MATTER_MARKER", "---")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, "article", cfg.Document.Type)
	assert.Equal(t, []string{"tags", "authors"}, cfg.Document.BorrowFields)
	assert.True(t, cfg.Output.Pretty)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, "---", cfg.FrontMatter.Marker)
	assert.Equal(t, "blogTitle", cfg.Document.TitleField)
}

//nolint:paralleltest // Modifies environment.
func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Setenv("GOMDBLOCKS_JOBS", "many")

	err := LoadFromEnv(config.NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOMDBLOCKS_JOBS")
}

//nolint:paralleltest // Modifies environment.
func TestLoad_UserConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	userPath := filepath.Join(xdg, "gomdblocks", "config.yaml")
	writeConfigFile(t, userPath, "blocks:\n  block_type: block\n")

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	result, err := Load(context.Background(), LoadOptions{WorkingDir: dir, IgnoreEnv: true})
	require.NoError(t, err)

	assert.Equal(t, userPath, result.Paths.User)
	assert.Equal(t, "block", result.Config.Blocks.BlockType)
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MergeAll())

	base := config.NewConfig()
	merged := MergeAll(base,
		&config.Config{Ignore: []string{"a/**"}},
		&config.Config{Blocks: config.BlocksConfig{LinkType: "link"}},
	)

	assert.Equal(t, []string{"a/**"}, merged.Ignore)
	assert.Equal(t, "link", merged.Blocks.LinkType)
	assert.Equal(t, "span", merged.Blocks.SpanType)
	assert.Nil(t, base.Ignore, "base must not change")
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), DefaultProjectFile)

	require.NoError(t, WriteConfig(ctx, config.NewConfig(), path, false))
	require.ErrorIs(t, WriteConfig(ctx, config.NewConfig(), path, false), ErrConfigExists)
	require.NoError(t, WriteConfig(ctx, config.NewConfig(), path, true))

	loaded, err := loadConfigFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig().Document, loaded.Document)
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		def      bool
		expected bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"", false, false},
		{"maybe\n", true, false},
	}

	for _, testCase := range tests {
		var out strings.Builder
		got, err := Confirm("Overwrite?", testCase.def, strings.NewReader(testCase.input), &out)
		require.NoError(t, err)
		assert.Equal(t, testCase.expected, got, "input %q", testCase.input)
		assert.True(t, strings.HasPrefix(out.String(), "Overwrite? ["))
	}
}
