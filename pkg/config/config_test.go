package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdblocks/pkg/config"
)

func TestNewConfig_Valid(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "richText", cfg.Blocks.BlockType)
	assert.Equal(t, "drafts.", cfg.Document.ID)
	assert.Equal(t, []string{"topicTags", "craftTags", "featuredPosts"}, cfg.Document.BorrowFields)
	assert.Equal(t, config.FrontMatterAuto, cfg.FrontMatter.Mode)
	assert.Equal(t, config.FlavorGFM, cfg.Preview.Flavor)
	assert.False(t, cfg.Output.Pretty)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		section string
	}{
		{"empty block type", func(c *config.Config) { c.Blocks.BlockType = "" }, "blocks"},
		{"empty document id", func(c *config.Config) { c.Document.ID = "" }, "document"},
		{"summary same as title", func(c *config.Config) { c.Document.SummaryField = c.Document.TitleField }, "document"},
		{"content same as summary", func(c *config.Config) { c.Document.ContentField = "summary" }, "document"},
		{"blank borrow field", func(c *config.Config) { c.Document.BorrowFields = []string{"tags", ""} }, "document"},
		{"unknown mode", func(c *config.Config) { c.FrontMatter.Mode = "toml" }, "front_matter"},
		{"empty marker", func(c *config.Config) { c.FrontMatter.Marker = "" }, "front_matter"},
		{"unknown flavor", func(c *config.Config) { c.Preview.Flavor = "mmd" }, "preview"},
		{"bad extension", func(c *config.Config) { c.Output.Extension = "json" }, "output"},
		{"negative jobs", func(c *config.Config) { c.Jobs = -1 }, "jobs"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			testCase.mutate(cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), testCase.section+":")
		})
	}
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Output.Pretty = true
	original.Ignore = []string{"drafts/**"}
	original.Jobs = 4

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "front_matter:\n  mode: auto\n")
	assert.NotContains(t, string(data), "jobs")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, original.Document, parsed.Document)
	assert.Equal(t, original.Ignore, parsed.Ignore)
	assert.True(t, parsed.Output.Pretty)
	assert.Zero(t, parsed.Jobs)
}

func TestConfig_ToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	data, err := config.NewConfig().ToYAMLWithHeader("# gomdblocks")
	require.NoError(t, err)
	assert.Regexp(t, `^# gomdblocks\n\nblocks:\n`, string(data))
}

func TestFromYAML_Invalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("blocks: [unclosed"))
	require.Error(t, err)
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	var nilConfig *config.Config
	assert.Nil(t, nilConfig.Clone())

	original := config.NewConfig()
	original.Ignore = []string{"a"}
	original.OutputDir = "out"

	clone := original.Clone()
	require.NotSame(t, original, clone)
	assert.Equal(t, original, clone)

	clone.Document.BorrowFields[0] = "changed"
	clone.Ignore[0] = "b"
	assert.Equal(t, "topicTags", original.Document.BorrowFields[0])
	assert.Equal(t, "a", original.Ignore[0])
}
