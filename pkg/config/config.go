// Package config defines the configuration types for gomdblocks.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

import (
	"errors"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Front matter modes.
const (
	FrontMatterAuto = "auto"
	FrontMatterHR   = "hr"
	FrontMatterYAML = "yaml"
	FrontMatterNone = "none"
)

// Markdown flavors for preview rendering.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// extensionPattern matches an output file extension such as ".json".
var extensionPattern = regexp.MustCompile(`^\.[A-Za-z0-9]+$`)

// Config is the root configuration structure.
type Config struct {
	Blocks      BlocksConfig      `yaml:"blocks"`
	Document    DocumentConfig    `yaml:"document"`
	FrontMatter FrontMatterConfig `yaml:"front_matter"`
	Preview     PreviewConfig     `yaml:"preview"`
	Output      OutputConfig      `yaml:"output"`

	// Ignore contains glob patterns for files skipped during discovery.
	Ignore []string `yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers. 0 means one per CPU.
	Jobs int `yaml:"-"`

	// OutputDir receives converted documents. Empty means next to the source.
	OutputDir string `yaml:"-"`
}

// BlocksConfig names the node types written into converted content.
type BlocksConfig struct {
	BlockType string `yaml:"block_type"`
	SpanType  string `yaml:"span_type"`
	LinkType  string `yaml:"link_type"`
}

// DocumentConfig describes the host document that receives the content.
type DocumentConfig struct {
	ID           string   `yaml:"id"`
	Type         string   `yaml:"type"`
	TitleField   string   `yaml:"title_field"`
	SummaryField string   `yaml:"summary_field"`
	ContentField string   `yaml:"content_field"`
	BorrowFields []string `yaml:"borrow_fields"`
}

// FrontMatterConfig controls header detection.
type FrontMatterConfig struct {
	// Mode is one of auto, hr, yaml or none.
	Mode string `yaml:"mode"`

	// Marker separates a horizontal-rule header from the body.
	Marker string `yaml:"marker"`
}

// PreviewConfig controls HTML preview rendering.
type PreviewConfig struct {
	Flavor string `yaml:"flavor"`
}

// OutputConfig controls how converted documents are written.
type OutputConfig struct {
	// Pretty indents JSON output. Compact output is the default.
	Pretty bool `yaml:"pretty"`

	// Extension is appended to the source base name.
	Extension string `yaml:"extension"`
}

// NewConfig returns a Config with the defaults of a blog post draft.
func NewConfig() *Config {
	return &Config{
		Blocks: BlocksConfig{
			BlockType: "richText",
			SpanType:  "span",
			LinkType:  "inlineLink",
		},
		Document: DocumentConfig{
			ID:           "drafts.",
			Type:         "blogPost",
			TitleField:   "blogTitle",
			SummaryField: "summary",
			ContentField: "content",
			BorrowFields: []string{"topicTags", "craftTags", "featuredPosts"},
		},
		FrontMatter: FrontMatterConfig{
			Mode:   FrontMatterAuto,
			Marker: "<hr>",
		},
		Preview: PreviewConfig{
			Flavor: FlavorGFM,
		},
		Output: OutputConfig{
			Extension: ".json",
		},
	}
}

// Validate checks every section and reports the first failing one.
func (c *Config) Validate() error {
	sections := []struct {
		name string
		err  error
	}{
		{"blocks", c.Blocks.Validate()},
		{"document", c.Document.Validate()},
		{"front_matter", c.FrontMatter.Validate()},
		{"preview", c.Preview.Validate()},
		{"output", c.Output.Validate()},
		{"jobs", validation.Validate(c.Jobs, validation.Min(0))},
	}
	for _, section := range sections {
		if section.err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, section.name, section.err)
		}
	}
	return nil
}

// Validate validates the block type names.
func (c *BlocksConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BlockType, validation.Required),
		validation.Field(&c.SpanType, validation.Required),
		validation.Field(&c.LinkType, validation.Required),
	)
}

// Validate validates the host document layout.
func (c *DocumentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Type, validation.Required),
		validation.Field(&c.TitleField, validation.Required),
		validation.Field(&c.SummaryField, validation.Required, validation.NotIn(c.TitleField)),
		validation.Field(&c.ContentField, validation.Required, validation.NotIn(c.TitleField, c.SummaryField)),
		validation.Field(&c.BorrowFields, validation.Each(validation.Required)),
	)
}

// Validate validates the front matter settings.
func (c *FrontMatterConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required,
			validation.In(FrontMatterAuto, FrontMatterHR, FrontMatterYAML, FrontMatterNone)),
		validation.Field(&c.Marker, validation.Required),
	)
}

// Validate validates the preview settings.
func (c *PreviewConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Flavor, validation.Required, validation.In(FlavorCommonMark, FlavorGFM)),
	)
}

// Validate validates the output settings.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Extension, validation.Required, validation.Match(extensionPattern)),
	)
}
