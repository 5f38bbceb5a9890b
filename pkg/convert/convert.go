// Package convert turns line-oriented markdown into rich-text blocks.
//
// Each source line becomes at most one block: bullet and heading prefixes
// set the block's list fields and style, and the remaining text is split
// into spans by the inline package. Lines that leave no text are dropped.
// Every generated identifier is drawn from, and registered in, a
// caller-owned keygen.Set.
package convert

import (
	"github.com/yaklabco/gomdblocks/pkg/inline"
	"github.com/yaklabco/gomdblocks/pkg/keygen"
	"github.com/yaklabco/gomdblocks/pkg/richtext"
)

// Converter builds blocks from markdown. It holds no per-call state and is
// safe for concurrent use when each call gets its own Set.
type Converter struct {
	keys      *keygen.Generator
	blockType string
	spanType  string
	linkType  string
}

// Option configures a Converter.
type Option func(*Converter)

// WithGenerator sets the identifier generator.
func WithGenerator(gen *keygen.Generator) Option {
	return func(c *Converter) {
		if gen != nil {
			c.keys = gen
		}
	}
}

// WithTypes overrides the "_type" discriminators. Empty values keep the defaults.
func WithTypes(blockType, spanType, linkType string) Option {
	return func(c *Converter) {
		if blockType != "" {
			c.blockType = blockType
		}
		if spanType != "" {
			c.spanType = spanType
		}
		if linkType != "" {
			c.linkType = linkType
		}
	}
}

// New creates a Converter with default types and a default key generator.
func New(opts ...Option) *Converter {
	c := &Converter{
		keys:      keygen.New(),
		blockType: richtext.DefaultBlockType,
		spanType:  richtext.DefaultSpanType,
		linkType:  richtext.DefaultLinkType,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert converts markdown into blocks in source line order.
//
// keys is the exclusion set: no generated identifier collides with it, and
// every generated identifier is added to it. A nil set is replaced by an
// empty one local to the call.
func (c *Converter) Convert(markdown string, keys *keygen.Set) richtext.Content {
	if keys == nil {
		keys = keygen.NewSet()
	}

	lines := splitLines(markdown)
	content := make(richtext.Content, 0, len(lines))

	for _, raw := range lines {
		block, ok := c.ConvertLine(raw, keys)
		if !ok {
			continue
		}
		content = append(content, block)
	}

	return content
}

// ConvertLine converts a single line. It reports false, generating no
// identifiers, when the line has no text once structural syntax is removed.
// A nil keys set is replaced by an empty one local to the call.
func (c *Converter) ConvertLine(raw string, keys *keygen.Set) (richtext.Block, bool) {
	if keys == nil {
		keys = keygen.NewSet()
	}

	line := ClassifyLine(raw)

	segments := inline.Parse(line.Text)
	if len(segments) == 0 {
		return richtext.Block{}, false
	}

	block := richtext.Block{
		Key:      c.keys.Next(keys),
		Type:     c.blockType,
		Style:    line.Style,
		Children: make([]richtext.Span, 0, len(segments)),
		MarkDefs: []richtext.MarkDef{},
	}
	if line.Bullet {
		block.Level = line.Level
		block.ListItem = richtext.ListBullet
	}

	for _, seg := range segments {
		span := richtext.Span{
			Key:   c.keys.Next(keys),
			Type:  c.spanType,
			Text:  seg.Text,
			Marks: make([]string, 0, 3),
		}

		if seg.IsLink() {
			def := richtext.MarkDef{
				Key:  c.keys.Next(keys),
				Type: c.linkType,
				Href: seg.Href,
			}
			block.MarkDefs = append(block.MarkDefs, def)
			span.Marks = append(span.Marks, def.Key)
		}
		if seg.Emphasis.Italic() {
			span.Marks = append(span.Marks, richtext.MarkEmphasis)
		}
		if seg.Emphasis.Strong() {
			span.Marks = append(span.Marks, richtext.MarkStrong)
		}

		block.Children = append(block.Children, span)
	}

	return block, true
}
