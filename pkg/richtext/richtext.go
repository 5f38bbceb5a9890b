// Package richtext defines the block/span tree produced from markdown, shaped
// for the rich-text content field of a document store (portable-text style).
//
// A Block is one converted line. Its Children are Spans, and its MarkDefs
// hold the link targets referenced from span marks.
package richtext

import (
	"strconv"
	"strings"
)

// Default discriminator values written to the "_type" fields.
const (
	DefaultBlockType = "richText"
	DefaultSpanType  = "span"
	DefaultLinkType  = "inlineLink"
)

// Block styles.
const (
	StyleNormal = "normal"
	stylePrefix = "h"
)

// ListBullet is the only list kind produced.
const ListBullet = "bullet"

// Decorator marks applied to spans.
const (
	MarkEmphasis = "em"
	MarkStrong   = "strong"
)

// HeadingStyle returns the style name for a heading of the given level.
func HeadingStyle(level int) string {
	if level < 1 {
		return StyleNormal
	}
	return stylePrefix + strconv.Itoa(level)
}

// HeadingLevel returns the level encoded in a heading style, or 0 when the
// style is not a heading.
func HeadingLevel(style string) int {
	rest, ok := strings.CutPrefix(style, stylePrefix)
	if !ok {
		return 0
	}
	level, err := strconv.Atoi(rest)
	if err != nil || level < 1 {
		return 0
	}
	return level
}

// Block is one line of the source document.
type Block struct {
	Key      string    `json:"_key"`
	Type     string    `json:"_type"`
	Style    string    `json:"style"`
	Level    int       `json:"level,omitempty"`
	ListItem string    `json:"listItem,omitempty"`
	Children []Span    `json:"children"`
	MarkDefs []MarkDef `json:"markDefs"`
}

// IsListItem reports whether the block came from a bullet line.
func (b *Block) IsListItem() bool {
	return b.ListItem != ""
}

// Text concatenates the text of all children.
func (b *Block) Text() string {
	var sb strings.Builder
	for _, child := range b.Children {
		sb.WriteString(child.Text)
	}
	return sb.String()
}

// MarkDef returns the definition with the given key.
func (b *Block) MarkDef(key string) (MarkDef, bool) {
	for _, def := range b.MarkDefs {
		if def.Key == key {
			return def, true
		}
	}
	return MarkDef{}, false
}

// Span is a run of text with uniform formatting.
type Span struct {
	Key   string   `json:"_key"`
	Type  string   `json:"_type"`
	Text  string   `json:"text"`
	Marks []string `json:"marks"`
}

// HasMark reports whether the span carries mark.
func (s *Span) HasMark(mark string) bool {
	for _, m := range s.Marks {
		if m == mark {
			return true
		}
	}
	return false
}

// LinkKey returns the mark that references a link definition, if any.
// Any mark other than the decorator marks is a definition reference.
func (s *Span) LinkKey() (string, bool) {
	for _, m := range s.Marks {
		if m != MarkEmphasis && m != MarkStrong {
			return m, true
		}
	}
	return "", false
}

// MarkDef is a block-scoped link target.
type MarkDef struct {
	Key  string `json:"_key"`
	Type string `json:"_type"`
	Href string `json:"href"`
}

// Content is the ordered block sequence that fills one document field.
type Content []Block

// Keys returns every identifier in the content in document order:
// each block key, then its span keys, then its mark definition keys.
func (c Content) Keys() []string {
	var keys []string
	for i := range c {
		block := &c[i]
		keys = append(keys, block.Key)
		for _, child := range block.Children {
			keys = append(keys, child.Key)
		}
		for _, def := range block.MarkDefs {
			keys = append(keys, def.Key)
		}
	}
	return keys
}

// Links returns every mark definition in document order.
func (c Content) Links() []MarkDef {
	var links []MarkDef
	for i := range c {
		links = append(links, c[i].MarkDefs...)
	}
	return links
}
