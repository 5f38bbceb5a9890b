package document

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdblocks/pkg/convert"
	"github.com/yaklabco/gomdblocks/pkg/frontmatter"
	"github.com/yaklabco/gomdblocks/pkg/keygen"
	"github.com/yaklabco/gomdblocks/pkg/richtext"
)

// Options names the host document fields and front matter handling.
type Options struct {
	// ID is written to "_id". The default creates a draft.
	ID string

	// Type is written to "_type".
	Type string

	// TitleField and SummaryField receive the front matter title and summary.
	TitleField   string
	SummaryField string

	// ContentField receives the converted blocks.
	ContentField string

	// BorrowFields are copied from the template document, when one is given.
	BorrowFields []string

	// FrontMatter selects the accepted header forms.
	FrontMatter frontmatter.Mode

	// Marker separates a horizontal-rule header from the body.
	Marker string

	// Overlay is copied onto every finished document, replacing fields of
	// the same name. Its "_key" values are excluded from generated identifiers.
	Overlay Document

	// Publish drops "_id" so the store creates a published document
	// rather than a draft.
	Publish bool
}

// DefaultOptions returns the field layout of a blog post draft.
func DefaultOptions() Options {
	return Options{
		ID:           "drafts.",
		Type:         "blogPost",
		TitleField:   "blogTitle",
		SummaryField: "summary",
		ContentField: "content",
		BorrowFields: []string{"topicTags", "craftTags", "featuredPosts"},
		FrontMatter:  frontmatter.ModeAuto,
		Marker:       frontmatter.DefaultMarker,
	}
}

// Result is an assembled document along with what went into it.
type Result struct {
	Document Document
	Content  richtext.Content

	// FrontMatter is nil when the markdown had no header.
	FrontMatter *frontmatter.Result

	// Keys holds every identifier excluded or generated for the document.
	Keys *keygen.Set
}

// Builder assembles documents. It is safe for concurrent use.
type Builder struct {
	opts Options
	conv *convert.Converter
}

// NewBuilder creates a Builder. Empty option fields fall back to DefaultOptions.
func NewBuilder(conv *convert.Converter, opts Options) *Builder {
	if conv == nil {
		conv = convert.New()
	}
	return &Builder{opts: withDefaults(opts), conv: conv}
}

// Options returns the effective options.
func (b *Builder) Options() Options {
	return b.opts
}

// Build creates a new document from markdown. When template is non-nil,
// each borrow field is copied from it and its "_key" values are excluded
// from the generated identifiers.
func (b *Builder) Build(markdown string, template Document) (*Result, error) {
	doc := Document{
		FieldID:   b.opts.ID,
		FieldType: b.opts.Type,
	}
	keys := keygen.NewSet()

	if template != nil {
		for _, field := range b.opts.BorrowFields {
			value, ok := template[field]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, field)
			}
			doc[field] = value
			CollectKeys(value, keys)
		}
	}

	return b.fill(doc, markdown, keys)
}

// Merge replaces the content of an existing document. All other fields are
// kept, the id is reset to the configured draft id (or dropped when
// publishing), and every "_key" in the existing document is excluded from
// the generated identifiers.
func (b *Builder) Merge(existing Document, markdown string) (*Result, error) {
	if existing == nil {
		return nil, ErrInvalidTemplate
	}

	doc := existing.Clone()
	doc[FieldID] = b.opts.ID

	keys := keygen.NewSet()
	CollectKeys(existing, keys)

	return b.fill(doc, markdown, keys)
}

func (b *Builder) fill(doc Document, markdown string, keys *keygen.Set) (*Result, error) {
	res := &Result{Document: doc, Keys: keys}
	CollectKeys(b.opts.Overlay, keys)

	body := markdown
	header, found, err := frontmatter.Detect(markdown, b.opts.FrontMatter, b.opts.Marker)
	if err != nil {
		return nil, fmt.Errorf("read front matter: %w", err)
	}
	if found {
		res.FrontMatter = &header
		body = header.Content
		doc[b.opts.TitleField] = header.Title
		doc[b.opts.SummaryField] = header.Summary
		for field, value := range header.Fields {
			if _, taken := doc[field]; taken || b.reserved(field) {
				continue
			}
			doc[field] = value
		}
	}

	res.Content = b.conv.Convert(body, keys)
	doc[b.opts.ContentField] = res.Content

	for field, value := range b.opts.Overlay {
		doc[field] = value
	}
	if b.opts.Publish {
		delete(doc, FieldID)
	}

	return res, nil
}

func (b *Builder) reserved(field string) bool {
	return strings.HasPrefix(field, "_") ||
		field == b.opts.TitleField ||
		field == b.opts.SummaryField ||
		field == b.opts.ContentField
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.ID == "" {
		opts.ID = def.ID
	}
	if opts.Type == "" {
		opts.Type = def.Type
	}
	if opts.TitleField == "" {
		opts.TitleField = def.TitleField
	}
	if opts.SummaryField == "" {
		opts.SummaryField = def.SummaryField
	}
	if opts.ContentField == "" {
		opts.ContentField = def.ContentField
	}
	if opts.FrontMatter == "" {
		opts.FrontMatter = def.FrontMatter
	}
	if opts.Marker == "" {
		opts.Marker = def.Marker
	}
	return opts
}
