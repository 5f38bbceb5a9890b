// Package preview renders markdown to HTML with goldmark so authors can
// check a source document before converting it.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/yaklabco/gomdblocks/pkg/frontmatter"
)

// Flavor identifies the Markdown flavor used for rendering.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Renderer renders markdown to HTML.
type Renderer struct {
	flavor string
	marker string
	md     goldmark.Markdown
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMarker sets the front matter marker. Each occurrence is rendered as a
// block of its own so the markdown around it is not swallowed into a raw
// HTML block. An empty marker disables the separation.
func WithMarker(marker string) Option {
	return func(r *Renderer) {
		r.marker = marker
	}
}

// New creates a Renderer for the given flavor.
// Unknown flavors default to CommonMark.
func New(flavor string, opts ...Option) *Renderer {
	f := flavorOrDefault(flavor)
	r := &Renderer{
		flavor: f,
		marker: frontmatter.DefaultMarker,
		md:     newGoldmarkInstance(f),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Flavor returns the configured Markdown flavor.
func (r *Renderer) Flavor() string {
	return r.flavor
}

// Render writes the HTML fragment for source to w.
func (r *Renderer) Render(ctx context.Context, source []byte, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("render cancelled: %w", err)
	}
	if err := r.md.Convert(separateMarker(source, r.marker), w); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	return nil
}

// RenderPage writes a standalone HTML page with the given title.
func (r *Renderer) RenderPage(ctx context.Context, title string, source []byte, w io.Writer) error {
	var body bytes.Buffer
	if err := r.Render(ctx, source, &body); err != nil {
		return err
	}

	page := fmt.Sprintf(pageTemplate, html.EscapeString(title), body.String())
	if _, err := io.WriteString(w, page); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

// separateMarker puts blank lines around every occurrence of marker. A line
// opening with an HTML tag such as <hr> starts a raw HTML block that only
// ends at a blank line.
func separateMarker(source []byte, marker string) []byte {
	if marker == "" || !bytes.Contains(source, []byte(marker)) {
		return source
	}
	return bytes.ReplaceAll(source, []byte(marker), []byte("\n\n"+marker+"\n\n"))
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
// Raw HTML is passed through so a horizontal-rule marker renders as a rule.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	opts := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	}

	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}

	return goldmark.New(opts...)
}
