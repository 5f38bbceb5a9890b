// Package document assembles converted content into a host document: the
// JSON object a content store keeps, with an id, a type, optional title and
// summary fields, fields borrowed from a template document, and the block
// content itself.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/yaklabco/gomdblocks/pkg/keygen"
)

// Reserved field names of the host schema.
const (
	FieldID   = "_id"
	FieldType = "_type"
	FieldKey  = "_key"
)

// Sentinel errors.
var (
	// ErrFieldNotFound is returned when a borrowed field is absent from the template.
	ErrFieldNotFound = errors.New("field not found in template")

	// ErrInvalidTemplate is returned when a template or existing document is not a JSON object.
	ErrInvalidTemplate = errors.New("document is not a JSON object")
)

// Document is a host document keyed by field name.
type Document map[string]any

// Decode reads one JSON object. Numbers are kept as json.Number so they
// survive a round trip unchanged.
func Decode(r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrInvalidTemplate
	}
	return Document(obj), nil
}

// Encode writes the document as JSON. Compact output has no insignificant
// whitespace; pretty output is indented by two spaces.
func (d Document) Encode(w io.Writer, pretty bool) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(map[string]any(d)); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// Clone returns a copy whose top-level map is independent of d.
// Nested values are shared.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for key, value := range d {
		out[key] = value
	}
	return out
}

// CollectKeys adds every "_key" string found anywhere in v to set.
//
// Only documents that come from outside this process need it: identifiers
// generated here are registered in the Set when they are created.
func CollectKeys(v any, set *keygen.Set) {
	switch node := v.(type) {
	case Document:
		CollectKeys(map[string]any(node), set)
	case map[string]any:
		for key, value := range node {
			if key == FieldKey {
				if s, ok := value.(string); ok {
					set.Add(s)
				}
			}
			CollectKeys(value, set)
		}
	case []any:
		for _, item := range node {
			CollectKeys(item, set)
		}
	}
}
