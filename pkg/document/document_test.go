package document_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdblocks/pkg/convert"
	"github.com/yaklabco/gomdblocks/pkg/document"
	"github.com/yaklabco/gomdblocks/pkg/keygen"
	"github.com/yaklabco/gomdblocks/pkg/richtext"
)

const templateJSON = `{
  "_id": "post-1",
  "_type": "blogPost",
  "topicTags": [{"_key": "tag1", "_ref": "t-1"}, {"_key": "tag2", "_ref": "t-2"}],
  "craftTags": [],
  "featuredPosts": {"items": [{"_key": "feat1"}]},
  "views": 12345678901234567890
}`

const blogMarkdown = "# Hello\nShort summary\n<hr>\nFirst *line*\n\n- item [x](http://x)\n"

func decode(t *testing.T, raw string) document.Document {
	t.Helper()

	doc, err := document.Decode(strings.NewReader(raw))
	require.NoError(t, err)
	return doc
}

func TestDecode(t *testing.T) {
	t.Parallel()

	doc := decode(t, templateJSON)
	assert.Equal(t, "post-1", doc[document.FieldID])
	assert.Equal(t, json.Number("12345678901234567890"), doc["views"])

	_, err := document.Decode(strings.NewReader(`[1,2]`))
	require.ErrorIs(t, err, document.ErrInvalidTemplate)

	_, err = document.Decode(strings.NewReader(`{`))
	require.Error(t, err)
}

func TestCollectKeys(t *testing.T) {
	t.Parallel()

	set := keygen.NewSet()
	document.CollectKeys(decode(t, templateJSON), set)

	assert.Equal(t, []string{"feat1", "tag1", "tag2"}, set.Keys())
}

func TestBuilder_BuildWithFrontMatter(t *testing.T) {
	t.Parallel()

	builder := document.NewBuilder(nil, document.DefaultOptions())

	res, err := builder.Build(blogMarkdown, nil)
	require.NoError(t, err)

	doc := res.Document
	assert.Equal(t, "drafts.", doc[document.FieldID])
	assert.Equal(t, "blogPost", doc[document.FieldType])
	assert.Equal(t, "Hello", doc["blogTitle"])
	assert.Equal(t, "Short summary", doc["summary"])
	assert.NotContains(t, doc, "topicTags")

	require.NotNil(t, res.FrontMatter)
	require.Len(t, res.Content, 2)
	assert.Equal(t, "First line", res.Content[0].Text())
	assert.Equal(t, richtext.ListBullet, res.Content[1].ListItem)
	assert.Equal(t, res.Content, doc["content"])
	assert.Equal(t, len(res.Content.Keys()), res.Keys.Len())
}

func TestBuilder_BuildWithoutFrontMatter(t *testing.T) {
	t.Parallel()

	builder := document.NewBuilder(convert.New(), document.DefaultOptions())

	res, err := builder.Build("Just a paragraph\n# And a heading", nil)
	require.NoError(t, err)

	assert.Nil(t, res.FrontMatter)
	assert.NotContains(t, res.Document, "blogTitle")
	assert.NotContains(t, res.Document, "summary")
	require.Len(t, res.Content, 2)
	assert.Equal(t, "h1", res.Content[1].Style)
}

func TestBuilder_BuildBorrowsTemplateFields(t *testing.T) {
	t.Parallel()

	template := decode(t, templateJSON)
	builder := document.NewBuilder(nil, document.DefaultOptions())

	res, err := builder.Build(blogMarkdown, template)
	require.NoError(t, err)

	assert.Equal(t, template["topicTags"], res.Document["topicTags"])
	assert.Equal(t, template["featuredPosts"], res.Document["featuredPosts"])
	assert.NotContains(t, res.Document, "views")
	assert.Equal(t, "drafts.", res.Document[document.FieldID])

	for _, borrowed := range []string{"tag1", "tag2", "feat1"} {
		assert.True(t, res.Keys.Contains(borrowed))
	}
	excluded := func(key string) bool {
		return key == "tag1" || key == "tag2" || key == "feat1"
	}
	assert.Empty(t, richtext.Validate(res.Content, excluded))
}

func TestBuilder_BuildMissingBorrowField(t *testing.T) {
	t.Parallel()

	opts := document.DefaultOptions()
	opts.BorrowFields = []string{"topicTags", "nope"}
	builder := document.NewBuilder(nil, opts)

	_, err := builder.Build(blogMarkdown, decode(t, templateJSON))
	require.ErrorIs(t, err, document.ErrFieldNotFound)
	assert.Contains(t, err.Error(), "nope")
}

func TestBuilder_BuildYAMLFields(t *testing.T) {
	t.Parallel()

	markdown := "---\ntitle: T\nsummary: S\nauthor: Sam\n_id: ignored\ncontent: ignored\n---\nBody"
	builder := document.NewBuilder(nil, document.DefaultOptions())

	res, err := builder.Build(markdown, nil)
	require.NoError(t, err)

	assert.Equal(t, "T", res.Document["blogTitle"])
	assert.Equal(t, "Sam", res.Document["author"])
	assert.Equal(t, "drafts.", res.Document[document.FieldID])
	assert.Equal(t, res.Content, res.Document["content"])
}

func TestBuilder_Merge(t *testing.T) {
	t.Parallel()

	existing := decode(t, `{
	  "_id": "abc",
	  "_type": "blogPost",
	  "blogTitle": "Old",
	  "content": [{"_key": "old1", "_type": "richText", "children": [{"_key": "old2"}]}],
	  "topicTags": [{"_key": "tag1"}]
	}`)
	builder := document.NewBuilder(nil, document.DefaultOptions())

	res, err := builder.Merge(existing, "New body\nSecond line")
	require.NoError(t, err)

	assert.Equal(t, "drafts.", res.Document[document.FieldID])
	assert.Equal(t, "Old", res.Document["blogTitle"])
	assert.Equal(t, existing["topicTags"], res.Document["topicTags"])
	assert.Equal(t, "abc", existing[document.FieldID], "existing document must not change")

	require.Len(t, res.Content, 2)
	for _, key := range []string{"old1", "old2", "tag1"} {
		assert.True(t, res.Keys.Contains(key))
		assert.NotContains(t, res.Content.Keys(), key)
	}

	_, err = builder.Merge(nil, "x")
	require.ErrorIs(t, err, document.ErrInvalidTemplate)
}

func TestBuilder_Overlay(t *testing.T) {
	t.Parallel()

	opts := document.DefaultOptions()
	opts.Overlay = decode(t, `{
	  "blogTitle": "Replaced",
	  "slug": {"current": "hello"},
	  "author": {"_key": "auth1", "_ref": "person-1"}
	}`)
	builder := document.NewBuilder(nil, opts)

	res, err := builder.Build(blogMarkdown, nil)
	require.NoError(t, err)

	assert.Equal(t, "Replaced", res.Document["blogTitle"])
	assert.Equal(t, "Short summary", res.Document["summary"])
	assert.Equal(t, opts.Overlay["slug"], res.Document["slug"])
	assert.Equal(t, "drafts.", res.Document[document.FieldID])

	assert.True(t, res.Keys.Contains("auth1"))
	assert.NotContains(t, res.Content.Keys(), "auth1")

	merged, err := builder.Merge(decode(t, `{"_id": "abc", "blogTitle": "Old"}`), "Body")
	require.NoError(t, err)
	assert.Equal(t, "Replaced", merged.Document["blogTitle"])
}

func TestBuilder_Publish(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		overlay document.Document
		merge   bool
	}{
		{name: "build"},
		{name: "merge", merge: true},
		{name: "overlay id", overlay: document.Document{document.FieldID: "post-9"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			opts := document.DefaultOptions()
			opts.Publish = true
			opts.Overlay = testCase.overlay
			builder := document.NewBuilder(nil, opts)

			var (
				res *document.Result
				err error
			)
			if testCase.merge {
				res, err = builder.Merge(decode(t, `{"_id": "abc", "_type": "blogPost"}`), blogMarkdown)
			} else {
				res, err = builder.Build(blogMarkdown, nil)
			}
			require.NoError(t, err)

			assert.NotContains(t, res.Document, document.FieldID)
			assert.Equal(t, "blogPost", res.Document[document.FieldType])
			assert.Equal(t, "Hello", res.Document["blogTitle"])
		})
	}
}

func TestBuilder_CustomFieldNames(t *testing.T) {
	t.Parallel()

	builder := document.NewBuilder(nil, document.Options{
		ID:           "drafts.page",
		Type:         "page",
		TitleField:   "heading",
		ContentField: "body",
	})

	res, err := builder.Build(blogMarkdown, nil)
	require.NoError(t, err)

	assert.Equal(t, "drafts.page", res.Document[document.FieldID])
	assert.Equal(t, "page", res.Document[document.FieldType])
	assert.Equal(t, "Hello", res.Document["heading"])
	assert.Equal(t, "Short summary", res.Document["summary"])
	assert.Contains(t, res.Document, "body")
	assert.Equal(t, "blogPost", document.DefaultOptions().Type)
	assert.Equal(t, "summary", builder.Options().SummaryField)
}

func TestDocument_Encode(t *testing.T) {
	t.Parallel()

	doc := document.Document{"_id": "drafts.", "text": "a <b>"}

	var compact bytes.Buffer
	require.NoError(t, doc.Encode(&compact, false))
	assert.Equal(t, "{\"_id\":\"drafts.\",\"text\":\"a <b>\"}\n", compact.String())

	var pretty bytes.Buffer
	require.NoError(t, doc.Encode(&pretty, true))
	assert.Equal(t, "{\n  \"_id\": \"drafts.\",\n  \"text\": \"a <b>\"\n}\n", pretty.String())
}
