package rust

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/schema"
)

func parseModel(t *testing.T, doc string) *schema.Model {
	t.Helper()
	model, err := schema.Parse([]byte(doc), schema.FormatJSON)
	require.NoError(t, err)
	return model
}

const tagModel = `{
	"metadata": {"serviceId": "Example", "apiVersion": "2017-07-24"},
	"shapes": {
		"Tag": {
			"type": "structure",
			"required": ["Key"],
			"documentation": "<p>A key-value pair.</p>",
			"members": {
				"Key": {"shape": "TagKey", "documentation": "<p>The <code>key</code>.</p>"},
				"Value": {"shape": "TagKey"},
				"Children": {"shape": "TagList"},
				"Attrs": {"shape": "AttrMap"}
			}
		},
		"TagKey": {"type": "string"},
		"TagList": {"type": "list", "member": {"shape": "Tag"}},
		"AttrMap": {"type": "map", "key": {"shape": "TagKey"}, "value": {"shape": "Count"}},
		"Count": {"type": "long"},
		"Empty": {"type": "structure", "members": {}}
	}
}`

func TestRenderMembers(t *testing.T) {
	model := parseModel(t, tagModel)
	tag, _ := model.Shape("Tag")

	g := NewGenerator(0)
	got, err := g.RenderMembers(model, tag)
	require.NoError(t, err)

	want := `/// The 'key'.
#[serde(rename = "Key")]
pub key: String,
#[serde(rename = "Value", default, skip_serializing_if = "Option::is_none")]
pub value: Option<String>,
#[serde(rename = "Children", default, skip_serializing_if = "Option::is_none")]
pub children: Option<Vec<Box<Tag>>>,
#[serde(rename = "Attrs", default, skip_serializing_if = "Option::is_none")]
pub attrs: Option<std::collections::HashMap<String, i64>>,`
	assert.Equal(t, want, got)
}

func TestRenderMembers_UnsupportedKind(t *testing.T) {
	model := parseModel(t, `{"shapes": {
		"A": {"type": "structure", "members": {"U": {"shape": "Weird"}}},
		"Weird": {"type": "union"}
	}}`)
	a, _ := model.Shape("A")

	_, err := NewGenerator(4).RenderMembers(model, a)
	require.Error(t, err)
	assert.True(t, errors.IsRenderingError(err))
	assert.True(t, errors.IsUnsupportedKindError(err))
}

func TestEmitClass(t *testing.T) {
	model := parseModel(t, tagModel)
	g := NewGenerator(2)

	tag, _ := model.Shape("Tag")
	got, err := g.EmitClass(tag, "pub key: String,", g.RenderDocumentation(tag))
	require.NoError(t, err)
	assert.Equal(t, `
/// A key-value pair.
#[derive(Debug, Clone, PartialEq, Serialize, Deserialize)]
pub struct Tag {
  pub key: String,
}
`, got)

	empty, _ := model.Shape("Empty")
	got, err = g.EmitClass(empty, "", g.RenderDocumentation(empty))
	require.NoError(t, err)
	assert.Equal(t, "\n#[derive(Debug, Clone, PartialEq, Serialize, Deserialize)]\npub struct Empty {}\n", got)
}

func TestHeader(t *testing.T) {
	g := NewGenerator(4)

	got, err := g.Header(parseModel(t, tagModel))
	require.NoError(t, err)
	assert.Equal(t, "// Code generated by shapegen from Example 2017-07-24. DO NOT EDIT.\n\nuse serde::{Deserialize, Serialize};\n", got)

	got, err = g.Header(parseModel(t, `{"shapes": {}}`))
	require.NoError(t, err)
	assert.Equal(t, "// Code generated by shapegen. DO NOT EDIT.\n\nuse serde::{Deserialize, Serialize};\n", got)
}

func TestFieldName(t *testing.T) {
	tests := []struct {
		member string
		want   string
	}{
		{"ThingName", "thing_name"},
		{"Type", "r#type"},
		{"Match", "r#match"},
		{"Self", "self_"},
		{"key", "key"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FieldName(tt.member), tt.member)
	}
}

func TestDocComment(t *testing.T) {
	assert.Equal(t, "", docComment(""))
	assert.Equal(t, "/// one\n///\n/// two\n", docComment("one\n\ntwo"))
}
