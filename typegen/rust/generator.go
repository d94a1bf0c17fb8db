// Package rust renders service shapes as serde structs.
//
// Fields keep declaration order and the wire name of every member through
// #[serde(rename)]. Members not listed as required become Option<T>.
// References from a structure back to itself are boxed.
package rust

import (
	"fmt"
	"strings"

	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/schema"
	"github.com/teranos/shapegen/typegen/util"
)

// Generator implements typegen.Generator for Rust
type Generator struct {
	indent int
}

// NewGenerator creates a new Rust generator. indent <= 0 uses 4 spaces.
func NewGenerator(indent int) *Generator {
	if indent <= 0 {
		indent = util.DefaultIndent
	}
	return &Generator{indent: indent}
}

// Language returns "rust"
func (g *Generator) Language() string {
	return "rust"
}

// FileExtension returns "rs"
func (g *Generator) FileExtension() string {
	return "rs"
}

// ScalarTypes defines how scalar shape kinds map to Rust types
var ScalarTypes = map[schema.Kind]string{
	schema.KindString:    "String",
	schema.KindInteger:   "i32",
	schema.KindLong:      "i64",
	schema.KindFloat:     "f32",
	schema.KindDouble:    "f64",
	schema.KindBoolean:   "bool",
	schema.KindTimestamp: "String", // RFC3339 string
	schema.KindBlob:      "Vec<u8>",
}

// typeConverterConfig is the Rust-specific type conversion configuration
var typeConverterConfig = &util.TypeConverterConfig{
	ScalarTypes: ScalarTypes,
	ListFormat:  func(elem string) string { return "Vec<" + elem + ">" },
	MapFormat: func(key, val string) string {
		return fmt.Sprintf("std::collections::HashMap<%s, %s>", key, val)
	},
	StructureFormat: func(name string, self bool) string {
		if self {
			return "Box<" + name + ">"
		}
		return name
	},
}

// TypeName returns the Rust type for a reference to shape ref from inside
// the structure owner. Optional wrapping is not applied.
func TypeName(model *schema.Model, owner, ref string) (string, error) {
	return util.ConvertShapeType(model, owner, ref, typeConverterConfig)
}

// Header renders the generated-file notice and the serde import.
func (g *Generator) Header(model *schema.Model) (string, error) {
	var sb strings.Builder
	sb.WriteString("// Code generated by shapegen")
	if svc := model.Metadata.ServiceID; svc != "" {
		sb.WriteString(" from " + svc)
		if v := model.Metadata.APIVersion; v != "" {
			sb.WriteString(" " + v)
		}
	}
	sb.WriteString(". DO NOT EDIT.\n\n")
	sb.WriteString("use serde::{Deserialize, Serialize};\n")
	return sb.String(), nil
}

// RenderMembers renders one field per member in declaration order,
// each preceded by its doc comment and serde attribute. The result is not
// indented.
func (g *Generator) RenderMembers(model *schema.Model, shape *schema.Shape) (string, error) {
	var fields []string

	for _, m := range shape.MemberList() {
		rustType, err := TypeName(model, shape.Name, m.Shape)
		if err != nil {
			return "", errors.NewRenderingError(shape.Name, m.Name, err)
		}

		var sb strings.Builder
		sb.WriteString(docComment(util.CleanDocumentation(m.Documentation)))
		if m.Required {
			sb.WriteString(fmt.Sprintf("#[serde(rename = %q)]\n", m.Name))
			sb.WriteString(fmt.Sprintf("pub %s: %s,", FieldName(m.Name), rustType))
		} else {
			sb.WriteString(fmt.Sprintf("#[serde(rename = %q, default, skip_serializing_if = \"Option::is_none\")]\n", m.Name))
			sb.WriteString(fmt.Sprintf("pub %s: Option<%s>,", FieldName(m.Name), rustType))
		}
		fields = append(fields, sb.String())
	}

	return strings.Join(fields, "\n"), nil
}

// RenderDocumentation returns the shape documentation as /// lines.
func (g *Generator) RenderDocumentation(shape *schema.Shape) string {
	return docComment(util.CleanDocumentation(shape.Documentation))
}

// EmitClass renders one struct.
func (g *Generator) EmitClass(shape *schema.Shape, members, documentation string) (string, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(documentation)
	sb.WriteString("#[derive(Debug, Clone, PartialEq, Serialize, Deserialize)]\n")
	if members == "" {
		sb.WriteString(fmt.Sprintf("pub struct %s {}\n", shape.Name))
		return sb.String(), nil
	}
	sb.WriteString(fmt.Sprintf("pub struct %s {\n", shape.Name))
	sb.WriteString(util.Indent(members, g.indent))
	sb.WriteString("\n}\n")
	return sb.String(), nil
}

// docComment turns text into /// lines; empty text gives ""
func docComment(text string) string {
	if text == "" {
		return ""
	}
	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			sb.WriteString("///\n")
			continue
		}
		sb.WriteString("/// " + line + "\n")
	}
	return sb.String()
}

// rustKeywords are reserved words that need the raw identifier prefix
var rustKeywords = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "const": true,
	"continue": true, "dyn": true, "else": true, "enum": true, "extern": true,
	"false": true, "fn": true, "for": true, "if": true, "impl": true,
	"in": true, "let": true, "loop": true, "match": true, "mod": true,
	"move": true, "mut": true, "pub": true, "ref": true, "return": true,
	"static": true, "struct": true, "trait": true, "true": true, "type": true,
	"unsafe": true, "use": true, "where": true, "while": true,
	// Reserved for future use
	"abstract": true, "become": true, "box": true, "do": true, "final": true,
	"macro": true, "override": true, "priv": true, "try": true, "typeof": true,
	"unsized": true, "virtual": true, "yield": true,
}

// FieldName returns the Rust field name for a member name.
// Keywords use the raw identifier form, e.g. "Type" -> "r#type"; the few
// that cannot be raw identifiers get an underscore suffix.
func FieldName(member string) string {
	name := util.ToSnakeCase(member)
	switch {
	case name == "self" || name == "super" || name == "crate":
		return name + "_"
	case rustKeywords[name]:
		return "r#" + name
	}
	return name
}
