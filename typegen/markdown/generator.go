// Package markdown renders service shapes as a markdown reference page.
// Each emitted structure gets a section with its documentation and a
// member table; structure references link to their section.
package markdown

import (
	"fmt"
	"strings"

	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/schema"
	"github.com/teranos/shapegen/typegen/util"
)

// Generator implements typegen.Generator for Markdown
type Generator struct{}

// NewGenerator creates a new Markdown generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Language returns "markdown"
func (g *Generator) Language() string {
	return "markdown"
}

// FileExtension returns "md"
func (g *Generator) FileExtension() string {
	return "md"
}

var typeConverterConfig = &util.TypeConverterConfig{
	ScalarTypes: map[schema.Kind]string{
		schema.KindString:    "string",
		schema.KindInteger:   "integer",
		schema.KindLong:      "long",
		schema.KindFloat:     "float",
		schema.KindDouble:    "double",
		schema.KindBoolean:   "boolean",
		schema.KindTimestamp: "timestamp",
		schema.KindBlob:      "blob",
	},
	ListFormat: func(elem string) string { return "list of " + elem },
	MapFormat:  func(key, val string) string { return fmt.Sprintf("map of %s to %s", key, val) },
	StructureFormat: func(name string, _ bool) string {
		return fmt.Sprintf("[%s](#%s)", name, util.ToAnchor(name))
	},
}

// Header renders the page title and the generated-file notice.
func (g *Generator) Header(model *schema.Model) (string, error) {
	title := model.Metadata.ServiceFullName
	if title == "" {
		title = model.Metadata.ServiceID
	}
	if title == "" {
		title = "Service"
	}

	var sb strings.Builder
	sb.WriteString("<!-- Code generated by shapegen. DO NOT EDIT. -->\n\n")
	sb.WriteString(fmt.Sprintf("# %s Shapes\n", title))
	if v := model.Metadata.APIVersion; v != "" {
		sb.WriteString(fmt.Sprintf("\nAPI version `%s`.\n", v))
	}
	return sb.String(), nil
}

// RenderMembers renders the member table in declaration order.
func (g *Generator) RenderMembers(model *schema.Model, shape *schema.Shape) (string, error) {
	members := shape.MemberList()
	if len(members) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("| Field | Type | Required | Description |\n")
	sb.WriteString("|-------|------|----------|-------------|\n")

	for _, m := range members {
		typ, err := util.ConvertShapeType(model, shape.Name, m.Shape, typeConverterConfig)
		if err != nil {
			return "", errors.NewRenderingError(shape.Name, m.Name, err)
		}

		required := ""
		if m.Required {
			required = "yes"
		}
		sb.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s |\n",
			util.ToSnakeCase(m.Name), typ, required, cell(m.Documentation)))
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

// RenderDocumentation returns the cleaned shape documentation.
// Member documentation lives in the member table.
func (g *Generator) RenderDocumentation(shape *schema.Shape) string {
	return util.CleanDocumentation(shape.Documentation)
}

// EmitClass renders one "## Name" section.
func (g *Generator) EmitClass(shape *schema.Shape, members, documentation string) (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n## %s\n", shape.Name))
	if documentation != "" {
		sb.WriteString("\n")
		sb.WriteString(documentation)
		sb.WriteString("\n")
	}
	if members != "" {
		sb.WriteString("\n")
		sb.WriteString(members)
		sb.WriteString("\n")
	} else {
		sb.WriteString("\n_No members._\n")
	}
	return sb.String(), nil
}

// cell makes documentation safe for a single table cell
func cell(doc string) string {
	doc = util.CleanDocumentation(doc)
	doc = strings.ReplaceAll(doc, "\n", " ")
	return strings.ReplaceAll(doc, "|", `\|`)
}
