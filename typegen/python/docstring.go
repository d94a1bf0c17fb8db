package python

import (
	"strings"

	"github.com/teranos/shapegen/schema"
	"github.com/teranos/shapegen/typegen/util"
)

// docEscaper keeps documentation text from closing the docstring early
var docEscaper = strings.NewReplacer(`\`, `\\`, `"""`, `\"\"\"`)

// RenderDocumentation builds the docstring body: shape name, shape
// documentation, an "Attributes" section and one line per member in
// declared order. Missing documentation at either level is skipped.
func (g *Generator) RenderDocumentation(shape *schema.Shape) string {
	var sb strings.Builder

	sb.WriteString(shape.Name)
	if doc := cleanDoc(shape.Documentation); doc != "" {
		sb.WriteString("\n")
		sb.WriteString(doc)
	}

	sb.WriteString("\n\nAttributes")
	sb.WriteString("\n----------------------")

	for _, m := range shape.MemberList() {
		sb.WriteString("\n")
		sb.WriteString(util.ToSnakeCase(m.Name))
		if doc := cleanDoc(m.Documentation); doc != "" {
			sb.WriteString(": ")
			sb.WriteString(doc)
		}
	}

	return sb.String()
}

func cleanDoc(doc string) string {
	return docEscaper.Replace(util.CleanDocumentation(doc))
}
