// Package typegen turns a service model into source code, one class per
// structure shape, ordered so every class follows the classes it uses.
//
// The pipeline is shared by all target languages:
//
//	model ─▶ BuildGraph ─▶ Orderer.Order ─▶ ShapeFilter ─▶ Generator ─▶ Result
//
// Backends (python, markdown) implement Generator and only decide how text
// looks; ordering, filtering and error handling live here.
package typegen

import (
	"github.com/teranos/shapegen/schema"
)

// Generator is implemented by each target language.
type Generator interface {
	// Language returns the backend name, e.g. "python"
	Language() string

	// FileExtension returns the output extension without the dot, e.g. "py"
	FileExtension() string

	// Header returns everything before the first class: license header,
	// import preamble, base class and the "unassigned" sentinel.
	Header(model *schema.Model) (string, error)

	// RenderMembers renders the member declarations of a structure shape,
	// one per line and not yet indented. Failures are RenderingErrors
	// carrying the shape and member.
	RenderMembers(model *schema.Model, shape *schema.Shape) (string, error)

	// RenderDocumentation builds the shape's documentation block: name,
	// shape documentation, an attributes header and one entry per member
	// in declared order.
	RenderDocumentation(shape *schema.Shape) string

	// EmitClass wraps rendered members and documentation into one class
	// definition named after the shape.
	EmitClass(shape *schema.Shape, members, documentation string) (string, error)
}

// FileName returns base with the generator's extension, e.g. "shapes.py".
func FileName(base string, gen Generator) string {
	return base + "." + gen.FileExtension()
}
