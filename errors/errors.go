// Package errors provides error handling for shapegen.
//
// This package re-exports github.com/cockroachdb/errors so every package
// gets stack traces, wrapping and user hints from one import, and defines
// the generation error taxonomy:
//
//   - ErrSchema: a member, list element, or map key/value references a
//     shape that is not declared in the schema
//   - ErrUnsupportedShapeKind: a shape's type is not a known kind
//   - ErrRendering: a backend could not render a member
//   - ErrCyclicShapes: shapes reference each other in a cycle
//
// All of them are fatal for a generation run. Wrap them to add context and
// check them with errors.Is:
//
//	if errors.Is(err, errors.ErrSchema) {
//	    // the input document is malformed
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	"strings"

	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
	Mark           = crdb.Mark
)

// Generation error kinds.
var (
	// ErrSchema indicates a shape reference that does not resolve
	ErrSchema = New("schema error")

	// ErrUnsupportedShapeKind indicates a shape type outside the known kinds
	ErrUnsupportedShapeKind = New("unsupported shape kind")

	// ErrRendering indicates a backend failed to render a shape's members
	ErrRendering = New("rendering error")

	// ErrCyclicShapes indicates a dependency cycle between two or more shapes
	ErrCyclicShapes = New("cyclic shape reference")
)

// NewSchemaError reports that member of shape references the undeclared shape ref.
func NewSchemaError(shape, member, ref string) error {
	err := Wrapf(ErrSchema, "shape %q member %q references undeclared shape %q", shape, member, ref)
	return WithHintf(err, "declare %q under \"shapes\" or fix the reference", ref)
}

// NewUnsupportedKindError reports a shape whose type is not a recognized kind.
func NewUnsupportedKindError(shape, kind string) error {
	err := Wrapf(ErrUnsupportedShapeKind, "shape %q has type %q", shape, kind)
	return WithHint(err, "supported types: structure, list, map, string, integer, long, float, double, boolean, timestamp, blob")
}

// NewRenderingError wraps cause with the shape and member being rendered.
// member may be empty when the failure is not tied to one member. The result
// matches both ErrRendering and whatever cause matches.
func NewRenderingError(shape, member string, cause error) error {
	if cause == nil {
		cause = New("unknown failure")
	}
	var err error
	if member == "" {
		err = Wrapf(cause, "render shape %q", shape)
	} else {
		err = Wrapf(cause, "render shape %q member %q", shape, member)
	}
	return Mark(err, ErrRendering)
}

// NewCycleError reports a dependency cycle; path lists the shapes in
// traversal order and repeats the first shape at the end.
func NewCycleError(path []string) error {
	err := Wrapf(ErrCyclicShapes, "%s", strings.Join(path, " -> "))
	return WithHint(err, "set generate.allow_cycles = true to emit cyclic shapes in traversal order")
}

// IsSchemaError checks if an error is or wraps ErrSchema
func IsSchemaError(err error) bool {
	return err != nil && Is(err, ErrSchema)
}

// IsUnsupportedKindError checks if an error is or wraps ErrUnsupportedShapeKind
func IsUnsupportedKindError(err error) bool {
	return err != nil && Is(err, ErrUnsupportedShapeKind)
}

// IsRenderingError checks if an error is or wraps ErrRendering
func IsRenderingError(err error) bool {
	return err != nil && Is(err, ErrRendering)
}

// IsCycleError checks if an error is or wraps ErrCyclicShapes
func IsCycleError(err error) bool {
	return err != nil && Is(err, ErrCyclicShapes)
}
