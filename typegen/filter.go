package typegen

import (
	"sort"

	"github.com/teranos/shapegen/schema"
)

// ShapeFilter decides which shapes get a standalone class.
//
// Shapes used as any operation's input or output are produced by the
// resource generator and are excluded here. The filter is built from one
// model's operations table and must not be reused for another model.
type ShapeFilter struct {
	excluded map[string]bool
}

// NewShapeFilter collects every operation input and output shape name.
func NewShapeFilter(operations []*schema.Operation) *ShapeFilter {
	f := &ShapeFilter{excluded: make(map[string]bool)}
	for _, op := range operations {
		if op.Input != nil && op.Input.Shape != "" {
			f.excluded[op.Input.Shape] = true
		}
		if op.Output != nil && op.Output.Shape != "" {
			f.excluded[op.Output.Shape] = true
		}
	}
	return f
}

// IsEligible reports whether name is not an operation input or output.
func (f *ShapeFilter) IsEligible(name string) bool {
	return !f.excluded[name]
}

// Excluded returns the operation input/output shape names, sorted.
func (f *ShapeFilter) Excluded() []string {
	out := make([]string, 0, len(f.excluded))
	for name := range f.excluded {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// IsEligible is the one-shot form of ShapeFilter.IsEligible.
func IsEligible(name string, operations []*schema.Operation) bool {
	return NewShapeFilter(operations).IsEligible(name)
}
