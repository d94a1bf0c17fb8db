// Package schema is the read-only view over a parsed service model.
//
// A service model describes named shapes (structures, lists, maps and
// scalars) and the operations that consume and produce them. Shapes and
// structure members keep their declaration order from the source document;
// every consumer in shapegen relies on that order for deterministic output.
//
// A Model is built once per generation run and never mutated afterwards.
package schema

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind is the value of a shape's "type" field.
type Kind string

const (
	KindStructure Kind = "structure"
	KindList      Kind = "list"
	KindMap       Kind = "map"

	KindString    Kind = "string"
	KindInteger   Kind = "integer"
	KindLong      Kind = "long"
	KindFloat     Kind = "float"
	KindDouble    Kind = "double"
	KindBoolean   Kind = "boolean"
	KindTimestamp Kind = "timestamp"
	KindBlob      Kind = "blob"
)

var scalarKinds = map[Kind]bool{
	KindString:    true,
	KindInteger:   true,
	KindLong:      true,
	KindFloat:     true,
	KindDouble:    true,
	KindBoolean:   true,
	KindTimestamp: true,
	KindBlob:      true,
}

// IsScalar reports whether k is one of the primitive kinds.
func (k Kind) IsScalar() bool {
	return scalarKinds[k]
}

// IsKnown reports whether k is a scalar, list, map or structure.
func (k Kind) IsKnown() bool {
	return k == KindStructure || k == KindList || k == KindMap || k.IsScalar()
}

// ShapeRef points at another shape by name.
// Used for list elements, map keys and values, and operation input/output.
type ShapeRef struct {
	Shape         string `json:"shape" yaml:"shape"`
	Documentation string `json:"documentation,omitempty" yaml:"documentation,omitempty"`
}

// MemberRef is one named member of a structure shape.
type MemberRef struct {
	// Name is the member name as declared (PascalCase in botocore models)
	Name string `json:"-" yaml:"-"`
	// Shape is the referenced shape name
	Shape         string `json:"shape" yaml:"shape"`
	Documentation string `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	// Required is resolved from the enclosing structure's "required" list
	Required bool `json:"-" yaml:"-"`
}

// Shape is one entry of the "shapes" table.
type Shape struct {
	Name          string `json:"-" yaml:"-"`
	Type          Kind   `json:"type" yaml:"type"`
	Documentation string `json:"documentation,omitempty" yaml:"documentation,omitempty"`

	// Members is nil when the shape declares no "members" key at all.
	// An empty structure ("members": {}) has a non-nil, empty map.
	Members *orderedmap.OrderedMap[string, *MemberRef] `json:"members,omitempty" yaml:"members,omitempty"`

	Member *ShapeRef `json:"member,omitempty" yaml:"member,omitempty"` // list element
	Key    *ShapeRef `json:"key,omitempty" yaml:"key,omitempty"`       // map key
	Value  *ShapeRef `json:"value,omitempty" yaml:"value,omitempty"`   // map value

	Required  []string `json:"required,omitempty" yaml:"required,omitempty"`
	Enum      []string `json:"enum,omitempty" yaml:"enum,omitempty"`
	Exception bool     `json:"exception,omitempty" yaml:"exception,omitempty"`
}

// HasMembers reports whether the shape declares a "members" mapping.
func (s *Shape) HasMembers() bool {
	return s.Members != nil
}

// MemberList returns the members in declaration order.
func (s *Shape) MemberList() []*MemberRef {
	if s.Members == nil {
		return nil
	}
	out := make([]*MemberRef, 0, s.Members.Len())
	for pair := s.Members.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Operation is one entry of the "operations" table.
type Operation struct {
	Name          string    `json:"-" yaml:"-"`
	Input         *ShapeRef `json:"input,omitempty" yaml:"input,omitempty"`
	Output        *ShapeRef `json:"output,omitempty" yaml:"output,omitempty"`
	Documentation string    `json:"documentation,omitempty" yaml:"documentation,omitempty"`
}

// Metadata is the service model's "metadata" block.
type Metadata struct {
	APIVersion      string `json:"apiVersion" yaml:"apiVersion"`
	ServiceFullName string `json:"serviceFullName" yaml:"serviceFullName"`
	ServiceID       string `json:"serviceId" yaml:"serviceId"`
	Protocol        string `json:"protocol" yaml:"protocol"`
	UID             string `json:"uid" yaml:"uid"`
}

// Document is the wire form of a service model.
type Document struct {
	Metadata   Metadata                                `json:"metadata" yaml:"metadata"`
	Operations map[string]*Operation                   `json:"operations" yaml:"operations"`
	Shapes     *orderedmap.OrderedMap[string, *Shape] `json:"shapes" yaml:"shapes"`
}

// Model is the read-only view every pipeline stage works from.
type Model struct {
	Metadata Metadata

	names      []string
	shapes     map[string]*Shape
	operations map[string]*Operation
}

// NewModel indexes a decoded document. Names are copied into the shapes,
// members and operations, and each member's Required flag is resolved.
// References are not checked here; see Validate.
func NewModel(doc *Document) *Model {
	m := &Model{
		Metadata:   doc.Metadata,
		shapes:     make(map[string]*Shape),
		operations: make(map[string]*Operation),
	}

	if doc.Shapes != nil {
		m.names = make([]string, 0, doc.Shapes.Len())
		for pair := doc.Shapes.Oldest(); pair != nil; pair = pair.Next() {
			shape := pair.Value
			if shape == nil {
				shape = &Shape{}
			}
			shape.Name = pair.Key
			resolveMembers(shape)
			m.names = append(m.names, pair.Key)
			m.shapes[pair.Key] = shape
		}
	}

	for name, op := range doc.Operations {
		if op == nil {
			op = &Operation{}
		}
		op.Name = name
		m.operations[name] = op
	}

	return m
}

func resolveMembers(shape *Shape) {
	if shape.Members == nil {
		return
	}
	required := make(map[string]bool, len(shape.Required))
	for _, r := range shape.Required {
		required[r] = true
	}
	for pair := shape.Members.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			pair.Value = &MemberRef{}
		}
		pair.Value.Name = pair.Key
		pair.Value.Required = required[pair.Key]
	}
}

// Len returns the number of shapes.
func (m *Model) Len() int {
	return len(m.names)
}

// Names returns every shape name in declaration order.
func (m *Model) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Shape looks up a shape by name.
func (m *Model) Shape(name string) (*Shape, bool) {
	s, ok := m.shapes[name]
	return s, ok
}

// Shapes returns every shape in declaration order.
func (m *Model) Shapes() []*Shape {
	out := make([]*Shape, 0, len(m.names))
	for _, name := range m.names {
		out = append(out, m.shapes[name])
	}
	return out
}

// Operations returns every operation sorted by name.
func (m *Model) Operations() []*Operation {
	names := make([]string, 0, len(m.operations))
	for name := range m.operations {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*Operation, 0, len(names))
	for _, name := range names {
		out = append(out, m.operations[name])
	}
	return out
}

// Operation looks up an operation by name.
func (m *Model) Operation(name string) (*Operation, bool) {
	op, ok := m.operations[name]
	return op, ok
}
