package typegen

import (
	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/schema"
)

// DependencyGraph maps each shape name to the shapes it directly depends on.
//
// Keys keep the order they were added in, which is the schema's declaration
// order when built by BuildGraph. A key added with AddLeaf has no dependency
// list at all (nil); a structure with an empty members table has an empty,
// non-nil list. Duplicate dependencies are kept.
type DependencyGraph struct {
	names []string
	deps  map[string][]string
}

// NewDependencyGraph returns an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{deps: make(map[string][]string)}
}

// AddLeaf records name as a shape without members.
func (g *DependencyGraph) AddLeaf(name string) {
	g.put(name, nil)
}

// Add records name with its dependency list, in order.
func (g *DependencyGraph) Add(name string, deps ...string) {
	list := make([]string, len(deps))
	copy(list, deps)
	g.put(name, list)
}

func (g *DependencyGraph) put(name string, deps []string) {
	if _, exists := g.deps[name]; !exists {
		g.names = append(g.names, name)
	}
	g.deps[name] = deps
}

// Len returns the number of keys.
func (g *DependencyGraph) Len() int {
	return len(g.names)
}

// Names returns the keys in insertion order.
func (g *DependencyGraph) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Has reports whether name is a key of the graph.
func (g *DependencyGraph) Has(name string) bool {
	_, ok := g.deps[name]
	return ok
}

// Dependencies returns the direct dependencies of name.
// Leaves and names that are not keys return nil.
func (g *DependencyGraph) Dependencies(name string) []string {
	return g.deps[name]
}

// IsLeaf reports whether name has no dependency list. Names that are not
// keys of the graph are implicit leaves.
func (g *DependencyGraph) IsLeaf(name string) bool {
	return g.deps[name] == nil
}

// BuildGraph derives the dependency graph of every shape in the model.
//
// A shape with a members table depends on each member's shape in declared
// order. When a member references a list or map, the dependency is recorded
// on the element shapes (the list member, or the map key then value) rather
// than on the wrapper; nested wrappers are unwrapped the same way. Shapes
// without a members table become leaves.
//
// A reference to an undeclared shape fails with a SchemaError.
func BuildGraph(model *schema.Model) (*DependencyGraph, error) {
	g := NewDependencyGraph()

	for _, shape := range model.Shapes() {
		if !shape.HasMembers() {
			g.AddLeaf(shape.Name)
			continue
		}

		deps := make([]string, 0, shape.Members.Len())
		for _, member := range shape.MemberList() {
			target, ok := model.Shape(member.Shape)
			if !ok {
				return nil, errors.NewSchemaError(shape.Name, member.Name, member.Shape)
			}
			elems, err := elementShapes(model, shape.Name, member.Name, target, nil)
			if err != nil {
				return nil, err
			}
			deps = append(deps, elems...)
		}
		g.put(shape.Name, deps)
	}

	return g, nil
}

// elementShapes unwraps list and map shapes down to the shapes they hold.
// seen holds the wrappers on the current path, so a wrapper that
// (indirectly) contains itself stops the descent.
func elementShapes(model *schema.Model, owner, member string, target *schema.Shape, seen map[string]bool) ([]string, error) {
	if target.Type != schema.KindList && target.Type != schema.KindMap {
		return []string{target.Name}, nil
	}
	if seen[target.Name] {
		return []string{target.Name}, nil
	}
	if seen == nil {
		seen = make(map[string]bool)
	}
	seen[target.Name] = true
	defer delete(seen, target.Name)

	var refs []*schema.ShapeRef
	if target.Type == schema.KindList {
		refs = []*schema.ShapeRef{target.Member}
	} else {
		refs = []*schema.ShapeRef{target.Key, target.Value}
	}

	var out []string
	for _, ref := range refs {
		if ref == nil {
			return nil, errors.WithHintf(
				errors.Wrapf(errors.ErrSchema, "shape %q member %q: %s shape %q is missing an element reference",
					owner, member, target.Type, target.Name),
				"declare the %s's element shape", target.Type)
		}
		elem, ok := model.Shape(ref.Shape)
		if !ok {
			return nil, errors.NewSchemaError(owner, member, ref.Shape)
		}
		names, err := elementShapes(model, owner, member, elem, seen)
		if err != nil {
			return nil, err
		}
		out = append(out, names...)
	}
	return out, nil
}
