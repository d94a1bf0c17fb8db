package schema

import "github.com/teranos/shapegen/errors"

// Validate checks every shape kind and every reference in the model.
// It returns the first problem found in declaration order: an
// UnsupportedShapeKind error for an unknown "type", or a SchemaError for a
// member, list element, or map key/value naming an undeclared shape.
func (m *Model) Validate() error {
	for _, name := range m.names {
		shape := m.shapes[name]

		if !shape.Type.IsKnown() {
			return errors.NewUnsupportedKindError(name, string(shape.Type))
		}

		for _, member := range shape.MemberList() {
			if _, ok := m.shapes[member.Shape]; !ok {
				return errors.NewSchemaError(name, member.Name, member.Shape)
			}
		}

		switch shape.Type {
		case KindList:
			if err := m.checkRef(name, "member", shape.Member); err != nil {
				return err
			}
		case KindMap:
			if err := m.checkRef(name, "key", shape.Key); err != nil {
				return err
			}
			if err := m.checkRef(name, "value", shape.Value); err != nil {
				return err
			}
		}
	}

	return nil
}

func (m *Model) checkRef(shape, field string, ref *ShapeRef) error {
	if ref == nil {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrSchema, "shape %q has no %q reference", shape, field),
			"%s shapes must declare %q", m.shapes[shape].Type, field)
	}
	if _, ok := m.shapes[ref.Shape]; !ok {
		return errors.NewSchemaError(shape, field, ref.Shape)
	}
	return nil
}
