package util

import (
	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/schema"
)

// TypeConverterConfig configures how shape kinds are converted to target language types.
type TypeConverterConfig struct {
	// ScalarTypes maps scalar kinds to target language types
	// e.g., Python: string -> "str", timestamp -> "datetime.datetime"
	ScalarTypes map[schema.Kind]string

	// ListFormat formats a list type given the element type
	// e.g., Python: "List[%s]", Markdown: "list of %s"
	ListFormat func(elemType string) string

	// MapFormat formats a map type given key and value types
	// e.g., Python: "Dict[%s, %s]"
	MapFormat func(keyType, valType string) string

	// StructureFormat formats a reference to a structure shape. self is
	// true when the reference points back at the shape being rendered.
	StructureFormat func(name string, self bool) string
}

// ConvertShapeType converts the shape named ref to a target language type
// string. owner is the structure being rendered; it only matters for
// StructureFormat's self flag. Lists and maps are converted recursively.
func ConvertShapeType(model *schema.Model, owner, ref string, config *TypeConverterConfig) (string, error) {
	return convert(model, owner, ref, config, map[string]bool{})
}

func convert(model *schema.Model, owner, ref string, config *TypeConverterConfig, seen map[string]bool) (string, error) {
	shape, ok := model.Shape(ref)
	if !ok {
		return "", errors.Wrapf(errors.ErrSchema, "undeclared shape %q", ref)
	}

	switch shape.Type {
	case schema.KindStructure:
		return config.StructureFormat(shape.Name, shape.Name == owner), nil

	case schema.KindList:
		if shape.Member == nil {
			return "", errors.Wrapf(errors.ErrSchema, "list shape %q has no member", shape.Name)
		}
		if seen[shape.Name] {
			return "", errors.Wrapf(errors.ErrSchema, "list shape %q contains itself", shape.Name)
		}
		seen[shape.Name] = true
		defer delete(seen, shape.Name)

		elem, err := convert(model, owner, shape.Member.Shape, config, seen)
		if err != nil {
			return "", err
		}
		return config.ListFormat(elem), nil

	case schema.KindMap:
		if shape.Key == nil || shape.Value == nil {
			return "", errors.Wrapf(errors.ErrSchema, "map shape %q needs both key and value", shape.Name)
		}
		if seen[shape.Name] {
			return "", errors.Wrapf(errors.ErrSchema, "map shape %q contains itself", shape.Name)
		}
		seen[shape.Name] = true
		defer delete(seen, shape.Name)

		key, err := convert(model, owner, shape.Key.Shape, config, seen)
		if err != nil {
			return "", err
		}
		val, err := convert(model, owner, shape.Value.Shape, config, seen)
		if err != nil {
			return "", err
		}
		return config.MapFormat(key, val), nil
	}

	if mapped, ok := config.ScalarTypes[shape.Type]; ok {
		return mapped, nil
	}
	return "", errors.NewUnsupportedKindError(shape.Name, string(shape.Type))
}
