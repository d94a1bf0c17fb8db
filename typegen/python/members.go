package python

import (
	"fmt"
	"strings"

	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/schema"
	"github.com/teranos/shapegen/typegen/util"
)

// ScalarTypes defines how scalar shape kinds map to Python types
var ScalarTypes = map[schema.Kind]string{
	schema.KindString:    "str",
	schema.KindInteger:   "int",
	schema.KindLong:      "int",
	schema.KindFloat:     "float",
	schema.KindDouble:    "float",
	schema.KindBoolean:   "bool",
	schema.KindTimestamp: "datetime.datetime",
	schema.KindBlob:      "bytes",
}

// typeConverterConfig is the Python-specific type conversion configuration
var typeConverterConfig = &util.TypeConverterConfig{
	ScalarTypes: ScalarTypes,
	ListFormat:  func(elem string) string { return "List[" + elem + "]" },
	MapFormat:   func(key, val string) string { return fmt.Sprintf("Dict[%s, %s]", key, val) },
	StructureFormat: func(name string, self bool) string {
		if self {
			// forward reference, the class is not defined yet
			return `"` + name + `"`
		}
		return name
	},
}

// TypeAnnotation returns the Python annotation for a reference to shape ref
// from inside the structure owner.
func TypeAnnotation(model *schema.Model, owner, ref string) (string, error) {
	return util.ConvertShapeType(model, owner, ref, typeConverterConfig)
}

// RenderMembers declares required members first as "name: Type", then
// optional members as "name: Optional[Type] = Unassigned()". Declaration
// order is kept within each group. The result is not indented.
func (g *Generator) RenderMembers(model *schema.Model, shape *schema.Shape) (string, error) {
	var required, optional []string

	for _, m := range shape.MemberList() {
		pyType, err := TypeAnnotation(model, shape.Name, m.Shape)
		if err != nil {
			return "", errors.NewRenderingError(shape.Name, m.Name, err)
		}

		name := FieldName(m.Name)
		if m.Required {
			required = append(required, fmt.Sprintf("%s: %s", name, pyType))
		} else {
			optional = append(optional, fmt.Sprintf("%s: Optional[%s] = Unassigned()", name, pyType))
		}
	}

	return strings.Join(append(required, optional...), "\n"), nil
}
