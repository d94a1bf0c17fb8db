package typegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/schema"
)

func parseModel(t *testing.T, doc string) *schema.Model {
	t.Helper()
	model, err := schema.Parse([]byte(doc), schema.FormatJSON)
	require.NoError(t, err)
	return model
}

func TestBuildGraph_LeavesAndStructures(t *testing.T) {
	model := parseModel(t, `{"shapes": {
		"A": {"type": "structure", "members": {"m": {"shape": "B"}}},
		"B": {"type": "structure", "members": {}},
		"C": {"type": "list", "member": {"shape": "B"}},
		"S": {"type": "string"},
		"Bare": {"type": "structure"}
	}}`)

	g, err := BuildGraph(model)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C", "S", "Bare"}, g.Names())
	assert.Equal(t, []string{"B"}, g.Dependencies("A"))

	// Empty members table: a structure with no dependencies, not a leaf
	assert.NotNil(t, g.Dependencies("B"))
	assert.Empty(t, g.Dependencies("B"))
	assert.False(t, g.IsLeaf("B"))

	// No members key at all: a leaf
	assert.True(t, g.Has("Bare"))
	assert.Nil(t, g.Dependencies("Bare"))
	assert.True(t, g.IsLeaf("Bare"))

	assert.True(t, g.IsLeaf("C"))
	assert.True(t, g.IsLeaf("S"))
	assert.True(t, g.IsLeaf("NotAKey"))
	assert.False(t, g.Has("NotAKey"))
}

func TestBuildGraph_UnwrapsListsAndMaps(t *testing.T) {
	model := parseModel(t, `{"shapes": {
		"Holder": {"type": "structure", "members": {
			"Items":  {"shape": "ItemList"},
			"Lookup": {"shape": "ItemMap"},
			"Nested": {"shape": "ListOfLists"},
			"Name":   {"shape": "Name"}
		}},
		"ItemList":    {"type": "list", "member": {"shape": "Item"}},
		"ItemMap":     {"type": "map", "key": {"shape": "Name"}, "value": {"shape": "Item"}},
		"ListOfLists": {"type": "list", "member": {"shape": "ItemList"}},
		"Item":        {"type": "structure", "members": {}},
		"Name":        {"type": "string"}
	}}`)

	g, err := BuildGraph(model)
	require.NoError(t, err)

	deps := g.Dependencies("Holder")
	assert.Equal(t, []string{"Item", "Name", "Item", "Item", "Name"}, deps,
		"element shapes in member order, duplicates kept")
	assert.NotContains(t, deps, "ItemList")
	assert.NotContains(t, deps, "ItemMap")
	assert.NotContains(t, deps, "ListOfLists")
}

func TestBuildGraph_MapUsingSameWrapperTwice(t *testing.T) {
	model := parseModel(t, `{"shapes": {
		"Holder": {"type": "structure", "members": {"Pairs": {"shape": "PairMap"}}},
		"PairMap": {"type": "map", "key": {"shape": "Names"}, "value": {"shape": "Names"}},
		"Names":   {"type": "list", "member": {"shape": "Name"}},
		"Name":    {"type": "string"}
	}}`)

	g, err := BuildGraph(model)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Name"}, g.Dependencies("Holder"))
}

func TestBuildGraph_SelfContainingWrapperStops(t *testing.T) {
	model := parseModel(t, `{"shapes": {
		"Holder": {"type": "structure", "members": {"Loop": {"shape": "Loop"}}},
		"Loop":   {"type": "list", "member": {"shape": "Loop"}}
	}}`)

	g, err := BuildGraph(model)
	require.NoError(t, err)
	assert.Equal(t, []string{"Loop"}, g.Dependencies("Holder"))
}

func TestBuildGraph_SchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "member references missing shape",
			doc:  `{"shapes": {"A": {"type": "structure", "members": {"m": {"shape": "Missing"}}}}}`,
			want: []string{`"A"`, `"m"`, `"Missing"`},
		},
		{
			name: "list element missing",
			doc: `{"shapes": {
				"A": {"type": "structure", "members": {"Items": {"shape": "L"}}},
				"L": {"type": "list", "member": {"shape": "Gone"}}
			}}`,
			want: []string{`"A"`, `"Items"`, `"Gone"`},
		},
		{
			name: "map without value",
			doc: `{"shapes": {
				"A": {"type": "structure", "members": {"M": {"shape": "M"}}},
				"M": {"type": "map", "key": {"shape": "K"}},
				"K": {"type": "string"}
			}}`,
			want: []string{`"A"`, `"M"`, "missing an element reference"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildGraph(parseModel(t, tt.doc))
			require.Error(t, err)
			assert.True(t, errors.IsSchemaError(err))
			for _, s := range tt.want {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestDependencyGraph_AddCopiesDeps(t *testing.T) {
	g := NewDependencyGraph()
	deps := []string{"B", "C"}
	g.Add("A", deps...)
	deps[0] = "Z"

	assert.Equal(t, []string{"B", "C"}, g.Dependencies("A"))

	g.Add("Empty")
	assert.NotNil(t, g.Dependencies("Empty"))
	assert.False(t, g.IsLeaf("Empty"))

	// Re-adding keeps the original position
	g.AddLeaf("A")
	assert.Equal(t, []string{"A", "Empty"}, g.Names())
	assert.True(t, g.IsLeaf("A"))
	assert.Equal(t, 2, g.Len())
}
