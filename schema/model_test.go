package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/shapegen/errors"
)

func TestReadFile_JSONKeepsDeclarationOrder(t *testing.T) {
	model, err := ReadFile("testdata/service.json")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"CreateThingRequest", "CreateThingResponse", "ThingName", "ThingArn",
		"TagList", "Tag", "TagKey", "TagValue", "Empty",
	}, model.Names())
	assert.Equal(t, 9, model.Len())
	assert.Equal(t, "Example", model.Metadata.ServiceID)
	assert.Equal(t, "2017-07-24", model.Metadata.APIVersion)

	req, ok := model.Shape("CreateThingRequest")
	require.True(t, ok)
	members := req.MemberList()
	require.Len(t, members, 2)
	assert.Equal(t, "ThingName", members[0].Name)
	assert.Equal(t, "ThingName", members[0].Shape)
	assert.True(t, members[0].Required)
	assert.Equal(t, "<p>The name.</p>", members[0].Documentation)
	assert.Equal(t, "Tags", members[1].Name)
	assert.False(t, members[1].Required)
}

func TestReadFile_YAML(t *testing.T) {
	model, err := ReadFile("testdata/service.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"Zeta", "Alpha", "DescribeRequest"}, model.Names())

	zeta, ok := model.Shape("Zeta")
	require.True(t, ok)
	members := zeta.MemberList()
	require.Len(t, members, 2)
	// YAML mapping order, not alphabetical
	assert.Equal(t, "Second", members[0].Name)
	assert.Equal(t, "First", members[1].Name)

	op, ok := model.Operation("Describe")
	require.True(t, ok)
	assert.Equal(t, "DescribeRequest", op.Input.Shape)
	assert.Nil(t, op.Output)
}

func TestMembersPresence(t *testing.T) {
	model, err := ReadFile("testdata/service.json")
	require.NoError(t, err)

	empty, _ := model.Shape("Empty")
	assert.True(t, empty.HasMembers(), "an empty members table is still declared")
	assert.Empty(t, empty.MemberList())

	name, _ := model.Shape("ThingName")
	assert.False(t, name.HasMembers())
	assert.Nil(t, name.MemberList())
}

func TestOperationsSortedByName(t *testing.T) {
	model, err := Parse([]byte(`{
		"operations": {"B": {}, "A": {"input": {"shape": "X"}}},
		"shapes": {"X": {"type": "structure", "members": {}}}
	}`), FormatJSON)
	require.NoError(t, err)

	ops := model.Operations()
	require.Len(t, ops, 2)
	assert.Equal(t, "A", ops[0].Name)
	assert.Equal(t, "B", ops[1].Name)
}

func TestParse_MissingShapesTable(t *testing.T) {
	_, err := Parse([]byte(`{"operations": {}}`), FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.IsSchemaError(err))
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{"shapes": `), FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode JSON")
}

func TestDecode(t *testing.T) {
	model, err := Decode(strings.NewReader(`{"shapes": {"S": {"type": "string"}}}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"S"}, model.Names())
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("service.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("service.YML"))
	assert.Equal(t, FormatJSON, FormatForPath("service-2.json"))
	assert.Equal(t, FormatJSON, FormatForPath("service"))
}

func TestKind(t *testing.T) {
	assert.True(t, KindTimestamp.IsScalar())
	assert.False(t, KindList.IsScalar())
	assert.True(t, KindMap.IsKnown())
	assert.True(t, KindStructure.IsKnown())
	assert.False(t, Kind("union").IsKnown())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantKind  func(error) bool
		wantInMsg []string
	}{
		{
			name: "valid model",
			doc:  `{"shapes": {"A": {"type": "structure", "members": {"m": {"shape": "B"}}}, "B": {"type": "string"}}}`,
		},
		{
			name:      "unresolved member",
			doc:       `{"shapes": {"A": {"type": "structure", "members": {"m": {"shape": "Nope"}}}}}`,
			wantKind:  errors.IsSchemaError,
			wantInMsg: []string{`"A"`, `"m"`, `"Nope"`},
		},
		{
			name:      "unresolved list element",
			doc:       `{"shapes": {"L": {"type": "list", "member": {"shape": "Nope"}}}}`,
			wantKind:  errors.IsSchemaError,
			wantInMsg: []string{`"L"`, `"member"`},
		},
		{
			name:      "unresolved map value",
			doc:       `{"shapes": {"M": {"type": "map", "key": {"shape": "K"}, "value": {"shape": "Nope"}}, "K": {"type": "string"}}}`,
			wantKind:  errors.IsSchemaError,
			wantInMsg: []string{`"M"`, `"value"`},
		},
		{
			name:      "list without element",
			doc:       `{"shapes": {"L": {"type": "list"}}}`,
			wantKind:  errors.IsSchemaError,
			wantInMsg: []string{`"L"`},
		},
		{
			name:      "unknown kind",
			doc:       `{"shapes": {"U": {"type": "union"}}}`,
			wantKind:  errors.IsUnsupportedKindError,
			wantInMsg: []string{`"U"`, `"union"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := Parse([]byte(tt.doc), FormatJSON)
			require.NoError(t, err)

			err = model.Validate()
			if tt.wantKind == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, tt.wantKind(err), "unexpected error kind: %v", err)
			for _, s := range tt.wantInMsg {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}
