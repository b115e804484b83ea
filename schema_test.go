package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaUnmarshalBoolean(t *testing.T) {
	schema, err := newSchema([]byte(`true`))
	require.NoError(t, err)
	require.NotNil(t, schema.Boolean)
	assert.True(t, *schema.Boolean)

	schema, err = newSchema([]byte(`false`))
	require.NoError(t, err)
	require.NotNil(t, schema.Boolean)
	assert.False(t, *schema.Boolean)
}

func TestSchemaUnmarshalItemsPolymorphism(t *testing.T) {
	// object form: list validation
	schema, err := newSchema([]byte(`{"items": {"type": "string"}}`))
	require.NoError(t, err)
	require.NotNil(t, schema.Items)
	assert.Nil(t, schema.PrefixItems)

	// array form: tuple validation maps onto PrefixItems
	schema, err = newSchema([]byte(`{
		"items": [{"type": "string"}, {"type": "number"}],
		"additionalItems": {"type": "boolean"}
	}`))
	require.NoError(t, err)
	assert.Len(t, schema.PrefixItems, 2)
	require.NotNil(t, schema.Items)
	assert.Equal(t, SchemaType{"boolean"}, schema.Items.Type)
}

func TestSchemaUnmarshalDefinitionsAlias(t *testing.T) {
	schema, err := newSchema([]byte(`{"definitions": {"a": {"type": "string"}}}`))
	require.NoError(t, err)
	require.Contains(t, schema.Defs, "a")
}

func TestSchemaUnmarshalDependencies(t *testing.T) {
	schema, err := newSchema([]byte(`{
		"dependencies": {
			"a": ["b"],
			"c": {"required": ["d"]}
		}
	}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, schema.DependentRequired["a"])
	require.Contains(t, schema.DependentSchemas, "c")
	assert.Equal(t, []string{"d"}, schema.DependentSchemas["c"].Required)
}

func TestSchemaUnmarshalConstNull(t *testing.T) {
	schema, err := newSchema([]byte(`{"const": null}`))
	require.NoError(t, err)
	require.NotNil(t, schema.Const)
	assert.True(t, schema.Const.IsSet)
	assert.Nil(t, schema.Const.Value)
}

func TestSchemaUnmarshalDraft4Exclusives(t *testing.T) {
	schema, err := newSchema([]byte(`{"minimum": 5, "exclusiveMinimum": true, "maximum": 10, "exclusiveMaximum": true}`))
	require.NoError(t, err)
	assert.True(t, schema.ExclusiveMinFlag)
	assert.True(t, schema.ExclusiveMaxFlag)
	assert.Nil(t, schema.ExclusiveMinimum)
	assert.Nil(t, schema.ExclusiveMaximum)

	schema, err = newSchema([]byte(`{"exclusiveMinimum": 5}`))
	require.NoError(t, err)
	assert.False(t, schema.ExclusiveMinFlag)
	require.NotNil(t, schema.ExclusiveMinimum)
}

func TestSchemaTypeUnmarshal(t *testing.T) {
	var st SchemaType
	require.NoError(t, st.UnmarshalJSON([]byte(`"string"`)))
	assert.Equal(t, SchemaType{"string"}, st)

	require.NoError(t, st.UnmarshalJSON([]byte(`["string", "null"]`)))
	assert.Equal(t, SchemaType{"string", "null"}, st)

	assert.Error(t, st.UnmarshalJSON([]byte(`5`)))
}

func TestSchemaMarshalRoundTrip(t *testing.T) {
	source := `{
		"type": "object",
		"properties": {"name": {"type": "string", "minLength": 1}},
		"required": ["name"]
	}`
	schema := mustCompile(t, source)

	data, err := schema.MarshalJSON()
	require.NoError(t, err)

	again, err := NewCompiler().Compile(data)
	require.NoError(t, err)

	instance := map[string]any{"name": "x"}
	assert.Equal(t, schema.Validate(instance).IsValid(), again.Validate(instance).IsValid())
	assert.Equal(t, schema.Validate(map[string]any{}).IsValid(), again.Validate(map[string]any{}).IsValid())
}

func TestSchemaAnchorRegistration(t *testing.T) {
	schema := mustCompile(t, `{
		"$defs": {
			"a": {"$anchor": "first", "type": "string"},
			"b": {"$dynamicAnchor": "second", "type": "number"}
		}
	}`)

	resolved, err := schema.resolveAnchor("first")
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, SchemaType{"string"}, resolved.Type)

	resolved, err = schema.resolveAnchor("second")
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, SchemaType{"number"}, resolved.Type)
}

func TestSchemaLegacyPlainFragmentID(t *testing.T) {
	schema := mustCompile(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"definitions": {
			"a": {"$id": "#frag", "type": "string"}
		},
		"$ref": "#frag"
	}`)

	assert.True(t, schema.Validate("text").IsValid())
	assert.False(t, schema.Validate(5.0).IsValid())
}
