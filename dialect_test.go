package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectDetection(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		draft  Draft
	}{
		{"draft-4", `{"$schema": "http://json-schema.org/draft-04/schema#"}`, Draft4},
		{"draft-6", `{"$schema": "http://json-schema.org/draft-06/schema#"}`, Draft6},
		{"draft-7", `{"$schema": "http://json-schema.org/draft-07/schema#"}`, Draft7},
		{"2019-09", `{"$schema": "https://json-schema.org/draft/2019-09/schema"}`, Draft201909},
		{"2020-12", `{"$schema": "https://json-schema.org/draft/2020-12/schema"}`, Draft202012},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compiler := NewCompiler()
			schema, err := compiler.Compile([]byte(tt.schema))
			require.NoError(t, err)
			require.NotNil(t, schema.dialect)
			assert.Equal(t, tt.draft, schema.dialect.Draft())
		})
	}
}

func TestUnknownDialectFails(t *testing.T) {
	compiler := NewCompiler()
	_, err := compiler.Compile([]byte(`{"$schema": "https://example.com/unknown-meta"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}

func TestDefaultDialectWhenSchemaAbsent(t *testing.T) {
	compiler := NewCompiler().SetDefaultDialect("draft-7")
	schema, err := compiler.Compile([]byte(`{"type": "string", "format": "ipv4"}`))
	require.NoError(t, err)

	// draft-7 asserts format by default
	assert.False(t, schema.Validate("999.1.1.1").IsValid())
}

// Draft-7 $ref replaces its siblings; from 2019-09 siblings apply.
func TestRefSiblingBehaviorAcrossDrafts(t *testing.T) {
	legacy := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"$ref": "#/definitions/a",
		"maxItems": 2,
		"definitions": {"a": {"type": "array"}}
	}`
	modern := `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$ref": "#/$defs/a",
		"maxItems": 2,
		"$defs": {"a": {"type": "array"}}
	}`

	instance := []any{1.0, 2.0, 3.0}

	legacySchema, err := NewCompiler().Compile([]byte(legacy))
	require.NoError(t, err)
	assert.True(t, legacySchema.Validate(instance).IsValid(), "draft-7 ignores $ref siblings")

	modernSchema, err := NewCompiler().Compile([]byte(modern))
	require.NoError(t, err)
	assert.False(t, modernSchema.Validate(instance).IsValid(), "2020-12 applies $ref siblings")
}

func TestLegacyRefOverride(t *testing.T) {
	schema := `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$ref": "#/$defs/a",
		"maxItems": 2,
		"$defs": {"a": {"type": "array"}}
	}`

	compiler := NewCompiler().SetLegacyRef(true)
	compiled, err := compiler.Compile([]byte(schema))
	require.NoError(t, err)

	assert.True(t, compiled.Validate([]any{1.0, 2.0, 3.0}).IsValid())
}

func TestFormatAssertionModes(t *testing.T) {
	schema := `{"$schema": "https://json-schema.org/draft/2020-12/schema", "format": "ipv4"}`

	// 2020-12 default: format annotates only
	annotating, err := NewCompiler().Compile([]byte(schema))
	require.NoError(t, err)
	assert.True(t, annotating.Validate("not-an-ip").IsValid())

	// forced assertion
	asserting, err := NewCompiler().SetFormatAssertion(FormatAlways).Compile([]byte(schema))
	require.NoError(t, err)
	assert.False(t, asserting.Validate("not-an-ip").IsValid())
	assert.True(t, asserting.Validate("127.0.0.1").IsValid())

	// draft-7 asserts by default, FormatNever turns it off
	legacy := `{"$schema": "http://json-schema.org/draft-07/schema#", "format": "ipv4"}`
	silenced, err := NewCompiler().SetFormatAssertion(FormatNever).Compile([]byte(legacy))
	require.NoError(t, err)
	assert.True(t, silenced.Validate("not-an-ip").IsValid())
}

func TestDraft4BooleanExclusive(t *testing.T) {
	schema := `{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"minimum": 5,
		"exclusiveMinimum": true
	}`
	compiled, err := NewCompiler().Compile([]byte(schema))
	require.NoError(t, err)

	assert.False(t, compiled.Validate(5.0).IsValid())
	assert.True(t, compiled.Validate(6.0).IsValid())
}

func TestDraft4LegacyID(t *testing.T) {
	schema := `{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"id": "https://example.com/draft4.json",
		"type": "integer"
	}`
	compiled, err := NewCompiler().Compile([]byte(schema))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/draft4.json", compiled.GetSchemaURI())
}

func TestLegacyDependencies(t *testing.T) {
	schema := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"dependencies": {
			"credit_card": ["billing_address"],
			"name": {"properties": {"first": {"type": "string"}}, "required": ["first"]}
		}
	}`
	compiled, err := NewCompiler().Compile([]byte(schema))
	require.NoError(t, err)

	// string-array form
	assert.False(t, compiled.Validate(map[string]any{"credit_card": "4111"}).IsValid())
	assert.True(t, compiled.Validate(map[string]any{"credit_card": "4111", "billing_address": "x"}).IsValid())

	// schema form applies to the whole object when the trigger is present
	assert.False(t, compiled.Validate(map[string]any{"name": "Ann"}).IsValid())
	assert.True(t, compiled.Validate(map[string]any{"name": "Ann", "first": "Ann"}).IsValid())
}

func TestLegacyTupleItems(t *testing.T) {
	schema := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"items": [{"type": "string"}, {"type": "number"}],
		"additionalItems": {"type": "boolean"}
	}`
	compiled, err := NewCompiler().Compile([]byte(schema))
	require.NoError(t, err)

	assert.True(t, compiled.Validate([]any{"a", 1.0, true}).IsValid())
	assert.False(t, compiled.Validate([]any{"a", 1.0, "nope"}).IsValid())
	assert.False(t, compiled.Validate([]any{1.0}).IsValid())
}

func TestVocabularyGatingFromCustomMeta(t *testing.T) {
	compiler := NewCompiler()
	err := compiler.RegisterRemote("https://example.com/meta/core-only", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "https://example.com/meta/core-only",
		"$vocabulary": {
			"https://json-schema.org/draft/2020-12/vocab/core": true,
			"https://json-schema.org/draft/2020-12/vocab/applicator": true,
			"https://json-schema.org/draft/2020-12/vocab/validation": false
		}
	}`))
	require.NoError(t, err)

	schema, err := compiler.Compile([]byte(`{
		"$schema": "https://example.com/meta/core-only",
		"type": "string"
	}`))
	require.NoError(t, err)

	// validation vocabulary disabled: type does not assert
	assert.True(t, schema.Validate(42).IsValid())
}
