package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, schema string) *Schema {
	t.Helper()
	compiled, err := NewCompiler().Compile([]byte(schema))
	require.NoError(t, err)
	return compiled
}

func TestValidateTypeKeyword(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		instance any
		valid    bool
	}{
		{"string ok", `{"type": "string"}`, "hello", true},
		{"string mismatch", `{"type": "string"}`, 5.0, false},
		{"integer accepts whole float", `{"type": "integer"}`, 5.0, true},
		{"integer rejects fraction", `{"type": "integer"}`, 5.5, false},
		{"number accepts integer", `{"type": "number"}`, 5, true},
		{"multi-type", `{"type": ["string", "null"]}`, nil, true},
		{"multi-type mismatch", `{"type": ["string", "null"]}`, true, false},
		{"object", `{"type": "object"}`, map[string]any{}, true},
		{"array", `{"type": "array"}`, []any{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := mustCompile(t, tt.schema)
			assert.Equal(t, tt.valid, schema.Validate(tt.instance).IsValid())
		})
	}
}

func TestValidateConstAndEnum(t *testing.T) {
	constSchema := mustCompile(t, `{"const": {"a": 1, "b": [1, 2]}}`)
	assert.True(t, constSchema.Validate(map[string]any{"b": []any{1.0, 2.0}, "a": 1.0}).IsValid())
	assert.False(t, constSchema.Validate(map[string]any{"a": 1.0}).IsValid())

	nullConst := mustCompile(t, `{"const": null}`)
	assert.True(t, nullConst.Validate(nil).IsValid())
	assert.False(t, nullConst.Validate(0.0).IsValid())

	enumSchema := mustCompile(t, `{"enum": ["red", "green", 3]}`)
	assert.True(t, enumSchema.Validate("green").IsValid())
	assert.True(t, enumSchema.Validate(3.0).IsValid())
	assert.False(t, enumSchema.Validate("blue").IsValid())
}

func TestValidateStringConstraints(t *testing.T) {
	schema := mustCompile(t, `{"minLength": 3, "maxLength": 5, "pattern": "^[a-z日本語]+$"}`)

	assert.True(t, schema.Validate("abc").IsValid())
	assert.False(t, schema.Validate("ab").IsValid())
	assert.False(t, schema.Validate("abcdef").IsValid())
	assert.False(t, schema.Validate("ABC").IsValid())

	// length counts code points, not bytes
	assert.True(t, schema.Validate("日本語").IsValid())
}

func TestValidateNumericConstraints(t *testing.T) {
	schema := mustCompile(t, `{
		"minimum": 0,
		"exclusiveMaximum": 100,
		"multipleOf": 0.5
	}`)

	assert.True(t, schema.Validate(99.5).IsValid())
	assert.False(t, schema.Validate(100.0).IsValid())
	assert.False(t, schema.Validate(-0.5).IsValid())
	assert.False(t, schema.Validate(0.3).IsValid())
	assert.True(t, schema.Validate(0.0).IsValid())
}

func TestValidateMultipleOfTinyStep(t *testing.T) {
	schema := mustCompile(t, `{"multipleOf": 0.0001}`)
	assert.True(t, schema.Validate(0.0075).IsValid())
	assert.False(t, schema.Validate(0.00751).IsValid())
}

func TestValidateArrayConstraints(t *testing.T) {
	schema := mustCompile(t, `{"minItems": 1, "maxItems": 3, "uniqueItems": true}`)

	assert.True(t, schema.Validate([]any{1.0, 2.0}).IsValid())
	assert.False(t, schema.Validate([]any{}).IsValid())
	assert.False(t, schema.Validate([]any{1.0, 2.0, 3.0, 4.0}).IsValid())
	assert.False(t, schema.Validate([]any{1.0, 1.0}).IsValid())
}

func TestValidateUniqueItemsDeepEquality(t *testing.T) {
	schema := mustCompile(t, `{"uniqueItems": true}`)

	// property order does not matter
	assert.False(t, schema.Validate([]any{
		map[string]any{"a": 1.0, "b": 2.0},
		map[string]any{"b": 2.0, "a": 1.0},
	}).IsValid())

	// 1 and 1.0 are the same number
	assert.False(t, schema.Validate([]any{1, 1.0}).IsValid())

	assert.True(t, schema.Validate([]any{
		map[string]any{"a": 1.0},
		map[string]any{"a": 2.0},
	}).IsValid())
}

func TestValidateObjectConstraints(t *testing.T) {
	schema := mustCompile(t, `{
		"minProperties": 1,
		"maxProperties": 3,
		"required": ["id"],
		"dependentRequired": {"credit_card": ["billing_address"]}
	}`)

	assert.True(t, schema.Validate(map[string]any{"id": 1.0}).IsValid())
	assert.False(t, schema.Validate(map[string]any{}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"a": 1.0, "b": 2.0, "c": 3.0, "d": 4.0}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"id": 1.0, "credit_card": "4111"}).IsValid())
	assert.True(t, schema.Validate(map[string]any{"id": 1.0, "credit_card": "4111", "billing_address": "x"}).IsValid())
}

func TestValidatePropertiesAndAdditional(t *testing.T) {
	schema := mustCompile(t, `{
		"properties": {"name": {"type": "string"}},
		"patternProperties": {"^x-": {"type": "number"}},
		"additionalProperties": false
	}`)

	assert.True(t, schema.Validate(map[string]any{"name": "a", "x-rate": 1.0}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"name": 1.0}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"x-rate": "fast"}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"other": 1.0}).IsValid())
}

func TestValidatePropertyNames(t *testing.T) {
	schema := mustCompile(t, `{"propertyNames": {"pattern": "^[a-z]+$"}}`)

	assert.True(t, schema.Validate(map[string]any{"abc": 1.0}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"ABC": 1.0}).IsValid())
}

func TestValidateContains(t *testing.T) {
	schema := mustCompile(t, `{
		"contains": {"type": "number"},
		"minContains": 2,
		"maxContains": 3
	}`)

	assert.False(t, schema.Validate([]any{1.0, "a"}).IsValid())
	assert.True(t, schema.Validate([]any{1.0, 2.0, "a"}).IsValid())
	assert.False(t, schema.Validate([]any{1.0, 2.0, 3.0, 4.0}).IsValid())
}

func TestValidateMinContainsZero(t *testing.T) {
	schema := mustCompile(t, `{"contains": {"type": "number"}, "minContains": 0, "maxContains": 1}`)

	// minContains 0 cannot fail the contains assertion
	assert.True(t, schema.Validate([]any{"a", "b"}).IsValid())
	// maxContains still bounds matches from above
	assert.False(t, schema.Validate([]any{1.0, 2.0}).IsValid())
}

func TestValidateNestedErrorPaths(t *testing.T) {
	schema := mustCompile(t, `{
		"type": "object",
		"properties": {
			"user": {
				"type": "object",
				"properties": {"age": {"type": "integer", "minimum": 0}}
			}
		}
	}`)

	result := schema.Validate(map[string]any{
		"user": map[string]any{"age": -3.0},
	})
	require.False(t, result.IsValid())

	errs := result.GetDetailedErrors()
	assert.NotEmpty(t, errs)
}

func TestValidateFastMode(t *testing.T) {
	schema := mustCompile(t, `{
		"type": "object",
		"properties": {"a": {"type": "string"}, "b": {"type": "string"}},
		"required": ["a", "b"]
	}`)

	assert.True(t, schema.ValidateFast(map[string]any{"a": "x", "b": "y"}))
	assert.False(t, schema.ValidateFast(map[string]any{"a": 1.0}))
}

func TestValidateDeterministic(t *testing.T) {
	schema := mustCompile(t, `{
		"properties": {"a": {"type": "string"}},
		"anyOf": [{"required": ["a"]}, {"required": ["b"]}]
	}`)

	instance := map[string]any{"c": 1.0}
	first := schema.Validate(instance)
	for i := 0; i < 10; i++ {
		again := schema.Validate(instance)
		assert.Equal(t, first.IsValid(), again.IsValid())
	}
}

func TestValidateResultFormats(t *testing.T) {
	schema := mustCompile(t, `{"type": "string"}`)

	result := schema.Validate(42)
	require.False(t, result.IsValid())

	flag := result.ToFlag()
	assert.False(t, flag.Valid)

	list := result.ToList()
	assert.False(t, list.Valid)
	assert.NotEmpty(t, list.Errors)

	flat := result.ToList(false)
	assert.False(t, flat.Valid)
}

func TestValidateLocalizedOutput(t *testing.T) {
	bundle, err := GetI18n()
	require.NoError(t, err)
	localizer := bundle.NewLocalizer("zh-Hans")

	schema := mustCompile(t, `{"type": "string"}`)
	result := schema.Validate(42)
	require.False(t, result.IsValid())

	list := result.ToLocalizeList(localizer)
	assert.NotEmpty(t, list.Errors)
}

func TestConstructorAPI(t *testing.T) {
	schema := Object(
		Prop("name", String(MinLen(1))),
		Prop("age", Integer(Min(0))),
		Required("name"),
	)

	assert.True(t, schema.Validate(map[string]any{"name": "Ann", "age": 30.0}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"age": 30.0}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"name": "Ann", "age": -1.0}).IsValid())
}
