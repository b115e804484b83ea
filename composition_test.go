package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllOfConjunction(t *testing.T) {
	schema := mustCompile(t, `{
		"allOf": [
			{"type": "object", "required": ["a"]},
			{"type": "object", "required": ["b"]}
		]
	}`)

	assert.True(t, schema.Validate(map[string]any{"a": 1.0, "b": 2.0}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"a": 1.0}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"b": 2.0}).IsValid())
}

func TestAnyOfDisjunction(t *testing.T) {
	schema := mustCompile(t, `{
		"anyOf": [
			{"type": "string"},
			{"type": "number", "minimum": 10}
		]
	}`)

	assert.True(t, schema.Validate("text").IsValid())
	assert.True(t, schema.Validate(15.0).IsValid())
	assert.False(t, schema.Validate(5.0).IsValid())
	assert.False(t, schema.Validate(true).IsValid())
}

// oneOf requires exactly one match: two matches are as invalid as none.
func TestOneOfExactlyOne(t *testing.T) {
	schema := mustCompile(t, `{
		"oneOf": [
			{"type": "string"},
			{"const": "x"}
		]
	}`)

	assert.False(t, schema.Validate("x").IsValid(), "matches both branches")
	assert.True(t, schema.Validate("y").IsValid(), "matches only the first")
	assert.False(t, schema.Validate(5.0).IsValid(), "matches neither")
}

func TestNotNegation(t *testing.T) {
	schema := mustCompile(t, `{"not": {"type": "string"}}`)

	assert.True(t, schema.Validate(5.0).IsValid())
	assert.False(t, schema.Validate("text").IsValid())
}

func TestDoubleNegationValidity(t *testing.T) {
	direct := mustCompile(t, `{"type": "string"}`)
	doubled := mustCompile(t, `{"not": {"not": {"type": "string"}}}`)

	for _, instance := range []any{"text", 5.0, nil, true} {
		assert.Equal(t,
			direct.Validate(instance).IsValid(),
			doubled.Validate(instance).IsValid(),
			"not:{not:S} must agree with S at validity level for %v", instance)
	}
}

func TestIfThenElse(t *testing.T) {
	schema := mustCompile(t, `{
		"if": {"properties": {"country": {"const": "US"}}, "required": ["country"]},
		"then": {"required": ["zip"]},
		"else": {"required": ["postal_code"]}
	}`)

	assert.True(t, schema.Validate(map[string]any{"country": "US", "zip": "12345"}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"country": "US"}).IsValid())
	assert.True(t, schema.Validate(map[string]any{"country": "NO", "postal_code": "0150"}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"country": "NO"}).IsValid())
}

func TestDependentSchemas(t *testing.T) {
	schema := mustCompile(t, `{
		"dependentSchemas": {
			"credit_card": {
				"properties": {"billing_address": {"type": "string"}},
				"required": ["billing_address"]
			}
		}
	}`)

	assert.True(t, schema.Validate(map[string]any{"name": "Ann"}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"credit_card": "4111"}).IsValid())
	assert.True(t, schema.Validate(map[string]any{"credit_card": "4111", "billing_address": "x"}).IsValid())
}

func TestPrefixItemsAndItems(t *testing.T) {
	schema := mustCompile(t, `{
		"prefixItems": [{"type": "string"}, {"type": "number"}],
		"items": {"type": "boolean"}
	}`)

	assert.True(t, schema.Validate([]any{"a", 1.0}).IsValid())
	assert.True(t, schema.Validate([]any{"a", 1.0, true, false}).IsValid())
	assert.False(t, schema.Validate([]any{"a", 1.0, "nope"}).IsValid())
	assert.False(t, schema.Validate([]any{1.0}).IsValid())
}

func TestRefToDefs(t *testing.T) {
	schema := mustCompile(t, `{
		"$defs": {"positive": {"type": "number", "exclusiveMinimum": 0}},
		"properties": {"amount": {"$ref": "#/$defs/positive"}}
	}`)

	assert.True(t, schema.Validate(map[string]any{"amount": 5.0}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"amount": -5.0}).IsValid())
}

func TestRefToAnchor(t *testing.T) {
	schema := mustCompile(t, `{
		"$defs": {"name": {"$anchor": "name", "type": "string"}},
		"properties": {"first": {"$ref": "#name"}}
	}`)

	assert.True(t, schema.Validate(map[string]any{"first": "Ann"}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"first": 5.0}).IsValid())
}

func TestRecursiveRefCycle(t *testing.T) {
	// Linked list: cycles through $ref but consumes input at each level.
	schema := mustCompile(t, `{
		"type": "object",
		"properties": {
			"value": {"type": "number"},
			"next": {"$ref": "#"}
		},
		"required": ["value"]
	}`)

	assert.True(t, schema.Validate(map[string]any{
		"value": 1.0,
		"next":  map[string]any{"value": 2.0},
	}).IsValid())
	assert.False(t, schema.Validate(map[string]any{
		"value": 1.0,
		"next":  map[string]any{},
	}).IsValid())
}

func TestInfiniteLoopDetection(t *testing.T) {
	// A schema that refers to itself without consuming input must surface a
	// distinct error instead of overflowing the stack.
	schema := mustCompile(t, `{"$ref": "#"}`)

	result := schema.Validate(map[string]any{"a": 1.0})
	require.False(t, result.IsValid())
	assert.True(t, hasErrorCode(result, "infinite_loop"))
}

func hasErrorCode(result *EvaluationResult, code string) bool {
	for _, err := range result.Errors {
		if err.Code == code {
			return true
		}
	}
	for _, detail := range result.Details {
		if hasErrorCode(detail, code) {
			return true
		}
	}
	return false
}
