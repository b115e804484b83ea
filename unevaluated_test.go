package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Properties annotated by matching anyOf branches count as evaluated; an
// instance property covered by no branch fails unevaluatedProperties:false.
func TestUnevaluatedPropertiesWithAnyOf(t *testing.T) {
	schema := mustCompile(t, `{
		"properties": {"a": true},
		"anyOf": [
			{"properties": {"b": true}},
			{"properties": {"c": true}}
		],
		"unevaluatedProperties": false
	}`)

	assert.True(t, schema.Validate(map[string]any{"a": 1.0, "b": 2.0}).IsValid())
	assert.True(t, schema.Validate(map[string]any{"a": 1.0, "b": 2.0, "c": 3.0}).IsValid(),
		"both anyOf branches annotate")
	assert.False(t, schema.Validate(map[string]any{"a": 1.0, "d": 4.0}).IsValid())
}

func TestUnevaluatedPropertiesWithRef(t *testing.T) {
	schema := mustCompile(t, `{
		"$defs": {"base": {"properties": {"a": {"type": "number"}}}},
		"$ref": "#/$defs/base",
		"properties": {"b": {"type": "number"}},
		"unevaluatedProperties": false
	}`)

	assert.True(t, schema.Validate(map[string]any{"a": 1.0, "b": 2.0}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"a": 1.0, "c": 3.0}).IsValid())
}

func TestUnevaluatedPropertiesWithConditional(t *testing.T) {
	schema := mustCompile(t, `{
		"if": {"required": ["kind"]},
		"then": {"properties": {"kind": true, "payload": true}},
		"else": {"properties": {"fallback": true}},
		"unevaluatedProperties": false
	}`)

	assert.True(t, schema.Validate(map[string]any{"kind": "a", "payload": 1.0}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"kind": "a", "extra": 1.0}).IsValid())
	assert.True(t, schema.Validate(map[string]any{"fallback": 1.0}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"payload": 1.0}).IsValid(),
		"payload is only evaluated on the then-branch")
}

// Marks computed inside a not are discarded.
func TestUnevaluatedPropertiesNotDiscardsMarks(t *testing.T) {
	schema := mustCompile(t, `{
		"not": {"properties": {"a": {"type": "string"}}, "required": ["a"]},
		"unevaluatedProperties": {"type": "number"}
	}`)

	// "a" absent: not-branch fails, object passes; b must satisfy the
	// unevaluatedProperties schema because nothing evaluated it.
	assert.True(t, schema.Validate(map[string]any{"b": 1.0}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"b": "text"}).IsValid())
}

func TestUnevaluatedPropertiesWithDependentSchemas(t *testing.T) {
	schema := mustCompile(t, `{
		"properties": {"trigger": true},
		"dependentSchemas": {
			"trigger": {"properties": {"dependent": {"type": "number"}}}
		},
		"unevaluatedProperties": false
	}`)

	// dependent is evaluated by the dependent schema's annotations
	assert.True(t, schema.Validate(map[string]any{"trigger": 1.0, "dependent": 2.0}).IsValid())
	// without the trigger, dependent is unevaluated
	assert.False(t, schema.Validate(map[string]any{"dependent": 2.0}).IsValid())
}

func TestUnevaluatedItemsWithPrefixItems(t *testing.T) {
	schema := mustCompile(t, `{
		"prefixItems": [{"type": "string"}],
		"unevaluatedItems": false
	}`)

	assert.True(t, schema.Validate([]any{"a"}).IsValid())
	assert.False(t, schema.Validate([]any{"a", "b"}).IsValid())
	assert.True(t, schema.Validate([]any{}).IsValid())
}

func TestUnevaluatedItemsWithContains(t *testing.T) {
	schema := mustCompile(t, `{
		"contains": {"type": "number"},
		"unevaluatedItems": {"type": "string"}
	}`)

	// numbers are evaluated by contains, the rest must be strings
	assert.True(t, schema.Validate([]any{1.0, "x"}).IsValid())
	assert.False(t, schema.Validate([]any{1.0, true}).IsValid())
}

func TestUnevaluatedItemsWithAllOf(t *testing.T) {
	schema := mustCompile(t, `{
		"allOf": [{"prefixItems": [true, true]}],
		"unevaluatedItems": false
	}`)

	assert.True(t, schema.Validate([]any{1.0, 2.0}).IsValid())
	assert.False(t, schema.Validate([]any{1.0, 2.0, 3.0}).IsValid())
}

func TestUnevaluatedPropertiesSchemaForm(t *testing.T) {
	schema := mustCompile(t, `{
		"properties": {"known": true},
		"unevaluatedProperties": {"type": "string"}
	}`)

	assert.True(t, schema.Validate(map[string]any{"known": 1.0, "extra": "ok"}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"known": 1.0, "extra": 5.0}).IsValid())
}

func TestTrackerOperations(t *testing.T) {
	tracker := newTracker()

	assert.True(t, tracker.isUnevaluatedProp("a"))
	tracker.markProp("a")
	assert.False(t, tracker.isUnevaluatedProp("a"))
	assert.True(t, tracker.isUnevaluatedProp("b"))

	tracker.markAllProps()
	assert.False(t, tracker.isUnevaluatedProp("b"))

	assert.True(t, tracker.isUnevaluatedItem(0))
	tracker.markItemsUpTo(2)
	assert.False(t, tracker.isUnevaluatedItem(0))
	assert.False(t, tracker.isUnevaluatedItem(1))
	assert.True(t, tracker.isUnevaluatedItem(2))

	tracker.markAnyItem(5)
	assert.False(t, tracker.isUnevaluatedItem(5))
	assert.True(t, tracker.isUnevaluatedItem(3))

	tracker.markAllItems()
	assert.False(t, tracker.isUnevaluatedItem(3))
}

func TestTrackerMergeBranch(t *testing.T) {
	parent := newTracker()
	child := newTracker()

	child.markProp("x")
	child.markItemsUpTo(3)
	child.markAnyItem(7)

	parent.mergeBranch(child)
	assert.False(t, parent.isUnevaluatedProp("x"))
	assert.False(t, parent.isUnevaluatedItem(2))
	assert.False(t, parent.isUnevaluatedItem(7))
	assert.True(t, parent.isUnevaluatedItem(3))

	// nil child merges are no-ops
	parent.mergeBranch(nil)
	assert.False(t, parent.isUnevaluatedProp("x"))
}

// Schemas without restrictive unevaluated keywords compile with tracking
// disabled entirely.
func TestTrackingPrePass(t *testing.T) {
	plain := mustCompile(t, `{"properties": {"a": {"type": "string"}}}`)
	assert.False(t, plain.node.tracksProps)
	assert.False(t, plain.node.tracksItems)

	tracked := mustCompile(t, `{"properties": {"a": true}, "unevaluatedProperties": false}`)
	assert.True(t, tracked.node.tracksProps)

	// unevaluatedProperties:true accepts everything and needs no tracking
	trivial := mustCompile(t, `{"properties": {"a": true}, "unevaluatedProperties": true}`)
	assert.False(t, trivial.node.tracksProps)

	items := mustCompile(t, `{"prefixItems": [true], "unevaluatedItems": false}`)
	assert.True(t, items.node.tracksItems)
}
