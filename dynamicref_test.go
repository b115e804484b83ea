package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A recursive tree schema whose node type is open for extension through
// $dynamicAnchor. The extended schema re-declares the anchor, so recursion
// through $dynamicRef lands on the extension, not the base.
func TestDynamicRefPolymorphicTree(t *testing.T) {
	compiler := NewCompiler()
	err := compiler.RegisterRemote("https://example.com/tree", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "https://example.com/tree",
		"$dynamicAnchor": "node",
		"type": "object",
		"properties": {
			"children": {
				"type": "array",
				"items": {"$dynamicRef": "#node"}
			}
		}
	}`))
	require.NoError(t, err)

	extended, err := compiler.Compile([]byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "https://example.com/strict-tree",
		"$dynamicAnchor": "node",
		"$ref": "https://example.com/tree",
		"properties": {
			"id": {"type": "string"}
		},
		"required": ["id"]
	}`))
	require.NoError(t, err)

	valid := map[string]any{
		"id": "a",
		"children": []any{
			map[string]any{"id": "b", "children": []any{}},
		},
	}
	assert.True(t, extended.Validate(valid).IsValid())

	// The nested node is missing "id": the dynamic anchor resolution must
	// apply the extended schema to children, not just the base tree schema.
	missingNestedID := map[string]any{
		"id": "a",
		"children": []any{
			map[string]any{"children": []any{}},
		},
	}
	assert.False(t, extended.Validate(missingNestedID).IsValid())

	// Validating against the base schema alone, id is not required.
	base, err := compiler.GetSchema("https://example.com/tree")
	require.NoError(t, err)
	assert.True(t, base.Validate(missingNestedID).IsValid())
}

// When the only resource publishing the anchor is the one holding the static
// target, the reference resolves to that statically resolved target.
func TestDynamicRefStaticFallback(t *testing.T) {
	schema := mustCompile(t, `{
		"$defs": {
			"leaf": {"$dynamicAnchor": "missing-elsewhere", "type": "number"}
		},
		"properties": {"v": {"$dynamicRef": "#missing-elsewhere"}}
	}`)

	assert.True(t, schema.Validate(map[string]any{"v": 3.0}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"v": "three"}).IsValid())
}

// $recursiveRef against $recursiveAnchor:true behaves like the 2019-09 draft:
// the outermost resource in the dynamic scope with the anchor wins.
func TestRecursiveRefAnchor(t *testing.T) {
	compiler := NewCompiler()
	err := compiler.RegisterRemote("https://example.com/rtree", []byte(`{
		"$schema": "https://json-schema.org/draft/2019-09/schema",
		"$id": "https://example.com/rtree",
		"$recursiveAnchor": true,
		"type": "object",
		"properties": {
			"children": {
				"type": "array",
				"items": {"$recursiveRef": "#"}
			}
		}
	}`))
	require.NoError(t, err)

	extended, err := compiler.Compile([]byte(`{
		"$schema": "https://json-schema.org/draft/2019-09/schema",
		"$id": "https://example.com/strict-rtree",
		"$recursiveAnchor": true,
		"$ref": "https://example.com/rtree",
		"properties": {"name": {"type": "string"}},
		"required": ["name"]
	}`))
	require.NoError(t, err)

	assert.True(t, extended.Validate(map[string]any{
		"name":     "root",
		"children": []any{map[string]any{"name": "child"}},
	}).IsValid())

	assert.False(t, extended.Validate(map[string]any{
		"name":     "root",
		"children": []any{map[string]any{}},
	}).IsValid())
}

func TestDynamicScopeStack(t *testing.T) {
	scope := NewDynamicScope()
	assert.Equal(t, 0, scope.Size())
	assert.Nil(t, scope.Peek())
	assert.Nil(t, scope.Pop())

	a := &ValidatorNode{schema: &Schema{}}
	b := &ValidatorNode{schema: &Schema{}}

	scope.Push(a)
	scope.Push(b)
	assert.Equal(t, 2, scope.Size())
	assert.Same(t, b, scope.Peek())
	assert.Same(t, b, scope.Pop())
	assert.Same(t, a, scope.Pop())
	assert.Equal(t, 0, scope.Size())
}
