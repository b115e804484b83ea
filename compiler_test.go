package jsonschema

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileBasicSchema(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"type": "object",
		"properties": {"name": {"type": "string"}},
		"required": ["name"]
	}`))
	require.NoError(t, err)
	require.NotNil(t, schema)

	assert.True(t, schema.Validate(map[string]any{"name": "John"}).IsValid())
	assert.False(t, schema.Validate(map[string]any{}).IsValid())
}

func TestCompileBooleanSchema(t *testing.T) {
	compiler := NewCompiler()

	trueSchema, err := compiler.Compile([]byte(`true`))
	require.NoError(t, err)
	assert.True(t, trueSchema.Validate(map[string]any{"anything": 1}).IsValid())

	falseSchema, err := compiler.Compile([]byte(`false`))
	require.NoError(t, err)
	assert.False(t, falseSchema.Validate("anything").IsValid())
}

func TestCompileInvalidJSON(t *testing.T) {
	compiler := NewCompiler()
	_, err := compiler.Compile([]byte(`{invalid`))
	require.Error(t, err)
}

func TestCompileInvalidTypeName(t *testing.T) {
	compiler := NewCompiler()
	_, err := compiler.Compile([]byte(`{"type": "unknowntype"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaInvalid)
}

func TestCompileInvalidRegex(t *testing.T) {
	compiler := NewCompiler()
	_, err := compiler.Compile([]byte(`{"pattern": "([a-z"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRegexValidation)

	_, err = compiler.Compile([]byte(`{"patternProperties": {"([": {"type": "string"}}}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRegexValidation)
}

func TestCompileInvalidMultipleOf(t *testing.T) {
	compiler := NewCompiler()
	_, err := compiler.Compile([]byte(`{"multipleOf": 0}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaInvalid)
}

func TestCompileNegativeBounds(t *testing.T) {
	compiler := NewCompiler()
	_, err := compiler.Compile([]byte(`{"minLength": -1}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaInvalid)
}

func TestCompileUnresolvedRefFails(t *testing.T) {
	compiler := NewCompiler()
	_, err := compiler.Compile([]byte(`{"$ref": "test://example.com/missing.json"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolvedRef)
}

func TestCompileUnresolvedRefAllowed(t *testing.T) {
	compiler := NewCompiler().SetAllowUnresolvedRefs(true)
	schema, err := compiler.Compile([]byte(`{"$ref": "test://example.com/missing.json"}`))
	require.NoError(t, err)

	result := schema.Validate("anything")
	assert.False(t, result.IsValid())
}

func TestRegisterRemote(t *testing.T) {
	compiler := NewCompiler()
	err := compiler.RegisterRemote("https://example.com/name.json", []byte(`{
		"$id": "https://example.com/name.json",
		"type": "string",
		"minLength": 2
	}`))
	require.NoError(t, err)

	schema, err := compiler.Compile([]byte(`{"$ref": "https://example.com/name.json"}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate("ab").IsValid())
	assert.False(t, schema.Validate("a").IsValid())
	assert.False(t, schema.Validate(42).IsValid())
}

func TestCompileBatchInterdependent(t *testing.T) {
	compiler := NewCompiler()
	schemas, err := compiler.CompileBatch(map[string][]byte{
		"https://example.com/person.json": []byte(`{
			"$id": "https://example.com/person.json",
			"type": "object",
			"properties": {
				"name": {"type": "string"},
				"address": {"$ref": "https://example.com/address.json"}
			}
		}`),
		"https://example.com/address.json": []byte(`{
			"$id": "https://example.com/address.json",
			"type": "object",
			"properties": {"city": {"type": "string"}},
			"required": ["city"]
		}`),
	})
	require.NoError(t, err)
	require.Len(t, schemas, 2)

	person := schemas["https://example.com/person.json"]
	assert.True(t, person.Validate(map[string]any{
		"name":    "Ann",
		"address": map[string]any{"city": "Oslo"},
	}).IsValid())
	assert.False(t, person.Validate(map[string]any{
		"name":    "Ann",
		"address": map[string]any{},
	}).IsValid())
}

func TestCompileAsyncResolvesClosure(t *testing.T) {
	fetched := make(map[string]int)
	loader := func(_ context.Context, uri string) ([]byte, error) {
		fetched[uri]++
		switch uri {
		case "test://example.com/a.json":
			return []byte(`{"$id": "test://example.com/a.json", "$ref": "test://example.com/b.json"}`), nil
		case "test://example.com/b.json":
			return []byte(`{"$id": "test://example.com/b.json", "type": "integer"}`), nil
		}
		return nil, fmt.Errorf("unknown uri %q", uri)
	}

	compiler := NewCompiler().SetRemoteLoader(loader)
	schema, err := compiler.CompileAsync(context.Background(), []byte(`{
		"$ref": "test://example.com/a.json"
	}`))
	require.NoError(t, err)

	assert.Equal(t, 1, fetched["test://example.com/a.json"])
	assert.Equal(t, 1, fetched["test://example.com/b.json"])

	assert.True(t, schema.Validate(7).IsValid())
	assert.False(t, schema.Validate("seven").IsValid())
}

func TestCompileAsyncHonorsCancellation(t *testing.T) {
	loader := func(_ context.Context, _ string) ([]byte, error) {
		return []byte(`true`), nil
	}

	compiler := NewCompiler().SetRemoteLoader(loader)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := compiler.CompileAsync(ctx, []byte(`{"$ref": "test://example.com/a.json"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompileCachesByURI(t *testing.T) {
	compiler := NewCompiler()
	first, err := compiler.Compile([]byte(`{"$id": "https://example.com/cached.json", "type": "string"}`))
	require.NoError(t, err)

	second, err := compiler.Compile([]byte(`{"$id": "https://example.com/cached.json", "type": "number"}`))
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestMustCompilePanicsOnError(t *testing.T) {
	compiler := NewCompiler()
	assert.Panics(t, func() {
		compiler.MustCompile([]byte(`{"type": "unknowntype"}`))
	})
}

func TestCompilerErrorValues(t *testing.T) {
	var schemaErr *SchemaInvalidError
	compiler := NewCompiler()
	_, err := compiler.Compile([]byte(`{"properties": {"a": {"type": "bogus"}}}`))
	require.Error(t, err)
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "type", schemaErr.Keyword)
	assert.Contains(t, schemaErr.Location, "/properties/a")
}
