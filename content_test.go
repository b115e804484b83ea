package jsonschema

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Content keywords assert in draft 7 and annotate from 2019-09 on.
func TestContentAssertionByDraft(t *testing.T) {
	legacy := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"contentEncoding": "base64"
	}`
	schema, err := NewCompiler().Compile([]byte(legacy))
	require.NoError(t, err)

	assert.True(t, schema.Validate("aGVsbG8=").IsValid())
	assert.False(t, schema.Validate("!!!not-base64!!!").IsValid())

	modern := `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"contentEncoding": "base64"
	}`
	annotating, err := NewCompiler().Compile([]byte(modern))
	require.NoError(t, err)
	assert.True(t, annotating.Validate("!!!not-base64!!!").IsValid())
}

func TestContentMediaTypeAndSchema(t *testing.T) {
	compiler := NewCompiler().SetContentAssertion(ContentOn)
	schema, err := compiler.Compile([]byte(`{
		"contentMediaType": "application/json",
		"contentSchema": {
			"type": "object",
			"required": ["id"]
		}
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(`{"id": 1}`).IsValid())
	assert.False(t, schema.Validate(`{"name": "x"}`).IsValid())
	assert.False(t, schema.Validate(`{not json`).IsValid())

	// content keywords apply only to strings; contentSchema is skipped too
	assert.True(t, schema.Validate(42).IsValid())
	assert.True(t, schema.Validate(map[string]any{"x": 1.0}).IsValid())
}

func TestContentEncodingChain(t *testing.T) {
	compiler := NewCompiler().SetContentAssertion(ContentOn)
	schema, err := compiler.Compile([]byte(`{
		"contentEncoding": "base64",
		"contentMediaType": "application/json",
		"contentSchema": {"type": "array"}
	}`))
	require.NoError(t, err)

	// base64("[1,2,3]")
	assert.True(t, schema.Validate("WzEsMiwzXQ==").IsValid())
	// base64("{}") decodes and parses but is not an array
	assert.False(t, schema.Validate("e30=").IsValid())
}

func TestContentYAMLMediaType(t *testing.T) {
	compiler := NewCompiler().SetContentAssertion(ContentOn)
	schema, err := compiler.Compile([]byte(`{
		"contentMediaType": "application/yaml",
		"contentSchema": {"type": "object"}
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate("key: value").IsValid())
}

func TestContentUnknownEncoding(t *testing.T) {
	compiler := NewCompiler().SetContentAssertion(ContentOn)
	schema, err := compiler.Compile([]byte(`{"contentEncoding": "rot13"}`))
	require.NoError(t, err)

	assert.False(t, schema.Validate("anything").IsValid())
}

func TestCustomDecoder(t *testing.T) {
	compiler := NewCompiler().SetContentAssertion(ContentOn)
	compiler.RegisterDecoder("identity", func(s string) ([]byte, error) {
		return []byte(s), nil
	})

	schema, err := compiler.Compile([]byte(`{"contentEncoding": "identity"}`))
	require.NoError(t, err)
	assert.True(t, schema.Validate("raw").IsValid())
}

// The JSON codec is swappable; sonic drives the application/json media type
// handler here.
func TestSwappableJSONCodec(t *testing.T) {
	compiler := NewCompiler().
		WithEncoderJSON(sonic.Marshal).
		WithDecoderJSON(sonic.Unmarshal).
		SetContentAssertion(ContentOn)

	schema, err := compiler.Compile([]byte(`{
		"contentMediaType": "application/json",
		"contentSchema": {"type": "object"}
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(`{"a": 1}`).IsValid())
	assert.False(t, schema.Validate(`[1, 2]`).IsValid())
}
