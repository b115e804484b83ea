package jsonschema

import "testing"

var benchSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"age": {"type": "integer", "minimum": 0, "maximum": 150},
		"email": {"type": "string", "format": "email"},
		"tags": {"type": "array", "items": {"type": "string"}, "uniqueItems": true}
	},
	"required": ["name", "age"],
	"additionalProperties": false
}`

var benchInstance = map[string]any{
	"name":  "Alice",
	"age":   30.0,
	"email": "alice@example.com",
	"tags":  []any{"a", "b", "c"},
}

func BenchmarkValidate(b *testing.B) {
	schema, err := NewCompiler().Compile([]byte(benchSchema))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		schema.Validate(benchInstance)
	}
}

func BenchmarkValidateFast(b *testing.B) {
	schema, err := NewCompiler().Compile([]byte(benchSchema))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		schema.ValidateFast(benchInstance)
	}
}

func BenchmarkValidateParallel(b *testing.B) {
	schema, err := NewCompiler().Compile([]byte(benchSchema))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			schema.ValidateFast(benchInstance)
		}
	})
}

func BenchmarkCompile(b *testing.B) {
	data := []byte(benchSchema)
	for i := 0; i < b.N; i++ {
		if _, err := NewCompiler().Compile(data); err != nil {
			b.Fatal(err)
		}
	}
}
