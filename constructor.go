package jsonschema

// Default compiler instance for initializing Schema
var defaultCompiler = NewCompiler()

// SetDefaultCompiler allows setting a custom compiler for the constructor API
func SetDefaultCompiler(c *Compiler) {
	defaultCompiler = c
}

// Property represents a Schema property definition
type Property struct {
	Name   string
	Schema *Schema
}

// Prop creates a property definition
func Prop(name string, schema *Schema) Property {
	return Property{Name: name, Schema: schema}
}

// Object creates an object Schema from property definitions and keywords.
func Object(items ...any) *Schema {
	schema := &Schema{Type: SchemaType{"object"}}

	var properties []Property
	var keywords []Keyword

	for _, item := range items {
		switch v := item.(type) {
		case Property:
			properties = append(properties, v)
		case Keyword:
			keywords = append(keywords, v)
		}
	}

	if len(properties) > 0 {
		props := make(SchemaMap)
		for _, prop := range properties {
			props[prop.Name] = prop.Schema
		}
		schema.Properties = &props
	}

	for _, keyword := range keywords {
		keyword(schema)
	}

	schema.initializeSchema(nil, nil)
	return schema
}

// Array creates an array Schema.
func Array(keywords ...Keyword) *Schema {
	return scalarSchema("array", keywords)
}

// String creates a string Schema.
func String(keywords ...Keyword) *Schema {
	return scalarSchema("string", keywords)
}

// Number creates a number Schema.
func Number(keywords ...Keyword) *Schema {
	return scalarSchema("number", keywords)
}

// Integer creates an integer Schema.
func Integer(keywords ...Keyword) *Schema {
	return scalarSchema("integer", keywords)
}

// Boolean creates a boolean Schema.
func Boolean(keywords ...Keyword) *Schema {
	return scalarSchema("boolean", keywords)
}

// Null creates a null Schema.
func Null(keywords ...Keyword) *Schema {
	return scalarSchema("null", keywords)
}

// Any creates a Schema without a type constraint.
func Any(keywords ...Keyword) *Schema {
	schema := &Schema{}
	applyKeywords(schema, keywords)
	return schema
}

func scalarSchema(typeName string, keywords []Keyword) *Schema {
	schema := &Schema{Type: SchemaType{typeName}}
	applyKeywords(schema, keywords)
	return schema
}

func applyKeywords(schema *Schema, keywords []Keyword) {
	for _, keyword := range keywords {
		keyword(schema)
	}
	schema.initializeSchema(nil, nil)
}

// Ref creates a Schema referencing another location.
func Ref(ref string, keywords ...Keyword) *Schema {
	schema := &Schema{Ref: ref}
	applyKeywords(schema, keywords)
	return schema
}

// Const creates a Schema matching exactly one value.
func Const(value any) *Schema {
	schema := &Schema{Const: &ConstValue{Value: value, IsSet: true}}
	schema.initializeSchema(nil, nil)
	return schema
}

// Enum creates a Schema matching one of the given values.
func Enum(values ...any) *Schema {
	schema := &Schema{Enum: values}
	schema.initializeSchema(nil, nil)
	return schema
}

// OneOf creates a Schema requiring exactly one subschema to match.
func OneOf(schemas ...*Schema) *Schema {
	schema := &Schema{OneOf: schemas}
	schema.initializeSchema(nil, nil)
	return schema
}

// AnyOf creates a Schema requiring at least one subschema to match.
func AnyOf(schemas ...*Schema) *Schema {
	schema := &Schema{AnyOf: schemas}
	schema.initializeSchema(nil, nil)
	return schema
}

// AllOf creates a Schema requiring every subschema to match.
func AllOf(schemas ...*Schema) *Schema {
	schema := &Schema{AllOf: schemas}
	schema.initializeSchema(nil, nil)
	return schema
}

// Not creates a Schema requiring the subschema not to match.
func Not(schema *Schema) *Schema {
	wrapper := &Schema{Not: schema}
	wrapper.initializeSchema(nil, nil)
	return wrapper
}
