package jsonschema

import (
	"strings"
)

// typeStep checks if the instance's type matches the type specified in the schema.
// According to the JSON Schema Draft 2020-12:
//   - The value of the "type" keyword must be either a string or an array of unique strings.
//   - Valid string values are the six primitive types ("null", "boolean", "object", "array", "number", "string")
//     and "integer", which matches any number with a zero fractional part.
//   - If "type" is a single string, the instance matches if its type corresponds to that string.
//   - If "type" is an array, the instance matches if its type corresponds to any string in that array.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-type
type typeStep struct {
	types SchemaType
}

func (st *typeStep) keyword() string { return "type" }

func (st *typeStep) execute(_ *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	instanceType := getDataType(instance)

	for _, schemaType := range st.types {
		if typeMatches(schemaType, instanceType) {
			return nil
		}
	}

	return NewEvaluationError("type", "type_mismatch", "Value is {received} but should be {expected}", map[string]any{
		"expected": strings.Join(st.types, ", "),
		"received": instanceType,
	})
}
