package jsonschema

// enumStep checks if the instance matches one of the enumerated values.
// According to the JSON Schema Draft 2020-12:
//   - The value of the "enum" keyword must be an array with at least one element.
//   - An instance validates successfully if its value is equal to one of the elements.
//   - Elements might be of any type, including null.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-enum
type enumStep struct {
	values []any
}

func (st *enumStep) keyword() string { return "enum" }

func (st *enumStep) execute(_ *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	for _, enumValue := range st.values {
		if deepEqual(instance, enumValue) {
			return nil
		}
	}
	return NewEvaluationError("enum", "value_not_in_enum", "Value should match one of the values specified by the enum")
}
