package jsonschema

// constStep checks if the instance matches exactly the value specified by the
// 'const' keyword. The constant may be of any type, including null; equality
// is structural and property-order-insensitive for objects.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-const
type constStep struct {
	value any
}

func (st *constStep) keyword() string { return "const" }

func (st *constStep) execute(_ *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	if st.value == nil {
		if instance != nil {
			return NewEvaluationError("const", "const_mismatch_null", "Value does not match constant null value")
		}
		return nil
	}

	if !deepEqual(instance, st.value) {
		return NewEvaluationError("const", "const_mismatch", "Value does not match the constant value")
	}
	return nil
}
