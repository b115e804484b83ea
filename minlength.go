package jsonschema

import "unicode/utf8"

// minLengthStep checks that a string instance is at least the given length.
// Length is measured in Unicode code points, not bytes or UTF-16 units.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-minlength
type minLengthStep struct {
	limit int
}

func (st *minLengthStep) keyword() string { return "minLength" }

func (st *minLengthStep) execute(_ *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	value, ok := instance.(string)
	if !ok {
		return nil
	}

	if utf8.RuneCountInString(value) < st.limit {
		return NewEvaluationError("minLength", "string_too_short", "Value should be at least {min_length} characters", map[string]any{
			"min_length": st.limit,
		})
	}
	return nil
}
