package jsonschema

import "unicode/utf8"

// maxLengthStep checks that a string instance is at most the given length,
// measured in Unicode code points.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-maxlength
type maxLengthStep struct {
	limit int
}

func (st *maxLengthStep) keyword() string { return "maxLength" }

func (st *maxLengthStep) execute(_ *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	value, ok := instance.(string)
	if !ok {
		return nil
	}

	if utf8.RuneCountInString(value) > st.limit {
		return NewEvaluationError("maxLength", "string_too_long", "Value should be at most {max_length} characters", map[string]any{
			"max_length": st.limit,
		})
	}
	return nil
}
