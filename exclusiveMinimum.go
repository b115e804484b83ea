package jsonschema

// exclusiveMinimumStep checks that a numeric instance is strictly greater
// than the bound (the numeric draft 6+ form of exclusiveMinimum).
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-exclusiveminimum
type exclusiveMinimumStep struct {
	bound *Rat
}

func (st *exclusiveMinimumStep) keyword() string { return "exclusiveMinimum" }

func (st *exclusiveMinimumStep) execute(_ *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	value, ok := numericValue(instance)
	if !ok {
		return nil
	}

	if value.Cmp(st.bound.Rat) <= 0 {
		return NewEvaluationError("exclusiveMinimum", "value_not_above_exclusive_minimum", "{value} should be greater than {minimum}", map[string]any{
			"value":   FormatRat(&Rat{value}),
			"minimum": FormatRat(st.bound),
		})
	}
	return nil
}
