package jsonschema

// minimumStep checks that a numeric instance meets or exceeds the inclusive
// lower limit. The exclusive flag carries the draft-4 form, where a boolean
// exclusiveMinimum keyword turned this bound strict.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-minimum
type minimumStep struct {
	bound     *Rat
	exclusive bool
}

func (st *minimumStep) keyword() string { return "minimum" }

func (st *minimumStep) execute(_ *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	value, ok := numericValue(instance)
	if !ok {
		return nil
	}

	cmp := value.Cmp(st.bound.Rat)
	if cmp < 0 || (st.exclusive && cmp == 0) {
		if st.exclusive {
			return NewEvaluationError("minimum", "value_not_above_exclusive_minimum", "{value} should be greater than {minimum}", map[string]any{
				"value":   FormatRat(&Rat{value}),
				"minimum": FormatRat(st.bound),
			})
		}
		return NewEvaluationError("minimum", "value_below_minimum", "{value} should be at least {minimum}", map[string]any{
			"value":   FormatRat(&Rat{value}),
			"minimum": FormatRat(st.bound),
		})
	}
	return nil
}
