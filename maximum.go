package jsonschema

// maximumStep checks that a numeric instance does not exceed the inclusive
// upper limit. The exclusive flag carries the draft-4 boolean form.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-maximum
type maximumStep struct {
	bound     *Rat
	exclusive bool
}

func (st *maximumStep) keyword() string { return "maximum" }

func (st *maximumStep) execute(_ *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	value, ok := numericValue(instance)
	if !ok {
		return nil
	}

	cmp := value.Cmp(st.bound.Rat)
	if cmp > 0 || (st.exclusive && cmp == 0) {
		if st.exclusive {
			return NewEvaluationError("maximum", "value_not_below_exclusive_maximum", "{value} should be less than {maximum}", map[string]any{
				"value":   FormatRat(&Rat{value}),
				"maximum": FormatRat(st.bound),
			})
		}
		return NewEvaluationError("maximum", "value_above_maximum", "{value} should be at most {maximum}", map[string]any{
			"value":   FormatRat(&Rat{value}),
			"maximum": FormatRat(st.bound),
		})
	}
	return nil
}
