package jsonschema

// exclusiveMaximumStep checks that a numeric instance is strictly less than
// the bound (the numeric draft 6+ form of exclusiveMaximum).
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-exclusivemaximum
type exclusiveMaximumStep struct {
	bound *Rat
}

func (st *exclusiveMaximumStep) keyword() string { return "exclusiveMaximum" }

func (st *exclusiveMaximumStep) execute(_ *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	value, ok := numericValue(instance)
	if !ok {
		return nil
	}

	if value.Cmp(st.bound.Rat) >= 0 {
		return NewEvaluationError("exclusiveMaximum", "value_not_below_exclusive_maximum", "{value} should be less than {maximum}", map[string]any{
			"value":   FormatRat(&Rat{value}),
			"maximum": FormatRat(st.bound),
		})
	}
	return nil
}
