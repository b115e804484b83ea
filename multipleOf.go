package jsonschema

// multipleOfStep checks that a numeric instance is an integer multiple of the
// divisor. The check divides over big.Rat, so decimal steps like 0.0001 are
// exact and large operands cannot overflow.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-multipleof
type multipleOfStep struct {
	divisor *Rat
}

func (st *multipleOfStep) keyword() string { return "multipleOf" }

func (st *multipleOfStep) execute(_ *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	value, ok := numericValue(instance)
	if !ok {
		return nil
	}

	if !isMultipleOf(&Rat{value}, st.divisor) {
		return NewEvaluationError("multipleOf", "not_multiple_of", "{value} should be a multiple of {multiple_of}", map[string]any{
			"value":       FormatRat(&Rat{value}),
			"multiple_of": FormatRat(st.divisor),
		})
	}
	return nil
}
