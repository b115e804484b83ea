package jsonschema

// minItemsStep checks that an array instance has at least the given number of
// elements.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-minitems
type minItemsStep struct {
	limit int
}

func (st *minItemsStep) keyword() string { return "minItems" }

func (st *minItemsStep) execute(_ *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	items, ok := instance.([]any)
	if !ok {
		return nil
	}

	if len(items) < st.limit {
		return NewEvaluationError("minItems", "too_few_items", "Value should have at least {min_items} items", map[string]any{
			"min_items": st.limit,
			"count":     len(items),
		})
	}
	return nil
}
