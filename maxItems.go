package jsonschema

// maxItemsStep checks that an array instance has no more than the given
// number of elements.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-maxitems
type maxItemsStep struct {
	limit int
}

func (st *maxItemsStep) keyword() string { return "maxItems" }

func (st *maxItemsStep) execute(_ *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	items, ok := instance.([]any)
	if !ok {
		return nil
	}

	if len(items) > st.limit {
		return NewEvaluationError("maxItems", "too_many_items", "Value should have at most {max_items} items", map[string]any{
			"max_items": st.limit,
			"count":     len(items),
		})
	}
	return nil
}
