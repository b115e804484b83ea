package jsonschema

// minPropertiesStep checks that an object instance has at least the given
// number of properties.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-minproperties
type minPropertiesStep struct {
	limit int
}

func (st *minPropertiesStep) keyword() string { return "minProperties" }

func (st *minPropertiesStep) execute(_ *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	object, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	if len(object) < st.limit {
		return NewEvaluationError("minProperties", "too_few_properties", "Value should have at least {min_properties} properties", map[string]any{
			"min_properties": st.limit,
			"count":          len(object),
		})
	}
	return nil
}
