package jsonschema

// maxPropertiesStep checks that an object instance has no more than the given
// number of properties.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-maxproperties
type maxPropertiesStep struct {
	limit int
}

func (st *maxPropertiesStep) keyword() string { return "maxProperties" }

func (st *maxPropertiesStep) execute(_ *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	object, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	if len(object) > st.limit {
		return NewEvaluationError("maxProperties", "too_many_properties", "Value should have at most {max_properties} properties", map[string]any{
			"max_properties": st.limit,
			"count":          len(object),
		})
	}
	return nil
}
