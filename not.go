package jsonschema

// notStep checks that the instance does NOT validate against the subschema.
// The branch's tracker is discarded: marks computed inside a not never
// propagate, and its annotations do not exist.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-not
type notStep struct {
	child *ValidatorNode
}

func (st *notStep) keyword() string { return "not" }

func (st *notStep) execute(ctx *evalContext, instance any, result *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	childResult, _ := st.child.run(ctx, instance, false)

	if childResult != nil {
		childResult.SetEvaluationPath("/not").
			SetInstanceLocation("")

		if childResult.IsValid() {
			result.AddDetail(childResult)
			return NewEvaluationError("not", "not_schema_mismatch", "Value should not match the not schema")
		}
	}

	return nil
}
