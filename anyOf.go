package jsonschema

import "fmt"

// anyOfStep checks the instance against the subschemas; at least one must
// validate. Validity short-circuits on the first success, but when the parent
// tracks evaluated properties/items every branch still runs so the
// annotations of all matching branches merge upward, in declaration order.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-anyof
type anyOfStep struct {
	children []*ValidatorNode
}

func (st *anyOfStep) keyword() string { return "anyOf" }

func (st *anyOfStep) execute(ctx *evalContext, instance any, result *EvaluationResult, tracker *EvaluationTracker) *EvaluationError {
	anyValid := false

	for i, child := range st.children {
		childResult, childTracker := ctx.runBranch(child, instance, tracker != nil)
		if childResult != nil {
			childResult.SetEvaluationPath(fmt.Sprintf("/anyOf/%d", i)).
				SetInstanceLocation("")

			result.AddDetail(childResult)

			if childResult.IsValid() {
				anyValid = true
				tracker.mergeBranch(childTracker)
				if tracker == nil {
					// Without tracking there is nothing left to collect.
					break
				}
			}
		}
	}

	if !anyValid {
		return NewEvaluationError("anyOf", "any_of_item_mismatch", "Value does not match the anyOf schema")
	}
	return nil
}
