package jsonschema

import (
	"fmt"
	"strconv"
	"strings"
)

// allOfStep checks the instance against every subschema; all must validate.
// Each passing branch merges its evaluated-property/item marks into the
// parent tracker.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-allof
type allOfStep struct {
	children []*ValidatorNode
}

func (st *allOfStep) keyword() string { return "allOf" }

func (st *allOfStep) execute(ctx *evalContext, instance any, result *EvaluationResult, tracker *EvaluationTracker) *EvaluationError {
	var invalidIndexes []string

	for i, child := range st.children {
		childResult, childTracker := ctx.runBranch(child, instance, tracker != nil)
		if childResult != nil {
			childResult.SetEvaluationPath(fmt.Sprintf("/allOf/%d", i)).
				SetInstanceLocation("")

			result.AddDetail(childResult)

			if childResult.IsValid() {
				tracker.mergeBranch(childTracker)
			} else {
				invalidIndexes = append(invalidIndexes, strconv.Itoa(i))
			}
		}
	}

	if len(invalidIndexes) > 0 {
		return NewEvaluationError("allOf", "all_of_item_mismatch", "Value does not match the allOf schemas at indexes {indexes}", map[string]any{
			"indexes": strings.Join(invalidIndexes, ", "),
		})
	}
	return nil
}
