package jsonschema

import (
	"fmt"
	"strconv"
	"strings"
)

// oneOfStep checks the instance against the subschemas; exactly one must
// validate. Every branch always runs, because the match count must be exact.
// Only the single passing branch contributes its marks to the parent tracker.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-oneof
type oneOfStep struct {
	children []*ValidatorNode
}

func (st *oneOfStep) keyword() string { return "oneOf" }

func (st *oneOfStep) execute(ctx *evalContext, instance any, result *EvaluationResult, tracker *EvaluationTracker) *EvaluationError {
	var validIndexes []string
	var validTracker *EvaluationTracker

	for i, child := range st.children {
		childResult, childTracker := ctx.runBranch(child, instance, tracker != nil)
		if childResult != nil {
			childResult.SetEvaluationPath(fmt.Sprintf("/oneOf/%d", i)).
				SetInstanceLocation("")

			result.AddDetail(childResult)

			if childResult.IsValid() {
				validIndexes = append(validIndexes, strconv.Itoa(i))
				validTracker = childTracker
			}
		}
	}

	if len(validIndexes) == 1 {
		tracker.mergeBranch(validTracker)
		return nil
	}

	if len(validIndexes) > 1 {
		return NewEvaluationError("oneOf", "one_of_multiple_matches", "Value should match exactly one schema but matches multiple at indexes {matches}", map[string]any{
			"matches": strings.Join(validIndexes, ", "),
		})
	}
	return NewEvaluationError("oneOf", "one_of_item_mismatch", "Value does not match the oneOf schema")
}
