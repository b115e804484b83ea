package jsonschema

import (
	"fmt"
	"strconv"
	"strings"
)

// unevaluatedItemsStep validates every index of the array instance that no
// sibling keyword or passing applicator branch has marked as evaluated:
// prefixItems and items mark consecutive prefixes, contains marks sparse
// matches, and composition branches merge their marks before this step runs.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-unevaluateditems
type unevaluatedItemsStep struct {
	child *ValidatorNode
}

func (st *unevaluatedItemsStep) keyword() string { return "unevaluatedItems" }

func (st *unevaluatedItemsStep) execute(ctx *evalContext, instance any, result *EvaluationResult, tracker *EvaluationTracker) *EvaluationError {
	array, ok := instance.([]any)
	if !ok {
		return nil
	}

	var invalidIndexes []string

	for i, item := range array {
		if !tracker.isUnevaluatedItem(i) {
			continue
		}

		childResult := ctx.runChild(st.child, item, strconv.Itoa(i))
		if childResult != nil {
			childResult.SetEvaluationPath("/unevaluatedItems").
				SetInstanceLocation(fmt.Sprintf("/%d", i))

			result.AddDetail(childResult)

			if !childResult.IsValid() {
				invalidIndexes = append(invalidIndexes, strconv.Itoa(i))
			}
		}
		tracker.markAnyItem(i)
	}

	if len(invalidIndexes) == 1 {
		return NewEvaluationError("unevaluatedItems", "unevaluated_item_mismatch", "Item at index {index} does not match the unevaluatedItems schema", map[string]any{
			"index": invalidIndexes[0],
		})
	} else if len(invalidIndexes) > 1 {
		return NewEvaluationError("unevaluatedItems", "unevaluated_items_mismatch", "Items at index {indexes} do not match the unevaluatedItems schema", map[string]any{
			"indexes": strings.Join(invalidIndexes, ", "),
		})
	}

	return nil
}
