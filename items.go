package jsonschema

import (
	"fmt"
	"strconv"
	"strings"
)

// itemsStep checks every array element past the prefixItems boundary against
// the items subschema and marks those indices as evaluated. The array form of
// items from drafts up to 2019-09 (with additionalItems validating the rest)
// is canonicalized at parse time, so this one step covers both grammars.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-items
type itemsStep struct {
	child       *ValidatorNode
	prefixCount int
	owner       *Schema
}

func compileItems(c *Compiler, s *Schema) *itemsStep {
	return &itemsStep{
		child:       c.nodeFor(s.Items),
		prefixCount: len(s.PrefixItems),
		owner:       s,
	}
}

func (st *itemsStep) keyword() string { return "items" }

func (st *itemsStep) execute(ctx *evalContext, instance any, result *EvaluationResult, tracker *EvaluationTracker) *EvaluationError {
	array, ok := instance.([]any)
	if !ok {
		return nil
	}

	var invalidIndexes []string

	for i := st.prefixCount; i < len(array); i++ {
		childResult := ctx.runChild(st.child, array[i], strconv.Itoa(i))
		if childResult != nil {
			if childResult.IsValid() {
				tracker.markItemsUpTo(i + 1)
			} else {
				childResult.SetEvaluationPath(fmt.Sprintf("/items/%d", i)).
					SetSchemaLocation(st.owner.GetSchemaLocation(fmt.Sprintf("/items/%d", i))).
					SetInstanceLocation(fmt.Sprintf("/%d", i))

				result.AddDetail(childResult)
				invalidIndexes = append(invalidIndexes, strconv.Itoa(i))
			}
		}
	}

	if len(invalidIndexes) == 1 {
		return NewEvaluationError("items", "item_mismatch", "Item at index {index} does not match the schema", map[string]any{
			"index": invalidIndexes[0],
		})
	} else if len(invalidIndexes) > 1 {
		return NewEvaluationError("items", "items_mismatch", "Items at index {indexes} do not match the schema", map[string]any{
			"indexes": strings.Join(invalidIndexes, ", "),
		})
	}
	return nil
}
