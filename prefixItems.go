package jsonschema

import (
	"fmt"
	"strconv"
	"strings"
)

// prefixItemsStep checks each element of an array instance against the schema
// at the same index. The keyword does not constrain the array length; it
// validates only the prefix up to the number of subschemas, marking those
// indices as evaluated.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-prefixitems
type prefixItemsStep struct {
	children []*ValidatorNode
	owner    *Schema
}

func compilePrefixItems(c *Compiler, s *Schema) *prefixItemsStep {
	return &prefixItemsStep{children: c.nodesFor(s.PrefixItems), owner: s}
}

func (st *prefixItemsStep) keyword() string { return "prefixItems" }

func (st *prefixItemsStep) execute(ctx *evalContext, instance any, result *EvaluationResult, tracker *EvaluationTracker) *EvaluationError {
	array, ok := instance.([]any)
	if !ok {
		return nil
	}

	var invalidIndexes []string

	for i, child := range st.children {
		if i >= len(array) {
			break
		}

		childResult := ctx.runChild(child, array[i], strconv.Itoa(i))
		if childResult != nil {
			childResult.SetEvaluationPath(fmt.Sprintf("/prefixItems/%d", i)).
				SetSchemaLocation(st.owner.GetSchemaLocation(fmt.Sprintf("/prefixItems/%d", i))).
				SetInstanceLocation(fmt.Sprintf("/%d", i))

			result.AddDetail(childResult)

			if childResult.IsValid() {
				tracker.markItemsUpTo(i + 1)
			} else {
				invalidIndexes = append(invalidIndexes, strconv.Itoa(i))
			}
		}
	}

	if len(invalidIndexes) == 1 {
		return NewEvaluationError("prefixItems", "prefix_item_mismatch", "Item at index {index} does not match the prefixItems schema", map[string]any{
			"index": invalidIndexes[0],
		})
	} else if len(invalidIndexes) > 1 {
		return NewEvaluationError("prefixItems", "prefix_items_mismatch", "Items at index {indexes} do not match the prefixItems schemas", map[string]any{
			"indexes": strings.Join(invalidIndexes, ", "),
		})
	}

	return nil
}
