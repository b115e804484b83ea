package jsonschema

import "fmt"

// containsStep checks that enough elements of an array instance match the
// contains subschema. Matching indices are marked as evaluated for
// unevaluatedItems. With minContains:0 the contains assertion itself cannot
// fail, but maxContains still bounds the match count from above.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-contains
type containsStep struct {
	child       *ValidatorNode
	minContains int
	maxContains int // -1 when unbounded
	owner       *Schema
}

func compileContains(c *Compiler, s *Schema) *containsStep {
	st := &containsStep{minContains: 1, maxContains: -1, owner: s}
	if s.Contains != nil {
		st.child = c.nodeFor(s.Contains)
	}
	if s.MinContains != nil {
		st.minContains = int(*s.MinContains)
	}
	if s.MaxContains != nil {
		st.maxContains = int(*s.MaxContains)
	}
	return st
}

func (st *containsStep) keyword() string { return "contains" }

func (st *containsStep) execute(ctx *evalContext, instance any, result *EvaluationResult, tracker *EvaluationTracker) *EvaluationError {
	array, ok := instance.([]any)
	if !ok {
		return nil
	}

	// minContains/maxContains without contains are annotations only.
	if st.child == nil {
		return nil
	}

	var validCount int
	for i, item := range array {
		childResult, _ := st.child.run(ctx, item, false)
		if childResult != nil {
			childResult.SetEvaluationPath("/contains").
				SetSchemaLocation(st.owner.GetSchemaLocation("/contains")).
				SetInstanceLocation(fmt.Sprintf("/%d", i))

			if childResult.IsValid() {
				validCount++
				tracker.markAnyItem(i)
			}
		}
	}

	if validCount < st.minContains {
		return NewEvaluationError("contains", "contains_too_few_items", "Value should contain at least {min_contains} matching items", map[string]any{
			"min_contains": st.minContains,
			"count":        validCount,
		})
	}

	if st.maxContains >= 0 && validCount > st.maxContains {
		return NewEvaluationError("maxContains", "contains_too_many_items", "Value should contain no more than {max_contains} matching items", map[string]any{
			"max_contains": st.maxContains,
			"count":        validCount,
		})
	}

	return nil
}
