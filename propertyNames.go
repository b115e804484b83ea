package jsonschema

import (
	"fmt"
	"strings"
)

// propertyNamesStep validates every property name of an object instance, as a
// string, against the propertyNames subschema.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-propertynames
type propertyNamesStep struct {
	child *ValidatorNode
}

func (st *propertyNamesStep) keyword() string { return "propertyNames" }

func (st *propertyNamesStep) execute(ctx *evalContext, instance any, result *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	object, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	var invalidNames []string

	for propName := range object {
		childResult, _ := st.child.run(ctx, propName, false)
		if childResult != nil {
			if !childResult.IsValid() {
				childResult.SetEvaluationPath("/propertyNames").
					SetInstanceLocation(fmt.Sprintf("/%s", propName))
				result.AddDetail(childResult)
				invalidNames = append(invalidNames, propName)
			}
		}
	}

	if len(invalidNames) > 0 {
		quoted := make([]string, len(invalidNames))
		for i, name := range invalidNames {
			quoted[i] = fmt.Sprintf("'%s'", name)
		}
		return NewEvaluationError("propertyNames", "property_names_mismatch", "Property names {properties} do not match the schema", map[string]any{
			"properties": strings.Join(quoted, ", "),
		})
	}
	return nil
}
