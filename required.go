package jsonschema

import (
	"fmt"
	"strings"
)

// requiredStep checks that every required property name is present in the
// object instance.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-required
type requiredStep struct {
	names []string
}

func (st *requiredStep) keyword() string { return "required" }

func (st *requiredStep) execute(_ *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	object, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	var missing []string
	for _, name := range st.names {
		if _, exists := object[name]; !exists {
			missing = append(missing, name)
		}
	}

	if len(missing) == 1 {
		return NewEvaluationError("required", "missing_required_property", "Required property {property} is missing", map[string]any{
			"property": fmt.Sprintf("'%s'", missing[0]),
		})
	} else if len(missing) > 1 {
		quoted := make([]string, len(missing))
		for i, name := range missing {
			quoted[i] = fmt.Sprintf("'%s'", name)
		}
		return NewEvaluationError("required", "missing_required_properties", "Required properties {properties} are missing", map[string]any{
			"properties": strings.Join(quoted, ", "),
		})
	}
	return nil
}
