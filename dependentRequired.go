package jsonschema

import (
	"fmt"
	"strings"
)

// dependentRequiredStep checks that when a trigger property is present, the
// properties it depends on are present too. The legacy string-array form of
// "dependencies" compiles to this same step.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-dependentrequired
type dependentRequiredStep struct {
	dependencies map[string][]string
}

func (st *dependentRequiredStep) keyword() string { return "dependentRequired" }

func (st *dependentRequiredStep) execute(_ *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	object, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	var missing []string
	for trigger, requiredNames := range st.dependencies {
		if _, exists := object[trigger]; !exists {
			continue
		}
		for _, name := range requiredNames {
			if _, exists := object[name]; !exists {
				missing = append(missing, fmt.Sprintf("'%s' (required by '%s')", name, trigger))
			}
		}
	}

	if len(missing) > 0 {
		return NewEvaluationError("dependentRequired", "dependent_required_missing", "Properties {properties} are required by present properties", map[string]any{
			"properties": strings.Join(missing, ", "),
		})
	}
	return nil
}
