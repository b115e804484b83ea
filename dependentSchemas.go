package jsonschema

import (
	"fmt"
	"slices"
	"strings"
)

// dependentSchemasStep applies each dependent subschema to the whole object
// when its trigger property is present. Marks of passing dependent schemas
// merge into the parent tracker, so unevaluatedProperties sees them — but
// additionalProperties, which only consults its compile-time siblings, does
// not.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-dependentschemas
type dependentSchemasStep struct {
	dependencies []dependentSchemaEntry
	owner        *Schema
}

type dependentSchemaEntry struct {
	trigger string
	node    *ValidatorNode
}

func compileDependentSchemas(c *Compiler, s *Schema) *dependentSchemasStep {
	st := &dependentSchemasStep{owner: s}

	triggers := make([]string, 0, len(s.DependentSchemas))
	for trigger := range s.DependentSchemas {
		triggers = append(triggers, trigger)
	}
	slices.Sort(triggers)

	for _, trigger := range triggers {
		st.dependencies = append(st.dependencies, dependentSchemaEntry{
			trigger: trigger,
			node:    c.nodeFor(s.DependentSchemas[trigger]),
		})
	}
	return st
}

func (st *dependentSchemasStep) keyword() string { return "dependentSchemas" }

func (st *dependentSchemasStep) execute(ctx *evalContext, instance any, result *EvaluationResult, tracker *EvaluationTracker) *EvaluationError {
	object, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	var invalidProperties []string

	for _, entry := range st.dependencies {
		if _, exists := object[entry.trigger]; !exists {
			continue
		}

		childResult, childTracker := ctx.runBranch(entry.node, instance, tracker != nil)
		if childResult != nil {
			childResult.SetEvaluationPath(fmt.Sprintf("/dependentSchemas/%s", entry.trigger)).
				SetSchemaLocation(st.owner.GetSchemaLocation(fmt.Sprintf("/dependentSchemas/%s", entry.trigger))).
				SetInstanceLocation("")

			result.AddDetail(childResult)

			if childResult.IsValid() {
				tracker.mergeBranch(childTracker)
			} else {
				invalidProperties = append(invalidProperties, entry.trigger)
			}
		}
	}

	if len(invalidProperties) == 1 {
		return NewEvaluationError("dependentSchemas", "dependent_schema_mismatch", "Property {property} does not meet the schema requirements dependent on it", map[string]any{
			"property": fmt.Sprintf("'%s'", invalidProperties[0]),
		})
	} else if len(invalidProperties) > 1 {
		quotedProperties := make([]string, len(invalidProperties))
		for i, prop := range invalidProperties {
			quotedProperties[i] = fmt.Sprintf("'%s'", prop)
		}
		return NewEvaluationError("dependentSchemas", "dependent_schemas_mismatch", "Properties {properties} do not meet the schema requirements dependent on them", map[string]any{
			"properties": strings.Join(quotedProperties, ", "),
		})
	}

	return nil
}
