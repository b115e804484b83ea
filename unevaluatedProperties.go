package jsonschema

import (
	"fmt"
	"strings"
)

// unevaluatedPropertiesStep validates every property of the object instance
// that no sibling keyword or passing applicator branch has marked as
// evaluated. It is the last property-facing step of the node, so the tracker
// it consults reflects the annotations of everything that ran before it:
// properties, patternProperties, additionalProperties, and the merged marks
// of allOf/anyOf/oneOf/if-then-else/dependentSchemas/$ref branches.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-unevaluatedproperties
type unevaluatedPropertiesStep struct {
	child *ValidatorNode
}

func (st *unevaluatedPropertiesStep) keyword() string { return "unevaluatedProperties" }

func (st *unevaluatedPropertiesStep) execute(ctx *evalContext, instance any, result *EvaluationResult, tracker *EvaluationTracker) *EvaluationError {
	object, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	var invalidProperties []string

	for propName, propValue := range object {
		if !tracker.isUnevaluatedProp(propName) {
			continue
		}

		childResult := ctx.runChild(st.child, propValue, propName)
		if childResult != nil {
			childResult.SetEvaluationPath("/unevaluatedProperties").
				SetInstanceLocation(fmt.Sprintf("/%s", propName))

			result.AddDetail(childResult)

			if !childResult.IsValid() {
				invalidProperties = append(invalidProperties, propName)
			}
		}
		tracker.markProp(propName)
	}

	if len(invalidProperties) == 1 {
		return NewEvaluationError("unevaluatedProperties", "unevaluated_property_mismatch", "Property {property} does not match the unevaluatedProperties schema", map[string]any{
			"property": fmt.Sprintf("'%s'", invalidProperties[0]),
		})
	} else if len(invalidProperties) > 1 {
		quotedProperties := make([]string, len(invalidProperties))
		for i, prop := range invalidProperties {
			quotedProperties[i] = fmt.Sprintf("'%s'", prop)
		}
		return NewEvaluationError("unevaluatedProperties", "unevaluated_properties_mismatch", "Properties {properties} do not match the unevaluatedProperties schema", map[string]any{
			"properties": strings.Join(quotedProperties, ", "),
		})
	}

	return nil
}
