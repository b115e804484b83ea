package jsonschema

import (
	"fmt"
	"slices"
	"strings"
)

// propertiesHashThreshold is the key count above which the step keeps a map
// lookup instead of a linear entry scan.
const propertiesHashThreshold = 8

// propertiesStep checks the properties of an object instance against the
// subschemas declared under the same names, and marks every matched name as
// evaluated so that unevaluatedProperties sees them (additionalProperties
// works from the declared names, not from these marks).
// According to the JSON Schema Draft 2020-12:
//   - The value of "properties" must be an object, with each value being a valid JSON Schema.
//   - Validation succeeds if, for each name that appears in both the instance and this
//     keyword's value, the child instance for that name validates against the
//     corresponding subschema.
//
// Schemas with few keys compile to a linear entry scan; larger ones to a hash
// lookup keyed by property name.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-properties
type propertiesStep struct {
	entries []propertyEntry           // linear form, declaration order
	lookup  map[string]*ValidatorNode // hash form, nil below the threshold
	owner   *Schema
}

type propertyEntry struct {
	name string
	node *ValidatorNode
}

func compileProperties(c *Compiler, s *Schema) *propertiesStep {
	st := &propertiesStep{owner: s}

	names := make([]string, 0, len(*s.Properties))
	for name := range *s.Properties {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		st.entries = append(st.entries, propertyEntry{name: name, node: c.nodeFor((*s.Properties)[name])})
	}

	if len(st.entries) > propertiesHashThreshold {
		st.lookup = make(map[string]*ValidatorNode, len(st.entries))
		for _, entry := range st.entries {
			st.lookup[entry.name] = entry.node
		}
	}

	return st
}

func (st *propertiesStep) keyword() string { return "properties" }

func (st *propertiesStep) execute(ctx *evalContext, instance any, result *EvaluationResult, tracker *EvaluationTracker) *EvaluationError {
	object, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	var invalidProperties []string

	evaluate := func(name string, node *ValidatorNode, value any) {
		tracker.markProp(name)

		childResult := ctx.runChild(node, value, name)
		if childResult != nil {
			childResult.SetEvaluationPath(fmt.Sprintf("/properties/%s", name)).
				SetSchemaLocation(st.owner.GetSchemaLocation(fmt.Sprintf("/properties/%s", name))).
				SetInstanceLocation(fmt.Sprintf("/%s", name))

			result.AddDetail(childResult)

			if !childResult.IsValid() {
				invalidProperties = append(invalidProperties, name)
			}
		}
	}

	if st.lookup != nil && len(object) < len(st.entries) {
		// Fewer instance keys than declared properties: drive from the instance.
		names := make([]string, 0, len(object))
		for name := range object {
			if _, declared := st.lookup[name]; declared {
				names = append(names, name)
			}
		}
		slices.Sort(names)
		for _, name := range names {
			evaluate(name, st.lookup[name], object[name])
		}
		return st.finish(invalidProperties)
	}

	for _, entry := range st.entries {
		if value, exists := object[entry.name]; exists {
			evaluate(entry.name, entry.node, value)
		}
	}
	return st.finish(invalidProperties)
}

func (st *propertiesStep) finish(invalidProperties []string) *EvaluationError {
	if len(invalidProperties) == 1 {
		return NewEvaluationError("properties", "property_mismatch", "Property {property} does not match the schema", map[string]any{
			"property": fmt.Sprintf("'%s'", invalidProperties[0]),
		})
	} else if len(invalidProperties) > 1 {
		slices.Sort(invalidProperties)
		quotedProperties := make([]string, len(invalidProperties))
		for i, prop := range invalidProperties {
			quotedProperties[i] = fmt.Sprintf("'%s'", prop)
		}
		return NewEvaluationError("properties", "properties_mismatch", "Properties {properties} do not match their schemas", map[string]any{
			"properties": strings.Join(quotedProperties, ", "),
		})
	}
	return nil
}
