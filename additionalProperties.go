package jsonschema

import (
	"fmt"
	"regexp"
	"strings"
)

// additionalPropertiesStep checks properties not claimed by properties or by a
// patternProperties regex of the same schema object against the
// additionalProperties subschema. With additionalProperties:false the step
// rejects any such property outright.
//
// The sibling property names and pattern regexes are captured at compile
// time; annotations merged from other branches (dependentSchemas, allOf, ...)
// are deliberately NOT visible here — only unevaluatedProperties sees those.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-additionalproperties
type additionalPropertiesStep struct {
	child    *ValidatorNode
	declared map[string]struct{}
	patterns []*regexp.Regexp
	owner    *Schema
}

func compileAdditionalProperties(c *Compiler, s *Schema) *additionalPropertiesStep {
	st := &additionalPropertiesStep{
		child: c.nodeFor(s.AdditionalProperties),
		owner: s,
	}

	if s.Properties != nil {
		st.declared = make(map[string]struct{}, len(*s.Properties))
		for name := range *s.Properties {
			st.declared[name] = struct{}{}
		}
	}
	if s.PatternProperties != nil {
		for source := range *s.PatternProperties {
			if re := s.compiledPatterns[source]; re != nil {
				st.patterns = append(st.patterns, re)
			}
		}
	}

	return st
}

func (st *additionalPropertiesStep) keyword() string { return "additionalProperties" }

// covered reports whether a property name belongs to properties or matches a
// patternProperties regex of the same schema object.
func (st *additionalPropertiesStep) covered(name string) bool {
	if _, ok := st.declared[name]; ok {
		return true
	}
	for _, re := range st.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

func (st *additionalPropertiesStep) execute(ctx *evalContext, instance any, result *EvaluationResult, tracker *EvaluationTracker) *EvaluationError {
	object, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	var invalidProperties []string

	for propName, propValue := range object {
		if st.covered(propName) {
			continue
		}
		tracker.markProp(propName)

		childResult := ctx.runChild(st.child, propValue, propName)
		if childResult != nil {
			childResult.SetEvaluationPath(fmt.Sprintf("/additionalProperties/%s", propName)).
				SetSchemaLocation(st.owner.GetSchemaLocation(fmt.Sprintf("/additionalProperties/%s", propName))).
				SetInstanceLocation(fmt.Sprintf("/%s", propName))

			result.AddDetail(childResult)
			if !childResult.IsValid() {
				invalidProperties = append(invalidProperties, propName)
			}
		}
	}

	if len(invalidProperties) == 1 {
		return NewEvaluationError("additionalProperties", "additional_property_mismatch", "Additional property {property} does not match the schema", map[string]any{
			"property": fmt.Sprintf("'%s'", invalidProperties[0]),
		})
	} else if len(invalidProperties) > 1 {
		quotedProperties := make([]string, len(invalidProperties))
		for i, prop := range invalidProperties {
			quotedProperties[i] = fmt.Sprintf("'%s'", prop)
		}
		return NewEvaluationError("additionalProperties", "additional_properties_mismatch", "Additional properties {properties} do not match the schema", map[string]any{
			"properties": strings.Join(quotedProperties, ", "),
		})
	}

	return nil
}
