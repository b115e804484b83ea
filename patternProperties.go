package jsonschema

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// patternPropertiesStep checks every property of an object instance whose
// name matches one of the compiled patterns against the associated subschema.
// Matching names are marked as evaluated, and each pattern is also published
// into the tracker so unevaluatedProperties can consult patterns that were
// merged from deeper branches.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-patternproperties
type patternPropertiesStep struct {
	patterns []patternPropertyEntry
	owner    *Schema
}

type patternPropertyEntry struct {
	source string
	re     *regexp.Regexp
	node   *ValidatorNode
}

func compilePatternProperties(c *Compiler, s *Schema) *patternPropertiesStep {
	st := &patternPropertiesStep{owner: s}

	sources := make([]string, 0, len(*s.PatternProperties))
	for source := range *s.PatternProperties {
		sources = append(sources, source)
	}
	slices.Sort(sources)

	for _, source := range sources {
		re := s.compiledPatterns[source]
		if re == nil {
			continue // invalid patterns were rejected during keyword validation
		}
		st.patterns = append(st.patterns, patternPropertyEntry{
			source: source,
			re:     re,
			node:   c.nodeFor((*s.PatternProperties)[source]),
		})
	}

	return st
}

func (st *patternPropertiesStep) keyword() string { return "patternProperties" }

func (st *patternPropertiesStep) execute(ctx *evalContext, instance any, result *EvaluationResult, tracker *EvaluationTracker) *EvaluationError {
	object, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	var invalidProperties []string

	for _, entry := range st.patterns {
		tracker.addPattern(entry.re)
		for propName, propValue := range object {
			if !entry.re.MatchString(propName) {
				continue
			}
			tracker.markProp(propName)

			childResult := ctx.runChild(entry.node, propValue, propName)
			if childResult != nil {
				childResult.SetEvaluationPath(fmt.Sprintf("/patternProperties/%s", entry.source)).
					SetSchemaLocation(st.owner.GetSchemaLocation(fmt.Sprintf("/patternProperties/%s", entry.source))).
					SetInstanceLocation(fmt.Sprintf("/%s", propName))

				result.AddDetail(childResult)

				if !childResult.IsValid() {
					invalidProperties = append(invalidProperties, propName)
				}
			}
		}
	}

	if len(invalidProperties) == 1 {
		return NewEvaluationError("patternProperties", "pattern_property_mismatch", "Property {property} does not match its pattern schema", map[string]any{
			"property": fmt.Sprintf("'%s'", invalidProperties[0]),
		})
	} else if len(invalidProperties) > 1 {
		slices.Sort(invalidProperties)
		quotedProperties := make([]string, len(invalidProperties))
		for i, prop := range invalidProperties {
			quotedProperties[i] = fmt.Sprintf("'%s'", prop)
		}
		return NewEvaluationError("patternProperties", "pattern_properties_mismatch", "Properties {properties} do not match their pattern schemas", map[string]any{
			"properties": strings.Join(quotedProperties, ", "),
		})
	}
	return nil
}
