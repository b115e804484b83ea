package jsonschema

import "regexp"

// patternStep checks a string instance against the schema's regular
// expression. The regex is compiled once at schema compile time and interned
// on the step.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-pattern
type patternStep struct {
	source string
	re     *regexp.Regexp
}

func (st *patternStep) keyword() string { return "pattern" }

func (st *patternStep) execute(_ *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	value, ok := instance.(string)
	if !ok {
		return nil
	}

	if !st.re.MatchString(value) {
		return NewEvaluationError("pattern", "pattern_mismatch", "Value does not match the required pattern {pattern}", map[string]any{
			"pattern": st.source,
		})
	}
	return nil
}
