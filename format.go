package jsonschema

// formatStep checks if the instance conforms to the named format. The step is
// emitted only when the effective mode is assertion: drafts up to 7 assert by
// default, 2019-09 and 2020-12 annotate unless the format-assertion vocabulary
// is active or the compiler forces assertion.
//
// The lookup order is compiler-registered custom formats first, then the
// global Formats table. Unknown format names pass silently, as annotations.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-format
type formatStep struct {
	name string
}

func (st *formatStep) keyword() string { return "format" }

func (st *formatStep) execute(ctx *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	if def := ctx.compiler.customFormat(st.name); def != nil {
		if def.Type != "" && !typeMatches(def.Type, getDataType(instance)) {
			return nil // Type doesn't match, so skip validation
		}
		if !def.Validate(instance) {
			return NewEvaluationError("format", "format_mismatch", "Value does not match format '{format}'", map[string]any{
				"format": st.name,
			})
		}
		return nil
	}

	if validator, ok := Formats[st.name]; ok {
		if !validator(instance) {
			return NewEvaluationError("format", "format_mismatch", "Value does not match format '{format}'", map[string]any{
				"format": st.name,
			})
		}
	}

	return nil
}
