package jsonschema

// conditionalStep evaluates the if/then/else triad. If the instance validates
// against the if subschema, then must also validate (when present); otherwise
// else must (when present). The if branch's marks merge only when it
// validated; whichever of then/else actually executed contributes its marks
// on success.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-if
type conditionalStep struct {
	ifNode   *ValidatorNode
	thenNode *ValidatorNode
	elseNode *ValidatorNode
}

func (st *conditionalStep) keyword() string { return "if" }

func (st *conditionalStep) execute(ctx *evalContext, instance any, result *EvaluationResult, tracker *EvaluationTracker) *EvaluationError {
	ifResult, ifTracker := ctx.runBranch(st.ifNode, instance, tracker != nil)

	if ifResult == nil {
		return nil
	}

	ifResult.SetEvaluationPath("/if").
		SetInstanceLocation("")
	result.AddDetail(ifResult)

	if ifResult.IsValid() {
		tracker.mergeBranch(ifTracker)

		if st.thenNode != nil {
			thenResult, thenTracker := ctx.runBranch(st.thenNode, instance, tracker != nil)
			if thenResult != nil {
				thenResult.SetEvaluationPath("/then").
					SetInstanceLocation("")
				result.AddDetail(thenResult)

				if !thenResult.IsValid() {
					return NewEvaluationError("then", "if_then_mismatch",
						"Value meets the 'if' condition but does not match the 'then' schema")
				}
				tracker.mergeBranch(thenTracker)
			}
		}
	} else if st.elseNode != nil {
		elseResult, elseTracker := ctx.runBranch(st.elseNode, instance, tracker != nil)
		if elseResult != nil {
			elseResult.SetEvaluationPath("/else").
				SetInstanceLocation("")
			result.AddDetail(elseResult)

			if !elseResult.IsValid() {
				return NewEvaluationError("else", "if_else_mismatch",
					"Value fails the 'if' condition and does not match the 'else' schema")
			}
			tracker.mergeBranch(elseTracker)
		}
	}

	return nil
}
