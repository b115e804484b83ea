package jsonschema

// refStep applies the statically resolved $ref target to the instance. The
// target node compiles lazily through the compiler's node cache, so reference
// cycles link back to already-registered nodes.
//
// Entering a reference records (target, instance path) on the active chain;
// re-entering the same pair means the schema cycled without consuming input,
// which surfaces as a distinct infinite-loop error instead of a stack
// overflow.
type refStep struct {
	owner *Schema
}

func (st *refStep) keyword() string { return "$ref" }

func (st *refStep) execute(ctx *evalContext, instance any, result *EvaluationResult, tracker *EvaluationTracker) *EvaluationError {
	target := st.owner.ResolvedRef
	if target == nil {
		// A remote registered after compile may satisfy the ref now.
		st.owner.resolveOwnReferences()
		target = st.owner.ResolvedRef
	}
	if target == nil {
		return NewEvaluationError("$ref", "ref_unresolved", "Reference {ref} cannot be resolved", map[string]any{
			"ref": st.owner.Ref,
		})
	}

	return applyReference(ctx, "$ref", target, instance, result, tracker)
}

// dynamicRefStep applies a $dynamicRef or $recursiveRef. When the reference's
// fragment is a plain anchor and its static target publishes the matching
// dynamic anchor, the target is re-resolved against the runtime scope: the
// outermost frame whose resource publishes the anchor wins. A lookup that
// finds no binding falls back to the static target and never fails.
type dynamicRefStep struct {
	owner     *Schema
	ref       string
	recursive bool
}

func (st *dynamicRefStep) keyword() string {
	if st.recursive {
		return "$recursiveRef"
	}
	return "$dynamicRef"
}

func (st *dynamicRefStep) execute(ctx *evalContext, instance any, result *EvaluationResult, tracker *EvaluationTracker) *EvaluationError {
	target := st.owner.ResolvedDynamicRef
	if target == nil {
		st.owner.resolveOwnReferences()
		target = st.owner.ResolvedDynamicRef
	}
	if target == nil {
		return NewEvaluationError(st.keyword(), "ref_unresolved", "Reference {ref} cannot be resolved", map[string]any{
			"ref": st.ref,
		})
	}

	if st.recursive {
		// $recursiveRef:"#" bootstraps only off a $recursiveAnchor:true target.
		if target.RecursiveAnchor != nil && *target.RecursiveAnchor {
			if schema := ctx.scope.LookupDynamicAnchor(recursiveAnchorName); schema != nil {
				target = schema
			}
		}
	} else {
		_, anchor := splitRef(st.ref)
		if anchor != "" && !isJSONPointer(anchor) && target.DynamicAnchor == anchor {
			if schema := ctx.scope.LookupDynamicAnchor(anchor); schema != nil {
				target = schema
			}
		}
	}

	return applyReference(ctx, st.keyword(), target, instance, result, tracker)
}

// applyReference runs a reference target against the same instance, guarding
// the chain against input-free recursion and merging the target's marks
// upward on success.
func applyReference(ctx *evalContext, keyword string, target *Schema, instance any, result *EvaluationResult, tracker *EvaluationTracker) *EvaluationError {
	node := ctx.compiler.nodeFor(target)

	if !ctx.enterRef(node) {
		return NewEvaluationError(keyword, "infinite_loop", "Reference {ref} cycles without consuming input", map[string]any{
			"ref": target.GetSchemaURI(),
		})
	}
	defer ctx.leaveRef()

	childResult, childTracker := node.run(ctx, instance, tracker != nil)
	if childResult != nil {
		result.AddDetail(childResult)

		if !childResult.IsValid() {
			code := "ref_mismatch"
			message := "Value does not match the reference schema"
			if keyword != "$ref" {
				code = "dynamic_ref_mismatch"
				message = "Value does not match the dynamic reference schema"
			}
			return NewEvaluationError(keyword, code, message)
		}
		tracker.mergeBranch(childTracker)
	}

	return nil
}
