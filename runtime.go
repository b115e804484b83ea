package jsonschema

// maxEvalDepth bounds schema recursion so that a pathological reference graph
// surfaces as a distinct error instead of a stack overflow.
const maxEvalDepth = 1024

// evalContext is the per-call state of the executor: the current instance
// path, the dynamic scope, the active $ref chain, and the evaluation mode.
// Each validation call owns its own context; nothing here is shared.
type evalContext struct {
	compiler     *Compiler
	scope        *DynamicScope
	failFast     bool
	instancePath string
	refChain     []refEntry
	depth        int
}

// refEntry records a reference entered at a given instance path. Re-entering
// the same node at the same path means the schema cycled without consuming
// input.
type refEntry struct {
	node *ValidatorNode
	path string
}

// enterRef pushes a reference onto the active chain, reporting whether the
// target is already on it at the same instance path.
func (ctx *evalContext) enterRef(node *ValidatorNode) bool {
	for _, entry := range ctx.refChain {
		if entry.node == node && entry.path == ctx.instancePath {
			return false
		}
	}
	ctx.refChain = append(ctx.refChain, refEntry{node: node, path: ctx.instancePath})
	return true
}

// leaveRef pops the most recent reference from the chain.
func (ctx *evalContext) leaveRef() {
	ctx.refChain = ctx.refChain[:len(ctx.refChain)-1]
}

// Validate checks whether the given instance conforms to the schema,
// collecting every failing keyword into the result tree.
func (s *Schema) Validate(instance any) *EvaluationResult {
	return s.validate(instance, false)
}

// ValidateFast reports validity only, aborting each node at its first failing
// step.
func (s *Schema) ValidateFast(instance any) bool {
	return s.validate(instance, true).IsValid()
}

func (s *Schema) validate(instance any, failFast bool) *EvaluationResult {
	compiler := s.GetCompiler()
	node := s.node
	if node == nil {
		node = compiler.compileValidator(s, compiler.dialectOf(s))
	}

	if compiler.coercion.enabled() {
		coerced, err := compiler.coercion.apply(s, instance)
		if err != nil {
			result := NewEvaluationResult(s)
			result.AddError(NewEvaluationError("coerce", "coercion_failure", "Value cannot be coerced to any expected type"))
			return result
		}
		instance = coerced
	}

	ctx := &evalContext{
		compiler: compiler,
		scope:    NewDynamicScope(),
		failFast: failFast,
	}
	result, _ := node.run(ctx, instance, false)
	return result
}

// run executes the node's step program against an instance. The returned
// tracker carries the evaluated-property/item marks for the caller to merge;
// it is nil unless this node tracks or the caller asked for marks.
//
// Entering a node that roots a schema resource pushes a dynamic-scope frame;
// the pop is deferred so it happens on every control-flow exit.
func (n *ValidatorNode) run(ctx *evalContext, instance any, wantTracker bool) (*EvaluationResult, *EvaluationTracker) {
	result := NewEvaluationResult(n.schema)

	ctx.depth++
	defer func() { ctx.depth-- }()
	if ctx.depth > maxEvalDepth {
		result.AddError(NewEvaluationError("$ref", "infinite_loop", "Schema recursion exceeded the evaluation depth limit"))
		return result, nil
	}

	if n.resourceRoot {
		ctx.scope.Push(n)
		defer ctx.scope.Pop()
	}

	var tracker *EvaluationTracker
	if wantTracker || n.tracksProps || n.tracksItems {
		tracker = newTracker()
	}

	if n.boolean != nil {
		if *n.boolean {
			tracker.markAllProps()
			tracker.markAllItems()
		} else {
			result.AddError(NewEvaluationError("schema", "false_schema_mismatch", "No values are allowed because the schema is set to 'false'"))
		}
		return result, tracker
	}

	for _, st := range n.steps {
		if err := st.execute(ctx, instance, result, tracker); err != nil {
			result.AddError(err)
			if ctx.failFast {
				break
			}
		}
	}

	return result, tracker
}

// runChild evaluates a child node against a sub-instance located at the given
// path segment. Marks recorded by the child apply to the sub-instance, not the
// current one, so no tracker is requested.
func (ctx *evalContext) runChild(child *ValidatorNode, instance any, segment string) *EvaluationResult {
	saved := ctx.instancePath
	ctx.instancePath = saved + "/" + segment
	result, _ := child.run(ctx, instance, false)
	ctx.instancePath = saved
	return result
}

// runBranch evaluates a child node against the same instance, returning its
// tracker so the caller can merge the branch's marks on success.
func (ctx *evalContext) runBranch(child *ValidatorNode, instance any, wantTracker bool) (*EvaluationResult, *EvaluationTracker) {
	return child.run(ctx, instance, wantTracker)
}

// DynamicScope is the stack of schema-resource frames the executor maintains
// for $dynamicRef and $recursiveRef resolution. Lookups scan from the
// outermost frame inward.
type DynamicScope struct {
	frames []*ValidatorNode
}

// NewDynamicScope creates and returns a new empty DynamicScope.
func NewDynamicScope() *DynamicScope {
	return &DynamicScope{frames: make([]*ValidatorNode, 0, 8)}
}

// Push adds a resource frame to the dynamic scope.
func (ds *DynamicScope) Push(node *ValidatorNode) {
	ds.frames = append(ds.frames, node)
}

// Pop removes and returns the innermost frame.
func (ds *DynamicScope) Pop() *ValidatorNode {
	if len(ds.frames) == 0 {
		return nil
	}
	last := len(ds.frames) - 1
	node := ds.frames[last]
	ds.frames = ds.frames[:last]
	return node
}

// Peek returns the innermost frame without removing it.
func (ds *DynamicScope) Peek() *ValidatorNode {
	if len(ds.frames) == 0 {
		return nil
	}
	return ds.frames[len(ds.frames)-1]
}

// Size returns the number of frames in the dynamic scope.
func (ds *DynamicScope) Size() int {
	return len(ds.frames)
}

// LookupDynamicAnchor returns the schema published under the anchor by the
// outermost resource in scope, or nil when no frame publishes it.
func (ds *DynamicScope) LookupDynamicAnchor(anchor string) *Schema {
	for _, frame := range ds.frames {
		scope := frame.schema.getScopeSchema()
		if scope.dynamicAnchors != nil {
			if target, ok := scope.dynamicAnchors[anchor]; ok {
				return target
			}
		}
	}
	return nil
}
