package jsonschema

// step is one compiled validation operation. A ValidatorNode holds its steps
// in the canonical emission order; no step inspects sibling keywords at
// runtime — everything it needs is captured at compile time.
type step interface {
	keyword() string
	execute(ctx *evalContext, instance any, result *EvaluationResult, tracker *EvaluationTracker) *EvaluationError
}

// ValidatorNode is the compiled validator for exactly one schema node: a
// linear program of steps plus the child node references the steps hold.
// Nodes are immutable after compilation and safely shareable across
// goroutines.
type ValidatorNode struct {
	schema   *Schema
	compiler *Compiler
	dialect  *Dialect
	boolean  *bool
	steps    []step

	resourceRoot    bool // entering this node crosses a schema-resource boundary
	recursiveAnchor bool // schema carries $recursiveAnchor:true

	hasRefSibling     bool // $ref plus sibling keywords under a post-2019 dialect
	tracksProps       bool // subtree contains restrictive unevaluatedProperties
	tracksItems       bool // subtree contains restrictive unevaluatedItems
	needsDynamicScope bool // subtree contains $dynamicRef or $recursiveRef
}

// compileValidator compiles a schema document root under its dialect and
// caches the node graph on the compiler.
func (c *Compiler) compileValidator(s *Schema, dialect *Dialect) *ValidatorNode {
	s.dialect = dialect
	return c.nodeFor(s)
}

// nodeFor returns the ValidatorNode for a schema node, compiling it on first
// use. The node is registered in the cache before its children compile, so
// cyclic schemas link back to the placeholder and need no back-patching pass.
func (c *Compiler) nodeFor(s *Schema) *ValidatorNode {
	c.mu.Lock()
	if node, ok := c.nodes[s]; ok {
		c.mu.Unlock()
		return node
	}

	node := &ValidatorNode{
		schema:       s,
		compiler:     c,
		dialect:      c.dialectOf(s),
		boolean:      s.Boolean,
		resourceRoot: s.isResourceRoot(),
	}
	if s.RecursiveAnchor != nil && *s.RecursiveAnchor {
		node.recursiveAnchor = true
	}
	c.nodes[s] = node
	c.mu.Unlock()

	s.node = node
	s.compilePatterns()
	node.steps = c.emitSteps(s, node)

	tracking := newTrackingPass(c)
	node.tracksProps = tracking.needsPropTracking(s)
	node.tracksItems = tracking.needsItemTracking(s)
	node.needsDynamicScope = tracking.needsDynamicScope(s)

	return node
}

// dialectOf resolves the dialect governing a schema node: the dialect recorded
// on its document root, or the compiler default.
func (c *Compiler) dialectOf(s *Schema) *Dialect {
	root := s.getRootSchema()
	if root.dialect != nil {
		return root.dialect
	}
	if c.defaultDialect != nil {
		return c.defaultDialect
	}
	return dialectDraft202012
}

// emitSteps produces the node's step program in the canonical order. Keywords
// absent from the schema emit nothing; keywords outside the dialect's active
// vocabularies are skipped entirely.
func (c *Compiler) emitSteps(s *Schema, node *ValidatorNode) []step {
	dialect := node.dialect
	enabled := dialect.KeywordEnabled

	var steps []step

	// 1. $ref family. Under legacy dialects $ref replaces every sibling.
	hasRef := s.Ref != ""
	if hasRef {
		steps = append(steps, &refStep{owner: s})
		if c.refReplacesSiblings(dialect) {
			return steps
		}
	}
	if s.DynamicRef != "" {
		steps = append(steps, &dynamicRefStep{owner: s, ref: s.DynamicRef})
	}
	if s.RecursiveRef != "" {
		steps = append(steps, &dynamicRefStep{owner: s, ref: s.RecursiveRef, recursive: true})
	}
	// 2. type
	if len(s.Type) > 0 && enabled("type") {
		steps = append(steps, &typeStep{types: s.Type})
	}

	// 3. const, enum
	if s.Const != nil && enabled("const") {
		steps = append(steps, &constStep{value: s.Const.Value})
	}
	if len(s.Enum) > 0 && enabled("enum") {
		steps = append(steps, &enumStep{values: s.Enum})
	}

	// 4. format, when the effective mode is assertion
	if s.Format != nil && (enabled("format") || c.formatAssertion == FormatAlways) && c.assertsFormat(dialect) {
		steps = append(steps, &formatStep{name: *s.Format})
	}

	// 5. string constraints
	if s.MinLength != nil && enabled("minLength") {
		steps = append(steps, &minLengthStep{limit: int(*s.MinLength)})
	}
	if s.MaxLength != nil && enabled("maxLength") {
		steps = append(steps, &maxLengthStep{limit: int(*s.MaxLength)})
	}
	if s.Pattern != nil && enabled("pattern") && s.stringPattern != nil {
		steps = append(steps, &patternStep{source: *s.Pattern, re: s.stringPattern})
	}

	// 6. number constraints, with the draft-4 boolean-exclusive fallback
	if s.Minimum != nil && enabled("minimum") {
		steps = append(steps, &minimumStep{bound: s.Minimum, exclusive: s.ExclusiveMinFlag})
	}
	if s.Maximum != nil && enabled("maximum") {
		steps = append(steps, &maximumStep{bound: s.Maximum, exclusive: s.ExclusiveMaxFlag})
	}
	if s.ExclusiveMinimum != nil && enabled("exclusiveMinimum") {
		steps = append(steps, &exclusiveMinimumStep{bound: s.ExclusiveMinimum})
	}
	if s.ExclusiveMaximum != nil && enabled("exclusiveMaximum") {
		steps = append(steps, &exclusiveMaximumStep{bound: s.ExclusiveMaximum})
	}
	if s.MultipleOf != nil && enabled("multipleOf") {
		steps = append(steps, &multipleOfStep{divisor: s.MultipleOf})
	}

	// 7. array constraints
	if s.MinItems != nil && enabled("minItems") {
		steps = append(steps, &minItemsStep{limit: int(*s.MinItems)})
	}
	if s.MaxItems != nil && enabled("maxItems") {
		steps = append(steps, &maxItemsStep{limit: int(*s.MaxItems)})
	}
	if s.UniqueItems != nil && *s.UniqueItems && enabled("uniqueItems") {
		steps = append(steps, &uniqueItemsStep{})
	}

	// 8. object constraints
	if s.MinProperties != nil && enabled("minProperties") {
		steps = append(steps, &minPropertiesStep{limit: int(*s.MinProperties)})
	}
	if s.MaxProperties != nil && enabled("maxProperties") {
		steps = append(steps, &maxPropertiesStep{limit: int(*s.MaxProperties)})
	}
	if len(s.Required) > 0 && enabled("required") {
		steps = append(steps, &requiredStep{names: s.Required})
	}
	if len(s.DependentRequired) > 0 && enabled("dependentRequired") {
		steps = append(steps, &dependentRequiredStep{dependencies: s.DependentRequired})
	}

	// 9. properties, patternProperties, additionalProperties
	if s.Properties != nil && enabled("properties") {
		steps = append(steps, compileProperties(c, s))
	}
	if s.PatternProperties != nil && enabled("patternProperties") {
		steps = append(steps, compilePatternProperties(c, s))
	}
	if s.AdditionalProperties != nil && enabled("additionalProperties") {
		steps = append(steps, compileAdditionalProperties(c, s))
	}

	// 10. prefixItems, items
	if len(s.PrefixItems) > 0 && enabled("prefixItems") {
		steps = append(steps, compilePrefixItems(c, s))
	}
	if s.Items != nil && enabled("items") {
		steps = append(steps, compileItems(c, s))
	}

	// 11. contains / minContains / maxContains
	if (s.Contains != nil || s.MinContains != nil || s.MaxContains != nil) && enabled("contains") {
		steps = append(steps, compileContains(c, s))
	}

	// 12. propertyNames
	if s.PropertyNames != nil && enabled("propertyNames") {
		steps = append(steps, &propertyNamesStep{child: c.nodeFor(s.PropertyNames)})
	}

	// 13. dependentSchemas
	if len(s.DependentSchemas) > 0 && enabled("dependentSchemas") {
		steps = append(steps, compileDependentSchemas(c, s))
	}

	// 14. composition
	if len(s.AllOf) > 0 && enabled("allOf") {
		steps = append(steps, &allOfStep{children: c.nodesFor(s.AllOf)})
	}
	if len(s.AnyOf) > 0 && enabled("anyOf") {
		steps = append(steps, &anyOfStep{children: c.nodesFor(s.AnyOf)})
	}
	if len(s.OneOf) > 0 && enabled("oneOf") {
		steps = append(steps, &oneOfStep{children: c.nodesFor(s.OneOf)})
	}
	if s.Not != nil && enabled("not") {
		steps = append(steps, &notStep{child: c.nodeFor(s.Not)})
	}

	// 15. if/then/else
	if s.If != nil && enabled("if") {
		conditional := &conditionalStep{ifNode: c.nodeFor(s.If)}
		if s.Then != nil {
			conditional.thenNode = c.nodeFor(s.Then)
		}
		if s.Else != nil {
			conditional.elseNode = c.nodeFor(s.Else)
		}
		steps = append(steps, conditional)
	}

	// 16. unevaluatedProperties, unevaluatedItems — after everything above has
	// merged into the tracker
	if s.UnevaluatedProperties != nil && enabled("unevaluatedProperties") {
		steps = append(steps, &unevaluatedPropertiesStep{child: c.nodeFor(s.UnevaluatedProperties)})
	}
	if s.UnevaluatedItems != nil && enabled("unevaluatedItems") {
		steps = append(steps, &unevaluatedItemsStep{child: c.nodeFor(s.UnevaluatedItems)})
	}

	// 17. content keywords, when the effective mode is assertion
	if (s.ContentEncoding != nil || s.ContentMediaType != nil || s.ContentSchema != nil) &&
		enabled("contentEncoding") && c.assertsContent(dialect) {
		content := &contentStep{
			encoding:  s.ContentEncoding,
			mediaType: s.ContentMediaType,
		}
		if s.ContentSchema != nil {
			content.child = c.nodeFor(s.ContentSchema)
		}
		steps = append(steps, content)
	}

	node.hasRefSibling = hasRef && len(steps) > 1

	return steps
}

// nodesFor compiles a slice of subschemas.
func (c *Compiler) nodesFor(schemas []*Schema) []*ValidatorNode {
	nodes := make([]*ValidatorNode, 0, len(schemas))
	for _, schema := range schemas {
		if schema != nil {
			nodes = append(nodes, c.nodeFor(schema))
		}
	}
	return nodes
}

// trackingPass answers, per schema subtree, whether evaluated-property/item
// tracking or the dynamic scope is required at runtime. Subtrees without a
// restrictive unevaluatedProperties/unevaluatedItems compile with tracking
// omitted entirely.
type trackingPass struct {
	compiler *Compiler
	props    map[*Schema]bool
	items    map[*Schema]bool
	dynamic  map[*Schema]bool
}

func newTrackingPass(c *Compiler) *trackingPass {
	return &trackingPass{
		compiler: c,
		props:    make(map[*Schema]bool),
		items:    make(map[*Schema]bool),
		dynamic:  make(map[*Schema]bool),
	}
}

// restrictive reports whether an unevaluated* schema can reject anything.
// Boolean true accepts everything and needs no tracking.
func restrictive(s *Schema) bool {
	if s == nil {
		return false
	}
	return s.Boolean == nil || !*s.Boolean
}

func (p *trackingPass) needsPropTracking(s *Schema) bool {
	return p.scan(s, p.props, func(s *Schema) bool {
		return restrictive(s.UnevaluatedProperties)
	})
}

func (p *trackingPass) needsItemTracking(s *Schema) bool {
	return p.scan(s, p.items, func(s *Schema) bool {
		return restrictive(s.UnevaluatedItems)
	})
}

func (p *trackingPass) needsDynamicScope(s *Schema) bool {
	return p.scan(s, p.dynamic, func(s *Schema) bool {
		return s.DynamicRef != "" || s.RecursiveRef != ""
	})
}

// scan walks the in-place applicators of a subtree (including resolved ref
// targets), memoizing the answer per schema node. In-progress nodes answer
// false; if the condition holds anywhere on the cycle it is found before the
// walk closes it.
func (p *trackingPass) scan(s *Schema, memo map[*Schema]bool, cond func(*Schema) bool) bool {
	if s == nil {
		return false
	}
	if answer, ok := memo[s]; ok {
		return answer
	}
	memo[s] = false // in-progress marker; cycles answer false

	found := cond(s)
	if !found {
		children := []*Schema{
			s.ResolvedRef, s.ResolvedDynamicRef,
			s.Not, s.If, s.Then, s.Else,
			s.Items, s.Contains,
			s.AdditionalProperties, s.PropertyNames,
			s.UnevaluatedProperties, s.UnevaluatedItems,
		}
		for _, child := range children {
			if p.scan(child, memo, cond) {
				found = true
				break
			}
		}
		if !found {
			for _, list := range [][]*Schema{s.AllOf, s.AnyOf, s.OneOf, s.PrefixItems} {
				for _, child := range list {
					if p.scan(child, memo, cond) {
						found = true
						break
					}
				}
				if found {
					break
				}
			}
		}
		if !found {
			for _, child := range s.DependentSchemas {
				if p.scan(child, memo, cond) {
					found = true
					break
				}
			}
		}
		if !found && s.Properties != nil {
			for _, child := range *s.Properties {
				if p.scan(child, memo, cond) {
					found = true
					break
				}
			}
		}
		if !found && s.PatternProperties != nil {
			for _, child := range *s.PatternProperties {
				if p.scan(child, memo, cond) {
					found = true
					break
				}
			}
		}
	}

	memo[s] = found
	return found
}
