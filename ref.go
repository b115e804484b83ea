package jsonschema

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// recursiveAnchorName is the synthetic anchor under which $recursiveAnchor:true
// resources are published for dynamic-scope lookups.
const recursiveAnchorName = "__recursive__"

// resolveRef resolves a reference to another schema, either locally or
// globally, supporting $ref, $dynamicRef, and $recursiveRef targets.
func (s *Schema) resolveRef(ref string) (*Schema, error) {
	if ref == "#" {
		return s.getScopeSchema(), nil
	}

	if strings.HasPrefix(ref, "#") {
		return s.resolveAnchor(ref[1:])
	}

	// Resolve the full URL if ref is a relative URL
	if !isAbsoluteURI(ref) && s.baseURI != "" {
		ref = resolveRelativeURI(s.baseURI, ref)
	}

	return s.resolveRefWithFullURL(ref)
}

func (s *Schema) resolveAnchor(anchorName string) (*Schema, error) {
	var schema *Schema
	var err error

	if strings.HasPrefix(anchorName, "/") {
		schema, err = s.resolveJSONPointer(anchorName)
	} else {
		if schema, ok := s.anchors[anchorName]; ok {
			return schema, nil
		}

		if schema, ok := s.dynamicAnchors[anchorName]; ok {
			return schema, nil
		}
	}

	if schema == nil && s.parent != nil {
		return s.parent.resolveAnchor(anchorName)
	}

	return schema, err
}

// resolveRefWithFullURL resolves a full URL reference to another schema.
func (s *Schema) resolveRefWithFullURL(ref string) (*Schema, error) {
	root := s.getRootSchema()
	if resolved, err := root.getSchema(ref); err == nil {
		return resolved, nil
	}

	// If not found in the current document, look for the reference in the compiler.
	resolved, err := s.GetCompiler().GetSchema(ref)
	if err != nil {
		return nil, ErrReferenceResolution
	}
	return resolved, nil
}

// resolveJSONPointer resolves a JSON Pointer within the schema based on JSON Schema structure.
func (s *Schema) resolveJSONPointer(pointer string) (*Schema, error) {
	if pointer == "/" {
		return s, nil
	}

	// jsonpointer.Parse handles ~0 and ~1 escaping; URL percent encoding is
	// decoded separately per segment.
	segments := jsonpointer.Parse(pointer)
	currentSchema := s
	previousSegment := ""

	for i, segment := range segments {
		decodedSegment, err := url.PathUnescape(segment)
		if err != nil {
			return nil, ErrJSONPointerSegmentDecode
		}

		nextSchema, found := findSchemaInSegment(currentSchema, decodedSegment, previousSegment)
		if found {
			currentSchema = nextSchema
			previousSegment = decodedSegment
			continue
		}

		if !found && i == len(segments)-1 {
			return nil, ErrJSONPointerSegmentNotFound
		}

		previousSegment = decodedSegment
	}

	return currentSchema, nil
}

// findSchemaInSegment steps from a schema into the subschema position named by
// a pointer segment, using the preceding segment to know which keyword is
// being traversed.
func findSchemaInSegment(currentSchema *Schema, segment string, previousSegment string) (*Schema, bool) {
	switch previousSegment {
	case "properties":
		if currentSchema.Properties != nil {
			if schema, exists := (*currentSchema.Properties)[segment]; exists {
				return schema, true
			}
		}
	case "patternProperties":
		if currentSchema.PatternProperties != nil {
			if schema, exists := (*currentSchema.PatternProperties)[segment]; exists {
				return schema, true
			}
		}
	case "prefixItems":
		index, err := strconv.Atoi(segment)
		if err == nil && index >= 0 && index < len(currentSchema.PrefixItems) {
			return currentSchema.PrefixItems[index], true
		}
	case "$defs", "definitions":
		if defSchema, exists := currentSchema.Defs[segment]; exists {
			return defSchema, true
		}
	case "dependentSchemas":
		if depSchema, exists := currentSchema.DependentSchemas[segment]; exists {
			return depSchema, true
		}
	case "allOf", "anyOf", "oneOf":
		var list []*Schema
		switch previousSegment {
		case "allOf":
			list = currentSchema.AllOf
		case "anyOf":
			list = currentSchema.AnyOf
		case "oneOf":
			list = currentSchema.OneOf
		}
		index, err := strconv.Atoi(segment)
		if err == nil && index >= 0 && index < len(list) {
			return list[index], true
		}
	case "items":
		if currentSchema.Items != nil {
			return currentSchema.Items, true
		}
	}
	return nil, false
}

// resolveReferences resolves $ref/$dynamicRef/$recursiveRef throughout the tree.
// Failed resolutions leave the Resolved* fields nil; the compiler decides
// whether that is an error or grounds for a remote fetch.
func (s *Schema) resolveReferences() {
	s.walkRefs(func(schema *Schema) {
		schema.resolveOwnReferences()
	}, make(map[*Schema]bool))
}

// ResolveUnresolvedReferences retries resolution for refs that previously
// failed, after new schemas were added to the compiler.
func (s *Schema) ResolveUnresolvedReferences() {
	s.walkRefs(func(schema *Schema) {
		schema.resolveOwnReferences()
	}, make(map[*Schema]bool))
}

func (s *Schema) resolveOwnReferences() {
	if s.Ref != "" && s.ResolvedRef == nil {
		if resolved, err := s.resolveRef(s.Ref); err == nil {
			s.ResolvedRef = resolved
		}
	}

	if s.DynamicRef != "" && s.ResolvedDynamicRef == nil {
		if resolved, err := s.resolveRef(s.DynamicRef); err == nil {
			s.ResolvedDynamicRef = resolved
		}
	}

	if s.RecursiveRef != "" && s.ResolvedDynamicRef == nil {
		if resolved, err := s.resolveRef(s.RecursiveRef); err == nil {
			s.ResolvedDynamicRef = resolved
		}
	}
}

// walkRefs visits every schema node in the tree exactly once.
func (s *Schema) walkRefs(visit func(*Schema), visited map[*Schema]bool) {
	if s == nil || visited[s] {
		return
	}
	visited[s] = true

	visit(s)

	walkList := func(schemas []*Schema) {
		for _, schema := range schemas {
			schema.walkRefs(visit, visited)
		}
	}

	for _, defSchema := range s.Defs {
		defSchema.walkRefs(visit, visited)
	}
	if s.Properties != nil {
		for _, schema := range *s.Properties {
			schema.walkRefs(visit, visited)
		}
	}
	if s.PatternProperties != nil {
		for _, schema := range *s.PatternProperties {
			schema.walkRefs(visit, visited)
		}
	}
	for _, schema := range s.DependentSchemas {
		schema.walkRefs(visit, visited)
	}

	walkList(s.AllOf)
	walkList(s.AnyOf)
	walkList(s.OneOf)
	walkList(s.PrefixItems)

	s.Not.walkRefs(visit, visited)
	s.If.walkRefs(visit, visited)
	s.Then.walkRefs(visit, visited)
	s.Else.walkRefs(visit, visited)
	s.Items.walkRefs(visit, visited)
	s.Contains.walkRefs(visit, visited)
	s.AdditionalProperties.walkRefs(visit, visited)
	s.PropertyNames.walkRefs(visit, visited)
	s.UnevaluatedProperties.walkRefs(visit, visited)
	s.UnevaluatedItems.walkRefs(visit, visited)
	s.ContentSchema.walkRefs(visit, visited)
}

// GetUnresolvedReferenceURIs returns references in this tree whose targets are
// still unresolved, as absolute URIs where a base is known.
func (s *Schema) GetUnresolvedReferenceURIs() []string {
	var unresolved []string
	s.walkRefs(func(schema *Schema) {
		collect := func(ref string) {
			if !isAbsoluteURI(ref) && schema.baseURI != "" && !strings.HasPrefix(ref, "#") {
				ref = resolveRelativeURI(schema.baseURI, ref)
			}
			unresolved = append(unresolved, ref)
		}
		if schema.Ref != "" && schema.ResolvedRef == nil {
			collect(schema.Ref)
		}
		if schema.DynamicRef != "" && schema.ResolvedDynamicRef == nil {
			collect(schema.DynamicRef)
		}
		if schema.RecursiveRef != "" && schema.ResolvedDynamicRef == nil {
			collect(schema.RecursiveRef)
		}
	}, make(map[*Schema]bool))
	return unresolved
}

// unresolvedRefErrors reports every still-unresolved reference in the tree as
// a compile error value.
func (s *Schema) unresolvedRefErrors() []error {
	var errs []error
	s.walkRefs(func(schema *Schema) {
		if schema.Ref != "" && schema.ResolvedRef == nil {
			errs = append(errs, &UnresolvedRefError{Ref: schema.Ref, Location: schema.GetSchemaLocation("")})
		}
		if schema.DynamicRef != "" && schema.ResolvedDynamicRef == nil {
			errs = append(errs, &UnresolvedRefError{Ref: schema.DynamicRef, Location: schema.GetSchemaLocation("")})
		}
		if schema.RecursiveRef != "" && schema.ResolvedDynamicRef == nil {
			errs = append(errs, &UnresolvedRefError{Ref: schema.RecursiveRef, Location: schema.GetSchemaLocation("")})
		}
	}, make(map[*Schema]bool))
	return errs
}
