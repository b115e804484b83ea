package jsonschema

import (
	"bytes"
	"errors"
	"regexp"
	"slices"
	"strconv"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/kaptinlin/jsonpointer"
)

// Schema represents a parsed JSON Schema across drafts 4 through 2020-12,
// containing all metadata and validation properties defined by the
// specifications. Schemas are immutable after compilation.
type Schema struct {
	compiledPatterns map[string]*regexp.Regexp // Cached compiled regular expressions for pattern properties.
	compiler         *Compiler                 // Reference to the associated Compiler instance.
	parent           *Schema                   // Parent schema for hierarchical resolution.
	uri              string                    // Internal schema identifier resolved during compilation.
	baseURI          string                    // Base URI for resolving relative references within the schema.
	anchors          map[string]*Schema        // Anchors for quick lookup of internal schema references.
	dynamicAnchors   map[string]*Schema        // Dynamic anchors published by this resource.
	schemas          map[string]*Schema        // Cache of embedded resources keyed by URI (root only).
	stringPattern    *regexp.Regexp            // Compiled regex for the pattern keyword.
	node             *ValidatorNode            // Compiled validator for this schema node.
	dialect          *Dialect                  // Dialect of the owning document (root only).

	ID     string  `json:"$id,omitempty"`     // Public identifier for the schema.
	Schema string  `json:"$schema,omitempty"` // URI indicating the specification the schema conforms to.
	Format *string `json:"format,omitempty"`  // Format hint for string data, e.g., "email" or "date-time".

	// Schema reference keywords, see https://json-schema.org/draft/2020-12/json-schema-core#ref
	Ref                string             `json:"$ref,omitempty"`             // Reference to another schema.
	DynamicRef         string             `json:"$dynamicRef,omitempty"`      // Reference resolved against the dynamic scope.
	RecursiveRef       string             `json:"$recursiveRef,omitempty"`    // 2019-09 predecessor of $dynamicRef.
	Anchor             string             `json:"$anchor,omitempty"`          // Plain-name anchor within the resource.
	DynamicAnchor      string             `json:"$dynamicAnchor,omitempty"`   // Anchor visible to dynamic resolution.
	RecursiveAnchor    *bool              `json:"$recursiveAnchor,omitempty"` // 2019-09 predecessor of $dynamicAnchor.
	Defs               map[string]*Schema `json:"$defs,omitempty"`            // An object containing schema definitions.
	ResolvedRef        *Schema            `json:"-"`                          // Resolved schema for $ref
	ResolvedDynamicRef *Schema            `json:"-"`                          // Statically resolved fallback for $dynamicRef/$recursiveRef

	// Boolean JSON Schemas, see https://json-schema.org/draft/2020-12/json-schema-core#name-boolean-json-schemas
	Boolean *bool `json:"-"` // Boolean schema, used for quick validation.

	// Applying subschemas with logical keywords
	AllOf []*Schema `json:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
	Not   *Schema   `json:"not,omitempty"`

	// Applying subschemas conditionally
	If               *Schema            `json:"if,omitempty"`
	Then             *Schema            `json:"then,omitempty"`
	Else             *Schema            `json:"else,omitempty"`
	DependentSchemas map[string]*Schema `json:"dependentSchemas,omitempty"`

	// Applying subschemas to arrays. The array form of items (with
	// additionalItems) from drafts up to 2019-09 is canonicalized to
	// PrefixItems + Items at parse time.
	PrefixItems []*Schema `json:"prefixItems,omitempty"`
	Items       *Schema   `json:"items,omitempty"`
	Contains    *Schema   `json:"contains,omitempty"`

	// Applying subschemas to objects
	Properties           *SchemaMap `json:"properties,omitempty"`
	PatternProperties    *SchemaMap `json:"patternProperties,omitempty"`
	AdditionalProperties *Schema    `json:"additionalProperties,omitempty"`
	PropertyNames        *Schema    `json:"propertyNames,omitempty"`

	// Any validation keywords
	Type  SchemaType  `json:"type,omitempty"`
	Enum  []any       `json:"enum,omitempty"`
	Const *ConstValue `json:"const,omitempty"`

	// Numeric validation keywords. In draft-4 exclusiveMinimum/exclusiveMaximum
	// are booleans modifying minimum/maximum; the parser folds that form into
	// the Exclusive*Flag fields.
	MultipleOf          *Rat `json:"multipleOf,omitempty"`
	Maximum             *Rat `json:"maximum,omitempty"`
	ExclusiveMaximum    *Rat `json:"exclusiveMaximum,omitempty"`
	Minimum             *Rat `json:"minimum,omitempty"`
	ExclusiveMinimum    *Rat `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaxFlag    bool `json:"-"`
	ExclusiveMinFlag    bool `json:"-"`

	// String validation keywords
	MaxLength *float64 `json:"maxLength,omitempty"`
	MinLength *float64 `json:"minLength,omitempty"`
	Pattern   *string  `json:"pattern,omitempty"`

	// Array validation keywords
	MaxItems    *float64 `json:"maxItems,omitempty"`
	MinItems    *float64 `json:"minItems,omitempty"`
	UniqueItems *bool    `json:"uniqueItems,omitempty"`
	MaxContains *float64 `json:"maxContains,omitempty"`
	MinContains *float64 `json:"minContains,omitempty"`

	UnevaluatedItems *Schema `json:"unevaluatedItems,omitempty"`

	// Object validation keywords
	MaxProperties     *float64            `json:"maxProperties,omitempty"`
	MinProperties     *float64            `json:"minProperties,omitempty"`
	Required          []string            `json:"required,omitempty"`
	DependentRequired map[string][]string `json:"dependentRequired,omitempty"`

	UnevaluatedProperties *Schema `json:"unevaluatedProperties,omitempty"`

	// Content validation keywords
	ContentEncoding  *string `json:"contentEncoding,omitempty"`
	ContentMediaType *string `json:"contentMediaType,omitempty"`
	ContentSchema    *Schema `json:"contentSchema,omitempty"`

	// Meta-data keywords
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Default     any     `json:"default,omitempty"`
	Deprecated  *bool   `json:"deprecated,omitempty"`
	ReadOnly    *bool   `json:"readOnly,omitempty"`
	WriteOnly   *bool   `json:"writeOnly,omitempty"`
	Examples    []any   `json:"examples,omitempty"`
}

// newSchema parses JSON schema data and returns a Schema object.
func newSchema(jsonSchema []byte) (*Schema, error) {
	schema := &Schema{}

	if err := json.Unmarshal(jsonSchema, schema); err != nil {
		return nil, err
	}

	return schema, nil
}

// initializeSchema sets up the schema structure, resolves URIs, registers
// anchors and dynamic anchors, and initializes nested schemas.
func (s *Schema) initializeSchema(compiler *Compiler, parent *Schema) {
	s.initializeSchemaCore(compiler, parent, true)
}

// initializeSchemaWithoutReferences sets up the schema structure without resolving references.
// Used by CompileBatch to defer reference resolution until all schemas are compiled.
func (s *Schema) initializeSchemaWithoutReferences(compiler *Compiler, parent *Schema) {
	s.initializeSchemaCore(compiler, parent, false)
}

func (s *Schema) initializeSchemaCore(compiler *Compiler, parent *Schema, resolveRefs bool) {
	if compiler != nil {
		s.compiler = compiler
	}
	s.parent = parent

	effectiveCompiler := s.GetCompiler()

	parentBaseURI := s.getParentBaseURI()
	if parentBaseURI == "" {
		parentBaseURI = effectiveCompiler.DefaultBaseURI
	}
	if s.ID != "" {
		if doc, frag := splitRef(s.ID); doc == "" && frag != "" {
			// Legacy plain-fragment $id ("#name") declares an anchor on the
			// enclosing resource.
			s.setAnchor(frag)
			root := s.getRootSchema()
			if root.anchors == nil {
				root.anchors = make(map[string]*Schema)
			}
			if _, ok := root.anchors[frag]; !ok {
				root.anchors[frag] = s
			}
			s.baseURI = parentBaseURI
		} else if isAbsoluteURI(s.ID) {
			s.uri = normalizeURI(s.ID)
			s.baseURI = getBaseURI(s.uri)
		} else {
			resolvedURL := resolveRelativeURI(parentBaseURI, s.ID)
			s.uri = resolvedURL
			s.baseURI = getBaseURI(resolvedURL)
		}
	} else {
		s.baseURI = parentBaseURI
	}

	if s.baseURI == "" {
		if s.uri != "" && isValidURI(s.uri) {
			s.baseURI = getBaseURI(s.uri)
		}
	}

	if s.Anchor != "" {
		s.setAnchor(s.Anchor)
	}

	if s.DynamicAnchor != "" {
		s.setDynamicAnchor(s.DynamicAnchor)
	}

	if s.RecursiveAnchor != nil && *s.RecursiveAnchor {
		// $recursiveAnchor:true registers the resource root for "#" lookups.
		s.setDynamicAnchor(recursiveAnchorName)
	}

	if s.uri != "" && isValidURI(s.uri) {
		root := s.getRootSchema()
		root.setSchema(s.uri, s)
	}

	initializeNestedSchemasCore(s, compiler, resolveRefs)
	if resolveRefs {
		s.resolveReferences()
	}
}

// initializeNestedSchemasCore initializes all nested schemas in subschema
// positions. Value positions (const, enum, default, examples) are not schemas
// and are never descended into.
func initializeNestedSchemasCore(s *Schema, compiler *Compiler, resolveRefs bool) {
	initChild := func(child *Schema) {
		if child != nil {
			child.initializeSchemaCore(compiler, s, resolveRefs)
		}
	}

	for _, def := range s.Defs {
		initChild(def)
	}
	for _, schema := range s.AllOf {
		initChild(schema)
	}
	for _, schema := range s.AnyOf {
		initChild(schema)
	}
	for _, schema := range s.OneOf {
		initChild(schema)
	}

	initChild(s.Not)
	initChild(s.If)
	initChild(s.Then)
	initChild(s.Else)
	for _, depSchema := range s.DependentSchemas {
		initChild(depSchema)
	}

	for _, item := range s.PrefixItems {
		initChild(item)
	}
	initChild(s.Items)
	initChild(s.Contains)
	initChild(s.AdditionalProperties)
	if s.Properties != nil {
		for _, prop := range *s.Properties {
			initChild(prop)
		}
	}
	if s.PatternProperties != nil {
		for _, prop := range *s.PatternProperties {
			initChild(prop)
		}
	}
	initChild(s.UnevaluatedProperties)
	initChild(s.UnevaluatedItems)
	initChild(s.ContentSchema)
	initChild(s.PropertyNames)
}

// validateKeywords validates keyword usage that the struct parse cannot catch,
// walking the schema tree and reporting every offending keyword path.
func (s *Schema) validateKeywords() error {
	if s == nil {
		return nil
	}

	visited := make(map[*Schema]bool)
	errs := s.collectKeywordErrors(nil, visited)
	if len(errs) == 0 {
		return nil
	}

	combined := append([]error{ErrSchemaInvalid}, errs...)
	return errors.Join(combined...)
}

var validTypeNames = map[string]struct{}{
	"null": {}, "boolean": {}, "object": {}, "array": {},
	"number": {}, "string": {}, "integer": {},
}

// collectKeywordErrors recursively collects keyword misuse and regex
// compilation errors from the schema tree, tracking the JSON Pointer path.
func (s *Schema) collectKeywordErrors(pathTokens []string, visited map[*Schema]bool) []error {
	if s == nil || visited[s] {
		return nil
	}
	visited[s] = true

	var errs []error

	location := func(tokens ...string) string {
		return "#" + jsonpointer.Format(slices.Concat(pathTokens, tokens)...)
	}

	for _, typeName := range s.Type {
		if _, ok := validTypeNames[typeName]; !ok {
			errs = append(errs, &SchemaInvalidError{
				Keyword:  "type",
				Location: location("type"),
				Detail:   "unknown type " + strconv.Quote(typeName),
			})
		}
	}

	if s.MultipleOf != nil && s.MultipleOf.Sign() <= 0 {
		errs = append(errs, &SchemaInvalidError{
			Keyword:  "multipleOf",
			Location: location("multipleOf"),
			Detail:   "must be strictly greater than 0",
		})
	}

	for keyword, bound := range map[string]*float64{
		"minLength": s.MinLength, "maxLength": s.MaxLength,
		"minItems": s.MinItems, "maxItems": s.MaxItems,
		"minProperties": s.MinProperties, "maxProperties": s.MaxProperties,
		"minContains": s.MinContains, "maxContains": s.MaxContains,
	} {
		if bound != nil && *bound < 0 {
			errs = append(errs, &SchemaInvalidError{
				Keyword:  keyword,
				Location: location(keyword),
				Detail:   "must be a non-negative integer",
			})
		}
	}

	// Validate pattern field
	if s.Pattern != nil {
		if err := compilePatternSyntax(*s.Pattern); err != nil {
			errs = append(errs, &RegexPatternError{
				Keyword:  "pattern",
				Location: location("pattern"),
				Pattern:  *s.Pattern,
				Err:      err,
			})
		}
	}

	// Validate patternProperties keys and recurse into values
	if s.PatternProperties != nil {
		for pattern, schema := range *s.PatternProperties {
			patternPropTokens := slices.Concat(pathTokens, []string{"patternProperties", pattern})
			if err := compilePatternSyntax(pattern); err != nil {
				errs = append(errs, &RegexPatternError{
					Keyword:  "patternProperties",
					Location: "#" + jsonpointer.Format(patternPropTokens...),
					Pattern:  pattern,
					Err:      err,
				})
				continue
			}
			errs = append(errs, schema.collectKeywordErrors(patternPropTokens, visited)...)
		}
	}

	addSchema := func(child *Schema, token string) {
		childTokens := slices.Concat(pathTokens, []string{token})
		errs = append(errs, child.collectKeywordErrors(childTokens, visited)...)
	}

	addSchemaMap := func(m map[string]*Schema, prefix string) {
		for key, schema := range m {
			mapTokens := slices.Concat(pathTokens, []string{prefix, key})
			errs = append(errs, schema.collectKeywordErrors(mapTokens, visited)...)
		}
	}

	addSchemaSlice := func(children []*Schema, prefix string) {
		for i, child := range children {
			sliceTokens := slices.Concat(pathTokens, []string{prefix, strconv.Itoa(i)})
			errs = append(errs, child.collectKeywordErrors(sliceTokens, visited)...)
		}
	}

	if s.Properties != nil {
		addSchemaMap(map[string]*Schema(*s.Properties), "properties")
	}
	addSchemaMap(s.Defs, "$defs")
	addSchemaMap(s.DependentSchemas, "dependentSchemas")

	addSchema(s.AdditionalProperties, "additionalProperties")
	addSchema(s.UnevaluatedProperties, "unevaluatedProperties")
	addSchema(s.UnevaluatedItems, "unevaluatedItems")
	addSchema(s.PropertyNames, "propertyNames")
	addSchema(s.ContentSchema, "contentSchema")
	addSchema(s.Items, "items")
	addSchema(s.Contains, "contains")
	addSchema(s.Not, "not")
	addSchema(s.If, "if")
	addSchema(s.Then, "then")
	addSchema(s.Else, "else")

	addSchemaSlice(s.PrefixItems, "prefixItems")
	addSchemaSlice(s.AllOf, "allOf")
	addSchemaSlice(s.AnyOf, "anyOf")
	addSchemaSlice(s.OneOf, "oneOf")

	return errs
}

// compilePatternSyntax validates that a regex pattern is valid Go RE2 syntax.
func compilePatternSyntax(pattern string) error {
	if pattern == "" {
		return nil
	}
	_, err := regexp.Compile(pattern)
	return err
}

// compilePatterns interns the compiled regexes for patternProperties and pattern.
func (s *Schema) compilePatterns() {
	if s.PatternProperties != nil && s.compiledPatterns == nil {
		s.compiledPatterns = make(map[string]*regexp.Regexp, len(*s.PatternProperties))
		for pattern := range *s.PatternProperties {
			if re, err := regexp.Compile(pattern); err == nil {
				s.compiledPatterns[pattern] = re
			}
		}
	}
	if s.Pattern != nil && s.stringPattern == nil {
		if re, err := regexp.Compile(*s.Pattern); err == nil {
			s.stringPattern = re
		}
	}
}

// setAnchor creates or updates the anchor mapping for the current schema and
// propagates it to the enclosing resource.
func (s *Schema) setAnchor(anchor string) {
	if s.anchors == nil {
		s.anchors = make(map[string]*Schema)
	}
	s.anchors[anchor] = s

	root := s.getRootSchema()
	if root.anchors == nil {
		root.anchors = make(map[string]*Schema)
	}

	// Only set anchor at root level if it's in the same scope as root.
	if s.ID == "" || s.ID == root.ID {
		if _, ok := root.anchors[anchor]; !ok {
			root.anchors[anchor] = s
		}
	}
}

// setDynamicAnchor publishes a dynamic anchor on the enclosing schema resource.
func (s *Schema) setDynamicAnchor(anchor string) {
	if s.dynamicAnchors == nil {
		s.dynamicAnchors = make(map[string]*Schema)
	}
	if _, ok := s.dynamicAnchors[anchor]; !ok {
		s.dynamicAnchors[anchor] = s
	}

	scope := s.getScopeSchema()
	if scope.dynamicAnchors == nil {
		scope.dynamicAnchors = make(map[string]*Schema)
	}

	if _, ok := scope.dynamicAnchors[anchor]; !ok {
		scope.dynamicAnchors[anchor] = s
	}
}

// setSchema adds a schema to the internal schema cache, using the provided URI as the key.
func (s *Schema) setSchema(uri string, schema *Schema) *Schema {
	if s.schemas == nil {
		s.schemas = make(map[string]*Schema)
	}

	s.schemas[uri] = schema
	return s
}

func (s *Schema) getSchema(ref string) (*Schema, error) {
	baseURI, anchor := splitRef(ref)

	if schema, exists := s.schemas[baseURI]; exists {
		if baseURI == ref {
			return schema, nil
		}
		return schema.resolveAnchor(anchor)
	}

	return nil, ErrReferenceResolution
}

// GetSchemaURI returns the resolved URI for the schema, or an empty string if no URI is defined.
func (s *Schema) GetSchemaURI() string {
	if s.uri != "" {
		return s.uri
	}
	root := s.getRootSchema()
	if root.uri != "" {
		return root.uri
	}

	return ""
}

// GetSchemaLocation returns the schema location with the given fragment.
func (s *Schema) GetSchemaLocation(anchor string) string {
	uri := s.GetSchemaURI()

	return uri + "#" + anchor
}

// getRootSchema returns the highest-level parent schema, serving as the root in the schema tree.
func (s *Schema) getRootSchema() *Schema {
	if s.parent != nil {
		return s.parent.getRootSchema()
	}

	return s
}

// getScopeSchema returns the nearest enclosing schema resource: the closest
// schema up the parent chain carrying an $id, or the document root.
func (s *Schema) getScopeSchema() *Schema {
	if s.ID != "" {
		return s
	}
	if s.parent != nil {
		return s.parent.getScopeSchema()
	}

	return s
}

// isResourceRoot reports whether this schema starts a new schema resource.
func (s *Schema) isResourceRoot() bool {
	return s.parent == nil || (s.ID != "" && s.uri != "")
}

// getParentBaseURI returns the base URI from the nearest parent schema that has one defined.
func (s *Schema) getParentBaseURI() string {
	for p := s.parent; p != nil; p = p.parent {
		if p.baseURI != "" {
			return p.baseURI
		}
	}
	return ""
}

// MarshalJSON implements json.Marshaler.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s.Boolean != nil {
		return json.Marshal(s.Boolean, json.Deterministic(true))
	}

	type Alias Schema
	alias := (*Alias)(s)

	data, err := json.Marshal(alias, json.Deterministic(true))
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	// The const field needs explicit handling so that const:null round-trips.
	if s.Const != nil {
		result["const"] = s.Const.Value
	}

	return json.Marshal(result, json.Deterministic(true))
}

// UnmarshalJSON handles unmarshaling JSON data into the Schema type,
// canonicalizing the cross-draft keyword forms.
func (s *Schema) UnmarshalJSON(data []byte) error {
	// A schema may be the boolean true/false
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		s.Boolean = &b
		return nil
	}

	// Intercept the polymorphic and draft-dependent keywords.
	type Alias Schema
	aux := &struct {
		Items            jsontext.Value `json:"items,omitempty"`
		AdditionalItems  *Schema        `json:"additionalItems,omitempty"`
		ExclusiveMinimum jsontext.Value `json:"exclusiveMinimum,omitempty"`
		ExclusiveMaximum jsontext.Value `json:"exclusiveMaximum,omitempty"`
		LegacyID         string         `json:"id,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(s),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	// Draft-4 spells $id as id.
	if s.ID == "" && aux.LegacyID != "" {
		s.ID = aux.LegacyID
	}

	// "items" polymorphism: the array form (tuple validation, drafts up to
	// 2019-09) maps to PrefixItems with additionalItems taking the singular
	// items role; the object form is 2020-12 list validation.
	if len(aux.Items) > 0 {
		trimmed := bytes.TrimSpace(aux.Items)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(aux.Items, &s.PrefixItems); err != nil {
				return err
			}
			if aux.AdditionalItems != nil {
				s.Items = aux.AdditionalItems
			}
		} else {
			if err := json.Unmarshal(aux.Items, &s.Items); err != nil {
				return err
			}
		}
	}

	// Draft-4 boolean exclusiveMinimum/exclusiveMaximum modify minimum/maximum.
	if err := unmarshalExclusive(aux.ExclusiveMinimum, &s.ExclusiveMinimum, &s.ExclusiveMinFlag); err != nil {
		return err
	}
	if err := unmarshalExclusive(aux.ExclusiveMaximum, &s.ExclusiveMaximum, &s.ExclusiveMaxFlag); err != nil {
		return err
	}

	var raw map[string]jsontext.Value
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	// Backward compatibility: "definitions" (draft-7 and earlier) -> "$defs".
	if defsData, ok := raw["definitions"]; ok {
		if s.Defs == nil {
			var defs map[string]*Schema
			if err := json.Unmarshal(defsData, &defs); err != nil {
				return err
			}
			s.Defs = defs
		}
	}

	// Legacy "dependencies" splits into dependentRequired (string-array form)
	// and dependentSchemas (schema form).
	if depsData, ok := raw["dependencies"]; ok {
		if err := s.unmarshalDependencies(depsData); err != nil {
			return err
		}
	}

	// const requires special handling so that const:null is distinguishable
	// from an absent const.
	if constData, ok := raw["const"]; ok {
		if s.Const == nil {
			s.Const = &ConstValue{}
		}
		if err := s.Const.UnmarshalJSON(constData); err != nil {
			return err
		}
	}

	return nil
}

// unmarshalExclusive decodes an exclusiveMinimum/exclusiveMaximum value that
// may be either a number (draft 6+) or a boolean (draft 4).
func unmarshalExclusive(data jsontext.Value, bound **Rat, flag *bool) error {
	if len(data) == 0 {
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*flag = b
		return nil
	}
	r := &Rat{}
	if err := r.UnmarshalJSON(data); err != nil {
		return err
	}
	*bound = r
	return nil
}

// unmarshalDependencies splits the legacy dependencies keyword into its
// modern halves without overwriting explicit dependentRequired/dependentSchemas.
func (s *Schema) unmarshalDependencies(data jsontext.Value) error {
	var deps map[string]jsontext.Value
	if err := json.Unmarshal(data, &deps); err != nil {
		return err
	}
	for name, dep := range deps {
		var names []string
		if err := json.Unmarshal(dep, &names); err == nil {
			if s.DependentRequired == nil {
				s.DependentRequired = make(map[string][]string)
			}
			if _, exists := s.DependentRequired[name]; !exists {
				s.DependentRequired[name] = names
			}
			continue
		}
		var depSchema *Schema
		if err := json.Unmarshal(dep, &depSchema); err != nil {
			return err
		}
		if s.DependentSchemas == nil {
			s.DependentSchemas = make(map[string]*Schema)
		}
		if _, exists := s.DependentSchemas[name]; !exists {
			s.DependentSchemas[name] = depSchema
		}
	}
	return nil
}

// SchemaMap represents a map of string keys to *Schema values, used primarily
// for properties and patternProperties.
type SchemaMap map[string]*Schema

// MarshalJSON ensures that SchemaMap serializes properly as a JSON object.
func (sm SchemaMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]*Schema(sm), json.Deterministic(true))
}

// UnmarshalJSON parses JSON objects into SchemaMap.
func (sm *SchemaMap) UnmarshalJSON(data []byte) error {
	m := make(map[string]*Schema)
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*sm = SchemaMap(m)
	return nil
}

// SchemaType holds a set of type names, accommodating schemas that permit
// multiple types.
type SchemaType []string

// MarshalJSON customizes the JSON serialization of SchemaType.
func (st SchemaType) MarshalJSON() ([]byte, error) {
	if len(st) == 1 {
		return json.Marshal(st[0])
	}
	return json.Marshal([]string(st))
}

// UnmarshalJSON customizes the JSON deserialization into SchemaType.
func (st *SchemaType) UnmarshalJSON(data []byte) error {
	var singleType string
	if err := json.Unmarshal(data, &singleType); err == nil {
		*st = SchemaType{singleType}
		return nil
	}

	var multiType []string
	if err := json.Unmarshal(data, &multiType); err == nil {
		*st = SchemaType(multiType)
		return nil
	}

	return ErrInvalidSchemaType
}

// ConstValue represents a constant value in a JSON Schema.
type ConstValue struct {
	Value any
	IsSet bool
}

// UnmarshalJSON handles unmarshaling a JSON value into the ConstValue type.
func (cv *ConstValue) UnmarshalJSON(data []byte) error {
	if cv == nil {
		return ErrNilConstValue
	}

	cv.IsSet = true

	if string(data) == "null" {
		cv.Value = nil
		return nil
	}

	return json.Unmarshal(data, &cv.Value)
}

// MarshalJSON handles marshaling the ConstValue type back to JSON.
func (cv ConstValue) MarshalJSON() ([]byte, error) {
	if cv.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(cv.Value)
}

// SetCompiler sets a custom Compiler for the Schema and returns the Schema itself.
func (s *Schema) SetCompiler(compiler *Compiler) *Schema {
	s.compiler = compiler
	return s
}

// GetCompiler gets the effective Compiler for the Schema.
// Lookup order: current Schema -> parent Schema -> defaultCompiler.
func (s *Schema) GetCompiler() *Compiler {
	if s.compiler != nil {
		return s.compiler
	}

	if s.parent != nil {
		return s.parent.GetCompiler()
	}

	return defaultCompiler
}
