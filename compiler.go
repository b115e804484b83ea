package jsonschema

import (
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-json-experiment/json"

	"github.com/goccy/go-yaml"
)

// FormatAssertionMode controls whether format validates or merely annotates.
type FormatAssertionMode int

const (
	// FormatDefault follows the dialect: drafts up to 7 assert, 2019-09 and
	// 2020-12 annotate unless the format-assertion vocabulary is active.
	FormatDefault FormatAssertionMode = iota
	// FormatAlways asserts format regardless of dialect.
	FormatAlways
	// FormatNever treats format as annotation regardless of dialect.
	FormatNever
)

// ContentAssertionMode controls whether the content keywords validate.
type ContentAssertionMode int

const (
	// ContentDefault follows the dialect: draft 7 asserts, later drafts annotate.
	ContentDefault ContentAssertionMode = iota
	// ContentOn asserts the content keywords regardless of dialect.
	ContentOn
	// ContentOff treats the content keywords as annotations.
	ContentOff
)

// FormatDef defines a custom format validation rule.
type FormatDef struct {
	// Type specifies which JSON Schema type this format applies to (optional).
	// Empty string means the format applies to all types.
	Type string

	// Validate is the validation function.
	Validate func(any) bool
}

// RemoteLoader maps a URI to a raw schema document. CompileAsync walks the
// unresolved-reference closure through it breadth-first.
type RemoteLoader func(ctx context.Context, uri string) ([]byte, error)

// Compiler manages schema compilation: dialect selection, reference
// resolution, remote registries, and the cache of compiled validators.
type Compiler struct {
	mu             sync.RWMutex
	schemas        map[string]*Schema             // Cache of compiled schemas by URI.
	remoteDocs     map[string]map[string]any      // Raw remote documents (meta-schema detection).
	unresolvedRefs map[string][]*Schema           // Schemas waiting on a URI, by URI.
	nodes          map[*Schema]*ValidatorNode     // Compiled validators keyed by schema identity.
	Decoders       map[string]func(string) ([]byte, error)
	MediaTypes     map[string]func([]byte) (any, error)
	Loaders        map[string]func(url string) (io.ReadCloser, error)
	DefaultBaseURI string
	AssertFormat   bool // Deprecated knob kept for compatibility; maps to FormatAlways.

	formatAssertion     FormatAssertionMode
	contentAssertion    ContentAssertionMode
	defaultDialect      *Dialect
	legacyRef           *bool // Overrides the dialect's $ref-siblings policy when set.
	allowUnresolvedRefs bool
	coercion            coercionConfig
	remoteLoader        RemoteLoader

	jsonEncoder func(v any) ([]byte, error)
	jsonDecoder func(data []byte, v any) error

	customFormats   map[string]*FormatDef
	customFormatsRW sync.RWMutex
}

// NewCompiler creates a new Compiler instance and initializes it with default settings.
func NewCompiler() *Compiler {
	compiler := &Compiler{
		schemas:        make(map[string]*Schema),
		remoteDocs:     make(map[string]map[string]any),
		unresolvedRefs: make(map[string][]*Schema),
		nodes:          make(map[*Schema]*ValidatorNode),
		Decoders:       make(map[string]func(string) ([]byte, error)),
		MediaTypes:     make(map[string]func([]byte) (any, error)),
		Loaders:        make(map[string]func(url string) (io.ReadCloser, error)),
		customFormats:  make(map[string]*FormatDef),

		jsonEncoder: func(v any) ([]byte, error) { return json.Marshal(v) },
		jsonDecoder: func(data []byte, v any) error { return json.Unmarshal(data, v) },
	}
	compiler.initDefaults()
	return compiler
}

// WithEncoderJSON configures a custom JSON encoder implementation.
func (c *Compiler) WithEncoderJSON(encoder func(v any) ([]byte, error)) *Compiler {
	c.jsonEncoder = encoder
	return c
}

// WithDecoderJSON configures a custom JSON decoder implementation.
func (c *Compiler) WithDecoderJSON(decoder func(data []byte, v any) error) *Compiler {
	c.jsonDecoder = decoder
	return c
}

// Compile compiles a JSON schema document into an executable validator and
// caches it. The schema's own $id keys the cache; a provided URI is used only
// when the document has no $id.
func (c *Compiler) Compile(jsonSchema []byte, uris ...string) (*Schema, error) {
	schema, err := newSchema(jsonSchema)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaCompilation, err)
	}

	if schema.ID == "" && len(uris) > 0 {
		schema.ID = uris[0]
	}

	uri := schema.ID

	if uri != "" && isValidURI(uri) {
		schema.uri = normalizeURI(uri)

		c.mu.RLock()
		existingSchema, exists := c.schemas[schema.uri]
		c.mu.RUnlock()

		if exists {
			return existingSchema, nil
		}
	}

	dialect, err := c.detectDialect(schema.Schema)
	if err != nil {
		return nil, err
	}

	schema.initializeSchema(c, nil)

	if err := schema.validateKeywords(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if schema.uri != "" && isValidURI(schema.uri) {
		c.schemas[schema.uri] = schema
	}

	c.trackUnresolvedReferences(schema)

	// If this schema has a URI, previously compiled schemas may be waiting on it.
	var schemasToResolve []*Schema
	if schema.uri != "" {
		if waitingSchemas, exists := c.unresolvedRefs[schema.uri]; exists {
			schemasToResolve = make([]*Schema, len(waitingSchemas))
			copy(schemasToResolve, waitingSchemas)
			delete(c.unresolvedRefs, schema.uri)
		}
	}
	c.mu.Unlock()

	for _, waitingSchema := range schemasToResolve {
		waitingSchema.ResolveUnresolvedReferences()
		c.mu.Lock()
		c.trackUnresolvedReferences(waitingSchema)
		c.mu.Unlock()
	}

	if !c.allowUnresolvedRefs && c.remoteLoader == nil {
		if errs := schema.unresolvedRefErrors(); len(errs) > 0 {
			return nil, errs[0]
		}
	}

	c.compileValidator(schema, dialect)

	return schema, nil
}

// MustCompile is like Compile but panics on error, for static schemas.
func (c *Compiler) MustCompile(jsonSchema []byte, uris ...string) *Schema {
	schema, err := c.Compile(jsonSchema, uris...)
	if err != nil {
		panic(err)
	}
	return schema
}

// CompileAsync compiles a schema and resolves its remote reference closure
// breadth-first through the registered RemoteLoader. The context is honored at
// every fetch boundary.
func (c *Compiler) CompileAsync(ctx context.Context, jsonSchema []byte, uris ...string) (*Schema, error) {
	if c.remoteLoader == nil {
		return c.Compile(jsonSchema, uris...)
	}

	prevAllow := c.allowUnresolvedRefs
	c.allowUnresolvedRefs = true
	schema, err := c.Compile(jsonSchema, uris...)
	c.allowUnresolvedRefs = prevAllow
	if err != nil {
		return nil, err
	}

	fetched := make(map[string]bool)
	queue := dedupeURIs(schema.GetUnresolvedReferenceURIs())

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		uri := queue[0]
		queue = queue[1:]
		base, _ := splitRef(uri)
		if base == "" || fetched[base] {
			continue
		}
		fetched[base] = true

		c.mu.RLock()
		_, known := c.schemas[base]
		c.mu.RUnlock()
		if known {
			continue
		}

		data, err := c.remoteLoader(ctx, base)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrNetworkFetch, base, err)
		}

		prevAllow := c.allowUnresolvedRefs
		c.allowUnresolvedRefs = true
		remote, err := c.Compile(data, base)
		c.allowUnresolvedRefs = prevAllow
		if err != nil {
			return nil, err
		}

		schema.ResolveUnresolvedReferences()
		queue = append(queue, dedupeURIs(remote.GetUnresolvedReferenceURIs())...)
		queue = append(queue, dedupeURIs(schema.GetUnresolvedReferenceURIs())...)
	}

	if !c.allowUnresolvedRefs {
		if errs := schema.unresolvedRefErrors(); len(errs) > 0 {
			return nil, errs[0]
		}
	}

	return schema, nil
}

func dedupeURIs(uris []string) []string {
	seen := make(map[string]bool, len(uris))
	out := uris[:0]
	for _, uri := range uris {
		if !seen[uri] {
			seen[uri] = true
			out = append(out, uri)
		}
	}
	return out
}

// CompileBatch compiles multiple interdependent schemas, deferring reference
// resolution until all of them are loaded.
func (c *Compiler) CompileBatch(schemas map[string][]byte) (map[string]*Schema, error) {
	compiledSchemas := make(map[string]*Schema)
	dialects := make(map[string]*Dialect)

	// First pass: parse and initialize without resolving references.
	for id, schemaBytes := range schemas {
		schema, err := newSchema(schemaBytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSchemaCompilation, id, err)
		}

		if schema.ID == "" {
			schema.ID = id
		}
		schema.uri = normalizeURI(schema.ID)

		dialect, err := c.detectDialect(schema.Schema)
		if err != nil {
			return nil, err
		}
		dialects[id] = dialect

		schema.compiler = c
		schema.initializeSchemaWithoutReferences(c, nil)

		compiledSchemas[id] = schema

		c.mu.Lock()
		if schema.uri != "" && isValidURI(schema.uri) {
			c.schemas[schema.uri] = schema
		}
		c.mu.Unlock()
	}

	// Second pass: resolve all references at once.
	for _, schema := range compiledSchemas {
		schema.resolveReferences()
	}

	for id, schema := range compiledSchemas {
		if err := schema.validateKeywords(); err != nil {
			return nil, err
		}
		if !c.allowUnresolvedRefs {
			if errs := schema.unresolvedRefErrors(); len(errs) > 0 {
				return nil, errs[0]
			}
		}
		c.compileValidator(schema, dialects[id])
	}

	return compiledSchemas, nil
}

// trackUnresolvedReferences records which schemas wait on which URIs.
// Callers must hold the mutex.
func (c *Compiler) trackUnresolvedReferences(schema *Schema) {
	for _, uri := range schema.GetUnresolvedReferenceURIs() {
		base, _ := splitRef(uri)
		if base == "" {
			continue
		}
		waiting := c.unresolvedRefs[base]
		found := false
		for _, existing := range waiting {
			if existing == schema {
				found = true
				break
			}
		}
		if !found {
			c.unresolvedRefs[base] = append(waiting, schema)
		}
	}
}

// resolveSchemaURL attempts to fetch and compile a schema from a URL.
func (c *Compiler) resolveSchemaURL(url string) (*Schema, error) {
	id, anchor := splitRef(url)

	c.mu.RLock()
	schema, exists := c.schemas[id]
	c.mu.RUnlock()

	if exists {
		return schema, nil
	}

	loader, ok := c.Loaders[getURLScheme(url)]
	if !ok {
		return nil, ErrNoLoaderRegistered
	}

	body, err := loader(url)
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, ErrDataRead
	}

	compiledSchema, err := c.Compile(data, id)
	if err != nil {
		return nil, err
	}

	if anchor != "" {
		return compiledSchema.resolveAnchor(anchor)
	}

	return compiledSchema, nil
}

// SetSchema associates a specific schema with a URI.
func (c *Compiler) SetSchema(uri string, schema *Schema) *Compiler {
	c.mu.Lock()
	c.schemas[uri] = schema
	c.mu.Unlock()
	return c
}

// GetSchema retrieves a schema by reference. Cache misses on URL refs go
// through the registered scheme loaders.
func (c *Compiler) GetSchema(ref string) (*Schema, error) {
	baseURI, anchor := splitRef(ref)

	c.mu.RLock()
	schema, exists := c.schemas[baseURI]
	c.mu.RUnlock()

	if exists {
		if baseURI == ref {
			return schema, nil
		}
		return schema.resolveAnchor(anchor)
	}

	return c.resolveSchemaURL(ref)
}

// RegisterRemote registers an in-memory schema document under a URI. The
// document serves both reference resolution and meta-schema ($vocabulary)
// detection.
func (c *Compiler) RegisterRemote(uri string, document []byte) error {
	var raw map[string]any
	if err := c.jsonDecoder(document, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrJSONUnmarshal, err)
	}

	base, _ := splitRef(uri)
	c.mu.Lock()
	c.remoteDocs[base] = raw
	c.mu.Unlock()

	prevAllow := c.allowUnresolvedRefs
	c.allowUnresolvedRefs = true
	_, err := c.Compile(document, base)
	c.allowUnresolvedRefs = prevAllow
	return err
}

// SetRemotes registers several in-memory remote documents at once.
func (c *Compiler) SetRemotes(remotes map[string][]byte) error {
	for uri, doc := range remotes {
		if err := c.RegisterRemote(uri, doc); err != nil {
			return err
		}
	}
	return nil
}

// SetRemoteLoader installs the async URI -> document callback used by
// CompileAsync to reach reference closure.
func (c *Compiler) SetRemoteLoader(loader RemoteLoader) *Compiler {
	c.remoteLoader = loader
	return c
}

// SetDefaultBaseURI sets the default base URL for resolving relative references.
func (c *Compiler) SetDefaultBaseURI(baseURI string) *Compiler {
	c.DefaultBaseURI = baseURI
	return c
}

// SetDefaultDialect configures the dialect used when $schema is absent.
// Accepted names: draft-4, draft-6, draft-7, 2019-09, 2020-12.
func (c *Compiler) SetDefaultDialect(name string) *Compiler {
	if d := dialectByName(name); d != nil {
		c.defaultDialect = d
	}
	return c
}

// SetAssertFormat(true) forces format assertion (FormatAlways); false restores
// the dialect's default behavior (FormatDefault).
func (c *Compiler) SetAssertFormat(assert bool) *Compiler {
	c.AssertFormat = assert
	if assert {
		c.formatAssertion = FormatAlways
	} else {
		c.formatAssertion = FormatDefault
	}
	return c
}

// SetFormatAssertion configures the format assertion mode.
func (c *Compiler) SetFormatAssertion(mode FormatAssertionMode) *Compiler {
	c.formatAssertion = mode
	c.AssertFormat = mode == FormatAlways
	return c
}

// SetContentAssertion configures the content assertion mode.
func (c *Compiler) SetContentAssertion(mode ContentAssertionMode) *Compiler {
	c.contentAssertion = mode
	return c
}

// SetLegacyRef overrides the dialect's $ref-siblings policy: true forces $ref
// to replace its siblings, false forces siblings to apply.
func (c *Compiler) SetLegacyRef(legacy bool) *Compiler {
	c.legacyRef = &legacy
	return c
}

// SetAllowUnresolvedRefs permits compilation with dangling references, for
// schemas whose remotes are registered later.
func (c *Compiler) SetAllowUnresolvedRefs(allow bool) *Compiler {
	c.allowUnresolvedRefs = allow
	return c
}

// assertsFormat resolves the effective format behavior for a dialect.
func (c *Compiler) assertsFormat(dialect *Dialect) bool {
	switch c.formatAssertion {
	case FormatAlways:
		return true
	case FormatNever:
		return false
	}
	return dialect.AssertsFormat()
}

// assertsContent resolves the effective content behavior for a dialect.
func (c *Compiler) assertsContent(dialect *Dialect) bool {
	switch c.contentAssertion {
	case ContentOn:
		return true
	case ContentOff:
		return false
	}
	return dialect.AssertsContent()
}

// refReplacesSiblings resolves the effective $ref-sibling policy for a dialect.
func (c *Compiler) refReplacesSiblings(dialect *Dialect) bool {
	if c.legacyRef != nil {
		return *c.legacyRef
	}
	return dialect.RefReplacesSiblings()
}

// RegisterDecoder adds a new decoder function for a contentEncoding name.
func (c *Compiler) RegisterDecoder(encodingName string, decoderFunc func(string) ([]byte, error)) *Compiler {
	c.Decoders[encodingName] = decoderFunc
	return c
}

// RegisterMediaType adds a new unmarshal function for a contentMediaType name.
func (c *Compiler) RegisterMediaType(mediaTypeName string, unmarshalFunc func([]byte) (any, error)) *Compiler {
	c.MediaTypes[mediaTypeName] = unmarshalFunc
	return c
}

// RegisterLoader adds a new loader function for a specific URI scheme.
func (c *Compiler) RegisterLoader(scheme string, loaderFunc func(url string) (io.ReadCloser, error)) *Compiler {
	c.Loaders[scheme] = loaderFunc
	return c
}

// RegisterFormat registers a custom format. The optional typeName restricts
// the format to instances of that JSON Schema type.
func (c *Compiler) RegisterFormat(name string, validator func(any) bool, typeName ...string) *Compiler {
	c.customFormatsRW.Lock()
	defer c.customFormatsRW.Unlock()

	var t string
	if len(typeName) > 0 {
		t = typeName[0]
	}

	c.customFormats[name] = &FormatDef{
		Type:     t,
		Validate: validator,
	}
	return c
}

// UnregisterFormat removes a custom format.
func (c *Compiler) UnregisterFormat(name string) *Compiler {
	c.customFormatsRW.Lock()
	defer c.customFormatsRW.Unlock()

	delete(c.customFormats, name)
	return c
}

// customFormat looks up a registered custom format by name.
func (c *Compiler) customFormat(name string) *FormatDef {
	c.customFormatsRW.RLock()
	defer c.customFormatsRW.RUnlock()
	return c.customFormats[name]
}

// initDefaults initializes default values for decoders, media types, and loaders.
func (c *Compiler) initDefaults() {
	c.Decoders["base64"] = base64.StdEncoding.DecodeString
	c.setupMediaTypes()
	c.setupLoaders()
}

// setupMediaTypes configures default media type handlers.
func (c *Compiler) setupMediaTypes() {
	c.MediaTypes["application/json"] = func(data []byte) (any, error) {
		var temp any
		if err := c.jsonDecoder(data, &temp); err != nil {
			return nil, ErrJSONUnmarshal
		}
		return temp, nil
	}

	c.MediaTypes["application/xml"] = func(data []byte) (any, error) {
		var temp any
		if err := xml.Unmarshal(data, &temp); err != nil {
			return nil, ErrXMLUnmarshal
		}
		return temp, nil
	}

	c.MediaTypes["application/yaml"] = func(data []byte) (any, error) {
		var temp any
		if err := yaml.Unmarshal(data, &temp); err != nil {
			return nil, ErrYAMLUnmarshal
		}
		return temp, nil
	}
}

// setupLoaders configures default loaders for fetching schemas via HTTP/HTTPS.
func (c *Compiler) setupLoaders() {
	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	defaultHTTPLoader := func(url string) (io.ReadCloser, error) {
		req, err := http.NewRequestWithContext(context.Background(), "GET", url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, ErrNetworkFetch
		}

		if resp.StatusCode != http.StatusOK {
			err = resp.Body.Close()
			if err != nil {
				return nil, err
			}
			return nil, ErrInvalidStatusCode
		}

		return resp.Body, nil
	}

	c.RegisterLoader("http", defaultHTTPLoader)
	c.RegisterLoader("https", defaultHTTPLoader)
}
