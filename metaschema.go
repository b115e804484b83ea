package jsonschema

import (
	"embed"

	"github.com/go-json-experiment/json"
)

//go:embed metaschemas/*.json
var metaschemasFS embed.FS

// bundledMetaschemas maps the canonical meta-schema URI of each supported
// draft to its embedded document file.
var bundledMetaschemas = map[string]string{
	MetaDraft4:      "metaschemas/draft-04.json",
	MetaDraft6:      "metaschemas/draft-06.json",
	MetaDraft7:      "metaschemas/draft-07.json",
	MetaDraft201909: "metaschemas/draft-2019-09.json",
	MetaDraft202012: "metaschemas/draft-2020-12.json",
}

// loadBundledMetaschema reads an embedded meta-schema document as a raw JSON
// value, for use by the remote registry and $vocabulary detection.
func loadBundledMetaschema(uri string) (map[string]any, error) {
	file, ok := bundledMetaschemas[normalizeMetaURI(uri)]
	if !ok {
		return nil, ErrReferenceResolution
	}
	data, err := metaschemasFS.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// detectDialect determines the dialect for a schema document from its root
// $schema value. Unknown URIs are resolved through the compiler's remote
// registry; a resolved meta-schema with a $vocabulary map yields a custom
// dialect with only the vocabularies marked true. Without $schema the
// compiler's configured default applies.
func (c *Compiler) detectDialect(schemaURI string) (*Dialect, error) {
	if schemaURI == "" {
		if c.defaultDialect != nil {
			return c.defaultDialect, nil
		}
		return dialectDraft202012, nil
	}

	if d := dialectByMetaURI(schemaURI); d != nil {
		return d, nil
	}

	meta := c.remoteDocument(schemaURI)
	if meta == nil {
		return nil, &UnsupportedDialectError{URI: schemaURI}
	}

	baseDraft := Draft202012
	if metaSchema, ok := meta["$schema"].(string); ok {
		if d := dialectByMetaURI(metaSchema); d != nil {
			baseDraft = d.draft
		}
	}

	rawVocab, ok := meta["$vocabulary"].(map[string]any)
	if !ok {
		// A known remote without $vocabulary behaves as its base draft.
		return newDraftDialect(baseDraft, schemaURI), nil
	}

	vocabularies := make(map[string]bool, len(rawVocab))
	for uri, v := range rawVocab {
		enabled, ok := v.(bool)
		if !ok {
			return nil, &UnsupportedDialectError{URI: schemaURI}
		}
		vocabularies[uri] = enabled
	}
	return newVocabularyDialect(schemaURI, baseDraft, vocabularies), nil
}

// remoteDocument looks up a raw schema document by URI in the explicit remote
// registry, falling back to the bundled meta-schemas.
func (c *Compiler) remoteDocument(uri string) map[string]any {
	base, _ := splitRef(uri)
	c.mu.RLock()
	doc, ok := c.remoteDocs[base]
	c.mu.RUnlock()
	if ok {
		return doc
	}
	doc, err := loadBundledMetaschema(base)
	if err != nil {
		return nil
	}
	return doc
}
