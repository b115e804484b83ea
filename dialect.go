package jsonschema

import "strings"

// Draft identifies a JSON Schema specification version.
type Draft int

const (
	// DraftUnknown is the zero value; the compiler default applies.
	DraftUnknown Draft = iota
	// Draft4 is JSON Schema draft-04.
	Draft4
	// Draft6 is JSON Schema draft-06.
	Draft6
	// Draft7 is JSON Schema draft-07.
	Draft7
	// Draft201909 is JSON Schema draft 2019-09.
	Draft201909
	// Draft202012 is JSON Schema draft 2020-12.
	Draft202012
)

func (d Draft) String() string {
	switch d {
	case Draft4:
		return "draft-4"
	case Draft6:
		return "draft-6"
	case Draft7:
		return "draft-7"
	case Draft201909:
		return "2019-09"
	case Draft202012:
		return "2020-12"
	}
	return "unknown"
}

// Meta-schema URIs for the supported drafts.
const (
	MetaDraft4      = "http://json-schema.org/draft-04/schema"
	MetaDraft6      = "http://json-schema.org/draft-06/schema"
	MetaDraft7      = "http://json-schema.org/draft-07/schema"
	MetaDraft201909 = "https://json-schema.org/draft/2019-09/schema"
	MetaDraft202012 = "https://json-schema.org/draft/2020-12/schema"
)

// Vocabulary URIs for JSON Schema 2020-12.
const (
	VocabCore202012             = "https://json-schema.org/draft/2020-12/vocab/core"
	VocabApplicator202012       = "https://json-schema.org/draft/2020-12/vocab/applicator"
	VocabUnevaluated202012      = "https://json-schema.org/draft/2020-12/vocab/unevaluated"
	VocabValidation202012       = "https://json-schema.org/draft/2020-12/vocab/validation"
	VocabFormatAnnotation202012 = "https://json-schema.org/draft/2020-12/vocab/format-annotation"
	VocabFormatAssertion202012  = "https://json-schema.org/draft/2020-12/vocab/format-assertion"
	VocabContent202012          = "https://json-schema.org/draft/2020-12/vocab/content"
	VocabMetaData202012         = "https://json-schema.org/draft/2020-12/vocab/meta-data"
)

// Vocabulary URIs for JSON Schema 2019-09.
const (
	VocabCore201909       = "https://json-schema.org/draft/2019-09/vocab/core"
	VocabApplicator201909 = "https://json-schema.org/draft/2019-09/vocab/applicator"
	VocabValidation201909 = "https://json-schema.org/draft/2019-09/vocab/validation"
	VocabFormat201909     = "https://json-schema.org/draft/2019-09/vocab/format"
	VocabContent201909    = "https://json-schema.org/draft/2019-09/vocab/content"
	VocabMetaData201909   = "https://json-schema.org/draft/2019-09/vocab/meta-data"
)

// vocabularyKeywords maps each vocabulary URI to the assertion/applicator
// keywords it defines. Keywords outside every active vocabulary compile to
// nothing (annotation-only behavior).
var vocabularyKeywords = map[string][]string{
	VocabApplicator202012: {
		"allOf", "anyOf", "oneOf", "not", "if", "then", "else",
		"dependentSchemas", "prefixItems", "items", "contains",
		"properties", "patternProperties", "additionalProperties", "propertyNames",
	},
	VocabUnevaluated202012: {"unevaluatedItems", "unevaluatedProperties"},
	VocabValidation202012: {
		"type", "enum", "const",
		"multipleOf", "maximum", "exclusiveMaximum", "minimum", "exclusiveMinimum",
		"maxLength", "minLength", "pattern",
		"maxItems", "minItems", "uniqueItems", "maxContains", "minContains",
		"maxProperties", "minProperties", "required", "dependentRequired",
	},
	VocabFormatAnnotation202012: {"format"},
	VocabFormatAssertion202012:  {"format"},
	VocabContent202012:          {"contentEncoding", "contentMediaType", "contentSchema"},
}

func init() {
	// 2019-09 vocabularies cover the same keyword families; unevaluated* lives
	// in the applicator vocabulary in that draft.
	vocabularyKeywords[VocabApplicator201909] = append(
		append([]string{}, vocabularyKeywords[VocabApplicator202012]...),
		"unevaluatedItems", "unevaluatedProperties", "additionalItems",
	)
	vocabularyKeywords[VocabValidation201909] = vocabularyKeywords[VocabValidation202012]
	vocabularyKeywords[VocabFormat201909] = []string{"format"}
	vocabularyKeywords[VocabContent201909] = vocabularyKeywords[VocabContent202012]
	// dialectDraft201909 is built before init runs; rebuild its keyword set
	// now that the 2019-09 vocabularies have entries.
	dialectDraft201909.rebuildKeywords()
}

// Dialect describes the behavior profile the compiler derives from $schema:
// the draft, the set of active vocabularies, and the keyword set they enable.
type Dialect struct {
	draft        Draft
	uri          string
	vocabularies map[string]bool
	keywords     map[string]struct{}
}

var (
	dialectDraft4      = newDraftDialect(Draft4, MetaDraft4)
	dialectDraft6      = newDraftDialect(Draft6, MetaDraft6)
	dialectDraft7      = newDraftDialect(Draft7, MetaDraft7)
	dialectDraft201909 = newDraftDialect(Draft201909, MetaDraft201909)
	dialectDraft202012 = newDraftDialect(Draft202012, MetaDraft202012)
)

// newDraftDialect builds the full-vocabulary dialect for a bundled draft.
func newDraftDialect(draft Draft, uri string) *Dialect {
	d := &Dialect{draft: draft, uri: uri}
	switch draft {
	case Draft201909:
		d.vocabularies = map[string]bool{
			VocabCore201909:       true,
			VocabApplicator201909: true,
			VocabValidation201909: true,
			VocabFormat201909:     false,
			VocabContent201909:    true,
			VocabMetaData201909:   true,
		}
	case Draft202012:
		d.vocabularies = map[string]bool{
			VocabCore202012:             true,
			VocabApplicator202012:       true,
			VocabUnevaluated202012:      true,
			VocabValidation202012:       true,
			VocabFormatAnnotation202012: true,
			VocabContent202012:          true,
			VocabMetaData202012:         true,
		}
	default:
		// Pre-2019 drafts have no vocabulary mechanism; all keywords apply.
	}
	d.rebuildKeywords()
	return d
}

// newVocabularyDialect builds a dialect from a custom meta-schema's
// $vocabulary map. The base draft is taken from the meta-schema's own $schema.
func newVocabularyDialect(uri string, base Draft, vocabularies map[string]bool) *Dialect {
	d := &Dialect{draft: base, uri: uri, vocabularies: vocabularies}
	d.rebuildKeywords()
	return d
}

func (d *Dialect) rebuildKeywords() {
	if d.vocabularies == nil {
		return // nil keyword set means every keyword is enabled
	}
	d.keywords = make(map[string]struct{})
	for uri, enabled := range d.vocabularies {
		if !enabled {
			continue
		}
		for _, kw := range vocabularyKeywords[uri] {
			d.keywords[kw] = struct{}{}
		}
	}
}

// Draft returns the dialect's specification version.
func (d *Dialect) Draft() Draft { return d.draft }

// URI returns the meta-schema URI the dialect was derived from.
func (d *Dialect) URI() string { return d.uri }

// KeywordEnabled reports whether the named assertion keyword is active under
// this dialect's vocabulary set.
func (d *Dialect) KeywordEnabled(keyword string) bool {
	if d == nil || d.keywords == nil {
		return true
	}
	_, ok := d.keywords[keyword]
	return ok
}

// RefReplacesSiblings reports whether $ref masks its sibling keywords
// (drafts up to and including 7).
func (d *Dialect) RefReplacesSiblings() bool {
	if d == nil {
		return false
	}
	return d.draft != DraftUnknown && d.draft <= Draft7
}

// AssertsFormat reports whether format is an assertion by default.
// Drafts up to 7 assert; 2019-09 and 2020-12 annotate unless the
// format-assertion vocabulary is active.
func (d *Dialect) AssertsFormat() bool {
	if d == nil {
		return false
	}
	if d.draft != DraftUnknown && d.draft <= Draft7 {
		return true
	}
	if d.vocabularies != nil {
		if enabled, ok := d.vocabularies[VocabFormatAssertion202012]; ok && enabled {
			return true
		}
		if enabled, ok := d.vocabularies[VocabFormat201909]; ok && enabled {
			return true
		}
	}
	return false
}

// AssertsContent reports whether contentEncoding/contentMediaType/contentSchema
// are assertions by default (draft 7 only).
func (d *Dialect) AssertsContent() bool {
	return d != nil && d.draft == Draft7
}

// dialectByMetaURI matches a normalized $schema URI against the bundled drafts.
func dialectByMetaURI(uri string) *Dialect {
	switch normalizeMetaURI(uri) {
	case MetaDraft4:
		return dialectDraft4
	case MetaDraft6:
		return dialectDraft6
	case MetaDraft7:
		return dialectDraft7
	case MetaDraft201909:
		return dialectDraft201909
	case MetaDraft202012:
		return dialectDraft202012
	}
	return nil
}

// dialectByName resolves the configuration names accepted by
// SetDefaultDialect: draft-4, draft-6, draft-7, 2019-09, 2020-12.
func dialectByName(name string) *Dialect {
	switch name {
	case "draft-4", "draft-04", "draft4":
		return dialectDraft4
	case "draft-6", "draft-06", "draft6":
		return dialectDraft6
	case "draft-7", "draft-07", "draft7":
		return dialectDraft7
	case "2019-09", "draft/2019-09":
		return dialectDraft201909
	case "2020-12", "draft/2020-12":
		return dialectDraft202012
	}
	return nil
}

// normalizeMetaURI strips the fragment and trailing "#" and folds the
// http/https spelling of the legacy draft URIs.
func normalizeMetaURI(uri string) string {
	uri, _ = splitRef(uri)
	uri = strings.TrimSuffix(uri, "#")
	if strings.HasPrefix(uri, "https://json-schema.org/draft-0") {
		uri = "http://" + strings.TrimPrefix(uri, "https://")
	}
	return uri
}
