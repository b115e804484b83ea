package jsonschema

import (
	"errors"
	"fmt"
)

// === Network and IO Related Errors ===
var (
	// ErrNoLoaderRegistered is returned when no loader is registered for the specified scheme.
	ErrNoLoaderRegistered = errors.New("no loader registered for scheme")

	// ErrDataRead is returned when data cannot be read from the specified URL.
	ErrDataRead = errors.New("data read failed")

	// ErrNetworkFetch is returned when there is an error fetching from the URL.
	ErrNetworkFetch = errors.New("network fetch failed")

	// ErrInvalidStatusCode is returned when an invalid HTTP status code is returned.
	ErrInvalidStatusCode = errors.New("invalid http status code")
)

// === Serialization Related Errors ===
var (
	// ErrJSONUnmarshal is returned when there is an error unmarshalling JSON.
	ErrJSONUnmarshal = errors.New("json unmarshal failed")

	// ErrXMLUnmarshal is returned when there is an error unmarshalling XML.
	ErrXMLUnmarshal = errors.New("xml unmarshal failed")

	// ErrYAMLUnmarshal is returned when there is an error unmarshalling YAML.
	ErrYAMLUnmarshal = errors.New("yaml unmarshal failed")
)

// === Schema Compilation and Parsing Related Errors ===
var (
	// ErrSchemaCompilation is returned when a schema compilation fails.
	ErrSchemaCompilation = errors.New("schema compilation failed")

	// ErrSchemaInvalid is returned when a keyword inside the schema itself is misused.
	ErrSchemaInvalid = errors.New("schema invalid")

	// ErrUnresolvedRef is returned when a static $ref or $dynamicRef target cannot be found.
	ErrUnresolvedRef = errors.New("unresolved reference")

	// ErrUnsupportedDialect is returned when $schema names an unknown dialect and no default is configured.
	ErrUnsupportedDialect = errors.New("unsupported dialect")

	// ErrReferenceResolution is returned when a reference cannot be resolved.
	ErrReferenceResolution = errors.New("reference resolution failed")

	// ErrRegexValidation is returned when the schema contains regex patterns that do not compile.
	ErrRegexValidation = errors.New("regex validation failed")

	// ErrJSONPointerSegmentDecode is returned when a segment cannot be decoded.
	ErrJSONPointerSegmentDecode = errors.New("json pointer segment decode failed")

	// ErrJSONPointerSegmentNotFound is returned when a segment is not found in the schema context.
	ErrJSONPointerSegmentNotFound = errors.New("json pointer segment not found")

	// ErrInvalidSchemaType is returned when the JSON schema type is invalid.
	ErrInvalidSchemaType = errors.New("invalid schema type")

	// ErrSchemaIsNil is returned when schema is nil.
	ErrSchemaIsNil = errors.New("schema is nil")
)

// === Runtime Related Errors ===
var (
	// ErrInfiniteLoop is returned when a $ref chain re-enters itself without consuming input.
	ErrInfiniteLoop = errors.New("infinite reference loop")

	// ErrCoercionFailure is returned when a value cannot be coerced to any expected type.
	ErrCoercionFailure = errors.New("coercion failed")
)

// === Type Conversion Related Errors ===
var (
	// ErrRatConversion is returned when rat conversion fails.
	ErrRatConversion = errors.New("rat conversion failed")

	// ErrUnsupportedRatType is returned when the type is unsupported for conversion to *big.Rat.
	ErrUnsupportedRatType = errors.New("unsupported rat type")

	// ErrNilConstValue is returned when trying to unmarshal into a nil ConstValue.
	ErrNilConstValue = errors.New("cannot unmarshal into nil ConstValue")

	// ErrIPv6AddressFormat is returned when an IPv6 address is not properly formatted.
	ErrIPv6AddressFormat = errors.New("ipv6 address format error")

	// ErrInvalidIPv6 is returned when the IPv6 address is invalid.
	ErrInvalidIPv6 = errors.New("invalid ipv6 address")
)

// SchemaInvalidError reports a misused keyword inside the schema document itself,
// naming the offending keyword and its location as a JSON Pointer fragment.
type SchemaInvalidError struct {
	Keyword  string
	Location string
	Detail   string
}

func (e *SchemaInvalidError) Error() string {
	return fmt.Sprintf("schema invalid: %s at %s: %s", e.Keyword, e.Location, e.Detail)
}

func (e *SchemaInvalidError) Unwrap() error {
	return ErrSchemaInvalid
}

// RegexPatternError reports a regex in `pattern` or `patternProperties` that does
// not compile, with the schema location of the offending pattern.
type RegexPatternError struct {
	Keyword  string
	Location string
	Pattern  string
	Err      error
}

func (e *RegexPatternError) Error() string {
	return fmt.Sprintf("invalid regex in %s at %s: %q: %v", e.Keyword, e.Location, e.Pattern, e.Err)
}

func (e *RegexPatternError) Unwrap() error {
	return ErrRegexValidation
}

// UnresolvedRefError reports a static reference whose target cannot be found
// once the schema (and all registered remotes) have been loaded.
type UnresolvedRefError struct {
	Ref      string
	Location string
}

func (e *UnresolvedRefError) Error() string {
	return fmt.Sprintf("unresolved reference %q at %s", e.Ref, e.Location)
}

func (e *UnresolvedRefError) Unwrap() error {
	return ErrUnresolvedRef
}

// UnsupportedDialectError reports a $schema URI that names no known dialect and
// no meta-schema with a usable $vocabulary.
type UnsupportedDialectError struct {
	URI string
}

func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("unsupported dialect %q", e.URI)
}

func (e *UnsupportedDialectError) Unwrap() error {
	return ErrUnsupportedDialect
}
