package jsonschema

import (
	"strconv"
	"strings"
)

// CoerceKind selects which conversions the opt-in pre-validation coercion
// pass may perform.
type CoerceKind uint

const (
	// CoerceNumber converts numeric strings to numbers/integers.
	CoerceNumber CoerceKind = 1 << iota
	// CoerceString converts scalars to their string spelling.
	CoerceString
	// CoerceBoolean converts "true"/"false"/"1"/"0"/1/0 to booleans.
	CoerceBoolean
	// CoerceNull converts the empty string to null.
	CoerceNull
	// CoerceArray wraps a scalar into a single-element array.
	CoerceArray

	// CoerceAll enables every conversion.
	CoerceAll = CoerceNumber | CoerceString | CoerceBoolean | CoerceNull | CoerceArray
)

// coercionConfig is the compiler's coercion state.
type coercionConfig struct {
	kinds CoerceKind
}

func (cc coercionConfig) enabled() bool { return cc.kinds != 0 }

// SetCoerce enables opt-in pre-validation coercion. Without arguments every
// conversion kind is enabled; otherwise the given kinds are OR-ed together.
func (c *Compiler) SetCoerce(kinds ...CoerceKind) *Compiler {
	if len(kinds) == 0 {
		c.coercion.kinds = CoerceAll
		return c
	}
	c.coercion.kinds = 0
	for _, kind := range kinds {
		c.coercion.kinds |= kind
	}
	return c
}

// Coerce applies the schema-directed coercion transform to an instance
// without validating it, returning the converted copy. The original value is
// never mutated. A scalar that the schema types demand converting but that no
// enabled conversion can represent yields ErrCoercionFailure.
func (s *Schema) Coerce(instance any) (any, error) {
	return s.GetCompiler().coercion.apply(s, instance)
}

// apply walks the schema and the instance together, converting scalars toward
// the schema's declared types and recursing through properties, prefixItems,
// items, additionalProperties, and composition branches.
func (cc coercionConfig) apply(s *Schema, instance any) (any, error) {
	if s == nil || s.Boolean != nil {
		return instance, nil
	}

	// Follow the reference before coercing; the target's types drive the
	// conversion.
	if s.ResolvedRef != nil {
		return cc.apply(s.ResolvedRef, instance)
	}

	if len(s.Type) > 0 {
		converted, err := cc.convertScalar(s.Type, instance)
		if err != nil {
			return instance, err
		}
		instance = converted
	}

	switch value := instance.(type) {
	case map[string]any:
		out := make(map[string]any, len(value))
		for name, propValue := range value {
			propSchema := cc.propertySchema(s, name)
			converted, err := cc.apply(propSchema, propValue)
			if err != nil {
				return instance, err
			}
			out[name] = converted
		}
		instance = out
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			itemSchema := s.Items
			if i < len(s.PrefixItems) {
				itemSchema = s.PrefixItems[i]
			}
			converted, err := cc.apply(itemSchema, item)
			if err != nil {
				return instance, err
			}
			out[i] = converted
		}
		instance = out
	}

	// Composition branches coerce in declaration order; the first branch that
	// changes the value wins.
branchLoop:
	for _, branches := range [][]*Schema{s.AllOf, s.AnyOf, s.OneOf} {
		for _, branch := range branches {
			converted, err := cc.apply(branch, instance)
			if err != nil {
				continue // a failing branch may simply not match
			}
			if !deepEqual(converted, instance) {
				instance = converted
				break branchLoop
			}
		}
	}

	return instance, nil
}

// propertySchema finds the subschema governing a property for coercion
// purposes: properties first, then additionalProperties.
func (cc coercionConfig) propertySchema(s *Schema, name string) *Schema {
	if s.Properties != nil {
		if propSchema, ok := (*s.Properties)[name]; ok {
			return propSchema
		}
	}
	return s.AdditionalProperties
}

// convertScalar converts a scalar toward one of the expected types. The value
// is returned unchanged when it already matches, or when no enabled
// conversion applies.
func (cc coercionConfig) convertScalar(types SchemaType, instance any) (any, error) {
	instanceType := getDataType(instance)
	for _, schemaType := range types {
		if typeMatches(schemaType, instanceType) {
			return instance, nil
		}
	}

	for _, schemaType := range types {
		switch schemaType {
		case "null":
			if cc.kinds&CoerceNull != 0 {
				if str, ok := instance.(string); ok && str == "" {
					return nil, nil
				}
			}
		case "boolean":
			if cc.kinds&CoerceBoolean != 0 {
				switch v := instance.(type) {
				case string:
					switch v {
					case "true", "1":
						return true, nil
					case "false", "0":
						return false, nil
					}
				case float64:
					if v == 1 {
						return true, nil
					}
					if v == 0 {
						return false, nil
					}
				case int:
					if v == 1 {
						return true, nil
					}
					if v == 0 {
						return false, nil
					}
				}
			}
		case "number", "integer":
			if cc.kinds&CoerceNumber != 0 {
				if str, ok := instance.(string); ok && str != "" {
					if n, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
						if schemaType == "integer" && n != float64(int64(n)) {
							continue
						}
						return n, nil
					}
				}
				if b, ok := instance.(bool); ok {
					if b {
						return float64(1), nil
					}
					return float64(0), nil
				}
			}
		case "string":
			if cc.kinds&CoerceString != 0 {
				switch v := instance.(type) {
				case float64:
					return strconv.FormatFloat(v, 'f', -1, 64), nil
				case int:
					return strconv.Itoa(v), nil
				case bool:
					return strconv.FormatBool(v), nil
				}
			}
		case "array":
			if cc.kinds&CoerceArray != 0 {
				if getDataType(instance) != "array" && getDataType(instance) != "object" {
					return []any{instance}, nil
				}
			}
		}
	}

	// Scalars that no conversion can reach are coercion failures when the type
	// set names at least one scalar type; scalars aimed only at object/array,
	// and containers themselves, fall through to validation.
	if instanceType != "object" && instanceType != "array" {
		wantsContainerOnly := true
		for _, schemaType := range types {
			if schemaType != "object" && schemaType != "array" {
				wantsContainerOnly = false
				break
			}
		}
		if !wantsContainerOnly && cc.kinds != 0 {
			return instance, ErrCoercionFailure
		}
	}

	return instance, nil
}
