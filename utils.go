package jsonschema

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
)

// replace substitutes placeholders in a template string with actual parameter values.
func replace(template string, params map[string]any) string {
	for key, value := range params {
		placeholder := "{" + key + "}"
		template = strings.ReplaceAll(template, placeholder, fmt.Sprint(value))
	}

	return template
}

// getDataType identifies the JSON schema type for a given Go value.
func getDataType(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		// Try as an integer first
		if _, ok := new(big.Int).SetString(string(v), 10); ok {
			return "integer" // json.Number without a decimal part, can be considered an integer
		}
		// Fallback to big float to check if it is an integer
		if bigFloat, ok := new(big.Float).SetString(string(v)); ok {
			if _, acc := bigFloat.Int(nil); acc == big.Exact {
				return "integer"
			}
			return "number"
		}
	case float32, float64:
		// Convert to big.Float to check if it can be considered an integer
		bigFloat := new(big.Float).SetFloat64(reflect.ValueOf(v).Float())
		if _, acc := bigFloat.Int(nil); acc == big.Exact {
			return "integer" // Treated as integer if no fractional part
		}
		return "number"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case string:
		return "string"
	case []any:
		return "array"
	case []bool, []json.Number, []float32, []float64, []int, []int8, []int16, []int32, []int64, []uint, []uint16, []uint32, []uint64, []string:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
	return "unknown"
}

// typeMatches reports whether an instance of instanceType satisfies the schema
// type name schemaType. Integers are valid numbers per the specification.
func typeMatches(schemaType, instanceType string) bool {
	if schemaType == instanceType {
		return true
	}
	return schemaType == "number" && instanceType == "integer"
}

// deepEqual compares two JSON values structurally. Object comparison is
// property-order-insensitive; numbers compare by value across Go numeric types.
func deepEqual(a, b any) bool {
	if an, aok := numericValue(a); aok {
		bn, bok := numericValue(b)
		return bok && an.Cmp(bn) == 0
	}
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, exists := bv[k]
			if !exists || !deepEqual(v, bvv) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// numericValue converts any Go numeric representation of a JSON number to a
// big.Rat for exact comparison. Returns false for non-numeric values.
func numericValue(v any) (*big.Rat, bool) {
	switch n := v.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		r, err := convertToBigRat(n)
		if err != nil {
			return nil, false
		}
		return r, true
	case json.Number:
		r := new(big.Rat)
		if _, ok := r.SetString(string(n)); !ok {
			return nil, false
		}
		return r, true
	}
	return nil, false
}
