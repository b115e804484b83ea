package jsonschema

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// uniqueItemsStep checks that all elements of an array instance are unique.
// Equality is deep structural equality: objects compare property-order-
// insensitively and numbers compare by value. Items are normalized to a
// canonical string key so the check is a single map pass.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-uniqueitems
type uniqueItemsStep struct{}

func (st *uniqueItemsStep) keyword() string { return "uniqueItems" }

func (st *uniqueItemsStep) execute(_ *evalContext, instance any, _ *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	items, ok := instance.([]any)
	if !ok || len(items) < 2 {
		return nil
	}

	seen := make(map[string][]int, len(items))
	for index, item := range items {
		key := normalizeForComparison(item)
		seen[key] = append(seen[key], index)
	}

	var duplicates []string
	for _, indices := range seen {
		if len(indices) > 1 {
			duplicates = append(duplicates, fmt.Sprintf("(%s)", strings.Trim(strings.Join(strings.Fields(fmt.Sprint(indices)), ", "), "[]")))
		}
	}

	if len(duplicates) > 0 {
		slices.Sort(duplicates)
		return NewEvaluationError("uniqueItems", "unique_items_mismatch", "Found duplicates at the following index groups: {duplicates}", map[string]any{
			"duplicates": strings.Join(duplicates, ", "),
		})
	}
	return nil
}

// normalizeForComparison creates a canonical string representation of a JSON
// value so that structurally equal values share a key regardless of object
// property order or numeric spelling.
func normalizeForComparison(value any) string {
	var sb strings.Builder
	writeNormalized(&sb, value)
	return sb.String()
}

func writeNormalized(sb *strings.Builder, value any) {
	if r, ok := numericValue(value); ok {
		sb.WriteString(r.RatString())
		return
	}
	switch v := value.(type) {
	case nil:
		sb.WriteString("null")
	case bool:
		fmt.Fprintf(sb, "%t", v)
	case string:
		fmt.Fprintf(sb, "%q", v)
	case []any:
		sb.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeNormalized(sb, elem)
		}
		sb.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, func(a, b string) int { return cmp.Compare(a, b) })
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(sb, "%q:", k)
			writeNormalized(sb, v[k])
		}
		sb.WriteByte('}')
	default:
		fmt.Fprintf(sb, "%v", v)
	}
}
