package jsonschema

import "regexp"

// EvaluationTracker records which properties and items of the current instance
// have been evaluated by sibling keywords, so that unevaluatedProperties and
// unevaluatedItems can see the annotations of everything that ran before them.
// One tracker exists per validation frame; composition keywords merge the
// trackers of passing branches into their parent.
type EvaluationTracker struct {
	props    map[string]struct{} // evaluated property names
	allProps bool                // every property evaluated (boolean-true schema)
	patterns []*regexp.Regexp    // regexes that mark matching names as evaluated

	maxItem  int              // items [0, maxItem) are evaluated (consecutive prefix)
	items    map[int]struct{} // sparse evaluated indices (contains)
	allItems bool             // every item evaluated
}

// newTracker returns an empty tracker.
func newTracker() *EvaluationTracker {
	return &EvaluationTracker{}
}

// markProp records a property name as evaluated.
func (t *EvaluationTracker) markProp(name string) {
	if t == nil || t.allProps {
		return
	}
	if t.props == nil {
		t.props = make(map[string]struct{})
	}
	t.props[name] = struct{}{}
}

// markAllProps short-circuits property tracking: every name is evaluated.
func (t *EvaluationTracker) markAllProps() {
	if t == nil {
		return
	}
	t.allProps = true
	t.props = nil
}

// addPattern records a regex whose matches count as evaluated names.
func (t *EvaluationTracker) addPattern(re *regexp.Regexp) {
	if t == nil || t.allProps {
		return
	}
	t.patterns = append(t.patterns, re)
}

// markItemsUpTo records items [0, n) as evaluated.
func (t *EvaluationTracker) markItemsUpTo(n int) {
	if t == nil || t.allItems {
		return
	}
	if n > t.maxItem {
		t.maxItem = n
	}
}

// markAnyItem records a single index as evaluated (used by contains).
func (t *EvaluationTracker) markAnyItem(i int) {
	if t == nil || t.allItems || i < t.maxItem {
		return
	}
	if t.items == nil {
		t.items = make(map[int]struct{})
	}
	t.items[i] = struct{}{}
}

// markAllItems short-circuits item tracking: every index is evaluated.
func (t *EvaluationTracker) markAllItems() {
	if t == nil {
		return
	}
	t.allItems = true
	t.items = nil
}

// isUnevaluatedProp reports whether the named property is covered by no mark.
func (t *EvaluationTracker) isUnevaluatedProp(name string) bool {
	if t == nil {
		return true
	}
	if t.allProps {
		return false
	}
	if _, ok := t.props[name]; ok {
		return false
	}
	for _, re := range t.patterns {
		if re.MatchString(name) {
			return false
		}
	}
	return true
}

// isUnevaluatedItem reports whether the index is covered by no mark.
func (t *EvaluationTracker) isUnevaluatedItem(index int) bool {
	if t == nil {
		return true
	}
	if t.allItems || index < t.maxItem {
		return false
	}
	_, ok := t.items[index]
	return !ok
}

// mergeBranch copies the marks of a passing branch into this tracker.
// Patterns added in a branch propagate only through this merge, so marks from
// failing branches never leak.
func (t *EvaluationTracker) mergeBranch(child *EvaluationTracker) {
	if t == nil || child == nil {
		return
	}
	if child.allProps {
		t.markAllProps()
	} else {
		for name := range child.props {
			t.markProp(name)
		}
		for _, re := range child.patterns {
			t.addPattern(re)
		}
	}
	if child.allItems {
		t.markAllItems()
	} else {
		t.markItemsUpTo(child.maxItem)
		for i := range child.items {
			t.markAnyItem(i)
		}
	}
}
