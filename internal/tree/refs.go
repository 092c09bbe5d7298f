package tree

import "strings"

// RewriteRefs replaces the leading from of every "$ref" string found anywhere
// under node with to, in place, and returns the number of rewritten refs.
// Matching is an exact, case-sensitive prefix match. Callers own node.
func RewriteRefs(node any, from, to string) int {
	n := 0
	switch t := node.(type) {
	case map[string]any:
		if ref, ok := t["$ref"].(string); ok && strings.HasPrefix(ref, from) {
			t["$ref"] = to + strings.TrimPrefix(ref, from)
			n++
		}
		for k, v := range t {
			if _, isStr := v.(string); isStr && k == "$ref" {
				continue
			}
			n += RewriteRefs(v, from, to)
		}
	case []any:
		for _, v := range t {
			n += RewriteRefs(v, from, to)
		}
	}
	return n
}

// CountRefs returns the number of "$ref" strings under node starting with prefix.
func CountRefs(node any, prefix string) int {
	n := 0
	VisitRefs(node, func(ref string) {
		if strings.HasPrefix(ref, prefix) {
			n++
		}
	})
	return n
}

// VisitRefs calls fn for every "$ref" string under node.
func VisitRefs(node any, fn func(ref string)) {
	switch t := node.(type) {
	case map[string]any:
		for k, v := range t {
			if ref, ok := v.(string); ok && k == "$ref" {
				fn(ref)
				continue
			}
			VisitRefs(v, fn)
		}
	case []any:
		for _, v := range t {
			VisitRefs(v, fn)
		}
	}
}
