package draft

import "github.com/reoring/draftkit/internal/tree"

// Only the root object is inspected; nested keywords are not considered.
var (
	newerThan07 = []string{
		"$dynamicRef", "$dynamicAnchor", "prefixItems",
		"dependentSchemas", "unevaluatedProperties", "unevaluatedItems",
	}
	newerThan201909 = []string{"$dynamicRef", "$dynamicAnchor", "prefixItems"}
	legacyIn202012  = []string{"$recursiveRef", "$recursiveAnchor", "definitions"}
)

// IsCompatible reports whether the root keywords of schema can be used
// unchanged under dialect d. Boolean schemas are compatible with every dialect.
func IsCompatible(schema any, d Draft) bool {
	if _, ok := schema.(bool); ok {
		return true
	}
	m, ok := tree.Object(schema)
	if !ok {
		return true
	}
	switch d {
	case Draft07:
		return !anyTruthy(m, newerThan07)
	case Draft201909:
		return !anyTruthy(m, newerThan201909)
	default:
		return len(LegacyKeywords(m)) == 0
	}
}

// LegacyKeywords returns the root keywords of m that 2020-12 renamed, in a
// fixed order.
func LegacyKeywords(m map[string]any) []string {
	var out []string
	for _, k := range legacyIn202012 {
		if tree.Has(m, k) {
			out = append(out, k)
		}
	}
	return out
}

func anyTruthy(m map[string]any, keys []string) bool {
	for _, k := range keys {
		if tree.Truthy(m[k]) {
			return true
		}
	}
	return false
}
