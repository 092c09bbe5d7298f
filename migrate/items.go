package migrate

import "github.com/reoring/draftkit/internal/tree"

// convertTuple rewrites array-form "items" into "prefixItems" and resolves
// "additionalItems" into the 2020-12 "items":
//
//	additionalItems false  -> items: false
//	additionalItems {...}  -> items: {...}
//	true, absent or other  -> no "items"
//
// Schemas whose "items" is not an array are left alone, "additionalItems"
// included.
func convertTuple(m map[string]any) {
	positions, ok := tree.Array(m["items"])
	if !ok {
		return
	}
	m["prefixItems"] = positions
	switch extra := m["additionalItems"].(type) {
	case bool:
		if extra {
			delete(m, "items")
		} else {
			m["items"] = false
		}
	case map[string]any:
		m["items"] = extra
	default:
		delete(m, "items")
	}
	delete(m, "additionalItems")
}
