// Package migrate rewrites draft-07 and 2019-09 schemas into Draft 2020-12
// and reports what a migration changes.
//
// Every function treats its input as immutable: the result is a fresh tree
// and the caller's schema is never modified.
package migrate

import (
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/draftkit/draft"
	"github.com/reoring/draftkit/internal/tree"
)

const (
	legacyDefsPrefix = "#/definitions/"
	defsPrefix       = "#/$defs/"

	// defaultAnchor names the dynamic anchor that replaces "$recursiveAnchor": true.
	defaultAnchor = "node"
)

// Migrate converts schema to Draft 2020-12. When from is empty the source
// dialect is detected. A 2020-12 source yields a deep copy of the input.
//
// Only the rules of the source dialect are applied: a draft-07 schema that
// also carries "$recursiveRef" keeps it. Boolean schemas are returned as is
// since a boolean has nowhere to hold "$schema".
func Migrate(schema any, from draft.Draft) any {
	if from == "" {
		from = draft.Detect(schema)
	}
	var out any
	switch from {
	case draft.Draft07:
		out = FromDraft07(schema)
	case draft.Draft201909:
		out = From201909(schema)
	default:
		return tree.Clone(schema)
	}
	if m, ok := tree.Object(out); ok {
		m["$schema"] = draft.Latest.URI()
	}
	return out
}

// FromDraft07 applies the draft-07 rewrite rules to schema and its
// subschemas. "$schema" is left untouched.
func FromDraft07(schema any) any {
	return walk(tree.Clone(schema), fromDraft07)
}

// From201909 applies the 2019-09 rewrite rules to schema and its subschemas.
// "$schema" is left untouched.
func From201909(schema any) any {
	return walk(tree.Clone(schema), from201909)
}

type rule func(m map[string]any)

// walk applies r to every schema object reachable through the applicator
// keywords, parents before children. The tree is owned by the caller and
// rewritten in place.
func walk(node any, r rule) any {
	m, ok := tree.Object(node)
	if !ok {
		return node
	}
	r(m)
	for _, k := range singleSchemaKeywords {
		if v, ok := m[k]; ok {
			m[k] = walk(v, r)
		}
	}
	for _, k := range schemaArrayKeywords {
		if a, ok := tree.Array(m[k]); ok {
			for i := range a {
				a[i] = walk(a[i], r)
			}
		}
	}
	for _, k := range schemaMapKeywords {
		if sub, ok := tree.Object(m[k]); ok {
			for name, v := range sub {
				sub[name] = walk(v, r)
			}
		}
	}
	// "items" is one schema or, when r left it alone, an array of schemas.
	if a, ok := tree.Array(m["items"]); ok {
		for i := range a {
			a[i] = walk(a[i], r)
		}
	} else if v, ok := m["items"]; ok {
		m["items"] = walk(v, r)
	}
	return m
}

var (
	singleSchemaKeywords = []string{
		"additionalProperties", "contains", "if", "then", "else", "not",
		"unevaluatedProperties", "unevaluatedItems",
	}
	schemaArrayKeywords = []string{"allOf", "anyOf", "oneOf", "prefixItems"}
	schemaMapKeywords   = []string{"properties", "patternProperties", "dependentSchemas", "$defs", "definitions"}
)

// fromDraft07 renames "definitions" at every schema level. References are
// rewritten across the subtree of the schema that owned the keyword, which
// for the root is the whole document.
func fromDraft07(m map[string]any) {
	if renameDefinitions(m) {
		tree.RewriteRefs(m, legacyDefsPrefix, defsPrefix)
	}
	convertTuple(m)
}

func from201909(m map[string]any) {
	convertRecursive(m)
	convertTuple(m)
}

// renameDefinitions moves an object-valued "definitions" to "$defs". An
// existing "$defs" is merged; on a name clash the "definitions" entry wins
// because rewritten references point at it.
func renameDefinitions(m map[string]any) bool {
	defs, ok := tree.Object(m["definitions"])
	if !ok {
		return false
	}
	if existing, ok := tree.Object(m["$defs"]); ok {
		for k, v := range defs {
			existing[k] = v
		}
	} else {
		m["$defs"] = defs
	}
	delete(m, "definitions")
	return true
}

func convertRecursive(m map[string]any) {
	anchor, hasAnchor := m["$recursiveAnchor"]
	if ref, ok := m["$recursiveRef"]; ok {
		if s, isString := ref.(string); isString && s == "#" {
			name := defaultAnchor
			if a, ok := anchor.(string); ok {
				name = a
			}
			ref = "#" + name
		}
		m["$dynamicRef"] = ref
		delete(m, "$recursiveRef")
	}
	if hasAnchor {
		m["$dynamicAnchor"] = anchorName(anchor)
		delete(m, "$recursiveAnchor")
	}
}

func anchorName(v any) string {
	switch t := v.(type) {
	case bool:
		if t {
			return defaultAnchor
		}
		return "false"
	case string:
		return t
	case nil:
		return "null"
	}
	b, err := gojson.Marshal(v)
	if err != nil {
		return defaultAnchor
	}
	return strings.TrimSpace(string(b))
}
