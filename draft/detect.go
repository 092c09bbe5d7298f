package draft

import (
	"strings"

	"github.com/reoring/draftkit/internal/tree"
)

// Detect classifies a schema value. The first matching rule wins:
//
//  1. a boolean schema is 2020-12;
//  2. a $schema string mentioning draft-07, 2019-09 or 2020-12 decides;
//  3. keyword fingerprints, checked in a fixed order;
//  4. otherwise 2020-12.
//
// Detect never panics. Values that are neither objects nor booleans are
// reported as 2020-12.
func Detect(schema any) Draft {
	if _, ok := schema.(bool); ok {
		return Latest
	}
	m, ok := tree.Object(schema)
	if !ok {
		return Latest
	}
	if s, ok := m["$schema"].(string); ok {
		if d := uriToken(s); d != "" {
			return d
		}
	}
	for _, r := range fingerprints {
		if r.match(m) {
			return r.draft
		}
	}
	return Latest
}

type fingerprint struct {
	draft Draft
	match func(map[string]any) bool
}

// unevaluated* and dependentSchemas also exist in 2019-09. A 2019-09 schema
// with no $schema and no recursive keywords is therefore classified as
// 2020-12; migration treats it as already current.
var fingerprints = []fingerprint{
	{Draft202012, func(m map[string]any) bool {
		return tree.Truthy(m["$dynamicRef"]) || tree.Truthy(m["$dynamicAnchor"])
	}},
	{Draft201909, func(m map[string]any) bool {
		return tree.Has(m, "$recursiveRef") || tree.Has(m, "$recursiveAnchor")
	}},
	{Draft202012, func(m map[string]any) bool {
		_, ok := tree.Array(m["prefixItems"])
		return ok
	}},
	{Draft202012, func(m map[string]any) bool {
		return tree.Has(m, "unevaluatedProperties") || tree.Has(m, "unevaluatedItems")
	}},
	{Draft202012, func(m map[string]any) bool {
		return tree.Truthy(m["dependentSchemas"])
	}},
	{Draft07, func(m map[string]any) bool {
		return tree.Has(m, "definitions")
	}},
	{Draft202012, func(m map[string]any) bool {
		return tree.Truthy(m["$defs"])
	}},
}

// DetectURI extracts the dialect from a $schema URI, or "" when the URI names
// none of the supported dialects.
func DetectURI(uri string) Draft {
	return uriToken(strings.ToLower(uri))
}
