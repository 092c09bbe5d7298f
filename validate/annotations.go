package validate

import (
	"errors"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// annotationKeywords never change a validation outcome.
var annotationKeywords = map[string]bool{
	"title": true, "description": true, "$comment": true, "default": true,
	"examples": true, "readOnly": true, "writeOnly": true, "deprecated": true,
	"contentMediaType": true, "contentEncoding": true,
}

// Keywords holding subschemas, by the shape of their value. "items" and
// "dependencies" entries may also be arrays; the document decides.
var (
	subschemaKeywords = map[string]bool{
		"additionalProperties": true, "additionalItems": true, "contains": true,
		"if": true, "then": true, "else": true, "not": true, "items": true,
		"propertyNames": true, "unevaluatedProperties": true, "unevaluatedItems": true,
	}
	subschemaListKeywords = map[string]bool{
		"allOf": true, "anyOf": true, "oneOf": true, "prefixItems": true,
	}
	subschemaMapKeywords = map[string]bool{
		"properties": true, "patternProperties": true, "dependentSchemas": true,
		"$defs": true, "definitions": true, "dependencies": true,
	}
)

// dropInvalidAnnotations removes from doc the annotation keywords that a
// meta-schema violation points at. It reports false, leaving doc untouched,
// when err is not a meta-schema violation or any violation is elsewhere.
func dropInvalidAnnotations(doc any, err error) bool {
	var sve *jsonschema.SchemaValidationError
	if !errors.As(err, &sve) {
		return false
	}
	var ve *jsonschema.ValidationError
	if !errors.As(sve.Err, &ve) {
		return false
	}
	locations := leafLocations(ve, nil)
	owners := make([]map[string]any, len(locations))
	for i, loc := range locations {
		m, ok := annotationOwner(doc, loc)
		if !ok {
			return false
		}
		owners[i] = m
	}
	for i, loc := range locations {
		delete(owners[i], loc[len(loc)-1])
	}
	return len(locations) > 0
}

func leafLocations(ve *jsonschema.ValidationError, out [][]string) [][]string {
	if len(ve.Causes) == 0 {
		return append(out, ve.InstanceLocation)
	}
	for _, cause := range ve.Causes {
		out = leafLocations(cause, out)
	}
	return out
}

// annotationOwner follows loc from the root schema and returns the schema
// object whose annotation keyword loc names. Member names of "properties"
// and values inside non-schema keywords never qualify.
func annotationOwner(doc any, loc []string) (map[string]any, bool) {
	if len(loc) == 0 || !annotationKeywords[loc[len(loc)-1]] {
		return nil, false
	}
	node, isSchema := doc, true
	for _, tok := range loc[:len(loc)-1] {
		var next any
		switch n := node.(type) {
		case map[string]any:
			next = n[tok]
		case []any:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(n) {
				return nil, false
			}
			next = n[i]
		default:
			return nil, false
		}
		if isSchema {
			_, isList := next.([]any)
			switch {
			case subschemaMapKeywords[tok], subschemaListKeywords[tok]:
				isSchema = false
			case subschemaKeywords[tok]:
				isSchema = !isList
			default:
				return nil, false
			}
		} else {
			isSchema = true
		}
		node = next
	}
	m, ok := node.(map[string]any)
	if !ok || !isSchema {
		return nil, false
	}
	return m, true
}
