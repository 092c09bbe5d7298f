package migrate

import (
	"sort"
	"strings"

	"github.com/reoring/draftkit/i18n"
	"github.com/reoring/draftkit/internal/tree"
)

// Completeness is the outcome of CheckCompleteness. Success is true iff
// Warnings is empty.
type Completeness struct {
	Success  bool     `json:"success" yaml:"success"`
	Warnings []string `json:"warnings" yaml:"warnings"`
}

// CheckCompleteness scans the root of migrated for legacy markers a
// migration should have removed, emitting one warning per marker, plus a
// second one when a leftover "definitions" is not an object and so could
// never be renamed. Nested schemas are not inspected. When original carried an object "definitions",
// names that did not reach the migrated "$defs" add one more warning.
func CheckCompleteness(original, migrated any) Completeness {
	c := Completeness{Warnings: []string{}}
	m, ok := tree.Object(migrated)
	if !ok {
		c.Success = true
		return c
	}

	if uri, _ := m["$schema"].(string); !strings.Contains(uri, "2020-12") {
		c.warn(i18n.WarnSchemaURI, nil)
	}
	if tree.Has(m, "definitions") {
		c.warn(i18n.WarnDefinitions, nil)
		if _, isObject := tree.Object(m["definitions"]); !isObject {
			c.warn(i18n.WarnDefinitionsShape, nil)
		}
	}
	if tree.Has(m, "additionalItems") {
		c.warn(i18n.WarnAdditionalItems, nil)
	}
	if tree.Has(m, "$recursiveRef") || tree.Has(m, "$recursiveAnchor") {
		c.warn(i18n.WarnRecursive, nil)
	}
	if _, ok := tree.Array(m["items"]); ok {
		c.warn(i18n.WarnItemsArray, nil)
	}
	if missing := missingDefinitions(original, m); len(missing) > 0 {
		c.warn(i18n.WarnMissingDefs, map[string]string{"names": strings.Join(missing, ", ")})
	}

	c.Success = len(c.Warnings) == 0
	return c
}

func (c *Completeness) warn(code string, data map[string]string) {
	c.Warnings = append(c.Warnings, i18n.T(code, data))
}

// missingDefinitions returns, sorted, the names of original's
// "definitions" found in neither "$defs" nor a leftover "definitions" of
// migrated. A leftover "definitions" is already reported on its own.
func missingDefinitions(original any, migrated map[string]any) []string {
	om, ok := tree.Object(original)
	if !ok {
		return nil
	}
	defs, ok := tree.Object(om["definitions"])
	if !ok {
		return nil
	}
	got, _ := tree.Object(migrated["$defs"])
	left, _ := tree.Object(migrated["definitions"])
	var missing []string
	for name := range defs {
		if tree.Has(got, name) || tree.Has(left, name) {
			continue
		}
		missing = append(missing, name)
	}
	sort.Strings(missing)
	return missing
}
