package migrate

import (
	"strconv"

	"github.com/reoring/draftkit/draft"
	"github.com/reoring/draftkit/i18n"
	"github.com/reoring/draftkit/internal/tree"
)

// Summary lists, without migrating, the changes Migrate would make.
type Summary struct {
	SourceDraft draft.Draft `json:"sourceDraft" yaml:"sourceDraft"`
	TargetDraft draft.Draft `json:"targetDraft" yaml:"targetDraft"`
	Changes     []string    `json:"changes" yaml:"changes"`
}

// Summarize describes the root-level changes a migration of schema from the
// given dialect would perform. When from is empty the dialect is detected.
func Summarize(schema any, from draft.Draft) Summary {
	if from == "" {
		from = draft.Detect(schema)
	}
	s := Summary{SourceDraft: from, TargetDraft: draft.Latest}

	m, isObject := tree.Object(schema)
	if from == draft.Latest || !from.Valid() {
		s.add(i18n.AlreadyLatest, nil)
		if isObject {
			// Migrate leaves a 2020-12 source untouched, legacy keywords included.
			for _, k := range draft.LegacyKeywords(m) {
				s.add(i18n.LegacyKeywordKept, map[string]string{"keyword": k})
			}
		}
		return s
	}
	if !isObject {
		s.add(i18n.SchemaURIOnly, nil)
		return s
	}

	switch from {
	case draft.Draft07:
		if _, ok := tree.Object(m["definitions"]); ok {
			s.add(i18n.ConvertDefinitions, nil)
			n := tree.CountRefs(m, legacyDefsPrefix)
			s.add(i18n.UpdateDefinitionRefs, map[string]string{"count": strconv.Itoa(n)})
		}
	case draft.Draft201909:
		if tree.Has(m, "$recursiveRef") {
			s.add(i18n.ConvertRecursiveRef, nil)
		}
		if tree.Has(m, "$recursiveAnchor") {
			s.add(i18n.ConvertRecursiveAnchor, nil)
		}
	}
	if items, ok := tree.Array(m["items"]); ok {
		s.add(i18n.ConvertItemsArray, map[string]string{"count": strconv.Itoa(len(items))})
		if tree.Has(m, "additionalItems") {
			s.add(i18n.ConvertAdditionalItems, nil)
		}
	}

	s.add(i18n.UpdateSchemaURI, nil)
	if len(s.Changes) == 1 {
		s.add(i18n.SchemaURIOnly, nil)
	}
	return s
}

func (s *Summary) add(code string, data map[string]string) {
	s.Changes = append(s.Changes, i18n.T(code, data))
}
