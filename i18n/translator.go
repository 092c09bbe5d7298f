// Package i18n localizes the human-readable messages produced by the
// migration reporter and the CLI.
package i18n

import (
	"sort"
	"strings"
	"sync"
)

// Translator retrieves localized messages for message codes.
// data provides named values substituted into "{name}" placeholders (for
// example "count" or "keyword").
type Translator interface {
	Message(code string, data map[string]string) string
}

// Message codes.
const (
	AlreadyLatest          = "already_latest"
	LegacyKeywordKept      = "legacy_keyword_kept"
	SchemaURIOnly          = "schema_uri_only"
	ConvertDefinitions     = "convert_definitions"
	UpdateDefinitionRefs   = "update_definition_refs"
	ConvertRecursiveRef    = "convert_recursive_ref"
	ConvertRecursiveAnchor = "convert_recursive_anchor"
	ConvertItemsArray      = "convert_items_array"
	ConvertAdditionalItems = "convert_additional_items"
	UpdateSchemaURI        = "update_schema_uri"

	WarnSchemaURI        = "warn_schema_uri"
	WarnDefinitions      = "warn_definitions"
	WarnAdditionalItems  = "warn_additional_items"
	WarnRecursive        = "warn_recursive"
	WarnItemsArray       = "warn_items_array"
	WarnMissingDefs      = "warn_missing_defs"
	WarnDefinitionsShape = "warn_definitions_shape"
)

var dictionaries = map[string]map[string]string{
	"en": {
		AlreadyLatest:          "Schema is already Draft 2020-12 - no migration needed",
		LegacyKeywordKept:      `Legacy keyword "{keyword}" is present and will not be rewritten`,
		SchemaURIOnly:          "No structural changes needed - only $schema update",
		ConvertDefinitions:     `Convert "definitions" → "$defs"`,
		UpdateDefinitionRefs:   "Update {count} definition references",
		ConvertRecursiveRef:    `Convert "$recursiveRef" → "$dynamicRef"`,
		ConvertRecursiveAnchor: `Convert "$recursiveAnchor" → "$dynamicAnchor"`,
		ConvertItemsArray:      `Convert array "items" → "prefixItems" ({count} positions)`,
		ConvertAdditionalItems: `Convert "additionalItems" → "items"`,
		UpdateSchemaURI:        "Update $schema URI to Draft 2020-12",

		WarnSchemaURI:        "$schema URI not updated to 2020-12",
		WarnDefinitions:      `Old "definitions" keyword still present (should be $defs)`,
		WarnAdditionalItems:  `Old "additionalItems" keyword still present (should be items)`,
		WarnRecursive:        "Old recursive keywords still present (should be $dynamic*)",
		WarnItemsArray:       `Array form of "items" still present (should be prefixItems)`,
		WarnMissingDefs:      "Definitions missing from $defs after migration: {names}",
		WarnDefinitionsShape: `"definitions" is not an object and was left as is`,
	},
	"ja": {
		AlreadyLatest:          "スキーマは既に Draft 2020-12 です - 移行は不要です",
		LegacyKeywordKept:      `旧キーワード "{keyword}" が存在しますが書き換えられません`,
		SchemaURIOnly:          "構造的な変更はありません - $schema の更新のみ",
		ConvertDefinitions:     `"definitions" を "$defs" に変換`,
		UpdateDefinitionRefs:   "{count} 件の定義参照を更新",
		ConvertRecursiveRef:    `"$recursiveRef" を "$dynamicRef" に変換`,
		ConvertRecursiveAnchor: `"$recursiveAnchor" を "$dynamicAnchor" に変換`,
		ConvertItemsArray:      `配列形式の "items" を "prefixItems" に変換 ({count} 個の位置)`,
		ConvertAdditionalItems: `"additionalItems" を "items" に変換`,
		UpdateSchemaURI:        "$schema URI を Draft 2020-12 に更新",

		WarnSchemaURI:        "$schema URI が 2020-12 に更新されていません",
		WarnDefinitions:      `旧 "definitions" キーワードが残っています ($defs にすべきです)`,
		WarnAdditionalItems:  `旧 "additionalItems" キーワードが残っています (items にすべきです)`,
		WarnRecursive:        "旧 recursive キーワードが残っています ($dynamic* にすべきです)",
		WarnItemsArray:       `配列形式の "items" が残っています (prefixItems にすべきです)`,
		WarnMissingDefs:      "移行後の $defs に存在しない定義: {names}",
		WarnDefinitionsShape: `"definitions" がオブジェクトではないため変更されていません`,
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		if msg, ok = dictionaries["en"][code]; !ok {
			return code
		}
	}
	return expand(msg, data)
}

func expand(msg string, data map[string]string) string {
	if len(data) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// Languages lists the built-in dictionary languages.
func Languages() []string {
	out := make([]string, 0, len(dictionaries))
	for k := range dictionaries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SetLanguage switches the built-in Translator language ("en"/"ja").
// Unknown languages fall back to English.
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
