package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T(AlreadyLatest, nil); msg != "Schema is already Draft 2020-12 - no migration needed" {
		t.Fatalf("unexpected english message %q", msg)
	}

	SetLanguage("ja")
	defer SetLanguage("en")
	if msg := T(AlreadyLatest, nil); msg == dictionaries["en"][AlreadyLatest] {
		t.Fatalf("expected japanese message, got %q", msg)
	}
}

func TestTranslator_Placeholders(t *testing.T) {
	got := T(ConvertItemsArray, map[string]string{"count": "2"})
	if got != `Convert array "items" → "prefixItems" (2 positions)` {
		t.Fatalf("placeholder not expanded: %q", got)
	}
}

func TestTranslator_UnknownCodeAndLanguage(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unknown code should echo, got %q", msg)
	}
	SetLanguage("fr")
	if msg := T(UpdateSchemaURI, nil); msg != "Update $schema URI to Draft 2020-12" {
		t.Fatalf("unknown language should fall back to en, got %q", msg)
	}
}

func TestDictionaries_SameCodes(t *testing.T) {
	for code := range dictionaries["en"] {
		if _, ok := dictionaries["ja"][code]; !ok {
			t.Errorf("ja dictionary missing %s", code)
		}
	}
}

type fixed string

func (f fixed) Message(string, map[string]string) string { return string(f) }

func TestSetTranslator(t *testing.T) {
	SetTranslator(fixed("x"))
	defer SetTranslator(nil)
	if T(AlreadyLatest, nil) != "x" {
		t.Fatal("custom translator not used")
	}
}
