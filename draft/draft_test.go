package draft_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/draftkit/draft"
)

func TestSupported_OrderAndFreshSlice(t *testing.T) {
	got := draft.Supported()
	require.Equal(t, []draft.Draft{draft.Draft07, draft.Draft201909, draft.Draft202012}, got)
	got[0] = "mutated"
	assert.Equal(t, draft.Draft07, draft.Supported()[0])
}

func TestURIAndDisplayName(t *testing.T) {
	cases := []struct {
		d    draft.Draft
		uri  string
		name string
	}{
		{draft.Draft07, "https://json-schema.org/draft-07/schema", "Draft 07"},
		{draft.Draft201909, "https://json-schema.org/draft/2019-09/schema", "Draft 2019-09"},
		{draft.Draft202012, "https://json-schema.org/draft/2020-12/schema", "Draft 2020-12 (Latest)"},
		{"draft-04", "https://json-schema.org/draft/2020-12/schema", "Unknown"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.uri, tc.d.URI(), tc.d)
		assert.Equal(t, tc.name, tc.d.DisplayName(), tc.d)
	}
}

func TestURI_DetectRoundTrip(t *testing.T) {
	for _, d := range draft.Supported() {
		got := draft.Detect(map[string]any{"$schema": d.URI()})
		assert.Equal(t, d, got)
	}
}

func TestParse(t *testing.T) {
	ok := map[string]draft.Draft{
		"draft-07":     draft.Draft07,
		"Draft7":       draft.Draft07,
		"7":            draft.Draft07,
		"07":           draft.Draft07,
		"2019":         draft.Draft201909,
		"draft2019-09": draft.Draft201909,
		"2020-12":      draft.Draft202012,
		" latest ":     draft.Draft202012,
		"http://json-schema.org/draft-07/schema#": draft.Draft07,
	}
	for in, want := range ok {
		got, err := draft.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := draft.Parse("draft-04")
	require.Error(t, err)
	assert.True(t, errors.Is(err, draft.ErrUnknownDraft))
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, draft.Draft07.Compare(draft.Draft201909))
	assert.Equal(t, 1, draft.Draft202012.Compare(draft.Draft201909))
	assert.Equal(t, 0, draft.Latest.Compare(draft.Draft202012))
	assert.False(t, draft.Draft("").Valid())
}

func TestFeatures_Monotonic(t *testing.T) {
	drafts := draft.Supported()
	for _, f := range draft.AllFeatures() {
		seen := false
		for _, d := range drafts {
			has := draft.IsFeatureAvailable(d, f)
			if seen && !has {
				t.Fatalf("feature %s lost in %s", f, d)
			}
			seen = seen || has
		}
		assert.True(t, seen, f)
		assert.True(t, draft.IsFeatureAvailable(draft.IntroducedIn(f), f), f)
	}
}

func TestFeatures_Table(t *testing.T) {
	f07 := draft.FeaturesOf(draft.Draft07)
	assert.True(t, f07.Conditionals)
	assert.False(t, f07.DependentSchemas)

	f19 := draft.FeaturesOf(draft.Draft201909)
	assert.True(t, f19.UnevaluatedItems)
	assert.False(t, f19.PrefixItems)
	assert.False(t, f19.DynamicRefs)

	assert.Equal(t, draft.FeaturesOf(draft.Draft202012), draft.FeaturesOf("bogus"))

	assert.Equal(t, "Draft 2020-12", draft.VersionBadge(draft.FeaturePrefixItems))
	assert.Equal(t, "Draft 2019-09+", draft.VersionBadge(draft.FeatureDependentSchemas))
	assert.Equal(t, "", draft.VersionBadge(draft.FeatureComposition))
}

func TestDetect(t *testing.T) {
	cases := []struct {
		name   string
		schema any
		want   draft.Draft
	}{
		{"boolean true", true, draft.Draft202012},
		{"boolean false", false, draft.Draft202012},
		{"not an object", "hello", draft.Draft202012},
		{"nil", nil, draft.Draft202012},
		{"empty", map[string]any{}, draft.Draft202012},
		{"schema draft-07", map[string]any{"$schema": "http://json-schema.org/draft-07/schema#"}, draft.Draft07},
		{"schema wins over keywords", map[string]any{"$schema": "https://json-schema.org/draft/2019-09/schema", "$defs": map[string]any{"a": true}}, draft.Draft201909},
		{"unknown schema falls through", map[string]any{"$schema": "http://json-schema.org/draft-04/schema#", "definitions": map[string]any{}}, draft.Draft07},
		{"dynamicRef", map[string]any{"$dynamicRef": "#node"}, draft.Draft202012},
		{"empty dynamicRef is falsy", map[string]any{"$dynamicRef": "", "definitions": map[string]any{}}, draft.Draft07},
		{"recursiveRef", map[string]any{"$recursiveRef": "#"}, draft.Draft201909},
		{"recursiveAnchor false still present", map[string]any{"$recursiveAnchor": false}, draft.Draft201909},
		{"recursive before definitions", map[string]any{"$recursiveAnchor": true, "definitions": map[string]any{}}, draft.Draft201909},
		{"prefixItems array", map[string]any{"prefixItems": []any{}}, draft.Draft202012},
		{"prefixItems object ignored", map[string]any{"prefixItems": map[string]any{}, "definitions": map[string]any{}}, draft.Draft07},
		{"unevaluatedProperties false", map[string]any{"unevaluatedProperties": false, "definitions": map[string]any{}}, draft.Draft202012},
		{"unevaluatedItems null", map[string]any{"unevaluatedItems": nil}, draft.Draft202012},
		{"dependentSchemas", map[string]any{"dependentSchemas": map[string]any{}}, draft.Draft202012},
		{"dependentSchemas null", map[string]any{"dependentSchemas": nil, "definitions": map[string]any{}}, draft.Draft07},
		{"definitions", map[string]any{"definitions": map[string]any{"a": true}}, draft.Draft07},
		{"definitions before $defs", map[string]any{"definitions": map[string]any{}, "$defs": map[string]any{}}, draft.Draft07},
		{"$defs", map[string]any{"$defs": map[string]any{}}, draft.Draft202012},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, draft.Detect(tc.schema))
		})
	}
}

func TestDetect_2019WithoutRecursiveKeywordsLooksLatest(t *testing.T) {
	s := map[string]any{"type": "object", "unevaluatedProperties": false}
	assert.Equal(t, draft.Draft202012, draft.Detect(s))
}

func TestIsCompatible(t *testing.T) {
	dyn := map[string]any{"$dynamicRef": "#node"}
	uneval := map[string]any{"unevaluatedItems": false}
	legacy := map[string]any{"definitions": map[string]any{}}
	nested := map[string]any{"properties": map[string]any{"a": map[string]any{"$dynamicRef": "#x"}}}

	assert.False(t, draft.IsCompatible(dyn, draft.Draft07))
	assert.False(t, draft.IsCompatible(dyn, draft.Draft201909))
	assert.True(t, draft.IsCompatible(dyn, draft.Draft202012))

	assert.True(t, draft.IsCompatible(uneval, draft.Draft07), "falsy values are not flagged")
	assert.True(t, draft.IsCompatible(map[string]any{"unevaluatedItems": true}, draft.Draft201909))
	assert.False(t, draft.IsCompatible(map[string]any{"unevaluatedItems": true}, draft.Draft07))

	assert.True(t, draft.IsCompatible(legacy, draft.Draft07))
	assert.False(t, draft.IsCompatible(legacy, draft.Draft202012))
	assert.False(t, draft.IsCompatible(map[string]any{"$recursiveAnchor": false}, draft.Draft202012))

	assert.True(t, draft.IsCompatible(nested, draft.Draft07), "only the root is inspected")
	for _, d := range draft.Supported() {
		assert.True(t, draft.IsCompatible(true, d))
	}
}

func TestLegacyKeywords(t *testing.T) {
	m := map[string]any{"definitions": 1, "$recursiveRef": "#", "type": "object"}
	assert.Equal(t, []string{"$recursiveRef", "definitions"}, draft.LegacyKeywords(m))
	assert.Nil(t, draft.LegacyKeywords(map[string]any{}))
}
