package draft

// Feature names an advanced keyword family whose availability depends on the
// dialect.
type Feature string

const (
	FeatureConditionals          Feature = "conditionals"          // if/then/else
	FeatureComposition           Feature = "composition"           // allOf/anyOf/oneOf/not
	FeatureDependentSchemas      Feature = "dependentSchemas"      // dependentSchemas
	FeaturePrefixItems           Feature = "prefixItems"           // prefixItems tuples
	FeatureDynamicRefs           Feature = "dynamicRefs"           // $dynamicRef/$dynamicAnchor
	FeatureUnevaluatedProperties Feature = "unevaluatedProperties" // unevaluatedProperties
	FeatureUnevaluatedItems      Feature = "unevaluatedItems"      // unevaluatedItems
)

// AllFeatures lists every Feature in table order.
func AllFeatures() []Feature {
	return []Feature{
		FeatureConditionals,
		FeatureComposition,
		FeatureDependentSchemas,
		FeaturePrefixItems,
		FeatureDynamicRefs,
		FeatureUnevaluatedProperties,
		FeatureUnevaluatedItems,
	}
}

// Features is the keyword availability of one dialect.
type Features struct {
	Conditionals          bool `json:"conditionals" yaml:"conditionals"`
	Composition           bool `json:"composition" yaml:"composition"`
	DependentSchemas      bool `json:"dependentSchemas" yaml:"dependentSchemas"`
	PrefixItems           bool `json:"prefixItems" yaml:"prefixItems"`
	DynamicRefs           bool `json:"dynamicRefs" yaml:"dynamicRefs"`
	UnevaluatedProperties bool `json:"unevaluatedProperties" yaml:"unevaluatedProperties"`
	UnevaluatedItems      bool `json:"unevaluatedItems" yaml:"unevaluatedItems"`
}

// 2019-09 only has the basic unevaluated* semantics; 2020-12 refines them.
// 2019-09 spells dynamic references $recursiveRef/$recursiveAnchor, so
// DynamicRefs stays false there.
var featureTable = map[Draft]Features{
	Draft07: {
		Conditionals: true,
		Composition:  true,
	},
	Draft201909: {
		Conditionals:          true,
		Composition:           true,
		DependentSchemas:      true,
		UnevaluatedProperties: true,
		UnevaluatedItems:      true,
	},
	Draft202012: {
		Conditionals:          true,
		Composition:           true,
		DependentSchemas:      true,
		PrefixItems:           true,
		DynamicRefs:           true,
		UnevaluatedProperties: true,
		UnevaluatedItems:      true,
	},
}

// FeaturesOf returns the feature set of d; unknown dialects get 2020-12's.
func FeaturesOf(d Draft) Features {
	if f, ok := featureTable[d]; ok {
		return f
	}
	return featureTable[Latest]
}

// Has reports whether f is available in the set.
func (fs Features) Has(f Feature) bool {
	switch f {
	case FeatureConditionals:
		return fs.Conditionals
	case FeatureComposition:
		return fs.Composition
	case FeatureDependentSchemas:
		return fs.DependentSchemas
	case FeaturePrefixItems:
		return fs.PrefixItems
	case FeatureDynamicRefs:
		return fs.DynamicRefs
	case FeatureUnevaluatedProperties:
		return fs.UnevaluatedProperties
	case FeatureUnevaluatedItems:
		return fs.UnevaluatedItems
	}
	return false
}

// IsFeatureAvailable reports whether f may be used in dialect d.
func IsFeatureAvailable(d Draft, f Feature) bool {
	return FeaturesOf(d).Has(f)
}

// IntroducedIn returns the oldest dialect offering f.
func IntroducedIn(f Feature) Draft {
	switch f {
	case FeaturePrefixItems, FeatureDynamicRefs:
		return Draft202012
	case FeatureDependentSchemas, FeatureUnevaluatedProperties, FeatureUnevaluatedItems:
		return Draft201909
	default:
		return Draft07
	}
}

// VersionBadge returns the label an editor shows next to a feature, or "" for
// features every supported dialect has.
func VersionBadge(f Feature) string {
	switch IntroducedIn(f) {
	case Draft202012:
		return "Draft 2020-12"
	case Draft201909:
		return "Draft 2019-09+"
	default:
		return ""
	}
}
