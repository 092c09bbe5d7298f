// Package draft models the JSON Schema dialects draftkit understands and
// classifies schema documents into one of them.
package draft

import (
	"errors"
	"fmt"
	"strings"
)

// Draft identifies a JSON Schema dialect. The zero value means "not given";
// operations that take an optional Draft detect it from the schema instead.
type Draft string

const (
	Draft07     Draft = "draft-07"
	Draft201909 Draft = "2019-09"
	Draft202012 Draft = "2020-12"

	// Latest is the dialect every migration targets.
	Latest = Draft202012
)

// ErrUnknownDraft is returned by Parse for unrecognized dialect names.
var ErrUnknownDraft = errors.New("draft: unknown JSON Schema draft")

var supported = [...]Draft{Draft07, Draft201909, Draft202012}

// Supported returns the supported dialects, oldest first.
func Supported() []Draft {
	out := make([]Draft, len(supported))
	copy(out, supported[:])
	return out
}

// Valid reports whether d is one of the supported dialects.
func (d Draft) Valid() bool {
	return d.rank() >= 0
}

func (d Draft) String() string { return string(d) }

func (d Draft) rank() int {
	for i, s := range supported {
		if s == d {
			return i
		}
	}
	return -1
}

// Compare orders dialects draft-07 < 2019-09 < 2020-12. Unknown dialects sort
// before every known one.
func (d Draft) Compare(other Draft) int {
	a, b := d.rank(), other.rank()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// URI returns the $schema URI of d. Unknown dialects map to the latest URI.
func (d Draft) URI() string {
	switch d {
	case Draft07:
		return "https://json-schema.org/draft-07/schema"
	case Draft201909:
		return "https://json-schema.org/draft/2019-09/schema"
	default:
		return "https://json-schema.org/draft/2020-12/schema"
	}
}

// DisplayName returns a human-readable name for d.
func (d Draft) DisplayName() string {
	switch d {
	case Draft07:
		return "Draft 07"
	case Draft201909:
		return "Draft 2019-09"
	case Draft202012:
		return "Draft 2020-12 (Latest)"
	default:
		return "Unknown"
	}
}

// Parse resolves user input such as "draft7", "07", "2019", "latest" or a
// $schema URI to a Draft.
func Parse(s string) (Draft, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if tok := uriToken(v); tok != "" {
		return tok, nil
	}
	switch v {
	case "draft-07", "draft07", "draft7", "draft-7", "07", "7":
		return Draft07, nil
	case "2019-09", "draft2019-09", "draft-2019-09", "2019":
		return Draft201909, nil
	case "2020-12", "draft2020-12", "draft-2020-12", "2020", "latest":
		return Draft202012, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDraft, s)
}

// uriToken extracts the dialect from a $schema-like string, checking the
// tokens in a fixed order.
func uriToken(s string) Draft {
	switch {
	case strings.Contains(s, "draft-07"):
		return Draft07
	case strings.Contains(s, "2019-09"):
		return Draft201909
	case strings.Contains(s, "2020-12"):
		return Draft202012
	}
	return ""
}
