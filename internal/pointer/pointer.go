// Package pointer builds and splits RFC 6901 JSON Pointers.
package pointer

import (
	"strconv"
	"strings"
)

// Root is the pointer rendered for the document root.
const Root = "/"

// Path builds JSON Pointer paths in a chain-safe way. The zero value is the root.
type Path struct {
	parts []string
}

// Field appends an object member name, escaping '~' and '/'.
func (p Path) Field(name string) Path {
	return Path{parts: append(append([]string{}, p.parts...), Escape(name))}
}

// Index appends an array index.
func (p Path) Index(i int) Path {
	return Path{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

// String renders the pointer. The root renders as "/".
func (p Path) String() string {
	if len(p.parts) == 0 {
		return Root
	}
	return "/" + strings.Join(p.parts, "/")
}

// FromTokens builds a pointer from unescaped reference tokens.
func FromTokens(tokens []string) string {
	var p Path
	for _, t := range tokens {
		p = p.Field(t)
	}
	return p.String()
}

// Normalize maps the empty pointer used by some engines ("") to "/".
func Normalize(ptr string) string {
	if ptr == "" {
		return Root
	}
	return ptr
}

// Split returns the unescaped reference tokens of ptr. "" and "/" have none.
func Split(ptr string) []string {
	if ptr == "" || ptr == Root {
		return nil
	}
	raw := strings.Split(strings.TrimPrefix(ptr, "/"), "/")
	out := make([]string, len(raw))
	for i, r := range raw {
		out[i] = Unescape(r)
	}
	return out
}

// Escape encodes '~' as "~0" and '/' as "~1".
func Escape(token string) string {
	return strings.ReplaceAll(strings.ReplaceAll(token, "~", "~0"), "/", "~1")
}

// Unescape reverses Escape.
func Unescape(token string) string {
	return strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
}
