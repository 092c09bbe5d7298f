// Package source decodes schema and data documents written as JSON or YAML
// into canonical JSON values, remembering where every value starts so that
// validation errors can point back into the document.
package source

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reoring/draftkit/internal/pointer"
)

// Format is the syntax of a document.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath guesses the format of a file from its extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// Position is a 1-based line and column.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// Document is a decoded document.
type Document struct {
	Value  any
	Format Format

	positions map[string]Position
}

// Position returns where the value at JSON Pointer ptr starts.
func (d *Document) Position(ptr string) (Position, bool) {
	if d == nil {
		return Position{}, false
	}
	p, ok := d.positions[pointer.Normalize(ptr)]
	return p, ok
}

// Locate returns the position of ptr or, when ptr does not exist in the
// document (a missing required property, say), of its nearest ancestor.
func (d *Document) Locate(ptr string) (Position, bool) {
	tokens := pointer.Split(ptr)
	for i := len(tokens); i >= 0; i-- {
		if p, ok := d.Position(pointer.FromTokens(tokens[:i])); ok {
			return p, true
		}
	}
	return Position{}, false
}

// SyntaxError is a malformed document. Line is 0 when the decoder did not
// report a position.
type SyntaxError struct {
	Format Format
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("%s syntax error at %d:%d: %s", e.Format, e.Line, e.Column, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("%s syntax error at line %d: %s", e.Format, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s syntax error: %s", e.Format, e.Msg)
}

// DuplicateKeyError reports a duplicate key found in a mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	Path      string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q in %s at %d:%d (first at %d:%d)", e.Key, e.Path, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// Parse decodes b. With FormatAuto a document whose first significant byte
// opens a JSON object or array is read as JSON and anything else as YAML.
func Parse(b []byte, format Format) (*Document, error) {
	if format == FormatAuto {
		format = sniff(b)
	}
	switch format {
	case FormatJSON:
		return parseJSON(b)
	case FormatYAML:
		return parseYAML(b)
	default:
		return nil, fmt.Errorf("source: unsupported format %q", format)
	}
}

// Decode is Parse without positions.
func Decode(b []byte, format Format) (any, error) {
	doc, err := Parse(b, format)
	if err != nil {
		return nil, err
	}
	return doc.Value, nil
}

func sniff(b []byte) Format {
	t := bytes.TrimLeft(b, " \t\r\n\ufeff")
	if len(t) > 0 && (t[0] == '{' || t[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}
