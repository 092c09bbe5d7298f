package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/reoring/draftkit/internal/pointer"
)

// jsonWalker decodes a JSON document token by token, recording the start of
// every value and rejecting duplicate object keys.
type jsonWalker struct {
	dec       *json.Decoder
	src       []byte
	lines     lineIndex
	positions map[string]Position
}

func parseJSON(b []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	w := &jsonWalker{dec: dec, src: b, lines: newLineIndex(b), positions: map[string]Position{}}

	v, err := w.value(pointer.Path{})
	if err != nil {
		return nil, w.syntaxError(err)
	}
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, w.syntaxError(err)
		}
		pos := w.lines.position(dec.InputOffset())
		return nil, &SyntaxError{Format: FormatJSON, Line: pos.Line, Column: pos.Column,
			Msg: fmt.Sprintf("unexpected %v after top-level value", tok)}
	}
	return &Document{Value: v, Format: FormatJSON, positions: w.positions}, nil
}

// next returns the offset where the next token begins. The decoder consumes
// separators lazily, so they are skipped here.
func (w *jsonWalker) next() int64 {
	off := w.dec.InputOffset()
	for off < int64(len(w.src)) {
		switch w.src[off] {
		case ' ', '\t', '\r', '\n', ':', ',':
			off++
		default:
			return off
		}
	}
	return off
}

func (w *jsonWalker) value(p pointer.Path) (any, error) {
	w.positions[p.String()] = w.lines.position(w.next())
	tok, err := w.dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		return w.object(p)
	case '[':
		return w.array(p)
	}
	return nil, fmt.Errorf("unexpected %q", rune(delim))
}

func (w *jsonWalker) object(p pointer.Path) (any, error) {
	m := map[string]any{}
	first := map[string]Position{}
	for w.dec.More() {
		at := w.lines.position(w.next())
		tok, err := w.dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		if prev, dup := first[key]; dup {
			return nil, &DuplicateKeyError{Key: key, Path: p.String(),
				FirstLine: prev.Line, FirstCol: prev.Column, Line: at.Line, Col: at.Column}
		}
		first[key] = at
		v, err := w.value(p.Field(key))
		if err != nil {
			return nil, err
		}
		m[key] = v
	}
	if _, err := w.dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

func (w *jsonWalker) array(p pointer.Path) (any, error) {
	a := []any{}
	for i := 0; w.dec.More(); i++ {
		v, err := w.value(p.Index(i))
		if err != nil {
			return nil, err
		}
		a = append(a, v)
	}
	if _, err := w.dec.Token(); err != nil {
		return nil, err
	}
	return a, nil
}

func (w *jsonWalker) syntaxError(err error) error {
	var dup *DuplicateKeyError
	if errors.As(err, &dup) {
		return dup
	}
	se := &SyntaxError{Format: FormatJSON, Msg: err.Error()}
	var jse *json.SyntaxError
	switch {
	case errors.As(err, &jse):
		pos := w.lines.position(jse.Offset)
		se.Line, se.Column = pos.Line, pos.Column
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		se.Msg = "unexpected end of input"
		pos := w.lines.position(int64(len(w.src)))
		se.Line, se.Column = pos.Line, pos.Column
	}
	return se
}
