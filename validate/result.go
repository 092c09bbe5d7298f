package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/draftkit/internal/pointer"
)

// Error is a single validation failure. Path is a JSON Pointer into the data
// document ("/" for the root). Line and Column are 1-based and only set when
// the data came from a document with positions.
type Error struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
	Keyword string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
}

func (e Error) String() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (%d:%d): %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Errors is a collection of validation errors that implements error.
type Errors []Error

// Error summarizes the first few errors.
func (es Errors) Error() string {
	if len(es) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(es)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", es[i].Message, es[i].Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsErrors extracts Errors from an error using errors.As internally.
func AsErrors(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}
	var es Errors
	if errors.As(err, &es) {
		return es, true
	}
	return nil, false
}

// Result is the outcome of validating one data value. Errors is never nil.
type Result struct {
	Valid  bool    `json:"valid" yaml:"valid"`
	Errors []Error `json:"errors" yaml:"errors"`
}

// Err returns nil for a valid result and the errors otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return Errors(r.Errors)
}

func valid() Result { return Result{Valid: true, Errors: []Error{}} }

// failure reports err as a single error at the document root.
func failure(err error) Result {
	return Result{Errors: []Error{{Path: pointer.Root, Message: err.Error()}}}
}
