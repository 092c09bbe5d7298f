package validate

import (
	"fmt"

	"github.com/reoring/draftkit/draft"
	"github.com/reoring/draftkit/source"
)

// Validate checks data against schema using the engine for dialect d,
// detected from the schema when d is empty.
//
// Validate never panics and never fails: a schema that does not compile, an
// engine error or an engine panic is reported as one error at "/".
func Validate(schema, data any, d draft.Draft, opts Options) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = failure(fmt.Errorf("validation engine panic: %v", r))
		}
	}()
	if d == "" {
		d = draft.Detect(schema)
	}
	compiled, err := New(d, opts).Compile(schema)
	if err != nil {
		return failure(err)
	}
	errs, err := compiled.Validate(data)
	if err != nil {
		return failure(err)
	}
	if len(errs) == 0 {
		return valid()
	}
	return Result{Errors: errs}
}

// ValidateDocument parses doc as JSON or YAML and validates the result,
// attaching the line and column of the offending value to every error.
// A document that does not parse yields one error at "/".
func ValidateDocument(schema any, doc []byte, format source.Format, d draft.Draft, opts Options) Result {
	parsed, err := source.Parse(doc, format)
	if err != nil {
		res := failure(err)
		if line, col := errorPosition(err); line > 0 {
			res.Errors[0].Line, res.Errors[0].Column = line, col
		}
		return res
	}
	res := Validate(schema, parsed.Value, d, opts)
	if res.Valid {
		return res
	}
	for i := range res.Errors {
		if pos, ok := parsed.Locate(res.Errors[i].Path); ok {
			res.Errors[i].Line, res.Errors[i].Column = pos.Line, pos.Column
		}
	}
	return res
}

func errorPosition(err error) (int, int) {
	switch e := err.(type) {
	case *source.SyntaxError:
		return e.Line, e.Column
	case *source.DuplicateKeyError:
		return e.Line, e.Col
	}
	return 0, 0
}

var (
	_ Engine = (*santhoshEngine)(nil)
	_ Engine = (*gojsonschemaEngine)(nil)
)
