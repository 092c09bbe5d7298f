package validate

import (
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/reoring/draftkit/draft"
	"github.com/reoring/draftkit/internal/pointer"
	"github.com/reoring/draftkit/internal/tree"
)

// resourceURL is where the compiled schema lives. No loader is installed, so
// references outside the document fail to resolve instead of being fetched.
const resourceURL = "mem:///schema.json"

type santhoshEngine struct {
	d       draft.Draft
	dialect *jsonschema.Draft
	opts    Options
}

// newSanthoshEngine configures the v6 compiler for d. New only asks for
// 2019-09 and 2020-12; CheckSchema also uses it for draft-07 meta-validation.
func newSanthoshEngine(d draft.Draft, opts Options) *santhoshEngine {
	switch d {
	case draft.Draft07:
		return &santhoshEngine{d: d, dialect: jsonschema.Draft7, opts: opts}
	case draft.Draft201909:
		return &santhoshEngine{d: d, dialect: jsonschema.Draft2019, opts: opts}
	default:
		return &santhoshEngine{d: draft.Draft202012, dialect: jsonschema.Draft2020, opts: opts}
	}
}

func (e *santhoshEngine) Draft() draft.Draft { return e.d }

func (e *santhoshEngine) Name() string { return "santhosh-tekuri/jsonschema/v6" }

func (e *santhoshEngine) compiler() *jsonschema.Compiler {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(e.dialect)
	c.UseLoader(jsonschema.SchemeURLLoader{})
	if e.opts.AssertFormat {
		c.AssertFormat()
	}
	return c
}

// Compile builds a validator for schema. The compiler always checks the
// schema against its meta-schema; violations confined to annotation keywords
// are dropped and the schema recompiled, so only errors that affect
// validation fail the compile.
func (e *santhoshEngine) Compile(schema any) (Compiled, error) {
	return e.compile(schema, false)
}

// compile builds schema. With strict set every meta-schema violation is an
// error.
func (e *santhoshEngine) compile(schema any, strict bool) (Compiled, error) {
	doc, err := prepare(schema)
	if err != nil {
		return nil, err
	}
	for {
		c := e.compiler()
		if err := c.AddResource(resourceURL, doc); err != nil {
			return nil, fmt.Errorf("add schema: %w", err)
		}
		sch, err := c.Compile(resourceURL)
		if err == nil {
			return &santhoshCompiled{schema: sch}, nil
		}
		if strict || !dropInvalidAnnotations(doc, err) {
			return nil, fmt.Errorf("compile schema: %w", err)
		}
	}
}

type santhoshCompiled struct {
	schema *jsonschema.Schema
}

func (c *santhoshCompiled) Validate(data any) ([]Error, error) {
	v, err := tree.Normalize(data)
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	err = c.schema.Validate(v)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, err
	}
	return leaves(ve, message.NewPrinter(language.English), nil), nil
}

// leaves flattens the error tree depth-first, keeping only the errors that
// have no causes.
func leaves(ve *jsonschema.ValidationError, p *message.Printer, out []Error) []Error {
	if len(ve.Causes) == 0 {
		return append(out, Error{
			Path:    pointer.FromTokens(ve.InstanceLocation),
			Message: ve.ErrorKind.LocalizedString(p),
			Keyword: lastKeyword(ve.ErrorKind.KeywordPath()),
		})
	}
	for _, cause := range ve.Causes {
		out = leaves(cause, p, out)
	}
	return out
}

func lastKeyword(path []string) string {
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1]
}
