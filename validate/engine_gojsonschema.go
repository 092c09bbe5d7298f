package validate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/reoring/draftkit/draft"
	"github.com/reoring/draftkit/internal/pointer"
	"github.com/reoring/draftkit/internal/tree"
)

const rootContext = "(root)"

// gojsonschemaEngine validates draft-07 schemas. The schema loader neither
// auto-detects the dialect nor validates the schema against its meta-schema.
type gojsonschemaEngine struct {
	opts Options
}

func (e *gojsonschemaEngine) Draft() draft.Draft { return draft.Draft07 }

func (e *gojsonschemaEngine) Name() string { return "xeipuuv/gojsonschema" }

func (e *gojsonschemaEngine) Compile(schema any) (Compiled, error) {
	doc, err := prepare(schema)
	if err != nil {
		return nil, err
	}
	if err := localRefsOnly(doc); err != nil {
		return nil, err
	}
	sl := gojsonschema.NewSchemaLoader()
	sl.Draft = gojsonschema.Draft7
	sl.AutoDetect = false
	sl.Validate = false
	sch, err := sl.Compile(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &gojsonschemaCompiled{schema: sch, assertFormat: e.opts.AssertFormat}, nil
}

// localRefsOnly rejects references the loader would have to fetch. Every
// "$ref", resolved against the ids enclosing it, must name the document
// itself or a resource the document declares with an id.
func localRefsOnly(doc any) error {
	declared := map[string]bool{}
	var refs []resolvedRef
	if err := collectRefs(doc, &url.URL{}, declared, &refs); err != nil {
		return err
	}
	for _, r := range refs {
		if r.target != "" && !declared[r.target] {
			return fmt.Errorf("compile schema: reference %q resolves outside the schema", r.ref)
		}
	}
	return nil
}

type resolvedRef struct {
	ref    string
	target string
}

// collectRefs mirrors how gojsonschema scopes ids: an object's own id applies
// to its "$ref", and "const" and "enum" values are literal data.
func collectRefs(node any, base *url.URL, declared map[string]bool, refs *[]resolvedRef) error {
	switch t := node.(type) {
	case []any:
		for _, v := range t {
			if err := collectRefs(v, base, declared, refs); err != nil {
				return err
			}
		}
	case map[string]any:
		idKey := "$id"
		if _, ok := t["id"]; ok {
			idKey = "id"
		}
		if id, ok := t[idKey].(string); ok {
			if u, err := url.Parse(id); err == nil {
				base = base.ResolveReference(u)
				declared[documentURL(base)] = true
			}
		}
		if ref, ok := t["$ref"].(string); ok {
			u, err := url.Parse(ref)
			if err != nil {
				return fmt.Errorf("compile schema: invalid reference %q: %w", ref, err)
			}
			*refs = append(*refs, resolvedRef{ref: ref, target: documentURL(base.ResolveReference(u))})
		}
		for k, v := range t {
			if k == "const" || k == "enum" {
				continue
			}
			if err := collectRefs(v, base, declared, refs); err != nil {
				return err
			}
		}
	}
	return nil
}

// documentURL drops the fragment; "" is the document being compiled.
func documentURL(u *url.URL) string {
	c := *u
	c.Fragment = ""
	c.RawFragment = ""
	return c.String()
}

type gojsonschemaCompiled struct {
	schema       *gojsonschema.Schema
	assertFormat bool
}

func (c *gojsonschemaCompiled) Validate(data any) ([]Error, error) {
	v, err := tree.Normalize(data)
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	res, err := c.schema.Validate(gojsonschema.NewGoLoader(v))
	if err != nil {
		return nil, err
	}
	if res.Valid() {
		return nil, nil
	}
	var out []Error
	for _, re := range res.Errors() {
		if !c.assertFormat && re.Type() == "format" {
			continue
		}
		out = append(out, Error{
			Path:    contextPointer(re.Context()),
			Message: re.Description(),
			Keyword: re.Type(),
		})
	}
	return out, nil
}

// contextPointer turns a gojsonschema context such as "(root)/items/0" into
// a JSON Pointer.
func contextPointer(ctx *gojsonschema.JsonContext) string {
	if ctx == nil {
		return pointer.Root
	}
	p := strings.TrimPrefix(ctx.String("/"), rootContext)
	return pointer.Normalize(p)
}
