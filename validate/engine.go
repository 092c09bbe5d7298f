// Package validate checks data against a schema with a validation engine
// chosen per JSON Schema dialect.
//
// draft-07 schemas run on github.com/xeipuuv/gojsonschema; 2019-09 and
// 2020-12 schemas run on github.com/santhosh-tekuri/jsonschema/v6. Engines
// work offline: no remote reference is ever fetched.
package validate

import (
	"fmt"

	"github.com/reoring/draftkit/draft"
	"github.com/reoring/draftkit/internal/tree"
)

// Engine compiles schemas of one dialect.
type Engine interface {
	Draft() draft.Draft
	Name() string
	Compile(schema any) (Compiled, error)
}

// Compiled is a schema ready to validate data. Validate returns the failures
// in engine order, or an error when the engine itself failed.
type Compiled interface {
	Validate(data any) ([]Error, error)
}

// Options configures an Engine.
type Options struct {
	// AssertFormat reports "format" mismatches as errors.
	AssertFormat bool
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{AssertFormat: true}
}

// New returns a fresh engine for dialect d. Unknown dialects get the 2020-12
// engine.
func New(d draft.Draft, opts Options) Engine {
	switch d {
	case draft.Draft07:
		return &gojsonschemaEngine{opts: opts}
	case draft.Draft201909:
		return newSanthoshEngine(draft.Draft201909, opts)
	default:
		return newSanthoshEngine(draft.Draft202012, opts)
	}
}

// EngineInfo describes the engine configured for a dialect.
type EngineInfo struct {
	Draft     draft.Draft    `json:"draft" yaml:"draft"`
	Engine    string         `json:"engine" yaml:"engine"`
	SchemaURI string         `json:"schemaURI" yaml:"schemaURI"`
	Supports  draft.Features `json:"supports" yaml:"supports"`
}

// Info reports which engine validates dialect d.
func Info(d draft.Draft) EngineInfo {
	e := New(d, DefaultOptions())
	return EngineInfo{
		Draft:     e.Draft(),
		Engine:    e.Name(),
		SchemaURI: e.Draft().URI(),
		Supports:  draft.FeaturesOf(e.Draft()),
	}
}

// prepare normalizes schema into canonical JSON values and drops the root
// "$schema": the dialect is decided by the caller, never by the document.
func prepare(schema any) (any, error) {
	doc, err := tree.Normalize(schema)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	if m, ok := tree.Object(doc); ok {
		delete(m, "$schema")
	}
	return doc, nil
}
