package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/reoring/draftkit/internal/pointer"
)

// maxAliasDepth bounds alias expansion.
const maxAliasDepth = 64

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// parseYAML decodes a single YAML document through yaml.Node so that
// duplicate keys and positions are available.
func parseYAML(b []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &SyntaxError{Format: FormatYAML, Msg: "empty document"}
		}
		return nil, yamlSyntaxError(err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, yamlSyntaxError(err)
		}
		return nil, &SyntaxError{Format: FormatYAML, Line: extra.Line, Column: extra.Column,
			Msg: "multiple documents in stream"}
	}
	c := &yamlConverter{positions: map[string]Position{}}
	v, err := c.node(&root, pointer.Path{}, 0)
	if err != nil {
		return nil, err
	}
	return &Document{Value: v, Format: FormatYAML, positions: c.positions}, nil
}

type yamlConverter struct {
	positions map[string]Position
}

func (c *yamlConverter) node(n *yaml.Node, p pointer.Path, depth int) (any, error) {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.node(n.Content[0], p, depth)
	}
	c.positions[p.String()] = Position{Line: n.Line, Column: n.Column}
	switch n.Kind {
	case yaml.AliasNode:
		if depth >= maxAliasDepth || n.Alias == nil {
			return nil, &SyntaxError{Format: FormatYAML, Line: n.Line, Column: n.Column, Msg: "alias nesting too deep"}
		}
		v, err := c.node(n.Alias, p, depth+1)
		c.positions[p.String()] = Position{Line: n.Line, Column: n.Column}
		return v, err
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, &SyntaxError{Format: FormatYAML, Line: k.Line, Column: k.Column, Msg: "mapping key is not a scalar"}
			}
			key := k.Value
			if pos, dup := first[key]; dup {
				return nil, &DuplicateKeyError{Key: key, Path: p.String(),
					FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[key] = [2]int{k.Line, k.Column}
			val, err := c.node(v, p.Field(key), depth)
			if err != nil {
				return nil, err
			}
			m[key] = val
		}
		return m, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for i, item := range n.Content {
			v, err := c.node(item, p.Index(i), depth)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalar(n), nil
	default:
		return nil, nil
	}
}

// scalar converts a resolved YAML scalar to its JSON counterpart. Numbers
// become json.Number; values JSON cannot express (.nan, .inf) and unknown
// tags stay strings.
func scalar(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
		return n.Value
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return json.Number(strconv.FormatInt(i, 10))
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return json.Number(strconv.FormatUint(u, 10))
		}
		return n.Value
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return json.Number(strconv.FormatFloat(f, 'g', -1, 64))
		}
		return n.Value
	default:
		return n.Value
	}
}

func yamlSyntaxError(err error) error {
	se := &SyntaxError{Format: FormatYAML, Msg: err.Error()}
	if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
		se.Line, _ = strconv.Atoi(m[1])
	}
	return se
}
