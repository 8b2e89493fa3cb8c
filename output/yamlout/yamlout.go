// Package yamlout is a tagser Encoder producing YAML. It builds a yaml.v3
// node tree in traversal order, so field order matches the text form.
package yamlout

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	tagser "github.com/reoring/tagser"
)

// DefaultIndent is the indentation width used by New.
const DefaultIndent = 2

// New returns an encoder factory for tagser.WithEncoder.
func New() func() tagser.Encoder { return WithIndent(DefaultIndent) }

// WithIndent returns an encoder factory using n spaces of indentation.
func WithIndent(n int) func() tagser.Encoder {
	return func() tagser.Encoder { return &encoder{indent: n} }
}

type encoder struct {
	root   *yaml.Node
	stack  []*yaml.Node
	indent int
}

func (e *encoder) add(n *yaml.Node) {
	if len(e.stack) == 0 {
		e.root = n
		return
	}
	top := e.stack[len(e.stack)-1]
	top.Content = append(top.Content, n)
}

func (e *encoder) open(kind yaml.Kind, tag string) {
	n := &yaml.Node{Kind: kind, Tag: tag}
	e.add(n)
	e.stack = append(e.stack, n)
}

func (e *encoder) BeginObject() { e.open(yaml.MappingNode, "!!map") }
func (e *encoder) EndObject()   { e.stack = e.stack[:len(e.stack)-1] }
func (e *encoder) BeginList()   { e.open(yaml.SequenceNode, "!!seq") }
func (e *encoder) EndList()     { e.stack = e.stack[:len(e.stack)-1] }

func (e *encoder) Key(name string) {
	e.add(&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name})
}

func (e *encoder) Scalar(s tagser.Scalar) {
	tag, value := scalarTag(s)
	e.add(&yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value})
}

func (e *encoder) Null() {
	e.add(&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"})
}

func (e *encoder) Result() (string, error) {
	if e.root == nil {
		return "", nil
	}
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(e.indent)
	if err := enc.Encode(e.root); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func scalarTag(s tagser.Scalar) (string, string) {
	switch s.Kind {
	case tagser.ScalarBool:
		return "!!bool", s.Text
	case tagser.ScalarInt, tagser.ScalarUint:
		return "!!int", s.Text
	case tagser.ScalarFloat:
		return "!!float", yamlFloat(s.Text)
	case tagser.ScalarNumber:
		if strings.ContainsAny(s.Text, ".eE") {
			return "!!float", s.Text
		}
		return "!!int", s.Text
	default:
		return "!!str", s.Text
	}
}

func yamlFloat(text string) string {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return text
	}
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return text
}
