// Package yamlsrc decodes YAML documents into tagser values with yaml.v3.
// Mappings keep their key order as tagser.Record.
package yamlsrc

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	tagser "github.com/reoring/tagser"
	eng "github.com/reoring/tagser/internal/engine"
)

// Decode reads the first YAML document from r.
func Decode(r io.Reader, opt eng.Options) (any, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return FromNode(&doc, opt)
}

// FromNode converts a parsed yaml.v3 node tree.
func FromNode(n *yaml.Node, opt eng.Options) (any, error) {
	c := converter{opt: opt}
	return c.value(n, "", 0)
}

type converter struct {
	opt eng.Options
}

func (c *converter) value(n *yaml.Node, path string, depth int) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.value(n.Content[0], path, depth)
	case yaml.AliasNode:
		return c.value(n.Alias, path, depth)
	case yaml.MappingNode:
		if err := c.opt.CheckDepth(path, depth); err != nil {
			return nil, err
		}
		return c.mapping(n, path, depth)
	case yaml.SequenceNode:
		if err := c.opt.CheckDepth(path, depth); err != nil {
			return nil, err
		}
		out := make([]any, 0, len(n.Content))
		for i, item := range n.Content {
			v, err := c.value(item, path+"["+strconv.Itoa(i)+"]", depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		return scalar(n)
	}
	return nil, fmt.Errorf("yamlsrc: unsupported node kind %d at line %d", n.Kind, n.Line)
}

func (c *converter) mapping(n *yaml.Node, path string, depth int) (any, error) {
	rec := tagser.Record{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("yamlsrc: non-scalar key at line %d", k.Line)
		}
		p := eng.JoinPath(path, k.Value)
		val, err := c.value(v, p, depth+1)
		if err != nil {
			return nil, err
		}
		if rec, err = c.opt.AddEntry(rec, k.Value, val, p); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// scalar resolves a scalar by its tag. Numbers keep their source text when it
// is spelled as a JSON number; other spellings (hex, octal, leading zeros,
// underscores, a leading '+') are decoded by yaml.v3.
func scalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		if num := tagser.Number(n.Value); num.Valid() {
			return num, nil
		}
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return u, nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	case "!!float":
		if num := tagser.Number(n.Value); num.Valid() {
			return num, nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	default:
		return n.Value, nil
	}
}
