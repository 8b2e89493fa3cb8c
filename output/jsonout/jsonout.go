// Package jsonout is a tagser Encoder producing strict JSON through
// goccy/go-json. Field policy and ordering are the same as the text form; only
// the encoding differs (quoted strings, no trailing separators).
package jsonout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	tagser "github.com/reoring/tagser"
)

// Option configures the encoder.
type Option func(*encoder)

// Indent pretty-prints with the given indent unit.
func Indent(unit string) Option { return func(e *encoder) { e.indent = unit } }

// New returns an encoder factory for tagser.WithEncoder.
func New(opts ...Option) func() tagser.Encoder {
	return func() tagser.Encoder {
		e := &encoder{}
		for _, o := range opts {
			o(e)
		}
		return e
	}
}

type frame struct {
	list bool
	n    int
}

type encoder struct {
	buf    tagser.Buffer
	stack  []frame
	indent string
	err    error
}

func (e *encoder) newline() {
	if e.indent == "" {
		return
	}
	e.buf.Append("\n" + strings.Repeat(e.indent, len(e.stack)))
}

// beforeValue writes the element separator inside lists; object entries are
// separated in Key.
func (e *encoder) beforeValue() {
	n := len(e.stack)
	if n == 0 || !e.stack[n-1].list {
		return
	}
	if e.stack[n-1].n > 0 {
		e.buf.Append(",")
	}
	e.stack[n-1].n++
	e.newline()
}

func (e *encoder) BeginObject() {
	e.beforeValue()
	e.buf.Append("{")
	e.stack = append(e.stack, frame{})
}

func (e *encoder) Key(name string) {
	top := &e.stack[len(e.stack)-1]
	if top.n > 0 {
		e.buf.Append(",")
	}
	top.n++
	e.newline()
	e.buf.Append(e.quote(name))
	if e.indent != "" {
		e.buf.Append(": ")
	} else {
		e.buf.Append(":")
	}
}

func (e *encoder) close(brace string) {
	top := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	if top.n > 0 {
		e.newline()
	}
	e.buf.Append(brace)
}

func (e *encoder) EndObject() { e.close("}") }

func (e *encoder) BeginList() {
	e.beforeValue()
	e.buf.Append("[")
	e.stack = append(e.stack, frame{list: true})
}

func (e *encoder) EndList() { e.close("]") }

func (e *encoder) Scalar(s tagser.Scalar) {
	e.beforeValue()
	switch s.Kind {
	case tagser.ScalarBool, tagser.ScalarInt, tagser.ScalarUint:
		e.buf.Append(s.Text)
	case tagser.ScalarFloat:
		f, err := strconv.ParseFloat(s.Text, 64)
		if err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
			e.fail(fmt.Errorf("jsonout: unsupported float value %s", s.Text))
			e.buf.Append("null")
			return
		}
		e.buf.Append(s.Text)
	case tagser.ScalarNumber:
		if !tagser.Number(s.Text).Valid() {
			e.fail(fmt.Errorf("jsonout: invalid number %q", s.Text))
			e.buf.Append("null")
			return
		}
		e.buf.Append(s.Text)
	default:
		e.buf.Append(e.quote(s.Text))
	}
}

func (e *encoder) Null() {
	e.beforeValue()
	e.buf.Append("null")
}

func (e *encoder) Result() (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return e.buf.Result(), nil
}

func (e *encoder) quote(s string) string {
	b, err := j.MarshalNoEscape(s)
	if err != nil {
		e.fail(err)
		return `""`
	}
	return string(b)
}

func (e *encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}
