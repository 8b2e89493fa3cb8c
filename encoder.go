package tagser

// ScalarKind classifies a scalar so encoders can pick a representation.
type ScalarKind int

const (
	ScalarString ScalarKind = iota
	ScalarBool
	ScalarInt
	ScalarUint
	ScalarFloat
	ScalarComplex
	ScalarNumber // Numeric text carried verbatim (Number).
	ScalarText   // Output of encoding.TextMarshaler.
)

// Scalar is a leaf value already rendered in its natural textual form.
type Scalar struct {
	Kind ScalarKind
	Text string
}

// Encoder receives the structural events of one traversal. Keys are emitted
// only inside objects, immediately before the key's value.
type Encoder interface {
	BeginObject()
	Key(name string)
	EndObject()
	BeginList()
	EndList()
	Scalar(s Scalar)
	Null()
	// Result returns the encoded document once the traversal finished.
	Result() (string, error)
}

// NullToken is what the text encoder writes for absent values.
const NullToken = "null"

// Palette decorates text encoder output. Nil functions leave text unchanged.
type Palette struct {
	Key    func(string) string
	Scalar func(ScalarKind, string) string
	Null   func(string) string
	Punct  func(string) string
}

// NewTextEncoder returns the brace-delimited text encoder. Objects render as
// `{k: v, }` with a separator after every entry including the last; lists
// render as `[a, b]`. Strings are written without quoting or escaping.
func NewTextEncoder(p *Palette) Encoder {
	if p == nil {
		p = &Palette{}
	}
	return &textEncoder{pal: p}
}

func newPlainText() Encoder { return NewTextEncoder(nil) }

type textFrame struct {
	list bool
	n    int
}

type textEncoder struct {
	buf   Buffer
	pal   *Palette
	stack []textFrame
}

func (e *textEncoder) punct(s string) {
	if e.pal.Punct != nil {
		s = e.pal.Punct(s)
	}
	e.buf.Append(s)
}

// beforeValue separates list elements.
func (e *textEncoder) beforeValue() {
	if n := len(e.stack); n > 0 && e.stack[n-1].list && e.stack[n-1].n > 0 {
		e.punct(", ")
	}
}

// afterValue terminates object entries and counts list elements.
func (e *textEncoder) afterValue() {
	n := len(e.stack)
	if n == 0 {
		return
	}
	top := &e.stack[n-1]
	top.n++
	if !top.list {
		e.punct(", ")
	}
}

func (e *textEncoder) BeginObject() {
	e.beforeValue()
	e.punct("{")
	e.stack = append(e.stack, textFrame{})
}

func (e *textEncoder) Key(name string) {
	if e.pal.Key != nil {
		name = e.pal.Key(name)
	}
	e.buf.Append(name)
	e.punct(": ")
}

func (e *textEncoder) EndObject() {
	e.stack = e.stack[:len(e.stack)-1]
	e.punct("}")
	e.afterValue()
}

func (e *textEncoder) BeginList() {
	e.beforeValue()
	e.punct("[")
	e.stack = append(e.stack, textFrame{list: true})
}

func (e *textEncoder) EndList() {
	e.stack = e.stack[:len(e.stack)-1]
	e.punct("]")
	e.afterValue()
}

func (e *textEncoder) Scalar(s Scalar) {
	e.beforeValue()
	text := s.Text
	if e.pal.Scalar != nil {
		text = e.pal.Scalar(s.Kind, text)
	}
	e.buf.Append(text)
	e.afterValue()
}

func (e *textEncoder) Null() {
	e.beforeValue()
	text := NullToken
	if e.pal.Null != nil {
		text = e.pal.Null(text)
	}
	e.buf.Append(text)
	e.afterValue()
}

func (e *textEncoder) Result() (string, error) { return e.buf.Result(), nil }
