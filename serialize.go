package tagser

import (
	"encoding"
	"reflect"
	"sort"
	"strconv"
)

// Serializer renders values through an Encoder, applying each struct type's
// resolved schema. A Serializer is immutable and safe for concurrent use.
type Serializer struct {
	resolver   *Resolver
	newEncoder func() Encoder
	maxDepth   int
}

// New returns a Serializer using the default resolver and the text encoder
// unless options say otherwise.
func New(opts ...Option) *Serializer {
	s := &Serializer{resolver: defaultResolver, newEncoder: newPlainText}
	for _, o := range opts {
		o(s)
	}
	return s
}

var defaultSerializer = New()

// Serialize renders v in the brace-delimited text form:
//
//	{firstName: Alice, age: 29, }
func Serialize(v any) (string, error) { return defaultSerializer.Serialize(v) }

// MustSerialize is like Serialize but panics on error.
func MustSerialize(v any) string {
	out, err := Serialize(v)
	if err != nil {
		panic(err)
	}
	return out
}

// Serialize renders v. On error no partial output is returned.
func (s *Serializer) Serialize(v any) (string, error) {
	w := &walker{
		s:       s,
		enc:     s.newEncoder(),
		visited: map[visitKey]string{},
	}
	if err := w.walk(reflect.ValueOf(v), "", 0); err != nil {
		return "", err
	}
	return w.enc.Result()
}

var (
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	recordType        = reflect.TypeFor[Record]()
	numberType        = reflect.TypeFor[Number]()
)

// visitKey identifies a reference on the current path. The type is part of
// the key because a struct and its first field share an address.
type visitKey struct {
	ptr uintptr
	typ reflect.Type
}

type walker struct {
	s       *Serializer
	enc     Encoder
	visited map[visitKey]string // reference -> path where it was entered
}

func (w *walker) walk(v reflect.Value, path string, depth int) error {
	if !v.IsValid() {
		w.enc.Null()
		return nil
	}
	if handled, err := w.text(v, path); handled {
		return err
	}
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			w.enc.Null()
			return nil
		}
		return w.walk(v.Elem(), path, depth)
	case reflect.Pointer:
		if v.IsNil() {
			w.enc.Null()
			return nil
		}
		return w.guard(v, path, func() error { return w.walk(v.Elem(), path, depth) })
	case reflect.Bool:
		w.enc.Scalar(Scalar{Kind: ScalarBool, Text: strconv.FormatBool(v.Bool())})
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w.enc.Scalar(Scalar{Kind: ScalarInt, Text: strconv.FormatInt(v.Int(), 10)})
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		w.enc.Scalar(Scalar{Kind: ScalarUint, Text: strconv.FormatUint(v.Uint(), 10)})
	case reflect.Float32:
		w.enc.Scalar(Scalar{Kind: ScalarFloat, Text: strconv.FormatFloat(v.Float(), 'g', -1, 32)})
	case reflect.Float64:
		w.enc.Scalar(Scalar{Kind: ScalarFloat, Text: strconv.FormatFloat(v.Float(), 'g', -1, 64)})
	case reflect.Complex64:
		w.enc.Scalar(Scalar{Kind: ScalarComplex, Text: strconv.FormatComplex(v.Complex(), 'g', -1, 64)})
	case reflect.Complex128:
		w.enc.Scalar(Scalar{Kind: ScalarComplex, Text: strconv.FormatComplex(v.Complex(), 'g', -1, 128)})
	case reflect.String:
		kind := ScalarString
		if v.Type() == numberType {
			kind = ScalarNumber
		}
		w.enc.Scalar(Scalar{Kind: kind, Text: v.String()})
	case reflect.Struct:
		return w.object(v, path, depth)
	case reflect.Map:
		if v.IsNil() {
			w.enc.Null()
			return nil
		}
		return w.guard(v, path, func() error { return w.mapValue(v, path, depth) })
	case reflect.Slice:
		if v.IsNil() {
			w.enc.Null()
			return nil
		}
		if v.Type() == recordType {
			return w.guard(v, path, func() error { return w.record(v.Interface().(Record), path, depth) })
		}
		if v.Len() == 0 {
			return w.list(v, path, depth)
		}
		return w.guard(v, path, func() error { return w.list(v, path, depth) })
	case reflect.Array:
		return w.list(v, path, depth)
	default:
		return &UnsupportedTypeError{Type: v.Type(), Path: path}
	}
	return nil
}

// text renders v through encoding.TextMarshaler when it implements it.
// Pointer-receiver methods also apply to non-addressable values, through a
// copy, so v and &v render the same.
func (w *walker) text(v reflect.Value, path string) (bool, error) {
	if v.Kind() == reflect.Interface || !v.CanInterface() {
		return false, nil
	}
	if embedsTextMarshaler(derefType(v.Type())) {
		return false, nil
	}
	var tm encoding.TextMarshaler
	switch {
	case v.Type().Implements(textMarshalerType):
		if v.Kind() == reflect.Pointer && v.IsNil() {
			return false, nil
		}
		tm = v.Interface().(encoding.TextMarshaler)
	case reflect.PointerTo(v.Type()).Implements(textMarshalerType):
		var p reflect.Value
		if v.CanAddr() {
			p = v.Addr()
		} else {
			p = reflect.New(v.Type())
			p.Elem().Set(v)
		}
		tm = p.Interface().(encoding.TextMarshaler)
	default:
		return false, nil
	}
	b, err := tm.MarshalText()
	if err != nil {
		return true, &MarshalTextError{Path: path, Err: err}
	}
	w.enc.Scalar(Scalar{Kind: ScalarText, Text: string(b)})
	return true, nil
}

// embedsTextMarshaler reports whether struct type t has an embedded field
// that could promote MarshalText. Such structs are walked through their
// schema, so the embedded field's directives still apply.
func embedsTextMarshaler(t reflect.Type) bool {
	if t == nil || t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.Anonymous {
			continue
		}
		ft := sf.Type
		if ft.Implements(textMarshalerType) {
			return true
		}
		if ft.Kind() != reflect.Pointer && reflect.PointerTo(ft).Implements(textMarshalerType) {
			return true
		}
	}
	return false
}

// guard runs fn with v's reference marked as entered, failing when the
// reference is already on the current path.
func (w *walker) guard(v reflect.Value, path string, fn func() error) error {
	key := visitKey{ptr: v.Pointer(), typ: v.Type()}
	if first, seen := w.visited[key]; seen {
		return &CyclicValueError{Path: path, FirstSeen: first}
	}
	w.visited[key] = path
	err := fn()
	// Removing the mark lets the same reference appear in sibling branches.
	delete(w.visited, key)
	return err
}

func (w *walker) enter(path string, depth int) error {
	if w.s.maxDepth > 0 && depth >= w.s.maxDepth {
		return &DepthError{Path: path, Limit: w.s.maxDepth}
	}
	return nil
}

func (w *walker) object(v reflect.Value, path string, depth int) error {
	schema, err := w.s.resolver.Resolve(v.Type())
	if err != nil {
		return err
	}
	if err := w.enter(path, depth); err != nil {
		return err
	}
	w.enc.BeginObject()
	for _, f := range schema.Fields {
		if !f.Included {
			continue
		}
		w.enc.Key(f.OutputName)
		if err := w.walk(f.Read(v), joinPath(path, f.OutputName), depth+1); err != nil {
			return err
		}
	}
	w.enc.EndObject()
	return nil
}

func (w *walker) record(r Record, path string, depth int) error {
	if err := w.enter(path, depth); err != nil {
		return err
	}
	w.enc.BeginObject()
	for _, e := range r {
		w.enc.Key(e.Key)
		if err := w.walk(reflect.ValueOf(e.Value), joinPath(path, e.Key), depth+1); err != nil {
			return err
		}
	}
	w.enc.EndObject()
	return nil
}

type mapKey struct {
	text string
	v    reflect.Value
}

func (w *walker) mapValue(v reflect.Value, path string, depth int) error {
	kt := v.Type().Key()
	var less func(a, b reflect.Value) bool
	var format func(reflect.Value) string
	switch kt.Kind() {
	case reflect.String:
		less = func(a, b reflect.Value) bool { return a.String() < b.String() }
		format = reflect.Value.String
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		less = func(a, b reflect.Value) bool { return a.Int() < b.Int() }
		format = func(k reflect.Value) string { return strconv.FormatInt(k.Int(), 10) }
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		less = func(a, b reflect.Value) bool { return a.Uint() < b.Uint() }
		format = func(k reflect.Value) string { return strconv.FormatUint(k.Uint(), 10) }
	default:
		return &UnsupportedTypeError{Type: v.Type(), Path: path}
	}
	if err := w.enter(path, depth); err != nil {
		return err
	}
	raw := v.MapKeys()
	sort.Slice(raw, func(i, j int) bool { return less(raw[i], raw[j]) })
	keys := make([]mapKey, len(raw))
	for i, k := range raw {
		keys[i] = mapKey{text: format(k), v: k}
	}
	w.enc.BeginObject()
	for _, k := range keys {
		w.enc.Key(k.text)
		if err := w.walk(v.MapIndex(k.v), joinPath(path, k.text), depth+1); err != nil {
			return err
		}
	}
	w.enc.EndObject()
	return nil
}

func (w *walker) list(v reflect.Value, path string, depth int) error {
	if err := w.enter(path, depth); err != nil {
		return err
	}
	w.enc.BeginList()
	for i := 0; i < v.Len(); i++ {
		if err := w.walk(v.Index(i), path+"["+strconv.Itoa(i)+"]", depth+1); err != nil {
			return err
		}
	}
	w.enc.EndList()
	return nil
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
