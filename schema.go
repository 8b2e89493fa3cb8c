package tagser

import (
	"reflect"
	"sync"
)

// FieldDescriptor describes how one declared field of a type is emitted.
// Descriptors are built once per (type, field) and never change; they hold no
// instance data.
type FieldDescriptor struct {
	DeclaredName string
	OutputName   string
	Included     bool
	Index        int // Position in the struct's field list.

	read func(reflect.Value) reflect.Value
}

// Read returns the field's value within v, which must be a struct value of
// the schema's type.
func (f FieldDescriptor) Read(v reflect.Value) reflect.Value { return f.read(v) }

// TypeSchema is the ordered field description of one struct type.
type TypeSchema struct {
	Type   reflect.Type
	Fields []FieldDescriptor
}

// Included returns the included fields in declaration order.
func (s *TypeSchema) Included() []FieldDescriptor {
	out := make([]FieldDescriptor, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Included {
			out = append(out, f)
		}
	}
	return out
}

// Field looks up a descriptor by declared name.
func (s *TypeSchema) Field(declared string) (FieldDescriptor, bool) {
	for _, f := range s.Fields {
		if f.DeclaredName == declared {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// Resolver builds and caches TypeSchemas. It is safe for concurrent use; each
// type gets at most one published schema.
type Resolver struct {
	tagKey       string
	jsonFallback bool

	cache sync.Map // reflect.Type -> *TypeSchema
	regMu sync.Mutex
}

// NewResolver returns a Resolver with an empty cache.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{tagKey: DefaultTagKey}
	for _, o := range opts {
		o(r)
	}
	return r
}

var defaultResolver = NewResolver()

// DefaultResolver returns the process-wide resolver used by Serialize,
// Resolve and Register.
func DefaultResolver() *Resolver { return defaultResolver }

// Resolve returns the schema of t using the default resolver.
func Resolve(t reflect.Type) (*TypeSchema, error) { return defaultResolver.Resolve(t) }

// Resolve returns the schema for t. Pointer types resolve to their element
// type. Only the type is inspected, never a value of it.
func (r *Resolver) Resolve(t reflect.Type) (*TypeSchema, error) {
	t = derefType(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, &UnsupportedTypeError{Type: t}
	}
	if s, ok := r.cache.Load(t); ok {
		return s.(*TypeSchema), nil
	}
	s, err := r.build(t, nil)
	if err != nil {
		return nil, err
	}
	actual, _ := r.cache.LoadOrStore(t, s)
	return actual.(*TypeSchema), nil
}

// build enumerates t's exported fields in declaration order and applies tag
// directives followed by the table's.
func (r *Resolver) build(t reflect.Type, table Table) (*TypeSchema, error) {
	fields := make([]FieldDescriptor, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		ds, err := r.fieldDirectives(t, sf)
		if err != nil {
			return nil, err
		}
		for _, d := range table[sf.Name] {
			if reason := d.validate(); reason != "" {
				return nil, &MalformedDirectiveError{Type: t, Field: sf.Name, Directive: d.String(), Reason: reason}
			}
			ds = append(ds, d)
		}
		p := applyDirectives(sf.Name, ds)
		fields = append(fields, FieldDescriptor{
			DeclaredName: sf.Name,
			OutputName:   p.outputName,
			Included:     p.included,
			Index:        i,
			read:         fieldReader(i),
		})
	}
	return &TypeSchema{Type: t, Fields: fields}, nil
}

func fieldReader(i int) func(reflect.Value) reflect.Value {
	return func(v reflect.Value) reflect.Value { return v.Field(i) }
}

func derefType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
