package dsl

import (
	"fmt"
	"reflect"

	tagser "github.com/reoring/tagser"
)

// typeBuilder collects directives for the fields of struct type T.
type typeBuilder[T any] struct {
	table tagser.Table
	err   error
}

// fieldStep selects one declared field of T for the next directive.
type fieldStep[T any] struct {
	b    *typeBuilder[T]
	name string
}

// Type starts a directive table for struct type T.
func Type[T any]() *typeBuilder[T] {
	return &typeBuilder[T]{table: tagser.Table{}}
}

// Field selects a field by declared name.
func (b *typeBuilder[T]) Field(name string) *fieldStep[T] {
	if name == "" && b.err == nil {
		b.err = fmt.Errorf("dsl.Type[%T]: empty field name", *new(T))
	}
	return &fieldStep[T]{b: b, name: name}
}

// Exclude omits the selected field and returns the builder.
func (f *fieldStep[T]) Exclude() *typeBuilder[T] {
	f.b.table[f.name] = append(f.b.table[f.name], tagser.Exclude())
	return f.b
}

// Rename emits the selected field under name and returns the builder.
func (f *fieldStep[T]) Rename(name string) *typeBuilder[T] {
	f.b.table[f.name] = append(f.b.table[f.name], tagser.Rename(name))
	return f.b
}

// Table returns a copy of the collected directives.
func (b *typeBuilder[T]) Table() (tagser.Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := make(tagser.Table, len(b.table))
	for k, ds := range b.table {
		out[k] = append([]tagser.Directive(nil), ds...)
	}
	return out, nil
}

// Register publishes T's schema on the default resolver.
func (b *typeBuilder[T]) Register() error {
	return b.RegisterWith(tagser.DefaultResolver())
}

// RegisterWith publishes T's schema on r.
func (b *typeBuilder[T]) RegisterWith(r *tagser.Resolver) error {
	t, err := b.Table()
	if err != nil {
		return err
	}
	return r.Register(reflect.TypeFor[T](), t)
}

// MustRegister is like Register but panics on error.
func (b *typeBuilder[T]) MustRegister() {
	if err := b.Register(); err != nil {
		panic(err)
	}
}
