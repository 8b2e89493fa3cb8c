package tagser

import (
	"reflect"
	"sort"
)

// Register publishes the schema of T built from its tags plus table, using the
// default resolver. It must run before T is first serialized or resolved.
func Register[T any](table Table) error {
	return defaultResolver.Register(reflect.TypeFor[T](), table)
}

// MustRegister is like Register but panics on error.
func MustRegister[T any](table Table) {
	if err := Register[T](table); err != nil {
		panic(err)
	}
}

// Register validates table against t, builds its schema and publishes it.
// Table keys must name exported fields of t. Directives from the table are
// applied after tag directives, so a table rename wins over a tag rename.
func (r *Resolver) Register(t reflect.Type, table Table) error {
	t = derefType(t)
	if t == nil || t.Kind() != reflect.Struct {
		return &UnsupportedTypeError{Type: t}
	}
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sf, ok := t.FieldByName(k)
		if !ok || !sf.IsExported() || len(sf.Index) != 1 {
			return &MalformedDirectiveError{Type: t, Field: k, Directive: "table", Reason: "no such exported field"}
		}
	}

	r.regMu.Lock()
	defer r.regMu.Unlock()
	if _, ok := r.cache.Load(t); ok {
		return ErrAlreadyResolved
	}
	s, err := r.build(t, table)
	if err != nil {
		return err
	}
	if _, loaded := r.cache.LoadOrStore(t, s); loaded {
		return ErrAlreadyResolved
	}
	return nil
}
