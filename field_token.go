package tagser

import "reflect"

// FieldOf returns the declared name of a top-level field of T chosen by
// selector, for building Tables that break at compile time when the field is
// renamed or removed:
//
//	tagser.FieldOf(func(p *Person) *string { return &p.Temp }) // "Temp"
//
// It panics when selector does not return the address of an exported
// top-level field of T.
func FieldOf[T any, F any](selector func(*T) *F) string {
	if selector == nil {
		panic("tagser.FieldOf: selector must not be nil")
	}
	var zero T
	rv := reflect.ValueOf(&zero).Elem()
	if rv.Kind() != reflect.Struct {
		panic("tagser.FieldOf: T must be a struct type")
	}
	fp := reflect.ValueOf(selector(&zero)).Pointer()
	ft := reflect.TypeFor[F]()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		fv := rv.Field(i)
		// A zero-size field shares its address with the next one.
		if sf.Type != ft || fv.Addr().Pointer() != fp {
			continue
		}
		if !sf.IsExported() {
			panic("tagser.FieldOf: selected field is not exported")
		}
		return sf.Name
	}
	panic("tagser.FieldOf: selector must return the address of a top-level field of T")
}
