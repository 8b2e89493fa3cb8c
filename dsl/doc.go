// Package dsl builds field directive tables for tagser in code, as an
// alternative to struct tags.
//
// Entry points
//   - Type[T](): start a table for struct type T.
//   - Field(name).Exclude() / Field(name).Rename(alias): attach directives.
//   - Register()/RegisterWith(r)/MustRegister(): publish T's schema.
//   - Table(): obtain the tagser.Table without registering it.
//
// Field names are declared Go identifiers. Pair with tagser.FieldOf to have
// the compiler check them:
//
//	dsl.Type[Person]().
//	    Field(tagser.FieldOf(func(p *Person) *string { return &p.FirstName })).Rename("alias").
//	    Field("Temp").Exclude().
//	    MustRegister()
//
// Registration must happen before the type is first serialized; afterwards the
// resolver reports tagser.ErrAlreadyResolved.
package dsl
