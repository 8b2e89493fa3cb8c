// Package tagser serializes arbitrary Go values into a deterministic,
// brace-delimited text form, with per-field policy taken from declarative
// metadata instead of per-type code.
//
// Field policy:
//   - `tagser:"-"` (or `tagser:"exclude"`) omits a field; its value is never read.
//   - `tagser:"name=alias"` emits a field under alias.
//   - A Table registered with Register (or built with the dsl package) attaches
//     the same directives without tags. Table directives apply after tag
//     directives.
//
// Output (text encoder):
//
//	type Person struct {
//	    FirstName string `tagser:"name=alias"`
//	    Age       int    `tagser:"-"`
//	}
//	tagser.Serialize(Person{"Alice", 29}) // "{alias: Alice, }"
//
// Every object entry is followed by ", ", including the last one, and strings
// are written without quoting or escaping. Use the encoders under output/ for
// strict JSON or YAML from the same traversal.
//
// Design policy:
//   - Schemas are resolved per type, cached, and never inspect instance data.
//   - Values implementing encoding.TextMarshaler, with either receiver, render
//     as their text. Structs that embed one are walked field by field instead.
//   - Values that contain themselves fail with *CyclicValueError instead of
//     recursing without bound.
//   - Errors are returned, never logged; no partial output is produced.
package tagser
