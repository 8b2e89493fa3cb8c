package tagser

import "regexp"

// Entry is one key/value pair of a Record.
type Entry struct {
	Key   string
	Value any
}

// Record is a dynamic structured value whose fields are its entries, in
// order. Documents read by the source package decode into Records.
type Record []Entry

// Get returns the value of the first entry named key.
func (r Record) Get(key string) (any, bool) {
	for _, e := range r {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Apply returns a copy of r with table's directives applied to its top-level
// keys: excluded entries are dropped and renamed entries re-keyed. Nested
// values are shared, not copied. The table is validated like a registered
// type's table, except that keys absent from r are ignored.
func (r Record) Apply(table Table) (Record, error) {
	for key, ds := range table {
		for _, d := range ds {
			if reason := d.validate(); reason != "" {
				return nil, &MalformedDirectiveError{Field: key, Directive: d.String(), Reason: reason}
			}
		}
	}
	out := make(Record, 0, len(r))
	for _, e := range r {
		p := applyDirectives(e.Key, table[e.Key])
		if !p.included {
			continue
		}
		out = append(out, Entry{Key: p.outputName, Value: e.Value})
	}
	return out, nil
}

// Number is numeric text kept verbatim, as read from a document.
type Number string

func (n Number) String() string { return string(n) }

var jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// Valid reports whether n is spelled as a JSON number.
func (n Number) Valid() bool { return jsonNumber.MatchString(string(n)) }
