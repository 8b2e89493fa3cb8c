package tagser

import (
	"reflect"
	"strings"
)

// ParseTag parses the value of a tagser struct tag into directives.
//
//	`tagser:"-"`           exclude
//	`tagser:"exclude"`     exclude
//	`tagser:"name=alias"`  rename to alias
//	`tagser:"name=a,name=b"` rename to b (last wins)
//
// When ok is false, bad holds the offending option.
func ParseTag(tag string) (ds []Directive, bad string, ok bool) {
	if tag == "" {
		return nil, "", true
	}
	var out []Directive
	for _, p := range strings.Split(tag, ",") {
		p = strings.TrimSpace(p)
		switch {
		case p == "-" || p == "exclude":
			out = append(out, Exclude())
		case strings.HasPrefix(p, "name="):
			d := Rename(strings.TrimPrefix(p, "name="))
			if d.validate() != "" {
				return nil, p, false
			}
			out = append(out, d)
		default:
			return nil, p, false
		}
	}
	return out, "", true
}

// fieldDirectives resolves the directives a struct field declares through
// tags. Priority: the resolver's tag key > json tag (when enabled) > none.
func (r *Resolver) fieldDirectives(owner reflect.Type, sf reflect.StructField) ([]Directive, error) {
	if tag, ok := sf.Tag.Lookup(r.tagKey); ok {
		ds, bad, ok := ParseTag(tag)
		if !ok {
			return nil, &MalformedDirectiveError{
				Type:      owner,
				Field:     sf.Name,
				Directive: bad,
				Reason:    tagReason(bad),
			}
		}
		return ds, nil
	}
	if !r.jsonFallback {
		return nil, nil
	}
	jt := sf.Tag.Get("json")
	if jt == "" {
		return nil, nil
	}
	if jt == "-" {
		return []Directive{Exclude()}, nil
	}
	if i := strings.IndexByte(jt, ','); i >= 0 {
		jt = jt[:i]
	}
	if jt == "" {
		return nil, nil
	}
	return []Directive{Rename(jt)}, nil
}

func tagReason(opt string) string {
	if strings.HasPrefix(opt, "name=") {
		return "rename requires a non-empty name"
	}
	if opt == "" {
		return "empty option"
	}
	return "unknown option"
}
