package tagser

import "strings"

// Directive is a single field-level instruction. Build it with Exclude or
// Rename; the zero value is an Exclude.
type Directive struct {
	Kind DirectiveKind
	Name string // New output name, only meaningful for DirectiveRename.
}

// Exclude omits a field from the output.
func Exclude() Directive { return Directive{Kind: DirectiveExclude} }

// Rename emits a field under name instead of its declared identifier.
func Rename(name string) Directive { return Directive{Kind: DirectiveRename, Name: name} }

func (d Directive) String() string {
	if d.Kind == DirectiveRename {
		return "name=" + d.Name
	}
	return d.Kind.String()
}

// validate reports why d cannot be applied, or "" when it is well-formed.
func (d Directive) validate() string {
	switch d.Kind {
	case DirectiveExclude:
		return ""
	case DirectiveRename:
		if strings.TrimSpace(d.Name) == "" {
			return "rename requires a non-empty name"
		}
		return ""
	default:
		return "unknown directive kind"
	}
}

// Table attaches directives to fields by declared name. It is the
// registration-time counterpart of struct tags.
type Table map[string][]Directive

// fieldPolicy is the effective outcome of a field's directive list.
type fieldPolicy struct {
	outputName string
	included   bool
}

// applyDirectives folds ds over the declared name: any Exclude excludes, the
// last Rename wins.
func applyDirectives(declared string, ds []Directive) fieldPolicy {
	p := fieldPolicy{outputName: declared, included: true}
	for _, d := range ds {
		switch d.Kind {
		case DirectiveExclude:
			p.included = false
		case DirectiveRename:
			p.outputName = d.Name
		}
	}
	return p
}
