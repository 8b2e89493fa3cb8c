package tagser

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrAlreadyResolved is returned by Register when the type already has a
// published schema, either from a previous Register or from Resolve.
var ErrAlreadyResolved = errors.New("tagser: type schema already resolved")

// UnsupportedTypeError reports a type whose fields cannot be enumerated or a
// value kind the engine cannot render (chan, func, unsafe.Pointer).
type UnsupportedTypeError struct {
	Type reflect.Type
	Path string // Field path of the offending value; empty for Resolve.
}

func (e *UnsupportedTypeError) Error() string {
	name := "<nil>"
	if e.Type != nil {
		name = e.Type.String()
	}
	if e.Path != "" {
		return fmt.Sprintf("tagser: unsupported type %s at %s", name, e.Path)
	}
	return fmt.Sprintf("tagser: unsupported type %s", name)
}

// MalformedDirectiveError reports an invalid directive attached to a field.
// It is a programming error in the annotated type, raised while the schema is
// built.
type MalformedDirectiveError struct {
	Type      reflect.Type
	Field     string
	Directive string
	Reason    string
}

func (e *MalformedDirectiveError) Error() string {
	owner := "Record"
	if e.Type != nil {
		owner = e.Type.String()
	}
	return fmt.Sprintf("tagser: malformed directive %q on %s.%s: %s", e.Directive, owner, e.Field, e.Reason)
}

// CyclicValueError reports a value that contains itself. Path is where the
// cycle closes, FirstSeen where the repeated reference was first entered.
type CyclicValueError struct {
	Path      string
	FirstSeen string
}

func (e *CyclicValueError) Error() string {
	return fmt.Sprintf("tagser: circular reference detected at %s (previously seen at %s)", displayPath(e.Path), displayPath(e.FirstSeen))
}

// DepthError reports nesting beyond the configured limit.
type DepthError struct {
	Path  string
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("tagser: max depth %d exceeded at %s", e.Limit, displayPath(e.Path))
}

// MarshalTextError wraps a failure from a value's MarshalText method.
type MarshalTextError struct {
	Path string
	Err  error
}

func (e *MarshalTextError) Error() string {
	return fmt.Sprintf("tagser: marshal text at %s: %v", displayPath(e.Path), e.Err)
}

func (e *MarshalTextError) Unwrap() error { return e.Err }

func displayPath(p string) string {
	if p == "" {
		return "$"
	}
	return p
}
