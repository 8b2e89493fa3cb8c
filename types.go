package tagser

// DirectiveKind enumerates the per-field directives.
type DirectiveKind int

const (
	DirectiveExclude DirectiveKind = iota // Omit the field; its value is never read.
	DirectiveRename                       // Emit the field under Directive.Name.
)

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveExclude:
		return "exclude"
	case DirectiveRename:
		return "rename"
	default:
		return "unknown"
	}
}

// DefaultTagKey is the struct tag key read by a Resolver unless WithTagKey
// overrides it.
const DefaultTagKey = "tagser"

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithTagKey changes the struct tag key holding directives.
func WithTagKey(key string) ResolverOption {
	return func(r *Resolver) {
		if key != "" {
			r.tagKey = key
		}
	}
}

// WithJSONTags makes `json:"name"` act as a rename and `json:"-"` as an
// exclude for fields that carry no tag under the resolver's own key.
func WithJSONTags(enabled bool) ResolverOption {
	return func(r *Resolver) { r.jsonFallback = enabled }
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithResolver selects the schema resolver. Nil restores the default resolver.
func WithResolver(r *Resolver) Option {
	return func(s *Serializer) {
		if r == nil {
			r = defaultResolver
		}
		s.resolver = r
	}
}

// WithEncoder sets the factory producing one Encoder per Serialize call.
// Nil restores the plain text encoder.
func WithEncoder(newEncoder func() Encoder) Option {
	return func(s *Serializer) {
		if newEncoder == nil {
			newEncoder = newPlainText
		}
		s.newEncoder = newEncoder
	}
}

// WithMaxDepth bounds structural nesting. Zero or negative means unlimited.
func WithMaxDepth(n int) Option {
	return func(s *Serializer) {
		if n < 0 {
			n = 0
		}
		s.maxDepth = n
	}
}
