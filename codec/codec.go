// Package codec pairs tagser encoders with content types, so callers can pick
// an output encoding by name ("text", "json", "yaml") or MIME type.
package codec

import (
	"mime"
	"sort"
	"sync"

	tagser "github.com/reoring/tagser"
	"github.com/reoring/tagser/output/jsonout"
	"github.com/reoring/tagser/output/yamlout"
)

// Codec marshals values through one output encoding.
type Codec interface {
	// Name is the short format name, e.g. "json".
	Name() string
	// ContentType returns the MIME type of the output.
	ContentType() string
	// Marshal serializes v with the given serializer options.
	Marshal(v any, opts ...tagser.Option) ([]byte, error)
}

// Text returns the brace-delimited text codec.
func Text() Codec {
	return encoderCodec{name: "text", contentType: "text/plain; charset=utf-8", newEncoder: func() tagser.Encoder { return tagser.NewTextEncoder(nil) }}
}

// JSON returns the strict JSON codec.
func JSON() Codec {
	return encoderCodec{name: "json", contentType: "application/json", newEncoder: jsonout.New()}
}

// YAML returns the YAML codec.
func YAML() Codec {
	return encoderCodec{name: "yaml", contentType: "application/yaml", newEncoder: yamlout.New()}
}

type encoderCodec struct {
	name        string
	contentType string
	newEncoder  func() tagser.Encoder
}

func (c encoderCodec) Name() string        { return c.name }
func (c encoderCodec) ContentType() string { return c.contentType }

func (c encoderCodec) Marshal(v any, opts ...tagser.Option) ([]byte, error) {
	all := append([]tagser.Option{tagser.WithEncoder(c.newEncoder)}, opts...)
	out, err := tagser.New(all...).Serialize(v)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

var (
	mu     sync.RWMutex
	byName = map[string]Codec{}
)

func init() {
	for _, c := range []Codec{Text(), JSON(), YAML()} {
		byName[c.Name()] = c
	}
}

// Register adds or replaces a codec under its name; nil values are ignored.
func Register(c Codec) {
	if c == nil {
		return
	}
	mu.Lock()
	byName[c.Name()] = c
	mu.Unlock()
}

// Lookup finds a codec by name.
func Lookup(name string) (Codec, bool) {
	mu.RLock()
	c, ok := byName[name]
	mu.RUnlock()
	return c, ok
}

// ForContentType finds a codec by media type. Parameters such as charset and
// letter case are ignored; ties go to the first codec by name.
func ForContentType(ct string) (Codec, bool) {
	want, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return nil, false
	}
	for _, name := range Names() {
		c, _ := Lookup(name)
		if got, _, err := mime.ParseMediaType(c.ContentType()); err == nil && got == want {
			return c, true
		}
	}
	return nil, false
}

// Names lists registered codec names in sorted order.
func Names() []string {
	mu.RLock()
	out := make([]string, 0, len(byName))
	for n := range byName {
		out = append(out, n)
	}
	mu.RUnlock()
	sort.Strings(out)
	return out
}
