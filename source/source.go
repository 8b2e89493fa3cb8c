// Package source decodes JSON and YAML documents into tagser values through
// pluggable drivers. Objects decode to tagser.Record so the document's key
// order is what the serializer emits.
package source

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	eng "github.com/reoring/tagser/internal/engine"
	"github.com/reoring/tagser/source/gojson"
	"github.com/reoring/tagser/source/yamlsrc"
)

// Options controls depth and duplicate key enforcement while decoding.
type Options = eng.Options

// DuplicateStrictness selects the duplicate key policy.
type DuplicateStrictness = eng.DuplicateStrictness

const (
	DuplicateError    = eng.DuplicateError
	DuplicateLastWins = eng.DuplicateLastWins
	DuplicateKeep     = eng.DuplicateKeep
)

// ParseDuplicateStrictness maps "error", "last-wins" and "keep".
func ParseDuplicateStrictness(s string) (DuplicateStrictness, error) {
	return eng.ParseDuplicateStrictness(s)
}

// ErrEmptyDocument is returned when the input holds no document.
var ErrEmptyDocument = errors.New("source: empty document")

// Driver decodes one document format.
type Driver interface {
	Name() string
	Decode(r io.Reader, opt Options) (any, error)
}

type funcDriver struct {
	name   string
	decode func(io.Reader, eng.Options) (any, error)
}

func (d funcDriver) Name() string { return d.name }
func (d funcDriver) Decode(r io.Reader, opt Options) (any, error) {
	return d.decode(r, opt)
}

var (
	driversMu sync.RWMutex
	drivers   = map[string]Driver{
		"json": funcDriver{name: "go-json", decode: gojson.Decode},
		"yaml": funcDriver{name: "yaml.v3", decode: yamlsrc.Decode},
	}
)

// SetDriver installs d for format, replacing any existing driver; nil values
// are ignored.
func SetDriver(format string, d Driver) {
	if d == nil {
		return
	}
	driversMu.Lock()
	drivers[format] = d
	driversMu.Unlock()
}

// Lookup returns the driver registered for format.
func Lookup(format string) (Driver, bool) {
	driversMu.RLock()
	d, ok := drivers[format]
	driversMu.RUnlock()
	return d, ok
}

// Formats lists the registered formats in sorted order.
func Formats() []string {
	driversMu.RLock()
	out := make([]string, 0, len(drivers))
	for f := range drivers {
		out = append(out, f)
	}
	driversMu.RUnlock()
	sort.Strings(out)
	return out
}

// FormatFromPath guesses a format from a file extension; "" when unknown.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}

// Decode reads one document of the given format from r.
func Decode(r io.Reader, format string, opt Options) (any, error) {
	d, ok := Lookup(format)
	if !ok {
		return nil, fmt.Errorf("source: unknown format %q (known: %s)", format, strings.Join(Formats(), ", "))
	}
	v, err := d.Decode(r, opt)
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyDocument
	}
	return v, err
}
