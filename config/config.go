// Package config loads the tagser CLI configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	tagser "github.com/reoring/tagser"
	"github.com/reoring/tagser/codec"
	"github.com/reoring/tagser/output/colorout"
	"github.com/reoring/tagser/source"
)

// Output formats accepted in Config.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the CLI configuration. Command-line flags override it.
type Config struct {
	Format   string               `yaml:"format"`             // text, json or yaml
	Color    string               `yaml:"color"`              // auto, always or never
	Indent   string               `yaml:"indent,omitempty"`   // JSON indent unit
	MaxDepth int                  `yaml:"maxDepth,omitempty"` // serializer nesting limit
	Input    Input                `yaml:"input"`
	Fields   map[string]FieldRule `yaml:"fields,omitempty"` // directives for top-level document keys
}

// Input configures document decoding.
type Input struct {
	Format     string `yaml:"format,omitempty"` // json or yaml; guessed from the file name when empty
	MaxDepth   int    `yaml:"maxDepth,omitempty"`
	Duplicates string `yaml:"duplicates"` // error, last-wins or keep
}

// FieldRule is the YAML spelling of a field's directives.
type FieldRule struct {
	Exclude bool   `yaml:"exclude,omitempty"`
	Rename  string `yaml:"rename,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Format: FormatText,
		Color:  colorout.Auto.String(),
		Input:  Input{Duplicates: source.DuplicateError.String()},
	}
}

// Load reads path over the defaults. An empty path yields Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults, rejecting unknown keys.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerations and the field rules.
func (c Config) Validate() error {
	if _, ok := codec.Lookup(c.Format); !ok {
		return fmt.Errorf("unknown output format %q (known: %s)", c.Format, strings.Join(codec.Names(), ", "))
	}
	if _, err := colorout.ParseMode(c.Color); err != nil {
		return err
	}
	if c.Input.Format != "" {
		if _, ok := source.Lookup(c.Input.Format); !ok {
			return fmt.Errorf("unknown input format %q", c.Input.Format)
		}
	}
	if _, err := source.ParseDuplicateStrictness(c.Input.Duplicates); err != nil {
		return err
	}
	if c.MaxDepth < 0 || c.Input.MaxDepth < 0 {
		return errors.New("maxDepth must not be negative")
	}
	return nil
}

// Table converts the field rules into a directive table, in key order.
func (c Config) Table() tagser.Table {
	if len(c.Fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.Fields))
	for k := range c.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	t := tagser.Table{}
	for _, k := range keys {
		r := c.Fields[k]
		if r.Exclude {
			t[k] = append(t[k], tagser.Exclude())
		}
		if r.Rename != "" {
			t[k] = append(t[k], tagser.Rename(r.Rename))
		}
	}
	return t
}

// SourceOptions returns the decoding options. Validate must have passed.
func (c Config) SourceOptions() source.Options {
	dup, _ := source.ParseDuplicateStrictness(c.Input.Duplicates)
	return source.Options{OnDuplicate: dup, MaxDepth: c.Input.MaxDepth}
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
