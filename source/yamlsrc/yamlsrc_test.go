package yamlsrc_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	tagser "github.com/reoring/tagser"
	eng "github.com/reoring/tagser/internal/engine"
	"github.com/reoring/tagser/source/yamlsrc"
)

func TestDecode_Scalars(t *testing.T) {
	doc := strings.Join([]string{
		"dec: 42",
		"plus: +7",
		"hex: 0x1F",
		"lead: 0123",
		"frac: .5",
		"flt: 1.25",
		"inf: .inf",
		"yes: true",
		"nil: ~",
		"str: 'true'",
		"ts: 2024-01-02",
	}, "\n")
	v, err := yamlsrc.Decode(strings.NewReader(doc), eng.Options{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	rec := v.(tagser.Record)
	want := map[string]any{
		"dec":  tagser.Number("42"),
		"plus": int64(7),
		"hex":  int64(31),
		"lead": int64(83),
		"frac": 0.5,
		"flt":  tagser.Number("1.25"),
		"yes":  true,
		"nil":  nil,
		"str":  "true",
		"ts":   "2024-01-02",
	}
	for k, w := range want {
		got, ok := rec.Get(k)
		if !ok {
			t.Fatalf("missing key %q", k)
		}
		if diff := cmp.Diff(w, got); diff != "" {
			t.Fatalf("%s (-want +got):\n%s", k, diff)
		}
	}
	if f, _ := rec.Get("inf"); f == nil {
		t.Fatalf("inf decoded to nil")
	}
}

func TestFromNode_Aliases(t *testing.T) {
	var n yaml.Node
	src := "base: &b {x: 1}\ncopy: *b\n"
	if err := yaml.Unmarshal([]byte(src), &n); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	v, err := yamlsrc.FromNode(&n, eng.Options{})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got := tagser.MustSerialize(v); got != "{base: {x: 1, }, copy: {x: 1, }, }" {
		t.Fatalf("got %q", got)
	}
}

func TestDecode_NonScalarKey(t *testing.T) {
	if _, err := yamlsrc.Decode(strings.NewReader("? [a, b]\n: 1\n"), eng.Options{}); err == nil {
		t.Fatalf("expected error for sequence key")
	}
}

func TestDecode_NumbersStayValidJSON(t *testing.T) {
	v, err := yamlsrc.Decode(strings.NewReader("a: [0123, 1_000, -0.5e3, +2.0]\n"), eng.Options{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	list, _ := v.(tagser.Record).Get("a")
	for i, item := range list.([]any) {
		if num, ok := item.(tagser.Number); ok && !num.Valid() {
			t.Fatalf("item %d kept non-JSON number text %q", i, num)
		}
	}
	if got := tagser.MustSerialize(list); got != "[83, 1000, -0.5e3, 2]" {
		t.Fatalf("got %q", got)
	}
}
