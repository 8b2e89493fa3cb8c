package jsonout_test

import (
	"math"
	"strings"
	"testing"

	j "github.com/goccy/go-json"

	tagser "github.com/reoring/tagser"
	"github.com/reoring/tagser/output/jsonout"
)

type person struct {
	FirstName string `tagser:"name=firstName"`
	Age       int    `tagser:"name=age"`
	Secret    string `tagser:"-"`
	Tags      []string
	Extra     map[string]any
}

func TestJSON_Compact(t *testing.T) {
	s := tagser.New(tagser.WithEncoder(jsonout.New()))
	got, err := s.Serialize(person{FirstName: `Al"ice <x>`, Age: 29, Tags: []string{"a"}, Extra: map[string]any{"b": nil, "a": 1.5}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := `{"firstName":"Al\"ice <x>","age":29,"Tags":["a"],"Extra":{"a":1.5,"b":null}}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
	if !j.Valid([]byte(got)) {
		t.Fatalf("output is not valid JSON: %s", got)
	}
}

func TestJSON_Indent(t *testing.T) {
	s := tagser.New(tagser.WithEncoder(jsonout.New(jsonout.Indent("  "))))
	got, err := s.Serialize(tagser.Record{
		{Key: "a", Value: []any{1, 2}},
		{Key: "b", Value: tagser.Record{}},
		{Key: "c", Value: []any{}},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := strings.Join([]string{
		`{`,
		`  "a": [`,
		`    1,`,
		`    2`,
		`  ],`,
		`  "b": {},`,
		`  "c": []`,
		`}`,
	}, "\n")
	if got != want {
		t.Fatalf("got\n%s\nwant\n%s", got, want)
	}
}

func TestJSON_Numbers(t *testing.T) {
	s := tagser.New(tagser.WithEncoder(jsonout.New()))
	got, err := s.Serialize([]any{tagser.Number("1.50"), uint(3), true})
	if err != nil || got != `[1.50,3,true]` {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := s.Serialize([]any{math.NaN()}); err == nil {
		t.Fatalf("expected error for NaN")
	}
	for _, bad := range []tagser.Number{"0x1F", "0123", "+1", ".5", "1.", "Infinity"} {
		if out, err := s.Serialize(bad); err == nil {
			t.Fatalf("expected error for number text %q, got %s", bad, out)
		}
	}
}
