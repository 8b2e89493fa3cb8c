package colorout_test

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	tagser "github.com/reoring/tagser"
	"github.com/reoring/tagser/output/colorout"
)

type person struct {
	FirstName string `tagser:"name=firstName"`
	Age       int    `tagser:"name=age"`
	Nick      *string
}

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestColor_Always(t *testing.T) {
	var w bytes.Buffer
	s := tagser.New(tagser.WithEncoder(colorout.New(colorout.Always, &w)))
	got, err := s.Serialize(person{FirstName: "Alice", Age: 29})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected ANSI sequences, got %q", got)
	}
	if plain := ansi.ReplaceAllString(got, ""); plain != "{firstName: Alice, age: 29, Nick: null, }" {
		t.Fatalf("colour must not change the text, got %q", plain)
	}
}

func TestColor_NeverAndAutoOnBuffer(t *testing.T) {
	var w bytes.Buffer
	for _, m := range []colorout.Mode{colorout.Never, colorout.Auto} {
		s := tagser.New(tagser.WithEncoder(colorout.New(m, &w)))
		got, err := s.Serialize(person{FirstName: "Bob"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got != "{firstName: Bob, age: 0, Nick: null, }" {
			t.Fatalf("mode %v: got %q", m, got)
		}
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]colorout.Mode{"": colorout.Auto, "auto": colorout.Auto, "always": colorout.Always, "never": colorout.Never} {
		got, err := colorout.ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := colorout.ParseMode("sometimes"); err == nil {
		t.Fatalf("expected error")
	}
	if colorout.Always.String() != "always" || colorout.Mode(7).String() != "auto" {
		t.Fatalf("unexpected String output")
	}
}
