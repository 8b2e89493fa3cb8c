package tagser_test

import (
	"testing"

	tagser "github.com/reoring/tagser"
)

func TestTextEncoder_Events(t *testing.T) {
	e := tagser.NewTextEncoder(nil)
	e.BeginObject()
	e.Key("a")
	e.Scalar(tagser.Scalar{Kind: tagser.ScalarInt, Text: "1"})
	e.Key("b")
	e.BeginList()
	e.Scalar(tagser.Scalar{Text: "x"})
	e.BeginObject()
	e.EndObject()
	e.Null()
	e.EndList()
	e.EndObject()
	got, err := e.Result()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if want := "{a: 1, b: [x, {}, null], }"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestTextEncoder_Palette(t *testing.T) {
	wrap := func(l, r string) func(string) string {
		return func(s string) string { return l + s + r }
	}
	e := tagser.NewTextEncoder(&tagser.Palette{
		Key:    wrap("<", ">"),
		Scalar: func(k tagser.ScalarKind, s string) string { return "(" + s + ")" },
		Null:   wrap("~", "~"),
	})
	e.BeginObject()
	e.Key("k")
	e.Scalar(tagser.Scalar{Text: "v"})
	e.Key("n")
	e.Null()
	e.EndObject()
	got, _ := e.Result()
	if want := "{<k>: (v), <n>: ~null~, }"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestBuffer(t *testing.T) {
	var b tagser.Buffer
	b.Append("ab")
	b.Append("")
	b.Append("c")
	if b.Result() != "abc" || b.Len() != 3 {
		t.Fatalf("buffer = %q (%d)", b.Result(), b.Len())
	}
}
