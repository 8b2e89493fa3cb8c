package engine

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	tagser "github.com/reoring/tagser"
)

type sliceSource struct {
	toks []Token
	i    int
}

func (s *sliceSource) NextToken() (Token, error) {
	if s.i >= len(s.toks) {
		return Token{}, io.EOF
	}
	t := s.toks[s.i]
	s.i++
	return t, nil
}

func (s *sliceSource) Location() int64 { return int64(s.i) }

func TestDecodeRecord_Tokens(t *testing.T) {
	src := &sliceSource{toks: []Token{
		{Kind: KindBeginObject},
		{Kind: KindKey, String: "n"},
		{Kind: KindNumber, Number: "1e3"},
		{Kind: KindKey, String: "l"},
		{Kind: KindBeginArray},
		{Kind: KindString, String: "x"},
		{Kind: KindBool, Bool: true},
		{Kind: KindNull},
		{Kind: KindEndArray},
		{Kind: KindEndObject},
	}}
	v, err := DecodeRecord(src, Options{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := tagser.Record{
		{Key: "n", Value: tagser.Number("1e3")},
		{Key: "l", Value: []any{"x", true, nil}},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestDecodeRecord_Truncated(t *testing.T) {
	src := &sliceSource{toks: []Token{{Kind: KindBeginArray}, {Kind: KindString, String: "x"}}}
	if _, err := DecodeRecord(src, Options{}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected unexpected EOF, got %v", err)
	}
	if _, err := DecodeRecord(&sliceSource{}, Options{}); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF for empty input, got %v", err)
	}
}

func TestAddEntry_Policies(t *testing.T) {
	base := func() tagser.Record { return tagser.Record{{Key: "a", Value: 1}, {Key: "b", Value: 2}} }

	_, err := Options{OnDuplicate: DuplicateError}.AddEntry(base(), "a", 3, "x.a")
	var ie IssueError
	if !errors.As(err, &ie) || ie.Path != "x.a" || ie.Code != "duplicate_key" {
		t.Fatalf("expected duplicate_key, got %v", err)
	}
	if ie.Error() != "duplicate_key at x.a: duplicate key a" {
		t.Fatalf("message = %q", ie.Error())
	}

	got, _ := Options{OnDuplicate: DuplicateLastWins}.AddEntry(base(), "a", 3, "a")
	if diff := cmp.Diff(tagser.Record{{Key: "a", Value: 3}, {Key: "b", Value: 2}}, got); diff != "" {
		t.Fatalf("last-wins (-want +got):\n%s", diff)
	}

	got, _ = Options{OnDuplicate: DuplicateKeep}.AddEntry(base(), "a", 3, "a")
	if len(got) != 3 || got[2].Value != 3 {
		t.Fatalf("keep: %+v", got)
	}
}

func TestCheckDepth(t *testing.T) {
	if err := (Options{}).CheckDepth("", 1000); err != nil {
		t.Fatalf("unlimited: %v", err)
	}
	err := Options{MaxDepth: 1}.CheckDepth("", 1)
	if err == nil || err.Error() != "too_deep at $: max depth 1 exceeded" {
		t.Fatalf("got %v", err)
	}
}

func TestJoinPath(t *testing.T) {
	if JoinPath("", "a") != "a" || JoinPath("a", "b") != "a.b" {
		t.Fatalf("unexpected join")
	}
}
