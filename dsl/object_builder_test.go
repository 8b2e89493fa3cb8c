package dsl_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	tagser "github.com/reoring/tagser"
	g "github.com/reoring/tagser/dsl"
)

type person struct {
	FirstName string
	Temp      string
	Age       int
}

func TestType_RegisterWith(t *testing.T) {
	r := tagser.NewResolver()
	err := g.Type[person]().
		Field(tagser.FieldOf(func(p *person) *string { return &p.FirstName })).Rename("alias").
		Field("Temp").Exclude().
		Field("Age").Exclude().
		RegisterWith(r)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	got, err := tagser.New(tagser.WithResolver(r)).Serialize(person{FirstName: "Alice", Temp: "t", Age: 29})
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if got != "{alias: Alice, }" {
		t.Fatalf("got %q", got)
	}
}

func TestType_Table(t *testing.T) {
	b := g.Type[person]().
		Field("FirstName").Rename("a").
		Field("FirstName").Rename("b")
	table, err := b.Table()
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	want := tagser.Table{"FirstName": {tagser.Rename("a"), tagser.Rename("b")}}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	// the returned table is a copy
	table["FirstName"][0] = tagser.Exclude()
	again, _ := b.Table()
	if diff := cmp.Diff(want, again); diff != "" {
		t.Fatalf("builder state changed (-want +got):\n%s", diff)
	}
}

func TestType_EmptyFieldName(t *testing.T) {
	_, err := g.Type[person]().Field("").Exclude().Table()
	if err == nil {
		t.Fatalf("expected error for empty field name")
	}
}

func TestType_UnknownFieldRejectedOnRegister(t *testing.T) {
	err := g.Type[person]().Field("Nope").Exclude().RegisterWith(tagser.NewResolver())
	var me *tagser.MalformedDirectiveError
	if !errors.As(err, &me) || me.Field != "Nope" {
		t.Fatalf("expected MalformedDirectiveError for Nope, got %v", err)
	}
}

func TestType_RegisterAfterResolve(t *testing.T) {
	r := tagser.NewResolver()
	if _, err := tagser.New(tagser.WithResolver(r)).Serialize(person{}); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	err := g.Type[person]().Field("Temp").Exclude().RegisterWith(r)
	if !errors.Is(err, tagser.ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
}

type defaultRegistered struct {
	Keep string
	Drop string
}

func TestType_MustRegisterDefault(t *testing.T) {
	defer func() {
		// a repeated run in the same process sees the schema already published
		if r := recover(); r != nil {
			if err, ok := r.(error); !ok || !errors.Is(err, tagser.ErrAlreadyResolved) {
				panic(r)
			}
		}
		if got := tagser.MustSerialize(defaultRegistered{Keep: "k", Drop: "d"}); got != "{Keep: k, }" {
			t.Fatalf("got %q", got)
		}
	}()
	g.Type[defaultRegistered]().Field("Drop").Exclude().MustRegister()
}
