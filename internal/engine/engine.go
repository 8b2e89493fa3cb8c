package engine

import (
	"io"
	"strconv"

	tagser "github.com/reoring/tagser"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// DecodeRecord builds a value from the token source: objects become
// tagser.Record (input key order kept), arrays []any, numbers tagser.Number.
func DecodeRecord(src TokenSource, opt Options) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	d := decoder{src: src, opt: opt}
	return d.value(tok, "", 0)
}

type decoder struct {
	src TokenSource
	opt Options
}

// next reads a token inside an open container, where end of input is
// always premature.
func (d *decoder) next() (Token, error) {
	tok, err := d.src.NextToken()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return tok, err
}

func (d *decoder) value(tok Token, path string, depth int) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		if err := d.opt.CheckDepth(path, depth); err != nil {
			return nil, err
		}
		return d.object(path, depth)
	case KindBeginArray:
		if err := d.opt.CheckDepth(path, depth); err != nil {
			return nil, err
		}
		return d.array(path, depth)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return tagser.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func (d *decoder) object(path string, depth int) (any, error) {
	rec := tagser.Record{}
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return rec, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := d.next()
		if err != nil {
			return nil, err
		}
		p := JoinPath(path, tok.String)
		v, err := d.value(vt, p, depth+1)
		if err != nil {
			return nil, err
		}
		if rec, err = d.opt.AddEntry(rec, tok.String, v, p); err != nil {
			return nil, err
		}
	}
}

func (d *decoder) array(path string, depth int) (any, error) {
	arr := []any{}
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := d.value(tok, path+"["+strconv.Itoa(len(arr))+"]", depth+1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// JoinPath appends a key to a dotted document path.
func JoinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
