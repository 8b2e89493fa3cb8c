package engine

import (
	"fmt"

	tagser "github.com/reoring/tagser"
)

// DuplicateStrictness controls what happens when an object repeats a key.
type DuplicateStrictness int

const (
	DuplicateError    DuplicateStrictness = iota // Reject the document.
	DuplicateLastWins                            // Keep the first position, last value.
	DuplicateKeep                                // Keep every entry as read.
)

// ParseDuplicateStrictness maps "error", "last-wins" and "keep".
func ParseDuplicateStrictness(s string) (DuplicateStrictness, error) {
	switch s {
	case "", "error":
		return DuplicateError, nil
	case "last-wins":
		return DuplicateLastWins, nil
	case "keep":
		return DuplicateKeep, nil
	}
	return DuplicateError, fmt.Errorf("unknown duplicate key policy %q", s)
}

func (d DuplicateStrictness) String() string {
	switch d {
	case DuplicateLastWins:
		return "last-wins"
	case DuplicateKeep:
		return "keep"
	default:
		return "error"
	}
}

// Options controls enforcement while decoding documents.
type Options struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int // Maximum container nesting; 0 means unlimited.
}

// SimpleIssue is a lightweight issue with a dotted document path.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string {
	path := e.Path
	if path == "" {
		path = "$"
	}
	return fmt.Sprintf("%s at %s: %s", e.Code, path, e.Message)
}

// CheckDepth fails when a container opened at depth exceeds MaxDepth.
func (o Options) CheckDepth(path string, depth int) error {
	if o.MaxDepth > 0 && depth >= o.MaxDepth {
		return IssueError{SimpleIssue{Code: "too_deep", Path: path, Message: fmt.Sprintf("max depth %d exceeded", o.MaxDepth)}}
	}
	return nil
}

// AddEntry appends key/v to rec according to the duplicate key policy.
func (o Options) AddEntry(rec tagser.Record, key string, v any, path string) (tagser.Record, error) {
	if o.OnDuplicate == DuplicateKeep {
		return append(rec, tagser.Entry{Key: key, Value: v}), nil
	}
	for i := range rec {
		if rec[i].Key != key {
			continue
		}
		if o.OnDuplicate == DuplicateError {
			return nil, IssueError{SimpleIssue{Code: "duplicate_key", Path: path, Message: "duplicate key " + key}}
		}
		rec[i].Value = v
		return rec, nil
	}
	return append(rec, tagser.Entry{Key: key, Value: v}), nil
}
