package tagser

import "strings"

// Buffer is the append-only text sink encoders write into. The zero value is
// ready to use. A Buffer belongs to a single Serialize call.
type Buffer struct {
	sb strings.Builder
}

// Append adds text to the end of the buffer.
func (b *Buffer) Append(text string) { b.sb.WriteString(text) }

// Result returns everything appended so far.
func (b *Buffer) Result() string { return b.sb.String() }

// Len reports the number of bytes appended so far.
func (b *Buffer) Len() int { return b.sb.Len() }
