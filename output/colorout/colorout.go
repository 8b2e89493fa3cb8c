// Package colorout renders the tagser text form with terminal colours from
// fatih/color. The characters emitted are those of the plain text encoder;
// only ANSI sequences are added around keys, values and punctuation.
package colorout

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	tagser "github.com/reoring/tagser"
)

// Mode selects when colours are used.
type Mode int

const (
	Auto   Mode = iota // Colour when writing to a terminal.
	Always             // Always colour.
	Never              // Never colour.
)

// ParseMode maps "auto", "always" and "never" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "auto":
		return Auto, nil
	case "always":
		return Always, nil
	case "never":
		return Never, nil
	}
	return Auto, fmt.Errorf("colorout: unknown colour mode %q", s)
}

func (m Mode) String() string {
	switch m {
	case Always:
		return "always"
	case Never:
		return "never"
	default:
		return "auto"
	}
}

// Enabled reports whether output written to w should be coloured under m.
// In Auto mode only terminals qualify.
func Enabled(m Mode, w io.Writer) bool {
	switch m {
	case Always:
		return true
	case Never:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// New returns an encoder factory for tagser.WithEncoder: coloured when
// Enabled(m, w), plain text otherwise.
func New(m Mode, w io.Writer) func() tagser.Encoder {
	if !Enabled(m, w) {
		return func() tagser.Encoder { return tagser.NewTextEncoder(nil) }
	}
	p := NewPalette()
	return func() tagser.Encoder { return tagser.NewTextEncoder(p) }
}

// NewPalette returns the colour table. Colours are forced on, regardless of
// color.NoColor, since the caller already decided to colour.
func NewPalette() *tagser.Palette {
	key := paint(color.New(color.FgBlue, color.Bold))
	str := paint(color.New(color.FgGreen))
	num := paint(color.RGB(128, 216, 236))
	boolean := paint(color.New(color.FgCyan))
	null := paint(color.New(color.FgMagenta))
	punct := paint(color.New(color.Faint))
	return &tagser.Palette{
		Key: key,
		Scalar: func(k tagser.ScalarKind, s string) string {
			switch k {
			case tagser.ScalarInt, tagser.ScalarUint, tagser.ScalarFloat, tagser.ScalarNumber, tagser.ScalarComplex:
				return num(s)
			case tagser.ScalarBool:
				return boolean(s)
			default:
				return str(s)
			}
		},
		Null:  null,
		Punct: punct,
	}
}

func paint(c *color.Color) func(string) string {
	c.EnableColor()
	f := c.SprintFunc()
	return func(s string) string { return f(s) }
}
