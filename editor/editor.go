// Package editor keeps the transient text a user types into channel fields
// apart from the committed color. A buffer that parses is previewed live;
// one that does not stays pending. Abandoning a buffer, or submitting one
// that does not parse, puts back the value the field had before typing.
package editor

import (
	"github.com/echoflaresat/colorpick/colors"
)

// Field is a channel index of the live space, or colors.HexField.
type Field int

// Hex is the hex text field.
const Hex Field = colors.HexField

// Editor edits one color through numeric drags, typed text and picks.
// It is owned by a single goroutine.
type Editor struct {
	color   *colors.Color
	buffers map[Field]string
	saved   map[Field]colors.Color // color before the first keystroke in a field
}

// New returns an editor for c. Edits are written through to *c.
func New(c *colors.Color) *Editor {
	return &Editor{
		color:   c,
		buffers: make(map[Field]string),
		saved:   make(map[Field]colors.Color),
	}
}

// Color returns a copy of the committed color.
func (e *Editor) Color() colors.Color {
	return *e.color
}

// Type records text as the buffer of f. If it parses it is applied to the
// color right away, otherwise the color keeps its last value and the
// buffer stays pending until Submit or Abandon.
func (e *Editor) Type(f Field, text string) {
	if _, ok := e.saved[f]; !ok {
		e.saved[f] = *e.color
	}
	e.buffers[f] = text
	if err := e.color.ChangeString(int(f), text); err != nil {
		colors.Logger().Debug("buffer pending", "field", int(f), "text", text)
	}
}

// Submit commits the buffer of f and discards it. An invalid buffer is
// discarded too, the field is restored and the parse error returned.
// Submitting a field with no buffer does nothing.
func (e *Editor) Submit(f Field) error {
	text, ok := e.buffers[f]
	if !ok {
		return nil
	}
	if err := e.color.ChangeString(int(f), text); err != nil {
		e.restore(f)
		return err
	}
	e.drop(f)
	return nil
}

// Abandon drops the buffer of f and restores the value the field had
// before typing started.
func (e *Editor) Abandon(f Field) {
	if _, ok := e.buffers[f]; ok {
		e.restore(f)
	}
}

// Pending reports whether f has a buffer.
func (e *Editor) Pending(f Field) bool {
	_, ok := e.buffers[f]
	return ok
}

// Text is what field f displays: its buffer if any, else the committed
// value in the channel's notation.
func (e *Editor) Text(f Field) string {
	if text, ok := e.buffers[f]; ok {
		return text
	}
	return e.color.ChannelText(int(f))
}

// Drag sets channel i from a slider. It drops the buffer of i and the hex
// buffer, which no longer describe the color.
func (e *Editor) Drag(i int, v float32) {
	e.drop(Field(i))
	e.drop(Hex)
	e.color.ChangeValue(i, v)
}

// SwitchSpace re-derives the color in s. Buffers belong to the old
// channels, so all of them are dropped.
func (e *Editor) SwitchSpace(s colors.Space) {
	*e.color = e.color.Convert(s)
	e.reset()
}

// Pick commits an RGB triple from an external source such as an
// eyedropper.
func (e *Editor) Pick(rgb [3]float32) {
	e.color.ConvertFromRGB(rgb)
	e.reset()
}

// restore puts back the pre-typing value of f and drops its buffer. The
// hex field covers every channel, so it restores the whole color.
func (e *Editor) restore(f Field) {
	if prev, ok := e.saved[f]; ok {
		if f == Hex {
			*e.color = prev
		} else {
			e.color.ChangeValue(int(f), prev.ChannelValue(int(f)))
		}
	}
	e.drop(f)
}

func (e *Editor) drop(f Field) {
	delete(e.buffers, f)
	delete(e.saved, f)
}

func (e *Editor) reset() {
	clear(e.buffers)
	clear(e.saved)
}
