// Package palette holds the colors a picker works on: an ordered list with
// one active entry, and a bounded history of recently used colors.
package palette

import (
	"errors"
	"fmt"

	"github.com/echoflaresat/colorpick/colors"
)

var ErrIndex = errors.New("palette index out of range")

// Palette owns its colors. The active entry is the one an editor works
// on; it is -1 only while the palette is empty.
type Palette struct {
	entries []colors.Color
	active  int
}

func New(cs ...colors.Color) *Palette {
	p := &Palette{entries: append([]colors.Color(nil), cs...), active: -1}
	if len(cs) > 0 {
		p.active = 0
	}
	return p
}

func (p *Palette) Len() int { return len(p.entries) }

// Add appends c, makes it active and returns its index.
func (p *Palette) Add(c colors.Color) int {
	p.entries = append(p.entries, c)
	p.active = len(p.entries) - 1
	return p.active
}

// At returns a pointer to entry i so callers can edit it in place.
func (p *Palette) At(i int) (*colors.Color, error) {
	if err := p.check(i); err != nil {
		return nil, err
	}
	return &p.entries[i], nil
}

// Remove deletes entry i. If it was active, the entry that slides into
// its place becomes active, or the new last entry when i was the last.
func (p *Palette) Remove(i int) error {
	if err := p.check(i); err != nil {
		return err
	}
	p.entries = append(p.entries[:i], p.entries[i+1:]...)
	switch {
	case len(p.entries) == 0:
		p.active = -1
	case i < p.active:
		p.active--
	case p.active >= len(p.entries):
		p.active = len(p.entries) - 1
	}
	return nil
}

// Select makes entry i active.
func (p *Palette) Select(i int) error {
	if err := p.check(i); err != nil {
		return err
	}
	p.active = i
	return nil
}

// Active returns the active index and entry, or (-1, nil) when empty.
func (p *Palette) Active() (int, *colors.Color) {
	if p.active < 0 {
		return -1, nil
	}
	return p.active, &p.entries[p.active]
}

// Colors returns a copy of every entry in order.
func (p *Palette) Colors() []colors.Color {
	return append([]colors.Color(nil), p.entries...)
}

func (p *Palette) check(i int) error {
	if i < 0 || i >= len(p.entries) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndex, i, len(p.entries))
	}
	return nil
}
