package colors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"github.com/echoflaresat/colorpick/hex"
)

// HexField is the pseudo channel index of the hex text field. Every space
// exposes it; a complete "#RRGGBB" commits through ConvertFromRGB.
const HexField = -1

var (
	// ErrSyntax reports text that is not a finite number.
	ErrSyntax = errors.New("invalid number")
	// ErrField reports a channel index the live space does not have.
	ErrField = errors.New("no such channel")
)

// ParseError describes rejected text for a field. The color it was meant
// for is left untouched.
type ParseError struct {
	Field int
	Text  string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == HexField {
		return fmt.Sprintf("hex field: %q: %v", e.Text, e.Err)
	}
	return fmt.Sprintf("channel %d: %q: %v", e.Field, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ChangeValue writes v into channel i of the live space, clamping it to
// the channel range (hue channels wrap instead). It never converts through
// RGB. A bad index or a non-finite value leaves c unchanged.
func (c *Color) ChangeValue(i int, v float32) {
	ch, ok := c.Channel(i)
	if !ok {
		Logger().Debug("ignoring value for unknown channel", "space", c.space, "channel", i)
		return
	}
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		Logger().Debug("ignoring non-finite value", "space", c.space, "channel", ch.Name)
		return
	}
	c.v[i] = ch.fit(v)
}

// ChangeString parses text in channel i's notation and applies it like
// ChangeValue. Channel i may be HexField. On failure c is unchanged and a
// *ParseError is returned; malformed input is expected and never panics.
func (c *Color) ChangeString(i int, text string) error {
	if i == HexField {
		rgb, err := hex.Parse(strings.TrimSpace(text))
		if err != nil {
			Logger().Debug("rejected hex text", "text", text, "error", err)
			return &ParseError{Field: i, Text: text, Err: err}
		}
		c.ConvertFromRGB(hex.ToFloat(rgb))
		return nil
	}

	ch, ok := c.Channel(i)
	if !ok {
		return &ParseError{Field: i, Text: text, Err: ErrField}
	}
	v, err := parseChannel(ch, text)
	if err != nil {
		Logger().Debug("rejected channel text", "space", c.space, "channel", ch.Name, "text", text)
		return &ParseError{Field: i, Text: text, Err: err}
	}
	c.ChangeValue(i, v)
	return nil
}

// ConvertFromRGB replaces every channel by converting rgb into the live
// space. Used when an edit comes from an external RGB source.
func (c *Color) ConvertFromRGB(rgb [3]float32) {
	*c = FromRGB(rgb).Convert(c.space)
}

// ChannelText formats channel i in its notation, without a unit suffix.
// HexField yields the "#RRGGBB" of the pivot.
func (c Color) ChannelText(i int) string {
	if i == HexField {
		return c.Hex()
	}
	ch, ok := c.Channel(i)
	if !ok {
		return ""
	}
	v := c.v[i]
	switch ch.Notation {
	case Byte:
		return formatNumber(float64(v)*255, 0)
	case Percent:
		return formatNumber(float64(v)*100, ch.Precision)
	}
	return formatNumber(float64(v), ch.Precision)
}

// parseChannel reads a number in the channel's notation. A trailing '%'
// means a fraction of the channel's scale; hue channels also accept a
// trailing "deg" or "°".
func parseChannel(ch Channel, text string) (float32, error) {
	s := strings.TrimSpace(text)
	percent := false
	if rest, ok := strings.CutSuffix(s, "%"); ok {
		s, percent = strings.TrimSpace(rest), true
	} else if ch.Notation == Degrees {
		s = strings.TrimSuffix(s, "°")
		s = strings.TrimSuffix(s, "deg")
		s = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		// includes "", "-" and "abc"
		return 0, ErrSyntax
	}
	v := float32(f)
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		return 0, ErrSyntax
	}

	switch {
	case percent:
		v = v / 100 * ch.Scale()
	case ch.Notation == Byte:
		v /= 255
	case ch.Notation == Percent:
		v /= 100
	}
	return v, nil
}

// formatNumber prints x with prec decimals, trimming trailing zeros.
func formatNumber(x float64, prec int) string {
	s := strconv.FormatFloat(x, 'f', prec, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
