package colors

import (
	"fmt"
	"math"
	"strings"

	"github.com/chewxy/math32"
)

// Space identifies one of the supported color representations.
type Space uint8

const (
	SpaceRGB Space = iota
	SpaceHSV
	SpaceOKLab
	SpaceOKLCH
	SpaceCMYK
)

var spaceNames = [...]string{
	SpaceRGB:   "rgb",
	SpaceHSV:   "hsv",
	SpaceOKLab: "oklab",
	SpaceOKLCH: "oklch",
	SpaceCMYK:  "cmyk",
}

func (s Space) String() string {
	if int(s) < len(spaceNames) {
		return spaceNames[s]
	}
	return fmt.Sprintf("Space(%d)", s)
}

// Spaces returns every space in display order.
func Spaces() []Space {
	return []Space{SpaceRGB, SpaceHSV, SpaceOKLab, SpaceOKLCH, SpaceCMYK}
}

// ParseSpace looks a space up by name, ignoring case.
func ParseSpace(name string) (Space, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range spaceNames {
		if n == name {
			return Space(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color space %q", name)
}

// Notation is how a channel is written as text.
type Notation uint8

const (
	// Unit channels are plain decimals in the stored scale.
	Unit Notation = iota
	// Byte channels are written 0–255.
	Byte
	// Percent channels are written 0–100.
	Percent
	// Degrees channels are angles in [0,360).
	Degrees
)

// Channel describes one numeric field of a color space.
type Channel struct {
	Name      string
	Min, Max  float32
	Precision int // decimals shown in text form
	Notation  Notation
	Wrap      bool    // hue-like: values wrap modulo Max instead of clamping
	Ref       float32 // what "100%" means; zero means the larger bound
}

// Scale is the magnitude that "100%" refers to when the channel is given
// as a percentage.
func (ch Channel) Scale() float32 {
	if ch.Ref != 0 {
		return ch.Ref
	}
	return max(math32.Abs(ch.Min), math32.Abs(ch.Max))
}

const (
	// labMax bounds OKLab a and b. sRGB fits well inside it.
	labMax = 0.4
	// chromaMax covers every (a,b) inside the OKLab box.
	chromaMax = labMax * math.Sqrt2
)

var (
	rgbChannels = []Channel{
		{Name: "red", Min: 0, Max: 1, Precision: 0, Notation: Byte},
		{Name: "green", Min: 0, Max: 1, Precision: 0, Notation: Byte},
		{Name: "blue", Min: 0, Max: 1, Precision: 0, Notation: Byte},
	}
	hsvChannels = []Channel{
		{Name: "hue", Min: 0, Max: 360, Precision: 2, Notation: Degrees, Wrap: true},
		{Name: "saturation", Min: 0, Max: 1, Precision: 2, Notation: Percent},
		{Name: "value", Min: 0, Max: 1, Precision: 2, Notation: Percent},
	}
	oklabChannels = []Channel{
		{Name: "lightness", Min: 0, Max: 1, Precision: 4, Notation: Unit},
		{Name: "a", Min: -labMax, Max: labMax, Precision: 4, Notation: Unit},
		{Name: "b", Min: -labMax, Max: labMax, Precision: 4, Notation: Unit},
	}
	oklchChannels = []Channel{
		{Name: "lightness", Min: 0, Max: 1, Precision: 4, Notation: Unit},
		{Name: "chroma", Min: 0, Max: chromaMax, Precision: 4, Notation: Unit, Ref: labMax},
		{Name: "hue", Min: 0, Max: 360, Precision: 2, Notation: Degrees, Wrap: true},
	}
	cmykChannels = []Channel{
		{Name: "cyan", Min: 0, Max: 1, Precision: 2, Notation: Percent},
		{Name: "magenta", Min: 0, Max: 1, Precision: 2, Notation: Percent},
		{Name: "yellow", Min: 0, Max: 1, Precision: 2, Notation: Percent},
		{Name: "key", Min: 0, Max: 1, Precision: 2, Notation: Percent},
	}
)

// Channels returns the channel table of s. The slice must not be modified.
func (s Space) Channels() []Channel {
	switch s {
	case SpaceRGB:
		return rgbChannels
	case SpaceHSV:
		return hsvChannels
	case SpaceOKLab:
		return oklabChannels
	case SpaceOKLCH:
		return oklchChannels
	case SpaceCMYK:
		return cmykChannels
	}
	return nil
}

// fit clamps v into the channel's range, or wraps it for hue channels.
// NaN becomes Min.
func (ch Channel) fit(v float32) float32 {
	if math32.IsNaN(v) {
		return ch.Min
	}
	if ch.Wrap {
		if math32.IsInf(v, 0) {
			return ch.Min
		}
		return wrap(v, ch.Max)
	}
	return min(max(v, ch.Min), ch.Max)
}

// wrap maps v into [0, period).
func wrap(v, period float32) float32 {
	v = math32.Mod(v, period)
	if v < 0 {
		v += period
	}
	if v >= period {
		// -tiny + period rounds up to period in float32
		v = 0
	}
	return v
}
