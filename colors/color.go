// Package colors holds the color model and the conversion engine between
// RGB, HSV, OKLab, OKLCH and CMYK, plus the per-channel edit operations
// used by pickers.
//
// A Color has exactly one live space whose channels are authoritative.
// Channel edits mutate that space in place; switching spaces re-derives
// every channel through the RGB pivot.
package colors

// Color is a color in one live space. The zero value is RGB black.
type Color struct {
	space Space
	v     [4]float32
}

// Default returns RGB black.
func Default() Color {
	return Color{}
}

// New builds a color in space s from its channel values. Missing values
// are 0; extra values are ignored. Every value is clamped or wrapped into
// its channel range.
func New(s Space, values ...float32) Color {
	c := Color{space: s}
	for i, ch := range s.Channels() {
		if i < len(values) {
			c.v[i] = ch.fit(values[i])
		}
	}
	return c
}

// FromRGB builds an RGB color from an external triple, such as a picked
// pixel.
func FromRGB(rgb [3]float32) Color {
	return New(SpaceRGB, rgb[0], rgb[1], rgb[2])
}

func (c RGB) Color() Color   { return New(SpaceRGB, c.R, c.G, c.B) }
func (c HSV) Color() Color   { return New(SpaceHSV, c.H, c.S, c.V) }
func (c OKLab) Color() Color { return New(SpaceOKLab, c.L, c.A, c.B) }
func (c OKLCH) Color() Color { return New(SpaceOKLCH, c.L, c.C, c.H) }
func (c CMYK) Color() Color  { return New(SpaceCMYK, c.C, c.M, c.Y, c.K) }

// Space reports the live space.
func (c Color) Space() Space { return c.space }

// ChannelCount is the number of channels of the live space.
func (c Color) ChannelCount() int { return len(c.space.Channels()) }

// Channels returns the channel table of the live space.
func (c Color) Channels() []Channel { return c.space.Channels() }

// Channel returns the description of channel i and whether i is valid.
func (c Color) Channel(i int) (Channel, bool) {
	chs := c.space.Channels()
	if i < 0 || i >= len(chs) {
		return Channel{}, false
	}
	return chs[i], true
}

// ChannelRange returns the bounds of channel i, or (0, 0) for a bad index.
func (c Color) ChannelRange(i int) (lo, hi float32) {
	ch, ok := c.Channel(i)
	if !ok {
		return 0, 0
	}
	return ch.Min, ch.Max
}

// ChannelValue returns the stored value of channel i, or 0 for a bad index.
func (c Color) ChannelValue(i int) float32 {
	if _, ok := c.Channel(i); !ok {
		return 0
	}
	return c.v[i]
}

// Values returns a copy of the live channel values.
func (c Color) Values() []float32 {
	n := c.ChannelCount()
	out := make([]float32, n)
	copy(out, c.v[:n])
	return out
}

// RGB returns the RGB pivot of c, clamped to [0,1].
func (c Color) RGB() RGB {
	var rgb RGB
	switch c.space {
	case SpaceHSV:
		rgb = c.HSV().RGB()
	case SpaceOKLab:
		rgb = c.OKLab().RGB()
	case SpaceOKLCH:
		rgb = c.OKLCH().RGB()
	case SpaceCMYK:
		rgb = c.CMYK().RGB()
	default:
		rgb = RGB{R: c.v[0], G: c.v[1], B: c.v[2]}
	}
	return RGB{R: clamp01(rgb.R), G: clamp01(rgb.G), B: clamp01(rgb.B)}
}

// HSV returns c as HSV, converting when HSV is not live.
func (c Color) HSV() HSV {
	if c.space != SpaceHSV {
		return c.ToHSV().HSV()
	}
	return HSV{H: c.v[0], S: c.v[1], V: c.v[2]}
}

// OKLab returns c as OKLab, converting when OKLab is not live.
func (c Color) OKLab() OKLab {
	if c.space != SpaceOKLab {
		return c.ToOKLab().OKLab()
	}
	return OKLab{L: c.v[0], A: c.v[1], B: c.v[2]}
}

// OKLCH returns c as OKLCH, converting when OKLCH is not live.
func (c Color) OKLCH() OKLCH {
	if c.space != SpaceOKLCH {
		return c.ToOKLCH().OKLCH()
	}
	return OKLCH{L: c.v[0], C: c.v[1], H: c.v[2]}
}

// CMYK returns c as CMYK, converting when CMYK is not live.
func (c Color) CMYK() CMYK {
	if c.space != SpaceCMYK {
		return c.ToCMYK().CMYK()
	}
	return CMYK{C: c.v[0], M: c.v[1], Y: c.v[2], K: c.v[3]}
}

// CurrentRGB returns the RGB pivot as a triple, for previews.
func (c Color) CurrentRGB() [3]float32 {
	return c.RGB().Array()
}

// Convert returns c with space s live. Converting to the live space
// returns c unchanged. OKLab and OKLCH convert into each other directly;
// every other pair goes through the RGB pivot.
func (c Color) Convert(s Space) Color {
	if s == c.space {
		return c
	}
	switch {
	case s == SpaceOKLCH && c.space == SpaceOKLab:
		return c.OKLab().OKLCH().Color()
	case s == SpaceOKLab && c.space == SpaceOKLCH:
		return c.OKLCH().OKLab().Color()
	}
	rgb := c.RGB()
	switch s {
	case SpaceHSV:
		return rgb.HSV().Color()
	case SpaceOKLab:
		return rgb.OKLab().Color()
	case SpaceOKLCH:
		return rgb.OKLCH().Color()
	case SpaceCMYK:
		return rgb.CMYK().Color()
	}
	return rgb.Color()
}

func (c Color) ToRGB() Color   { return c.Convert(SpaceRGB) }
func (c Color) ToHSV() Color   { return c.Convert(SpaceHSV) }
func (c Color) ToOKLab() Color { return c.Convert(SpaceOKLab) }
func (c Color) ToOKLCH() Color { return c.Convert(SpaceOKLCH) }
func (c Color) ToCMYK() Color  { return c.Convert(SpaceCMYK) }
