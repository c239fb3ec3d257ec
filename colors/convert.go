package colors

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/echoflaresat/colorpick/vectors"
)

// RGB is a display-encoded (gamma-companded) sRGB triple in [0,1].
type RGB struct {
	R, G, B float32
}

// HSV is hue in degrees [0,360) with saturation and value in [0,1].
type HSV struct {
	H, S, V float32
}

// OKLab is the perceptual Cartesian space: L in [0,1], a and b roughly
// within ±0.4.
type OKLab struct {
	L, A, B float32
}

// OKLCH is the polar form of OKLab with hue in degrees.
type OKLCH struct {
	L, C, H float32
}

// CMYK uses the k = 1 - max(r,g,b) convention.
type CMYK struct {
	C, M, Y, K float32
}

// Array returns the channels as a triple.
func (c RGB) Array() [3]float32 { return [3]float32{c.R, c.G, c.B} }

// HSV converts with the max/min/chroma decomposition. Grays get hue 0 and
// black gets saturation 0.
func (c RGB) HSV() HSV {
	h, s, v := rgbToHSV(c.R, c.G, c.B)
	return HSV{H: h, S: s, V: v}
}

// OKLab converts through linear light.
func (c RGB) OKLab() OKLab {
	lin := vectors.FromArray(c.Array()).Map(srgbToLinear)
	lms := linearToLMS.MulVec(lin).Map(math32.Cbrt)
	lab := lmsToOKLab.MulVec(lms)
	return OKLab{L: lab.X, A: lab.Y, B: lab.Z}
}

// OKLCH converts via OKLab.
func (c RGB) OKLCH() OKLCH { return c.OKLab().OKLCH() }

// CMYK extracts black first; pure black is (0,0,0,1).
func (c RGB) CMYK() CMYK {
	k := 1 - max(c.R, c.G, c.B)
	if k >= 1 {
		return CMYK{K: 1}
	}
	d := 1 - k
	return CMYK{
		C: (1 - c.R - k) / d,
		M: (1 - c.G - k) / d,
		Y: (1 - c.B - k) / d,
		K: k,
	}
}

func (c HSV) RGB() RGB {
	r, g, b := hsvToRGB(c.H, c.S, c.V)
	return RGB{R: r, G: g, B: b}
}

// RGB converts out of linear light. Out-of-gamut values are clipped in
// linear light before companding.
func (c OKLab) RGB() RGB {
	lms := okLabToLMS.MulVec(vectors.Vec3{X: c.L, Y: c.A, Z: c.B}).Map(cube)
	rgb := lmsToLinear.MulVec(lms).Map(clamp01).Map(linearToSrgb).Array()
	return RGB{R: rgb[0], G: rgb[1], B: rgb[2]}
}

// OKLCH is the polar form; the hue of an achromatic color is 0.
func (c OKLab) OKLCH() OKLCH {
	return OKLCH{
		L: c.L,
		C: math32.Sqrt(c.A*c.A + c.B*c.B),
		H: wrap(math32.Atan2(c.B, c.A)*(180/math.Pi), 360),
	}
}

func (c OKLCH) OKLab() OKLab {
	rad := c.H * (math.Pi / 180)
	return OKLab{L: c.L, A: c.C * math32.Cos(rad), B: c.C * math32.Sin(rad)}
}

func (c OKLCH) RGB() RGB { return c.OKLab().RGB() }

func (c CMYK) RGB() RGB {
	return RGB{
		R: (1 - c.C) * (1 - c.K),
		G: (1 - c.M) * (1 - c.K),
		B: (1 - c.Y) * (1 - c.K),
	}
}

// Björn Ottosson's OKLab matrices.
var (
	linearToLMS = vectors.Mat3{
		{X: 0.4122214708, Y: 0.5363325363, Z: 0.0514459929},
		{X: 0.2119034982, Y: 0.6806995451, Z: 0.1073969566},
		{X: 0.0883024619, Y: 0.2817188376, Z: 0.6299787005},
	}
	lmsToOKLab = vectors.Mat3{
		{X: 0.2104542553, Y: 0.7936177850, Z: -0.0040720468},
		{X: 1.9779984951, Y: -2.4285922050, Z: 0.4505937099},
		{X: 0.0259040371, Y: 0.7827717662, Z: -0.8086757660},
	}
	okLabToLMS = vectors.Mat3{
		{X: 1, Y: 0.3963377774, Z: 0.2158037573},
		{X: 1, Y: -0.1055613458, Z: -0.0638541728},
		{X: 1, Y: -0.0894841775, Z: -1.2914855480},
	}
	lmsToLinear = vectors.Mat3{
		{X: 4.0767416621, Y: -3.3077115913, Z: 0.2309699292},
		{X: -1.2684380046, Y: 2.6097574011, Z: -0.3413193965},
		{X: -0.0041960863, Y: -0.7034186147, Z: 1.7076147010},
	}
)

// --- helpers ---

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func cube(x float32) float32 { return x * x * x }

func rgbToHSV(r, g, b float32) (h, s, v float32) {
	mx := max(r, g, b)
	mn := min(r, g, b)
	v = mx
	d := mx - mn

	if mx <= 0 {
		// black
		return 0, 0, 0
	}
	if d <= 0 {
		// gray
		return 0, 0, v
	}

	s = d / mx

	var hh float32
	switch mx {
	case r:
		hh = (g - b) / d
		if g < b {
			hh += 6
		}
	case g:
		hh = (b-r)/d + 2
	default:
		hh = (r-g)/d + 4
	}
	h = wrap(hh*60, 360)
	return
}

func hsvToRGB(h, s, v float32) (r, g, b float32) {
	if s <= 0 {
		return v, v, v
	}
	h = wrap(h, 360) / 60
	i := math32.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch int(i) % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

// IEC 61966-2-1 sRGB <-> linear
func srgbToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math32.Pow((c+0.055)/1.055, 2.4)
}

func linearToSrgb(c float32) float32 {
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math32.Pow(c, 1.0/2.4) - 0.055
}
