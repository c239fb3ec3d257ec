package colors

import (
	"fmt"
	"testing"

	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

// rgbGrid returns every triple on a regular lattice over the unit cube.
func rgbGrid(steps int) [][3]float32 {
	var out [][3]float32
	for r := 0; r <= steps; r++ {
		for g := 0; g <= steps; g++ {
			for b := 0; b <= steps; b++ {
				out = append(out, [3]float32{
					float32(r) / float32(steps),
					float32(g) / float32(steps),
					float32(b) / float32(steps),
				})
			}
		}
	}
	return out
}

func assertRGBNear(t *testing.T, want, got [3]float32, tol float32, msgAndArgs ...any) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, float64(tol))); diff != "" {
		t.Errorf("rgb mismatch (-want +got):\n%s %v", diff, msgAndArgs)
	}
}

func TestCMYKRoundTrip(t *testing.T) {
	for _, rgb := range rgbGrid(10) {
		got := FromRGB(rgb).ToCMYK().ToRGB().CurrentRGB()
		assertRGBNear(t, rgb, got, 1e-5, rgb)
	}
}

func TestCMYKBlack(t *testing.T) {
	c := Default().ToCMYK()
	assert.Equal(t, SpaceCMYK, c.Space())
	assert.Equal(t, CMYK{C: 0, M: 0, Y: 0, K: 1}, c.CMYK())
}

func TestCMYKIsNotBijective(t *testing.T) {
	// An arbitrary CMYK maps to RGB, but coming back yields the canonical
	// tuple, not the input one.
	in := New(SpaceCMYK, 0.5, 0.5, 0.5, 0.5)
	back := in.ToRGB().ToCMYK()
	assert.InDelta(t, 0, back.CMYK().C, 1e-6)
	assert.InDelta(t, 0.75, back.CMYK().K, 1e-6)

	// Canonical tuples are a fixed point.
	canon := back.ToRGB().ToCMYK()
	if diff := cmp.Diff(back.Values(), canon.Values(), cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("canonical cmyk drifted (-want +got):\n%s", diff)
	}
}

func TestHSVRoundTrip(t *testing.T) {
	for _, rgb := range rgbGrid(10) {
		got := FromRGB(rgb).ToHSV().ToRGB().CurrentRGB()
		assertRGBNear(t, rgb, got, 1e-5, rgb)
	}
}

func TestHSVRoundTripBoundaryHues(t *testing.T) {
	for _, h := range []float32{0, 60, 120, 180, 240, 300, 359.999} {
		for _, sv := range [][2]float32{{1, 1}, {0.5, 0.8}, {0.25, 0.3}} {
			t.Run(fmt.Sprintf("h=%v s=%v v=%v", h, sv[0], sv[1]), func(t *testing.T) {
				rgb := HSV{H: h, S: sv[0], V: sv[1]}.RGB().Array()
				got := FromRGB(rgb).ToHSV().ToRGB().CurrentRGB()
				assertRGBNear(t, rgb, got, 1e-5)
			})
		}
	}
}

func TestHSVKnownColors(t *testing.T) {
	tests := []struct {
		name string
		rgb  [3]float32
		want HSV
	}{
		{"black", [3]float32{0, 0, 0}, HSV{0, 0, 0}},
		{"white", [3]float32{1, 1, 1}, HSV{0, 0, 1}},
		{"gray", [3]float32{0.5, 0.5, 0.5}, HSV{0, 0, 0.5}},
		{"red", [3]float32{1, 0, 0}, HSV{0, 1, 1}},
		{"yellow", [3]float32{1, 1, 0}, HSV{60, 1, 1}},
		{"green", [3]float32{0, 1, 0}, HSV{120, 1, 1}},
		{"cyan", [3]float32{0, 1, 1}, HSV{180, 1, 1}},
		{"blue", [3]float32{0, 0, 1}, HSV{240, 1, 1}},
		{"magenta", [3]float32{1, 0, 1}, HSV{300, 1, 1}},
		{"dark rose", [3]float32{0.5, 0, 0.25}, HSV{330, 1, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromRGB(tt.rgb).HSV()
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
				t.Errorf("HSV mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHSVSaturationAtZeroValue(t *testing.T) {
	for _, h := range []float32{0, 45, 200, 359} {
		c := New(SpaceHSV, h, 0.7, 0).ToRGB().ToHSV()
		s := c.HSV().S
		assert.False(t, math32.IsNaN(s))
		assert.Equal(t, float32(0), s)
	}
	assert.Equal(t, HSV{}, rgbHSV(0, 0, 0))
}

func rgbHSV(r, g, b float32) HSV { return RGB{R: r, G: g, B: b}.HSV() }

func TestOKLabKnownColors(t *testing.T) {
	tests := []struct {
		name string
		rgb  [3]float32
		want OKLab
	}{
		{"black", [3]float32{0, 0, 0}, OKLab{0, 0, 0}},
		{"white", [3]float32{1, 1, 1}, OKLab{1, 0, 0}},
		{"red", [3]float32{1, 0, 0}, OKLab{0.62796, 0.22486, 0.12585}},
		{"green", [3]float32{0, 1, 0}, OKLab{0.86644, -0.23389, 0.17950}},
		{"blue", [3]float32{0, 0, 1}, OKLab{0.45201, -0.03246, -0.31153}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromRGB(tt.rgb).OKLab()
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-3)); diff != "" {
				t.Errorf("OKLab mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOKLabAppliesGamma(t *testing.T) {
	// Mid gray is 0.5 in sRGB but ~0.214 in linear light; without
	// companding its lightness would be cbrt(0.5) ≈ 0.794.
	l := FromRGB([3]float32{0.5, 0.5, 0.5}).OKLab().L
	assert.InDelta(t, 0.5981, l, 1e-3)
}

func TestOKLabRoundTrip(t *testing.T) {
	for _, rgb := range rgbGrid(8) {
		got := FromRGB(rgb).ToOKLab().ToRGB().CurrentRGB()
		assertRGBNear(t, rgb, got, 1e-3, rgb)
	}
}

func TestOKLCHRoundTrip(t *testing.T) {
	coords := []float32{-0.4, -0.25, -0.1, 0, 0.1, 0.25, 0.4}
	for _, l := range []float32{0, 0.3, 0.7, 1} {
		for _, a := range coords {
			for _, b := range coords {
				in := New(SpaceOKLab, l, a, b)
				out := in.ToOKLCH().ToOKLab()
				if diff := cmp.Diff(in.Values(), out.Values(), cmpopts.EquateApprox(0, 1e-5)); diff != "" {
					t.Errorf("oklab(%v %v %v) round trip (-want +got):\n%s", l, a, b, diff)
				}
			}
		}
	}
}

func TestOKLCHKnownColors(t *testing.T) {
	red := FromRGB([3]float32{1, 0, 0}).OKLCH()
	assert.InDelta(t, 0.6280, red.L, 1e-3)
	assert.InDelta(t, 0.2577, red.C, 1e-3)
	assert.InDelta(t, 29.23, red.H, 0.1)

	blue := FromRGB([3]float32{0, 0, 1}).OKLCH()
	assert.InDelta(t, 264.05, blue.H, 0.1)
}

func TestConvertOutputsStayInRange(t *testing.T) {
	for _, rgb := range rgbGrid(6) {
		c := FromRGB(rgb)
		for _, s := range Spaces() {
			got := c.Convert(s)
			assert.Equal(t, s, got.Space())
			for i, ch := range got.Channels() {
				v := got.ChannelValue(i)
				assert.False(t, math32.IsNaN(v), "%v %s is NaN", rgb, ch.Name)
				assert.GreaterOrEqual(t, v, ch.Min, "%v %s", rgb, ch.Name)
				if ch.Wrap {
					assert.Less(t, v, ch.Max, "%v %s", rgb, ch.Name)
				} else {
					assert.LessOrEqual(t, v, ch.Max, "%v %s", rgb, ch.Name)
				}
			}
		}
	}
}

func TestOutOfGamutOKLabClampsRGB(t *testing.T) {
	rgb := New(SpaceOKLab, 0.9, 0.4, -0.4).CurrentRGB()
	for _, v := range rgb {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestConvertSameSpaceKeepsChannels(t *testing.T) {
	// Hue survives on a gray only because no RGB round trip happens.
	c := New(SpaceHSV, 200, 0, 0.5)
	assert.Equal(t, c, c.ToHSV())
	assert.Equal(t, float32(0), c.ToRGB().ToHSV().HSV().H)
}

func TestSRGBCompanding(t *testing.T) {
	assert.Equal(t, float32(0), srgbToLinear(0))
	assert.InDelta(t, 1, srgbToLinear(1), 1e-6)
	assert.InDelta(t, 0.04045/12.92, srgbToLinear(0.04045), 1e-7)
	assert.InDelta(t, 0.0031308*12.92, linearToSrgb(0.0031308), 1e-7)
	for i := 0; i <= 255; i++ {
		v := float32(i) / 255
		assert.InDelta(t, v, linearToSrgb(srgbToLinear(v)), 1e-5)
	}
}
