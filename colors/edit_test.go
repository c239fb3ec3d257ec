package colors

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoflaresat/colorpick/hex"
)

func TestChangeValueClamps(t *testing.T) {
	c := Default()
	c.ChangeValue(0, 1.5)
	c.ChangeValue(1, -0.2)
	c.ChangeValue(2, 0.25)
	assert.Equal(t, []float32{1, 0, 0.25}, c.Values())

	lab := New(SpaceOKLab, 0.5, 0, 0)
	lab.ChangeValue(1, 0.9)
	lab.ChangeValue(2, -3)
	assert.Equal(t, []float32{0.5, 0.4, -0.4}, lab.Values())
}

func TestChangeValueWrapsHue(t *testing.T) {
	tests := []struct {
		name  string
		space Space
		index int
		in    float32
		want  float32
	}{
		{"hsv past 360", SpaceHSV, 0, 370, 10},
		{"hsv exactly 360", SpaceHSV, 0, 360, 0},
		{"hsv negative", SpaceHSV, 0, -30, 330},
		{"hsv several turns", SpaceHSV, 0, 1090, 10},
		{"oklch past 360", SpaceOKLCH, 2, 400, 40},
		{"oklch negative", SpaceOKLCH, 2, -90, 270},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.space)
			c.ChangeValue(tt.index, tt.in)
			assert.InDelta(t, tt.want, c.ChannelValue(tt.index), 1e-4)
		})
	}
}

func TestChangeValueIgnoresBadInput(t *testing.T) {
	c := New(SpaceHSV, 120, 0.5, 0.5)
	want := c
	c.ChangeValue(0, math32.NaN())
	c.ChangeValue(1, math32.Inf(1))
	c.ChangeValue(2, math32.Inf(-1))
	c.ChangeValue(3, 0.1)
	c.ChangeValue(-1, 0.1)
	assert.Equal(t, want, c)
}

func TestChangeValueStaysInSpace(t *testing.T) {
	// A same-space edit must not round trip through RGB, or the hue of
	// this desaturated color would collapse to 0.
	c := New(SpaceHSV, 200, 0, 0.5)
	c.ChangeValue(2, 0.7)
	assert.Equal(t, SpaceHSV, c.Space())
	assert.Equal(t, HSV{H: 200, S: 0, V: 0.7}, c.HSV())
}

func TestChangeString(t *testing.T) {
	tests := []struct {
		name  string
		space Space
		index int
		text  string
		want  float32
	}{
		{"rgb byte", SpaceRGB, 0, "255", 1},
		{"rgb byte spaced", SpaceRGB, 1, "  51 ", 0.2},
		{"rgb percent", SpaceRGB, 2, "50%", 0.5},
		{"rgb clamps", SpaceRGB, 0, "300", 1},
		{"hsv hue", SpaceHSV, 0, "210.5", 210.5},
		{"hsv hue wraps", SpaceHSV, 0, "370", 10},
		{"hsv hue deg", SpaceHSV, 0, "45deg", 45},
		{"hsv hue degree sign", SpaceHSV, 0, "45°", 45},
		{"hsv saturation", SpaceHSV, 1, "50", 0.5},
		{"hsv value percent sign", SpaceHSV, 2, "25%", 0.25},
		{"hsv saturation clamps", SpaceHSV, 1, "150", 1},
		{"oklab lightness", SpaceOKLab, 0, "0.628", 0.628},
		{"oklab lightness percent", SpaceOKLab, 0, "62.8%", 0.628},
		{"oklab a negative", SpaceOKLab, 1, "-0.1", -0.1},
		{"oklab b percent", SpaceOKLab, 2, "-100%", -0.4},
		{"oklch chroma", SpaceOKLCH, 1, "0.25", 0.25},
		{"oklch chroma percent", SpaceOKLCH, 1, "50%", 0.2},
		{"oklch hue", SpaceOKLCH, 2, "-10", 350},
		{"cmyk key", SpaceCMYK, 3, "25", 0.25},
		{"cmyk cyan percent", SpaceCMYK, 0, "75%", 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.space)
			require.NoError(t, c.ChangeString(tt.index, tt.text))
			assert.InDelta(t, tt.want, c.ChannelValue(tt.index), 1e-4)
			assert.Equal(t, tt.space, c.Space())
		})
	}
}

func TestChangeStringRejectsMalformed(t *testing.T) {
	inputs := []string{"", "abc", "-", " ", "%", "NaN", "Inf", "-inf", "1e99", "12abc", "1.2.3", "0x", "#ff0000"}
	for _, space := range Spaces() {
		for _, text := range inputs {
			c := New(space, 0.3, 0.3, 0.3, 0.3)
			want := c
			for i := 0; i < c.ChannelCount(); i++ {
				var err error
				assert.NotPanics(t, func() { err = c.ChangeString(i, text) })
				require.Error(t, err, "%s channel %d %q", space, i, text)
				assert.True(t, errors.Is(err, ErrSyntax), "%s %q: %v", space, text, err)

				var pe *ParseError
				require.True(t, errors.As(err, &pe))
				assert.Equal(t, i, pe.Field)
				assert.Equal(t, text, pe.Text)
			}
			assert.Equal(t, want, c, "%s %q", space, text)
		}
	}
}

func TestChangeStringUnknownChannel(t *testing.T) {
	c := Default()
	err := c.ChangeString(3, "1")
	assert.True(t, errors.Is(err, ErrField))
	assert.Equal(t, Default(), c)
}

func TestChangeStringHexField(t *testing.T) {
	c := Default().ToHSV()
	require.NoError(t, c.ChangeString(HexField, "#ff0000"))
	assert.Equal(t, SpaceHSV, c.Space())
	assert.Equal(t, HSV{H: 0, S: 1, V: 1}, c.HSV())

	require.NoError(t, c.ChangeString(HexField, " 00FF00 "))
	assert.InDelta(t, 120, c.HSV().H, 1e-4)

	before := c
	for _, text := range []string{"#ff", "#fff", "", "#gg0000", "#ff00000"} {
		err := c.ChangeString(HexField, text)
		require.Error(t, err, text)
		var de *hex.DecodeError
		assert.True(t, errors.As(err, &de), text)
		assert.Equal(t, before, c, text)
	}
}

func TestConvertFromRGB(t *testing.T) {
	c := Default().ToHSV()
	c.ConvertFromRGB([3]float32{1, 0, 0})
	assert.Equal(t, SpaceHSV, c.Space())
	assert.Equal(t, HSV{H: 0, S: 1, V: 1}, c.HSV())

	cmyk := Default().ToCMYK()
	cmyk.ConvertFromRGB([3]float32{0, 0, 0})
	assert.Equal(t, []float32{0, 0, 0, 1}, cmyk.Values())

	// Out-of-range sources are clamped before conversion.
	rgb := Default()
	rgb.ConvertFromRGB([3]float32{2, -1, 0.5})
	assert.Equal(t, []float32{1, 0, 0.5}, rgb.Values())
}

func TestEndToEndHSVGray(t *testing.T) {
	c := Default()
	assert.Equal(t, [3]float32{0, 0, 0}, c.CurrentRGB())

	c = c.ToHSV()
	assert.Equal(t, HSV{H: 0, S: 0, V: 0}, c.HSV())

	c.ChangeValue(2, 1.0)
	assert.Equal(t, HSV{H: 0, S: 0, V: 1}, c.HSV())

	c = c.ToRGB()
	assert.Equal(t, SpaceRGB, c.Space())
	assert.Equal(t, [3]float32{1, 1, 1}, c.CurrentRGB())
}

func TestChannelText(t *testing.T) {
	assert.Equal(t, "128", FromRGB([3]float32{0.5019608, 0, 0}).ChannelText(0))
	assert.Equal(t, "#800000", FromRGB([3]float32{0.5019608, 0, 0}).ChannelText(HexField))

	hsv := New(SpaceHSV, 210.5, 0.5025, 0.8)
	assert.Equal(t, "210.5", hsv.ChannelText(0))
	assert.Equal(t, "50.25", hsv.ChannelText(1))
	assert.Equal(t, "80", hsv.ChannelText(2))
	assert.Equal(t, "", hsv.ChannelText(7))

	lab := New(SpaceOKLab, 0.5, -0.00001, 0.12345)
	assert.Equal(t, "0", lab.ChannelText(1))
	assert.Equal(t, "0.1235", lab.ChannelText(2))
}

func TestChannelTextParsesBack(t *testing.T) {
	for _, s := range Spaces() {
		c := FromRGB([3]float32{0.2, 0.6, 0.9}).Convert(s)
		for i := 0; i < c.ChannelCount(); i++ {
			d := New(s)
			require.NoError(t, d.ChangeString(i, c.ChannelText(i)))
			ch, _ := c.Channel(i)
			tol := float64(0.5)
			for range ch.Precision {
				tol /= 10
			}
			if ch.Notation == Byte {
				tol = 0.5 / 255
			}
			if ch.Notation == Percent {
				tol /= 100
			}
			assert.InDelta(t, c.ChannelValue(i), d.ChannelValue(i), tol+1e-6, "%s %s", s, ch.Name)
		}
	}
}
