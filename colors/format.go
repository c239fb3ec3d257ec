package colors

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/echoflaresat/colorpick/hex"
)

// Hex returns the "#RRGGBB" form of the RGB pivot.
func (c Color) Hex() string {
	return hex.Encode(hex.FromFloat(c.CurrentRGB()))
}

// String returns the canonical text of c, as CopyToClipboard does.
func (c Color) String() string {
	return c.format()
}

// CopyToClipboard renders the live channels in the space's natural units:
//
//	rgb(255, 0, 0)
//	hsv(0, 100%, 100%)
//	oklab(62.8% 0.2249 0.1258)
//	oklch(62.8% 0.2577 29.23)
//	cmyk(0%, 100%, 100%, 0%)
//
// The result is accepted by Parse.
func (c Color) CopyToClipboard() string {
	s := c.format()
	Logger().Info("copying color to clipboard", "text", s)
	return s
}

func (c Color) format() string {
	t := c.ChannelText
	switch c.space {
	case SpaceHSV:
		return fmt.Sprintf("hsv(%s, %s%%, %s%%)", t(0), t(1), t(2))
	case SpaceOKLab:
		return fmt.Sprintf("oklab(%s%% %s %s)", formatNumber(float64(c.v[0])*100, 2), t(1), t(2))
	case SpaceOKLCH:
		return fmt.Sprintf("oklch(%s%% %s %s)", formatNumber(float64(c.v[0])*100, 2), t(1), t(2))
	case SpaceCMYK:
		return fmt.Sprintf("cmyk(%s%%, %s%%, %s%%, %s%%)", t(0), t(1), t(2), t(3))
	}
	return fmt.Sprintf("rgb(%s, %s, %s)", t(0), t(1), t(2))
}

var componentSep = regexp.MustCompile(`[,\s]+`)

// Parse reads a color written as "#RRGGBB" or in the functional form
// produced by CopyToClipboard. Components may be separated by commas,
// whitespace or both; each is read like ChangeString would read it.
func Parse(text string) (Color, error) {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "#") {
		rgb, err := hex.Parse(s)
		if err != nil {
			return Color{}, err
		}
		return FromRGB(hex.ToFloat(rgb)), nil
	}

	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("parse color %q: expected #RRGGBB or space(...)", text)
	}
	space, err := ParseSpace(s[:open])
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", text, err)
	}

	var parts []string
	for _, p := range componentSep.Split(s[open+1:len(s)-1], -1) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	c := New(space)
	if len(parts) != c.ChannelCount() {
		return Color{}, fmt.Errorf("parse color %q: %s needs %d components, got %d",
			text, space, c.ChannelCount(), len(parts))
	}
	for i, p := range parts {
		if err := c.ChangeString(i, p); err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", text, err)
		}
	}
	return c, nil
}
