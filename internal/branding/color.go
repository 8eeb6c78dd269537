package branding

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidHex is returned for colors that are not #rgb or #rrggbb
var ErrInvalidHex = errors.New("invalid hex color")

// RGB is a color with 0-255 channels
type RGB struct {
	R, G, B int
}

// ParseHex parses "#rgb", "#rrggbb" or the same without the leading '#'.
func ParseHex(hex string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	return RGB{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

// Hex formats the color as lower-case #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HexToHSL converts a hex color to the "H S% L%" triple used as a CSS
// custom property value, e.g. "#10B981" -> "160 84.1% 39.4%". Hue is rounded
// half-up to whole degrees; saturation and lightness to one decimal.
func HexToHSL(hex string) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}

	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	cmin := math.Min(r, math.Min(g, b))
	cmax := math.Max(r, math.Max(g, b))
	delta := cmax - cmin

	var h float64
	switch {
	case delta == 0:
		h = 0
	case cmax == r:
		h = math.Mod((g-b)/delta, 6)
	case cmax == g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}

	hue := int(roundHalfUp(h * 60))
	if hue < 0 {
		hue += 360
	}

	l := (cmax + cmin) / 2
	s := 0.0
	if delta != 0 {
		s = delta / (1 - math.Abs(2*l-1))
	}

	return fmt.Sprintf("%d %s%% %s%%", hue, oneDecimal(s*100), oneDecimal(l*100)), nil
}

// roundHalfUp rounds .5 towards positive infinity
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func oneDecimal(x float64) string {
	return strconv.FormatFloat(math.Round(x*10)/10, 'f', -1, 64)
}

// AdjustColor scales every channel by (1+lum) and clamps, so a negative lum
// darkens and a positive one lightens.
func AdjustColor(hex string, lum float64) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	adjust := func(v int) int {
		f := float64(v)
		return int(roundHalfUp(math.Min(math.Max(0, f+f*lum), 255)))
	}
	return RGB{R: adjust(c.R), G: adjust(c.G), B: adjust(c.B)}.Hex(), nil
}

// ContrastText returns black or white, whichever reads better on hex.
// Invalid colors get white.
func ContrastText(hex string) string {
	c, err := ParseHex(hex)
	if err != nil {
		return "#ffffff"
	}
	yiq := float64(c.R)*0.299 + float64(c.G)*0.587 + float64(c.B)*0.114
	if yiq > 186 {
		return "#000000"
	}
	return "#ffffff"
}

// Luminance returns the WCAG relative luminance of hex, 0 for invalid input
func Luminance(hex string) float64 {
	c, err := ParseHex(hex)
	if err != nil {
		return 0
	}
	transform := func(v int) float64 {
		f := float64(v) / 255
		if f <= 0.03928 {
			return f / 12.92
		}
		return math.Pow((f+0.055)/1.055, 2.4)
	}
	return 0.2126*transform(c.R) + 0.7152*transform(c.G) + 0.0722*transform(c.B)
}

// ContrastRatio returns the WCAG contrast ratio between two colors (1 to 21)
func ContrastRatio(a, b string) float64 {
	l1, l2 := Luminance(a), Luminance(b)
	lighter, darker := math.Max(l1, l2), math.Min(l1, l2)
	return (lighter + 0.05) / (darker + 0.05)
}

// DefaultContrastThreshold is the WCAG AA ratio for normal text
const DefaultContrastThreshold = 4.5

// HasSufficientContrast reports whether white text on hex meets threshold
func HasSufficientContrast(hex string, threshold float64) bool {
	return ContrastRatio(hex, "#ffffff") >= threshold
}
