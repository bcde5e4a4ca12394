package extractor

import (
	"fmt"
	"math"
	"strconv"

	"github.com/kataras/figma-components/pkg/figma"
)

// Color is a normalized RGBA color. R, G, B and A are the fractional source
// channels (0-1); Hex and RGBA are derived from them and never set separately.
type Color struct {
	R    float64 `json:"r" yaml:"r"`
	G    float64 `json:"g" yaml:"g"`
	B    float64 `json:"b" yaml:"b"`
	A    float64 `json:"a" yaml:"a"`
	Hex  string  `json:"hex" yaml:"hex"`
	RGBA string  `json:"rgba" yaml:"rgba"`
	// CSS is the shortest CSS form: Hex when opaque, RGBA otherwise.
	CSS string `json:"css" yaml:"css"`
}

// NewColor builds a Color from fractional channels.
func NewColor(r, g, b, a float64) Color {
	c := Color{R: r, G: g, B: b, A: a}
	red, green, blue := channelByte(r), channelByte(g), channelByte(b)

	c.Hex = fmt.Sprintf("#%02x%02x%02x", red, green, blue)
	c.RGBA = fmt.Sprintf("rgba(%d, %d, %d, %s)", red, green, blue, formatAlpha(a))
	if a < 1 {
		c.CSS = c.RGBA
	} else {
		c.CSS = c.Hex
	}
	return c
}

// colorFrom converts a raw Figma color. A missing record yields nil, never black.
func colorFrom(c *figma.Color) *Color {
	if c == nil {
		return nil
	}
	color := NewColor(c.R, c.G, c.B, c.Alpha())
	return &color
}

// channelByte maps a 0-1 channel to round(channel*255), clamped to [0,255].
func channelByte(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	b := int(math.Round(v * 255))
	if b < 0 {
		return 0
	}
	if b > 255 {
		return 255
	}
	return b
}

// formatAlpha clamps alpha to [0,1] and prints it rounded to 2 decimals without trailing zeros.
func formatAlpha(a float64) string {
	if math.IsNaN(a) || a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	a = math.Round(a*100) / 100
	return strconv.FormatFloat(a, 'f', -1, 64)
}
