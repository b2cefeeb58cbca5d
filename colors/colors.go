// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colors parses SVG color values into a canonical RGBA
// representation and names colors against a small reference hue table,
// for palette extraction and semantic id naming.
package colors

import (
	"fmt"
	"image/color"
	"strings"

	"cogentcore.org/svganim/math32"
	"golang.org/x/image/colornames"
)

// Color is a standard uint8 0..255 RGBA color, implementing the
// [color.Color] interface.
type Color struct {
	R, G, B, A uint8
}

// RGBA implements the [color.Color] interface, returning values
// in the range 0x0000 - 0xffff.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	a = uint32(c.A)
	a |= a << 8
	return
}

// HexString returns the canonical lowercase #rrggbb form of the color.
// Alpha is not included: SVG fill/stroke opacity lives in separate
// attributes once canonicalized.
func (c Color) HexString() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// FromString parses the given SVG paint value into a color.
// Supported forms: #rgb, #rrggbb, #rrggbbaa, rgb(r,g,b), rgba(r,g,b,a),
// and the standard SVG named colors. The bool result is false for
// "none", "transparent", empty strings, and url() paint server
// references, which carry no extractable color. Anything else
// unrecognized returns an error.
func FromString(s string) (Color, bool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "none" || s == "transparent":
		return Color{}, false, nil
	case strings.HasPrefix(s, "url("):
		return Color{}, false, nil
	case s[0] == '#':
		c, err := parseHex(s)
		return c, err == nil, err
	case strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba("):
		c, err := parseRGB(s)
		return c, err == nil, err
	}
	if nc, ok := colornames.Map[s]; ok {
		return Color{nc.R, nc.G, nc.B, nc.A}, true, nil
	}
	return Color{}, false, fmt.Errorf("colors.FromString: unknown color value %q", s)
}

func parseHex(x string) (Color, error) {
	x = strings.TrimPrefix(x, "#")
	var r, g, b int
	a := 255
	switch len(x) {
	case 3:
		if _, err := fmt.Sscanf(x, "%1x%1x%1x", &r, &g, &b); err != nil {
			return Color{}, fmt.Errorf("colors.parseHex: %q: %w", x, err)
		}
		r |= r << 4
		g |= g << 4
		b |= b << 4
	case 6:
		if _, err := fmt.Sscanf(x, "%02x%02x%02x", &r, &g, &b); err != nil {
			return Color{}, fmt.Errorf("colors.parseHex: %q: %w", x, err)
		}
	case 8:
		if _, err := fmt.Sscanf(x, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return Color{}, fmt.Errorf("colors.parseHex: %q: %w", x, err)
		}
	default:
		return Color{}, fmt.Errorf("colors.parseHex: invalid hex length in %q", x)
	}
	return Color{uint8(r), uint8(g), uint8(b), uint8(a)}, nil
}

func parseRGB(s string) (Color, error) {
	lp := strings.IndexByte(s, '(')
	rp := strings.IndexByte(s, ')')
	if lp < 0 || rp < lp {
		return Color{}, fmt.Errorf("colors.parseRGB: missing parens in %q", s)
	}
	vals := math32.ReadPoints(s[lp+1 : rp])
	if len(vals) < 3 {
		return Color{}, fmt.Errorf("colors.parseRGB: need at least 3 values in %q", s)
	}
	clamp := func(v float32) uint8 {
		return uint8(math32.Clamp(v, 0, 255))
	}
	c := Color{clamp(vals[0]), clamp(vals[1]), clamp(vals[2]), 255}
	if len(vals) >= 4 {
		c.A = uint8(math32.Clamp(vals[3], 0, 1) * 255)
	}
	return c, nil
}

// AsRGBA returns the color as a standard [color.RGBA].
func (c Color) AsRGBA() color.RGBA {
	return color.RGBA{c.R, c.G, c.B, c.A}
}

// Distance returns the Euclidean RGB distance to the other given color,
// in the range [0, ~441].
func (c Color) Distance(o Color) float32 {
	dr := float32(c.R) - float32(o.R)
	dg := float32(c.G) - float32(o.G)
	db := float32(c.B) - float32(o.B)
	return math32.Sqrt(dr*dr + dg*dg + db*db)
}

// ToHSL returns the hue [0..360], saturation [0..1], and lightness
// [0..1] of the color.
func (c Color) ToHSL() (h, s, l float32) {
	return rgbToHSL(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255)
}

func rgbToHSL(r, g, b float32) (h, s, l float32) {
	min := math32.Min(math32.Min(r, g), b)
	max := math32.Max(math32.Max(r, g), b)

	l = (max + min) / 2

	if min == max {
		return 0, 0, l
	}
	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = 2 + (b-r)/d
	case b:
		h = 4 + (r-g)/d
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return
}
