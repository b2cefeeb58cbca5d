// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colors

// Reference is one entry in the fixed reference hue table used for
// semantic naming of extracted colors and id name fragments.
type Reference struct {
	Name  string
	Color Color
}

// ReferenceTable is the fixed table of nameable reference hues.
// It is intentionally small: names are for humans reading ids and
// token tables, not for color fidelity.
var ReferenceTable = []Reference{
	{"red", Color{255, 0, 0, 255}},
	{"orange", Color{255, 165, 0, 255}},
	{"yellow", Color{255, 255, 0, 255}},
	{"green", Color{0, 128, 0, 255}},
	{"teal", Color{0, 128, 128, 255}},
	{"cyan", Color{0, 255, 255, 255}},
	{"blue", Color{0, 0, 255, 255}},
	{"purple", Color{128, 0, 128, 255}},
	{"pink", Color{255, 192, 203, 255}},
	{"brown", Color{139, 69, 19, 255}},
	{"black", Color{0, 0, 0, 255}},
	{"gray", Color{128, 128, 128, 255}},
	{"white", Color{255, 255, 255, 255}},
}

// NameTolerance is the maximum Euclidean RGB distance for a color to
// take the name of a reference hue.
const NameTolerance = 100

// Name returns the name of the nearest reference hue within
// [NameTolerance] of the given color, and whether one was found.
func Name(c Color) (string, bool) {
	best := ""
	bestDist := float32(NameTolerance)
	for _, ref := range ReferenceTable {
		d := c.Distance(ref.Color)
		if d < bestDist {
			best = ref.Name
			bestDist = d
		}
	}
	return best, best != ""
}

// TierName returns a brightness-tier fallback name for colors that
// match no reference hue: dark, medium, light, or bright.
func TierName(c Color) string {
	_, _, l := c.ToHSL()
	switch {
	case l < 0.25:
		return "dark"
	case l < 0.5:
		return "medium"
	case l < 0.75:
		return "light"
	}
	return "bright"
}
