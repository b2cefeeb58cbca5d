// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedTransform is returned by [Matrix2.SetString] for transform
// functions outside the supported subset (skewX and skewY in particular).
var ErrUnsupportedTransform = errors.New("math32: unsupported transform function")

// Matrix2 is a 2x3 affine transformation matrix in SVG order:
//
//	XX XY X0
//	YX YY Y0
//
// corresponding to matrix(XX, YX, XY, YY, X0, Y0) in a transform attribute.
type Matrix2 struct {
	XX, YX, XY, YY, X0, Y0 float32
}

// Identity2 returns a new identity [Matrix2].
func Identity2() Matrix2 {
	return Matrix2{XX: 1, YY: 1}
}

// Translate2D returns a Matrix2 translating by the given x and y.
func Translate2D(x, y float32) Matrix2 {
	return Matrix2{XX: 1, YY: 1, X0: x, Y0: y}
}

// Scale2D returns a Matrix2 scaling by the given x and y factors.
func Scale2D(x, y float32) Matrix2 {
	return Matrix2{XX: x, YY: y}
}

// Rotate2D returns a Matrix2 rotating by the given angle in radians,
// about the origin.
func Rotate2D(angle float32) Matrix2 {
	c := Cos(angle)
	s := Sin(angle)
	return Matrix2{XX: c, YX: s, XY: -s, YY: c}
}

// IsIdentity returns whether this matrix is the identity.
func (a Matrix2) IsIdentity() bool {
	return a == Identity2()
}

// Mul returns a times b, such that the resulting transform applies b
// first and then a: parent.Mul(child) is the accumulated transform for
// a child element under a parent's coordinate space.
func (a Matrix2) Mul(b Matrix2) Matrix2 {
	return Matrix2{
		XX: a.XX*b.XX + a.XY*b.YX,
		YX: a.YX*b.XX + a.YY*b.YX,
		XY: a.XX*b.XY + a.XY*b.YY,
		YY: a.YX*b.XY + a.YY*b.YY,
		X0: a.XX*b.X0 + a.XY*b.Y0 + a.X0,
		Y0: a.YX*b.X0 + a.YY*b.Y0 + a.Y0,
	}
}

// MulVector2AsPoint multiplies the given vector as a point,
// including the translation terms.
func (a Matrix2) MulVector2AsPoint(v Vector2) Vector2 {
	return Vector2{
		X: a.XX*v.X + a.XY*v.Y + a.X0,
		Y: a.YX*v.X + a.YY*v.Y + a.Y0,
	}
}

// MulVector2AsVector multiplies the given vector as a vector,
// excluding the translation terms, e.g., for sizes and radii.
func (a Matrix2) MulVector2AsVector(v Vector2) Vector2 {
	return Vector2{
		X: a.XX*v.X + a.XY*v.Y,
		Y: a.YX*v.X + a.YY*v.Y,
	}
}

// ExtractRot extracts the rotation component, in radians.
func (a Matrix2) ExtractRot() float32 {
	return Atan2(a.YX, a.XX)
}

// ExtractScale extracts the x and y scale factors.
func (a Matrix2) ExtractScale() (float32, float32) {
	return Hypot(a.XX, a.YX), Hypot(a.XY, a.YY)
}

func (a Matrix2) String() string {
	if a.IsIdentity() {
		return "none"
	}
	return fmt.Sprintf("matrix(%s,%s,%s,%s,%s,%s)",
		String(a.XX), String(a.YX), String(a.XY), String(a.YY), String(a.X0), String(a.Y0))
}

// SetString processes the given transform attribute string, which can
// contain any number of whitespace-separated transform functions from
// the subset none, matrix, translate, scale, and rotate (1-arg and
// 3-arg center forms), composed left to right. skewX and skewY and
// any unknown function return [ErrUnsupportedTransform], leaving the
// matrix as the portion parsed so far.
func (a *Matrix2) SetString(str string) error {
	*a = Identity2()
	str = strings.ToLower(strings.TrimSpace(str))
	if str == "" || str == "none" {
		return nil
	}
	for str != "" {
		lp := strings.IndexByte(str, '(')
		rp := strings.IndexByte(str, ')')
		if lp < 0 || rp < lp {
			return fmt.Errorf("math32.Matrix2.SetString: missing parens in %q", str)
		}
		nm := strings.TrimSpace(str[:lp])
		vals := ReadPoints(str[lp+1 : rp])
		str = strings.TrimSpace(str[rp+1:])
		m, err := transformFunc(nm, vals)
		if err != nil {
			return err
		}
		*a = a.Mul(m)
	}
	return nil
}

func transformFunc(nm string, vals []float32) (Matrix2, error) {
	switch nm {
	case "matrix":
		if len(vals) != 6 {
			return Identity2(), fmt.Errorf("math32.Matrix2.SetString: matrix requires 6 values, got %d", len(vals))
		}
		return Matrix2{vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]}, nil
	case "translate":
		switch len(vals) {
		case 1:
			return Translate2D(vals[0], 0), nil
		case 2:
			return Translate2D(vals[0], vals[1]), nil
		}
		return Identity2(), fmt.Errorf("math32.Matrix2.SetString: translate requires 1 or 2 values, got %d", len(vals))
	case "scale":
		switch len(vals) {
		case 1:
			return Scale2D(vals[0], vals[0]), nil
		case 2:
			return Scale2D(vals[0], vals[1]), nil
		}
		return Identity2(), fmt.Errorf("math32.Matrix2.SetString: scale requires 1 or 2 values, got %d", len(vals))
	case "rotate":
		switch len(vals) {
		case 1:
			return Rotate2D(DegToRad(vals[0])), nil
		case 3:
			// rotate about a center point
			ctr := Translate2D(vals[1], vals[2])
			rot := Rotate2D(DegToRad(vals[0]))
			inv := Translate2D(-vals[1], -vals[2])
			return ctr.Mul(rot).Mul(inv), nil
		}
		return Identity2(), fmt.Errorf("math32.Matrix2.SetString: rotate requires 1 or 3 values, got %d", len(vals))
	}
	return Identity2(), fmt.Errorf("%w: %q", ErrUnsupportedTransform, nm)
}
