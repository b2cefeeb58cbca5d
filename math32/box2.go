// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Box2 represents a 2D bounding box defined by two points:
// the point with the minimum coordinates and the point with the
// maximum coordinates.
type Box2 struct {
	Min Vector2
	Max Vector2
}

// B2 returns a new [Box2] from the given minimum and maximum x and y coordinates.
func B2(x0, y0, x1, y1 float32) Box2 {
	return Box2{Vec2(x0, y0), Vec2(x1, y1)}
}

// B2Empty returns a new [Box2] with empty minimum and maximum values,
// ready for [Box2.ExpandByPoint].
func B2Empty() Box2 {
	bb := Box2{}
	bb.SetEmpty()
	return bb
}

// SetEmpty set this bounding box to empty (min / max +/- Inf)
func (b *Box2) SetEmpty() {
	b.Min.Set(MaxFloat32, MaxFloat32)
	b.Max.Set(-MaxFloat32, -MaxFloat32)
}

// IsEmpty returns whether the bounding box is empty (max < min on either axis).
func (b Box2) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y
}

// ExpandByPoint may expand this bounding box to include the specified point.
func (b *Box2) ExpandByPoint(point Vector2) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// Size returns the size of this bounding box.
func (b Box2) Size() Vector2 {
	if b.IsEmpty() {
		return Vector2{}
	}
	return b.Max.Sub(b.Min)
}

// Area returns the area of this bounding box.
func (b Box2) Area() float32 {
	sz := b.Size()
	return sz.X * sz.Y
}

// Union returns the union of this box with the other given box.
func (b Box2) Union(other Box2) Box2 {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	return Box2{b.Min.Min(other.Min), b.Max.Max(other.Max)}
}
