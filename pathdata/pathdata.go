// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pathdata parses SVG path data into typed point sequences,
// resamples them to a common point count, and scores candidate morph
// pairs between paths. The supported command grammar is the subset
// {M, L, C, Q, Z} plus H and V lowered to line commands; elliptical
// arcs (A) and shorthand curves (S, T) are skipped, advancing the
// current point, which is a documented precision loss rather than an
// error.
package pathdata

import (
	"errors"

	"cogentcore.org/svganim/math32"
)

var (
	// ErrEmptyPath indicates empty or whitespace-only path data.
	ErrEmptyPath = errors.New("pathdata: empty path data")

	// ErrBadPathData indicates path data with no parseable commands.
	ErrBadPathData = errors.New("pathdata: no parseable path commands")
)

// Command is a path point command from the supported subset.
type Command int32

const (
	// Move starts a new subpath at the point.
	Move Command = iota

	// Line draws a straight line to the point.
	Line

	// CubicCurve draws a cubic Bezier to the point,
	// with exactly two control points.
	CubicCurve

	// QuadraticCurve draws a quadratic Bezier to the point,
	// with exactly one control point.
	QuadraticCurve

	// Close closes the subpath back to its starting point.
	Close
)

func (c Command) String() string {
	switch c {
	case Move:
		return "M"
	case Line:
		return "L"
	case CubicCurve:
		return "C"
	case QuadraticCurve:
		return "Q"
	case Close:
		return "Z"
	}
	return "?"
}

// PathPoint is one point of a parsed path: an end point, its command,
// and the command's control points (two for CubicCurve, one for
// QuadraticCurve, none otherwise).
type PathPoint struct {
	X, Y float32
	Cmd  Command
	Ctrl []math32.Vector2
}

// Pos returns the end point as a vector.
func (p PathPoint) Pos() math32.Vector2 {
	return math32.Vec2(p.X, p.Y)
}

// IsCurve returns whether the point is a cubic or quadratic curve command.
func (p PathPoint) IsCurve() bool {
	return p.Cmd == CubicCurve || p.Cmd == QuadraticCurve
}

// NormalizedPath is the morph-ready representation of one path
// element: its original and normalized data strings, the resampled
// point sequence, and its bounding box.
type NormalizedPath struct {
	ID         string
	Original   string
	Normalized string
	Points     []PathPoint
	Bounds     math32.Box2
}

// CurveCount returns the number of curve commands in the path.
func (np NormalizedPath) CurveCount() int {
	n := 0
	for _, p := range np.Points {
		if p.IsCurve() {
			n++
		}
	}
	return n
}

// MorphPair is a candidate animated-transition pairing of two paths,
// with a compatibility score in [0, 100] and the target's normalized
// path data as the morph destination.
type MorphPair struct {
	SourceID    string  `json:"sourceId"`
	TargetID    string  `json:"targetId"`
	Score       float32 `json:"score"`
	MorphTarget string  `json:"morphTarget"`
}
