// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pathdata

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"cogentcore.org/svganim/math32"
	"cogentcore.org/svganim/tree"
)

// DefaultTarget is the default normalized point count for morphing.
const DefaultTarget = 100

// Normalize resamples the given point sequence to exactly target
// points. With more source points, points are selected by nearest
// index at target evenly spaced fractional positions; with fewer,
// additional points are linearly interpolated between consecutive
// pairs, distributed proportionally. The first point of the result is
// always a Move.
func Normalize(pts []PathPoint, target int) []PathPoint {
	if target <= 0 || len(pts) == 0 {
		return nil
	}
	var out []PathPoint
	switch {
	case len(pts) == target:
		out = clonePoints(pts)
	case len(pts) > target:
		out = downsample(pts, target)
	default:
		out = upsample(pts, target)
	}
	out[0] = PathPoint{X: out[0].X, Y: out[0].Y, Cmd: Move}
	return out
}

func clonePoints(pts []PathPoint) []PathPoint {
	out := make([]PathPoint, len(pts))
	for i, p := range pts {
		out[i] = p
		out[i].Ctrl = slices.Clone(p.Ctrl)
	}
	return out
}

func downsample(pts []PathPoint, target int) []PathPoint {
	out := make([]PathPoint, target)
	if target == 1 {
		out[0] = pts[0]
		return clonePoints(out)
	}
	stride := float32(len(pts)-1) / float32(target-1)
	for i := 0; i < target; i++ {
		idx := int(math32.Round(float32(i) * stride))
		if idx >= len(pts) {
			idx = len(pts) - 1
		}
		p := pts[idx]
		p.Ctrl = slices.Clone(p.Ctrl)
		out[i] = p
	}
	return out
}

func upsample(pts []PathPoint, target int) []PathPoint {
	n := len(pts)
	if n == 1 {
		out := make([]PathPoint, target)
		for i := range out {
			out[i] = PathPoint{X: pts[0].X, Y: pts[0].Y, Cmd: Line}
		}
		return out
	}
	gaps := n - 1
	extra := target - n
	perGap := extra / gaps
	rem := extra % gaps

	out := make([]PathPoint, 0, target)
	for i := 0; i < gaps; i++ {
		a := pts[i]
		a.Ctrl = slices.Clone(a.Ctrl)
		out = append(out, a)
		k := perGap
		if i < rem {
			k++
		}
		for j := 1; j <= k; j++ {
			t := float32(j) / float32(k+1)
			pt := a.Pos().Lerp(pts[i+1].Pos(), t)
			out = append(out, PathPoint{X: pt.X, Y: pt.Y, Cmd: Line})
		}
	}
	last := pts[n-1]
	last.Ctrl = slices.Clone(last.Ctrl)
	out = append(out, last)
	return out
}

// Bounds returns the axis-aligned bounding box of the point end
// positions (control points are not included).
func Bounds(pts []PathPoint) math32.Box2 {
	bb := math32.B2Empty()
	for _, p := range pts {
		bb.ExpandByPoint(p.Pos())
	}
	return bb
}

// String serializes the given point sequence back into path data.
func String(pts []PathPoint) string {
	var sb strings.Builder
	for i, p := range pts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch p.Cmd {
		case Move, Line:
			fmt.Fprintf(&sb, "%s%s %s", p.Cmd, math32.String(p.X), math32.String(p.Y))
		case CubicCurve:
			fmt.Fprintf(&sb, "C%s %s %s %s %s %s",
				math32.String(p.Ctrl[0].X), math32.String(p.Ctrl[0].Y),
				math32.String(p.Ctrl[1].X), math32.String(p.Ctrl[1].Y),
				math32.String(p.X), math32.String(p.Y))
		case QuadraticCurve:
			fmt.Fprintf(&sb, "Q%s %s %s %s",
				math32.String(p.Ctrl[0].X), math32.String(p.Ctrl[0].Y),
				math32.String(p.X), math32.String(p.Y))
		case Close:
			sb.WriteString("Z")
		}
	}
	return sb.String()
}

// NormalizePaths parses and normalizes every path element in the
// document to the given target point count (DefaultTarget if <= 0),
// returning one [NormalizedPath] per path with non-empty data.
// Paths without an id attribute are keyed by their arena index.
func NormalizePaths(doc *tree.Document, target int, log *slog.Logger) ([]NormalizedPath, error) {
	if doc == nil || !doc.Valid(doc.Root) {
		return nil, tree.ErrNoRoot
	}
	if target <= 0 {
		target = DefaultTarget
	}
	if log == nil {
		log = slog.Default()
	}
	var paths []NormalizedPath
	var err error
	doc.WalkDownVisual(doc.Root, func(id tree.NodeID) bool {
		if doc.Tag(id) != "path" {
			return true
		}
		d, ok := doc.Attr(id, "d")
		if !ok || strings.TrimSpace(d) == "" {
			return true
		}
		pts, perr := Parse(d, log)
		if perr != nil {
			err = fmt.Errorf("pathdata.NormalizePaths: path %d: %w", id, perr)
			return false
		}
		norm := Normalize(pts, target)
		eid, ok := doc.Attr(id, "id")
		if !ok {
			eid = fmt.Sprintf("path_%d", id)
		}
		paths = append(paths, NormalizedPath{
			ID:         eid,
			Original:   d,
			Normalized: String(norm),
			Points:     norm,
			Bounds:     Bounds(norm),
		})
		return true
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
