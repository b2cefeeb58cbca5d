// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flatten composes nested SVG transform attributes into a
// single accumulated affine matrix per element and bakes it into leaf
// geometry, so that every element ends up in absolute coordinates
// with no transform attribute. Animation frameworks rotate and scale
// an element about its own local origin; unresolved ancestor
// transforms make pivot computation element-order dependent, which
// baking removes.
//
// Flattening already-flattened output is a no-op: with no transform
// attributes left, the accumulated matrix is the identity everywhere
// and no geometry is rewritten.
package flatten

import (
	"fmt"
	"log/slog"
	"strings"

	"cogentcore.org/svganim/math32"
	"cogentcore.org/svganim/pathdata"
	"cogentcore.org/svganim/tree"
)

// Flatten bakes all nested transform attributes in the document into
// absolute leaf coordinates and removes them. An unparseable
// transform attribute aborts with an error naming the element.
func Flatten(doc *tree.Document, log *slog.Logger) error {
	if doc == nil || !doc.Valid(doc.Root) {
		return tree.ErrNoRoot
	}
	if log == nil {
		log = slog.Default()
	}
	f := &flattener{doc: doc, log: log}
	return f.walk(doc.Root, math32.Identity2())
}

type flattener struct {
	doc *tree.Document
	log *slog.Logger
}

func (f *flattener) walk(id tree.NodeID, acc math32.Matrix2) error {
	doc := f.doc
	if tf, ok := doc.Attr(id, "transform"); ok {
		var own math32.Matrix2
		if err := own.SetString(tf); err != nil {
			return fmt.Errorf("flatten: element %s: transform %q: %w", f.describe(id), tf, err)
		}
		acc = acc.Mul(own)
		doc.DelAttr(id, "transform")
	}
	if err := f.bake(id, acc); err != nil {
		return err
	}
	for _, c := range doc.Children(id) {
		if err := f.walk(c, acc); err != nil {
			return err
		}
	}
	return nil
}

func (f *flattener) describe(id tree.NodeID) string {
	if eid, ok := f.doc.Attr(id, "id"); ok {
		return eid
	}
	return fmt.Sprintf("%s#%d", f.doc.Tag(id), id)
}

// bake applies the accumulated transform to the element's own
// coordinate-bearing attributes. Identity transforms rewrite nothing,
// which is what makes a second flattening pass byte-identical.
func (f *flattener) bake(id tree.NodeID, acc math32.Matrix2) error {
	if acc.IsIdentity() {
		return nil
	}
	doc := f.doc
	switch doc.Tag(id) {
	case "rect":
		pos := acc.MulVector2AsPoint(f.attrVec(id, "x", "y"))
		sz := acc.MulVector2AsVector(f.attrVec(id, "width", "height"))
		f.setVec(id, "x", "y", pos)
		f.setVec(id, "width", "height", math32.Vec2(math32.Abs(sz.X), math32.Abs(sz.Y)))
	case "circle":
		ctr := acc.MulVector2AsPoint(f.attrVec(id, "cx", "cy"))
		f.setVec(id, "cx", "cy", ctr)
		sx, sy := acc.ExtractScale()
		f.setFloat(id, "r", f.attrFloat(id, "r")*(sx+sy)/2)
	case "ellipse":
		ctr := acc.MulVector2AsPoint(f.attrVec(id, "cx", "cy"))
		radii := acc.MulVector2AsVector(f.attrVec(id, "rx", "ry"))
		f.setVec(id, "cx", "cy", ctr)
		f.setVec(id, "rx", "ry", math32.Vec2(math32.Abs(radii.X), math32.Abs(radii.Y)))
	case "line":
		p1 := acc.MulVector2AsPoint(f.attrVec(id, "x1", "y1"))
		p2 := acc.MulVector2AsPoint(f.attrVec(id, "x2", "y2"))
		f.setVec(id, "x1", "y1", p1)
		f.setVec(id, "x2", "y2", p2)
	case "polygon", "polyline":
		pts, ok := doc.Attr(id, "points")
		if !ok {
			return nil
		}
		doc.SetAttr(id, "points", transformPoints(pts, acc))
	case "path":
		d, ok := doc.Attr(id, "d")
		if !ok || strings.TrimSpace(d) == "" {
			return nil
		}
		pts, err := pathdata.Parse(d, f.log)
		if err != nil {
			return fmt.Errorf("flatten: element %s: %w", f.describe(id), err)
		}
		for i := range pts {
			pt := acc.MulVector2AsPoint(pts[i].Pos())
			pts[i].X, pts[i].Y = pt.X, pt.Y
			for j, cp := range pts[i].Ctrl {
				pts[i].Ctrl[j] = acc.MulVector2AsPoint(cp)
			}
		}
		doc.SetAttr(id, "d", pathdata.String(pts))
	}
	return nil
}

func transformPoints(pts string, acc math32.Matrix2) string {
	vals := math32.ReadPoints(pts)
	var sb strings.Builder
	for i := 0; i+1 < len(vals); i += 2 {
		pt := acc.MulVector2AsPoint(math32.Vec2(vals[i], vals[i+1]))
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(math32.String(pt.X))
		sb.WriteByte(',')
		sb.WriteString(math32.String(pt.Y))
	}
	return sb.String()
}

func (f *flattener) attrFloat(id tree.NodeID, name string) float32 {
	v, ok := f.doc.Attr(id, name)
	if !ok {
		return 0
	}
	fv, err := math32.ParseFloat32(v)
	if err != nil {
		f.log.Debug("flatten: unparseable numeric attribute", "attr", name, "value", v)
		return 0
	}
	return fv
}

func (f *flattener) attrVec(id tree.NodeID, xa, ya string) math32.Vector2 {
	return math32.Vec2(f.attrFloat(id, xa), f.attrFloat(id, ya))
}

func (f *flattener) setFloat(id tree.NodeID, name string, v float32) {
	f.doc.SetAttr(id, name, math32.String(v))
}

func (f *flattener) setVec(id tree.NodeID, xa, ya string, v math32.Vector2) {
	f.setFloat(id, xa, v.X)
	f.setFloat(id, ya, v.Y)
}
