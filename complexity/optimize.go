// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package complexity

import (
	"fmt"
	"log/slog"
	"strings"

	"cogentcore.org/svganim/math32"
	"cogentcore.org/svganim/pathdata"
	"cogentcore.org/svganim/tree"
)

// OptimizeResult reports the outcome of a node-budget optimization:
// before and after complexity, the number of elements removed, the
// achieved reduction percentage, and the passes that had an effect.
type OptimizeResult struct {
	Before            Report   `json:"before"`
	After             Report   `json:"after"`
	Removed           int      `json:"removed"`
	AchievedReduction float32  `json:"achievedReduction"`
	Applied           []string `json:"applied,omitempty"`
}

// Optimization pass thresholds.
const (
	simplifyLength  = 256
	simplifyEpsilon = 0.1
	subPixel        = 1.0
	shortPathPoints = 3
)

// Optimize reduces the document's element count toward the given
// target reduction percentage, applying passes strictly in order and
// stopping early once the target removal is reached:
// redundant-group collapse, same-style path merging, long-path
// simplification, and low-value element pruning. The element count
// never increases.
func Optimize(doc *tree.Document, targetPercent float32, log *slog.Logger) (*OptimizeResult, error) {
	if doc == nil || !doc.Valid(doc.Root) {
		return nil, tree.ErrNoRoot
	}
	if log == nil {
		log = slog.Default()
	}
	targetPercent = math32.Clamp(targetPercent, 0, 100)

	res := &OptimizeResult{Before: Analyze(doc)}
	pre := res.Before.TotalNodes
	targetCount := int(math32.Round(float32(pre) * targetPercent / 100))

	o := &optimizer{doc: doc, log: log}
	passes := []struct {
		name string
		run  func(budget int) (int, bool)
	}{
		{"removeRedundantGroups", o.removeRedundantGroups},
		{"mergePaths", o.mergePaths},
		{"simplifyPaths", o.simplifyPaths},
		{"removeLowValueElements", o.pruneLowValue},
	}
	removed := 0
	for _, pass := range passes {
		if removed >= targetCount {
			break
		}
		n, changed := pass.run(targetCount - removed)
		removed += n
		if changed {
			res.Applied = append(res.Applied, pass.name)
		}
		log.Debug("complexity: optimization pass", "pass", pass.name, "removed", n)
	}

	res.After = Analyze(doc)
	res.Removed = pre - res.After.TotalNodes
	if pre > 0 {
		res.AchievedReduction = float32(res.Removed) / float32(pre) * 100
	}
	return res, nil
}

type optimizer struct {
	doc *tree.Document
	log *slog.Logger
}

// removeRedundantGroups deletes empty groups and collapses groups
// with exactly one child and no attributes beyond an id into their
// parent, repeating until stable.
func (o *optimizer) removeRedundantGroups(budget int) (int, bool) {
	doc := o.doc
	removed := 0
	for removed < budget {
		changed := false
		doc.WalkDownVisual(doc.Root, func(id tree.NodeID) bool {
			if doc.Tag(id) != "g" || id == doc.Root {
				return true
			}
			kids := doc.Children(id)
			switch {
			case len(kids) == 0:
				doc.Remove(id)
				removed++
				changed = true
				return false
			case len(kids) == 1 && o.onlyIdAttrs(id):
				if err := doc.MoveBefore(kids[0], id); err == nil {
					doc.Remove(id)
					removed++
					changed = true
					return false
				}
			}
			return true
		})
		if !changed {
			break
		}
	}
	return removed, removed > 0
}

func (o *optimizer) onlyIdAttrs(id tree.NodeID) bool {
	for _, nm := range o.doc.AttrNames(id) {
		if nm != "id" {
			return false
		}
	}
	return true
}

// styleKey is the set of style attributes that must match for paths
// to be mergeable.
var styleKey = []string{"fill", "stroke", "stroke-width", "opacity"}

// mergePaths concatenates the path data of sibling paths sharing
// identical style attributes into the first such path, removing the
// rest.
func (o *optimizer) mergePaths(budget int) (int, bool) {
	doc := o.doc
	first := map[string]tree.NodeID{}
	var merge []tree.NodeID
	doc.WalkDownVisual(doc.Root, func(id tree.NodeID) bool {
		if doc.Tag(id) != "path" {
			return true
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d", doc.Parent(id))
		for _, nm := range styleKey {
			v, _ := doc.Attr(id, nm)
			sb.WriteByte('|')
			sb.WriteString(v)
		}
		key := sb.String()
		if _, ok := first[key]; !ok {
			first[key] = id
		} else {
			merge = append(merge, id)
		}
		return true
	})
	removed := 0
	for _, id := range merge {
		if removed >= budget {
			break
		}
		// recompute the key to find the merge head
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d", doc.Parent(id))
		for _, nm := range styleKey {
			v, _ := doc.Attr(id, nm)
			sb.WriteByte('|')
			sb.WriteString(v)
		}
		head := first[sb.String()]
		hd, _ := doc.Attr(head, "d")
		d, _ := doc.Attr(id, "d")
		doc.SetAttr(head, "d", strings.TrimSpace(hd+" "+d))
		doc.Remove(id)
		removed++
	}
	return removed, removed > 0
}

// simplifyPaths rewrites path data longer than a length threshold,
// rounding coordinates to two decimals and dropping line segments
// shorter than simplifyEpsilon. It removes no elements.
func (o *optimizer) simplifyPaths(budget int) (int, bool) {
	doc := o.doc
	changed := false
	doc.WalkDownVisual(doc.Root, func(id tree.NodeID) bool {
		if doc.Tag(id) != "path" {
			return true
		}
		d, ok := doc.Attr(id, "d")
		if !ok || len(d) <= simplifyLength {
			return true
		}
		pts, err := pathdata.Parse(d, o.log)
		if err != nil {
			o.log.Debug("complexity: skipping unparseable path", "err", err)
			return true
		}
		simp := simplifyPoints(pts)
		nd := pathdata.String(simp)
		if nd != d {
			doc.SetAttr(id, "d", nd)
			changed = true
		}
		return true
	})
	return 0, changed
}

func simplifyPoints(pts []pathdata.PathPoint) []pathdata.PathPoint {
	round := func(v float32) float32 {
		return math32.Round(v*100) / 100
	}
	out := make([]pathdata.PathPoint, 0, len(pts))
	for _, p := range pts {
		p.X, p.Y = round(p.X), round(p.Y)
		for i, c := range p.Ctrl {
			p.Ctrl[i] = math32.Vec2(round(c.X), round(c.Y))
		}
		if p.Cmd == pathdata.Line && len(out) > 0 {
			prev := out[len(out)-1]
			if p.Pos().DistanceTo(prev.Pos()) < simplifyEpsilon {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// pruneLowValue deletes lowest-value candidates in priority order
// (empty groups, sub-pixel shapes, trivially short paths, duplicate
// shapes at identical positions) until the remaining budget is used.
func (o *optimizer) pruneLowValue(budget int) (int, bool) {
	doc := o.doc
	var emptyGroups, subPx, shortPaths, dups []tree.NodeID
	seen := map[string]bool{}
	doc.WalkDownVisual(doc.Root, func(id tree.NodeID) bool {
		if id == doc.Root {
			return true
		}
		tag := doc.Tag(id)
		switch {
		case tag == "g" && len(doc.Children(id)) == 0:
			emptyGroups = append(emptyGroups, id)
		case o.isSubPixel(id):
			subPx = append(subPx, id)
		case tag == "path" && o.isShortPath(id):
			shortPaths = append(shortPaths, id)
		default:
			sig := o.signature(id)
			if sig != "" {
				if seen[sig] {
					dups = append(dups, id)
				}
				seen[sig] = true
			}
		}
		return true
	})
	removed := 0
	for _, group := range [][]tree.NodeID{emptyGroups, subPx, shortPaths, dups} {
		for _, id := range group {
			if removed >= budget {
				return removed, removed > 0
			}
			if doc.Valid(id) {
				doc.Remove(id)
				removed++
			}
		}
	}
	return removed, removed > 0
}

func (o *optimizer) isSubPixel(id tree.NodeID) bool {
	doc := o.doc
	f := func(nm string) float32 {
		v, ok := doc.Attr(id, nm)
		if !ok {
			return 0
		}
		fv, err := math32.ParseFloat32(v)
		if err != nil {
			return 0
		}
		return fv
	}
	switch doc.Tag(id) {
	case "rect":
		return f("width") < subPixel || f("height") < subPixel
	case "circle":
		return f("r") < subPixel/2
	case "ellipse":
		return f("rx") < subPixel/2 || f("ry") < subPixel/2
	}
	return false
}

func (o *optimizer) isShortPath(id tree.NodeID) bool {
	d, ok := o.doc.Attr(id, "d")
	if !ok {
		return true
	}
	pts, err := pathdata.Parse(d, o.log)
	if err != nil {
		return true
	}
	return len(pts) < shortPathPoints
}

// signature is a geometry fingerprint for duplicate detection:
// identical tag and identical values for all geometry attributes.
func (o *optimizer) signature(id tree.NodeID) string {
	doc := o.doc
	tag := doc.Tag(id)
	var geo []string
	switch tag {
	case "rect":
		geo = []string{"x", "y", "width", "height"}
	case "circle":
		geo = []string{"cx", "cy", "r"}
	case "ellipse":
		geo = []string{"cx", "cy", "rx", "ry"}
	case "line":
		geo = []string{"x1", "y1", "x2", "y2"}
	case "path":
		geo = []string{"d"}
	case "polygon", "polyline":
		geo = []string{"points"}
	default:
		return ""
	}
	var sb strings.Builder
	sb.WriteString(tag)
	for _, nm := range geo {
		v, _ := doc.Attr(id, nm)
		sb.WriteByte('|')
		sb.WriteString(v)
	}
	return sb.String()
}
