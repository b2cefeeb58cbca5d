// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ids assigns stable, human-readable, unique id attributes to
// every visual element of an SVG document, so that downstream
// animation code can address parts by meaningful selectors.
// Ids are derived from existing names where usable, otherwise from
// shape and fill-color semantics, and repeated runs over identical
// input always produce identical ids.
package ids

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"cogentcore.org/svganim/colors"
	"cogentcore.org/svganim/math32"
	"cogentcore.org/svganim/tree"
)

// Options configures id assignment.
type Options struct {

	// Prefix is prepended to every assigned id.
	Prefix string

	// WheelRadius is the radius at or above which circles and
	// ellipses are named wheel instead of circle.
	WheelRadius float32

	// SquareTolerance is the relative aspect-ratio tolerance within
	// which a rect is named square.
	SquareTolerance float32

	// BarAspect is the width/height ratio at or above which a rect
	// is named bar.
	BarAspect float32
}

// DefaultOptions returns the default id assignment options.
func DefaultOptions() Options {
	return Options{
		Prefix:          "anim_",
		WheelRadius:     20,
		SquareTolerance: 0.2,
		BarAspect:       2,
	}
}

// Entry is one element in the flattened hierarchy listing produced
// alongside the id map.
type Entry struct {
	ID     string `json:"id"`
	Tag    string `json:"tag"`
	Depth  int    `json:"depth"`
	Parent string `json:"parent,omitempty"`
}

// Assign walks the document in pre-order and sets a unique id
// attribute on every non-structural element, returning the id → node
// map and the hierarchy listing. Existing ids are replaced; the old
// value is reused as the basename when it is not auto-generated.
func Assign(doc *tree.Document, opts Options, log *slog.Logger) (map[string]tree.NodeID, []Entry, error) {
	if doc == nil || !doc.Valid(doc.Root) {
		return nil, nil, tree.ErrNoRoot
	}
	if log == nil {
		log = slog.Default()
	}
	a := &assigner{doc: doc, opts: opts, log: log,
		counts: map[string]int{}, idMap: map[string]tree.NodeID{}}
	doc.WalkDownVisual(doc.Root, func(id tree.NodeID) bool {
		a.assign(id)
		return true
	})
	return a.idMap, a.entries, nil
}

type assigner struct {
	doc     *tree.Document
	opts    Options
	log     *slog.Logger
	counts  map[string]int
	idMap   map[string]tree.NodeID
	entries []Entry
}

func (a *assigner) assign(id tree.NodeID) {
	base := a.basename(id)
	a.counts[base]++
	name := a.opts.Prefix + base
	if n := a.counts[base]; n > 1 {
		name = fmt.Sprintf("%s_%d", name, n)
	}
	a.doc.SetAttr(id, "id", name)
	a.idMap[name] = id

	parentName := ""
	if p := a.doc.Parent(id); p != tree.Nil {
		parentName, _ = a.doc.Attr(p, "id")
	}
	a.entries = append(a.entries, Entry{
		ID:     name,
		Tag:    a.doc.Tag(id),
		Depth:  a.doc.Depth(id),
		Parent: parentName,
	})
}

// basename derives the id basename for the element: an existing
// usable id or class first, then shape semantics.
func (a *assigner) basename(id tree.NodeID) string {
	if v, ok := a.doc.Attr(id, "id"); ok {
		if nm := usableName(v); nm != "" {
			return nm
		}
	}
	if v, ok := a.doc.Attr(id, "class"); ok {
		// first class only
		if fields := strings.Fields(v); len(fields) > 0 {
			if nm := usableName(fields[0]); nm != "" {
				return nm
			}
		}
	}
	return a.shapeName(id)
}

var (
	sanitizeRx = regexp.MustCompile(`[^a-z0-9_]+`)

	// patterns of machine-generated names that carry no meaning
	autoGenRxs = []*regexp.Regexp{
		regexp.MustCompile(`^(path|rect|circle|ellipse|line|polygon|polyline|g|group|shape|svg|vector|layer|use|image|text)[-_]?\d*$`),
		regexp.MustCompile(`^[0-9a-f]{6,}$`),
		regexp.MustCompile(`^unnamed`),
		regexp.MustCompile(`^_*\d+$`),
	}
)

// usableName sanitizes an existing id/class value into a token,
// returning "" if it is empty or matches an auto-generated pattern.
func usableName(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	v = sanitizeRx.ReplaceAllString(v, "_")
	v = strings.Trim(v, "_")
	if v == "" {
		return ""
	}
	for _, rx := range autoGenRxs {
		if rx.MatchString(v) {
			return ""
		}
	}
	return v
}

func (a *assigner) shapeName(id tree.NodeID) string {
	doc := a.doc
	switch doc.Tag(id) {
	case "svg":
		return "root"
	case "circle":
		if a.attrFloat(id, "r") >= a.opts.WheelRadius {
			return a.withFill(id, "wheel")
		}
		return a.withFill(id, "circle")
	case "ellipse":
		r := math32.Max(a.attrFloat(id, "rx"), a.attrFloat(id, "ry"))
		if r >= a.opts.WheelRadius {
			return a.withFill(id, "wheel")
		}
		return a.withFill(id, "circle")
	case "rect":
		w := a.attrFloat(id, "width")
		h := a.attrFloat(id, "height")
		switch {
		case h > 0 && math32.Abs(w/h-1) <= a.opts.SquareTolerance:
			return a.withFill(id, "square")
		case h > 0 && w/h >= a.opts.BarAspect:
			return a.withFill(id, "bar")
		}
		return a.withFill(id, "rect")
	case "path":
		d, _ := doc.Attr(id, "d")
		switch {
		case strings.ContainsAny(d, "CcQq"):
			return a.withFill(id, "curve")
		case strings.ContainsAny(d, "LlHhVv"):
			return a.withFill(id, "line")
		}
		return a.withFill(id, "shape")
	case "line":
		return "line"
	case "polygon":
		return a.withFill(id, "polygon")
	case "polyline":
		return a.withFill(id, "polyline")
	case "text":
		return "text"
	case "image":
		return "image"
	case "g":
		if nm, ok := a.dominantFillName(id); ok {
			return nm + "_group"
		}
		return "group"
	}
	return "shape"
}

// withFill prepends a color-name fragment from the element's own fill,
// when the fill maps to a reference hue; unmatched or absent fills
// contribute nothing.
func (a *assigner) withFill(id tree.NodeID, base string) string {
	fill, ok := a.doc.Attr(id, "fill")
	if !ok {
		return base
	}
	c, ok, err := colors.FromString(fill)
	if err != nil || !ok {
		return base
	}
	if nm, ok := colors.Name(c); ok {
		return nm + "_" + base
	}
	return base
}

// dominantFillName returns the reference-hue name of the most common
// nameable fill among the group's direct children.
func (a *assigner) dominantFillName(id tree.NodeID) (string, bool) {
	counts := map[string]int{}
	for _, c := range a.doc.Children(id) {
		fill, ok := a.doc.Attr(c, "fill")
		if !ok {
			continue
		}
		col, ok, err := colors.FromString(fill)
		if err != nil || !ok {
			continue
		}
		if nm, ok := colors.Name(col); ok {
			counts[nm]++
		}
	}
	best, bestN := "", 0
	for nm, n := range counts {
		if n > bestN || (n == bestN && nm < best) {
			best, bestN = nm, n
		}
	}
	return best, bestN > 0
}

func (a *assigner) attrFloat(id tree.NodeID, name string) float32 {
	v, ok := a.doc.Attr(id, name)
	if !ok {
		return 0
	}
	f, err := math32.ParseFloat32(v)
	if err != nil {
		a.log.Debug("ids: unparseable numeric attribute", "attr", name, "value", v)
		return 0
	}
	return f
}
