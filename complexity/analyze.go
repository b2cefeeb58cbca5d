// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package complexity scores the structural animation-performance cost
// of an SVG document and reduces its node count toward a target
// budget using a prioritized set of safe transformations.
package complexity

import (
	"cogentcore.org/svganim/math32"
	"cogentcore.org/svganim/tree"
)

// Tier is a coarse complexity classification.
type Tier string

const (
	Low    Tier = "low"
	Medium Tier = "medium"
	High   Tier = "high"
)

// Recommendation is one suggested structural simplification, with an
// estimated node-reduction percentage.
type Recommendation struct {
	Message  string  `json:"message"`
	Estimate float32 `json:"estimate"`
}

// Report describes the structural complexity of a document.
type Report struct {
	TotalNodes         int              `json:"totalNodes"`
	PathCount          int              `json:"pathCount"`
	GroupCount         int              `json:"groupCount"`
	CommandCount       int              `json:"commandCount"`
	MaxDepth           int              `json:"maxDepth"`
	Score              float32          `json:"score"`
	Tier               Tier             `json:"tier"`
	FrameRateClass     int              `json:"frameRateClass"`
	Recommendations    []Recommendation `json:"recommendations,omitempty"`
	PotentialReduction float32          `json:"potentialReduction"`
}

// Individual score contribution caps. Each factor is capped on its
// own, then the capped contributions are summed and clamped to
// [0, 100], which keeps the score monotonically non-decreasing in
// every factor.
const (
	nodeCap  = 40
	pathCap  = 25
	cmdCap   = 20
	depthCap = 15
)

// Analyze walks the document and returns its complexity report.
// The root svg element itself is not counted as a node.
func Analyze(doc *tree.Document) Report {
	r := Report{}
	doc.WalkDownVisual(doc.Root, func(id tree.NodeID) bool {
		if id == doc.Root {
			return true
		}
		r.TotalNodes++
		if d := doc.Depth(id); d > r.MaxDepth {
			r.MaxDepth = d
		}
		switch doc.Tag(id) {
		case "path":
			r.PathCount++
			if d, ok := doc.Attr(id, "d"); ok {
				r.CommandCount += countCommands(d)
			}
		case "g":
			r.GroupCount++
		}
		return true
	})

	nodeTerm := math32.Min(nodeCap, float32(r.TotalNodes)/2)
	pathTerm := math32.Min(pathCap, float32(r.PathCount)*2)
	cmdTerm := math32.Min(cmdCap, float32(r.CommandCount)/10)
	depthTerm := math32.Min(depthCap, float32(r.MaxDepth)*3)
	r.Score = math32.Clamp(nodeTerm+pathTerm+cmdTerm+depthTerm, 0, 100)

	switch {
	case r.Score <= 30:
		r.Tier = Low
	case r.Score <= 60:
		r.Tier = Medium
	default:
		r.Tier = High
	}
	r.FrameRateClass = frameRateClass(r.Score)
	r.recommend()
	return r
}

// frameRateClass is the fixed score to estimated-fps lookup.
func frameRateClass(score float32) int {
	switch {
	case score <= 30:
		return 60
	case score <= 50:
		return 45
	case score <= 75:
		return 30
	}
	return 15
}

// countCommands counts path command letters, excluding exponent
// markers inside numbers.
func countCommands(d string) int {
	n := 0
	for i := 0; i < len(d); i++ {
		c := d[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			if (c == 'e' || c == 'E') && i > 0 && (d[i-1] >= '0' && d[i-1] <= '9' || d[i-1] == '.') {
				continue
			}
			n++
		}
	}
	return n
}

// Recommendation thresholds.
const (
	manyPaths    = 20
	manyGroups   = 10
	deepNesting  = 5
	densePath    = 50
	reductionCap = 50
)

func (r *Report) recommend() {
	add := func(msg string, est float32) {
		r.Recommendations = append(r.Recommendations, Recommendation{Message: msg, Estimate: est})
		r.PotentialReduction += est
	}
	if r.PathCount > manyPaths {
		add("merge paths sharing identical styles", 15)
	}
	if r.GroupCount > manyGroups {
		add("collapse redundant and empty groups", 10)
	}
	if r.MaxDepth > deepNesting {
		add("reduce nesting depth", 10)
	}
	if r.PathCount > 0 && float32(r.CommandCount)/float32(r.PathCount) > densePath {
		add("simplify long path data", 15)
	}
	r.PotentialReduction = math32.Min(r.PotentialReduction, reductionCap)
}
