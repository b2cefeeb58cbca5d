// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pathdata

import (
	"sort"

	"cogentcore.org/svganim/math32"
)

// Compatibility scoring weights and thresholds.
const (
	// MorphThreshold is the minimum score for a pair to be retained.
	MorphThreshold = 50

	// LogAreaCutoff is the log-area difference beyond which two paths
	// are size-incompatible: above it, only the size terms contribute,
	// so grossly mismatched shapes cannot ride on count and curve
	// similarity.
	LogAreaCutoff = 4.0

	countWeight  = 30
	curveWeight  = 30
	areaWeight   = 20
	aspectWeight = 20
)

// Compatibility returns a morph compatibility score in [0, 100] for
// the two given normalized paths: up to 30 for matching point counts,
// up to 30 decreasing with curve-command count difference, up to 20
// decreasing with bounding-box log-area difference, and up to 20
// decreasing with aspect-ratio difference, each term floored at 0.
// The score is symmetric in its arguments.
func Compatibility(a, b NormalizedPath) float32 {
	countTerm := float32(0)
	if len(a.Points) == len(b.Points) {
		countTerm = countWeight
	} else {
		diff := math32.Abs(float32(len(a.Points) - len(b.Points)))
		countTerm = math32.Max(0, countWeight-diff)
	}

	curveDiff := math32.Abs(float32(a.CurveCount() - b.CurveCount()))
	curveTerm := math32.Max(0, curveWeight-3*curveDiff)

	logAreaDiff := math32.Abs(logArea(a.Bounds) - logArea(b.Bounds))
	areaTerm := math32.Max(0, areaWeight-5*logAreaDiff)

	aspectDiff := math32.Abs(aspect(a.Bounds) - aspect(b.Bounds))
	aspectTerm := math32.Max(0, aspectWeight-10*aspectDiff)

	if logAreaDiff > LogAreaCutoff {
		return math32.Clamp(areaTerm+aspectTerm, 0, 100)
	}
	return math32.Clamp(countTerm+curveTerm+areaTerm+aspectTerm, 0, 100)
}

func logArea(bb math32.Box2) float32 {
	return math32.Log(math32.Max(bb.Area(), 0.01))
}

func aspect(bb math32.Box2) float32 {
	sz := bb.Size()
	if sz.Y == 0 {
		return 0
	}
	return sz.X / sz.Y
}

// MatchMorphs scores every unordered pair of the given normalized
// paths and returns the pairs scoring above [MorphThreshold], sorted
// by descending score (ties by source then target id, for
// deterministic output). Each pair carries the target's normalized
// path data as the morph destination.
func MatchMorphs(paths []NormalizedPath) []MorphPair {
	var pairs []MorphPair
	for i := 0; i < len(paths); i++ {
		for j := i + 1; j < len(paths); j++ {
			score := Compatibility(paths[i], paths[j])
			if score <= MorphThreshold {
				continue
			}
			pairs = append(pairs, MorphPair{
				SourceID:    paths[i].ID,
				TargetID:    paths[j].ID,
				Score:       score,
				MorphTarget: paths[j].Normalized,
			})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Score != pairs[j].Score {
			return pairs[i].Score > pairs[j].Score
		}
		if pairs[i].SourceID != pairs[j].SourceID {
			return pairs[i].SourceID < pairs[j].SourceID
		}
		return pairs[i].TargetID < pairs[j].TargetID
	})
	return pairs
}
