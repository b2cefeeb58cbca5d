// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package complexity

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/svganim/tree"
)

func parse(t *testing.T, svg string) *tree.Document {
	t.Helper()
	doc, err := tree.ParseString(svg)
	require.NoError(t, err)
	return doc
}

func TestAnalyzeCounts(t *testing.T) {
	doc := parse(t, `<svg>
		<g><path d="M0 0 L1 1 L2 2"/><path d="M0 0 C1 1 2 2 3 3"/></g>
		<rect width="5" height="5"/>
	</svg>`)
	r := Analyze(doc)
	assert.Equal(t, 4, r.TotalNodes)
	assert.Equal(t, 2, r.PathCount)
	assert.Equal(t, 1, r.GroupCount)
	assert.Equal(t, 5, r.CommandCount) // M L L + M C
	assert.Equal(t, 2, r.MaxDepth)
	assert.Equal(t, Low, r.Tier)
	assert.Equal(t, 60, r.FrameRateClass)
}

func TestScoreMonotonicInNodeCount(t *testing.T) {
	build := func(n int) *tree.Document {
		var sb strings.Builder
		sb.WriteString("<svg>")
		for i := 0; i < n; i++ {
			sb.WriteString(`<rect width="5" height="5"/>`)
		}
		sb.WriteString("</svg>")
		return parse(t, sb.String())
	}
	prev := float32(-1)
	for _, n := range []int{1, 5, 20, 50, 100, 500} {
		score := Analyze(build(n)).Score
		assert.GreaterOrEqual(t, score, prev, fmt.Sprintf("n=%d", n))
		prev = score
	}
}

func TestTierAndFrameRate(t *testing.T) {
	// many deep paths push the score into the high tier
	var sb strings.Builder
	sb.WriteString("<svg>")
	for i := 0; i < 15; i++ {
		sb.WriteString("<g>")
	}
	for i := 0; i < 60; i++ {
		sb.WriteString(`<path d="M0 0 L1 1 C2 2 3 3 4 4 C5 5 6 6 7 7 Z"/>`)
	}
	for i := 0; i < 15; i++ {
		sb.WriteString("</g>")
	}
	sb.WriteString("</svg>")
	r := Analyze(parse(t, sb.String()))
	assert.Equal(t, High, r.Tier)
	assert.Equal(t, 15, r.FrameRateClass)
	assert.NotEmpty(t, r.Recommendations)
	assert.LessOrEqual(t, r.PotentialReduction, float32(50))
	assert.Greater(t, r.PotentialReduction, float32(0))
}

func TestOptimizeNestedGroupScenario(t *testing.T) {
	doc := parse(t, `<svg><g><g><g><rect width="5" height="5"/></g></g></g></svg>`)
	res, err := Optimize(doc, 100, nil)
	require.NoError(t, err)

	// all wrapper groups collapse, leaving the rect alone
	kids := doc.Children(doc.Root)
	require.Len(t, kids, 1)
	assert.Equal(t, "rect", doc.Tag(kids[0]))
	assert.GreaterOrEqual(t, res.Removed, 2)
	assert.Contains(t, res.Applied, "removeRedundantGroups")
}

func TestOptimizeMergePaths(t *testing.T) {
	doc := parse(t, `<svg>
		<path fill="#f00" d="M0 0 L1 1 L3 3"/>
		<path fill="#f00" d="M2 2 L3 3 L5 5"/>
		<path fill="#00f" d="M4 4 L5 5 L7 7"/>
	</svg>`)
	res, err := Optimize(doc, 100, nil)
	require.NoError(t, err)
	assert.Contains(t, res.Applied, "mergePaths")

	var reds, blues int
	var mergedD string
	doc.WalkDownVisual(doc.Root, func(id tree.NodeID) bool {
		if doc.Tag(id) != "path" {
			return true
		}
		if fill, _ := doc.Attr(id, "fill"); fill == "#f00" {
			reds++
			mergedD, _ = doc.Attr(id, "d")
		} else {
			blues++
		}
		return true
	})
	assert.Equal(t, 1, reds)
	assert.Equal(t, 1, blues)
	assert.Equal(t, "M0 0 L1 1 L3 3 M2 2 L3 3 L5 5", mergedD)
}

func TestOptimizeNeverGrows(t *testing.T) {
	docs := []string{
		`<svg><rect width="5" height="5"/></svg>`,
		`<svg><g><g><rect width="5" height="5"/></g></g><path d="M0 0 L1 1 L2 2"/></svg>`,
		`<svg><g/><rect width="0.5" height="0.5"/><path d="M0 0"/></svg>`,
	}
	for _, svg := range docs {
		doc := parse(t, svg)
		pre := Analyze(doc).TotalNodes
		res, err := Optimize(doc, 50, nil)
		require.NoError(t, err)
		assert.LessOrEqual(t, res.After.TotalNodes, pre)
		assert.GreaterOrEqual(t, res.Removed, 0)
		assert.LessOrEqual(t, res.AchievedReduction, float32(100))
	}
}

func TestOptimizePruneLowValue(t *testing.T) {
	doc := parse(t, `<svg>
		<g/>
		<rect x="0" y="0" width="0.5" height="0.5"/>
		<path d="M0 0 L1 1"/>
		<rect x="1" y="1" width="10" height="10"/>
		<rect x="1" y="1" width="10" height="10"/>
	</svg>`)
	res, err := Optimize(doc, 100, nil)
	require.NoError(t, err)
	assert.Contains(t, res.Applied, "removeLowValueElements")
	// empty group, sub-pixel rect, short path, and the duplicate are gone
	assert.Equal(t, 1, res.After.TotalNodes)
	assert.Equal(t, 4, res.Removed)
}

func TestOptimizeZeroTarget(t *testing.T) {
	doc := parse(t, `<svg><g><g><rect width="5" height="5"/></g></g></svg>`)
	res, err := Optimize(doc, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Removed)
	assert.Empty(t, res.Applied)
}

func TestOptimizeReportsBeforeAfter(t *testing.T) {
	doc := parse(t, `<svg><g><g><g><rect width="5" height="5"/></g></g></g></svg>`)
	res, err := Optimize(doc, 100, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Before.TotalNodes)
	assert.Equal(t, res.Before.TotalNodes-res.Removed, res.After.TotalNodes)
	assert.InDelta(t, float64(res.Removed)/4*100, float64(res.AchievedReduction), 0.001)
}
