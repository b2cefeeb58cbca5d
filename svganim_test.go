// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svganim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/svganim/tree"
)

const testDoc = `<svg viewBox="0 0 100 100">
	<g transform="translate(10,10)">
		<rect x="0" y="0" width="20" height="20" fill="#ff0000"/>
		<circle cx="5" cy="5" r="5" fill="#0000ff"/>
	</g>
	<path d="M0 0 L10 0 L10 10 L0 10 Z" fill="#ff0000"/>
	<path d="M2 2 L14 2 L14 14 L2 14 Z" fill="#ff0000"/>
</svg>`

func TestProcessAllStages(t *testing.T) {
	e := NewEngine()
	res, err := e.Process(testDoc, AllStages(0))
	require.NoError(t, err)

	// every visual element got a stable prefixed id
	assert.NotEmpty(t, res.IDMap)
	for id := range res.IDMap {
		assert.True(t, strings.HasPrefix(id, "anim_"), id)
		assert.Contains(t, res.SVG, `id="`+id+`"`)
	}
	assert.Len(t, res.Hierarchy, len(res.IDMap))

	// transforms are baked into leaf coordinates
	assert.NotContains(t, res.SVG, "transform=")
	assert.Contains(t, res.SVG, `x="10"`)
	assert.Contains(t, res.SVG, `cx="15"`)

	// the two similar squares pair up for morphing
	require.Len(t, res.MorphPairs, 1)
	pair := res.MorphPairs[0]
	assert.NotEqual(t, pair.SourceID, pair.TargetID)
	assert.Greater(t, pair.Score, float32(50))

	// red dominates the palette
	require.NotNil(t, res.Palette)
	require.NotEmpty(t, res.Palette.Tokens)
	assert.Equal(t, "#ff0000", res.Palette.Tokens[0].Value)

	require.NotNil(t, res.Complexity)
	assert.Greater(t, res.Complexity.TotalNodes, 0)
	assert.Nil(t, res.Optimization)
}

func TestProcessDeterministic(t *testing.T) {
	e := NewEngine()
	a, err := e.Process(testDoc, AllStages(0))
	require.NoError(t, err)
	b, err := e.Process(testDoc, AllStages(0))
	require.NoError(t, err)
	assert.Equal(t, a.SVG, b.SVG)
	assert.Equal(t, a.IDMap, b.IDMap)
	assert.Equal(t, a.MorphPairs, b.MorphPairs)
}

func TestProcessOptimize(t *testing.T) {
	svg := `<svg><g><g><g><rect width="20" height="20" fill="#ff0000"/></g></g></g></svg>`
	e := NewEngine()
	res, err := e.Process(svg, Stages{Optimize: true, OptimizeTarget: 80})
	require.NoError(t, err)
	require.NotNil(t, res.Optimization)
	assert.LessOrEqual(t, res.Optimization.After.TotalNodes, res.Optimization.Before.TotalNodes)
	assert.GreaterOrEqual(t, res.Optimization.Removed, 2)
	assert.Contains(t, res.SVG, "<rect")
	assert.NotContains(t, res.SVG, "<g")
}

func TestProcessSubstituteTokens(t *testing.T) {
	e := NewEngine()
	res, err := e.Process(testDoc, Stages{Palette: true, SubstituteTokens: true})
	require.NoError(t, err)
	require.NotNil(t, res.Palette)
	assert.Contains(t, res.SVG, "var(--")
	assert.NotContains(t, res.SVG, `fill="#ff0000"`)
}

func TestProcessNoStages(t *testing.T) {
	e := NewEngine()
	res, err := e.Process(testDoc, Stages{})
	require.NoError(t, err)
	assert.Nil(t, res.IDMap)
	assert.Nil(t, res.MorphPairs)
	assert.Nil(t, res.Palette)
	require.NotNil(t, res.Complexity)
	// untouched pipeline still reserializes the original structure
	assert.Contains(t, res.SVG, `transform="translate(10,10)"`)
}

func TestProcessErrors(t *testing.T) {
	e := NewEngine()
	_, err := e.Process("<div/>", AllStages(0))
	assert.ErrorIs(t, err, tree.ErrNoRoot)

	_, err = e.Process(`<svg><g transform="skewX(20)"/></svg>`, Stages{Flatten: true})
	assert.Error(t, err)
}

func TestAnalyze(t *testing.T) {
	e := NewEngine()
	rep, err := e.Analyze(testDoc)
	require.NoError(t, err)
	assert.Equal(t, 5, rep.TotalNodes)
	assert.Equal(t, 2, rep.PathCount)
	assert.Equal(t, 1, rep.GroupCount)

	_, err = e.Analyze("not svg")
	assert.Error(t, err)
}
