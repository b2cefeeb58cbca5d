// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svganim normalizes the structure of an SVG document and
// prepares it for programmatic animation: every visual element gets a
// stable semantic id, nested transforms are baked into absolute leaf
// coordinates, structural complexity is measured and can be reduced
// to a node budget, path outlines are resampled into morph-compatible
// point sequences with candidate transition pairs, and repeated
// colors are extracted into a reusable token table.
//
// The engine is synchronous and holds no state across invocations:
// each [Engine.Process] call parses its own tree, runs the requested
// stages in a fixed order, and returns the transformed markup with a
// metadata [Result]. Independent documents may be processed
// concurrently, one invocation each.
package svganim

import (
	"fmt"
	"log/slog"

	"cogentcore.org/svganim/complexity"
	"cogentcore.org/svganim/flatten"
	"cogentcore.org/svganim/ids"
	"cogentcore.org/svganim/palette"
	"cogentcore.org/svganim/pathdata"
	"cogentcore.org/svganim/tree"
)

// Engine runs the normalization pipeline. The zero value is not
// usable; use [NewEngine].
type Engine struct {

	// Log is the structured logging sink passed to every stage.
	// nil uses [slog.Default].
	Log *slog.Logger

	// IDs configures semantic id assignment.
	IDs ids.Options

	// MorphTarget is the normalized point count for path morphing.
	MorphTarget int

	// Palette configures color token extraction.
	Palette palette.Options
}

// NewEngine returns an engine with default options.
func NewEngine() *Engine {
	return &Engine{
		IDs:         ids.DefaultOptions(),
		MorphTarget: pathdata.DefaultTarget,
		Palette:     palette.DefaultOptions(),
	}
}

func (e *Engine) logger() *slog.Logger {
	if e.Log != nil {
		return e.Log
	}
	return slog.Default()
}

// Stages selects which pipeline stages run. Stages always execute in
// the fixed order: id assignment, transform flattening, node-budget
// optimization, morph matching, palette extraction.
type Stages struct {

	// AssignIDs assigns semantic ids to all visual elements.
	AssignIDs bool

	// Flatten bakes nested transforms into absolute coordinates.
	Flatten bool

	// Optimize reduces element count toward OptimizeTarget percent.
	Optimize bool

	// OptimizeTarget is the target reduction percentage for Optimize.
	OptimizeTarget float32

	// Morph computes normalized paths and candidate morph pairs.
	Morph bool

	// Palette extracts the color token table.
	Palette bool

	// SubstituteTokens rewrites fill/stroke values to token
	// references; requires Palette.
	SubstituteTokens bool
}

// AllStages returns a Stages value with every stage enabled and the
// given optimization target (0 disables optimization).
func AllStages(optimizeTarget float32) Stages {
	return Stages{
		AssignIDs:      true,
		Flatten:        true,
		Optimize:       optimizeTarget > 0,
		OptimizeTarget: optimizeTarget,
		Morph:          true,
		Palette:        true,
	}
}

// Result is the metadata record of one pipeline run. Fields are set
// only for the stages that executed, except Complexity, which is
// always reported.
type Result struct {

	// SVG is the transformed markup.
	SVG string `json:"svg"`

	// IDMap maps assigned ids to element tag names.
	IDMap map[string]string `json:"idMap,omitempty"`

	// Hierarchy is the flattened element hierarchy listing.
	Hierarchy []ids.Entry `json:"hierarchy,omitempty"`

	// Complexity is the structural complexity report of the output.
	Complexity *complexity.Report `json:"complexity,omitempty"`

	// Optimization reports the node-budget optimization outcome.
	Optimization *complexity.OptimizeResult `json:"optimization,omitempty"`

	// MorphPairs are the candidate morph transition pairs.
	MorphPairs []pathdata.MorphPair `json:"morphPairs,omitempty"`

	// Palette is the extracted color token table.
	Palette *palette.Palette `json:"palette,omitempty"`
}

// Process parses the given SVG markup, runs the selected stages in
// pipeline order, and returns the transformed markup and metadata.
// Any stage error aborts the run: on error the result is nil and the
// input is not returned as if processed.
func (e *Engine) Process(svg string, st Stages) (*Result, error) {
	log := e.logger()
	doc, err := tree.ParseString(svg)
	if err != nil {
		return nil, fmt.Errorf("svganim: parse: %w", err)
	}
	res := &Result{}

	if st.AssignIDs {
		idMap, hierarchy, err := ids.Assign(doc, e.IDs, log)
		if err != nil {
			return nil, fmt.Errorf("svganim: assign ids: %w", err)
		}
		res.IDMap = make(map[string]string, len(idMap))
		for name, id := range idMap {
			res.IDMap[name] = doc.Tag(id)
		}
		res.Hierarchy = hierarchy
	}

	if st.Flatten {
		if err := flatten.Flatten(doc, log); err != nil {
			return nil, fmt.Errorf("svganim: flatten: %w", err)
		}
	}

	if st.Optimize {
		opt, err := complexity.Optimize(doc, st.OptimizeTarget, log)
		if err != nil {
			return nil, fmt.Errorf("svganim: optimize: %w", err)
		}
		res.Optimization = opt
	}

	if st.Morph {
		paths, err := pathdata.NormalizePaths(doc, e.MorphTarget, log)
		if err != nil {
			return nil, fmt.Errorf("svganim: morph: %w", err)
		}
		res.MorphPairs = pathdata.MatchMorphs(paths)
	}

	if st.Palette || st.SubstituteTokens {
		pal, err := palette.Extract(doc, e.Palette, log)
		if err != nil {
			return nil, fmt.Errorf("svganim: palette: %w", err)
		}
		res.Palette = pal
		if st.SubstituteTokens {
			if err := palette.Substitute(doc, pal, log); err != nil {
				return nil, fmt.Errorf("svganim: substitute: %w", err)
			}
		}
	}

	rep := complexity.Analyze(doc)
	res.Complexity = &rep
	res.SVG = doc.String()
	return res, nil
}

// Analyze parses the given markup and returns its complexity report
// without transforming anything.
func (e *Engine) Analyze(svg string) (*complexity.Report, error) {
	doc, err := tree.ParseString(svg)
	if err != nil {
		return nil, fmt.Errorf("svganim: parse: %w", err)
	}
	rep := complexity.Analyze(doc)
	return &rep, nil
}
