// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package palette extracts the repeated fill and stroke colors of an
// SVG document into a ranked, named, categorized token table, and can
// rewrite the document to reference tokens symbolically.
package palette

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/aymerick/douceur/parser"

	"cogentcore.org/svganim/colors"
	"cogentcore.org/svganim/tree"
)

// Category classifies a token's role in the palette.
type Category string

const (
	Primary   Category = "primary"
	Secondary Category = "secondary"
	Accent    Category = "accent"
	Neutral   Category = "neutral"
)

// Token is one named canonical color of the palette.
type Token struct {
	Name     string   `json:"name"`
	Value    string   `json:"value"`
	Usage    int      `json:"usage"`
	Category Category `json:"category"`

	color colors.Color
}

// Palette is the ranked token table extracted from one document.
type Palette struct {
	Tokens []Token `json:"tokens"`
}

// Options configures palette extraction.
type Options struct {

	// MaxColors is the maximum palette size after ranking.
	MaxColors int

	// MergeTolerance is the Euclidean RGB distance within which
	// visually similar colors are merged into their highest-usage
	// member. Zero disables merging.
	MergeTolerance float32

	// PrimaryShare is the usage share above which a token name gets
	// the -primary qualifier.
	PrimaryShare float32

	// SecondaryShare is the usage share at or above which a token is
	// categorized secondary.
	SecondaryShare float32
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() Options {
	return Options{
		MaxColors:      12,
		MergeTolerance: 0,
		PrimaryShare:   0.4,
		SecondaryShare: 0.15,
	}
}

// paintAttrs are the element attributes harvested for colors.
var paintAttrs = []string{"fill", "stroke"}

// Extract walks the document, canonicalizes every fill and stroke
// color (attributes and inline style declarations), and returns the
// ranked, named, categorized token table. A document with no
// extractable colors yields an empty palette.
func Extract(doc *tree.Document, opts Options, log *slog.Logger) (*Palette, error) {
	if doc == nil || !doc.Valid(doc.Root) {
		return nil, tree.ErrNoRoot
	}
	if log == nil {
		log = slog.Default()
	}
	if opts.MaxColors <= 0 {
		opts.MaxColors = DefaultOptions().MaxColors
	}

	type entry struct {
		color colors.Color
		usage int
	}
	usage := map[string]*entry{}
	record := func(val string) {
		c, ok, err := colors.FromString(val)
		if err != nil {
			log.Debug("palette: unrecognized color value", "value", val)
			return
		}
		if !ok {
			return
		}
		hex := c.HexString()
		if e, has := usage[hex]; has {
			e.usage++
		} else {
			usage[hex] = &entry{color: c, usage: 1}
		}
	}

	doc.WalkDownVisual(doc.Root, func(id tree.NodeID) bool {
		for _, nm := range paintAttrs {
			if v, ok := doc.Attr(id, nm); ok {
				record(v)
			}
		}
		if style, ok := doc.Attr(id, "style"); ok {
			decls, err := parser.ParseDeclarations(style)
			if err != nil {
				log.Debug("palette: unparseable style attribute", "style", style, "err", err)
				return true
			}
			for _, decl := range decls {
				if decl.Property == "fill" || decl.Property == "stroke" {
					record(decl.Value)
				}
			}
		}
		return true
	})

	entries := make([]entry, 0, len(usage))
	for _, e := range usage {
		entries = append(entries, *e)
	}
	// rank by usage, hex ascending for determinism
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].usage != entries[j].usage {
			return entries[i].usage > entries[j].usage
		}
		return entries[i].color.HexString() < entries[j].color.HexString()
	})

	if opts.MergeTolerance > 0 {
		merged := entries[:0]
		for _, e := range entries {
			found := false
			for i := range merged {
				if merged[i].color.Distance(e.color) <= opts.MergeTolerance {
					merged[i].usage += e.usage
					found = true
					break
				}
			}
			if !found {
				merged = append(merged, e)
			}
		}
		entries = merged
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].usage != entries[j].usage {
				return entries[i].usage > entries[j].usage
			}
			return entries[i].color.HexString() < entries[j].color.HexString()
		})
	}

	if len(entries) > opts.MaxColors {
		entries = entries[:opts.MaxColors]
	}

	total := 0
	for _, e := range entries {
		total += e.usage
	}

	p := &Palette{}
	names := map[string]int{}
	for rank, e := range entries {
		share := float32(0)
		if total > 0 {
			share = float32(e.usage) / float32(total)
		}
		name := tokenName(e.color, share, opts, names)
		p.Tokens = append(p.Tokens, Token{
			Name:     name,
			Value:    e.color.HexString(),
			Usage:    e.usage,
			Category: categorize(rank, share, e.color, opts),
			color:    e.color,
		})
	}
	return p, nil
}

// tokenName assigns a semantic name: reference-hue match first, else
// a brightness-tier fallback, with a -primary qualifier for dominant
// usage and numeric suffixes on collisions.
func tokenName(c colors.Color, share float32, opts Options, names map[string]int) string {
	name, ok := colors.Name(c)
	if !ok {
		name = colors.TierName(c)
	}
	if share > opts.PrimaryShare {
		name += "-primary"
	}
	names[name]++
	if n := names[name]; n > 1 {
		name = fmt.Sprintf("%s-%d", name, n)
	}
	return name
}

// categorize assigns the token category: the highest-usage color is
// always the single primary; high-share colors are secondary; the
// rest split into accent and neutral by saturation and lightness.
func categorize(rank int, share float32, c colors.Color, opts Options) Category {
	if rank == 0 {
		return Primary
	}
	if share >= opts.SecondaryShare {
		return Secondary
	}
	_, s, l := c.ToHSL()
	if s >= 0.5 && l > 0.25 && l < 0.75 {
		return Accent
	}
	return Neutral
}

// ByValue returns the token with the given canonical hex value.
func (p *Palette) ByValue(hex string) (Token, bool) {
	for _, t := range p.Tokens {
		if t.Value == hex {
			return t, true
		}
	}
	return Token{}, false
}

// ByName returns the token with the given name.
func (p *Palette) ByName(name string) (Token, bool) {
	for _, t := range p.Tokens {
		if t.Name == name {
			return t, true
		}
	}
	return Token{}, false
}

// Flat returns the flat key-value serialization, one "name: value"
// line per token in rank order.
func (p *Palette) Flat() string {
	var sb strings.Builder
	for _, t := range p.Tokens {
		fmt.Fprintf(&sb, "%s: %s\n", t.Name, t.Value)
	}
	return sb.String()
}

// CSSVars returns the nested-variable serialization as a :root CSS
// custom-property block.
func (p *Palette) CSSVars() string {
	var sb strings.Builder
	sb.WriteString(":root {\n")
	for _, t := range p.Tokens {
		fmt.Fprintf(&sb, "  --%s: %s;\n", t.Name, t.Value)
	}
	sb.WriteString("}\n")
	return sb.String()
}
