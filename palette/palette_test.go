// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package palette

import (
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

func TestExtractRanking(t *testing.T) {
	doc := parse(t, `<svg>
		<rect fill="#ff0000"/><rect fill="#ff0000"/><rect fill="#ff0000"/>
		<rect fill="#ff0000"/><rect fill="#ff0000"/>
		<circle fill="#0000ff"/><circle fill="#0000ff"/>
		<path stroke="#008000" d="M0 0 L1 1"/>
		<rect fill="none"/>
		<g style="fill: #ff0000; stroke: #0000ff;"/>
	</svg>`)
	p, err := Extract(doc, DefaultOptions(), nil)
	require.NoError(t, err)
	require.Len(t, p.Tokens, 3)

	assert.Equal(t, "red-primary", p.Tokens[0].Name)
	assert.Equal(t, "#ff0000", p.Tokens[0].Value)
	assert.Equal(t, 6, p.Tokens[0].Usage)
	assert.Equal(t, Primary, p.Tokens[0].Category)

	assert.Equal(t, "blue", p.Tokens[1].Name)
	assert.Equal(t, 3, p.Tokens[1].Usage)
	assert.Equal(t, Secondary, p.Tokens[1].Category)

	assert.Equal(t, "green", p.Tokens[2].Name)
	assert.Equal(t, 1, p.Tokens[2].Usage)
	assert.Equal(t, Accent, p.Tokens[2].Category)
}

func TestExtractExactlyOnePrimary(t *testing.T) {
	docs := []string{
		`<svg><rect fill="#ff0000"/></svg>`,
		`<svg><rect fill="#ff0000"/><rect fill="#0000ff"/><rect fill="#cccccc"/></svg>`,
		`<svg><rect fill="red"/><rect fill="blue"/><rect fill="green"/><rect fill="yellow"/>
			<rect fill="purple"/><rect fill="orange"/></svg>`,
	}
	for _, svg := range docs {
		p, err := Extract(parse(t, svg), DefaultOptions(), nil)
		require.NoError(t, err)
		primaries := 0
		for _, tok := range p.Tokens {
			if tok.Category == Primary {
				primaries++
			}
		}
		assert.Equal(t, 1, primaries, svg)
	}
}

func TestExtractNameCollisions(t *testing.T) {
	// two distinct reds below the dominance threshold share a base
	// name and get numeric suffixes, ordered by hex for equal usage
	doc := parse(t, `<svg>
		<rect fill="#0000ff"/><rect fill="#0000ff"/><rect fill="#0000ff"/>
		<rect fill="#ff0000"/><rect fill="#ee1111"/>
	</svg>`)
	p, err := Extract(doc, DefaultOptions(), nil)
	require.NoError(t, err)
	require.Len(t, p.Tokens, 3)
	assert.Equal(t, "blue-primary", p.Tokens[0].Name)
	assert.Equal(t, "red", p.Tokens[1].Name)
	assert.Equal(t, "#ee1111", p.Tokens[1].Value)
	assert.Equal(t, "red-2", p.Tokens[2].Name)
	assert.Equal(t, "#ff0000", p.Tokens[2].Value)
}

func TestExtractTierFallbackName(t *testing.T) {
	doc := parse(t, `<svg><rect fill="#ff00ff"/></svg>`)
	p, err := Extract(doc, DefaultOptions(), nil)
	require.NoError(t, err)
	require.Len(t, p.Tokens, 1)
	// magenta matches no reference hue; falls back to brightness tier
	assert.Equal(t, "light-primary", p.Tokens[0].Name)
}

func TestExtractMergeTolerance(t *testing.T) {
	svg := `<svg>
		<rect fill="#ff0000"/><rect fill="#ff0000"/><rect fill="#ff0000"/>
		<rect fill="#fe0005"/>
	</svg>`

	p, err := Extract(parse(t, svg), DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Len(t, p.Tokens, 2)

	opts := DefaultOptions()
	opts.MergeTolerance = 10
	p, err = Extract(parse(t, svg), opts, nil)
	require.NoError(t, err)
	require.Len(t, p.Tokens, 1)
	assert.Equal(t, "#ff0000", p.Tokens[0].Value)
	assert.Equal(t, 4, p.Tokens[0].Usage)
}

func TestExtractMaxColors(t *testing.T) {
	doc := parse(t, `<svg>
		<rect fill="#ff0000"/><rect fill="#ff0000"/><rect fill="#ff0000"/>
		<rect fill="#0000ff"/><rect fill="#0000ff"/>
		<rect fill="#008000"/>
	</svg>`)
	opts := DefaultOptions()
	opts.MaxColors = 2
	p, err := Extract(doc, opts, nil)
	require.NoError(t, err)
	require.Len(t, p.Tokens, 2)
	assert.Equal(t, "#ff0000", p.Tokens[0].Value)
	assert.Equal(t, "#0000ff", p.Tokens[1].Value)
}

func TestExtractEmpty(t *testing.T) {
	doc := parse(t, `<svg><rect width="5"/><g/></svg>`)
	p, err := Extract(doc, DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Empty(t, p.Tokens)
	assert.Equal(t, "", p.Flat())
	assert.Equal(t, ":root {\n}\n", p.CSSVars())
}

func TestSerializations(t *testing.T) {
	doc := parse(t, `<svg>
		<rect fill="#ff0000"/><rect fill="#ff0000"/><rect fill="#ff0000"/>
		<rect fill="#0000ff"/>
	</svg>`)
	p, err := Extract(doc, DefaultOptions(), nil)
	require.NoError(t, err)

	assert.Equal(t, "red-primary: #ff0000\nblue: #0000ff\n", p.Flat())
	assert.Equal(t, ":root {\n  --red-primary: #ff0000;\n  --blue: #0000ff;\n}\n", p.CSSVars())

	js, err := p.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(js), `"name": "red-primary"`)
	assert.Contains(t, string(js), `"value": "#ff0000"`)
	assert.Contains(t, string(js), `"category": "primary"`)
}

func TestSubstituteResolveRoundTrip(t *testing.T) {
	src := `<svg>
		<rect fill="#ff0000"/><rect fill="#ff0000"/><rect fill="#ff0000"/>
		<circle fill="#0000ff" stroke="#ff0000"/>
		<g style="fill: #ff0000; stroke: #0000ff;"><path d="M0 0 L1 1"/></g>
	</svg>`
	doc := parse(t, src)
	canonical := doc.String()

	p, err := Extract(doc, DefaultOptions(), nil)
	require.NoError(t, err)

	require.NoError(t, Substitute(doc, p, nil))
	sub := doc.String()
	assert.Contains(t, sub, `fill="var(--red-primary)"`)
	assert.Contains(t, sub, `fill="var(--blue)"`)
	assert.Contains(t, sub, `stroke="var(--red-primary)"`)
	assert.Contains(t, sub, "fill: var(--red-primary); stroke: var(--blue);")
	assert.NotContains(t, sub, "#ff0000")

	require.NoError(t, Resolve(doc, p, nil))
	assert.Equal(t, canonical, doc.String())
}

func TestSubstituteLeavesUnknownColors(t *testing.T) {
	doc := parse(t, `<svg><rect fill="#ff0000"/><rect fill="#123456"/></svg>`)
	p := &Palette{Tokens: []Token{{Name: "red", Value: "#ff0000"}}}
	require.NoError(t, Substitute(doc, p, nil))
	s := doc.String()
	assert.Contains(t, s, `fill="var(--red)"`)
	assert.Contains(t, s, `fill="#123456"`)
}

func TestByValueByName(t *testing.T) {
	p := &Palette{Tokens: []Token{
		{Name: "red", Value: "#ff0000"},
		{Name: "blue", Value: "#0000ff"},
	}}
	tok, ok := p.ByValue("#0000ff")
	require.True(t, ok)
	assert.Equal(t, "blue", tok.Name)
	tok, ok = p.ByName("red")
	require.True(t, ok)
	assert.Equal(t, "#ff0000", tok.Value)
	_, ok = p.ByName("green")
	assert.False(t, ok)
	_, ok = p.ByValue("#00ff00")
	assert.False(t, ok)
}

func TestExtractNilDocument(t *testing.T) {
	_, err := Extract(nil, DefaultOptions(), nil)
	assert.ErrorIs(t, err, tree.ErrNoRoot)
}

func TestVarName(t *testing.T) {
	name, ok := varName("var(--red-primary)")
	require.True(t, ok)
	assert.Equal(t, "red-primary", name)
	_, ok = varName("#ff0000")
	assert.False(t, ok)
	_, ok = varName("var(--red")
	assert.False(t, ok)
	name, ok = varName("  var(--blue)  ")
	require.True(t, ok)
	assert.Equal(t, "blue", name)
}
