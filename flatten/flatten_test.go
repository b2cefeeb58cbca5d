// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/svganim/tree"
)

func flattenString(t *testing.T, svg string) string {
	t.Helper()
	doc, err := tree.ParseString(svg)
	require.NoError(t, err)
	require.NoError(t, Flatten(doc, nil))
	return doc.String()
}

func TestFlattenTranslate(t *testing.T) {
	out := flattenString(t, `<svg><g transform="translate(10, 20)"><rect x="1" y="2" width="3" height="4"/></g></svg>`)
	assert.NotContains(t, out, "transform")
	assert.Contains(t, out, `x="11"`)
	assert.Contains(t, out, `y="22"`)
	assert.Contains(t, out, `width="3"`)
	assert.Contains(t, out, `height="4"`)
}

func TestFlattenNested(t *testing.T) {
	out := flattenString(t, `<svg><g transform="translate(10, 0)"><g transform="scale(2)"><circle cx="5" cy="5" r="3"/></g></g></svg>`)
	assert.NotContains(t, out, "transform")
	// translate then scale: cx = 10 + 2*5
	assert.Contains(t, out, `cx="20"`)
	assert.Contains(t, out, `cy="10"`)
	assert.Contains(t, out, `r="6"`)
}

func TestFlattenOwnTransform(t *testing.T) {
	out := flattenString(t, `<svg><line x1="0" y1="0" x2="10" y2="0" transform="translate(5, 5)"/></svg>`)
	assert.NotContains(t, out, "transform")
	assert.Contains(t, out, `x1="5"`)
	assert.Contains(t, out, `y1="5"`)
	assert.Contains(t, out, `x2="15"`)
	assert.Contains(t, out, `y2="5"`)
}

func TestFlattenPath(t *testing.T) {
	out := flattenString(t, `<svg><path d="M0 0 L10 0 Z" transform="translate(1, 2)"/></svg>`)
	assert.NotContains(t, out, "transform")
	assert.Contains(t, out, `d="M1 2 L11 2 Z"`)
}

func TestFlattenPolygon(t *testing.T) {
	out := flattenString(t, `<svg><polygon points="0,0 10,0 10,10" transform="translate(1, 1)"/></svg>`)
	assert.Contains(t, out, `points="1,1 11,1 11,11"`)
}

func TestFlattenIdempotent(t *testing.T) {
	in := `<svg viewBox="0 0 100 100"><g transform="translate(3, 4) scale(2)"><rect x="1" y="1" width="10" height="5"/><path d="M0 0 C1 1 2 2 3 3"/></g><circle cx="2" cy="2" r="1" transform="rotate(90)"/></svg>`
	once := flattenString(t, in)
	twice := flattenString(t, once)
	assert.Equal(t, once, twice)
}

func TestFlattenNoTransformsUntouched(t *testing.T) {
	in := `<svg><rect x="1.5" y="2.25" width="3" height="4"/></svg>`
	assert.Equal(t, in, flattenString(t, in))
}

func TestFlattenBadTransform(t *testing.T) {
	doc, err := tree.ParseString(`<svg><rect transform="skewX(10)" width="1" height="1"/></svg>`)
	require.NoError(t, err)
	assert.Error(t, Flatten(doc, nil))
}
