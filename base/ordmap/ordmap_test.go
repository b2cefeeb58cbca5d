// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	om := New[string, int]()
	om.Add("key0", 0)
	om.Add("key1", 1)
	om.Add("key2", 2)

	assert.Equal(t, 1, om.ValueByKey("key1"))
	assert.Equal(t, 2, om.IndexByKey("key2"))
	assert.Equal(t, -1, om.IndexByKey("missing"))
	assert.True(t, om.HasKey("key0"))
	assert.Equal(t, 3, om.Len())
	assert.Equal(t, []string{"key0", "key1", "key2"}, om.Keys())

	// replacing preserves the original order
	om.Add("key1", 11)
	assert.Equal(t, 11, om.ValueByKey("key1"))
	assert.Equal(t, []string{"key0", "key1", "key2"}, om.Keys())
	assert.Equal(t, 3, om.Len())

	assert.True(t, om.DeleteKey("key1"))
	assert.False(t, om.DeleteKey("key1"))
	assert.Equal(t, []string{"key0", "key2"}, om.Keys())
	assert.Equal(t, 1, om.IndexByKey("key2"))
	assert.Equal(t, "key2", om.KeyByIndex(1))
	assert.Equal(t, 2, om.ValueByIndex(1))

	_, ok := om.ValueByKeyTry("key1")
	assert.False(t, ok)

	cp := om.Copy()
	cp.Add("key3", 3)
	assert.Equal(t, 2, om.Len())
	assert.Equal(t, 3, cp.Len())

	om.Reset()
	assert.Equal(t, 0, om.Len())
}
