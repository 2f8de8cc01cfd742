// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keylist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyList(t *testing.T) {
	kl := &List[string, int]{}
	assert.NoError(t, kl.Add("a", 1))
	assert.NoError(t, kl.Add("b", 2))
	assert.NoError(t, kl.Add("c", 3))
	assert.Error(t, kl.Add("b", 4))

	assert.Equal(t, 3, kl.Len())
	assert.Equal(t, 2, kl.At("b"))
	assert.Equal(t, 1, kl.IndexByKey("b"))
	assert.Equal(t, -1, kl.IndexByKey("zzz"))

	v, ok := kl.AtTry("c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	_, ok = kl.AtTry("zzz")
	assert.False(t, ok)

	kl.Set("b", 20)
	assert.Equal(t, 20, kl.At("b"))
	assert.Equal(t, []string{"a", "b", "c"}, kl.Keys)

	assert.NoError(t, kl.RenameKey(1, "bb"))
	assert.Equal(t, 20, kl.At("bb"))
	assert.Equal(t, []string{"a", "bb", "c"}, kl.Keys)
	assert.Error(t, kl.RenameKey(0, "c"))

	kl.DeleteByIndex(0, 1)
	assert.Equal(t, 2, kl.Len())
	assert.Equal(t, 0, kl.IndexByKey("bb"))

	assert.True(t, kl.DeleteByKey("c"))
	assert.False(t, kl.DeleteByKey("c"))
	assert.Equal(t, 1, kl.Len())
}

func TestKeyListClone(t *testing.T) {
	kl := &List[string, int]{}
	assert.NoError(t, kl.Add("a", 1))
	cp := kl.Clone()
	cp.Set("a", 99)
	assert.Equal(t, 1, kl.At("a"))
	assert.Equal(t, 99, cp.At("a"))
}
