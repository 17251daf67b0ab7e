// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pcol_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopcol/pcol"
)

type strKey string

func (s strKey) Hash() uint64 { return pcol.HashString(string(s)) }

func TestMapAssocGetDissoc(t *testing.T) {
	t.Parallel()

	m := pcol.NewMap[strKey, int]()
	require.True(t, m.IsEmpty())

	m2 := m.Assoc("a", 1)
	require.False(t, m2.IsEmpty())
	require.Equal(t, 1, m2.Size())

	v, ok := m2.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	// original untouched by structural sharing
	require.Equal(t, 0, m.Size())
	_, ok = m.Get("a")
	require.False(t, ok)

	m3 := m2.Dissoc("a")
	require.True(t, m3.IsEmpty())
	require.False(t, m2.IsEmpty(), "dissoc must not mutate its receiver")
}

func TestMapDissocMissingIsNoop(t *testing.T) {
	t.Parallel()

	m := pcol.NewMap[strKey, int]().Assoc("a", 1)
	m2 := m.Dissoc("z")
	require.True(t, m.Same(m2))
}

func TestMapMustGetPanicsOnMissing(t *testing.T) {
	t.Parallel()

	m := pcol.NewMap[strKey, int]()
	assert.Panics(t, func() {
		m.MustGet("missing")
	})
}

func TestMapGetOr(t *testing.T) {
	t.Parallel()

	m := pcol.NewMap[strKey, int]().Assoc("a", 1)
	assert.Equal(t, 1, m.GetOr("a", -1))
	assert.Equal(t, -1, m.GetOr("z", -1))
}

func TestMapUpdate(t *testing.T) {
	t.Parallel()

	m := pcol.NewMap[strKey, int]()
	m = m.Update("counter", func(old int, present bool) int {
		require.False(t, present)
		return old + 1
	})
	m = m.Update("counter", func(old int, present bool) int {
		require.True(t, present)
		return old + 1
	})

	v, ok := m.Get("counter")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestMapEachKeysValues(t *testing.T) {
	t.Parallel()

	m := pcol.NewMap[strKey, int]()
	want := map[strKey]int{"a": 1, "b": 2, "c": 3}
	for k, v := range want {
		m = m.Assoc(k, v)
	}

	got := map[strKey]int{}
	for k, v := range m.Each() {
		got[k] = v
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Each entries mismatch (-want +got):\n%s", diff)
	}

	keys := map[strKey]bool{}
	for k := range m.Keys() {
		keys[k] = true
	}
	assert.Len(t, keys, 3)

	values := map[int]bool{}
	for v := range m.Values() {
		values[v] = true
	}
	assert.Len(t, values, 3)
}

func TestMapEqualAndHash(t *testing.T) {
	t.Parallel()

	a := pcol.NewMap[strKey, int]().Assoc("x", 1).Assoc("y", 2)
	b := pcol.NewMap[strKey, int]().Assoc("y", 2).Assoc("x", 1)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	c := b.Assoc("z", 3)
	assert.False(t, a.Equal(c))
}

func TestMapSameAfterNoopAssoc(t *testing.T) {
	t.Parallel()

	a := pcol.NewMap[strKey, int]().Assoc("x", 1)
	b := a.Assoc("x", 1)
	assert.True(t, a.Same(b), "re-asserting the same key/value must be a structural no-op")
}

func TestMapFromAndWithHash(t *testing.T) {
	t.Parallel()

	src := map[int]string{1: "one", 2: "two", 3: "three"}
	m := pcol.MapFromWithHash(pcol.HashInt, src)

	require.Equal(t, 3, m.Size())
	for k, v := range src {
		got, ok := m.Get(k)
		require.True(t, ok)
		assert.Equal(t, v, got)
	}
}

// TestMapManyKeysCollisionStress inserts enough keys that case-C promotion
// and multi-level chaining are exercised repeatedly, not just in a single
// forced collision.
func TestMapManyKeysCollisionStress(t *testing.T) {
	t.Parallel()

	m := pcol.NewMapWithHash[int, int](pcol.HashInt)
	const n = 5000

	for i := 0; i < n; i++ {
		m = m.Assoc(i, i*i)
	}
	require.Equal(t, n, m.Size())

	for i := 0; i < n; i++ {
		v, ok := m.Get(i)
		require.True(t, ok, "missing key %d", i)
		assert.Equal(t, i*i, v)
	}

	for i := 0; i < n; i += 2 {
		m = m.Dissoc(i)
	}
	require.Equal(t, n/2, m.Size())
	for i := 1; i < n; i += 2 {
		_, ok := m.Get(i)
		require.True(t, ok)
	}
	for i := 0; i < n; i += 2 {
		_, ok := m.Get(i)
		require.False(t, ok)
	}
}

func TestMapDig(t *testing.T) {
	t.Parallel()

	inner := pcol.NewMap[strKey, int]().Assoc("b", 2)
	outer := pcol.NewMap[strKey, any]().Assoc("a", inner)

	v, err := pcol.Dig(outer, strKey("a"), strKey("b"))
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = pcol.Dig(outer, strKey("missing"))
	require.Error(t, err)
	var keyMissing *pcol.KeyMissingError
	assert.ErrorAs(t, err, &keyMissing)

	_, err = pcol.Dig(outer, strKey("a"), strKey("b"), strKey("c"))
	require.Error(t, err)
	var digInvalid *pcol.DigInvalidError
	assert.ErrorAs(t, err, &digInvalid)
}
