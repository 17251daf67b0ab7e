// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pcol_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopcol/pcol"
)

func TestTransactionAppliesEditsLeavingOriginalUntouched(t *testing.T) {
	t.Parallel()

	m := pcol.NewMapWithHash[int, int](pcol.HashInt).Assoc(1, 1)

	m2 := m.Transaction(func(mc *pcol.MapCommit[int, int]) {
		mc.Assoc(2, 2)
		mc.Assoc(3, 3)
		mc.Dissoc(1)
	})

	require.Equal(t, 1, m.Size(), "original map must be untouched")
	_, ok := m.Get(2)
	require.False(t, ok)

	require.Equal(t, 2, m2.Size())
	_, ok = m2.Get(1)
	require.False(t, ok)
	v, ok := m2.Get(2)
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

// TestTransactionPanicPreservesOriginal verifies that a panicking
// transaction body leaves the caller's container reference completely
// untouched: the panic propagates out of Transaction before it ever
// builds the resulting Map.
func TestTransactionPanicPreservesOriginal(t *testing.T) {
	t.Parallel()

	m := pcol.NewMapWithHash[int, int](pcol.HashInt).Assoc(1, 1)

	assert.Panics(t, func() {
		m.Transaction(func(mc *pcol.MapCommit[int, int]) {
			mc.Assoc(2, 2)
			panic("boom")
		})
	})

	require.Equal(t, 1, m.Size())
	_, ok := m.Get(2)
	require.False(t, ok, "the aborted transaction's write must not be visible")
}

// TestTransactionCommitReadonlyFromOtherGoroutine verifies the fiber
// affinity rule: only the goroutine that opened the transaction may use
// its commit handle.
func TestTransactionCommitReadonlyFromOtherGoroutine(t *testing.T) {
	t.Parallel()

	m := pcol.NewMapWithHash[int, int](pcol.HashInt)

	var wg sync.WaitGroup
	var paniced bool

	m.Transaction(func(mc *pcol.MapCommit[int, int]) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					paniced = true
				}
			}()
			mc.Assoc(99, 99)
		}()
		wg.Wait()
	})

	assert.True(t, paniced, "mutating a commit from another goroutine must panic")
}

// TestTransactionCommitResolvedAfterReturn verifies that a commit handle
// that escapes its transaction body is unusable afterward.
func TestTransactionCommitResolvedAfterReturn(t *testing.T) {
	t.Parallel()

	m := pcol.NewMapWithHash[int, int](pcol.HashInt)
	var escaped *pcol.MapCommit[int, int]

	m.Transaction(func(mc *pcol.MapCommit[int, int]) {
		escaped = mc
	})

	assert.Panics(t, func() {
		escaped.Assoc(1, 1)
	}, "using a commit handle after its transaction resolved must panic")

	assert.Panics(t, func() {
		escaped.Get(1)
	}, "reading a resolved commit handle must panic too, not just writing it")

	assert.Panics(t, func() {
		escaped.Size()
	}, "Size on a resolved commit handle must panic")
}

func TestSetTransaction(t *testing.T) {
	t.Parallel()

	s := pcol.SetFromWithHash(pcol.HashInt, 1, 2)
	s2 := s.Transaction(func(sc *pcol.SetCommit[int]) {
		sc.Add(3)
		sc.Delete(1)
	})

	require.Equal(t, 2, s.Size())
	require.True(t, s.Contains(1))

	require.Equal(t, 2, s2.Size())
	require.True(t, s2.Contains(2))
	require.True(t, s2.Contains(3))
	require.False(t, s2.Contains(1))
}

func TestBidiMapTransaction(t *testing.T) {
	t.Parallel()

	b := pcol.NewBidiMap[strKey, strKey]().Assoc("a", "1")
	b2 := b.Transaction(func(bc *pcol.BidiMapCommit[strKey, strKey]) {
		bc.Assoc("b", "2")
		bc.DissocByKey("a")
	})

	require.True(t, b.HasValueFor("a"))
	require.False(t, b2.HasValueFor("a"))
	require.True(t, b2.HasValueFor("b"))

	k, ok := b2.KeyFor("2")
	require.True(t, ok)
	assert.Equal(t, strKey("b"), k)
}
