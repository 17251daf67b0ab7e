// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pcol

// SetCommit is the mutable handle a Set.Transaction body edits.
type SetCommit[T comparable] struct {
	mc *MapCommit[T, struct{}]
}

// Size returns the number of elements visible to this commit.
func (sc *SetCommit[T]) Size() int { return sc.mc.Size() }

// IsEmpty reports whether the commit currently holds no elements.
func (sc *SetCommit[T]) IsEmpty() bool { return sc.mc.IsEmpty() }

// Contains reports whether v is a member.
func (sc *SetCommit[T]) Contains(v T) bool { return sc.mc.Contains(v) }

// Add includes v in place and returns sc.
func (sc *SetCommit[T]) Add(v T) *SetCommit[T] {
	sc.mc.Assoc(v, struct{}{})
	return sc
}

// Delete removes v in place and returns sc.
func (sc *SetCommit[T]) Delete(v T) *SetCommit[T] {
	sc.mc.Dissoc(v)
	return sc
}

// Transaction runs f against a mutable view of s and returns the
// resulting Set, under the same goroutine-affinity and single-resolution
// rules as Map.Transaction.
func (s *Set[T]) Transaction(f func(*SetCommit[T])) *Set[T] {
	newMap := s.m.Transaction(func(mc *MapCommit[T, struct{}]) {
		f(&SetCommit[T]{mc: mc})
	})
	return &Set[T]{m: newMap}
}
