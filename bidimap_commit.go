// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pcol

// BidiMapCommit is the mutable handle a BidiMap.Transaction body edits.
// It drives two MapCommits, one per direction, sharing a single
// commitState so both are authorized and resolved together.
type BidiMapCommit[K comparable, V comparable] struct {
	valueOf *MapCommit[K, V]
	keyOf   *MapCommit[V, K]
	state   *commitState
}

// ValueFor returns the value bound to key.
func (bc *BidiMapCommit[K, V]) ValueFor(key K) (V, bool) {
	return bc.valueOf.Get(key)
}

// KeyFor returns the key bound to value.
func (bc *BidiMapCommit[K, V]) KeyFor(value V) (K, bool) {
	return bc.keyOf.Get(value)
}

// Size returns the number of pairs visible to this commit.
func (bc *BidiMapCommit[K, V]) Size() int { return bc.valueOf.Size() }

// Assoc binds key to value in place, first dropping any pre-existing
// pair sharing key or value, and returns bc.
func (bc *BidiMapCommit[K, V]) Assoc(key K, value V) *BidiMapCommit[K, V] {
	bc.state.checkWritable()

	if oldValue, ok := bc.valueOf.Get(key); ok {
		bc.keyOf.Dissoc(oldValue)
	}
	if oldKey, ok := bc.keyOf.Get(value); ok {
		bc.valueOf.Dissoc(oldKey)
	}

	bc.valueOf.Assoc(key, value)
	bc.keyOf.Assoc(value, key)
	return bc
}

// DissocByKey removes key's pair in place and returns bc.
func (bc *BidiMapCommit[K, V]) DissocByKey(key K) *BidiMapCommit[K, V] {
	bc.state.checkWritable()
	if value, ok := bc.valueOf.Get(key); ok {
		bc.valueOf.Dissoc(key)
		bc.keyOf.Dissoc(value)
	}
	return bc
}

// DissocByValue removes value's pair in place and returns bc.
func (bc *BidiMapCommit[K, V]) DissocByValue(value V) *BidiMapCommit[K, V] {
	bc.state.checkWritable()
	if key, ok := bc.keyOf.Get(value); ok {
		bc.valueOf.Dissoc(key)
		bc.keyOf.Dissoc(value)
	}
	return bc
}

// Transaction runs f against a mutable view of b and returns the
// resulting BidiMap, under the same goroutine-affinity and
// single-resolution rules as Map.Transaction.
func (b *BidiMap[K, V]) Transaction(f func(*BidiMapCommit[K, V])) *BidiMap[K, V] {
	state := newCommitState()
	bc := &BidiMapCommit[K, V]{
		valueOf: newMapCommit(b.valueOf, state),
		keyOf:   newMapCommit(b.keyOf, state),
		state:   state,
	}

	defer func() { state.resolved = true }()
	f(bc)

	return &BidiMap[K, V]{valueOf: bc.valueOf.snapshot(), keyOf: bc.keyOf.snapshot()}
}
