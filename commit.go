// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pcol

import (
	"github.com/gopcol/pcol/internal/author"
	"github.com/gopcol/pcol/internal/gid"
	"github.com/gopcol/pcol/internal/node"
)

// commitState is shared by every commit object produced within a single
// transaction: the goroutine that may mutate it, the author id that
// authorizes in-place node mutation, and whether the transaction has
// already resolved.
type commitState struct {
	ownerGID uint64
	author   author.ID
	resolved bool
}

func newCommitState() *commitState {
	return &commitState{ownerGID: gid.Current(), author: author.Next()}
}

func (c *commitState) checkReadable() {
	if c.resolved {
		panic(&ResolvedError{})
	}
	if gid.Current() != c.ownerGID {
		panic(&ReadonlyError{})
	}
}

func (c *commitState) checkWritable() {
	c.checkReadable()
}

// MapCommit is the mutable handle a Map.Transaction body edits. Every
// write method mutates the commit's own trie in place (authorized by the
// transaction's author id) and returns the same *MapCommit for chaining;
// no method ever allocates a new MapCommit.
type MapCommit[K comparable, V any] struct {
	state    *commitState
	root     *node.Node[mapEntry[K, V]]
	size     int
	hashFunc HashFunc[K]
	equalFn  func(a, b V) bool
}

func (mc *MapCommit[K, V]) cursor(key K) pathCursor {
	return pathCursor{hash: mix64(mc.hashFunc(key))}
}

// Size returns the number of entries visible to this commit.
func (mc *MapCommit[K, V]) Size() int {
	mc.state.checkReadable()
	return mc.size
}

// IsEmpty reports whether the commit currently holds no entries.
func (mc *MapCommit[K, V]) IsEmpty() bool {
	return mc.Size() == 0
}

// Get returns the value for key and whether it was present.
func (mc *MapCommit[K, V]) Get(key K) (V, bool) {
	mc.state.checkReadable()
	e, ok := mc.root.Fetch(0, mapFetchProbe[K, V]{cursor: mc.cursor(key), key: key})
	return e.value, ok
}

// Contains reports whether key is present.
func (mc *MapCommit[K, V]) Contains(key K) bool {
	_, ok := mc.Get(key)
	return ok
}

// Assoc binds key to value in place and returns mc.
func (mc *MapCommit[K, V]) Assoc(key K, value V) *MapCommit[K, V] {
	mc.state.checkWritable()
	probe := mapAddProbe[K, V]{cursor: mc.cursor(key), key: key, value: value, hashFunc: mc.hashFunc, equalFn: mc.equalFn, a: mc.state.author}
	newRoot, inserted := mc.root.Add(0, probe)
	mc.root = newRoot
	if inserted {
		mc.size++
	}
	return mc
}

// Dissoc removes key in place and returns mc.
func (mc *MapCommit[K, V]) Dissoc(key K) *MapCommit[K, V] {
	mc.state.checkWritable()
	probe := mapDeleteProbe[K, V]{cursor: mc.cursor(key), key: key, a: mc.state.author}
	newRoot, deleted := mc.root.Delete(0, probe)
	mc.root = newRoot
	if deleted {
		mc.size--
	}
	return mc
}

func newMapCommit[K comparable, V any](m *Map[K, V], state *commitState) *MapCommit[K, V] {
	return &MapCommit[K, V]{root: m.root, size: m.size, hashFunc: m.hashFunc, equalFn: m.equalFn, state: state}
}

func (mc *MapCommit[K, V]) snapshot() *Map[K, V] {
	return &Map[K, V]{root: mc.root, size: mc.size, hashFunc: mc.hashFunc, equalFn: mc.equalFn}
}

// Transaction runs f against a mutable view of m and returns the
// resulting Map. Every write f performs through the supplied *MapCommit
// is confined to the goroutine that opened the transaction; a write from
// any other goroutine panics with a *ReadonlyError, and any access after
// f returns panics with a *ResolvedError.
//
// If f panics, the commit is still marked resolved (so subsequent
// accidental use of the escaped commit handle fails loudly), but the
// panic propagates and Transaction never returns: m itself is left
// completely untouched, exactly as if the transaction had never started.
func (m *Map[K, V]) Transaction(f func(*MapCommit[K, V])) *Map[K, V] {
	state := newCommitState()
	mc := newMapCommit(m, state)

	defer func() { state.resolved = true }()
	f(mc)

	return mc.snapshot()
}
