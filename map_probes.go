// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pcol

import "github.com/gopcol/pcol/internal/author"

// mapEntry is the payload stored at a trie leaf.
type mapEntry[K comparable, V any] struct {
	key   K
	value V
}

type mapFetchProbe[K comparable, V any] struct {
	cursor pathCursor
	key    K
}

func (p mapFetchProbe[K, V]) Path(depth int) uint64 {
	return p.cursor.at(depth)
}

func (p mapFetchProbe[K, V]) Match(stored mapEntry[K, V]) bool {
	return stored.key == p.key
}

type mapAddProbe[K comparable, V any] struct {
	cursor   pathCursor
	key      K
	value    V
	hashFunc HashFunc[K]
	equalFn  func(a, b V) bool
	a        author.ID
}

func (p mapAddProbe[K, V]) Path(depth int) uint64 {
	return p.cursor.at(depth)
}

func (p mapAddProbe[K, V]) PathOf(stored mapEntry[K, V], depth int) uint64 {
	return pathCursor{hash: mix64(p.hashFunc(stored.key))}.at(depth)
}

func (p mapAddProbe[K, V]) Match(stored mapEntry[K, V]) bool {
	return stored.key == p.key
}

// Replace reports whether the new value should overwrite stored. A
// value-equal replacement is treated as a no-op so the node can take the
// structural-sharing fast path in Node.Add's case B instead of cloning.
func (p mapAddProbe[K, V]) Replace(stored mapEntry[K, V]) bool {
	return !p.equalFn(stored.value, p.value)
}

func (p mapAddProbe[K, V]) Value() mapEntry[K, V] {
	return mapEntry[K, V]{key: p.key, value: p.value}
}

func (p mapAddProbe[K, V]) Author() author.ID {
	return p.a
}

type mapDeleteProbe[K comparable, V any] struct {
	cursor pathCursor
	key    K
	a      author.ID
}

func (p mapDeleteProbe[K, V]) Path(depth int) uint64 {
	return p.cursor.at(depth)
}

func (p mapDeleteProbe[K, V]) Match(stored mapEntry[K, V]) bool {
	return stored.key == p.key
}

func (p mapDeleteProbe[K, V]) Author() author.ID {
	return p.a
}
