// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pcol

import (
	"iter"

	"github.com/gopcol/pcol/internal/author"
	"github.com/gopcol/pcol/internal/node"
)

// Map is a persistent, unordered key/value association. Every mutating
// method returns a new Map; the receiver is never modified.
//
// The zero value is not usable; construct one with NewMap, NewMapWithHash,
// MapFrom or MapFromWithHash.
type Map[K comparable, V any] struct {
	root     *node.Node[mapEntry[K, V]]
	size     int
	hashFunc HashFunc[K]
	equalFn  func(a, b V) bool
}

// NewMap returns an empty Map whose keys hash themselves via Hasher.
func NewMap[K HashableKey, V any]() *Map[K, V] {
	return NewMapWithHash[K, V](func(k K) uint64 { return k.Hash() })
}

// NewMapWithHash returns an empty Map using the supplied hash function,
// for key types that don't implement Hasher.
func NewMapWithHash[K comparable, V any](hash HashFunc[K]) *Map[K, V] {
	return &Map[K, V]{
		root:     node.New[mapEntry[K, V]](),
		hashFunc: hash,
		equalFn:  valueEqualFunc[V](),
	}
}

// MapFrom returns a Map populated from m.
func MapFrom[K HashableKey, V any](m map[K]V) *Map[K, V] {
	return MapFromWithHash(func(k K) uint64 { return k.Hash() }, m)
}

// MapFromWithHash returns a Map populated from m, using the supplied hash
// function.
func MapFromWithHash[K comparable, V any](hash HashFunc[K], m map[K]V) *Map[K, V] {
	out := NewMapWithHash[K, V](hash)
	for k, v := range m {
		out = out.Assoc(k, v)
	}
	return out
}

func (m *Map[K, V]) cursor(key K) pathCursor {
	return pathCursor{hash: mix64(m.hashFunc(key))}
}

// Size returns the number of entries.
func (m *Map[K, V]) Size() int {
	return m.size
}

// IsEmpty reports whether the map holds no entries.
func (m *Map[K, V]) IsEmpty() bool {
	return m.size == 0
}

// Stats returns shape diagnostics for m's trie (item/child/node counts,
// deepest chain), for tooling use such as a benchmark's verbose output.
// It is not part of the container's logical contract.
func (m *Map[K, V]) Stats() node.Stats {
	return m.root.Stats(0)
}

// Get returns the value for key and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	e, ok := m.root.Fetch(0, mapFetchProbe[K, V]{cursor: m.cursor(key), key: key})
	return e.value, ok
}

// GetOr returns the value for key, or fallback if it is absent.
func (m *Map[K, V]) GetOr(key K, fallback V) V {
	if v, ok := m.Get(key); ok {
		return v
	}
	return fallback
}

// MustGet returns the value for key, panicking with a *KeyMissingError if
// it is absent.
func (m *Map[K, V]) MustGet(key K) V {
	v, ok := m.Get(key)
	if !ok {
		panic(&KeyMissingError{Key: key})
	}
	return v
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Assoc returns a new Map with key bound to value.
func (m *Map[K, V]) Assoc(key K, value V) *Map[K, V] {
	return m.assoc(key, value, author.None)
}

func (m *Map[K, V]) assoc(key K, value V, a author.ID) *Map[K, V] {
	probe := mapAddProbe[K, V]{cursor: m.cursor(key), key: key, value: value, hashFunc: m.hashFunc, equalFn: m.equalFn, a: a}
	newRoot, inserted := m.root.Add(0, probe)

	size := m.size
	if inserted {
		size++
	}
	if newRoot == m.root && !inserted {
		return m
	}
	return &Map[K, V]{root: newRoot, size: size, hashFunc: m.hashFunc, equalFn: m.equalFn}
}

// Update returns a new Map with key bound to fn(old, present), where old
// is the prior value for key (or the zero value if absent) and present
// reports whether it existed.
func (m *Map[K, V]) Update(key K, fn func(old V, present bool) V) *Map[K, V] {
	old, present := m.Get(key)
	return m.Assoc(key, fn(old, present))
}

// Dissoc returns a new Map with key removed, or m unchanged if key was
// absent.
func (m *Map[K, V]) Dissoc(key K) *Map[K, V] {
	return m.dissoc(key, author.None)
}

func (m *Map[K, V]) dissoc(key K, a author.ID) *Map[K, V] {
	probe := mapDeleteProbe[K, V]{cursor: m.cursor(key), key: key, a: a}
	newRoot, deleted := m.root.Delete(0, probe)
	if !deleted {
		return m
	}
	return &Map[K, V]{root: newRoot, size: m.size - 1, hashFunc: m.hashFunc, equalFn: m.equalFn}
}

// Each iterates over every key/value pair. Order is unspecified.
func (m *Map[K, V]) Each() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := range m.root.Each() {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Keys iterates over every key. Order is unspecified.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for e := range m.root.Each() {
			if !yield(e.key) {
				return
			}
		}
	}
}

// Values iterates over every value. Order is unspecified.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for e := range m.root.Each() {
			if !yield(e.value) {
				return
			}
		}
	}
}

// Clone returns m. Because Map is persistent and never mutated in place
// outside of a transaction's own copy-on-write nodes, an independent
// snapshot is simply the receiver itself.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return m
}

// Same reports whether m and other share the same trie root, meaning
// neither has ever diverged through a later edit to one of them.
func (m *Map[K, V]) Same(other *Map[K, V]) bool {
	return m.root == other.root
}

// Equal reports whether m and other hold the same key/value pairs, using
// V's Equaler implementation if any, else == or reference identity.
func (m *Map[K, V]) Equal(other *Map[K, V]) bool {
	if m.Same(other) {
		return true
	}
	if m.size != other.size {
		return false
	}
	for e := range m.root.Each() {
		ov, ok := other.Get(e.key)
		if !ok || !m.equalFn(e.value, ov) {
			return false
		}
	}
	return true
}

// Hash returns a content hash of m, combining only key hashes (V carries
// no required hash contract), so two maps holding the same keys hash
// equally regardless of their values.
func (m *Map[K, V]) Hash() uint64 {
	var acc uint64
	for e := range m.root.Each() {
		acc ^= mix64(m.hashFunc(e.key))
	}
	return acc
}

func (m *Map[K, V]) dig(key any) (any, bool) {
	k, ok := key.(K)
	if !ok {
		return nil, false
	}
	return m.Get(k)
}
