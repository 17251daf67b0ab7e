// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pcol

import "iter"

// BidiMap is a persistent bijective association between K and V: every
// key maps to exactly one value and every value maps back to exactly one
// key. It is built from two Maps kept in lockstep.
type BidiMap[K comparable, V comparable] struct {
	valueOf *Map[K, V]
	keyOf   *Map[V, K]
}

// NewBidiMap returns an empty BidiMap whose keys and values hash
// themselves via Hasher.
func NewBidiMap[K HashableKey, V HashableKey]() *BidiMap[K, V] {
	return NewBidiMapWithHash[K, V](
		func(k K) uint64 { return k.Hash() },
		func(v V) uint64 { return v.Hash() },
	)
}

// NewBidiMapWithHash returns an empty BidiMap using the supplied hash
// functions.
func NewBidiMapWithHash[K comparable, V comparable](hashK HashFunc[K], hashV HashFunc[V]) *BidiMap[K, V] {
	return &BidiMap[K, V]{
		valueOf: NewMapWithHash[K, V](hashK),
		keyOf:   NewMapWithHash[V, K](hashV),
	}
}

// BidiMapFrom returns a BidiMap populated from m. If m is not itself
// bijective, later entries in iteration order win both directions.
func BidiMapFrom[K HashableKey, V HashableKey](m map[K]V) *BidiMap[K, V] {
	out := NewBidiMap[K, V]()
	for k, v := range m {
		out = out.Assoc(k, v)
	}
	return out
}

// Size returns the number of pairs.
func (b *BidiMap[K, V]) Size() int { return b.valueOf.Size() }

// IsEmpty reports whether the BidiMap holds no pairs.
func (b *BidiMap[K, V]) IsEmpty() bool { return b.valueOf.IsEmpty() }

// ValueFor returns the value bound to key.
func (b *BidiMap[K, V]) ValueFor(key K) (V, bool) {
	return b.valueOf.Get(key)
}

// KeyFor returns the key bound to value.
func (b *BidiMap[K, V]) KeyFor(value V) (K, bool) {
	return b.keyOf.Get(value)
}

// HasValueFor reports whether key is bound to a value.
func (b *BidiMap[K, V]) HasValueFor(key K) bool {
	return b.valueOf.Contains(key)
}

// HasKeyFor reports whether value is bound to a key.
func (b *BidiMap[K, V]) HasKeyFor(value V) bool {
	return b.keyOf.Contains(value)
}

// Assoc returns a new BidiMap binding key to value. Any pre-existing pair
// sharing key or value is dropped first, preserving the bijection.
// Re-asserting the pair already stored under key is a no-op: it returns b
// itself instead of churning both underlying tries.
func (b *BidiMap[K, V]) Assoc(key K, value V) *BidiMap[K, V] {
	if oldValue, ok := b.valueOf.Get(key); ok && b.valueOf.equalFn(oldValue, value) {
		if oldKey, ok := b.keyOf.Get(value); ok && b.keyOf.equalFn(oldKey, key) {
			return b
		}
	}

	valueOf := b.valueOf
	keyOf := b.keyOf

	if oldValue, ok := valueOf.Get(key); ok {
		keyOf = keyOf.Dissoc(oldValue)
	}
	if oldKey, ok := keyOf.Get(value); ok {
		valueOf = valueOf.Dissoc(oldKey)
	}

	valueOf = valueOf.Assoc(key, value)
	keyOf = keyOf.Assoc(value, key)

	return &BidiMap[K, V]{valueOf: valueOf, keyOf: keyOf}
}

// DissocByKey returns a new BidiMap with key's pair removed.
func (b *BidiMap[K, V]) DissocByKey(key K) *BidiMap[K, V] {
	value, ok := b.valueOf.Get(key)
	if !ok {
		return b
	}
	return &BidiMap[K, V]{
		valueOf: b.valueOf.Dissoc(key),
		keyOf:   b.keyOf.Dissoc(value),
	}
}

// DissocByValue returns a new BidiMap with value's pair removed.
func (b *BidiMap[K, V]) DissocByValue(value V) *BidiMap[K, V] {
	key, ok := b.keyOf.Get(value)
	if !ok {
		return b
	}
	return &BidiMap[K, V]{
		valueOf: b.valueOf.Dissoc(key),
		keyOf:   b.keyOf.Dissoc(value),
	}
}

// Each iterates over every key/value pair. Order is unspecified.
func (b *BidiMap[K, V]) Each() iter.Seq2[K, V] {
	return b.valueOf.Each()
}

// Clone returns b.
func (b *BidiMap[K, V]) Clone() *BidiMap[K, V] { return b }

// Same reports whether b and other share the same underlying tries.
func (b *BidiMap[K, V]) Same(other *BidiMap[K, V]) bool {
	return b.valueOf.Same(other.valueOf)
}

// Equal reports whether b and other hold the same pairs.
func (b *BidiMap[K, V]) Equal(other *BidiMap[K, V]) bool {
	return b.valueOf.Equal(other.valueOf)
}

// Hash returns a content hash of b.
func (b *BidiMap[K, V]) Hash() uint64 {
	return b.valueOf.Hash()
}

func (b *BidiMap[K, V]) dig(key any) (any, bool) {
	k, ok := key.(K)
	if !ok {
		return nil, false
	}
	return b.valueOf.Get(k)
}
