// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pcol

// Merge returns a new Map holding every entry of m and other; entries of
// other win on key collision.
func (m *Map[K, V]) Merge(other *Map[K, V]) *Map[K, V] {
	return m.MergeWith(other, func(_, b V) V { return b })
}

// MergeWith returns a new Map holding every entry of m and other,
// resolving a key present in both via resolve(mineValue, otherValue). The
// merge runs inside a transaction so the |other| intermediate versions
// are never materialized.
func (m *Map[K, V]) MergeWith(other *Map[K, V], resolve func(a, b V) V) *Map[K, V] {
	return m.Transaction(func(mc *MapCommit[K, V]) {
		for e := range other.root.Each() {
			if existing, ok := mc.Get(e.key); ok {
				mc.Assoc(e.key, resolve(existing, e.value))
			} else {
				mc.Assoc(e.key, e.value)
			}
		}
	})
}

// Select returns a new Map holding only the entries for which keep
// reports true, built inside a transaction.
func (m *Map[K, V]) Select(keep func(key K, value V) bool) *Map[K, V] {
	return NewMapWithHash[K, V](m.hashFunc).Transaction(func(mc *MapCommit[K, V]) {
		for e := range m.root.Each() {
			if keep(e.key, e.value) {
				mc.Assoc(e.key, e.value)
			}
		}
	})
}

// SelectKeys returns a new Map holding only the entries whose key is in
// keys.
func (m *Map[K, V]) SelectKeys(keys ...K) *Map[K, V] {
	want := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}
	return m.Select(func(k K, _ V) bool {
		_, ok := want[k]
		return ok
	})
}

// Reject returns a new Map holding only the entries for which drop
// reports false.
func (m *Map[K, V]) Reject(drop func(key K, value V) bool) *Map[K, V] {
	return m.Select(func(k K, v V) bool { return !drop(k, v) })
}

// RejectKeys returns a new Map with the given keys removed, built inside
// a transaction.
func (m *Map[K, V]) RejectKeys(keys ...K) *Map[K, V] {
	return m.Transaction(func(mc *MapCommit[K, V]) {
		for _, k := range keys {
			mc.Dissoc(k)
		}
	})
}

// Fmap returns a new Map with every value replaced by fn(key, value),
// built inside a transaction.
func (m *Map[K, V]) Fmap(fn func(key K, value V) V) *Map[K, V] {
	return m.Transaction(func(mc *MapCommit[K, V]) {
		for e := range m.root.Each() {
			mc.Assoc(e.key, fn(e.key, e.value))
		}
	})
}

// MapValue returns a new Map with every value of m transformed by fn,
// under the same keys and hash function. It is a free function, not a
// method, because Go forbids a method from introducing the extra type
// parameter W.
func MapValue[K comparable, V, W any](m *Map[K, V], fn func(V) W) *Map[K, W] {
	return NewMapWithHash[K, W](m.hashFunc).Transaction(func(mc *MapCommit[K, W]) {
		for e := range m.root.Each() {
			mc.Assoc(e.key, fn(e.value))
		}
	})
}

// MapKey returns a new Map with every key of m transformed by fn, using
// hash to hash the new key type. A collision between two transformed keys
// is resolved by keeping the last one encountered in iteration order
// (unspecified).
func MapKey[K1 comparable, K2 comparable, V any](m *Map[K1, V], hash HashFunc[K2], fn func(K1) K2) *Map[K2, V] {
	return NewMapWithHash[K2, V](hash).Transaction(func(mc *MapCommit[K2, V]) {
		for e := range m.root.Each() {
			mc.Assoc(fn(e.key), e.value)
		}
	})
}

// CompactPtr returns a new Map with every nil value dropped and every
// remaining *W value dereferenced. The pointer constraint on V is what
// makes "compact" well-typed: Go generics can't conditionally add a
// method only for pointer instantiations of a type parameter, so this is
// a free function rather than a method on Map[K, *W].
func CompactPtr[K comparable, W any](m *Map[K, *W]) *Map[K, W] {
	return NewMapWithHash[K, W](m.hashFunc).Transaction(func(mc *MapCommit[K, W]) {
		for e := range m.root.Each() {
			if e.value != nil {
				mc.Assoc(e.key, *e.value)
			}
		}
	})
}
