// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pcol

import (
	"hash/maphash"

	"github.com/gopcol/pcol/internal/node"
)

// Hasher is implemented by any type that knows how to compute its own
// trie hash. A container constructed with NewMap/NewSet/NewBidiMap
// requires its key type to satisfy it; a container constructed with the
// WithHash variants supplies an external HashFunc instead.
type Hasher interface {
	Hash() uint64
}

// HashableKey is the constraint satisfied by key types usable with the
// single-type-parameter constructors.
type HashableKey interface {
	comparable
	Hasher
}

// HashFunc computes a 64-bit trie hash for a key of type K. Supplied
// explicitly to the WithHash family of constructors for key types that
// don't implement Hasher themselves.
type HashFunc[K any] func(K) uint64

var seed = maphash.MakeSeed()

// HashString returns a stable 64-bit hash of s for the lifetime of the
// process. Not stable across runs or versions.
func HashString(s string) uint64 {
	return maphash.String(seed, s)
}

// HashBytes returns a stable 64-bit hash of b for the lifetime of the
// process. Not stable across runs or versions.
func HashBytes(b []byte) uint64 {
	return maphash.Bytes(seed, b)
}

// HashInt returns a 64-bit hash of an int key, mixed through the same
// finalizer used for path rehashing so small integers don't cluster in
// the trie's low bits.
func HashInt(i int) uint64 {
	return mix64(uint64(i))
}

// HashInt64 returns a 64-bit hash of an int64 key.
func HashInt64(i int64) uint64 {
	return mix64(uint64(i))
}

// mix64 is the SplitMix64 finalizer: a public-domain bit mixer used both
// to spread small/sequential integer hashes across the trie's path bits
// and, via rehash, to synthesize extra path bits once a hash's 64 bits
// are exhausted.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// rehash derives a fresh 64 bits of path material for round r (r >= 1)
// once the primary hash's bits have all been consumed by MaxDepth trie
// levels. It combines the original hash with the round number so
// successive rounds diverge instead of repeating the same path.
func rehash(h uint64, round int) uint64 {
	return mix64(h ^ (0x9e3779b97f4a7c15 * uint64(round)))
}

// pathCursor lazily produces the 5-bit path window for each trie depth,
// synthesizing additional bits via rehash once depth reaches node.MaxDepth.
type pathCursor struct {
	hash uint64
}

// at returns the path window at the given trie depth.
func (c pathCursor) at(depth int) uint64 {
	round := depth / node.MaxDepth
	within := depth % node.MaxDepth

	h := c.hash
	if round > 0 {
		h = rehash(c.hash, round)
	}
	return h >> (uint(within) * node.Stride)
}
