// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package pcol provides persistent, unordered, hash-indexed associative
// containers for Go.
//
// pcol offers three container variants, all backed by the same
// bitmap-indexed hash array mapped trie:
//
//   - Map:     a persistent key/value association.
//   - Set:     a persistent collection of distinct elements.
//   - BidiMap: a persistent bijective association, queryable from either
//     side.
//
// Every mutating method returns a new container and leaves the receiver
// untouched; structural sharing keeps this cheap. For batches of edits
// where allocating a fresh node per write would be wasteful, Transaction
// opens a scoped, goroutine-confined view that mutates its own nodes in
// place and folds the result back into an ordinary persistent container
// on return.
//
// All three variants support copy-on-write persistence and are safe for
// concurrent read-only use; concurrent mutation is only safe through a
// single goroutine's Transaction at a time.
package pcol
