// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package node implements the trie core shared by every container in this
// module: a node holding two SparseArrays — items and children — plus the
// author-id tags that authorize in-place mutation during a transaction.
//
// A node knows nothing about keys, hashes or equality; that knowledge lives
// entirely in the Fetch/Add/Delete probe a caller supplies. This is what
// lets the same node type power Map, Set and BidiMap.
package node

import (
	"iter"

	"github.com/gopcol/pcol/internal/author"
	"github.com/gopcol/pcol/internal/sparse"
)

const (
	// Stride is the number of path bits consumed per trie level.
	Stride = 5

	// MaxDepth is the number of 5-bit windows in a 64-bit path,
	// ceil(64/5).
	MaxDepth = 13

	// MaxChainDepth bounds how many levels of case-C promotion Add will
	// recurse through before giving up on the sparse-array representation
	// and falling back to a linear collision bucket. Two genuinely
	// different hashes agreeing on every one of this many 5-bit windows,
	// across more than one rehash round (see the root package's
	// pathCursor), is astronomically unlikely; two equal hashes diverge
	// in none of them, so without this cap Add would recurse forever.
	MaxChainDepth = 2 * MaxDepth

	indexMask = 1<<Stride - 1
)

// FetchProbe describes a read-only lookup.
type FetchProbe[T any] interface {
	// Path returns the probe's path window at the given trie depth.
	Path(depth int) uint64
	// Match reports whether stored is the value being looked up.
	Match(stored T) bool
}

// AddProbe describes an insert-or-replace.
type AddProbe[T any] interface {
	// Path returns the new value's path window at the given trie depth.
	Path(depth int) uint64
	// PathOf returns the path window, at the given trie depth, of some
	// other value already stored in the trie. Used only when an existing
	// item must be pushed one level deeper to make room for a promoted
	// child (see Node.Add, case C).
	PathOf(stored T, depth int) uint64
	// Match reports whether stored is the same logical slot as the value
	// being inserted (e.g. same map key).
	Match(stored T) bool
	// Replace reports whether the new value should overwrite stored.
	Replace(stored T) bool
	// Value is the value to store.
	Value() T
	// Author is the id authorizing in-place mutation for this probe.
	Author() author.ID
}

// DeleteProbe describes a removal.
type DeleteProbe[T any] interface {
	Path(depth int) uint64
	Match(stored T) bool
	Author() author.ID
}

// Node is a trie node: two sparse arrays, items and children, each tagged
// with the author id currently authorized to mutate it in place.
//
// Bucket is non-nil only for a node at the bottom of a case-C chain that
// hit MaxChainDepth: instead of one more single-item child, colliding
// values are kept as a flat list scanned with probe.Match. A bucket node
// never also holds Items or Children. WriterItems doubles as the bucket's
// write-authorization tag.
type Node[T any] struct {
	Items          sparse.Array[T]
	Children       sparse.Array[*Node[T]]
	Bucket         []T
	WriterItems    author.ID
	WriterChildren author.ID
}

// New returns an empty node immutable to everyone.
func New[T any]() *Node[T] {
	return &Node[T]{}
}

// NewAuthored returns an empty node whose items and children are both
// already authorized for author a, so its first write can always happen
// in place.
func NewAuthored[T any](a author.ID) *Node[T] {
	return &Node[T]{WriterItems: a, WriterChildren: a}
}

// IsEmpty reports whether n holds no items, children or bucketed values.
func (n *Node[T]) IsEmpty() bool {
	return n.Items.Size() == 0 && n.Children.Size() == 0 && len(n.Bucket) == 0
}

// Fetch looks up probe starting at trie depth depth.
func (n *Node[T]) Fetch(depth int, probe FetchProbe[T]) (T, bool) {
	if n.Bucket != nil {
		for _, stored := range n.Bucket {
			if probe.Match(stored) {
				return stored, true
			}
		}
		var zero T
		return zero, false
	}

	idx := uint(probe.Path(depth)) & indexMask

	if stored, ok := n.Items.Get(idx); ok {
		if probe.Match(stored) {
			return stored, true
		}
		var zero T
		return zero, false
	}

	if child, ok := n.Children.Get(idx); ok {
		return child.Fetch(depth+1, probe)
	}

	var zero T
	return zero, false
}

// Add inserts or replaces probe's value starting at trie depth depth. It
// returns the (possibly identical, possibly new) node to install in the
// caller's place, and whether a brand new item was added (as opposed to an
// existing one being replaced or left alone).
func (n *Node[T]) Add(depth int, probe AddProbe[T]) (*Node[T], bool) {
	if n.Bucket != nil {
		return n.addBucket(probe)
	}

	idx := uint(probe.Path(depth)) & indexMask
	a := probe.Author()

	if stored, ok := n.Items.Get(idx); ok {
		if probe.Match(stored) {
			if !probe.Replace(stored) {
				return n, false
			}
			return n.writeItem(idx, probe.Value(), a), false
		}

		// Case C: promote. The existing value and the new one share this
		// slot's window; push the existing value one level deeper into a
		// fresh child and recurse to place the new value. If their paths
		// collide again at the next level, the recursive Add call
		// triggers another promotion, building a chain until the windows
		// diverge.
		//
		// Past MaxChainDepth, divergence never came: treat the two as a
		// genuine hash collision and fall back to a flat bucket instead
		// of recursing again, so a repeated or malicious collision can't
		// blow the stack.
		if depth+1 >= MaxChainDepth {
			bucket := &Node[T]{Bucket: []T{stored, probe.Value()}, WriterItems: a, WriterChildren: a}
			return n.promote(idx, bucket, a), true
		}

		child := NewAuthored[T](a)
		existingIdx := uint(probe.PathOf(stored, depth+1)) & indexMask
		child.Items.WithMut(existingIdx, stored)
		newChild, _ := child.Add(depth+1, probe)

		return n.promote(idx, newChild, a), true
	}

	if child, ok := n.Children.Get(idx); ok {
		newChild, inserted := child.Add(depth+1, probe)
		if newChild == child {
			return n, inserted
		}
		return n.writeChild(idx, newChild, a), inserted
	}

	return n.writeItem(idx, probe.Value(), a), true
}

// addBucket handles insert-or-replace against a node whose collisions
// could not be separated by any path window (Bucket != nil): a linear
// scan replaces the write-authorization dispatch that writeItem/promote
// otherwise provide.
func (n *Node[T]) addBucket(probe AddProbe[T]) (*Node[T], bool) {
	a := probe.Author()
	inPlace := a != author.None && n.WriterItems == a

	for i, stored := range n.Bucket {
		if !probe.Match(stored) {
			continue
		}
		if !probe.Replace(stored) {
			return n, false
		}
		if inPlace {
			n.Bucket[i] = probe.Value()
			return n, false
		}
		bucket := append([]T(nil), n.Bucket...)
		bucket[i] = probe.Value()
		return &Node[T]{Bucket: bucket, WriterItems: a, WriterChildren: a}, false
	}

	if inPlace {
		n.Bucket = append(n.Bucket, probe.Value())
		return n, true
	}
	bucket := append(append([]T(nil), n.Bucket...), probe.Value())
	return &Node[T]{Bucket: bucket, WriterItems: a, WriterChildren: a}, true
}

// Delete removes probe's target starting at trie depth depth. It returns
// the node to install in the caller's place and whether anything was
// removed.
func (n *Node[T]) Delete(depth int, probe DeleteProbe[T]) (*Node[T], bool) {
	if n.Bucket != nil {
		return n.deleteBucket(probe)
	}

	idx := uint(probe.Path(depth)) & indexMask
	a := probe.Author()

	if stored, ok := n.Items.Get(idx); ok {
		if !probe.Match(stored) {
			return n, false
		}
		return n.clearItem(idx, a), true
	}

	if child, ok := n.Children.Get(idx); ok {
		newChild, deleted := child.Delete(depth+1, probe)
		if !deleted {
			return n, false
		}
		if newChild.IsEmpty() {
			return n.clearChild(idx, a), true
		}
		if newChild == child {
			return n, true
		}
		return n.writeChild(idx, newChild, a), true
	}

	return n, false
}

// deleteBucket handles removal from a node whose collisions could not be
// separated by any path window (Bucket != nil).
func (n *Node[T]) deleteBucket(probe DeleteProbe[T]) (*Node[T], bool) {
	a := probe.Author()
	inPlace := a != author.None && n.WriterItems == a

	for i, stored := range n.Bucket {
		if !probe.Match(stored) {
			continue
		}
		if inPlace {
			n.Bucket = append(n.Bucket[:i], n.Bucket[i+1:]...)
			return n, true
		}
		bucket := make([]T, 0, len(n.Bucket)-1)
		bucket = append(bucket, n.Bucket[:i]...)
		bucket = append(bucket, n.Bucket[i+1:]...)
		return &Node[T]{Bucket: bucket, WriterItems: a, WriterChildren: a}, true
	}

	return n, false
}

// Each walks every stored item depth-first via an explicit stack, sized to
// the trie's depth bound. Order is unspecified and may vary across
// versions.
func (n *Node[T]) Each() iter.Seq[T] {
	return func(yield func(T) bool) {
		stack := make([]*Node[T], 0, MaxDepth)
		stack = append(stack, n)

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			for _, item := range cur.Items.Items {
				if !yield(item) {
					return
				}
			}
			for _, item := range cur.Bucket {
				if !yield(item) {
					return
				}
			}
			for _, child := range cur.Children.Items {
				stack = append(stack, child)
			}
		}
	}
}

// write-authorization helpers. Each one implements the rule: if the
// caller's author currently owns the array being touched, mutate it in
// place and return the same node; otherwise copy the array and tag the
// copy with the caller's author, sharing the untouched array with the
// original node.

func (n *Node[T]) writeItem(idx uint, value T, a author.ID) *Node[T] {
	if a != author.None && n.WriterItems == a {
		n.Items.WithMut(idx, value)
		return n
	}
	items := n.Items.With(idx, value)
	return &Node[T]{
		Items:          *items,
		Children:       n.Children,
		WriterItems:    a,
		WriterChildren: n.WriterChildren,
	}
}

func (n *Node[T]) clearItem(idx uint, a author.ID) *Node[T] {
	if a != author.None && n.WriterItems == a {
		n.Items.WithoutMut(idx)
		return n
	}
	items := n.Items.Without(idx)
	return &Node[T]{
		Items:          *items,
		Children:       n.Children,
		WriterItems:    a,
		WriterChildren: n.WriterChildren,
	}
}

func (n *Node[T]) writeChild(idx uint, child *Node[T], a author.ID) *Node[T] {
	if a != author.None && n.WriterChildren == a {
		n.Children.WithMut(idx, child)
		return n
	}
	children := n.Children.With(idx, child)
	return &Node[T]{
		Items:          n.Items,
		Children:       *children,
		WriterItems:    n.WriterItems,
		WriterChildren: a,
	}
}

func (n *Node[T]) clearChild(idx uint, a author.ID) *Node[T] {
	if a != author.None && n.WriterChildren == a {
		n.Children.WithoutMut(idx)
		return n
	}
	children := n.Children.Without(idx)
	return &Node[T]{
		Items:          n.Items,
		Children:       *children,
		WriterItems:    n.WriterItems,
		WriterChildren: a,
	}
}

// promote clears items[idx] and installs child at children[idx] as a
// single step, authorizing each array independently so a single promotion
// allocates at most one new node instead of two.
func (n *Node[T]) promote(idx uint, child *Node[T], a author.ID) *Node[T] {
	itemsInPlace := a != author.None && n.WriterItems == a
	childrenInPlace := a != author.None && n.WriterChildren == a

	var items sparse.Array[T]
	if itemsInPlace {
		n.Items.WithoutMut(idx)
		items = n.Items
	} else {
		items = *n.Items.Without(idx)
	}

	var children sparse.Array[*Node[T]]
	if childrenInPlace {
		n.Children.WithMut(idx, child)
		children = n.Children
	} else {
		children = *n.Children.With(idx, child)
	}

	if itemsInPlace && childrenInPlace {
		return n
	}
	return &Node[T]{
		Items:          items,
		Children:       children,
		WriterItems:    a,
		WriterChildren: a,
	}
}
