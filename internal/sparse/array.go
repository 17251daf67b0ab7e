// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package sparse implements the packed, bitmap-indexed array that backs
// every trie node's items and children.
package sparse

import (
	"github.com/gopcol/pcol/internal/bitset"
	"github.com/gopcol/pcol/internal/errs"
)

// growthSchedule is the capacity progression used by the in-place mutation
// path. Any monotone schedule with amortized linear growth satisfies the
// contract; this one favors small nodes since most tries stay shallow.
var growthSchedule = [...]int{2, 4, 6, 8, 12, 18, 24, 28, 32}

// Array is a logical 0..31 array backed by a densely-packed slice and a
// 32-bit occupancy bitmap. The zero value is a valid empty array.
type Array[T any] struct {
	Bitmap bitset.Set32
	Items  []T
}

func checkRange(i uint) {
	if i > 31 {
		panic(&errs.OutOfRange{Index: i})
	}
}

// Size returns the number of occupied slots.
func (a *Array[T]) Size() int {
	return len(a.Items)
}

// Get returns the element at logical index i and whether it is occupied.
func (a *Array[T]) Get(i uint) (value T, ok bool) {
	checkRange(i)
	if a.Bitmap.Test(i) {
		return a.Items[a.Bitmap.Rank0(i)], true
	}
	return value, false
}

// With returns a new Array with index i holding value, leaving the
// receiver untouched. The returned buffer is freshly allocated and exactly
// sized, so the receiver's backing array is never aliased by the result.
func (a *Array[T]) With(i uint, value T) *Array[T] {
	checkRange(i)
	rank := a.Bitmap.Rank0(i)

	if a.Bitmap.Test(i) {
		items := make([]T, len(a.Items))
		copy(items, a.Items)
		items[rank] = value
		return &Array[T]{Bitmap: a.Bitmap, Items: items}
	}

	items := make([]T, len(a.Items)+1)
	copy(items, a.Items[:rank])
	items[rank] = value
	copy(items[rank+1:], a.Items[rank:])
	return &Array[T]{Bitmap: a.Bitmap.Set(i), Items: items}
}

// Without returns a new Array with index i cleared, leaving the receiver
// untouched.
func (a *Array[T]) Without(i uint) *Array[T] {
	checkRange(i)
	if !a.Bitmap.Test(i) {
		return &Array[T]{Bitmap: a.Bitmap, Items: append([]T(nil), a.Items...)}
	}

	rank := a.Bitmap.Rank0(i)
	items := make([]T, len(a.Items)-1)
	copy(items, a.Items[:rank])
	copy(items[rank:], a.Items[rank+1:])
	return &Array[T]{Bitmap: a.Bitmap.Clear(i), Items: items}
}

// WithMut sets index i to value in place, growing the backing buffer via
// the growth schedule if insertion would exceed its current capacity.
func (a *Array[T]) WithMut(i uint, value T) {
	checkRange(i)
	rank := a.Bitmap.Rank0(i)

	if a.Bitmap.Test(i) {
		a.Items[rank] = value
		return
	}

	a.insertMut(rank, value)
	a.Bitmap = a.Bitmap.Set(i)
}

// WithoutMut clears index i in place.
func (a *Array[T]) WithoutMut(i uint) (removed T, ok bool) {
	checkRange(i)
	if !a.Bitmap.Test(i) {
		return removed, false
	}

	rank := a.Bitmap.Rank0(i)
	removed = a.Items[rank]
	a.deleteMut(rank)
	a.Bitmap = a.Bitmap.Clear(i)
	return removed, true
}

// Clone returns a shallow copy of a; elements are copied by assignment.
func (a *Array[T]) Clone() Array[T] {
	return Array[T]{Bitmap: a.Bitmap, Items: append([]T(nil), a.Items...)}
}

func scheduledCap(n int) int {
	for _, c := range growthSchedule {
		if n <= c {
			return c
		}
	}
	return n
}

func (a *Array[T]) insertMut(at int, value T) {
	n := len(a.Items)
	if n < cap(a.Items) {
		a.Items = a.Items[:n+1]
	} else {
		grown := make([]T, n, scheduledCap(n+1))
		copy(grown, a.Items)
		a.Items = grown[:n+1]
	}
	copy(a.Items[at+1:], a.Items[at:n])
	a.Items[at] = value
}

func (a *Array[T]) deleteMut(at int) {
	var zero T
	n := len(a.Items) - 1
	copy(a.Items[at:], a.Items[at+1:])
	a.Items[n] = zero
	a.Items = a.Items[:n]
}
