// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pcol

import "reflect"

// Equaler is an opt-in marker: a value type that wants custom equality
// (instead of == or reference identity) implements it, and every
// container's Equal comparison and Assoc no-op check will call it instead
// of falling back to reflection. Same compares trie identity only and
// never calls it.
type Equaler[V any] interface {
	Equal(other V) bool
}

// valueEqualFunc picks the cheapest correct comparison for V, computed
// once per container instantiation rather than per comparison:
//   - V implementing Equaler[V] uses that method.
//   - types reflect reports as actually comparable (not just a Kind that's
//     comparable in the common case, since a struct or array can embed an
//     uncomparable field) use ==.
//   - func/map/slice kinds fall back to reference identity via reflect.
//   - anything else (e.g. a struct or array holding an uncomparable field)
//     can't be compared at all without risking a runtime panic, so it's
//     always unequal.
func valueEqualFunc[V any]() func(a, b V) bool {
	var zero V
	if _, ok := any(zero).(Equaler[V]); ok {
		return func(a, b V) bool {
			ea, aok := any(a).(Equaler[V])
			if !aok {
				return false
			}
			return ea.Equal(b)
		}
	}

	typ := reflect.TypeOf(&zero).Elem()
	if typ.Comparable() {
		return func(a, b V) bool {
			return any(a) == any(b)
		}
	}

	switch typ.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice:
		return sameReference[V]
	default:
		return func(V, V) bool { return false }
	}
}

// sameReference compares two values of a reference-kind type (func, map,
// slice) by the identity of the memory they point at, since == is not
// defined on those kinds.
func sameReference[V any](a, b V) bool {
	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Kind() == reflect.Invalid || vb.Kind() == reflect.Invalid {
		return va.Kind() == vb.Kind()
	}
	return va.Pointer() == vb.Pointer()
}
