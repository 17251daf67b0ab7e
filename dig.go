// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pcol

// digger is implemented by every container (Map, Set, BidiMap) so Dig can
// walk into one without knowing its concrete key/value types.
type digger interface {
	dig(key any) (any, bool)
}

// Dig walks root through a sequence of keys, descending into nested
// containers one path element at a time, and returns the value found at
// the end of path. An empty path returns root itself.
//
// Dig returns a *DigInvalidError if it must descend further but the
// current value isn't a container, and a *KeyMissingError if any path
// element is absent.
func Dig(root any, path ...any) (any, error) {
	cur := root
	for i, key := range path {
		d, ok := cur.(digger)
		if !ok {
			return nil, &DigInvalidError{Value: cur}
		}
		v, ok := d.dig(key)
		if !ok {
			return nil, &KeyMissingError{Key: path[:i+1]}
		}
		cur = v
	}
	return cur, nil
}
