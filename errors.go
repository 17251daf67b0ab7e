// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pcol

import "github.com/gopcol/pcol/internal/errs"

// Error kinds returned or panicked by this package. They are type aliases
// over internal/errs so the trie core and internal/sparse can raise them
// without importing this package.
type (
	// KeyMissingError is panicked by MustGet and returned by operations
	// that fail because a key is not present.
	KeyMissingError = errs.KeyMissing

	// OutOfRangeError is panicked when a sparse array index falls
	// outside 0..31. Only reachable through a corrupted node and
	// surfaced here for completeness.
	OutOfRangeError = errs.OutOfRange

	// ResolvedError is panicked by any commit operation invoked after
	// its transaction has already resolved.
	ResolvedError = errs.Resolved

	// ReadonlyError is panicked by any commit operation, read or write,
	// invoked from a goroutine other than the one that opened the
	// transaction.
	ReadonlyError = errs.Readonly

	// DigInvalidError is returned by Dig when the path tries to
	// traverse into a value that isn't a container.
	DigInvalidError = errs.DigInvalid
)
