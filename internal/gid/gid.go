// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package gid recovers the calling goroutine's numeric id, used to enforce
// the fiber-affinity rule on a transaction's commit handle.
package gid

import (
	"bytes"
	"runtime"
	"strconv"
)

var goroutinePrefix = []byte("goroutine ")

// Current returns the id of the calling goroutine.
//
// Go has no public API for this. The id is recovered from the header line
// of a stack trace captured for only the calling goroutine, which always
// has the form "goroutine 123 [running]:". This is the same well-known
// technique used by several goroutine-local-storage libraries; it costs one
// small stack capture per call, which is acceptable since it only runs on
// the commit fast path, not inside the trie itself.
func Current() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = bytes.TrimPrefix(buf[:n], goroutinePrefix)

	end := bytes.IndexByte(buf, ' ')
	if end < 0 {
		panic("pcol: malformed goroutine stack header")
	}

	id, err := strconv.ParseUint(string(buf[:end]), 10, 64)
	if err != nil {
		panic("pcol: could not parse goroutine id: " + err.Error())
	}
	return id
}
