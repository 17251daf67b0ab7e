// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package node

import "fmt"

// Stats summarizes the shape of a trie rooted at some node: how many
// items it holds, how many intermediate nodes it took to hold them, and
// how deep the deepest chain runs. Used only for diagnostics (the
// pcolbench CLI's verbose mode), never on the read/write fast path.
type Stats struct {
	Items    int
	Children int
	Nodes    int
	MaxDepth int
}

// Stats walks n and its descendants, tallying shape statistics. depth is
// the caller's current trie depth (0 for a container's root).
func (n *Node[T]) Stats(depth int) Stats {
	s := Stats{Nodes: 1, MaxDepth: depth}
	s.Items += n.Items.Size()
	s.Items += len(n.Bucket)

	for _, child := range n.Children.Items {
		s.Children++
		childStats := child.Stats(depth + 1)
		s.Items += childStats.Items
		s.Children += childStats.Children
		s.Nodes += childStats.Nodes
		if childStats.MaxDepth > s.MaxDepth {
			s.MaxDepth = childStats.MaxDepth
		}
	}

	return s
}

// String renders a one-line summary suitable for a benchmark's verbose
// log output.
func (s Stats) String() string {
	return fmt.Sprintf("items=%d children=%d nodes=%d maxDepth=%d", s.Items, s.Children, s.Nodes, s.MaxDepth)
}
