// Copyright 2026 The Dwgrep Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cache memoizes navigation queries over an immutable graph.
//
// Graphs only link nodes downwards, from a parent to its first child and
// from a node to its next sibling. Finding the parent of a node, or whether
// a node is the root of a compilation unit, would require a walk from the
// top for every query. The caches here do that walk once per unit and
// answer subsequent queries from memory. Nothing is ever evicted: the graph
// must not change for as long as a cache refers to it.
package cache

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"dwgrep.org/go/dwgrep/errors"
	"dwgrep.org/go/internal/core/graph"
)

// A link records the parent of a node.
type link struct {
	off    graph.Offset
	parent graph.Offset
}

func cmpLink(a, b link) int { return cmp.Compare(a.off, b.off) }

// Parent answers parent queries for the nodes of a graph.
type Parent struct {
	tree graph.Tree

	// Strict enables verification of unit tables as they are built.
	Strict bool

	// Logger, if set, receives a debug record for every unit populated.
	Logger *slog.Logger

	mu    sync.Mutex
	units map[graph.Offset][]link
}

// NewParent returns a parent cache for t.
func NewParent(t graph.Tree) *Parent {
	return &Parent{tree: t, units: map[graph.Offset][]link{}}
}

// Find returns the offset of the parent of off, or graph.NoOffset if off is
// the root of its compilation unit.
//
// The first query for a node of some unit walks the whole unit.
func (c *Parent) Find(off graph.Offset) (graph.Offset, error) {
	root, err := c.tree.UnitOf(off)
	if err != nil {
		return graph.NoOffset, errors.Wrapf(err, "parent", "cannot find unit of %v", off)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	links, ok := c.units[root]
	if !ok {
		links, err = c.populate(root)
		if err != nil {
			return graph.NoOffset, errors.Wrapf(err, "parent", "cannot walk unit %v", root)
		}
		c.units[root] = links
	}

	i, found := slices.BinarySearchFunc(links, link{off: off}, cmpLink)
	if !found {
		panic(fmt.Sprintf("assertion failed: node %v not in unit %v", off, root))
	}
	return links[i].parent, nil
}

// populate walks the unit rooted at root in pre-order and returns its
// links sorted by offset.
func (c *Parent) populate(root graph.Offset) ([]link, error) {
	var links []link
	work := []link{{off: root, parent: graph.NoOffset}}
	var kids []graph.Offset
	for len(work) > 0 {
		l := work[len(work)-1]
		work = work[:len(work)-1]
		links = append(links, l)

		kids = kids[:0]
		k, ok, err := c.tree.FirstChild(l.off)
		for ; ok && err == nil; k, ok, err = c.tree.NextSibling(k) {
			kids = append(kids, k)
		}
		if err != nil {
			return nil, err
		}
		// Push in reverse so that the first child is visited next.
		for i := len(kids) - 1; i >= 0; i-- {
			work = append(work, link{off: kids[i], parent: l.off})
		}
	}

	// Pre-order is offset order for well-formed debug information.
	if !slices.IsSortedFunc(links, cmpLink) {
		if c.Strict {
			panic(fmt.Sprintf("assertion failed: unit %v is not in offset order", root))
		}
		slices.SortFunc(links, cmpLink)
	}
	if c.Strict {
		for i := 1; i < len(links); i++ {
			if links[i-1].off == links[i].off {
				panic(fmt.Sprintf("assertion failed: node %v visited twice in unit %v", links[i].off, root))
			}
		}
	}
	if c.Logger != nil {
		c.Logger.Debug("populated parent cache", "unit", root, "nodes", len(links))
	}
	return links, nil
}

// Root answers whether a node is the root of a compilation unit.
type Root struct {
	tree graph.Tree

	mu    sync.Mutex
	roots map[graph.Offset]bool
}

// NewRoot returns a root cache for t.
func NewRoot(t graph.Tree) *Root {
	return &Root{tree: t}
}

// IsRoot reports whether off is the root node of a compilation unit. The
// first call enumerates all units of the graph. A failed enumeration is not
// remembered.
func (c *Root) IsRoot(off graph.Offset) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.roots == nil {
		units, err := c.tree.Units()
		if err != nil {
			return false, errors.Wrapf(err, "?root", "cannot enumerate units")
		}
		c.roots = make(map[graph.Offset]bool, len(units))
		for _, u := range units {
			c.roots[u] = true
		}
	}
	return c.roots[off], nil
}
