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

package cache

import (
	"fmt"
	"testing"

	"github.com/go-quicktest/qt"

	"dwgrep.org/go/internal/core/graph"
	"dwgrep.org/go/internal/core/graph/memgraph"
)

// counting wraps a tree and counts calls.
type counting struct {
	graph.Tree
	units, firstChild int
	failAt            graph.Offset
}

func (c *counting) Units() ([]graph.Offset, error) {
	c.units++
	return c.Tree.Units()
}

func (c *counting) FirstChild(off graph.Offset) (graph.Offset, bool, error) {
	c.firstChild++
	if off == c.failAt {
		return graph.NoOffset, false, fmt.Errorf("corrupt entry")
	}
	return c.Tree.FirstChild(off)
}

// R has children C1 and C2; C1 has a child G.
const unitYAML = `
units:
- offset: 0xb      # R
  tag: 0x11
  children:
  - offset: 0x20   # C1
    tag: 0x13
    children:
    - offset: 0x28 # G
      tag: 0xd
  - offset: 0x40   # C2
    tag: 0x24
- offset: 0x80     # U2
  tag: 0x11
  children:
  - offset: 0x90
    tag: 0x24
`

func newCounting(t *testing.T) *counting {
	g, err := memgraph.ParseYAML([]byte(unitYAML))
	qt.Assert(t, qt.IsNil(err))
	return &counting{Tree: g, failAt: graph.NoOffset}
}

func TestParent(t *testing.T) {
	tree := newCounting(t)
	c := NewParent(tree)
	c.Strict = true

	find := func(off graph.Offset) graph.Offset {
		t.Helper()
		p, err := c.Find(off)
		qt.Assert(t, qt.IsNil(err))
		return p
	}

	qt.Check(t, qt.Equals(find(0x28), graph.Offset(0x20)))
	populated := tree.firstChild
	qt.Check(t, qt.Equals(populated, 4))

	qt.Check(t, qt.Equals(find(0x20), graph.Offset(0xb)))
	qt.Check(t, qt.Equals(find(0x40), graph.Offset(0xb)))
	qt.Check(t, qt.Equals(find(0xb), graph.NoOffset))
	qt.Check(t, qt.Equals(find(0x28), graph.Offset(0x20)))
	qt.Check(t, qt.Equals(tree.firstChild, populated), qt.Commentf("unit walked more than once"))

	qt.Check(t, qt.Equals(find(0x90), graph.Offset(0x80)))
	qt.Check(t, qt.Equals(tree.firstChild, populated+2))
	qt.Check(t, qt.HasLen(c.units, 2))
}

func TestParentError(t *testing.T) {
	tree := newCounting(t)
	tree.failAt = 0x20
	c := NewParent(tree)

	_, err := c.Find(0x40)
	qt.Check(t, qt.ErrorMatches(err, "cannot walk unit 0xb: corrupt entry"))
	qt.Check(t, qt.HasLen(c.units, 0))

	_, err = c.Find(0x999)
	qt.Check(t, qt.ErrorMatches(err, "cannot find unit of 0x999: no node at offset 0x999"))
}

// unsorted lists a child at a lower offset than its parent.
type unsorted struct{ graph.Tree }

func (unsorted) UnitOf(off graph.Offset) (graph.Offset, error) { return 0x50, nil }

func (unsorted) FirstChild(off graph.Offset) (graph.Offset, bool, error) {
	if off == 0x50 {
		return 0x10, true, nil
	}
	return graph.NoOffset, false, nil
}

func (unsorted) NextSibling(off graph.Offset) (graph.Offset, bool, error) {
	return graph.NoOffset, false, nil
}

func TestParentUnsorted(t *testing.T) {
	c := NewParent(unsorted{})
	p, err := c.Find(0x10)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(p, graph.Offset(0x50)))

	c = NewParent(unsorted{})
	c.Strict = true
	qt.Check(t, qt.PanicMatches(func() {
		c.Find(0x10)
	}, `assertion failed: unit 0x50 is not in offset order`))
	qt.Check(t, qt.HasLen(c.units, 0))
}

func TestParentMissingNode(t *testing.T) {
	c := NewParent(unsorted{})
	qt.Check(t, qt.PanicMatches(func() {
		c.Find(0x30)
	}, `assertion failed: node 0x30 not in unit 0x50`))
}

func TestRoot(t *testing.T) {
	tree := newCounting(t)
	c := NewRoot(tree)

	for _, tc := range []struct {
		off  graph.Offset
		want bool
	}{
		{0xb, true},
		{0x80, true},
		{0x20, false},
		{0x90, false},
		{0x12345, false},
	} {
		got, err := c.IsRoot(tc.off)
		qt.Assert(t, qt.IsNil(err))
		qt.Check(t, qt.Equals(got, tc.want), qt.Commentf("offset %v", tc.off))
	}
	qt.Check(t, qt.Equals(tree.units, 1))
}

type failingUnits struct {
	graph.Tree
	fail bool
}

func (f *failingUnits) Units() ([]graph.Offset, error) {
	if f.fail {
		return nil, fmt.Errorf("no .debug_info")
	}
	return []graph.Offset{0xb}, nil
}

func TestRootError(t *testing.T) {
	tree := &failingUnits{fail: true}
	c := NewRoot(tree)
	_, err := c.IsRoot(0xb)
	qt.Check(t, qt.ErrorMatches(err, "cannot enumerate units: no .debug_info"))

	tree.fail = false
	ok, err := c.IsRoot(0xb)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.IsTrue(ok))
}
