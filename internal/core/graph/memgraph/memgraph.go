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

// Package memgraph provides an in-memory graph.Graph, mostly for tests.
//
// Graphs can be described in YAML:
//
//	units:
//	- offset: 0xb
//	  tag: 0x11
//	  attrs:
//	  - {name: 0x3, form: 0x8, string: a.c}
//	  children:
//	  - offset: 0x2d
//	    tag: 0x24
//	    attrs:
//	    - {name: 0x49, form: 0x13, ref: 0x40}
package memgraph

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"dwgrep.org/go/internal/core/graph"
)

// A Node is a node of a graph under construction.
type Node struct {
	Offset   graph.Offset `yaml:"offset"`
	Tag      uint32       `yaml:"tag"`
	Attrs    []Attr       `yaml:"attrs"`
	Children []*Node      `yaml:"children"`
}

// An Attr describes an attribute. Exactly one of the value fields should
// be set; an attribute with none is a flag that is present.
type Attr struct {
	Name uint32 `yaml:"name"`
	Form uint32 `yaml:"form"`

	String *string       `yaml:"string,omitempty"`
	Int    *int64        `yaml:"int,omitempty"`
	Uint   *uint64       `yaml:"uint,omitempty"`
	Ref    *graph.Offset `yaml:"ref,omitempty"`
	Block  []byte        `yaml:"block,omitempty"`
}

func (a *Attr) value() any {
	switch {
	case a.String != nil:
		return *a.String
	case a.Int != nil:
		return *a.Int
	case a.Uint != nil:
		return *a.Uint
	case a.Ref != nil:
		return *a.Ref
	case a.Block != nil:
		return a.Block
	}
	return true
}

type entry struct {
	node    *Node
	unit    graph.Offset
	child   graph.Offset
	sibling graph.Offset
}

// Graph is an immutable in-memory graph.
type Graph struct {
	units []graph.Offset
	nodes map[graph.Offset]*entry
}

var _ graph.Graph = (*Graph)(nil)

// New builds a graph whose compilation units are rooted at units.
func New(units ...*Node) (*Graph, error) {
	g := &Graph{nodes: map[graph.Offset]*entry{}}
	for _, u := range units {
		g.units = append(g.units, u.Offset)
		if err := g.add(u, u.Offset); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// ParseYAML builds a graph from a YAML description.
func ParseYAML(b []byte) (*Graph, error) {
	var doc struct {
		Units []*Node `yaml:"units"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("invalid graph description: %w", err)
	}
	return New(doc.Units...)
}

// MustParseYAML is like ParseYAML but panics on error.
func MustParseYAML(s string) *Graph {
	g, err := ParseYAML([]byte(s))
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Graph) add(n *Node, unit graph.Offset) error {
	if _, ok := g.nodes[n.Offset]; ok {
		return fmt.Errorf("duplicate node at offset %v", n.Offset)
	}
	e := &entry{node: n, unit: unit, child: graph.NoOffset, sibling: graph.NoOffset}
	g.nodes[n.Offset] = e
	for i, c := range n.Children {
		if i == 0 {
			e.child = c.Offset
		} else {
			g.nodes[n.Children[i-1].Offset].sibling = c.Offset
		}
		if err := g.add(c, unit); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) lookup(off graph.Offset) (*entry, error) {
	e, ok := g.nodes[off]
	if !ok {
		return nil, fmt.Errorf("no node at offset %v", off)
	}
	return e, nil
}

// Offsets returns the offsets of all nodes in ascending order.
func (g *Graph) Offsets() []graph.Offset {
	a := make([]graph.Offset, 0, len(g.nodes))
	for off := range g.nodes {
		a = append(a, off)
	}
	slices.Sort(a)
	return a
}

func (g *Graph) Units() ([]graph.Offset, error) {
	return slices.Clone(g.units), nil
}

func (g *Graph) UnitOf(off graph.Offset) (graph.Offset, error) {
	e, err := g.lookup(off)
	if err != nil {
		return graph.NoOffset, err
	}
	return e.unit, nil
}

func (g *Graph) FirstChild(off graph.Offset) (graph.Offset, bool, error) {
	e, err := g.lookup(off)
	if err != nil {
		return graph.NoOffset, false, err
	}
	return e.child, e.child != graph.NoOffset, nil
}

func (g *Graph) NextSibling(off graph.Offset) (graph.Offset, bool, error) {
	e, err := g.lookup(off)
	if err != nil {
		return graph.NoOffset, false, err
	}
	return e.sibling, e.sibling != graph.NoOffset, nil
}

func (g *Graph) Tag(off graph.Offset) (uint32, error) {
	e, err := g.lookup(off)
	if err != nil {
		return 0, err
	}
	return e.node.Tag, nil
}

func (g *Graph) Attributes(off graph.Offset) ([]graph.Attribute, error) {
	e, err := g.lookup(off)
	if err != nil {
		return nil, err
	}
	a := make([]graph.Attribute, 0, len(e.node.Attrs))
	for i := range e.node.Attrs {
		at := &e.node.Attrs[i]
		a = append(a, graph.Attribute{Name: at.Name, Form: at.Form, Val: at.value()})
	}
	return a, nil
}
