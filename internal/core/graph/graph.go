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

// Package graph defines the read-only view of a debug-information tree that
// the evaluator works on.
//
// Nodes are identified by their offset. The graph is immutable for as long
// as any value or cache refers to it.
package graph

import "fmt"

// An Offset identifies a node of the graph.
type Offset uint64

// NoOffset is returned where there is no node, such as the parent of a
// compilation unit root.
const NoOffset Offset = ^Offset(0)

func (o Offset) String() string {
	if o == NoOffset {
		return "none"
	}
	return fmt.Sprintf("%#x", uint64(o))
}

// Tree is the navigation needed to walk a graph.
type Tree interface {
	// Units returns the root nodes of all compilation units, in order.
	Units() ([]Offset, error)

	// UnitOf returns the root node of the compilation unit containing off.
	UnitOf(off Offset) (Offset, error)

	// FirstChild returns the first child of off, if it has one.
	FirstChild(off Offset) (Offset, bool, error)

	// NextSibling returns the node following off at the same level, if any.
	NextSibling(off Offset) (Offset, bool, error)
}

// An Attribute is a decoded attribute of a node.
//
// Val holds one of int64, uint64, bool, string, []byte or, for references
// to other nodes, Offset.
type Attribute struct {
	Name uint32
	Form uint32
	Val  any
}

// Graph is a Tree that can also describe its nodes.
type Graph interface {
	Tree

	// Tag returns the tag of off.
	Tag(off Offset) (uint32, error)

	// Attributes returns the attributes of off in the order they are
	// stored.
	Attributes(off Offset) ([]Attribute, error)
}

// Children returns the children of off.
func Children(t Tree, off Offset) ([]Offset, error) {
	var a []Offset
	c, ok, err := t.FirstChild(off)
	for ; ok && err == nil; c, ok, err = t.NextSibling(c) {
		a = append(a, c)
	}
	return a, err
}
