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

// Package dwgraph presents DWARF debugging information read by debug/dwarf
// as a graph.
package dwgraph

import (
	"debug/dwarf"
	"fmt"

	"dwgrep.org/go/dwgrep/errors"
	"dwgrep.org/go/internal/core/graph"
)

type node struct {
	entry   *dwarf.Entry
	unit    graph.Offset
	child   graph.Offset
	sibling graph.Offset
}

// Graph is the graph of the units in the .debug_info section of a file.
type Graph struct {
	units []graph.Offset
	nodes map[graph.Offset]*node
}

var _ graph.Graph = (*Graph)(nil)

// New reads all entries of d.
func New(d *dwarf.Data) (*Graph, error) {
	g := &Graph{nodes: map[graph.Offset]*node{}}

	// open holds, for each level of nesting, the node whose children are
	// being read and the last child read so far.
	type level struct{ parent, last graph.Offset }
	open := []level{{graph.NoOffset, graph.NoOffset}}
	unit := graph.NoOffset

	r := d.Reader()
	for {
		e, err := r.Next()
		if err != nil {
			return nil, errors.Wrapf(err, "", "cannot read debug information")
		}
		if e == nil {
			break
		}
		if e.Tag == 0 {
			if len(open) > 1 {
				open = open[:len(open)-1]
			}
			continue
		}

		off := graph.Offset(e.Offset)
		n := &node{entry: e, child: graph.NoOffset, sibling: graph.NoOffset}
		top := &open[len(open)-1]
		switch {
		case len(open) == 1:
			unit = off
			g.units = append(g.units, off)
		case top.last != graph.NoOffset:
			g.nodes[top.last].sibling = off
		default:
			g.nodes[top.parent].child = off
		}
		top.last = off
		n.unit = unit
		g.nodes[off] = n

		if e.Children {
			open = append(open, level{off, graph.NoOffset})
		}
	}
	return g, nil
}

func (g *Graph) lookup(off graph.Offset) (*node, error) {
	n, ok := g.nodes[off]
	if !ok {
		return nil, fmt.Errorf("no entry at offset %v", off)
	}
	return n, nil
}

func (g *Graph) Units() ([]graph.Offset, error) {
	return append([]graph.Offset(nil), g.units...), nil
}

func (g *Graph) UnitOf(off graph.Offset) (graph.Offset, error) {
	n, err := g.lookup(off)
	if err != nil {
		return graph.NoOffset, err
	}
	return n.unit, nil
}

func (g *Graph) FirstChild(off graph.Offset) (graph.Offset, bool, error) {
	n, err := g.lookup(off)
	if err != nil {
		return graph.NoOffset, false, err
	}
	return n.child, n.child != graph.NoOffset, nil
}

func (g *Graph) NextSibling(off graph.Offset) (graph.Offset, bool, error) {
	n, err := g.lookup(off)
	if err != nil {
		return graph.NoOffset, false, err
	}
	return n.sibling, n.sibling != graph.NoOffset, nil
}

func (g *Graph) Tag(off graph.Offset) (uint32, error) {
	n, err := g.lookup(off)
	if err != nil {
		return 0, err
	}
	return uint32(n.entry.Tag), nil
}

func (g *Graph) Attributes(off graph.Offset) ([]graph.Attribute, error) {
	n, err := g.lookup(off)
	if err != nil {
		return nil, err
	}
	attrs := make([]graph.Attribute, len(n.entry.Field))
	for i, f := range n.entry.Field {
		attrs[i] = attribute(f)
	}
	return attrs, nil
}

// attribute converts a field. debug/dwarf decodes the form away, so the
// form reported is the canonical one for the class of the value.
func attribute(f dwarf.Field) graph.Attribute {
	a := graph.Attribute{Name: uint32(f.Attr), Val: f.Val}
	switch v := f.Val.(type) {
	case dwarf.Offset:
		a.Val = graph.Offset(v)
	case int64, uint64, bool, string, []byte:
	default:
		a.Val = fmt.Sprint(v)
	}
	a.Form = classForm(f.Class, a.Val)
	return a
}

const (
	formAddr        = 0x01
	formBlock       = 0x09
	formData8       = 0x07
	formString      = 0x08
	formFlag        = 0x0c
	formSdata       = 0x0d
	formUdata       = 0x0f
	formRef4        = 0x13
	formSecOffset   = 0x17
	formExprloc     = 0x18
	formFlagPresent = 0x19
	formRefSig8     = 0x20
	formGNURefAlt   = 0x1f20
	formGNUStrpAlt  = 0x1f21
)

func classForm(c dwarf.Class, v any) uint32 {
	switch c {
	case dwarf.ClassAddress:
		return formAddr
	case dwarf.ClassBlock:
		return formBlock
	case dwarf.ClassConstant:
		switch v.(type) {
		case int64:
			return formSdata
		case []byte:
			return formBlock
		}
		return formUdata
	case dwarf.ClassExprLoc:
		return formExprloc
	case dwarf.ClassFlag:
		if b, ok := v.(bool); ok && b {
			return formFlagPresent
		}
		return formFlag
	case dwarf.ClassReference:
		return formRef4
	case dwarf.ClassReferenceAlt:
		return formGNURefAlt
	case dwarf.ClassReferenceSig:
		return formRefSig8
	case dwarf.ClassString:
		return formString
	case dwarf.ClassStringAlt:
		return formGNUStrpAlt
	case dwarf.ClassLinePtr, dwarf.ClassLocListPtr, dwarf.ClassMacPtr,
		dwarf.ClassRangeListPtr, dwarf.ClassAddrPtr, dwarf.ClassLocList,
		dwarf.ClassRngList, dwarf.ClassRngListsPtr, dwarf.ClassStrOffsetsPtr:
		return formSecOffset
	}
	return formData8
}
