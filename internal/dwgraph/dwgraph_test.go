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

package dwgraph

import (
	"debug/dwarf"
	"testing"

	"github.com/go-quicktest/qt"

	"dwgrep.org/go/internal/core/graph"
	"dwgrep.org/go/internal/core/value"
)

// A DWARF 4 unit at offset 0xb with a base type at 0x10 and a variable of
// that type at 0x16.
var (
	abbrev = []byte{
		1, 0x11, 1, 0x03, 0x08, 0, 0, // compile_unit: name string
		2, 0x24, 0, 0x03, 0x08, 0x0b, 0x0b, 0, 0, // base_type: name string, byte_size data1
		3, 0x34, 0, 0x03, 0x08, 0x49, 0x13, 0, 0, // variable: name string, type ref4
		0,
	}
	info = []byte{
		0x1a, 0, 0, 0, // unit_length
		4, 0, // version
		0, 0, 0, 0, // debug_abbrev_offset
		8,                   // address_size
		1, 'a', '.', 'c', 0, // 0xb
		2, 'i', 'n', 't', 0, 4, // 0x10
		3, 'x', 0, 0x10, 0, 0, 0, // 0x16
		0,
	}
)

func newGraph(t *testing.T) *Graph {
	d, err := dwarf.New(abbrev, nil, nil, info, nil, nil, nil, nil)
	qt.Assert(t, qt.IsNil(err))
	g, err := New(d)
	qt.Assert(t, qt.IsNil(err))
	return g
}

func TestNavigation(t *testing.T) {
	g := newGraph(t)

	units, err := g.Units()
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.DeepEquals(units, []graph.Offset{0xb}))

	kids, err := graph.Children(g, 0xb)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.DeepEquals(kids, []graph.Offset{0x10, 0x16}))

	_, ok, err := g.FirstChild(0x10)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.IsFalse(ok))

	_, ok, err = g.NextSibling(0xb)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.IsFalse(ok))

	unit, err := g.UnitOf(0x16)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(unit, graph.Offset(0xb)))

	tag, err := g.Tag(0x10)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(dwarf.Tag(tag), dwarf.TagBaseType))

	_, err = g.Tag(0x11)
	qt.Check(t, qt.ErrorMatches(err, "no entry at offset 0x11"))
}

func TestAttributes(t *testing.T) {
	g := newGraph(t)
	attrs, err := g.Attributes(0x16)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.DeepEquals(attrs, []graph.Attribute{
		{Name: uint32(dwarf.AttrName), Form: formString, Val: "x"},
		{Name: uint32(dwarf.AttrType), Form: formRef4, Val: graph.Offset(0x10)},
	}))
}

func TestValues(t *testing.T) {
	dw := value.NewDwarf("a.out", newGraph(t))

	qt.Check(t, qt.Equals(value.String(value.NewDIE(dw, 0x10), value.Full),
		"[10]\tbase_type\n\tname (string)\tint\n\tbyte_size (sdata)\t4"))

	p, err := dw.Parent(0x16)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(p, graph.Offset(0xb)))

	root, err := dw.IsRoot(0x16)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.IsFalse(root))
}

func TestClassForm(t *testing.T) {
	testCases := []struct {
		class dwarf.Class
		val   any
		want  uint32
	}{
		{dwarf.ClassAddress, uint64(0x1000), formAddr},
		{dwarf.ClassConstant, int64(-1), formSdata},
		{dwarf.ClassConstant, uint64(1), formUdata},
		{dwarf.ClassFlag, true, formFlagPresent},
		{dwarf.ClassFlag, false, formFlag},
		{dwarf.ClassExprLoc, []byte{0x91}, formExprloc},
		{dwarf.ClassLinePtr, int64(0), formSecOffset},
		{dwarf.ClassUnknown, nil, formData8},
	}
	for _, tc := range testCases {
		qt.Check(t, qt.Equals(classForm(tc.class, tc.val), tc.want), qt.Commentf("%v", tc.class))
	}
}
