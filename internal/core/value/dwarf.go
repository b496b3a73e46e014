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

package value

import (
	"fmt"
	"io"
	"log/slog"

	"dwgrep.org/go/dwgrep/errors"
	"dwgrep.org/go/internal/core/cache"
	"dwgrep.org/go/internal/core/constant"
	"dwgrep.org/go/internal/core/graph"
	"dwgrep.org/go/internal/dwdebug"
)

// Dwarf is a handle to the debug information a query runs against. All
// nodes and attributes obtained from one graph share its handle and with it
// the navigation caches.
type Dwarf struct {
	Name  string
	Graph graph.Graph

	parents *cache.Parent
	roots   *cache.Root
}

var initDebug = dwdebug.Init

// NewDwarf returns a handle for g. Name identifies the graph to the user,
// typically by the file it was read from.
func NewDwarf(name string, g graph.Graph) *Dwarf {
	// Invalid flags leave the defaults in place; the graph is still usable.
	if err := initDebug(); err != nil {
		slog.Warn("ignoring invalid DWGREP_DEBUG", "dwarf", name, "err", err)
	}
	p := cache.NewParent(g)
	p.Strict = dwdebug.Flags.Strict
	if dwdebug.Flags.LogEval > 0 {
		p.Logger = slog.Default().With("dwarf", name)
	}
	return &Dwarf{
		Name:    name,
		Graph:   g,
		parents: p,
		roots:   cache.NewRoot(g),
	}
}

// Parent returns the offset of the parent of the node at off, or
// graph.NoOffset for the root of a unit.
func (d *Dwarf) Parent(off graph.Offset) (graph.Offset, error) {
	return d.parents.Find(off)
}

// IsRoot reports whether off is the root of a unit.
func (d *Dwarf) IsRoot(off graph.Offset) (bool, error) {
	return d.roots.IsRoot(off)
}

// DIE is a debugging information entry, a node of a Dwarf graph.
type DIE struct {
	Position
	dw  *Dwarf
	off graph.Offset
}

// NewDIE returns the node of dw at off.
func NewDIE(dw *Dwarf, off graph.Offset) *DIE {
	return &DIE{dw: dw, off: off}
}

func (v *DIE) Dwarf() *Dwarf        { return v.dw }
func (v *DIE) Offset() graph.Offset { return v.off }
func (v *DIE) Type() Type           { return TDIE }

func (v *DIE) Clone() Value {
	w := *v
	return &w
}

func (v *DIE) Cmp(w Value) CmpResult {
	that, ok := w.(*DIE)
	if !ok {
		return Fail
	}
	return cmpOf(compareOffsets(v.off, that.off))
}

func compareOffsets(a, b graph.Offset) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Show writes the offset and tag of the node. The full form lists the
// attributes on the following lines.
func (v *DIE) Show(w io.Writer, brv Brevity) {
	fmt.Fprintf(w, "[%x]\t", uint64(v.off))
	tag, err := v.dw.Graph.Tag(v.off)
	if err != nil {
		fmt.Fprintf(w, "<%v>", err)
		return
	}
	c := constant.New(int64(tag), constant.DWTag)
	c.Show(w, Brief)
	if brv == Brief {
		return
	}
	attrs, err := v.dw.Graph.Attributes(v.off)
	if err != nil {
		fmt.Fprintf(w, "\n\t<%v>", err)
		return
	}
	for _, at := range attrs {
		io.WriteString(w, "\n\t")
		NewAttr(v.dw, v.off, at).Show(w, Brief)
	}
}

func (v *DIE) TypeConst() constant.Constant { return slotType(constant.TNode) }

// Attr is an attribute of a node.
type Attr struct {
	Position
	dw  *Dwarf
	die graph.Offset
	at  graph.Attribute
}

// NewAttr returns the attribute at of the node of dw at die.
func NewAttr(dw *Dwarf, die graph.Offset, at graph.Attribute) *Attr {
	return &Attr{dw: dw, die: die, at: at}
}

func (v *Attr) Dwarf() *Dwarf              { return v.dw }
func (v *Attr) DIE() graph.Offset          { return v.die }
func (v *Attr) Attribute() graph.Attribute { return v.at }
func (v *Attr) Type() Type                 { return TAttr }

// Name returns the attribute name as a DW_AT constant.
func (v *Attr) Name() constant.Constant {
	return constant.New(int64(v.at.Name), constant.DWAttr)
}

// Form returns the attribute form as a DW_FORM constant.
func (v *Attr) Form() constant.Constant {
	return constant.New(int64(v.at.Form), constant.DWForm)
}

func (v *Attr) Clone() Value {
	w := *v
	return &w
}

func (v *Attr) Cmp(w Value) CmpResult {
	that, ok := w.(*Attr)
	if !ok {
		return Fail
	}
	if c := compareOffsets(v.die, that.die); c != 0 {
		return cmpOf(c)
	}
	return cmpOf(int(v.at.Name) - int(that.at.Name))
}

// Show writes the name, form and value of the attribute.
func (v *Attr) Show(w io.Writer, brv Brevity) {
	name, form := v.Name(), v.Form()
	name.Show(w, Brief)
	io.WriteString(w, " (")
	form.Show(w, Brief)
	io.WriteString(w, ")\t")
	switch x := v.at.Val.(type) {
	case graph.Offset:
		fmt.Fprintf(w, "[%x]", uint64(x))
	case []byte:
		fmt.Fprintf(w, "% x", x)
	default:
		fmt.Fprint(w, x)
	}
}

func (v *Attr) TypeConst() constant.Constant { return slotType(constant.TAttr) }

// Value decodes the value of the attribute. References decode to the node
// they refer to and blocks to a sequence of bytes.
func (v *Attr) Value() (Value, error) {
	switch x := v.at.Val.(type) {
	case graph.Offset:
		return NewDIE(v.dw, x), nil
	case string:
		return NewStr(x), nil
	case bool:
		var i int64
		if x {
			i = 1
		}
		return NewCst(constant.New(i, constant.Bool)), nil
	case int64:
		return NewCst(constant.New(x, constant.Dec)), nil
	case uint64:
		dom := constant.Dec
		if v.at.Form == formAddr {
			dom = constant.Address
		}
		return NewCst(constant.NewUint64(x, dom)), nil
	case []byte:
		elems := make([]Value, len(x))
		for i, b := range x {
			elems[i] = NewCst(constant.New(int64(b), constant.Hex))
			elems[i].SetPos(i)
		}
		return NewSeq(elems), nil
	}
	return nil, errors.Newf("value", "cannot decode %s value of type %T", v.Name(), v.at.Val)
}

// formAddr is DW_FORM_addr.
const formAddr = 0x01
