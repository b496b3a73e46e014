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
	"cmp"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"dwgrep.org/go/internal/core/constant"
)

// An Expr is a compiled sub-expression captured by a closure. Its string
// form identifies it.
type Expr interface {
	String() string
}

var lastID atomic.Uint64

func nextID() uint64 { return lastID.Add(1) }

// A Scope is a lexical scope: the names bound by a block.
type Scope struct {
	id     uint64
	Parent *Scope
	Names  []string
}

// NewScope returns a scope nested in parent that binds names.
func NewScope(parent *Scope, names ...string) *Scope {
	return &Scope{id: nextID(), Parent: parent, Names: names}
}

// Index returns the position of name in s, or -1.
func (s *Scope) Index(name string) int {
	for i, n := range s.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// A Frame holds the values bound to the names of a scope during one
// activation.
type Frame struct {
	id     uint64
	Parent *Frame
	Values []Value
}

// NewFrame returns an activation frame with n unbound slots.
func NewFrame(parent *Frame, n int) *Frame {
	return &Frame{id: nextID(), Parent: parent, Values: make([]Value, n)}
}

// Bind sets slot i of f to v. f takes ownership of v.
func (f *Frame) Bind(i int, v Value) { f.Values[i] = v }

// Closure is a function value.
type Closure struct {
	Position
	expr  Expr
	dw    *Dwarf
	scope *Scope
	frame *Frame
}

// NewClosure returns a closure over e, evaluated against dw, in the given
// scope and activation frame.
func NewClosure(e Expr, dw *Dwarf, s *Scope, f *Frame) *Closure {
	return &Closure{expr: e, dw: dw, scope: s, frame: f}
}

func (c *Closure) Expr() Expr                   { return c.expr }
func (c *Closure) Dwarf() *Dwarf                { return c.dw }
func (c *Closure) Scope() *Scope                { return c.scope }
func (c *Closure) Frame() *Frame                { return c.frame }
func (c *Closure) Type() Type                   { return TClosure }
func (c *Closure) TypeConst() constant.Constant { return slotType(constant.TClosure) }

// Clone shares the captured scope and frame.
func (c *Closure) Clone() Value {
	d := *c
	return &d
}

func (c *Closure) Cmp(w Value) CmpResult {
	that, ok := w.(*Closure)
	if !ok {
		return Fail
	}
	if r := cmpOf(strings.Compare(c.expr.String(), that.expr.String())); r != Equal {
		return r
	}
	if r := cmpOf(cmp.Compare(idOf(c.scope), idOf(that.scope))); r != Equal {
		return r
	}
	return cmpOf(cmp.Compare(frameID(c.frame), frameID(that.frame)))
}

func idOf(s *Scope) uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

func frameID(f *Frame) uint64 {
	if f == nil {
		return 0
	}
	return f.id
}

func (c *Closure) Show(w io.Writer, brv Brevity) {
	fmt.Fprintf(w, "closure(%s)", c.expr)
}
