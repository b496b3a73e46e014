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

// Package value defines the runtime values of the evaluator and the stack
// they live on.
package value

import (
	"io"
	"strings"

	"dwgrep.org/go/internal/core/constant"
)

// Brevity selects the display form of a value.
type Brevity = constant.Brevity

const (
	Full  = constant.Full
	Brief = constant.Brief
)

// A CmpResult is the outcome of comparing two values.
type CmpResult int8

const (
	Less CmpResult = iota - 1
	Equal
	Greater

	// Fail means the values are not comparable.
	Fail
)

func (r CmpResult) String() string {
	switch r {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	}
	return "fail"
}

func cmpOf(c int) CmpResult {
	switch {
	case c < 0:
		return Less
	case c > 0:
		return Greater
	}
	return Equal
}

// A Value is a runtime value.
//
// A value on a stack is owned by its slot. Values are never shared between
// two slots: a value that needs to live in two places is cloned.
type Value interface {
	// Type reports the kind of the value.
	Type() Type

	// Pos is the position of the value in the stream that produced it.
	Pos() int
	SetPos(int)

	// Clone returns an independent copy of the value.
	Clone() Value

	// Cmp compares the value with another one of the same kind. It returns
	// Fail for values of other kinds.
	Cmp(Value) CmpResult

	// Show writes the value to w.
	Show(w io.Writer, brv Brevity)

	// TypeConst returns a constant that describes the kind of the value.
	TypeConst() constant.Constant
}

// Position implements the Pos and SetPos methods of Value. It is meant to
// be embedded.
type Position struct {
	pos int
}

func (p *Position) Pos() int       { return p.pos }
func (p *Position) SetPos(pos int) { p.pos = pos }

// Compare compares two values of possibly different kinds. Values of
// different kinds are ordered by their type tags.
func Compare(a, b Value) CmpResult {
	if c := a.Type().Compare(b.Type()); c != 0 {
		return cmpOf(c)
	}
	return a.Cmp(b)
}

// String returns the display form of v.
func String(v Value, brv Brevity) string {
	var b strings.Builder
	v.Show(&b, brv)
	return b.String()
}

func slotType(id int64) constant.Constant {
	return constant.New(id, constant.SlotType)
}
