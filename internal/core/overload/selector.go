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

// Package overload dispatches operators on the types of the values they
// are applied to.
//
// An overloaded operator, such as add, is one builtin backed by a Table of
// overloads. Each overload is registered under a Selector naming the exact
// value types it expects on top of the stack. When the operator is
// evaluated, the types found on the stack pick the overload to run. There is
// no coercion: a selector matches only stacks whose top values have exactly
// the selector's types.
package overload

import (
	"fmt"
	"strings"

	"dwgrep.org/go/internal/core/value"
)

// MaxArity is the largest number of values an overload can select on.
const MaxArity = 4

// A Selector is the list of value types an overload expects on top of the
// stack, deepest first. Selectors are comparable.
type Selector struct {
	n     uint8
	types [MaxArity]value.Type
}

// MakeSelector returns the selector for types, the deepest first. It panics
// if more than MaxArity types are given.
func MakeSelector(types ...value.Type) Selector {
	if len(types) > MaxArity {
		panic(fmt.Sprintf("assertion failed: selector of arity %d exceeds %d", len(types), MaxArity))
	}
	s := Selector{n: uint8(len(types))}
	copy(s.types[:], types)
	return s
}

// Profile returns the selector that describes the top of stk, as far as
// selectors reach.
func Profile(stk *value.Stack) Selector {
	return MakeSelector(stk.Profile(MaxArity)...)
}

// Len returns the number of types of s.
func (s Selector) Len() int { return int(s.n) }

// Types returns the types of s, the deepest first.
func (s Selector) Types() []value.Type {
	return append([]value.Type(nil), s.types[:s.n]...)
}

// Matches reports whether the top of stk has exactly the types of s.
func (s Selector) Matches(stk *value.Stack) bool {
	n := int(s.n)
	if stk.Len() < n {
		return false
	}
	for i, t := range s.types[:n] {
		if stk.Get(n-1-i).Type() != t {
			return false
		}
	}
	return true
}

func (s Selector) String() string {
	var b strings.Builder
	for i, t := range s.types[:s.n] {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	return b.String()
}
