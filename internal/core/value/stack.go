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
	"slices"
)

// A Stack is the unit of data flowing through a pipeline: the values
// computed so far and the activation frame they are computed in.
type Stack struct {
	values []Value // top is last
	frame  *Frame
}

// NewStack returns an empty stack in frame f.
func NewStack(f *Frame) *Stack {
	return &Stack{frame: f}
}

func (s *Stack) Frame() *Frame     { return s.frame }
func (s *Stack) SetFrame(f *Frame) { s.frame = f }

// Len returns the number of values on s.
func (s *Stack) Len() int { return len(s.values) }

// Push puts v on top of s. s takes ownership of v.
func (s *Stack) Push(v Value) {
	s.values = append(s.values, v)
}

// Pop removes the top value from s and returns it.
func (s *Stack) Pop() Value {
	n := len(s.values) - 1
	if n < 0 {
		panic("assertion failed: pop from empty stack")
	}
	v := s.values[n]
	s.values[n] = nil
	s.values = s.values[:n]
	return v
}

// Top returns the top value of s without removing it.
func (s *Stack) Top() Value { return s.Get(0) }

// Get returns the value at the given depth, where the top of the stack has
// depth 0.
func (s *Stack) Get(depth int) Value {
	i := len(s.values) - 1 - depth
	if i < 0 || depth < 0 {
		panic(fmt.Sprintf("assertion failed: stack depth %d out of range [0, %d)", depth, len(s.values)))
	}
	return s.values[i]
}

// Clone returns a deep copy of s. The frame is shared.
func (s *Stack) Clone() *Stack {
	t := &Stack{values: make([]Value, len(s.values)), frame: s.frame}
	for i, v := range s.values {
		t.values[i] = v.Clone()
	}
	return t
}

// Profile returns the types of at most n topmost values, deepest first.
func (s *Stack) Profile(n int) []Type {
	n = min(n, len(s.values))
	p := make([]Type, 0, n)
	for _, v := range s.values[len(s.values)-n:] {
		p = append(p, v.Type())
	}
	return p
}

// Values returns the values of s, bottom first. The slice may not be
// modified.
func (s *Stack) Values() []Value { return slices.Clip(s.values) }

// Show writes one line per value, top first.
func (s *Stack) Show(w io.Writer, brv Brevity) {
	for i := len(s.values) - 1; i >= 0; i-- {
		s.values[i].Show(w, brv)
		io.WriteString(w, "\n")
	}
}
