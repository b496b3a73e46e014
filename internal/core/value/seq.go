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
	"io"
	"sync/atomic"

	"dwgrep.org/go/internal/core/constant"
)

// A seqStore is the backing list of one or more sequences. While more than
// one sequence refers to it, it is immutable.
type seqStore struct {
	// refs is an upper bound of the number of sequences referring to the
	// store. Sequences that are dropped do not decrement it.
	refs  atomic.Int32
	elems []Value
}

func newStore(elems []Value) *seqStore {
	s := &seqStore{elems: elems}
	s.refs.Store(1)
	return s
}

// Seq is a sequence of values.
//
// Cloning a sequence is cheap: the clone shares the elements with the
// original until either of them is modified.
type Seq struct {
	Position
	store *seqStore
}

// NewSeq returns a sequence of elems. The sequence takes ownership of the
// slice and the values in it.
func NewSeq(elems []Value) *Seq {
	return &Seq{store: newStore(elems)}
}

// Elems returns the elements of s. Neither the slice nor the values may be
// modified; clone an element to obtain a value that can be owned elsewhere.
func (s *Seq) Elems() []Value { return s.store.elems }

// Len returns the number of elements of s.
func (s *Seq) Len() int { return len(s.store.elems) }

// Shared reports whether the elements of s may be shared with another
// sequence.
func (s *Seq) Shared() bool { return s.store.refs.Load() > 1 }

// Append adds v to the end of s. s takes ownership of v.
func (s *Seq) Append(v Value) {
	s.own()
	s.store.elems = append(s.store.elems, v)
}

// Set replaces the element at index i with v. s takes ownership of v.
func (s *Seq) Set(i int, v Value) {
	s.own()
	s.store.elems[i] = v
}

// own gives s a private copy of its store if the store may be shared.
func (s *Seq) own() {
	if !s.Shared() {
		return
	}
	elems := make([]Value, len(s.store.elems), len(s.store.elems)+1)
	for i, v := range s.store.elems {
		elems[i] = v.Clone()
	}
	s.store.refs.Add(-1)
	s.store = newStore(elems)
}

func (s *Seq) Type() Type { return TSeq }

func (s *Seq) Clone() Value {
	s.store.refs.Add(1)
	return &Seq{Position: s.Position, store: s.store}
}

// Cmp orders sequences by length, then by the types of their elements and
// finally by the elements themselves.
func (s *Seq) Cmp(w Value) CmpResult {
	that, ok := w.(*Seq)
	if !ok {
		return Fail
	}
	a, b := s.Elems(), that.Elems()
	if c := cmpOf(len(a) - len(b)); c != Equal {
		return c
	}
	for i := range a {
		if c := a[i].Type().Compare(b[i].Type()); c != 0 {
			return cmpOf(c)
		}
	}
	for i := range a {
		switch c := a[i].Cmp(b[i]); c {
		case Equal:
		case Fail:
			panic("assertion failed: incomparable elements of the same type")
		default:
			return c
		}
	}
	return Equal
}

func (s *Seq) Show(w io.Writer, brv Brevity) {
	io.WriteString(w, "[")
	for i, v := range s.Elems() {
		if i > 0 {
			io.WriteString(w, ", ")
		}
		v.Show(w, Brief)
	}
	io.WriteString(w, "]")
}

func (s *Seq) TypeConst() constant.Constant { return slotType(constant.TSeq) }
