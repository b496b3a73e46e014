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

package exec

import (
	"fmt"

	"dwgrep.org/go/internal/core/value"
)

// Origin is the source of a sub-pipeline. It yields the single stack last
// handed to it with SetNext.
type Origin struct {
	stk *value.Stack
}

// NewOrigin returns an empty origin.
func NewOrigin() *Origin { return &Origin{} }

// SetNext makes stk the next stack yielded. The previous one must have been
// consumed.
func (o *Origin) SetNext(stk *value.Stack) {
	if o.stk != nil {
		panic("assertion failed: origin fed twice")
	}
	o.stk = stk
}

func (o *Origin) Next() *value.Stack {
	stk := o.stk
	o.stk = nil
	return stk
}

func (o *Origin) Reset()       { o.stk = nil }
func (o *Origin) Name() string { return "origin" }

// Source yields a fixed list of stacks.
type Source struct {
	stks []*value.Stack
	i    int
}

// NewSource returns a source of clones of stks.
func NewSource(stks ...*value.Stack) *Source {
	return &Source{stks: stks}
}

func (s *Source) Next() *value.Stack {
	if s.i >= len(s.stks) {
		return nil
	}
	s.i++
	return s.stks[s.i-1].Clone()
}

func (s *Source) Reset()       { s.i = 0 }
func (s *Source) Name() string { return "source" }

// Const pushes a copy of a value onto every stack.
type Const struct {
	upstream Op
	v        value.Value
}

// NewConst returns an op that pushes v onto each stack of upstream.
func NewConst(upstream Op, v value.Value) *Const {
	return &Const{upstream: upstream, v: v}
}

func (o *Const) Next() *value.Stack {
	stk := o.upstream.Next()
	if stk == nil {
		return nil
	}
	stk.Push(o.v.Clone())
	return stk
}

func (o *Const) Reset()       { o.upstream.Reset() }
func (o *Const) Name() string { return fmt.Sprintf("const<%s>", value.String(o.v, value.Brief)) }

// Assert passes on the stacks for which a predicate holds.
type Assert struct {
	upstream Op
	pred     Pred
}

// NewAssert returns an op that filters upstream by p.
func NewAssert(upstream Op, p Pred) *Assert {
	return &Assert{upstream: upstream, pred: p}
}

func (o *Assert) Next() *value.Stack {
	for {
		stk := o.upstream.Next()
		if stk == nil {
			return nil
		}
		if o.pred.Result(stk) == Yes {
			return stk
		}
	}
}

func (o *Assert) Reset() {
	o.pred.Reset()
	o.upstream.Reset()
}

func (o *Assert) Name() string { return "assert<" + o.pred.Name() + ">" }

// Not inverts a predicate.
type Not struct {
	Pred
}

func (p Not) Result(stk *value.Stack) PredResult { return p.Pred.Result(stk).Not() }
func (p Not) Name() string                       { return "not<" + p.Pred.Name() + ">" }

// Collect drains op and returns all stacks it yields.
func Collect(op Op) []*value.Stack {
	var a []*value.Stack
	for stk := op.Next(); stk != nil; stk = op.Next() {
		a = append(a, stk)
	}
	return a
}
