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

package overload

import (
	"fmt"

	"dwgrep.org/go/dwgrep/errors"
	"dwgrep.org/go/internal/core/exec"
	"dwgrep.org/go/internal/core/value"
)

// The adapters below turn typed Go functions into overloads. The selector
// of an adapter is derived from its type parameters, which must be concrete
// value kinds such as *value.Str.
//
// Errors returned by the functions are reported to the evaluation context
// and the stack being processed is dropped; evaluation continues with the
// next one.

// typeOf returns the tag of kind K. It relies on Type not using its
// receiver.
func typeOf[K value.Value]() value.Type {
	var k K
	return k.Type()
}

// Op1 is an operator overload on one value. It replaces the value with the
// result. A nil result drops the stack.
type Op1[A value.Value] func(a A) (value.Value, error)

func (f Op1[A]) Selector() Selector { return MakeSelector(typeOf[A]()) }

func (f Op1[A]) BuildExec(c *exec.Context, upstream exec.Op) exec.Op {
	return &applyOp{adapter: newAdapter(c, upstream, f.Selector()),
		apply: func(vs []value.Value) (value.Value, error) {
			return f(vs[0].(A))
		}}
}

// Op2 is an operator overload on two values, b being on top.
type Op2[A, B value.Value] func(a A, b B) (value.Value, error)

func (f Op2[A, B]) Selector() Selector { return MakeSelector(typeOf[A](), typeOf[B]()) }

func (f Op2[A, B]) BuildExec(c *exec.Context, upstream exec.Op) exec.Op {
	return &applyOp{adapter: newAdapter(c, upstream, f.Selector()),
		apply: func(vs []value.Value) (value.Value, error) {
			return f(vs[0].(A), vs[1].(B))
		}}
}

// Op3 is an operator overload on three values, c being on top.
type Op3[A, B, C value.Value] func(a A, b B, c C) (value.Value, error)

func (f Op3[A, B, C]) Selector() Selector {
	return MakeSelector(typeOf[A](), typeOf[B](), typeOf[C]())
}

func (f Op3[A, B, C]) BuildExec(c *exec.Context, upstream exec.Op) exec.Op {
	return &applyOp{adapter: newAdapter(c, upstream, f.Selector()),
		apply: func(vs []value.Value) (value.Value, error) {
			return f(vs[0].(A), vs[1].(B), vs[2].(C))
		}}
}

// Yield1 is an operator overload on one value that yields a stack for each
// value produced, in order.
type Yield1[A value.Value] func(a A) (value.Producer, error)

func (f Yield1[A]) Selector() Selector { return MakeSelector(typeOf[A]()) }

func (f Yield1[A]) BuildExec(c *exec.Context, upstream exec.Op) exec.Op {
	return &yieldOp{adapter: newAdapter(c, upstream, f.Selector()),
		produce: func(vs []value.Value) (value.Producer, error) {
			return f(vs[0].(A))
		}}
}

// Yield2 is a yielding operator overload on two values, b being on top.
type Yield2[A, B value.Value] func(a A, b B) (value.Producer, error)

func (f Yield2[A, B]) Selector() Selector { return MakeSelector(typeOf[A](), typeOf[B]()) }

func (f Yield2[A, B]) BuildExec(c *exec.Context, upstream exec.Op) exec.Op {
	return &yieldOp{adapter: newAdapter(c, upstream, f.Selector()),
		produce: func(vs []value.Value) (value.Producer, error) {
			return f(vs[0].(A), vs[1].(B))
		}}
}

// Pred1 is a predicate overload on the top value. The value stays on the
// stack.
type Pred1[A value.Value] func(a A) (bool, error)

func (f Pred1[A]) Selector() Selector { return MakeSelector(typeOf[A]()) }

func (f Pred1[A]) BuildPred(c *exec.Context) exec.Pred {
	return &predAdapter{c: c, sel: f.Selector(),
		test: func(vs []value.Value) (bool, error) {
			return f(vs[0].(A))
		}}
}

// Pred2 is a predicate overload on the two top values, b being on top.
type Pred2[A, B value.Value] func(a A, b B) (bool, error)

func (f Pred2[A, B]) Selector() Selector { return MakeSelector(typeOf[A](), typeOf[B]()) }

func (f Pred2[A, B]) BuildPred(c *exec.Context) exec.Pred {
	return &predAdapter{c: c, sel: f.Selector(),
		test: func(vs []value.Value) (bool, error) {
			return f(vs[0].(A), vs[1].(B))
		}}
}

// collect takes the values selected by sel from the top of stk, deepest
// first. It pops them if pop is set and leaves them in place otherwise.
// A value of the wrong type means dispatch went wrong and panics.
func collect(stk *value.Stack, sel Selector, pop bool) []value.Value {
	n := sel.Len()
	vs := make([]value.Value, n)
	for i := n - 1; i >= 0; i-- {
		var v value.Value
		if pop {
			v = stk.Pop()
		} else {
			v = stk.Get(n - 1 - i)
		}
		if v.Type() != sel.types[i] {
			panic(fmt.Sprintf("assertion failed: found %s where [%s] expects %s",
				v.Type(), sel, sel.types[i]))
		}
		vs[i] = v
	}
	return vs
}

func report(c *exec.Context, err error) {
	c.AddErr(errors.Promote(err, ""))
}

type adapter struct {
	c        *exec.Context
	upstream exec.Op
	sel      Selector
}

func newAdapter(c *exec.Context, upstream exec.Op, sel Selector) adapter {
	return adapter{c: c, upstream: upstream, sel: sel}
}

func (a *adapter) Name() string { return "op<" + a.sel.String() + ">" }

type applyOp struct {
	adapter
	apply func(vs []value.Value) (value.Value, error)
}

func (o *applyOp) Next() *value.Stack {
	for {
		stk := o.upstream.Next()
		if stk == nil {
			return nil
		}
		v, err := o.apply(collect(stk, o.sel, true))
		if err != nil {
			report(o.c, err)
			continue
		}
		if v == nil {
			continue
		}
		stk.Push(v)
		return stk
	}
}

func (o *applyOp) Reset() { o.upstream.Reset() }

type yieldOp struct {
	adapter
	produce func(vs []value.Value) (value.Producer, error)

	stk  *value.Stack // without the consumed values
	prod value.Producer
}

func (o *yieldOp) Next() *value.Stack {
	for {
		if o.prod == nil {
			stk := o.upstream.Next()
			if stk == nil {
				return nil
			}
			prod, err := o.produce(collect(stk, o.sel, true))
			if err != nil {
				report(o.c, err)
				continue
			}
			if prod == nil {
				continue
			}
			o.stk, o.prod = stk, prod
		}
		if v, ok := o.prod.Next(); ok {
			stk := o.stk.Clone()
			stk.Push(v)
			return stk
		}
		o.stk, o.prod = nil, nil
	}
}

func (o *yieldOp) Reset() {
	o.stk, o.prod = nil, nil
	o.upstream.Reset()
}

type predAdapter struct {
	c    *exec.Context
	sel  Selector
	test func(vs []value.Value) (bool, error)
}

func (p *predAdapter) Result(stk *value.Stack) exec.PredResult {
	ok, err := p.test(collect(stk, p.sel, false))
	if err != nil {
		report(p.c, err)
		return exec.Fail
	}
	return exec.ResultOf(ok)
}

func (p *predAdapter) Reset()       {}
func (p *predAdapter) Name() string { return "pred<" + p.sel.String() + ">" }
