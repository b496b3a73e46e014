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

// Op is an overloaded operator in a pipeline.
//
// For each stack pulled from upstream, Op selects the matching overload and
// passes on everything the overload yields for that stack. A stack for
// which no overload matches is reported and dropped.
type Op struct {
	c        *exec.Context
	name     string
	inst     *Instance
	upstream exec.Op

	op exec.Op // nil while unresolved
}

// NewOp returns the operator name dispatching through inst.
func NewOp(c *exec.Context, name string, inst *Instance, upstream exec.Op) *Op {
	return &Op{c: c, name: name, inst: inst, upstream: upstream}
}

func (o *Op) Next() *value.Stack {
	for {
		if o.op == nil {
			stk := o.upstream.Next()
			if stk == nil {
				return nil
			}
			origin, op, ok := o.inst.FindExec(o.c, stk)
			if !ok {
				o.c.AddErr(o.inst.dispatchError(o.name, "an operator", stk))
				continue
			}
			o.c.Logf("%s: dispatching [%s] to %s", o.name, Profile(stk), op.Name())
			origin.SetNext(stk)
			o.op = op
		}
		if stk := o.op.Next(); stk != nil {
			return stk
		}
		o.op = nil
	}
}

func (o *Op) Reset() {
	o.op = nil
	o.upstream.Reset()
}

func (o *Op) Name() string { return o.name }

// Pred is an overloaded predicate. Each stack is dispatched on its own.
type Pred struct {
	c    *exec.Context
	name string
	inst *Instance
}

// NewPred returns the predicate name dispatching through inst.
func NewPred(c *exec.Context, name string, inst *Instance) *Pred {
	return &Pred{c: c, name: name, inst: inst}
}

func (p *Pred) Result(stk *value.Stack) exec.PredResult {
	pred, ok := p.inst.FindPred(p.c, stk)
	if !ok {
		p.c.AddErr(p.inst.dispatchError(p.name, "a predicate", stk))
		return exec.Fail
	}
	return pred.Result(stk)
}

func (p *Pred) Reset()       {}
func (p *Pred) Name() string { return p.name }

// OpBuiltin is a builtin operator backed by an overload table.
type OpBuiltin struct {
	name  string
	table *Table
}

// NewOpBuiltin returns the operator name with the overloads of t.
func NewOpBuiltin(name string, t *Table) *OpBuiltin {
	return &OpBuiltin{name: name, table: t}
}

func (b *OpBuiltin) Name() string  { return b.name }
func (b *OpBuiltin) Table() *Table { return b.table }

func (b *OpBuiltin) BuildExec(c *exec.Context, upstream exec.Op) exec.Op {
	return NewOp(c, b.name, instantiate(c, b.name, b.table), upstream)
}

func (b *OpBuiltin) BuildPred(c *exec.Context) exec.Pred { return nil }

// CreateMerged returns a builtin of the same name whose overloads are those
// of b followed by those of t.
func (b *OpBuiltin) CreateMerged(t *Table) exec.Builtin {
	return NewOpBuiltin(b.name, Merge(b.table, t))
}

// PredBuiltin is a builtin predicate backed by an overload table. A
// negative predicate holds where its positive counterpart does not.
type PredBuiltin struct {
	name     string
	table    *Table
	positive bool
}

// NewPredBuiltin returns the predicate name with the overloads of t.
func NewPredBuiltin(name string, t *Table, positive bool) *PredBuiltin {
	return &PredBuiltin{name: name, table: t, positive: positive}
}

func (b *PredBuiltin) Name() string   { return b.name }
func (b *PredBuiltin) Table() *Table  { return b.table }
func (b *PredBuiltin) Positive() bool { return b.positive }

func (b *PredBuiltin) BuildPred(c *exec.Context) exec.Pred {
	p := NewPred(c, b.name, instantiate(c, b.name, b.table))
	if !b.positive {
		return exec.Not{Pred: p}
	}
	return p
}

// BuildExec returns an op that passes on the stacks for which the predicate
// holds.
func (b *PredBuiltin) BuildExec(c *exec.Context, upstream exec.Op) exec.Op {
	return exec.NewAssert(upstream, b.BuildPred(c))
}

// CreateMerged returns a builtin of the same name and polarity whose
// overloads are those of b followed by those of t.
func (b *PredBuiltin) CreateMerged(t *Table) exec.Builtin {
	return NewPredBuiltin(b.name, Merge(b.table, t), b.positive)
}

// A Merger is a builtin that can be extended with more overloads.
type Merger interface {
	exec.Builtin
	Table() *Table
	CreateMerged(t *Table) exec.Builtin
}

var (
	_ Merger = (*OpBuiltin)(nil)
	_ Merger = (*PredBuiltin)(nil)
)

// instantiate reports ambiguous tables unless registration order is allowed
// to decide.
func instantiate(c *exec.Context, name string, t *Table) *Instance {
	inst, err := t.Instantiate()
	if err != nil && !c.OverloadOrder {
		if c.Strict {
			panic(fmt.Sprintf("assertion failed: %s: %v", name, err))
		}
		c.AddErr(errors.Wrapf(err, name, ""))
	}
	return inst
}
