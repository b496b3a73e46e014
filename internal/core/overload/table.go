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
	"dwgrep.org/go/dwgrep/errors"
	"dwgrep.org/go/internal/core/exec"
	"dwgrep.org/go/internal/core/value"
)

type entry struct {
	sel     Selector
	builtin exec.Builtin
}

// A Table collects the overloads of an operator.
//
// Registration only appends. Conflicting registrations are detected when the
// table is instantiated.
type Table struct {
	entries []entry
}

// AddOverload registers b for stacks matching sel.
func (t *Table) AddOverload(sel Selector, b exec.Builtin) {
	t.entries = append(t.entries, entry{sel, b})
}

// An OpOverload is an overload that acts as an operator. The adapters Op1,
// Yield1 and their kin implement it.
type OpOverload interface {
	Selector() Selector
	BuildExec(c *exec.Context, upstream exec.Op) exec.Op
}

// A PredOverload is an overload that acts as a predicate. The adapters
// Pred1 and Pred2 implement it.
type PredOverload interface {
	Selector() Selector
	BuildPred(c *exec.Context) exec.Pred
}

// AddOp registers an operator overload under its own selector.
func (t *Table) AddOp(o OpOverload) {
	t.AddOverload(o.Selector(), opOnly{o})
}

// AddPred registers a predicate overload under its own selector.
func (t *Table) AddPred(o PredOverload) {
	t.AddOverload(o.Selector(), predOnly{o})
}

type opOnly struct{ OpOverload }

func (b opOnly) Name() string                        { return "op<" + b.Selector().String() + ">" }
func (b opOnly) BuildPred(c *exec.Context) exec.Pred { return nil }

type predOnly struct{ PredOverload }

func (b predOnly) Name() string { return "pred<" + b.Selector().String() + ">" }
func (b predOnly) BuildExec(c *exec.Context, upstream exec.Op) exec.Op {
	return nil
}

// Len returns the number of registered overloads.
func (t *Table) Len() int { return len(t.entries) }

// Selectors returns the selectors of t in registration order.
func (t *Table) Selectors() []Selector {
	sels := make([]Selector, len(t.entries))
	for i, e := range t.entries {
		sels[i] = e.sel
	}
	return sels
}

// Merge returns a table with the overloads of a followed by those of b.
// Neither a nor b is modified. Duplicates are kept.
func Merge(a, b *Table) *Table {
	t := &Table{entries: make([]entry, 0, len(a.entries)+len(b.entries))}
	t.entries = append(t.entries, a.entries...)
	t.entries = append(t.entries, b.entries...)
	return t
}

// Instantiate returns an instance for dispatching on the overloads currently
// registered in t. Later registrations do not affect the instance.
//
// If two overloads share a selector, Instantiate reports an error. The
// instance is usable nonetheless: the earlier registration wins.
func (t *Table) Instantiate() (*Instance, errors.Error) {
	n := len(t.entries)
	inst := &Instance{
		sels:     make([]Selector, n),
		builtins: make([]exec.Builtin, n),
		execs:    make([]pipeline, n),
		preds:    make([]exec.Pred, n),
	}
	var errs errors.Error
	first := make(map[Selector]int, n)
	for i, e := range t.entries {
		inst.sels[i] = e.sel
		inst.builtins[i] = e.builtin
		if j, ok := first[e.sel]; ok {
			errs = errors.Append(errs, errors.Newf("",
				"ambiguous overload: %s and %s both registered for [%s]",
				t.entries[j].builtin.Name(), e.builtin.Name(), e.sel))
			continue
		}
		first[e.sel] = i
	}
	return inst, errs
}

// find returns the index of the longest selector that matches stk, or -1.
// Of equally long selectors, which can only be duplicates, the first one
// registered wins.
func (inst *Instance) find(stk *value.Stack) int {
	best := -1
	for i, sel := range inst.sels {
		if sel.Matches(stk) && (best < 0 || sel.Len() > inst.sels[best].Len()) {
			best = i
		}
	}
	return best
}
