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

package builtins

import (
	"dwgrep.org/go/internal/core/exec"
	"dwgrep.org/go/internal/core/value"
)

// compareBuiltin compares the two topmost values. It is not overloaded:
// any two values of the same kind can be compared.
type compareBuiltin struct {
	name  string
	holds func(r value.CmpResult) bool
}

func (b *compareBuiltin) Name() string { return b.name }

func (b *compareBuiltin) BuildPred(c *exec.Context) exec.Pred {
	return &comparePred{c: c, b: b}
}

func (b *compareBuiltin) BuildExec(c *exec.Context, upstream exec.Op) exec.Op {
	return exec.NewAssert(upstream, b.BuildPred(c))
}

type comparePred struct {
	c *exec.Context
	b *compareBuiltin
}

func (p *comparePred) Result(stk *value.Stack) exec.PredResult {
	if stk.Len() < 2 {
		p.c.AddErrf(p.b.name, "needs two values, got %d", stk.Len())
		return exec.Fail
	}
	a, b := stk.Get(1), stk.Get(0)
	r := a.Cmp(b)
	if r == value.Fail {
		p.c.AddErrf(p.b.name, "cannot compare %s and %s", a.Type(), b.Type())
		return exec.Fail
	}
	return exec.ResultOf(p.b.holds(r))
}

func (p *comparePred) Reset()       {}
func (p *comparePred) Name() string { return p.b.name }

func addCompare(d *Dict) {
	for _, op := range []struct {
		name  string
		holds func(r value.CmpResult) bool
	}{
		{"eq", func(r value.CmpResult) bool { return r == value.Equal }},
		{"ne", func(r value.CmpResult) bool { return r != value.Equal }},
		{"lt", func(r value.CmpResult) bool { return r == value.Less }},
		{"gt", func(r value.CmpResult) bool { return r == value.Greater }},
		{"le", func(r value.CmpResult) bool { return r != value.Greater }},
		{"ge", func(r value.CmpResult) bool { return r != value.Less }},
	} {
		holds := op.holds
		d.Add(&compareBuiltin{name: "?" + op.name, holds: holds})
		d.Add(&compareBuiltin{name: "!" + op.name, holds: func(r value.CmpResult) bool { return !holds(r) }})
	}
}
