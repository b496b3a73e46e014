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
	"strings"

	"github.com/mpvl/unique"

	"dwgrep.org/go/dwgrep/errors"
	"dwgrep.org/go/internal/core/exec"
	"dwgrep.org/go/internal/core/value"
)

// An Instance is an immutable snapshot of a Table used during evaluation.
//
// Ops and predicates of the overloads are built on first use and reused,
// after a reset, whenever the same overload is selected again.
type Instance struct {
	sels     []Selector
	builtins []exec.Builtin

	execs []pipeline
	preds []exec.Pred
}

type pipeline struct {
	origin *exec.Origin
	op     exec.Op
}

// FindExec returns the op of the overload whose selector matches stk,
// along with the origin that feeds it. The caller passes the stack to
// dispatch on to the origin. FindExec reports false if no overload matches
// or the matching one is not an operator.
func (inst *Instance) FindExec(c *exec.Context, stk *value.Stack) (*exec.Origin, exec.Op, bool) {
	i := inst.find(stk)
	if i < 0 {
		return nil, nil, false
	}
	p := &inst.execs[i]
	if p.op == nil {
		origin := exec.NewOrigin()
		op := inst.builtins[i].BuildExec(c, origin)
		if op == nil {
			return nil, nil, false
		}
		*p = pipeline{origin, op}
	} else {
		p.op.Reset()
	}
	return p.origin, p.op, true
}

// FindPred returns the predicate of the overload whose selector matches
// stk. FindPred reports false if no overload matches or the
// matching one is not a predicate.
func (inst *Instance) FindPred(c *exec.Context, stk *value.Stack) (exec.Pred, bool) {
	i := inst.find(stk)
	if i < 0 {
		return nil, false
	}
	p := inst.preds[i]
	if p == nil {
		p = inst.builtins[i].BuildPred(c)
		if p == nil {
			return nil, false
		}
		inst.preds[i] = p
	} else {
		p.Reset()
	}
	return p, true
}

// Error returns the diagnostic for applying the operator name to a stack
// for which no overload matches.
func (inst *Instance) Error(name string, stk *value.Stack) errors.Error {
	cands := make([]string, len(inst.sels))
	for i, sel := range inst.sels {
		cands[i] = "[" + sel.String() + "]"
	}
	unique.Sort(unique.StringSlice{P: &cands})

	got := "an empty stack"
	if stk.Len() > 0 {
		got = fmt.Sprintf("[%s]", Profile(stk))
	}
	if len(cands) == 0 {
		return errors.Newf(name, "no overloads, got %s", got)
	}
	return errors.Newf(name, "expects one of %s near top of stack, got %s",
		strings.Join(cands, ", "), got)
}

// dispatchError returns the diagnostic for a stack for which FindExec or
// FindPred reported false. If an overload of the other kind matches, the
// error names it instead of listing the candidates.
func (inst *Instance) dispatchError(name, want string, stk *value.Stack) errors.Error {
	if i := inst.find(stk); i >= 0 {
		return errors.Newf(name, "overload for [%s] is not %s", inst.sels[i], want)
	}
	return inst.Error(name, stk)
}
