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

// Package exec defines the pull-based pipeline that queries are evaluated
// by.
//
// A pipeline is a chain of operators. Each operator pulls stacks from its
// upstream, transforms them and hands them on when its own Next method is
// called. Nothing happens until the last operator is pulled.
package exec

import (
	"dwgrep.org/go/internal/core/value"
)

// An Op is a node of a pipeline.
//
// An Op is owned by its single downstream consumer and is never pulled from
// two places.
type Op interface {
	// Next returns the next stack, or nil when the op is exhausted.
	Next() *value.Stack

	// Reset returns the op and everything upstream of it to its initial
	// state, discarding any pending stacks.
	Reset()

	// Name describes the op for diagnostics.
	Name() string
}

// A PredResult is the outcome of a predicate.
type PredResult int8

const (
	// Fail means the predicate does not apply to the stack.
	Fail PredResult = iota
	No
	Yes
)

func (r PredResult) String() string {
	switch r {
	case No:
		return "no"
	case Yes:
		return "yes"
	}
	return "fail"
}

// Not inverts Yes and No. Fail is kept.
func (r PredResult) Not() PredResult {
	switch r {
	case Yes:
		return No
	case No:
		return Yes
	}
	return Fail
}

// ResultOf converts a boolean to a PredResult.
func ResultOf(b bool) PredResult {
	if b {
		return Yes
	}
	return No
}

// A Pred tests a stack without modifying it.
type Pred interface {
	Result(stk *value.Stack) PredResult
	Reset()
	Name() string
}

// A Builtin is an operator that can be referred to by name from a query.
type Builtin interface {
	Name() string

	// BuildExec returns an op that reads from upstream, or nil if the
	// builtin cannot be used as an operator.
	BuildExec(c *Context, upstream Op) Op

	// BuildPred returns a predicate, or nil if the builtin cannot be used
	// as one.
	BuildPred(c *Context) Pred
}
