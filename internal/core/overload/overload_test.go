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
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	"dwgrep.org/go/dwgrep/errors"
	"dwgrep.org/go/internal/core/constant"
	"dwgrep.org/go/internal/core/exec"
	"dwgrep.org/go/internal/core/value"
)

var selectorEq = cmp.Options{
	cmp.Comparer(func(a, b value.Type) bool { return a == b }),
	cmp.Comparer(func(a, b Selector) bool { return a == b }),
}

func newContext() *exec.Context {
	return &exec.Context{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func stack(vs ...value.Value) *value.Stack {
	stk := value.NewStack(nil)
	for _, v := range vs {
		stk.Push(v)
	}
	return stk
}

func str(s string) *value.Str { return value.NewStr(s) }

func num(i int64) *value.Cst { return value.NewCst(constant.New(i, constant.Dec)) }

func run(op exec.Op) []string {
	var a []string
	for _, stk := range exec.Collect(op) {
		var vs []string
		for _, v := range stk.Values() {
			vs = append(vs, value.String(v, value.Brief))
		}
		a = append(a, strings.Join(vs, " "))
	}
	return a
}

func TestSelector(t *testing.T) {
	ss := MakeSelector(value.TStr, value.TStr)
	qt.Check(t, qt.Equals(ss.String(), "T_STR T_STR"))
	qt.Check(t, qt.Equals(ss.Len(), 2))
	qt.Check(t, qt.CmpEquals(ss.Types(), []value.Type{value.TStr, value.TStr}, selectorEq))
	qt.Check(t, qt.Equals(ss, MakeSelector(value.TStr, value.TStr)))
	qt.Check(t, qt.Not(qt.Equals(ss, MakeSelector(value.TStr))))

	sc := MakeSelector(value.TStr, value.TCst)
	testCases := []struct {
		stk  *value.Stack
		sel  Selector
		want bool
	}{
		{stack(str("a"), str("b")), ss, true},
		{stack(num(1), str("a"), str("b")), ss, true},
		{stack(str("b")), ss, false},
		{stack(), ss, false},
		{stack(str("a"), num(1)), sc, true},
		{stack(num(1), str("a")), sc, false},
		{stack(), MakeSelector(), true},
	}
	for i, tc := range testCases {
		qt.Check(t, qt.Equals(tc.sel.Matches(tc.stk), tc.want), qt.Commentf("%d: [%s]", i, tc.sel))
	}

	qt.Check(t, qt.Equals(Profile(stack(num(1), num(2), num(3), num(4), str("x"))).String(),
		"T_CONST T_CONST T_CONST T_STR"))
	qt.Check(t, qt.PanicMatches(func() {
		MakeSelector(value.TStr, value.TStr, value.TStr, value.TStr, value.TStr)
	}, `assertion failed: selector of arity 5 exceeds 4`))
}

func concat(a, b *value.Str) (value.Value, error) {
	return str(a.String() + b.String()), nil
}

func length(a *value.Str) (value.Value, error) {
	return num(int64(len(a.String()))), nil
}

func TestDispatchArity(t *testing.T) {
	for _, reverse := range []bool{false, true} {
		var tab Table
		if reverse {
			tab.AddOp(Op2[*value.Str, *value.Str](concat))
			tab.AddOp(Op1[*value.Str](length))
		} else {
			tab.AddOp(Op1[*value.Str](length))
			tab.AddOp(Op2[*value.Str, *value.Str](concat))
		}
		c := newContext()
		op := NewOpBuiltin("add", &tab).BuildExec(c, exec.NewSource(
			stack(str("ab"), str("cd")),
			stack(num(7), str("xyz")),
		))
		qt.Check(t, qt.DeepEquals(run(op), []string{`"abcd"`, "7 3"}))
		qt.Check(t, qt.IsNil(c.Err()))
	}
}

func TestNoMatch(t *testing.T) {
	var tab Table
	tab.AddOp(Op1[*value.Str](length))
	tab.AddOp(Yield1[*value.Seq](func(a *value.Seq) (value.Producer, error) {
		return value.ProduceNone(), nil
	}))
	tab.AddOp(Op1[*value.Str](length))

	c := newContext()
	c.OverloadOrder = true
	op := NewOpBuiltin("length", &tab).BuildExec(c, exec.NewSource(
		stack(num(1)),
		stack(str("abc")),
		stack(),
	))
	qt.Check(t, qt.DeepEquals(run(op), []string{"3"}))
	qt.Check(t, qt.Equals(errors.Details(c.Err(), nil), ""+
		"length: expects one of [T_SEQ], [T_STR] near top of stack, got [T_CONST]\n"+
		"length: expects one of [T_SEQ], [T_STR] near top of stack, got an empty stack\n"))

	var empty Table
	inst, err := empty.Instantiate()
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.ErrorMatches(inst.Error("foo", stack(str("a"))), `no overloads, got \[T_STR\]`))

	// Candidates are listed sorted whatever the registration order.
	var rev Table
	rev.AddOp(Op1[*value.Str](length))
	rev.AddOp(Op2[*value.Str, *value.Str](concat))
	rev.AddOp(Op1[*value.Seq](func(a *value.Seq) (value.Value, error) {
		return num(int64(a.Len())), nil
	}))
	inst, err = rev.Instantiate()
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(errors.Details(inst.Error("length", stack(num(1))), nil),
		"length: expects one of [T_SEQ], [T_STR], [T_STR T_STR] near top of stack, got [T_CONST]\n"))
}

func TestWrongKind(t *testing.T) {
	var tab Table
	tab.AddOp(Op1[*value.Str](length))
	tab.AddPred(Pred1[*value.Seq](func(a *value.Seq) (bool, error) {
		return a.Len() == 0, nil
	}))

	c := newContext()
	p := NewPredBuiltin("?empty", &tab, true).BuildPred(c)
	qt.Check(t, qt.Equals(p.Result(stack(str("a"))), exec.Fail))
	qt.Check(t, qt.Equals(p.Result(stack(value.NewSeq(nil))), exec.Yes))

	op := NewOpBuiltin("length", &tab).BuildExec(c, exec.NewSource(
		stack(value.NewSeq(nil)),
		stack(str("ab")),
	))
	qt.Check(t, qt.DeepEquals(run(op), []string{"2"}))
	qt.Check(t, qt.Equals(errors.Details(c.Err(), nil), ""+
		"?empty: overload for [T_STR] is not a predicate\n"+
		"length: overload for [T_SEQ] is not an operator\n"))
}

func elems(a *value.Seq) (value.Producer, error) {
	var vs []value.Value
	for _, v := range a.Elems() {
		vs = append(vs, v.Clone())
	}
	return value.ProduceSlice(vs...), nil
}

func TestYieldOrder(t *testing.T) {
	var tab Table
	tab.AddOp(Yield1[*value.Seq](elems))
	c := newContext()
	op := NewOpBuiltin("elem", &tab).BuildExec(c, exec.NewSource(
		stack(num(0), value.NewSeq([]value.Value{str("a"), str("b")})),
		stack(value.NewSeq(nil)),
		stack(num(1), value.NewSeq([]value.Value{str("c")})),
	))
	qt.Check(t, qt.DeepEquals(run(op), []string{`0 "a"`, `0 "b"`, `1 "c"`}))

	// The yielded stacks are independent.
	op.Reset()
	a, b := op.Next(), op.Next()
	a.Push(str("x"))
	qt.Check(t, qt.Equals(b.Len(), 2))
	qt.Check(t, qt.Equals(b.Top().Pos(), 1))
}

func TestYield2(t *testing.T) {
	var tab Table
	tab.AddOp(Yield2[*value.Str, *value.Cst](func(a *value.Str, n *value.Cst) (value.Producer, error) {
		cst := n.Constant()
		k, _ := cst.Int64()
		if k < 0 {
			return nil, fmt.Errorf("negative count %d", k)
		}
		var vs []value.Value
		for i := int64(0); i < k; i++ {
			vs = append(vs, a.Clone())
		}
		return value.ProduceSlice(vs...), nil
	}))
	c := newContext()
	op := NewOpBuiltin("repeat", &tab).BuildExec(c, exec.NewSource(
		stack(str("a"), num(2)),
		stack(str("b"), num(-1)),
		stack(str("c"), num(1)),
	))
	qt.Check(t, qt.DeepEquals(run(op), []string{`"a"`, `"a"`, `"c"`}))
	qt.Check(t, qt.ErrorMatches(c.Err(), "negative count -1"))
}

func TestOpSkipsOnError(t *testing.T) {
	add := func(a, b *value.Cst) (value.Value, error) {
		r, err := constant.Add(a.Constant(), b.Constant())
		if err != nil {
			return nil, err
		}
		return value.NewCst(r), nil
	}
	var tab Table
	tab.AddOp(Op2[*value.Cst, *value.Cst](add))
	tab.AddOp(Op3[*value.Str, *value.Str, *value.Str](func(a, b, c *value.Str) (value.Value, error) {
		return nil, nil
	}))
	c := newContext()
	tag := value.NewCst(constant.New(0x24, constant.DWTag))
	op := NewOpBuiltin("add", &tab).BuildExec(c, exec.NewSource(
		stack(num(1), num(2)),
		stack(tag, num(2)),
		stack(str("a"), str("b"), str("c")),
		stack(num(3), num(4)),
	))
	qt.Check(t, qt.DeepEquals(run(op), []string{"3", "7"}))
	qt.Check(t, qt.Equals(errors.Details(c.Err(), nil),
		"add: cannot do arithmetic on DW_TAG_base_type and 2\n"))
}

func TestAmbiguous(t *testing.T) {
	var tab Table
	tab.AddOp(Op1[*value.Str](length))
	tab.AddOp(Op1[*value.Str](func(a *value.Str) (value.Value, error) {
		return str("second"), nil
	}))
	_, err := tab.Instantiate()
	qt.Check(t, qt.ErrorMatches(err, `ambiguous overload: op<T_STR> and op<T_STR> both registered for \[T_STR\]`))

	c := newContext()
	op := NewOpBuiltin("length", &tab).BuildExec(c, exec.NewSource(stack(str("abcd"))))
	qt.Check(t, qt.DeepEquals(run(op), []string{"4"}))
	qt.Check(t, qt.ErrorMatches(c.Err(), `ambiguous overload: .*`))
	qt.Check(t, qt.Equals(c.Err().Op(), "length"))

	c = newContext()
	c.OverloadOrder = true
	NewOpBuiltin("length", &tab).BuildExec(c, exec.NewSource())
	qt.Check(t, qt.IsNil(c.Err()))

	c = newContext()
	c.Strict = true
	qt.Check(t, qt.PanicMatches(func() {
		NewOpBuiltin("length", &tab).BuildExec(c, exec.NewSource())
	}, `assertion failed: length: ambiguous overload: .*`))
}

func hasPrefix(a, b *value.Str) (bool, error) {
	return strings.HasPrefix(a.String(), b.String()), nil
}

func TestPredBuiltin(t *testing.T) {
	var tab Table
	tab.AddPred(Pred2[*value.Str, *value.Str](hasPrefix))
	tab.AddPred(Pred1[*value.Seq](func(a *value.Seq) (bool, error) {
		return a.Len() == 0, nil
	}))

	c := newContext()
	pos := NewPredBuiltin("?starts", &tab, true).BuildPred(c)
	neg := NewPredBuiltin("!starts", &tab, false).BuildPred(c)
	testCases := []struct {
		stk      *value.Stack
		pos, neg exec.PredResult
	}{
		{stack(str("foobar"), str("foo")), exec.Yes, exec.No},
		{stack(str("foobar"), str("bar")), exec.No, exec.Yes},
		{stack(value.NewSeq(nil)), exec.Yes, exec.No},
		{stack(num(1)), exec.Fail, exec.Fail},
	}
	for i, tc := range testCases {
		qt.Check(t, qt.Equals(pos.Result(tc.stk), tc.pos), qt.Commentf("%d", i))
		qt.Check(t, qt.Equals(neg.Result(tc.stk), tc.neg), qt.Commentf("%d", i))
	}
	qt.Check(t, qt.Equals(testCases[0].stk.Len(), 2), qt.Commentf("predicates do not pop"))
	qt.Check(t, qt.HasLen(c.Errs(), 2))
	qt.Check(t, qt.Equals(c.Errs()[1].Op(), "!starts"))

	// As an operator, a predicate filters.
	op := NewPredBuiltin("?starts", &tab, true).BuildExec(c, exec.NewSource(
		stack(str("foobar"), str("foo")),
		stack(str("foobar"), str("bar")),
	))
	qt.Check(t, qt.DeepEquals(run(op), []string{`"foobar" "foo"`}))

	// An operator table has no predicates and vice versa.
	var ops Table
	ops.AddOp(Op1[*value.Str](length))
	qt.Check(t, qt.IsNil(NewOpBuiltin("length", &ops).BuildPred(c)))
	p := NewPredBuiltin("length", &ops, true).BuildPred(c)
	qt.Check(t, qt.Equals(p.Result(stack(str("a"))), exec.Fail))
}

func TestMerge(t *testing.T) {
	var a, b Table
	a.AddOp(Op1[*value.Str](length))
	b.AddOp(Op2[*value.Str, *value.Str](concat))
	b.AddOp(Op1[*value.Str](length))

	m := Merge(&a, &b)
	qt.Check(t, qt.Equals(a.Len(), 1))
	qt.Check(t, qt.Equals(b.Len(), 2))
	qt.Check(t, qt.CmpEquals(m.Selectors(), []Selector{
		MakeSelector(value.TStr),
		MakeSelector(value.TStr, value.TStr),
		MakeSelector(value.TStr),
	}, selectorEq))

	base := NewOpBuiltin("add", &a)
	merged := base.CreateMerged(&b)
	qt.Check(t, qt.Equals(merged.Name(), "add"))
	qt.Check(t, qt.Equals(merged.(*OpBuiltin).Table().Len(), 3))
	qt.Check(t, qt.Equals(base.Table().Len(), 1))

	pb := NewPredBuiltin("!empty", &a, false).CreateMerged(&b).(*PredBuiltin)
	qt.Check(t, qt.IsFalse(pb.Positive()))
	qt.Check(t, qt.Equals(pb.Table().Len(), 3))
}

// counting is a builtin that counts how often it is built and reset.
type counting struct {
	builds, resets int
}

func (b *counting) Name() string { return "counting" }

func (b *counting) BuildExec(c *exec.Context, upstream exec.Op) exec.Op {
	b.builds++
	return &countingOp{b: b, upstream: upstream}
}

func (b *counting) BuildPred(c *exec.Context) exec.Pred { return nil }

type countingOp struct {
	b        *counting
	upstream exec.Op
}

func (o *countingOp) Next() *value.Stack { return o.upstream.Next() }
func (o *countingOp) Reset()             { o.b.resets++; o.upstream.Reset() }
func (o *countingOp) Name() string       { return "counting" }

func TestInstanceReuse(t *testing.T) {
	b := &counting{}
	var tab Table
	tab.AddOverload(MakeSelector(value.TStr), b)
	inst, err := tab.Instantiate()
	qt.Assert(t, qt.IsNil(err))

	// Later registrations do not affect the instance.
	tab.AddOp(Op1[*value.Cst](func(a *value.Cst) (value.Value, error) { return a, nil }))

	c := newContext()
	op := NewOp(c, "id", inst, exec.NewSource(
		stack(str("a")), stack(str("b")), stack(num(1)), stack(str("c")),
	))
	qt.Check(t, qt.DeepEquals(run(op), []string{`"a"`, `"b"`, `"c"`}))
	qt.Check(t, qt.Equals(b.builds, 1))
	qt.Check(t, qt.Equals(b.resets, 2))
	qt.Check(t, qt.HasLen(c.Errs(), 1))

	// Reset makes the node reusable for a new input stream.
	op.Reset()
	qt.Check(t, qt.HasLen(run(op), 3))
	qt.Check(t, qt.Equals(b.builds, 1))
}

func TestCollect(t *testing.T) {
	sel := MakeSelector(value.TCst, value.TStr)
	stk := stack(str("bottom"), num(1), str("a"))

	vs := collect(stk, sel, false)
	qt.Check(t, qt.Equals(stk.Len(), 3))
	qt.Check(t, qt.Equals(vs[0].Type(), value.TCst))
	qt.Check(t, qt.Equals(vs[1].Type(), value.TStr))

	vs = collect(stk, sel, true)
	qt.Check(t, qt.Equals(stk.Len(), 1))
	qt.Check(t, qt.HasLen(vs, 2))

	qt.Check(t, qt.PanicMatches(func() {
		collect(stack(str("a"), str("b")), sel, false)
	}, `assertion failed: found T_STR where \[T_CONST T_STR\] expects T_CONST`))
}
