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
	"dwgrep.org/go/internal/core/constant"
	"dwgrep.org/go/internal/core/overload"
	"dwgrep.org/go/internal/core/value"
)

// typeOf returns the slot type constant of a value.
func typeOf(v value.Value) (value.Value, error) {
	return value.NewCst(v.TypeConst()), nil
}

// posOf returns the position of a value in the stream that produced it.
func posOf(v value.Value) (value.Value, error) {
	return value.NewCst(constant.New(int64(v.Pos()), constant.Dec)), nil
}

// forAllKinds registers the generic operator f for every built-in kind.
func forAllKinds(t *overload.Table, f func(v value.Value) (value.Value, error)) {
	t.AddOp(overload.Op1[*value.Cst](func(v *value.Cst) (value.Value, error) { return f(v) }))
	t.AddOp(overload.Op1[*value.Str](func(v *value.Str) (value.Value, error) { return f(v) }))
	t.AddOp(overload.Op1[*value.Seq](func(v *value.Seq) (value.Value, error) { return f(v) }))
	t.AddOp(overload.Op1[*value.Closure](func(v *value.Closure) (value.Value, error) { return f(v) }))
	t.AddOp(overload.Op1[*value.DIE](func(v *value.DIE) (value.Value, error) { return f(v) }))
	t.AddOp(overload.Op1[*value.Attr](func(v *value.Attr) (value.Value, error) { return f(v) }))
}

// valueOfCst strips the domain of a constant.
func valueOfCst(v *value.Cst) (value.Value, error) {
	c := v.Constant()
	return value.NewCst(constant.Constant{Value: c.Value, Dom: constant.Dec}), nil
}

func valueOfAttr(v *value.Attr) (value.Value, error) {
	return v.Value()
}

func addValue(d *Dict) {
	var typ, pos overload.Table
	forAllKinds(&typ, typeOf)
	forAllKinds(&pos, posOf)
	addOp(d, "type", &typ)
	addOp(d, "pos", &pos)

	var val overload.Table
	val.AddOp(overload.Op1[*value.Cst](valueOfCst))
	val.AddOp(overload.Op1[*value.Attr](valueOfAttr))
	addOp(d, "value", &val)
}
