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
	"dwgrep.org/go/dwgrep/errors"
	"dwgrep.org/go/internal/core/constant"
	"dwgrep.org/go/internal/core/overload"
	"dwgrep.org/go/internal/core/value"
)

type arithFunc func(a, b constant.Constant) (constant.Constant, errors.Error)

// arith lifts constant arithmetic to an overload. Arithmetic errors drop
// the stack being processed.
func arith(f arithFunc) overload.Op2[*value.Cst, *value.Cst] {
	return func(a, b *value.Cst) (value.Value, error) {
		r, err := f(a.Constant(), b.Constant())
		if err != nil {
			return nil, err
		}
		return value.NewCst(r), nil
	}
}

func concatStr(a, b *value.Str) (value.Value, error) {
	return value.NewStr(a.String() + b.String()), nil
}

func concatSeq(a, b *value.Seq) (value.Value, error) {
	elems := make([]value.Value, 0, a.Len()+b.Len())
	for _, s := range []*value.Seq{a, b} {
		for _, v := range s.Elems() {
			elems = append(elems, v.Clone())
		}
	}
	return value.NewSeq(elems), nil
}

func addArith(d *Dict) {
	var add overload.Table
	add.AddOp(arith(constant.Add))
	add.AddOp(overload.Op2[*value.Str, *value.Str](concatStr))
	add.AddOp(overload.Op2[*value.Seq, *value.Seq](concatSeq))
	addOp(d, "add", &add)

	for _, op := range []struct {
		name string
		f    arithFunc
	}{
		{"sub", constant.Sub},
		{"mul", constant.Mul},
		{"div", constant.Div},
		{"mod", constant.Mod},
	} {
		var t overload.Table
		t.AddOp(arith(op.f))
		addOp(d, op.name, &t)
	}
}
