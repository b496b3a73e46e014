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

package constant

import (
	"github.com/cockroachdb/apd/v3"

	"dwgrep.org/go/dwgrep/errors"
)

// Constants hold integers of up to this many decimal digits. Results that
// do not fit are reported as arithmetic errors rather than rounded.
const precision = 40

var arithContext = apd.BaseContext.WithPrecision(precision)

// checkArith verifies that a and b may take part in arithmetic and returns
// the domain of the result.
func checkArith(op string, a, b *Constant) (Domain, errors.Error) {
	for _, c := range []*Constant{a, b} {
		if c.Dom != nil && !c.Dom.SafeArith() {
			return nil, errors.Newf(op, "cannot do arithmetic on %s and %s", a, b)
		}
	}
	if a.Dom == nil || a.Dom.Plain() {
		return b.Dom, nil
	}
	return a.Dom, nil
}

type apdOp func(d, x, y *apd.Decimal) (apd.Condition, error)

func arith(name string, op apdOp, a, b Constant) (Constant, errors.Error) {
	dom, err := checkArith(name, &a, &b)
	if err != nil {
		return Constant{}, err
	}
	r := Constant{Dom: dom}
	cond, opErr := op(&r.Value, &a.Value, &b.Value)
	switch {
	case opErr != nil:
		return Constant{}, errors.Wrapf(opErr, name, "%s %s %s", a, name, b)
	case cond.Inexact(), cond.Rounded():
		return Constant{}, errors.Newf(name, "result of %s %s %s exceeds %d digits", a, name, b, precision)
	}
	return r, nil
}

func checkDivisor(name string, a, b Constant) errors.Error {
	if b.Value.IsZero() {
		return errors.Newf(name, "division by zero: %s %s %s", a, name, b)
	}
	return nil
}

// Add returns a + b.
func Add(a, b Constant) (Constant, errors.Error) {
	return arith("add", arithContext.Add, a, b)
}

// Sub returns a - b.
func Sub(a, b Constant) (Constant, errors.Error) {
	return arith("sub", arithContext.Sub, a, b)
}

// Mul returns a * b.
func Mul(a, b Constant) (Constant, errors.Error) {
	return arith("mul", arithContext.Mul, a, b)
}

// Div returns a / b, truncated towards zero.
func Div(a, b Constant) (Constant, errors.Error) {
	if err := checkDivisor("div", a, b); err != nil {
		return Constant{}, err
	}
	return arith("div", arithContext.QuoInteger, a, b)
}

// Mod returns the remainder of a / b. It has the sign of a.
func Mod(a, b Constant) (Constant, errors.Error) {
	if err := checkDivisor("mod", a, b); err != nil {
		return Constant{}, err
	}
	return arith("mod", arithContext.Rem, a, b)
}
