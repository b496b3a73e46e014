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

// Package constant implements integer constants tagged with a domain.
//
// A domain says how a number is to be read: as a plain decimal or hex
// number, as an address, as a DWARF tag or attribute name, and so on. Two
// constants from different non-arithmetic domains never compare equal, and
// arithmetic is only defined between domains that allow it.
package constant

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Brevity selects between the two display forms of a value.
type Brevity int

const (
	// Full is the form used when a value is printed on its own.
	Full Brevity = iota
	// Brief is the form used when a value is embedded in another one.
	Brief
)

// A Domain determines the interpretation of a constant.
type Domain interface {
	// Name identifies the domain. Distinct domains have distinct names.
	Name() string

	// Show writes v, which is always an integer, to w.
	Show(w io.Writer, v *apd.Decimal, brv Brevity)

	// SafeArith reports whether arithmetic may be done on constants of
	// this domain.
	SafeArith() bool

	// Plain reports whether the domain is merely a presentation of a
	// number. In mixed arithmetic the result takes the non-plain domain.
	Plain() bool
}

// A Constant is an integer of arbitrary size in a given domain.
type Constant struct {
	Value apd.Decimal
	Dom   Domain
}

// New returns a constant holding v in domain dom.
func New(v int64, dom Domain) Constant {
	c := Constant{Dom: dom}
	c.Value.SetInt64(v)
	return c
}

// NewUint64 returns a constant holding v in domain dom.
func NewUint64(v uint64, dom Domain) Constant {
	c := Constant{Dom: dom}
	c.Value.Coeff.SetUint64(v)
	return c
}

// NewBig returns a constant holding v in domain dom.
func NewBig(v *big.Int, dom Domain) Constant {
	c := Constant{Dom: dom}
	c.Value.Coeff.SetMathBigInt(new(big.Int).Abs(v))
	c.Value.Negative = v.Sign() < 0
	return c
}

// Int64 returns the value of c as an int64, reporting whether it fits.
func (c *Constant) Int64() (int64, bool) {
	i, err := c.Value.Int64()
	return i, err == nil
}

// Uint64 returns the value of c as a uint64, reporting whether it fits.
func (c *Constant) Uint64() (uint64, bool) {
	if c.Value.Negative && !c.Value.IsZero() {
		return 0, false
	}
	b := c.Big()
	if !b.IsUint64() {
		return 0, false
	}
	return b.Uint64(), true
}

// Big returns the value of c as a big.Int.
func (c *Constant) Big() *big.Int {
	b := c.Value.Coeff.MathBigInt()
	if c.Value.Exponent > 0 {
		e := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(c.Value.Exponent)), nil)
		b.Mul(b, e)
	}
	if c.Value.Negative {
		b.Neg(b)
	}
	return b
}

// Cmp compares the numeric values of c and d, ignoring domains.
func (c *Constant) Cmp(d *Constant) int {
	return c.Value.Cmp(&d.Value)
}

// Show writes c to w as its domain dictates.
func (c *Constant) Show(w io.Writer, brv Brevity) {
	if c.Dom == nil {
		io.WriteString(w, c.Value.Text('f'))
		return
	}
	c.Dom.Show(w, &c.Value, brv)
}

func (c Constant) String() string {
	var b strings.Builder
	c.Show(&b, Full)
	return b.String()
}

// GoString is used for debugging.
func (c Constant) GoString() string {
	name := "<nil>"
	if c.Dom != nil {
		name = c.Dom.Name()
	}
	return fmt.Sprintf("constant.Constant{%s, %s}", c.Value.Text('f'), name)
}

// text renders the integer v in the given base, with a sign if needed.
func text(v *apd.Decimal, base int) string {
	c := Constant{Value: *v}
	b := c.Big()
	neg := b.Sign() < 0
	s := b.Abs(b).Text(base)
	if neg {
		return "-" + s
	}
	return s
}
