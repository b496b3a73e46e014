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

package value

import (
	"io"
	"strings"

	"dwgrep.org/go/internal/core/constant"
)

// Cst is a constant value.
type Cst struct {
	Position
	cst constant.Constant
}

// NewCst returns a value holding c.
func NewCst(c constant.Constant) *Cst {
	return &Cst{cst: c}
}

// Constant returns the constant held by v.
func (v *Cst) Constant() constant.Constant { return v.cst }

func (v *Cst) Type() Type { return TCst }

func (v *Cst) Clone() Value {
	w := &Cst{Position: v.Position}
	w.cst.Value.Set(&v.cst.Value)
	w.cst.Dom = v.cst.Dom
	return w
}

// Cmp compares constants by value. Constants in different domains are
// ordered by domain first unless both domains allow arithmetic, so that
// DW_TAG_member is never equal to DW_AT_sibling.
func (v *Cst) Cmp(w Value) CmpResult {
	that, ok := w.(*Cst)
	if !ok {
		return Fail
	}
	a, b := &v.cst, &that.cst
	if !safeArith(a.Dom) || !safeArith(b.Dom) {
		if c := strings.Compare(domName(a.Dom), domName(b.Dom)); c != 0 {
			return cmpOf(c)
		}
	}
	return cmpOf(a.Cmp(b))
}

func safeArith(d constant.Domain) bool { return d == nil || d.SafeArith() }

func domName(d constant.Domain) string {
	if d == nil {
		return constant.Dec.Name()
	}
	return d.Name()
}

func (v *Cst) Show(w io.Writer, brv Brevity) { v.cst.Show(w, brv) }

func (v *Cst) TypeConst() constant.Constant { return slotType(constant.TConst) }
