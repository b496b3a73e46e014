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
	"strconv"
	"strings"

	"dwgrep.org/go/internal/core/constant"
)

// Str is a string value.
type Str struct {
	Position
	s string
}

// NewStr returns a value holding s.
func NewStr(s string) *Str {
	return &Str{s: s}
}

func (v *Str) String() string { return v.s }

func (v *Str) Type() Type { return TStr }

func (v *Str) Clone() Value {
	w := *v
	return &w
}

func (v *Str) Cmp(w Value) CmpResult {
	that, ok := w.(*Str)
	if !ok {
		return Fail
	}
	return cmpOf(strings.Compare(v.s, that.s))
}

// Show writes the string as is, or quoted when brief.
func (v *Str) Show(w io.Writer, brv Brevity) {
	if brv == Brief {
		io.WriteString(w, strconv.Quote(v.s))
		return
	}
	io.WriteString(w, v.s)
}

func (v *Str) TypeConst() constant.Constant { return slotType(constant.TStr) }
