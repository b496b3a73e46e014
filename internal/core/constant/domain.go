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
	"debug/dwarf"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"

	"github.com/cockroachdb/apd/v3"
)

type numDomain struct {
	name   string
	base   int
	prefix string
	plain  bool
}

func (d *numDomain) Name() string    { return d.name }
func (d *numDomain) SafeArith() bool { return true }
func (d *numDomain) Plain() bool     { return d.plain }

func (d *numDomain) Show(w io.Writer, v *apd.Decimal, brv Brevity) {
	s := text(v, d.base)
	if s == "0" && d.base != 10 {
		io.WriteString(w, "0")
		return
	}
	if neg, ok := strings.CutPrefix(s, "-"); ok {
		io.WriteString(w, "-"+d.prefix+neg)
		return
	}
	io.WriteString(w, d.prefix+s)
}

// Numeric domains. Dec, Hex, Oct and Bin are plain presentations of a
// number. Address is an arithmetic domain that survives arithmetic with a
// plain operand.
var (
	Dec     Domain = &numDomain{name: "dec", base: 10, plain: true}
	Hex     Domain = &numDomain{name: "hex", base: 16, prefix: "0x", plain: true}
	Oct     Domain = &numDomain{name: "oct", base: 8, prefix: "0", plain: true}
	Bin     Domain = &numDomain{name: "bin", base: 2, prefix: "0b", plain: true}
	Address Domain = &numDomain{name: "address", base: 16, prefix: "0x"}
)

// An enumDomain names a closed set of values. Unknown values are shown
// numerically.
type enumDomain struct {
	name   string
	prefix string
	names  func(v int64) (string, bool)
}

func (d *enumDomain) Name() string    { return d.name }
func (d *enumDomain) SafeArith() bool { return false }
func (d *enumDomain) Plain() bool     { return false }

func (d *enumDomain) Show(w io.Writer, v *apd.Decimal, brv Brevity) {
	i, err := v.Int64()
	name, ok := "", false
	if err == nil {
		name, ok = d.names(i)
	}
	switch {
	case !ok && brv == Brief:
		fmt.Fprintf(w, "%s", text(v, 10))
	case !ok:
		fmt.Fprintf(w, "%s0x%s", d.prefix, text(v, 16))
	case brv == Brief:
		io.WriteString(w, name)
	default:
		io.WriteString(w, d.prefix+name)
	}
}

// NewEnum returns a non-arithmetic domain whose values are named by names.
// Full display prepends prefix to the name.
func NewEnum(name, prefix string, names map[int64]string) Domain {
	return &enumDomain{
		name:   name,
		prefix: prefix,
		names: func(v int64) (string, bool) {
			s, ok := names[v]
			return s, ok
		},
	}
}

// Bool is the domain of truth values.
var Bool = NewEnum("bool", "", map[int64]string{0: "false", 1: "true"})

// Slot type ids, the values of the SlotType domain.
const (
	TConst int64 = iota
	TStr
	TSeq
	TClosure
	TNode
	TAttr
)

// SlotType is the domain of constants describing the kind of a value.
var SlotType = NewEnum("slot type", "", map[int64]string{
	TConst:   "T_CONST",
	TStr:     "T_STR",
	TSeq:     "T_SEQ",
	TClosure: "T_CLOSURE",
	TNode:    "T_NODE",
	TAttr:    "T_ATTR",
})

// DWARF domains. Names are derived from the debug/dwarf stringers, so that
// dwarf.TagBaseType shows as DW_TAG_base_type, or base_type when brief.
var (
	DWTag = &enumDomain{
		name:   "DW_TAG",
		prefix: "DW_TAG_",
		names:  stringerNames("Tag", func(v int64) string { return dwarf.Tag(v).String() }),
	}
	DWAttr = &enumDomain{
		name:   "DW_AT",
		prefix: "DW_AT_",
		names:  stringerNames("Attr", func(v int64) string { return dwarf.Attr(v).String() }),
	}
	DWForm = NewEnum("DW_FORM", "DW_FORM_", formNames)
)

func stringerNames(typ string, str func(v int64) string) func(int64) (string, bool) {
	return func(v int64) (string, bool) {
		if v < 0 || v > math.MaxUint32 {
			return "", false
		}
		s := str(v)
		if strings.HasPrefix(s, typ+"(") {
			return "", false
		}
		return snake(strings.TrimPrefix(s, typ)), true
	}
}

// snake converts a stringer name like "DeclFile" into "decl_file". A run of
// capitals followed by a lower-case letter ends one word before the last
// capital, so "GNUAllTailCallSites" becomes "GNU_all_tail_call_sites".
// Vendor prefixes and UTF8 keep their case, as in the DWARF names.
func snake(s string) string {
	var words []string
	r := []rune(s)
	start := 0
	for i := 1; i < len(r); i++ {
		if !unicode.IsUpper(r[i]) {
			continue
		}
		prev := r[i-1]
		next := i+1 < len(r) && unicode.IsLower(r[i+1])
		if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && next) {
			words = append(words, string(r[start:i]))
			start = i
		}
	}
	words = append(words, string(r[start:]))
	for i, w := range words {
		if !upperWords[w] {
			words[i] = strings.ToLower(w)
		}
	}
	return strings.Join(words, "_")
}

var upperWords = map[string]bool{
	"GNU":   true,
	"MIPS":  true,
	"HP":    true,
	"SUN":   true,
	"UTF8":  true,
	"APPLE": true,
}

var formNames = map[int64]string{
	0x01:   "addr",
	0x03:   "block2",
	0x04:   "block4",
	0x05:   "data2",
	0x06:   "data4",
	0x07:   "data8",
	0x08:   "string",
	0x09:   "block",
	0x0a:   "block1",
	0x0b:   "data1",
	0x0c:   "flag",
	0x0d:   "sdata",
	0x0e:   "strp",
	0x0f:   "udata",
	0x10:   "ref_addr",
	0x11:   "ref1",
	0x12:   "ref2",
	0x13:   "ref4",
	0x14:   "ref8",
	0x15:   "ref_udata",
	0x16:   "indirect",
	0x17:   "sec_offset",
	0x18:   "exprloc",
	0x19:   "flag_present",
	0x1a:   "strx",
	0x1b:   "addrx",
	0x1c:   "ref_sup4",
	0x1d:   "strp_sup",
	0x1e:   "data16",
	0x1f:   "line_strp",
	0x20:   "ref_sig8",
	0x21:   "implicit_const",
	0x22:   "loclistx",
	0x23:   "rnglistx",
	0x24:   "ref_sup8",
	0x25:   "strx1",
	0x26:   "strx2",
	0x27:   "strx3",
	0x28:   "strx4",
	0x29:   "addrx1",
	0x2a:   "addrx2",
	0x2b:   "addrx3",
	0x2c:   "addrx4",
	0x1f20: "GNU_ref_alt",
	0x1f21: "GNU_strp_alt",
}
