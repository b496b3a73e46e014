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
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"dwgrep.org/go/internal/core/constant"
	"dwgrep.org/go/internal/core/overload"
	"dwgrep.org/go/internal/core/value"
)

// Strings are sequences of characters. Operations on them work on runes.

func count(n int) value.Value {
	return value.NewCst(constant.New(int64(n), constant.Dec))
}

func lengthStr(s *value.Str) (value.Value, error) {
	return count(utf8.RuneCountInString(s.String())), nil
}

func lengthSeq(s *value.Seq) (value.Value, error) {
	return count(s.Len()), nil
}

func runes(s *value.Str) []value.Value {
	var vs []value.Value
	for _, r := range s.String() {
		vs = append(vs, value.NewStr(string(r)))
	}
	return vs
}

func cloneElems(s *value.Seq) []value.Value {
	vs := make([]value.Value, s.Len())
	for i, v := range s.Elems() {
		vs[i] = v.Clone()
	}
	return vs
}

func reverse(vs []value.Value) []value.Value {
	for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
		vs[i], vs[j] = vs[j], vs[i]
	}
	return vs
}

func elemStr(s *value.Str) (value.Producer, error) {
	return value.ProduceSlice(runes(s)...), nil
}

func relemStr(s *value.Str) (value.Producer, error) {
	return value.ProduceSlice(reverse(runes(s))...), nil
}

func elemSeq(s *value.Seq) (value.Producer, error) {
	return value.ProduceSlice(cloneElems(s)...), nil
}

func relemSeq(s *value.Seq) (value.Producer, error) {
	return value.ProduceSlice(reverse(cloneElems(s))...), nil
}

func emptyStr(s *value.Str) (bool, error) { return s.String() == "", nil }
func emptySeq(s *value.Seq) (bool, error) { return s.Len() == 0, nil }

func findStr(hay, needle *value.Str) (bool, error) {
	return strings.Contains(hay.String(), needle.String()), nil
}

func startsStr(hay, needle *value.Str) (bool, error) {
	return strings.HasPrefix(hay.String(), needle.String()), nil
}

func endsStr(hay, needle *value.Str) (bool, error) {
	return strings.HasSuffix(hay.String(), needle.String()), nil
}

// equalElems reports whether a and b hold equal values of equal types.
func equalElems(a, b []value.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if value.Compare(a[i], b[i]) != value.Equal {
			return false
		}
	}
	return true
}

func findSeq(hay, needle *value.Seq) (bool, error) {
	h, n := hay.Elems(), needle.Elems()
	for i := 0; i+len(n) <= len(h); i++ {
		if equalElems(h[i:i+len(n)], n) {
			return true, nil
		}
	}
	return false, nil
}

func startsSeq(hay, needle *value.Seq) (bool, error) {
	h, n := hay.Elems(), needle.Elems()
	return len(n) <= len(h) && equalElems(h[:len(n)], n), nil
}

func endsSeq(hay, needle *value.Seq) (bool, error) {
	h, n := hay.Elems(), needle.Elems()
	return len(n) <= len(h) && equalElems(h[len(h)-len(n):], n), nil
}

// patterns caches compiled regular expressions by source.
var patterns sync.Map // map[string]*regexp.Regexp

// matchStr reports whether the whole of s matches the pattern.
func matchStr(s, pattern *value.Str) (bool, error) {
	src := pattern.String()
	re, ok := patterns.Load(src)
	if !ok {
		r, err := regexp.Compile("^(?:" + src + ")$")
		if err != nil {
			return false, fmt.Errorf("invalid pattern %q: %w", src, err)
		}
		re, _ = patterns.LoadOrStore(src, r)
	}
	return re.(*regexp.Regexp).MatchString(s.String()), nil
}

func addSeq(d *Dict) {
	var length, elem, relem overload.Table
	length.AddOp(overload.Op1[*value.Str](lengthStr))
	length.AddOp(overload.Op1[*value.Seq](lengthSeq))
	elem.AddOp(overload.Yield1[*value.Str](elemStr))
	elem.AddOp(overload.Yield1[*value.Seq](elemSeq))
	relem.AddOp(overload.Yield1[*value.Str](relemStr))
	relem.AddOp(overload.Yield1[*value.Seq](relemSeq))
	addOp(d, "length", &length)
	addOp(d, "elem", &elem)
	addOp(d, "relem", &relem)

	var empty, find, starts, ends, match overload.Table
	empty.AddPred(overload.Pred1[*value.Str](emptyStr))
	empty.AddPred(overload.Pred1[*value.Seq](emptySeq))
	find.AddPred(overload.Pred2[*value.Str, *value.Str](findStr))
	find.AddPred(overload.Pred2[*value.Seq, *value.Seq](findSeq))
	starts.AddPred(overload.Pred2[*value.Str, *value.Str](startsStr))
	starts.AddPred(overload.Pred2[*value.Seq, *value.Seq](startsSeq))
	ends.AddPred(overload.Pred2[*value.Str, *value.Str](endsStr))
	ends.AddPred(overload.Pred2[*value.Seq, *value.Seq](endsSeq))
	match.AddPred(overload.Pred2[*value.Str, *value.Str](matchStr))
	addPred(d, "empty", &empty)
	addPred(d, "find", &find)
	addPred(d, "starts", &starts)
	addPred(d, "ends", &ends)
	addPred(d, "match", &match)
}
