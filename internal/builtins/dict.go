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

// Package builtins defines the operators and predicates available to
// queries and the dictionary they are looked up in.
package builtins

import (
	"fmt"
	"maps"
	"slices"

	"dwgrep.org/go/internal/core/exec"
	"dwgrep.org/go/internal/core/overload"
)

// A Dict maps names to builtins.
type Dict struct {
	builtins map[string]exec.Builtin
}

// NewDict returns an empty dictionary.
func NewDict() *Dict {
	return &Dict{builtins: map[string]exec.Builtin{}}
}

// Add registers b under its name.
//
// If an overloaded builtin of the same name and kind is already present,
// the result is a builtin with the overloads of both, the existing ones
// first. Any other name clash panics.
func (d *Dict) Add(b exec.Builtin) {
	name := b.Name()
	old, ok := d.builtins[name]
	if !ok {
		d.builtins[name] = b
		return
	}
	d.builtins[name] = merge(old, b)
}

func merge(a, b exec.Builtin) exec.Builtin {
	ma, okA := a.(overload.Merger)
	mb, okB := b.(overload.Merger)
	if okA && okB && sameKind(ma, mb) {
		return ma.CreateMerged(mb.Table())
	}
	panic(fmt.Sprintf("assertion failed: builtin %s defined twice", a.Name()))
}

func sameKind(a, b overload.Merger) bool {
	switch a := a.(type) {
	case *overload.OpBuiltin:
		_, ok := b.(*overload.OpBuiltin)
		return ok
	case *overload.PredBuiltin:
		b, ok := b.(*overload.PredBuiltin)
		return ok && a.Positive() == b.Positive()
	}
	return false
}

// Find returns the builtin called name.
func (d *Dict) Find(name string) (exec.Builtin, bool) {
	b, ok := d.builtins[name]
	return b, ok
}

// Names returns the names of all builtins in d, sorted.
func (d *Dict) Names() []string {
	return slices.Sorted(maps.Keys(d.builtins))
}

// Merge returns a dictionary with the builtins of a and b. Overloaded
// builtins present in both are merged.
func Merge(a, b *Dict) *Dict {
	d := NewDict()
	for _, src := range []*Dict{a, b} {
		for _, name := range src.Names() {
			d.Add(src.builtins[name])
		}
	}
	return d
}

// Default returns a dictionary with all builtins of this package.
func Default() *Dict {
	d := NewDict()
	addArith(d)
	addValue(d)
	addSeq(d)
	addCompare(d)
	addDwarf(d)
	return d
}

// addOp registers the operator name with the overloads of t.
func addOp(d *Dict, name string, t *overload.Table) {
	d.Add(overload.NewOpBuiltin(name, t))
}

// addPred registers ?name and its negation !name, sharing t.
func addPred(d *Dict, name string, t *overload.Table) {
	d.Add(overload.NewPredBuiltin("?"+name, t, true))
	d.Add(overload.NewPredBuiltin("!"+name, t, false))
}
