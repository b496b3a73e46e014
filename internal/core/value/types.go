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
	"fmt"
	"math"
	"sync"
)

// A Registry hands out type tags to value kinds.
//
// Tags are allocated during package initialization, before any value of
// the kind exists, and are never reused.
type Registry struct {
	mu    sync.Mutex
	names []string // indexed by code; code 0 is reserved
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: []string{""}}
}

// Types is the registry of all value kinds of the process. Kinds defined
// outside this package allocate their tag from it in a package-level
// variable declaration:
//
//	var TRange = value.Types.Alloc("T_RANGE")
var Types = NewRegistry()

// Alloc returns a new tag for the kind with the given name.
// It panics if the tag space is exhausted.
func (r *Registry) Alloc(name string) Type {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.names) > math.MaxUint8 {
		panic(fmt.Sprintf("ran out of value type identifiers allocating %s", name))
	}
	code := uint8(len(r.names))
	r.names = append(r.names, name)
	return Type{code: code, reg: r}
}

// Name returns the name registered for code. It panics if code was never
// handed out by r.
func (r *Registry) Name(code uint8) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if code == 0 || int(code) >= len(r.names) {
		panic(fmt.Sprintf("assertion failed: unknown value type %#02x", code))
	}
	return r.names[code]
}

// A Type tags the kind of a value. Types are comparable; the zero Type is
// not the tag of any kind.
type Type struct {
	code uint8
	reg  *Registry
}

// Code returns the numeric identifier of t within its registry.
func (t Type) Code() uint8 { return t.code }

func (t Type) String() string {
	if t.reg == nil {
		return "T_INVALID"
	}
	return t.reg.Name(t.code)
}

// Compare orders types by code.
func (t Type) Compare(u Type) int {
	switch {
	case t.code < u.code:
		return -1
	case t.code > u.code:
		return 1
	}
	return 0
}

// The built-in value kinds.
var (
	TCst     = Types.Alloc("T_CONST")
	TStr     = Types.Alloc("T_STR")
	TSeq     = Types.Alloc("T_SEQ")
	TClosure = Types.Alloc("T_CLOSURE")
	TDIE     = Types.Alloc("T_NODE")
	TAttr    = Types.Alloc("T_ATTR")
)
