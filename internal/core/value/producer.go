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

// A Producer is a finite, single-pass stream of values. The caller owns
// each value returned.
type Producer interface {
	// Next returns the next value, or false when the stream is exhausted.
	Next() (Value, bool)
}

// ProduceFunc adapts a function to a Producer.
type ProduceFunc func() (Value, bool)

func (f ProduceFunc) Next() (Value, bool) { return f() }

// ProduceSlice returns a producer of the given values, in order. The
// position of each value is set to its index.
func ProduceSlice(vs ...Value) Producer {
	i := 0
	return ProduceFunc(func() (Value, bool) {
		if i >= len(vs) {
			return nil, false
		}
		v := vs[i]
		v.SetPos(i)
		vs[i] = nil
		i++
		return v, true
	})
}

// ProduceNone returns a producer that yields nothing.
func ProduceNone() Producer {
	return ProduceFunc(func() (Value, bool) { return nil, false })
}

// ProduceOnce returns a producer that yields v once.
func ProduceOnce(v Value) Producer {
	return ProduceSlice(v)
}
