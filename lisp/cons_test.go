// This file is part of govlisp.
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

package lisp

import "testing"

func TestConsAllocReservesCellZero(t *testing.T) {
	c := newConsArea(8)
	if c.avail != 7 {
		t.Errorf("avail = %d, want 7", c.avail)
	}
	idx, ok := c.tryAlloc(NumAtom(1), NumAtom(2))
	if !ok {
		t.Fatal("tryAlloc failed with free cells available")
	}
	if idx == 0 {
		t.Errorf("tryAlloc returned reserved cell 0")
	}
	if c.car(idx) != NumAtom(1) || c.cdr(idx) != NumAtom(2) {
		t.Errorf("car/cdr mismatch after alloc")
	}
}

func TestConsAreaExhaustion(t *testing.T) {
	c := newConsArea(3) // cells 1,2 available
	for i := 0; i < 2; i++ {
		if _, ok := c.tryAlloc(Value{}, Value{}); !ok {
			t.Fatalf("tryAlloc %d failed early", i)
		}
	}
	if _, ok := c.tryAlloc(Value{}, Value{}); ok {
		t.Errorf("tryAlloc succeeded past exhaustion")
	}
}
