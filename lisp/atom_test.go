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

func TestInternIdempotent(t *testing.T) {
	tab := newAtomTable(64)
	a, err := tab.intern("FOO")
	if err != nil {
		t.Fatal(err)
	}
	b, err := tab.intern("FOO")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("intern(FOO) twice gave different slots: %d != %d", a, b)
	}
	if tab.used != 1 {
		t.Errorf("used = %d, want 1", tab.used)
	}
}

func TestInternDistinctNames(t *testing.T) {
	tab := newAtomTable(64)
	a, _ := tab.intern("FOO")
	b, _ := tab.intern("BAR")
	if a == b {
		t.Errorf("FOO and BAR interned to the same slot")
	}
	if tab.name(a) != "FOO" || tab.name(b) != "BAR" {
		t.Errorf("name lookup mismatch")
	}
}

func TestInternTableFull(t *testing.T) {
	tab := newAtomTable(4)
	names := []string{"A", "B", "C", "D", "E"}
	var lastErr error
	for _, n := range names {
		_, lastErr = tab.intern(n)
	}
	if lastErr == nil {
		t.Fatal("expected AtomTableFull error")
	}
	if e, ok := lastErr.(*Error); !ok || e.Kind != AtomTableFull {
		t.Errorf("got %v, want AtomTableFull", lastErr)
	}
}

func TestBindListRoundTrip(t *testing.T) {
	tab := newAtomTable(16)
	idx, _ := tab.intern("X")
	tab.setValue(idx, NumAtom(3))
	tab.setBindList(idx, Pair(5))
	if tab.value(idx) != (Value{TagNumAtom, 3}) {
		t.Errorf("value mismatch")
	}
	if tab.bindList(idx) != (Value{TagPair, 5}) {
		t.Errorf("bind list mismatch")
	}
}
