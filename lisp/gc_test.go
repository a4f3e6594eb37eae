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

func newTestInterp(t *testing.T, cells int) *Interp {
	t.Helper()
	i, err := New(ListAreaSize(cells), AtomTableSize(128), NumberTableSize(64))
	if err != nil {
		t.Fatal(err)
	}
	return i
}

func TestGCReclaimsUnreachableCells(t *testing.T) {
	i := newTestInterp(t, 16)

	held, err := i.Intern("HELD")
	if err != nil {
		t.Fatal(err)
	}
	i.atoms.setValue(held.Idx, i.List(i.NumAtom(1), i.NumAtom(2), i.NumAtom(3)))

	// Build an unreachable chain of cons cells and let it go out of scope
	// (never stored anywhere but a local variable that gc() does not walk).
	i.List(i.NumAtom(4), i.NumAtom(5), i.NumAtom(6), i.NumAtom(7))

	beforeAvail := i.cons.avail
	i.gc()
	afterAvail := i.cons.avail

	if afterAvail <= beforeAvail {
		t.Errorf("gc() did not reclaim any cells: before=%d after=%d", beforeAvail, afterAvail)
	}

	// The HELD list must still read back correctly.
	got := i.Write(i.atoms.value(held.Idx))
	if got != "(1 2 3)" {
		t.Errorf("HELD list corrupted by gc: got %q", got)
	}
}

func TestGCPreservesBindAndPlist(t *testing.T) {
	i := newTestInterp(t, 16)

	a, _ := i.Intern("A")
	i.atoms.setBindList(a.Idx, i.List(i.NumAtom(9)))
	i.atoms.setPlist(a.Idx, i.List(OrdAtom(a.Idx)))

	i.gc()

	if got := i.Write(i.atoms.bindList(a.Idx)); got != "(9)" {
		t.Errorf("bind list not preserved by gc: got %q", got)
	}
	if i.IsNil(i.atoms.plist(a.Idx)) {
		t.Errorf("plist wrongly collected by gc")
	}
}

func TestConsTriggersGCOnExhaustion(t *testing.T) {
	i := newTestInterp(t, 16) // smallest allowed area: cells 1..15 usable

	held, _ := i.Intern("HELD")
	i.atoms.setValue(held.Idx, i.nilValue())

	// Exhaust the area with cells that become garbage immediately (nothing
	// roots them), so the next Cons must GC-and-retry rather than fail.
	for k := 0; k < 40; k++ {
		i.Cons(i.NumAtom(float64(k)), i.nilValue())
	}

	if i.GCCount() == 0 {
		t.Errorf("expected at least one collection, got 0")
	}
}
