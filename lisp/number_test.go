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

func TestNumberInternIdempotent(t *testing.T) {
	tab := newNumberTable(64)
	a, err := tab.insert(3.5)
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := tab.find(3.5); !ok || got != a {
		t.Errorf("find(3.5) = %d,%v, want %d,true", got, ok, a)
	}
	if tab.count != 1 {
		t.Errorf("count = %d, want 1", tab.count)
	}
}

func TestNumberSignedZeroDistinct(t *testing.T) {
	tab := newNumberTable(64)
	pz, _ := tab.insert(0.0)
	nz, _ := tab.insert(negZero())
	if pz == nz {
		t.Errorf("+0.0 and -0.0 collapsed to the same slot")
	}
}

func negZero() float64 {
	z := 0.0
	return -z
}

func TestFull80(t *testing.T) {
	tab := newNumberTable(10)
	for i := 0; i < 8; i++ {
		if _, err := tab.insert(float64(i)); err != nil {
			t.Fatal(err)
		}
	}
	if !tab.full80() {
		t.Errorf("full80() = false at 8/10, want true")
	}
}

func TestNumberTableFull(t *testing.T) {
	tab := newNumberTable(4)
	for i := 0; i < 4; i++ {
		if _, err := tab.insert(float64(i)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := tab.insert(99.0); err == nil {
		t.Fatal("expected NumberTableFull error")
	}
}
