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

package lispinit_test

import (
	"io"
	"strings"
	"testing"

	"govlisp/lang/lispinit"
	"govlisp/lisp"
)

func newLoadedInterp(t *testing.T) *lisp.Interp {
	t.Helper()
	i, err := lisp.New(lisp.AtomTableSize(512), lisp.NumberTableSize(512), lisp.ListAreaSize(8192))
	if err != nil {
		t.Fatal(err)
	}
	if err := lispinit.LoadDefault(i); err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	return i
}

func evalAll(t *testing.T, i *lisp.Interp, src string) []string {
	t.Helper()
	i.PushInput(strings.NewReader(src))
	var results []string
	for {
		v, err := i.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read error: %v", err)
		}
		results = append(results, i.Write(i.Eval(v)))
	}
	return results
}

func TestNot(t *testing.T) {
	i := newLoadedInterp(t)
	got := evalAll(t, i, "(NOT NIL) (NOT T) (NOT (QUOTE X))")
	want := []string{"T", "NIL", "NIL"}
	assertEqual(t, got, want)
}

func TestAppendAndReverse(t *testing.T) {
	i := newLoadedInterp(t)
	got := evalAll(t, i, "(APPEND (QUOTE (1 2)) (QUOTE (3 4))) (REVERSE (QUOTE (1 2 3)))")
	want := []string{"(1 2 3 4)", "(3 2 1)"}
	assertEqual(t, got, want)
}

func TestEqual(t *testing.T) {
	i := newLoadedInterp(t)
	got := evalAll(t, i, "(EQUAL (QUOTE (A (B) C)) (QUOTE (A (B) C))) (EQUAL (QUOTE (A B)) (QUOTE (A C)))")
	want := []string{"T", "NIL"}
	assertEqual(t, got, want)
}

func TestMemberAndAssoc(t *testing.T) {
	i := newLoadedInterp(t)
	got := evalAll(t, i, `
(MEMBER (QUOTE B) (QUOTE (A B C)))
(MEMBER (QUOTE Z) (QUOTE (A B C)))
(ASSOC (QUOTE B) (QUOTE ((A 1) (B 2) (C 3))))
`)
	want := []string{"(B C)", "NIL", "(B 2)"}
	assertEqual(t, got, want)
}

func TestIntoAndOnto(t *testing.T) {
	i := newLoadedInterp(t)
	got := evalAll(t, i, `
(SETQ ACC NIL)
(INTO 1 ACC)
(INTO 2 ACC)
ACC
(SETQ ACC2 NIL)
(ONTO 1 ACC2)
(ONTO 2 ACC2)
ACC2
`)
	want := []string{"NIL", "(1)", "(2 1)", "(2 1)", "NIL", "(1)", "(1 2)", "(1 2)"}
	assertEqual(t, got, want)
}

func TestApply(t *testing.T) {
	i := newLoadedInterp(t)
	got := evalAll(t, i, "(APPLY (QUOTE PLUS) (QUOTE (2 3)))")
	want := []string{"5"}
	assertEqual(t, got, want)
}

func TestPropertyList(t *testing.T) {
	i := newLoadedInterp(t)
	got := evalAll(t, i, `
(SETQ FOO (QUOTE FOO))
(PUTPROP FOO (QUOTE COLOR) (QUOTE RED))
(GETPROP FOO (QUOTE COLOR))
(NPROP FOO (QUOTE COLOR))
(NPROP FOO (QUOTE SIZE))
(REMPROP FOO (QUOTE COLOR))
(GETPROP FOO (QUOTE COLOR))
`)
	want := []string{"FOO", "RED", "RED", "T", "NIL", "NIL", "NIL"}
	assertEqual(t, got, want)
}

func assertEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d results %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("result %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
