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

func TestValuePredicates(t *testing.T) {
	cases := []struct {
		name                         string
		v                            Value
		sexp, fctForm, fct, unnamed  bool
	}{
		{"pair", Pair(1), true, false, false, false},
		{"ordatom", OrdAtom(1), true, false, false, false},
		{"numatom", NumAtom(1), true, false, false, false},
		{"builtinfn", BuiltinFn(1), false, true, true, false},
		{"builtinsf", BuiltinSF(1), false, true, false, false},
		{"userfn", UserFn(1), false, true, true, false},
		{"usersf", UserSF(1), false, true, false, false},
		{"unnamedfn", UnnamedFn(1), false, true, true, true},
		{"unnamedsf", UnnamedSF(1), false, true, false, true},
	}
	for _, c := range cases {
		if got := c.v.IsSexp(); got != c.sexp {
			t.Errorf("%s: IsSexp() = %v, want %v", c.name, got, c.sexp)
		}
		if got := c.v.IsFctForm(); got != c.fctForm {
			t.Errorf("%s: IsFctForm() = %v, want %v", c.name, got, c.fctForm)
		}
		if got := c.v.IsFct(); got != c.fct {
			t.Errorf("%s: IsFct() = %v, want %v", c.name, got, c.fct)
		}
		if got := c.v.IsUnnamed(); got != c.unnamed {
			t.Errorf("%s: IsUnnamed() = %v, want %v", c.name, got, c.unnamed)
		}
	}
}

func TestTagString(t *testing.T) {
	if got := TagPair.String(); got != "dottedpair" {
		t.Errorf("TagPair.String() = %q", got)
	}
	if got := TagUnnamedSF.String(); got != "unnamedsf" {
		t.Errorf("TagUnnamedSF.String() = %q", got)
	}
}
