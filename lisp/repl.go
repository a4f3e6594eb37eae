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

import "io"

// unwind resets every piece of GC-root/evaluator state that an error or the
// !TRACE pragma could have left mid-update: the currentin/eaL/sreadlist
// root-holders, the trace depth, and — the part with no analogue in a
// normal return path — every atom's bind list, walked back to its single
// global (unbound) value. A longjmp in the original abandons the C stack
// entirely and these lists are left exactly as they were at the point of
// the error, still holding every shadow pushed by every active shallow
// binding; unwind is what puts them back.
func (i *Interp) unwind() {
	i.atoms.setValue(i.currentinAtom, i.nilValue())
	i.atoms.setValue(i.eaLAtom, i.nilValue())
	i.atoms.setValue(i.skAtom, i.nilValue())
	i.traceDepth = 0
	for j := range i.atoms.slots {
		e := &i.atoms.slots[j]
		for !i.IsNil(e.bind) {
			e.val = i.cons.car(e.bind.Idx)
			e.bind = i.cons.cdr(e.bind.Idx)
		}
	}
}

// Run drives the read-eval-print loop to completion: each iteration prints
// the "*" prompt, evaluates one top-level form, and prints its result. A
// raised *Error is reported as "::" + message and the loop recovers and
// continues (unwinding bind lists first); an exitRequest or a clean io.EOF
// on Read ends the loop. Run returns the process exit code to use.
func (i *Interp) Run() int {
	for {
		code, done := i.runOnce()
		if done {
			return code
		}
	}
}

// runOnce executes a single prompt-read-eval-print cycle under recover, so
// a panic from deep inside Eval unwinds cleanly back here instead of taking
// down the whole process.
func (i *Interp) runOnce() (code int, done bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch e := r.(type) {
		case exitRequest:
			code, done = e.Code, true
		case *Error:
			i.unwind()
			i.Print("::" + e.Msg + "\n")
		case tracePragma:
			// The !TRACE pragma only ever sets traceDepth (see evalAtomic)
			// and jumps straight back to the prompt; unlike a real error it
			// does not reset the root-holder atoms or bind lists.
		default:
			panic(r)
		}
	}()

	i.Print("* ")
	v, err := i.Read()
	if err == io.EOF {
		return 0, true
	}
	result := i.Eval(v)
	i.Print(i.Write(result))
	i.Print("\n")
	return 0, false
}
