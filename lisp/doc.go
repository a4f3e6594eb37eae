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

// Package lisp implements a small classical LISP interpreter in the style
// of Knott's Interpreting LISP: tagged-value S-expressions over two
// independent, fixed-size heaps (a list area of (car, cdr) cells and a
// number table) plus an atom table whose entries are never freed, a
// mark-sweep collector spanning both heaps, a shallow-binding evaluator,
// and a hand-written reader supporting
// the @filename stream-switching directive.
//
// Unlike the original's bit-packed 32-bit typed pointers, a Value here is
// an explicit (Tag, Idx) pair — see Value and Tag — so the garbage
// collector's mark bit lives in its own array rather than stealing a bit of
// a cons cell's car.
//
// Binding is dynamic, not lexical: applying a user-defined function or
// special form shallow-binds its formal parameters directly in the atom
// table, shadowing any outer binding of the same name for the duration of
// the call and restoring it on return (or on error, via Interp.unwind).
package lisp
