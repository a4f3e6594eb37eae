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

// Package lispinit loads the standard library of predefined functions and
// special forms that the interpreter's core leaves out: APPEND, REVERSE,
// EQUAL, APPLY, MEMBER, ASSOC, INTO, ONTO, NPROP, PUTPROP, GETPROP, REMPROP
// and NOT, exactly as the original's initlisp comment describes reading
// them in from a file named lispinit at startup.
package lispinit

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"govlisp/lisp"
)

// Default is the bootstrap library text loaded when no -lib file overrides
// it. It is itself valid input to the interpreter: a sequence of top-level
// SETQ forms binding each name to a LAMBDA or SPECIAL value, read and
// evaluated the same way any other source text would be.
const Default = `
(SETQ NOT (LAMBDA (X) (COND (X NIL) (T T))))

(SETQ APPEND (LAMBDA (L M)
  (COND ((NULL L) M)
        (T (CONS (CAR L) (APPEND (CDR L) M))))))

(SETQ REVERSE (LAMBDA (L)
  (COND ((NULL L) NIL)
        (T (APPEND (REVERSE (CDR L)) (CONS (CAR L) NIL))))))

(SETQ EQUAL (LAMBDA (X Y)
  (COND ((ATOM X) (COND ((ATOM Y) (EQ X Y)) (T NIL)))
        ((ATOM Y) NIL)
        ((EQUAL (CAR X) (CAR Y)) (EQUAL (CDR X) (CDR Y)))
        (T NIL))))

(SETQ MEMBER (LAMBDA (X L)
  (COND ((NULL L) NIL)
        ((EQUAL X (CAR L)) L)
        (T (MEMBER X (CDR L))))))

(SETQ ASSOC (LAMBDA (X L)
  (COND ((NULL L) NIL)
        ((EQUAL X (CAR (CAR L))) (CAR L))
        (T (ASSOC X (CDR L))))))

(SETQ INTO (SPECIAL (X L) (SET L (CONS (EVAL X) (EVAL L)))))

(SETQ ONTO (SPECIAL (X L) (SET L (APPEND (EVAL L) (CONS (EVAL X) NIL)))))

(SETQ QUOTEEACH (LAMBDA (L)
  (COND ((NULL L) NIL)
        (T (CONS (LIST (QUOTE QUOTE) (CAR L)) (QUOTEEACH (CDR L)))))))

(SETQ APPLY (LAMBDA (F L) (EVAL (CONS F (QUOTEEACH L)))))

(SETQ NPROPHELPER (LAMBDA (P L)
  (COND ((NULL L) NIL)
        ((EQ P (CAR L)) T)
        (T (NPROPHELPER P (CDR (CDR L)))))))

(SETQ NPROP (LAMBDA (A P) (NPROPHELPER P (GETPLIST A))))

(SETQ PUTPROP (LAMBDA (A P V) (DO (PUTPLIST A (CONS P (CONS V (GETPLIST A)))) V)))

(SETQ GETPROPHELPER (LAMBDA (P L)
  (COND ((NULL L) NIL)
        ((EQ P (CAR L)) (CAR (CDR L)))
        (T (GETPROPHELPER P (CDR (CDR L)))))))

(SETQ GETPROP (LAMBDA (A P) (GETPROPHELPER P (GETPLIST A))))

(SETQ REMPROPHELPER (LAMBDA (P L)
  (COND ((NULL L) NIL)
        ((EQ P (CAR L)) (CDR (CDR L)))
        (T (CONS (CAR L) (CONS (CAR (CDR L)) (REMPROPHELPER P (CDR (CDR L)))))))))

(SETQ REMPROP (LAMBDA (A P) (PUTPLIST A (REMPROPHELPER P (GETPLIST A)))))
`

// Load pushes r as the interpreter's current input stream and evaluates
// every top-level form it contains, discarding each result. Reading stops
// only when the whole input stack is exhausted: once r runs out, any
// streams pushed before it are read and evaluated as well, so r is the
// only stream that should be on the stack. An interpreter error raised while loading is fatal:
// a malformed library is a setup failure, not a user-recoverable REPL error.
func Load(i *lisp.Interp, r io.Reader) (err error) {
	i.PushInput(r)
	defer func() {
		if rec := recover(); rec != nil {
			if lerr, ok := rec.(*lisp.Error); ok {
				err = errors.Wrapf(lerr, "loading library")
				return
			}
			panic(rec)
		}
	}()
	for {
		v, rerr := i.Read()
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return errors.Wrap(rerr, "reading library")
		}
		i.Eval(v)
	}
}

// LoadDefault loads the embedded Default library text.
func LoadDefault(i *lisp.Interp) error {
	return Load(i, strings.NewReader(Default))
}
