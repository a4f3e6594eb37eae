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

import (
	"fmt"
	"io"
)

const (
	defaultAtoms = 1024
	defaultNums  = 1024
	defaultCells = 8192
)

// Option configures an Interp at construction time, mirroring the teacher
// package's functional-options pattern (vm.Option / vm.DataSize / vm.Input).
type Option func(*Interp) error

// AtomTableSize sets the atom table capacity (m).
func AtomTableSize(size int) Option {
	return func(i *Interp) error {
		if size < 64 {
			return newError(Internal, "atom table size too small: %d", size)
		}
		i.atomSize = size
		return nil
	}
}

// NumberTableSize sets the number table capacity (n).
func NumberTableSize(size int) Option {
	return func(i *Interp) error {
		if size < 16 {
			return newError(Internal, "number table size too small: %d", size)
		}
		i.numSize = size
		return nil
	}
}

// ListAreaSize sets the cons area capacity (l).
func ListAreaSize(size int) Option {
	return func(i *Interp) error {
		if size < 16 {
			return newError(Internal, "list area size too small: %d", size)
		}
		i.listSize = size
		return nil
	}
}

// Input pushes r onto the input stream stack as the initial source.
func Input(r io.Reader) Option {
	return func(i *Interp) error { i.PushInput(r); return nil }
}

// Output sets the writer that PRINT/PRINTCR and the REPL's prompts/results
// write to (typically wrapped to also mirror to a log file; see
// internal/outw).
func Output(w io.Writer) Option {
	return func(i *Interp) error { i.output = w; return nil }
}

// Interp is a single interpreter instance: the atom table, number table,
// cons area, input/output plumbing, and evaluator state (trace depth, the
// three root-holder atoms). There is exactly one mutator, matching spec.md
// §5's single-threaded, strictly-synchronous model.
type Interp struct {
	atoms *atomTable
	nums  *numberTable
	cons  *consArea

	atomSize, numSize, listSize int

	// gcMark holds the GC mark bit for each cons cell, kept off to the side
	// rather than stealing a bit of car (spec.md §9).
	gcMark []bool

	// Special atoms, interned once at startup and never freed.
	nilAtom, tAtom, quoteAtom      int32
	currentinAtom, eaLAtom, skAtom int32

	// scratchA/scratchB are GC roots for the two values mid-flight into a
	// Cons call that has to collect before it can allocate (spec.md §4.4's
	// "mark x and y as GC roots, run GC, retry").
	scratchA, scratchB Value

	traceDepth int

	input  *streamStack
	output io.Writer
	lex    *lexer

	builtinByAtom map[int32]*builtinEntry

	gcCount int
}

// New creates an Interp ready to read and evaluate S-expressions. NIL, T and
// QUOTE are interned, the 40 builtins are installed, and the three private
// root-holder atoms (currentin, eaL, sreadlist) are created with an empty
// list value.
func New(opts ...Option) (*Interp, error) {
	i := &Interp{
		atomSize: defaultAtoms,
		numSize:  defaultNums,
		listSize: defaultCells,
		output:   io.Discard,
		input:    newStreamStack(),
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	i.atoms = newAtomTable(i.atomSize)
	i.nums = newNumberTable(i.numSize)
	i.cons = newConsArea(i.listSize)
	i.gcMark = make([]bool, i.listSize)

	if err := i.installBuiltins(); err != nil {
		return nil, err
	}

	nilIdx, err := i.atoms.intern("NIL")
	if err != nil {
		return nil, err
	}
	i.nilAtom = nilIdx
	i.atoms.setValue(nilIdx, OrdAtom(nilIdx))
	i.atoms.empty = OrdAtom(nilIdx)
	for j := range i.atoms.slots {
		i.atoms.slots[j].bind = i.atoms.empty
		i.atoms.slots[j].plist = i.atoms.empty
	}

	tIdx, err := i.atoms.intern("T")
	if err != nil {
		return nil, err
	}
	i.tAtom = tIdx
	i.atoms.setValue(tIdx, OrdAtom(tIdx))

	quoteIdx, err := i.atoms.intern("QUOTE")
	if err != nil {
		return nil, err
	}
	i.quoteAtom = quoteIdx

	if i.currentinAtom, err = i.atoms.intern("currentin"); err != nil {
		return nil, err
	}
	if i.eaLAtom, err = i.atoms.intern("eaL"); err != nil {
		return nil, err
	}
	if i.skAtom, err = i.atoms.intern("sreadlist"); err != nil {
		return nil, err
	}
	i.atoms.setValue(i.currentinAtom, i.nilValue())
	i.atoms.setValue(i.eaLAtom, i.nilValue())
	i.atoms.setValue(i.skAtom, i.nilValue())

	return i, nil
}

// nilValue returns the canonical NIL tagged value.
func (i *Interp) nilValue() Value { return OrdAtom(i.nilAtom) }

// tValue returns the canonical T tagged value.
func (i *Interp) tValue() Value { return OrdAtom(i.tAtom) }

// IsNil reports whether v is the NIL atom.
func (i *Interp) IsNil(v Value) bool { return v.Tag == TagOrdAtom && v.Idx == i.nilAtom }

// AtomName returns the printable name of an ordinary-atom-tagged value.
func (i *Interp) AtomName(v Value) string { return i.atoms.name(v.Idx) }

// Intern returns (interning if necessary) the ordinary atom named by name,
// which must already be upper-cased.
func (i *Interp) Intern(name string) (Value, error) {
	idx, err := i.atoms.intern(name)
	if err != nil {
		return Value{}, err
	}
	return OrdAtom(idx), nil
}

// Car returns the car of a pair-tagged value, raising ArgumentError otherwise.
func (i *Interp) Car(v Value) Value {
	if v.Tag != TagPair {
		raise(ArgumentError, "illegal CAR argument")
	}
	return i.cons.car(v.Idx)
}

// Cdr returns the cdr of a pair-tagged value, raising ArgumentError otherwise.
func (i *Interp) Cdr(v Value) Value {
	if v.Tag != TagPair {
		raise(ArgumentError, "illegal CDR argument")
	}
	return i.cons.cdr(v.Idx)
}

// Rplaca destructively sets the car of a pair.
func (i *Interp) Rplaca(v, x Value) {
	if v.Tag != TagPair {
		raise(ArgumentError, "illegal RPLACA argument")
	}
	i.cons.setCar(v.Idx, x)
}

// Rplacd destructively sets the cdr of a pair.
func (i *Interp) Rplacd(v, y Value) {
	if v.Tag != TagPair {
		raise(ArgumentError, "illegal RPLACD argument")
	}
	i.cons.setCdr(v.Idx, y)
}

// Cons allocates a new pair (x . y), running the garbage collector and
// retrying once if the list area is full; it raises OutOfSpace if the area
// is still full afterward.
func (i *Interp) Cons(x, y Value) Value {
	if idx, ok := i.cons.tryAlloc(x, y); ok {
		return Pair(idx)
	}
	i.scratchA, i.scratchB = x, y
	i.gc()
	i.scratchA, i.scratchB = Value{}, Value{}
	if idx, ok := i.cons.tryAlloc(x, y); ok {
		return Pair(idx)
	}
	raise(OutOfSpace, "out of space")
	panic("unreachable")
}

// NumAtom interns x as a number atom, triggering GC pre-emptively once the
// table is 80% full (spec.md §4.3) and again on table-full if no GC has run
// yet for this call.
func (i *Interp) NumAtom(x float64) Value {
	if x != x { // NaN: see DESIGN.md's Open Question decision.
		raise(TypeError, "NaN is not a valid number")
	}
	if slot, ok := i.nums.find(x); ok {
		return NumAtom(slot)
	}
	collected := false
	if i.nums.full80() {
		i.gc()
		collected = true
		if slot, ok := i.nums.find(x); ok {
			return NumAtom(slot)
		}
	}
	slot, err := i.nums.insert(x)
	if err != nil && !collected {
		i.gc()
		slot, err = i.nums.insert(x)
	}
	if err != nil {
		raise(NumberTableFull, "%s", err.Error())
	}
	return NumAtom(slot)
}

// NumValue returns the float64 stored in a number-atom-tagged value.
func (i *Interp) NumValue(v Value) float64 {
	if v.Tag != TagNumAtom {
		raise(TypeError, "not a number")
	}
	return i.nums.value(v.Idx)
}

// List builds a proper list out of vs, right to left.
func (i *Interp) List(vs ...Value) Value {
	res := i.nilValue()
	for k := len(vs) - 1; k >= 0; k-- {
		res = i.Cons(vs[k], res)
	}
	return res
}

// Print writes s to the configured output.
func (i *Interp) Print(s string) {
	fmt.Fprint(i.output, s)
}

// InstructionCount-equivalent telemetry: number of collections run so far.
func (i *Interp) GCCount() int { return i.gcCount }
