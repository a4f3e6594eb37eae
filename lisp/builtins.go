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

import "math"

// builtinFunc implements one builtin operator. args is the (already
// evaluated, for functions; raw, for special forms) argument list; arEf is
// the un-evaluated operator atom, kept around only to name it in arity
// error messages exactly as check_arity does.
type builtinFunc func(i *Interp, args, arEf Value) Value

// builtinEntry describes one of the 40 builtin operators.
type builtinEntry struct {
	name  string
	arity int // -1 means variadic: no arity check is performed
	kind  Tag // TagBuiltinFn or TagBuiltinSF
	impl  builtinFunc
}

// builtinTable lists every builtin operator in its historical ordinal
// order. Ordinal position has no runtime significance here (dispatch is by
// atom index, not switch-case number), but the order is kept for
// readability against the original switch(f) statement.
var builtinTable = []builtinEntry{
	{"CAR", 1, TagBuiltinFn, biCar},
	{"CDR", 1, TagBuiltinFn, biCdr},
	{"CONS", 2, TagBuiltinFn, biCons},
	{"LAMBDA", 2, TagBuiltinSF, biLambda},
	{"SPECIAL", 2, TagBuiltinSF, biSpecial},
	{"SETQ", 2, TagBuiltinSF, biSetq},
	{"ATOM", 1, TagBuiltinFn, biAtom},
	{"NUMBERP", 1, TagBuiltinFn, biNumberp},
	{"QUOTE", 1, TagBuiltinSF, biQuote},
	{"LIST", -1, TagBuiltinFn, biList},
	{"DO", -1, TagBuiltinSF, biDo},
	{"COND", -1, TagBuiltinSF, biCond},
	{"PLUS", 2, TagBuiltinFn, biPlus},
	{"TIMES", 2, TagBuiltinFn, biTimes},
	{"DIFFERENCE", 2, TagBuiltinFn, biDifference},
	{"QUOTIENT", 2, TagBuiltinFn, biQuotient},
	{"POWER", 2, TagBuiltinFn, biPower},
	{"FLOOR", 1, TagBuiltinFn, biFloor},
	{"MINUS", 1, TagBuiltinFn, biMinus},
	{"LESSP", 2, TagBuiltinFn, biLessp},
	{"GREATERP", 2, TagBuiltinFn, biGreaterp},
	{"EVAL", 1, TagBuiltinFn, biEval},
	{"EQ", 2, TagBuiltinFn, biEq},
	{"AND", -1, TagBuiltinSF, biAnd},
	{"OR", -1, TagBuiltinSF, biOr},
	{"SUM", -1, TagBuiltinFn, biSum},
	{"PRODUCT", -1, TagBuiltinFn, biProduct},
	{"PUTPLIST", 2, TagBuiltinFn, biPutplist},
	{"GETPLIST", 1, TagBuiltinFn, biGetplist},
	{"READ", 0, TagBuiltinFn, biRead},
	{"PRINT", -1, TagBuiltinFn, biPrint},
	{"PRINTCR", -1, TagBuiltinFn, biPrintcr},
	{"MKATOM", 2, TagBuiltinFn, biMkatom},
	{"BODY", 1, TagBuiltinFn, biBody},
	{"RPLACA", 2, TagBuiltinFn, biRplaca},
	{"RPLACD", 2, TagBuiltinFn, biRplacd},
	{"TSETQ", 2, TagBuiltinSF, biTsetq},
	{"NULL", 1, TagBuiltinFn, biNull},
	{"SET", 2, TagBuiltinSF, biSet},
	{"EXIT", 0, TagBuiltinSF, biExit},
}

// installBuiltins interns every builtin's name and sets its atom value to
// the builtin-function or builtin-special-form tag carrying that same atom
// index, then indexes builtinByAtom for O(1) dispatch from evalPair.
func (i *Interp) installBuiltins() error {
	i.builtinByAtom = make(map[int32]*builtinEntry, len(builtinTable))
	for k := range builtinTable {
		e := &builtinTable[k]
		idx, err := i.atoms.intern(e.name)
		if err != nil {
			return err
		}
		if e.kind == TagBuiltinFn {
			i.atoms.setValue(idx, BuiltinFn(idx))
		} else {
			i.atoms.setValue(idx, BuiltinSF(idx))
		}
		i.builtinByAtom[idx] = e
	}
	return nil
}

// listLen counts the elements of a proper argument list.
func (i *Interp) listLen(p Value) int {
	n := 0
	for !i.IsNil(p) {
		n++
		p = i.cons.cdr(p.Idx)
	}
	return n
}

// checkArity raises ArityError unless p has exactly n elements. arEf names
// the offending operator in the message, mirroring check_arity's use of
// Atab[ptrv(f)].name.
func (i *Interp) checkArity(p Value, n int, arEf Value) {
	got := i.listLen(p)
	if got == n {
		return
	}
	name := i.operatorName(arEf)
	if got < n {
		raise(ArityError, "%s application: not enough arguments", name)
	}
	raise(ArityError, "%s application: too many arguments", name)
}

// operatorName resolves the printable name of the (possibly unevaluated)
// operator atom used only for diagnostics.
func (i *Interp) operatorName(arEf Value) string {
	if arEf.Tag == TagOrdAtom {
		return i.atoms.name(arEf.Idx)
	}
	return "?"
}

func (i *Interp) e1(args Value) Value { return i.cons.car(args.Idx) }
func (i *Interp) e2(args Value) Value { return i.cons.car(i.cons.cdr(args.Idx).Idx) }

func (i *Interp) numOf(v Value) float64 {
	if v.Tag != TagNumAtom {
		raise(TypeError, "not a number")
	}
	return i.nums.value(v.Idx)
}

func biCar(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 1, arEf)
	e1 := i.e1(args)
	if e1.Tag != TagPair {
		raise(ArgumentError, "illegal CAR argument")
	}
	return i.cons.car(e1.Idx)
}

func biCdr(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 1, arEf)
	e1 := i.e1(args)
	if e1.Tag != TagPair {
		raise(ArgumentError, "illegal CDR argument")
	}
	return i.cons.cdr(e1.Idx)
}

func biCons(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 2, arEf)
	e1, e2 := i.e1(args), i.e2(args)
	if !e1.IsSexp() || !e2.IsSexp() {
		raise(ArgumentError, "illegal CONS arguments")
	}
	return i.Cons(e1, e2)
}

func biLambda(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 2, arEf)
	body := i.Cons(i.e1(args), i.e2(args))
	return UnnamedFn(body.Idx)
}

func biSpecial(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 2, arEf)
	body := i.Cons(i.e1(args), i.e2(args))
	return UnnamedSF(body.Idx)
}

// assign implements the shared tail of SETQ/TSETQ/SET: evaluate the second
// argument, coerce a named-function-form result down to its raw body/
// ordinal the same way the original's "doit:" label does, and store it at
// the atom index t, then re-evaluate the atom to return its new value.
func (i *Interp) assign(t int32, rhs Value) Value {
	val := i.seval(rhs)
	switch val.Tag {
	case TagPair, TagOrdAtom, TagNumAtom:
		i.atoms.setValue(t, val)
	case TagBuiltinFn, TagBuiltinSF, TagUserFn, TagUserSF:
		i.atoms.setValue(t, i.atoms.value(val.Idx))
	case TagUnnamedFn:
		i.atoms.setValue(t, UnnamedFn(val.Idx))
	case TagUnnamedSF:
		i.atoms.setValue(t, UnnamedSF(val.Idx))
	}
	i.traceDepth--
	result := i.seval(OrdAtom(t))
	i.traceDepth++
	return result
}

func biSetq(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 2, arEf)
	f := i.e1(args)
	if f.Tag != TagOrdAtom {
		raise(ArgumentError, "illegal assignment")
	}
	return i.assign(f.Idx, i.e2(args))
}

func biTsetq(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 2, arEf)
	f := i.e1(args)
	if f.Tag != TagOrdAtom {
		raise(ArgumentError, "TSETQ application: first argument given is not an atom")
	}
	t := f.Idx
	bl := i.atoms.bindList(t)
	if i.IsNil(bl) {
		return i.assign(t, i.e2(args))
	}
	// Walk to the oldest saved binding (the last cell of the bind list) and
	// mutate its car in place, exactly as the original's "doit:" reuse via
	// endeaL=&A(v) does.
	cur := bl
	for !i.IsNil(i.cons.cdr(cur.Idx)) {
		cur = i.cons.cdr(cur.Idx)
	}
	val := i.seval(i.e2(args))
	switch val.Tag {
	case TagPair, TagOrdAtom, TagNumAtom:
		i.cons.setCar(cur.Idx, val)
	case TagBuiltinFn, TagBuiltinSF, TagUserFn, TagUserSF:
		i.cons.setCar(cur.Idx, i.atoms.value(val.Idx))
	case TagUnnamedFn:
		i.cons.setCar(cur.Idx, UnnamedFn(val.Idx))
	case TagUnnamedSF:
		i.cons.setCar(cur.Idx, UnnamedSF(val.Idx))
	}
	i.traceDepth--
	result := i.seval(OrdAtom(t))
	i.traceDepth++
	return result
}

func biSet(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 2, arEf)
	f := i.seval(i.e1(args))
	if f.Tag != TagOrdAtom {
		raise(ArgumentError, "SET application: evaluated first argument is not an atom")
	}
	return i.assign(f.Idx, i.e2(args))
}

func biAtom(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 1, arEf)
	e1 := i.e1(args)
	if e1.Tag == TagOrdAtom || e1.Tag == TagNumAtom {
		return i.tValue()
	}
	return i.nilValue()
}

func biNumberp(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 1, arEf)
	if i.e1(args).Tag == TagNumAtom {
		return i.tValue()
	}
	return i.nilValue()
}

func biQuote(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 1, arEf)
	return i.e1(args)
}

func biList(i *Interp, args, arEf Value) Value { return args }

func biDo(i *Interp, args, arEf Value) Value {
	result := i.nilValue()
	for !i.IsNil(args) {
		result = i.seval(i.cons.car(args.Idx))
		args = i.cons.cdr(args.Idx)
	}
	return result
}

func biCond(i *Interp, args, arEf Value) Value {
	for !i.IsNil(args) {
		clause := i.cons.car(args.Idx)
		test := i.cons.car(clause.Idx)
		if !i.IsNil(i.seval(test)) {
			return i.seval(i.e1(i.cons.cdr(clause.Idx)))
		}
		args = i.cons.cdr(args.Idx)
	}
	return i.nilValue()
}

func biPlus(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 2, arEf)
	return i.NumAtom(i.numOf(i.e1(args)) + i.numOf(i.e2(args)))
}

func biTimes(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 2, arEf)
	return i.NumAtom(i.numOf(i.e1(args)) * i.numOf(i.e2(args)))
}

func biDifference(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 2, arEf)
	return i.NumAtom(i.numOf(i.e1(args)) - i.numOf(i.e2(args)))
}

func biQuotient(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 2, arEf)
	return i.NumAtom(i.numOf(i.e1(args)) / i.numOf(i.e2(args)))
}

func biPower(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 2, arEf)
	return i.NumAtom(math.Pow(i.numOf(i.e1(args)), i.numOf(i.e2(args))))
}

func biFloor(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 1, arEf)
	return i.NumAtom(math.Floor(i.numOf(i.e1(args))))
}

func biMinus(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 1, arEf)
	return i.NumAtom(-i.numOf(i.e1(args)))
}

func biLessp(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 2, arEf)
	if i.numOf(i.e1(args)) < i.numOf(i.e2(args)) {
		return i.tValue()
	}
	return i.nilValue()
}

func biGreaterp(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 2, arEf)
	if i.numOf(i.e1(args)) > i.numOf(i.e2(args)) {
		return i.tValue()
	}
	return i.nilValue()
}

func biEval(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 1, arEf)
	return i.seval(i.e1(args))
}

func biEq(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 2, arEf)
	e1, e2 := i.e1(args), i.e2(args)
	if e1.Tag == e2.Tag && e1.Idx == e2.Idx {
		return i.tValue()
	}
	return i.nilValue()
}

func biAnd(i *Interp, args, arEf Value) Value {
	for !i.IsNil(args) {
		if i.IsNil(i.seval(i.cons.car(args.Idx))) {
			return i.nilValue()
		}
		args = i.cons.cdr(args.Idx)
	}
	return i.tValue()
}

func biOr(i *Interp, args, arEf Value) Value {
	for !i.IsNil(args) {
		if !i.IsNil(i.seval(i.cons.car(args.Idx))) {
			return i.tValue()
		}
		args = i.cons.cdr(args.Idx)
	}
	return i.nilValue()
}

func biSum(i *Interp, args, arEf Value) Value {
	s := 0.0
	for !i.IsNil(args) {
		v := i.cons.car(args.Idx)
		if v.Tag != TagNumAtom {
			raise(TypeError, "SUM application: trying to sum a non-number value")
		}
		s += i.numOf(v)
		args = i.cons.cdr(args.Idx)
	}
	return i.NumAtom(s)
}

func biProduct(i *Interp, args, arEf Value) Value {
	s := 1.0
	for !i.IsNil(args) {
		v := i.cons.car(args.Idx)
		if v.Tag != TagNumAtom {
			raise(TypeError, "PRODUCT application: trying to multiply a non-number value")
		}
		s *= i.numOf(v)
		args = i.cons.cdr(args.Idx)
	}
	return i.NumAtom(s)
}

func biPutplist(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 2, arEf)
	e1 := i.e1(args)
	if e1.Tag != TagOrdAtom {
		raise(ArgumentError, "PUTPLIST application: the first argument is not an atom")
	}
	i.atoms.setPlist(e1.Idx, i.e2(args))
	return i.e2(args)
}

func biGetplist(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 1, arEf)
	e1 := i.e1(args)
	if e1.Tag != TagOrdAtom {
		raise(ArgumentError, "GETPLIST application: the first argument is not an atom")
	}
	return i.atoms.plist(e1.Idx)
}

func biRead(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 0, arEf)
	i.Print("n>")
	v, err := i.Read()
	if err != nil {
		panic(exitRequest{Code: 0})
	}
	return v
}

func biPrint(i *Interp, args, arEf Value) Value {
	if i.IsNil(args) {
		i.Print(" ")
		return i.nilValue()
	}
	for !i.IsNil(args) {
		i.Print(i.Write(i.cons.car(args.Idx)))
		i.Print(" ")
		args = i.cons.cdr(args.Idx)
	}
	return i.nilValue()
}

func biPrintcr(i *Interp, args, arEf Value) Value {
	if i.IsNil(args) {
		i.Print("\n")
		return i.nilValue()
	}
	for !i.IsNil(args) {
		i.Print(i.Write(i.cons.car(args.Idx)))
		i.Print("\n")
		args = i.cons.cdr(args.Idx)
	}
	return i.nilValue()
}

func biMkatom(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 2, arEf)
	e1, e2 := i.e1(args), i.e2(args)
	if e1.Tag != TagOrdAtom || e2.Tag != TagOrdAtom {
		raise(ArgumentError, "MKATOM application: arguments must be atoms")
	}
	name := i.atoms.name(e1.Idx) + i.atoms.name(e2.Idx)
	v, err := i.Intern(name)
	if err != nil {
		raise(AtomTableFull, "%s", err.Error())
	}
	return v
}

func biBody(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 1, arEf)
	e1 := i.e1(args)
	if e1.IsUnnamed() {
		return Pair(e1.Idx)
	}
	if e1.IsUserDef() {
		return Pair(i.atoms.value(e1.Idx).Idx)
	}
	raise(ArgumentError, "BODY application: illegal argument")
	panic("unreachable")
}

func biRplaca(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 2, arEf)
	e1 := i.e1(args)
	if e1.Tag != TagPair {
		raise(ArgumentError, "illegal RPLACA argument")
	}
	i.cons.setCar(e1.Idx, i.e2(args))
	return e1
}

func biRplacd(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 2, arEf)
	e1 := i.e1(args)
	if e1.Tag != TagPair {
		raise(ArgumentError, "illegal RPLACD argument")
	}
	i.cons.setCdr(e1.Idx, i.e2(args))
	return e1
}

func biNull(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 1, arEf)
	if i.IsNil(i.e1(args)) {
		return i.tValue()
	}
	return i.nilValue()
}

func biExit(i *Interp, args, arEf Value) Value {
	i.checkArity(args, 0, arEf)
	panic(exitRequest{Code: 0})
}
