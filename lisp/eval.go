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

import "strconv"

// Eval evaluates the S-expression v and returns its value. This is the
// public entry point; Interp.seval is the recursive worker, matching the
// split between a top-level call and the self-recursive original.
func (i *Interp) Eval(v Value) Value {
	return i.seval(v)
}

// asList walks a proper list value into a Go slice of its elements. v must
// be NIL or a chain of pairs ending in NIL.
func (i *Interp) asList(v Value) []Value {
	var out []Value
	for !i.IsNil(v) {
		if v.Tag != TagPair {
			raise(ArgumentError, "improper list where a proper list was expected")
		}
		out = append(out, i.cons.car(v.Idx))
		v = i.cons.cdr(v.Idx)
	}
	return out
}

// seval is the evaluator core: atom dispatch for non-pair values, pair
// dispatch (function/special-form application) for pairs.
func (i *Interp) seval(p Value) Value {
	i.trace(p, false)

	if p.Tag != TagPair {
		return i.evalAtomic(p)
	}

	return i.traceReturn(i.evalPair(p))
}

// evalAtomic implements the non-type-0 half of seval: atom dereferencing,
// named-function/SF resolution, and !-pragma handling.
func (i *Interp) evalAtomic(p Value) Value {
	if p.Tag != TagOrdAtom {
		// Non-atom, non-pair: number atoms and function/SF values evaluate
		// to themselves.
		return i.traceReturn(p)
	}

	j := p.Idx
	name := i.atoms.name(j)
	if len(name) > 0 && name[0] == '!' {
		i.traceDepth = boolToTrace(name == "!TRACE")
		panic(tracePragma{})
	}

	val := i.atoms.value(j)
	if val.Tag == TagUndef {
		raise(UndefinedVariable, "%s is undefined", name)
	}
	if isNamedFctForm(val.Tag) {
		return i.traceReturn(namedFormValue(val.Tag, j))
	}
	return i.traceReturn(val)
}

func boolToTrace(on bool) int {
	if on {
		return 1
	}
	return 0
}

// isNamedFctForm reports whether t is one of the four named function/SF
// tags (builtin or user-defined).
func isNamedFctForm(t Tag) bool {
	return t == TagBuiltinFn || t == TagBuiltinSF || t == TagUserFn || t == TagUserSF
}

// namedFormValue builds the typed pointer {t, j} seval returns in place of
// an ordinary atom's value when that value is itself a named function or
// special form: the atom index, tagged with which of the four kinds it is.
func namedFormValue(t Tag, j int32) Value {
	switch t {
	case TagBuiltinFn:
		return BuiltinFn(j)
	case TagBuiltinSF:
		return BuiltinSF(j)
	case TagUserFn:
		return UserFn(j)
	default:
		return UserSF(j)
	}
}

// evalPair implements the pair-dispatch half of seval: resolve the
// function/SF being applied, evaluate arguments for functions (not special
// forms), then either run a builtin or shallow-bind and evaluate a
// user-defined/unnamed body.
func (i *Interp) evalPair(p Value) Value {
	arEf := i.cons.car(p.Idx)

	// Root the form on currentin for the whole application; the pushed
	// cells are popped again before returning.
	frame := i.Cons(p, i.atoms.value(i.currentinAtom))
	i.atoms.setValue(i.currentinAtom, frame)

	i.traceDepth--
	f := i.seval(arEf)
	i.traceDepth++

	if !f.IsFctForm() {
		raise(NotCallable, "invalid function or special form")
	}
	// Keep an unnamed form's (params . body) cell alive as well.
	i.atoms.setValue(i.currentinAtom, i.Cons(f, frame))

	fIdx := f.Idx
	unnamed := f.IsUnnamed()
	if !unnamed {
		// Dereference through the naming atom to the actual function/SF
		// value (its body pair, or its builtin ordinal encoded as the same
		// atom index).
		fIdx = i.atoms.value(fIdx).Idx
	}

	args := i.cons.cdr(p.Idx)

	if f.IsFct() {
		args = i.evalArgList(args)
		i.atoms.setValue(i.currentinAtom, i.Cons(args, i.atoms.value(i.currentinAtom)))
	}

	var result Value
	if f.IsBuiltin() {
		result = i.callBuiltin(fIdx, args, arEf)
	} else {
		result = i.applyUserDefined(fIdx, args, f.Tag == TagUnnamedFn || f.Tag == TagUserFn)
	}
	i.atoms.setValue(i.currentinAtom, i.cons.cdr(frame.Idx))
	return result
}

// evalArgList evaluates each element of a supplied-argument list left to
// right, building a fresh list of the results. The partial result list is
// kept in the car of a cell pushed onto eaL while later arguments are
// evaluated, and that cell is popped before returning.
func (i *Interp) evalArgList(p Value) Value {
	frame := i.Cons(i.nilValue(), i.atoms.value(i.eaLAtom))
	i.atoms.setValue(i.eaLAtom, frame)
	head := i.nilValue()
	tail := int32(-1)
	for !i.IsNil(p) {
		v := i.seval(i.cons.car(p.Idx))
		cell := i.Cons(v, i.nilValue())
		if tail < 0 {
			head = cell
			i.cons.setCar(frame.Idx, head)
		} else {
			i.cons.setCdr(tail, cell)
		}
		tail = cell.Idx
		p = i.cons.cdr(p.Idx)
	}
	i.atoms.setValue(i.eaLAtom, i.cons.cdr(frame.Idx))
	return head
}

// callBuiltin dispatches to one of the 40 builtin operators, identified by
// fIdx (the atom-table index of the builtin's naming atom, which doubles as
// its ordinal via the builtins table built at startup; see builtins.go).
func (i *Interp) callBuiltin(fIdx int32, args, arEf Value) Value {
	b := i.builtinByAtom[fIdx]
	return b.impl(i, args, arEf)
}

// applyUserDefined shallow-binds the formal parameters of a user-defined or
// unnamed function/special form to the supplied argument values, evaluates
// the body, then unbinds in reverse order.
//
// fIdx is the cons-area index of the (params . body) pair: for named forms
// this is Atab[j].L's pointer value; for unnamed forms it is the literal
// pointer value of the LAMBDA/SPECIAL result.
func (i *Interp) applyUserDefined(fIdx int32, args Value, isFunction bool) Value {
	params := i.cons.car(fIdx)
	body := i.cons.cdr(fIdx)

	if params.Tag == TagOrdAtom && !i.IsNil(params) {
		t := params.Idx
		i.atoms.setBindList(t, i.Cons(i.atoms.value(t), i.atoms.bindList(t)))
		i.atoms.setValue(t, args)
		result := i.seval(body)
		i.atoms.setValue(t, i.Car(i.atoms.bindList(t)))
		i.atoms.setBindList(t, i.Cdr(i.atoms.bindList(t)))
		return result
	}

	var bound []int32
	fa := params
	p := args
	for !i.IsNil(p) && fa.Tag == TagPair {
		t := i.cons.car(fa.Idx).Idx
		fa = i.cons.cdr(fa.Idx)
		i.atoms.setBindList(t, i.Cons(i.atoms.value(t), i.atoms.bindList(t)))
		v := i.cons.car(p.Idx)
		if isNamedFctForm(v.Tag) {
			v = i.atoms.value(v.Idx)
		}
		i.atoms.setValue(t, v)
		bound = append(bound, t)
		p = i.cons.cdr(p.Idx)
	}
	if !i.IsNil(p) {
		raise(ArityError, "too many actual arguments")
	}

	result := i.seval(body)

	for k := len(bound) - 1; k >= 0; k-- {
		t := bound[k]
		i.atoms.setValue(t, i.Car(i.atoms.bindList(t)))
		i.atoms.setBindList(t, i.Cdr(i.atoms.bindList(t)))
	}
	_ = isFunction
	return result
}

// trace and traceReturn implement the !TRACE pragma's "N eval:"/"N result:"
// console annotations.
func (i *Interp) trace(v Value, result bool) {
	if i.traceDepth <= 0 {
		return
	}
	if result {
		i.Print(strconv.Itoa(i.traceDepth) + " result:")
		i.traceDepth--
	} else {
		i.traceDepth++
		i.Print(strconv.Itoa(i.traceDepth) + " eval:")
	}
}

func (i *Interp) traceReturn(v Value) Value {
	i.trace(v, true)
	return v
}
