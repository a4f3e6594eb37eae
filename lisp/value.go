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

// Tag is the type discriminant of a Value. The numeric assignments match the
// high-nibble tag codes of the original tagged-pointer encoding; only their
// ordering and set membership matter here, since a Value is represented as an
// explicit (Tag, index) pair rather than packed into a machine word.
type Tag uint8

// Value tags.
const (
	TagPair      Tag = 0  // dottedpair
	TagUndef     Tag = 1  // undef
	TagOrdAtom   Tag = 8  // ordatom
	TagNumAtom   Tag = 9  // numatom
	TagBuiltinFn Tag = 10 // builtinfn
	TagBuiltinSF Tag = 11 // builtinsf
	TagUserFn    Tag = 12 // userfn
	TagUserSF    Tag = 13 // usersf
	TagUnnamedFn Tag = 14 // unnamedfn
	TagUnnamedSF Tag = 15 // unnamedsf
)

// Value is a tagged pointer: a type tag plus an index into the table that
// tag's variant lives in (the atom table for TagOrdAtom/TagBuiltinFn/
// TagBuiltinSF/TagUserFn/TagUserSF, the number table for TagNumAtom, the
// cons area for TagPair/TagUnnamedFn/TagUnnamedSF). Equality on Values
// (plain Go ==) reflects "same table slot".
type Value struct {
	Tag Tag
	Idx int32
}

// Pair builds a TagPair value pointing at cons cell idx.
func Pair(idx int32) Value { return Value{TagPair, idx} }

// Undef builds a TagUndef value; only ever used as an atom's uninitialized L.
func Undef(idx int32) Value { return Value{TagUndef, idx} }

// OrdAtom builds a TagOrdAtom value pointing at atom table slot idx.
func OrdAtom(idx int32) Value { return Value{TagOrdAtom, idx} }

// NumAtom builds a TagNumAtom value pointing at number table slot idx.
func NumAtom(idx int32) Value { return Value{TagNumAtom, idx} }

// BuiltinFn builds a reference to builtin function ordinal idx.
func BuiltinFn(idx int32) Value { return Value{TagBuiltinFn, idx} }

// BuiltinSF builds a reference to builtin special form ordinal idx.
func BuiltinSF(idx int32) Value { return Value{TagBuiltinSF, idx} }

// UserFn builds a named-function value: idx is the atom slot carrying the
// binding, per seval's "return tp(tag, index_of_p)" rule.
func UserFn(idx int32) Value { return Value{TagUserFn, idx} }

// UserSF builds a named-special-form value, same convention as UserFn.
func UserSF(idx int32) Value { return Value{TagUserSF, idx} }

// UnnamedFn builds an unnamed-function value: idx is the cons cell holding
// (params . body).
func UnnamedFn(idx int32) Value { return Value{TagUnnamedFn, idx} }

// UnnamedSF builds an unnamed-special-form value, same convention as UnnamedFn.
func UnnamedSF(idx int32) Value { return Value{TagUnnamedSF, idx} }

// IsSexp reports whether v is an S-expression: a pair, ordinary atom, or
// number atom (t ∈ {0,8,9}).
func (v Value) IsSexp() bool {
	switch v.Tag {
	case TagPair, TagOrdAtom, TagNumAtom:
		return true
	}
	return false
}

// IsFctForm reports whether v is a function or special form, named or not
// (t > 9).
func (v Value) IsFctForm() bool { return v.Tag > 9 }

// IsBuiltin reports whether v is a builtin function or special form.
func (v Value) IsBuiltin() bool { return v.Tag == TagBuiltinFn || v.Tag == TagBuiltinSF }

// IsUserDef reports whether v is a named user-defined function or special form.
func (v Value) IsUserDef() bool { return v.Tag == TagUserFn || v.Tag == TagUserSF }

// IsUnnamed reports whether v is the direct result of LAMBDA/SPECIAL.
func (v Value) IsUnnamed() bool { return v.Tag == TagUnnamedFn || v.Tag == TagUnnamedSF }

// IsFct reports whether v is an ordinary function (pre-evaluates arguments),
// as opposed to a special form (t ∈ {10,12,14}).
func (v Value) IsFct() bool {
	switch v.Tag {
	case TagBuiltinFn, TagUserFn, TagUnnamedFn:
		return true
	}
	return false
}

// isListBearing reports whether v's index refers directly into the cons
// area: plain pairs and the two unnamed function/special-form tags, whose
// index is the (params . body) cell built by LAMBDA/SPECIAL.
func (v Value) isListBearing() bool {
	switch v.Tag {
	case TagPair, TagUnnamedFn, TagUnnamedSF:
		return true
	}
	return false
}

// isAtomBearing reports whether v's index refers into the atom table:
// ordinary atoms, builtins (whose index doubles as their ordinal), and
// named user-defined functions/special forms, whose index is the defining
// atom's slot, not a cons cell (that atom's own L field is what holds the
// (params . body) pair, and is marked when the atom itself is visited).
func (v Value) isAtomBearing() bool {
	switch v.Tag {
	case TagOrdAtom, TagBuiltinFn, TagBuiltinSF, TagUserFn, TagUserSF:
		return true
	}
	return false
}

// String names a tag, for diagnostics.
func (t Tag) String() string {
	switch t {
	case TagPair:
		return "dottedpair"
	case TagUndef:
		return "undef"
	case TagOrdAtom:
		return "ordatom"
	case TagNumAtom:
		return "numatom"
	case TagBuiltinFn:
		return "builtinfn"
	case TagBuiltinSF:
		return "builtinsf"
	case TagUserFn:
		return "userfn"
	case TagUserSF:
		return "usersf"
	case TagUnnamedFn:
		return "unnamedfn"
	case TagUnnamedSF:
		return "unnamedsf"
	default:
		return "unknown"
	}
}
