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
	"strconv"
	"strings"
)

// Write renders v exactly as swrite does: proper lists print space
// separated inside parens, improper tails print with a " . " before the
// final cdr, numbers print in their shortest round-tripping form, and
// every one of the six function-bearing tags gets its own distinct braced
// form.
func (i *Interp) Write(v Value) string {
	var sb strings.Builder
	i.write(&sb, v)
	return sb.String()
}

func (i *Interp) write(sb *strings.Builder, v Value) {
	switch v.Tag {
	case TagPair:
		i.writeList(sb, v)
	case TagOrdAtom:
		sb.WriteString(i.atoms.name(v.Idx))
	case TagNumAtom:
		sb.WriteString(formatNumber(i.nums.value(v.Idx)))
	case TagBuiltinFn:
		sb.WriteString("{builtin function: ")
		sb.WriteString(i.atoms.name(v.Idx))
		sb.WriteString("}")
	case TagBuiltinSF:
		sb.WriteString("{builtin special form: ")
		sb.WriteString(i.atoms.name(v.Idx))
		sb.WriteString("}")
	case TagUserFn:
		sb.WriteString("{user defined function: ")
		sb.WriteString(i.atoms.name(v.Idx))
		sb.WriteString("}")
	case TagUserSF:
		sb.WriteString("{user defined special form: ")
		sb.WriteString(i.atoms.name(v.Idx))
		sb.WriteString("}")
	case TagUnnamedFn:
		sb.WriteString("{unnamed function}")
	case TagUnnamedSF:
		sb.WriteString("{unnamed special form}")
	default:
		sb.WriteString("{undefined}")
	}
}

// writeList prints the pair at v.Idx. It detects whether the cell chain is
// a proper list (the final cdr is NIL) by walking cdrs once, exactly as
// swrite's own lookahead loop does, then either prints every element
// space-separated or falls back to dotted-pair notation for the tail.
func (i *Interp) writeList(sb *strings.Builder, v Value) {
	j := v.Idx
	k := j
	for i.cons.cdr(k).Tag == TagPair {
		k = i.cons.cdr(k).Idx
	}
	proper := i.IsNil(i.cons.cdr(k))

	sb.WriteString("(")
	if proper {
		cur := j
		for {
			i.write(sb, i.cons.car(cur))
			nxt := i.cons.cdr(cur)
			if i.IsNil(nxt) {
				break
			}
			sb.WriteString(" ")
			cur = nxt.Idx
		}
	} else {
		cur := j
		for {
			i.write(sb, i.cons.car(cur))
			nxt := i.cons.cdr(cur)
			if nxt.Tag != TagPair {
				sb.WriteString(" . ")
				i.write(sb, nxt)
				break
			}
			sb.WriteString(" ")
			cur = nxt.Idx
		}
	}
	sb.WriteString(")")
}

// formatNumber renders x in %g-style notation using the shortest decimal
// string that round-trips back to the same float64 (not %g's fixed six
// significant digits).
func formatNumber(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
