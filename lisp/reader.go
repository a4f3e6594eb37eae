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
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// runeReaderWrapper adapts a plain io.Reader into an io.RuneReader, the same
// way the teacher package adapts its terminal and file inputs.
type runeReaderWrapper struct {
	io.Reader
}

func (r *runeReaderWrapper) ReadRune() (ret rune, size int, err error) {
	var b [utf8.UTFMax]byte
	i := 0
	for i < utf8.UTFMax && err == nil && !utf8.FullRune(b[:i]) {
		var n int
		n, err = r.Reader.Read(b[i : i+1])
		i += n
	}
	if i == 0 {
		return 0, 0, err
	}
	ret, size = rune(b[0]), 1
	if ret >= utf8.RuneSelf {
		ret, size = utf8.DecodeRune(b[:i])
	}
	return ret, size, nil
}

func newRuneReader(r io.Reader) io.RuneReader {
	if rr, ok := r.(io.RuneReader); ok {
		return rr
	}
	return &runeReaderWrapper{r}
}

// streamStack is the input side of "stream of streams": @filename pushes a
// file reader to the front, and on exhaustion the stack pops back to
// whatever was reading before, down to the original root stream.
type streamStack struct {
	readers []io.RuneReader
	names   []string
}

func newStreamStack() *streamStack { return &streamStack{} }

func (s *streamStack) push(r io.Reader, name string) {
	s.readers = append([]io.RuneReader{newRuneReader(r)}, s.readers...)
	s.names = append([]string{name}, s.names...)
}

func (s *streamStack) readRune() (rune, error) {
	for len(s.readers) > 0 {
		r, size, err := s.readers[0].ReadRune()
		if size > 0 {
			return r, nil
		}
		if err != io.EOF && err != nil {
			return 0, err
		}
		if cl, ok := s.readers[0].(io.Closer); ok {
			cl.Close()
		}
		s.readers = s.readers[1:]
		s.names = s.names[1:]
	}
	return 0, io.EOF
}

// PushInput pushes r onto the input stream stack as the new current source,
// exactly as the @filename reader directive does for a named file. Used by
// lang/lispinit to feed the bootstrap library through the same reader path
// as everything else.
func (i *Interp) PushInput(r io.Reader) { i.input.push(r, "") }

// pushFile opens name and pushes it as the current input stream, the @name
// reader directive. It is a programmer error (ArgumentError) to name a file
// that does not exist or cannot be opened.
func (i *Interp) pushFile(name string) {
	f, err := os.Open(name)
	if err != nil {
		raise(ArgumentError, "cannot open %q: %s", name, errors.Cause(err))
	}
	i.input.push(bufio.NewReader(f), name)
}

// lexer tokenizes the current input stream with a single token of
// pushback, mirroring the original reader's ungetc-based lookahead.
type lexer struct {
	i         *Interp
	pushed    bool
	pushedTok token
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLParen
	tokRParen
	tokDot
	tokQuote
	tokAtom
	tokNumber
	tokAt // @filename directive
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

func newLexer(i *Interp) *lexer { return &lexer{i: i} }

func (l *lexer) unget(t token) {
	l.pushed = true
	l.pushedTok = t
}

// isDelim reports whether r terminates an atom or number token.
func isDelim(r rune) bool {
	switch r {
	case '(', ')', ' ', '\t', '\n', '\r', '/', 0:
		return true
	}
	return false
}

// next returns the next token, skipping whitespace and /-comments, mapping
// TAB to a single space, and switching input streams on @filename.
func (l *lexer) next() (token, error) {
	if l.pushed {
		l.pushed = false
		return l.pushedTok, nil
	}
	for {
		r, err := l.i.input.readRune()
		if err == io.EOF {
			return token{kind: tokEOF}, nil
		}
		if err != nil {
			return token{}, err
		}
		switch {
		case r == '\t':
			r = ' '
		}
		switch r {
		case ' ', '\n', '\r':
			continue
		case '/':
			// comment: skip to end of line
			for {
				r2, err := l.i.input.readRune()
				if err == io.EOF || r2 == '\n' {
					break
				}
				if err != nil {
					return token{}, err
				}
			}
			continue
		case '(':
			return token{kind: tokLParen}, nil
		case ')':
			return token{kind: tokRParen}, nil
		case '\'':
			return token{kind: tokQuote}, nil
		case '@':
			name, err := l.readWord()
			if err != nil {
				return token{}, err
			}
			return token{kind: tokAt, text: name}, nil
		default:
			return l.readAtomOrNumber(r)
		}
	}
}

// readWord reads a raw, undelimited run of characters (used for @filename).
func (l *lexer) readWord() (string, error) {
	var sb strings.Builder
	for {
		r, err := l.i.input.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if isDelim(r) {
			break
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// readAtomOrNumber has already consumed the first rune r; it disambiguates
// a number from an ordinary atom by the same rule as the original: a
// leading digit, or a leading +/-/. immediately followed by a digit, reads
// as a number, everything else reads as an atom name.
func (l *lexer) readAtomOrNumber(r rune) (token, error) {
	var sb strings.Builder
	sb.WriteRune(r)
	for {
		r2, err := l.i.input.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return token{}, err
		}
		if isDelim(r2) {
			// push back the delimiter by re-queuing it as a 1-rune reader
			l.i.input.readers = append([]io.RuneReader{&runeUngetReader{r2}}, l.i.input.readers...)
			l.i.input.names = append([]string{""}, l.i.input.names...)
			break
		}
		sb.WriteRune(r2)
	}
	text := sb.String()
	if looksNumeric(text) {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token{}, newError(SyntaxError, "malformed number %q", text)
		}
		return token{kind: tokNumber, text: text, num: f}, nil
	}
	return token{kind: tokAtom, text: strings.ToUpper(text)}, nil
}

// looksNumeric applies the original reader's lookahead rule: the token is a
// number if it starts with a digit, or starts with +, -, or . followed by a
// digit.
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return true
	}
	if (s[0] == '+' || s[0] == '-' || s[0] == '.') && len(s) > 1 && s[1] >= '0' && s[1] <= '9' {
		return true
	}
	return false
}

// runeUngetReader replays a single already-read rune, then reports EOF.
type runeUngetReader struct {
	r rune
}

func (u *runeUngetReader) ReadRune() (rune, int, error) {
	if u.r == 0 {
		return 0, 0, io.EOF
	}
	r := u.r
	u.r = 0
	return r, 1, nil
}

// Read reads the next S-expression from the current input stream. It
// returns io.EOF when the root input stream (and every @file pushed on top
// of it) is exhausted.
func (i *Interp) Read() (Value, error) {
	lx := i.lexerFor()
	return i.sread(lx)
}

// lexerFor returns the interpreter's lexer, creating it on first use. The
// lexer is kept on Interp so pushback state survives across calls (a
// lookahead token read while parsing one top-level form must not be lost
// before the next Read call).
func (i *Interp) lexerFor() *lexer {
	if i.lex == nil {
		i.lex = newLexer(i)
	}
	return i.lex
}

func (i *Interp) sread(lx *lexer) (Value, error) {
	tok, err := lx.next()
	if err != nil {
		return Value{}, err
	}
	switch tok.kind {
	case tokEOF:
		return Value{}, io.EOF
	case tokAt:
		i.pushFile(tok.text)
		return i.sread(lx)
	case tokLParen:
		return i.sreadList(lx)
	case tokRParen:
		raise(SyntaxError, "unexpected )")
	case tokQuote:
		v, err := i.sread(lx)
		if err != nil {
			return Value{}, err
		}
		quoted := i.Cons(v, i.nilValue())
		return i.Cons(i.Intern2(i.quoteAtom), quoted), nil
	case tokNumber:
		return i.NumAtom(tok.num), nil
	case tokAtom:
		name := tok.text
		if len(name) > maxAtomName {
			name = name[:maxAtomName]
		}
		v, err := i.Intern(name)
		if err != nil {
			return Value{}, err
		}
		return v, nil
	}
	return Value{}, newError(Internal, "sread: unreachable token kind")
}

// Intern2 wraps an already-interned atom index back into a Value; used
// internally where only the index (not the name) is on hand.
func (i *Interp) Intern2(idx int32) Value { return OrdAtom(idx) }

// sreadList reads the elements of a list after the opening '(' has already
// been consumed and returns them as a proper list. Dotted-tail input is not
// recognised: the lexer has no separate dot token, so a '.' not followed by
// a digit reads as an ordinary atom named "." and becomes a list element.
// Each call pushes its own cell onto the sreadlist atom's value and keeps
// its partially-built list in that cell's car for the duration of the read,
// so a GC triggered by a NumAtom/Cons call mid-parse (including inside a
// nested list) cannot collect it.
func (i *Interp) sreadList(lx *lexer) (Value, error) {
	prevRoot := i.atoms.value(i.skAtom)
	frame := i.Cons(i.nilValue(), prevRoot)
	i.atoms.setValue(i.skAtom, frame)
	defer i.atoms.setValue(i.skAtom, prevRoot)

	head := i.nilValue()
	tailCell := int32(-1)
	for {
		tok, err := lx.next()
		if err != nil {
			return Value{}, err
		}
		switch tok.kind {
		case tokEOF:
			raise(SyntaxError, "unexpected EOF inside list")
		case tokRParen:
			return head, nil
		case tokDot:
			// unreachable: '.' is folded into readAtomOrNumber/looksNumeric
			// unless immediately followed by a digit, so a bare dot never
			// tokenizes as tokDot in this lexer; kept for documentation.
		default:
			lx.unget(tok)
			v, err := i.sread(lx)
			if err != nil {
				return Value{}, err
			}
			cell := i.Cons(v, i.nilValue())
			if tailCell < 0 {
				head = cell
			} else {
				i.cons.setCdr(tailCell, cell)
			}
			tailCell = cell.Idx
			i.cons.setCar(frame.Idx, head)
		}
	}
}
