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

package outw

import (
	"bytes"
	"errors"
	"testing"
)

type failingWriter struct{ err error }

func (f *failingWriter) Write(p []byte) (int, error) { return 0, f.err }

func TestMirrorFansOutToBoth(t *testing.T) {
	var console, log bytes.Buffer
	m := NewMirror(&console, &log)

	n, err := m.Write([]byte("hello"))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if n != 5 {
		t.Errorf("n = %d, want 5", n)
	}
	if console.String() != "hello" {
		t.Errorf("console got %q, want %q", console.String(), "hello")
	}
	if log.String() != "hello" {
		t.Errorf("log got %q, want %q", log.String(), "hello")
	}
}

func TestMirrorLatchesConsoleError(t *testing.T) {
	var log bytes.Buffer
	wantErr := errors.New("disk full")
	m := NewMirror(&failingWriter{wantErr}, &log)

	if _, err := m.Write([]byte("x")); err == nil {
		t.Fatal("expected an error from a failing console writer")
	}
	if m.Err == nil {
		t.Fatal("expected Mirror.Err to be latched")
	}

	// A second write must fail fast without touching the log.
	if _, err := m.Write([]byte("y")); err == nil {
		t.Fatal("expected the latched error to persist")
	}
	if log.Len() != 0 {
		t.Errorf("log was written to after a latched console error: %q", log.String())
	}
}

func TestMirrorLatchesLogError(t *testing.T) {
	var console bytes.Buffer
	wantErr := errors.New("log unwritable")
	m := NewMirror(&console, &failingWriter{wantErr})

	if _, err := m.Write([]byte("x")); err == nil {
		t.Fatal("expected an error from a failing log writer")
	}
	if console.String() != "x" {
		t.Errorf("console got %q, want %q", console.String(), "x")
	}
	if m.Err == nil {
		t.Fatal("expected Mirror.Err to be latched")
	}
}
