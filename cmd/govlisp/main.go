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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"govlisp/internal/outw"
	"govlisp/lang/lispinit"
	"govlisp/lisp"
)

type fileList []string

func (f *fileList) String() string     { return "" }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }

func atExit(err error, debug bool) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	os.Exit(1)
}

func main() {
	var err error
	var withFiles fileList

	libName := flag.String("lib", "lispinit.lsp", "load the bootstrap library from `filename` (empty to skip)")
	logName := flag.String("log", "lisp.log", "mirror all output to `filename`")
	atoms := flag.Int("atoms", 1024, "atom table size")
	nums := flag.Int("nums", 1024, "number table size")
	cells := flag.Int("cells", 8192, "list area size in cells")
	debug := flag.Bool("debug", false, "enable debug diagnostics")
	flag.Var(&withFiles, "with", "queue `filename` as REPL input ahead of stdin (can be specified multiple times)")
	flag.Parse()

	defer func() { atExit(err, *debug) }()

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()

	logFile, err := os.Create(*logName)
	if err != nil {
		err = errors.Wrapf(err, "opening log file %q", *logName)
		return
	}
	defer logFile.Close()

	out := outw.NewMirror(stdout, logFile)

	i, err := lisp.New(
		lisp.AtomTableSize(*atoms),
		lisp.NumberTableSize(*nums),
		lisp.ListAreaSize(*cells),
		lisp.Output(out),
	)
	if err != nil {
		err = errors.Wrap(err, "creating interpreter")
		return
	}

	if *libName != "" {
		lib, oerr := os.Open(*libName)
		if oerr != nil {
			if loadErr := lispinit.LoadDefault(i); loadErr != nil {
				err = errors.Wrap(loadErr, "loading default library")
				return
			}
		} else {
			loadErr := lispinit.Load(i, bufio.NewReader(lib))
			lib.Close()
			if loadErr != nil {
				err = errors.Wrapf(loadErr, "loading library %q", *libName)
				return
			}
		}
	}

	// stdin goes on the stack only after the library is loaded, because
	// Load reads until the whole stack is empty.
	i.PushInput(bufio.NewReader(os.Stdin))

	// append -with files to the input stack in reverse order so that they
	// load in order of appearance on the command line, same convention as
	// the teacher's -with flag for Forth source files.
	for n := len(withFiles) - 1; n >= 0; n-- {
		f, oerr := os.Open(withFiles[n])
		if oerr != nil {
			err = errors.Wrapf(oerr, "opening %q", withFiles[n])
			return
		}
		i.PushInput(bufio.NewReader(f))
	}

	fmt.Fprintln(out, "ENTERING THE GOV LISP INTERPRETER")
	code := i.Run()
	stdout.Flush()
	if code != 0 {
		os.Exit(code)
	}
}
