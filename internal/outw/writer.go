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

// Package outw provides an io.Writer that mirrors every byte written to it
// out to a second, log-only destination.
package outw

import (
	"io"

	"github.com/pkg/errors"
)

// Mirror writes every byte to both Console and Log, tracking the first
// error encountered on either so subsequent writes fail fast instead of
// silently diverging between the two destinations.
type Mirror struct {
	Console io.Writer
	Log     io.Writer
	Err     error
}

// NewMirror returns a Mirror writing to console and log.
func NewMirror(console, log io.Writer) *Mirror {
	return &Mirror{Console: console, Log: log}
}

func (m *Mirror) Write(p []byte) (n int, err error) {
	if m.Err != nil {
		return 0, m.Err
	}
	n, err = m.Console.Write(p)
	if err != nil {
		m.Err = errors.Wrap(err, "console write failed")
		return n, m.Err
	}
	if _, err = m.Log.Write(p); err != nil {
		m.Err = errors.Wrap(err, "log write failed")
		return n, m.Err
	}
	return n, nil
}
