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

// pairCell is one slot of the list area: a (car, cdr) pair of tagged values.
// When free, cdr links to the next free cell (car is don't-care); the GC
// mark bit lives outside this struct, in Interp.gcMark, to avoid aliasing it
// onto car (see DESIGN.md / spec.md §9).
type pairCell struct {
	car, cdr Value
}

// consArea is the fixed-size list area. Index 0 is reserved and never
// allocated, matching the original's "cell 0 reserved" convention (nilptr and
// friends never collide with a valid cons index).
type consArea struct {
	cells []pairCell
	free  int32 // fp: head of the free list, 0 means empty (cell 0 is reserved)
	avail int   // numf: free cell count
}

func newConsArea(size int) *consArea {
	if size < 1 {
		size = 1
	}
	c := &consArea{cells: make([]pairCell, size)}
	for i := size - 1; i >= 1; i-- {
		c.cells[i].cdr = Pair(c.free)
		c.free = int32(i)
	}
	c.avail = size - 1
	return c
}

func (c *consArea) car(j int32) Value { return c.cells[j].car }
func (c *consArea) cdr(j int32) Value { return c.cells[j].cdr }
func (c *consArea) setCar(j int32, v Value) { c.cells[j].car = v }
func (c *consArea) setCdr(j int32, v Value) { c.cells[j].cdr = v }

// tryAlloc pops a cell off the free list, returning ok=false if none remain.
func (c *consArea) tryAlloc(x, y Value) (int32, bool) {
	if c.free == 0 {
		return 0, false
	}
	j := c.free
	c.free = c.cells[j].cdr.Idx
	c.cells[j] = pairCell{car: x, cdr: y}
	c.avail--
	return j, true
}
