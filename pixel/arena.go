// seehuhn.de/go/mixpaint - a colour-mixing brush engine
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pixel

// Allocator hands out scratch memory which lives until the next call to
// Release.
type Allocator interface {
	// Alloc returns n zeroed bytes.
	Alloc(n int) []byte

	// Release invalidates all memory handed out since the previous Release.
	Release()
}

// Arena is an Allocator which carves all blocks out of one contiguous
// slice. Blocks start at multiples of 8 bytes. The slice grows as needed
// but never shrinks, so that in steady state no allocations are made.
//
// An Arena is not safe for concurrent use.
type Arena struct {
	buf  []byte
	used int
	live int
}

// minArenaSize is the size of the first slab allocated by an Arena.
const minArenaSize = 4096

// Alloc returns n zeroed bytes from the arena.
func (a *Arena) Alloc(n int) []byte {
	if a.used+n > len(a.buf) {
		// Blocks handed out earlier keep the old slab alive until
		// Release; after that only the new slab is used.
		size := max(2*len(a.buf), a.used+n, minArenaSize)
		a.buf = make([]byte, size)
		a.used = 0
	}
	block := a.buf[a.used : a.used+n : a.used+n]
	clear(block)
	// keep every block 8-byte aligned for multi-byte channel views
	a.used = min(a.used+(n+7)&^7, len(a.buf))
	a.live++
	return block
}

// Release makes the whole arena available again.
func (a *Arena) Release() {
	a.used = 0
	a.live = 0
}

// Outstanding returns the number of blocks handed out since the last
// Release.
func (a *Arena) Outstanding() int {
	return a.live
}
