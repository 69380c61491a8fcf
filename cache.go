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

package mixpaint

import "seehuhn.de/go/mixpaint/pixel"

// dabSlot names one of the buffers a paint op keeps between samples.
type dabSlot int

const (
	slotTinted dabSlot = iota // mask rendered in the device encoding
	slotAlpha                 // mask converted to coverage
	slotDab                   // coloured dab
	numSlots
)

// dabCache holds the per-stroke buffers of a paint op. All buffers belong
// to one brush; asking for a different brush drops them.
type dabCache struct {
	brushID string
	bufs    [numSlots]*pixel.Buffer
}

// get returns the buffer for the given slot, allocating it if the brush
// or the encoding has changed.
func (c *dabCache) get(brushID string, slot dabSlot, enc pixel.Encoding) *pixel.Buffer {
	if brushID != c.brushID {
		c.bufs = [numSlots]*pixel.Buffer{}
		c.brushID = brushID
	}
	b := c.bufs[slot]
	if b == nil || !pixel.Same(b.Encoding(), enc) {
		b = pixel.NewBuffer(enc, 0, 0)
		c.bufs[slot] = b
	}
	return b
}
