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

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Window is the placement of a dab on the device: the integer pixel of the
// dab's top-left corner and the sub-pixel phase of the brush tip.
type Window struct {
	X, Y         int
	XFrac, YFrac float64 // in [0, 1)
}

// ComputeWindow places a dab so that hotSpot lands on pos.
func ComputeWindow(pos, hotSpot vec.Vec2) Window {
	topLeft := pos.Sub(hotSpot)
	x, xFrac := splitCoordinate(topLeft.X)
	y, yFrac := splitCoordinate(topLeft.Y)
	return Window{X: x, Y: y, XFrac: xFrac, YFrac: yFrac}
}

// splitCoordinate splits v into floor(v) and the fractional part.
func splitCoordinate(v float64) (int, float64) {
	f := math.Floor(v)
	frac := v - f
	if frac >= 1 {
		// v is a tiny negative number and v - f rounded up
		f++
		frac = 0
	}
	return int(f), frac
}

// Rect returns the pixels sampled for a dab of size sw×sh. The sampled
// region includes one extra column and one extra row beyond the dab.
func (w Window) Rect(sw, sh int) rect.Rect {
	return rect.Rect{
		LLx: float64(w.X),
		LLy: float64(w.Y),
		URx: float64(w.X + sw + 1),
		URy: float64(w.Y + sh + 1),
	}
}
