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

import "image/color"

// Color is a single pixel value together with its encoding.
type Color struct {
	Enc  Encoding
	Data []byte
}

// NewColor converts c into the given encoding.
func NewColor(enc Encoding, c color.Color) Color {
	data := make([]byte, enc.PixelSize())
	enc.FromNRGBA64(data, color.NRGBA64Model.Convert(c).(color.NRGBA64))
	return Color{Enc: enc, Data: data}
}

// ConvertTo returns the colour in a different encoding.
// If the encoding is unchanged, c is returned as is.
func (c Color) ConvertTo(enc Encoding) Color {
	if Same(c.Enc, enc) {
		return c
	}
	data := make([]byte, enc.PixelSize())
	enc.FromNRGBA64(data, c.Enc.ToNRGBA64(c.Data))
	return Color{Enc: enc, Data: data}
}

// Over composites the pixel src onto the pixel dst using the Porter-Duff
// source-over operator. The alpha of src is first scaled by opacity/255.
// Both pixels use the encoding enc.
func Over(enc Encoding, dst, src []byte, opacity uint8) {
	s := enc.ToNRGBA64(src)
	sa := divRound(uint64(s.A)*uint64(opacity), 0xFF)
	if sa == 0 {
		return
	}
	if sa == 0xFFFF {
		enc.FromNRGBA64(dst, color.NRGBA64{R: s.R, G: s.G, B: s.B, A: 0xFFFF})
		return
	}

	d := enc.ToNRGBA64(dst)
	// da' = da*(1-sa), the weight the destination keeps
	da := divRound(uint64(d.A)*(0xFFFF-sa), 0xFFFF)
	outA := sa + da
	if outA == 0 {
		enc.FromNRGBA64(dst, color.NRGBA64{})
		return
	}
	channel := func(sc, dc uint16) uint16 {
		return uint16(divRound(uint64(sc)*sa+uint64(dc)*da, outA))
	}
	enc.FromNRGBA64(dst, color.NRGBA64{
		R: channel(s.R, d.R),
		G: channel(s.G, d.G),
		B: channel(s.B, d.B),
		A: uint16(min(outA, 0xFFFF)),
	})
}
