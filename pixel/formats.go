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

import (
	"image/color"

	"honnef.co/go/safeish"
)

type rgba8 struct{}

func (rgba8) Name() string   { return "RGBA8" }
func (rgba8) PixelSize() int { return 4 }

func (rgba8) MixColors(dst []byte, pixels [][]byte, weights []int, total int) {
	mix8(dst, pixels, weights, total, 3)
}

func (rgba8) Opacity(px []byte) uint8 { return px[3] }

func (rgba8) MultiplyOpacity(px []byte, a uint8) {
	px[3] = mulDiv255(px[3], a)
}

func (rgba8) ToNRGBA64(px []byte) color.NRGBA64 {
	return color.NRGBA64{
		R: uint16(px[0]) * 0x101,
		G: uint16(px[1]) * 0x101,
		B: uint16(px[2]) * 0x101,
		A: uint16(px[3]) * 0x101,
	}
}

func (rgba8) FromNRGBA64(dst []byte, c color.NRGBA64) {
	dst[0] = uint8(c.R >> 8)
	dst[1] = uint8(c.G >> 8)
	dst[2] = uint8(c.B >> 8)
	dst[3] = uint8(c.A >> 8)
}

// rgba16 views its 8-byte pixels as four uint16 values. Buffers and arena
// blocks are allocated by make([]byte), so pixel offsets that are multiples
// of the pixel size are suitably aligned.
type rgba16 struct{}

func (rgba16) Name() string   { return "RGBA16" }
func (rgba16) PixelSize() int { return 8 }

func (rgba16) MixColors(dst []byte, pixels [][]byte, weights []int, total int) {
	var sums [3]uint64
	var alphaSum uint64
	for i, px := range pixels {
		w := weights[i]
		if w <= 0 {
			continue
		}
		v := safeish.SliceCast[[]uint16](px[:8])
		aw := uint64(w) * uint64(v[3])
		alphaSum += aw
		sums[0] += aw * uint64(v[0])
		sums[1] += aw * uint64(v[1])
		sums[2] += aw * uint64(v[2])
	}
	out := safeish.SliceCast[[]uint16](dst[:8])
	if total <= 0 || alphaSum == 0 {
		clear(out)
		return
	}
	for c := range 3 {
		out[c] = uint16(min(divRound(sums[c], alphaSum), 0xFFFF))
	}
	out[3] = uint16(min(divRound(alphaSum, uint64(total)), 0xFFFF))
}

func (rgba16) Opacity(px []byte) uint8 {
	return uint8(safeish.SliceCast[[]uint16](px[:8])[3] >> 8)
}

func (rgba16) MultiplyOpacity(px []byte, a uint8) {
	v := safeish.SliceCast[[]uint16](px[:8])
	v[3] = uint16(divRound(uint64(v[3])*uint64(a), 0xFF))
}

func (rgba16) ToNRGBA64(px []byte) color.NRGBA64 {
	v := safeish.SliceCast[[]uint16](px[:8])
	return color.NRGBA64{R: v[0], G: v[1], B: v[2], A: v[3]}
}

func (rgba16) FromNRGBA64(dst []byte, c color.NRGBA64) {
	v := safeish.SliceCast[[]uint16](dst[:8])
	v[0], v[1], v[2], v[3] = c.R, c.G, c.B, c.A
}

type grayA8 struct{}

func (grayA8) Name() string   { return "GrayA8" }
func (grayA8) PixelSize() int { return 2 }

func (grayA8) MixColors(dst []byte, pixels [][]byte, weights []int, total int) {
	mix8(dst, pixels, weights, total, 1)
}

func (grayA8) Opacity(px []byte) uint8 { return px[1] }

func (grayA8) MultiplyOpacity(px []byte, a uint8) {
	px[1] = mulDiv255(px[1], a)
}

func (grayA8) ToNRGBA64(px []byte) color.NRGBA64 {
	y := uint16(px[0]) * 0x101
	return color.NRGBA64{R: y, G: y, B: y, A: uint16(px[1]) * 0x101}
}

func (grayA8) FromNRGBA64(dst []byte, c color.NRGBA64) {
	// same luma weights as image/color.GrayModel
	y := (19595*uint32(c.R) + 38470*uint32(c.G) + 7471*uint32(c.B) + 1<<15) >> 16
	dst[0] = uint8(y >> 8)
	dst[1] = uint8(c.A >> 8)
}

// alpha8 is a coverage-only encoding. As a colour it is white with the
// stored coverage as alpha.
type alpha8 struct{}

func (alpha8) Name() string   { return "Alpha8" }
func (alpha8) PixelSize() int { return 1 }

func (alpha8) MixColors(dst []byte, pixels [][]byte, weights []int, total int) {
	var sum uint64
	for i, px := range pixels {
		if w := weights[i]; w > 0 {
			sum += uint64(w) * uint64(px[0])
		}
	}
	if total <= 0 {
		dst[0] = 0
		return
	}
	dst[0] = uint8(min(divRound(sum, uint64(total)), 0xFF))
}

func (alpha8) Opacity(px []byte) uint8 { return px[0] }

func (alpha8) MultiplyOpacity(px []byte, a uint8) {
	px[0] = mulDiv255(px[0], a)
}

func (alpha8) ToNRGBA64(px []byte) color.NRGBA64 {
	return color.NRGBA64{R: 0xFFFF, G: 0xFFFF, B: 0xFFFF, A: uint16(px[0]) * 0x101}
}

func (alpha8) FromNRGBA64(dst []byte, c color.NRGBA64) {
	dst[0] = uint8(c.A >> 8)
}
