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

// Package pixel provides pixel buffers with a runtime-selected pixel
// encoding, the per-encoding colour arithmetic used by the brush engine,
// and scratch memory for the painting hot path.
package pixel

import (
	"errors"
	"image/color"
)

var (
	// ErrEncodingMismatch is returned when pixel data does not match the
	// encoding it is used with.
	ErrEncodingMismatch = errors.New("pixel encoding mismatch")

	// ErrBounds is returned when a rectangle does not fit inside a buffer.
	ErrBounds = errors.New("rectangle out of bounds")
)

// Encoding describes the byte layout of a pixel and the arithmetic defined
// on it. Implementations must be stateless.
type Encoding interface {
	// Name identifies the encoding. Two encodings with the same name are
	// treated as identical.
	Name() string

	// PixelSize is the number of bytes per pixel.
	PixelSize() int

	// MixColors writes the weighted average of pixels to dst.
	//
	// Colour channels are weighted by weight*alpha.  The alpha of the result
	// is the sum of weight*alpha divided by total.  If total is zero, or if
	// all weighted alpha values are zero, dst is set to all zero bytes.
	// The caller guarantees that len(weights) == len(pixels) and that all
	// slices have PixelSize() bytes.
	MixColors(dst []byte, pixels [][]byte, weights []int, total int)

	// Opacity returns the alpha of px as an 8-bit value.
	Opacity(px []byte) uint8

	// MultiplyOpacity scales the alpha of px by a/255.
	MultiplyOpacity(px []byte, a uint8)

	// ToNRGBA64 converts px to non-premultiplied 16-bit RGBA.
	ToNRGBA64(px []byte) color.NRGBA64

	// FromNRGBA64 stores c into dst.
	FromNRGBA64(dst []byte, c color.NRGBA64)
}

// Same reports whether a and b denote the same encoding.
func Same(a, b Encoding) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name() == b.Name() && a.PixelSize() == b.PixelSize()
}

// Built-in encodings.
var (
	// RGBA8 stores non-premultiplied red, green, blue and alpha, one byte each.
	RGBA8 Encoding = rgba8{}

	// RGBA16 stores non-premultiplied red, green, blue and alpha as 16-bit
	// values in native byte order.
	RGBA16 Encoding = rgba16{}

	// GrayA8 stores a non-premultiplied grey value and alpha, one byte each.
	GrayA8 Encoding = grayA8{}

	// Alpha8 stores a single coverage byte. It is used for brush masks.
	Alpha8 Encoding = alpha8{}
)

// divRound returns num/den rounded half up. den must be positive.
func divRound(num, den uint64) uint64 {
	return (num + den/2) / den
}

// mulDiv255 returns round(a*b/255) for 8-bit values.
func mulDiv255(a, b uint8) uint8 {
	t := uint32(a)*uint32(b) + 128
	return uint8((t + t>>8) >> 8)
}

// mix8 implements MixColors for 8-bit layouts consisting of nColor colour
// channels followed by one alpha channel.
func mix8(dst []byte, pixels [][]byte, weights []int, total int, nColor int) {
	var sums [4]uint64
	var alphaSum uint64
	for i, px := range pixels {
		w := weights[i]
		if w <= 0 {
			continue
		}
		aw := uint64(w) * uint64(px[nColor])
		alphaSum += aw
		for c := range nColor {
			sums[c] += aw * uint64(px[c])
		}
	}
	if total <= 0 || alphaSum == 0 {
		clear(dst[:nColor+1])
		return
	}
	for c := range nColor {
		dst[c] = uint8(min(divRound(sums[c], alphaSum), 0xFF))
	}
	dst[nColor] = uint8(min(divRound(alphaSum, uint64(total)), 0xFF))
}
