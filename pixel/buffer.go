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
	"fmt"
	"image"
	"image/color"
	"slices"

	"seehuhn.de/go/geom/rect"
)

// zeroPixel backs the default pixel returned for reads outside a buffer.
// It must never be written to.
var zeroPixel [16]byte

// Buffer is a rectangular grid of pixels in a fixed encoding, stored
// row by row without padding. The top-left pixel has coordinates (0, 0).
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	enc    Encoding
	width  int
	height int
	data   []byte
}

// NewBuffer allocates a zeroed buffer of the given size.
func NewBuffer(enc Encoding, width, height int) *Buffer {
	b := &Buffer{enc: enc}
	b.Reset(width, height)
	return b
}

// Encoding returns the pixel encoding of the buffer.
func (b *Buffer) Encoding() Encoding { return b.enc }

// Width returns the width of the buffer in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the height of the buffer in pixels.
func (b *Buffer) Height() int { return b.height }

// Data returns the raw pixel bytes.
func (b *Buffer) Data() []byte { return b.data }

// Bounds returns the extent of the buffer in pixel coordinates.
func (b *Buffer) Bounds() rect.Rect {
	return rect.Rect{URx: float64(b.width), URy: float64(b.height)}
}

// Reset resizes the buffer and sets all pixels to zero.
// The backing storage grows as needed but never shrinks.
func (b *Buffer) Reset(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	n := width * height * b.enc.PixelSize()
	b.data = slices.Grow(b.data[:0], n)[:n]
	clear(b.data)
	b.width = width
	b.height = height
}

// Pixel returns the bytes of the pixel at (x, y).
//
// Outside the buffer a shared all-zero pixel is returned. The result is a
// read-only view: it must not be modified and must not be retained after
// the buffer changes.
func (b *Buffer) Pixel(x, y int) []byte {
	ps := b.enc.PixelSize()
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		if ps <= len(zeroPixel) {
			return zeroPixel[:ps:ps]
		}
		return make([]byte, ps)
	}
	i := (y*b.width + x) * ps
	return b.data[i : i+ps : i+ps]
}

// PixelRef returns a writable view of the pixel at (x, y), which must be
// inside the buffer.
func (b *Buffer) PixelRef(x, y int) []byte {
	ps := b.enc.PixelSize()
	i := (y*b.width + x) * ps
	return b.data[i : i+ps : i+ps]
}

// Fill sets every pixel of the given rectangle to px.
func (b *Buffer) Fill(x, y, w, h int, px []byte) error {
	ps := b.enc.PixelSize()
	if len(px) != ps {
		return fmt.Errorf("fill %s buffer with %d-byte pixel: %w", b.enc.Name(), len(px), ErrEncodingMismatch)
	}
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > b.width || y+h > b.height {
		return fmt.Errorf("fill %dx%d+%d+%d in %dx%d buffer: %w", w, h, x, y, b.width, b.height, ErrBounds)
	}
	for row := y; row < y+h; row++ {
		line := b.data[(row*b.width+x)*ps : (row*b.width+x+w)*ps]
		for i := 0; i < len(line); i += ps {
			copy(line[i:i+ps], px)
		}
	}
	return nil
}

// ConvertInto resizes dst to the size of b and stores the pixels of b
// in the encoding of dst.
func (b *Buffer) ConvertInto(dst *Buffer) {
	dst.Reset(b.width, b.height)
	if Same(b.enc, dst.enc) {
		copy(dst.data, b.data)
		return
	}
	sps := b.enc.PixelSize()
	dps := dst.enc.PixelSize()
	n := b.width * b.height
	for i := range n {
		c := b.enc.ToNRGBA64(b.data[i*sps : (i+1)*sps])
		dst.enc.FromNRGBA64(dst.data[i*dps:(i+1)*dps], c)
	}
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{
		enc:    b.enc,
		width:  b.width,
		height: b.height,
		data:   slices.Clone(b.data),
	}
}

// Image returns a copy of the buffer as an image.
func (b *Buffer) Image() *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, b.width, b.height))
	for y := range b.height {
		for x := range b.width {
			img.SetNRGBA64(x, y, b.enc.ToNRGBA64(b.PixelRef(x, y)))
		}
	}
	return img
}

// FromImage converts img into a new buffer with the given encoding.
// The top-left corner of img.Bounds() becomes (0, 0).
func FromImage(enc Encoding, img image.Image) *Buffer {
	r := img.Bounds()
	b := NewBuffer(enc, r.Dx(), r.Dy())
	for y := range b.height {
		for x := range b.width {
			c := color.NRGBA64Model.Convert(img.At(r.Min.X+x, r.Min.Y+y)).(color.NRGBA64)
			enc.FromNRGBA64(b.PixelRef(x, y), c)
		}
	}
	return b
}
