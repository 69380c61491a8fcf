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

// Package canvas implements a simple in-memory paint target.
package canvas

import (
	"errors"
	"fmt"
	"image/color"

	"seehuhn.de/go/mixpaint"
	"seehuhn.de/go/mixpaint/pixel"
)

// ErrNoDevice is returned when blitting to a canvas without a buffer.
var ErrNoDevice = errors.New("canvas has no device")

// Canvas is a [mixpaint.Painter] which composites dabs onto a pixel buffer
// using the source-over operator.
type Canvas struct {
	buf     *pixel.Buffer
	paint   pixel.Color
	opacity uint8
	blits   int
}

var _ mixpaint.Painter = (*Canvas)(nil)

// New returns a canvas painting onto buf, with opaque black as paint colour
// and full opacity. If buf is nil, the canvas has no device.
func New(buf *pixel.Buffer) *Canvas {
	c := &Canvas{buf: buf, opacity: 255}
	enc := pixel.RGBA8
	if buf != nil {
		enc = buf.Encoding()
	}
	c.paint = pixel.NewColor(enc, color.Black)
	return c
}

// Device implements [mixpaint.Painter].
func (c *Canvas) Device() mixpaint.Surface {
	if c.buf == nil {
		return nil
	}
	return c.buf
}

// Buffer returns the pixel buffer of the canvas.
func (c *Canvas) Buffer() *pixel.Buffer { return c.buf }

// PaintColor implements [mixpaint.Painter].
func (c *Canvas) PaintColor() pixel.Color { return c.paint }

// SetPaintColor sets the foreground colour.
func (c *Canvas) SetPaintColor(col color.Color) {
	enc := pixel.RGBA8
	if c.buf != nil {
		enc = c.buf.Encoding()
	}
	c.paint = pixel.NewColor(enc, col)
}

// Opacity implements [mixpaint.Painter].
func (c *Canvas) Opacity() uint8 { return c.opacity }

// SetOpacity implements [mixpaint.Painter].
func (c *Canvas) SetOpacity(a uint8) { c.opacity = a }

// Blits returns the number of successful BlitFixed calls.
func (c *Canvas) Blits() int { return c.blits }

// BlitFixed implements [mixpaint.Painter]. The source rectangle must lie
// inside src; destination pixels outside the canvas are dropped.
func (c *Canvas) BlitFixed(x, y int, src *pixel.Buffer, sx, sy, sw, sh int) error {
	if c.buf == nil {
		return ErrNoDevice
	}
	enc := c.buf.Encoding()
	if !pixel.Same(src.Encoding(), enc) {
		return fmt.Errorf("blit %s onto %s canvas: %w",
			src.Encoding().Name(), enc.Name(), pixel.ErrEncodingMismatch)
	}
	if sx < 0 || sy < 0 || sw < 0 || sh < 0 || sx+sw > src.Width() || sy+sh > src.Height() {
		return fmt.Errorf("blit %dx%d+%d+%d from %dx%d source: %w",
			sw, sh, sx, sy, src.Width(), src.Height(), pixel.ErrBounds)
	}

	for row := range sh {
		dy := y + row
		if dy < 0 || dy >= c.buf.Height() {
			continue
		}
		for col := range sw {
			dx := x + col
			if dx < 0 || dx >= c.buf.Width() {
				continue
			}
			pixel.Over(enc, c.buf.PixelRef(dx, dy), src.PixelRef(sx+col, sy+row), c.opacity)
		}
	}
	c.blits++
	return nil
}
