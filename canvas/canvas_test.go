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

package canvas

import (
	"errors"
	"image/color"
	"testing"

	"seehuhn.de/go/mixpaint/pixel"
)

func TestBlitOpaque(t *testing.T) {
	buf := pixel.NewBuffer(pixel.RGBA8, 3, 3)
	c := New(buf)

	src := pixel.NewBuffer(pixel.RGBA8, 2, 2)
	red := []byte{255, 0, 0, 255}
	if err := src.Fill(0, 0, 2, 2, red); err != nil {
		t.Fatal(err)
	}

	// half of the source lies outside the canvas
	if err := c.BlitFixed(2, -1, src, 0, 0, 2, 2); err != nil {
		t.Fatal(err)
	}
	if c.Blits() != 1 {
		t.Errorf("expected 1 blit, got %d", c.Blits())
	}
	for y := range 3 {
		for x := range 3 {
			got := buf.Pixel(x, y)
			painted := x == 2 && y == 0
			if painted && got[3] != 255 {
				t.Errorf("pixel (%d, %d): expected red, got %v", x, y, got)
			} else if !painted && got[3] != 0 {
				t.Errorf("pixel (%d, %d): expected untouched, got %v", x, y, got)
			}
		}
	}
}

func TestBlitOpacity(t *testing.T) {
	buf := pixel.NewBuffer(pixel.RGBA8, 1, 1)
	if err := buf.Fill(0, 0, 1, 1, []byte{0, 0, 255, 255}); err != nil {
		t.Fatal(err)
	}
	c := New(buf)

	src := pixel.NewBuffer(pixel.RGBA8, 1, 1)
	if err := src.Fill(0, 0, 1, 1, []byte{255, 0, 0, 255}); err != nil {
		t.Fatal(err)
	}

	c.SetOpacity(0)
	if err := c.BlitFixed(0, 0, src, 0, 0, 1, 1); err != nil {
		t.Fatal(err)
	}
	if got := buf.Pixel(0, 0); got[0] != 0 || got[2] != 255 {
		t.Errorf("zero opacity changed the pixel: %v", got)
	}

	c.SetOpacity(128)
	if err := c.BlitFixed(0, 0, src, 0, 0, 1, 1); err != nil {
		t.Fatal(err)
	}
	got := buf.Pixel(0, 0)
	if got[0] < 126 || got[0] > 130 || got[2] < 125 || got[2] > 129 || got[3] != 255 {
		t.Errorf("expected an even red/blue blend, got %v", got)
	}
}

func TestBlitErrors(t *testing.T) {
	c := New(pixel.NewBuffer(pixel.RGBA8, 2, 2))

	err := c.BlitFixed(0, 0, pixel.NewBuffer(pixel.GrayA8, 1, 1), 0, 0, 1, 1)
	if !errors.Is(err, pixel.ErrEncodingMismatch) {
		t.Errorf("expected ErrEncodingMismatch, got %v", err)
	}

	err = c.BlitFixed(0, 0, pixel.NewBuffer(pixel.RGBA8, 1, 1), 0, 0, 2, 1)
	if !errors.Is(err, pixel.ErrBounds) {
		t.Errorf("expected ErrBounds, got %v", err)
	}

	if c.Blits() != 0 {
		t.Errorf("failed blits were counted: %d", c.Blits())
	}

	empty := New(nil)
	if empty.Device() != nil {
		t.Error("canvas without buffer reports a device")
	}
	if err := empty.BlitFixed(0, 0, pixel.NewBuffer(pixel.RGBA8, 1, 1), 0, 0, 1, 1); !errors.Is(err, ErrNoDevice) {
		t.Errorf("expected ErrNoDevice, got %v", err)
	}
}

func TestPaintColor(t *testing.T) {
	c := New(pixel.NewBuffer(pixel.GrayA8, 1, 1))
	c.SetPaintColor(color.White)
	p := c.PaintColor()
	if !pixel.Same(p.Enc, pixel.GrayA8) || p.Data[0] != 255 || p.Data[1] != 255 {
		t.Errorf("unexpected paint colour %s %v", p.Enc.Name(), p.Data)
	}
}
