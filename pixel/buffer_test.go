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
	"bytes"
	"errors"
	"image/color"
	"testing"
)

func TestBufferFill(t *testing.T) {
	b := NewBuffer(RGBA8, 4, 3)
	green := []byte{0, 128, 0, 255}
	if err := b.Fill(1, 1, 2, 2, green); err != nil {
		t.Fatal(err)
	}

	for y := range 3 {
		for x := range 4 {
			inside := x >= 1 && x < 3 && y >= 1
			got := b.Pixel(x, y)
			if inside && !bytes.Equal(got, green) {
				t.Errorf("(%d,%d): expected %v, got %v", x, y, green, got)
			}
			if !inside && !bytes.Equal(got, make([]byte, 4)) {
				t.Errorf("(%d,%d): expected zero pixel, got %v", x, y, got)
			}
		}
	}
}

func TestBufferFillErrors(t *testing.T) {
	b := NewBuffer(RGBA8, 4, 3)
	if err := b.Fill(0, 0, 1, 1, []byte{1, 2}); !errors.Is(err, ErrEncodingMismatch) {
		t.Errorf("short pixel: expected ErrEncodingMismatch, got %v", err)
	}
	if err := b.Fill(3, 0, 2, 1, []byte{1, 2, 3, 4}); !errors.Is(err, ErrBounds) {
		t.Errorf("overhanging rectangle: expected ErrBounds, got %v", err)
	}
}

func TestBufferOutside(t *testing.T) {
	b := NewBuffer(RGBA16, 2, 2)
	for _, pt := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		px := b.Pixel(pt[0], pt[1])
		if len(px) != 8 || !bytes.Equal(px, make([]byte, 8)) {
			t.Errorf("%v: expected 8 zero bytes, got %v", pt, px)
		}
	}
}

func TestBufferResetReuses(t *testing.T) {
	b := NewBuffer(GrayA8, 10, 10)
	b.Fill(0, 0, 10, 10, []byte{7, 255})
	before := &b.Data()[0]

	b.Reset(3, 5)
	if b.Width() != 3 || b.Height() != 5 || len(b.Data()) != 30 {
		t.Fatalf("unexpected size %dx%d (%d bytes)", b.Width(), b.Height(), len(b.Data()))
	}
	if &b.Data()[0] != before {
		t.Error("Reset to a smaller size reallocated the buffer")
	}
	if !bytes.Equal(b.Data(), make([]byte, 30)) {
		t.Error("Reset did not clear the buffer")
	}
}

func TestConvertIntoAlpha(t *testing.T) {
	src := NewBuffer(RGBA8, 2, 1)
	copy(src.PixelRef(0, 0), []byte{10, 20, 30, 40})
	copy(src.PixelRef(1, 0), []byte{50, 60, 70, 250})

	mask := NewBuffer(Alpha8, 0, 0)
	src.ConvertInto(mask)

	expected := []byte{40, 250}
	if !bytes.Equal(mask.Data(), expected) {
		t.Errorf("expected %v, got %v", expected, mask.Data())
	}
}

func TestImageRoundTrip(t *testing.T) {
	b := NewBuffer(RGBA8, 3, 2)
	for i := range b.Data() {
		b.Data()[i] = byte(i * 9)
	}
	c := FromImage(RGBA8, b.Image())
	if !bytes.Equal(b.Data(), c.Data()) {
		t.Errorf("expected %v, got %v", b.Data(), c.Data())
	}
}

func TestOver(t *testing.T) {
	type testCase struct {
		name     string
		dst, src []byte
		opacity  uint8
		expected []byte
	}
	cases := []testCase{
		{"opaque", []byte{0, 0, 255, 255}, []byte{255, 0, 0, 255}, 255, []byte{255, 0, 0, 255}},
		{"transparent", []byte{0, 0, 255, 255}, []byte{255, 0, 0, 0}, 255, []byte{0, 0, 255, 255}},
		{"zero opacity", []byte{0, 0, 255, 255}, []byte{255, 0, 0, 255}, 0, []byte{0, 0, 255, 255}},
		{"half on opaque", []byte{0, 0, 0, 255}, []byte{255, 255, 255, 255}, 128, []byte{128, 128, 128, 255}},
		{"onto empty", []byte{0, 0, 0, 0}, []byte{255, 0, 0, 128}, 255, []byte{255, 0, 0, 128}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dst := bytes.Clone(tc.dst)
			Over(RGBA8, dst, tc.src, tc.opacity)
			if !bytes.Equal(dst, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, dst)
			}
		})
	}
}

func TestColorConvert(t *testing.T) {
	c := NewColor(RGBA8, color.NRGBA{R: 0, G: 128, B: 0, A: 255})
	if !bytes.Equal(c.Data, []byte{0, 128, 0, 255}) {
		t.Fatalf("unexpected RGBA8 value %v", c.Data)
	}
	if c.ConvertTo(RGBA8).Data[1] != 128 {
		t.Error("identity conversion changed the colour")
	}
	a := c.ConvertTo(Alpha8)
	if !bytes.Equal(a.Data, []byte{255}) {
		t.Errorf("expected alpha 255, got %v", a.Data)
	}
}

func TestArena(t *testing.T) {
	var a Arena
	x := a.Alloc(10)
	y := a.Alloc(3)
	if len(x) != 10 || len(y) != 3 {
		t.Fatalf("unexpected lengths %d, %d", len(x), len(y))
	}
	if a.Outstanding() != 2 {
		t.Errorf("expected 2 outstanding blocks, got %d", a.Outstanding())
	}
	for i := range x {
		x[i] = 0xFF
	}
	if !bytes.Equal(y, make([]byte, 3)) {
		t.Error("blocks overlap")
	}
	a.Release()
	if a.Outstanding() != 0 {
		t.Errorf("expected 0 outstanding blocks, got %d", a.Outstanding())
	}
	z := a.Alloc(10)
	if !bytes.Equal(z, make([]byte, 10)) {
		t.Error("reused block not zeroed")
	}
	if &z[0] != &x[0] {
		t.Error("arena did not reuse its slab")
	}
}

func TestArenaGrow(t *testing.T) {
	var a Arena
	small := a.Alloc(16)
	small[0] = 1
	big := a.Alloc(3 * minArenaSize)
	if len(big) != 3*minArenaSize {
		t.Fatalf("expected %d bytes, got %d", 3*minArenaSize, len(big))
	}
	if small[0] != 1 {
		t.Error("growing the arena clobbered an earlier block")
	}
}

func BenchmarkMixRGBA8(b *testing.B) {
	const n = 121
	pixels := make([][]byte, n)
	weights := make([]int, n)
	for i := range n {
		pixels[i] = []byte{byte(i), byte(2 * i), byte(3 * i), 255}
		weights[i] = 2
	}
	dst := make([]byte, 4)

	b.ReportAllocs()
	for b.Loop() {
		RGBA8.MixColors(dst, pixels, weights, 255)
	}
}
