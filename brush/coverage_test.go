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

package brush

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/mixpaint/pixel"
)

func rectPath(x0, y0, x1, y1 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: x0, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y1}).
		LineTo(vec.Vec2{X: x0, Y: y1}).
		Close()
}

// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	trianglePath := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	r := newCoverageRasteriser()
	coverage := make([]uint8, 10)
	r.Render(trianglePath, fillNonZero, coverage, 10, 1)

	for x := range 10 {
		expected := math.Round(float64(2*x+1) / 20 * 255)
		if math.Abs(float64(coverage[x])-expected) > 1 {
			t.Errorf("pixel %d: expected coverage %.0f, got %d", x, expected, coverage[x])
		}
	}
}

func TestRectangleCoverage(t *testing.T) {
	r := newCoverageRasteriser()
	coverage := make([]uint8, 16)
	r.Render(rectPath(1, 1, 3, 3), fillNonZero, coverage, 4, 4)

	for y := range 4 {
		for x := range 4 {
			var expected uint8
			if x >= 1 && x < 3 && y >= 1 && y < 3 {
				expected = 255
			}
			if got := coverage[y*4+x]; got != expected {
				t.Errorf("pixel (%d, %d): expected %d, got %d", x, y, expected, got)
			}
		}
	}
}

func TestHalfPixelCoverage(t *testing.T) {
	r := newCoverageRasteriser()
	coverage := make([]uint8, 2)
	r.Render(rectPath(0.5, 0, 1.5, 1), fillNonZero, coverage, 2, 1)

	for x, got := range coverage {
		if got != 128 {
			t.Errorf("pixel %d: expected 128, got %d", x, got)
		}
	}
}

// Parts of the path left of the grid still contribute to the winding
// number of the visible pixels.
func TestLeftClipping(t *testing.T) {
	r := newCoverageRasteriser()
	coverage := make([]uint8, 2)
	r.Render(rectPath(-2, 0, 1, 1), fillNonZero, coverage, 2, 1)

	if coverage[0] != 255 || coverage[1] != 0 {
		t.Errorf("expected [255 0], got %v", coverage)
	}
}

func TestFillRules(t *testing.T) {
	// outer and inner squares with the same orientation
	p := rectPath(0, 0, 4, 4)
	p.Cmds = append(p.Cmds, rectPath(1, 1, 3, 3).Cmds...)
	p.Coords = append(p.Coords, rectPath(1, 1, 3, 3).Coords...)

	r := newCoverageRasteriser()
	coverage := make([]uint8, 16)

	r.Render(p, fillNonZero, coverage, 4, 4)
	for i, got := range coverage {
		if got != 255 {
			t.Errorf("nonzero: pixel %d: expected 255, got %d", i, got)
		}
	}

	r.Render(p, fillEvenOdd, coverage, 4, 4)
	for y := range 4 {
		for x := range 4 {
			expected := uint8(255)
			if x >= 1 && x < 3 && y >= 1 && y < 3 {
				expected = 0
			}
			if got := coverage[y*4+x]; got != expected {
				t.Errorf("even-odd: pixel (%d, %d): expected %d, got %d", x, y, expected, got)
			}
		}
	}
}

// Reusing a rasteriser for a smaller grid must not leak old values.
func TestRasteriserReuse(t *testing.T) {
	r := newCoverageRasteriser()
	big := make([]uint8, 100)
	r.Render(rectPath(0, 0, 10, 10), fillNonZero, big, 10, 10)

	small := make([]uint8, 4)
	r.Render(rectPath(0, 0, 1, 1), fillNonZero, small, 2, 2)
	expected := []uint8{255, 0, 0, 0}
	for i := range small {
		if small[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, small)
		}
	}
}

func BenchmarkEllipseMask(b *testing.B) {
	sizes := []int{5, 25, 100}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			tip, err := NewEllipse("", size, size)
			if err != nil {
				b.Fatal(err)
			}
			dst := pixel.NewBuffer(pixel.RGBA8, 0, 0)
			c := pixel.NewColor(pixel.RGBA8, color.NRGBA{R: 200, G: 10, B: 10, A: 255})

			b.ReportAllocs()
			for b.Loop() {
				if err := tip.Mask(dst, c, 1, 1, 0, sampleAt(0, 0), 0.3, 0.7); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkVectorEllipse draws the same tips with x/image/vector, for
// comparison with BenchmarkEllipseMask.
func BenchmarkVectorEllipse(b *testing.B) {
	sizes := []int{5, 25, 100}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size+1, size+1)
			dst := image.NewAlpha(image.Rect(0, 0, size+1, size+1))
			src := image.NewUniform(color.Alpha{255})
			radius := float32(size) / 2

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size+1, size+1)
				addCircleToVector(r, radius+0.3, radius+0.7, radius)
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// addCircleToVector adds a circle to a vector.Rasterizer using cubic
// Bézier curves.
func addCircleToVector(r *vector.Rasterizer, cx, cy, radius float32) {
	const k = float32(kappa)
	kr := k * radius

	r.MoveTo(cx, cy-radius)
	r.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
	r.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
	r.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
	r.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
	r.ClosePath()
}
