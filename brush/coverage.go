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
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// edge is a line segment in grid coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

type fillRule int

const (
	fillNonZero fillRule = iota
	fillEvenOdd
)

// coverageRasteriser computes the fraction of each pixel of a small grid
// which is covered by a filled path. Brush dabs are small, so the whole
// grid is accumulated at once. Buffers are reused between calls.
//
// For every pixel two values are accumulated: cover, the signed vertical
// extent of all edge pieces in the pixel column, and area, the same extent
// weighted by the distance of the piece from the right pixel border.
// Summing cover from the left and adding area gives the signed area of the
// path inside each pixel.
type coverageRasteriser struct {
	// CTM maps path coordinates to grid coordinates.
	CTM matrix.Matrix

	// Flatness is the curve flattening tolerance in grid pixels.
	Flatness float64

	edges []edge
	cover []float32
	area  []float32
}

func newCoverageRasteriser() *coverageRasteriser {
	return &coverageRasteriser{
		CTM:      matrix.Identity,
		Flatness: defaultFlatness,
	}
}

const (
	defaultFlatness = 0.1

	// horizontalEdgeThreshold is the smallest vertical extent of an edge
	// which contributes to the coverage.
	horizontalEdgeThreshold = 1e-10
)

// Render fills p into the w×h grid dst using the given fill rule. Every
// byte of dst[:w*h] is overwritten with a coverage value from 0 to 255.
func (r *coverageRasteriser) Render(p *path.Data, rule fillRule, dst []uint8, w, h int) {
	n := w * h
	clear(dst[:n])
	r.collectEdges(p)
	if len(r.edges) == 0 || n == 0 {
		return
	}

	r.cover = slices.Grow(r.cover[:0], n)[:n]
	r.area = slices.Grow(r.area[:0], n)[:n]
	clear(r.cover)
	clear(r.area)

	for i := range r.edges {
		e := &r.edges[i]
		yFirst := max(int(math.Floor(min(e.y0, e.y1))), 0)
		yLast := min(int(math.Floor(max(e.y0, e.y1))), h-1)
		for y := yFirst; y <= yLast; y++ {
			row := y * w
			accumulate(e, y, r.cover[row:row+w], r.area[row:row+w])
		}
	}

	for y := range h {
		row := y * w
		integrate(r.cover[row:row+w], r.area[row:row+w], rule, dst[row:row+w])
	}
}

// collectEdges flattens p and stores its edges in grid coordinates.
func (r *coverageRasteriser) collectEdges(p *path.Data) {
	r.edges = r.edges[:0]

	var current, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			current = p.Coords[k]
			start = current
			k++
		case path.CmdLineTo:
			r.addEdge(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1])
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != start {
				r.addEdge(current, start)
			}
			current = start
		}
	}
}

// apply maps a point from path coordinates to grid coordinates.
func (r *coverageRasteriser) apply(v vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	}
}

// applyLinear maps a difference vector, ignoring the translation.
func (r *coverageRasteriser) applyLinear(v vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y,
		Y: m[1]*v.X + m[3]*v.Y,
	}
}

func (r *coverageRasteriser) addEdge(p0, p1 vec.Vec2) {
	a := r.apply(p0)
	b := r.apply(p1)
	dy := b.Y - a.Y
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: a.X, y0: a.Y,
		x1: b.X, y1: b.Y,
		dxdy: (b.X - a.X) / dy,
	})
}

// flattenQuadratic approximates a quadratic Bézier curve by line segments.
// The number of segments is chosen from the grid-space deviation of the
// control point.
func (r *coverageRasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2) {
	dev := r.applyLinear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments, using
// Wang's formula for the number of segments.
func (r *coverageRasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d1 := r.applyLinear(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.applyLinear(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		n = max(1, int(math.Ceil(math.Sqrt(3*m/(4*r.Flatness)))))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// accumulate adds the part of e inside scanline y to the cover and area
// values of that row. Pieces left of the grid are folded into column 0.
func accumulate(e *edge, y int, cover, area []float32) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}
	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xTop := e.x0 + e.dxdy*(yTop-e.y0)
	xBot := e.x0 + e.dxdy*(yBot-e.y0)
	pixLeft := int(math.Floor(min(xTop, xBot)))
	pixRight := int(math.Floor(max(xTop, xBot)))

	switch {
	case pixRight < 0:
		c := sign * float32(yBot-yTop)
		cover[0] += c
		area[0] += c
		return
	case pixLeft >= len(cover):
		return
	case pixLeft == pixRight:
		deposit(e, yTop, yBot, sign, pixLeft, cover, area)
		return
	}

	// The edge crosses several pixel columns: split it at the column
	// borders.
	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		ya := e.y0 + dydx*(float64(pix)-e.x0)
		yb := e.y0 + dydx*(float64(pix+1)-e.x0)
		lo := max(min(ya, yb), yTop)
		hi := min(max(ya, yb), yBot)
		if hi > lo {
			deposit(e, lo, hi, sign, pix, cover, area)
		}
	}
}

// deposit adds the piece of e between heights lo and hi, which lies inside
// pixel column pix.
func deposit(e *edge, lo, hi float64, sign float32, pix int, cover, area []float32) {
	c := sign * float32(hi-lo)
	switch {
	case pix < 0:
		cover[0] += c
		area[0] += c
	case pix < len(cover):
		xMid := e.x0 + e.dxdy*((lo+hi)/2-e.y0)
		cover[pix] += c
		area[pix] += c * float32(1-(xMid-float64(pix)))
	}
}

// integrate turns one row of cover and area values into 8-bit coverage.
func integrate(cover, area []float32, rule fillRule, dst []uint8) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}

		var cov float32
		if rule == fillEvenOdd {
			m := raw - 2*float32(int(raw/2))
			cov = 1 - abs32(1-m)
		} else {
			cov = min(raw, 1)
		}
		dst[i] = uint8(max(cov, 0)*255 + 0.5)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
