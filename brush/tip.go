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

// Package brush provides brush tips for the mixpaint paint operation.
//
// [Ellipse] and [Ring] are procedural tips which render an anti-aliased
// coverage mask. [Image] and [Pipe] supply coloured dabs resampled from
// images.
package brush

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/mixpaint"
	"seehuhn.de/go/mixpaint/pixel"
)

var (
	// ErrSize is returned for brush tips without pixels.
	ErrSize = errors.New("brush tip must be at least 1x1")

	// ErrFrameSize is returned when the frames of a pipe brush differ in
	// size.
	ErrFrameSize = errors.New("pipe frames differ in size")
)

// DefaultSpacing is the dab spacing of new brushes, as a fraction of the
// scaled tip size.
const DefaultSpacing = 0.1

// kappa places the control points of a cubic Bézier quarter circle.
const kappa = 0.5522847498

// dabSize returns the number of pixels needed for a tip of n pixels at the
// given scale, shifted by the sub-pixel offset frac.
func dabSize(n int, scale, frac float64) int {
	return max(1, int(math.Ceil(float64(n)*scale+frac)))
}

// centre returns the hot spot of a w×h tip at the given scale.
func centre(w, h int, scaleX, scaleY float64) vec.Vec2 {
	return vec.Vec2{X: float64(w) * scaleX / 2, Y: float64(h) * scaleY / 2}
}

func finite(s mixpaint.Sample) bool {
	return !math.IsNaN(s.Pos.X) && !math.IsNaN(s.Pos.Y) &&
		!math.IsInf(s.Pos.X, 0) && !math.IsInf(s.Pos.Y, 0)
}

// appendEllipse adds a closed ellipse with radii rx and ry, centred at the
// origin, to p.
func appendEllipse(p *path.Data, rx, ry float64) *path.Data {
	kx, ky := kappa*rx, kappa*ry
	return p.
		MoveTo(vec.Vec2{X: rx, Y: 0}).
		CubeTo(vec.Vec2{X: rx, Y: ky}, vec.Vec2{X: kx, Y: ry}, vec.Vec2{X: 0, Y: ry}).
		CubeTo(vec.Vec2{X: -kx, Y: ry}, vec.Vec2{X: -rx, Y: ky}, vec.Vec2{X: -rx, Y: 0}).
		CubeTo(vec.Vec2{X: -rx, Y: -ky}, vec.Vec2{X: -kx, Y: -ry}, vec.Vec2{X: 0, Y: -ry}).
		CubeTo(vec.Vec2{X: kx, Y: -ry}, vec.Vec2{X: rx, Y: -ky}, vec.Vec2{X: rx, Y: 0}).
		Close()
}

// procedural holds what the path-based tips have in common. The tip shape
// is centred at the origin, in unscaled tip pixels.
type procedural struct {
	// DabSpacing is the distance between dabs as a fraction of the scaled
	// tip size. The default is DefaultSpacing.
	DabSpacing float64

	name  string
	w, h  int
	shape *path.Data
	rule  fillRule

	rast     *coverageRasteriser
	coverage []uint8
}

func newProcedural(name string, w, h int, shape *path.Data, rule fillRule) (procedural, error) {
	if w < 1 || h < 1 {
		return procedural{}, fmt.Errorf("%s tip %dx%d: %w", name, w, h, ErrSize)
	}
	return procedural{
		DabSpacing: DefaultSpacing,
		name:       name,
		w:          w,
		h:          h,
		shape:      shape,
		rule:       rule,
		rast:       newCoverageRasteriser(),
	}, nil
}

// ID implements [mixpaint.Brush].
func (p *procedural) ID() string { return p.name }

// Width implements [mixpaint.Brush].
func (p *procedural) Width() int { return p.w }

// Height implements [mixpaint.Brush].
func (p *procedural) Height() int { return p.h }

// HotSpot implements [mixpaint.Brush]. The hot spot is the tip centre.
func (p *procedural) HotSpot(scaleX, scaleY float64) vec.Vec2 {
	return centre(p.w, p.h, scaleX, scaleY)
}

// Spacing implements [mixpaint.Brush].
func (p *procedural) Spacing() float64 { return p.DabSpacing }

// CanPaintFor implements [mixpaint.Brush]. Samples at non-finite
// positions are refused.
func (p *procedural) CanPaintFor(s mixpaint.Sample) bool { return finite(s) }

// Kind implements [mixpaint.Brush].
func (p *procedural) Kind() mixpaint.Kind { return mixpaint.KindMask }

// Mask implements [mixpaint.MaskBrush].
//
// The tip is rotated by angle around its centre. Rotated tips are clipped
// to the unrotated dab rectangle.
func (p *procedural) Mask(dst *pixel.Buffer, c pixel.Color, scaleX, scaleY, angle float64, _ mixpaint.Sample, xFrac, yFrac float64) error {
	enc := dst.Encoding()
	if c.Enc == nil || !pixel.Same(c.Enc, enc) || len(c.Data) != enc.PixelSize() {
		return fmt.Errorf("%s tip: tint for %s dab: %w", p.name, enc.Name(), pixel.ErrEncodingMismatch)
	}

	dw := dabSize(p.w, scaleX, xFrac)
	dh := dabSize(p.h, scaleY, yFrac)
	dst.Reset(dw, dh)

	// scale, then rotate, then move the centre into place
	cos, sin := math.Cos(angle), math.Sin(angle)
	ctr := centre(p.w, p.h, scaleX, scaleY)
	p.rast.CTM = matrix.Matrix{
		scaleX * cos, scaleX * sin,
		-scaleY * sin, scaleY * cos,
		ctr.X + xFrac, ctr.Y + yFrac,
	}

	n := dw * dh
	p.coverage = slices.Grow(p.coverage[:0], n)[:n]
	p.rast.Render(p.shape, p.rule, p.coverage, dw, dh)

	if err := dst.Fill(0, 0, dw, dh, c.Data); err != nil {
		return err
	}
	ps := enc.PixelSize()
	data := dst.Data()
	for i, a := range p.coverage {
		enc.MultiplyOpacity(data[i*ps:(i+1)*ps], a)
	}
	return nil
}

// Ellipse is a procedural brush with an elliptical tip.
type Ellipse struct {
	procedural
}

// NewEllipse returns an elliptical tip with the given diameters in pixels.
func NewEllipse(name string, w, h int) (*Ellipse, error) {
	if name == "" {
		name = fmt.Sprintf("ellipse %dx%d", w, h)
	}
	shape := appendEllipse(&path.Data{}, float64(w)/2, float64(h)/2)
	p, err := newProcedural(name, w, h, shape, fillNonZero)
	if err != nil {
		return nil, err
	}
	return &Ellipse{procedural: p}, nil
}

// Ring is a procedural brush with an elliptical ring as its tip.
type Ring struct {
	procedural

	thickness float64
}

// NewRing returns a ring tip with the given outer diameters in pixels.
// The thickness of the ring is given as a fraction of the outer radii,
// in (0, 1]. A thickness of 1 gives a filled ellipse.
func NewRing(name string, w, h int, thickness float64) (*Ring, error) {
	thickness = min(max(thickness, 0), 1)
	if name == "" {
		name = fmt.Sprintf("ring %dx%d/%g", w, h, thickness)
	}
	rx, ry := float64(w)/2, float64(h)/2
	shape := appendEllipse(&path.Data{}, rx, ry)
	if inner := 1 - thickness; inner > 0 {
		shape = appendEllipse(shape, inner*rx, inner*ry)
	}
	p, err := newProcedural(name, w, h, shape, fillEvenOdd)
	if err != nil {
		return nil, err
	}
	return &Ring{procedural: p, thickness: thickness}, nil
}

// Thickness returns the ring thickness as a fraction of the outer radii.
func (r *Ring) Thickness() float64 { return r.thickness }
