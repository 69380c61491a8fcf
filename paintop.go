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

package mixpaint

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"seehuhn.de/go/mixpaint/mixer"
	"seehuhn.de/go/mixpaint/pixel"
)

// Composite selects what is painted into the dab.
type Composite int

const (
	// CompositeMix paints the colour mixed from the pixels under the brush,
	// shaped by the brush mask.
	CompositeMix Composite = iota

	// CompositeFill fills the whole dab rectangle with PaintOp.FillColor
	// and ignores both the mixed colour and the mask.
	CompositeFill
)

const (
	// minFootprint is the smallest scaled tip width or height which is
	// still painted.
	minFootprint = 0.01

	// minSpacing is the smallest distance between two dabs.
	minSpacing = 0.5

	// neutralSpacing is returned for samples which are not painted.
	neutralSpacing = 1.0
)

// PaintOp paints one stroke with a colour-mixing brush.
// Create a new PaintOp for every stroke.
//
// A PaintOp is not safe for concurrent use.
type PaintOp struct {
	// SizeCurve maps pressure to brush scale. Nil means scale 1.
	SizeCurve Curve

	// OpacityCurve maps pressure to a factor on the painter opacity.
	// Nil means factor 1.
	OpacityCurve Curve

	// Weighting selects how sample weights are computed.
	// The default is mixer.Exact.
	Weighting mixer.Policy

	// Composite selects what is painted. The default is CompositeMix.
	Composite Composite

	// FillColor is the colour used by CompositeFill.
	// The default is opaque green (0, 128, 0).
	FillColor color.Color

	// ColorRate is the fraction of the brush's own dab colour kept when
	// painting the mixed colour, in [0, 1]. The default is 0.
	ColorRate float64

	// Angle is the rotation of the brush tip in radians.
	Angle float64

	// Alloc provides the scratch memory of a single PaintAt call.
	// All memory is released before PaintAt returns. Must not be nil.
	Alloc pixel.Allocator

	painter Painter
	brush   Brush
	cache   dabCache

	samples [][]byte
	weights []int
	spacing float64 // spacing returned by the last dab of PaintLine
}

// NewPaintOp returns a paint op for one stroke with brush b on painter p.
// Both are borrowed for the lifetime of the stroke.
func NewPaintOp(p Painter, b Brush) *PaintOp {
	return &PaintOp{
		Weighting: mixer.Exact,
		Composite: CompositeMix,
		FillColor: color.NRGBA{R: 0, G: 128, B: 0, A: 255},
		Alloc:     &pixel.Arena{},

		painter: p,
		brush:   b,
	}
}

// PaintAt paints one dab for the sample s and returns the distance the
// pointer must travel before the next dab.
//
// Samples which cannot be painted (no device, no brush, brush refuses the
// sample, vanishing brush size) leave the device untouched and return
// spacing 1 with a nil error. If painting fails, the device is left
// untouched and the error is returned.
func (op *PaintOp) PaintAt(s Sample) (float64, error) {
	if op.painter == nil {
		return op.skip(s, "no painter")
	}
	dev := op.painter.Device()
	if dev == nil {
		return op.skip(s, "no device")
	}
	b := op.brush
	if b == nil {
		return op.skip(s, "no brush")
	}
	if !b.CanPaintFor(s) {
		return op.skip(s, "brush rejects sample")
	}

	scale := ScaleForPressure(evalCurve(op.SizeCurve, s))
	if scale*float64(b.Width()) <= minFootprint || scale*float64(b.Height()) <= minFootprint {
		return op.skip(s, "degenerate footprint")
	}

	origOpacity := op.painter.Opacity()
	op.painter.SetOpacity(scaleOpacity(origOpacity, evalCurve(op.OpacityCurve, s)))
	defer op.painter.SetOpacity(origOpacity)

	defer op.release()

	win := ComputeWindow(s.Pos, b.HotSpot(scale, scale))
	enc := dev.Encoding()

	mask, dab, err := op.acquireBuffers(b, enc, scale, s, win)
	if err != nil {
		return neutralSpacing, err
	}
	sw, sh := mask.Width(), mask.Height()

	mixed, err := op.sampleRegion(dev, enc, win, sw, sh)
	if err != nil {
		return neutralSpacing, err
	}

	if err := op.composite(dab, mask, mixed); err != nil {
		return neutralSpacing, err
	}

	if err := op.painter.BlitFixed(win.X, win.Y, dab, 0, 0, sw, sh); err != nil {
		return neutralSpacing, fmt.Errorf("blit %dx%d dab at (%d, %d): %w", sw, sh, win.X, win.Y, err)
	}

	return op.Spacing(scale), nil
}

// Spacing returns the distance between dabs at the given brush scale.
// It grows with the scale.
func (op *PaintOp) Spacing(scale float64) float64 {
	if op.brush == nil {
		return neutralSpacing
	}
	size := float64(max(op.brush.Width(), op.brush.Height()))
	return max(minSpacing, op.brush.Spacing()*scale*size)
}

func (op *PaintOp) skip(s Sample, reason string) (float64, error) {
	Logger().Debug("sample skipped", "reason", reason, "x", s.Pos.X, "y", s.Pos.Y)
	return neutralSpacing, nil
}

// release returns all scratch memory of the current call.
func (op *PaintOp) release() {
	clear(op.samples)
	op.samples = op.samples[:0]
	op.Alloc.Release()
}

// acquireBuffers renders the coverage mask and the coloured dab for one
// sample. Both buffers have the same size; the dab uses the encoding enc.
func (op *PaintOp) acquireBuffers(b Brush, enc pixel.Encoding, scale float64, s Sample, win Window) (mask, dab *pixel.Buffer, err error) {
	mask = op.cache.get(b.ID(), slotAlpha, pixel.Alpha8)

	switch kind := b.Kind(); kind {
	case KindImage, KindPipeImage:
		ib, ok := b.(ImageBrush)
		if !ok {
			return nil, nil, fmt.Errorf("brush %q of kind %s: %w", b.ID(), kind, ErrBrushKind)
		}
		dab, err = ib.PaintDevice(enc, scale, op.Angle, s, win.XFrac, win.YFrac)
		if err != nil {
			return nil, nil, fmt.Errorf("brush %q: %w", b.ID(), err)
		}
		dab.ConvertInto(mask)

	default:
		mb, ok := b.(MaskBrush)
		if !ok {
			return nil, nil, fmt.Errorf("brush %q of kind %s: %w", b.ID(), kind, ErrBrushKind)
		}
		paint := op.painter.PaintColor()
		if paint.Enc == nil || len(paint.Data) != paint.Enc.PixelSize() {
			return nil, nil, fmt.Errorf("paint colour: %w", pixel.ErrEncodingMismatch)
		}
		tint := paint.ConvertTo(enc)

		tinted := op.cache.get(b.ID(), slotTinted, enc)
		err = mb.Mask(tinted, tint, scale, scale, op.Angle, s, win.XFrac, win.YFrac)
		if err != nil {
			return nil, nil, fmt.Errorf("brush %q: %w", b.ID(), err)
		}
		tinted.ConvertInto(mask)

		dab = op.cache.get(b.ID(), slotDab, enc)
		err = mb.Mask(dab, tint, scale, scale, op.Angle, s, win.XFrac, win.YFrac)
		if err != nil {
			return nil, nil, fmt.Errorf("brush %q: %w", b.ID(), err)
		}
	}

	if !pixel.Same(dab.Encoding(), enc) {
		return nil, nil, fmt.Errorf("brush %q: %s dab for %s device: %w",
			b.ID(), dab.Encoding().Name(), enc.Name(), pixel.ErrEncodingMismatch)
	}
	if dab.Width() != mask.Width() || dab.Height() != mask.Height() {
		return nil, nil, fmt.Errorf("brush %q: %dx%d mask, %dx%d dab: %w",
			b.ID(), mask.Width(), mask.Height(), dab.Width(), dab.Height(), ErrDabSize)
	}
	return mask, dab, nil
}

// sampleRegion copies the pixels of the sampling window into scratch
// memory and returns their uniform average.
func (op *PaintOp) sampleRegion(dev Surface, enc pixel.Encoding, win Window, sw, sh int) ([]byte, error) {
	ps := enc.PixelSize()
	r := win.Rect(sw, sh)
	x0, y0, x1, y1 := int(r.LLx), int(r.LLy), int(r.URx), int(r.URy)
	numPixels := (x1 - x0) * (y1 - y0)

	region := op.Alloc.Alloc(numPixels * ps)
	mixed := op.Alloc.Alloc(ps)
	op.samples = slices.Grow(op.samples[:0], numPixels)[:numPixels]
	op.weights = slices.Grow(op.weights[:0], numPixels)[:numPixels]

	i := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			src := dev.Pixel(x, y)
			if len(src) != ps {
				return nil, fmt.Errorf("device pixel (%d, %d) has %d bytes, %s needs %d: %w",
					x, y, len(src), enc.Name(), ps, pixel.ErrEncodingMismatch)
			}
			px := region[i*ps : (i+1)*ps : (i+1)*ps]
			copy(px, src)
			op.samples[i] = px
			i++
		}
	}

	total := mixer.Weights(op.weights, numPixels, op.Weighting)
	if err := mixer.Mix(enc, mixed, op.samples, op.weights, total); err != nil {
		return nil, err
	}
	return mixed, nil
}

// composite paints the dab according to op.Composite.
func (op *PaintOp) composite(dab, mask *pixel.Buffer, mixed []byte) error {
	enc := dab.Encoding()
	if op.Composite == CompositeFill {
		fill := pixel.NewColor(enc, op.FillColor)
		return dab.Fill(0, 0, dab.Width(), dab.Height(), fill.Data)
	}

	ps := enc.PixelSize()
	coverage := mask.Data()
	data := dab.Data()

	keep := int(math.Round(min(max(op.ColorRate, 0), 1) * mixer.Total))
	var scratch []byte
	var pair [2][]byte
	weights := [2]int{keep, mixer.Total - keep}
	var mixedAlpha uint16
	if keep > 0 {
		scratch = op.Alloc.Alloc(ps)
		pair[1] = mixed
		mixedAlpha = enc.ToNRGBA64(mixed).A
	}

	for i, a := range coverage {
		px := data[i*ps : (i+1)*ps]
		if keep > 0 {
			// The dab already carries the coverage in its alpha. Only its
			// colour takes part in the mix, so coverage is applied once.
			c := enc.ToNRGBA64(px)
			c.A = mixedAlpha
			enc.FromNRGBA64(px, c)
			pair[0] = px
			enc.MixColors(scratch, pair[:], weights[:], mixer.Total)
			copy(px, scratch)
		} else {
			copy(px, mixed)
		}
		enc.MultiplyOpacity(px, a)
	}
	return nil
}
