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
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/mixpaint"
	"seehuhn.de/go/mixpaint/pixel"
)

// Image is a brush which paints a resampled copy of an image.
type Image struct {
	// DabSpacing is the distance between dabs as a fraction of the scaled
	// tip size. The default is DefaultSpacing.
	DabSpacing float64

	name string
	src  image.Image
}

// NewImage returns a brush which paints src.
func NewImage(name string, src image.Image) (*Image, error) {
	r := src.Bounds()
	if r.Dx() < 1 || r.Dy() < 1 {
		return nil, fmt.Errorf("image brush %q: %w", name, ErrSize)
	}
	return &Image{DabSpacing: DefaultSpacing, name: name, src: src}, nil
}

// ID implements [mixpaint.Brush].
func (b *Image) ID() string { return b.name }

// Width implements [mixpaint.Brush].
func (b *Image) Width() int { return b.src.Bounds().Dx() }

// Height implements [mixpaint.Brush].
func (b *Image) Height() int { return b.src.Bounds().Dy() }

// HotSpot implements [mixpaint.Brush]. The hot spot is the image centre.
func (b *Image) HotSpot(scaleX, scaleY float64) vec.Vec2 {
	return centre(b.Width(), b.Height(), scaleX, scaleY)
}

// Spacing implements [mixpaint.Brush].
func (b *Image) Spacing() float64 { return b.DabSpacing }

// CanPaintFor implements [mixpaint.Brush].
func (b *Image) CanPaintFor(s mixpaint.Sample) bool { return finite(s) }

// Kind implements [mixpaint.Brush].
func (b *Image) Kind() mixpaint.Kind { return mixpaint.KindImage }

// PaintDevice implements [mixpaint.ImageBrush].
//
// The image is scaled, rotated by angle around its centre and shifted by
// the sub-pixel offset, using bilinear interpolation. Rotated images are
// clipped to the unrotated dab rectangle.
func (b *Image) PaintDevice(enc pixel.Encoding, scale, angle float64, _ mixpaint.Sample, xFrac, yFrac float64) (*pixel.Buffer, error) {
	if enc == nil {
		return nil, fmt.Errorf("image brush %q: %w", b.name, pixel.ErrEncodingMismatch)
	}
	w, h := b.Width(), b.Height()
	dw := dabSize(w, scale, xFrac)
	dh := dabSize(h, scale, yFrac)
	dst := image.NewNRGBA64(image.Rect(0, 0, dw, dh))

	r := b.src.Bounds()
	cx := float64(r.Min.X) + float64(w)/2
	cy := float64(r.Min.Y) + float64(h)/2
	ctr := centre(w, h, scale, scale)
	tx, ty := ctr.X+xFrac, ctr.Y+yFrac

	// The matrix maps source pixels to dab pixels.
	sc, ss := scale*math.Cos(angle), scale*math.Sin(angle)
	m := f64.Aff3{
		sc, -ss, tx - sc*cx + ss*cy,
		ss, sc, ty - ss*cx - sc*cy,
	}
	draw.BiLinear.Transform(dst, m, b.src, r, draw.Over, nil)

	return pixel.FromImage(enc, dst), nil
}

// Pipe is a brush which paints one of several equally sized images, chosen
// by pen pressure.
type Pipe struct {
	// DabSpacing is the distance between dabs as a fraction of the scaled
	// tip size. The default is DefaultSpacing.
	DabSpacing float64

	name   string
	frames []*Image
}

// NewPipe returns a pipe brush with the given frames. Low pressure selects
// the first frame, full pressure the last.
func NewPipe(name string, frames ...image.Image) (*Pipe, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("pipe brush %q without frames: %w", name, ErrSize)
	}
	p := &Pipe{DabSpacing: DefaultSpacing, name: name}
	for i, src := range frames {
		img, err := NewImage(fmt.Sprintf("%s#%d", name, i), src)
		if err != nil {
			return nil, err
		}
		if i > 0 && (img.Width() != p.frames[0].Width() || img.Height() != p.frames[0].Height()) {
			return nil, fmt.Errorf("pipe brush %q frame %d: %w", name, i, ErrFrameSize)
		}
		p.frames = append(p.frames, img)
	}
	return p, nil
}

// ID implements [mixpaint.Brush].
func (p *Pipe) ID() string { return p.name }

// Width implements [mixpaint.Brush].
func (p *Pipe) Width() int { return p.frames[0].Width() }

// Height implements [mixpaint.Brush].
func (p *Pipe) Height() int { return p.frames[0].Height() }

// HotSpot implements [mixpaint.Brush].
func (p *Pipe) HotSpot(scaleX, scaleY float64) vec.Vec2 {
	return centre(p.Width(), p.Height(), scaleX, scaleY)
}

// Spacing implements [mixpaint.Brush].
func (p *Pipe) Spacing() float64 { return p.DabSpacing }

// CanPaintFor implements [mixpaint.Brush].
func (p *Pipe) CanPaintFor(s mixpaint.Sample) bool { return finite(s) }

// Kind implements [mixpaint.Brush].
func (p *Pipe) Kind() mixpaint.Kind { return mixpaint.KindPipeImage }

// Frame returns the index of the frame painted for the given pressure.
func (p *Pipe) Frame(pressure float64) int {
	n := len(p.frames)
	switch {
	case !(pressure > 0):
		return 0
	case pressure >= 1:
		return n - 1
	}
	return min(int(pressure*float64(n)), n-1)
}

// PaintDevice implements [mixpaint.ImageBrush].
func (p *Pipe) PaintDevice(enc pixel.Encoding, scale, angle float64, s mixpaint.Sample, xFrac, yFrac float64) (*pixel.Buffer, error) {
	return p.frames[p.Frame(s.Pressure)].PaintDevice(enc, scale, angle, s, xFrac, yFrac)
}
