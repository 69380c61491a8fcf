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

// Package mixpaint implements a colour-mixing paint operation for raster
// painting.
//
// For every pointer sample a [PaintOp] picks up the colours underneath the
// brush footprint, averages them, and lays down a dab of the averaged
// colour shaped by the brush mask. The host application supplies the
// target surface through a [Painter] and the brush tip through a [Brush].
package mixpaint

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/mixpaint/pixel"
)

var (
	// ErrBrushKind is returned when a brush reports a kind whose
	// rendering interface it does not implement.
	ErrBrushKind = errors.New("brush does not support its kind")

	// ErrDabSize is returned when the mask and the dab of a brush differ
	// in size.
	ErrDabSize = errors.New("mask and dab differ in size")
)

// Sample is one pointer event of a stroke.
type Sample struct {
	// Pos is the pointer position in device pixels.
	Pos vec.Vec2

	// Pressure is the normalised pen pressure, nominally in [0, 1].
	Pressure float64

	// XTilt and YTilt are the pen tilt, passed through to the brush.
	XTilt, YTilt float64

	// Rotation is the barrel rotation of the pen, passed through to the
	// brush.
	Rotation float64
}

// Kind classifies how a brush produces its dabs.
type Kind int

const (
	// KindMask brushes render a coverage mask tinted with the paint colour.
	// They must implement [MaskBrush].
	KindMask Kind = iota

	// KindImage brushes supply a coloured dab from an image.
	// They must implement [ImageBrush].
	KindImage

	// KindPipeImage brushes select one of several images for each dab.
	// They must implement [ImageBrush].
	KindPipeImage
)

func (k Kind) String() string {
	switch k {
	case KindMask:
		return "mask"
	case KindImage:
		return "image"
	case KindPipeImage:
		return "pipe image"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Brush is a brush tip.
type Brush interface {
	// ID identifies the brush. Buffers cached by a [PaintOp] are keyed by
	// this value.
	ID() string

	// Width and Height give the unscaled size of the tip in pixels.
	Width() int
	Height() int

	// HotSpot returns the offset from the top-left corner of a dab to the
	// point which is aligned with the pointer position.
	HotSpot(scaleX, scaleY float64) vec.Vec2

	// Spacing is the distance between dabs as a fraction of the scaled
	// tip size.
	Spacing() float64

	// CanPaintFor reports whether the brush can paint the given sample.
	CanPaintFor(s Sample) bool

	// Kind returns the brush kind.
	Kind() Kind
}

// ImageBrush is implemented by brushes of kind [KindImage] and
// [KindPipeImage].
type ImageBrush interface {
	Brush

	// PaintDevice renders a coloured dab in the given encoding. The
	// fractional offsets xFrac and yFrac in [0, 1) shift the tip to the
	// right and down.
	PaintDevice(enc pixel.Encoding, scale, angle float64, s Sample, xFrac, yFrac float64) (*pixel.Buffer, error)
}

// MaskBrush is implemented by brushes of kind [KindMask].
type MaskBrush interface {
	Brush

	// Mask resizes dst to the dab size and fills it with c, with the
	// opacity of every pixel scaled by the tip coverage. c uses the
	// encoding of dst.
	Mask(dst *pixel.Buffer, c pixel.Color, scaleX, scaleY, angle float64, s Sample, xFrac, yFrac float64) error
}

// Surface gives read access to the pixels of the paint target.
// [*pixel.Buffer] implements this interface.
type Surface interface {
	Encoding() pixel.Encoding

	// Pixel returns the bytes of the pixel at (x, y). Pixels outside the
	// surface read as the default pixel of the surface. The result must
	// not be modified or retained.
	Pixel(x, y int) []byte
}

// Painter is the host side of a paint operation.
type Painter interface {
	// Device returns the paint target, or nil if there is none.
	Device() Surface

	// PaintColor returns the current foreground colour.
	PaintColor() pixel.Color

	// Opacity and SetOpacity access the opacity used by BlitFixed.
	Opacity() uint8
	SetOpacity(uint8)

	// BlitFixed composites the rectangle (sx, sy, sw, sh) of src onto the
	// device, with the top-left corner of the rectangle at (x, y).
	BlitFixed(x, y int, src *pixel.Buffer, sx, sy, sw, sh int) error
}
