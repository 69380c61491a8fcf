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

// Command dabdemo paints strokes with the colour-mixing brush over a
// striped background and writes the result as a PNG image.
//
// The strokes are read from a JSON file, see [scene]. Without -in a
// built-in scene is painted. With -pdf, the stroke centre lines are also
// written to a PDF file for comparison.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"math"
	"os"

	"golang.org/x/image/colornames"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/mixpaint"
	"seehuhn.de/go/mixpaint/brush"
	"seehuhn.de/go/mixpaint/canvas"
	"seehuhn.de/go/mixpaint/mixer"
	"seehuhn.de/go/mixpaint/pixel"
)

// scene describes a painting.
type scene struct {
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	Stripes []string  `json:"stripes"` // SVG colour names
	Brush   tipConfig `json:"brush"`

	Weighting string  `json:"weighting,omitempty"` // "exact" or "truncated"
	Composite string  `json:"composite,omitempty"` // "mix" or "fill"
	ColorRate float64 `json:"color_rate,omitempty"`
	Angle     float64 `json:"angle,omitempty"` // degrees
	SizeGamma float64 `json:"size_gamma,omitempty"`

	// Strokes lists the samples of every stroke as (x, y, pressure).
	Strokes [][][3]float64 `json:"strokes"`
}

type tipConfig struct {
	Shape     string  `json:"shape"` // "ellipse" or "ring"
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Thickness float64 `json:"thickness,omitempty"`
	Spacing   float64 `json:"spacing,omitempty"`
}

var builtin = scene{
	Width:     320,
	Height:    200,
	Stripes:   []string{"crimson", "gold", "royalblue", "whitesmoke"},
	Brush:     tipConfig{Shape: "ellipse", Width: 24, Height: 24, Spacing: 0.08},
	SizeGamma: 1,
	Strokes: [][][3]float64{
		{{20, 40, 0.3}, {120, 60, 0.8}, {220, 40, 1}, {300, 70, 0.6}},
		{{20, 150, 1}, {100, 110, 0.7}, {200, 170, 0.9}, {300, 120, 0.4}},
	},
}

func main() {
	in := flag.String("in", "", "scene description (JSON)")
	out := flag.String("o", "dabs.png", "output PNG file")
	pdfOut := flag.String("pdf", "", "also write the stroke centre lines to this PDF file")
	encName := flag.String("enc", "rgba8", "pixel encoding: rgba8, rgba16 or graya8")
	verbose := flag.Bool("v", false, "log skipped and failed samples")
	flag.Parse()

	if *verbose {
		mixpaint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	sc := builtin
	if *in != "" {
		var err error
		sc, err = loadScene(*in)
		if err != nil {
			panic(err)
		}
	}

	enc, err := encodingByName(*encName)
	if err != nil {
		panic(err)
	}

	buf, err := paint(&sc, enc)
	if err != nil {
		panic(err)
	}

	if err := writePNG(*out, buf); err != nil {
		panic(err)
	}
	if *pdfOut != "" {
		if err := writePDF(*pdfOut, &sc); err != nil {
			panic(err)
		}
	}
}

func loadScene(fname string) (scene, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return scene{}, err
	}
	var sc scene
	if err := json.Unmarshal(data, &sc); err != nil {
		return scene{}, fmt.Errorf("%s: %w", fname, err)
	}
	if sc.Width <= 0 || sc.Height <= 0 {
		return scene{}, fmt.Errorf("%s: invalid size %dx%d", fname, sc.Width, sc.Height)
	}
	return sc, nil
}

func encodingByName(name string) (pixel.Encoding, error) {
	switch name {
	case "rgba8":
		return pixel.RGBA8, nil
	case "rgba16":
		return pixel.RGBA16, nil
	case "graya8":
		return pixel.GrayA8, nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
}

func newBrush(b tipConfig) (mixpaint.Brush, error) {
	var spacing *float64
	var tip mixpaint.Brush
	switch b.Shape {
	case "", "ellipse":
		e, err := brush.NewEllipse("", b.Width, b.Height)
		if err != nil {
			return nil, err
		}
		spacing, tip = &e.DabSpacing, e
	case "ring":
		r, err := brush.NewRing("", b.Width, b.Height, b.Thickness)
		if err != nil {
			return nil, err
		}
		spacing, tip = &r.DabSpacing, r
	default:
		return nil, fmt.Errorf("unknown brush shape %q", b.Shape)
	}
	if b.Spacing > 0 {
		*spacing = b.Spacing
	}
	return tip, nil
}

// paint renders the scene into a new buffer.
func paint(sc *scene, enc pixel.Encoding) (*pixel.Buffer, error) {
	buf := pixel.NewBuffer(enc, sc.Width, sc.Height)
	if n := len(sc.Stripes); n > 0 {
		for i, name := range sc.Stripes {
			col, ok := colornames.Map[name]
			if !ok {
				return nil, fmt.Errorf("unknown colour %q", name)
			}
			x0 := i * sc.Width / n
			x1 := (i + 1) * sc.Width / n
			c := pixel.NewColor(enc, col)
			if err := buf.Fill(x0, 0, x1-x0, sc.Height, c.Data); err != nil {
				return nil, err
			}
		}
	}

	tip, err := newBrush(sc.Brush)
	if err != nil {
		return nil, err
	}
	cv := canvas.New(buf)

	for _, stroke := range sc.Strokes {
		op := mixpaint.NewPaintOp(cv, tip)
		op.Angle = sc.Angle * math.Pi / 180
		op.ColorRate = sc.ColorRate
		if sc.SizeGamma > 0 {
			op.SizeCurve = mixpaint.PressureCurve(sc.SizeGamma)
		}
		switch sc.Weighting {
		case "", "exact":
			op.Weighting = mixer.Exact
		case "truncated":
			op.Weighting = mixer.Truncated
		default:
			return nil, fmt.Errorf("unknown weighting %q", sc.Weighting)
		}
		switch sc.Composite {
		case "", "mix":
			op.Composite = mixpaint.CompositeMix
		case "fill":
			op.Composite = mixpaint.CompositeFill
		default:
			return nil, fmt.Errorf("unknown composite %q", sc.Composite)
		}

		carried := -1.0
		for i := 1; i < len(stroke); i++ {
			carried = op.PaintLine(sample(stroke[i-1]), sample(stroke[i]), carried)
		}
		if len(stroke) == 1 {
			if _, err := op.PaintAt(sample(stroke[0])); err != nil {
				return nil, err
			}
		}
	}
	return buf, nil
}

func sample(p [3]float64) mixpaint.Sample {
	return mixpaint.Sample{Pos: vec.Vec2{X: p[0], Y: p[1]}, Pressure: p[2]}
}

func writePNG(fname string, buf *pixel.Buffer) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := png.Encode(f, buf.Image()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writePDF draws the stroke centre lines, with the nominal brush width,
// on a page of the scene size.
func writePDF(fname string, sc *scene) error {
	paper := &pdf.Rectangle{
		URx: float64(sc.Width),
		URy: float64(sc.Height),
	}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// PDF origin is bottom-left; the scene uses top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(sc.Height)})

	page.SetStrokeColor(pdfcolor.DeviceGray(0.2))
	page.SetLineWidth(float64(max(sc.Brush.Width, sc.Brush.Height)))
	for _, stroke := range sc.Strokes {
		if len(stroke) == 0 {
			continue
		}
		page.MoveTo(stroke[0][0], stroke[0][1])
		for _, p := range stroke[1:] {
			page.LineTo(p[0], p[1])
		}
		page.Stroke()
	}

	return page.Close()
}
