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

// PaintLine paints dabs along the segment from a to b, spaced by the
// distances returned from PaintAt.
//
// carried is the distance travelled since the last dab, as returned by the
// previous call for the same stroke. A negative value starts a new stroke
// and paints a dab at a first. The return value is the distance travelled
// since the last dab at the end of the segment.
//
// Samples which fail to paint are logged and dropped; painting continues
// with the next sample.
func (op *PaintOp) PaintLine(a, b Sample, carried float64) float64 {
	if carried < 0 {
		op.spacing = op.paintLogged(a)
		carried = 0
	}
	if !(op.spacing > 0) {
		op.spacing = neutralSpacing
	}

	length := b.Pos.Sub(a.Pos).Length()
	if length == 0 {
		return carried
	}

	// Dab k after base lies at base + k*spacing. Counting steps instead of
	// adding up positions keeps t moving on very long segments.
	last := -carried // position of the last dab along the segment
	base, spacing := last, op.spacing
	for k := 1; ; k++ {
		t := base + float64(k)*spacing
		clamped := t < 0
		if clamped {
			t = 0
		}
		if t > length {
			break
		}
		if t <= last {
			Logger().Warn("dab spacing below position resolution", "spacing", spacing, "position", last)
			break
		}
		op.spacing = op.paintLogged(interpolate(a, b, t/length))
		last = t
		if clamped || op.spacing != spacing {
			base, spacing, k = t, op.spacing, 0
		}
	}
	return length - last
}

func (op *PaintOp) paintLogged(s Sample) float64 {
	spacing, err := op.PaintAt(s)
	if err != nil {
		Logger().Warn("stroke sample dropped", "x", s.Pos.X, "y", s.Pos.Y, "error", err)
		return neutralSpacing
	}
	return spacing
}

// interpolate returns the sample at fraction f of the way from a to b.
func interpolate(a, b Sample, f float64) Sample {
	lerp := func(x, y float64) float64 { return x + f*(y-x) }
	return Sample{
		Pos:      a.Pos.Add(b.Pos.Sub(a.Pos).Mul(f)),
		Pressure: lerp(a.Pressure, b.Pressure),
		XTilt:    lerp(a.XTilt, b.XTilt),
		YTilt:    lerp(a.YTilt, b.YTilt),
		Rotation: lerp(a.Rotation, b.Rotation),
	}
}
