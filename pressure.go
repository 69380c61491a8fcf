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
	"math"

	"seehuhn.de/go/pdf/function"
)

// Curve maps the pressure of a sample to a parameter value. PDF
// functions with one input and one output, for example
// [*function.Type2], can be used directly.
type Curve interface {
	Apply(inputs ...float64) []float64
}

// PressureCurve returns the curve p ↦ p^gamma on [0, 1].
// Gamma values above 1 need a firmer stroke to reach the full value.
func PressureCurve(gamma float64) *function.Type2 {
	return &function.Type2{
		XMin: 0,
		XMax: 1,
		C0:   []float64{0},
		C1:   []float64{1},
		N:    gamma,
	}
}

// RangeCurve returns the curve which maps pressure 0 to lo and pressure 1
// to hi, with exponent gamma in between.
func RangeCurve(lo, hi, gamma float64) *function.Type2 {
	return &function.Type2{
		XMin: 0,
		XMax: 1,
		C0:   []float64{lo},
		C1:   []float64{hi},
		N:    gamma,
	}
}

// PressureDefault is the pressure at which a brush is painted at its
// nominal size.
const PressureDefault = 1.0

// ScaleForPressure converts a size curve value into a brush scale factor.
func ScaleForPressure(p float64) float64 {
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	return p / PressureDefault
}

// evalCurve applies c to the pressure of s. A nil curve is the constant 1.
func evalCurve(c Curve, s Sample) float64 {
	if c == nil {
		return 1
	}
	out := c.Apply(s.Pressure)
	if len(out) == 0 {
		return 1
	}
	return out[0]
}

// scaleOpacity multiplies an 8-bit opacity by f, clamped to [0, 1].
func scaleOpacity(opacity uint8, f float64) uint8 {
	if !(f > 0) {
		return 0
	}
	if f >= 1 {
		return opacity
	}
	return uint8(math.Round(float64(opacity) * f))
}
