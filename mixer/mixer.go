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

// Package mixer computes weighted averages of pixels.
//
// Weights are small non-negative integers which nominally add up to
// [Total]. The arithmetic itself is delegated to the pixel encoding, see
// [pixel.Encoding.MixColors].
package mixer

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"seehuhn.de/go/mixpaint/pixel"
)

// Total is the nominal sum of all weights passed to [Mix].
const Total = 255

// Policy selects how a uniform average over n samples is turned into
// integer weights.
type Policy int

const (
	// Exact distributes Total over the samples using largest-remainder
	// allocation, so that the weights add up to exactly Total. For more
	// than Total samples every weight is 1 and the total is n.
	Exact Policy = iota

	// Truncated gives every sample the weight Total/n, rounded down, and
	// reports Total as the sum. The weights add up to less than Total
	// whenever n does not divide Total, and are all zero for n > Total.
	Truncated
)

func (p Policy) String() string {
	switch p {
	case Exact:
		return "exact"
	case Truncated:
		return "truncated"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Weights fills dst[:n] with uniform weights for n samples and returns the
// total to pass to [Mix]. dst must have length at least n.
func Weights[T constraints.Integer](dst []T, n int, p Policy) T {
	if n <= 0 {
		return 0
	}
	dst = dst[:n]
	total := Total

	if p == Truncated {
		w := T(total / n)
		for i := range dst {
			dst[i] = w
		}
		return T(total)
	}

	if n > Total {
		for i := range dst {
			dst[i] = 1
		}
		return T(n)
	}

	// Largest remainder: every exact share is Total/n, so all remainders
	// are equal and the ties go to the lowest indices.
	base := total / n
	extra := total - base*n
	for i := range dst {
		w := base
		if i < extra {
			w++
		}
		dst[i] = T(w)
	}
	return T(total)
}

// Mix writes the weighted average of samples to dst.
//
// All samples and dst must hold exactly one pixel in the encoding enc, and
// there must be one weight per sample. Otherwise an error wrapping
// [pixel.ErrEncodingMismatch] is returned and dst is left unchanged.
// If all weights are zero, dst is set to the all-zero pixel.
func Mix(enc pixel.Encoding, dst []byte, samples [][]byte, weights []int, total int) error {
	ps := enc.PixelSize()
	if len(samples) != len(weights) {
		return fmt.Errorf("%d samples with %d weights: %w", len(samples), len(weights), pixel.ErrEncodingMismatch)
	}
	if len(dst) != ps {
		return fmt.Errorf("%d-byte output for %s: %w", len(dst), enc.Name(), pixel.ErrEncodingMismatch)
	}
	for i, s := range samples {
		if len(s) != ps {
			return fmt.Errorf("sample %d has %d bytes, %s needs %d: %w",
				i, len(s), enc.Name(), ps, pixel.ErrEncodingMismatch)
		}
	}
	enc.MixColors(dst, samples, weights, total)
	return nil
}
