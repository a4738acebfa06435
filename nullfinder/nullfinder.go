/*
Copyright © 2026 the HiFi authors.
This file is part of hifi.

hifi is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

hifi is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with hifi.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package nullfinder finds the zeros of functions that are only known at
// a set of sample points, such as a physical variable along one line of a
// simulation grid.
package nullfinder

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/interp"
)

// Kind specifies how the samples are interpolated between sample points.
type Kind int

// Interpolation kinds.
const (
	// Linear interpolates linearly between neighboring samples.
	Linear Kind = iota
	// Cubic interpolates with a not-a-knot cubic spline.
	Cubic
	// Akima interpolates with an Akima spline, which overshoots less
	// than Cubic near abrupt changes.
	Akima
)

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Cubic:
		return "cubic"
	case Akima:
		return "akima"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind returns the Kind with the given name: "linear", "cubic" or
// "akima".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "linear":
		return Linear, nil
	case "cubic":
		return Cubic, nil
	case "akima":
		return Akima, nil
	default:
		return 0, fmt.Errorf("nullfinder: invalid interpolation kind %q", s)
	}
}

// minPoints returns the smallest number of samples k can interpolate.
func (k Kind) minPoints() int {
	switch k {
	case Cubic:
		return 4
	case Akima:
		return 5
	default:
		return 2
	}
}

func (k Kind) predictor() (interp.FittablePredictor, error) {
	switch k {
	case Linear:
		return &interp.PiecewiseLinear{}, nil
	case Cubic:
		return &interp.NotAKnotCubic{}, nil
	case Akima:
		return &interp.AkimaSpline{}, nil
	default:
		return nil, fmt.Errorf("nullfinder: invalid interpolation kind %v", k)
	}
}

// DefaultYTol is the default tolerance within which a sample is treated
// as zero.
const DefaultYTol = 1e-15

var (
	// ErrLengthMismatch is returned when x and y have different lengths.
	ErrLengthMismatch = errors.New("nullfinder: x and y must contain the same number of elements")

	// ErrTooFewPoints is returned when there are too few samples for the
	// requested interpolation kind.
	ErrTooFewPoints = errors.New("nullfinder: too few points")

	// ErrNotIncreasing is returned when x is not strictly increasing.
	ErrNotIncreasing = errors.New("nullfinder: x must be strictly increasing")
)

// Roots returns the locations of the zeros of the function sampled as
// y at points x, in increasing order. Every sample within ytol of zero is
// reported as a root. Between each pair of neighboring samples that
// differ in sign, the root of the interpolant of kind is found with
// Brent's method. Non-finite samples split the line into runs that are
// interpolated separately; intervals next to them are skipped, and runs
// too short for kind are interpolated linearly.
func Roots(x, y []float64, kind Kind, ytol float64) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w (%d x, %d y)", ErrLengthMismatch, len(x), len(y))
	}
	n := len(x)
	if n < kind.minPoints() {
		return nil, fmt.Errorf("%w: %v interpolation needs %d, have %d",
			ErrTooFewPoints, kind, kind.minPoints(), n)
	}
	for i := 1; i < n; i++ {
		if !(x[i] > x[i-1]) {
			return nil, fmt.Errorf("%w: x[%d] = %g, x[%d] = %g", ErrNotIncreasing, i-1, x[i-1], i, x[i])
		}
	}
	// Each run of finite samples is interpolated on its own so that NaN
	// and infinite samples do not spread into the interpolant.
	fits := make([]interp.Predictor, n)
	for lo := 0; lo < n; {
		if !finite(y[lo]) {
			lo++
			continue
		}
		hi := lo + 1
		for hi < n && finite(y[hi]) {
			hi++
		}
		if hi-lo >= 2 {
			k := kind
			if hi-lo < k.minPoints() {
				k = Linear
			}
			f, err := k.predictor()
			if err != nil {
				return nil, err
			}
			if err := f.Fit(x[lo:hi], y[lo:hi]); err != nil {
				return nil, fmt.Errorf("nullfinder: fitting %v interpolant: %v", k, err)
			}
			for i := lo; i < hi; i++ {
				fits[i] = f
			}
		}
		lo = hi
	}

	isZero := func(v float64) bool { return math.Abs(v) <= ytol }
	var roots []float64
	for i := 0; i < n; i++ {
		if isZero(y[i]) {
			roots = append(roots, x[i])
			continue
		}
		if i+1 == n || isZero(y[i+1]) || !finite(y[i]) || !finite(y[i+1]) || y[i]*y[i+1] >= 0 {
			continue
		}
		r, err := Brent(fits[i].Predict, x[i], x[i+1], 0)
		if err != nil {
			return nil, err
		}
		roots = append(roots, r)
	}
	return roots, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
