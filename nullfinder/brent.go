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

package nullfinder

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultXTol is the absolute tolerance used by Brent when xtol <= 0.
	DefaultXTol = 2e-12

	brentMaxIter = 100

	// eps is the float64 machine epsilon.
	eps = 2.220446049250313e-16
)

// ErrNoBracket is returned by Brent when f(a) and f(b) have the same sign.
var ErrNoBracket = errors.New("nullfinder: f(a) and f(b) must have different signs")

// Brent finds a root of f in the interval [a, b] using Brent's method,
// which combines bisection, the secant method and inverse quadratic
// interpolation. f(a) and f(b) must have opposite signs. The root is
// located to within xtol plus a small relative tolerance; if xtol <= 0
// DefaultXTol is used.
func Brent(f func(float64) float64, a, b, xtol float64) (float64, error) {
	if xtol <= 0 {
		xtol = DefaultXTol
	}
	fa, fb := f(a), f(b)
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if math.Signbit(fa) == math.Signbit(fb) {
		return 0, fmt.Errorf("%w: f(%g) = %g, f(%g) = %g", ErrNoBracket, a, fa, b, fb)
	}

	c, fc := b, fb
	var d, e float64
	for iter := 0; iter < brentMaxIter; iter++ {
		if (fb > 0 && fc > 0) || (fb < 0 && fc < 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol := 2*eps*math.Abs(b) + 0.5*xtol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol || fb == 0 {
			return b, nil
		}
		if math.Abs(e) >= tol && math.Abs(fa) > math.Abs(fb) {
			// Attempt inverse quadratic interpolation, or the secant
			// method when only two points are distinct.
			var p, q float64
			s := fb / fa
			if a == c {
				p = 2 * xm * s
				q = 1 - s
			} else {
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}
		a, fa = b, fb
		if math.Abs(d) > tol {
			b += d
		} else {
			b += math.Copysign(tol, xm)
		}
		fb = f(b)
	}
	return 0, fmt.Errorf("nullfinder: Brent's method did not converge in %d iterations", brentMaxIter)
}
