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

package hifi

import (
	"fmt"

	"github.com/ctessum/sparse"
)

// Gradient2D calculates the derivatives of the 2-D array f (shape
// [len(y), len(x)]) with respect to the coordinates y and x, which may be
// unevenly spaced. Interior points use second-order central differences
// and the edges use second-order one-sided differences. An axis with only
// two points, where second-order edge differences are undefined, falls back
// to first-order differences instead of failing; fewer than two points is
// an ErrShapeMismatch.
func Gradient2D(f *sparse.DenseArray, y, x []float64) (dfdy, dfdx *sparse.DenseArray, err error) {
	if len(f.Shape) != 2 || f.Shape[0] != len(y) || f.Shape[1] != len(x) {
		return nil, nil, fmt.Errorf("hifi: gradient of array with shape %v on %d×%d grid: %w",
			f.Shape, len(y), len(x), ErrShapeMismatch)
	}
	if len(y) < 2 || len(x) < 2 {
		return nil, nil, fmt.Errorf("hifi: gradient needs at least 2 points along each axis, have %d×%d: %w",
			len(y), len(x), ErrShapeMismatch)
	}
	ny, nx := len(y), len(x)
	dfdy = sparse.ZerosDense(ny, nx)
	dfdx = sparse.ZerosDense(ny, nx)

	col := make([]float64, ny)
	dcol := make([]float64, ny)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			col[j] = f.Get(j, i)
		}
		derivative1D(dcol, col, y)
		for j := 0; j < ny; j++ {
			dfdy.Set(dcol[j], j, i)
		}
	}
	for j := 0; j < ny; j++ {
		row := f.Elements[j*nx : (j+1)*nx]
		derivative1D(dfdx.Elements[j*nx:(j+1)*nx], row, x)
	}
	return dfdy, dfdx, nil
}

// derivative1D sets dst to the derivative of f with respect to the
// coordinates c. len(c) must be at least 2.
func derivative1D(dst, f, c []float64) {
	n := len(c)
	if n == 2 {
		d := (f[1] - f[0]) / (c[1] - c[0])
		dst[0], dst[1] = d, d
		return
	}

	for i := 1; i < n-1; i++ {
		h1 := c[i] - c[i-1]
		h2 := c[i+1] - c[i]
		a := -h2 / (h1 * (h1 + h2))
		b := (h2 - h1) / (h1 * h2)
		cc := h1 / (h2 * (h1 + h2))
		dst[i] = a*f[i-1] + b*f[i] + cc*f[i+1]
	}

	h1 := c[1] - c[0]
	h2 := c[2] - c[1]
	a := -(2*h1 + h2) / (h1 * (h1 + h2))
	b := (h1 + h2) / (h1 * h2)
	cc := -h1 / (h2 * (h1 + h2))
	dst[0] = a*f[0] + b*f[1] + cc*f[2]

	h1 = c[n-2] - c[n-3]
	h2 = c[n-1] - c[n-2]
	a = h2 / (h1 * (h1 + h2))
	b = -(h2 + h1) / (h1 * h2)
	cc = (2*h2 + h1) / (h2 * (h1 + h2))
	dst[n-1] = a*f[n-3] + b*f[n-2] + cc*f[n-1]
}
