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
	"errors"
	"testing"

	"github.com/ctessum/sparse"
)

func TestGradient2D(t *testing.T) {
	// Second-order differences are exact for quadratics, even on unevenly
	// spaced grids and at the edges.
	x := []float64{0, 1, 3, 4, 7}
	y := []float64{-2, -1.5, 0, 2}
	f := sparse.ZerosDense(len(y), len(x))
	for j, yy := range y {
		for i, xx := range x {
			f.Set(xx*xx+3*yy*yy-xx*yy+1, j, i)
		}
	}
	dfdy, dfdx, err := Gradient2D(f, y, x)
	if err != nil {
		t.Fatal(err)
	}
	for j, yy := range y {
		for i, xx := range x {
			if want, got := 2*xx-yy, dfdx.Get(j, i); absDifferent(got, want) {
				t.Errorf("df/dx(%g, %g) = %g, want %g", xx, yy, got, want)
			}
			if want, got := 6*yy-xx, dfdy.Get(j, i); absDifferent(got, want) {
				t.Errorf("df/dy(%g, %g) = %g, want %g", xx, yy, got, want)
			}
		}
	}
}

func TestDerivative1D(t *testing.T) {
	tests := []struct {
		name string
		f, c []float64
		want []float64
	}{
		{
			name: "uniform",
			c:    []float64{0, 1, 2, 3},
			f:    []float64{1, 2, 4, 7},
			// numpy.gradient([1, 2, 4, 7], edge_order=2)
			want: []float64{0.5, 1.5, 2.5, 3.5},
		},
		{
			name: "two points",
			c:    []float64{1, 3},
			f:    []float64{2, 6},
			want: []float64{2, 2},
		},
		{
			name: "uneven",
			c:    []float64{0, 1, 3},
			f:    []float64{0, 1, 27},
			// The parabola through the points is 4x² - 3x.
			want: []float64{-3, 5, 21},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dst := make([]float64, len(test.f))
			derivative1D(dst, test.f, test.c)
			for i, w := range test.want {
				if different(dst[i], w, testTolerance) {
					t.Errorf("derivative[%d] = %g, want %g", i, dst[i], w)
				}
			}
		})
	}
}

func TestGradient2DErrors(t *testing.T) {
	tests := []struct {
		name string
		f    *sparse.DenseArray
		y, x []float64
	}{
		{"shape", sparse.ZerosDense(3, 4), []float64{0, 1, 2}, []float64{0, 1, 2}},
		{"3-D", sparse.ZerosDense(1, 3, 3), []float64{0, 1, 2}, []float64{0, 1, 2}},
		{"one x", sparse.ZerosDense(3, 1), []float64{0, 1, 2}, []float64{0}},
		{"one y", sparse.ZerosDense(1, 3), []float64{0}, []float64{0, 1, 2}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := Gradient2D(test.f, test.y, test.x)
			if !errors.Is(err, ErrShapeMismatch) {
				t.Errorf("error %v, want %v", err, ErrShapeMismatch)
			}
		})
	}
}
