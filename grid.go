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

// Grid holds the coordinates of a HiFi simulation mesh.
type Grid struct {
	// X2D and Y2D are the x and y coordinates of every mesh point,
	// with shape [ny, nx].
	X2D, Y2D *sparse.DenseArray

	// X is the first row of X2D and Y is the first column of Y2D.
	X, Y []float64
}

// ReadGrid reads the mesh from the first grid*.h5 file in postpath.
// The x and y coordinates are stored under the keys U01 and U02.
func ReadGrid(postpath string, open Opener) (*Grid, error) {
	dir, err := checkDir(postpath)
	if err != nil {
		return nil, err
	}
	files, err := glob(dir, gridPattern)
	if err != nil {
		return nil, fmt.Errorf("hifi: listing grid files in %s: %v", postpath, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("hifi: %s: %w", postpath, ErrGridNotFound)
	}

	f, err := open(files[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x2d, err := f.Field("U01")
	if err != nil {
		return nil, err
	}
	y2d, err := f.Field("U02")
	if err != nil {
		return nil, err
	}
	if len(x2d.Shape) != 2 || len(y2d.Shape) != 2 ||
		x2d.Shape[0] != y2d.Shape[0] || x2d.Shape[1] != y2d.Shape[1] {
		return nil, fmt.Errorf("hifi: %s: x shape %v and y shape %v: %w",
			files[0], x2d.Shape, y2d.Shape, ErrShapeMismatch)
	}

	ny, nx := x2d.Shape[0], x2d.Shape[1]
	g := &Grid{
		X2D: x2d,
		Y2D: y2d,
		X:   make([]float64, nx),
		Y:   make([]float64, ny),
	}
	for i := 0; i < nx; i++ {
		g.X[i] = x2d.Get(0, i)
	}
	for j := 0; j < ny; j++ {
		g.Y[j] = y2d.Get(j, 0)
	}
	return g, nil
}

// Rectilinear reports whether every row of X2D equals X and every
// column of Y2D equals Y, i.e. whether the 1-D axes describe the
// whole mesh.
func (g *Grid) Rectilinear() bool {
	for j := range g.Y {
		for i := range g.X {
			if g.X2D.Get(j, i) != g.X[i] || g.Y2D.Get(j, i) != g.Y[j] {
				return false
			}
		}
	}
	return true
}
