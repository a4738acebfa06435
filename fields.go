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

// SourceKeys are the keys of the variables stored in each postprocessed
// HiFi output file.
var SourceKeys = []string{
	"U01", "U02", "U03", "U04", "U05", "U06", "U07",
	"U08", "U09", "U10", "U11", "U12", "U13",
}

// Keys of the density variables that velocities can be derived from.
const (
	IonDensityKey     = "U01"
	NeutralDensityKey = "U09"
)

// directField is a physical variable that is a (possibly sign-flipped)
// copy of a HiFi output variable.
type directField struct {
	name, description string
	key               string
	sign              float64
}

// ratioField is a physical variable calculated as the ratio of two HiFi
// output variables. An empty denominator means the configured
// neutral density.
type ratioField struct {
	name, description string
	numerator         string
	denominator       string
}

var directFields = []directField{
	{name: "ni", description: "Ion density", key: "U01", sign: 1},
	{name: "Az", description: "Out-of-plane magnetic vector potential", key: "U02", sign: -1},
	{name: "Bz", description: "Out-of-plane magnetic field", key: "U03", sign: 1},
	{name: "Jz", description: "Out-of-plane current density", key: "U07", sign: 1},
	{name: "pp", description: "Plasma pressure", key: "U08", sign: 1},
	{name: "nn", description: "Neutral density", key: "U09", sign: 1},
	{name: "pn", description: "Neutral pressure", key: "U13", sign: 1},
}

var ratioFields = []ratioField{
	{name: "Vix", description: "Ion velocity in the x direction", numerator: "U04", denominator: IonDensityKey},
	{name: "Viy", description: "Ion velocity in the y direction", numerator: "U05", denominator: IonDensityKey},
	{name: "Viz", description: "Ion velocity in the z direction", numerator: "U06", denominator: IonDensityKey},
	{name: "Vnx", description: "Neutral velocity in the x direction", numerator: "U10"},
	{name: "Vny", description: "Neutral velocity in the y direction", numerator: "U11"},
	{name: "Vnz", description: "Neutral velocity in the z direction", numerator: "U12"},
}

// Magnetic field components calculated from the gradient of Az.
var gradientFields = []struct{ name, description string }{
	{name: "Bx", description: "Magnetic field in the x direction"},
	{name: "By", description: "Magnetic field in the y direction"},
}

// fieldDescriptions maps every physical variable name to its description.
var fieldDescriptions = func() map[string]string {
	o := make(map[string]string)
	for _, f := range directFields {
		o[f.name] = f.description
	}
	for _, f := range ratioFields {
		o[f.name] = f.description
	}
	for _, f := range gradientFields {
		o[f.name] = f.description
	}
	return o
}()

// FieldNames returns the names of the physical variables, in the
// order direct variables, velocities, in-plane magnetic field.
func FieldNames() []string {
	names := make([]string, 0, len(fieldDescriptions))
	for _, f := range directFields {
		names = append(names, f.name)
	}
	for _, f := range ratioFields {
		names = append(names, f.name)
	}
	for _, f := range gradientFields {
		names = append(names, f.name)
	}
	return names
}

// FieldDescription returns a description of the named physical variable.
func FieldDescription(name string) (string, bool) {
	d, ok := fieldDescriptions[name]
	return d, ok
}

// stack copies variable key from every source into a single
// [len(sources), ny, nx] array.
func stack(sources []Source, key string, ny, nx int) (*sparse.DenseArray, error) {
	o := sparse.ZerosDense(len(sources), ny, nx)
	n := ny * nx
	for t, s := range sources {
		d, err := s.Field(key)
		if err != nil {
			return nil, err
		}
		if len(d.Shape) != 2 || d.Shape[0] != ny || d.Shape[1] != nx {
			return nil, fmt.Errorf("hifi: time step %d variable %s has shape %v but the grid is [%d %d]: %w",
				t, key, d.Shape, ny, nx, ErrShapeMismatch)
		}
		copy(o.Elements[t*n:(t+1)*n], d.Elements)
	}
	return o, nil
}

// deriveDirect applies the sign of each direct variable to its source.
func deriveDirect(raw map[string]*sparse.DenseArray, out map[string]*sparse.DenseArray) {
	for _, f := range directFields {
		d := raw[f.key]
		if f.sign == 1 {
			out[f.name] = d
			continue
		}
		out[f.name] = d.ScaleCopy(f.sign)
	}
}

// deriveRatios divides each velocity numerator by its density. Zero
// densities result in infinite or NaN velocities.
func deriveRatios(raw map[string]*sparse.DenseArray, neutralDensity string, out map[string]*sparse.DenseArray) {
	for _, f := range ratioFields {
		den := f.denominator
		if den == "" {
			den = neutralDensity
		}
		num, d := raw[f.numerator], raw[den]
		r := sparse.ZerosDense(num.Shape...)
		for i, v := range num.Elements {
			r.Elements[i] = v / d.Elements[i]
		}
		out[f.name] = r
	}
}

// deriveB calculates the in-plane magnetic field from the gradient of Az at
// each time step: By is ∂Az/∂y and Bx is ∂Az/∂x.
func deriveB(az *sparse.DenseArray, y, x []float64, out map[string]*sparse.DenseArray) error {
	nt, ny, nx := az.Shape[0], az.Shape[1], az.Shape[2]
	bx := sparse.ZerosDense(nt, ny, nx)
	by := sparse.ZerosDense(nt, ny, nx)
	n := ny * nx
	for t := 0; t < nt; t++ {
		slice := sparse.ZerosDense(ny, nx)
		copy(slice.Elements, az.Elements[t*n:(t+1)*n])
		dy, dx, err := Gradient2D(slice, y, x)
		if err != nil {
			return err
		}
		copy(by.Elements[t*n:(t+1)*n], dy.Elements)
		copy(bx.Elements[t*n:(t+1)*n], dx.Elements)
	}
	out["Bx"] = bx
	out["By"] = by
	return nil
}
