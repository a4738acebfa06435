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
)

// Line returns the named physical variable at time step t along one grid
// line, together with the coordinates of the points on the line. If axis
// is "x" the line runs in the x direction at y index index; if axis is
// "y" it runs in the y direction at x index index.
func (s *Simulation) Line(name string, t int, axis string, index int) (coords, values []float64, err error) {
	d, ok := s.fields[name]
	if !ok {
		return nil, nil, fmt.Errorf("hifi: %q: %w", name, ErrUnknownField)
	}
	if t < 0 || t >= s.Nt() {
		return nil, nil, fmt.Errorf("hifi: time index %d is out of range [0, %d)", t, s.Nt())
	}
	switch axis {
	case "x":
		if index < 0 || index >= s.Ny() {
			return nil, nil, fmt.Errorf("hifi: y index %d is out of range [0, %d)", index, s.Ny())
		}
		values = make([]float64, s.Nx())
		for i := range values {
			values[i] = d.Get(t, index, i)
		}
		return s.X(), values, nil
	case "y":
		if index < 0 || index >= s.Nx() {
			return nil, nil, fmt.Errorf("hifi: x index %d is out of range [0, %d)", index, s.Nx())
		}
		values = make([]float64, s.Ny())
		for j := range values {
			values[j] = d.Get(t, j, index)
		}
		return s.Y(), values, nil
	default:
		return nil, nil, fmt.Errorf("hifi: axis must be \"x\" or \"y\", not %q", axis)
	}
}
