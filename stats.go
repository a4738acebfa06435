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
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds summary statistics of a physical variable. Min, Max and
// Mean only consider finite values; NonFinite counts the infinite and
// NaN values, which result from dividing by a zero density.
type Summary struct {
	Min, Max, Mean float64
	NonFinite      int
}

// Summary calculates summary statistics of the named physical variable
// across all times and grid points.
func (s *Simulation) Summary(name string) (Summary, error) {
	d, ok := s.fields[name]
	if !ok {
		return Summary{}, fmt.Errorf("hifi: %q: %w", name, ErrUnknownField)
	}
	finite := make([]float64, 0, len(d.Elements))
	for _, v := range d.Elements {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	o := Summary{NonFinite: len(d.Elements) - len(finite)}
	if len(finite) == 0 {
		o.Min, o.Max, o.Mean = math.NaN(), math.NaN(), math.NaN()
		return o, nil
	}
	o.Min = floats.Min(finite)
	o.Max = floats.Max(finite)
	o.Mean = stat.Mean(finite, nil)
	return o, nil
}
