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
	"sort"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// Write writes the simulation to w in netCDF format. The axes are stored
// in the variables time, y and x and every physical variable is stored
// with dimensions [time, y, x]. extra holds additional [time, y, x]
// variables to store alongside the physical variables, for example the
// results of Evaluate; it may be nil.
func (s *Simulation) Write(w cdf.ReaderWriterAt, extra map[string]*sparse.DenseArray) error {
	names := s.FieldNames()
	extraNames := make([]string, 0, len(extra))
	for name, d := range extra {
		if _, ok := fieldDescriptions[name]; ok || name == "time" || name == "x" || name == "y" {
			return fmt.Errorf("hifi: writing variable %s: name is already in use", name)
		}
		if len(d.Shape) != 3 || d.Shape[0] != s.Nt() || d.Shape[1] != s.Ny() || d.Shape[2] != s.Nx() {
			return fmt.Errorf("hifi: writing variable %s with shape %v: %w", name, d.Shape, ErrShapeMismatch)
		}
		extraNames = append(extraNames, name)
	}
	sort.Strings(extraNames)

	h := cdf.NewHeader([]string{"time", "y", "x"}, []int{s.Nt(), s.Ny(), s.Nx()})
	h.AddAttribute("", "name", s.name)
	h.AddAttribute("", "postpath", s.postpath)
	h.AddVariable("time", []string{"time"}, []float64{0})
	h.AddAttribute("time", "description", "Simulation time")
	h.AddVariable("y", []string{"y"}, []float64{0})
	h.AddAttribute("y", "description", "Grid y coordinate")
	h.AddVariable("x", []string{"x"}, []float64{0})
	h.AddAttribute("x", "description", "Grid x coordinate")
	for _, name := range names {
		h.AddVariable(name, []string{"time", "y", "x"}, []float64{0})
		h.AddAttribute(name, "description", fieldDescriptions[name])
	}
	for _, name := range extraNames {
		h.AddVariable(name, []string{"time", "y", "x"}, []float64{0})
		h.AddAttribute(name, "description", "User-defined variable")
	}
	h.Define()

	f, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("hifi: creating netCDF file: %v", err)
	}
	if err := writeNCF(f, "time", s.time); err != nil {
		return err
	}
	if err := writeNCF(f, "y", s.y); err != nil {
		return err
	}
	if err := writeNCF(f, "x", s.x); err != nil {
		return err
	}
	for _, name := range names {
		if err := writeNCF(f, name, s.fields[name].Elements); err != nil {
			return err
		}
	}
	for _, name := range extraNames {
		if err := writeNCF(f, name, extra[name].Elements); err != nil {
			return err
		}
	}
	return nil
}

func writeNCF(f *cdf.File, v string, data []float64) error {
	end := f.Header.Lengths(v)
	start := make([]int, len(end))
	w := f.Writer(v, start, end)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("hifi: writing netCDF variable %s: %v", v, err)
	}
	return nil
}

func readNCF(f *cdf.File, v string) (*sparse.DenseArray, error) {
	dims := f.Header.Lengths(v)
	if dims == nil {
		return nil, fmt.Errorf("hifi: netCDF file is missing variable %s", v)
	}
	d := sparse.ZerosDense(dims...)
	r := f.Reader(v, nil, nil)
	if _, err := r.Read(d.Elements); err != nil {
		return nil, fmt.Errorf("hifi: reading netCDF variable %s: %v", v, err)
	}
	return d, nil
}

// Load reads a simulation that was previously saved with Write.
func Load(rw cdf.ReaderWriterAt) (*Simulation, error) {
	f, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("hifi: opening netCDF file: %v", err)
	}
	s := &Simulation{fields: make(map[string]*sparse.DenseArray)}
	if name, ok := f.Header.GetAttribute("", "name").(string); ok {
		s.name = name
	}
	if postpath, ok := f.Header.GetAttribute("", "postpath").(string); ok {
		s.postpath = postpath
	}
	for _, ax := range []struct {
		name string
		dst  *[]float64
	}{{"time", &s.time}, {"y", &s.y}, {"x", &s.x}} {
		d, err := readNCF(f, ax.name)
		if err != nil {
			return nil, err
		}
		*ax.dst = d.Elements
	}
	for _, name := range FieldNames() {
		d, err := readNCF(f, name)
		if err != nil {
			return nil, err
		}
		if len(d.Shape) != 3 || d.Shape[0] != s.Nt() || d.Shape[1] != s.Ny() || d.Shape[2] != s.Nx() {
			return nil, fmt.Errorf("hifi: netCDF variable %s has shape %v: %w", name, d.Shape, ErrShapeMismatch)
		}
		s.fields[name] = d
	}
	return s, nil
}
