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
	"github.com/robert-malhotra/go-hdf5/hdf5"
)

// Source is an open HiFi output file: a container of named arrays
// ("U01", "U02", ...).
type Source interface {
	// Field reads the array stored under key.
	Field(key string) (*sparse.DenseArray, error)

	// Keys lists the arrays available in the file.
	Keys() ([]string, error)

	// Close releases the underlying file.
	Close() error
}

// Opener opens the file at path as a Source.
type Opener func(path string) (Source, error)

// h5Source is a Source backed by an HDF5 file.
type h5Source struct {
	f *hdf5.File
}

// OpenHDF5 opens the HDF5 file at path. It is the default Opener.
func OpenHDF5(path string) (Source, error) {
	f, err := hdf5.Open(path)
	if err != nil {
		return nil, fmt.Errorf("hifi: opening %s: %v", path, err)
	}
	return &h5Source{f: f}, nil
}

// Field helps fulfill the Source interface.
func (s *h5Source) Field(key string) (*sparse.DenseArray, error) {
	ds, err := s.f.Root().OpenDataset(key)
	if err != nil {
		return nil, fmt.Errorf("hifi: %s: variable %s: %v", s.f.Path(), key, err)
	}
	shape := ds.Shape()
	if len(shape) == 0 {
		return nil, fmt.Errorf("hifi: %s: variable %s is a scalar: %w", s.f.Path(), key, ErrShapeMismatch)
	}
	dims := make([]int, len(shape))
	for i, d := range shape {
		dims[i] = int(d)
	}
	vals, err := ds.ReadFloat64()
	if err != nil {
		return nil, fmt.Errorf("hifi: %s: reading variable %s: %v", s.f.Path(), key, err)
	}
	data := sparse.ZerosDense(dims...)
	if len(vals) != len(data.Elements) {
		return nil, fmt.Errorf("hifi: %s: variable %s has %d values but shape %v: %w",
			s.f.Path(), key, len(vals), dims, ErrShapeMismatch)
	}
	copy(data.Elements, vals)
	return data, nil
}

// Keys helps fulfill the Source interface.
func (s *h5Source) Keys() ([]string, error) {
	return s.f.Root().Members()
}

// Close helps fulfill the Source interface.
func (s *h5Source) Close() error {
	return s.f.Close()
}
