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

// Package hifitest builds postprocessed HiFi simulation directories for
// testing. The HDF5 files it creates are empty placeholders; their contents
// are held in memory and are read through Dir.Open.
package hifitest

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"testing"

	"github.com/ctessum/sparse"
)

// Source is an in-memory HDF5 file.
type Source struct {
	Vars   map[string]*sparse.DenseArray
	Closed bool
}

// Field returns a copy of the variable stored under key.
func (s *Source) Field(key string) (*sparse.DenseArray, error) {
	d, ok := s.Vars[key]
	if !ok {
		return nil, fmt.Errorf("hifitest: no variable %s", key)
	}
	return d.Copy(), nil
}

// Keys returns the sorted variable keys.
func (s *Source) Keys() ([]string, error) {
	keys := make([]string, 0, len(s.Vars))
	for k := range s.Vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close marks the source as closed.
func (s *Source) Close() error {
	s.Closed = true
	return nil
}

// Dir is a simulation directory on disk whose HDF5 contents are in
// memory.
type Dir struct {
	Path string

	// Files maps the base names of the HDF5 files to their contents.
	Files map[string]*Source

	// Opened lists the files that have been opened, in order.
	Opened []string
}

// Open opens the in-memory contents of the HDF5 file at path.
func (d *Dir) Open(path string) (*Source, error) {
	s, ok := d.Files[filepath.Base(path)]
	if !ok {
		return nil, fmt.Errorf("hifitest: no such file %s", path)
	}
	s.Closed = false
	d.Opened = append(d.Opened, filepath.Base(path))
	return s, nil
}

// AllClosed reports whether every opened file has been closed.
func (d *Dir) AllClosed() bool {
	for _, name := range d.Opened {
		if !d.Files[name].Closed {
			return false
		}
	}
	return true
}

// Value is the value of HiFi variable key (U01 to U13) at time step t and
// grid indices j (y) and i (x) in directories created by NewDir. It is
// always positive.
func Value(key string, t, j, i int) float64 {
	k, err := strconv.Atoi(key[1:])
	if err != nil {
		panic(err)
	}
	return float64(k) + 0.5*float64(t) + 0.25*float64(j) + 0.125*float64(i) + 1
}

// Keys are the HiFi variable keys.
var Keys = []string{
	"U01", "U02", "U03", "U04", "U05", "U06", "U07",
	"U08", "U09", "U10", "U11", "U12", "U13",
}

// XMFTimeLine returns the line of an .xmf file that holds the simulation
// time, with the value in columns 18 to 29.
func XMFTimeLine(time float64) string {
	return fmt.Sprintf(`     <Time Value="%12.6E"/>`, time)
}

// XMF returns the contents of an .xmf file for the given time.
func XMF(time float64) string {
	return `<?xml version="1.0" ?>
<!DOCTYPE Xdmf SYSTEM "Xdmf.dtd" []>
<Xdmf>
  <Domain>
    <Grid Name="post" GridType="Uniform">
` + XMFTimeLine(time) + `
      <Topology TopologyType="2DSMesh"/>
    </Grid>
  </Domain>
</Xdmf>
`
}

// WriteFile writes contents to the file name in dir.
func WriteFile(t testing.TB, dir, name, contents string) {
	t.Helper()
	if err := ioutil.WriteFile(filepath.Join(dir, name), []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
}

// Remove deletes the file name in dir.
func Remove(t testing.TB, dir, name string) {
	t.Helper()
	if err := os.Remove(filepath.Join(dir, name)); err != nil {
		t.Fatal(err)
	}
}

// GridFile is the name of the grid file created by NewDir.
const GridFile = "grid_00000.h5"

// PostFile returns the name of the data file of output step t.
func PostFile(t int) string { return fmt.Sprintf("post_%05d.h5", t) }

// XMFFile returns the name of the metadata file of output step t.
func XMFFile(t int) string { return fmt.Sprintf("post_%05d.xmf", t) }

// NewDir creates a simulation directory in a temporary directory with a
// rectilinear grid with axes x and y and one output step for each of
// times. Variable values are given by Value.
func NewDir(t testing.TB, x, y, times []float64) *Dir {
	t.Helper()
	d := &Dir{
		Path:  t.TempDir(),
		Files: make(map[string]*Source),
	}
	ny, nx := len(y), len(x)

	x2d := sparse.ZerosDense(ny, nx)
	y2d := sparse.ZerosDense(ny, nx)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			x2d.Set(x[i], j, i)
			y2d.Set(y[j], j, i)
		}
	}
	WriteFile(t, d.Path, GridFile, "")
	d.Files[GridFile] = &Source{Vars: map[string]*sparse.DenseArray{"U01": x2d, "U02": y2d}}

	for ti, time := range times {
		vars := make(map[string]*sparse.DenseArray)
		for _, key := range Keys {
			v := sparse.ZerosDense(ny, nx)
			for j := 0; j < ny; j++ {
				for i := 0; i < nx; i++ {
					v.Set(Value(key, ti, j, i), j, i)
				}
			}
			vars[key] = v
		}
		WriteFile(t, d.Path, PostFile(ti), "")
		WriteFile(t, d.Path, XMFFile(ti), XMF(time))
		d.Files[PostFile(ti)] = &Source{Vars: vars}
	}
	return d
}
