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
	"unicode"
	"unicode/utf8"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
)

// DefaultName is the name of a simulation that was not given one.
const DefaultName = "no ID"

// Simulation holds all of the postprocessed output of a HiFi simulation:
// the space and time axes and every physical variable, each with shape
// [Nt, Ny, Nx]. It is immutable once created.
type Simulation struct {
	name, postpath string

	x, y, time []float64

	fields map[string]*sparse.DenseArray
}

type config struct {
	name           string
	open           Opener
	log            logrus.FieldLogger
	neutralDensity string
}

// Option configures how a Simulation is loaded.
type Option func(*config)

// Name sets the identifier of the simulation. The default is DefaultName.
func Name(name string) Option {
	return func(c *config) { c.name = name }
}

// WithOpener sets the function used to open the grid and data files.
// The default is OpenHDF5.
func WithOpener(open Opener) Option {
	return func(c *config) { c.open = open }
}

// WithLogger sets where progress messages are logged. The default is
// the logrus standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) { c.log = log }
}

// NeutralDensity sets the variable (IonDensityKey or NeutralDensityKey)
// that the neutral momentum variables U10, U11 and U12 are divided by to
// give the neutral velocities. The default is IonDensityKey.
func NeutralDensity(key string) Option {
	return func(c *config) { c.neutralDensity = key }
}

func checkName(name string) error {
	if !utf8.ValidString(name) {
		return fmt.Errorf("hifi: %q: %w", name, ErrInvalidName)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("hifi: %q: %w", name, ErrInvalidName)
		}
	}
	return nil
}

// New loads the postprocessed output of the HiFi simulation in directory
// postpath. Either the whole simulation is loaded or an error is
// returned. All data files are closed before New returns.
func New(postpath string, opts ...Option) (*Simulation, error) {
	c := config{
		open:           OpenHDF5,
		log:            logrus.StandardLogger(),
		neutralDensity: IonDensityKey,
	}
	for _, o := range opts {
		o(&c)
	}
	if _, err := checkDir(postpath); err != nil {
		return nil, err
	}
	if err := checkName(c.name); err != nil {
		return nil, err
	}
	if c.name == "" {
		c.name = DefaultName
	}
	if c.neutralDensity != IonDensityKey && c.neutralDensity != NeutralDensityKey {
		return nil, fmt.Errorf("hifi: neutral density variable must be %s or %s, not %q",
			IonDensityKey, NeutralDensityKey, c.neutralDensity)
	}
	log := c.log.WithFields(logrus.Fields{"postpath": postpath, "name": c.name})

	grid, err := ReadGrid(postpath, c.open)
	if err != nil {
		return nil, err
	}
	if !grid.Rectilinear() {
		log.Warn("hifi: grid is not rectilinear; the x and y axes only describe its first row and column")
	}

	sources, time, err := ReadDirectory(postpath, c.open)
	if err != nil {
		return nil, err
	}
	log.WithField("files", len(sources)).Debug("hifi: opened data files")

	raw, err := stackAll(sources, len(grid.Y), len(grid.X))
	if cerr := closeAll(sources); cerr != nil && err == nil {
		err = fmt.Errorf("hifi: closing data files: %v", cerr)
	}
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		name:     c.name,
		postpath: postpath,
		x:        grid.X,
		y:        grid.Y,
		time:     time,
		fields:   make(map[string]*sparse.DenseArray),
	}
	deriveDirect(raw, s.fields)
	deriveRatios(raw, c.neutralDensity, s.fields)
	if err := deriveB(s.fields["Az"], s.y, s.x, s.fields); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"nt": s.Nt(),
		"ny": s.Ny(),
		"nx": s.Nx(),
	}).Info("hifi: loaded simulation")
	return s, nil
}

// stackAll stacks every HiFi output variable across time.
func stackAll(sources []Source, ny, nx int) (map[string]*sparse.DenseArray, error) {
	raw := make(map[string]*sparse.DenseArray, len(SourceKeys))
	for _, key := range SourceKeys {
		d, err := stack(sources, key, ny, nx)
		if err != nil {
			return nil, err
		}
		raw[key] = d
	}
	return raw, nil
}

// Name returns the identifier of the simulation.
func (s *Simulation) Name() string { return s.name }

// Postpath returns the directory the simulation was loaded from.
func (s *Simulation) Postpath() string { return s.postpath }

// X returns the x axis.
func (s *Simulation) X() []float64 { return append([]float64(nil), s.x...) }

// Y returns the y axis.
func (s *Simulation) Y() []float64 { return append([]float64(nil), s.y...) }

// Time returns the time of each output step.
func (s *Simulation) Time() []float64 { return append([]float64(nil), s.time...) }

// Nx is the number of grid points in the x direction.
func (s *Simulation) Nx() int { return len(s.x) }

// Ny is the number of grid points in the y direction.
func (s *Simulation) Ny() int { return len(s.y) }

// Nt is the number of output steps.
func (s *Simulation) Nt() int { return len(s.time) }

// FieldNames returns the names of the physical variables in the
// simulation. They can be retrieved with Field.
func (s *Simulation) FieldNames() []string { return FieldNames() }

// Field returns a copy of the named physical variable.
func (s *Simulation) Field(name string) (*sparse.DenseArray, error) {
	d, ok := s.fields[name]
	if !ok {
		return nil, fmt.Errorf("hifi: %q: %w", name, ErrUnknownField)
	}
	return copyArray(d), nil
}

func (s *Simulation) field(name string) *sparse.DenseArray {
	return copyArray(s.fields[name])
}

// copyArray copies d including its shape, so that the copy shares no
// memory with d.
func copyArray(d *sparse.DenseArray) *sparse.DenseArray {
	o := sparse.ZerosDense(append([]int(nil), d.Shape...)...)
	copy(o.Elements, d.Elements)
	return o
}

// Ni is ion density.
func (s *Simulation) Ni() *sparse.DenseArray { return s.field("ni") }

// Az is the out-of-plane magnetic vector potential.
func (s *Simulation) Az() *sparse.DenseArray { return s.field("Az") }

// Bz is the out-of-plane magnetic field.
func (s *Simulation) Bz() *sparse.DenseArray { return s.field("Bz") }

// Vix is ion velocity in the x direction.
func (s *Simulation) Vix() *sparse.DenseArray { return s.field("Vix") }

// Viy is ion velocity in the y direction.
func (s *Simulation) Viy() *sparse.DenseArray { return s.field("Viy") }

// Viz is ion velocity in the z direction.
func (s *Simulation) Viz() *sparse.DenseArray { return s.field("Viz") }

// Jz is the out-of-plane current density.
func (s *Simulation) Jz() *sparse.DenseArray { return s.field("Jz") }

// Pp is plasma pressure.
func (s *Simulation) Pp() *sparse.DenseArray { return s.field("pp") }

// Nn is neutral density.
func (s *Simulation) Nn() *sparse.DenseArray { return s.field("nn") }

// Vnx is neutral velocity in the x direction.
func (s *Simulation) Vnx() *sparse.DenseArray { return s.field("Vnx") }

// Vny is neutral velocity in the y direction.
func (s *Simulation) Vny() *sparse.DenseArray { return s.field("Vny") }

// Vnz is neutral velocity in the z direction.
func (s *Simulation) Vnz() *sparse.DenseArray { return s.field("Vnz") }

// Pn is neutral pressure.
func (s *Simulation) Pn() *sparse.DenseArray { return s.field("pn") }

// Bx is the x component of the magnetic field, ∂Az/∂x.
func (s *Simulation) Bx() *sparse.DenseArray { return s.field("Bx") }

// By is the y component of the magnetic field, ∂Az/∂y.
func (s *Simulation) By() *sparse.DenseArray { return s.field("By") }
