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

package hifiutil

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/ctessum/sparse"
	"github.com/hifipy/hifi"
	"github.com/hifipy/hifi/nullfinder"
	"github.com/sirupsen/logrus"
)

// Info writes a summary of s to w.
func Info(w io.Writer, s *hifi.Simulation) error {
	x, y, t := s.X(), s.Y(), s.Time()
	fmt.Fprintf(w, "Simulation: %s\n", s.Name())
	fmt.Fprintf(w, "Directory:  %s\n", s.Postpath())
	fmt.Fprintf(w, "Grid:       %d × %d (x: %g to %g, y: %g to %g)\n",
		s.Nx(), s.Ny(), x[0], x[len(x)-1], y[0], y[len(y)-1])
	fmt.Fprintf(w, "Time:       %d steps (%g to %g)\n\n", s.Nt(), t[0], t[len(t)-1])

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Variable\tMin\tMax\tMean\tNon-finite\tDescription")
	for _, name := range s.FieldNames() {
		sum, err := s.Summary(name)
		if err != nil {
			return err
		}
		desc, _ := hifi.FieldDescription(name)
		fmt.Fprintf(tw, "%s\t%.4g\t%.4g\t%.4g\t%d\t%s\n",
			name, sum.Min, sum.Max, sum.Mean, sum.NonFinite, desc)
	}
	return tw.Flush()
}

// Export writes s and the variables calculated from the expressions in
// outputVars to the netCDF file outputFile.
func Export(outputFile string, s *hifi.Simulation, outputVars map[string]string) error {
	names := make([]string, 0, len(outputVars))
	for name := range outputVars {
		names = append(names, name)
	}
	sort.Strings(names)
	extra := make(map[string]*sparse.DenseArray, len(outputVars))
	for _, name := range names {
		d, err := s.Evaluate(outputVars[name])
		if err != nil {
			return fmt.Errorf("hifi: output variable %s: %v", name, err)
		}
		extra[name] = d
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("hifi: creating output file: %v", err)
	}
	if err := s.Write(f, extra); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("hifi: closing output file: %v", err)
	}
	logrus.WithFields(logrus.Fields{
		"file":      outputFile,
		"variables": len(s.FieldNames()) + len(extra),
	}).Info("hifi: wrote netCDF file")
	return nil
}

// Plot draws variable name of s at time index t and saves it to the PNG
// file plotFile.
func Plot(plotFile string, s *hifi.Simulation, name string, t int) error {
	f, err := os.Create(plotFile)
	if err != nil {
		return fmt.Errorf("hifi: creating plot file: %v", err)
	}
	if err := s.Plot(f, name, t); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("hifi: closing plot file: %v", err)
	}
	logrus.WithField("file", plotFile).Info("hifi: wrote plot")
	return nil
}

// Nulls writes to w the locations where variable name of s at time index
// t crosses zero along the grid line in direction axis at grid index
// index. kind is the interpolation kind (see nullfinder.ParseKind) and
// ytol the tolerance within which a grid value counts as zero.
func Nulls(w io.Writer, s *hifi.Simulation, name string, t int, axis string, index int, kind string, ytol float64) error {
	k, err := nullfinder.ParseKind(kind)
	if err != nil {
		return err
	}
	coords, values, err := s.Line(name, t, axis, index)
	if err != nil {
		return err
	}
	roots, err := nullfinder.Roots(coords, values, k, ytol)
	if err != nil {
		return err
	}
	for _, r := range roots {
		fmt.Fprintf(w, "%s = %g\n", axis, r)
	}
	return nil
}
