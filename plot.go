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
	"io"
	"math"

	"github.com/ctessum/sparse"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// heatGrid presents one time step of a [time, y, x] array as a
// plotter.GridXYZ. Non-finite values are returned as NaN so that they are
// left blank.
type heatGrid struct {
	d    *sparse.DenseArray
	t    int
	x, y []float64
}

func (g heatGrid) Dims() (c, r int) { return len(g.x), len(g.y) }
func (g heatGrid) X(c int) float64 { return g.x[c] }
func (g heatGrid) Y(r int) float64 { return g.y[r] }
func (g heatGrid) Z(c, r int) float64 {
	v := g.d.Get(g.t, r, c)
	if math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// Plot draws the named physical variable at time step t as a PNG heat
// map with a color bar and writes it to w.
func (s *Simulation) Plot(w io.Writer, name string, t int) error {
	d, ok := s.fields[name]
	if !ok {
		return fmt.Errorf("hifi: %q: %w", name, ErrUnknownField)
	}
	if t < 0 || t >= s.Nt() {
		return fmt.Errorf("hifi: time index %d is out of range [0, %d)", t, s.Nt())
	}
	g := heatGrid{d: d, t: t, x: s.x, y: s.y}

	min, max := math.Inf(1), math.Inf(-1)
	for j := range s.y {
		for i := range s.x {
			v := g.Z(i, j)
			if math.IsNaN(v) {
				continue
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}
	if math.IsInf(min, 1) {
		return fmt.Errorf("hifi: %s has no finite values at time index %d", name, t)
	}
	if min == max {
		min, max = min-0.5, max+0.5
	}

	cm := moreland.ExtendedBlackBody()
	cm.SetMin(min)
	cm.SetMax(max)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%s) at t = %g", name, s.name, s.time[t])
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	hm := plotter.NewHeatMap(g, cm.Palette(255))
	hm.Min, hm.Max = min, max
	p.Add(hm)

	legend := plot.New()
	legend.Add(&plotter.ColorBar{ColorMap: cm})
	legend.HideY()
	legend.X.Padding = 0
	legend.X.Label.Text = fieldDescriptions[name]

	const (
		width        = 5 * vg.Inch
		height       = 5 * vg.Inch
		legendHeight = 0.8 * vg.Inch
	)
	img := vgimg.New(width, height+legendHeight)
	dc := draw.New(img)
	p.Draw(draw.Crop(dc, 0, 0, legendHeight, 0))
	legend.Draw(draw.Crop(dc, 0, 0, 0, -height))

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("hifi: writing plot: %v", err)
	}
	return nil
}
