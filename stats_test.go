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
	"errors"
	"math"
	"testing"

	"github.com/ctessum/sparse"
	"github.com/hifipy/hifi/internal/hifitest"
)

func TestSummary(t *testing.T) {
	s, _ := newTestSimulation(t)
	v := hifitest.Value
	nt, ny, nx := s.Nt(), s.Ny(), s.Nx()
	sum, err := s.Summary("Jz")
	if err != nil {
		t.Fatal(err)
	}
	want := Summary{
		Min: v("U07", 0, 0, 0),
		Max: v("U07", nt-1, ny-1, nx-1),
		// Jz is linear in each index, so the mean is at the center.
		Mean: v("U07", 0, 0, 0) + 0.5*float64(nt-1)*0.5 + 0.5*float64(ny-1)*0.25 + 0.5*float64(nx-1)*0.125,
	}
	if different(sum.Min, want.Min, testTolerance) || different(sum.Max, want.Max, testTolerance) ||
		different(sum.Mean, want.Mean, testTolerance) || sum.NonFinite != 0 {
		t.Errorf("summary %+v, want %+v", sum, want)
	}
	if _, err := s.Summary("dasffa"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("error %v, want %v", err, ErrUnknownField)
	}
}

func TestSummaryNonFinite(t *testing.T) {
	d := hifitest.NewDir(t, testX, testY, testTimes)
	d.Files[hifitest.PostFile(0)].Vars["U01"] = sparse.ZerosDense(len(testY), len(testX))
	s, err := New(d.Path, WithOpener(opener(d)), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	sum, err := s.Summary("Vix")
	if err != nil {
		t.Fatal(err)
	}
	if want := len(testY) * len(testX); sum.NonFinite != want {
		t.Errorf("%d non-finite values, want %d", sum.NonFinite, want)
	}
	if math.IsNaN(sum.Mean) || math.IsInf(sum.Mean, 0) {
		t.Errorf("mean %g should be finite", sum.Mean)
	}
}
