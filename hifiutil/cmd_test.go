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
	"bytes"
	"fmt"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/hifipy/hifi"
	"github.com/hifipy/hifi/internal/hifitest"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
)

// setup creates a test simulation directory and points the configuration
// at it.
func setup(t *testing.T) *hifitest.Dir {
	d := hifitest.NewDir(t, []float64{0, 1, 2, 3, 4}, []float64{-1.5, -0.5, 0.5, 1.5}, []float64{0, 0.1, 0.2})
	opener = func(path string) (hifi.Source, error) {
		s, err := d.Open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	t.Cleanup(func() { opener = hifi.OpenHDF5 })
	Cfg.Set("config", "")
	Cfg.Set("PostPath", d.Path)
	Cfg.Set("SimID", "test")
	Cfg.Set("LogLevel", "error")
	return d
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	buf := new(bytes.Buffer)
	Root.SetOutput(buf)
	Root.SetArgs(args)
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestVersion(t *testing.T) {
	setup(t)
	out := run(t, "version")
	if want := "hifi v" + hifi.Version; !strings.Contains(out, want) {
		t.Errorf("output %q does not contain %q", out, want)
	}
}

func TestInfo(t *testing.T) {
	setup(t)
	out := run(t, "info")
	for _, want := range []string{"Simulation: test", "5 × 4", "3 steps (0 to 0.2)", "Vix", "Bx", "Out-of-plane current density"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
	if logrus.GetLevel() != logrus.ErrorLevel {
		t.Errorf("log level %v", logrus.GetLevel())
	}
}

func TestExport(t *testing.T) {
	setup(t)
	outputFile := filepath.Join(t.TempDir(), "out.nc")
	Cfg.Set("OutputFile", outputFile)
	Cfg.Set("OutputVariables", `{"Bmag":"sqrt(Bx*Bx + By*By + Bz*Bz)", "twoNi":"2*ni"}`)
	run(t, "export")

	f, err := os.Open(outputFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	s, err := hifi.Load(f)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name() != "test" || s.Nt() != 3 || s.Ny() != 4 || s.Nx() != 5 {
		t.Errorf("loaded %s with size (%d, %d, %d)", s.Name(), s.Nt(), s.Ny(), s.Nx())
	}

	nc, err := cdf.Open(f)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []string{"Bmag", "twoNi"} {
		if l := nc.Header.Lengths(v); len(l) != 3 || l[0] != 3 || l[1] != 4 || l[2] != 5 {
			t.Errorf("%s has lengths %v", v, l)
		}
	}
	twoNi := make([]float64, 3*4*5)
	if _, err := nc.Reader("twoNi", nil, nil).Read(twoNi); err != nil {
		t.Fatal(err)
	}
	if want := 2 * hifitest.Value("U01", 2, 3, 4); twoNi[len(twoNi)-1] != want {
		t.Errorf("twoNi = %g, want %g", twoNi[len(twoNi)-1], want)
	}
}

func TestExportBadExpression(t *testing.T) {
	setup(t)
	Cfg.Set("OutputFile", filepath.Join(t.TempDir(), "out.nc"))
	Cfg.Set("OutputVariables", `{"bad":"ni + dasffa"}`)
	Root.SetOutput(new(bytes.Buffer))
	Root.SetArgs([]string{"export"})
	if err := Root.Execute(); err == nil {
		t.Error("expected an error")
	}
	Cfg.Set("OutputVariables", `{}`)
}

func TestPlotCmd(t *testing.T) {
	setup(t)
	plotFile := filepath.Join(t.TempDir(), "jz.png")
	Cfg.Set("PlotFile", plotFile)
	Cfg.Set("Field", "Jz")
	Cfg.Set("TimeIndex", 2)
	run(t, "plot")

	f, err := os.Open(plotFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Error(err)
	}
}

func TestNulls(t *testing.T) {
	setup(t)
	// Az is negative everywhere.
	Cfg.Set("Field", "Az")
	Cfg.Set("TimeIndex", 0)
	Cfg.Set("Axis", "y")
	Cfg.Set("Index", 0)
	Cfg.Set("Kind", "linear")
	Cfg.Set("YTol", 1e-15)
	if out := run(t, "nulls"); out != "" {
		t.Errorf("Az should have no nulls, got %q", out)
	}
}

func TestNullsFunc(t *testing.T) {
	d := setup(t)
	// Make Jz at time step 1 equal to the y coordinate.
	jz := d.Files[hifitest.PostFile(1)].Vars["U07"]
	y := []float64{-1.5, -0.5, 0.5, 1.5}
	for j := range y {
		for i := 0; i < 5; i++ {
			jz.Elements[j*5+i] = y[j]
		}
	}
	s, err := load(Cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, kind := range []string{"linear", "cubic"} {
		buf := new(bytes.Buffer)
		if err := Nulls(buf, s, "Jz", 1, "y", 2, kind, 1e-15); err != nil {
			t.Fatal(err)
		}
		var y float64
		if _, err := fmt.Sscanf(buf.String(), "y = %g\n", &y); err != nil {
			t.Fatalf("%s: %q: %v", kind, buf.String(), err)
		}
		if math.Abs(y) > 1e-10 {
			t.Errorf("%s: null at y = %g, want 0", kind, y)
		}
	}
	if err := Nulls(new(bytes.Buffer), s, "Jz", 1, "y", 2, "quintic", 1e-15); err == nil {
		t.Error("expected an error for an invalid kind")
	}
}

func TestMissingPostPath(t *testing.T) {
	setup(t)
	Cfg.Set("PostPath", "")
	if _, err := load(Cfg); err == nil {
		t.Error("expected an error")
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	hifitest.WriteFile(t, dir, "hifi.toml", `
PostPath = "/tmp/post_out"
SimID = "from file"

[OutputVariables]
Bmag = "sqrt(Bx*Bx + By*By)"
`)
	cfg := viper.New()
	cfg.SetConfigFile(filepath.Join(dir, "hifi.toml"))
	if err := cfg.ReadInConfig(); err != nil {
		t.Fatal(err)
	}
	if got := cfg.GetString("SimID"); got != "from file" {
		t.Errorf("SimID = %q", got)
	}
	vars, err := GetStringMapString("OutputVariables", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if vars["bmag"] != "sqrt(Bx*Bx + By*By)" {
		t.Errorf("OutputVariables = %v", vars)
	}
}

func TestBadConfig(t *testing.T) {
	setup(t)
	Cfg.Set("config", filepath.Join(t.TempDir(), "missing.toml"))
	defer Cfg.Set("config", "")
	if err := setConfig(); err == nil {
		t.Error("expected an error for a missing configuration file")
	}
	Cfg.Set("config", "")
	Cfg.Set("LogLevel", "loud")
	if err := setConfig(); err == nil {
		t.Error("expected an error for an invalid log level")
	}
}
