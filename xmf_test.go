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
	"strings"
	"testing"

	"github.com/hifipy/hifi/internal/hifitest"
)

func TestParseXMFTime(t *testing.T) {
	header := strings.Split(hifitest.XMF(0), "\n")[:5]
	lines := func(timeLine string) []string {
		return append(append([]string{}, header...), timeLine, "</Xdmf>")
	}
	tests := []struct {
		name    string
		lines   []string
		want    float64
		wantErr bool
	}{
		{name: "zero", lines: lines(hifitest.XMFTimeLine(0)), want: 0},
		{name: "fortran", lines: lines(`     <Time Value="0.100000E+00"/>`), want: 0.1},
		{name: "go", lines: lines(hifitest.XMFTimeLine(12.5)), want: 12.5},
		{name: "truncated line", lines: lines(`     <Time Value="2.5`), want: 2.5},
		{name: "too few lines", lines: header, wantErr: true},
		{name: "short line", lines: lines(`<Time/>`), wantErr: true},
		{name: "not a number", lines: lines(`     <Time Value="abcdefghijkl"/>`), wantErr: true},
		{name: "shifted", lines: lines(`<Time Value="0.100000E+00"/>`), wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseXMFTime(test.lines)
			if (err != nil) != test.wantErr {
				t.Fatalf("error %v, wantErr %v", err, test.wantErr)
			}
			if !test.wantErr && got != test.want {
				t.Errorf("time %g, want %g", got, test.want)
			}
		})
	}
}

func TestReadXMFTime(t *testing.T) {
	dir := t.TempDir()
	hifitest.WriteFile(t, dir, "post_00003.xmf", hifitest.XMF(0.3))
	got, err := readXMFTime(dir + "/post_00003.xmf")
	if err != nil {
		t.Fatal(err)
	}
	if got != 0.3 {
		t.Errorf("time %g, want 0.3", got)
	}
	if _, err := readXMFTime(dir + "/missing.xmf"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
