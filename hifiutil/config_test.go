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
	"os"
	"reflect"
	"testing"

	"github.com/lnashier/viper"
)

func TestGetStringMapString(t *testing.T) {
	tests := []struct {
		name    string
		val     interface{}
		want    map[string]string
		wantErr bool
	}{
		{name: "json", val: `{"a":"ni*2","b":"Jz"}`, want: map[string]string{"a": "ni*2", "b": "Jz"}},
		{name: "empty string", val: "", want: map[string]string{}},
		{name: "map", val: map[string]string{"a": "ni"}, want: map[string]string{"a": "ni"}},
		{name: "interface map", val: map[string]interface{}{"a": "ni"}, want: map[string]string{"a": "ni"}},
		{name: "bad json", val: `{"a":`, wantErr: true},
		{name: "bad type", val: 3, wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := viper.New()
			cfg.Set("OutputVariables", test.val)
			got, err := GetStringMapString("OutputVariables", cfg)
			if (err != nil) != test.wantErr {
				t.Fatalf("error %v, wantErr %v", err, test.wantErr)
			}
			if !test.wantErr && !reflect.DeepEqual(got, test.want) {
				t.Errorf("got %v, want %v", got, test.want)
			}
		})
	}
}

func TestCheckOutputVars(t *testing.T) {
	os.Setenv("HIFI_TEST_FIELD", "Jz")
	defer os.Unsetenv("HIFI_TEST_FIELD")
	got, err := checkOutputVars(map[string]string{"j": "2*\n${HIFI_TEST_FIELD}"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := map[string]string{"j": "2* Jz"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCheckOutputFile(t *testing.T) {
	if _, err := checkOutputFile(""); err == nil {
		t.Error("expected an error for an empty file name")
	}
	if _, err := checkOutputFile("/does/not/exist/out.nc"); err == nil {
		t.Error("expected an error for a missing directory")
	}
	dir := t.TempDir()
	if f, err := checkOutputFile(dir + "/out.nc"); err != nil || f != dir+"/out.nc" {
		t.Errorf("got %s, %v", f, err)
	}
}
