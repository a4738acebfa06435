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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hifipy/hifi"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// opener opens simulation files.
var opener hifi.Opener = hifi.OpenHDF5

// load loads the simulation specified by the configuration.
func load(cfg *viper.Viper) (*hifi.Simulation, error) {
	postpath := os.ExpandEnv(cfg.GetString("PostPath"))
	if postpath == "" {
		return nil, fmt.Errorf("hifi: you need to specify the simulation directory " +
			"using the PostPath configuration variable (for example: --PostPath=./post_out)")
	}
	return hifi.New(postpath,
		hifi.Name(os.ExpandEnv(cfg.GetString("SimID"))),
		hifi.NeutralDensity(cfg.GetString("NeutralDensity")),
		hifi.WithOpener(opener),
		hifi.WithLogger(logrus.StandardLogger()),
	)
}

// checkOutputVars removes end lines and expands environment
// variables in the output variables.
func checkOutputVars(vars map[string]string, err error) (map[string]string, error) {
	if err != nil {
		return nil, err
	}
	o := make(map[string]string, len(vars))
	for k, v := range vars {
		v = strings.Replace(v, "\r\n", " ", -1)
		v = strings.Replace(v, "\n", " ", -1)
		o[os.ExpandEnv(k)] = os.ExpandEnv(v)
	}
	return o, nil
}

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf("hifi: you need to specify an output file")
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("hifi: the output file directory doesn't exist: %v", err)
	}
	return f, nil
}

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case nil:
		return map[string]string{}, nil
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapStringE(v)
	case string:
		o := make(map[string]string)
		if strings.TrimSpace(v) == "" {
			return o, nil
		}
		d := json.NewDecoder(bytes.NewBufferString(v))
		if err := d.Decode(&o); err != nil {
			return nil, fmt.Errorf("hifi: invalid value for %s: %v", varName, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("hifi: invalid type for %s: %#v", varName, i)
	}
}
