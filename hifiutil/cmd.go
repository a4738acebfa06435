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

// Package hifiutil contains the command-line interface for loading and
// inspecting HiFi simulation output.
package hifiutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hifipy/hifi"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to hifi.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "PostPath",
			usage: `
              PostPath is the directory holding the postprocessed simulation
              output: grid*.h5, post*.h5 and post*.xmf files. A leading "~"
              is expanded to the user's home directory.`,
			shorthand:  "p",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "SimID",
			usage: `
              SimID is a name to identify the simulation by. If it is empty,
              the simulation is called "` + hifi.DefaultName + `".`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "NeutralDensity",
			usage: `
              NeutralDensity is the HiFi variable that the neutral momentum
              variables are divided by to calculate neutral velocities.
              It must be ` + hifi.IonDensityKey + ` (ion density) or ` + hifi.NeutralDensityKey + ` (neutral density).`,
			defaultVal: hifi.IonDensityKey,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the level of detail of log messages: one of
              debug, info, warning or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to the netCDF file to write.`,
			shorthand:  "o",
			defaultVal: "hifi.nc",
			flagsets:   []*pflag.FlagSet{exportCmd.Flags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables specifies additional variables to write to the
              output file, as a map of variable names to expressions of the
              physical variables, e.g. {"Bmag":"sqrt(Bx*Bx + By*By + Bz*Bz)"}.
              The functions exp, sqrt, abs, log and pow are available.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{exportCmd.Flags()},
		},
		{
			name: "Field",
			usage: `
              Field is the physical variable to use, e.g. Az or Jz.`,
			shorthand:  "f",
			defaultVal: "Jz",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags(), nullsCmd.Flags()},
		},
		{
			name: "TimeIndex",
			usage: `
              TimeIndex is the index of the output step to use.`,
			shorthand:  "t",
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags(), nullsCmd.Flags()},
		},
		{
			name: "Axis",
			usage: `
              Axis is the direction of the grid line to search for nulls
              along: x or y.`,
			defaultVal: "x",
			flagsets:   []*pflag.FlagSet{nullsCmd.Flags()},
		},
		{
			name: "Index",
			usage: `
              Index is the grid index of the line to search for nulls along,
              in the direction perpendicular to Axis.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{nullsCmd.Flags()},
		},
		{
			name: "Kind",
			usage: `
              Kind is how to interpolate between grid points when searching
              for nulls: linear, cubic or akima.`,
			defaultVal: "cubic",
			flagsets:   []*pflag.FlagSet{nullsCmd.Flags()},
		},
		{
			name: "YTol",
			usage: `
              YTol is the absolute tolerance within which a grid value is
              treated as a null.`,
			defaultVal: 1e-15,
			flagsets:   []*pflag.FlagSet{nullsCmd.Flags()},
		},
		{
			name: "PlotFile",
			usage: `
              PlotFile is the path to the PNG file to write.`,
			defaultVal: "hifi.png",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "Show",
			usage: `
              Show specifies whether to open PlotFile in the default image
              viewer after it is written.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("HIFI")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				s := string(b.Bytes())
				if option.shorthand == "" {
					set.String(option.name, s, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, s, option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(infoCmd)
	Root.AddCommand(exportCmd)
	Root.AddCommand(plotCmd)
	Root.AddCommand(nullsCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("hifi: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("hifi: invalid LogLevel: %v", err)
	}
	logrus.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "hifi",
	Short: "Load and inspect HiFi simulation output.",
	Long: `hifi loads the postprocessed output of HiFi plasma simulations.
Use the subcommands specified below to summarize, export, plot and analyze
a simulation.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'HIFI_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of hifi.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hifi v%s\n", hifi.Version)
	},
	DisableAutoGenTag: true,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Summarize a simulation",
	Long: `info loads the simulation in PostPath and prints its name, grid size,
time range and the range and mean of each physical variable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := load(Cfg)
		if err != nil {
			return err
		}
		return Info(cmd.OutOrStdout(), s)
	},
	DisableAutoGenTag: true,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a simulation to a netCDF file",
	Long: `export loads the simulation in PostPath and writes the grid axes, the
output times, every physical variable and any OutputVariables to the netCDF
file OutputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		outputVars, err := checkOutputVars(GetStringMapString("OutputVariables", Cfg))
		if err != nil {
			return err
		}
		s, err := load(Cfg)
		if err != nil {
			return err
		}
		return Export(outputFile, s, outputVars)
	},
	DisableAutoGenTag: true,
}

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot a physical variable",
	Long: `plot loads the simulation in PostPath and draws Field at output step
TimeIndex as a heat map, saved as the PNG file PlotFile. If Show is true the
plot is then opened in the default image viewer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plotFile, err := checkOutputFile(Cfg.GetString("PlotFile"))
		if err != nil {
			return err
		}
		s, err := load(Cfg)
		if err != nil {
			return err
		}
		if err := Plot(plotFile, s, Cfg.GetString("Field"), Cfg.GetInt("TimeIndex")); err != nil {
			return err
		}
		if Cfg.GetBool("Show") {
			return open.Run(plotFile)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var nullsCmd = &cobra.Command{
	Use:   "nulls",
	Short: "Find the nulls of a physical variable",
	Long: `nulls loads the simulation in PostPath and prints the locations where
Field at output step TimeIndex crosses zero along one grid line. The line runs
in the Axis direction at grid index Index in the other direction.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := load(Cfg)
		if err != nil {
			return err
		}
		return Nulls(cmd.OutOrStdout(), s,
			Cfg.GetString("Field"),
			Cfg.GetInt("TimeIndex"),
			Cfg.GetString("Axis"),
			Cfg.GetInt("Index"),
			Cfg.GetString("Kind"),
			Cfg.GetFloat64("YTol"),
		)
	},
	DisableAutoGenTag: true,
}
