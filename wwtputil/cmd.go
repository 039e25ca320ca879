/*
Copyright © 2024 the WWTP authors.
This file is part of WWTP.

WWTP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

WWTP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with WWTP.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package wwtputil provides configuration and command-line glue for the
// wwtp simulation engine.
package wwtputil

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/watermodel/wwtp"
	"github.com/watermodel/wwtp/process"
	"go.uber.org/zap"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to the simulator.
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
			name: "scenario",
			usage: `
              scenario specifies the path to a TOML scenario file
              describing the treatment train and influent overrides.
              If empty, the default example train is used. Can contain
              environment variables.`,
			shorthand:  "s",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "ticks",
			usage: `
              ticks specifies the number of simulation steps to run.`,
			shorthand:  "n",
			defaultVal: 600,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "tick_seconds",
			usage: `
              tick_seconds specifies the nominal frame duration in seconds
              before the speed multiplier is applied.`,
			defaultVal: 0.016,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "speed",
			usage: `
              speed specifies the simulation speed multiplier. It is
              clamped to the range [speed_min, speed_max].`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "speed_min",
			usage: `
              speed_min specifies the lower bound of the speed multiplier.`,
			defaultVal: 0.1,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "speed_max",
			usage: `
              speed_max specifies the upper bound of the speed multiplier.`,
			defaultVal: 5.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "history_capacity",
			usage: `
              history_capacity specifies the number of values retained per
              water-quality parameter by the history recorder.`,
			defaultVal: wwtp.DefaultHistoryCapacity,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "verbose",
			usage: `
              verbose enables per-tick progress logging.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("WWTP")

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
	Root.AddCommand(runCmd)
	Root.AddCommand(kindsCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("wwtputil: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "wwtp",
	Short: "A wastewater treatment-train simulator.",
	Long: `wwtp simulates contaminant transformation through an ordered chain of
wastewater-treatment process units, tick by tick.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'WWTP_var' where 'var' is
the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of wwtp.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("wwtp v%s\n", wwtp.Version)
	},
	DisableAutoGenTag: true,
}

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the available treatment-unit kinds.",
	Long: `kinds lists the treatment-unit kinds that can appear in a scenario
file, with a description of each.`,
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		for _, k := range process.Kinds() {
			fmt.Fprintf(w, "%s\t%s\n", k, process.Description(k))
		}
		w.Flush()
	},
	DisableAutoGenTag: true,
}

// runCmd runs a headless simulation.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation.",
	Long: `run advances the configured treatment train for the requested number
of ticks and prints an influent/effluent report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := SimConfigFromViper(Cfg)
		if err != nil {
			return err
		}
		logger, err := zap.NewProduction()
		if err != nil {
			return err
		}
		defer logger.Sync()
		return Run(cmd, cfg, Cfg.GetBool("verbose"), logger)
	},
	DisableAutoGenTag: true,
}

// Run builds the plant described by cfg, advances it for the configured
// number of ticks, and writes an influent/effluent report to the command's
// output.
func Run(cmd *cobra.Command, cfg *SimConfig, verbose bool, logger *zap.Logger) error {
	var plant *wwtp.Plant
	var err error
	if cfg.Scenario != "" {
		var s *Scenario
		if s, err = LoadScenario(cfg.Scenario); err != nil {
			return err
		}
		if plant, err = s.Plant(wwtp.WithHistoryCapacity(cfg.HistoryCapacity)); err != nil {
			return err
		}
		logger.Info("loaded scenario",
			zap.String("file", cfg.Scenario),
			zap.String("title", s.Title),
			zap.Int("units", plant.Len()))
	} else {
		if plant, err = process.NewDefaultPlant(wwtp.WithHistoryCapacity(cfg.HistoryCapacity)); err != nil {
			return err
		}
		logger.Info("using default example train", zap.Int("units", plant.Len()))
	}

	if verbose {
		plant.TickFuncs = append(plant.TickFuncs, wwtp.Log(cmd.OutOrStdout()))
	}

	Δt := cfg.Dt()
	for i := 0; i < cfg.Ticks; i++ {
		if err := plant.Advance(Δt); err != nil {
			return err
		}
	}
	logger.Info("simulation complete",
		zap.Int("ticks", plant.Tick()),
		zap.Float64("dt_seconds", Δt))

	return writeReport(cmd, plant)
}

// writeReport prints a per-parameter influent/effluent table, with history
// summary statistics, in the order water quality is indexed.
func writeReport(cmd *cobra.Command, plant *wwtp.Plant) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "parameter\tunits\tinfluent\teffluent\thistory mean\thistory max")
	influent := plant.Inlet().Outlet
	effluent := plant.Effluent()
	hist := plant.History()
	for _, p := range wwtp.Parameters() {
		fmt.Fprintf(w, "%s\t%s\t%.3g\t%.3g\t%.3g\t%.3g\n",
			p, p.Units(), influent.Get(p), effluent.Get(p), hist.Mean(p), hist.Max(p))
	}
	return w.Flush()
}
