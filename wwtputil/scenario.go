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

package wwtputil

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/watermodel/wwtp"
	"github.com/watermodel/wwtp/process"
)

// Scenario describes a treatment train and its influent in a TOML file:
//
//	title = "Municipal secondary treatment"
//
//	[influent]
//	"BOD" = 250.0
//	"Temperature" = 18.0
//
//	[[unit]]
//	kind = "Aeration Tank"
//	hrt = 12.0
//
//	[[unit]]
//	kind = "Secondary Clarifier"
//
// Influent keys are parameter display names (wwtp.ParameterFromName);
// omitted parameters keep the baseline influent profile. Unit attribute
// fields are optional and default to the standard retention attributes.
type Scenario struct {
	Title    string             `toml:"title"`
	Influent map[string]float64 `toml:"influent"`
	Units    []ScenarioUnit     `toml:"unit"`
}

// ScenarioUnit is one treatment unit in a scenario file.
type ScenarioUnit struct {
	Kind        string   `toml:"kind"`
	Volume      *float64 `toml:"volume"`
	FlowRate    *float64 `toml:"flow_rate"`
	HRT         *float64 `toml:"hrt"`
	SRT         *float64 `toml:"srt"`
	Temperature *float64 `toml:"temperature"`
}

// LoadScenario reads and parses a TOML scenario file.
func LoadScenario(filename string) (*Scenario, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("wwtputil: problem opening scenario file: %v", err)
	}
	defer f.Close()
	s := new(Scenario)
	if _, err := toml.NewDecoder(f).Decode(s); err != nil {
		return nil, fmt.Errorf("wwtputil: problem parsing scenario file %s: %v", filename, err)
	}
	return s, nil
}

// Plant builds the treatment train described by the scenario: the standard
// Inlet and Outlet with the scenario's units between them, and the influent
// overrides written into the Inlet's outlet sample.
func (s *Scenario) Plant(opts ...wwtp.Option) (*wwtp.Plant, error) {
	p := wwtp.NewPlant(opts...)
	for _, su := range s.Units {
		u, err := process.New(process.Kind(su.Kind))
		if err != nil {
			return nil, err
		}
		if su.Volume != nil {
			u.Volume = *su.Volume
		}
		if su.FlowRate != nil {
			u.FlowRate = *su.FlowRate
		}
		if su.HRT != nil {
			u.HRT = *su.HRT
		}
		if su.SRT != nil {
			u.SRT = *su.SRT
		}
		if su.Temperature != nil {
			u.Temperature = *su.Temperature
		}
		if err := p.Append(u); err != nil {
			return nil, err
		}
	}
	for name, val := range s.Influent {
		param, err := wwtp.ParameterFromName(name)
		if err != nil {
			return nil, err
		}
		p.Inlet().Outlet.Set(param, val)
	}
	return p, nil
}
