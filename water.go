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

package wwtp

import "fmt"

// Parameter is one of the measured water-quality quantities tracked by the
// model. The set is closed: every Sample carries a value for every Parameter.
type Parameter int

// Indices of individual parameters in sample arrays.
const (
	BOD              Parameter = iota // Biochemical oxygen demand
	COD                               // Chemical oxygen demand
	TSS                               // Total suspended solids
	NH4                               // Ammonium
	NO3                               // Nitrate
	PH                                // pH level
	TotalP                            // Total phosphorus
	Oil                               // Oils and greases
	DO                                // Dissolved oxygen
	Temp                              // Temperature
	Pathogens                         // Pathogens
	Salinity                          // Salinity
	Turbidity                         // Turbidity
	EC                                // Electrical conductivity
	Alkalinity                        // Alkalinity
	ResidualChlorine                  // Residual chlorine
	Hardness                          // Total hardness
	Sulfates                          // Sulfates
	Chlorides                         // Chlorides
	Metals                            // Heavy metals

	numParameters
)

// paramLabels holds the display name and measurement units for each
// parameter.
var paramLabels = [numParameters]struct {
	name  string
	units string
}{
	BOD:              {"BOD", "mg/L"},
	COD:              {"COD", "mg/L"},
	TSS:              {"TSS", "mg/L"},
	NH4:              {"NH4", "mg/L"},
	NO3:              {"NO3", "mg/L"},
	PH:               {"pH", ""},
	TotalP:           {"Total Phosphorus", "mg/L"},
	Oil:              {"Oils and Greases", "mg/L"},
	DO:               {"Dissolved Oxygen", "mg/L"},
	Temp:             {"Temperature", "°C"},
	Pathogens:        {"Pathogens", "CFU/mL"},
	Salinity:         {"Salinity", "ppt"},
	Turbidity:        {"Turbidity", "NTU"},
	EC:               {"Electrical Conductivity", "µS/cm"},
	Alkalinity:       {"Alkalinity", "mg CaCO3/L"},
	ResidualChlorine: {"Residual Chlorine", "mg/L"},
	Hardness:         {"Total Hardness", "mg CaCO3/L"},
	Sulfates:         {"Sulfates", "mg/L"},
	Chlorides:        {"Chlorides", "mg/L"},
	Metals:           {"Heavy Metals", "mg/L"},
}

// String returns the display name of p.
func (p Parameter) String() string {
	if p < 0 || p >= numParameters {
		return fmt.Sprintf("Parameter(%d)", int(p))
	}
	return paramLabels[p].name
}

// Units returns the measurement units of p, for example "mg/L".
func (p Parameter) Units() string {
	if p < 0 || p >= numParameters {
		return ""
	}
	return paramLabels[p].units
}

// Parameters returns all parameters in index order.
func Parameters() []Parameter {
	o := make([]Parameter, numParameters)
	for i := range o {
		o[i] = Parameter(i)
	}
	return o
}

// ParameterFromName returns the parameter with the given display name.
func ParameterFromName(name string) (Parameter, error) {
	for i, l := range paramLabels {
		if l.name == name {
			return Parameter(i), nil
		}
	}
	return -1, fmt.Errorf("wwtp: '%s' is not a valid water-quality parameter", name)
}

// Sample is a bundle of water-quality measurements, one value per Parameter.
// The zero value is all zeros; NewSample returns the baseline influent
// profile. Sample has value semantics: assigning one sample to another
// replaces all entries atomically.
type Sample struct {
	v [numParameters]float64
}

// NewSample returns a sample holding the baseline raw-influent profile.
func NewSample() Sample {
	var s Sample
	s.v = [numParameters]float64{
		BOD:              300,
		COD:              600,
		TSS:              200,
		NH4:              50,
		NO3:              5,
		PH:               6.5,
		TotalP:           10,
		Oil:              30,
		DO:               2,
		Temp:             20,
		Pathogens:        1e6,
		Salinity:         0.5,
		Turbidity:        50,
		EC:               1500,
		Alkalinity:       200,
		ResidualChlorine: 0,
		Hardness:         250,
		Sulfates:         80,
		Chlorides:        100,
		Metals:           5,
	}
	return s
}

// Get returns the value of parameter p. Every parameter is present by
// construction, so an out-of-range p indicates a programming error and
// panics.
func (s Sample) Get(p Parameter) float64 {
	return s.v[p]
}

// Set stores val as the value of parameter p. The write is unconstrained;
// callers are responsible for physical plausibility.
func (s *Sample) Set(p Parameter, val float64) {
	s.v[p] = val
}
