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

// Package process binds the concrete treatment-process models from the
// science subpackages to the closed set of named unit kinds that can appear
// in a treatment train.
package process

import (
	"fmt"
	"sort"

	"github.com/watermodel/wwtp"
	"github.com/watermodel/wwtp/science/biokinetics"
	"github.com/watermodel/wwtp/science/disinfection"
	"github.com/watermodel/wwtp/science/removal"
)

// Kind names a treatment-unit type that can be added to a plant. The set of
// kinds is closed; use Kinds for the full list.
type Kind string

// The available treatment-unit kinds.
const (
	PrimarySedimentationTank Kind = "Primary Sedimentation Tank"
	PrimaryClarifier         Kind = "Primary Clarifier"
	AerationTank             Kind = "Aeration Tank"
	SecondaryClarifier       Kind = "Secondary Clarifier"
	ChlorineDisinfection     Kind = "Chlorine Disinfection Unit"
	UVDisinfection           Kind = "UV Disinfection"
	AnaerobicFilter          Kind = "Anaerobic Filter"
	SludgeDigester           Kind = "Sludge Digester"
	OilSeparator             Kind = "Oil and Grease Separator"
	PhosphorusRemoval        Kind = "Phosphorus Removal Unit"
	DryingBed                Kind = "Drying Bed"
	Pump                     Kind = "Pump"
	FlowMeter                Kind = "Flow Meter"
	WaterSoftener            Kind = "Water Softener"
	ActivatedCarbonFilter    Kind = "Activated Carbon Filter"
	HeatExchanger            Kind = "Heat Exchanger"
	MetalsRemoval            Kind = "Metals Removal Unit"
	MembraneFiltrationUnit   Kind = "Membrane Filtration Unit"
	ReverseOsmosis           Kind = "Reverse Osmosis Unit"
	CoagulationFlocculation  Kind = "Coagulation and Flocculation"
	MembraneFiltration       Kind = "Membrane Filtration"
	ChemicalOxidation        Kind = "Chemical Oxidation"
	ActiveSludgeProcess      Kind = "Active Sludge Process"
	NitrificationTank        Kind = "Nitrification Tank"
	Biofilter                Kind = "Biofilter"
	Filtration               Kind = "Filtration"
	MembraneBioreactor       Kind = "Membrane Bioreactor"
	OzoneDisinfection        Kind = "Ozone Disinfection"
	AnaerobicAerobicFilter   Kind = "Anaerobic-Aerobic Filter"
	Electrocoagulation       Kind = "Electrocoagulation Unit"
)

// definitions relates each kind to its description and a factory for its
// transform. Transforms are built fresh per unit so closures never share
// state between units.
var definitions = map[Kind]struct {
	description string
	transform   func() wwtp.UnitManipulator
}{
	PrimaryClarifier: {
		"Removes settleable solids and oil & grease from wastewater.",
		func() wwtp.UnitManipulator {
			return removal.Combine(
				removal.Fraction(wwtp.TSS, 0.70),
				removal.Fraction(wwtp.Oil, 0.90),
				removal.Scale(wwtp.Turbidity, 0.8),
			)
		},
	},
	PrimarySedimentationTank: {
		"Removes settleable solids and reduces BOD through sedimentation.",
		func() wwtp.UnitManipulator {
			return removal.Combine(
				removal.Fraction(wwtp.TSS, 0.60),
				removal.Fraction(wwtp.BOD, 0.35),
				removal.Fraction(wwtp.Pathogens, 0.60),
				removal.Scale(wwtp.Turbidity, 0.5),
			)
		},
	},
	AerationTank: {
		"Promotes microbial degradation of organic matter under aerobic conditions.",
		func() wwtp.UnitManipulator {
			return biokinetics.FirstOrder(biokinetics.RateConstants{BOD: 0.2, NH4: 0.1})
		},
	},
	SecondaryClarifier: {
		"Settles out microbial biomass from the aeration tank.",
		func() wwtp.UnitManipulator {
			return removal.Combine(
				removal.Fraction(wwtp.TSS, 0.85),
				removal.Scale(wwtp.Turbidity, 0.7),
			)
		},
	},
	ChlorineDisinfection: {
		"Uses chlorine to disinfect water, killing remaining pathogens.",
		disinfection.Chlorine,
	},
	UVDisinfection: {
		"Utilizes UV radiation to inactivate pathogens without chemical additives.",
		disinfection.UV,
	},
	AnaerobicFilter: {
		"Employs anaerobic bacteria to degrade organic pollutants.",
		func() wwtp.UnitManipulator {
			return removal.Fraction(wwtp.COD, 0.65)
		},
	},
	SludgeDigester: {
		"Reduces sludge volume and stabilizes organic content anaerobically.",
		func() wwtp.UnitManipulator {
			return removal.Fraction(wwtp.TSS, 0.55)
		},
	},
	OilSeparator: {
		"Separates oils and greases from water by flotation mechanisms.",
		func() wwtp.UnitManipulator {
			return removal.Combine(
				removal.Fraction(wwtp.Oil, 0.90),
				removal.Scale(wwtp.Turbidity, 0.9),
			)
		},
	},
	PhosphorusRemoval: {
		"Eliminates phosphorus via chemical precipitation methods.",
		func() wwtp.UnitManipulator {
			return removal.Precipitate(wwtp.TotalP, 0.75, 2)
		},
	},
	DryingBed: {
		"Allows for dewatering of sludge through evaporation and drainage.",
		func() wwtp.UnitManipulator {
			return removal.Fraction(wwtp.TSS, 0.95)
		},
	},
	Pump: {
		"Boosts water pressure to facilitate flow through the treatment processes.",
		func() wwtp.UnitManipulator { return nil },
	},
	FlowMeter: {
		"Monitors the flow rate of water for system control and optimization.",
		func() wwtp.UnitManipulator { return nil },
	},
	WaterSoftener: {
		"Reduces water hardness by exchanging calcium and magnesium ions for sodium ions.",
		func() wwtp.UnitManipulator {
			return removal.Fraction(wwtp.Hardness, 0.90)
		},
	},
	ActivatedCarbonFilter: {
		"Adsorbs organic pollutants, enhancing taste and odor quality.",
		func() wwtp.UnitManipulator {
			return removal.Fraction(wwtp.COD, 0.30)
		},
	},
	HeatExchanger: {
		"Regulates water temperature for optimal treatment conditions.",
		func() wwtp.UnitManipulator {
			return removal.SetValue(wwtp.Temp, 25)
		},
	},
	MetalsRemoval: {
		"Eliminates heavy metals to prevent toxicity in the environment.",
		func() wwtp.UnitManipulator {
			return removal.Fraction(wwtp.Metals, 0.85)
		},
	},
	MembraneFiltrationUnit: {
		"Uses microfiltration or ultrafiltration membranes for fine particle removal.",
		func() wwtp.UnitManipulator {
			return removal.Combine(
				removal.Fraction(wwtp.Pathogens, 0.9999),
				removal.Fraction(wwtp.TSS, 0.99),
			)
		},
	},
	ReverseOsmosis: {
		"Employs semi-permeable membranes to desalinate and purify water.",
		func() wwtp.UnitManipulator {
			return removal.Combine(
				removal.Fraction(wwtp.Salinity, 0.95),
				removal.Scale(wwtp.EC, 0.05),
			)
		},
	},
	CoagulationFlocculation: {
		"Destabilizes particles for subsequent removal of COD and TSS.",
		func() wwtp.UnitManipulator {
			return removal.Combine(
				removal.Fraction(wwtp.COD, 0.40),
				removal.Fraction(wwtp.TSS, 0.60),
			)
		},
	},
	MembraneFiltration: {
		"Removes particles, pathogens, and COD through ultrafiltration membranes.",
		func() wwtp.UnitManipulator {
			return removal.Combine(
				removal.Fraction(wwtp.COD, 0.20),
				removal.Fraction(wwtp.TSS, 0.45),
				removal.Fraction(wwtp.Pathogens, 0.9999),
			)
		},
	},
	ChemicalOxidation: {
		"Applies strong oxidants to degrade organic pollutants and color.",
		func() wwtp.UnitManipulator {
			return removal.Combine(
				removal.Fraction(wwtp.COD, 0.70),
				removal.Scale(wwtp.Turbidity, 0.8),
			)
		},
	},
	ActiveSludgeProcess: {
		"Biological treatment to remove BOD, COD, and TSS through aeration and sedimentation.",
		func() wwtp.UnitManipulator {
			// COD is taken out as a fixed fraction and therefore does
			// not contribute to oxygen consumption.
			return removal.Combine(
				biokinetics.FirstOrder(biokinetics.RateConstants{BOD: 0.2, NH4: 0.1}),
				removal.Fraction(wwtp.COD, 0.79),
			)
		},
	},
	NitrificationTank: {
		"Biological process to convert ammonium to nitrate through nitrification.",
		func() wwtp.UnitManipulator {
			return biokinetics.Nitrification(0.1, 0.5)
		},
	},
	Biofilter: {
		"Biological treatment system to remove BOD, COD, and NH4 from wastewater.",
		func() wwtp.UnitManipulator {
			return biokinetics.FirstOrder(biokinetics.RateConstants{BOD: 0.2, COD: 0.1, NH4: 0.05})
		},
	},
	Filtration: {
		"Removes suspended solids and turbidity from wastewater.",
		func() wwtp.UnitManipulator {
			return removal.Combine(
				removal.Fraction(wwtp.TSS, 0.80),
				removal.Fraction(wwtp.Turbidity, 0.70),
			)
		},
	},
	MembraneBioreactor: {
		"Membrane bioreactor, bacteria and protozoa remove contaminants.",
		func() wwtp.UnitManipulator {
			return biokinetics.FirstOrder(biokinetics.RateConstants{BOD: 0.1, COD: 0.05, NH4: 0.03})
		},
	},
	OzoneDisinfection: {
		"Removes pathogens and oxidizes contaminants using ozone.",
		disinfection.Ozone,
	},
	AnaerobicAerobicFilter: {
		"Biological treatment system to remove BOD, COD, and NH4 from wastewater.",
		func() wwtp.UnitManipulator {
			return biokinetics.FirstOrder(biokinetics.RateConstants{BOD: 0.2, COD: 0.1, NH4: 0.05})
		},
	},
	Electrocoagulation: {
		"Removes metals and suspended solids, changes EC and pH of wastewater.",
		func() wwtp.UnitManipulator {
			return removal.Combine(
				removal.Fraction(wwtp.Metals, 0.80),
				removal.Fraction(wwtp.TSS, 0.60),
				removal.Shift(wwtp.PH, 0.5),
				removal.Shift(wwtp.EC, 200),
			)
		},
	},
}

// New creates a treatment unit of the given kind with default retention
// attributes. It returns an error for unknown kinds; sources and sinks are
// created by wwtp.NewPlant, not here.
func New(k Kind) (*wwtp.Unit, error) {
	def, ok := definitions[k]
	if !ok {
		return nil, fmt.Errorf("process: '%s' is not a valid unit kind; valid kinds are %v", k, Kinds())
	}
	return wwtp.NewUnit(string(k), def.description, def.transform()), nil
}

// Kinds returns all available unit kinds in alphabetical order.
func Kinds() []Kind {
	o := make([]Kind, 0, len(definitions))
	for k := range definitions {
		o = append(o, k)
	}
	sort.Slice(o, func(i, j int) bool { return o[i] < o[j] })
	return o
}

// Description returns the human-readable description of kind k, or an empty
// string for unknown kinds.
func Description(k Kind) string {
	return definitions[k].description
}

// DefaultTrain is the conventional municipal treatment sequence used as the
// default example plant.
var DefaultTrain = []Kind{
	PrimaryClarifier,
	PrimarySedimentationTank,
	AerationTank,
	ActiveSludgeProcess,
	NitrificationTank,
	SecondaryClarifier,
	ChlorineDisinfection,
	Filtration,
}

// NewDefaultPlant creates a plant populated with DefaultTrain.
func NewDefaultPlant(opts ...wwtp.Option) (*wwtp.Plant, error) {
	p := wwtp.NewPlant(opts...)
	for _, k := range DefaultTrain {
		u, err := New(k)
		if err != nil {
			return nil, err
		}
		if err := p.Append(u); err != nil {
			return nil, err
		}
	}
	return p, nil
}
