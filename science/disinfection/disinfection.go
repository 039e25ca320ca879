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

// Package disinfection implements pathogen-inactivation models for UV,
// ozone, and chlorine disinfection units.
package disinfection

import (
	"github.com/watermodel/wwtp"
	"github.com/watermodel/wwtp/science/removal"
)

// Disinfection efficiencies and chlorine chemistry constants.
const (
	uvKill       = 0.999   // UV pathogen inactivation
	ozoneKill    = 0.999   // Ozone pathogen inactivation
	chlorineKill = 0.99999 // Chlorine pathogen inactivation

	// ozoneOxidation is the fraction of COD and TSS destroyed by ozone's
	// oxidizing action alongside disinfection.
	ozoneOxidation = 0.90

	// residualChlorine is the chlorine residual [mg/L] left in the
	// effluent after chlorination.
	residualChlorine = 0.7

	// chlorideGain is the multiplier on chlorides from chlorine dosing.
	chlorideGain = 1.46
)

// UV returns a transform inactivating 99.9% of pathogens by ultraviolet
// irradiation, with no chemical side effects.
func UV() wwtp.UnitManipulator {
	return removal.Fraction(wwtp.Pathogens, uvKill)
}

// Ozone returns a transform inactivating 99.9% of pathogens and oxidizing
// 90% of COD and TSS.
func Ozone() wwtp.UnitManipulator {
	return removal.Combine(
		removal.Fraction(wwtp.Pathogens, ozoneKill),
		removal.Fraction(wwtp.COD, ozoneOxidation),
		removal.Fraction(wwtp.TSS, ozoneOxidation),
	)
}

// Chlorine returns a transform inactivating 99.999% of pathogens, leaving a
// fixed chlorine residual, and increasing chlorides by 46% from the dosing.
func Chlorine() wwtp.UnitManipulator {
	return removal.Combine(
		removal.Fraction(wwtp.Pathogens, chlorineKill),
		removal.SetValue(wwtp.ResidualChlorine, residualChlorine),
		removal.Scale(wwtp.Chlorides, chlorideGain),
	)
}
