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

// Package biokinetics implements first-order biological substrate-removal
// kinetics with Arrhenius-style temperature correction, shared by the
// aerobic and anaerobic biological treatment units (aeration tanks,
// biofilters, membrane bioreactors, nitrification).
//
// Removal of a substrate with concentration C and rate constant k over a
// unit with hydraulic retention time HRT [hours] is
//
//	removal = C × (1 − exp(−k · HRT · θ^(T−20)))
//
// with θ = 1.035. Ammonium removal is coupled stoichiometrically to nitrate
// generation (90% conversion yield) and, together with organic-matter
// removal, to dissolved-oxygen consumption.
package biokinetics

import (
	"math"

	"github.com/watermodel/wwtp"
)

// physical constants
const (
	// θ is the Arrhenius temperature-correction base for biological rate
	// constants, referenced to 20 °C.
	θ = 1.035

	// o2PerNH4 is the oxygen demand of nitrifying one unit of ammonium
	// [g O2 per g NH4-N].
	o2PerNH4 = 4.57

	// o2Factor scales total oxidized substrate to dissolved-oxygen
	// consumption.
	o2Factor = 1.5

	// nitrateYield is the fraction of removed ammonium appearing as
	// nitrate.
	nitrateYield = 0.9

	// minHRT guards the kinetics against a non-positive configured
	// retention time.
	minHRT = 1e-3
)

// TempFactor returns the temperature-correction multiplier for biological
// rate constants at inlet temperature t [°C].
func TempFactor(t float64) float64 {
	return math.Pow(θ, t-20)
}

// RateConstants are the first-order rate constants [1/hour] of a biological
// treatment unit. A zero constant means the unit does not remove that
// substrate.
type RateConstants struct {
	BOD float64
	COD float64
	NH4 float64
}

// removalFrac returns the removed fraction for rate constant k over
// retention time hrt with temperature factor tf.
func removalFrac(k, hrt, tf float64) float64 {
	if k <= 0 {
		return 0
	}
	return 1 - math.Exp(-k*hrt*tf)
}

// FirstOrder returns a transform applying first-order removal of BOD, COD,
// and NH4 with the given rate constants, including nitrate generation from
// removed ammonium and dissolved-oxygen consumption floored at zero.
func FirstOrder(k RateConstants) wwtp.UnitManipulator {
	return func(u *wwtp.Unit, Δt float64) {
		hrt := u.HRT
		if hrt <= 0 {
			hrt = minHRT
		}
		tf := TempFactor(u.Inlet.Get(wwtp.Temp))

		bodIn := u.Inlet.Get(wwtp.BOD)
		codIn := u.Inlet.Get(wwtp.COD)
		nh4In := u.Inlet.Get(wwtp.NH4)

		bodRemoved := bodIn * removalFrac(k.BOD, hrt, tf)
		codRemoved := codIn * removalFrac(k.COD, hrt, tf)
		nh4Removed := nh4In * removalFrac(k.NH4, hrt, tf)

		u.Outlet.Set(wwtp.BOD, bodIn-bodRemoved)
		u.Outlet.Set(wwtp.COD, codIn-codRemoved)
		u.Outlet.Set(wwtp.NH4, nh4In-nh4Removed)
		u.Outlet.Set(wwtp.NO3, u.Inlet.Get(wwtp.NO3)+nh4Removed*nitrateYield)

		doConsumed := (bodRemoved + codRemoved + nh4Removed*o2PerNH4) * o2Factor
		doOut := u.Inlet.Get(wwtp.DO) - doConsumed
		if doOut < 0 {
			doOut = 0 // Dissolved oxygen cannot go negative.
		}
		u.Outlet.Set(wwtp.DO, doOut)
	}
}

// Nitrification returns a transform that converts ammonium to nitrate at
// rate constant kNH4 [1/hour] and consumes a flat alkalinityDrop
// [mg CaCO3/L] per tick. Unlike FirstOrder it does not track oxygen
// consumption.
func Nitrification(kNH4, alkalinityDrop float64) wwtp.UnitManipulator {
	return func(u *wwtp.Unit, Δt float64) {
		hrt := u.HRT
		if hrt <= 0 {
			hrt = minHRT
		}
		tf := TempFactor(u.Inlet.Get(wwtp.Temp))

		nh4In := u.Inlet.Get(wwtp.NH4)
		nh4Removed := nh4In * removalFrac(kNH4, hrt, tf)

		u.Outlet.Set(wwtp.NH4, nh4In-nh4Removed)
		u.Outlet.Set(wwtp.NO3, u.Inlet.Get(wwtp.NO3)+nh4Removed*nitrateYield)
		u.Outlet.Set(wwtp.Alkalinity, u.Inlet.Get(wwtp.Alkalinity)-alkalinityDrop)
	}
}
