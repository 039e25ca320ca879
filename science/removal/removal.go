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

// Package removal implements fixed-fraction and fixed-value contaminant
// removal models: sedimentation, filtration, flotation, precipitation,
// adsorption, ion exchange, and the other physicochemical processes whose
// performance is characterized by a constant removal efficiency rather than
// reaction kinetics.
package removal

import "github.com/watermodel/wwtp"

// Fraction returns a transform that removes the given fraction of parameter
// p: outlet = inlet × (1 − frac). A frac of 0.70 means 70% removal.
func Fraction(p wwtp.Parameter, frac float64) wwtp.UnitManipulator {
	return func(u *wwtp.Unit, Δt float64) {
		u.Outlet.Set(p, u.Inlet.Get(p)*(1-frac))
	}
}

// Scale returns a transform that multiplies parameter p by factor.
func Scale(p wwtp.Parameter, factor float64) wwtp.UnitManipulator {
	return func(u *wwtp.Unit, Δt float64) {
		u.Outlet.Set(p, u.Inlet.Get(p)*factor)
	}
}

// Shift returns a transform that adds delta to parameter p.
func Shift(p wwtp.Parameter, delta float64) wwtp.UnitManipulator {
	return func(u *wwtp.Unit, Δt float64) {
		u.Outlet.Set(p, u.Inlet.Get(p)+delta)
	}
}

// SetValue returns a transform that sets parameter p to val regardless of
// the inlet value, for example a heat exchanger pinning temperature.
func SetValue(p wwtp.Parameter, val float64) wwtp.UnitManipulator {
	return func(u *wwtp.Unit, Δt float64) {
		u.Outlet.Set(p, val)
	}
}

// Precipitate returns a transform for chemical precipitation: it removes
// frac of parameter p and adds the removed mass times yield to TSS as formed
// precipitate.
func Precipitate(p wwtp.Parameter, frac, yield float64) wwtp.UnitManipulator {
	return func(u *wwtp.Unit, Δt float64) {
		removed := u.Inlet.Get(p) * frac
		u.Outlet.Set(p, u.Inlet.Get(p)-removed)
		u.Outlet.Set(wwtp.TSS, u.Inlet.Get(wwtp.TSS)+removed*yield)
	}
}

// Combine composes transforms into one, applied in order. Each constituent
// reads the unit's inlet and writes the parameters it owns, so composition
// order only matters when two transforms touch the same parameter.
func Combine(ms ...wwtp.UnitManipulator) wwtp.UnitManipulator {
	return func(u *wwtp.Unit, Δt float64) {
		for _, m := range ms {
			m(u, Δt)
		}
	}
}
