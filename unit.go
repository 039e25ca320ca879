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

// UnitManipulator is a function that transforms the state of a single
// process unit over one time step of duration Δt [seconds]. Transforms read
// the unit's Inlet sample (plus the unit's retention attributes) and write
// its Outlet sample; they must not depend on the unit's previous Outlet.
type UnitManipulator func(u *Unit, Δt float64)

// Default retention attributes for newly created units.
const (
	defaultVolume      = 1000 // m³
	defaultFlowRate    = 100  // m³/day
	defaultHRT         = 10   // hours
	defaultSRT         = 20   // days
	defaultTemperature = 20   // °C
)

// Unit is one element of a treatment train: a source, a sink, or a treatment
// process. Each unit holds the water sample arriving at it (Inlet) and the
// sample leaving it (Outlet); treatment behavior is given by a
// UnitManipulator assigned at construction.
type Unit struct {
	name        string
	description string

	Volume      float64 `desc:"Working volume" units:"m³"`
	FlowRate    float64 `desc:"Design flow rate" units:"m³/day"`
	HRT         float64 `desc:"Hydraulic retention time" units:"hours"`
	SRT         float64 `desc:"Solids retention time" units:"days"`
	Temperature float64 `desc:"Operating temperature" units:"°C"`

	// Inlet is the water arriving at this unit, propagated from the
	// upstream unit after each tick. Outlet is the water leaving it,
	// recomputed from Inlet on every call to Simulate.
	Inlet  Sample
	Outlet Sample

	// removalEfficiencies is a manual per-parameter override annotation
	// exposed to surrounding tooling. The built-in transforms do not
	// consult it.
	removalEfficiencies map[Parameter]float64

	transform UnitManipulator
}

// NewUnit creates a unit with the given identity and transform. A nil
// transform gives passthrough behavior (Outlet = Inlet), used by sources,
// sinks, and instrumentation placeholders such as pumps and flow meters.
func NewUnit(name, description string, transform UnitManipulator) *Unit {
	return &Unit{
		name:                name,
		description:         description,
		Volume:              defaultVolume,
		FlowRate:            defaultFlowRate,
		HRT:                 defaultHRT,
		SRT:                 defaultSRT,
		Temperature:         defaultTemperature,
		Inlet:               NewSample(),
		Outlet:              NewSample(),
		removalEfficiencies: make(map[Parameter]float64),
		transform:           transform,
	}
}

// Name returns the unit's display name.
func (u *Unit) Name() string { return u.name }

// Description returns the unit's human-readable description.
func (u *Unit) Description() string { return u.description }

// Simulate advances the unit by one time step of duration Δt [seconds],
// replacing Outlet with a transformation of the current Inlet. The default
// transformation is the identity.
func (u *Unit) Simulate(Δt float64) {
	u.Outlet = u.Inlet
	if u.transform != nil {
		u.transform(u, Δt)
	}
}

// AddRemovalEfficiency records a manual removal-efficiency override for
// parameter p. Overrides are annotations for surrounding tooling; they do
// not alter the built-in process formulas.
func (u *Unit) AddRemovalEfficiency(p Parameter, efficiency float64) {
	u.removalEfficiencies[p] = efficiency
}

// RemoveRemovalEfficiency deletes the override for parameter p, if any.
func (u *Unit) RemoveRemovalEfficiency(p Parameter) {
	delete(u.removalEfficiencies, p)
}

// RemovalEfficiency returns the manual override for parameter p and whether
// one is set.
func (u *Unit) RemovalEfficiency(p Parameter) (float64, bool) {
	e, ok := u.removalEfficiencies[p]
	return e, ok
}

// RemovalEfficiencies returns a copy of all manual overrides.
func (u *Unit) RemovalEfficiencies() map[Parameter]float64 {
	o := make(map[Parameter]float64, len(u.removalEfficiencies))
	for p, e := range u.removalEfficiencies {
		o[p] = e
	}
	return o
}
