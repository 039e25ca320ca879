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

// Package wwtp simulates contaminant transformation through an ordered chain
// of wastewater-treatment process units.
//
// A Plant holds the treatment train: the first unit is always the Inlet
// (source), the last is always the Outlet (sink), and interior units are
// treatment processes in the order water physically traverses them. Each
// call to Advance runs one simulation tick as a sequence of PlantManipulator
// phases: every unit except the Inlet recomputes its outlet sample from its
// current inlet sample, then outlet samples are propagated one position
// downstream, then outlet values are recorded in the bounded parameter
// history. Because computation for the whole train happens against
// pre-propagation inlets, information travels exactly one unit per tick;
// reaching steady state after an inlet edit or a structural change takes at
// least as many ticks as there are units downstream of it.
//
// Treatment behavior is expressed as UnitManipulator closures; the concrete
// process models live in the science subpackages and are bound to named unit
// kinds by the process package.
package wwtp

import (
	"fmt"
	"io"
	"time"
)

// Version gives the version number of this version of WWTP.
const Version = "0.3.1"

// DefaultHistoryCapacity is the number of values retained per parameter by a
// plant's history recorder unless configured otherwise.
const DefaultHistoryCapacity = 100

// PlantManipulator is a function that operates on the whole treatment train,
// for example to run process computations or propagate water between units.
// A plant's tick is the composition of its PlantManipulators in order.
type PlantManipulator func(p *Plant) error

// Plant is the simulation state for one treatment train.
type Plant struct {
	// Dt is the duration of the current time step [seconds]. It is set by
	// Advance before the tick functions run.
	Dt float64

	// TickFuncs are the phases run in order on every call to Advance.
	TickFuncs []PlantManipulator

	units   []*Unit
	history *History
	tick    int
}

// Option allows optional ways to initialize a plant.
type Option func(*Plant)

// WithHistoryCapacity sets the number of values the plant's history
// recorder keeps per parameter.
func WithHistoryCapacity(n int) Option {
	return func(p *Plant) {
		p.history = NewHistory(n)
	}
}

// NewPlant creates a plant holding only its Inlet and Outlet units and the
// standard tick phases (Compute, Propagate, RecordHistory).
func NewPlant(opts ...Option) *Plant {
	p := &Plant{
		units: []*Unit{
			NewUnit("Inlet", "Entry point of wastewater into the system.", nil),
			NewUnit("Outlet", "Exit point of treated water from the system.", nil),
		},
		history: NewHistory(DefaultHistoryCapacity),
	}
	p.TickFuncs = []PlantManipulator{
		Compute(),
		Propagate(),
		RecordHistory(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Advance runs one full simulation tick of duration Δt [seconds]: it sets
// the plant time step and runs the tick phases in order. Structural mutation
// of the train is only valid between calls to Advance.
func (p *Plant) Advance(Δt float64) error {
	p.Dt = Δt
	for _, f := range p.TickFuncs {
		if err := f(p); err != nil {
			return err
		}
	}
	p.tick++
	return nil
}

// Tick returns the number of completed simulation ticks.
func (p *Plant) Tick() int { return p.tick }

// Compute returns a function that recomputes the outlet sample of every unit
// except the Inlet from that unit's current inlet sample. Inlets are the
// values propagated at the end of the previous tick; this tick's changes are
// not visible until Propagate runs.
func Compute() PlantManipulator {
	return func(p *Plant) error {
		for i, u := range p.units {
			if i == 0 {
				continue // The Inlet's outlet is externally driven.
			}
			u.Simulate(p.Dt)
		}
		return nil
	}
}

// Propagate returns a function that copies each unit's outlet sample into
// the inlet of the next unit downstream. Together with Compute this forms
// the two-phase tick: fusing the passes would let information cross more
// than one unit per tick and change observable behavior.
func Propagate() PlantManipulator {
	return func(p *Plant) error {
		for i := 1; i < len(p.units); i++ {
			p.units[i].Inlet = p.units[i-1].Outlet
		}
		return nil
	}
}

// RecordHistory returns a function that appends every unit's outlet value
// for every parameter to the plant's bounded history, in train order.
func RecordHistory() PlantManipulator {
	return func(p *Plant) error {
		for _, u := range p.units {
			for _, param := range Parameters() {
				p.history.Add(param, u.Outlet.Get(param))
			}
		}
		return nil
	}
}

// Log writes simulation status messages to w.
func Log(w io.Writer) PlantManipulator {
	startTime := time.Now()
	tickTime := time.Now()
	return func(p *Plant) error {
		fmt.Fprintf(w, "Tick %-5d  walltime=%6.3gs  Δwalltime=%4.2gms  "+
			"timestep=%.4gs  units=%d  effluent BOD=%.4g\n",
			p.tick+1, time.Since(startTime).Seconds(),
			float64(time.Since(tickTime).Microseconds())/1000, p.Dt,
			len(p.units), p.Effluent().Get(BOD))
		tickTime = time.Now()
		return nil
	}
}

// Units returns the treatment train in flow order. The returned slice is a
// copy; the units it points to are the live simulation state.
func (p *Plant) Units() []*Unit {
	o := make([]*Unit, len(p.units))
	copy(o, p.units)
	return o
}

// Len returns the number of units in the train, including Inlet and Outlet.
func (p *Plant) Len() int { return len(p.units) }

// Unit returns the unit at position i in the train.
func (p *Plant) Unit(i int) (*Unit, error) {
	if i < 0 || i >= len(p.units) {
		return nil, fmt.Errorf("wwtp: unit index %d out of range [0,%d)", i, len(p.units))
	}
	return p.units[i], nil
}

// Inlet returns the source unit at the head of the train. Its Outlet sample
// is the one externally writable piece of simulation state: the driver edits
// it between ticks to change the influent.
func (p *Plant) Inlet() *Unit { return p.units[0] }

// Outlet returns the sink unit at the tail of the train.
func (p *Plant) Outlet() *Unit { return p.units[len(p.units)-1] }

// Effluent returns the water sample most recently propagated into the
// Outlet unit.
func (p *Plant) Effluent() Sample { return p.Outlet().Inlet }

// History returns the plant's bounded per-parameter history recorder.
func (p *Plant) History() *History { return p.history }

// Insert places unit u at position i in the train. Valid positions are
// 1 through Len()-1 inclusive: the Inlet stays first and the Outlet stays
// last. Insertion is only valid between ticks.
func (p *Plant) Insert(i int, u *Unit) error {
	if i < 1 || i > len(p.units)-1 {
		return fmt.Errorf("wwtp: cannot insert unit at position %d; valid positions are [1,%d]",
			i, len(p.units)-1)
	}
	p.units = append(p.units, nil)
	copy(p.units[i+1:], p.units[i:])
	p.units[i] = u
	return nil
}

// Append places unit u immediately upstream of the Outlet.
func (p *Plant) Append(u *Unit) error {
	return p.Insert(len(p.units)-1, u)
}

// Remove deletes the unit at position i from the train. The Inlet and
// Outlet cannot be removed. Removal is only valid between ticks.
func (p *Plant) Remove(i int) error {
	if i < 1 || i > len(p.units)-2 {
		return fmt.Errorf("wwtp: cannot remove unit at position %d; valid positions are [1,%d]",
			i, len(p.units)-2)
	}
	copy(p.units[i:], p.units[i+1:])
	p.units[len(p.units)-1] = nil
	p.units = p.units[:len(p.units)-1]
	return nil
}

// Connection is a directed link between sequentially adjacent units.
type Connection struct {
	From, To *Unit
}

// Connections derives the train's adjacency: one connection between each
// pair of sequentially adjacent units. There is no branching or merging;
// adjacency is always recomputed from order rather than stored.
func (p *Plant) Connections() []Connection {
	o := make([]Connection, 0, len(p.units)-1)
	for i := 0; i < len(p.units)-1; i++ {
		o = append(o, Connection{From: p.units[i], To: p.units[i+1]})
	}
	return o
}

// Reset removes all interior treatment units, keeping the existing Inlet and
// Outlet, and clears the recorded history.
func (p *Plant) Reset() {
	p.units = []*Unit{p.Inlet(), p.Outlet()}
	p.history.Clear()
	p.tick = 0
}
