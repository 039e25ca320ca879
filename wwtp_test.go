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

import "testing"

const Δt = 0.016 // seconds

// halver removes half of the BOD; a marker transform for engine tests.
func halver() UnitManipulator {
	return func(u *Unit, Δt float64) {
		u.Outlet.Set(BOD, u.Inlet.Get(BOD)*0.5)
	}
}

// Passthrough units must copy the inlet to the outlet exactly.
func TestPassthroughIdentity(t *testing.T) {
	u := NewUnit("Pump", "", nil)
	u.Inlet.Set(BOD, 42)
	u.Inlet.Set(Temp, 31)
	u.Simulate(Δt)
	if u.Outlet != u.Inlet {
		t.Errorf("passthrough outlet differs from inlet:\n%v\n%v", u.Outlet, u.Inlet)
	}
}

func TestNewPlantInvariants(t *testing.T) {
	p := NewPlant()
	if p.Len() != 2 {
		t.Fatalf("new plant has %d units, want 2", p.Len())
	}
	if p.Inlet().Name() != "Inlet" || p.Outlet().Name() != "Outlet" {
		t.Errorf("plant ends misnamed: %s, %s", p.Inlet().Name(), p.Outlet().Name())
	}
}

// A single tick must advance information exactly one unit downstream: after
// an inlet edit, only the first interior unit's inlet reflects the new value
// after one advance, and the effluent only after every downstream unit has
// been traversed.
func TestOneUnitLag(t *testing.T) {
	p := NewPlant()
	u1 := NewUnit("A", "", nil)
	u2 := NewUnit("B", "", nil)
	if err := p.Append(u1); err != nil {
		t.Fatal(err)
	}
	if err := p.Append(u2); err != nil {
		t.Fatal(err)
	}

	const oldBOD, newBOD = 300.0, 77.0
	// Settle the train on the baseline first.
	for i := 0; i < p.Len(); i++ {
		if err := p.Advance(Δt); err != nil {
			t.Fatal(err)
		}
	}
	p.Inlet().Outlet.Set(BOD, newBOD)

	if err := p.Advance(Δt); err != nil {
		t.Fatal(err)
	}
	if got := u1.Inlet.Get(BOD); got != newBOD {
		t.Errorf("after 1 tick, first interior inlet BOD = %g, want %g", got, newBOD)
	}
	if got := u2.Inlet.Get(BOD); got != oldBOD {
		t.Errorf("after 1 tick, second interior inlet BOD = %g, want pre-edit %g", got, oldBOD)
	}
	if got := p.Effluent().Get(BOD); got != oldBOD {
		t.Errorf("after 1 tick, effluent BOD = %g, want pre-edit %g", got, oldBOD)
	}

	// One tick per downstream unit fully propagates the edit.
	for i := 0; i < 2; i++ {
		if err := p.Advance(Δt); err != nil {
			t.Fatal(err)
		}
	}
	if got := p.Effluent().Get(BOD); got != newBOD {
		t.Errorf("after full propagation, effluent BOD = %g, want %g", got, newBOD)
	}
}

// Repeated runs from the same initial state must produce bit-identical
// outlet sequences.
func TestDeterminism(t *testing.T) {
	run := func() []Sample {
		p := NewPlant()
		p.Append(NewUnit("H", "", halver()))
		p.Append(NewUnit("H2", "", halver()))
		var out []Sample
		for i := 0; i < 50; i++ {
			if err := p.Advance(Δt * float64(1+i%3)); err != nil {
				t.Fatal(err)
			}
			out = append(out, p.Effluent())
		}
		return out
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tick %d: runs diverged", i)
		}
	}
}

func TestInsertRemoveBounds(t *testing.T) {
	p := NewPlant()
	u := NewUnit("A", "", nil)

	if err := p.Insert(0, u); err == nil {
		t.Error("insert at position 0 (before Inlet) should fail")
	}
	if err := p.Insert(2, u); err == nil {
		t.Error("insert past the Outlet should fail")
	}
	if err := p.Insert(1, u); err != nil {
		t.Errorf("insert at position 1 failed: %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("plant has %d units, want 3", p.Len())
	}
	got, err := p.Unit(1)
	if err != nil {
		t.Fatal(err)
	}
	if got != u {
		t.Error("inserted unit is not at position 1")
	}

	if err := p.Remove(0); err == nil {
		t.Error("removing the Inlet should fail")
	}
	if err := p.Remove(2); err == nil {
		t.Error("removing the Outlet should fail")
	}
	if err := p.Remove(1); err != nil {
		t.Errorf("removing interior unit failed: %v", err)
	}
	if p.Len() != 2 {
		t.Errorf("plant has %d units after removal, want 2", p.Len())
	}
}

func TestConnectionsDerived(t *testing.T) {
	p := NewPlant()
	u := NewUnit("A", "", nil)
	p.Append(u)
	conns := p.Connections()
	if len(conns) != 2 {
		t.Fatalf("got %d connections, want 2", len(conns))
	}
	if conns[0].From != p.Inlet() || conns[0].To != u {
		t.Error("first connection should be Inlet -> A")
	}
	if conns[1].From != u || conns[1].To != p.Outlet() {
		t.Error("second connection should be A -> Outlet")
	}
}

func TestReset(t *testing.T) {
	p := NewPlant()
	inlet, outlet := p.Inlet(), p.Outlet()
	p.Append(NewUnit("A", "", nil))
	p.Advance(Δt)
	p.Reset()
	if p.Len() != 2 {
		t.Errorf("reset left %d units, want 2", p.Len())
	}
	if p.Inlet() != inlet || p.Outlet() != outlet {
		t.Error("reset must keep the original Inlet and Outlet units")
	}
	if p.Tick() != 0 {
		t.Errorf("reset left tick counter at %d", p.Tick())
	}
	for _, param := range Parameters() {
		if p.History().Len(param) != 0 {
			t.Fatalf("reset left history for %s", param)
		}
	}
}

func TestUnitIndexOutOfRange(t *testing.T) {
	p := NewPlant()
	if _, err := p.Unit(-1); err == nil {
		t.Error("expected error for negative index")
	}
	if _, err := p.Unit(2); err == nil {
		t.Error("expected error for index past the Outlet")
	}
}

func TestRemovalEfficiencyOverridesAreInert(t *testing.T) {
	u := NewUnit("H", "", halver())
	u.AddRemovalEfficiency(BOD, 0.99)
	u.Inlet.Set(BOD, 100)
	u.Simulate(Δt)
	if got := u.Outlet.Get(BOD); got != 50 {
		t.Errorf("override changed the built-in formula: BOD = %g, want 50", got)
	}
	if e, ok := u.RemovalEfficiency(BOD); !ok || e != 0.99 {
		t.Errorf("override not retrievable: %g, %v", e, ok)
	}
	u.RemoveRemovalEfficiency(BOD)
	if _, ok := u.RemovalEfficiency(BOD); ok {
		t.Error("override still present after removal")
	}
}
