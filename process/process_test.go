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

package process

import (
	"math"
	"testing"

	"github.com/watermodel/wwtp"
)

const (
	testTolerance = 1e-8
	Δt            = 0.016
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func TestAllKindsConstructible(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 30 {
		t.Fatalf("have %d kinds, want 30", len(kinds))
	}
	for _, k := range kinds {
		u, err := New(k)
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		if u.Name() != string(k) {
			t.Errorf("unit named %q for kind %q", u.Name(), k)
		}
		if Description(k) == "" {
			t.Errorf("%s has no description", k)
		}
		u.Simulate(Δt) // must not panic on the baseline influent
	}
}

func TestUnknownKind(t *testing.T) {
	if _, err := New("Teleporter"); err == nil {
		t.Error("expected error for unknown kind")
	}
	if d := Description("Teleporter"); d != "" {
		t.Errorf("unknown kind has description %q", d)
	}
}

// The canonical aeration-tank check: default retention time of 10 hours at
// 20 °C takes baseline BOD from 300 down to 300·e⁻² ≈ 40.6 mg/L and floors
// dissolved oxygen at zero.
func TestAerationTank(t *testing.T) {
	u, err := New(AerationTank)
	if err != nil {
		t.Fatal(err)
	}
	u.Simulate(Δt)
	if got, want := u.Outlet.Get(wwtp.BOD), 300*math.Exp(-2); different(got, want, testTolerance) {
		t.Errorf("BOD = %g, want %g", got, want)
	}
	if got := u.Outlet.Get(wwtp.DO); got != 0 {
		t.Errorf("DO = %g, want 0", got)
	}
}

func TestPrimaryClarifier(t *testing.T) {
	u, err := New(PrimaryClarifier)
	if err != nil {
		t.Fatal(err)
	}
	u.Simulate(Δt)
	if got := u.Outlet.Get(wwtp.TSS); different(got, 60, testTolerance) {
		t.Errorf("TSS = %g, want 60", got)
	}
	if got := u.Outlet.Get(wwtp.Oil); different(got, 3, testTolerance) {
		t.Errorf("oil & grease = %g, want 3", got)
	}
	if got := u.Outlet.Get(wwtp.Turbidity); different(got, 40, testTolerance) {
		t.Errorf("turbidity = %g, want 40", got)
	}
}

func TestChlorineDisinfection(t *testing.T) {
	u, err := New(ChlorineDisinfection)
	if err != nil {
		t.Fatal(err)
	}
	u.Simulate(Δt)
	if got := u.Outlet.Get(wwtp.Pathogens); different(got, 10, testTolerance) {
		t.Errorf("pathogens = %g, want 10", got)
	}
	if got := u.Outlet.Get(wwtp.Chlorides); different(got, 146, testTolerance) {
		t.Errorf("chlorides = %g, want 146", got)
	}
	if got := u.Outlet.Get(wwtp.ResidualChlorine); got != 0.7 {
		t.Errorf("residual chlorine = %g, want 0.7", got)
	}
}

// The active sludge process removes COD as a fixed 79% fraction outside the
// oxygen balance, on top of the first-order BOD and NH4 kinetics.
func TestActiveSludgeProcess(t *testing.T) {
	u, err := New(ActiveSludgeProcess)
	if err != nil {
		t.Fatal(err)
	}
	u.Simulate(Δt)
	if got := u.Outlet.Get(wwtp.COD); different(got, 600*0.21, testTolerance) {
		t.Errorf("COD = %g, want %g", got, 600*0.21)
	}
	if got, want := u.Outlet.Get(wwtp.BOD), 300*math.Exp(-2); different(got, want, testTolerance) {
		t.Errorf("BOD = %g, want %g", got, want)
	}
}

// Hydraulic units move water without changing its quality.
func TestPassthroughKinds(t *testing.T) {
	for _, k := range []Kind{Pump, FlowMeter} {
		u, err := New(k)
		if err != nil {
			t.Fatal(err)
		}
		u.Inlet.Set(wwtp.BOD, 123)
		u.Simulate(Δt)
		if u.Outlet != u.Inlet {
			t.Errorf("%s changed the sample:\n%v\n%v", k, u.Outlet, u.Inlet)
		}
	}
}

// Two units of the same kind must not share closure state.
func TestTransformsIndependent(t *testing.T) {
	a, err := New(AerationTank)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(AerationTank)
	if err != nil {
		t.Fatal(err)
	}
	a.HRT = 1
	a.Simulate(Δt)
	b.Simulate(Δt)
	if got, want := b.Outlet.Get(wwtp.BOD), 300*math.Exp(-2); different(got, want, testTolerance) {
		t.Errorf("BOD = %g, want %g", got, want)
	}
}

func TestDefaultPlant(t *testing.T) {
	p, err := NewDefaultPlant()
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != len(DefaultTrain)+2 {
		t.Fatalf("default plant has %d units, want %d", p.Len(), len(DefaultTrain)+2)
	}
	for i, k := range DefaultTrain {
		u, err := p.Unit(i + 1)
		if err != nil {
			t.Fatal(err)
		}
		if u.Name() != string(k) {
			t.Errorf("unit %d is %q, want %q", i+1, u.Name(), k)
		}
	}
	// Run the example train to a steady effluent and sanity check it.
	for i := 0; i < 2*p.Len(); i++ {
		if err := p.Advance(Δt); err != nil {
			t.Fatal(err)
		}
	}
	eff := p.Effluent()
	if got := eff.Get(wwtp.BOD); got >= 300 || got < 0 {
		t.Errorf("effluent BOD = %g", got)
	}
	if got := eff.Get(wwtp.Pathogens); got >= 100 {
		t.Errorf("effluent pathogens = %g, want a disinfected effluent", got)
	}
	if got := eff.Get(wwtp.DO); got < 0 {
		t.Errorf("effluent DO = %g, want ≥ 0", got)
	}
}
