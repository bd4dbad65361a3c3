package planet

import (
	"math"
	"testing"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestAtmosphereAddRemoveKeepsPercentages(t *testing.T) {
	a := &Atmosphere{}
	a.AddGas("N2", 780, 28.01)
	a.AddGas("O2", 210, 32.0)
	a.AddGas("Ar", 10, 39.95)

	if !approx(a.TotalMass, 1000, 1e-9) {
		t.Fatalf("TotalMass = %v, want 1000", a.TotalMass)
	}
	if !approx(a.PercentageSum(), 100, 1e-9) {
		t.Fatalf("percentage sum = %v", a.PercentageSum())
	}
	if got := a.Gas("O2").Percentage; !approx(got, 21, 1e-9) {
		t.Fatalf("O2 percentage = %v, want 21", got)
	}

	removed := a.RemoveGas("O2", 500)
	if removed != 210 {
		t.Fatalf("removed %v, want clamp to 210", removed)
	}
	if a.Gas("O2") != nil {
		t.Fatalf("exhausted gas record not deleted")
	}
	if !approx(a.PercentageSum(), 100, 1e-9) {
		t.Fatalf("percentage sum after removal = %v", a.PercentageSum())
	}
}

func TestAtmosphereIgnoresInvalidMass(t *testing.T) {
	a := &Atmosphere{}
	a.AddGas("CO2", -5, 44.01)
	a.AddGas("CO2", math.NaN(), 44.01)
	if len(a.Gases) != 0 {
		t.Fatalf("invalid additions created records: %+v", a.Gases)
	}
	if got := a.RemoveGas("CO2", 1); got != 0 {
		t.Fatalf("removing absent gas returned %v", got)
	}
}

func TestRemoveGasDropsResidue(t *testing.T) {
	a := &Atmosphere{}
	a.AddGas("CH4", 1.0005, 16.04)
	removed := a.RemoveGas("CH4", 1.0)
	if a.Gas("CH4") != nil {
		t.Fatalf("residue below MinGasMass kept")
	}
	if !approx(removed, 1.0005, 1e-12) {
		t.Fatalf("removed = %v, want full mass", removed)
	}
}

func TestRemoveProportionally(t *testing.T) {
	a := &Atmosphere{}
	a.AddGas("N2", 800, 28.01)
	a.AddGas("O2", 200, 32.0)
	got := a.RemoveProportionally(100)
	if !approx(got, 100, 1e-9) {
		t.Fatalf("removed %v, want 100", got)
	}
	if !approx(a.GasMass("N2"), 720, 1e-9) || !approx(a.GasMass("O2"), 180, 1e-9) {
		t.Fatalf("split wrong: N2=%v O2=%v", a.GasMass("N2"), a.GasMass("O2"))
	}
}

func TestDustClamped(t *testing.T) {
	a := &Atmosphere{Dust: 0.05}
	a.DecreaseDust(0.1)
	if a.Dust != 0 {
		t.Fatalf("dust = %v, want 0", a.Dust)
	}
	a.IncreaseDust(3)
	if a.Dust != 1 {
		t.Fatalf("dust = %v, want 1", a.Dust)
	}
}

func TestPressureAndPartialPressure(t *testing.T) {
	a := &Atmosphere{}
	a.AddGas("N2", 28.01, 28.01)
	a.AddGas("O2", 32.0, 32.0)
	a.UpdatePressure(9.81, 6.371e6)
	want := a.TotalMass * 9.81 / (4 * math.Pi * 6.371e6 * 6.371e6)
	if !approx(a.Pressure, want, 1e-18) {
		t.Fatalf("pressure = %v, want %v", a.Pressure, want)
	}
	if mf := a.MoleFraction("O2"); !approx(mf, 0.5, 1e-12) {
		t.Fatalf("O2 mole fraction = %v, want 0.5", mf)
	}
	if pp := a.PartialPressure("O2"); !approx(pp, a.Pressure/2, 1e-18) {
		t.Fatalf("partial pressure = %v", pp)
	}
}

func TestHydrosphereMassAccounting(t *testing.T) {
	h := &Hydrosphere{}
	ocean := h.AddReservoir("ocean", KindOcean, 10, 280)
	h.AddReservoir("north cap", KindIce, 2, 250)

	if ocean.Density != 1000 || h.Reservoir("north cap").Density != 917 {
		t.Fatalf("unexpected densities")
	}
	if got := h.RemoveMass(ocean, 50000); got != 10000 {
		t.Fatalf("RemoveMass clamp = %v, want 10000", got)
	}
	h.AddMass(ocean, 3000)
	h.AddCompound("NH3", 100)
	h.RecalculateTotalMass()
	if want := 3000.0 + 2*917 + 100; !approx(h.TotalMass, want, 1e-9) {
		t.Fatalf("TotalMass = %v, want %v", h.TotalMass, want)
	}
	h.SetStateDistribution(h.IceMass(), h.LiquidMass(), 0)
	s := h.State
	if !approx(s.Solid+s.Liquid+s.Vapor, 100, 1e-9) {
		t.Fatalf("state distribution sum = %v", s.Solid+s.Liquid+s.Vapor)
	}
}

func TestGeosphereLayerPercentages(t *testing.T) {
	g := &Geosphere{}
	g.AddMaterial(LayerMantle, "Carbon", StateLiquid, 300)
	g.AddMaterial(LayerMantle, "Silicon", StateLiquid, 100)
	moved := g.TransferMass(LayerMantle, "Carbon", "Diamond", StateSolid, 30)
	if moved != 30 {
		t.Fatalf("moved %v, want 30", moved)
	}
	sum := 0.0
	for _, m := range g.LayerMaterials(LayerMantle) {
		sum += m.Percentage
	}
	if !approx(sum, 100, 1e-9) {
		t.Fatalf("mantle percentages sum to %v", sum)
	}
	if d := g.Material(LayerMantle, "Diamond"); d == nil || d.Mass != 30 {
		t.Fatalf("diamond = %+v", d)
	}
	if g.TransferMass(LayerMantle, "Nothing", "Diamond", StateSolid, 1) != 0 {
		t.Fatalf("transfer from missing material moved mass")
	}
}

func TestVolatileStore(t *testing.T) {
	g := &Geosphere{}
	g.UpdateVolatileStore("CO2", LocationSurfaceIce, 300)
	g.UpdateVolatileStore("CO2", LocationPolarCaps, 100)
	if got := g.StoredVolatile("CO2"); got != 400 {
		t.Fatalf("stored = %v", got)
	}
	released := g.ReleaseVolatile("CO2", 40)
	if !approx(released, 40, 1e-9) {
		t.Fatalf("released %v", released)
	}
	if got := g.StoredVolatiles["CO2"][LocationSurfaceIce]; !approx(got, 270, 1e-9) {
		t.Fatalf("surface ice = %v, want 270", got)
	}
	g.ReleaseVolatile("CO2", 1e9)
	if _, ok := g.StoredVolatiles["CO2"]; ok {
		t.Fatalf("empty compound not removed")
	}
}

func TestPlateHistoryBounded(t *testing.T) {
	g := &Geosphere{Plates: []Plate{{ID: 1}}}
	for day := uint64(1); day <= 25; day++ {
		g.AppendPlateSnapshot(day, 10)
	}
	if len(g.PlateHistory) != 10 {
		t.Fatalf("history length = %d", len(g.PlateHistory))
	}
	if g.PlateHistory[0].Day != 16 {
		t.Fatalf("oldest kept day = %d, want 16", g.PlateHistory[0].Day)
	}
}

func TestCheckInvariants(t *testing.T) {
	b := NewBody("Test", TypeTerrestrial)
	b.Atmosphere = &Atmosphere{}
	b.Atmosphere.AddGas("N2", 100, 28.01)
	if err := CheckInvariants(b); err != nil {
		t.Fatalf("unexpected invariant error: %v", err)
	}
	b.Atmosphere.Gases[0].Percentage = 50
	b.Atmosphere.Dust = 2
	if err := CheckInvariants(b); err == nil {
		t.Fatalf("expected invariant violations")
	}
}

func TestEquilibriumTemperature(t *testing.T) {
	b := &CelestialBody{SolarConstant: 1361, Albedo: 0.3}
	if got := b.EquilibriumTemperature(); got < 254 || got > 256 {
		t.Fatalf("Earth equilibrium = %v, want ~255 K", got)
	}
	b.SolarConstant = 0
	if got := b.EquilibriumTemperature(); got != 3 {
		t.Fatalf("starless equilibrium = %v", got)
	}
	b = &CelestialBody{Mass: 5.972e24, Radius: 6.371e6}
	if g := b.SurfaceGravity(); g < 9.7 || g > 9.9 {
		t.Fatalf("Earth gravity = %v", g)
	}
}

func TestEquilibriumTemperatureClampsAlbedo(t *testing.T) {
	b := &CelestialBody{SolarConstant: 1361, Albedo: 1.5}
	if got := b.EquilibriumTemperature(); math.IsNaN(got) || got != 0 {
		t.Fatalf("albedo 1.5 equilibrium = %v, want 0", got)
	}
	b.Albedo = -1
	want := (&CelestialBody{SolarConstant: 1361}).EquilibriumTemperature()
	if got := b.EquilibriumTemperature(); !approx(got, want, 1e-9) {
		t.Fatalf("albedo -1 equilibrium = %v, want %v", got, want)
	}
}
