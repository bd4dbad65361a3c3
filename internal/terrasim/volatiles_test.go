package terrasim

import (
	"testing"

	"github.com/talgya/terra-sim/internal/planet"
)

func coldBody(temp float64) *planet.CelestialBody {
	b := planet.NewBody("Cold", planet.TypeTerrestrial)
	b.SurfaceTemperature = temp
	b.Atmosphere = &planet.Atmosphere{}
	b.Geosphere = &planet.Geosphere{}
	return b
}

func TestFreezeConservesMass(t *testing.T) {
	b := coldBody(150)
	b.Atmosphere.AddGas("N2", 1000, 28.01)
	b.Atmosphere.AddGas("CO2", 1000, 44.01)
	total := b.Atmosphere.TotalMass

	tick := testTick(1)
	NewVolatilePhaseTransitions(DefaultConfig()).Simulate(tick, b)

	// factor = min(44.7/50, 1) × 0.5
	wantFrozen := 1000 * (194.7 - 150) / 50 * 0.5
	stored := b.Geosphere.StoredVolatiles["CO2"][planet.LocationSurfaceIce]
	if !approx(stored, wantFrozen, 1e-9) {
		t.Fatalf("stored CO2 = %v, want %v", stored, wantFrozen)
	}
	if !approx(total-b.Atmosphere.TotalMass, stored, 1e-9) {
		t.Fatalf("atmosphere lost %v, store gained %v", total-b.Atmosphere.TotalMass, stored)
	}
	if b.Atmosphere.GasMass("N2") != 1000 {
		t.Fatalf("N2 froze above its freezing point")
	}
	if n := tick.Count(CategoryFreeze); n != 1 {
		t.Fatalf("freeze events = %d, want 1", n)
	}
}

func TestFreezeTakesTinyRemainder(t *testing.T) {
	b := coldBody(150)
	b.Atmosphere.AddGas("N2", 1e6, 28.01)
	b.Atmosphere.AddGas("CO2", 100, 44.01)

	NewVolatilePhaseTransitions(DefaultConfig()).Simulate(testTick(1), b)

	if b.Atmosphere.Gas("CO2") != nil {
		t.Fatalf("CO2 remainder left in atmosphere: %v", b.Atmosphere.GasMass("CO2"))
	}
	if got := b.Geosphere.StoredVolatile("CO2"); !approx(got, 100, 1e-9) {
		t.Fatalf("stored CO2 = %v, want all 100 kg", got)
	}
}

func TestWaterFreezesToPolarCaps(t *testing.T) {
	b := coldBody(250)
	b.Atmosphere.AddGas("N2", 1000, 28.01)
	b.Atmosphere.AddGas("H2O", 1000, 18.02)

	NewVolatilePhaseTransitions(DefaultConfig()).Simulate(testTick(1), b)

	if b.Geosphere.StoredVolatiles["H2O"][planet.LocationPolarCaps] <= 0 {
		t.Fatalf("water ice not stored at polar caps: %+v", b.Geosphere.StoredVolatiles)
	}
	if _, ok := b.Geosphere.StoredVolatiles["H2O"][planet.LocationSurfaceIce]; ok {
		t.Fatalf("water ice stored as surface ice")
	}
}

func TestReleaseWarmVolatiles(t *testing.T) {
	b := coldBody(250)
	b.Atmosphere.AddGas("N2", 1000, 28.01)
	b.Geosphere.UpdateVolatileStore("CO2", planet.LocationSurfaceIce, 1000)

	tick := testTick(1)
	NewVolatilePhaseTransitions(DefaultConfig()).Simulate(tick, b)

	// factor = (250 - 194.7) × 1e-4
	want := 1000 * (250 - 194.7) * 1e-4
	if got := b.Atmosphere.GasMass("CO2"); !approx(got, want, 1e-9) {
		t.Fatalf("released %v kg, want %v", got, want)
	}
	if got := b.Geosphere.StoredVolatile("CO2"); !approx(got, 1000-want, 1e-9) {
		t.Fatalf("store left %v, want %v", got, 1000-want)
	}
	if n := tick.Count(CategoryRelease); n != 1 {
		t.Fatalf("release events = %d, want 1", n)
	}
}

func TestReleaseFactor(t *testing.T) {
	v := NewVolatilePhaseTransitions(DefaultConfig())
	if f := v.ReleaseFactor(150, 194.7); f != 0 {
		t.Fatalf("factor below threshold = %v", f)
	}
	prev := 0.0
	for _, temp := range []float64{200, 210, 230, 260, 280} {
		f := v.ReleaseFactor(temp, 194.7)
		if f < prev {
			t.Fatalf("factor fell from %v to %v at %v K", prev, f, temp)
		}
		prev = f
	}
	if f := v.ReleaseFactor(1000, 194.7); f != 0.01 {
		t.Fatalf("factor = %v, want capped at 0.01", f)
	}
}

func TestVolatilesNeedBothSpheres(t *testing.T) {
	b := coldBody(100)
	b.Atmosphere.AddGas("CO2", 1000, 44.01)
	b.Geosphere = nil
	NewVolatilePhaseTransitions(DefaultConfig()).Simulate(testTick(1), b)
	if b.Atmosphere.GasMass("CO2") != 1000 {
		t.Fatalf("CO2 froze with nowhere to store it")
	}
}
