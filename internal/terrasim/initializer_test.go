package terrasim

import (
	"testing"

	"github.com/talgya/terra-sim/internal/entropy"
	"github.com/talgya/terra-sim/internal/phys"
	"github.com/talgya/terra-sim/internal/planet"
)

func initBody(bodyType string, mass float64, seed int64) *planet.CelestialBody {
	b := planet.NewBody("Init", bodyType)
	b.Mass = mass
	b.Radius = phys.EarthRadius
	b.Density = phys.EarthDensity
	NewGeosphereInitializer(DefaultConfig()).Initialize(entropy.NewStream(seed), b)
	return b
}

func TestInitializeTerrestrialLayers(t *testing.T) {
	b := initBody(planet.TypeTerrestrial, phys.EarthMass, 1)
	g := b.Geosphere

	wantCore := phys.EarthRadius * 0.6 * phys.EarthDensity * 1e9
	if !relApprox(g.LayerMass(planet.LayerCore), wantCore, 1e-12) {
		t.Fatalf("core mass = %v, want %v", g.LayerMass(planet.LayerCore), wantCore)
	}
	iron := g.Material(planet.LayerCore, "Iron")
	if iron == nil || !approx(iron.Percentage, 50, 1e-9) || iron.State != planet.StateSolid {
		t.Fatalf("core iron = %+v", iron)
	}
	if m := g.Material(planet.LayerMantle, "Magnesium"); m == nil || m.State != planet.StateLiquid {
		t.Fatalf("mantle magnesium = %+v, want liquid", m)
	}
	if m := g.Material(planet.LayerCrust, "Aluminum"); m == nil || m.State != planet.StateSolid {
		t.Fatalf("crust aluminum = %+v, want solid", m)
	}
	if g.GeologicalActivity < 1 || g.GeologicalActivity > 10 || !g.TectonicActivity {
		t.Fatalf("activity = %v tectonic %v", g.GeologicalActivity, g.TectonicActivity)
	}
	if n := len(g.Plates); n < 5 || n > 15 {
		t.Fatalf("plates = %d, want 5..15", n)
	}
	mustInvariants(t, b)
}

func TestInitializeCarbonPlanet(t *testing.T) {
	g := initBody(planet.TypeCarbonPlanet, phys.EarthMass, 2).Geosphere
	for _, name := range []string{"Graphite", "Diamond", "Silicon Carbide"} {
		m := g.Material(planet.LayerCrust, name)
		if m == nil || m.State != planet.StateSolid {
			t.Fatalf("crust %s = %+v", name, m)
		}
	}
	if g.Material(planet.LayerMantle, "Carbon") == nil {
		t.Fatalf("carbon planet mantle has no carbon")
	}
	if g.GeologicalActivity > 8 {
		t.Fatalf("activity = %v, want at most 8", g.GeologicalActivity)
	}
}

func TestInitializeGasGiantHydrogen(t *testing.T) {
	heavy := initBody(planet.TypeGasGiant, 2*phys.EarthMass, 3).Geosphere
	if m := heavy.Material(planet.LayerCore, "Hydrogen"); m == nil || m.State != planet.StateMetallic {
		t.Fatalf("heavy core hydrogen = %+v, want metallic", m)
	}
	if m := heavy.Material(planet.LayerCrust, "Helium"); m == nil || m.State != planet.StateGas {
		t.Fatalf("crust helium = %+v, want gas", m)
	}
	if len(heavy.Plates) != 0 || heavy.TectonicActivity {
		t.Fatalf("gas giant has %d plates", len(heavy.Plates))
	}

	light := initBody(planet.TypeGasGiant, phys.EarthMass, 3).Geosphere
	if m := light.Material(planet.LayerCore, "Hydrogen"); m == nil || m.State != planet.StateSolid {
		t.Fatalf("light core hydrogen = %+v, want solid", m)
	}
}

func TestInitializeIceGiant(t *testing.T) {
	g := initBody(planet.TypeIceGiant, 15*phys.EarthMass, 4).Geosphere
	for _, m := range g.Materials {
		if m.Name != "Rock" && m.State != planet.StateSolid {
			t.Fatalf("%s %s is %s, want solid ice", m.Layer, m.Name, m.State)
		}
	}
	if !g.IceTectonics || len(g.Plates) < 5 {
		t.Fatalf("ice giant plates = %d, ice tectonics %v", len(g.Plates), g.IceTectonics)
	}
}

func TestInitializeUnknownTypeFallsBack(t *testing.T) {
	g := initBody("rogue", phys.EarthMass, 5).Geosphere
	if g.Material(planet.LayerCore, "Iron") == nil {
		t.Fatalf("unknown type did not use the terrestrial template")
	}
	if g.GeologicalActivity > 3 || !g.TectonicActivity {
		t.Fatalf("default activity = %v tectonic %v", g.GeologicalActivity, g.TectonicActivity)
	}
}

func TestInitializeDeterministic(t *testing.T) {
	a := initBody(planet.TypeTerrestrial, phys.EarthMass, 42).Geosphere
	b := initBody(planet.TypeTerrestrial, phys.EarthMass, 42).Geosphere
	if a.GeologicalActivity != b.GeologicalActivity || len(a.Plates) != len(b.Plates) {
		t.Fatalf("same seed gave different geospheres")
	}
	for i := range a.Plates {
		if a.Plates[i] != b.Plates[i] {
			t.Fatalf("plate %d differs: %+v vs %+v", i, a.Plates[i], b.Plates[i])
		}
	}
}

func TestInitializeKeepsSurfaceFields(t *testing.T) {
	b := planet.NewBody("Kept", planet.TypeTerrestrial)
	b.Geosphere = &planet.Geosphere{RegolithDepth: 3, AverageRainfall: 500}
	b.Geosphere.AddMaterial(planet.LayerCrust, "Basalt", planet.StateSolid, 10)
	NewGeosphereInitializer(DefaultConfig()).Initialize(entropy.NewStream(1), b)
	if b.Geosphere.RegolithDepth != 3 || b.Geosphere.AverageRainfall != 500 {
		t.Fatalf("surface fields lost: %+v", b.Geosphere)
	}
	if b.Geosphere.Material(planet.LayerCrust, "Basalt") != nil {
		t.Fatalf("old materials kept")
	}
}
