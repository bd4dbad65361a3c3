package terrasim

import (
	"math"
	"testing"

	"github.com/talgya/terra-sim/internal/catalog"
	"github.com/talgya/terra-sim/internal/entropy"
	"github.com/talgya/terra-sim/internal/planet"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func relApprox(a, b, rel float64) bool {
	return math.Abs(a-b) <= rel*math.Max(math.Abs(a), math.Abs(b))
}

func testTick(seed int64) *Tick {
	return NewTick(1, entropy.NewStream(seed))
}

// earthLike builds a body close to present-day Earth.
func earthLike() *planet.CelestialBody {
	b := planet.NewBody("Earth", planet.TypeTerrestrial)
	b.Mass = 5.972e24
	b.Radius = 6.371e6
	b.Density = 5.51
	b.Gravity = 9.81
	b.Albedo = 0.3
	b.SolarConstant = 1361
	b.SurfaceTemperature = 288
	b.Solid = &planet.Solidity{}

	const total = 5.1e18
	a := &planet.Atmosphere{Dust: 0.2}
	a.AddGas("N2", total*0.78, 28.01)
	a.AddGas("O2", total*0.21, 32.0)
	a.AddGas("Ar", total*0.0093, 39.95)
	a.AddGas("CO2", total*0.0004, 44.01)
	a.AddGas("H2O", total*0.0025, 18.02)
	a.AddGas("CH4", total*0.0000018, 16.04)
	b.Atmosphere = a

	h := &planet.Hydrosphere{}
	h.AddReservoir("oceans", planet.KindOcean, 1.335e18, 290)
	h.AddReservoir("lakes", planet.KindLake, 1.25e14, 285)
	h.AddReservoir("rivers", planet.KindRiver, 2.1e12, 285)
	h.AddReservoir("ice caps", planet.KindIce, 2.6e16, 250)
	h.RecalculateTotalMass()
	b.Hydrosphere = h

	b.Biosphere = &planet.Biosphere{
		SoilHealth: 50,
		LifeForms: []*planet.LifeForm{
			{Name: "phytoplankton", Population: 5e9, Diet: "photosynthetic",
				O2Production: 0.0001, CO2Consumption: 0.00001, SoilImprovement: 0.01,
				ReproductionRate: 1.0, MortalityRate: 0.9},
		},
		Biomes: []*planet.PlanetBiome{
			{Name: "Temperate Forest", ClimateType: "temperate_wet", AreaPercentage: 40,
				Moisture: 0.6, VegetationCover: 0.5,
				TemperatureRange: [2]float64{268, 298}, HumidityRange: [2]float64{40, 90}},
			{Name: "Desert", ClimateType: "desert", AreaPercentage: 30,
				Moisture: 0.1, VegetationCover: 0.05,
				TemperatureRange: [2]float64{268, 328}, HumidityRange: [2]float64{0, 20}},
			{Name: "Grassland", ClimateType: "temperate", AreaPercentage: 30,
				Moisture: 0.4, VegetationCover: 0.4,
				TemperatureRange: [2]float64{268, 308}, HumidityRange: [2]float64{20, 60}},
		},
	}

	NewGeosphereInitializer(DefaultConfig()).Initialize(entropy.NewStream(1), b)
	return b
}

// marsLike builds a cold, thin-atmosphere body with no life.
func marsLike() *planet.CelestialBody {
	b := planet.NewBody("Mars", planet.TypeTerrestrial)
	b.Mass = 6.39e23
	b.Radius = 3.3895e6
	b.Gravity = 3.72
	b.Albedo = 0.25
	b.SolarConstant = 586
	b.SurfaceTemperature = 150
	b.Solid = &planet.Solidity{}

	const total = 2.5e16
	a := &planet.Atmosphere{}
	a.AddGas("CO2", total*0.95, 44.01)
	a.AddGas("N2", total*0.028, 28.01)
	a.AddGas("Ar", total*0.02, 39.95)
	a.AddGas("H2O", total*0.002, 18.02)
	b.Atmosphere = a
	b.Geosphere = &planet.Geosphere{GeologicalActivity: 1, RegolithParticleSize: 1}
	return b
}

// missLookup knows no materials.
type missLookup struct{}

func (missLookup) Find(string) (catalog.Material, bool) { return catalog.Material{}, false }

func mustInvariants(t *testing.T, b *planet.CelestialBody) {
	t.Helper()
	if err := planet.CheckInvariants(b); err != nil {
		t.Fatalf("invariants broken: %v", err)
	}
}
