// Package scenario seeds the starter bodies of a new world.
package scenario

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/terra-sim/internal/entropy"
	"github.com/talgya/terra-sim/internal/phys"
	"github.com/talgya/terra-sim/internal/planet"
	"github.com/talgya/terra-sim/internal/terrasim"
)

// Body names in the default scenario.
const (
	Earth = "Earth"
	Mars  = "Mars"
	Ember = "Ember" // carbon planet
	Frost = "Frost" // ice giant
)

// bodyID derives a stable identifier so a seed always yields the same
// bodies and random streams.
func bodyID(seed int64, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("terrasim/%d/%s", seed, name))).String()
}

// Bodies builds the default scenario for seed. Geospheres come from the
// initializer with a stream derived per body; volatiles stored by a builder
// survive initialization.
func Bodies(seed int64, cfg terrasim.Config) []*planet.CelestialBody {
	gi := terrasim.NewGeosphereInitializer(cfg)
	builders := []func() *planet.CelestialBody{earth, mars, ember, frost}

	bodies := make([]*planet.CelestialBody, 0, len(builders))
	for _, build := range builders {
		b := build()
		b.ID = bodyID(seed, b.Name)
		gi.Initialize(entropy.Derive(seed, b.ID), b)
		bodies = append(bodies, b)
	}
	return bodies
}

func earth() *planet.CelestialBody {
	b := planet.NewBody(Earth, planet.TypeTerrestrial)
	b.Mass = phys.EarthMass
	b.Radius = phys.EarthRadius
	b.Density = phys.EarthDensity
	b.Gravity = 9.81
	b.Albedo = 0.3
	b.SolarConstant = 1361
	b.SurfaceTemperature = 288
	b.OceanWorld = true
	b.Solid = &planet.Solidity{}

	const total = 5.15e18
	a := &planet.Atmosphere{Dust: 0.01}
	a.AddGas("N2", total*0.7808, 28.01)
	a.AddGas("O2", total*0.2095, 32.0)
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
	h.SetStateDistribution(h.IceMass(), h.LiquidMass(), a.GasMass("H2O"))
	h.RecalculateTotalMass()
	b.Hydrosphere = h

	b.Biosphere = &planet.Biosphere{
		SoilHealth: 60,
		LifeForms: []*planet.LifeForm{
			{Name: "phytoplankton", Population: 8e9, Diet: "photosynthetic", PreferredBiome: "Ocean",
				O2Production: 0.0002, CO2Consumption: 0.0001, SoilImprovement: 0.001,
				ReproductionRate: 1.0, MortalityRate: 0.98},
			{Name: "grasses", Population: 3e9, Diet: "photosynthetic", PreferredBiome: "Grassland",
				O2Production: 0.0001, CO2Consumption: 0.00008, N2Fixation: 0.00001, SoilImprovement: 0.005,
				ReproductionRate: 0.5, MortalityRate: 0.49},
			{Name: "methanogens", Population: 1e9, Diet: "chemosynthetic", PreferredBiome: "Wetland",
				CH4Production: 0.00001, ReproductionRate: 0.3, MortalityRate: 0.3},
		},
		Biomes: []*planet.PlanetBiome{
			{Name: "Tropical Rainforest", ClimateType: "tropical", AreaPercentage: 15, Moisture: 0.8, VegetationCover: 0.9,
				TemperatureRange: [2]float64{293, 313}, HumidityRange: [2]float64{70, 100}},
			{Name: "Temperate Forest", ClimateType: "temperate_wet", AreaPercentage: 25, Moisture: 0.6, VegetationCover: 0.7,
				TemperatureRange: [2]float64{268, 298}, HumidityRange: [2]float64{40, 90}},
			{Name: "Grassland", ClimateType: "temperate", AreaPercentage: 25, Moisture: 0.4, VegetationCover: 0.5,
				TemperatureRange: [2]float64{268, 308}, HumidityRange: [2]float64{20, 60}},
			{Name: "Desert", ClimateType: "desert", AreaPercentage: 20, Moisture: 0.1, VegetationCover: 0.05,
				TemperatureRange: [2]float64{268, 328}, HumidityRange: [2]float64{0, 20}},
			{Name: "Tundra", ClimateType: "polar", AreaPercentage: 15, Moisture: 0.3, VegetationCover: 0.2,
				TemperatureRange: [2]float64{253, 278}, HumidityRange: [2]float64{10, 50}},
		},
	}
	return b
}

func mars() *planet.CelestialBody {
	b := planet.NewBody(Mars, planet.TypeTerrestrial)
	b.Mass = 6.39e23
	b.Radius = 3.3895e6
	b.Density = 3.93
	b.Gravity = 3.72
	b.Albedo = 0.25
	b.SolarConstant = 586
	b.SurfaceTemperature = 210
	b.Solid = &planet.Solidity{}

	const total = 2.5e16
	a := &planet.Atmosphere{Dust: 0.3}
	a.AddGas("CO2", total*0.9532, 44.01)
	a.AddGas("N2", total*0.027, 28.01)
	a.AddGas("Ar", total*0.016, 39.95)
	a.AddGas("O2", total*0.0013, 32.0)
	a.AddGas("H2O", total*0.0003, 18.02)
	b.Atmosphere = a

	h := &planet.Hydrosphere{}
	h.AddReservoir("polar ice", planet.KindIce, 5e15, 180)
	h.SetStateDistribution(h.IceMass(), h.LiquidMass(), a.GasMass("H2O"))
	h.RecalculateTotalMass()
	b.Hydrosphere = h

	g := &planet.Geosphere{}
	g.UpdateVolatileStore("CO2", planet.LocationPolarCaps, 1e16)
	g.UpdateVolatileStore("H2O", planet.LocationPolarCaps, 2e15)
	b.Geosphere = g
	return b
}

func ember() *planet.CelestialBody {
	b := planet.NewBody(Ember, planet.TypeCarbonPlanet)
	b.Mass = 1.4 * phys.EarthMass
	b.Radius = 1.1 * phys.EarthRadius
	b.Density = 5.8
	b.Gravity = 11.3
	b.Albedo = 0.1
	b.SolarConstant = 2200
	b.SurfaceTemperature = 420
	b.Solid = &planet.Solidity{}
	b.Exotic = &planet.ExoticProfile{
		PlanetType:       terrasim.ExoticCarbonPlanet,
		TemperatureRange: []float64{380, 460},
		PrimaryElements:  []string{"Carbon", "Silicon", "Iron"},
	}

	const total = 8e18
	a := &planet.Atmosphere{Dust: 0.05}
	a.AddGas("CO", total*0.6, 28.01)
	a.AddGas("CO2", total*0.3, 44.01)
	a.AddGas("CH4", total*0.1, 16.04)
	b.Atmosphere = a
	return b
}

func frost() *planet.CelestialBody {
	b := planet.NewBody(Frost, planet.TypeIceGiant)
	b.Mass = 17.15 * phys.EarthMass
	b.Radius = 2.4622e7
	b.Density = 1.64
	b.Gravity = 11.15
	b.Albedo = 0.29
	b.SolarConstant = 1.5
	b.SurfaceTemperature = 72
	b.Exotic = &planet.ExoticProfile{
		PlanetType:         terrasim.ExoticIceGiant,
		TemperatureRange:   []float64{-220, -200},
		PrimaryElements:    []string{"Hydrogen", "Helium", "Methane"},
		TidalLockingFactor: 0.1,
	}

	const total = 1e24
	a := &planet.Atmosphere{}
	a.AddGas("H2", total*0.8, 2.016)
	a.AddGas("He", total*0.19, 4.0)
	a.AddGas("CH4", total*0.01, 16.04)
	b.Atmosphere = a
	b.Hydrosphere = &planet.Hydrosphere{}
	return b
}
