// Package terrasim advances the physical state of a celestial body one tick
// at a time: per-sphere simulators, the interfaces between spheres, the
// volatile cycle and the exotic-world processes, tied together by Simulator.
package terrasim

import (
	"log/slog"

	"github.com/talgya/terra-sim/internal/catalog"
	"github.com/talgya/terra-sim/internal/planet"
)

// MaterialLookup resolves compound names. *catalog.Catalog satisfies it.
type MaterialLookup interface {
	Find(name string) (catalog.Material, bool)
}

// Config holds every tunable of the simulators. Tables are injected here so
// tests can swap them.
type Config struct {
	Materials   MaterialLookup
	Phases      catalog.PhaseTable
	MolarMasses map[string]float64

	// Atmosphere.
	GreenhouseIterations int
	AtmosphericLoss      float64 // kg per day, taken across all gases
	DustDecay            float64

	// Hydrosphere.
	EvaporationCoefficient float64
	PrecipitationBase      float64
	PrecipitationPerKelvin float64
	PrecipitationShares    map[planet.ReservoirKind]float64
	DustWashout            float64
	IceMeltFraction        float64
	MeltVaporFraction      float64

	// Geosphere.
	EarthquakeChance  float64
	EruptionChance    float64
	OceanEruptionOdds float64
	PlateStep         float64 // m per tick, either direction
	PlateHistoryLimit int

	// Volatile cycle.
	FreezeSpan         float64 // K below freezing for full rate
	FreezeFraction     float64
	FreezeMinPercent   float64 // remainder below this freezes entirely
	ReleaseCoefficient float64
	ReleaseCap         float64

	// Exotic worlds.
	CryovolcanismChance  float64
	IcePlateStep         float64 // degrees
	IcePlateHistoryLimit int
	DiamondRate          float64

	// Biosphere.
	PlantGrowthFactor      float64
	MoistureAdjustmentRate float64
	AreaAdjustmentRate     float64
	SuitabilityFalloff     float64
	HumidityFalloff        float64
	MaxBiomes              int
	FallbackO2             float64 // percentage points per day
	FallbackCO2            float64
	FallbackCH4            float64

	// Interfaces.
	CO2DissolutionRate float64
	CO2OutgasTemp      float64
	CO2OutgasRate      float64
	BaseRainfall       float64 // mm/yr at saturation over a water world
	SoilErosionPenalty float64
}

// DefaultConfig returns the standard simulator settings.
func DefaultConfig() Config {
	return Config{
		Materials:   catalog.Default(),
		Phases:      catalog.DefaultPhaseTable(),
		MolarMasses: catalog.DefaultMolarMasses(),

		GreenhouseIterations: 100,
		AtmosphericLoss:      1e5,
		DustDecay:            0.1,

		EvaporationCoefficient: 0.001,
		PrecipitationBase:      0.01,
		PrecipitationPerKelvin: 0.001,
		PrecipitationShares: map[planet.ReservoirKind]float64{
			planet.KindOcean: 0.7,
			planet.KindLake:  0.2,
			planet.KindRiver: 0.1,
		},
		DustWashout:       0.05,
		IceMeltFraction:   0.01,
		MeltVaporFraction: 0.01,

		EarthquakeChance:  0.1,
		EruptionChance:    0.1,
		OceanEruptionOdds: 0.5,
		PlateStep:         0.05,
		PlateHistoryLimit: 100,

		FreezeSpan:         50,
		FreezeFraction:     0.5,
		FreezeMinPercent:   0.1,
		ReleaseCoefficient: 1e-4,
		ReleaseCap:         0.01,

		CryovolcanismChance:  0.1,
		IcePlateStep:         0.05,
		IcePlateHistoryLimit: 10,
		DiamondRate:          0.005,

		PlantGrowthFactor:      0.1,
		MoistureAdjustmentRate: 0.01,
		AreaAdjustmentRate:     0.05,
		SuitabilityFalloff:     20,
		HumidityFalloff:        30,
		MaxBiomes:              10,
		FallbackO2:             0.00001,
		FallbackCO2:            0.00001,
		FallbackCH4:            0.000001,

		CO2DissolutionRate: 1e-6,
		CO2OutgasTemp:      303.15,
		CO2OutgasRate:      0.01,
		BaseRainfall:       1000,
		SoilErosionPenalty: 0.1,
	}
}

// resolveGas maps a compound name to its atmospheric key and molar mass.
func (c Config) resolveGas(name string) (key string, molarMass float64, ok bool) {
	if c.Materials != nil {
		if m, found := c.Materials.Find(name); found {
			return m.Key(), m.MolarMass, true
		}
	}
	if mm, found := c.MolarMasses[name]; found {
		return name, mm, true
	}
	return "", 0, false
}

// molarMass returns the molar mass of an atmospheric key, falling back to
// the mean air value when nothing knows the gas.
func (c Config) molarMass(key string) float64 {
	if mm, ok := c.MolarMasses[key]; ok {
		return mm
	}
	if _, mm, ok := c.resolveGas(key); ok && mm > 0 {
		return mm
	}
	slog.Warn("unknown molar mass, using fallback", "gas", key, "molar_mass", catalog.FallbackMolarMass)
	return catalog.FallbackMolarMass
}

// addGas adds mass kg of an atmospheric key with its resolved molar mass.
func (c Config) addGas(a *planet.Atmosphere, key string, mass float64) {
	if a == nil || mass <= 0 {
		return
	}
	mm := 0.0
	if g := a.Gas(key); g == nil || g.MolarMass <= 0 {
		mm = c.molarMass(key)
	}
	a.AddGas(key, mass, mm)
}
