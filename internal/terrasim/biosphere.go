package terrasim

import (
	"log/slog"
	"math"

	"github.com/talgya/terra-sim/internal/planet"
)

const earthSolarConstant = 1361.0

// BiosphereSimulator runs habitability, population, vegetation, biome
// balance and the atmospheric effects of life.
type BiosphereSimulator struct {
	cfg Config
}

// NewBiosphereSimulator creates a BiosphereSimulator.
func NewBiosphereSimulator(cfg Config) *BiosphereSimulator {
	return &BiosphereSimulator{cfg: cfg}
}

// Simulate advances b's biosphere by t.Days days.
func (s *BiosphereSimulator) Simulate(t *Tick, b *planet.CelestialBody) {
	bio := b.Biosphere
	if bio == nil {
		return
	}
	days := t.days()

	tropic, polar := zoneTemperatures(b)
	bio.HabitableRatio, bio.IceLatitude = Habitability(tropic, polar)

	s.trackPopulations(bio, days)
	s.growVegetation(b, bio, (tropic+polar)/2)
	s.balanceBiomes(b, bio)
	s.influenceAtmosphere(b, bio, days)

	bio.BiodiversityIndex = s.biodiversity(bio)
}

// Habitability returns the habitable surface fraction and the latitude of
// the ice line in radians.
func Habitability(tropic, polar float64) (ratio, iceLatitude float64) {
	const freezing = 273.0
	switch {
	case tropic > freezing && polar < freezing:
		ratio = math.Pow((tropic-freezing)/(tropic-polar), 0.666667)
		ratio = math.Min(ratio, 1)
		return ratio, math.Asin(ratio)
	case polar > freezing:
		return 1, math.Asin(1)
	default:
		return 0, 0
	}
}

// zoneTemperatures reads tropic and polar temperatures from the atmosphere,
// or estimates them from the surface when there is none.
func zoneTemperatures(b *planet.CelestialBody) (tropic, polar float64) {
	if a := b.Atmosphere; a != nil && a.TropicTemperature > 0 {
		return a.TropicTemperature, a.PolarTemperature
	}
	return b.SurfaceTemperature * 1.1, b.SurfaceTemperature - 75
}

func (s *BiosphereSimulator) trackPopulations(bio *planet.Biosphere, days float64) {
	for _, lf := range bio.LifeForms {
		change := (lf.ReproductionRate - lf.MortalityRate) * float64(lf.Population) * 0.01 * days
		lf.Population = saturatePopulation(math.Floor(float64(lf.Population) + change))
	}
}

// maxPopulation is 2^63, the first float64 past math.MaxInt64.
const maxPopulation = float64(1 << 63)

// saturatePopulation converts n to a count clamped to [0, MaxInt64].
func saturatePopulation(n float64) int64 {
	switch {
	case n <= 0 || math.IsNaN(n):
		return 0
	case n >= maxPopulation:
		return math.MaxInt64
	}
	return int64(n)
}

func (s *BiosphereSimulator) growVegetation(b *planet.CelestialBody, bio *planet.Biosphere, meanTemp float64) {
	light := lightAvailability(b)
	for _, bm := range bio.Biomes {
		suit := rangeSuitability(bm.TemperatureRange, meanTemp)
		moisture := clamp(bm.Moisture, 0.1, 1)
		growth := light * suit * moisture * s.cfg.PlantGrowthFactor
		bm.VegetationCover = math.Min(bm.VegetationCover+growth*(1-bm.VegetationCover), 1)
	}
}

// lightAvailability is absorbed insolation relative to Earth, dimmed by dust.
func lightAvailability(b *planet.CelestialBody) float64 {
	light := b.SolarConstant / earthSolarConstant * (1 - clamp(b.Albedo, 0, 1))
	if b.Atmosphere != nil {
		light *= 1 - clamp(b.Atmosphere.Dust, 0, 1)
	}
	return math.Max(light, 0)
}

// rangeSuitability is 1 at the middle of r, falling to 0 at its edges and
// outside it.
func rangeSuitability(r [2]float64, temp float64) float64 {
	lo, hi := r[0], r[1]
	if hi <= lo || temp < lo || temp > hi {
		return 0
	}
	half := (hi - lo) / 2
	return clamp(1-math.Abs(temp-(lo+half))/half, 0, 1)
}

// falloffSuitability is 1 inside r and decays linearly with distance outside.
func falloffSuitability(r [2]float64, v, falloff float64) float64 {
	if v >= r[0] && v <= r[1] {
		return 1
	}
	dist := math.Min(math.Abs(v-r[0]), math.Abs(v-r[1]))
	return math.Max(1-dist/falloff, 0)
}

func (s *BiosphereSimulator) balanceBiomes(b *planet.CelestialBody, bio *planet.Biosphere) {
	if len(bio.Biomes) == 0 {
		return
	}
	water := 0.0
	if b.Hydrosphere != nil {
		water = b.Hydrosphere.State.Liquid
	}

	suitability := make([]float64, len(bio.Biomes))
	total := 0.0
	for i, bm := range bio.Biomes {
		temp := falloffSuitability(bm.TemperatureRange, b.SurfaceTemperature, s.cfg.SuitabilityFalloff)
		hum := falloffSuitability(bm.HumidityRange, water, s.cfg.HumidityFalloff)
		suitability[i] = (temp + hum) / 2
		total += suitability[i]
	}

	for i, bm := range bio.Biomes {
		var target float64
		switch bm.ClimateType {
		case "tropical", "temperate_wet":
			target = water / 100 * 0.9
		case "arid", "desert":
			target = water / 100 * 0.2
		default:
			target = water / 100 * 0.5
		}
		bm.Moisture = clamp(bm.Moisture+(target-bm.Moisture)*s.cfg.MoistureAdjustmentRate, 0, 1)

		area := 100 / float64(len(bio.Biomes))
		if total > 0 {
			goal := suitability[i] / total * 100
			area = bm.AreaPercentage + (goal-bm.AreaPercentage)*s.cfg.AreaAdjustmentRate
		}
		bm.AreaPercentage = clamp(area, 5, 95)
	}

	sum := 0.0
	for _, bm := range bio.Biomes {
		sum += bm.AreaPercentage
	}
	if sum > 0 && (sum < 99 || sum > 101) {
		for _, bm := range bio.Biomes {
			bm.AreaPercentage *= 100 / sum
		}
	}
}

// lifeEffects sums per-day atmospheric effects in percentage points.
type lifeEffects struct {
	o2, co2, ch4, n2 float64
	population       int64
	species          int
}

func collectLifeEffects(bio *planet.Biosphere) lifeEffects {
	var e lifeEffects
	for _, lf := range bio.LifeForms {
		if lf.Population <= 0 {
			continue
		}
		billions := float64(lf.Population) / 1e9
		e.o2 += lf.O2Production * billions
		e.co2 += lf.CO2Consumption * billions
		e.ch4 += lf.CH4Production * billions
		e.n2 += lf.N2Fixation * billions
		e.population += lf.Population
		e.species++
	}
	return e
}

func (s *BiosphereSimulator) influenceAtmosphere(b *planet.CelestialBody, bio *planet.Biosphere, days float64) {
	a := b.Atmosphere
	if a == nil || a.TotalMass <= 0 {
		return
	}

	var o2, co2, ch4, n2 float64
	if e := collectLifeEffects(bio); e.population > 0 {
		o2, co2, ch4, n2 = e.o2*days, -e.co2*days, e.ch4*days, -e.n2*days
	} else {
		o2 = s.cfg.FallbackO2 * days
		co2 = -s.cfg.FallbackCO2 * days
		ch4 = s.cfg.FallbackCH4 * days
	}

	if n := len(bio.Biomes); n > 0 {
		factor := clamp(float64(n)/5, 0.1, 2)
		o2 *= factor
		co2 *= factor
	}

	total := a.TotalMass
	s.applyPercentDelta(a, "O2", o2, total)
	s.applyPercentDelta(a, "CO2", co2, total)
	s.applyPercentDelta(a, "CH4", ch4, total)
	s.applyPercentDelta(a, "N2", n2, total)

	slog.Debug("biosphere atmospheric effect",
		"o2_pp", o2, "co2_pp", co2, "ch4_pp", ch4, "n2_pp", n2,
		"o2_percent", gasPercent(a, "O2"),
	)
}

// applyPercentDelta converts a percentage-point change into a mass change
// against total and applies it, never taking more than the gas holds.
func (s *BiosphereSimulator) applyPercentDelta(a *planet.Atmosphere, key string, delta, total float64) {
	mass := delta / 100 * total
	switch {
	case mass > 0:
		s.cfg.addGas(a, key, mass)
	case mass < 0:
		a.RemoveGas(key, -mass)
	}
}

func (s *BiosphereSimulator) biodiversity(bio *planet.Biosphere) float64 {
	if s.cfg.MaxBiomes <= 0 {
		return 0
	}
	names := make(map[string]struct{}, len(bio.Biomes))
	for _, bm := range bio.Biomes {
		names[bm.Name] = struct{}{}
	}
	return float64(len(names)) / float64(s.cfg.MaxBiomes)
}

func gasPercent(a *planet.Atmosphere, key string) float64 {
	if g := a.Gas(key); g != nil {
		return g.Percentage
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
