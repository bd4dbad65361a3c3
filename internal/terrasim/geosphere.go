package terrasim

import (
	"log/slog"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/talgya/terra-sim/internal/phys"
	"github.com/talgya/terra-sim/internal/planet"
)

// eruptionGas is one volcanic gas and its weight in an eruption.
type eruptionGas struct {
	name   string
	weight float64
}

// Volcanic gas mix, in emission order.
var eruptionGases = []eruptionGas{
	{"carbon_dioxide", 1.0},
	{"sulfur_dioxide", 0.9},
	{"water", 1.5},
	{"hydrogen_chloride", 0.7},
}

// GeosphereSimulator runs tectonics, weathering, erosion and volcanism.
type GeosphereSimulator struct {
	cfg Config
}

// NewGeosphereSimulator creates a GeosphereSimulator.
func NewGeosphereSimulator(cfg Config) *GeosphereSimulator {
	return &GeosphereSimulator{cfg: cfg}
}

// Simulate advances b's geosphere by one tick.
func (s *GeosphereSimulator) Simulate(t *Tick, b *planet.CelestialBody) {
	g := b.Geosphere
	if g == nil {
		return
	}
	mult := g.ActivityMultiplier()

	s.tectonics(t, b, g)
	s.weathering(b, g, mult)
	s.erosion(g, mult)
	if t.RNG != nil && t.RNG.Chance(s.cfg.EruptionChance) {
		s.erupt(t, b, mult)
	}
}

func (s *GeosphereSimulator) tectonics(t *Tick, b *planet.CelestialBody, g *planet.Geosphere) {
	if !g.TectonicActivity || len(g.Plates) == 0 || t.RNG == nil {
		return
	}
	step := t.RNG.Range(-s.cfg.PlateStep, s.cfg.PlateStep)
	for i := range g.Plates {
		g.Plates[i].Drift += step
	}
	g.AppendPlateSnapshot(t.Day, s.cfg.PlateHistoryLimit)

	if t.RNG.Chance(s.cfg.EarthquakeChance) {
		magnitude := 2 + g.GeologicalActivity*0.4 + t.RNG.Float64()*2
		t.emit(b.Name, CategoryEarthquake, map[string]any{"magnitude": magnitude},
			"Earthquake of magnitude %.1f on %s", magnitude, b.Name)
	}
}

// weathering updates the weathering rate and the regolith it produces.
func (s *GeosphereSimulator) weathering(b *planet.CelestialBody, g *planet.Geosphere, mult float64) {
	pressureFactor, tempFactor := 0.0, -0.5
	if a := b.Atmosphere; a != nil {
		pressureFactor = a.Pressure / phys.PascalsPerBar * 0.5
		tempFactor = (a.Temperature - 273) * 0.01
	}
	waterFactor := 0.0
	if h := b.Hydrosphere; h != nil {
		waterFactor = h.State.Liquid * 0.01
	}
	rate := 0.1 * (1 + pressureFactor) * (1 + tempFactor) * (1 + waterFactor) * mult
	g.WeatheringRate = math.Max(rate, 0)

	g.RegolithDepth += g.WeatheringRate * 0.01
	size := g.RegolithParticleSize
	if size <= 0 {
		size = 1
	}
	g.RegolithParticleSize = math.Max(size*(1-g.WeatheringRate*0.001), 0.01)
}

func (s *GeosphereSimulator) erosion(g *planet.Geosphere, mult float64) {
	rate := 0.1 * (g.AverageRainfall / 100) * (1 - g.VegetationCover/100) * mult
	g.ErosionRate = math.Max(rate, 0)
}

// erupt emits volcanic gases and dust. Bodies without an atmosphere have
// nothing to erupt into.
func (s *GeosphereSimulator) erupt(t *Tick, b *planet.CelestialBody, mult float64) {
	a := b.Atmosphere
	if a == nil {
		return
	}

	emitted := 0.0
	for _, eg := range eruptionGases {
		amount := t.RNG.Range(100, 500) * eg.weight * mult
		key, _, ok := s.cfg.resolveGas(eg.name)
		if !ok {
			slog.Warn("eruption gas not in catalog, skipped", "gas", eg.name, "body", b.Name)
			continue
		}
		s.cfg.addGas(a, key, amount)
		emitted += amount
	}
	a.IncreaseDust(t.RNG.Range(0.01, 0.05) * mult)

	boiled := 0.0
	if h := b.Hydrosphere; h != nil && t.RNG.Chance(s.cfg.OceanEruptionOdds) {
		if ocean := firstReservoir(h, planet.KindOcean); ocean != nil {
			boiled = h.RemoveMass(ocean, t.RNG.Range(100, 500)*mult)
			s.cfg.addGas(a, "H2O", boiled)
			h.RecalculateTotalMass()
		}
	}

	t.emit(b.Name, CategoryEruption, map[string]any{"mass": emitted, "boiled": boiled},
		"Volcanic eruption on %s released %s of gas", b.Name, humanize.SIWithDigits(emitted*1000, 3, "g"))
}
