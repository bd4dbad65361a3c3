package terrasim

import (
	"log/slog"
	"slices"

	"github.com/talgya/terra-sim/internal/phys"
	"github.com/talgya/terra-sim/internal/planet"
)

// Exotic world classes.
const (
	ExoticIceGiant     = "ice_giant"
	ExoticHotJupiter   = "hot_jupiter"
	ExoticCarbonPlanet = "carbon_planet"
	ExoticTidalLocked  = "tidally_locked"
	ExoticSuperEarth   = "super_earth"
	ExoticTerrestrial  = "terrestrial"
)

// ClassifyExotic returns the exotic class of b. An explicit planet type
// wins; otherwise the first matching rule applies.
func ClassifyExotic(b *planet.CelestialBody) string {
	e := b.Exotic
	if e != nil && e.PlanetType != "" {
		return e.PlanetType
	}
	lo, hi := e.Range(b.SurfaceTemperature)
	elements := e.Elements()
	tidal := 0.0
	if e != nil {
		tidal = e.TidalLockingFactor
	}

	switch {
	case lo < 0 && hi < 0 && slices.Contains(elements, "Methane"):
		return ExoticIceGiant
	case lo > 300:
		return ExoticHotJupiter
	case slices.Contains(elements, "Carbon"):
		return ExoticCarbonPlanet
	case tidal > 0.8:
		return ExoticTidalLocked
	case b.Gravity > 15:
		return ExoticSuperEarth
	default:
		return ExoticTerrestrial
	}
}

// ExoticWorldSimulator runs class-specific processes, then the generic
// geosphere pass.
type ExoticWorldSimulator struct {
	cfg Config
	geo *GeosphereSimulator
}

// NewExoticWorldSimulator creates an ExoticWorldSimulator sharing geo for
// the generic pass.
func NewExoticWorldSimulator(cfg Config, geo *GeosphereSimulator) *ExoticWorldSimulator {
	return &ExoticWorldSimulator{cfg: cfg, geo: geo}
}

// Simulate runs the exotic pass for b. Non-exotic bodies are ignored.
func (s *ExoticWorldSimulator) Simulate(t *Tick, b *planet.CelestialBody) {
	if b.Exotic == nil {
		return
	}

	class := ClassifyExotic(b)
	switch class {
	case ExoticIceGiant:
		if t.RNG != nil && t.RNG.Chance(s.cfg.CryovolcanismChance) {
			s.cryovolcanism(t, b)
		}
		s.iceTectonics(t, b)
	case ExoticHotJupiter:
		s.metallicHydrogen(t, b)
	case ExoticCarbonPlanet:
		s.diamondFormation(t, b)
	default:
		slog.Debug("no exotic processes for class", "body", b.Name, "class", class)
	}

	s.geo.Simulate(t, b)
}

// cryovolcanism ejects methane gas, ammonia liquid and water ice.
func (s *ExoticWorldSimulator) cryovolcanism(t *Tick, b *planet.CelestialBody) {
	methane := t.RNG.Range(500, 1000)
	ammonia := t.RNG.Range(200, 500)
	ice := t.RNG.Range(1000, 2000)

	if a := b.Atmosphere; a != nil {
		if key, _, ok := s.cfg.resolveGas("Methane"); ok {
			s.cfg.addGas(a, key, methane)
		}
	}
	if h := b.Hydrosphere; h != nil {
		key := "Ammonia"
		if k, _, ok := s.cfg.resolveGas(key); ok {
			key = k
		}
		h.AddCompound(key, ammonia)
		h.RecalculateTotalMass()
	}
	if g := b.Geosphere; g != nil {
		g.AddMaterial(planet.LayerCrust, "Water Ice", planet.StateSolid, ice)
	}

	t.emit(b.Name, CategoryCryovolcanism,
		map[string]any{"methane": methane, "ammonia": ammonia, "water_ice": ice},
		"Cryovolcanic eruption on %s", b.Name)
}

// iceTectonics jitters ice plates by a fraction of a degree.
func (s *ExoticWorldSimulator) iceTectonics(t *Tick, b *planet.CelestialBody) {
	g := b.Geosphere
	if g == nil || len(g.Plates) == 0 || t.RNG == nil {
		return
	}
	step := s.cfg.IcePlateStep
	for i := range g.Plates {
		p := &g.Plates[i]
		p.Latitude = clamp(p.Latitude+t.RNG.Range(-step, step), -90, 90)
		p.Longitude = clamp(p.Longitude+t.RNG.Range(-step, step), -180, 180)
	}
	g.AppendPlateSnapshot(t.Day, s.cfg.IcePlateHistoryLimit)
}

// metallicHydrogen turns core and mantle hydrogen metallic under enough
// core pressure. The change is never reversed.
func (s *ExoticWorldSimulator) metallicHydrogen(t *Tick, b *planet.CelestialBody) {
	g := b.Geosphere
	if g == nil || b.CorePressure() < phys.MetallicHydrogenPressure {
		return
	}
	for _, layer := range []planet.Layer{planet.LayerCore, planet.LayerMantle} {
		m := g.Material(layer, "Hydrogen")
		if m == nil || m.State == planet.StateMetallic {
			continue
		}
		m.State = planet.StateMetallic
		t.emit(b.Name, CategoryMetallicHydrogen, map[string]any{"layer": string(layer)},
			"%s hydrogen on %s became metallic", layer, b.Name)
	}
}

// diamondFormation converts a share of mantle carbon to diamond.
func (s *ExoticWorldSimulator) diamondFormation(t *Tick, b *planet.CelestialBody) {
	g := b.Geosphere
	if g == nil {
		return
	}
	carbon := g.Material(planet.LayerMantle, "Carbon")
	if carbon == nil || carbon.Mass <= 0 {
		return
	}
	moved := g.TransferMass(planet.LayerMantle, "Carbon", "Diamond", planet.StateSolid, carbon.Mass*s.cfg.DiamondRate)
	if moved > 0 {
		if d := g.Material(planet.LayerMantle, "Diamond"); d != nil {
			d.State = planet.StateSolid
		}
		t.emit(b.Name, CategoryDiamond, map[string]any{"mass": moved},
			"%.3g kg of mantle carbon on %s became diamond", moved, b.Name)
	}
}
