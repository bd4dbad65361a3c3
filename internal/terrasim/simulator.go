package terrasim

import (
	"github.com/talgya/terra-sim/internal/phys"
	"github.com/talgya/terra-sim/internal/planet"
)

// Simulator runs one tick of every sphere and interface on a body.
type Simulator struct {
	Atmosphere  *AtmosphereSimulator
	Hydrosphere *HydrosphereSimulator
	Biosphere   *BiosphereSimulator
	Geosphere   *GeosphereSimulator
	Exotic      *ExoticWorldSimulator

	AtmoHydro *AtmosphereHydrosphere
	Volatiles *VolatilePhaseTransitions
	BioGeo    *BiosphereGeosphere

	Initializer *GeosphereInitializer
}

// NewSimulator wires every simulator from one config.
func NewSimulator(cfg Config) *Simulator {
	geo := NewGeosphereSimulator(cfg)
	return &Simulator{
		Atmosphere:  NewAtmosphereSimulator(cfg),
		Hydrosphere: NewHydrosphereSimulator(cfg),
		Biosphere:   NewBiosphereSimulator(cfg),
		Geosphere:   geo,
		Exotic:      NewExoticWorldSimulator(cfg, geo),
		AtmoHydro:   NewAtmosphereHydrosphere(cfg),
		Volatiles:   NewVolatilePhaseTransitions(cfg),
		BioGeo:      NewBiosphereGeosphere(cfg),
		Initializer: NewGeosphereInitializer(cfg),
	}
}

// Tick advances b by one step. Missing spheres are skipped.
func (s *Simulator) Tick(t *Tick, b *planet.CelestialBody) {
	if b.SolarConstant <= 0 {
		b.SurfaceTemperature = phys.SpaceTemperature
	} else {
		b.SurfaceTemperature = b.EquilibriumTemperature()
		if b.Solid != nil {
			b.Gravity = b.SurfaceGravity()
		}
	}

	s.Atmosphere.Simulate(t, b)
	// Exotic bodies get the generic geosphere pass from the exotic pass.
	if b.Exotic == nil {
		s.Geosphere.Simulate(t, b)
	}
	s.Hydrosphere.Simulate(t, b)
	s.Biosphere.Simulate(t, b)

	s.AtmoHydro.Simulate(t, b)
	s.Volatiles.Simulate(t, b)
	s.BioGeo.Simulate(t, b)

	s.Exotic.Simulate(t, b)
}
