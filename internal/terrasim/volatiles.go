package terrasim

import (
	"log/slog"
	"math"

	"github.com/talgya/terra-sim/internal/planet"
)

// VolatilePhaseTransitions moves volatiles between the atmosphere and
// geosphere storage as the surface crosses their freezing points.
type VolatilePhaseTransitions struct {
	cfg Config
}

// NewVolatilePhaseTransitions creates the volatile cycle service.
func NewVolatilePhaseTransitions(cfg Config) *VolatilePhaseTransitions {
	return &VolatilePhaseTransitions{cfg: cfg}
}

// Simulate releases warm stored volatiles, then freezes cold gases out.
// It needs both an atmosphere and a geosphere.
func (v *VolatilePhaseTransitions) Simulate(t *Tick, b *planet.CelestialBody) {
	a, g := b.Atmosphere, b.Geosphere
	if a == nil || g == nil {
		return
	}
	temp := b.SurfaceTemperature
	v.release(t, b, a, g, temp)
	v.freeze(t, b, a, g, temp)
}

// ReleaseFactor is the fraction of a stored volatile released per tick at
// temp above threshold. It grows with temperature up to ReleaseCap.
func (v *VolatilePhaseTransitions) ReleaseFactor(temp, threshold float64) float64 {
	if temp <= threshold {
		return 0
	}
	return math.Min((temp-threshold)*v.cfg.ReleaseCoefficient, v.cfg.ReleaseCap)
}

func (v *VolatilePhaseTransitions) release(t *Tick, b *planet.CelestialBody, a *planet.Atmosphere, g *planet.Geosphere, temp float64) {
	for _, compound := range g.StoredCompounds() {
		factor := v.ReleaseFactor(temp, v.cfg.Phases.FreezingPoint(compound))
		if factor == 0 {
			continue
		}
		released := g.ReleaseVolatile(compound, g.StoredVolatile(compound)*factor)
		if released <= 0 {
			continue
		}
		v.cfg.addGas(a, compound, released)
		t.emit(b.Name, CategoryRelease, map[string]any{"gas": compound, "mass": released},
			"%s released %.3g kg of stored %s", b.Name, released, compound)
	}
}

func (v *VolatilePhaseTransitions) freeze(t *Tick, b *planet.CelestialBody, a *planet.Atmosphere, g *planet.Geosphere, temp float64) {
	gases := make([]string, 0, len(a.Gases))
	for _, gas := range a.Gases {
		gases = append(gases, gas.Name)
	}

	for _, name := range gases {
		gas := a.Gas(name)
		if gas == nil {
			continue
		}
		fp := v.cfg.Phases.FreezingPoint(name)
		if temp >= fp {
			continue
		}
		factor := math.Min((fp-temp)/v.cfg.FreezeSpan, 1) * v.cfg.FreezeFraction
		amount := gas.Mass * factor
		remainder := gas.Mass - amount
		if a.TotalMass > 0 && remainder/a.TotalMass*100 < v.cfg.FreezeMinPercent {
			amount = gas.Mass
		}

		frozen := a.RemoveGas(name, amount)
		if frozen <= 0 {
			continue
		}
		location := planet.LocationSurfaceIce
		if name == "H2O" {
			location = planet.LocationPolarCaps
		}
		g.UpdateVolatileStore(name, location, frozen)

		slog.Debug("volatile froze", "body", b.Name, "gas", name, "mass", frozen, "location", location)
		t.emit(b.Name, CategoryFreeze, map[string]any{"gas": name, "mass": frozen, "location": location},
			"%.3g kg of %s froze out at %s on %s", frozen, name, location, b.Name)
	}
}
