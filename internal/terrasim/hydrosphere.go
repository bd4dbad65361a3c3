package terrasim

import (
	"math"

	"github.com/talgya/terra-sim/internal/phys"
	"github.com/talgya/terra-sim/internal/planet"
)

// HydrosphereSimulator runs the surface water cycle against the atmosphere.
type HydrosphereSimulator struct {
	cfg Config
}

// NewHydrosphereSimulator creates a HydrosphereSimulator.
func NewHydrosphereSimulator(cfg Config) *HydrosphereSimulator {
	return &HydrosphereSimulator{cfg: cfg}
}

// Simulate advances b's hydrosphere by one tick. It needs both an
// atmosphere and a hydrosphere.
func (s *HydrosphereSimulator) Simulate(t *Tick, b *planet.CelestialBody) {
	a, h := b.Atmosphere, b.Hydrosphere
	if a == nil || h == nil {
		return
	}
	surface := b.SurfaceTemperature

	for _, r := range h.Reservoirs {
		r.Temperature = surface - 5 - math.Log(r.Volume+1)
	}

	s.evaporate(h, a, surface)
	s.precipitate(h, a)
	s.meltIce(h, a, surface)

	h.SetStateDistribution(h.IceMass(), h.LiquidMass(), a.GasMass("H2O"))
	h.RecalculateTotalMass()
}

// Evaporation from each liquid reservoir, capped at its volume.
func (s *HydrosphereSimulator) evaporate(h *planet.Hydrosphere, a *planet.Atmosphere, surface float64) float64 {
	total := 0.0
	for _, r := range h.LiquidReservoirs() {
		vol := r.Volume * math.Max(0, surface-r.Temperature) * s.cfg.EvaporationCoefficient
		vol = math.Min(vol, r.Volume)
		total += h.RemoveMass(r, vol*r.Density)
	}
	s.cfg.addGas(a, "H2O", total)
	return total
}

// Precipitation returns vapor to liquid reservoirs, split by kind.
func (s *HydrosphereSimulator) precipitate(h *planet.Hydrosphere, a *planet.Atmosphere) float64 {
	liquid := h.LiquidReservoirs()
	vapor := a.GasMass("H2O")
	if len(liquid) == 0 || vapor <= 0 {
		return 0
	}

	rate := s.cfg.PrecipitationBase + math.Max(0, a.Temperature-phys.WaterFreezing)*s.cfg.PrecipitationPerKelvin
	amount := math.Min(vapor*rate, vapor)
	before := a.TotalMass
	fell := a.RemoveGas("H2O", amount)
	if fell <= 0 {
		return 0
	}

	s.distribute(h, liquid, fell)
	if before > 0 {
		a.DecreaseDust(s.cfg.DustWashout * fell / before)
	}
	return fell
}

// distribute spreads mass over the liquid reservoirs using the configured
// kind shares, renormalised over the kinds present. Within a kind mass is
// split by volume.
func (s *HydrosphereSimulator) distribute(h *planet.Hydrosphere, liquid []*planet.Reservoir, mass float64) {
	byKind := make(map[planet.ReservoirKind][]*planet.Reservoir)
	shareTotal := 0.0
	for _, r := range liquid {
		if _, seen := byKind[r.Kind]; !seen {
			shareTotal += s.cfg.PrecipitationShares[r.Kind]
		}
		byKind[r.Kind] = append(byKind[r.Kind], r)
	}
	if shareTotal <= 0 {
		h.AddMass(liquid[0], mass)
		return
	}

	for kind, rs := range byKind {
		share := s.cfg.PrecipitationShares[kind] / shareTotal
		if share <= 0 {
			continue
		}
		portion := mass * share
		vol := 0.0
		for _, r := range rs {
			vol += r.Volume
		}
		for _, r := range rs {
			if vol > 0 {
				h.AddMass(r, portion*r.Volume/vol)
			} else {
				h.AddMass(r, portion/float64(len(rs)))
			}
		}
	}
}

// Ice melt above freezing, at most IceMeltFraction of the ice per tick. A
// small part sublimates straight to vapor; the rest joins the oceans.
func (s *HydrosphereSimulator) meltIce(h *planet.Hydrosphere, a *planet.Atmosphere, surface float64) float64 {
	if surface <= phys.WaterFreezing {
		return 0
	}
	ice := h.IceMass()
	if ice <= 0 {
		return 0
	}
	target := ice * s.cfg.IceMeltFraction
	melted := 0.0
	for _, r := range h.OfKind(planet.KindIce) {
		melted += h.RemoveMass(r, target*r.Mass()/ice)
	}

	vapor := melted * s.cfg.MeltVaporFraction
	s.cfg.addGas(a, "H2O", vapor)

	dest := firstReservoir(h, planet.KindOcean)
	if dest == nil {
		if liquid := h.LiquidReservoirs(); len(liquid) > 0 {
			dest = liquid[0]
		} else {
			dest = h.AddReservoir("meltwater", planet.KindLake, 0, surface)
		}
	}
	h.AddMass(dest, melted-vapor)
	return melted
}

func firstReservoir(h *planet.Hydrosphere, kind planet.ReservoirKind) *planet.Reservoir {
	if rs := h.OfKind(kind); len(rs) > 0 {
		return rs[0]
	}
	return nil
}
