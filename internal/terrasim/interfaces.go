package terrasim

import (
	"math"

	"github.com/talgya/terra-sim/internal/phys"
	"github.com/talgya/terra-sim/internal/planet"
)

// AtmosphereHydrosphere couples humidity, condensation and ocean CO2.
type AtmosphereHydrosphere struct {
	cfg Config
}

// NewAtmosphereHydrosphere creates the atmosphere/hydrosphere interface.
func NewAtmosphereHydrosphere(cfg Config) *AtmosphereHydrosphere {
	return &AtmosphereHydrosphere{cfg: cfg}
}

// SaturationPressure returns the saturation vapor pressure of water at t in
// Pa (Bolton's approximation).
func SaturationPressure(t float64) float64 {
	if t <= 30 {
		return 0
	}
	c := t - phys.WaterFreezing
	return 611.2 * math.Exp(17.67*c/(c+243.5))
}

// Simulate runs the exchange. It needs both spheres.
func (x *AtmosphereHydrosphere) Simulate(t *Tick, b *planet.CelestialBody) {
	a, h := b.Atmosphere, b.Hydrosphere
	if a == nil || h == nil {
		return
	}
	a.UpdatePressure(b.Gravity, b.Radius)

	sat := SaturationPressure(b.SurfaceTemperature)
	rh := 0.0
	if sat > 0 {
		rh = a.PartialPressure("H2O") / sat
	}

	// Supersaturated vapor condenses into the liquid reservoirs.
	if rh > 1 {
		liquid := h.LiquidReservoirs()
		if len(liquid) > 0 {
			excess := a.GasMass("H2O") * (1 - 1/rh)
			condensed := a.RemoveGas("H2O", excess)
			dest := firstReservoir(h, planet.KindOcean)
			if dest == nil {
				dest = liquid[0]
			}
			h.AddMass(dest, condensed)
			a.UpdatePressure(b.Gravity, b.Radius)
		}
		rh = 1
	}
	a.RelativeHumidity = clamp(rh, 0, 1)

	liquidShare := h.State.Liquid / 100
	if co2 := a.GasMass("CO2"); co2 > 0 && liquidShare > 0 {
		dissolved := a.RemoveGas("CO2", co2*x.cfg.CO2DissolutionRate*liquidShare*t.days())
		h.DissolvedCO2 += dissolved
	}
	if b.SurfaceTemperature > x.cfg.CO2OutgasTemp && h.DissolvedCO2 > 0 {
		out := h.DissolvedCO2 * x.cfg.CO2OutgasRate
		h.DissolvedCO2 -= out
		x.cfg.addGas(a, "CO2", out)
	}

	if g := b.Geosphere; g != nil {
		g.AverageRainfall = x.cfg.BaseRainfall * a.RelativeHumidity * liquidShare
	}
	h.RecalculateTotalMass()
}

// BiosphereGeosphere couples soil, vegetation and erosion.
type BiosphereGeosphere struct {
	cfg Config
}

// NewBiosphereGeosphere creates the biosphere/geosphere interface.
func NewBiosphereGeosphere(cfg Config) *BiosphereGeosphere {
	return &BiosphereGeosphere{cfg: cfg}
}

// Simulate runs the exchange. It needs both spheres.
func (x *BiosphereGeosphere) Simulate(t *Tick, b *planet.CelestialBody) {
	bio, g := b.Biosphere, b.Geosphere
	if bio == nil || g == nil {
		return
	}
	days := t.days()

	improvement := 0.0
	for _, lf := range bio.LifeForms {
		if lf.Population > 0 {
			improvement += lf.SoilImprovement * float64(lf.Population) / 1e9
		}
	}
	bio.SetSoilHealth(bio.SoilHealth + (improvement-g.ErosionRate*x.cfg.SoilErosionPenalty)*days)

	g.VegetationCover = bio.VegetationCover()
}
