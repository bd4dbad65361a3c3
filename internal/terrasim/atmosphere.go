package terrasim

import (
	"math"

	"github.com/talgya/terra-sim/internal/phys"
	"github.com/talgya/terra-sim/internal/planet"
)

// GreenhouseInput is the state the greenhouse solver reads. Pressures are
// in bar.
type GreenhouseInput struct {
	Albedo        float64
	SolarConstant float64
	Pressure      float64
	CO2           float64
	CH4           float64
}

// GreenhouseResult holds the solver's temperatures in kelvin.
type GreenhouseResult struct {
	Effective float64 // Tb
	Surface   float64 // Ts
	Polar     float64 // Tp
	Tropic    float64 // Tt
	Vapor     float64 // pH2O at Ts, bar
}

// SolveGreenhouse runs the fixed-point greenhouse iteration. Each pass uses
// the surface temperature from the pass before, starting from Tb, for
// exactly iterations passes. Albedo is clamped to [0,1].
func SolveGreenhouse(in GreenhouseInput, iterations int) GreenhouseResult {
	absorbed := (1 - clamp(in.Albedo, 0, 1)) * math.Max(in.SolarConstant, 0)
	tb := math.Pow(absorbed/(4*phys.StefanBoltzmann), 0.25)
	res := GreenhouseResult{Effective: tb, Surface: tb, Polar: tb}

	ts := tb
	for i := 0; i < iterations; i++ {
		pH2O := vaporPressure(ts)
		ptot := in.Pressure + pH2O
		tauCO2 := 0.9 * math.Pow(ptot, 0.45) * math.Pow(in.CO2, 0.11)
		tauH2O := math.Pow(pH2O, 0.3)
		tauCH4 := 0.5 * math.Pow(in.CH4, 0.278)

		ts = tb * math.Pow(1+tauCO2+tauH2O+tauCH4, 0.25)
		res.Polar = ts - 75/(1+5*ptot)
		res.Vapor = pH2O
	}
	res.Surface = ts
	res.Tropic = ts * 1.1
	return res
}

// vaporPressure is the saturated water vapor pressure at t, bar.
func vaporPressure(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return phys.VaporRelativeHumidity * phys.VaporReferencePressure *
		math.Exp(-phys.VaporLatentHeat/(phys.GasConstant*t))
}

// AtmosphereSimulator updates pressure, temperatures, escape and dust.
type AtmosphereSimulator struct {
	cfg Config
}

// NewAtmosphereSimulator creates an AtmosphereSimulator.
func NewAtmosphereSimulator(cfg Config) *AtmosphereSimulator {
	return &AtmosphereSimulator{cfg: cfg}
}

// Simulate advances b's atmosphere by one tick.
func (s *AtmosphereSimulator) Simulate(t *Tick, b *planet.CelestialBody) {
	a := b.Atmosphere
	if a == nil {
		return
	}

	a.UpdatePressure(b.Gravity, b.Radius)

	if b.SolarConstant > 0 {
		res := SolveGreenhouse(GreenhouseInput{
			Albedo:        b.Albedo,
			SolarConstant: b.SolarConstant,
			Pressure:      a.Pressure / phys.PascalsPerBar,
			CO2:           a.PartialPressure("CO2") / phys.PascalsPerBar,
			CH4:           a.PartialPressure("CH4") / phys.PascalsPerBar,
		}, s.cfg.GreenhouseIterations)

		b.SurfaceTemperature = res.Surface
		a.Temperature = res.Surface
		a.EffectiveTemperature = res.Effective
		a.GreenhouseTemperature = res.Surface
		a.PolarTemperature = res.Polar
		a.TropicTemperature = res.Tropic
	} else {
		a.Temperature = b.SurfaceTemperature
		a.EffectiveTemperature = b.SurfaceTemperature
		a.GreenhouseTemperature = b.SurfaceTemperature
		a.PolarTemperature = b.SurfaceTemperature
		a.TropicTemperature = b.SurfaceTemperature
	}

	a.RemoveProportionally(s.cfg.AtmosphericLoss * t.days())
	a.DecreaseDust(s.cfg.DustDecay)
}
