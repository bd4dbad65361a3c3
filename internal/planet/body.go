// Package planet defines the celestial body and the four spheres the
// simulators mutate in place.
package planet

import (
	"math"

	"github.com/google/uuid"

	"github.com/talgya/terra-sim/internal/phys"
)

// Body-type template keys. Anything else is treated as the default template.
const (
	TypeTerrestrial  = "terrestrial"
	TypeCarbonPlanet = "carbon_planet"
	TypeIceGiant     = "ice_giant"
	TypeGasGiant     = "gas_giant"
)

// CelestialBody is the root of the simulated graph. Absent spheres are nil.
type CelestialBody struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Type               string  `json:"type"`
	Mass               float64 `json:"mass"`    // kg
	Radius             float64 `json:"radius"`  // m
	Density            float64 `json:"density"` // g/cm³
	Gravity            float64 `json:"gravity"` // m/s²
	Albedo             float64 `json:"albedo"`
	SurfaceTemperature float64 `json:"surface_temperature"` // K
	SolarConstant      float64 `json:"solar_constant"`      // W/m², 0 when no star
	OceanWorld         bool    `json:"ocean_world"`

	Atmosphere  *Atmosphere  `json:"atmosphere,omitempty"`
	Hydrosphere *Hydrosphere `json:"hydrosphere,omitempty"`
	Biosphere   *Biosphere   `json:"biosphere,omitempty"`
	Geosphere   *Geosphere   `json:"geosphere,omitempty"`

	// Solid marks bodies whose gravity follows from mass and radius.
	Solid *Solidity `json:"solid,omitempty"`
	// Exotic marks bodies that get the specialised exotic-world processes.
	Exotic *ExoticProfile `json:"exotic,omitempty"`
}

// Solidity is the solid-body capability.
type Solidity struct{}

// ExoticProfile carries the inputs to exotic-world classification.
type ExoticProfile struct {
	PlanetType         string    `json:"planet_type,omitempty"`
	TemperatureRange   []float64 `json:"temperature_range,omitempty"` // [min, max] K
	PrimaryElements    []string  `json:"primary_elements,omitempty"`
	TidalLockingFactor float64   `json:"tidal_locking_factor"`
}

// NewBody creates a body with a fresh identifier.
func NewBody(name, bodyType string) *CelestialBody {
	return &CelestialBody{
		ID:   uuid.NewString(),
		Name: name,
		Type: bodyType,
	}
}

// SurfaceGravity returns G·M/r², or the stored gravity when radius is unset.
func (b *CelestialBody) SurfaceGravity() float64 {
	if b.Radius <= 0 || b.Mass <= 0 {
		return b.Gravity
	}
	return phys.Gravitational * b.Mass / (b.Radius * b.Radius)
}

// EquilibriumTemperature returns the radiative equilibrium temperature for
// the body's insolation and albedo, with albedo clamped to [0,1].
func (b *CelestialBody) EquilibriumTemperature() float64 {
	if b.SolarConstant <= 0 {
		return phys.SpaceTemperature
	}
	return math.Pow(b.SolarConstant*(1-clamp(b.Albedo, 0, 1))/(4*phys.StefanBoltzmann), 0.25)
}

// CorePressure is the relative core pressure used by phase rules.
func (b *CelestialBody) CorePressure() float64 {
	return phys.CorePressure(b.Mass)
}

// Range returns the exotic temperature range, defaulting to
// ±50 K around the surface temperature.
func (e *ExoticProfile) Range(surface float64) (lo, hi float64) {
	if e != nil && len(e.TemperatureRange) == 2 {
		return e.TemperatureRange[0], e.TemperatureRange[1]
	}
	return surface - 50, surface + 50
}

// Elements returns the primary elements, defaulting to silicate rock.
func (e *ExoticProfile) Elements() []string {
	if e == nil || len(e.PrimaryElements) == 0 {
		return []string{"Silicon", "Oxygen"}
	}
	return e.PrimaryElements
}

func clampNonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
