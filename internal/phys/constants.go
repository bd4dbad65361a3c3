// Package phys holds the physical constants shared by every sphere simulator.
// Values are SI unless the name says otherwise.
package phys

// Universal constants.
const (
	// StefanBoltzmann is σ in W·m⁻²·K⁻⁴.
	StefanBoltzmann = 5.67e-8

	// Gravitational is G in m³·kg⁻¹·s⁻².
	Gravitational = 6.674e-11

	// GasConstant is R in J·mol⁻¹·K⁻¹.
	GasConstant = 8.314
)

// Reference bodies and unit conversions.
const (
	EarthMass    = 5.972e24 // kg
	EarthRadius  = 6.371e6  // m
	EarthDensity = 5.51     // g/cm³

	PascalsPerBar = 1e5
	PascalsPerAtm = 101325.0

	// SpaceTemperature is the surface temperature of a body with no star.
	SpaceTemperature = 3.0
)

// Water.
const (
	WaterFreezing = 273.15 // K
	WaterDensity  = 1000.0 // kg/m³
	IceDensity    = 917.0  // kg/m³
)

// Greenhouse model coefficients.
const (
	// VaporReferencePressure is P0 in the Clausius-Clapeyron vapor term, bar.
	VaporReferencePressure = 1.4e6

	// VaporLatentHeat is L in the same term, J/mol.
	VaporLatentHeat = 43655.0

	// VaporRelativeHumidity is the fixed humidity used by the solver.
	VaporRelativeHumidity = 0.7
)

// MetallicHydrogenPressure is the core pressure above which hydrogen becomes
// metallic. Core pressure is in the relative units returned by CorePressure.
const MetallicHydrogenPressure = 1.5e6

// CorePressure estimates core pressure from body mass, scaled so an
// Earth-mass body reads 1e6.
func CorePressure(mass float64) float64 {
	if mass <= 0 {
		return 0
	}
	return mass / EarthMass * 1e6
}
