package planet

import (
	"math"

	"github.com/talgya/terra-sim/internal/catalog"
)

// MinGasMass is the mass below which a gas record is dropped, kg.
const MinGasMass = 0.001

// Gas is one constituent of an atmosphere.
type Gas struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"` // of total atmospheric mass
	Mass       float64 `json:"mass"`       // kg
	MolarMass  float64 `json:"molar_mass"` // g/mol
}

// Atmosphere is a bulk, well-mixed gas envelope.
type Atmosphere struct {
	TotalMass        float64 `json:"total_mass"`  // kg
	Pressure         float64 `json:"pressure"`    // Pa
	Temperature      float64 `json:"temperature"` // K
	Dust             float64 `json:"dust"`        // 0..1
	RelativeHumidity float64 `json:"relative_humidity"`

	EffectiveTemperature  float64 `json:"effective_temperature"`
	GreenhouseTemperature float64 `json:"greenhouse_temperature"`
	PolarTemperature      float64 `json:"polar_temperature"`
	TropicTemperature     float64 `json:"tropic_temperature"`

	Gases []*Gas `json:"gases"`
}

// Gas returns the named gas or nil.
func (a *Atmosphere) Gas(name string) *Gas {
	for _, g := range a.Gases {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// GasMass returns the mass of the named gas, 0 when absent.
func (a *Atmosphere) GasMass(name string) float64 {
	if g := a.Gas(name); g != nil {
		return g.Mass
	}
	return 0
}

// AddGas adds mass kg of name, creating the record when missing.
// Non-positive masses are ignored.
func (a *Atmosphere) AddGas(name string, mass, molarMass float64) {
	mass = clampNonNegative(mass)
	if mass == 0 || name == "" {
		return
	}
	g := a.Gas(name)
	if g == nil {
		g = &Gas{Name: name, MolarMass: molarMass}
		a.Gases = append(a.Gases, g)
	}
	if g.MolarMass <= 0 {
		g.MolarMass = molarMass
	}
	g.Mass += mass
	a.Renormalize()
}

// RemoveGas removes up to mass kg of name and returns how much left the
// atmosphere. A record that falls under MinGasMass is deleted and its
// residue counted as removed.
func (a *Atmosphere) RemoveGas(name string, mass float64) float64 {
	mass = clampNonNegative(mass)
	g := a.Gas(name)
	if g == nil || mass == 0 {
		return 0
	}
	removed := math.Min(mass, g.Mass)
	g.Mass -= removed
	if g.Mass < MinGasMass {
		removed += g.Mass
		a.deleteGas(name)
	}
	a.Renormalize()
	return removed
}

// RemoveProportionally takes mass kg out of the atmosphere split by mass
// fraction and returns the amount actually removed.
func (a *Atmosphere) RemoveProportionally(mass float64) float64 {
	mass = clampNonNegative(mass)
	if mass == 0 || a.TotalMass <= 0 {
		return 0
	}
	total := a.TotalMass
	mass = math.Min(mass, total)
	removed := 0.0
	for _, g := range append([]*Gas(nil), a.Gases...) {
		removed += a.RemoveGas(g.Name, mass*g.Mass/total)
	}
	return removed
}

func (a *Atmosphere) deleteGas(name string) {
	for i, g := range a.Gases {
		if g.Name == name {
			a.Gases = append(a.Gases[:i], a.Gases[i+1:]...)
			return
		}
	}
}

// Renormalize recomputes total mass and every percentage from gas masses.
func (a *Atmosphere) Renormalize() {
	total := 0.0
	for _, g := range a.Gases {
		g.Mass = clampNonNegative(g.Mass)
		total += g.Mass
	}
	a.TotalMass = total
	for _, g := range a.Gases {
		if total > 0 {
			g.Percentage = g.Mass / total * 100
		} else {
			g.Percentage = 0
		}
	}
}

// UpdatePressure sets surface pressure from the column weight, P = M·g/4πr².
func (a *Atmosphere) UpdatePressure(gravity, radius float64) {
	if radius <= 0 || gravity <= 0 {
		a.Pressure = 0
		return
	}
	a.Pressure = a.TotalMass * gravity / (4 * math.Pi * radius * radius)
}

// IncreaseDust raises the dust index, capped at 1.
func (a *Atmosphere) IncreaseDust(amount float64) {
	a.Dust = clamp(a.Dust+clampNonNegative(amount), 0, 1)
}

// DecreaseDust lowers the dust index, floored at 0.
func (a *Atmosphere) DecreaseDust(amount float64) {
	a.Dust = clamp(a.Dust-clampNonNegative(amount), 0, 1)
}

// MoleFraction returns the mole fraction of the named gas.
func (a *Atmosphere) MoleFraction(name string) float64 {
	var moles, target float64
	for _, g := range a.Gases {
		mm := g.MolarMass
		if mm <= 0 {
			mm = catalog.FallbackMolarMass
		}
		n := g.Mass / mm
		moles += n
		if g.Name == name {
			target = n
		}
	}
	if moles == 0 {
		return 0
	}
	return target / moles
}

// PartialPressure returns the partial pressure of the named gas in Pa.
func (a *Atmosphere) PartialPressure(name string) float64 {
	return a.Pressure * a.MoleFraction(name)
}

// PercentageSum returns Σ gas percentages.
func (a *Atmosphere) PercentageSum() float64 {
	sum := 0.0
	for _, g := range a.Gases {
		sum += g.Percentage
	}
	return sum
}
