package catalog

// PhaseTable maps gas formulas to freezing points in kelvin. The same
// thresholds gate release of stored volatiles back into the atmosphere.
type PhaseTable struct {
	Freezing map[string]float64
	Default  float64
}

// DefaultFreezingPoint applies to gases without a catalog freezing point.
const DefaultFreezingPoint = 100.0

// DefaultPhaseTable returns the freezing points of the embedded catalog.
func DefaultPhaseTable() PhaseTable {
	return NewPhaseTable(Default(), DefaultFreezingPoint)
}

// NewPhaseTable collects the freezing points carried by c, keyed the way
// simulators store each material.
func NewPhaseTable(c *Catalog, def float64) PhaseTable {
	p := PhaseTable{Freezing: make(map[string]float64), Default: def}
	for _, m := range c.materials {
		if m.FreezingPoint > 0 {
			p.Freezing[m.Key()] = m.FreezingPoint
		}
	}
	return p
}

// FreezingPoint returns the freezing point of gas, or the table default.
func (p PhaseTable) FreezingPoint(gas string) float64 {
	if fp, ok := p.Freezing[gas]; ok {
		return fp
	}
	return p.Default
}

// FallbackMolarMass is used when neither the caller nor the catalog supplies
// a molar mass, in g/mol.
const FallbackMolarMass = 29.0

// DefaultMolarMasses covers the common atmospheric gases when the catalog
// is unavailable.
func DefaultMolarMasses() map[string]float64 {
	return map[string]float64{
		"CO2": 44.01,
		"N2":  28.01,
		"O2":  32.0,
		"CO":  28.01,
		"Ar":  39.95,
		"He":  4.00,
		"H2O": 18.02,
		"CH4": 16.04,
	}
}
