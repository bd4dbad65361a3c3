package planet

import (
	"math"

	"github.com/talgya/terra-sim/internal/phys"
)

// ReservoirKind classifies a water body.
type ReservoirKind string

const (
	KindOcean ReservoirKind = "ocean"
	KindLake  ReservoirKind = "lake"
	KindRiver ReservoirKind = "river"
	KindIce   ReservoirKind = "ice"
	KindOther ReservoirKind = "other"
)

// Reservoir is a bulk body of water or ice.
type Reservoir struct {
	Name        string        `json:"name"`
	Kind        ReservoirKind `json:"kind"`
	Volume      float64       `json:"volume"`  // m³
	Density     float64       `json:"density"` // kg/m³
	Temperature float64       `json:"temperature"`
}

// Mass returns volume × density.
func (r *Reservoir) Mass() float64 {
	return r.Volume * r.Density
}

// Liquid reports whether the reservoir holds liquid water.
func (r *Reservoir) Liquid() bool {
	return r.Kind != KindIce
}

// StateDistribution is the share of water mass per phase, in percent.
type StateDistribution struct {
	Solid  float64 `json:"solid"`
	Liquid float64 `json:"liquid"`
	Vapor  float64 `json:"vapor"`
}

// Hydrosphere holds the body's surface water and other surface liquids.
type Hydrosphere struct {
	Reservoirs   []*Reservoir       `json:"reservoirs"`
	State        StateDistribution  `json:"state_distribution"`
	TotalMass    float64            `json:"total_mass"`    // kg
	DissolvedCO2 float64            `json:"dissolved_co2"` // kg
	Compounds    map[string]float64 `json:"compounds,omitempty"` // non-water liquids, kg
}

// AddReservoir appends a reservoir with the density for its kind.
func (h *Hydrosphere) AddReservoir(name string, kind ReservoirKind, volume, temperature float64) *Reservoir {
	density := phys.WaterDensity
	if kind == KindIce {
		density = phys.IceDensity
	}
	r := &Reservoir{
		Name:        name,
		Kind:        kind,
		Volume:      clampNonNegative(volume),
		Density:     density,
		Temperature: temperature,
	}
	h.Reservoirs = append(h.Reservoirs, r)
	return r
}

// Reservoir returns the named reservoir or nil.
func (h *Hydrosphere) Reservoir(name string) *Reservoir {
	for _, r := range h.Reservoirs {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// OfKind returns the reservoirs of kind k in insertion order.
func (h *Hydrosphere) OfKind(k ReservoirKind) []*Reservoir {
	var out []*Reservoir
	for _, r := range h.Reservoirs {
		if r.Kind == k {
			out = append(out, r)
		}
	}
	return out
}

// LiquidReservoirs returns every non-ice reservoir.
func (h *Hydrosphere) LiquidReservoirs() []*Reservoir {
	var out []*Reservoir
	for _, r := range h.Reservoirs {
		if r.Liquid() {
			out = append(out, r)
		}
	}
	return out
}

// AddMass adds liquid mass kg to r.
func (h *Hydrosphere) AddMass(r *Reservoir, mass float64) {
	if r == nil || r.Density <= 0 {
		return
	}
	r.Volume += clampNonNegative(mass) / r.Density
}

// RemoveMass removes up to mass kg from r and returns the mass removed.
func (h *Hydrosphere) RemoveMass(r *Reservoir, mass float64) float64 {
	if r == nil || r.Density <= 0 {
		return 0
	}
	removed := math.Min(clampNonNegative(mass), r.Mass())
	r.Volume = clampNonNegative(r.Volume - removed/r.Density)
	return removed
}

// AddCompound records mass kg of a non-water liquid.
func (h *Hydrosphere) AddCompound(name string, mass float64) {
	if h.Compounds == nil {
		h.Compounds = make(map[string]float64)
	}
	h.Compounds[name] += clampNonNegative(mass)
}

// IceMass returns the total mass held in ice reservoirs.
func (h *Hydrosphere) IceMass() float64 {
	total := 0.0
	for _, r := range h.OfKind(KindIce) {
		total += r.Mass()
	}
	return total
}

// LiquidMass returns the total mass held in liquid reservoirs.
func (h *Hydrosphere) LiquidMass() float64 {
	total := 0.0
	for _, r := range h.LiquidReservoirs() {
		total += r.Mass()
	}
	return total
}

// SetStateDistribution derives phase percentages from phase masses.
func (h *Hydrosphere) SetStateDistribution(solid, liquid, vapor float64) {
	total := solid + liquid + vapor
	if total <= 0 {
		h.State = StateDistribution{}
		return
	}
	h.State = StateDistribution{
		Solid:  solid / total * 100,
		Liquid: liquid / total * 100,
		Vapor:  vapor / total * 100,
	}
}

// RecalculateTotalMass sums reservoirs and compounds into TotalMass.
func (h *Hydrosphere) RecalculateTotalMass() {
	total := 0.0
	for _, r := range h.Reservoirs {
		r.Volume = clampNonNegative(r.Volume)
		total += r.Mass()
	}
	for _, m := range h.Compounds {
		total += m
	}
	h.TotalMass = total
}
