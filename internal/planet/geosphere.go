package planet

import (
	"math"
	"sort"
)

// Layer is a concentric shell of the body.
type Layer string

const (
	LayerCore   Layer = "core"
	LayerMantle Layer = "mantle"
	LayerCrust  Layer = "crust"
)

// Layers lists the shells from the centre outwards.
var Layers = []Layer{LayerCore, LayerMantle, LayerCrust}

// MaterialState is the phase of a geological material.
type MaterialState string

const (
	StateSolid    MaterialState = "solid"
	StateLiquid   MaterialState = "liquid"
	StateGas      MaterialState = "gas"
	StateMetallic MaterialState = "metallic"
)

// Volatile storage locations.
const (
	LocationPolarCaps  = "polar_caps"
	LocationSurfaceIce = "surface_ice"
)

// GeologicalMaterial is one material within one layer.
type GeologicalMaterial struct {
	Name       string        `json:"name"`
	Layer      Layer         `json:"layer"`
	State      MaterialState `json:"state"`
	Mass       float64       `json:"mass"`       // kg
	Percentage float64       `json:"percentage"` // of layer mass
}

// Plate is a tectonic plate position.
type Plate struct {
	ID        int     `json:"id"`
	Latitude  float64 `json:"latitude"`  // degrees
	Longitude float64 `json:"longitude"` // degrees
	Drift     float64 `json:"drift"`     // cumulative displacement, m
}

// PlateSnapshot records plate positions after a tectonic step.
type PlateSnapshot struct {
	Day    uint64  `json:"day"`
	Plates []Plate `json:"plates"`
}

// Geosphere holds the body's interior and surface geology.
type Geosphere struct {
	GeologicalActivity float64 `json:"geological_activity"` // 0..10
	TectonicActivity   bool    `json:"tectonic_activity"`
	IceTectonics       bool    `json:"ice_tectonics"`

	Plates       []Plate         `json:"plates"`
	PlateHistory []PlateSnapshot `json:"plate_history"`

	// StoredVolatiles maps compound → location → kg.
	StoredVolatiles map[string]map[string]float64 `json:"stored_volatiles"`

	WeatheringRate       float64 `json:"weathering_rate"`
	ErosionRate          float64 `json:"erosion_rate"`
	RegolithDepth        float64 `json:"regolith_depth"`         // m
	RegolithParticleSize float64 `json:"regolith_particle_size"` // mm
	AverageRainfall      float64 `json:"average_rainfall"`       // mm/yr
	VegetationCover      float64 `json:"vegetation_cover"`       // percent

	Materials []*GeologicalMaterial `json:"materials"`
}

// ActivityMultiplier scales geological processes by activity.
func (g *Geosphere) ActivityMultiplier() float64 {
	return 1 + g.GeologicalActivity/10
}

// Material returns the named material in layer, or nil.
func (g *Geosphere) Material(layer Layer, name string) *GeologicalMaterial {
	for _, m := range g.Materials {
		if m.Layer == layer && m.Name == name {
			return m
		}
	}
	return nil
}

// LayerMaterials returns the materials in layer.
func (g *Geosphere) LayerMaterials(layer Layer) []*GeologicalMaterial {
	var out []*GeologicalMaterial
	for _, m := range g.Materials {
		if m.Layer == layer {
			out = append(out, m)
		}
	}
	return out
}

// LayerMass returns the total mass of layer.
func (g *Geosphere) LayerMass(layer Layer) float64 {
	total := 0.0
	for _, m := range g.LayerMaterials(layer) {
		total += m.Mass
	}
	return total
}

// AddMaterial adds mass kg of name to layer, creating the record in state
// when missing, and recomputes the layer's percentages.
func (g *Geosphere) AddMaterial(layer Layer, name string, state MaterialState, mass float64) *GeologicalMaterial {
	m := g.Material(layer, name)
	if m == nil {
		m = &GeologicalMaterial{Name: name, Layer: layer, State: state}
		g.Materials = append(g.Materials, m)
	}
	m.Mass += clampNonNegative(mass)
	g.UpdateLayerPercentages(layer)
	return m
}

// TransferMass moves up to amount kg from one material to another within
// layer and returns the mass moved.
func (g *Geosphere) TransferMass(layer Layer, from, to string, state MaterialState, amount float64) float64 {
	src := g.Material(layer, from)
	if src == nil {
		return 0
	}
	moved := math.Min(clampNonNegative(amount), src.Mass)
	if moved == 0 {
		return 0
	}
	src.Mass -= moved
	g.AddMaterial(layer, to, state, moved)
	return moved
}

// UpdateLayerPercentages recomputes percentages within layer so they sum to 100.
func (g *Geosphere) UpdateLayerPercentages(layer Layer) {
	total := g.LayerMass(layer)
	for _, m := range g.LayerMaterials(layer) {
		m.Mass = clampNonNegative(m.Mass)
		if total > 0 {
			m.Percentage = m.Mass / total * 100
		} else {
			m.Percentage = 0
		}
	}
}

// AppendPlateSnapshot records the current plates, keeping at most limit
// snapshots.
func (g *Geosphere) AppendPlateSnapshot(day uint64, limit int) {
	snap := PlateSnapshot{Day: day, Plates: append([]Plate(nil), g.Plates...)}
	g.PlateHistory = append(g.PlateHistory, snap)
	if limit > 0 && len(g.PlateHistory) > limit {
		g.PlateHistory = append([]PlateSnapshot(nil), g.PlateHistory[len(g.PlateHistory)-limit:]...)
	}
}

// StoredVolatile returns the total stored mass of compound across locations.
func (g *Geosphere) StoredVolatile(compound string) float64 {
	total := 0.0
	for _, m := range g.StoredVolatiles[compound] {
		total += m
	}
	return total
}

// StoredCompounds returns the compounds with stored mass, sorted.
func (g *Geosphere) StoredCompounds() []string {
	out := make([]string, 0, len(g.StoredVolatiles))
	for c := range g.StoredVolatiles {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// UpdateVolatileStore adds delta kg of compound at location.
func (g *Geosphere) UpdateVolatileStore(compound, location string, delta float64) {
	if g.StoredVolatiles == nil {
		g.StoredVolatiles = make(map[string]map[string]float64)
	}
	locs := g.StoredVolatiles[compound]
	if locs == nil {
		locs = make(map[string]float64)
		g.StoredVolatiles[compound] = locs
	}
	locs[location] = clampNonNegative(locs[location] + delta)
	if locs[location] == 0 {
		delete(locs, location)
	}
	if len(locs) == 0 {
		delete(g.StoredVolatiles, compound)
	}
}

// ReleaseVolatile removes up to amount kg of compound, drawn from each
// location in proportion to its share, and returns the mass released.
func (g *Geosphere) ReleaseVolatile(compound string, amount float64) float64 {
	total := g.StoredVolatile(compound)
	amount = math.Min(clampNonNegative(amount), total)
	if amount == 0 {
		return 0
	}
	locs := make([]string, 0, len(g.StoredVolatiles[compound]))
	for loc := range g.StoredVolatiles[compound] {
		locs = append(locs, loc)
	}
	sort.Strings(locs)
	released := 0.0
	for _, loc := range locs {
		stored := g.StoredVolatiles[compound][loc]
		take := math.Min(amount*stored/total, stored)
		g.UpdateVolatileStore(compound, loc, -take)
		released += take
	}
	return released
}
