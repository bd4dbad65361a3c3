package terrasim

import (
	"log/slog"
	"strings"

	"github.com/talgya/terra-sim/internal/entropy"
	"github.com/talgya/terra-sim/internal/phys"
	"github.com/talgya/terra-sim/internal/planet"
)

// LayerTemplate lists the materials of each layer for a body type.
type LayerTemplate struct {
	Core   []string
	Mantle []string
	Crust  []string
}

func (lt LayerTemplate) materials(layer planet.Layer) []string {
	switch layer {
	case planet.LayerCore:
		return lt.Core
	case planet.LayerMantle:
		return lt.Mantle
	default:
		return lt.Crust
	}
}

// Templates keyed by body type. Unknown types use the terrestrial template.
var layerTemplates = map[string]LayerTemplate{
	planet.TypeTerrestrial: {
		Core:   []string{"Iron", "Nickel"},
		Mantle: []string{"Silicon", "Oxygen", "Magnesium"},
		Crust:  []string{"Silicon", "Oxygen", "Aluminum"},
	},
	planet.TypeCarbonPlanet: {
		Core:   []string{"Iron", "Carbon"},
		Mantle: []string{"Carbon", "Silicon Carbide"},
		Crust:  []string{"Graphite", "Diamond", "Silicon Carbide"},
	},
	planet.TypeIceGiant: {
		Core:   []string{"Rock", "Ice"},
		Mantle: []string{"Water Ice", "Methane Ice", "Ammonia Ice"},
		Crust:  []string{"Methane Ice", "Ammonia Ice"},
	},
	planet.TypeGasGiant: {
		Core:   []string{"Iron", "Silicate", "Hydrogen"},
		Mantle: []string{"Hydrogen", "Helium"},
		Crust:  []string{"Hydrogen", "Helium", "Methane"},
	},
}

// TemplateFor returns the layer template for bodyType.
func TemplateFor(bodyType string) LayerTemplate {
	if lt, ok := layerTemplates[bodyType]; ok {
		return lt
	}
	return layerTemplates[planet.TypeTerrestrial]
}

// Fraction of radius × density attributed to each layer.
var layerFractions = map[planet.Layer]float64{
	planet.LayerCore:   0.6,
	planet.LayerMantle: 0.3,
	planet.LayerCrust:  0.01,
}

// Crust materials that are gaseous regardless of template.
var crustGases = map[string]bool{
	"Hydrogen": true,
	"Helium":   true,
	"Methane":  true,
	"Ammonia":  true,
}

type activityRange struct {
	lo, hi    int
	tectonic  bool
	iceShells bool
}

var activityRanges = map[string]activityRange{
	planet.TypeTerrestrial:  {lo: 1, hi: 10, tectonic: true},
	planet.TypeCarbonPlanet: {lo: 1, hi: 8, tectonic: true},
	planet.TypeGasGiant:     {lo: 0, hi: 5},
	planet.TypeIceGiant:     {lo: 0, hi: 3, iceShells: true},
}

var defaultActivity = activityRange{lo: 0, hi: 3, tectonic: true}

// GeosphereInitializer builds a geosphere from the body-type template.
type GeosphereInitializer struct {
	cfg Config
}

// NewGeosphereInitializer creates a GeosphereInitializer.
func NewGeosphereInitializer(cfg Config) *GeosphereInitializer {
	return &GeosphereInitializer{cfg: cfg}
}

// Initialize populates b's geosphere layers, activity and plates. An
// existing geosphere keeps its surface fields but loses its materials.
func (gi *GeosphereInitializer) Initialize(rng *entropy.Stream, b *planet.CelestialBody) *planet.Geosphere {
	g := b.Geosphere
	if g == nil {
		g = &planet.Geosphere{RegolithParticleSize: 1}
		b.Geosphere = g
	}
	g.Materials = nil

	radius := b.Radius
	if radius <= 0 {
		radius = phys.EarthRadius
	}
	density := b.Density
	if density <= 0 {
		density = phys.EarthDensity
	}
	metallic := b.CorePressure() > phys.MetallicHydrogenPressure

	tmpl := TemplateFor(b.Type)
	for _, layer := range planet.Layers {
		names := tmpl.materials(layer)
		if len(names) == 0 {
			continue
		}
		layerMass := radius * layerFractions[layer] * density * 1e9
		each := layerMass / float64(len(names))
		for _, name := range names {
			g.AddMaterial(layer, name, materialState(layer, name, metallic), each)
		}
	}

	ar, ok := activityRanges[b.Type]
	if !ok {
		ar = defaultActivity
	}
	g.GeologicalActivity = float64(rng.IntRange(ar.lo, ar.hi))
	g.TectonicActivity = ar.tectonic
	g.IceTectonics = ar.iceShells

	g.Plates = nil
	g.PlateHistory = nil
	if ar.tectonic || ar.iceShells {
		n := rng.IntRange(5, 15)
		for i := 0; i < n; i++ {
			g.Plates = append(g.Plates, planet.Plate{
				ID:        i + 1,
				Latitude:  rng.Range(-90, 90),
				Longitude: rng.Range(-180, 180),
			})
		}
	}

	slog.Debug("geosphere initialized",
		"body", b.Name,
		"type", b.Type,
		"materials", len(g.Materials),
		"activity", g.GeologicalActivity,
		"plates", len(g.Plates),
	)
	return g
}

// materialState applies the phase rules for a template material.
func materialState(layer planet.Layer, name string, metallicCore bool) planet.MaterialState {
	switch {
	case layer == planet.LayerCrust && crustGases[name]:
		return planet.StateGas
	case strings.Contains(name, "Ice"):
		return planet.StateSolid
	case layer == planet.LayerCore && name == "Hydrogen" && metallicCore:
		return planet.StateMetallic
	case layer == planet.LayerCore:
		return planet.StateSolid
	case layer == planet.LayerMantle:
		return planet.StateLiquid
	default:
		return planet.StateSolid
	}
}
