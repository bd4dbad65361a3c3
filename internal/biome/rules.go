// Package biome scores a biome grid against the environment each cell
// implies and suggests corrections. It is an offline analysis tool and is
// not part of the tick loop.
package biome

import "sort"

// Bound is an optional closed interval. A side is checked only when its Has
// flag is set; a Bound with neither side set is absent.
type Bound struct {
	Min, Max       float64
	HasMin, HasMax bool
}

// AtLeast returns a lower bound.
func AtLeast(v float64) Bound { return Bound{Min: v, HasMin: true} }

// AtMost returns an upper bound.
func AtMost(v float64) Bound { return Bound{Max: v, HasMax: true} }

// Between returns a closed interval.
func Between(lo, hi float64) Bound { return Bound{Min: lo, Max: hi, HasMin: true, HasMax: true} }

// Set reports whether any side of b is checked.
func (b Bound) Set() bool { return b.HasMin || b.HasMax }

// Contains reports whether v lies within b.
func (b Bound) Contains(v float64) bool {
	return (!b.HasMin || v >= b.Min) && (!b.HasMax || v <= b.Max)
}

// hits counts the satisfied sides of b for v.
func (b Bound) hits(v float64) int {
	n := 0
	if b.HasMin && v >= b.Min {
		n++
	}
	if b.HasMax && v <= b.Max {
		n++
	}
	return n
}

// Feature is a surface requirement of a biome.
type Feature string

const (
	FeatureWater Feature = "hydrosphere"
	FeatureFlat  Feature = "flat_terrain"
)

// MaxFlatSlope is the steepest slope in degrees that counts as flat.
const MaxFlatSlope = 10.0

// Rule is the set of constraints one biome must satisfy.
type Rule struct {
	Elevation   Bound // m
	Temperature Bound // K
	Rainfall    Bound // mm/yr

	// TemperatureVaries skips the temperature check.
	TemperatureVaries bool

	// PreferredLatitude is an absolute-latitude band in degrees. Cells
	// outside it are valid but warned about.
	PreferredLatitude Bound

	Required []Feature
}

// Rules maps biome names to their constraints.
type Rules map[string]Rule

// Names returns the biome names in sorted order.
func (r Rules) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Biome names in DefaultRules.
const (
	Ocean           = "ocean"
	Ice             = "ice"
	Tundra          = "tundra"
	BorealForest    = "boreal_forest"
	TemperateForest = "temperate_forest"
	TropicalForest  = "tropical_forest"
	Grassland       = "grassland"
	Savanna         = "savanna"
	Desert          = "desert"
	Mountains       = "mountains"
	Swamp           = "swamp"

	// Unknown cells are ignored by the validator.
	Unknown = "unknown"
)

// DefaultRules returns the standard Earth-calibrated biome constraints.
func DefaultRules() Rules {
	return Rules{
		Ocean: {
			Elevation:   AtMost(0),
			Temperature: Between(273, 310),
			Rainfall:    Between(0, 10000),
			Required:    []Feature{FeatureWater},
		},
		Ice: {
			Elevation:         Between(-11000, 10000),
			Temperature:       AtMost(273),
			Rainfall:          Between(0, 500),
			PreferredLatitude: Between(60, 90),
		},
		Tundra: {
			Elevation:   Between(0, 3000),
			Temperature: Between(253, 278),
			Rainfall:    Between(100, 500),
		},
		BorealForest: {
			Elevation:   Between(0, 2000),
			Temperature: Between(258, 288),
			Rainfall:    Between(400, 1500),
		},
		TemperateForest: {
			Elevation:   Between(0, 2500),
			Temperature: Between(268, 298),
			Rainfall:    Between(500, 3000),
		},
		TropicalForest: {
			Elevation:         Between(0, 1500),
			Temperature:       Between(293, 313),
			Rainfall:          Between(1500, 6000),
			PreferredLatitude: Between(0, 23),
		},
		Grassland: {
			Elevation:   Between(0, 2000),
			Temperature: Between(268, 308),
			Rainfall:    Between(300, 900),
		},
		Savanna: {
			Elevation:         Between(0, 1500),
			Temperature:       Between(288, 318),
			Rainfall:          Between(300, 1200),
			PreferredLatitude: Between(5, 20),
		},
		Desert: {
			Elevation:   Between(0, 3000),
			Temperature: Between(268, 328),
			Rainfall:    AtMost(250),
		},
		Mountains: {
			Elevation:         Between(2000, 10000),
			TemperatureVaries: true,
		},
		Swamp: {
			Elevation:   Between(-5, 50),
			Temperature: Between(288, 308),
			Rainfall:    Between(1500, 4000),
			Required:    []Feature{FeatureWater, FeatureFlat},
		},
	}
}
