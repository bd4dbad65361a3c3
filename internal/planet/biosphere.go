package planet

// LifeForm is a population with per-billion daily gas and soil effects.
// Gas rates are percentage points of the atmosphere per day per billion.
type LifeForm struct {
	Name           string  `json:"name"`
	Population     int64   `json:"population"`
	Diet           string  `json:"diet"`
	PreferredBiome string  `json:"preferred_biome,omitempty"`

	O2Production     float64 `json:"o2_production"`
	CO2Consumption   float64 `json:"co2_consumption"`
	CH4Production    float64 `json:"ch4_production"`
	N2Fixation       float64 `json:"n2_fixation"`
	SoilImprovement  float64 `json:"soil_improvement"`
	ReproductionRate float64 `json:"reproduction_rate"`
	MortalityRate    float64 `json:"mortality_rate"`
}

// PlanetBiome is a climate zone covering part of the surface.
type PlanetBiome struct {
	Name             string     `json:"name"`
	ClimateType      string     `json:"climate_type"`
	AreaPercentage   float64    `json:"area_percentage"`
	Moisture         float64    `json:"moisture"`         // 0..1
	VegetationCover  float64    `json:"vegetation_cover"` // 0..1
	TemperatureRange [2]float64 `json:"temperature_range"`
	HumidityRange    [2]float64 `json:"humidity_range"`
}

// Biosphere aggregates life and biomes.
type Biosphere struct {
	BiodiversityIndex float64        `json:"biodiversity_index"`
	HabitableRatio    float64        `json:"habitable_ratio"`
	IceLatitude       float64        `json:"ice_latitude"` // radians
	SoilHealth        float64        `json:"soil_health"`  // 0..100
	LifeForms         []*LifeForm    `json:"life_forms"`
	Biomes            []*PlanetBiome `json:"biomes"`
}

// TotalPopulation sums every life form's population.
func (b *Biosphere) TotalPopulation() int64 {
	var total int64
	for _, lf := range b.LifeForms {
		total += lf.Population
	}
	return total
}

// Biome returns the named biome or nil.
func (b *Biosphere) Biome(name string) *PlanetBiome {
	for _, bm := range b.Biomes {
		if bm.Name == name {
			return bm
		}
	}
	return nil
}

// VegetationCover returns the area-weighted vegetation cover in percent.
func (b *Biosphere) VegetationCover() float64 {
	var area, weighted float64
	for _, bm := range b.Biomes {
		area += bm.AreaPercentage
		weighted += bm.AreaPercentage * bm.VegetationCover
	}
	if area <= 0 {
		return 0
	}
	return weighted / area * 100
}

// SetSoilHealth stores h clamped to 0..100.
func (b *Biosphere) SetSoilHealth(h float64) {
	b.SoilHealth = clamp(h, 0, 100)
}
