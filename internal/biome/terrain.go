package biome

import (
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/terra-sim/internal/entropy"
)

// TerrainConfig holds elevation map parameters.
type TerrainConfig struct {
	Width, Height int
	Seed          int64   // 0 = random
	SeaLevel      float64 // noise threshold for sea level (0.0–1.0)
	MaxElevation  float64 // m at the highest peak
	MaxDepth      float64 // m at the deepest trench, positive
}

// DefaultTerrainConfig returns an Earth-like 64×32 map.
func DefaultTerrainConfig() TerrainConfig {
	return TerrainConfig{
		Width:        64,
		Height:       32,
		SeaLevel:     0.45,
		MaxElevation: 6000,
		MaxDepth:     5000,
	}
}

// GenerateTerrain builds an elevation map in metres, indexed [y][x].
func GenerateTerrain(cfg TerrainConfig) ([][]float64, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("terrain size %dx%d: must be positive", cfg.Width, cfg.Height)
	}
	seed := cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = entropy.NewSeed(); err != nil {
			return nil, fmt.Errorf("terrain seed: %w", err)
		}
	}
	noise := opensimplex.NewNormalized(seed)

	elev := make([][]float64, cfg.Height)
	for y := range elev {
		elev[y] = make([]float64, cfg.Width)
		for x := range elev[y] {
			n := octaveNoise(noise, float64(x), float64(y), 4, 0.08, 0.5)
			elev[y][x] = cfg.toMetres(n)
		}
	}
	return elev, nil
}

// toMetres maps normalized noise onto the depth/height range around
// sea level.
func (cfg TerrainConfig) toMetres(n float64) float64 {
	sea := cfg.SeaLevel
	if n < sea {
		if sea <= 0 {
			return 0
		}
		return -(sea - n) / sea * cfg.MaxDepth
	}
	if sea >= 1 {
		return 0
	}
	return (n - sea) / (1 - sea) * cfg.MaxElevation
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// Assign picks a biome for every cell from its derived environment, the
// way a first-pass map generator would. The result is meant to be checked
// with Validate.
func (v *Validator) Assign(elevation [][]float64) [][]string {
	grid := make([][]string, len(elevation))
	for y, row := range elevation {
		grid[y] = make([]string, len(row))
		for x := range row {
			env := v.Environment(x, y, elevation, len(elevation))
			grid[y][x] = deriveBiome(env, v.HasWater)
		}
	}
	return grid
}

// deriveBiome determines a biome from environmental parameters.
func deriveBiome(env Environment, water bool) string {
	if env.Elevation <= 0 && water {
		if env.Temperature < 273 {
			return Ice
		}
		return Ocean
	}
	if env.Elevation > 2000 {
		return Mountains
	}
	if env.Temperature < 258 {
		return Ice
	}
	if env.Temperature < 270 {
		return Tundra
	}
	if env.Rainfall < 250 {
		return Desert
	}
	if env.Rainfall > 1500 && env.Temperature > 293 {
		if env.Elevation < 50 && env.Slope < MaxFlatSlope && water {
			return Swamp
		}
		return TropicalForest
	}
	if env.Temperature < 280 {
		return BorealForest
	}
	if env.Rainfall > 900 {
		return TemperateForest
	}
	if env.Temperature > 293 && math.Abs(env.Latitude) < 25 {
		return Savanna
	}
	return Grassland
}

// Counts returns how many cells hold each biome.
func Counts(grid [][]string) map[string]int {
	counts := make(map[string]int)
	for _, row := range grid {
		for _, name := range row {
			counts[name]++
		}
	}
	return counts
}
