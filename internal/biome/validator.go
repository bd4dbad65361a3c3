package biome

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/terra-sim/internal/planet"
)

// ErrNoGrid is returned when Validate is given no biome grid.
var ErrNoGrid = errors.New("biome: no grid provided")

const (
	defaultSurfaceTemperature = 288.0
	lapseRate                 = 6.5    // K per km
	poleCooling               = -30.0  // K at the poles
	gridSpacing               = 1000.0 // m between cell centres
)

// Quality tiers.
const (
	TierExcellent = "Excellent"
	TierGood      = "Good"
	TierFair      = "Fair"
	TierPoor      = "Poor"
)

// Environment is the derived climate of one grid cell.
type Environment struct {
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Elevation   float64 `json:"elevation"`   // m
	Latitude    float64 `json:"latitude"`    // degrees, +90 at row 0
	Temperature float64 `json:"temperature"` // K
	Rainfall    float64 `json:"rainfall"`    // mm/yr
	Slope       float64 `json:"slope"`       // degrees
}

// CellResult is the verdict for one biome placement.
type CellResult struct {
	Valid     bool
	Reason    string // first failed constraint
	Warnings  []string
	Suggested string // set when invalid
}

// CellError describes an invalid cell.
type CellError struct {
	X           int         `json:"x"`
	Y           int         `json:"y"`
	Biome       string      `json:"biome"`
	Reason      string      `json:"reason"`
	Suggested   string      `json:"suggested"`
	Environment Environment `json:"environment"`
}

// CellWarning is a soft issue on an otherwise valid or invalid cell.
type CellWarning struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Biome   string `json:"biome"`
	Message string `json:"message"`
}

// Report aggregates a grid validation.
type Report struct {
	Score      float64       `json:"score"` // percent of valid tiles, 2 dp
	TotalTiles int           `json:"total_tiles"`
	ValidTiles int           `json:"valid_tiles"`
	Errors     []CellError   `json:"errors"`
	Warnings   []CellWarning `json:"warnings"`
	Tier       string        `json:"tier"`
	Summary    string        `json:"summary"`
}

// Validator checks biome placement for one body.
type Validator struct {
	Rules              Rules
	SurfaceTemperature float64
	HasWater           bool
}

// NewValidator creates a Validator with DefaultRules for b. The body's
// surface temperature and liquid water drive the environment.
func NewValidator(b *planet.CelestialBody) *Validator {
	v := &Validator{Rules: DefaultRules(), SurfaceTemperature: defaultSurfaceTemperature}
	if b == nil {
		return v
	}
	if b.SurfaceTemperature > 0 {
		v.SurfaceTemperature = b.SurfaceTemperature
	}
	if h := b.Hydrosphere; h != nil {
		v.HasWater = h.LiquidMass() > 0
	}
	return v
}

// Validate scores grid against the environment implied by elevation, which
// is indexed [y][x] in metres. Empty and unknown cells are skipped.
func (v *Validator) Validate(grid [][]string, elevation [][]float64) (Report, error) {
	if grid == nil {
		return Report{}, ErrNoGrid
	}

	var rep Report
	for y, row := range grid {
		for x, name := range row {
			if name == "" || name == Unknown {
				continue
			}
			rep.TotalTiles++
			env := v.Environment(x, y, elevation, len(grid))
			res := v.ValidateCell(name, env)

			for _, w := range res.Warnings {
				rep.Warnings = append(rep.Warnings, CellWarning{X: x, Y: y, Biome: name, Message: w})
			}
			if res.Valid {
				rep.ValidTiles++
				continue
			}
			rep.Errors = append(rep.Errors, CellError{
				X: x, Y: y,
				Biome:       name,
				Reason:      res.Reason,
				Suggested:   res.Suggested,
				Environment: env,
			})
		}
	}

	if rep.TotalTiles > 0 {
		rep.Score = math.Round(float64(rep.ValidTiles)/float64(rep.TotalTiles)*100*100) / 100
	}
	rep.Tier = Tier(rep.Score)
	rep.Summary = summary(rep.Tier, rep.Score)

	slog.Debug("biome grid validated",
		"tiles", rep.TotalTiles,
		"valid", rep.ValidTiles,
		"score", rep.Score,
		"warnings", len(rep.Warnings),
	)
	return rep, nil
}

// ValidateCell checks one placement of biome against env.
func (v *Validator) ValidateCell(biome string, env Environment) CellResult {
	rule, ok := v.Rules[biome]
	if !ok {
		return CellResult{Reason: fmt.Sprintf("Unknown biome: %s", biome), Suggested: v.Suggest(env)}
	}

	var errs, warns []string
	if b := rule.Elevation; b.Set() {
		if b.HasMin && env.Elevation < b.Min {
			errs = append(errs, fmt.Sprintf("Elevation too low (%.0fm, min %gm)", env.Elevation, b.Min))
		}
		if b.HasMax && env.Elevation > b.Max {
			errs = append(errs, fmt.Sprintf("Elevation too high (%.0fm, max %gm)", env.Elevation, b.Max))
		}
	}
	if b := rule.Temperature; b.Set() && !rule.TemperatureVaries {
		if b.HasMin && env.Temperature < b.Min {
			errs = append(errs, fmt.Sprintf("Too cold (%.0fK, min %gK)", env.Temperature, b.Min))
		}
		if b.HasMax && env.Temperature > b.Max {
			errs = append(errs, fmt.Sprintf("Too hot (%.0fK, max %gK)", env.Temperature, b.Max))
		}
	}
	if b := rule.Rainfall; b.Set() {
		if b.HasMin && env.Rainfall < b.Min {
			errs = append(errs, fmt.Sprintf("Too dry (%.0fmm, min %gmm)", env.Rainfall, b.Min))
		}
		if b.HasMax && env.Rainfall > b.Max {
			errs = append(errs, fmt.Sprintf("Too wet (%.0fmm, max %gmm)", env.Rainfall, b.Max))
		}
	}
	if b := rule.PreferredLatitude; b.Set() {
		if lat := math.Abs(env.Latitude); !b.Contains(lat) {
			warns = append(warns, fmt.Sprintf("Outside preferred latitude range (%.0f°, preferred %g°-%g°)", lat, b.Min, b.Max))
		}
	}
	for _, f := range rule.Required {
		switch f {
		case FeatureWater:
			if !v.HasWater {
				errs = append(errs, "Requires hydrosphere (no water present)")
			}
		case FeatureFlat:
			if env.Slope > MaxFlatSlope {
				errs = append(errs, fmt.Sprintf("Requires flat terrain (slope %.0f° > %g°)", env.Slope, MaxFlatSlope))
			}
		}
	}

	res := CellResult{Valid: len(errs) == 0, Warnings: warns}
	if !res.Valid {
		res.Reason = errs[0]
		res.Suggested = v.Suggest(env)
	}
	return res
}

// Suggest returns the biome whose constraints env best satisfies. Each
// bound contributes the fraction of its sides met; ties go to the first
// name in sorted order.
func (v *Validator) Suggest(env Environment) string {
	best, bestScore := "", -1.0
	for _, name := range v.Rules.Names() {
		rule := v.Rules[name]
		hits, checks := 0, 0
		if rule.Elevation.Set() {
			checks++
			hits += rule.Elevation.hits(env.Elevation)
		}
		if rule.Temperature.Set() && !rule.TemperatureVaries {
			checks++
			hits += rule.Temperature.hits(env.Temperature)
		}
		if rule.Rainfall.Set() {
			checks++
			hits += rule.Rainfall.hits(env.Rainfall)
		}
		score := 0.0
		if checks > 0 {
			score = float64(hits) / float64(checks)
		}
		if score > bestScore {
			best, bestScore = name, score
		}
	}
	return best
}

// Environment derives the climate of cell (x, y). rows is the grid height
// used for latitude when elevation is empty; cells outside elevation sit
// at sea level.
func (v *Validator) Environment(x, y int, elevation [][]float64, rows int) Environment {
	height := len(elevation)
	if height == 0 {
		height = rows
	}
	elev := at(elevation, x, y)

	lat := 90.0
	if height > 0 {
		lat = 90 - float64(y)/float64(height)*180
	}
	latFactor := math.Cos(lat * math.Pi / 180)
	temp := v.SurfaceTemperature + (1-latFactor)*poleCooling - elev/1000*lapseRate

	return Environment{
		X:           x,
		Y:           y,
		Elevation:   elev,
		Latitude:    lat,
		Temperature: temp,
		Rainfall:    Rainfall(lat, elev, temp),
		Slope:       Slope(elevation, x, y),
	}
}

// Rainfall estimates annual rainfall from a latitude band, raised by
// altitude and warmth.
func Rainfall(latitude, elevation, temperature float64) float64 {
	var base float64
	switch lat := math.Abs(latitude); {
	case lat < 10:
		base = 2000
	case lat < 30:
		base = 500
	case lat < 60:
		base = 1000
	default:
		base = 300
	}
	base *= 1 + elevation/1000*0.1

	tempFactor := 0.1
	if temperature > 273 {
		tempFactor = (temperature-273)/25 + 0.5
	}
	return math.Round(math.Max(base*tempFactor, 0))
}

// Slope is the steepest angle in degrees from (x, y) to any of its eight
// neighbours.
func Slope(elevation [][]float64, x, y int) float64 {
	if y < 0 || y >= len(elevation) || x < 0 || x >= len(elevation[y]) {
		return 0
	}
	centre := elevation[y][x]
	maxChange, found := 0.0, false
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			ny, nx := y+dy, x+dx
			if ny < 0 || ny >= len(elevation) || nx < 0 || nx >= len(elevation[ny]) {
				continue
			}
			found = true
			maxChange = math.Max(maxChange, math.Abs(elevation[ny][nx]-centre))
		}
	}
	if !found {
		return 0
	}
	return math.Atan(maxChange/gridSpacing) * 180 / math.Pi
}

func at(grid [][]float64, x, y int) float64 {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return 0
	}
	return grid[y][x]
}

// Tier names the quality band of a score.
func Tier(score float64) string {
	switch {
	case score >= 90:
		return TierExcellent
	case score >= 75:
		return TierGood
	case score >= 50:
		return TierFair
	default:
		return TierPoor
	}
}

func summary(tier string, score float64) string {
	var detail string
	switch tier {
	case TierExcellent:
		detail = "Biome placement is highly realistic"
	case TierGood:
		detail = "Most biomes are appropriately placed"
	case TierFair:
		detail = "Some biomes need adjustment"
	default:
		detail = "Major biome placement issues detected"
	}
	return fmt.Sprintf("%s (%g%% valid) - %s", tier, score, detail)
}
