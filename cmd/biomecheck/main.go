// Command biomecheck generates a terrain map, assigns biomes and reports how
// plausible the placement is. With -db it uses a stored body's climate.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/talgya/terra-sim/internal/biome"
	"github.com/talgya/terra-sim/internal/logger"
	"github.com/talgya/terra-sim/internal/persistence"
)

func main() {
	var (
		seed     = flag.Int64("seed", 0, "terrain seed (0 = random)")
		width    = flag.Int("width", 64, "map width in cells")
		height   = flag.Int("height", 32, "map height in cells")
		sea      = flag.Float64("sea", 0.45, "sea level as a noise threshold")
		temp     = flag.Float64("temp", 288, "mean surface temperature in K")
		dry      = flag.Bool("dry", false, "treat the body as having no liquid water")
		dbPath   = flag.String("db", "", "SQLite world store to read the body from")
		bodyName = flag.String("body", "Earth", "body to read from -db")
		asJSON   = flag.Bool("json", false, "print the report as JSON")
		logLevel = flag.String("log-level", "warn", "log level")
	)
	flag.Parse()
	logger.Init(*logLevel, "text")

	v := biome.NewValidator(nil)
	v.SurfaceTemperature = *temp
	v.HasWater = !*dry

	if *dbPath != "" {
		bv, err := validatorFromStore(*dbPath, *bodyName)
		if err != nil {
			slog.Error("load body", "error", err)
			os.Exit(1)
		}
		v = bv
	}

	cfg := biome.DefaultTerrainConfig()
	cfg.Seed = *seed
	cfg.Width = *width
	cfg.Height = *height
	cfg.SeaLevel = *sea
	elev, err := biome.GenerateTerrain(cfg)
	if err != nil {
		slog.Error("generate terrain", "error", err)
		os.Exit(1)
	}

	grid := v.Assign(elev)
	rep, err := v.Validate(grid, elev)
	if err != nil {
		slog.Error("validate", "error", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			slog.Error("encode report", "error", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(rep.Summary)
	fmt.Printf("%d of %d tiles valid, %d warnings\n", rep.ValidTiles, rep.TotalTiles, len(rep.Warnings))

	counts := biome.Counts(grid)
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-18s %d\n", name, counts[name])
	}
	for i, e := range rep.Errors {
		if i == 10 {
			fmt.Printf("  ... %d more\n", len(rep.Errors)-10)
			break
		}
		fmt.Printf("  (%d,%d) %s: %s, try %s\n", e.X, e.Y, e.Biome, e.Reason, e.Suggested)
	}
}

func validatorFromStore(path, name string) (*biome.Validator, error) {
	db, err := persistence.Open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	bodies, err := db.LoadBodies()
	if err != nil {
		return nil, err
	}
	for _, b := range bodies {
		if b.Name == name || b.ID == name {
			return biome.NewValidator(b), nil
		}
	}
	return nil, fmt.Errorf("no body %q in %s", name, path)
}
