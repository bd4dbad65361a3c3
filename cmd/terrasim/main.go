// Command terrasim advances a world of celestial bodies day by day and keeps
// it in a database between runs.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/talgya/terra-sim/internal/catalog"
	"github.com/talgya/terra-sim/internal/config"
	"github.com/talgya/terra-sim/internal/engine"
	"github.com/talgya/terra-sim/internal/logger"
	"github.com/talgya/terra-sim/internal/persistence"
	"github.com/talgya/terra-sim/internal/scenario"
	"github.com/talgya/terra-sim/internal/telemetry"
	"github.com/talgya/terra-sim/internal/terrasim"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	if err := run(cfg); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry ─────────────────────────────────────────────────────
	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Endpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Warn("telemetry shutdown", "error", err)
		}
	}()

	// ── Database ──────────────────────────────────────────────────────
	if cfg.Database.Driver == persistence.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := persistence.OpenDriver(cfg.Database.Driver, cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("database opened", "driver", cfg.Database.Driver)

	simCfg := terrasim.DefaultConfig()
	slog.Info("material catalog loaded",
		"materials", catalog.Default().Len(),
		"condensable_gases", len(simCfg.Phases.Freezing),
	)
	if cfg.Sim.PlateHistoryLimit > 0 {
		simCfg.PlateHistoryLimit = cfg.Sim.PlateHistoryLimit
	}

	// ── Load or Generate World State ─────────────────────────────────
	w, seed, err := loadOrCreate(db, cfg.Sim.Seed, simCfg)
	if err != nil {
		return err
	}
	for _, b := range w.Bodies {
		attrs := []any{"body", b.Name, "type", b.Type, "mass", humanize.SIWithDigits(b.Mass*1000, 3, "g")}
		if b.Exotic != nil {
			attrs = append(attrs, "exotic", b.Exotic.PlanetType)
		}
		slog.Info("body ready", attrs...)
	}

	// ── Simulation ────────────────────────────────────────────────────
	eng := engine.NewEngine(terrasim.NewSimulator(simCfg), seed)
	eng.Day = w.LastDay
	eng.Workers = cfg.Sim.Workers
	eng.Interval = cfg.Sim.Interval

	eng.OnDay = func(day uint64, events []terrasim.Event) {
		w.DailyReport(day, events)
		if err := db.SaveEvents(events); err != nil {
			slog.Error("event save failed", "day", day, "error", err)
		}
		if day%uint64(cfg.Sim.SaveEvery) == 0 {
			if err := db.SaveWorldState(w); err != nil {
				slog.Error("periodic save failed", "day", day, "error", err)
			}
		}
	}
	eng.OnSeason = func(day uint64) {
		slog.Info("season turned", "time", engine.SimTime(day), "events", humanize.Comma(int64(len(w.Events))))
	}

	if w.LastDay > 0 {
		slog.Info("resuming", "day", w.LastDay, "sim_time", engine.SimTime(w.LastDay))
	}
	runErr := eng.Run(ctx, w, cfg.Sim.Days)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		// The failed day may have advanced some bodies; keep the last save.
		slog.Error("day failed, world state not saved", "day", w.LastDay, "error", runErr)
		return runErr
	}

	// Final save on shutdown.
	slog.Info("final save...")
	if err := db.SaveWorldState(w); err != nil {
		return fmt.Errorf("final save: %w", err)
	}
	slog.Info("simulation stopped, world state saved", "day", w.LastDay)
	return nil
}

// loadOrCreate restores the saved world, or seeds and saves a new one. A
// restored world keeps the seed it was created with.
func loadOrCreate(db *persistence.DB, seed int64, simCfg terrasim.Config) (*engine.World, int64, error) {
	ok, err := db.HasWorldState()
	if err != nil {
		return nil, 0, fmt.Errorf("check world state: %w", err)
	}
	if ok {
		slog.Info("found saved world state, loading...")
		if v, err := db.GetMeta("seed"); err == nil {
			if s, err := strconv.ParseInt(v, 10, 64); err == nil && s != seed {
				slog.Warn("using saved seed", "saved", s, "configured", seed)
				seed = s
			}
		}
		w, err := db.LoadWorldState()
		return w, seed, err
	}

	slog.Info("no saved state found, generating new world...", "seed", seed)
	w := engine.NewWorld(scenario.Bodies(seed, simCfg))
	if err := db.SaveMeta("seed", strconv.FormatInt(seed, 10)); err != nil {
		return nil, 0, fmt.Errorf("save seed: %w", err)
	}
	if err := db.SaveWorldState(w); err != nil {
		return nil, 0, fmt.Errorf("initial save: %w", err)
	}
	return w, seed, nil
}
