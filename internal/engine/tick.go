// Package engine provides the day-based simulation loop.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/talgya/terra-sim/internal/entropy"
	"github.com/talgya/terra-sim/internal/planet"
	"github.com/talgya/terra-sim/internal/terrasim"
)

// Calendar, in simulated days.
const (
	DaysPerWeek   = 7
	DaysPerSeason = 90
	DaysPerYear   = 4 * DaysPerSeason
)

const tracerName = "github.com/talgya/terra-sim/internal/engine"

// ErrHalted is returned by Step after a day has failed. Bodies ticked
// before the failure keep their new state, so the world must be reloaded
// from its last save before stepping again.
var ErrHalted = errors.New("engine halted after failed day")

// Engine drives a world forward one simulated day at a time.
type Engine struct {
	Day      uint64        // Last completed day (monotonic, never resets)
	Seed     int64         // Root of every body's random stream
	Workers  int           // Bodies ticked concurrently; <1 means 1
	Interval time.Duration // Pause between days; 0 runs flat out

	Sim *terrasim.Simulator

	// Callbacks for each calendar layer, populated during setup.
	OnDay    func(day uint64, events []terrasim.Event) // After every day
	OnWeek   func(day uint64)                          // Every 7 days
	OnSeason func(day uint64)                          // Every 90 days

	tracer trace.Tracer
	failed error
}

// NewEngine creates an engine running sim with the given seed.
func NewEngine(sim *terrasim.Simulator, seed int64) *Engine {
	return &Engine{
		Seed:    seed,
		Workers: 1,
		Sim:     sim,
		tracer:  otel.Tracer(tracerName),
	}
}

// Run advances w by days days. With days < 1 it runs until ctx is done.
// Cancellation is honoured between days, never inside one, and returns
// ctx.Err().
func (e *Engine) Run(ctx context.Context, w *World, days int) error {
	slog.Info("simulation engine started", "day", e.Day, "days", days, "workers", e.workers())
	defer func() { slog.Info("simulation engine stopped", "day", e.Day) }()

	for n := 0; days < 1 || n < days; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		if _, err := e.Step(ctx, w); err != nil {
			return err
		}
		if e.Interval <= 0 {
			continue
		}
		if wait := e.Interval - time.Since(start); wait > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
	}
	return nil
}

// Step advances every body in w by one day and returns the day's events in
// body order. A failed day leaves Day unchanged and halts the engine.
func (e *Engine) Step(ctx context.Context, w *World) ([]terrasim.Event, error) {
	if e.failed != nil {
		return nil, fmt.Errorf("%w: %w", ErrHalted, e.failed)
	}
	day := e.Day + 1
	tracer := e.tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	ctx, span := tracer.Start(ctx, "engine.day", trace.WithAttributes(
		attribute.Int64("day", int64(day)),
		attribute.Int("bodies", len(w.Bodies)),
	))
	defer span.End()

	// Each body belongs to exactly one goroutine for the whole day.
	ticks := make([]*terrasim.Tick, len(w.Bodies))
	var g errgroup.Group
	g.SetLimit(e.workers())
	for i, b := range w.Bodies {
		g.Go(func() error {
			_, bs := tracer.Start(ctx, "engine.body", trace.WithAttributes(
				attribute.String("body.id", b.ID),
				attribute.String("body.name", b.Name),
			))
			defer bs.End()

			t := terrasim.NewTick(day, entropy.Derive(e.Seed, streamKey(b.ID, day)))
			if err := e.tick(t, b); err != nil {
				bs.RecordError(err)
				bs.SetStatus(codes.Error, err.Error())
				return err
			}
			bs.SetAttributes(attribute.Int("events", len(t.Events)))
			ticks[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.failed = fmt.Errorf("day %d: %w", day, err)
		return nil, e.failed
	}

	var events []terrasim.Event
	for _, t := range ticks {
		events = append(events, t.Events...)
	}
	e.Day = day
	w.record(day, events)
	span.SetAttributes(attribute.Int("events", len(events)))

	if e.OnDay != nil {
		e.OnDay(day, events)
	}
	if day%DaysPerWeek == 0 && e.OnWeek != nil {
		e.OnWeek(day)
	}
	if day%DaysPerSeason == 0 && e.OnSeason != nil {
		e.OnSeason(day)
	}
	return events, nil
}

// tick runs the simulator on one body and reports a panic as an error.
func (e *Engine) tick(t *terrasim.Tick, b *planet.CelestialBody) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("body %s: panic: %v", b.Name, r)
		}
	}()
	e.Sim.Tick(t, b)
	return nil
}

func (e *Engine) workers() int {
	if e.Workers < 1 {
		return 1
	}
	return e.Workers
}

// streamKey names the random stream of one body on one day, so replays
// match whatever the worker count or restart point.
func streamKey(bodyID string, day uint64) string {
	return bodyID + "/" + strconv.FormatUint(day, 10)
}

// SimTime returns a human-readable simulation date from a day number.
func SimTime(day uint64) string {
	days := day%DaysPerSeason + 1
	seasons := day / DaysPerSeason
	season := seasons % 4
	years := seasons/4 + 1

	seasonNames := [4]string{"Spring", "Summer", "Autumn", "Winter"}

	return fmt.Sprintf("%s Day %d, Year %d", seasonNames[season], days, years)
}
