package engine

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/talgya/terra-sim/internal/phys"
	"github.com/talgya/terra-sim/internal/planet"
	"github.com/talgya/terra-sim/internal/terrasim"
)

// MaxRecentEvents bounds World.Events.
const MaxRecentEvents = 1000

// World holds every simulated body and the recent event log.
type World struct {
	Bodies  []*planet.CelestialBody
	Events  []terrasim.Event // Most recent last, at most MaxRecentEvents
	LastDay uint64           // Most recent day processed

	// Statistics recomputed after every day.
	Stats WorldStats
}

// WorldStats tracks aggregate world statistics.
type WorldStats struct {
	Bodies          int     `json:"bodies"`
	HabitableBodies int     `json:"habitable_bodies"` // habitable ratio above zero
	TotalPopulation int64   `json:"total_population"`
	MeanSurfaceTemp float64 `json:"mean_surface_temp"`
	EventsToday     int     `json:"events_today"`
}

// NewWorld creates a World from bodies.
func NewWorld(bodies []*planet.CelestialBody) *World {
	w := &World{Bodies: bodies}
	w.updateStats(nil)
	return w
}

// Body returns the body with the given ID or name, or nil.
func (w *World) Body(key string) *planet.CelestialBody {
	for _, b := range w.Bodies {
		if b.ID == key || b.Name == key {
			return b
		}
	}
	return nil
}

// CurrentDay returns the most recently processed day.
func (w *World) CurrentDay() uint64 {
	return w.LastDay
}

func (w *World) record(day uint64, events []terrasim.Event) {
	w.LastDay = day
	w.Events = append(w.Events, events...)
	// Trim old events to prevent unbounded growth.
	if len(w.Events) > MaxRecentEvents {
		w.Events = append([]terrasim.Event(nil), w.Events[len(w.Events)-MaxRecentEvents:]...)
	}
	w.updateStats(events)
}

func (w *World) updateStats(today []terrasim.Event) {
	var s WorldStats
	s.Bodies = len(w.Bodies)
	s.EventsToday = len(today)
	totalTemp := 0.0
	for _, b := range w.Bodies {
		totalTemp += b.SurfaceTemperature
		if bio := b.Biosphere; bio != nil {
			s.TotalPopulation += bio.TotalPopulation()
			if bio.HabitableRatio > 0 {
				s.HabitableBodies++
			}
		}
	}
	if s.Bodies > 0 {
		s.MeanSurfaceTemp = totalTemp / float64(s.Bodies)
	}
	w.Stats = s
}

// DailyReport logs the day's summary and each body's headline state.
func (w *World) DailyReport(day uint64, events []terrasim.Event) {
	eventCounts := make(map[string]int)
	for _, e := range events {
		eventCounts[e.Category]++
	}

	slog.Info("daily report",
		"day", day,
		"time", SimTime(day),
		"bodies", w.Stats.Bodies,
		"habitable", w.Stats.HabitableBodies,
		"population", humanize.Comma(w.Stats.TotalPopulation),
		"mean_temp", fmt.Sprintf("%.1fK", w.Stats.MeanSurfaceTemp),
		"events_eruption", eventCounts[terrasim.CategoryEruption],
		"events_earthquake", eventCounts[terrasim.CategoryEarthquake],
		"events_freeze", eventCounts[terrasim.CategoryFreeze],
		"events_release", eventCounts[terrasim.CategoryRelease],
	)

	for _, b := range w.Bodies {
		attrs := []any{
			"body", b.Name,
			"surface_temp", fmt.Sprintf("%.1fK", b.SurfaceTemperature),
		}
		if a := b.Atmosphere; a != nil {
			attrs = append(attrs,
				"pressure", fmt.Sprintf("%.4gbar", a.Pressure/phys.PascalsPerBar),
				"atmosphere", humanize.SIWithDigits(a.TotalMass*1000, 3, "g"),
			)
		}
		if bio := b.Biosphere; bio != nil {
			attrs = append(attrs, "habitable", fmt.Sprintf("%.3f", bio.HabitableRatio))
		}
		slog.Debug("body state", attrs...)
	}

	// Log notable events of the day.
	for _, e := range events {
		switch e.Category {
		case terrasim.CategoryEruption, terrasim.CategoryCryovolcanism,
			terrasim.CategoryMetallicHydrogen, terrasim.CategoryDiamond:
			slog.Info("event", "body", e.Body, "category", e.Category, "description", e.Description)
		}
	}
}
