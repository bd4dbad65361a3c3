package terrasim

import (
	"fmt"

	"github.com/talgya/terra-sim/internal/entropy"
)

// Event categories.
const (
	CategoryEarthquake       = "earthquake"
	CategoryEruption         = "eruption"
	CategoryCryovolcanism    = "cryovolcanism"
	CategoryDiamond          = "diamond_formation"
	CategoryMetallicHydrogen = "metallic_hydrogen"
	CategoryFreeze           = "freeze"
	CategoryRelease          = "release"
)

// Event is a notable occurrence on a body.
type Event struct {
	Tick        uint64         `json:"tick"`
	Body        string         `json:"body"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Meta        map[string]any `json:"meta,omitempty"`
}

// Tick is the input to one simulation step of one body. A Tick and its
// stream belong to a single goroutine.
type Tick struct {
	Day  uint64
	Days float64 // simulated days covered by this step
	RNG  *entropy.Stream

	Events []Event
}

// NewTick creates a one-day tick.
func NewTick(day uint64, rng *entropy.Stream) *Tick {
	return &Tick{Day: day, Days: 1, RNG: rng}
}

func (t *Tick) days() float64 {
	if t.Days <= 0 {
		return 1
	}
	return t.Days
}

func (t *Tick) emit(body, category string, meta map[string]any, format string, args ...any) {
	t.Events = append(t.Events, Event{
		Tick:        t.Day,
		Body:        body,
		Description: fmt.Sprintf(format, args...),
		Category:    category,
		Meta:        meta,
	})
}

// Count returns how many events of category the tick recorded.
func (t *Tick) Count(category string) int {
	n := 0
	for _, e := range t.Events {
		if e.Category == category {
			n++
		}
	}
	return n
}
