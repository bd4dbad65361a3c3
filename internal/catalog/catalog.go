// Package catalog is the read-only material lookup used by the simulators to
// resolve compound names to formulas, molar masses and phase data.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed materials.json
var materialsJSON []byte

// Material is one catalog entry.
type Material struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Formula   string   `json:"formula"`
	Aliases   []string `json:"aliases,omitempty"`
	MolarMass float64  `json:"molar_mass"` // g/mol
	State     string   `json:"state"`      // phase at STP: solid, liquid, gas
	Category  string   `json:"category"`

	// Phase thresholds in kelvin, zero when unknown. A freezing point marks
	// the gas as condensable by the volatile cycle.
	FreezingPoint float64 `json:"freezing_point,omitempty"`
	BoilingPoint  float64 `json:"boiling_point,omitempty"`
}

// Key returns the name simulators store the material under. Gases use
// their chemical formula; everything else its display name.
func (m Material) Key() string {
	if m.State == "gas" || m.ID == "water" {
		if m.Formula != "" {
			return m.Formula
		}
	}
	return m.Name
}

// Catalog is an immutable, concurrency-safe set of materials.
type Catalog struct {
	materials []Material
	exact     map[string]int
}

// Load parses a JSON array of materials.
func Load(data []byte) (*Catalog, error) {
	var materials []Material
	if err := json.Unmarshal(data, &materials); err != nil {
		return nil, fmt.Errorf("parse materials: %w", err)
	}

	c := &Catalog{
		materials: materials,
		exact:     make(map[string]int, len(materials)*3),
	}
	for i, m := range materials {
		keys := append([]string{m.ID, m.Name, m.Formula}, m.Aliases...)
		for _, k := range keys {
			k = normalize(k)
			if k == "" {
				continue
			}
			// First entry wins so that shared formulas resolve predictably.
			if _, ok := c.exact[k]; !ok {
				c.exact[k] = i
			}
		}
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(materialsJSON)
		if err != nil {
			panic(err) // embedded data is fixed at build time
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Find looks a material up by id, name, formula or alias, ignoring case.
// Exact matches win; otherwise the first material whose name or id contains
// the query is returned.
func (c *Catalog) Find(name string) (Material, bool) {
	q := normalize(name)
	if q == "" {
		return Material{}, false
	}
	if i, ok := c.exact[q]; ok {
		return c.materials[i], true
	}
	for _, m := range c.materials {
		if strings.Contains(normalize(m.Name), q) || strings.Contains(normalize(m.ID), q) {
			return m, true
		}
	}
	return Material{}, false
}

// Len returns the number of materials.
func (c *Catalog) Len() int {
	return len(c.materials)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "_", " ")
}
