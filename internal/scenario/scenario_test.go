package scenario

import (
	"testing"

	"github.com/talgya/terra-sim/internal/planet"
	"github.com/talgya/terra-sim/internal/terrasim"
)

func TestBodiesStableForSeed(t *testing.T) {
	a := Bodies(1, terrasim.DefaultConfig())
	b := Bodies(1, terrasim.DefaultConfig())
	c := Bodies(2, terrasim.DefaultConfig())
	if len(a) != 4 {
		t.Fatalf("bodies = %d, want 4", len(a))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("%s: id %s vs %s for the same seed", a[i].Name, a[i].ID, b[i].ID)
		}
		if a[i].ID == c[i].ID {
			t.Fatalf("%s: same id for different seeds", a[i].Name)
		}
		if len(a[i].Geosphere.Plates) != len(b[i].Geosphere.Plates) {
			t.Fatalf("%s: plate count differs for the same seed", a[i].Name)
		}
	}
}

func TestBodiesAreConsistent(t *testing.T) {
	for _, b := range Bodies(7, terrasim.DefaultConfig()) {
		if b.Geosphere == nil || len(b.Geosphere.Materials) == 0 {
			t.Fatalf("%s has no geosphere materials", b.Name)
		}
		if err := planet.CheckInvariants(b); err != nil {
			t.Fatalf("%s: %v", b.Name, err)
		}
	}
}

func TestMarsKeepsPolarVolatiles(t *testing.T) {
	for _, b := range Bodies(3, terrasim.DefaultConfig()) {
		if b.Name != Mars {
			continue
		}
		if b.Geosphere.StoredVolatile("CO2") <= 0 {
			t.Fatalf("mars lost its CO2 caps")
		}
		return
	}
	t.Fatalf("no %s in scenario", Mars)
}

func TestExoticClasses(t *testing.T) {
	want := map[string]string{
		Earth: terrasim.ExoticTerrestrial,
		Ember: terrasim.ExoticCarbonPlanet,
		Frost: terrasim.ExoticIceGiant,
	}
	for _, b := range Bodies(1, terrasim.DefaultConfig()) {
		if w, ok := want[b.Name]; ok {
			if got := terrasim.ClassifyExotic(b); got != w {
				t.Fatalf("%s classified %s, want %s", b.Name, got, w)
			}
		}
	}
}
