package planet

import (
	"errors"
	"fmt"
	"math"
)

// Tolerance for percentage sums.
const percentTolerance = 1e-6

// CheckInvariants reports every conservation rule the body currently breaks.
func CheckInvariants(b *CelestialBody) error {
	var errs []error

	if a := b.Atmosphere; a != nil {
		sum := 0.0
		for _, g := range a.Gases {
			if g.Mass < 0 || math.IsNaN(g.Mass) {
				errs = append(errs, fmt.Errorf("gas %s: negative mass %g", g.Name, g.Mass))
			}
			sum += g.Mass
		}
		if math.Abs(sum-a.TotalMass) > 1e-9*math.Max(1, a.TotalMass) {
			errs = append(errs, fmt.Errorf("atmosphere total %g != gas sum %g", a.TotalMass, sum))
		}
		if a.TotalMass > 0 && math.Abs(a.PercentageSum()-100) > percentTolerance {
			errs = append(errs, fmt.Errorf("gas percentages sum to %g", a.PercentageSum()))
		}
		if a.Dust < 0 || a.Dust > 1 {
			errs = append(errs, fmt.Errorf("dust %g outside [0,1]", a.Dust))
		}
	}

	if h := b.Hydrosphere; h != nil {
		for _, r := range h.Reservoirs {
			if r.Volume < 0 {
				errs = append(errs, fmt.Errorf("reservoir %s: negative volume %g", r.Name, r.Volume))
			}
		}
	}

	if bio := b.Biosphere; bio != nil {
		for _, lf := range bio.LifeForms {
			if lf.Population < 0 {
				errs = append(errs, fmt.Errorf("life form %s: negative population", lf.Name))
			}
		}
		if bio.HabitableRatio < 0 || bio.HabitableRatio > 1 {
			errs = append(errs, fmt.Errorf("habitable ratio %g outside [0,1]", bio.HabitableRatio))
		}
	}

	if g := b.Geosphere; g != nil {
		for _, layer := range Layers {
			mats := g.LayerMaterials(layer)
			if len(mats) == 0 || g.LayerMass(layer) == 0 {
				continue
			}
			sum := 0.0
			for _, m := range mats {
				if m.Mass < 0 {
					errs = append(errs, fmt.Errorf("%s %s: negative mass", layer, m.Name))
				}
				sum += m.Percentage
			}
			if math.Abs(sum-100) > percentTolerance {
				errs = append(errs, fmt.Errorf("%s percentages sum to %g", layer, sum))
			}
		}
	}

	return errors.Join(errs...)
}
