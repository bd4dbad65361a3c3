package catalog

import "testing"

func TestFindByFormulaNameAndID(t *testing.T) {
	c := Default()
	for _, q := range []string{"O2", "o2", "oxygen", "Oxygen", " OXYGEN "} {
		m, ok := c.Find(q)
		if !ok {
			t.Fatalf("Find(%q) missed", q)
		}
		if m.ID != "oxygen" || m.Formula != "O2" {
			t.Fatalf("Find(%q) = %+v, want oxygen/O2", q, m)
		}
	}
}

func TestFindEruptionGases(t *testing.T) {
	c := Default()
	cases := map[string]string{
		"carbon_dioxide":    "CO2",
		"sulfur_dioxide":    "SO2",
		"water":             "H2O",
		"hydrogen_chloride": "HCl",
		"Methane":           "CH4",
	}
	for q, want := range cases {
		m, ok := c.Find(q)
		if !ok {
			t.Fatalf("Find(%q) missed", q)
		}
		if got := m.Key(); got != want {
			t.Fatalf("Find(%q).Key() = %q, want %q", q, got, want)
		}
	}
}

func TestFindSubstringFallback(t *testing.T) {
	m, ok := Default().Find("carbide")
	if !ok || m.ID != "silicon_carbide" {
		t.Fatalf("substring lookup = %+v, %v", m, ok)
	}
	ice, ok := Default().Find("Methane Ice")
	if !ok || ice.Key() != "Methane Ice" || ice.State != "solid" {
		t.Fatalf("Methane Ice lookup = %+v, %v", ice, ok)
	}
}

func TestFindMiss(t *testing.T) {
	if _, ok := Default().Find("unobtainium"); ok {
		t.Fatalf("expected miss")
	}
	if _, ok := Default().Find(""); ok {
		t.Fatalf("expected miss for empty name")
	}
}

func TestMaterialPhasePoints(t *testing.T) {
	m, ok := Default().Find("water")
	if !ok || m.FreezingPoint != 273.15 || m.BoilingPoint != 373.15 {
		t.Fatalf("water = %+v, %v", m, ok)
	}
	if m.MolarMass != 18.015 {
		t.Fatalf("water molar mass = %v", m.MolarMass)
	}
	if ar, _ := Default().Find("Ar"); ar.FreezingPoint != 0 || ar.BoilingPoint == 0 {
		t.Fatalf("argon = %+v, want boiling point only", ar)
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	if _, err := Load([]byte("{")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestPhaseTable(t *testing.T) {
	p := DefaultPhaseTable()
	want := map[string]float64{"CO2": 194.7, "N2": 63.2, "CH4": 90.7, "O2": 54.8, "H2O": 273.15}
	if len(p.Freezing) != len(want) {
		t.Fatalf("freezing table = %v, want %v", p.Freezing, want)
	}
	for gas, fp := range want {
		if got := p.FreezingPoint(gas); got != fp {
			t.Fatalf("%s freezing point = %v, want %v", gas, got, fp)
		}
	}
	if fp := p.FreezingPoint("Xe"); fp != DefaultFreezingPoint {
		t.Fatalf("default freezing point = %v", fp)
	}
}

func TestNewPhaseTableFromCustomCatalog(t *testing.T) {
	c, err := Load([]byte(`[
		{"id": "xenon", "name": "Xenon", "formula": "Xe", "molar_mass": 131.29, "state": "gas", "freezing_point": 161.4},
		{"id": "basalt", "name": "Basalt", "molar_mass": 60.08, "state": "solid"}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	p := NewPhaseTable(c, 50)
	if p.FreezingPoint("Xe") != 161.4 || p.FreezingPoint("Basalt") != 50 {
		t.Fatalf("table = %+v", p)
	}
}
