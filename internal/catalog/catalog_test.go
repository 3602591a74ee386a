package catalog

import "testing"

func TestNormalizeVehicleType(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"тент", "Тент"},
		{"штора", "Тент"},
		{"firanka", "Тент"},
		{"Тент", "Тент"},
		{"реф", "Реф (рефрижератор)"},
		{"chłodnia", "Реф (рефрижератор)"},
		{"Реф (рефрижератор)", "Реф (рефрижератор)"},
		{" BDF ", "BDF"},
		{"зерновоз", "зерновоз"},
	}

	for _, tc := range cases {
		if got := NormalizeVehicleType(tc.in); got != tc.want {
			t.Errorf("NormalizeVehicleType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeVehicleTypeIdempotent(t *testing.T) {
	inputs := []string{"тент", "реф", "контейнер", "что-то новое"}
	inputs = append(inputs, VehicleTypes...)

	for _, in := range inputs {
		once := NormalizeVehicleType(in)
		if twice := NormalizeVehicleType(once); twice != once {
			t.Errorf("not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestNormalizeVehicleTypeCanonicalUnchanged(t *testing.T) {
	for _, canonical := range VehicleTypes {
		if got := NormalizeVehicleType(canonical); got != canonical {
			t.Errorf("NormalizeVehicleType(%q) = %q, want the canonical value back", canonical, got)
		}
	}
}

func TestNormalizeRegion(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ЕС", RegionAllEurope},
		{"вся Европа", RegionAllEurope},
		{"По всей Европе", RegionAllEurope},
		{"Англия", RegionUK},
		{"UK", RegionUK},
		{"Польша", RegionPoland},
		{"Германия", "Германия"},
		{"Грузия", "грузия"},
	}

	for _, tc := range cases {
		if got := NormalizeRegion(tc.in); got != tc.want {
			t.Errorf("NormalizeRegion(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if NormalizeRegion("По всей Европе") == NormalizeRegion("Польша") {
		t.Error("all-of-Europe must stay distinct from a single country")
	}
}

func TestNormalizeCrewType(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"парный", CrewPaired},
		{"семейный экипаж", CrewPaired},
		{"муж и жена", CrewPaired},
		{"в двойке", CrewPaired},
		{"соло", CrewSolo},
		{"", ""},
		{"не знаю", ""},
	}

	for _, tc := range cases {
		if got := NormalizeCrewType(tc.in); got != tc.want {
			t.Errorf("NormalizeCrewType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidate(t *testing.T) {
	if w := Validate(StatusHas, DocumentStatuses, "adr_status"); w != "" {
		t.Errorf("expected no warning for known value, got %q", w)
	}

	if w := Validate("", DocumentStatuses, "adr_status"); w != "" {
		t.Errorf("unknown (empty) value must not warn, got %q", w)
	}

	w := Validate("может быть", DocumentStatuses, "adr_status")
	if w == "" {
		t.Fatal("expected a warning for a value outside the vocabulary")
	}
}

func TestValidateList(t *testing.T) {
	warnings := ValidateList([]string{"CE", "X", "B", "Y"}, LicenseCategories, "license_categories")
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}

	if warnings := ValidateList(nil, LicenseCategories, "license_categories"); len(warnings) != 0 {
		t.Fatalf("empty list must produce no warnings, got %v", warnings)
	}
}
