package models

import (
	"reflect"
	"testing"
)

func TestNormalizeISO3(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"USA", "USA"},
		{"usa", "USA"},
		{" gbr ", "GBR"},
		{"United States", "USA"},
		{"Russian Federation", "RUS"},
		{"Czechia", "CZE"},
		{"Turkiye", "TUR"},
		{"", ""},
		{"U5A", ""},
		{"ZZ", ""},
		{"Atlantis", ""},
	}
	for _, tc := range cases {
		if got := NormalizeISO3(tc.in); got != tc.want {
			t.Errorf("NormalizeISO3(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeCodeList(t *testing.T) {
	got := NormalizeCodeList("usa, GBR,,bogus!,FRA,USA")
	want := []string{"USA", "GBR", "FRA"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeCodeList = %v, want %v", got, want)
	}

	if got := NormalizeCodeList(""); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestValidPillar(t *testing.T) {
	for _, p := range Pillars {
		if !ValidPillar(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}
	if ValidPillar("governance") {
		t.Error("governance is not a grapher pillar")
	}
	if ValidPillar("") {
		t.Error("empty pillar should be invalid")
	}
}

func TestSeedCountriesWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range SeedCountries() {
		if len(c.ISO3) != 3 || len(c.ISO2) != 2 || c.Name == "" {
			t.Errorf("malformed seed entry: %+v", c)
		}
		if seen[c.ISO3] {
			t.Errorf("duplicate seed entry: %s", c.ISO3)
		}
		seen[c.ISO3] = true
	}
}
