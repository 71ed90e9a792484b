package domain_test

import (
	"reflect"
	"testing"

	"property-admin-service/internal/core/domain"
)

func TestParseFeatures(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"Pool, Gym,  Garden ,", []string{"Pool", "Gym", "Garden"}},
		{"Balcony", []string{"Balcony"}},
		{" , ,, ", nil},
		{"", nil},
		{"a,b,a", []string{"a", "b", "a"}},
	}

	for _, c := range cases {
		got := domain.ParseFeatures(c.input)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("ParseFeatures(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestFeaturesTextRoundTrip(t *testing.T) {
	d := domain.PropertyDraft{Features: []string{"Pool", "Gym"}}
	text := d.FeaturesText()
	if text != "Pool, Gym" {
		t.Fatalf("FeaturesText() = %q", text)
	}
	if got := domain.ParseFeatures(text); !reflect.DeepEqual(got, d.Features) {
		t.Fatalf("round trip lost features: %v", got)
	}
}

func TestNewPropertyDraftDefaults(t *testing.T) {
	d := domain.NewPropertyDraft()

	if d.PropertyType != domain.PropertyTypeApartment {
		t.Errorf("PropertyType = %q, want %q", d.PropertyType, domain.PropertyTypeApartment)
	}
	if d.Status != domain.StatusAvailable {
		t.Errorf("Status = %q, want %q", d.Status, domain.StatusAvailable)
	}
	if d.Floors != 1 {
		t.Errorf("Floors = %d, want 1", d.Floors)
	}
	if d.Price != 0 || d.Area != 0 || d.Bedrooms != 0 {
		t.Errorf("numeric defaults must be zero: %+v", d)
	}
}

func TestDraftFromProperty(t *testing.T) {
	lat := 53.9
	year := 1998
	p := &domain.Property{
		ID:           7,
		Title:        "Two-room flat",
		PropertyType: domain.PropertyTypeApartment,
		Status:       domain.StatusSold,
		Price:        120000,
		Latitude:     &lat,
		YearBuilt:    &year,
		Features:     []string{"Parking"},
	}

	d := domain.DraftFromProperty(p)
	if d.Title != p.Title || d.Status != domain.StatusSold || d.Price != 120000 {
		t.Fatalf("draft does not mirror property: %+v", d)
	}
	if d.Latitude == nil || *d.Latitude != lat {
		t.Fatalf("Latitude = %v", d.Latitude)
	}
	if d.YearBuilt == nil || *d.YearBuilt != year {
		t.Fatalf("YearBuilt = %v", d.YearBuilt)
	}
	if !reflect.DeepEqual(d.Features, []string{"Parking"}) {
		t.Fatalf("Features = %v", d.Features)
	}
	// У загруженной записи этажность 0 не бывает осмысленной,
	// форма показывает 1.
	if d.Floors != 1 {
		t.Fatalf("Floors = %d, want 1", d.Floors)
	}
}
