package domain_test

import (
	"testing"

	"property-admin-service/internal/core/domain"
)

func TestFiltersEncodeOmitsEmpty(t *testing.T) {
	f := domain.PropertyFilters{Page: 1}
	if got := f.Encode(); got != "page=1" {
		t.Fatalf("Encode() = %q, want %q", got, "page=1")
	}
}

func TestFiltersEncodeCanonical(t *testing.T) {
	min := 50000
	a := domain.PropertyFilters{Page: 2, City: "Minsk", Search: "flat", MinPrice: &min}
	b := domain.PropertyFilters{Search: "flat", MinPrice: &min, City: "Minsk", Page: 2}

	if a.Encode() != b.Encode() {
		t.Fatalf("same filters encode differently: %q vs %q", a.Encode(), b.Encode())
	}

	want := "city=Minsk&min_price=50000&page=2&search=flat"
	if got := a.Encode(); got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestDefaultFilters(t *testing.T) {
	f := domain.DefaultFilters()
	if f.Page != 1 || f.Sort != "created_at" || f.Order != "desc" {
		t.Fatalf("unexpected defaults: %+v", f)
	}
	if f.Search != "" || f.MinPrice != nil || f.MaxPrice != nil {
		t.Fatalf("filters must start empty: %+v", f)
	}
}
