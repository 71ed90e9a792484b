package cache_test

import (
	"strings"
	"testing"

	"property-admin-service/internal/core/cache"
	"property-admin-service/internal/core/domain"
)

func TestListKeyIsCanonical(t *testing.T) {
	max := 200000
	a := domain.PropertyFilters{Page: 3, City: "Minsk", MaxPrice: &max, Order: "asc"}
	b := domain.PropertyFilters{Order: "asc", MaxPrice: &max, City: "Minsk", Page: 3}

	if cache.ListKey(a) != cache.ListKey(b) {
		t.Fatalf("same filters produce different keys:\n%s\n%s", cache.ListKey(a), cache.ListKey(b))
	}
	if !strings.HasPrefix(cache.ListKey(a), cache.ListKeyPrefix) {
		t.Fatalf("list key outside its key space: %s", cache.ListKey(a))
	}
}

func TestListKeyDistinguishesFilters(t *testing.T) {
	a := cache.ListKey(domain.PropertyFilters{Page: 1, City: "Minsk"})
	b := cache.ListKey(domain.PropertyFilters{Page: 1, City: "Brest"})
	c := cache.ListKey(domain.PropertyFilters{Page: 2, City: "Minsk"})

	if a == b || a == c {
		t.Fatalf("distinct filters collided: %s %s %s", a, b, c)
	}
}

func TestDetailKeyOutsideListKeySpace(t *testing.T) {
	key := cache.DetailKey(42)
	if strings.HasPrefix(key, cache.ListKeyPrefix) {
		t.Fatalf("detail key %q falls under list prefix", key)
	}
	if key == cache.DetailKey(43) {
		t.Fatal("detail keys collided")
	}
}
