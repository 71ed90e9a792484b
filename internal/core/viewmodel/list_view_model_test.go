package viewmodel_test

import (
	"context"
	"errors"
	"testing"

	"property-admin-service/internal/core/domain"
	"property-admin-service/internal/core/viewmodel"
)

func TestFilterChangeResetsPage(t *testing.T) {
	api := &fakePropertyAPI{t: t}
	vm := viewmodel.NewPropertyListViewModel(newTestCache(t), api)

	if err := vm.SetFilter("page", "3"); err != nil {
		t.Fatal(err)
	}
	if got := vm.Filters().Page; got != 3 {
		t.Fatalf("Page = %d, want 3", got)
	}

	if err := vm.SetFilter("city", "Minsk"); err != nil {
		t.Fatal(err)
	}
	f := vm.Filters()
	if f.Page != 1 {
		t.Fatalf("filter change kept page %d, want reset to 1", f.Page)
	}
	if f.City != "Minsk" {
		t.Fatalf("City = %q", f.City)
	}
}

func TestSetPageClampsToLastPage(t *testing.T) {
	api := &fakePropertyAPI{t: t}
	api.list = func(ctx context.Context, filters domain.PropertyFilters) (*domain.PropertyPage, error) {
		return pageOf(nil, filters.Page, 3), nil
	}
	vm := viewmodel.NewPropertyListViewModel(newTestCache(t), api)

	// Пока метаданных нет, клампить не по чему - только снизу.
	vm.SetPage(0)
	if got := vm.Filters().Page; got != 1 {
		t.Fatalf("Page = %d, want 1", got)
	}

	if state := vm.Load(context.Background()); state.Err != nil {
		t.Fatal(state.Err)
	}

	vm.SetPage(4)
	if got := vm.Filters().Page; got != 3 {
		t.Fatalf("page 4 of 3 not clamped: got %d", got)
	}

	vm.SetPage(-1)
	if got := vm.Filters().Page; got != 1 {
		t.Fatalf("negative page not clamped: got %d", got)
	}
}

func TestLoadGoesThroughCache(t *testing.T) {
	calls := 0
	api := &fakePropertyAPI{t: t}
	api.list = func(ctx context.Context, filters domain.PropertyFilters) (*domain.PropertyPage, error) {
		calls++
		return pageOf([]domain.Property{{ID: 1, Title: "Flat"}}, filters.Page, 1), nil
	}
	vm := viewmodel.NewPropertyListViewModel(newTestCache(t), api)

	for i := 0; i < 3; i++ {
		state := vm.Load(context.Background())
		if state.Err != nil {
			t.Fatal(state.Err)
		}
		if len(state.Rows) != 1 || state.Rows[0].Title != "Flat" {
			t.Fatalf("rows = %+v", state.Rows)
		}
	}
	if calls != 1 {
		t.Fatalf("api.List called %d times, want 1", calls)
	}

	// Смена фильтра - другой ключ, другой запрос.
	if err := vm.SetFilter("status", domain.StatusSold); err != nil {
		t.Fatal(err)
	}
	if state := vm.Load(context.Background()); state.Err != nil {
		t.Fatal(state.Err)
	}
	if calls != 2 {
		t.Fatalf("api.List called %d times, want 2", calls)
	}
}

func TestLoadReportsError(t *testing.T) {
	boom := &domain.TransientError{Message: "connection refused"}
	api := &fakePropertyAPI{t: t}
	api.list = func(ctx context.Context, filters domain.PropertyFilters) (*domain.PropertyPage, error) {
		return nil, boom
	}
	vm := viewmodel.NewPropertyListViewModel(newTestCache(t), api)

	state := vm.Load(context.Background())
	var te *domain.TransientError
	if !errors.As(state.Err, &te) {
		t.Fatalf("Err = %v", state.Err)
	}
	if len(state.Rows) != 0 {
		t.Fatalf("rows on error: %+v", state.Rows)
	}
}

func TestSetFilterRejectsGarbage(t *testing.T) {
	vm := viewmodel.NewPropertyListViewModel(newTestCache(t), &fakePropertyAPI{t: t})

	if err := vm.SetFilter("page", "abc"); err == nil {
		t.Fatal("non-numeric page accepted")
	}
	if err := vm.SetFilter("min_price", "дорого"); err == nil {
		t.Fatal("non-numeric min_price accepted")
	}
	if err := vm.SetFilter("bogus", "x"); err == nil {
		t.Fatal("unknown field accepted")
	}
}
