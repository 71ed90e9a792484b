package viewmodel

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"property-admin-service/internal/core/cache"
	"property-admin-service/internal/core/domain"
	"property-admin-service/internal/core/port"
)

// ListViewState - то, что рисует экран списка.
type ListViewState struct {
	Err        error
	Rows       []domain.Property
	Pagination domain.PaginationMeta
}

// PropertyListViewModel владеет состоянием фильтров списка и
// превращает его в ключ кэша. Живет столько же, сколько приложение:
// между запросами браузера помнит последние метаданные пагинации,
// чтобы клампить номер страницы, не выпуская запрос за lastPage.
type PropertyListViewModel struct {
	mu       sync.Mutex
	filters  domain.PropertyFilters
	lastMeta *domain.PaginationMeta

	queries port.QueryCachePort
	api     port.PropertyAPIPort
}

func NewPropertyListViewModel(queries port.QueryCachePort, api port.PropertyAPIPort) *PropertyListViewModel {
	return &PropertyListViewModel{
		filters: domain.DefaultFilters(),
		queries: queries,
		api:     api,
	}
}

// SetFilter обновляет одно поле фильтров. Любое изменение, кроме
// самой страницы, сбрасывает page на 1: состав выборки поменялся
// и старый номер страницы не имеет смысла.
func (vm *PropertyListViewModel) SetFilter(field, value string) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	switch field {
	case "page":
		page := 1
		if value != "" {
			parsed, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid page %q: %w", value, err)
			}
			page = parsed
		}
		vm.setPageLocked(page)
		return nil
	case "search":
		vm.filters.Search = value
	case "city":
		vm.filters.City = value
	case "status":
		vm.filters.Status = value
	case "min_price":
		price, err := parseOptionalInt(value)
		if err != nil {
			return fmt.Errorf("invalid min_price %q: %w", value, err)
		}
		vm.filters.MinPrice = price
	case "max_price":
		price, err := parseOptionalInt(value)
		if err != nil {
			return fmt.Errorf("invalid max_price %q: %w", value, err)
		}
		vm.filters.MaxPrice = price
	case "sort":
		vm.filters.Sort = value
	case "order":
		vm.filters.Order = value
	default:
		return fmt.Errorf("unknown filter field %q", field)
	}

	vm.filters.Page = 1
	return nil
}

// SetPage переводит список на страницу, зажимая номер в [1, lastPage]
// по последним виденным метаданным. Переход на текущую страницу - no-op.
func (vm *PropertyListViewModel) SetPage(page int) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.setPageLocked(page)
}

func (vm *PropertyListViewModel) setPageLocked(page int) {
	if page < 1 {
		page = 1
	}
	if vm.lastMeta != nil && vm.lastMeta.LastPage > 0 && page > vm.lastMeta.LastPage {
		page = vm.lastMeta.LastPage
	}
	vm.filters.Page = page
}

// Filters возвращает копию текущего состояния фильтров.
func (vm *PropertyListViewModel) Filters() domain.PropertyFilters {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.filters
}

// Load читает текущую страницу через кэш и отдает состояние экрана.
// Ошибка не чистится автоматически: она живет в записи кэша, пока
// пользователь не перезапустит чтение сменой фильтра или заходом
// на экран заново.
func (vm *PropertyListViewModel) Load(ctx context.Context) ListViewState {
	vm.mu.Lock()
	filters := vm.filters
	vm.mu.Unlock()

	key := cache.ListKey(filters)
	value, err := vm.queries.Fetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		return vm.api.List(ctx, filters)
	})
	if err != nil {
		return ListViewState{Err: err}
	}

	page := value.(*domain.PropertyPage)

	vm.mu.Lock()
	meta := page.Meta
	vm.lastMeta = &meta
	vm.mu.Unlock()

	return ListViewState{Rows: page.Items, Pagination: page.Meta}
}

func parseOptionalInt(value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
