package domain

import (
	"net/url"
	"strconv"
)

// PropertyFilters - состояние фильтров списка. Его каноническая
// сериализация служит и строкой запроса к удаленному API,
// и ключом кэша, поэтому она определена в одном месте.
type PropertyFilters struct {
	Page     int
	Search   string
	City     string
	Status   string
	MinPrice *int
	MaxPrice *int
	Sort     string
	Order    string // asc | desc
}

// DefaultFilters - состояние списка при первом открытии экрана.
func DefaultFilters() PropertyFilters {
	return PropertyFilters{
		Page:  1,
		Sort:  "created_at",
		Order: "desc",
	}
}

// Values сериализует фильтры в query-параметры. Пустые поля не
// попадают в запрос - сервер трактует отсутствие как "без фильтра".
func (f PropertyFilters) Values() url.Values {
	v := url.Values{}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.City != "" {
		v.Set("city", f.City)
	}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	if f.MinPrice != nil {
		v.Set("min_price", strconv.Itoa(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		v.Set("max_price", strconv.Itoa(*f.MaxPrice))
	}
	if f.Sort != "" {
		v.Set("sort", f.Sort)
	}
	if f.Order != "" {
		v.Set("order", f.Order)
	}
	return v
}

// Encode возвращает каноническую строку: url.Values.Encode
// сортирует ключи, так что одинаковые фильтры всегда дают
// одинаковую строку независимо от порядка присваиваний.
func (f PropertyFilters) Encode() string {
	return f.Values().Encode()
}
