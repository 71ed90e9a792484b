package domain

import "time"

// Типы недвижимости, которые понимает удаленный API.
const (
	PropertyTypeApartment = "apartment"
	PropertyTypeHouse     = "house"
	PropertyTypeVilla     = "villa"
	PropertyTypeOffice    = "office"
	PropertyTypeLand      = "land"
)

// Статусы жизненного цикла объявления.
const (
	StatusAvailable = "available"
	StatusSold      = "sold"
	StatusRented    = "rented"
	StatusPending   = "pending"
)

// PropertyTypes и Statuses - допустимые значения в порядке отображения.
var (
	PropertyTypes = []string{PropertyTypeApartment, PropertyTypeHouse, PropertyTypeVilla, PropertyTypeOffice, PropertyTypeLand}
	Statuses      = []string{StatusAvailable, StatusSold, StatusRented, StatusPending}
)

// Property - основная доменная сущность. Авторитетная копия живет
// на стороне удаленного API, здесь только транзитные данные.
type Property struct {
	ID           int64
	Title        string
	Description  string
	PropertyType string
	Status       string
	Price        float64
	Area         float64
	Bedrooms     int
	Bathrooms    int
	Floors       int
	Address      string
	City         string
	District     string
	PostalCode   string
	Latitude     *float64
	Longitude    *float64
	YearBuilt    *int
	Features     []string
	Images       []PropertyImage
	ContactName  string
	ContactPhone string
	ContactEmail string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PropertyImage - фотография объекта. Инвариант "не более одной primary"
// обеспечивается сервером, клиент его не проверяет.
type PropertyImage struct {
	ID         int64
	PropertyID int64
	ImagePath  string
	ImageName  string
	IsPrimary  bool
	SortOrder  int
}

// PaginationMeta - метаданные пагинации из ответа списка.
type PaginationMeta struct {
	CurrentPage int
	LastPage    int
	Total       int
	PerPage     int
	From        int
	To          int
}

// PropertyPage - одна страница списка вместе с метаданными.
type PropertyPage struct {
	Items []Property
	Meta  PaginationMeta
}

// User - оператор админки, как его описывает удаленный API.
type User struct {
	ID    int64
	Name  string
	Email string
}

// FileAttachment - содержимое файла, прикрепленного к форме.
type FileAttachment struct {
	Name string
	Data []byte
}
