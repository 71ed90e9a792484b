package remoteapi

import (
	"time"

	"property-admin-service/internal/core/domain"
)

// DTO проводного формата удаленного API. Опциональные числовые поля
// приходят как null, поэтому здесь указатели; в домен они
// разворачиваются в ноль либо остаются указателями, если отсутствие
// значения значимо (координаты, год постройки).

type userDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type propertyImageDTO struct {
	ID         int64  `json:"id"`
	PropertyID int64  `json:"property_id"`
	ImagePath  string `json:"image_path"`
	ImageName  string `json:"image_name"`
	IsPrimary  bool   `json:"is_primary"`
	SortOrder  int    `json:"sort_order"`
}

type propertyDTO struct {
	ID           int64              `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	PropertyType string             `json:"property_type"`
	Status       string             `json:"status"`
	Price        float64            `json:"price"`
	Area         float64            `json:"area"`
	Bedrooms     *int               `json:"bedrooms"`
	Bathrooms    *int               `json:"bathrooms"`
	Floors       *int               `json:"floors"`
	Address      string             `json:"address"`
	City         string             `json:"city"`
	District     string             `json:"district"`
	PostalCode   string             `json:"postal_code"`
	Latitude     *float64           `json:"latitude"`
	Longitude    *float64           `json:"longitude"`
	YearBuilt    *int               `json:"year_built"`
	Features     []string           `json:"features"`
	Images       []propertyImageDTO `json:"images"`
	ContactName  string             `json:"contact_name"`
	ContactPhone string             `json:"contact_phone"`
	ContactEmail string             `json:"contact_email"`
	CreatedAt    string             `json:"created_at"`
	UpdatedAt    string             `json:"updated_at"`
}

type paginationMetaDTO struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	Total       int `json:"total"`
	PerPage     int `json:"per_page"`
	From        int `json:"from"`
	To          int `json:"to"`
}

type listResponse struct {
	Data []propertyDTO     `json:"data"`
	Meta paginationMetaDTO `json:"meta"`
}

type itemResponse struct {
	Data propertyDTO `json:"data"`
}

func (u userDTO) toDomain() *domain.User {
	return &domain.User{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (i propertyImageDTO) toDomain() domain.PropertyImage {
	return domain.PropertyImage{
		ID:         i.ID,
		PropertyID: i.PropertyID,
		ImagePath:  i.ImagePath,
		ImageName:  i.ImageName,
		IsPrimary:  i.IsPrimary,
		SortOrder:  i.SortOrder,
	}
}

func (p propertyDTO) toDomain() domain.Property {
	prop := domain.Property{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		PropertyType: p.PropertyType,
		Status:       p.Status,
		Price:        p.Price,
		Area:         p.Area,
		Bedrooms:     intOrZero(p.Bedrooms),
		Bathrooms:    intOrZero(p.Bathrooms),
		Floors:       intOrZero(p.Floors),
		Address:      p.Address,
		City:         p.City,
		District:     p.District,
		PostalCode:   p.PostalCode,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		YearBuilt:    p.YearBuilt,
		Features:     p.Features,
		ContactName:  p.ContactName,
		ContactPhone: p.ContactPhone,
		ContactEmail: p.ContactEmail,
		CreatedAt:    parseAPITime(p.CreatedAt),
		UpdatedAt:    parseAPITime(p.UpdatedAt),
	}
	for _, img := range p.Images {
		prop.Images = append(prop.Images, img.toDomain())
	}
	return prop
}

func (m paginationMetaDTO) toDomain() domain.PaginationMeta {
	return domain.PaginationMeta{
		CurrentPage: m.CurrentPage,
		LastPage:    m.LastPage,
		Total:       m.Total,
		PerPage:     m.PerPage,
		From:        m.From,
		To:          m.To,
	}
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// parseAPITime разбирает таймстемпы API. Формат не зафиксирован
// контрактом жестко, поэтому пробуем RFC3339 и обычный SQL-формат;
// нераспознанное значение дает нулевое время, а не ошибку чтения.
func parseAPITime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
