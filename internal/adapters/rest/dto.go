package rest

import (
	"time"

	"property-admin-service/internal/core/domain"
	"property-admin-service/internal/core/viewmodel"
)

// LoginRequest - тело запроса на вход.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse - текущее состояние сессии для навбара.
type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user,omitempty"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ValidationErrorResponse - отказ валидации в том же формате,
// в котором его присылает удаленный API: форма рисует сообщения
// под полями и остается редактируемой.
type ValidationErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type PropertyImageResponse struct {
	ID         int64  `json:"id"`
	PropertyID int64  `json:"property_id"`
	ImagePath  string `json:"image_path"`
	ImageName  string `json:"image_name"`
	IsPrimary  bool   `json:"is_primary"`
	SortOrder  int    `json:"sort_order"`
}

type PropertyResponse struct {
	ID           int64                   `json:"id"`
	Title        string                  `json:"title"`
	Description  string                  `json:"description,omitempty"`
	PropertyType string                  `json:"property_type"`
	Status       string                  `json:"status"`
	Price        float64                 `json:"price"`
	Area         float64                 `json:"area"`
	Bedrooms     int                     `json:"bedrooms"`
	Bathrooms    int                     `json:"bathrooms"`
	Floors       int                     `json:"floors"`
	Address      string                  `json:"address"`
	City         string                  `json:"city"`
	District     string                  `json:"district"`
	PostalCode   string                  `json:"postal_code,omitempty"`
	Latitude     *float64                `json:"latitude,omitempty"`
	Longitude    *float64                `json:"longitude,omitempty"`
	YearBuilt    *int                    `json:"year_built,omitempty"`
	Features     []string                `json:"features,omitempty"`
	Images       []PropertyImageResponse `json:"images,omitempty"`
	ContactName  string                  `json:"contact_name"`
	ContactPhone string                  `json:"contact_phone"`
	ContactEmail string                  `json:"contact_email,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

type PaginationResponse struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	Total       int `json:"total"`
	PerPage     int `json:"per_page"`
	From        int `json:"from"`
	To          int `json:"to"`
}

// ListViewResponse - состояние экрана списка.
type ListViewResponse struct {
	Data []PropertyResponse `json:"data"`
	Meta PaginationResponse `json:"meta"`
}

// DetailViewResponse - состояние детального экрана.
type DetailViewResponse struct {
	Data PropertyResponse `json:"data"`

	// Ключ тайла карты; пустой, если у объекта нет координат.
	Geohash string `json:"geohash,omitempty"`
}

// SavedResponse - ответ успешной отправки формы.
type SavedResponse struct {
	Data PropertyResponse `json:"data"`
}

func toUserResponse(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toPropertyResponse(p domain.Property) PropertyResponse {
	resp := PropertyResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		PropertyType: p.PropertyType,
		Status:       p.Status,
		Price:        p.Price,
		Area:         p.Area,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Floors:       p.Floors,
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
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	for _, img := range p.Images {
		resp.Images = append(resp.Images, PropertyImageResponse{
			ID:         img.ID,
			PropertyID: img.PropertyID,
			ImagePath:  img.ImagePath,
			ImageName:  img.ImageName,
			IsPrimary:  img.IsPrimary,
			SortOrder:  img.SortOrder,
		})
	}
	return resp
}

func toListViewResponse(state viewmodel.ListViewState) ListViewResponse {
	resp := ListViewResponse{
		Data: make([]PropertyResponse, 0, len(state.Rows)),
		Meta: PaginationResponse{
			CurrentPage: state.Pagination.CurrentPage,
			LastPage:    state.Pagination.LastPage,
			Total:       state.Pagination.Total,
			PerPage:     state.Pagination.PerPage,
			From:        state.Pagination.From,
			To:          state.Pagination.To,
		},
	}
	for _, row := range state.Rows {
		resp.Data = append(resp.Data, toPropertyResponse(row))
	}
	return resp
}
