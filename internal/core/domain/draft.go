package domain

import "strings"

// PropertyDraft - редактируемая рабочая копия объявления до отправки.
// Это надмножество записываемых полей Property; файлы к ней
// прикрепляются отдельно (см. viewmodel).
type PropertyDraft struct {
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
	ContactName  string
	ContactPhone string
	ContactEmail string
}

// NewPropertyDraft - значения по умолчанию для формы создания.
func NewPropertyDraft() PropertyDraft {
	return PropertyDraft{
		PropertyType: PropertyTypeApartment,
		Status:       StatusAvailable,
		Floors:       1,
	}
}

// DraftFromProperty наполняет черновик из загруженной сущности
// (режим редактирования).
func DraftFromProperty(p *Property) PropertyDraft {
	d := PropertyDraft{
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
		ContactName:  p.ContactName,
		ContactPhone: p.ContactPhone,
		ContactEmail: p.ContactEmail,
	}
	if p.Floors == 0 {
		d.Floors = 1
	}
	d.Features = append(d.Features, p.Features...)
	return d
}

// ParseFeatures разбирает текстовое поле "особенности": разделитель -
// запятая, пробелы по краям отбрасываются, пустые токены пропускаются.
// Порядок сохраняется.
func ParseFeatures(input string) []string {
	var features []string
	for _, token := range strings.Split(input, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		features = append(features, token)
	}
	return features
}

// FeaturesText - обратная операция для отображения в форме.
func (d PropertyDraft) FeaturesText() string {
	return strings.Join(d.Features, ", ")
}
