package cache

import (
	"strconv"

	"property-admin-service/internal/core/domain"
)

// Префиксы ключевых пространств. Запись в ресурс инвалидирует
// все списочное пространство плюс, для update/delete, точечный
// ключ детальной страницы.
const (
	ListKeyPrefix   = "properties:list:"
	detailKeyPrefix = "properties:detail:"
)

// ListKey - канонический ключ списочного чтения. Одинаковые фильтры
// всегда дают одинаковый ключ (см. PropertyFilters.Encode).
func ListKey(filters domain.PropertyFilters) string {
	return ListKeyPrefix + filters.Encode()
}

// DetailKey - ключ детального чтения одного объявления.
func DetailKey(id int64) string {
	return detailKeyPrefix + strconv.FormatInt(id, 10)
}
