package port

import "context"

// FetchFunc выполняет фактический запрос к источнику данных.
type FetchFunc func(ctx context.Context) (interface{}, error)

// QueryCachePort - кэш читающих запросов с дедупликацией.
// Ключ - каноническая сериализация (операция, параметры).
type QueryCachePort interface {
	// Fetch возвращает закэшированное значение или выполняет fetch.
	// Для ключа одновременно выполняется не более одного запроса:
	// конкурентные вызовы присоединяются к уже летящему.
	Fetch(ctx context.Context, key string, fetch FetchFunc) (interface{}, error)

	// Invalidate помечает перечисленные ключи устаревшими:
	// следующее чтение перезапросит данные вместо отдачи кэша.
	Invalidate(keys ...string)

	// InvalidatePrefix помечает устаревшим все пространство ключей
	// с данным префиксом (например, все комбинации фильтров списка).
	InvalidatePrefix(prefix string)

	// Clear сбрасывает кэш целиком. Вызывается при выходе из сессии.
	Clear()
}
