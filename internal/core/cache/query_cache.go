package cache

import (
	"context"
	"strings"
	"sync"

	"property-admin-service/internal/core/port"
)

type status int

const (
	statusIdle status = iota
	statusPending
	statusSuccess
	statusError
)

// entry - состояние одного ключа кэша.
type entry struct {
	status status
	value  interface{}
	err    error

	// stale = true означает, что значение инвалидировано записью:
	// следующее чтение обязано перезапросить данные.
	stale bool

	// gen - поколение последнего запущенного запроса. Ответ более
	// старого поколения не имеет права перезаписать значение.
	gen uint64

	// done закрывается по завершении запроса текущего поколения.
	done chan struct{}
}

// QueryCache - процессный кэш читающих запросов. У каждого ключа
// не более одного летящего запроса; конкурентные читатели
// присоединяются к нему и видят один и тот же результат.
//
// TTL нет намеренно: бэкенд один и авторитетный, устаревание
// наступает только через явную инвалидацию после записи.
type QueryCache struct {
	mu      sync.Mutex
	entries map[string]*entry
	logger  port.LoggerPort
}

func NewQueryCache(logger port.LoggerPort) *QueryCache {
	return &QueryCache{
		entries: make(map[string]*entry),
		logger:  logger.WithFields(port.Fields{"component": "query_cache"}),
	}
}

// Fetch реализует машину состояний ключа:
// idle -> pending -> success|error, повторный Fetch после
// error или инвалидации снова переводит ключ в pending.
func (c *QueryCache) Fetch(ctx context.Context, key string, fetch port.FetchFunc) (interface{}, error) {
	for {
		c.mu.Lock()
		e, ok := c.entries[key]
		if !ok {
			e = &entry{} // statusIdle
			c.entries[key] = e
		}

		if e.status == statusPending && !e.stale {
			// Запрос уже летит - присоединяемся, а не дублируем.
			done := e.done
			c.mu.Unlock()
			select {
			case <-done:
				continue // перечитываем состояние ключа
			case <-ctx.Done():
				// Вызывающий потерял интерес. Сам сетевой запрос
				// не прерываем - его результат достанется остальным.
				return nil, ctx.Err()
			}
		}

		if e.status == statusSuccess && !e.stale {
			value := e.value
			c.mu.Unlock()
			return value, nil
		}

		// idle, error или stale: запускаем новое поколение.
		e.status = statusPending
		e.stale = false
		e.err = nil
		e.gen++
		gen := e.gen
		done := make(chan struct{})
		e.done = done
		c.mu.Unlock()

		c.logger.Debug("Cache miss, fetching", port.Fields{"key": key, "generation": gen})
		value, err := fetch(ctx)

		c.mu.Lock()
		if e.gen != gen {
			// Пока ответ летел, для ключа стартовало более новое
			// поколение. Устаревший ответ в кэш не записываем,
			// но инициатору отдаем - его запрос честно выполнен.
			c.mu.Unlock()
			close(done)
			c.logger.Debug("Discarding stale response", port.Fields{"key": key, "generation": gen})
			return value, err
		}
		if err != nil {
			e.status = statusError
			e.err = err
			e.value = nil
		} else {
			e.status = statusSuccess
			e.value = value
		}
		// e.stale не трогаем: инвалидация, пришедшая во время полета,
		// должна пережить запись результата.
		close(done)
		c.mu.Unlock()
		return value, err
	}
}

// Invalidate помечает перечисленные ключи устаревшими.
func (c *QueryCache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		if e, ok := c.entries[key]; ok {
			e.stale = true
		}
	}
}

// InvalidatePrefix помечает устаревшим все ключевое пространство
// с данным префиксом - так запись сбрасывает список для всех
// комбинаций фильтров сразу.
func (c *QueryCache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for key, e := range c.entries {
		if strings.HasPrefix(key, prefix) {
			e.stale = true
			n++
		}
	}
	c.logger.Debug("Invalidated key space", port.Fields{"prefix": prefix, "entries": n})
}

// Clear сбрасывает кэш целиком (выход из сессии).
func (c *QueryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// Len возвращает число записей. Используется в логах и тестах.
func (c *QueryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
