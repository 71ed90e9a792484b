package session

import (
	"context"

	"property-admin-service/internal/contextkeys"
	"property-admin-service/internal/core/port"
)

// Gate управляет жизненным циклом сессии: логин, выход и реакция
// на 401 от удаленного API. Кэш запросов привязан к сессии,
// поэтому выход сбрасывает и его.
type Gate struct {
	store   *Store
	authAPI port.AuthAPIPort
	cache   port.QueryCachePort
}

func NewGate(store *Store, authAPI port.AuthAPIPort, cache port.QueryCachePort) *Gate {
	return &Gate{
		store:   store,
		authAPI: authAPI,
		cache:   cache,
	}
}

// Login обменивает учетные данные на сессию и сохраняет ее.
func (g *Gate) Login(ctx context.Context, email, password string) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "session_gate",
		"email":     email,
	})
	logger.Info("Logging in", nil)

	sess, err := g.authAPI.Login(ctx, email, password)
	if err != nil {
		logger.Warn("Login failed", port.Fields{"error": err.Error()})
		return err
	}

	g.store.Set(sess)
	logger.Info("Logged in", nil)
	return nil
}

// Logout отзывает токен на сервере best-effort и всегда чистит
// локальное состояние: недоступность сервера не должна
// блокировать выход.
func (g *Gate) Logout(ctx context.Context) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "session_gate"})

	if g.store.IsAuthenticated() {
		if err := g.authAPI.Logout(ctx); err != nil {
			logger.Warn("Remote logout failed, clearing local session anyway", port.Fields{"error": err.Error()})
		}
	}

	g.store.Clear()
	g.cache.Clear()
	logger.Info("Logged out", nil)
}

// HandleUnauthorized - обработчик глобального 401 из HTTP-адаптера.
// Сессия сбрасывается независимо от того, какая операция словила
// отказ; браузер после этого уходит на экран логина.
func (g *Gate) HandleUnauthorized() {
	g.store.Clear()
}

// IsAuthenticated проксирует проверку в Store.
func (g *Gate) IsAuthenticated() bool {
	return g.store.IsAuthenticated()
}
