package rest

import (
	"net/http"

	"property-admin-service/internal/core/session"
)

// RequireSession закрывает защищенные маршруты: без действующей
// сессии браузер получает 401 и уходит на экран логина. Это же
// происходит, когда сессию сбросил глобальный обработчик 401
// от удаленного API - явный logout не нужен.
func RequireSession(store *session.Store) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !store.IsAuthenticated() {
				WriteJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
