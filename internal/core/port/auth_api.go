package port

import (
	"context"

	"property-admin-service/internal/core/domain"
)

// AuthAPIPort - операции аутентификации удаленного API.
type AuthAPIPort interface {
	// Login обменивает учетные данные на сессию. На запрос логина
	// токен не подставляется.
	Login(ctx context.Context, email, password string) (*domain.Session, error)

	// Logout отзывает токен на сервере. Вызывается best-effort:
	// локальный выход не должен блокироваться недоступностью сервера.
	Logout(ctx context.Context) error
}
