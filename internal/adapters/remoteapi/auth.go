package remoteapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"property-admin-service/internal/core/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login обменивает учетные данные на токен и пользователя.
// Единственный запрос, который идет без Authorization-заголовка.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	payload, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/login", nil, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp loginResponse
	if err := c.do(req, true, &resp); err != nil {
		return nil, err
	}

	return &domain.Session{Token: resp.Token, User: resp.User.toDomain()}, nil
}

// Logout отзывает токен на сервере.
func (c *Client) Logout(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/logout", nil, nil)
	if err != nil {
		return err
	}
	return c.do(req, false, nil)
}
