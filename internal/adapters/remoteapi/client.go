package remoteapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"property-admin-service/internal/contextkeys"
	"property-admin-service/internal/core/domain"
	"property-admin-service/internal/core/port"
)

// Сколько байт тела ошибки читаем для диагностики.
const maxErrorBody = 64 * 1024

// TokenSource отдает текущий токен сессии (или пустую строку).
type TokenSource interface {
	Token() string
}

// Client - HTTP-клиент удаленного API объявлений. Подставляет
// Authorization: Bearer на все запросы кроме логина и превращает
// статусы ответов в доменные ошибки. Любой 401 (кроме логина)
// дергает onUnauthorized - глобальный сброс сессии.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
	logger         port.LoggerPort
}

// NewClient - конструктор клиента.
func NewClient(baseURL string, tokens TokenSource, onUnauthorized func(), logger port.LoggerPort) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{},
		tokens:         tokens,
		onUnauthorized: onUnauthorized,
		logger:         logger.WithFields(port.Fields{"component": "remote_api_client"}),
	}
}

// newRequest собирает запрос к API с базовым URL и query-параметрами.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request %s %s: %w", method, path, err)
	}
	return req, nil
}

// do выполняет запрос. anonymous = true только для логина: токен
// не подставляется, а 401 означает неверные учетные данные,
// а не протухшую сессию. out - указатель для декодирования
// успешного JSON-ответа, nil если тело не нужно.
func (c *Client) do(req *http.Request, anonymous bool, out interface{}) error {
	if !anonymous {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	req.Header.Set("Accept", "application/json")

	if traceID := contextkeys.TraceIDFromContext(req.Context()); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Request to remote API failed", port.Fields{
			"method": req.Method, "path": req.URL.Path, "error": err.Error(),
		})
		return &domain.TransientError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			// Тело не нужно, но вычитываем его, чтобы соединение
			// вернулось в пул.
			io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", req.URL.Path, err)
		}
		return nil
	}

	return c.mapError(resp, anonymous)
}

// Тело ошибки в формате удаленного API: сообщение плюс, для отказов
// валидации, маппинг "поле -> упорядоченный список сообщений".
type apiErrorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// mapError превращает не-2xx ответ в доменную ошибку.
func (c *Client) mapError(resp *http.Response, anonymous bool) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body apiErrorBody
	_ = json.Unmarshal(raw, &body) // не-JSON тело оставит поля пустыми

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if anonymous {
			return domain.ErrInvalidCredentials
		}
		// Глобальный обработчик: сессия сбрасывается независимо
		// от того, какая операция словила 401.
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return domain.ErrUnauthorized

	case http.StatusNotFound:
		return domain.ErrNotFound

	case http.StatusUnprocessableEntity:
		return &domain.ValidationError{Message: body.Message, Fields: body.Errors}
	}

	// Некоторые бэкенды возвращают отказ валидации не как 422.
	if len(body.Errors) > 0 {
		return &domain.ValidationError{Message: body.Message, Fields: body.Errors}
	}

	message := body.Message
	if message == "" {
		message = strings.TrimSpace(string(raw))
	}
	return &domain.TransientError{StatusCode: resp.StatusCode, Message: message}
}
