package rest

import (
	"encoding/json"
	"net/http"

	"property-admin-service/internal/contextkeys"
	"property-admin-service/internal/core/port"
	"property-admin-service/internal/core/session"
)

// AuthHandlers обслуживает вход, выход и проверку сессии.
type AuthHandlers struct {
	gate  *session.Gate
	store *session.Store
}

func NewAuthHandlers(gate *session.Gate, store *session.Store) *AuthHandlers {
	return &AuthHandlers{gate: gate, store: store}
}

// Login обрабатывает POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Login"})

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode login request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		WriteJSONError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"email": req.Email})
	handlerLogger.Info("Processing login request", nil)

	if err := h.gate.Login(r.Context(), req.Email, req.Password); err != nil {
		RespondWithDomainError(w, handlerLogger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, SessionResponse{
		Authenticated: true,
		User:          toUserResponse(h.store.User()),
	})
}

// Logout обрабатывает POST /auth/logout. Выход всегда успешен:
// недоступность удаленного API локальный выход не блокирует.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.gate.Logout(r.Context())
	RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "logged out"})
}

// Session обрабатывает GET /auth/session - навбар спрашивает,
// кто вошел. Доступен и без сессии.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, SessionResponse{
		Authenticated: h.store.IsAuthenticated(),
		User:          toUserResponse(h.store.User()),
	})
}
