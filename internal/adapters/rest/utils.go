package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"property-admin-service/internal/core/domain"
	"property-admin-service/internal/core/port"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// RespondWithJSON отправляет JSON-ответ.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// RespondWithDomainError отображает доменные ошибки на HTTP-статусы
// в одном месте: таксономия из ядра не должна расползаться по хендлерам.
func RespondWithDomainError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		RespondWithJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
			Message: ve.Message,
			Errors:  ve.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrNotAuthenticated):
		WriteJSONError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, err.Error())
	default:
		var te *domain.TransientError
		if errors.As(err, &te) {
			// Удаленный API недоступен или ответил 5xx: показываем
			// сырое сообщение как page-level alert, ретраев нет.
			logger.Warn("Remote API failure surfaced to UI", port.Fields{"error": te.Error()})
			WriteJSONError(w, http.StatusBadGateway, te.Error())
			return
		}
		logger.Error("Unexpected error in handler", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
