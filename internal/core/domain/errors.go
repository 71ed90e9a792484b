package domain

import (
	"errors"
	"fmt"
)

// Ошибки, которые могут вернуться из фасада удаленного API.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("property not found")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// ValidationError - отказ сервера (или локального контракта) с
// привязкой сообщений к полям формы. Первое сообщение в списке -
// то, что показывается под полем.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return "validation failed"
}

// FirstMessage возвращает сообщение для поля или пустую строку.
func (e *ValidationError) FirstMessage(field string) string {
	if msgs, ok := e.Fields[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// TransientError - сетевая или серверная ошибка без специальной
// обработки: показывается как page-level alert, ретраев нет.
type TransientError struct {
	StatusCode int
	Message    string
}

func (e *TransientError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("remote api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote api unreachable: %s", e.Message)
}
