package session

import (
	"sync"

	"property-admin-service/internal/core/domain"
)

// Store - единственное место, где живет текущая сессия.
// HTTP-адаптер читает отсюда токен и сбрасывает сессию при 401,
// поэтому доступ защищен мьютексом.
type Store struct {
	mu      sync.RWMutex
	session *domain.Session
}

func NewStore() *Store {
	return &Store{}
}

// Set сохраняет новую сессию после успешного логина.
func (s *Store) Set(session *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
}

// Clear забывает сессию. После этого любой защищенный экран
// отправляет на логин.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

// Token возвращает токен или пустую строку.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// User возвращает текущего пользователя или nil.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	return s.session.User
}

// IsAuthenticated сообщает, есть ли действующая сессия.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsAuthenticated()
}
