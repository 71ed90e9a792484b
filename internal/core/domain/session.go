package domain

// Session - текущее состояние аутентификации.
// Инвариант: токен присутствует тогда и только тогда, когда
// пользователь считается вошедшим.
type Session struct {
	Token string
	User  *User
}

// IsAuthenticated сообщает, можно ли пускать на защищенные экраны.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}
