package port

// Fields - произвольный структурированный контекст для записи лога.
type Fields map[string]interface{}

// LoggerPort - интерфейс логирования, не зависящий от конкретной
// библиотеки. Реализации: slog (tint), fluent-bit, composite.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)

	// WithFields возвращает новый логгер с добавленным контекстом.
	WithFields(fields Fields) LoggerPort
}
