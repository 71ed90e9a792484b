package logger_adapter

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"property-admin-service/internal/core/port"
)

// SlogAdapter реализует LoggerPort поверх стандартного slog.
type SlogAdapter struct {
	logger *slog.Logger
}

// SlogConfig - настройки адаптера.
type SlogConfig struct {
	// Writer - куда писать логи. По умолчанию os.Stdout.
	Writer io.Writer
	// Level - минимальный уровень логирования.
	Level slog.Leveler
	// AddSource - добавлять ли файл и строку кода.
	AddSource bool
	// IsJSON - JSON-формат вместо текстового.
	IsJSON bool
	// UseColor - цветной вывод через tint (для локальной разработки).
	UseColor bool
}

// NewSlogAdapter создает новый экземпляр адаптера.
func NewSlogAdapter(cfg SlogConfig) port.LoggerPort {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Level == nil {
		cfg.Level = slog.LevelInfo
	}

	var handler slog.Handler
	switch {
	case cfg.IsJSON:
		handler = slog.NewJSONHandler(cfg.Writer, &slog.HandlerOptions{
			AddSource: cfg.AddSource,
			Level:     cfg.Level,
		})
	case cfg.UseColor:
		// tint сам определяет, поддерживает ли терминал цвета.
		handler = tint.NewHandler(cfg.Writer, &tint.Options{
			Level:      cfg.Level,
			AddSource:  cfg.AddSource,
			TimeFormat: "2006-01-02 15:04:05",
		})
	default:
		handler = slog.NewTextHandler(cfg.Writer, &slog.HandlerOptions{
			AddSource: cfg.AddSource,
			Level:     cfg.Level,
		})
	}

	return &SlogAdapter{logger: slog.New(handler)}
}

func (a *SlogAdapter) fieldsToSlogAttrs(fields port.Fields) []any {
	var attrs []any
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}

func (a *SlogAdapter) Info(msg string, fields port.Fields) {
	a.logger.Info(msg, a.fieldsToSlogAttrs(fields)...)
}

func (a *SlogAdapter) Warn(msg string, fields port.Fields) {
	a.logger.Warn(msg, a.fieldsToSlogAttrs(fields)...)
}

func (a *SlogAdapter) Error(msg string, err error, fields port.Fields) {
	attrs := a.fieldsToSlogAttrs(fields)
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	a.logger.Error(msg, attrs...)
}

func (a *SlogAdapter) Debug(msg string, fields port.Fields) {
	a.logger.Debug(msg, a.fieldsToSlogAttrs(fields)...)
}

// WithFields возвращает новый логгер с добавленным контекстом.
func (a *SlogAdapter) WithFields(fields port.Fields) port.LoggerPort {
	return &SlogAdapter{logger: a.logger.With(a.fieldsToSlogAttrs(fields)...)}
}
