package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"

	logger_adapter "property-admin-service/internal/adapters/logger"
	"property-admin-service/internal/adapters/remoteapi"
	"property-admin-service/internal/adapters/rest"
	"property-admin-service/internal/configs"
	"property-admin-service/internal/contracts"
	"property-admin-service/internal/core/cache"
	"property-admin-service/internal/core/port"
	"property-admin-service/internal/core/session"
	"property-admin-service/internal/core/viewmodel"
	fluentlogger "property-admin-service/pkg/fluent_logger"
)

// App - основная структура приложения
type App struct {
	server       *rest.Server
	logger       port.LoggerPort
	fluentClient *fluent.Fluent
}

// NewApp создает и настраивает все компоненты приложения
func NewApp() (*App, error) {

	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// инициализация логеров
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// базовый логер приложения с контекстом
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Debug("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// Сессия и кэш запросов
	store := session.NewStore()
	queryCache := cache.NewQueryCache(baseLogger)

	// Клиент удаленного API. Обработчик 401 связывается позже:
	// шлюзу сессии нужен клиент, а клиенту - обработчик из шлюза.
	var gate *session.Gate
	apiClient := remoteapi.NewClient(
		appConfig.PropertyAPIBaseURL,
		store,
		func() {
			if gate != nil {
				gate.HandleUnauthorized()
			}
		},
		baseLogger,
	)
	gate = session.NewGate(store, apiClient, queryCache)
	appLogger.Debug("Remote API client initialized", port.Fields{"target_url": appConfig.PropertyAPIBaseURL})

	// View-model'и экранов
	listVM := viewmodel.NewPropertyListViewModel(queryCache, apiClient)
	detailVM := viewmodel.NewPropertyDetailViewModel(queryCache, apiClient)

	// Входящий адаптер (веб-сервер)
	authHandlers := rest.NewAuthHandlers(gate, store)
	propertyHandlers := rest.NewPropertyHandlers(listVM, detailVM, queryCache, apiClient, contracts.ValidateDraft)

	server := rest.NewServer(appConfig.Port, appConfig.UIOrigin, authHandlers, propertyHandlers, store, baseLogger)

	return &App{
		server:       server,
		logger:       appLogger,
		fluentClient: fluentClient,
	}, nil
}

// Run запускает приложение и управляет его жизненным циклом
func (a *App) Run() error {
	go func() {
		if err := a.server.Start(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("Failed to start server", err, nil)
			os.Exit(1)
		}
	}()

	// Настройка Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	a.logger.Debug("Service is shutting down...", port.Fields{"signal": sig.String()})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Stop(ctx); err != nil {
		a.logger.Error("Server shutdown failed", err, nil)
		os.Exit(1)
	}

	a.logger.Info("Application shut down gracefully.", nil)
	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
