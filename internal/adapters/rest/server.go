package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"property-admin-service/internal/core/port"
	"property-admin-service/internal/core/session"
)

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewServer(listenPort string,
	uiOrigin string,
	authHandlers *AuthHandlers,
	propertyHandlers *PropertyHandlers,
	store *session.Store,
	baseLogger port.LoggerPort) *Server {

	r := chi.NewRouter()

	// Стандартные middleware
	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		// Запросы приходят только из браузерной админки
		AllowedOrigins: []string{uiOrigin},

		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},

		// AllowCredentials - разрешает отправку cookies и Authorization хедера
		AllowCredentials: true,

		// MaxAge - на сколько секунд браузер кэширует preflight-запрос
		MaxAge: 300, // 5 минут
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// --- Публичные маршруты ---
		r.Post("/auth/login", authHandlers.Login)
		// Проверка сессии доступна и без входа: так навбар узнает,
		// что показывать
		r.Get("/auth/session", authHandlers.Session)

		// --- Приватные маршруты ---
		r.Group(func(r chi.Router) {
			r.Use(RequireSession(store))

			r.Post("/auth/logout", authHandlers.Logout)

			r.Get("/properties", propertyHandlers.List)
			r.Post("/properties", propertyHandlers.Create)

			r.Route("/properties/{propertyID}", func(r chi.Router) {
				r.Get("/", propertyHandlers.Detail)
				r.Post("/", propertyHandlers.Update)
				r.Delete("/", propertyHandlers.Delete)
				r.Post("/restore", propertyHandlers.Restore)
				r.Post("/images", propertyHandlers.UploadImages)
				r.Delete("/images/{imageID}", propertyHandlers.DeleteImage)
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + listenPort,
			Handler: r,
		},
		logger: baseLogger,
	}
}

// Handler отдает корневой роутер (нужно тестам).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
