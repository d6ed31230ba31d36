package rest

import (
	"context"
	core_port "discovery-service/internal/core/port"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	// RequestTimeout ограничивает время обработки одного запроса
	RequestTimeout time.Duration
	// TokenVerifier проверяет bearer-токены избранного, nil - только X-User-ID
	TokenVerifier core_port.TokenVerifierPort
}

// Server - REST API сервис поиска
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(cfg ServerConfig,
	discoveryHandlers *DiscoveryHandler,
	filterHandlers *FilterHandler,
	favoritesHandlers *FavoritesHandler,
	baseLogger core_port.LoggerPort) *Server {

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, discoveryHandlers, filterHandlers, favoritesHandlers, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

// NewRouter собирает маршруты, вынесен отдельно для тестов
func NewRouter(cfg ServerConfig,
	discoveryHandlers *DiscoveryHandler,
	filterHandlers *FilterHandler,
	favoritesHandlers *FavoritesHandler,
	baseLogger core_port.LoggerPort) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID", "X-User-ID"},
			ExposedHeaders: []string{"Location", "X-Trace-ID"},
			MaxAge:         300,
		}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/discovery", func(r chi.Router) {
			r.Route("/views/{viewID}", func(r chi.Router) {
				r.Get("/", discoveryHandlers.GetView)
				r.Delete("/", discoveryHandlers.CloseView)
				r.Patch("/filters", discoveryHandlers.ApplyFilters)
				r.Post("/more", discoveryHandlers.LoadMore)
				r.Get("/page", discoveryHandlers.GetPage)
			})
			r.Get("/{vendorType}", discoveryHandlers.Search)
			r.Post("/{vendorType}/views", discoveryHandlers.OpenView)
		})

		r.Get("/filters/options", filterHandlers.GetFilterOptions)
		r.Get("/dictionaries", filterHandlers.GetDictionaries)

		r.Route("/favorites", func(r chi.Router) {
			r.Use(NewAuthMiddleware(cfg.TokenVerifier))

			r.Get("/", favoritesHandlers.GetUserFavorites)
			r.Get("/{vendorType}/{vendorID}", favoritesHandlers.CheckFavorite)
			r.Put("/{vendorType}/{vendorID}", favoritesHandlers.AddToFavorites)
			r.Delete("/{vendorType}/{vendorID}", favoritesHandlers.RemoveFromFavorites)
			r.Post("/{vendorType}/{vendorID}/toggle", favoritesHandlers.ToggleFavorite)
		})
	})

	return r
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
