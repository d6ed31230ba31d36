package internal

import (
	"context"
	token_adapter "discovery-service/internal/adapters/jwt"
	logger_adapter "discovery-service/internal/adapters/logger"
	postgres_adapter "discovery-service/internal/adapters/postgres"
	rabbitmq_adapter "discovery-service/internal/adapters/rabbitmq"
	redis_adapter "discovery-service/internal/adapters/redis"
	"discovery-service/internal/adapters/rest"
	"discovery-service/internal/configs"
	"discovery-service/internal/constants"
	"discovery-service/internal/contracts"
	"discovery-service/internal/core/discovery"
	"discovery-service/internal/core/port"
	"discovery-service/internal/core/usecase"
	fluentlogger "discovery-service/pkg/fluent_logger"
	"discovery-service/pkg/postgres"
	"discovery-service/pkg/rabbitmq/rabbitmq_common"
	"discovery-service/pkg/rabbitmq/rabbitmq_producer"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	redis     *redis.Client
	rabbit    *rabbitmq_common.ConnectionManager
	producer  *rabbitmq_producer.Publisher
	registry  *discovery.Registry
	apiServer *rest.Server

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := newLogger(appConfig)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})

	app := &App{config: appConfig, fluentClient: fluentClient, logger: appLogger}
	if err := app.init(baseLogger); err != nil {
		app.close()
		return nil, err
	}
	return app, nil
}

// newLogger собирает stdout-логгер и, если включен, Fluent Bit
func newLogger(cfg *configs.AppConfig) (port.LoggerPort, *fluent.Fluent, error) {
	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(cfg.StdoutLogger.Level),
		IsJSON:   cfg.StdoutLogger.IsJSON,
		UseColor: true,
	})

	// fluentSink остается nil, если Fluent Bit выключен
	var fluentSink port.LoggerPort
	var fluentClient *fluent.Fluent
	if cfg.FluentBit.Enabled {
		client, err := fluentlogger.NewClient(fluentlogger.Config{
			Host:      cfg.FluentBit.Host,
			Port:      cfg.FluentBit.Port,
			TagPrefix: cfg.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(client, parseLogLevel(cfg.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			client.Close()
			return nil, nil, err
		}
		fluentClient = client
		fluentSink = fluentAdapter
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(stdoutLogger, fluentSink)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": cfg.AppName})
	baseLogger.Info("Logger system initialized", port.Fields{
		"fluent_enabled": fluentSink != nil,
	})
	return baseLogger, fluentClient, nil
}

func (a *App) init(baseLogger port.LoggerPort) error {
	ctx := context.Background()
	cfg := a.config

	if err := contracts.Load(); err != nil {
		a.logger.Error("Failed to compile JSON schemas", err, nil)
		return fmt.Errorf("failed to load contracts: %w", err)
	}

	dbPool, err := postgres.NewClient(ctx, postgres.Config{
		DatabaseURL:    cfg.Database.URL,
		MaxConns:       int32(cfg.Database.MaxConns),
		ConnectTimeout: 10 * time.Second,
	})
	if err != nil {
		a.logger.Error("Failed to connect to PostgreSQL", err, nil)
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	a.dbPool = dbPool
	a.logger.Info("Successfully connected to PostgreSQL pool!", nil)

	directory, err := postgres_adapter.NewPostgresVendorDirectory(dbPool)
	if err != nil {
		return fmt.Errorf("failed to create vendor directory: %w", err)
	}
	favoritesRepo, err := postgres_adapter.NewPostgresFavoritesRepository(dbPool)
	if err != nil {
		return fmt.Errorf("failed to create favorites repository: %w", err)
	}
	filterRepo, err := postgres_adapter.NewFilterRepository(dbPool)
	if err != nil {
		return fmt.Errorf("failed to create filter repository: %w", err)
	}

	fetcherOpts := []discovery.FetcherOption{discovery.WithRetries(cfg.Discovery.FetchRetries)}
	if cfg.Redis.Addr != "" {
		client, err := redis_adapter.NewClient(ctx, redis_adapter.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.logger.Error("Failed to connect to Redis", err, nil)
			return err
		}
		a.redis = client
		cache, err := redis_adapter.NewPageCache(client, cfg.Redis.PageTTL)
		if err != nil {
			return err
		}
		fetcherOpts = append(fetcherOpts, discovery.WithPageCache(cache))
		a.logger.Info("Redis page cache enabled", port.Fields{"addr": cfg.Redis.Addr, "ttl": cfg.Redis.PageTTL.String()})
	} else {
		a.logger.Warn("REDIS_ADDR is not set, page cache disabled", nil)
	}

	var events port.FavoriteEventsPort
	if cfg.RabbitMQ.URL != "" {
		bridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))
		manager, err := rabbitmq_common.NewConnectionManager(cfg.RabbitMQ.URL, cfg.RabbitMQ.ReconnectInterval, bridge)
		if err != nil {
			a.logger.Error("Failed to connect to RabbitMQ", err, nil)
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		a.rabbit = manager

		producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			ExchangeName:             constants.EventsExchange,
			ExchangeType:             constants.EventsExchangeType,
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   bridge,
		}, manager)
		if err != nil {
			return fmt.Errorf("failed to create events producer: %w", err)
		}
		a.producer = producer

		publisher, err := rabbitmq_adapter.NewFavoriteEventsPublisher(producer, constants.RoutingKeyFavoriteChanged)
		if err != nil {
			return err
		}
		events = publisher
		a.logger.Info("Favorite events publisher ready", port.Fields{"exchange": constants.EventsExchange})
	} else {
		a.logger.Warn("RABBITMQ_URL is not set, favorite events disabled", nil)
	}

	fetcher, err := discovery.NewPageFetcher(directory, fetcherOpts...)
	if err != nil {
		return err
	}
	registry, err := discovery.NewRegistry(fetcher, discovery.RegistryConfig{
		MaxViews: cfg.Discovery.MaxViews,
		IdleTTL:  cfg.Discovery.ViewIdleTTL,
	})
	if err != nil {
		return err
	}
	a.registry = registry
	a.logger.Info("All persistence and service adapters initialized.", nil)

	addUC := usecase.NewAddToFavoritesUseCase(favoritesRepo, directory, events)
	removeUC := usecase.NewRemoveFromFavoritesUseCase(favoritesRepo, events)

	discoveryHandlers := rest.NewDiscoveryHandler(
		usecase.NewSearchVendorsUseCase(fetcher),
		usecase.NewOpenViewUseCase(registry),
		usecase.NewGetViewUseCase(registry),
		usecase.NewApplyViewFiltersUseCase(registry),
		usecase.NewLoadMoreViewUseCase(registry),
		usecase.NewGetViewPageUseCase(registry),
		usecase.NewCloseViewUseCase(registry),
	)
	filterHandlers := rest.NewFilterHandler(
		usecase.NewGetFilterOptionsUseCase(filterRepo),
		usecase.NewGetDictionariesUseCase(filterRepo),
	)
	favoritesHandlers := rest.NewFavoritesHandler(
		usecase.NewCheckFavoriteUseCase(favoritesRepo),
		addUC,
		removeUC,
		usecase.NewToggleFavoriteUseCase(favoritesRepo, addUC, removeUC),
		usecase.NewGetUserFavoritesUseCase(favoritesRepo, directory),
	)

	serverCfg := rest.ServerConfig{
		Port:           cfg.Rest.PORT,
		AllowedOrigins: cfg.Rest.AllowedOrigins,
		RequestTimeout: cfg.Rest.RequestTimeout,
	}
	if cfg.Rest.JWTSigningKey != "" {
		tokens, err := token_adapter.NewTokenService(cfg.Rest.JWTSigningKey)
		if err != nil {
			return err
		}
		serverCfg.TokenVerifier = tokens
	} else {
		a.logger.Warn("JWT_SIGNING_KEY is not set, favorites trust the X-User-ID header", nil)
	}

	a.apiServer = rest.NewServer(serverCfg, discoveryHandlers, filterHandlers, favoritesHandlers, baseLogger)
	a.logger.Info("REST API server configured.", nil)

	return nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)
		cancelApp()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}
		wg.Wait()
		a.close()
	}()

	a.logger.Info("Application is starting...", nil)

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.evictIdleViews(appCtx)
	}()

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-serverErrors:
		a.logger.Error("Server failed to start, shutting down", err, nil)
		return err
	}
}

// evictIdleViews периодически закрывает экраны, к которым давно не обращались
func (a *App) evictIdleViews(ctx context.Context) {
	ticker := time.NewTicker(a.config.Discovery.EvictInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if evicted := a.registry.EvictIdle(now); evicted > 0 {
				a.logger.Info("Idle discovery views evicted", port.Fields{"evicted": evicted, "open_views": a.registry.Len()})
			}
		}
	}
}

// close освобождает ресурсы в порядке, обратном созданию
func (a *App) close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ producer", err, nil)
		}
	}
	if a.rabbit != nil {
		if err := a.rabbit.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("Error closing Redis client", err, nil)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent может быть уже недоступен
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
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
