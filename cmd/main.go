package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/tournament-fixtures/cache"
	"github.com/Dosada05/tournament-fixtures/config"
	"github.com/Dosada05/tournament-fixtures/db"
	"github.com/Dosada05/tournament-fixtures/fixtures"
	"github.com/Dosada05/tournament-fixtures/handlers"
	"github.com/Dosada05/tournament-fixtures/repositories"
	api "github.com/Dosada05/tournament-fixtures/routes"
	"github.com/Dosada05/tournament-fixtures/scheduler"
	"github.com/Dosada05/tournament-fixtures/services"
	"github.com/Dosada05/tournament-fixtures/storage"
	"github.com/go-chi/chi/v5"
)

const (
	requestTimeout  = 15 * time.Second
	shutdownTimeout = 15 * time.Second
)

// @title        Tournament Fixtures API
// @version      1.0
// @description  Fixture generation, match results and standings for league and knockout tournaments.
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in           header
// @name         Authorization
func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(logger); err != nil {
		logger.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
	dbConn, err := db.Connect(ctx, cfg.DatabaseURL, db.PoolSettings{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Кэш таблицы (Redis) опционален. Интерфейс остаётся nil, если кэш выключен.
	var standingsCache services.StandingsCache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, logger)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		standingsCache = cache.NewStandingsCache(redisClient, cfg.StandingsCacheTTL)
	} else {
		logger.Info("REDIS_ADDR not set, standings cache disabled")
	}

	// Публикация расписания в Cloudflare R2 опциональна.
	var schedulePublisher services.SchedulePublisher
	r2Config := storage.CloudflareR2Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	}
	if r2Config.Enabled() {
		store, err := storage.NewR2Store(ctx, r2Config)
		if err != nil {
			return fmt.Errorf("initialize Cloudflare R2 store: %w", err)
		}
		schedulePublisher = storage.NewSchedulePublisher(store)
		logger.Info("Cloudflare R2 store initialized", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Info("R2 not configured, schedule publishing disabled")
	}

	// Инициализация WebSocket Hub
	wsHub := fixtures.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	transactor := repositories.NewPostgresTransactor(dbConn, logger)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	participantRepo := repositories.NewPostgresTournamentTeamRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	venueRepo := repositories.NewPostgresVenueRepository(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	tournamentService := services.NewTournamentService(
		transactor,
		tournamentRepo,
		participantRepo,
		teamRepo,
		matchRepo,
		standingsCache,
		schedulePublisher,
		wsHub,
		logger,
	)
	fixtureService := services.NewFixtureService(
		transactor,
		tournamentRepo,
		participantRepo,
		matchRepo,
		venueRepo,
		standingsCache,
		schedulePublisher,
		wsHub,
		logger,
	)
	matchService := services.NewMatchService(
		transactor,
		tournamentRepo,
		participantRepo,
		matchRepo,
		standingsCache,
		wsHub,
		logger,
	)
	standingsService := services.NewStandingsService(
		tournamentRepo,
		participantRepo,
		matchRepo,
		standingsCache,
		logger,
	)
	logger.Info("Services initialized")

	// Планировщик: закрывает лиги, у которых не осталось матчей.
	jobs, err := scheduler.New(logger)
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	if _, err := scheduler.RegisterReconcileJob(jobs, tournamentService, cfg.ReconcileInterval); err != nil {
		return fmt.Errorf("register reconcile job: %w", err)
	}
	jobs.Start()
	defer func() {
		if err := jobs.Stop(); err != nil {
			logger.Error("failed to stop scheduler", slog.Any("error", err))
		}
	}()

	// Инициализация обработчиков HTTP
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Tournament: handlers.NewTournamentHandler(tournamentService, fixtureService, logger),
		Match:      handlers.NewMatchHandler(matchService, logger),
		Standings:  handlers.NewStandingsHandler(standingsService, logger),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, tournamentService, cfg.CORSAllowedOrigins, logger),
	}, api.Options{
		JWTSecret:      cfg.JWTSecretKey,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: requestTimeout,
		Logger:         logger,
	})
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
	if err := server.Shutdown(shutdownCtx); err != nil {
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("failed to force close server", slog.Any("error", closeErr))
		}
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server shutdown complete")
	return nil
}
