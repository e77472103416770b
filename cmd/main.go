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

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/halftime-club/paddock-predict/config"
	"github.com/halftime-club/paddock-predict/db"
	"github.com/halftime-club/paddock-predict/handlers"
	"github.com/halftime-club/paddock-predict/ingest"
	"github.com/halftime-club/paddock-predict/realtime"
	"github.com/halftime-club/paddock-predict/repositories"
	api "github.com/halftime-club/paddock-predict/routes"
	"github.com/halftime-club/paddock-predict/scoring"
	"github.com/halftime-club/paddock-predict/services"
	"github.com/halftime-club/paddock-predict/storage"
)

const (
	statusSchedulerInterval   = 30 * time.Second
	reminderSchedulerInterval = 15 * time.Minute
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.Int("season_year", cfg.SeasonYear),
	)
	if cfg.SeasonYearDefaulted {
		logger.Warn("SEASON_YEAR is not set, using the calendar year",
			slog.Int("season_year", cfg.SeasonYear),
		)
	}

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Хранилище аватаров (Cloudflare R2); без конфигурации — выключено.
	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 storage is not configured, avatar uploads disabled")
	}

	// WebSocket Hub
	wsHub := realtime.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Репозитории
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	riderRepo := repositories.NewPostgresRiderRepository(dbConn)
	raceRepo := repositories.NewPostgresRaceRepository(dbConn)
	resultRepo := repositories.NewPostgresResultRepository(dbConn)
	gloriousRepo := repositories.NewPostgresGloriousSevenRepository(dbConn)
	predictionRepo := repositories.NewPostgresPredictionRepository(dbConn)
	scoreRepo := repositories.NewPostgresScoreRepository(dbConn)
	championshipRepo := repositories.NewPostgresChampionshipRepository(dbConn)
	logger.Info("Repositories initialized")

	// Действующая тарифная сетка лиги.
	tables := scoring.CurrentTables

	// Сервисы
	ingestClient := ingest.NewClient(cfg.ResultsAPIBaseURL)
	emailService := services.NewEmailService(cfg)
	authService := services.NewAuthService(playerRepo)
	playerService := services.NewPlayerService(playerRepo, uploader, logger)
	riderService := services.NewRiderService(riderRepo)
	raceService := services.NewRaceService(raceRepo, wsHub, logger)
	predictionService := services.NewPredictionService(predictionRepo, raceRepo)
	resultService := services.NewResultService(resultRepo, gloriousRepo, raceRepo, riderRepo)
	scoreService := services.NewScoreService(tables, predictionRepo, resultRepo, gloriousRepo, scoreRepo, raceRepo, logger)
	standingsService := services.NewStandingsService(tables, playerRepo, raceRepo, scoreRepo, championshipRepo, logger)
	championshipService := services.NewChampionshipService(championshipRepo, logger)
	syncService := services.NewSyncService(ingestClient, riderRepo, raceRepo, wsHub, logger)
	reminderService := services.NewReminderService(playerRepo, raceRepo, predictionRepo, emailService, logger)
	logger.Info("Services initialized")

	// Планировщик статусов этапов
	go func() {
		ticker := time.NewTicker(statusSchedulerInterval)
		defer ticker.Stop()
		logger.Info("Race status scheduler started", slog.Duration("interval", statusSchedulerInterval))

		// Первый прогон сразу при старте, дальше по тикеру.
		if err := raceService.AutoUpdateStatusesByDates(context.Background(), cfg.SeasonYear); err != nil {
			logger.Error("Scheduler: initial run failed", slog.Any("error", err))
		}
		for range ticker.C {
			if err := raceService.AutoUpdateStatusesByDates(context.Background(), cfg.SeasonYear); err != nil {
				logger.Error("Scheduler: periodic run failed", slog.Any("error", err))
			}
		}
	}()

	// Планировщик напоминаний о дедлайнах
	if cfg.EmailEnabled() {
		go func() {
			ticker := time.NewTicker(reminderSchedulerInterval)
			defer ticker.Stop()
			logger.Info("Deadline reminder scheduler started", slog.Duration("interval", reminderSchedulerInterval))

			for range ticker.C {
				if err := reminderService.SendDeadlineReminders(context.Background(), cfg.SeasonYear); err != nil {
					logger.Error("Reminder scheduler run failed", slog.Any("error", err))
				}
			}
		}()
	} else {
		logger.Warn("SMTP is not configured, deadline reminders disabled")
	}

	// HTTP-обработчики
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	playerHandler := handlers.NewPlayerHandler(playerService)
	riderHandler := handlers.NewRiderHandler(riderService)
	raceHandler := handlers.NewRaceHandler(raceService)
	predictionHandler := handlers.NewPredictionHandler(predictionService)
	resultHandler := handlers.NewResultHandler(resultService)
	scoreHandler := handlers.NewScoreHandler(scoreService)
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	championshipHandler := handlers.NewChampionshipHandler(championshipService)
	syncHandler := handlers.NewSyncHandler(syncService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	// Маршрутизатор
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		playerHandler,
		riderHandler,
		raceHandler,
		predictionHandler,
		resultHandler,
		scoreHandler,
		standingsHandler,
		championshipHandler,
		syncHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	// HTTP-сервер
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
