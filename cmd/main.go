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
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"github.com/wavy-96/catan-chambers/config"
	"github.com/wavy-96/catan-chambers/db"
	"github.com/wavy-96/catan-chambers/handlers"
	"github.com/wavy-96/catan-chambers/realtime"
	"github.com/wavy-96/catan-chambers/repositories"
	api "github.com/wavy-96/catan-chambers/routes"
	"github.com/wavy-96/catan-chambers/services"
	"github.com/wavy-96/catan-chambers/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.Int("win_threshold", cfg.WinThreshold),
		slog.Bool("archive_enabled", cfg.ArchiveEnabled()))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wsHub := realtime.NewHub(logger)
	go wsHub.Run()

	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	gameRepo := repositories.NewPostgresGameRepository(dbConn)
	scoreRepo := repositories.NewPostgresScoreRepository(dbConn)
	standingRepo := repositories.NewPostgresStandingRepository(dbConn)

	var archiveService services.ArchiveService
	if cfg.ArchiveEnabled() {
		uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		archiveService = services.NewArchiveService(uploader, playerRepo, gameRepo, scoreRepo, logger)
		logger.Info("season archiving enabled", slog.String("bucket", cfg.R2BucketName))
	}

	authService := services.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecretKey)
	playerService := services.NewPlayerService(playerRepo)
	tournamentService := services.NewTournamentService(dbConn, tournamentRepo, playerRepo, standingRepo, archiveService, logger)
	gameService := services.NewGameService(dbConn, tournamentRepo, playerRepo, gameRepo, scoreRepo, standingRepo, wsHub, cfg.WinThreshold, logger)
	statsService := services.NewStatsService(playerRepo, tournamentRepo, gameRepo, scoreRepo)
	auditor := services.NewStandingsAuditor(dbConn, playerRepo, tournamentRepo, gameRepo, scoreRepo, standingRepo, logger)

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		logger.Error("failed to create scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	if _, err := scheduler.NewJob(
		gocron.DurationJob(cfg.AuditInterval),
		gocron.NewTask(func() {
			repaired, err := auditor.RunOnce(ctx)
			if err != nil {
				logger.Error("standings audit run failed", slog.Any("error", err))
				return
			}
			if repaired > 0 {
				logger.Warn("standings audit repaired tournaments", slog.Int("repaired", repaired))
			}
		}),
	); err != nil {
		logger.Error("failed to schedule standings audit", slog.Any("error", err))
		os.Exit(1)
	}
	scheduler.Start()
	defer func() { _ = scheduler.Shutdown() }()
	logger.Info("standings audit scheduled", slog.Duration("interval", cfg.AuditInterval))

	// Out-of-band score changes (manual fixes, other writers) still reach the
	// dashboards through the database change feed.
	scoresListener, err := db.NewScoresListener(cfg.DatabaseURL, func(tournamentID uuid.UUID) {
		standings, err := standingRepo.ListByTournament(ctx, nil, tournamentID)
		if err != nil {
			logger.Error("failed to load standings for change feed broadcast",
				slog.String("tournament_id", tournamentID.String()), slog.Any("error", err))
			return
		}
		room := realtime.TournamentRoom(tournamentID)
		wsHub.BroadcastToRoom(room, realtime.Message{
			Type:    realtime.TypeStandingsUpdated,
			Payload: standings,
			RoomID:  room,
		})
	}, logger)
	if err != nil {
		logger.Error("failed to start scores listener", slog.Any("error", err))
		os.Exit(1)
	}
	go scoresListener.Run(ctx)

	authHandler := handlers.NewAuthHandler(authService)
	playerHandler := handlers.NewPlayerHandler(playerService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	gameHandler := handlers.NewGameHandler(gameService)
	statsHandler := handlers.NewStatsHandler(statsService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, tournamentService, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		cfg.CORSAllowedOrigins,
		authHandler,
		playerHandler,
		tournamentHandler,
		gameHandler,
		statsHandler,
		webSocketHandler,
	)

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

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}
