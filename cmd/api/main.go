package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"minigames-backend/internal/bus"
	"minigames-backend/internal/config"
	"minigames-backend/internal/database"
	"minigames-backend/internal/handlers"
	"minigames-backend/internal/jobs"
	"minigames-backend/internal/logger"
	"minigames-backend/internal/pathdata"
	"minigames-backend/internal/rng"
	"minigames-backend/internal/services"
)

const shutdownTimeout = 15 * time.Second

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel)
	if envErr != nil {
		log.Info("No .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	redisService, err := services.NewRedisService(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisService.Close()

	eventBus, err := bus.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to event bus")
	}
	defer eventBus.Close()

	paths, err := pathdata.Load(cfg.DataDir)
	if err != nil {
		log.WithError(err).Fatal("Failed to load path data")
	}

	ledger := services.NewLedger(db.DB)
	accounts := services.NewAccountService(db.DB, log)
	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.SessionTTL)

	wagers, err := services.NewWagerService(ledger, cfg.Limits, eventBus, cfg.WorkerPoolSize, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to start wager service")
	}
	defer wagers.Close(shutdownTimeout)
	sessions := services.NewSessionGames(wagers, ledger, redisService, cfg.GameStateTTL, log)

	if cfg.SeedAdminUser != "" {
		if err := accounts.SeedAdmin(ctx, cfg.SeedAdminUser, cfg.SeedAdminPass); err != nil {
			log.WithError(err).Fatal("Failed to seed admin account")
		}
	}

	hub := handlers.NewHub(log)
	go hub.Run(ctx)
	if err := eventBus.Subscribe(ctx, hub.BroadcastBet); err != nil {
		log.WithError(err).Fatal("Failed to subscribe to bet events")
	}

	scheduler, err := jobs.New(ledger, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to schedule jobs")
	}
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handlers.NewRouter(handlers.Deps{
		Accounts:     accounts,
		Ledger:       ledger,
		Wagers:       wagers,
		Sessions:     sessions,
		Redis:        redisService,
		JWT:          jwtService,
		Paths:        paths,
		Hub:          hub,
		Source:       rng.Crypto(),
		Log:          log,
		SecureCookie: cfg.Env == "production",
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}
