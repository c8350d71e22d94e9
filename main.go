package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hotreminder/backend/internal/bot"
	"github.com/hotreminder/backend/internal/bot/state"
	"github.com/hotreminder/backend/internal/config"
	"github.com/hotreminder/backend/internal/database"
	"github.com/hotreminder/backend/internal/httpapi"
	"github.com/hotreminder/backend/internal/logger"
	"github.com/hotreminder/backend/internal/metrics"
	"github.com/hotreminder/backend/internal/repository"
	"github.com/hotreminder/backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("Starting HOT Reminder backend")

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Info("Database connection established and migrations completed")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	medicineRepo := repository.NewMedicineRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	// Services
	identityService := services.NewIdentityService(userRepo)
	userService := services.NewUserService(userRepo, identityService)
	medicineService := services.NewMedicineService(medicineRepo, identityService)
	reminderService := services.NewReminderService(reminderRepo, identityService)
	historyService := services.NewHistoryService(historyRepo, identityService)
	logger.Info("Services initialized")

	// HTTP API
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	rateLimiter := httpapi.NewRateLimiter(120)
	defer rateLimiter.Stop()

	router := httpapi.NewRouter(&httpapi.RouterDeps{
		Users:       userService,
		Medicines:   medicineService,
		Reminders:   reminderService,
		History:     historyService,
		RateLimiter: rateLimiter,
		Collector:   collector,
		Registry:    registry,
	})
	server := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("HTTP server listening", "port", cfg.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Telegram bot, only when a token is configured
	if cfg.TelegramToken != "" {
		var stateStore state.Store
		if cfg.Redis.Enabled {
			redisStore, err := state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
			if err != nil {
				logger.Warn("Redis unavailable, using in-memory state", "error", err)
				stateStore = state.NewManager()
			} else {
				stateStore = redisStore
			}
		} else {
			stateStore = state.NewManager()
		}

		telegramBot, err := bot.NewBot(cfg.TelegramToken,
			userService, medicineService, reminderService, historyService, stateStore)
		if err != nil {
			logger.Fatalf("Failed to create bot: %v", err)
		}
		go func() {
			if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Bot stopped", "error", err)
			}
		}()
		logger.Info("Bot started")
	}

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
