package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/periodpain/pain-helper/internal/apiclient"
	"github.com/periodpain/pain-helper/internal/bot"
	"github.com/periodpain/pain-helper/internal/bot/handlers"
	"github.com/periodpain/pain-helper/internal/bot/state"
	"github.com/periodpain/pain-helper/internal/config"
	"github.com/periodpain/pain-helper/internal/database"
	apperrors "github.com/periodpain/pain-helper/internal/errors"
	"github.com/periodpain/pain-helper/internal/logger"
	"github.com/periodpain/pain-helper/internal/services"
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
		log.Fatalf("Failed to init logger: %v", err)
	}
	logger.Info("Starting Period Pain Helper Bot...")

	// The identity database is the only durable client state. Losing it
	// must not stop the bot: the identity service degrades to in-memory
	// identities for the current run.
	db, err := database.NewSQLiteDB(cfg.DataDir)
	if err != nil {
		logger.Warn("Identity database unavailable", "error", err)
		db = nil
	}

	api := apiclient.NewClient(cfg.API.BaseURL)

	deps := handlers.Dependencies{
		IdentitySvc:       services.NewIdentityService(db),
		TrackerSvc:        services.NewTrackerService(api),
		HistorySvc:        services.NewHistoryService(api),
		PredictionSvc:     services.NewPredictionService(api),
		RecommendationSvc: services.NewRecommendationService(api),
	}
	logger.Info("Services initialized", "api_base_url", cfg.API.BaseURL)

	var stateManager state.StateManager
	if cfg.Redis.Host != "" {
		redisManager, err := state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			logger.Warn("Redis unavailable, using in-memory conversation state", "error", err)
			stateManager = state.NewManager()
		} else {
			defer redisManager.Close()
			stateManager = redisManager
		}
	} else {
		stateManager = state.NewManager()
	}

	errHandler := apperrors.NewHandler(logger.GetLogger())
	telegramBot, err := bot.NewBot(cfg.TelegramToken, deps, stateManager, errHandler)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := telegramBot.Start(ctx); err != nil && ctx.Err() == nil {
		logger.Errorf("Bot stopped with error: %v", err)
		os.Exit(1)
	}
}
