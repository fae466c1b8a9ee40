package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tamimideals/monitor/config"
	"tamimideals/monitor/internal/pipeline"
	"tamimideals/monitor/logger"
	"tamimideals/monitor/services/cache"
	"tamimideals/monitor/services/notifier"
	"tamimideals/monitor/services/publisher"
	"tamimideals/monitor/services/renderer"
	"tamimideals/monitor/services/worker"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("url", cfg.HotDealsURL).
		Int("discount_min", cfg.DiscountMin).
		Int("discount_max", cfg.DiscountMax).
		Dur("crawl_interval", cfg.CrawlInterval).
		Msg("Starting hot deals monitor")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize services
	cacheService := cache.NewMemcacheService(cfg.MemcacheAddr)
	logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)

	redisPublisher := publisher.NewRedisPublisher(
		ctx,
		cfg.RedisAddr,
		cfg.RedisDB,
		cfg.RedisStream,
		cfg.RedisStreamMaxLength,
	)
	defer redisPublisher.Close()
	logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
		cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)

	telegramNotifier, err := notifier.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Telegram notifier")
	}

	pageRenderer := renderer.New(cfg, cacheService)
	log.Info().Str("renderer", pageRenderer.Name()).Msg("Renderer selected")

	// Create and start worker
	w := worker.NewWorker(
		pageRenderer,
		pipeline.New(cfg),
		telegramNotifier,
		redisPublisher,
		cfg.CrawlInterval,
		cfg.DebugDir,
		cfg.Environment,
	)

	workerDone := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting monitoring worker")
		workerDone <- w.Start(ctx)
	}()

	// Wait for shutdown signal or worker error
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	case err := <-workerDone:
		if err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("Worker exited with error")
		} else {
			log.Info().Msg("Worker exited normally")
		}
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down gracefully...")
}
