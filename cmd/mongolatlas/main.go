package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lennoxmeldrum/mongol-atlas/internal/api"
	"github.com/lennoxmeldrum/mongol-atlas/internal/config"
	"github.com/lennoxmeldrum/mongol-atlas/internal/genai"
	"github.com/lennoxmeldrum/mongol-atlas/internal/geo"
	"github.com/lennoxmeldrum/mongol-atlas/internal/service"
	"github.com/lennoxmeldrum/mongol-atlas/internal/storage/memory"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Optional .env for local development
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Hosted generative endpoint client (chat + image)
	aiClient := genai.NewClient(genai.ClientOptions{
		APIKey:     cfg.GenAI.APIKey,
		BaseURL:    cfg.GenAI.BaseURL,
		ChatModel:  cfg.GenAI.ChatModel,
		ImageModel: cfg.GenAI.ImageModel,
	}, logger)

	// Credential gate, re-checked before every image generation
	gate := genai.NewKeyGate(func() string {
		if key := os.Getenv("MONGOLATLAS_GENAI_API_KEY"); key != "" {
			return key
		}
		return cfg.GenAI.APIKey
	}, logger)

	// Initialize services
	sessionStore := memory.NewSessionStore()
	basemap := geo.NewBasemap(logger)

	atlasService := service.NewAtlasService(basemap, logger)
	chatService := service.NewChatService(aiClient, sessionStore, cfg.GenAI.Temperature, logger)
	imageService := service.NewImageService(aiClient, gate, logger)

	// World geometry loads in the background; the map renders markers
	// only until it arrives.
	basemapCtx, basemapCancel := context.WithCancel(context.Background())
	defer basemapCancel()
	atlasService.LoadBasemap(basemapCtx, cfg.Basemap.URL)

	// Setup router
	router := api.SetupRouter(atlasService, chatService, imageService, api.RouterConfig{
		APIKey:           cfg.Server.APIKey,
		APIKeyHeader:     cfg.Server.APIKeyHeader,
		AllowOrigins:     []string{"*"},
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimitRPS:     cfg.RateLimit.RPS,
		RateLimitBurst:   cfg.RateLimit.Burst,
		Logger:           logger,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting Mongol Atlas server",
			zap.String("address", cfg.Address()),
			zap.String("base_url", cfg.Server.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	basemapCancel()
	atlasService.Wait()

	logger.Info("Server exited")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Log.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
