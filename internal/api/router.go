package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lennoxmeldrum/mongol-atlas/internal/api/atlas"
	"github.com/lennoxmeldrum/mongol-atlas/internal/api/chat"
	"github.com/lennoxmeldrum/mongol-atlas/internal/api/image"
	"github.com/lennoxmeldrum/mongol-atlas/internal/api/middleware"
	"github.com/lennoxmeldrum/mongol-atlas/internal/service"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	APIKey           string
	APIKeyHeader     string
	AllowOrigins     []string
	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int
	Logger           *zap.Logger
}

// SetupRouter sets up the Gin router
func SetupRouter(
	atlasService *service.AtlasService,
	chatService *service.ChatService,
	imageService *service.ImageService,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	// CORS middleware
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Static files (SPA client)
	SetupStaticRoutes(r)

	// Atlas API (public: tables and map view)
	atlasHandler := atlas.NewHandler(atlasService)
	atlasGroup := r.Group("/api/atlas")
	atlasHandler.RegisterRoutes(atlasGroup)

	// Timeline websocket
	r.GET("/api/timeline/ws", TimelineWS(cfg.Logger))

	// Generative API (optionally key-protected, rate-limited)
	genGroup := r.Group("/api")
	genGroup.Use(middleware.Auth(cfg.APIKey, cfg.APIKeyHeader))
	if cfg.RateLimitEnabled {
		genGroup.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}

	chatHandler := chat.NewHandler(chatService)
	chatHandler.RegisterRoutes(genGroup.Group("/chat"))

	imageHandler := image.NewHandler(imageService)
	imageHandler.RegisterRoutes(genGroup.Group("/image"))

	return r
}
