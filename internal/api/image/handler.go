package image

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lennoxmeldrum/mongol-atlas/internal/domain"
	"github.com/lennoxmeldrum/mongol-atlas/internal/metrics"
	"github.com/lennoxmeldrum/mongol-atlas/internal/service"
)

// Handler handles image generation API requests
type Handler struct {
	imageService *service.ImageService
}

// NewHandler creates a new image handler
func NewHandler(imageService *service.ImageService) *Handler {
	return &Handler{imageService: imageService}
}

// RegisterRoutes registers image routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/generate", h.Generate)
	r.GET("/state", h.State)
}

// Generate runs one image generation and returns the resulting
// pipeline state
func (h *Handler) Generate(c *gin.Context) {
	var req domain.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resolution, err := domain.ParseResolution(req.Resolution)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resolution must be one of 1K, 2K, 4K"})
		return
	}

	state, err := h.imageService.Generate(c.Request.Context(), req.Prompt, resolution)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBlankInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is empty"})
		case errors.Is(err, domain.ErrCredentialMissing):
			// The client turns this into the credential-selection step.
			c.JSON(http.StatusPreconditionRequired, gin.H{
				"error": "no API credential selected; select one and retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		metrics.ImageGenerations.WithLabelValues("rejected").Inc()
		return
	}

	if state.Phase == domain.ImageReady {
		metrics.ImageGenerations.WithLabelValues("ready").Inc()
	} else {
		metrics.ImageGenerations.WithLabelValues("failed").Inc()
	}
	c.JSON(http.StatusOK, state)
}

// State returns the pipeline's current state
func (h *Handler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.imageService.State())
}
