package atlas

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lennoxmeldrum/mongol-atlas/internal/history"
	"github.com/lennoxmeldrum/mongol-atlas/internal/service"
)

// Viewport bounds accepted from clients.
const (
	defaultWidth  = 800.0
	defaultHeight = 500.0
	minDimension  = 100.0
	maxDimension  = 4000.0
)

// Handler handles atlas API requests: the static tables and the map
// view derived from them.
type Handler struct {
	atlasService *service.AtlasService
}

// NewHandler creates a new atlas handler
func NewHandler(atlasService *service.AtlasService) *Handler {
	return &Handler{atlasService: atlasService}
}

// RegisterRoutes registers atlas routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/events", h.ListEvents)
	r.GET("/cities", h.ListCities)
	r.GET("/personas", h.ListPersonas)
	r.GET("/map/state", h.MapState)
	r.GET("/map/render.svg", h.MapSVG)
}

// ListEvents returns the historical events ordered by year
func (h *Handler) ListEvents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"events": h.atlasService.Events(c.Request.Context())})
}

// ListCities returns the tracked cities
func (h *Handler) ListCities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cities": h.atlasService.Cities(c.Request.Context())})
}

// ListPersonas returns the conversational personas
func (h *Handler) ListPersonas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"personas": h.atlasService.Personas(c.Request.Context())})
}

// MapState returns the render model for a year and viewport
func (h *Handler) MapState(c *gin.Context) {
	year, width, height := h.viewParams(c)
	c.JSON(http.StatusOK, h.atlasService.MapView(c.Request.Context(), year, width, height))
}

// MapSVG renders the map as an SVG document
func (h *Handler) MapSVG(c *gin.Context) {
	year, width, height := h.viewParams(c)
	doc := h.atlasService.MapSVG(c.Request.Context(), year, width, height)
	c.Data(http.StatusOK, "image/svg+xml", doc)
}

func (h *Handler) viewParams(c *gin.Context) (year int, width, height float64) {
	year = history.MinYear
	if v, err := strconv.Atoi(c.Query("year")); err == nil {
		year = v
	}
	year = history.ClampYear(year)

	width = queryDimension(c, "width", defaultWidth)
	height = queryDimension(c, "height", defaultHeight)
	return year, width, height
}

func queryDimension(c *gin.Context, name string, fallback float64) float64 {
	v, err := strconv.ParseFloat(c.Query(name), 64)
	if err != nil {
		return fallback
	}
	if v < minDimension {
		return minDimension
	}
	if v > maxDimension {
		return maxDimension
	}
	return v
}
