package chat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lennoxmeldrum/mongol-atlas/internal/domain"
	"github.com/lennoxmeldrum/mongol-atlas/internal/metrics"
	"github.com/lennoxmeldrum/mongol-atlas/internal/service"
)

// Handler handles persona chat API requests
type Handler struct {
	chatService *service.ChatService
}

// NewHandler creates a new chat handler
func NewHandler(chatService *service.ChatService) *Handler {
	return &Handler{chatService: chatService}
}

// RegisterRoutes registers chat routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/session", h.CreateSession)
	r.GET("/session/:id", h.GetTranscript)
	r.POST("/session/:id/message", h.SendMessage)
}

// CreateSession starts a fresh session for a persona, replacing the
// previous one
func (h *Handler) CreateSession(c *gin.Context) {
	var req domain.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.chatService.SelectPersona(c.Request.Context(), req.PersonaID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "persona not found"})
		case errors.Is(err, domain.ErrSessionUnavailable):
			// Surfaced rather than silently disabling sends, so the
			// client can offer a retry.
			c.JSON(http.StatusBadGateway, gin.H{"error": "chat session unavailable, try again"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetTranscript returns the session's transcript
func (h *Handler) GetTranscript(c *gin.Context) {
	view, err := h.chatService.Transcript(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusGone, gin.H{"error": "session no longer active"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// SendMessage forwards a user message to the session
func (h *Handler) SendMessage(c *gin.Context) {
	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.chatService.SendMessage(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBlankInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is empty"})
		case errors.Is(err, domain.ErrSendInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "a send is already in flight"})
		case errors.Is(err, domain.ErrStaleSession):
			c.JSON(http.StatusGone, gin.H{"error": "session no longer active"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		metrics.ChatSends.WithLabelValues("rejected").Inc()
		return
	}

	if res.Answered {
		metrics.ChatSends.WithLabelValues("answered").Inc()
	} else {
		metrics.ChatSends.WithLabelValues("failed").Inc()
	}
	c.JSON(http.StatusOK, res)
}
