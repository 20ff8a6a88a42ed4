package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prostock/internal/service/assistant"
)

// AssistantHandler exposes the AI inventory consultant.
type AssistantHandler struct {
	svc    *assistant.Service
	logger *zap.Logger
}

// NewAssistantHandler constructs the HTTP handler adapter.
func NewAssistantHandler(svc *assistant.Service, logger *zap.Logger) *AssistantHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantHandler{svc: svc, logger: logger}
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Chat sends one operator message and returns the consultant's reply.
func (h *AssistantHandler) Chat(c *gin.Context) {
	username, ok := operator(c)
	if !ok {
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply, err := h.svc.Chat(c.Request.Context(), username, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// Reset clears the operator's conversation history.
func (h *AssistantHandler) Reset(c *gin.Context) {
	username, ok := operator(c)
	if !ok {
		return
	}
	h.svc.Reset(username)
	c.Status(http.StatusNoContent)
}
