package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prostock/internal/service/auth"
)

// AuthHandler handles login, session resume and logout.
type AuthHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(svc *auth.Service, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates the operator against the backend.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Warn("login failed", zap.String("username", req.Username), zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Resume restores a persisted session so the operator skips the login form.
func (h *AuthHandler) Resume(c *gin.Context) {
	username, ok := operator(c)
	if !ok {
		return
	}

	user, err := h.svc.Resume(c.Request.Context(), username)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout drops the persisted session and in-progress carts.
func (h *AuthHandler) Logout(c *gin.Context) {
	username, ok := operator(c)
	if !ok {
		return
	}

	if err := h.svc.Logout(c.Request.Context(), username); err != nil {
		h.logger.Error("logout failed", zap.String("username", username), zap.Error(err))
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
