package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prostock/internal/domain/models"
	"prostock/internal/service/admin"
)

// AdminHandler exposes the master-data screens: items, suppliers, users and
// the activity log.
type AdminHandler struct {
	svc    *admin.Service
	logger *zap.Logger
}

// NewAdminHandler constructs the HTTP handler adapter.
func NewAdminHandler(svc *admin.Service, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{svc: svc, logger: logger}
}

// SaveItem creates or updates one inventory item.
func (h *AdminHandler) SaveItem(c *gin.Context) {
	username, ok := operator(c)
	if !ok {
		return
	}

	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item payload"})
		return
	}

	if err := h.svc.SaveItem(c.Request.Context(), item, username); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// DeleteItem removes one inventory item.
func (h *AdminHandler) DeleteItem(c *gin.Context) {
	username, ok := operator(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteItem(c.Request.Context(), c.Param("id"), username); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SaveSupplier creates or updates one supplier.
func (h *AdminHandler) SaveSupplier(c *gin.Context) {
	username, ok := operator(c)
	if !ok {
		return
	}

	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier payload"})
		return
	}

	if err := h.svc.SaveSupplier(c.Request.Context(), supplier, username); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// DeleteSupplier removes one supplier.
func (h *AdminHandler) DeleteSupplier(c *gin.Context) {
	username, ok := operator(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteSupplier(c.Request.Context(), c.Param("id"), username); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Users lists the backend's user accounts.
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.svc.Users(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// SaveUser creates or updates one user account.
func (h *AdminHandler) SaveUser(c *gin.Context) {
	username, ok := operator(c)
	if !ok {
		return
	}

	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user payload"})
		return
	}

	if err := h.svc.SaveUser(c.Request.Context(), user, username); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// DeleteUser removes one user account.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	username, ok := operator(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), c.Param("id"), username); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ActivityLogs lists the backend audit trail.
func (h *AdminHandler) ActivityLogs(c *gin.Context) {
	logs, err := h.svc.ActivityLogs(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
