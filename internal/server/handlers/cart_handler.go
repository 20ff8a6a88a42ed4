package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prostock/internal/service/cart"
	"prostock/internal/service/flows"
)

// CartHandler exposes cart line entry and batch submission for the three
// transaction flows.
type CartHandler struct {
	svc    *flows.Service
	logger *zap.Logger
}

// NewCartHandler constructs the HTTP handler adapter.
func NewCartHandler(svc *flows.Service, logger *zap.Logger) *CartHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartHandler{svc: svc, logger: logger}
}

// AddLine validates and appends one line to the operator's cart.
func (h *CartHandler) AddLine(c *gin.Context) {
	username, ok := operator(c)
	if !ok {
		return
	}
	flow, ok := parseFlow(c)
	if !ok {
		return
	}

	var req flows.LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line payload"})
		return
	}

	line, err := h.svc.AddLine(username, flow, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"line": line})
}

// Lines returns the operator's current cart for the flow.
func (h *CartHandler) Lines(c *gin.Context) {
	username, ok := operator(c)
	if !ok {
		return
	}
	flow, ok := parseFlow(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"lines": h.svc.CartLines(username, flow)})
}

// RemoveLine deletes one line from the cart.
func (h *CartHandler) RemoveLine(c *gin.Context) {
	username, ok := operator(c)
	if !ok {
		return
	}
	flow, ok := parseFlow(c)
	if !ok {
		return
	}

	if err := h.svc.RemoveLine(username, flow, c.Param("lineId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitInbound posts the inbound cart as one receipt batch.
func (h *CartHandler) SubmitInbound(c *gin.Context) {
	username, ok := operator(c)
	if !ok {
		return
	}

	var header flows.InboundHeader
	if err := c.ShouldBindJSON(&header); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manifest payload"})
		return
	}

	h.submit(c, username, cart.FlowInbound, func() error {
		return h.svc.SubmitInbound(c.Request.Context(), username, header)
	})
}

// SubmitOutbound posts the outbound cart as one issuance batch.
func (h *CartHandler) SubmitOutbound(c *gin.Context) {
	username, ok := operator(c)
	if !ok {
		return
	}

	var header flows.OutboundHeader
	if err := c.ShouldBindJSON(&header); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manifest payload"})
		return
	}

	h.submit(c, username, cart.FlowOutbound, func() error {
		return h.svc.SubmitOutbound(c.Request.Context(), username, header)
	})
}

// SubmitOpname posts the physical-count cart as one reconciliation batch.
func (h *CartHandler) SubmitOpname(c *gin.Context) {
	username, ok := operator(c)
	if !ok {
		return
	}

	var header flows.OpnameHeader
	if err := c.ShouldBindJSON(&header); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manifest payload"})
		return
	}

	h.submit(c, username, cart.FlowOpname, func() error {
		return h.svc.SubmitOpname(c.Request.Context(), username, header)
	})
}

func (h *CartHandler) submit(c *gin.Context, username string, flow cart.Flow, do func() error) {
	if err := do(); err != nil {
		h.logger.Warn("batch submit failed",
			zap.String("username", username),
			zap.String("flow", string(flow)),
			zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}
