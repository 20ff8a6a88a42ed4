package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prostock/internal/notify"
	"prostock/internal/service/cache"
	"prostock/internal/service/flows"
)

// DataHandler serves the cached reference data, manual refresh, item search
// and the notification feed.
type DataHandler struct {
	cache  *cache.Cache
	flows  *flows.Service
	feed   *notify.Feed
	logger *zap.Logger
}

// NewDataHandler constructs the HTTP handler adapter.
func NewDataHandler(stockCache *cache.Cache, flowSvc *flows.Service, feed *notify.Feed, logger *zap.Logger) *DataHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DataHandler{cache: stockCache, flows: flowSvc, feed: feed, logger: logger}
}

// Snapshot returns the current cached inventory, suppliers and dashboard
// stats in one response.
func (h *DataHandler) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"loading":   h.cache.Loading(),
		"inventory": h.cache.Inventory(),
		"suppliers": h.cache.Suppliers(),
		"stats":     h.cache.Stats(),
	})
}

// Refresh forces a cache reload from the backend. A refresh already in
// flight is not duplicated.
func (h *DataHandler) Refresh(c *gin.Context) {
	if err := h.cache.Refresh(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// Search proxies the autocomplete lookup. Queries under two characters
// return an empty result without touching the backend.
func (h *DataHandler) Search(c *gin.Context) {
	items, err := h.flows.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Notifications lists the feed, newest first.
func (h *DataHandler) Notifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notifications": h.feed.Recent()})
}

// DismissNotification removes one entry from the feed.
func (h *DataHandler) DismissNotification(c *gin.Context) {
	h.feed.Dismiss(c.Param("id"))
	c.Status(http.StatusNoContent)
}
