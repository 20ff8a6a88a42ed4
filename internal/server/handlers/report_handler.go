package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prostock/internal/domain/models"
	"prostock/internal/export"
	"prostock/internal/service/history"
)

// ReportHandler serves the historical stock report and the audit export.
type ReportHandler struct {
	history *history.Service
	export  *export.Service
	logger  *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(historySvc *history.Service, exportSvc *export.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{history: historySvc, export: exportSvc, logger: logger}
}

// History returns the per-item movement timeline with running balances.
func (h *ReportHandler) History(c *gin.Context) {
	itemID := c.Query("itemId")
	if itemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "itemId is required"})
		return
	}

	report, err := h.history.Fetch(c.Request.Context(), itemID, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Export streams the filtered movement ledger as an xlsx attachment.
func (h *ReportHandler) Export(c *gin.Context) {
	filter := export.Filter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		ItemID:    c.Query("itemId"),
		Type:      models.TransactionType(c.Query("type")),
	}

	data, err := h.export.Workbook(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	filename := fmt.Sprintf("Audit_ProStock_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
