package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"prostock/internal/export"
	"prostock/internal/repository/mongodb"
	"prostock/internal/service/assistant"
	"prostock/internal/service/auth"
	"prostock/internal/service/cart"
	"prostock/internal/service/flows"
	"prostock/internal/service/history"
	"prostock/pkg/clients/gas"
)

// writeError maps service errors onto HTTP status codes. Backend rejection
// messages are surfaced verbatim so the operator sees what the backend said.
func writeError(c *gin.Context, err error) {
	var backendErr *gas.BackendError
	var connErr *gas.ConnectivityError
	var stockErr *cart.InsufficientStockError
	var conservationErr *history.ConservationError

	switch {
	case errors.Is(err, gas.ErrNotConfigured),
		errors.Is(err, assistant.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.As(err, &connErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.As(err, &backendErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": backendErr.Message})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     stockErr.Error(),
			"requested": stockErr.Requested,
			"available": stockErr.Available,
			"unit":      stockErr.Unit,
		})
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, mongodb.ErrSessionNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, flows.ErrItemNotFound),
		errors.Is(err, history.ErrNoItem),
		errors.Is(err, export.ErrNoRows),
		errors.Is(err, cart.ErrUnknownLine):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, flows.ErrIncomplete),
		errors.Is(err, cart.ErrNoItemSelected),
		errors.Is(err, cart.ErrUnknownUnit),
		errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &conservationErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// operator extracts the acting username from the request header. Every
// stateful route is scoped to an operator.
func operator(c *gin.Context) (string, bool) {
	username := c.GetHeader("X-Username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Username header is required"})
		return "", false
	}
	return username, true
}

// parseFlow maps the URL segment onto a cart flow.
func parseFlow(c *gin.Context) (cart.Flow, bool) {
	switch flow := cart.Flow(c.Param("flow")); flow {
	case cart.FlowInbound, cart.FlowOutbound, cart.FlowOpname:
		return flow, true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown flow: " + c.Param("flow")})
		return "", false
	}
}
