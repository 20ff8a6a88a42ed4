package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prostock/internal/server/handlers"
)

// Handlers bundles every HTTP adapter the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Data      *handlers.DataHandler
	Cart      *handlers.CartHandler
	Report    *handlers.ReportHandler
	Assistant *handlers.AssistantHandler
	Admin     *handlers.AdminHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.POST("/login", h.Auth.Login)
		api.GET("/session", h.Auth.Resume)
		api.POST("/logout", h.Auth.Logout)

		api.GET("/data", h.Data.Snapshot)
		api.POST("/data/refresh", h.Data.Refresh)
		api.GET("/items/search", h.Data.Search)

		api.GET("/notifications", h.Data.Notifications)
		api.DELETE("/notifications/:id", h.Data.DismissNotification)

		api.POST("/cart/:flow/lines", h.Cart.AddLine)
		api.GET("/cart/:flow/lines", h.Cart.Lines)
		api.DELETE("/cart/:flow/lines/:lineId", h.Cart.RemoveLine)

		api.POST("/transactions/in", h.Cart.SubmitInbound)
		api.POST("/transactions/out", h.Cart.SubmitOutbound)
		api.POST("/transactions/opname", h.Cart.SubmitOpname)

		api.GET("/reports/history", h.Report.History)
		api.GET("/reports/export", h.Report.Export)

		api.POST("/assistant/chat", h.Assistant.Chat)
		api.DELETE("/assistant/history", h.Assistant.Reset)

		adminGroup := api.Group("/admin")
		{
			adminGroup.POST("/items", h.Admin.SaveItem)
			adminGroup.DELETE("/items/:id", h.Admin.DeleteItem)
			adminGroup.POST("/suppliers", h.Admin.SaveSupplier)
			adminGroup.DELETE("/suppliers/:id", h.Admin.DeleteSupplier)
			adminGroup.GET("/users", h.Admin.Users)
			adminGroup.POST("/users", h.Admin.SaveUser)
			adminGroup.DELETE("/users/:id", h.Admin.DeleteUser)
			adminGroup.GET("/logs", h.Admin.ActivityLogs)
		}
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
