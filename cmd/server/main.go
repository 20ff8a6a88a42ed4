package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"prostock/internal/config"
	"prostock/internal/export"
	"prostock/internal/notify"
	"prostock/internal/repository/mongodb"
	"prostock/internal/scheduler"
	"prostock/internal/server/handlers"
	"prostock/internal/server/router"
	adminsvc "prostock/internal/service/admin"
	assistantsvc "prostock/internal/service/assistant"
	authsvc "prostock/internal/service/auth"
	"prostock/internal/service/cache"
	"prostock/internal/service/cart"
	flowsvc "prostock/internal/service/flows"
	historysvc "prostock/internal/service/history"
	"prostock/pkg/clients/anthropic"
	"prostock/pkg/clients/gas"
	"prostock/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	sessionRepo, err := mongodb.NewSessionRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb session repository", zap.Error(err))
	}
	defer func() {
		if err := sessionRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	backend := gas.NewClient(cfg.Backend)
	if cfg.Backend.RPCURL == "" {
		baseLogger.Warn("backend rpc url missing, data operations will report not configured")
	}

	feed := notify.NewFeed(baseLogger.Named("notify"))
	stockCache := cache.New(backend, feed, baseLogger.Named("svc.cache"))
	cartManager := cart.NewManager(baseLogger.Named("svc.cart"))

	flowSvc := flowsvc.NewService(backend, stockCache, cartManager, feed, baseLogger.Named("svc.flows"))
	authSvc := authsvc.NewService(backend, sessionRepo, stockCache, cartManager, feed, baseLogger.Named("svc.auth"))
	historySvc := historysvc.NewService(backend, baseLogger.Named("svc.history"))
	exportSvc := export.NewService(backend, baseLogger.Named("svc.export"))
	adminSvc := adminsvc.NewService(backend, stockCache, feed, baseLogger.Named("svc.admin"))

	// Initialize AI Client
	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey)
		baseLogger.Info("anthropic ai client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, assistant disabled")
	}
	assistantSvc := assistantsvc.NewService(aiClient, stockCache, baseLogger.Named("svc.assistant"))

	engine := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(authSvc, baseLogger.Named("handlers.auth")),
		Data:      handlers.NewDataHandler(stockCache, flowSvc, feed, baseLogger.Named("handlers.data")),
		Cart:      handlers.NewCartHandler(flowSvc, baseLogger.Named("handlers.cart")),
		Report:    handlers.NewReportHandler(historySvc, exportSvc, baseLogger.Named("handlers.report")),
		Assistant: handlers.NewAssistantHandler(assistantSvc, baseLogger.Named("handlers.assistant")),
		Admin:     handlers.NewAdminHandler(adminSvc, baseLogger.Named("handlers.admin")),
	}, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(*cfg, stockCache, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
