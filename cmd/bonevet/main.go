package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/bonevet/inventory/internal/app"
	"github.com/bonevet/inventory/internal/auditlog"
	"github.com/bonevet/inventory/internal/auth"
	"github.com/bonevet/inventory/internal/dashboard"
	"github.com/bonevet/inventory/internal/documents"
	"github.com/bonevet/inventory/internal/inventory"
	"github.com/bonevet/inventory/internal/loans"
	"github.com/bonevet/inventory/internal/observability"
	"github.com/bonevet/inventory/internal/platform/cache"
	"github.com/bonevet/inventory/internal/platform/db"
	"github.com/bonevet/inventory/internal/reports"
	"github.com/bonevet/inventory/internal/settings"
	"github.com/bonevet/inventory/internal/shared"
	"github.com/bonevet/inventory/internal/users"
	"github.com/bonevet/inventory/internal/view"
	"github.com/bonevet/inventory/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "bonevet_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	auditRecorder := shared.NewAuditRecorder(pool)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, templates, sessionManager, csrfManager)

	inventoryRepo := inventory.NewRepository(pool)
	inventoryService := inventory.NewService(inventoryRepo, auditRecorder)

	loansRepo := loans.NewRepository(pool)
	loansService := loans.NewService(loansRepo, inventoryService, auditRecorder)

	documentsRepo := documents.NewRepository(pool)
	documentsService := documents.NewService(documentsRepo, auditRecorder)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, auditRecorder)

	reportsRepo := reports.NewRepository(pool)
	reportsService := reports.NewService(reportsRepo, loansService)

	auditRepo := auditlog.NewRepository(pool)
	auditService := auditlog.NewService(auditRepo)

	dashboardService := dashboard.NewService(inventoryService, loansService)

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		CSRFManager:      csrfManager,
		AuthHandler:      authHandler,
		DashboardHandler: dashboard.NewHandler(logger, dashboardService, templates, csrfManager),
		InventoryHandler: inventory.NewHandler(logger, inventoryService, loansService, templates, csrfManager),
		LoansHandler:     loans.NewHandler(logger, loansService, inventoryService, templates, csrfManager),
		DocumentsHandler: documents.NewHandler(logger, documentsService, templates, csrfManager),
		ReportsHandler:   reports.NewHandler(logger, reportsService, templates, csrfManager),
		UsersHandler:     users.NewHandler(logger, usersService, templates, csrfManager),
		SettingsHandler:  settings.NewHandler(logger, usersService, templates, csrfManager),
		AuditHandler:     auditlog.NewHandler(logger, auditService, templates, csrfManager),
		JobHandler:       jobHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
