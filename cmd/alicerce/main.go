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

	"github.com/alicerce-gestao/alicerce/internal/app"
	"github.com/alicerce-gestao/alicerce/internal/audit"
	"github.com/alicerce-gestao/alicerce/internal/auth"
	"github.com/alicerce-gestao/alicerce/internal/authz"
	"github.com/alicerce-gestao/alicerce/internal/clients"
	"github.com/alicerce-gestao/alicerce/internal/finance"
	"github.com/alicerce-gestao/alicerce/internal/obras"
	"github.com/alicerce-gestao/alicerce/internal/observability"
	"github.com/alicerce-gestao/alicerce/internal/platform/cache"
	"github.com/alicerce-gestao/alicerce/internal/platform/db"
	"github.com/alicerce-gestao/alicerce/internal/session"
	"github.com/alicerce-gestao/alicerce/internal/token"
	"github.com/alicerce-gestao/alicerce/internal/users"
	"github.com/alicerce-gestao/alicerce/jobs"
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
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	codec, err := token.NewCodec(cfg.AuthTokenSecret)
	if err != nil {
		logger.Error("init token codec", slog.Any("error", err))
		os.Exit(1)
	}
	sessions := session.NewManager(codec, cfg.AuthTokenTTL, cfg.IsProduction())

	auditLogger := audit.NewLogger(pool)
	auditRepo := audit.NewRepository(pool)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, auditLogger, logger)

	authService := auth.NewService(usersRepo)
	authHandler := auth.NewHandler(logger, authService, sessions)

	guard := authz.Middleware{Logger: logger}

	clientsRepo := clients.NewRepository(pool)
	clientsService := clients.NewService(clientsRepo, auditLogger, logger)
	clientsHandler := clients.NewHandler(logger, clientsService, guard)

	obrasRepo := obras.NewRepository(pool)
	obrasService := obras.NewService(obrasRepo, auditLogger, logger)
	obrasHandler := obras.NewHandler(logger, obrasService, guard)

	financeRepo := finance.NewRepository(pool)
	financeCache := finance.NewCache(redisClient, cfg.SummaryCacheTTL)
	financeService := finance.NewService(financeRepo, financeCache, auditLogger, logger)
	financeHandler := finance.NewHandler(logger, financeService, guard)

	usersHandler := users.NewHandler(logger, usersService, guard)
	auditHandler := audit.NewHandler(logger, auditRepo, guard)
	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		Sessions:       sessions,
		AuthHandler:    authHandler,
		ClientsHandler: clientsHandler,
		ObrasHandler:   obrasHandler,
		FinanceHandler: financeHandler,
		UsersHandler:   usersHandler,
		AuditHandler:   auditHandler,
		JobHandler:     jobHandler,
		Metrics:        metrics,
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
