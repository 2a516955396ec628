package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/alicerce-gestao/alicerce/internal/app"
	"github.com/alicerce-gestao/alicerce/internal/audit"
	"github.com/alicerce-gestao/alicerce/internal/finance"
	"github.com/alicerce-gestao/alicerce/internal/platform/cache"
	"github.com/alicerce-gestao/alicerce/internal/platform/db"
	"github.com/alicerce-gestao/alicerce/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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
		logger.Error("connect database", slog.Any("error", err))
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

	financeRepo := finance.NewRepository(pool)
	financeCache := finance.NewCache(redisClient, cfg.SummaryCacheTTL)
	financeService := finance.NewService(financeRepo, financeCache, nil, logger)

	auditRepo := audit.NewRepository(pool)

	warmupJob := jobs.NewSummaryWarmupJob(financeService, pool, logger)
	purgeJob := jobs.NewAuditPurgeJob(auditRepo, cfg.AuditRetention, logger)

	warmupTask, err := jobs.NewFinanceSummaryWarmupTask(jobs.FinanceSummaryWarmupPayload{})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}
	purgeTask, err := jobs.NewAuditPurgeTask(jobs.AuditPurgePayload{})
	if err != nil {
		logger.Error("build purge task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskFinanceSummaryWarmup, Handler: warmupJob.Handle},
			{Type: jobs.TaskAuditPurge, Handler: purgeJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "15 1 * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "0 3 * * 0", Task: purgeTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
