package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/alicerce-gestao/alicerce/internal/finance"
)

// SummaryWarmupJob pre-populates the financial summary caches so the
// dashboard never pays the aggregation cost on first view.
type SummaryWarmupJob struct {
	Finance *finance.Service
	Pool    *pgxpool.Pool
	Logger  *slog.Logger
	clock   func() time.Time
}

// NewSummaryWarmupJob wires dependencies for the warmup handler.
func NewSummaryWarmupJob(financeSvc *finance.Service, pool *pgxpool.Pool, logger *slog.Logger) *SummaryWarmupJob {
	return &SummaryWarmupJob{
		Finance: financeSvc,
		Pool:    pool,
		Logger:  logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes summary warmup tasks.
func (j *SummaryWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Finance == nil {
		return errors.New("summary warmup: handler not configured")
	}
	var payload FinanceSummaryWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger()
	start := j.now()
	logger.Info("iniciando warmup do resumo financeiro")

	obraIDs := payload.ObraIDs
	if len(obraIDs) == 0 {
		ids, err := j.fetchActiveObras(ctx)
		if err != nil {
			logger.Error("carregar obras ativas", slog.Any("error", err))
			return err
		}
		obraIDs = ids
	}

	// Warm the global summary plus one scoped summary per work,
	// bounded so a large portfolio does not stampede the database.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	g.Go(func() error {
		_, err := j.Finance.Summary(gctx, finance.Filter{})
		return err
	})
	for _, id := range obraIDs {
		g.Go(func() error {
			_, err := j.Finance.Summary(gctx, finance.Filter{ObraID: &id})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("warmup do resumo", slog.Any("error", err))
		return err
	}

	logger.Info("warmup do resumo concluído",
		slog.Int("obras", len(obraIDs)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *SummaryWarmupJob) fetchActiveObras(ctx context.Context) ([]int64, error) {
	if j.Pool == nil {
		return nil, errors.New("summary warmup: pool not configured")
	}
	rows, err := j.Pool.Query(ctx,
		`SELECT id FROM obras WHERE status IN ('planejada', 'em_andamento') ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (j *SummaryWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskFinanceSummaryWarmup))
	}
	return slog.Default().With(slog.String("job", TaskFinanceSummaryWarmup))
}

func (j *SummaryWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
