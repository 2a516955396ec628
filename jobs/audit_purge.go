package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/alicerce-gestao/alicerce/internal/audit"
)

// AuditPurgeJob trims audit entries past the retention horizon.
type AuditPurgeJob struct {
	Repo      *audit.Repository
	Retention time.Duration
	Logger    *slog.Logger
}

// NewAuditPurgeJob wires dependencies for the purge handler.
func NewAuditPurgeJob(repo *audit.Repository, retention time.Duration, logger *slog.Logger) *AuditPurgeJob {
	return &AuditPurgeJob{Repo: repo, Retention: retention, Logger: logger}
}

// Handle processes audit purge tasks.
func (j *AuditPurgeJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Repo == nil {
		return errors.New("audit purge: handler not configured")
	}
	var payload AuditPurgePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	retention := payload.Retention(j.Retention)
	if retention <= 0 {
		return asynq.SkipRetry
	}

	deleted, err := j.Repo.PurgeOlderThan(ctx, retention)
	if err != nil {
		j.logger().Error("expurgo de auditoria", slog.Any("error", err))
		return err
	}
	j.logger().Info("expurgo de auditoria concluído",
		slog.Int64("removidos", deleted),
		slog.Duration("retencao", retention))
	return nil
}

func (j *AuditPurgeJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskAuditPurge))
	}
	return slog.Default().With(slog.String("job", TaskAuditPurge))
}
