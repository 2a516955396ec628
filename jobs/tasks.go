// Package jobs hosts the background task definitions and the Asynq
// worker runtime.
package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskFinanceSummaryWarmup pre-computes the financial summary caches.
	TaskFinanceSummaryWarmup = "finance:summary_warmup"
	// TaskAuditPurge removes audit entries past the retention horizon.
	TaskAuditPurge = "audit:purge"
)

// FinanceSummaryWarmupPayload scopes a warmup run.
type FinanceSummaryWarmupPayload struct {
	// ObraIDs limits the warmup to specific works. Empty means the
	// global summary plus every active work.
	ObraIDs []int64 `json:"obraIds,omitempty"`
}

// NewFinanceSummaryWarmupTask constructs an Asynq task.
func NewFinanceSummaryWarmupTask(payload FinanceSummaryWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskFinanceSummaryWarmup, data), nil
}

// AuditPurgePayload overrides the configured retention when set.
type AuditPurgePayload struct {
	RetentionHours int64 `json:"retentionHours,omitempty"`
}

// Retention resolves the effective retention for a purge run.
func (p AuditPurgePayload) Retention(fallback time.Duration) time.Duration {
	if p.RetentionHours > 0 {
		return time.Duration(p.RetentionHours) * time.Hour
	}
	return fallback
}

// NewAuditPurgeTask constructs an Asynq task.
func NewAuditPurgeTask(payload AuditPurgePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuditPurge, data), nil
}
