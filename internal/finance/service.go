package finance

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/alicerce-gestao/alicerce/internal/audit"
	"github.com/alicerce-gestao/alicerce/internal/authz"
)

// ErrInvalidTipo rejects transaction types outside the vocabulary on
// write paths. Reads and the aggregator stay tolerant.
var ErrInvalidTipo = errors.New("finance: tipo deve ser receita ou despesa")

// ErrInvalidValor rejects negative amounts on write paths.
var ErrInvalidValor = errors.New("finance: valor não pode ser negativo")

// Service wraps transaction business rules and the cached summary.
type Service struct {
	repo   Repository
	cache  *Cache
	audit  *audit.Logger
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, cache *Cache, auditLogger *audit.Logger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, cache: cache, audit: auditLogger, logger: logger}
}

// List returns transactions matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]Transaction, error) {
	return s.repo.List(ctx, filter)
}

// Get returns a single transaction.
func (s *Service) Get(ctx context.Context, id int64) (*Transaction, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and persists a transaction, then invalidates the
// cached summaries.
func (s *Service) Create(ctx context.Context, actor *authz.Principal, t Transaction) (*Transaction, error) {
	if err := validateWrite(&t); err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, &t)
	if err != nil {
		return nil, err
	}
	t.ID = id
	s.afterMutation(ctx, actor, "criar", t.ID)
	return &t, nil
}

// Update validates and persists changes to an existing transaction.
func (s *Service) Update(ctx context.Context, actor *authz.Principal, t Transaction) error {
	if err := validateWrite(&t); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, &t); err != nil {
		return err
	}
	s.afterMutation(ctx, actor, "editar", t.ID)
	return nil
}

// Delete removes a transaction.
func (s *Service) Delete(ctx context.Context, actor *authz.Principal, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.afterMutation(ctx, actor, "excluir", id)
	return nil
}

// Summary computes the financial metrics for the filter, served from
// cache when warm. The aggregation itself is the pure Aggregate fold.
func (s *Service) Summary(ctx context.Context, filter Filter) (Metrics, error) {
	filter.Limit = 0
	filter.Offset = 0
	var metrics Metrics
	err := s.cache.FetchJSON(ctx, SummaryKey(summaryKeyParts(filter)...), &metrics, func(ctx context.Context) (any, error) {
		transactions, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return Aggregate(transactions), nil
	})
	return metrics, err
}

func validateWrite(t *Transaction) error {
	t.Descricao = strings.TrimSpace(t.Descricao)
	if t.Tipo != TipoReceita && t.Tipo != TipoDespesa {
		return ErrInvalidTipo
	}
	if t.Valor < 0 {
		return ErrInvalidValor
	}
	if t.Status == "" {
		t.Status = StatusPendente
	}
	if t.Data.IsZero() {
		t.Data = time.Now()
	}
	return nil
}

func (s *Service) afterMutation(ctx context.Context, actor *authz.Principal, action string, id int64) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("invalidar cache financeira", slog.Any("error", err))
	}
	if s.audit == nil || actor == nil {
		return
	}
	entry := audit.Entry{
		ActorID:    actor.UserID,
		ActorLogin: actor.Login,
		Action:     action,
		Entity:     "financeira",
		EntityID:   strconv.FormatInt(id, 10),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn("registrar auditoria financeira", slog.Any("error", err))
	}
}

func summaryKeyParts(filter Filter) []string {
	parts := make([]string, 0, 5)
	if filter.ObraID != nil {
		parts = append(parts, "obra="+strconv.FormatInt(*filter.ObraID, 10))
	}
	if filter.Tipo != "" {
		parts = append(parts, "tipo="+filter.Tipo)
	}
	if filter.Status != "" {
		parts = append(parts, "status="+filter.Status)
	}
	if filter.De != nil {
		parts = append(parts, "de="+filter.De.Format("2006-01-02"))
	}
	if filter.Ate != nil {
		parts = append(parts, "ate="+filter.Ate.Format("2006-01-02"))
	}
	if len(parts) == 0 {
		parts = append(parts, "todas")
	}
	return parts
}
