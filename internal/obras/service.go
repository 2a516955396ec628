package obras

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alicerce-gestao/alicerce/internal/audit"
	"github.com/alicerce-gestao/alicerce/internal/authz"
)

// Service level errors.
var (
	ErrInvalidInput      = errors.New("obras: dados da obra inválidos")
	ErrInvalidTransition = errors.New("obras: transição de status inválida")
)

// Service wraps work business rules.
type Service struct {
	repo   Repository
	audit  *audit.Logger
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, auditLogger *audit.Logger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, audit: auditLogger, logger: logger}
}

// List returns works, optionally filtered by client.
func (s *Service) List(ctx context.Context, clienteID *int64) ([]Obra, error) {
	return s.repo.List(ctx, clienteID)
}

// Get returns a single work.
func (s *Service) Get(ctx context.Context, id int64) (*Obra, error) {
	return s.repo.Get(ctx, id)
}

// Create persists a new work. New works always start as planejada.
func (s *Service) Create(ctx context.Context, actor *authz.Principal, o Obra) (*Obra, error) {
	o.Nome = strings.TrimSpace(o.Nome)
	if o.Nome == "" || o.ClienteID == 0 || o.Orcamento < 0 {
		return nil, ErrInvalidInput
	}
	o.Status = StatusPlanejada
	id, err := s.repo.Create(ctx, &o)
	if err != nil {
		return nil, err
	}
	o.ID = id
	s.record(ctx, actor, "criar", id, nil)
	return &o, nil
}

// Update persists changes to work fields other than status.
func (s *Service) Update(ctx context.Context, actor *authz.Principal, o Obra) error {
	o.Nome = strings.TrimSpace(o.Nome)
	if o.Nome == "" || o.Orcamento < 0 {
		return ErrInvalidInput
	}
	if err := s.repo.Update(ctx, &o); err != nil {
		return err
	}
	s.record(ctx, actor, "editar", o.ID, nil)
	return nil
}

// ChangeStatus applies a status transition after checking it is
// allowed from the current status.
func (s *Service) ChangeStatus(ctx context.Context, actor *authz.Principal, id int64, status string) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(current.Status, status) {
		return ErrInvalidTransition
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.record(ctx, actor, "mudar_status", id, map[string]any{"de": current.Status, "para": status})
	return nil
}

// Delete removes a work.
func (s *Service) Delete(ctx context.Context, actor *authz.Principal, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "excluir", id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, actor *authz.Principal, action string, id int64, meta map[string]any) {
	if s.audit == nil || actor == nil {
		return
	}
	entry := audit.Entry{
		ActorID:    actor.UserID,
		ActorLogin: actor.Login,
		Action:     action,
		Entity:     "obras",
		EntityID:   strconv.FormatInt(id, 10),
		Meta:       meta,
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn("registrar auditoria obras", slog.Any("error", err))
	}
}
