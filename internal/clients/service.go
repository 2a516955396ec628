package clients

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alicerce-gestao/alicerce/internal/audit"
	"github.com/alicerce-gestao/alicerce/internal/authz"
)

// ErrInvalidInput rejects malformed client data on write paths.
var ErrInvalidInput = errors.New("clients: dados do cliente inválidos")

// Service wraps client business rules.
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

// List returns clients, optionally only active ones.
func (s *Service) List(ctx context.Context, onlyActive bool) ([]Cliente, error) {
	return s.repo.List(ctx, onlyActive)
}

// Get returns a single client.
func (s *Service) Get(ctx context.Context, id int64) (*Cliente, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and persists a new client.
func (s *Service) Create(ctx context.Context, actor *authz.Principal, c Cliente) (*Cliente, error) {
	if err := normalize(&c); err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, &c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	s.record(ctx, actor, "criar", id)
	return &c, nil
}

// Update validates and persists changes to an existing client.
func (s *Service) Update(ctx context.Context, actor *authz.Principal, c Cliente) error {
	if err := normalize(&c); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, &c); err != nil {
		return err
	}
	s.record(ctx, actor, "editar", c.ID)
	return nil
}

// Delete removes a client.
func (s *Service) Delete(ctx context.Context, actor *authz.Principal, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "excluir", id)
	return nil
}

func normalize(c *Cliente) error {
	c.Nome = strings.TrimSpace(c.Nome)
	c.Documento = strings.TrimSpace(c.Documento)
	c.UF = strings.ToUpper(strings.TrimSpace(c.UF))
	if c.Nome == "" || c.Documento == "" {
		return ErrInvalidInput
	}
	if c.UF != "" && len(c.UF) != 2 {
		return ErrInvalidInput
	}
	return nil
}

func (s *Service) record(ctx context.Context, actor *authz.Principal, action string, id int64) {
	if s.audit == nil || actor == nil {
		return
	}
	entry := audit.Entry{
		ActorID:    actor.UserID,
		ActorLogin: actor.Login,
		Action:     action,
		Entity:     "clientes",
		EntityID:   strconv.FormatInt(id, 10),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn("registrar auditoria clientes", slog.Any("error", err))
	}
}
