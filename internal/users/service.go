package users

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/alicerce-gestao/alicerce/internal/audit"
	"github.com/alicerce-gestao/alicerce/internal/authz"
)

// Service level errors.
var (
	ErrInvalidInput = errors.New("users: dados do usuário inválidos")
	ErrInvalidRole  = errors.New("users: papel deve ser admin ou funcionario")
)

// Service wraps user administration rules. All operations here are
// admin-gated at the HTTP layer.
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

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Get returns a single user.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.Get(ctx, id)
}

// Create hashes the password and persists a new account.
func (s *Service) Create(ctx context.Context, actor *authz.Principal, u User, password string) (*User, error) {
	u.Login = strings.TrimSpace(strings.ToLower(u.Login))
	u.Nome = strings.TrimSpace(u.Nome)
	if u.Login == "" || u.Nome == "" || len(password) < 8 {
		return nil, ErrInvalidInput
	}
	if u.Role != authz.RoleAdmin && u.Role != authz.RoleFuncionario {
		return nil, ErrInvalidRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = string(hash)
	u.IsActive = true
	id, err := s.repo.Create(ctx, &u)
	if err != nil {
		return nil, err
	}
	u.ID = id
	u.PasswordHash = ""
	s.record(ctx, actor, "criar", id, nil)
	return &u, nil
}

// SetActive toggles an account.
func (s *Service) SetActive(ctx context.Context, actor *authz.Principal, id int64, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.record(ctx, actor, "ativar", id, map[string]any{"ativo": active})
	return nil
}

// SetRole changes the account role.
func (s *Service) SetRole(ctx context.Context, actor *authz.Principal, id int64, role authz.Role) error {
	if role != authz.RoleAdmin && role != authz.RoleFuncionario {
		return ErrInvalidRole
	}
	if err := s.repo.SetRole(ctx, id, role); err != nil {
		return err
	}
	s.record(ctx, actor, "mudar_papel", id, map[string]any{"papel": string(role)})
	return nil
}

// Grants loads the raw grant record for a user.
func (s *Service) Grants(ctx context.Context, userID int64) (authz.RawGrants, error) {
	return s.repo.Grants(ctx, userID)
}

// SaveGrants replaces the grant record for a user. Grant changes only
// reach active sessions when their token is reissued.
func (s *Service) SaveGrants(ctx context.Context, actor *authz.Principal, userID int64, grants authz.RawGrants) error {
	for resource := range grants {
		if !knownResource(resource) {
			return ErrInvalidInput
		}
	}
	if err := s.repo.SaveGrants(ctx, userID, grants); err != nil {
		return err
	}
	s.record(ctx, actor, "salvar_permissoes", userID, nil)
	return nil
}

func knownResource(resource authz.Resource) bool {
	for _, known := range authz.Resources() {
		if known == resource {
			return true
		}
	}
	return false
}

func (s *Service) record(ctx context.Context, actor *authz.Principal, action string, id int64, meta map[string]any) {
	if s.audit == nil || actor == nil {
		return
	}
	entry := audit.Entry{
		ActorID:    actor.UserID,
		ActorLogin: actor.Login,
		Action:     action,
		Entity:     "usuarios",
		EntityID:   strconv.FormatInt(id, 10),
		Meta:       meta,
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn("registrar auditoria usuários", slog.Any("error", err))
	}
}
