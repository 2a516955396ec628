// Package auth implements the authentication flows: credential check,
// token issuance and the session endpoints.
package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/alicerce-gestao/alicerce/internal/authz"
	"github.com/alicerce-gestao/alicerce/internal/users"
)

// ErrInvalidCredentials indicates login failure. The same value is
// returned for unknown login, wrong password and inactive account so
// the response never reveals which one happened.
var ErrInvalidCredentials = errors.New("auth: credenciais inválidas")

// Store is the slice of the user repository the auth flow needs.
type Store interface {
	FindByLogin(ctx context.Context, login string) (*users.User, error)
	Grants(ctx context.Context, userID int64) (authz.RawGrants, error)
}

// Service wraps authentication business rules.
type Service struct {
	store Store
}

// NewService constructs a new Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Authenticate validates login/password credentials and resolves the
// Principal, permission matrix included.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*authz.Principal, error) {
	user, err := s.store.FindByLogin(ctx, login)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	matrix, err := s.resolveMatrix(ctx, user)
	if err != nil {
		return nil, err
	}
	return &authz.Principal{
		UserID:      user.ID,
		Login:       user.Login,
		Role:        user.Role,
		Permissions: matrix,
	}, nil
}

// resolveMatrix builds the permission matrix from the stored grants.
// Admin accounts get the full matrix without needing grant rows.
func (s *Service) resolveMatrix(ctx context.Context, user *users.User) (authz.Matrix, error) {
	if user.Role == authz.RoleAdmin {
		return authz.AdminMatrix(), nil
	}
	grants, err := s.store.Grants(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return authz.BuildMatrix(grants), nil
}
