// Package users manages user accounts and their per-resource grants.
package users

import (
	"time"

	"github.com/alicerce-gestao/alicerce/internal/authz"
)

// User represents a user account for management.
type User struct {
	ID           int64      `json:"id"`
	Login        string     `json:"login"`
	Nome         string     `json:"nome"`
	Email        string     `json:"email,omitempty"`
	PasswordHash string     `json:"-"`
	Role         authz.Role `json:"role"`
	IsActive     bool       `json:"ativo"`
	CreatedAt    time.Time  `json:"criadoEm"`
	UpdatedAt    time.Time  `json:"atualizadoEm"`
}
