package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/alicerce-gestao/alicerce/internal/authz"
	"github.com/alicerce-gestao/alicerce/internal/platform/httpx"
	"github.com/alicerce-gestao/alicerce/internal/session"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	sessions  *session.Manager
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, sessions *session.Manager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		service:   service,
		sessions:  sessions,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Post("/refresh", h.handleRefresh)
	r.Get("/verify", h.handleVerify)
}

type loginRequest struct {
	Login string `json:"login" validate:"required"`
	Senha string `json:"senha" validate:"required"`
}

type usuarioPayload struct {
	ID         int64        `json:"id"`
	Login      string       `json:"login"`
	Role       authz.Role   `json:"role"`
	Permissoes authz.Matrix `json:"permissoes"`
}

func principalPayload(p *authz.Principal) usuarioPayload {
	return usuarioPayload{ID: p.UserID, Login: p.Login, Role: p.Role, Permissoes: p.Permissions}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSON(w, http.StatusBadRequest, map[string]any{"erro": "Requisição inválida"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.JSON(w, http.StatusBadRequest, map[string]any{"erro": "Requisição inválida"})
		return
	}

	principal, err := h.service.Authenticate(r.Context(), req.Login, req.Senha)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.JSON(w, http.StatusUnauthorized, map[string]any{"erro": "Login ou senha inválidos"})
			return
		}
		h.logger.Error("login", slog.Any("error", err))
		httpx.JSON(w, http.StatusInternalServerError, map[string]any{"erro": "Erro interno"})
		return
	}

	_, cookie, err := h.sessions.Issue(*principal)
	if err != nil {
		h.logger.Error("emitir token", slog.Any("error", err))
		httpx.JSON(w, http.StatusInternalServerError, map[string]any{"erro": "Erro interno"})
		return
	}
	http.SetCookie(w, cookie)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"autenticado": true,
		"usuario":     principalPayload(principal),
	})
}

// handleLogout clears the session cookie. Unconditional and
// idempotent: it succeeds with or without a valid session.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessions.Logout())
	httpx.JSON(w, http.StatusOK, map[string]any{"sucesso": true})
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, map[string]any{"erro": "Token não encontrado"})
		return
	}
	fresh, ok := h.sessions.Refresh(cookie.Value)
	if !ok {
		httpx.JSON(w, http.StatusUnauthorized, map[string]any{"erro": "Token inválido ou expirado"})
		return
	}
	http.SetCookie(w, fresh)
	httpx.JSON(w, http.StatusOK, map[string]any{"sucesso": true})
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	principal := authz.PrincipalFromContext(r.Context())
	if principal == nil {
		httpx.JSON(w, http.StatusUnauthorized, map[string]any{"autenticado": false})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"autenticado": true,
		"usuario":     principalPayload(principal),
	})
}
