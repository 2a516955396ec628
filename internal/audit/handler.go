package audit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/alicerce-gestao/alicerce/internal/authz"
	"github.com/alicerce-gestao/alicerce/internal/platform/httpx"
)

// Handler exposes the audit trail listing.
type Handler struct {
	logger *slog.Logger
	repo   *Repository
	guard  authz.Middleware
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, repo *Repository, guard authz.Middleware) *Handler {
	return &Handler{logger: logger, repo: repo, guard: guard}
}

// MountRoutes registers audit routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(authz.ResourceLogs, authz.ActionView))
		r.Get("/", h.list)
	})
}

type entryResponse struct {
	ID         uuid.UUID      `json:"id"`
	ActorID    int64          `json:"atorId"`
	ActorLogin string         `json:"atorLogin"`
	Action     string         `json:"acao"`
	Entity     string         `json:"entidade"`
	EntityID   string         `json:"entidadeId"`
	Meta       map[string]any `json:"meta,omitempty"`
	At         time.Time      `json:"ocorridoEm"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limite"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("deslocamento"))
	entries, err := h.repo.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("listar logs", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryResponse{
			ID:         e.ID,
			ActorID:    e.ActorID,
			ActorLogin: e.ActorLogin,
			Action:     e.Action,
			Entity:     e.Entity,
			EntityID:   e.EntityID,
			Meta:       e.Meta,
			At:         e.At,
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"logs": out})
}
