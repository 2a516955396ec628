package obras

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/alicerce-gestao/alicerce/internal/authz"
	"github.com/alicerce-gestao/alicerce/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the obras resource.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	guard     authz.Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard authz.Middleware) *Handler {
	return &Handler{logger: logger, service: service, guard: guard, validator: validator.New()}
}

// MountRoutes registers work routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(authz.ResourceObras, authz.ActionView))
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(authz.ResourceObras, authz.ActionCreate))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(authz.ResourceObras, authz.ActionEdit))
		r.Put("/{id}", h.update)
		r.Post("/{id}/status", h.changeStatus)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(authz.ResourceObras, authz.ActionDelete))
		r.Delete("/{id}", h.remove)
	})
}

type obraRequest struct {
	ClienteID    int64   `json:"clienteId" validate:"required"`
	Nome         string  `json:"nome" validate:"required"`
	Endereco     string  `json:"endereco"`
	Orcamento    float64 `json:"orcamento" validate:"gte=0"`
	DataInicio   string  `json:"dataInicio" validate:"omitempty,datetime=2006-01-02"`
	DataPrevisao string  `json:"dataPrevisao" validate:"omitempty,datetime=2006-01-02"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=planejada em_andamento concluida cancelada"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var clienteID *int64
	if raw := r.URL.Query().Get("cliente"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.RespondError(w, httpx.ErrValidation)
			return
		}
		clienteID = &id
	}
	obras, err := h.service.List(r.Context(), clienteID)
	if err != nil {
		h.logger.Error("listar obras", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if obras == nil {
		obras = []Obra{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"obras": obras})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	o, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	o, ok := h.decode(w, r)
	if !ok {
		return
	}
	created, err := h.service.Create(r.Context(), authz.PrincipalFromContext(r.Context()), o)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	o, ok := h.decode(w, r)
	if !ok {
		return
	}
	o.ID = id
	if err := h.service.Update(r.Context(), authz.PrincipalFromContext(r.Context()), o); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"sucesso": true})
}

func (h *Handler) changeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.service.ChangeStatus(r.Context(), authz.PrincipalFromContext(r.Context()), id, req.Status); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"sucesso": true})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.service.Delete(r.Context(), authz.PrincipalFromContext(r.Context()), id); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"sucesso": true})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Obra, bool) {
	var req obraRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return Obra{}, false
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return Obra{}, false
	}
	o := Obra{
		ClienteID: req.ClienteID,
		Nome:      req.Nome,
		Endereco:  req.Endereco,
		Orcamento: req.Orcamento,
	}
	if req.DataInicio != "" {
		t, _ := time.Parse("2006-01-02", req.DataInicio)
		o.DataInicio = &t
	}
	if req.DataPrevisao != "" {
		t, _ := time.Parse("2006-01-02", req.DataPrevisao)
		o.DataPrevisao = &t
	}
	return o, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.RespondError(w, httpx.ErrNotFound)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidTransition):
		httpx.RespondError(w, httpx.ErrValidation)
	default:
		h.logger.Error("obras", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
