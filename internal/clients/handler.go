package clients

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/alicerce-gestao/alicerce/internal/authz"
	"github.com/alicerce-gestao/alicerce/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the clientes resource.
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

// MountRoutes registers client routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(authz.ResourceClientes, authz.ActionView))
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(authz.ResourceClientes, authz.ActionCreate))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(authz.ResourceClientes, authz.ActionEdit))
		r.Put("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(authz.ResourceClientes, authz.ActionDelete))
		r.Delete("/{id}", h.remove)
	})
}

type clienteRequest struct {
	Nome      string `json:"nome" validate:"required"`
	Documento string `json:"documento" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Telefone  string `json:"telefone"`
	Endereco  string `json:"endereco"`
	Cidade    string `json:"cidade"`
	UF        string `json:"uf" validate:"omitempty,len=2"`
	CEP       string `json:"cep" validate:"omitempty,numeric,len=8"`
	Ativo     *bool  `json:"ativo"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("ativos") == "1"
	clientes, err := h.service.List(r.Context(), onlyActive)
	if err != nil {
		h.logger.Error("listar clientes", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if clientes == nil {
		clientes = []Cliente{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"clientes": clientes})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	c, ok := h.decode(w, r)
	if !ok {
		return
	}
	created, err := h.service.Create(r.Context(), authz.PrincipalFromContext(r.Context()), c)
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
	c, ok := h.decode(w, r)
	if !ok {
		return
	}
	c.ID = id
	if err := h.service.Update(r.Context(), authz.PrincipalFromContext(r.Context()), c); err != nil {
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

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Cliente, bool) {
	var req clienteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return Cliente{}, false
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return Cliente{}, false
	}
	ativo := true
	if req.Ativo != nil {
		ativo = *req.Ativo
	}
	return Cliente{
		Nome:      req.Nome,
		Documento: req.Documento,
		Email:     req.Email,
		Telefone:  req.Telefone,
		Endereco:  req.Endereco,
		Cidade:    req.Cidade,
		UF:        req.UF,
		CEP:       req.CEP,
		Ativo:     ativo,
	}, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.RespondError(w, httpx.ErrNotFound)
	case errors.Is(err, ErrDuplicate):
		httpx.RespondError(w, httpx.ErrDuplicate)
	case errors.Is(err, ErrInvalidInput):
		httpx.RespondError(w, httpx.ErrValidation)
	default:
		h.logger.Error("clientes", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
