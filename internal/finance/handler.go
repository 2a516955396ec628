package finance

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

// Handler wires HTTP endpoints for the financeira resource.
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

// MountRoutes registers financeira routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(authz.ResourceFinanceira, authz.ActionView))
		r.Get("/", h.list)
		r.Get("/resumo", h.summary)
		r.Get("/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(authz.ResourceFinanceira, authz.ActionCreate))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(authz.ResourceFinanceira, authz.ActionEdit))
		r.Put("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(authz.ResourceFinanceira, authz.ActionDelete))
		r.Delete("/{id}", h.remove)
	})
}

type transactionRequest struct {
	Descricao string `json:"descricao" validate:"required"`
	Tipo      string `json:"tipo" validate:"required,oneof=receita despesa"`
	Status    string `json:"status" validate:"omitempty,oneof=pago pendente"`
	Valor     Valor  `json:"valor"`
	Data      string `json:"data" validate:"omitempty,datetime=2006-01-02"`
	ObraID    *int64 `json:"obraId"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	transactions, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("listar transações", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if transactions == nil {
		transactions = []Transaction{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"transacoes": transactions})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	metrics, err := h.service.Summary(r.Context(), filter)
	if err != nil {
		h.logger.Error("resumo financeiro", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"resumo":            metrics,
		"saldoRealizadoFmt": FormatBRL(metrics.SaldoRealizado),
		"saldoPrevistoFmt":  FormatBRL(metrics.SaldoPrevisto),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	t, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.RespondError(w, httpx.ErrNotFound)
			return
		}
		h.logger.Error("buscar transação", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, t)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	t, ok := h.decode(w, r)
	if !ok {
		return
	}
	created, err := h.service.Create(r.Context(), authz.PrincipalFromContext(r.Context()), t)
	if err != nil {
		h.respondWriteError(w, err)
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
	t, ok := h.decode(w, r)
	if !ok {
		return
	}
	t.ID = id
	if err := h.service.Update(r.Context(), authz.PrincipalFromContext(r.Context()), t); err != nil {
		h.respondWriteError(w, err)
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
		h.respondWriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"sucesso": true})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Transaction, bool) {
	var req transactionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return Transaction{}, false
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return Transaction{}, false
	}
	t := Transaction{
		ObraID:    req.ObraID,
		Descricao: req.Descricao,
		Tipo:      req.Tipo,
		Status:    req.Status,
		Valor:     req.Valor,
	}
	if req.Data != "" {
		// Format already validated.
		t.Data, _ = time.Parse("2006-01-02", req.Data)
	}
	return t, true
}

func (h *Handler) respondWriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.RespondError(w, httpx.ErrNotFound)
	case errors.Is(err, ErrInvalidTipo), errors.Is(err, ErrInvalidValor):
		httpx.RespondError(w, httpx.ErrValidation)
	default:
		h.logger.Error("gravar transação", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func filterFromQuery(r *http.Request) (Filter, error) {
	var filter Filter
	q := r.URL.Query()
	if raw := q.Get("obra"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Filter{}, err
		}
		filter.ObraID = &id
	}
	filter.Tipo = q.Get("tipo")
	filter.Status = q.Get("status")
	if raw := q.Get("de"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return Filter{}, err
		}
		filter.De = &t
	}
	if raw := q.Get("ate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return Filter{}, err
		}
		filter.Ate = &t
	}
	if raw := q.Get("limite"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return Filter{}, err
		}
		filter.Limit = limit
	}
	if raw := q.Get("deslocamento"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return Filter{}, err
		}
		filter.Offset = offset
	}
	return filter, nil
}
