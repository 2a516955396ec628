package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/alicerce-gestao/alicerce/internal/audit"
	"github.com/alicerce-gestao/alicerce/internal/auth"
	"github.com/alicerce-gestao/alicerce/internal/clients"
	"github.com/alicerce-gestao/alicerce/internal/finance"
	"github.com/alicerce-gestao/alicerce/internal/obras"
	"github.com/alicerce-gestao/alicerce/internal/observability"
	"github.com/alicerce-gestao/alicerce/internal/session"
	"github.com/alicerce-gestao/alicerce/internal/users"
	"github.com/alicerce-gestao/alicerce/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	Sessions       *session.Manager
	AuthHandler    *auth.Handler
	ClientsHandler *clients.Handler
	ObrasHandler   *obras.Handler
	FinanceHandler *finance.Handler
	UsersHandler   *users.Handler
	AuditHandler   *audit.Handler
	JobHandler     *jobs.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with Alicerce defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:   params.Logger,
		Config:   params.Config,
		Sessions: params.Sessions,
		Metrics:  params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)
	if params.ClientsHandler != nil {
		r.Route("/clientes", params.ClientsHandler.MountRoutes)
	}
	if params.ObrasHandler != nil {
		r.Route("/obras", params.ObrasHandler.MountRoutes)
	}
	if params.FinanceHandler != nil {
		r.Route("/financeira", params.FinanceHandler.MountRoutes)
	}
	if params.UsersHandler != nil {
		r.Route("/usuarios", params.UsersHandler.MountRoutes)
	}
	if params.AuditHandler != nil {
		r.Route("/logs", params.AuditHandler.MountRoutes)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
