// Package api exposes the session store over HTTP.
package api

import (
	_ "embed"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/runtime/middleware"

	"github.com/Veemo-wt/Lumina-Backend/identity"
	"github.com/Veemo-wt/Lumina-Backend/session"
)

const (
	// maxSmallBodySize caps control-plane JSON bodies.
	maxSmallBodySize = 64 << 10
	// maxStateBodySize caps session state documents.
	maxStateBodySize = 5 << 20
	// maxUploadSize caps multipart file uploads.
	maxUploadSize = 50 << 20
)

// API holds the dependencies needed by the REST handlers.
type API struct {
	sessions *session.Manager
	resolver identity.Resolver
	audit    *auditLogger
	alertFn  AlertFunc
}

//go:embed openapi.yaml
var openapiSpec []byte

// Option configures the API instance.
type Option func(*API)

// WithLogger sets the structured logger for audit events.
// If not set, a default JSON logger writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		a.audit = newAuditLogger(logger)
	}
}

// WithAlertFunc enables anomaly detection over the audit stream and invokes
// fn whenever a threshold is crossed.
func WithAlertFunc(fn AlertFunc) Option {
	return func(a *API) {
		a.alertFn = fn
	}
}

// New creates a new API instance.
func New(sessions *session.Manager, resolver identity.Resolver, opts ...Option) *API {
	a := &API{
		sessions: sessions,
		resolver: resolver,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.audit == nil {
		a.audit = newAuditLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}
	if a.alertFn != nil {
		a.audit.metrics = newMetricsCollector(a.alertFn)
	}
	return a
}

// Router returns a chi.Router with all API routes mounted.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", a.Health)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})

	r.Handle("/docs*", middleware.SwaggerUI(middleware.SwaggerUIOpts{
		SpecURL: "/openapi.yaml",
		Path:    "docs",
	}, nil))

	r.Route("/api", func(r chi.Router) {
		r.Use(a.AuthMiddleware)

		r.Get("/me", a.Me)

		r.Route("/{app}/sessions", func(r chi.Router) {
			r.Get("/", a.ListSessions)
			r.Post("/", a.CreateSession)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Delete("/", a.DeleteSession)
				r.Get("/state", a.GetState)
				r.Put("/state", a.PutState)
				r.Get("/files", a.ListFiles)
				r.Post("/files", a.UploadFile)
			})
		})
	})

	return r
}

// OnEvicted records cap evictions in the audit log. Wire it into the session
// manager through session.WithEvictionFunc.
func (a *API) OnEvicted(user, app string, removed []session.Record) {
	ids := make([]string, len(removed))
	for i, rec := range removed {
		ids[i] = rec.ID
	}
	a.audit.logSystem(AuditSessionsEvicted,
		slog.String("user_id", user),
		slog.String("app", app),
		slog.Any("session_ids", ids),
	)
}
