package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ayushdesk/internal/platform/metrics"
	"ayushdesk/internal/platform/middleware"
)

// Deps collects everything the router needs. Handlers stay thin; all
// business logic lives in the services they delegate to.
type Deps struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Documents *DocumentHandler
	Content   *ContentHandler
	System    *SystemHandler

	Validator middleware.SessionValidator
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

// NewRouter wires all endpoints under /api/v1/admin plus the operational
// probes. Auth endpoints are public; everything else requires a session.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.LatencyMiddleware(d.Metrics))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		d.Auth.Register(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(d.Validator, d.Logger))
			d.Users.Register(r)
			d.Documents.Register(r)
			d.Content.Register(r)
			d.System.Register(r)
		})
	})

	return r
}
