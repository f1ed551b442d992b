package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"accessexplorer/internal/chains"
	"accessexplorer/internal/platform/metrics"
	"accessexplorer/internal/platform/middleware"
	"accessexplorer/pkg/platform/httputil"
)

// Registrar is a feature handler that mounts its own routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps are the collaborators of the public router.
type Deps struct {
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	Chains      []chains.Chain
	CORSOrigins []string
	RateLimiter *middleware.RateLimiter
	Health      map[string]HealthChecker
	Handlers    []Registrar
}

// NewRouter wires the middleware stack, the platform endpoints and every
// feature handler.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id", "Retry-After"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestContext)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Metrics(d.Metrics))

	r.Get("/healthz", healthHandler(d.Health))
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Handler)
		}
		r.Get("/api/chains", chainsHandler(d.Chains))
		for _, h := range d.Handlers {
			h.Register(r)
		}
	})
	return r
}

type chainResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Network     string `json:"network"`
	Symbol      string `json:"symbol"`
	Decimals    int    `json:"decimals"`
	ExplorerURL string `json:"explorer_url"`
	HasTimelock bool   `json:"has_timelock"`
}

func chainsHandler(list []chains.Chain) http.HandlerFunc {
	out := make([]chainResponse, 0, len(list))
	for _, c := range list {
		out = append(out, chainResponse{
			ID:          c.ID,
			Name:        c.Name,
			Network:     c.Network,
			Symbol:      c.Symbol,
			Decimals:    c.Decimals,
			ExplorerURL: c.ExplorerURL,
			HasTimelock: c.HasTimelock(),
		})
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"chains": out})
	}
}

func healthHandler(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, c := range checks {
			if err := c.Health(r.Context()); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		httputil.WriteJSON(w, status, map[string]any{"status": state, "checks": results})
	}
}
