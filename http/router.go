package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ir-tributacao/infrastructure"
)

// NewRouter wires the API routes. limiter may be nil to disable rate
// limiting; metrics may be nil to disable /metrics. clients decides which
// address a request is limited by; nil keys on the TCP peer.
func NewRouter(h *TributacaoHandler, limiter *RateLimiter, clients *ClientIP, metrics *infrastructure.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if metrics != nil {
		r.Use(metricsMiddleware(metrics))
	}

	r.Get("/health", h.Health)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Route("/ir", func(r chi.Router) {
		if limiter != nil {
			var onReject func()
			if metrics != nil {
				onReject = metrics.ObserveRateLimited
			}
			r.Use(RateLimitMiddleware(limiter, clients, onReject))
		}
		r.Get("/tributacao", h.Tributacao)
		r.Get("/tabela", h.Tabela)
	})

	return r
}

func metricsMiddleware(metrics *infrastructure.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			metrics.ObserveHTTP(route, status)
		})
	}
}
