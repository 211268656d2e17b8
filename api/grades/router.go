// Package grades exposes the grading pipeline and its run history over HTTP.
package grades

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kilianp07/markbook/core/history"
	"github.com/kilianp07/markbook/core/logger"
	"github.com/kilianp07/markbook/core/pipeline"
)

// Options configures the router.
type Options struct {
	// Metrics serves GET /metrics when set.
	Metrics http.Handler
	// MaxBodyBytes caps uploaded mark sheets. Zero means 1 MiB.
	MaxBodyBytes int64
	// Token, when set, must be presented as "Bearer <token>" on /v1 routes.
	Token  string
	Logger logger.Logger
}

// NewRouter mounts the API routes:
//
//	POST /v1/grade   grade the mark sheet in the request body
//	GET  /v1/runs    list recorded runs
//	GET  /metrics    Prometheus exposition, when configured
//	GET  /healthz    liveness
func NewRouter(p *pipeline.Pipeline, store history.Store, opts Options) http.Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if opts.Logger == nil {
		opts.Logger = logger.NopLogger{}
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(opts.Logger), middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Use(bearerAuth(opts.Token))
		r.Post("/grade", NewGradeHandler(p, opts.MaxBodyBytes))
		r.Get("/runs", NewRunsHandler(store))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}

func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Infow("http request", map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  middleware.GetReqID(r.Context()),
			})
		})
	}
}

func bearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+token {
				respondJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
