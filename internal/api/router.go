package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

// RouterOptions configures the HTTP router
type RouterOptions struct {
	AllowedOrigins        []string
	RequestTimeoutSeconds int
	MetricsPath           string
	MetricsHandler        http.Handler
	Logger                *logrus.Logger
}

// NewRouter wires the API routes and middleware
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if opts.Logger != nil {
		r.Use(RequestLogger(opts.Logger))
	}
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout(opts.RequestTimeoutSeconds)))

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if opts.MetricsHandler != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, opts.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/seasons/{season}/teams", h.GetSeasonTeams)
		r.Post("/simulations", h.CreateSimulation)
	})

	return r
}

// RequestLogger logs one line per request with status and latency
func RequestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	entry := log.WithField("component", "http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			fields := logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
				"request_id":  chimiddleware.GetReqID(r.Context()),
			}
			if ww.Status() >= http.StatusInternalServerError {
				entry.WithFields(fields).Warn("Request failed")
				return
			}
			entry.WithFields(fields).Debug("Request served")
		})
	}
}
