// Package server exposes the lookup operations over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /v1/versions?coordinate=g:a[:v][&fresh=true][&cross=_2.13][&attr=k=v...]
//	GET  /v1/url?coordinate=g:a:v[&cross=...][&attr=k=v...]
//	POST /v1/urls      {"coordinates": ["g:a:v", ...], "cross": "..."}
//	GET  /v1/stats
//
// Coordinates are resolved against the repositories the server was started
// with. Invalid input yields 400 with a machine-readable error code.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/artifactscout/pkg/deps"
	"github.com/matzehuels/artifactscout/pkg/lookup"
	"github.com/matzehuels/artifactscout/pkg/observability"
)

// DefaultMaxBatch bounds the number of coordinates accepted by POST /v1/urls.
const DefaultMaxBatch = 500

const maxRequestBody = 1 << 20

// Options configures a [Server].
type Options struct {
	Service   *lookup.Service
	Resolvers []deps.Resolver // nil: Maven Central

	// Counters backs /v1/stats. nil reports zero totals.
	Counters *observability.Counters

	// Breakers reports repository host circuit states for /v1/stats.
	Breakers func() map[string]string

	Logger   *log.Logger
	MaxBatch int
}

// Server serves the HTTP API.
type Server struct {
	opts   Options
	logger *log.Logger
}

// New creates a Server.
func New(opts Options) *Server {
	if len(opts.Resolvers) == 0 {
		opts.Resolvers = []deps.Resolver{deps.MavenCentral}
	}
	if opts.Counters == nil {
		opts.Counters = observability.NewCounters()
	}
	if opts.MaxBatch <= 0 {
		opts.MaxBatch = DefaultMaxBatch
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{opts: opts, logger: logger}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/versions", s.handleVersions)
		r.Get("/url", s.handleURL)
		r.Post("/urls", s.handleURLs)
		r.Get("/stats", s.handleStats)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
