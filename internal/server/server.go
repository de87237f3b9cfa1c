// Package server serves the equipment database over HTTP.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/giteki/internal/database"
	"github.com/nao1215/giteki/internal/log"
	"github.com/nao1215/giteki/internal/metrics"
	"github.com/nao1215/giteki/internal/model"
)

//go:embed static/index.html
var indexHTML []byte

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// maxLimit caps the limit query parameter.
const maxLimit = 10000

// Store is the subset of database.EquipmentDB the server reads.
type Store interface {
	ListEquipment(ctx context.Context, f database.Filter) ([]model.Equipment, error)
	Ping(ctx context.Context) error
}

// Server wires HTTP handlers to the equipment store.
type Server struct {
	router  chi.Router
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics exposes m on /metrics and records request metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// New constructs a Server with middleware and routes.
func New(store Store, opts ...Option) *Server {
	s := &Server{store: store, logger: log.Discard()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	r.Get("/", s.index)
	r.Get("/healthz", s.healthz)
	r.Get("/api/equipments", s.equipments)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		s.metrics.ObserveHTTPRequest(r.Method, route, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(indexHTML); err != nil {
		s.logger.Error("index write failed", "error", err)
	}
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) equipments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := database.Filter{
		Query: q.Get("q"),
		File:  q.Get("file"),
	}

	var err error
	if filter.Limit, err = intParam(q.Get("limit"), 0, maxLimit); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	if filter.Offset, err = intParam(q.Get("offset"), 0, -1); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid offset")
		return
	}

	results, err := s.store.ListEquipment(r.Context(), filter)
	if err != nil {
		s.logger.Error("failed to list equipments", "error", err)
		s.writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	s.writeJSON(w, http.StatusOK, results)
}

// intParam parses a non-negative integer query parameter. An empty value
// yields def; limit < 0 disables the upper bound.
func intParam(v string, def, limit int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || (limit >= 0 && n > limit) {
		return 0, errors.New("out of range")
	}
	return n, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		s.logger.Error("response write failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
