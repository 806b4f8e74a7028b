// Package server exposes the evaluation engine over HTTP using chi.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rshade/esgready/internal/api"
	"github.com/rshade/esgready/internal/engine"
	"github.com/rshade/esgready/internal/logging"
	"github.com/rshade/esgready/internal/narrative"
	"github.com/rshade/esgready/pkg/version"
)

// Limits.
const (
	MaxBodyBytes      = 8 << 20
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	engine   *engine.Engine
	narrator *narrative.Service
	logger   zerolog.Logger
}

// New returns a Server. A nil narrator always uses deterministic narratives.
func New(eng *engine.Engine, narrator *narrative.Service, logger zerolog.Logger) *Server {
	return &Server{engine: eng, narrator: narrator, logger: logger}
}

// Routes returns the chi router with all endpoints mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealthz)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/evaluate", s.handleEvaluate)
		r.Post("/compare", s.handleCompare)
		r.Post("/maturity", s.handleMaturity)
		r.Get("/frameworks", s.handleFrameworks)
		r.Post("/narrative", s.handleNarrative)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info().Str("component", "server").Str("addr", addr).Msg("listening")

	select {
	case <-ctx.Done():
		s.logger.Info().Str("component", "server").Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

// requestLogger attaches a request-scoped logger with a trace ID and logs
// each completed request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := middleware.GetReqID(r.Context())
		if traceID == "" {
			traceID = logging.NewID()
		}
		logger := s.logger.With().Str("component", "server").Logger()
		ctx := logging.ContextWithTraceID(logger.WithContext(r.Context()), traceID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))

		logging.FromContext(ctx).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": version.GetVersion()})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req api.EvaluateRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := api.Evaluate(r.Context(), s.engine, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req api.CompareRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, api.Compare(req))
}

func (s *Server) handleMaturity(w http.ResponseWriter, r *http.Request) {
	var req api.MaturityRequest
	if !decode(w, r, &req) {
		return
	}
	rating, err := api.Maturity(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rating)
}

func (s *Server) handleFrameworks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.Frameworks())
}

func (s *Server) handleNarrative(w http.ResponseWriter, r *http.Request) {
	var req api.NarrativeRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := api.Narrate(r.Context(), s.engine, s.narrator, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type errorBody struct {
	Error string `json:"error"`
}

// decode reads a JSON body into v, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed JSON body: " + err.Error()})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, api.ErrInvalidRequest) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	logging.FromContext(r.Context()).Error().Err(err).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
