// Package httpapi exposes the report pipelines as a JSON API for the chart
// frontend, plus the usual health, readiness, and metrics endpoints. Query
// parameters mirror the report's UI controls; omitted parameters fall back
// to the configured defaults.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/embermetrics/fire-report-service/internal/config"
	"github.com/embermetrics/fire-report-service/internal/domain"
	"github.com/embermetrics/fire-report-service/internal/report"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server serves the report API.
type Server struct {
	httpServer *http.Server
	engine     *report.Engine
	defaults   config.ReportConfig
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the report API and operational routes.
func NewServer(addr string, engine *report.Engine, defaults config.ReportConfig, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		engine:   engine,
		defaults: defaults,
		logger:   logger,
	}

	mux.HandleFunc("GET /api/fire", s.handleFire)
	mux.HandleFunc("GET /api/climate", s.handleClimate)
	mux.HandleFunc("GET /api/recovery", s.handleRecovery)
	mux.HandleFunc("GET /api/causes", s.handleCauses)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(engine))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleFire(w http.ResponseWriter, r *http.Request) {
	cause, err := domain.ParseCause(r.URL.Query().Get("cause"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	window, err := intParam(r, "window", s.defaults.AnnualWindow)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Fire(report.FireParams{Cause: cause, Window: window}))
}

func (s *Server) handleClimate(w http.ResponseWriter, r *http.Request) {
	variable := domain.BurnIndex
	if v := r.URL.Query().Get("variable"); v != "" {
		parsed, err := domain.ParseClimateVariable(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		variable = parsed
	}
	window, err := intParam(r, "window", s.defaults.ClimateWindow)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	showRaw := r.URL.Query().Get("raw") == "true"

	writeJSON(w, http.StatusOK, s.engine.Climate(report.ClimateParams{
		Variable: variable,
		Window:   window,
		ShowRaw:  showRaw,
	}))
}

func (s *Server) handleRecovery(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Recovery())
}

// handleCauses lists the cause filter options for the UI selector, "All"
// first, the rest in code order.
func (s *Server) handleCauses(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, append([]string{"All"}, domain.CauseNames()...))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s parameter %q: want a positive integer", name, raw)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
