package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/okulov/casetrack/internal/config"
	"github.com/okulov/casetrack/internal/hub"
	"github.com/okulov/casetrack/internal/tracker"
	"github.com/okulov/casetrack/internal/version"
)

// Pinger checks a backing store's health. Satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the tracker's HTTP surface.
type Server struct {
	cfg     config.ServerConfig
	logger  *slog.Logger
	tracker *tracker.Tracker
	hub     *hub.Hub
	db      Pinger // nil when history is disabled

	httpSrv *http.Server
	started time.Time
}

// New creates a Server. db may be nil.
func New(cfg config.ServerConfig, tr *tracker.Tracker, h *hub.Hub, db Pinger, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		tracker: tr,
		hub:     h,
		db:      db,
	}
	s.httpSrv = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start begins serving HTTP in the background.
func (s *Server) Start(ctx context.Context) error {
	s.started = time.Now()

	go func() {
		s.logger.Info("http server listening", "addr", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server failed", "error", err)
		}
	}()

	return nil
}

// Stop drains in-flight requests and shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(recovery(s.logger))
	r.Use(requestLogging(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/api/stats", s.handleStats)
	r.Get("/ws", s.hub.ServeWS)

	return r
}

type healthResponse struct {
	Status        string            `json:"status"`
	Version       string            `json:"version"`
	Timestamp     time.Time         `json:"timestamp"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	Components    map[string]string `json:"components"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	components := map[string]string{
		"tracker": s.tracker.State().String(),
	}

	status := http.StatusOK
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			components["database"] = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			components["database"] = "ok"
		}
	}

	resp := healthResponse{
		Status:        "healthy",
		Version:       version.Version,
		Timestamp:     time.Now().UTC(),
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Components:    components,
	}
	if status != http.StatusOK {
		resp.Status = "degraded"
	}

	writeJSON(w, status, resp)
}

type statsResponse struct {
	State string `json:"state"`
	hub.Overview
	Feed feedStats `json:"feed"`
}

type feedStats struct {
	Pending   int   `json:"pending"`
	Published int64 `json:"published"`
	Delivered int64 `json:"delivered"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Events().Snapshot()

	resp := statsResponse{
		State:    s.tracker.State().String(),
		Overview: s.hub.Overview(),
		Feed: feedStats{
			Pending:   snap.Pending,
			Published: snap.Published,
			Delivered: snap.Delivered,
		},
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
