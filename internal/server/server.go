// Package server exposes dashboard views as JSON over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"treasury-dashboard/internal/dashboard"
	"treasury-dashboard/internal/observability"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 30 * time.Second

// HealthChecker checks that the indexing API is reachable.
type HealthChecker interface {
	Health(ctx context.Context) (string, error)
}

// Options configures a Server.
type Options struct {
	// PublicAPIURL is reported on /status.
	PublicAPIURL string
	// CompatAliases adds deprecated field names to project views.
	CompatAliases bool
	// RateLimit is requests per second per client IP; 0 disables it.
	RateLimit float64
	RateBurst int
	Now       func() time.Time
}

// Server serves the dashboard views.
type Server struct {
	svc     *dashboard.Service
	health  HealthChecker
	logger  *zap.Logger
	opts    Options
	limiter *rateLimiter
	started time.Time

	requests atomic.Int64
}

// New creates a Server. health may be nil, in which case /api/health
// reports the upstream as unavailable.
func New(svc *dashboard.Service, health HealthChecker, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{
		svc:     svc,
		health:  health,
		logger:  logger,
		opts:    opts,
		started: opts.Now(),
	}
	if opts.RateLimit > 0 {
		s.limiter = newRateLimiter(opts.RateLimit, opts.RateBurst, opts.Now)
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /view/landing", s.handleLanding)
	mux.HandleFunc("GET /view/projects", s.handleProjects)
	mux.HandleFunc("GET /view/projects/{id}", s.handleProject)
	mux.HandleFunc("GET /view/projects/{id}/milestones", s.handleMilestones)
	mux.HandleFunc("GET /view/projects/{id}/events", s.handleProjectEvents)
	mux.HandleFunc("GET /view/transactions", s.handleTransactions)
	mux.HandleFunc("GET /view/transactions/{hash}", s.handleTransaction)
	mux.HandleFunc("GET /view/treasury-addresses", s.handleTreasuryAddresses)
	mux.HandleFunc("GET /view/vendor-contracts", s.handleVendorContracts)
	mux.HandleFunc("GET /view/fund-flows", s.handleFundFlows)
	mux.HandleFunc("GET /view/milestones", s.handleMilestones)
	mux.HandleFunc("GET /view/events", s.handleEvents)
	mux.HandleFunc("GET /view/utxos", s.handleUtxos)
	mux.HandleFunc("GET /view/actions/{action}", s.handleActionTransactions)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /api/health", s.handleUpstreamHealth)
	mux.Handle("GET /metrics", observability.Handler())
	mux.HandleFunc("GET /status", s.handleStatus)

	var h http.Handler = mux
	if s.limiter != nil {
		h = s.limiter.middleware(h)
	}
	h = s.accessLog(h)
	return requestID(h)
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// UpstreamHealth is the /api/health response.
type UpstreamHealth struct {
	Status string `json:"status"`
	API    string `json:"api,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleUpstreamHealth(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeJSON(w, http.StatusServiceUnavailable, UpstreamHealth{Status: "error", Error: "no upstream configured"})
		return
	}
	text, err := s.health.Health(r.Context())
	if err != nil {
		s.logger.Warn("upstream health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, UpstreamHealth{Status: "error", Error: err.Error()})
		return
	}
	observability.RecordUpstreamSuccess(s.opts.Now().Unix())
	writeJSON(w, http.StatusOK, UpstreamHealth{Status: "ok", API: text})
}

// StatusResponse is the /status response.
type StatusResponse struct {
	Status        string    `json:"status"`
	Uptime        string    `json:"uptime"`
	Started       time.Time `json:"started"`
	Requests      int64     `json:"requests"`
	PublicAPIURL  string    `json:"public_api_url,omitempty"`
	CompatAliases bool      `json:"compat_aliases"`
	RateLimit     float64   `json:"rate_limit"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:        "running",
		Uptime:        s.opts.Now().Sub(s.started).Truncate(time.Second).String(),
		Started:       s.started,
		Requests:      s.requests.Load(),
		PublicAPIURL:  s.opts.PublicAPIURL,
		CompatAliases: s.opts.CompatAliases,
		RateLimit:     s.opts.RateLimit,
	})
}

// errorResponse is the body of every non-2xx view response.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}
