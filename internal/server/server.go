// Package server provides the HTTP REST API for burnout risk scoring and tracking.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/equilibria/burnout-risk/internal/dashboard"
	"github.com/equilibria/burnout-risk/internal/extraction"
	"github.com/equilibria/burnout-risk/internal/server/middleware"
	"github.com/equilibria/burnout-risk/internal/server/ratelimit"
	"github.com/equilibria/burnout-risk/internal/types"
)

// maxBodyBytes bounds request bodies; journal entries are the largest payloads.
const maxBodyBytes = 1 << 20

// Store is the persistence the server depends on. *db.DB implements it.
type Store interface {
	dashboard.Store
	CreateUser(ctx context.Context) (uuid.UUID, error)
	TouchUser(ctx context.Context, userID uuid.UUID) (bool, error)
	CreateCheckIn(ctx context.Context, checkIn *types.CheckIn) error
	SavePulseReading(ctx context.Context, reading types.PulseReading) error
	DeletePulseReadingsBefore(ctx context.Context, cutoff time.Time) (int64, error)
	Ping(ctx context.Context) error
	Close()
}

// Config holds server configuration
type Config struct {
	Port          int
	PulseTTL      time.Duration
	PruneSchedule string
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	extractor   extraction.Extractor
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
	pruner      *Pruner
	log         *logrus.Logger
	pulseTTL    time.Duration
	now         func() time.Time
}

// New creates a new server instance
func New(cfg Config, store Store, extractor extraction.Extractor, jwtService *JWTService, log *logrus.Logger) (*Server, error) {
	s := &Server{
		store:       store,
		extractor:   extractor,
		jwtService:  jwtService,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		log:         log,
		pulseTTL:    cfg.PulseTTL,
		now:         time.Now,
	}

	pruner, err := NewPruner(store, cfg.PulseTTL, cfg.PruneSchedule, log)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule pulse pruning: %w", err)
	}
	s.pruner = pruner

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // journal extraction calls the model
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the handler tree
func (s *Server) routes() http.Handler {
	auth := middleware.RequireSession(s.jwtService.AsTokenValidator())

	mux := http.NewServeMux()

	// Stateless scoring
	mux.HandleFunc("POST /score", s.handleScore)
	mux.HandleFunc("POST /forecast", s.handleForecast)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /whatif", s.handleWhatIf)
	mux.HandleFunc("GET /scenarios/{name}", s.handleScenario)

	// Sessions and history
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.Handle("POST /me/checkins", auth(http.HandlerFunc(s.handleCreateCheckIn)))
	mux.Handle("GET /me/checkins", auth(http.HandlerFunc(s.handleListCheckIns)))
	mux.Handle("GET /me/dashboard", auth(http.HandlerFunc(s.handleDashboard)))

	// Pulse readings
	mux.HandleFunc("POST /pulse/{token}", s.handleSavePulse)
	mux.HandleFunc("GET /pulse/{token}", s.handleGetPulse)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	s.pruner.Start()

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.pruner.Stop()
		return fmt.Errorf("server error: %w", err)
	}
	s.log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	<-s.pruner.Stop().Done()
	s.store.Close()
	s.log.Info("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients over their budget with 429
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging logs each request and records its latency
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := routeLabel(r)
		observeRequest(route, r.Method, rec.status, elapsed)

		s.log.WithFields(logrus.Fields{
			"remote":      r.RemoteAddr,
			"status":      rec.status,
			"duration_ms": elapsed.Milliseconds(),
		}).Infof("[%s] %s", r.Method, r.URL.Path)
	})
}

// routeLabel returns the matched mux pattern so path parameters do not explode label cardinality.
func routeLabel(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return "unmatched"
}

// handleHealth reports whether the server and its database are reachable
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.log.WithError(err).Warn("Health check: database unreachable")
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeJSON reads a size-limited JSON body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON request body"}
	}
	return nil
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.WithError(err).Error("Error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps err to a status code and writes it. Internal errors are logged
// and reported without detail.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).WithField("path", r.URL.Path).Error("Request failed")
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, ErrorMessage(err))
}

// clientID identifies the caller for rate limiting by IP address
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	rateLimitedTotal.WithLabelValues(r.Method).Inc()
	s.log.WithFields(logrus.Fields{
		"client": clientID(r),
		"path":   r.URL.Path,
		"limit":  info.Limit,
	}).Warn("Rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
