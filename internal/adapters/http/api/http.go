// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	repository "github.com/okian/talentmatch/internal/adapters/repository"
	"github.com/okian/talentmatch/internal/domain/matching"
	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/pkg/logger"
	"github.com/okian/talentmatch/pkg/metrics"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RequestDependencies
	TalentDependencies
	MatchDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	requestHandler *RequestHandler
	talentHandler  *TalentHandler
	matchHandler   *MatchHandler

	limiter *rateLimiter
	logger  logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*serverConfig)

type serverConfig struct {
	maxLimit     int
	defaultLimit int
	rps          float64
	burst        int
	logger       logger.Logger
}

// WithMaxLimit caps the limit query parameter of the matches endpoint.
func WithMaxLimit(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxLimit = n
		}
	}
}

// WithDefaultLimit sets the limit used when the query parameter is missing or invalid.
func WithDefaultLimit(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.defaultLimit = n
		}
	}
}

// WithRateLimit enables a token bucket over the /api routes. rps <= 0 disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *serverConfig) {
		c.rps = rps
		c.burst = burst
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := serverConfig{
		maxLimit:     100,
		defaultLimit: matching.DefaultLimit,
		logger:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		requestHandler: NewRequestHandler(deps, cfg.logger),
		talentHandler:  NewTalentHandler(deps, cfg.logger),
		matchHandler:   NewMatchHandler(deps, cfg.defaultLimit, cfg.maxLimit, cfg.logger),
		limiter:        newRateLimiter(cfg.rps, cfg.burst),
		logger:         cfg.logger,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, MetricsMiddleware(s.limiter.wrap(h, endpoint), endpoint))
	}

	route("POST /api/clients/requests", "requests", s.requestHandler.HandleCreate)
	route("GET /api/clients/requests", "requests", s.requestHandler.HandleList)
	route("GET /api/clients/requests/{id}", "request", s.requestHandler.HandleGet)
	route("PUT /api/clients/requests/{id}", "request", s.requestHandler.HandleUpdate)
	route("DELETE /api/clients/requests/{id}", "request", s.requestHandler.HandleDelete)
	route("GET /api/clients/requests/{id}/matches", "matches", s.matchHandler.HandleMatches)
	route("GET /api/clients/requests/{id}/top-matches", "top_matches", s.matchHandler.HandleTopMatches)

	route("POST /api/talents", "talents", s.talentHandler.HandleCreate)
	route("GET /api/talents", "talents", s.talentHandler.HandleList)
	route("GET /api/talents/{id}", "talent", s.talentHandler.HandleGet)
	route("PUT /api/talents/{id}", "talent", s.talentHandler.HandleUpdate)
	route("DELETE /api/talents/{id}", "talent", s.talentHandler.HandleDelete)
}

// envelope is the body of every /api response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

// writeError reports err with the status statusFor picks. NotFound responses carry
// only the message, matching the shape clients already parse.
func writeError(w http.ResponseWriter, message string, err error) {
	status := statusFor(err)
	body := envelope{Success: false, Message: message}
	if status != http.StatusNotFound {
		body.Error = err.Error()
	}
	writeJSON(w, status, body)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrLimitExceeded):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a single JSON value from the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %w", ErrBadRequest, err)
	}
	return nil
}
