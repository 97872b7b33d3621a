// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"runtime"
	"sync"

	repository "github.com/okian/talentmatch/internal/adapters/repository"
	"github.com/okian/talentmatch/internal/domain/matching"
	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/internal/domain/scoring"
	"github.com/okian/talentmatch/internal/seed"
	"github.com/okian/talentmatch/pkg/logger"
	"github.com/okian/talentmatch/pkg/metrics"
)

// Service wires the record store, the scoring engine and the ranker.
type Service struct {
	mu sync.RWMutex

	// Core components
	store  repository.Store
	engine *scoring.Engine
	ranker *matching.Ranker

	// Configuration
	workerCount  int
	defaultLimit int
	topLimit     int
	scoring      scoring.Config
	seedEnabled  bool
	seedData     *seed.Dataset

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the record store. Without it Start creates an in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithWorkerCount sets the number of goroutines scoring one ranking call.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithDefaultLimit sets the matches limit used when a caller passes none.
func WithDefaultLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultLimit = n
		}
	}
}

// WithTopLimit sets the size of top-matches results.
func WithTopLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topLimit = n
		}
	}
}

// WithScoringConfig sets the dimension weights and experience bands.
func WithScoringConfig(cfg scoring.Config) Option {
	return func(s *Service) {
		s.scoring = cfg.Clone()
	}
}

// WithSeed enables seeding of empty collections on Start.
// A nil dataset seeds the embedded sample data.
func WithSeed(enabled bool, ds *seed.Dataset) Option {
	return func(s *Service) {
		s.seedEnabled = enabled
		s.seedData = ds
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:  runtime.NumCPU(),
		defaultLimit: matching.DefaultLimit,
		topLimit:     matching.DefaultTopLimit,
		scoring:      scoring.DefaultConfig(),
		logger:       nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the ranker and seeds the store when enabled.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting talentmatch service...")

	if s.store == nil {
		s.store = repository.NewMemStore(ctx, repository.WithLogger(s.logger.Named("store")))
		s.logger.Info(ctx, "using in-memory store")
	}

	s.engine = scoring.NewEngine(scoring.WithConfig(s.scoring))
	s.ranker = matching.NewRanker(s.store,
		matching.WithEngine(s.engine),
		matching.WithWorkers(s.workerCount),
		matching.WithDefaultLimit(s.defaultLimit),
		matching.WithTopLimit(s.topLimit),
		matching.WithLogger(s.logger.Named("matching")),
	)

	if s.seedEnabled {
		ds := seed.Default()
		if s.seedData != nil {
			ds = *s.seedData
		}
		res, err := seed.Apply(ctx, s.store, ds, s.logger.Named("seed"))
		if err != nil {
			s.logger.Error(ctx, "error seeding sample data", logger.Error(err))
			return err
		}
		s.logger.Info(ctx, "sample data seeding completed",
			logger.Bool("skipped", res.Skipped),
			logger.Int("requests", res.Requests),
			logger.Int("talents", res.Talents),
		)
	}

	s.started = true
	s.logger.Info(ctx, "talentmatch service started",
		logger.Int("workers", s.workerCount),
		logger.Int("defaultLimit", s.defaultLimit),
		logger.Int("topLimit", s.topLimit),
	)

	return nil
}

// Stop closes the store. Starting again without WithStore falls back to an in-memory store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping talentmatch service...")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "failed to close store", logger.Error(err))
		}
		s.store = nil
	}
	s.ranker = nil

	s.started = false
	s.logger.Info(context.Background(), "talentmatch service stopped")
}

func (s *Service) deps() (repository.Store, *matching.Ranker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.store, s.ranker, nil
}

// FindMatches ranks the pool against a request. limit < 1 uses the default limit.
func (s *Service) FindMatches(ctx context.Context, requestID string, limit int) ([]matching.Match, error) {
	_, ranker, err := s.deps()
	if err != nil {
		return nil, err
	}
	return ranker.FindMatches(ctx, requestID, limit)
}

// FindTopMatches returns the top few matches of a request.
func (s *Service) FindTopMatches(ctx context.Context, requestID string) ([]matching.Match, error) {
	_, ranker, err := s.deps()
	if err != nil {
		return nil, err
	}
	return ranker.FindTopMatches(ctx, requestID)
}

func (s *Service) CreateRequest(ctx context.Context, r model.Request) (model.Request, error) {
	store, _, err := s.deps()
	if err != nil {
		return model.Request{}, err
	}
	return store.CreateRequest(ctx, r)
}

func (s *Service) GetRequest(ctx context.Context, id string) (model.Request, error) {
	store, _, err := s.deps()
	if err != nil {
		return model.Request{}, err
	}
	return store.GetRequestByID(ctx, id)
}

func (s *Service) ListRequests(ctx context.Context) ([]model.Request, error) {
	store, _, err := s.deps()
	if err != nil {
		return nil, err
	}
	return store.ListRequests(ctx)
}

func (s *Service) UpdateRequest(ctx context.Context, id string, r model.Request) (model.Request, error) {
	store, _, err := s.deps()
	if err != nil {
		return model.Request{}, err
	}
	return store.UpdateRequest(ctx, id, r)
}

func (s *Service) DeleteRequest(ctx context.Context, id string) error {
	store, _, err := s.deps()
	if err != nil {
		return err
	}
	return store.DeleteRequest(ctx, id)
}

func (s *Service) CreateTalent(ctx context.Context, t model.Talent) (model.Talent, error) {
	store, _, err := s.deps()
	if err != nil {
		return model.Talent{}, err
	}
	return store.CreateTalent(ctx, t)
}

func (s *Service) GetTalent(ctx context.Context, id string) (model.Talent, error) {
	store, _, err := s.deps()
	if err != nil {
		return model.Talent{}, err
	}
	return store.GetTalentByID(ctx, id)
}

func (s *Service) ListTalents(ctx context.Context) ([]model.Talent, error) {
	store, _, err := s.deps()
	if err != nil {
		return nil, err
	}
	return store.ListTalents(ctx)
}

func (s *Service) UpdateTalent(ctx context.Context, id string, t model.Talent) (model.Talent, error) {
	store, _, err := s.deps()
	if err != nil {
		return model.Talent{}, err
	}
	return store.UpdateTalent(ctx, id, t)
}

func (s *Service) DeleteTalent(ctx context.Context, id string) error {
	store, _, err := s.deps()
	if err != nil {
		return err
	}
	return store.DeleteTalent(ctx, id)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":      s.started,
		"workerCount":  s.workerCount,
		"defaultLimit": s.defaultLimit,
		"topLimit":     s.topLimit,
	}

	if s.started {
		weights := make(map[string]float64, len(scoring.Dimensions()))
		for _, d := range scoring.Dimensions() {
			weights[string(d)] = s.engine.Weight(d)
		}
		stats["weights"] = weights

		talents, requests, err := s.store.Counts(ctx)
		if err != nil {
			s.logger.Warn(ctx, "failed to count records", logger.Error(err))
		} else {
			stats["totalTalents"] = talents
			stats["totalRequests"] = requests

			// Update metrics
			metrics.UpdatePoolSize(repository.CollectionTalents, talents)
			metrics.UpdatePoolSize(repository.CollectionRequests, requests)
		}
	}

	return stats
}
