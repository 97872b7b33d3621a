// Package matching ranks the talent pool against a client request.
//
// A call fetches the request and the whole pool from a Source, scores every
// talent, drops candidates with a zero total, sorts by total descending
// (ties keep pool order) and truncates to the requested limit.
package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/internal/domain/scoring"
	"github.com/okian/talentmatch/pkg/logger"
	"github.com/okian/talentmatch/pkg/metrics"
)

// Source provides the records a ranking call reads.
type Source interface {
	GetRequestByID(ctx context.Context, id string) (model.Request, error)
	// ListTalents returns the pool in a stable order.
	ListTalents(ctx context.Context) ([]model.Talent, error)
}

// Call kinds used as metric labels.
const (
	kindMatches    = "matches"
	kindTopMatches = "top_matches"
)

// Ranker scores and orders candidates. It keeps no state between calls and is
// safe for concurrent use.
type Ranker struct {
	src          Source
	engine       *scoring.Engine
	workers      int
	defaultLimit int
	topLimit     int
	logger       logger.Logger
}

// NewRanker creates a Ranker reading from src.
func NewRanker(src Source, opts ...Option) *Ranker {
	r := &Ranker{
		src:          src,
		engine:       scoring.NewEngine(),
		workers:      1,
		defaultLimit: DefaultLimit,
		topLimit:     DefaultTopLimit,
		logger:       logger.Discard(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Engine returns the scoring engine in use.
func (r *Ranker) Engine() *scoring.Engine { return r.engine }

// FindMatches returns up to limit ranked matches for the request. A limit below 1
// uses the default limit.
func (r *Ranker) FindMatches(ctx context.Context, requestID string, limit int) ([]Match, error) {
	if limit < 1 {
		limit = r.defaultLimit
	}
	return r.rank(ctx, kindMatches, requestID, limit)
}

// FindTopMatches returns the top few matches for the request.
func (r *Ranker) FindTopMatches(ctx context.Context, requestID string) ([]Match, error) {
	return r.rank(ctx, kindTopMatches, requestID, r.topLimit)
}

func (r *Ranker) rank(ctx context.Context, kind, requestID string, limit int) ([]Match, error) {
	start := time.Now()

	matches, scored, err := r.run(ctx, requestID, limit)
	latency := float64(time.Since(start).Nanoseconds()) / 1e6

	if err != nil {
		metrics.RecordMatchRequest(kind, outcomeOf(err), latency)
		r.logger.Warn(ctx, "matchmaking failed",
			logger.String("kind", kind),
			logger.String("requestID", requestID),
			logger.Error(err),
		)
		return nil, err
	}

	metrics.RecordMatchRequest(kind, metrics.OutcomeOK, latency)
	metrics.RecordCandidates(scored, len(matches))
	for _, m := range matches {
		metrics.RecordMatchScore(m.TotalScore)
	}

	r.logger.Debug(ctx, "matches ranked",
		logger.String("kind", kind),
		logger.String("requestID", requestID),
		logger.Int("scored", scored),
		logger.Int("returned", len(matches)),
		logger.Float64("latencyMs", latency),
	)
	return matches, nil
}

func (r *Ranker) run(ctx context.Context, requestID string, limit int) ([]Match, int, error) {
	req, err := r.src.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: request %s: %w", ErrMatchmakingFailed, requestID, err)
	}

	pool, err := r.src.ListTalents(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list talents: %w", ErrMatchmakingFailed, err)
	}

	vectors, err := r.score(ctx, req, pool)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrMatchmakingFailed, err)
	}

	matches := make([]Match, 0, len(pool))
	for i, t := range pool {
		total := vectors[i].Total()
		if total == 0 {
			continue
		}
		matches = append(matches, Match{
			Talent:      NewSnapshot(t),
			Scores:      vectors[i],
			TotalScore:  total,
			Explanation: scoring.Explain(t, vectors[i]),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].TotalScore > matches[j].TotalScore
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	for i := range matches {
		matches[i].Rank = i + 1
	}
	return matches, len(pool), nil
}

// score computes one vector per pool entry, indexed by pool position.
func (r *Ranker) score(ctx context.Context, req model.Request, pool []model.Talent) ([]scoring.ScoreVector, error) {
	vectors := make([]scoring.ScoreVector, len(pool))

	if r.workers < 2 || len(pool) < 2 {
		for i := range pool {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			vectors[i] = r.engine.Score(req, pool[i])
		}
		return vectors, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := range pool {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			vectors[i] = r.engine.Score(req, pool[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// errgroup cancels gctx only on error; a parent cancel may still race the last batch.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return vectors, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeError
	}
}
