package matching

import (
	"github.com/okian/talentmatch/internal/domain/scoring"
	"github.com/okian/talentmatch/pkg/logger"
)

const (
	// DefaultLimit is the result size used when a caller passes no usable limit.
	DefaultLimit = 10
	// DefaultTopLimit is the result size of FindTopMatches.
	DefaultTopLimit = 3
)

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithEngine sets the scoring engine.
func WithEngine(e *scoring.Engine) Option {
	return func(r *Ranker) {
		if e != nil {
			r.engine = e
		}
	}
}

// WithWorkers bounds the goroutines that score one call's pool. Values below 2
// score sequentially.
func WithWorkers(n int) Option {
	return func(r *Ranker) {
		if n >= 0 {
			r.workers = n
		}
	}
}

// WithDefaultLimit sets the limit used when FindMatches receives limit < 1.
func WithDefaultLimit(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.defaultLimit = n
		}
	}
}

// WithTopLimit sets the size of FindTopMatches results.
func WithTopLimit(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.topLimit = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Ranker) {
		if l != nil {
			r.logger = l
		}
	}
}
