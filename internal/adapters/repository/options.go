package repository

import (
	"time"

	"github.com/okian/talentmatch/pkg/logger"
)

type settings struct {
	now                   func() time.Time
	metricsUpdateInterval time.Duration
	logger                logger.Logger
}

func newSettings(opts []Option) *settings {
	s := &settings{
		now:                   time.Now,
		metricsUpdateInterval: 5 * time.Second,
		logger:                logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Option applies a configuration option to a store.
type Option func(*settings)

// WithMetricsUpdateInterval sets the interval for background pool size metrics.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *settings) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}

// WithClock overrides the time source used for CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}
