// Package scoring computes per-dimension match scores between a client request and a talent.
package scoring

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/okian/talentmatch/internal/domain/model"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithConfig replaces the whole configuration. Invalid entries are dropped the same
// way WithWeights and WithExperienceBands drop them.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		WithWeights(cfg.Weights)(e)
		if cfg.ExperienceBands != nil {
			WithExperienceBands(cfg.ExperienceBands)(e)
		}
	}
}

// WithWeights overrides the weight of the given dimensions. Unknown dimensions and
// negative or non-finite weights are ignored.
func WithWeights(weights map[Dimension]float64) Option {
	return func(e *Engine) {
		for d, w := range weights {
			if _, ok := ParseDimension(string(d)); !ok {
				continue
			}
			if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
				continue
			}
			e.weights[d] = w
		}
	}
}

// WithExperienceBands replaces the experience bands. Bands whose multiplier falls
// outside [0, 1] are ignored so the experience score never exceeds its weight.
func WithExperienceBands(bands []Band) Option {
	return func(e *Engine) {
		valid := make([]Band, 0, len(bands))
		for _, b := range bands {
			if math.IsNaN(b.MinYears) || math.IsNaN(b.Multiplier) || b.Multiplier < 0 || b.Multiplier > 1 {
				continue
			}
			valid = append(valid, b)
		}
		e.bands = valid
	}
}

// Engine scores (Request, Talent) pairs. It holds no mutable state after
// construction and is safe for concurrent use.
type Engine struct {
	weights map[Dimension]float64
	bands   []Band // sorted by MinYears descending
}

// NewEngine creates an engine seeded with DefaultConfig and then the given options.
func NewEngine(opts ...Option) *Engine {
	def := DefaultConfig()
	e := &Engine{
		weights: def.Weights,
		bands:   def.ExperienceBands,
	}

	// Apply all options
	for _, opt := range opts {
		opt(e)
	}

	e.bands = slices.Clone(e.bands)
	slices.SortStableFunc(e.bands, func(a, b Band) int {
		return cmp.Compare(b.MinYears, a.MinYears)
	})
	return e
}

// Config returns a copy of the effective configuration.
func (e *Engine) Config() Config {
	return Config{Weights: e.weights, ExperienceBands: e.bands}.Clone()
}

// Weight returns the configured weight of d.
func (e *Engine) Weight(d Dimension) float64 {
	return e.weights[d]
}

// Score computes the full score vector for one pair. It is a pure function of its inputs.
func (e *Engine) Score(req model.Request, t model.Talent) ScoreVector {
	return ScoreVector{
		Location:          e.location(req, t),
		Skills:            e.weights[Skills] * coverage(req.StylePreferences, t.Skills),
		Categories:        e.weights[Categories] * coverage(req.StylePreferences, t.Categories),
		Experience:        e.experience(t),
		StylePreferences:  e.weights[StylePreferences] * coverage(req.StylePreferences, t.StyleTags),
		PortfolioKeywords: e.portfolioKeywords(req, t),
		Languages:         e.languages(req, t),
	}
}

// location awards the full weight when both cities are set and equal ignoring case.
func (e *Engine) location(req model.Request, t model.Talent) float64 {
	if req.City == "" || t.City == "" {
		return 0
	}
	if strings.ToLower(req.City) != strings.ToLower(t.City) {
		return 0
	}
	return e.weights[Location]
}

// experience applies the first band whose threshold the talent reaches.
func (e *Engine) experience(t model.Talent) float64 {
	for _, b := range e.bands {
		if t.ExperienceYears >= b.MinYears {
			return e.weights[Experience] * b.Multiplier
		}
	}
	return 0
}

// portfolioKeywords is the share of all portfolio keywords and tags that overlap any
// style preference.
func (e *Engine) portfolioKeywords(req model.Request, t model.Talent) float64 {
	total, matched := 0, 0
	for _, item := range t.Portfolio {
		for _, terms := range [][]string{item.Keywords, item.Tags} {
			total += len(terms)
			for _, term := range terms {
				if overlapsAny(term, req.StylePreferences) {
					matched++
				}
			}
		}
	}
	if total == 0 {
		return 0
	}
	return e.weights[PortfolioKeywords] * float64(matched) / float64(total)
}

// languages stays in the vector for interface stability. Requests carry no language
// field, so there is nothing to compare against.
func (e *Engine) languages(model.Request, model.Talent) float64 {
	return 0
}
