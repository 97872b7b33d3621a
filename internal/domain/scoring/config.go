package scoring

import "slices"

// Dimension names one factor of the matching formula.
type Dimension string

// Scoring dimensions. The string values double as the JSON keys of ScoreVector.
const (
	Location          Dimension = "location"
	Skills            Dimension = "skills"
	Categories        Dimension = "categories"
	Experience        Dimension = "experience"
	StylePreferences  Dimension = "stylePreferences"
	PortfolioKeywords Dimension = "portfolioKeywords"
	Languages         Dimension = "languages"
)

// Dimensions returns every dimension in explanation order.
func Dimensions() []Dimension {
	return []Dimension{Location, Skills, Categories, Experience, StylePreferences, PortfolioKeywords, Languages}
}

// ParseDimension resolves a dimension name. The match is exact.
func ParseDimension(name string) (Dimension, bool) {
	for _, d := range Dimensions() {
		if string(d) == name {
			return d, true
		}
	}
	return "", false
}

// Band awards Multiplier × experience weight to talents with at least MinYears.
type Band struct {
	MinYears   float64 `json:"min_years" yaml:"min_years" koanf:"min_years"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier" koanf:"multiplier"`
}

// Config is the tunable part of the engine: the weight of each dimension and the
// stepped experience bands.
type Config struct {
	Weights         map[Dimension]float64
	ExperienceBands []Band
}

// DefaultConfig returns the production weight table and experience bands.
func DefaultConfig() Config {
	return Config{
		Weights: map[Dimension]float64{
			Location:          2,
			Skills:            5,
			Categories:        4,
			Experience:        3,
			StylePreferences:  2,
			PortfolioKeywords: 3,
			Languages:         1,
		},
		ExperienceBands: []Band{
			{MinYears: 8, Multiplier: 1.0},
			{MinYears: 5, Multiplier: 0.7},
			{MinYears: 2, Multiplier: 0.4},
		},
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := Config{
		Weights:         make(map[Dimension]float64, len(c.Weights)),
		ExperienceBands: slices.Clone(c.ExperienceBands),
	}
	for d, w := range c.Weights {
		out.Weights[d] = w
	}
	return out
}
