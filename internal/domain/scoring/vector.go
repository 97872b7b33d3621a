package scoring

// ScoreVector holds one score per dimension. Every entry lies in [0, weight].
type ScoreVector struct {
	Location          float64 `json:"location"`
	Skills            float64 `json:"skills"`
	Categories        float64 `json:"categories"`
	Experience        float64 `json:"experience"`
	StylePreferences  float64 `json:"stylePreferences"`
	PortfolioKeywords float64 `json:"portfolioKeywords"`
	Languages         float64 `json:"languages"`
}

// Total sums all seven dimensions.
func (v ScoreVector) Total() float64 {
	return v.Location + v.Skills + v.Categories + v.Experience +
		v.StylePreferences + v.PortfolioKeywords + v.Languages
}

// Get returns the score of d, or 0 for an unknown dimension.
func (v ScoreVector) Get(d Dimension) float64 {
	switch d {
	case Location:
		return v.Location
	case Skills:
		return v.Skills
	case Categories:
		return v.Categories
	case Experience:
		return v.Experience
	case StylePreferences:
		return v.StylePreferences
	case PortfolioKeywords:
		return v.PortfolioKeywords
	case Languages:
		return v.Languages
	default:
		return 0
	}
}

// Map returns the vector keyed by dimension name.
func (v ScoreVector) Map() map[Dimension]float64 {
	out := make(map[Dimension]float64, len(Dimensions()))
	for _, d := range Dimensions() {
		out[d] = v.Get(d)
	}
	return out
}
