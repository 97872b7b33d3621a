package matching

import (
	"slices"

	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/internal/domain/scoring"
)

// TalentSnapshot is the subset of a talent returned alongside its scores.
type TalentSnapshot struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	City            string                `json:"city"`
	Categories      []string              `json:"categories"`
	Skills          []string              `json:"skills"`
	ExperienceYears float64               `json:"experience_years"`
	StyleTags       []string              `json:"style_tags"`
	Portfolio       []model.PortfolioItem `json:"portfolio"`
}

// NewSnapshot copies the displayed fields of t.
func NewSnapshot(t model.Talent) TalentSnapshot {
	return TalentSnapshot{
		ID:              t.ID,
		Name:            t.Name,
		City:            t.City,
		Categories:      slices.Clone(t.Categories),
		Skills:          slices.Clone(t.Skills),
		ExperienceYears: t.ExperienceYears,
		StyleTags:       slices.Clone(t.StyleTags),
		Portfolio:       model.ClonePortfolio(t.Portfolio),
	}
}

// Match is one ranked candidate.
type Match struct {
	Talent      TalentSnapshot      `json:"talent"`
	Scores      scoring.ScoreVector `json:"scores"`
	TotalScore  float64             `json:"totalScore"`
	Rank        int                 `json:"rank"` // 1-based
	Explanation string              `json:"explanation"`
}
