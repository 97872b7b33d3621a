package model

import (
	"slices"
	"time"
)

// PortfolioItem is a single showcased project of a talent.
type PortfolioItem struct {
	Title    string   `json:"title" yaml:"title"`
	Tags     []string `json:"tags" yaml:"tags"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// SoftSkills holds qualitative ratings such as "good" or "excellent".
type SoftSkills struct {
	Communication string `json:"communication,omitempty" yaml:"communication,omitempty"`
	Punctuality   string `json:"punctuality,omitempty" yaml:"punctuality,omitempty"`
	Collaboration string `json:"collaboration,omitempty" yaml:"collaboration,omitempty"`
	Initiative    string `json:"initiative,omitempty" yaml:"initiative,omitempty"`
	Adaptability  string `json:"adaptability,omitempty" yaml:"adaptability,omitempty"`
}

// SoftwareSkill is a tool with a numeric proficiency level.
type SoftwareSkill struct {
	Name  string `json:"name" yaml:"name"`
	Level int    `json:"level" yaml:"level"`
}

// Availability is a window during which the talent can work in a city.
// From and To are calendar dates (YYYY-MM-DD) kept as provided.
type Availability struct {
	City string `json:"city" yaml:"city"`
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Talent is a creative professional's profile, skills and portfolio.
// Only a subset of the fields takes part in scoring; the rest is carried as-is.
type Talent struct {
	ID                   string          `json:"id" yaml:"id"`
	Name                 string          `json:"name" yaml:"name"`
	City                 string          `json:"city" yaml:"city"`
	Hometown             string          `json:"hometown,omitempty" yaml:"hometown,omitempty"`
	Categories           []string        `json:"categories" yaml:"categories"`
	Skills               []string        `json:"skills" yaml:"skills"`
	StyleTags            []string        `json:"style_tags" yaml:"style_tags"`
	BudgetRange          string          `json:"budget_range,omitempty" yaml:"budget_range,omitempty"`
	ExperienceYears      float64         `json:"experience_years" yaml:"experience_years"`
	Platforms            []string        `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	SoftSkills           *SoftSkills     `json:"soft_skills,omitempty" yaml:"soft_skills,omitempty"`
	SoftwareSkills       []SoftwareSkill `json:"software_skills,omitempty" yaml:"software_skills,omitempty"`
	Languages            []string        `json:"languages,omitempty" yaml:"languages,omitempty"`
	PastCredits          []string        `json:"past_credits,omitempty" yaml:"past_credits,omitempty"`
	Endorsements         []string        `json:"endorsements,omitempty" yaml:"endorsements,omitempty"`
	InterestTags         []string        `json:"interest_tags,omitempty" yaml:"interest_tags,omitempty"`
	AvailabilityCalendar []Availability  `json:"availability_calendar,omitempty" yaml:"availability_calendar,omitempty"`
	TierTags             []string        `json:"tier_tags,omitempty" yaml:"tier_tags,omitempty"`
	Portfolio            []PortfolioItem `json:"portfolio" yaml:"portfolio"`
	CreatedAt            time.Time       `json:"createdAt" yaml:"-"`
	UpdatedAt            time.Time       `json:"updatedAt" yaml:"-"`
}

// Clone returns a deep copy of t.
func (t Talent) Clone() Talent {
	t.Categories = slices.Clone(t.Categories)
	t.Skills = slices.Clone(t.Skills)
	t.StyleTags = slices.Clone(t.StyleTags)
	t.Platforms = slices.Clone(t.Platforms)
	if t.SoftSkills != nil {
		ss := *t.SoftSkills
		t.SoftSkills = &ss
	}
	t.SoftwareSkills = slices.Clone(t.SoftwareSkills)
	t.Languages = slices.Clone(t.Languages)
	t.PastCredits = slices.Clone(t.PastCredits)
	t.Endorsements = slices.Clone(t.Endorsements)
	t.InterestTags = slices.Clone(t.InterestTags)
	t.AvailabilityCalendar = slices.Clone(t.AvailabilityCalendar)
	t.TierTags = slices.Clone(t.TierTags)
	t.Portfolio = ClonePortfolio(t.Portfolio)
	return t
}

// ClonePortfolio deep-copies a portfolio, including each item's tag and keyword slices.
func ClonePortfolio(items []PortfolioItem) []PortfolioItem {
	if items == nil {
		return nil
	}
	out := make([]PortfolioItem, len(items))
	for i, it := range items {
		out[i] = PortfolioItem{
			Title:    it.Title,
			Tags:     slices.Clone(it.Tags),
			Keywords: slices.Clone(it.Keywords),
		}
	}
	return out
}
