package scoring

import (
	"strconv"
	"strings"

	"github.com/okian/talentmatch/internal/domain/model"
)

const clauseSeparator = ". "

// Explain renders one clause per positive dimension, in Dimensions order, joined by
// ". ". Zero dimensions are omitted; languages never contributes a clause.
func Explain(t model.Talent, scores ScoreVector) string {
	clauses := make([]string, 0, len(Dimensions()))
	for _, d := range Dimensions() {
		if scores.Get(d) <= 0 {
			continue
		}
		switch d {
		case Location:
			clauses = append(clauses, "Location match: "+t.City)
		case Skills:
			clauses = append(clauses, "Skills/style overlap")
		case Categories:
			clauses = append(clauses, "Category/style overlap")
		case Experience:
			clauses = append(clauses, "Experience: "+strconv.FormatFloat(t.ExperienceYears, 'f', -1, 64)+" years")
		case StylePreferences:
			clauses = append(clauses, "Style tags match")
		case PortfolioKeywords:
			clauses = append(clauses, "Portfolio keywords match")
		}
	}
	return strings.Join(clauses, clauseSeparator)
}
