package seed

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/okian/talentmatch/internal/domain/model"
)

// generatorNamespace scopes the name-based UUIDs of generated records.
var generatorNamespace = uuid.MustParse("6f1b7c2e-54a8-4d0f-9a53-0c8e2f1d7b44")

// Vocabulary the generator draws from.
var (
	cities      = []string{"Delhi", "Mumbai", "Kolkata", "Goa", "Bengaluru", "Chennai", "Pune", "Jaipur", "Ahmedabad", "Hyderabad"}
	categories  = []string{"Photographer", "Director", "Videographer", "Editor", "Stylist", "Illustrator"}
	skills      = []string{"Fashion Shoots", "Corporate Shoots", "Weddings", "Product Photography", "Music Videos", "Documentaries", "Portraits"}
	styles      = []string{"vibrant", "documentary", "cinematic", "minimal", "boho", "classic", "editorial", "bold", "youthful", "moody"}
	keywords    = []string{"mood", "natural light", "portrait", "outdoor", "motion", "studio", "candid", "aerial"}
	industries  = []string{"Weddings", "Real Estate", "Fashion", "Hospitality", "Tech", "Food"}
	clientTypes = []string{"Creator", "Individual", "Agency", "Brand"}
	commStyles  = []string{"casual", "detailed", "formal"}
	clientTiers = []string{"first-timer", "high-volume", "premium"}
	languages   = []string{"Hindi", "English", "Tamil", "Marathi", "Bengali", "Kannada"}
	platforms   = []string{"Personal Website", "Behance", "Instagram", "YouTube", "Vimeo"}
	software    = []string{"Adobe Photoshop", "Premiere Pro", "Final Cut Pro", "Lightroom", "DaVinci Resolve"}
	ratings     = []string{"average", "good", "excellent"}
)

// Generator produces synthetic datasets. The same seed yields the same dataset.
type Generator struct {
	seed uint64
	rng  *rand.Rand
}

// NewGenerator creates a generator for seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{seed: seed, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Dataset builds numRequests requests and numTalents talents.
func (g *Generator) Dataset(numRequests, numTalents int) Dataset {
	ds := Dataset{
		Requests: make([]model.Request, 0, max(numRequests, 0)),
		Talents:  make([]model.Talent, 0, max(numTalents, 0)),
	}
	for i := range max(numRequests, 0) {
		ds.Requests = append(ds.Requests, g.request(i))
	}
	for i := range max(numTalents, 0) {
		ds.Talents = append(ds.Talents, g.talent(i))
	}
	return ds
}

func (g *Generator) id(kind string, i int) string {
	return uuid.NewSHA1(generatorNamespace, fmt.Appendf(nil, "%s/%d/%d", kind, g.seed, i)).String()
}

func (g *Generator) request(i int) model.Request {
	return model.Request{
		ID:                 g.id("request", i),
		Name:               fmt.Sprintf("Client %d", i+1),
		Type:               g.pick(clientTypes),
		Industry:           g.pick(industries),
		City:               g.pick(cities),
		StylePreferences:   g.sample(styles, 1+g.rng.IntN(3)),
		CommunicationStyle: g.pick(commStyles),
		ClientTier:         g.pick(clientTiers),
	}
}

func (g *Generator) talent(i int) model.Talent {
	city := g.pick(cities)
	t := model.Talent{
		ID:              g.id("talent", i),
		Name:            fmt.Sprintf("Talent %d", i+1),
		City:            city,
		Hometown:        g.pick(cities),
		Categories:      g.sample(categories, 1+g.rng.IntN(2)),
		Skills:          g.sample(skills, 1+g.rng.IntN(3)),
		StyleTags:       g.sample(styles, 1+g.rng.IntN(3)),
		BudgetRange:     fmt.Sprintf("₹%d–₹%d", 10000+g.rng.IntN(30000), 40000+g.rng.IntN(40000)),
		ExperienceYears: float64(g.rng.IntN(16)),
		Platforms:       g.sample(platforms, 1+g.rng.IntN(2)),
		SoftSkills: &model.SoftSkills{
			Communication: g.pick(ratings),
			Punctuality:   g.pick(ratings),
			Collaboration: g.pick(ratings),
			Initiative:    g.pick(ratings),
			Adaptability:  g.pick(ratings),
		},
		Languages: g.sample(languages, 1+g.rng.IntN(2)),
		AvailabilityCalendar: []model.Availability{
			{City: city, From: "2025-09-01", To: "2025-12-31"},
		},
	}
	for _, name := range g.sample(software, 1+g.rng.IntN(3)) {
		t.SoftwareSkills = append(t.SoftwareSkills, model.SoftwareSkill{Name: name, Level: 1 + g.rng.IntN(10)})
	}
	for j := range g.rng.IntN(4) {
		t.Portfolio = append(t.Portfolio, model.PortfolioItem{
			Title:    fmt.Sprintf("%s Portfolio %d", g.pick(skills), j+1),
			Tags:     g.sample(styles, 2),
			Keywords: g.sample(keywords, 3),
		})
	}
	return t
}

func (g *Generator) pick(from []string) string {
	return from[g.rng.IntN(len(from))]
}

// sample returns n distinct entries of from in random order.
func (g *Generator) sample(from []string, n int) []string {
	n = min(n, len(from))
	out := make([]string, 0, n)
	for _, idx := range g.rng.Perm(len(from))[:n] {
		out = append(out, from[idx])
	}
	return out
}
