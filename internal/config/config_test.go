package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/okian/talentmatch/internal/config"
	"github.com/okian/talentmatch/internal/domain/scoring"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":4000")
			convey.So(cfg.StoreDriver, convey.ShouldEqual, config.DriverMemory)
			convey.So(cfg.DefaultLimit, convey.ShouldEqual, 10)
			convey.So(cfg.TopLimit, convey.ShouldEqual, 3)
			convey.So(cfg.MaxLimit, convey.ShouldEqual, 100)
			convey.So(cfg.ScoreWorkers, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.SeedEnabled, convey.ShouldBeTrue)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the scoring config equals the engine defaults", func() {
			convey.So(cfg.ScoringConfig(), convey.ShouldResemble, scoring.DefaultConfig())
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with a single invalid value", t, func() {
		cases := map[string]func(c *config.Config){
			"addr must not be empty":        func(c *config.Config) { c.Addr = "" },
			"log_format":                    func(c *config.Config) { c.LogFormat = "xml" },
			"default_limit":                 func(c *config.Config) { c.DefaultLimit = 0 },
			"top_limit":                     func(c *config.Config) { c.TopLimit = -1 },
			"max_limit":                     func(c *config.Config) { c.MaxLimit = 5 },
			"score_workers":                 func(c *config.Config) { c.ScoreWorkers = -2 },
			"rate_limit_rps":                func(c *config.Config) { c.RateLimitRPS = -1 },
			"rate_limit_burst":              func(c *config.Config) { c.RateLimitBurst = 0 },
			"unknown store_driver":          func(c *config.Config) { c.StoreDriver = "mongo" },
			"sqlite_path":                   func(c *config.Config) { c.StoreDriver = config.DriverSQLite; c.SQLitePath = "" },
			"postgres_dsn":                  func(c *config.Config) { c.StoreDriver = config.DriverPostgres },
			"unknown scoring dimension":     func(c *config.Config) { c.Weights = map[string]float64{"budget": 1} },
			"weight of skills":              func(c *config.Config) { c.Weights = map[string]float64{"skills": -1} },
			"experience band":               func(c *config.Config) { c.ExperienceBands = []scoring.Band{{MinYears: 2, Multiplier: 2}} },
		}

		for want, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, want)
		}
	})

	convey.Convey("Given rate limiting disabled", t, func() {
		cfg := config.New()
		cfg.RateLimitRPS = 0
		cfg.RateLimitBurst = 0

		convey.Convey("Then the burst is not checked", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_ScoringConfig(t *testing.T) {
	convey.Convey("Given weight overrides and custom bands", t, func() {
		cfg := config.New()
		cfg.Weights = map[string]float64{"location": 6, "languages": 0}
		cfg.ExperienceBands = []scoring.Band{{MinYears: 10, Multiplier: 1}}

		sc := cfg.ScoringConfig()

		convey.Convey("Then overridden dimensions change and the rest keep defaults", func() {
			convey.So(sc.Weights[scoring.Location], convey.ShouldEqual, 6.0)
			convey.So(sc.Weights[scoring.Languages], convey.ShouldEqual, 0.0)
			convey.So(sc.Weights[scoring.Skills], convey.ShouldEqual, 5.0)
			convey.So(sc.ExperienceBands, convey.ShouldResemble, []scoring.Band{{MinYears: 10, Multiplier: 1}})
		})
	})
}
