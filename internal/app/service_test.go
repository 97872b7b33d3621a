package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/okian/talentmatch/internal/app"
	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/internal/domain/scoring"
	"github.com/okian/talentmatch/internal/seed"
	"github.com/okian/talentmatch/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["defaultLimit"], ShouldEqual, 10)
			So(stats["topLimit"], ShouldEqual, 3)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithWorkerCount(8),
			service.WithDefaultLimit(25),
			service.WithTopLimit(5),
			service.WithTopLimit(-1), // ignored
		)

		Convey("Then the options should be applied", func() {
			stats := svc.GetStats()
			So(stats["workerCount"], ShouldEqual, 8)
			So(stats["defaultLimit"], ShouldEqual, 25)
			So(stats["topLimit"], ShouldEqual, 5)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service with seeding enabled", t, func() {
		svc := service.New(service.WithSeed(true, nil))
		// Ensure service is stopped after test
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And it should be marked as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
			})

			Convey("And the sample data should be loaded", func() {
				stats := svc.GetStats()
				So(stats["totalTalents"], ShouldEqual, 1)
				So(stats["totalRequests"], ShouldEqual, 2)
			})

			Convey("And starting twice should be a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
				So(svc.GetStats()["totalRequests"], ShouldEqual, 2)
			})
		})
	})

	Convey("Given a service with a custom seed dataset", t, func() {
		ds := seed.NewGenerator(3).Dataset(4, 12)
		svc := service.New(service.WithSeed(true, &ds))
		defer svc.Stop()

		err := svc.Start(context.Background())

		Convey("Then the dataset should be loaded instead of the sample data", func() {
			So(err, ShouldBeNil)
			So(svc.GetStats()["totalTalents"], ShouldEqual, 12)
			So(svc.GetStats()["totalRequests"], ShouldEqual, 4)
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := svc.Start(ctx)
		So(err, ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
			})

			Convey("And record calls should fail with ErrNotStarted", func() {
				_, err := svc.ListTalents(ctx)
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
				_, err = svc.FindMatches(ctx, "cli_001", 10)
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})

			Convey("And stopping again should be safe", func() {
				So(func() { svc.Stop() }, ShouldNotPanic)
			})
		})
	})
}

func TestService_Records(t *testing.T) {
	Convey("Given a started service without seeding", t, func() {
		ctx := context.Background()
		svc := service.New()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When creating and reading a request", func() {
			created, err := svc.CreateRequest(ctx, model.Request{Name: "Parker LLC", City: "Kolkata"})
			So(err, ShouldBeNil)

			got, err := svc.GetRequest(ctx, created.ID)

			Convey("Then the stored request is returned", func() {
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "Parker LLC")
			})
		})

		Convey("When updating and deleting a talent", func() {
			created, err := svc.CreateTalent(ctx, model.Talent{Name: "Asha", City: "Delhi"})
			So(err, ShouldBeNil)

			updated, err := svc.UpdateTalent(ctx, created.ID, model.Talent{Name: "Asha R", City: "Goa"})
			So(err, ShouldBeNil)
			So(updated.City, ShouldEqual, "Goa")

			So(svc.DeleteTalent(ctx, created.ID), ShouldBeNil)

			Convey("Then the talent is gone", func() {
				_, err := svc.GetTalent(ctx, created.ID)
				So(errors.Is(err, model.ErrNotFound), ShouldBeTrue)
				talents, err := svc.ListTalents(ctx)
				So(err, ShouldBeNil)
				So(talents, ShouldBeEmpty)
			})
		})
	})
}

func TestService_Matching(t *testing.T) {
	Convey("Given a service seeded with the sample data", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithSeed(true, nil))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When matching cli_001 (Kolkata, Youthful/Vibrant)", func() {
			matches, err := svc.FindMatches(ctx, "cli_001", 0)

			Convey("Then Tyler Baker is the single match", func() {
				So(err, ShouldBeNil)
				So(matches, ShouldHaveLength, 1)
				m := matches[0]
				So(m.Rank, ShouldEqual, 1)
				So(m.Talent.ID, ShouldEqual, "tal_001")
				So(m.Scores.Location, ShouldEqual, 0.0)
				So(m.Scores.Experience, ShouldEqual, 3.0)
				So(m.Scores.StylePreferences, ShouldAlmostEqual, 1.0, 1e-9)
				So(m.Scores.PortfolioKeywords, ShouldAlmostEqual, 0.3, 1e-9)
				So(m.TotalScore, ShouldAlmostEqual, 4.3, 1e-9)
				So(m.Explanation, ShouldEqual, "Experience: 8 years. Style tags match. Portfolio keywords match")
			})
		})

		Convey("When fetching top matches for an unknown request", func() {
			_, err := svc.FindTopMatches(ctx, "cli_999")

			Convey("Then the error is NotFound", func() {
				So(errors.Is(err, model.ErrNotFound), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service with custom scoring weights", t, func() {
		ctx := context.Background()
		cfg := scoring.DefaultConfig()
		cfg.Weights[scoring.Experience] = 10
		svc := service.New(service.WithSeed(true, nil), service.WithScoringConfig(cfg))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("Then the weights reach the ranking", func() {
			matches, err := svc.FindTopMatches(ctx, "cli_001")
			So(err, ShouldBeNil)
			So(matches[0].Scores.Experience, ShouldEqual, 10.0)
			So(svc.GetStats()["weights"].(map[string]float64)["experience"], ShouldEqual, 10.0)
		})
	})
}
