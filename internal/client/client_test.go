package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/talentmatch/internal/adapters/http/api"
	service "github.com/okian/talentmatch/internal/app"
	"github.com/okian/talentmatch/internal/client"
	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/internal/seed"
	"github.com/okian/talentmatch/pkg/logger"
)

// newServer runs the full API over an in-memory service.
func newServer(t *testing.T, seeded bool, opts ...api.Option) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	svc := service.New(service.WithSeed(seeded, nil), service.WithLogger(logger.Discard()))
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start service: %v", err)
	}

	mux := http.NewServeMux()
	api.NewServer(svc, svc, opts...).Register(ctx, mux)
	srv := httptest.NewServer(mux)

	t.Cleanup(func() {
		srv.Close()
		svc.Stop()
	})
	return srv
}

func TestClient_Matches(t *testing.T) {
	Convey("Given a client of a seeded server", t, func() {
		ctx := context.Background()
		srv := newServer(t, true)
		c := client.New(srv.URL)

		Convey("Health succeeds", func() {
			So(c.Health(ctx), ShouldBeNil)
		})

		Convey("FindMatches ranks the sample talent", func() {
			res, err := c.FindMatches(ctx, "cli_001", 0)
			So(err, ShouldBeNil)
			So(res.RequestID, ShouldEqual, "cli_001")
			So(res.Total, ShouldEqual, 1)
			So(res.Matches, ShouldHaveLength, 1)

			m := res.Matches[0]
			So(m.Talent.ID, ShouldEqual, "tal_001")
			So(m.Rank, ShouldEqual, 1)
			So(m.TotalScore, ShouldAlmostEqual, 4.3, 1e-9)
			So(m.Explanation, ShouldEqual, "Experience: 8 years. Style tags match. Portfolio keywords match")
		})

		Convey("FindTopMatches returns the same leader", func() {
			top, err := c.FindTopMatches(ctx, "cli_001")
			So(err, ShouldBeNil)
			So(top, ShouldHaveLength, 1)
			So(top[0].Talent.ID, ShouldEqual, "tal_001")
		})

		Convey("An unknown request maps to ErrNotFound", func() {
			_, err := c.FindMatches(ctx, "missing", 5)
			So(errors.Is(err, client.ErrNotFound), ShouldBeTrue)

			_, err = c.GetRequest(ctx, "missing")
			So(errors.Is(err, client.ErrNotFound), ShouldBeTrue)
		})

		Convey("A limit above the server maximum is rejected", func() {
			_, err := c.FindMatches(ctx, "cli_001", 1000)
			So(errors.Is(err, client.ErrUnexpectedStatus), ShouldBeTrue)
		})
	})
}

func TestClient_Records(t *testing.T) {
	Convey("Given a client of an empty server", t, func() {
		ctx := context.Background()
		srv := newServer(t, false)
		c := client.New(srv.URL)

		Convey("CreateRequest stores and returns the record", func() {
			created, err := c.CreateRequest(ctx, model.Request{ID: "req-1", Name: "Acme", City: "Goa"})
			So(err, ShouldBeNil)
			So(created.ID, ShouldEqual, "req-1")
			So(created.CreatedAt.IsZero(), ShouldBeFalse)

			got, err := c.GetRequest(ctx, "req-1")
			So(err, ShouldBeNil)
			So(got.Name, ShouldEqual, "Acme")

			Convey("and a second create with the same id conflicts", func() {
				_, err := c.CreateRequest(ctx, model.Request{ID: "req-1"})
				So(errors.Is(err, client.ErrConflict), ShouldBeTrue)
			})
		})

		Convey("CreateTalent assigns an id when none is given", func() {
			created, err := c.CreateTalent(ctx, model.Talent{Name: "Jo", City: "Pune"})
			So(err, ShouldBeNil)
			So(created.ID, ShouldNotBeEmpty)
		})

		Convey("ListRequests of an empty server is empty", func() {
			list, err := c.ListRequests(ctx)
			So(err, ShouldBeNil)
			So(list, ShouldBeEmpty)
		})
	})
}

func TestClient_Load(t *testing.T) {
	Convey("Given a generated dataset and an empty server", t, func() {
		ctx := context.Background()
		srv := newServer(t, false)
		c := client.New(srv.URL, client.WithWorkers(3))
		ds := seed.NewGenerator(7).Dataset(3, 5)

		Convey("Load posts every record", func() {
			res, err := c.Load(ctx, ds)
			So(err, ShouldBeNil)
			So(res, ShouldResemble, client.LoadResult{Requests: 3, Talents: 5})

			list, err := c.ListRequests(ctx)
			So(err, ShouldBeNil)
			So(list, ShouldHaveLength, 3)

			Convey("and loading again counts duplicates", func() {
				again, err := c.Load(ctx, ds)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, client.LoadResult{Duplicate: 8})
			})
		})

		Convey("Load stops on a canceled context", func() {
			canceled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := c.Load(canceled, ds)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestClient_RateLimited(t *testing.T) {
	Convey("Given a server with a single token bucket slot", t, func() {
		ctx := context.Background()
		srv := newServer(t, true, api.WithRateLimit(0.001, 1))
		c := client.New(srv.URL)

		_, err := c.ListRequests(ctx)
		So(err, ShouldBeNil)

		Convey("the next call maps to ErrRateLimited", func() {
			_, err := c.ListRequests(ctx)
			So(errors.Is(err, client.ErrRateLimited), ShouldBeTrue)
		})
	})
}

func TestDecodeMatches(t *testing.T) {
	Convey("DecodeMatches reads a match list at a path", t, func() {
		body := `{"data":{"matches":[{"talent":{"id":"t1"},"totalScore":2.5,"rank":1}]}}`
		m, err := client.DecodeMatches(body, "data.matches")
		So(err, ShouldBeNil)
		So(m, ShouldHaveLength, 1)
		So(m[0].Talent.ID, ShouldEqual, "t1")
		So(m[0].TotalScore, ShouldEqual, 2.5)

		Convey("and fails when the path is missing", func() {
			_, err := client.DecodeMatches(body, "data.topMatches")
			So(errors.Is(err, client.ErrUnexpectedStatus), ShouldBeTrue)
		})
	})
}
