package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/talentmatch/internal/adapters/http/api"
	service "github.com/okian/talentmatch/internal/app"
	"github.com/okian/talentmatch/internal/seed"
	"github.com/okian/talentmatch/pkg/logger"
)

// run executes talentctl with args and returns stdout.
func run(args ...string) (string, error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func newServer(t *testing.T, seeded bool) string {
	t.Helper()
	ctx := context.Background()
	svc := service.New(service.WithSeed(seeded, nil), service.WithLogger(logger.Discard()))
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start service: %v", err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(ctx, mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		srv.Close()
		svc.Stop()
	})
	return srv.URL
}

func TestGenerate(t *testing.T) {
	Convey("generate writes a decodable dataset", t, func() {
		path := filepath.Join(t.TempDir(), "ds.yaml")
		_, err := run("generate", "-r", "2", "-t", "4", "--seed", "9", "-o", path)
		So(err, ShouldBeNil)

		ds, err := seed.LoadFile(path)
		So(err, ShouldBeNil)
		So(ds.Requests, ShouldHaveLength, 2)
		So(ds.Talents, ShouldHaveLength, 4)
		want := seed.NewGenerator(9).Dataset(2, 4)
		So(ds.Requests[1].ID, ShouldEqual, want.Requests[1].ID)
		So(ds.Talents[3].ID, ShouldEqual, want.Talents[3].ID)
		So(ds.Talents[3].StyleTags, ShouldResemble, want.Talents[3].StyleTags)
	})

	Convey("generate writes to stdout by default", t, func() {
		out, err := run("generate", "-r", "1", "-t", "1")
		So(err, ShouldBeNil)
		So(out, ShouldContainSubstring, "requests:")
		So(out, ShouldContainSubstring, "talents:")
	})

	Convey("negative counts are rejected", t, func() {
		_, err := run("generate", "-r", "-1")
		So(err, ShouldNotBeNil)
	})
}

func TestLoadAndMatches(t *testing.T) {
	Convey("Given an empty server and a dataset file", t, func() {
		url := newServer(t, false)

		Convey("load of the sample data posts every record", func() {
			sample := filepath.Join(t.TempDir(), "sample.yaml")
			So(writeDefault(sample), ShouldBeNil)

			out, err := run("load", sample, "--url", url, "-w", "1")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "requests: 2")
			So(out, ShouldContainSubstring, "talents: 1")
			So(out, ShouldContainSubstring, "failed: 0")

			Convey("and matches prints the ranked talent", func() {
				out, err := run("matches", "cli_001", "--url", url)
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "RANK")
				So(out, ShouldContainSubstring, "tal_001")
				So(out, ShouldContainSubstring, "4.30")
			})

			Convey("and matches --top --json prints JSON", func() {
				out, err := run("matches", "cli_001", "--top", "--json", "--url", url)
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, `"rank": 1`)
			})
		})

		Convey("matches of an unknown request fails", func() {
			_, err := run("matches", "nope", "--url", url, "--retries", "0")
			So(err, ShouldNotBeNil)
		})

		Convey("load of a missing file fails", func() {
			_, err := run("load", filepath.Join(t.TempDir(), "missing.yaml"), "--url", url)
			So(err, ShouldNotBeNil)
		})
	})
}

func writeDefault(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return seed.Encode(f, seed.Default())
}
