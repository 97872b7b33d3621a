package client

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/okian/talentmatch/internal/seed"
	"github.com/okian/talentmatch/pkg/logger"
)

// LoadResult counts the outcome of posting a dataset.
type LoadResult struct {
	Requests  int
	Talents   int
	Duplicate int
	Failed    int
}

// Load posts every record of ds using the configured number of workers.
// Records the server already holds count as Duplicate; other failures count as
// Failed and do not stop the run. Only context cancellation returns an error.
// With more than one worker the server sees the records in no particular order.
func (c *Client) Load(ctx context.Context, ds seed.Dataset) (LoadResult, error) {
	c.logger.Info(ctx, "submitting dataset",
		logger.Int("requests", len(ds.Requests)),
		logger.Int("talents", len(ds.Talents)),
		logger.Int("workers", c.workers),
	)

	var (
		requests  int64
		talents   int64
		duplicate int64
		failed    int64
	)
	tally := func(ok *int64, err error) {
		switch {
		case err == nil:
			atomic.AddInt64(ok, 1)
		case errors.Is(err, ErrConflict):
			atomic.AddInt64(&duplicate, 1)
		default:
			atomic.AddInt64(&failed, 1)
			c.logger.Warn(ctx, "record submission failed", logger.Error(err))
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for _, r := range ds.Requests {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := c.CreateRequest(gctx, r)
			tally(&requests, err)
			return nil
		})
	}
	for _, t := range ds.Talents {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := c.CreateTalent(gctx, t)
			tally(&talents, err)
			return nil
		})
	}
	err := g.Wait()

	res := LoadResult{
		Requests:  int(atomic.LoadInt64(&requests)),
		Talents:   int(atomic.LoadInt64(&talents)),
		Duplicate: int(atomic.LoadInt64(&duplicate)),
		Failed:    int(atomic.LoadInt64(&failed)),
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return res, err
	}

	c.logger.Info(ctx, "dataset submission completed",
		logger.Int("requests", res.Requests),
		logger.Int("talents", res.Talents),
		logger.Int("duplicate", res.Duplicate),
		logger.Int("failed", res.Failed),
	)
	return res, nil
}
